// Package atari assembles an m68k.Emulator into the external collaborator
// spec.md §6 describes: Atari ST boot vector-table seeding, the fixed
// device address bases real ST software expects to find, and nothing the
// core itself is responsible for (no video/floppy/sound protocol, no
// binary loader beyond a flat copy). Grounded on
// original_source/src/atari.rs's st1040() configuration and MEMORY_LAYOUT
// table.
package atari

import "github.com/intuitionamiga/m68kemu/internal/m68k"

// Boot vector-table offsets and literal seed values, copied from
// original_source/src/atari.rs's MEMORY_LAYOUT (including its apparent
// off-by-one placement of the level-4 autovector at $080 rather than the
// $070 its own comment names — preserved here rather than silently
// corrected, since spec.md's External Interfaces section names this exact
// literal table as the profile's contract).
const (
	SystemBase  uint32 = 0xFC0030
	ROMBase     uint32 = 0xFC0000
	ROMSize     uint32 = 0x40000
	RAMSize     uint32 = 0x400000
	InitialSSP  uint32 = 0x00FF0000
	LineAVector uint32 = 0xEB9A
	Level2IRQ   uint32 = 0x543C
	Level4IRQ   uint32 = 0x5452
	MemValid    uint32 = 0x752019F3
	MemValid2   uint32 = 0x237698AA
	MemValid3   uint32 = 0x5555AAAA
	ScreenBase  uint32 = 0x78000

	MFPBase       uint32 = 0xFFFFFA01
	KeyboardBase  uint32 = 0xFFFFFC00
	RTCBase       uint32 = 0xFFFFFC20
	BlitterBase   uint32 = 0xFFFF8A00
	DMASoundBase  uint32 = 0xFFFF8900
	MicrowireBase uint32 = 0xFFFF8922
	JoystickBase  uint32 = 0xFFFF9200
	FloppyBase    uint32 = 0xFFFF8600
)

type vectorSeed struct {
	offset uint32
	size   m68k.Size
	value  uint32
}

var bootLayout = []vectorSeed{
	{0x000, m68k.SizeLong, InitialSSP},
	{0x004, m68k.SizeLong, SystemBase},
	{0x028, m68k.SizeLong, LineAVector},
	{0x068, m68k.SizeLong, Level2IRQ},
	{0x080, m68k.SizeLong, Level4IRQ},
	{0x420, m68k.SizeLong, MemValid},
	{0x424, m68k.SizeByte, 0},
	{0x426, m68k.SizeLong, 0},
	{0x42A, m68k.SizeLong, SystemBase},
	{0x42E, m68k.SizeLong, RAMSize},
	{0x43A, m68k.SizeLong, MemValid2},
	{0x51A, m68k.SizeLong, MemValid3},
	{0x4A6, m68k.SizeWord, 1},
	{0x44E, m68k.SizeLong, ScreenBase},
}

// Profile builds an Emulator with RAM sized per the ST profile, a writable
// system-ROM region at the TOS cartridge base so a boot image can be
// loaded where the real hardware's CartridgeROM device would sit, and the
// st1040() device roster attached at their real bus addresses so code
// that merely probes for a device's presence behaves, without emulating
// its register protocol (spec.md §1 Non-goals: peripheral device models
// are an external collaborator's job, not the core's).
func Profile() *m68k.Emulator {
	ram := m68k.NewRAM(0, int(RAMSize))
	emu := m68k.NewEmulator(ram)
	// Devices are attached ahead of the ROM region, whose range covers the
	// I/O page, and at bases masked to the bus's 24-bit routed address.
	emu.Attach(NewMFP(MFPBase & m68k.AddressMask))
	emu.Attach(NewKeyboard(KeyboardBase & m68k.AddressMask))
	emu.Attach(NewRTC(RTCBase & m68k.AddressMask))
	emu.Attach(NewBlitter(BlitterBase & m68k.AddressMask))
	emu.Attach(NewDMASound(DMASoundBase & m68k.AddressMask))
	emu.Attach(NewMicrowire(MicrowireBase & m68k.AddressMask))
	emu.Attach(NewJoystick(JoystickBase & m68k.AddressMask))
	emu.Attach(NewFloppy(FloppyBase & m68k.AddressMask))
	emu.Bus.Attach(m68k.NewRAM(ROMBase, int(ROMSize)))
	return emu
}

// SeedBootVectors writes the Atari ST's vector-table and system-variable
// literals into RAM. Must run before Reset so PC/SSP pick up SystemBase
// and InitialSSP.
func SeedBootVectors(emu *m68k.Emulator) error {
	for _, s := range bootLayout {
		v := m68k.NewValue(s.size, s.value)
		if err := emu.Bus.Write(s.offset, v); err != nil {
			return err
		}
	}
	return nil
}

// LoadAndBoot seeds the vector table, copies a flat program image at
// SystemBase, and resets the CPU so execution starts there — spec.md §6's
// single emulator entry point, specialized to this profile's fixed
// addresses.
func LoadAndBoot(emu *m68k.Emulator, program []byte) error {
	return LoadAndBootAt(emu, SystemBase, program)
}

// LoadAndBootAt is LoadAndBoot with an overridden load base, for a caller
// (the CLI's --base flag) that wants to run a bare program image rather
// than boot at the ST's own system base.
func LoadAndBootAt(emu *m68k.Emulator, base uint32, program []byte) error {
	if err := SeedBootVectors(emu); err != nil {
		return err
	}
	if err := emu.LoadProgram(base, program); err != nil {
		return err
	}
	if err := emu.Reset(); err != nil {
		return err
	}
	emu.CPU.PC = base
	return nil
}
