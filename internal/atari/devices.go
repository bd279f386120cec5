package atari

import "github.com/intuitionamiga/m68kemu/internal/m68k"

// Minimal stub devices occupying the Atari ST's real fixed bus addresses,
// the attachment roster original_source/src/atari.rs's st1040() wires
// (MFP, Keyboard, RTC, Blitter, DMA sound, Microwire, joystick; cartridge
// ROM is the writable ROM region in profile.go rather than a Device, since
// nothing polls it). Their register protocols are an external
// collaborator's concern per spec.md §1's Non-goals; what this package is
// responsible for is that code probing for a device's presence at its
// real address sees *something*, and that the emulator's per-instruction
// device-polling step has a nonempty roster to exercise. Grounded on
// original_source/src/devices.rs's Device trait.
type stubDevice struct {
	base uint32
	name string
	regs []byte
}

func newStub(base uint32, size int, name string) *stubDevice {
	return &stubDevice{base: base, name: name, regs: make([]byte, size)}
}

func (d *stubDevice) Contains(addr uint32) bool {
	return addr >= d.base && addr < d.base+uint32(len(d.regs))
}

func (d *stubDevice) off(addr uint32) uint32 { return addr - d.base }

func (d *stubDevice) ReadB(addr uint32) uint8     { return d.regs[d.off(addr)] }
func (d *stubDevice) WriteB(addr uint32, v uint8) { d.regs[d.off(addr)] = v }

func (d *stubDevice) ReadW(addr uint32) uint16 {
	o := d.off(addr)
	return uint16(d.regs[o])<<8 | uint16(d.regs[o+1])
}

func (d *stubDevice) WriteW(addr uint32, v uint16) {
	o := d.off(addr)
	d.regs[o] = byte(v >> 8)
	d.regs[o+1] = byte(v)
}

func (d *stubDevice) ReadL(addr uint32) uint32 {
	hi := uint32(d.ReadW(addr))
	lo := uint32(d.ReadW(addr + 2))
	return hi<<16 | lo
}

func (d *stubDevice) WriteL(addr uint32, v uint32) {
	d.WriteW(addr, uint16(v>>16))
	d.WriteW(addr+2, uint16(v))
}

func (d *stubDevice) Init(ram []byte) {}

func (d *stubDevice) Update(cpu *m68k.CPU) m68k.Signal { return m68k.NoOp() }

// MFP is the Multi Function Peripheral stub: timers, the keyboard ACIA,
// and most of the ST's autovectored interrupt sources in real hardware.
// Attached but inert here; a real implementation would raise Signal{IRQ}
// from Update once a timer register's countdown expired.
type MFP struct{ *stubDevice }

func NewMFP(base uint32) *MFP { return &MFP{newStub(base, 0x30, "mfp")} }

// Keyboard is the IKBD ACIA stub at $FFFFFC00.
type Keyboard struct{ *stubDevice }

func NewKeyboard(base uint32) *Keyboard { return &Keyboard{newStub(base, 0x04, "keyboard")} }

// RTC is the real-time clock stub at $FFFFFC20.
type RTC struct{ *stubDevice }

func NewRTC(base uint32) *RTC { return &RTC{newStub(base, 0x20, "rtc")} }

// Blitter is the blitter coprocessor stub at $FFFF8A00.
type Blitter struct{ *stubDevice }

func NewBlitter(base uint32) *Blitter { return &Blitter{newStub(base, 0x40, "blitter")} }

// DMASound is the DMA sound controller stub at $FFFF8900.
type DMASound struct{ *stubDevice }

func NewDMASound(base uint32) *DMASound { return &DMASound{newStub(base, 0x20, "dmasound")} }

// Microwire is the LMC1992 mixer-control stub at $FFFF8922.
type Microwire struct{ *stubDevice }

func NewMicrowire(base uint32) *Microwire { return &Microwire{newStub(base, 0x04, "microwire")} }

// Joystick is the joystick/mouse port stub at $FFFF9200.
type Joystick struct{ *stubDevice }

func NewJoystick(base uint32) *Joystick { return &Joystick{newStub(base, 0x10, "joystick")} }

// Floppy is the WD1772 floppy disc controller stub at $FFFF8600.
type Floppy struct{ *stubDevice }

func NewFloppy(base uint32) *Floppy { return &Floppy{newStub(base, 0x10, "floppy")} }
