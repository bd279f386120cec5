package m68k

// SignalKind tags what a Device's update step asks the emulator loop to
// do, grounded on original_source/src/devices.rs's Device::update contract.
type SignalKind uint8

const (
	SignalNoOp SignalKind = iota
	SignalQuit
	SignalIRQ
)

// Signal is a Device's report from one update step: nothing, a request to
// stop the emulator, or an interrupt at a given level (and, optionally, a
// device-supplied vector rather than the autovector).
type Signal struct {
	Kind   SignalKind
	Level  uint8
	Vector uint8 // 0 means "use the autovector for Level"
}

func NoOp() Signal           { return Signal{Kind: SignalNoOp} }
func Quit() Signal           { return Signal{Kind: SignalQuit} }
func IRQ(level uint8) Signal { return Signal{Kind: SignalIRQ, Level: level} }

// Device is a memory-mapped peripheral attached to the Bus: it owns a
// fixed address range, decodes its own register layout, and takes one
// cooperative update step per instruction the CPU executes (spec.md §5's
// "no preemption" model). Devices may also be attached directly as Regions;
// Device additionally models the init/update lifecycle spec.md §6
// describes for configuration-supplied peripherals (MFP, keyboard,
// blitter, and so on) that this core's Non-goals exclude from the core
// itself but which the emulator loop still has to poll.
type Device interface {
	Region
	Init(ram []byte)
	Update(cpu *CPU) Signal
}
