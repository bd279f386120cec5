package m68k

// Emulator drives the cooperative, single-threaded fetch/decode/execute
// loop spec.md §2/§5 describe: one CPU step runs to completion, then every
// attached device takes one update step in deterministic attach order,
// then any raised interrupt is polled. Grounded on cpu_m68k_runner.go's
// run loop, generalized onto the Device interface rather than a fixed
// peripheral set.
type Emulator struct {
	CPU     *CPU
	Bus     *Bus
	RAM     *RAM
	Devices []Device

	// MaxInstructions bounds Run for host-driven bring-up; 0 means run
	// until a device signals Quit. Debug mode (single-stepping and state
	// dumps) is the caller's responsibility via Step, per spec.md §6.
	MaxInstructions uint64
}

// NewEmulator wires a CPU to a bus that already owns the given RAM,
// matching the teacher's NewMachine(ram) constructor shape.
func NewEmulator(ram *RAM) *Emulator {
	bus := NewBus()
	bus.Attach(ram)
	return &Emulator{CPU: NewCPU(bus), Bus: bus, RAM: ram}
}

// Attach registers a device on the bus and in the update roster. Call it
// before Reset/Run/Step. The emulator never seals the bus itself, so a late
// Attach is only rejected after an explicit Bus.Seal.
func (e *Emulator) Attach(d Device) {
	e.Bus.Attach(d)
	e.Devices = append(e.Devices, d)
}

// Reset seeds PC/SSP from the vector table's first two longs, enters
// supervisor mode, and gives every device a chance to see RAM, per spec.md
// §4.3's reset state transition and §6's "Reset loads SSP from $000, PC
// from $004".
func (e *Emulator) Reset() error {
	e.CPU.SetSupervisor(true)
	ssp, err := e.Bus.ReadL(0)
	if err != nil {
		return err
	}
	pc, err := e.Bus.ReadL(LongSize)
	if err != nil {
		return err
	}
	e.CPU.SSP = ssp
	e.CPU.PC = pc
	e.CPU.Stopped = false
	for _, d := range e.Devices {
		d.Init(e.RAM.Mem)
	}
	return nil
}

// LoadProgram copies a flat binary into RAM at base, the "load a program
// at a configurable base address" entry point spec.md §6 assigns to the
// emulator rather than the core's decoder/executor.
func (e *Emulator) LoadProgram(base uint32, program []byte) error {
	for i, b := range program {
		if err := e.Bus.WriteB(base+uint32(i), b); err != nil {
			return err
		}
	}
	return nil
}

// Step runs exactly one fetch/decode/execute cycle (skipped while the CPU
// is Stopped), then polls every device once. It returns the signal that
// should end the run, or NoOp to keep going.
func (e *Emulator) Step() Signal {
	c := e.CPU
	c.DeliverDeferred()
	if !c.Stopped && !c.halted {
		startPC := c.PC
		opcode := c.Fetch16()
		inst, ok := Decode(opcode)
		if !ok {
			c.Raise(VecIllegal, startPC)
		} else {
			c.Execute(inst, startPC)
		}
		c.InstructionCount++
	}

	for _, d := range e.Devices {
		sig := d.Update(c)
		switch sig.Kind {
		case SignalQuit:
			return sig
		case SignalIRQ:
			vector := sig.Vector
			if vector == 0 {
				vector = VecAutoBase + sig.Level
			}
			c.Interrupt(sig.Level, vector)
		}
	}

	if c.halted {
		return Quit()
	}
	return NoOp()
}

// Run drives Step until a device signals Quit, the CPU's double-fault
// guard trips, or MaxInstructions is reached.
func (e *Emulator) Run() {
	for {
		sig := e.Step()
		if sig.Kind == SignalQuit {
			return
		}
		if e.MaxInstructions != 0 && e.CPU.InstructionCount >= e.MaxInstructions {
			return
		}
	}
}
