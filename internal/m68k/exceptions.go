package m68k

import (
	"fmt"
	"os"
)

// Raise implements the synchronous exception entry sequence from spec.md
// §4.4: force supervisor mode, push the faulting/return PC (long) and the
// pre-exception SR (word) onto the supervisor stack with SR ending up on
// top, then load PC from the vector table. faultPC is the address spec.md
// calls for per exception class: the address of the *next* instruction for
// TRAP/TRAPV/CHK, the address of the *faulting* instruction for illegal and
// privilege violations.
//
// A synchronous exception raised while one is already being entered is
// queued rather than re-entered (delivered at the next Step boundary via
// DeliverDeferred); a bus/address error while already faulting trips the
// double-fault guard instead, matching cpu_m68k.go's ProcessException
// re-entrancy handling (spec.md itself is silent on both cases).
func (c *CPU) Raise(vector uint8, faultPC uint32) {
	if c.inException {
		c.deferredVector = vector
		c.hasDeferredVec = true
		fmt.Fprintf(os.Stderr, "m68k: exception vector %d deferred while handling another\n", vector)
		return
	}
	c.inException = true
	defer func() { c.inException = false }()

	oldSR := c.SR
	c.SetSupervisor(true)
	c.Stopped = false

	sp := c.A7()
	sp -= LongSize
	if err := c.Bus.WriteL(sp, faultPC); err != nil {
		c.faultDuringException(vector)
		return
	}
	sp -= WordSize
	if err := c.Bus.WriteW(sp, oldSR); err != nil {
		c.faultDuringException(vector)
		return
	}
	c.SetA7(sp)

	addr := uint32(vector) * LongSize
	newPC, err := c.Bus.ReadL(addr)
	if err != nil {
		c.faultDuringException(vector)
		return
	}
	c.PC = newPC
}

func (c *CPU) faultDuringException(vector uint8) {
	fmt.Fprintf(os.Stderr, "m68k: double fault entering vector %d, halting\n", vector)
	c.halted = true
}

// DeliverDeferred processes one exception vector queued by a reentrant
// Raise call, if any. Called by the emulator loop before each fetch.
func (c *CPU) DeliverDeferred() {
	if !c.hasDeferredVec {
		return
	}
	vector := c.deferredVector
	c.hasDeferredVec = false
	c.Raise(vector, c.PC)
}

// RaiseTrap loads the vector for TRAP #n, n in 0..15.
func (c *CPU) RaiseTrap(n int32, faultPC uint32) {
	c.Raise(uint8(VecTrapBase+n), faultPC)
}

// Return pops a stacked SR then PC (RTE's inverse of Raise), reverting to
// user mode if the popped SR has S clear.
func (c *CPU) Return() error {
	sp := c.A7()
	sr, err := c.Bus.ReadW(sp)
	if err != nil {
		return err
	}
	sp += WordSize
	pc, err := c.Bus.ReadL(sp)
	if err != nil {
		return err
	}
	sp += LongSize

	// SetA7 must run before SR is restored: the pops above come off the
	// supervisor stack while still in supervisor mode, so the advanced sp
	// has to land back in SSP, not in whatever USP/SSP the new S bit picks.
	c.SetA7(sp)
	c.SR = sr
	c.PC = pc
	return nil
}

// Interrupt delivers a pending IRQ at the given level if it exceeds the
// current priority mask, per spec.md §4.4's async poll. vector is the
// device-supplied vector, or VecAutoBase+level for an autovectored
// interrupt.
const VecAutoBase = 24

func (c *CPU) Interrupt(level uint8, vector uint8) bool {
	if level == 0 || level <= c.IPL() {
		return false
	}
	c.Raise(vector, c.PC)
	c.SR = (c.SR &^ SRIPL) | (uint16(level) << SRShift)
	return true
}
