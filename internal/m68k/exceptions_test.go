package m68k

import "testing"

// A TRAP/RTE round trip must restore A7/SR/PC exactly, per spec.md §8's
// Stack discipline and Supervisor toggling properties. This specifically
// exercises the bug this review round found: Return used to restore SR
// before adjusting A7, so by the time the stack pointer was written back
// S had already flipped to user mode and the restored SSP value landed in
// USP instead, leaving SSP six bytes short of the caller's stack.
func TestExecTrapThenRTERoundTrip(t *testing.T) {
	c := newTestCPU()
	c.SR = 0 // start in user mode
	c.USP = 0x4000
	c.SSP = testStackTop
	c.PC = testCodeBase

	const trapVector = VecTrapBase + 1
	if err := c.Bus.WriteL(uint32(trapVector)*LongSize, 0x9000); err != nil {
		t.Fatalf("seeding trap vector: %v", err)
	}

	c.RaiseTrap(1, c.PC)

	if !c.Supervisor() {
		t.Fatal("TRAP should enter supervisor mode")
	}
	if want := uint32(testStackTop - LongSize - WordSize); c.SSP != want {
		t.Fatalf("after TRAP: want SSP=%#08x, got %#08x", want, c.SSP)
	}
	if c.USP != 0x4000 {
		t.Fatalf("after TRAP: USP should be untouched, want 0x4000, got %#08x", c.USP)
	}
	if c.PC != 0x9000 {
		t.Fatalf("after TRAP: want PC=%#08x, got %#08x", 0x9000, c.PC)
	}

	if err := c.Return(); err != nil {
		t.Fatalf("RTE: %v", err)
	}

	if c.Supervisor() {
		t.Error("RTE should revert to user mode, since the pushed SR had S clear")
	}
	if c.SSP != testStackTop {
		t.Errorf("after RTE: SSP should be fully restored, want %#08x, got %#08x", testStackTop, c.SSP)
	}
	if c.USP != 0x4000 {
		t.Errorf("after RTE: USP should still be untouched, want 0x4000, got %#08x", c.USP)
	}
	if c.PC != testCodeBase {
		t.Errorf("after RTE: want PC=%#08x, got %#08x", testCodeBase, c.PC)
	}
}

// An RTE executed from a nested supervisor-mode exception must pop back
// to supervisor mode (S stays set) and restore SSP without touching USP.
func TestExecRTEStaysSupervisorWhenPoppedSRHasSSet(t *testing.T) {
	c := newTestCPU()
	c.SR = SRS // already supervisor
	c.USP = 0x4000
	c.SSP = testStackTop
	c.PC = testCodeBase

	if err := c.Bus.WriteL(uint32(VecIllegal)*LongSize, 0x8000); err != nil {
		t.Fatalf("seeding illegal vector: %v", err)
	}

	c.Raise(VecIllegal, c.PC)

	if err := c.Return(); err != nil {
		t.Fatalf("RTE: %v", err)
	}
	if !c.Supervisor() {
		t.Error("RTE should stay in supervisor mode, since the pushed SR had S set")
	}
	if c.SSP != testStackTop {
		t.Errorf("after RTE: SSP should be fully restored, want %#08x, got %#08x", testStackTop, c.SSP)
	}
	if c.USP != 0x4000 {
		t.Errorf("after RTE: USP should be untouched, want 0x4000, got %#08x", c.USP)
	}
}
