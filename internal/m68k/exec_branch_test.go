package m68k

import "testing"

// Grounded on the teacher's m68k_control_test.go BSR/RTS/DBcc cases,
// reusing the same opcode encodings and stack-discipline assertions
// spec.md §8 calls out directly.
func TestExecBRA(t *testing.T) {
	c := newTestCPU()
	c.Bus.WriteW(testCodeBase, 0x6008) // BRA +8
	c.PC = testCodeBase
	startPC := c.PC
	inst, ok := Decode(c.Fetch16())
	if !ok {
		t.Fatal("BRA failed to decode")
	}
	c.Execute(inst, startPC)
	if want := uint32(testCodeBase + 2 + 8); c.PC != want {
		t.Errorf("PC: want %#08x, got %#08x", want, c.PC)
	}
}

func TestExecBSRThenRTS(t *testing.T) {
	c := newTestCPU()
	c.SSP = testStackTop
	c.Bus.WriteW(testCodeBase, 0x6108)        // BSR +8
	c.Bus.WriteW(testCodeBase+2+8, 0x4E75)    // RTS at the branch target
	sspBefore := c.SSP

	c.PC = testCodeBase
	startPC := c.PC
	inst, _ := Decode(c.Fetch16())
	c.Execute(inst, startPC)

	wantTarget := uint32(testCodeBase + 2 + 8)
	if c.PC != wantTarget {
		t.Fatalf("after BSR: want PC=%#08x, got %#08x", wantTarget, c.PC)
	}
	if c.SSP != sspBefore-LongSize {
		t.Fatalf("after BSR: want SSP=%#08x, got %#08x", sspBefore-LongSize, c.SSP)
	}

	startPC = c.PC
	inst, _ = Decode(c.Fetch16())
	c.Execute(inst, startPC)

	if want := uint32(testCodeBase + 2); c.PC != want {
		t.Errorf("after RTS: want PC=%#08x, got %#08x", want, c.PC)
	}
	if c.SSP != sspBefore {
		t.Errorf("after RTS: SSP not restored, want %#08x, got %#08x", sspBefore, c.SSP)
	}
}

func TestExecDBRALoop(t *testing.T) {
	c := newTestCPU()
	c.D[0] = 2
	loopStart := uint32(testCodeBase)
	c.Bus.WriteW(loopStart, 0x51C8)   // DBRA D0,loop
	c.Bus.WriteW(loopStart+2, 0xFFFE) // displacement -2, relative to the extension word

	c.PC = loopStart
	for i := 0; i < 2; i++ {
		startPC := c.PC
		inst, _ := Decode(c.Fetch16())
		c.Execute(inst, startPC)
		if c.PC != loopStart {
			t.Fatalf("iteration %d: expected branch back to loop start, got PC=%#08x", i, c.PC)
		}
		c.PC = loopStart
	}
	if c.D[0] != 0 {
		t.Fatalf("D0 should be 0 after two decrements, got %d", c.D[0])
	}

	// Third pass: D0 decrements to -1 and the loop falls through.
	startPC := c.PC
	inst, _ := Decode(c.Fetch16())
	c.Execute(inst, startPC)
	if want := uint32(loopStart + 4); c.PC != want {
		t.Errorf("DBRA should fall through once the count wraps below zero: want %#08x, got %#08x", want, c.PC)
	}
}

func TestExecLinkUnlk(t *testing.T) {
	c := newTestCPU()
	c.SSP = testStackTop
	c.Aregs[5] = 0x1111 // A5, clobbered by LINK and restored by UNLK
	c.Bus.WriteW(testCodeBase, 0x4E55)   // LINK A5,#-8
	c.Bus.WriteW(testCodeBase+2, 0xFFF8) // -8
	c.Bus.WriteW(testCodeBase+4, 0x4E5D) // UNLK A5

	c.PC = testCodeBase
	startPC := c.PC
	inst, _ := Decode(c.Fetch16())
	c.Execute(inst, startPC)

	if want := uint32(testStackTop - LongSize); c.AddrReg(5) != want {
		t.Fatalf("after LINK: want A5=%#08x, got %#08x", want, c.AddrReg(5))
	}
	if want := uint32(testStackTop - LongSize - 8); c.SSP != want {
		t.Fatalf("after LINK: want SSP=%#08x, got %#08x", want, c.SSP)
	}

	startPC = c.PC
	inst, _ = Decode(c.Fetch16())
	c.Execute(inst, startPC)

	if c.AddrReg(5) != 0x1111 {
		t.Errorf("after UNLK: A5 should be restored, want 0x1111, got %#08x", c.AddrReg(5))
	}
	if c.SSP != testStackTop {
		t.Errorf("after UNLK: SSP should be back to the frame pointer, want %#08x, got %#08x", testStackTop, c.SSP)
	}
}
