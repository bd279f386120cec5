package m68k

import "testing"

// MOVEP transfers a data register to/from alternate ("every other") bytes
// of memory starting at An+d16, restored per this review round (it had
// been dropped from the decoder entirely, and the dynamic bit-op path
// misdecoded its mode-1 EA as a register operand). Opcodes hand-derived
// from the field layout in decode_group0.go.
func TestExecMOVEPMemoryToRegisterWord(t *testing.T) {
	runCase(t, testCase{
		name:     "MOVEP.W (4,A1),D2 leaves D2's upper word untouched",
		dataRegs: [8]uint32{0, 0, 0xFFFF1234},
		addrRegs: [7]uint32{0, 0x3000},
		opcodes:  []uint16{0x0509, 0x0004}, // MOVEP.W (d16,A1),D2; d16=4
		initialMem: map[uint32]uint32{
			0x3004: 0xAB,
			0x3006: 0xCD,
		},
		expectDataRegs: map[int]uint32{2: 0xFFFFABCD},
		expectFlags:    flagsDontCare(),
	})
}

func TestExecMOVEPRegisterToMemoryLong(t *testing.T) {
	runCase(t, testCase{
		name:           "MOVEP.L D3,(8,A2) writes high byte first at each even offset",
		dataRegs:       [8]uint32{0, 0, 0, 0x11223344},
		addrRegs:       [7]uint32{0, 0, 0x3000},
		opcodes:        []uint16{0x07CA, 0x0008}, // MOVEP.L D3,(d16,A2); d16=8
		expectDataRegs: map[int]uint32{3: 0x11223344},
		expectMem: map[uint32]uint8{
			0x3008: 0x11,
			0x300A: 0x22,
			0x300C: 0x33,
			0x300E: 0x44,
		},
		expectFlags: flagsDontCare(),
	})
}

func TestDecodeMOVEPDoesNotCollideWithDynamicBitOps(t *testing.T) {
	inst, ok := Decode(0x0509)
	if !ok {
		t.Fatal("MOVEP.W (d16,A1),D2 failed to decode")
	}
	if inst.Op != OpMOVEP {
		t.Errorf("mode-1 dynamic-bit-op-shaped opcode should decode as MOVEP, got %v", inst.Op)
	}
	if inst.Size != SizeWord || inst.Dir {
		t.Errorf("unexpected fields for mem->reg word MOVEP: %+v", inst)
	}
}
