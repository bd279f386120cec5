package m68k

import "testing"

// Grounded on the teacher's m68k_shift_test.go ASL register-form cases,
// reusing the same opcode encodings.
func TestExecASL(t *testing.T) {
	cases := []testCase{
		{
			name:           "ASL.L #1,D0 basic",
			dataRegs:       [8]uint32{0x00000001},
			opcodes:        []uint16{0xE380},
			expectDataRegs: map[int]uint32{0: 0x00000002},
			expectFlags:    flagsNZVC(0, 0, 0, 0),
		},
		{
			name:           "ASL.L #1,D0 sign change sets V and C/X",
			dataRegs:       [8]uint32{0x80000000},
			opcodes:        []uint16{0xE380},
			expectDataRegs: map[int]uint32{0: 0x00000000},
			expectFlags:    flagsAll(0, 1, 1, 1, 1),
		},
		{
			name:           "ASL.L #8,D0 (quick count 0 means 8)",
			dataRegs:       [8]uint32{0x00000001},
			opcodes:        []uint16{0xE180},
			expectDataRegs: map[int]uint32{0: 0x00000100},
			expectFlags:    flagsNZVC(0, 0, 0, 0),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) { runCase(t, tc) })
	}
}

func TestExecLSR(t *testing.T) {
	runCase(t, testCase{
		name:           "LSR.L #1,D0 shifts out the low bit as C",
		dataRegs:       [8]uint32{0x00000003},
		opcodes:        []uint16{0xE288}, // LSR.L #1,D0
		expectDataRegs: map[int]uint32{0: 0x00000001},
		expectFlags:    flagsAll(0, 0, 0, 1, 1),
	})
}

func TestExecROL(t *testing.T) {
	runCase(t, testCase{
		name:           "ROL.L #1,D0 wraps the sign bit to bit 0",
		dataRegs:       [8]uint32{0x80000000},
		opcodes:        []uint16{0xE398}, // ROL.L #1,D0
		expectDataRegs: map[int]uint32{0: 0x00000001},
		expectFlags:    flagsNZVC(0, 0, 0, 1),
	})
}

func TestExecRegisterCountShiftZero(t *testing.T) {
	// Register-counted shift with D1&63==0 forces C clear and leaves X.
	runCase(t, testCase{
		name:           "ASL.L D1,D0 with D1=0 is a no-op on C",
		dataRegs:       [8]uint32{0x00000001, 0x00000000},
		sr:             SRC,
		opcodes:        []uint16{0xE3A0}, // ASL.L D1,D0
		expectDataRegs: map[int]uint32{0: 0x00000001},
		expectFlags:    flagsAll(0, 0, 0, 0, -1),
	})
}

func TestExecRegisterCountROXLZeroCarriesX(t *testing.T) {
	// Unlike ASL/LSL/ROL/ROR, a zero-count ROXL/ROXR reports C = X rather
	// than clearing C, since the extend bit is what a zero rotate-with-
	// extend is defined to surface.
	runCase(t, testCase{
		name:           "ROXL.L D1,D0 with D1=0 sets C from the untouched X",
		dataRegs:       [8]uint32{0x00000001, 0x00000000},
		sr:             SRX,
		opcodes:        []uint16{0xE3B0}, // ROXL.L D1,D0
		expectDataRegs: map[int]uint32{0: 0x00000001},
		expectFlags:    flagsAll(0, 0, 0, 1, 1),
	})
}
