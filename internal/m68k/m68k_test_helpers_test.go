package m68k

import "testing"

// FlagExpectation checks CPU flags after one instruction executes; -1 means
// "don't care". Grounded on the teacher's m68k_test_helpers_test.go
// FlagExpectation/FlagsNZVC table-driven style, adapted to this package's
// CPU/Bus API.
type FlagExpectation struct {
	N, Z, V, C, X int8
}

func flagsDontCare() FlagExpectation { return FlagExpectation{-1, -1, -1, -1, -1} }

func flagsNZVC(n, z, v, c int8) FlagExpectation {
	return FlagExpectation{N: n, Z: z, V: v, C: c, X: -1}
}

func flagsAll(n, z, v, c, x int8) FlagExpectation {
	return FlagExpectation{n, z, v, c, x}
}

func checkFlag(t *testing.T, name string, want int8, got bool) {
	t.Helper()
	if want < 0 {
		return
	}
	wantBool := want != 0
	if got != wantBool {
		t.Errorf("flag %s: want %v, got %v", name, wantBool, got)
	}
}

func checkFlags(t *testing.T, c *CPU, want FlagExpectation) {
	t.Helper()
	checkFlag(t, "N", want.N, c.FlagN())
	checkFlag(t, "Z", want.Z, c.FlagZ())
	checkFlag(t, "V", want.V, c.FlagV())
	checkFlag(t, "C", want.C, c.FlagC())
	checkFlag(t, "X", want.X, c.FlagX())
}

// testCase is one table-driven opcode test: load registers and opcode
// words at a fixed code address, execute exactly one instruction, then
// check the resulting registers/memory/flags.
type testCase struct {
	name string

	dataRegs [8]uint32
	addrRegs [7]uint32 // A0..A6; A7 comes from SSP below
	ssp      uint32
	sr       uint16

	initialMem map[uint32]uint32 // address -> byte value

	opcodes []uint16

	expectDataRegs map[int]uint32
	expectAddrRegs map[int]uint32
	expectMem      map[uint32]uint8
	expectFlags    FlagExpectation
	expectPC       uint32 // 0 = don't check
}

const testCodeBase = 0x2000
const testStackTop = 0x8000

func newTestCPU() *CPU {
	ram := NewRAM(0, 0x10000)
	bus := NewBus()
	bus.Attach(ram)
	return NewCPU(bus)
}

func runCase(t *testing.T, tc testCase) *CPU {
	t.Helper()
	c := newTestCPU()
	c.D = tc.dataRegs
	c.Aregs = tc.addrRegs
	if tc.ssp != 0 {
		c.SSP = tc.ssp
	} else {
		c.SSP = testStackTop
	}
	if tc.sr != 0 {
		c.SR = tc.sr
	}

	addr := uint32(testCodeBase)
	for _, w := range tc.opcodes {
		if err := c.Bus.WriteW(addr, w); err != nil {
			t.Fatalf("writing opcode: %v", err)
		}
		addr += WordSize
	}
	for a, v := range tc.initialMem {
		if err := c.Bus.WriteB(a, uint8(v)); err != nil {
			t.Fatalf("writing initial mem: %v", err)
		}
	}

	c.PC = testCodeBase
	startPC := c.PC
	opcode := c.Fetch16()
	inst, ok := Decode(opcode)
	if !ok {
		t.Fatalf("opcode %#04x failed to decode", opcode)
	}
	c.Execute(inst, startPC)

	for reg, want := range tc.expectDataRegs {
		if c.D[reg] != want {
			t.Errorf("D%d: want %#08x, got %#08x", reg, want, c.D[reg])
		}
	}
	for reg, want := range tc.expectAddrRegs {
		if c.AddrReg(reg) != want {
			t.Errorf("A%d: want %#08x, got %#08x", reg, want, c.AddrReg(reg))
		}
	}
	for a, want := range tc.expectMem {
		got, err := c.Bus.ReadB(a)
		if err != nil {
			t.Fatalf("reading mem %#08x: %v", a, err)
		}
		if got != want {
			t.Errorf("mem[%#08x]: want %#02x, got %#02x", a, want, got)
		}
	}
	checkFlags(t, c, tc.expectFlags)
	if tc.expectPC != 0 && c.PC != tc.expectPC {
		t.Errorf("PC: want %#08x, got %#08x", tc.expectPC, c.PC)
	}
	return c
}
