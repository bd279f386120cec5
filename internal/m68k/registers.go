package m68k

// Status register bit masks, named and valued exactly as the teacher's
// M68K_SR_* constants in cpu_m68k.go.
const (
	SRC     = 0x0001
	SRV     = 0x0002
	SRZ     = 0x0004
	SRN     = 0x0008
	SRX     = 0x0010
	SRIPL   = 0x0700
	SRS     = 0x2000
	SRT0    = 0x4000
	SRT1    = 0x8000
	SRCCR   = 0x001F
	SRShift = 8
)

// Condition-code field values, matching the teacher's M68K_CC_* constants.
const (
	CCT  = 0
	CCF  = 1
	CCHI = 2
	CCLS = 3
	CCCC = 4
	CCCS = 5
	CCNE = 6
	CCEQ = 7
	CCVC = 8
	CCVS = 9
	CCPL = 10
	CCMI = 11
	CCGE = 12
	CCLT = 13
	CCGT = 14
	CCLE = 15
)

// Exception vector numbers, matching the teacher's M68K_VEC_* constants.
const (
	VecReset       = 1
	VecBusError    = 2
	VecAddrError   = 3
	VecIllegal     = 4
	VecZeroDivide  = 5
	VecCHK         = 6
	VecTRAPV       = 7
	VecPrivilege   = 8
	VecTrace       = 9
	VecLineA       = 10
	VecLineF       = 11
	VecFormatError = 14
	VecSpurious    = 24
	VecLevel1      = 25
	VecLevel7      = 31
	VecTrapBase    = 32
	VecUser        = 64
)

// CPU is the register file and execution state: eight data registers,
// seven address registers plus the two stack pointers A7 aliases, the
// status register, and the program counter. Grounded on cpu_m68k.go's
// M68KCPU layout, but replacing its reference-counted register-cell model
// with plain value fields per spec.md §9's "Shared mutable register file"
// design note: the executor resolves operands to indices and dispatches
// reads/writes through the CPU rather than holding aliasable handles.
type CPU struct {
	PC    uint32
	SR    uint16
	D     [8]uint32
	Aregs [7]uint32 // A0..A6; A7 is computed, see A7()/SetA7()
	USP   uint32
	SSP   uint32

	Bus *Bus

	Stopped bool
	halted  bool // double-fault guard tripped

	inException      bool
	deferredVector   uint8
	hasDeferredVec   bool

	// InstructionCount mirrors the teacher's perf counters but exists here
	// purely as a diagnostic; nothing in the executor reads it back.
	InstructionCount uint64
}

// NewCPU wires a CPU to a bus with SR.S set (reset state), matching
// cpu_m68k.go's NewM68KCPU before it reads the reset vectors.
func NewCPU(bus *Bus) *CPU {
	return &CPU{Bus: bus, SR: SRS}
}

// Supervisor reports whether SR.S is set.
func (c *CPU) Supervisor() bool { return c.SR&SRS != 0 }

// SetSupervisor toggles SR.S.
func (c *CPU) SetSupervisor(v bool) {
	if v {
		c.SR |= SRS
	} else {
		c.SR &^= SRS
	}
}

// A7 returns the currently visible stack pointer: USP in user mode, SSP in
// supervisor mode, per spec.md §3's A7-aliasing invariant.
func (c *CPU) A7() uint32 {
	if c.Supervisor() {
		return c.SSP
	}
	return c.USP
}

// SetA7 updates only the currently selected stack pointer.
func (c *CPU) SetA7(v uint32) {
	if c.Supervisor() {
		c.SSP = v
	} else {
		c.USP = v
	}
}

// AddrReg reads address register i (0..7), aliasing A7 through SetA7/A7.
func (c *CPU) AddrReg(i int) uint32 {
	if i == 7 {
		return c.A7()
	}
	return c.Aregs[i]
}

// SetAddrReg writes address register i (0..7).
func (c *CPU) SetAddrReg(i int, v uint32) {
	if i == 7 {
		c.SetA7(v)
		return
	}
	c.Aregs[i] = v
}

// CCR bit accessors.
func (c *CPU) FlagC() bool { return c.SR&SRC != 0 }
func (c *CPU) FlagV() bool { return c.SR&SRV != 0 }
func (c *CPU) FlagZ() bool { return c.SR&SRZ != 0 }
func (c *CPU) FlagN() bool { return c.SR&SRN != 0 }
func (c *CPU) FlagX() bool { return c.SR&SRX != 0 }

func setFlag(sr *uint16, mask uint16, v bool) {
	if v {
		*sr |= mask
	} else {
		*sr &^= mask
	}
}

func (c *CPU) SetFlagC(v bool) { setFlag(&c.SR, SRC, v) }
func (c *CPU) SetFlagV(v bool) { setFlag(&c.SR, SRV, v) }
func (c *CPU) SetFlagZ(v bool) { setFlag(&c.SR, SRZ, v) }
func (c *CPU) SetFlagN(v bool) { setFlag(&c.SR, SRN, v) }
func (c *CPU) SetFlagX(v bool) { setFlag(&c.SR, SRX, v) }

// ApplyCCR applies a CCRDelta built by Add/Sub/Cmp, leaving any bit the
// delta marks as untouched (X from CMP, for instance) unchanged.
func (c *CPU) ApplyCCR(d CCRDelta) {
	if d.HasC {
		c.SetFlagC(d.C)
	}
	if d.HasV {
		c.SetFlagV(d.V)
	}
	if d.HasZ {
		c.SetFlagZ(d.Z)
	}
	if d.HasN {
		c.SetFlagN(d.N)
	}
	if d.HasX {
		c.SetFlagX(d.X)
	}
}

// SetFlagsNZ clears V and C and sets N/Z from result at the given width,
// the logic-instruction CCR contract ("Logic instructions clear V and C,
// set N and Z from the result, leave X" — spec.md §4.3).
func (c *CPU) SetFlagsNZ(result uint32, size Size) {
	n, z := flagsFromResult(size, result)
	c.SetFlagN(n)
	c.SetFlagZ(z)
	c.SetFlagV(false)
	c.SetFlagC(false)
}

// IPL returns the current interrupt priority mask from SR.
func (c *CPU) IPL() uint8 { return uint8((c.SR & SRIPL) >> SRShift) }

// CheckCondition evaluates one of the sixteen condition codes against the
// current CCR bits, matching cpu_m68k.go's CheckCondition truth table.
func (c *CPU) CheckCondition(cc uint8) bool {
	n, z, v, cFlag := c.FlagN(), c.FlagZ(), c.FlagV(), c.FlagC()
	switch cc {
	case CCT:
		return true
	case CCF:
		return false
	case CCHI:
		return !cFlag && !z
	case CCLS:
		return cFlag || z
	case CCCC:
		return !cFlag
	case CCCS:
		return cFlag
	case CCNE:
		return !z
	case CCEQ:
		return z
	case CCVC:
		return !v
	case CCVS:
		return v
	case CCPL:
		return !n
	case CCMI:
		return n
	case CCGE:
		return n == v
	case CCLT:
		return n != v
	case CCGT:
		return !z && (n == v)
	case CCLE:
		return z || (n != v)
	default:
		return false
	}
}
