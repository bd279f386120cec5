package m68k

// Fetch16 reads the word at PC and advances PC by 2, the single fetch
// primitive every instruction and extension word goes through (spec.md
// §3: "PC advances by 2 per fetched word").
func (c *CPU) Fetch16() uint16 {
	v, err := c.Bus.ReadW(c.PC)
	if err != nil {
		return 0
	}
	c.PC += WordSize
	return v
}

// Fetch32 reads two consecutive words as a big-endian long.
func (c *CPU) Fetch32() uint32 {
	hi := c.Fetch16()
	lo := c.Fetch16()
	return uint32(hi)<<16 | uint32(lo)
}

// extWord is the decoded brief or full addressing-mode extension word,
// grounded on GetIndexWithExtWords in cpu_m68k.go and ExtensionWord in
// original_source/src/instructions.rs.
type extWord struct {
	full       bool
	dataReg    bool // true when the DA bit is clear: the index is a data register
	indexReg   int
	longIndex  bool // wl: word or long index
	scale      uint8
	disp8      int8  // brief form
	bdSize     uint8 // full form: 0=none(reserved),1=word,2=long
	baseSuppr  bool
	indexSuppr bool
}

func decodeExtWord(w uint16) extWord {
	if w&0x0100 == 0 {
		return extWord{
			full:      false,
			dataReg:   w&0x8000 == 0,
			indexReg:  int((w >> 12) & 7),
			longIndex: w&0x0800 != 0,
			scale:     uint8((w >> 9) & 3),
			disp8:     int8(w & 0xFF),
		}
	}
	return extWord{
		full:       true,
		dataReg:    w&0x8000 == 0,
		indexReg:   int((w >> 12) & 7),
		longIndex:  w&0x0800 != 0,
		scale:      uint8((w >> 9) & 3),
		baseSuppr:  w&0x0080 != 0,
		indexSuppr: w&0x0040 != 0,
		bdSize:     uint8((w >> 4) & 3),
	}
}

func (c *CPU) indexValue(e extWord) int32 {
	var raw uint32
	if e.dataReg {
		raw = c.D[e.indexReg]
	} else {
		raw = c.AddrReg(e.indexReg)
	}
	if !e.longIndex {
		raw = uint32(int32(int16(raw)))
	}
	return int32(raw) * (1 << e.scale)
}

// resolveIndexed computes the address for mode-6 (An + index) and the
// mode-7/3 (PC + index) forms, consuming the extension word and any
// further base-displacement words for the full format. Memory-indirect
// pre/post-indexed levels (68020-only) are beyond this core's scope, per
// spec.md's Non-goals ("MC68020+ extensions beyond what the decoder
// tolerates"); the base-displacement + scaled-index address is still
// computed correctly for the brief and full-without-indirection forms
// that appear in 68000 code.
func (c *CPU) resolveIndexed(base uint32) uint32 {
	w := c.Fetch16()
	e := decodeExtWord(w)
	addr := base
	if !e.indexSuppr {
		addr = uint32(int32(addr) + c.indexValue(e))
	}
	if !e.full {
		return uint32(int32(addr) + int32(e.disp8))
	}
	var bd uint32
	switch e.bdSize {
	case 2:
		bd = c.Fetch32()
	case 1:
		bd = uint32(int32(int16(c.Fetch16())))
	}
	if e.baseSuppr {
		addr = bd
	} else {
		addr = uint32(int32(addr) + int32(bd))
	}
	return addr
}

// Resolve turns an EAMode+register (as produced by the decoder) into a
// Handle of the requested width, consuming whatever extension words the
// mode requires via Fetch16/Fetch32 — mirroring GetEffectiveAddress in
// cpu_m68k.go, generalized to the clean Handle abstraction spec.md §4.1
// asks for.
func (c *CPU) Resolve(mode EAMode, reg int, size Size) Handle {
	switch mode {
	case EADataDirect:
		return regHandle(c, handleDataReg, reg, size)
	case EAAddrDirect:
		return regHandle(c, handleAddrReg, reg, size)
	case EAAddrIndirect:
		return memHandle(c, c.AddrReg(reg), size)
	case EAPostInc:
		addr := c.AddrReg(reg)
		step := uint32(size)
		if reg == 7 && size == SizeByte {
			step = 2
		}
		c.SetAddrReg(reg, addr+step)
		return memHandle(c, addr, size)
	case EAPreDec:
		step := uint32(size)
		if reg == 7 && size == SizeByte {
			step = 2
		}
		addr := c.AddrReg(reg) - step
		c.SetAddrReg(reg, addr)
		return memHandle(c, addr, size)
	case EADisp:
		disp := int16(c.Fetch16())
		return memHandle(c, uint32(int32(c.AddrReg(reg))+int32(disp)), size)
	case EAIndex:
		return memHandle(c, c.resolveIndexed(c.AddrReg(reg)), size)
	case EAAbsShort:
		return memHandle(c, uint32(int32(int16(c.Fetch16()))), size)
	case EAAbsLong:
		return memHandle(c, c.Fetch32(), size)
	case EAPCDisp:
		base := c.PC
		disp := int16(c.Fetch16())
		return memHandle(c, uint32(int32(base)+int32(disp)), size)
	case EAPCIndex:
		base := c.PC
		return memHandle(c, c.resolveIndexed(base), size)
	default: // EAImmediate
		switch size {
		case SizeByte:
			addr := c.PC + 1
			c.PC += WordSize
			return memHandle(c, addr, size)
		case SizeWord:
			addr := c.PC
			c.PC += WordSize
			return memHandle(c, addr, size)
		default:
			addr := c.PC
			c.PC += LongSize
			return memHandle(c, addr, size)
		}
	}
}

// EffectiveAddr returns the resolved address for modes that denote one
// (panics for register-direct modes), used by LEA/PEA/JMP/JSR which need
// the address itself rather than a read/write handle.
func (c *CPU) EffectiveAddr(mode EAMode, reg int) uint32 {
	h := c.Resolve(mode, reg, SizeLong)
	if !h.IsMemory() {
		panic("m68k: effective address requested on a register-direct mode")
	}
	return h.Addr()
}
