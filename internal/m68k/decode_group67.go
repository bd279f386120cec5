package m68k

// decodeGroup6 covers Bcc/BRA/BSR: condition field 0000=BRA, 0001=BSR,
// else Bcc. The embedded 8-bit displacement is recorded as-is; the
// executor interprets 0x00/0xFF as "fetch a larger displacement word/long"
// per spec.md §4.3.
func decodeGroup6(opcode uint16) (Instruction, bool) {
	cond := uint8((opcode >> 8) & 0xF)
	disp := int32(int8(opcode & 0xFF))
	switch cond {
	case 0:
		return Instruction{Op: OpBRA, Data: disp}, true
	case 1:
		return Instruction{Op: OpBSR, Data: disp}, true
	default:
		return Instruction{Op: OpBcc, Cond: cond, Data: disp}, true
	}
}

// decodeGroup7 covers MOVEQ: bit 8 must be clear (MOVEQ is the only
// occupant of the 0x7xxx nibble).
func decodeGroup7(opcode uint16) (Instruction, bool) {
	if opcode&0x0100 != 0 {
		return Instruction{}, false
	}
	reg := int((opcode >> 9) & 7)
	data := int32(int8(opcode & 0xFF))
	return Instruction{Op: OpMOVEQ, Reg: reg, Data: data}, true
}

// decodeGroup8 covers OR/DIVU/DIVS and SBCD, the latter sharing OR's
// Dn-to-memory opmode slot the way real silicon repurposes the otherwise
// invalid register-direct destination encodings.
func decodeGroup8(opcode uint16) (Instruction, bool) {
	if opcode&0xF1F8 == 0x8100 {
		return Instruction{Op: OpSBCD, Reg: int((opcode >> 9) & 7), Reg2: int(opcode & 7)}, true
	}
	if opcode&0xF1F8 == 0x8108 {
		return Instruction{Op: OpSBCD, Reg: int((opcode >> 9) & 7), Reg2: int(opcode & 7), Reg2Mem: true}, true
	}

	reg := int((opcode >> 9) & 7)
	mode, eaReg := (opcode>>3)&7, opcode&7
	eaMode, eaR := decodeEA(mode, eaReg)
	ooo := (opcode >> 6) & 7

	switch ooo {
	case 0, 1, 2:
		size, _ := sizeFromField(ooo)
		return Instruction{Op: OpOR, Size: size, SrcMode: eaMode, SrcReg: eaR, Reg: reg, Dir: false}, true
	case 3:
		return Instruction{Op: OpDIVU, SrcMode: eaMode, SrcReg: eaR, Reg: reg}, true
	case 4:
		return Instruction{Op: OpOR, Size: SizeByte, SrcMode: eaMode, SrcReg: eaR, Reg: reg, Dir: true}, true
	case 5:
		return Instruction{Op: OpOR, Size: SizeWord, SrcMode: eaMode, SrcReg: eaR, Reg: reg, Dir: true}, true
	case 6:
		return Instruction{Op: OpOR, Size: SizeLong, SrcMode: eaMode, SrcReg: eaR, Reg: reg, Dir: true}, true
	default: // 7
		return Instruction{Op: OpDIVS, SrcMode: eaMode, SrcReg: eaR, Reg: reg}, true
	}
}
