package m68k

// decodeGroupB covers 0xBxxx: CMP/CMPA/EOR/CMPM.
func decodeGroupB(opcode uint16) (Instruction, bool) {
	xReg := int((opcode >> 9) & 7)
	rawMode, eaReg := (opcode>>3)&7, opcode&7
	eaMode, eaR := decodeEA(rawMode, eaReg)
	ooo := (opcode >> 6) & 7

	switch ooo {
	case 0, 1, 2:
		size, _ := sizeFromField(ooo)
		return Instruction{Op: OpCMP, Size: size, SrcMode: eaMode, SrcReg: eaR, Reg: xReg}, true
	case 3:
		return Instruction{Op: OpCMPA, Size: SizeWord, SrcMode: eaMode, SrcReg: eaR, Reg: xReg}, true
	case 7:
		return Instruction{Op: OpCMPA, Size: SizeLong, SrcMode: eaMode, SrcReg: eaR, Reg: xReg}, true
	default: // 4,5,6
		size, _ := sizeFromField(ooo - 4)
		if rawMode == 1 {
			return Instruction{Op: OpCMPM, Size: size, Reg: xReg, Reg2: int(eaReg)}, true
		}
		return Instruction{Op: OpEOR, Size: size, SrcMode: eaMode, SrcReg: eaR, Reg: xReg}, true
	}
}

// decodeGroupC covers 0xCxxx: AND/MULU/MULS/ABCD/EXG.
func decodeGroupC(opcode uint16) (Instruction, bool) {
	if opcode&0xF1F8 == 0xC100 {
		return Instruction{Op: OpABCD, Reg: int((opcode >> 9) & 7), Reg2: int(opcode & 7)}, true
	}
	if opcode&0xF1F8 == 0xC108 {
		return Instruction{Op: OpABCD, Reg: int((opcode >> 9) & 7), Reg2: int(opcode & 7), Reg2Mem: true}, true
	}
	if opcode&0xF1F8 == 0xC140 { // EXG Dx,Dy
		return Instruction{Op: OpEXG, Reg: int((opcode >> 9) & 7), Reg2: int(opcode & 7)}, true
	}
	if opcode&0xF1F8 == 0xC148 { // EXG Ax,Ay
		return Instruction{Op: OpEXG, Reg: int((opcode >> 9) & 7), Reg2: int(opcode & 7), Reg2Mem: true}, true
	}
	if opcode&0xF1F8 == 0xC188 { // EXG Dx,Ay
		return Instruction{Op: OpEXG, Reg: int((opcode >> 9) & 7), Reg2: int(opcode & 7), Dir: true}, true
	}

	reg := int((opcode >> 9) & 7)
	mode, eaReg := (opcode>>3)&7, opcode&7
	eaMode, eaR := decodeEA(mode, eaReg)
	ooo := (opcode >> 6) & 7

	switch ooo {
	case 0, 1, 2:
		size, _ := sizeFromField(ooo)
		return Instruction{Op: OpAND, Size: size, SrcMode: eaMode, SrcReg: eaR, Reg: reg}, true
	case 3:
		return Instruction{Op: OpMULU, SrcMode: eaMode, SrcReg: eaR, Reg: reg}, true
	case 4:
		return Instruction{Op: OpAND, Size: SizeByte, SrcMode: eaMode, SrcReg: eaR, Reg: reg, Dir: true}, true
	case 5:
		return Instruction{Op: OpAND, Size: SizeWord, SrcMode: eaMode, SrcReg: eaR, Reg: reg, Dir: true}, true
	case 6:
		return Instruction{Op: OpAND, Size: SizeLong, SrcMode: eaMode, SrcReg: eaR, Reg: reg, Dir: true}, true
	default: // 7
		return Instruction{Op: OpMULS, SrcMode: eaMode, SrcReg: eaR, Reg: reg}, true
	}
}
