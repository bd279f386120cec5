package m68k

// decodeGroup9OrD covers the 0x9xxx (SUB/SUBA/SUBX) and 0xDxxx
// (ADD/ADDA/ADDX) opcode maps, which share an identical field layout and
// differ only in the arithmetic performed.
func decodeGroup9OrD(opcode uint16) (Instruction, bool) {
	isAdd := opcode&0xF000 == 0xD000

	xReg := int((opcode >> 9) & 7)
	if ((opcode&0xF130 == 0x9100 && !isAdd) || (opcode&0xF130 == 0xD100 && isAdd)) && (opcode>>6)&3 != 3 {
		size, _ := sizeFromField((opcode >> 6) & 3)
		op := OpSUBX
		if isAdd {
			op = OpADDX
		}
		return Instruction{
			Op: op, Size: size, Reg: xReg, Reg2: int(opcode & 7),
			Reg2Mem: opcode&0x0008 != 0,
		}, true
	}

	mode, eaReg := (opcode>>3)&7, opcode&7
	eaMode, eaR := decodeEA(mode, eaReg)
	ooo := (opcode >> 6) & 7

	addaOp, subaOp := OpADDA, OpSUBA
	addOp, subOp := OpADD, OpSUB

	switch ooo {
	case 0, 1, 2:
		size, _ := sizeFromField(ooo)
		op := subOp
		if isAdd {
			op = addOp
		}
		return Instruction{Op: op, Size: size, SrcMode: eaMode, SrcReg: eaR, Reg: xReg, Dir: false}, true
	case 3:
		op := subaOp
		if isAdd {
			op = addaOp
		}
		return Instruction{Op: op, Size: SizeWord, SrcMode: eaMode, SrcReg: eaR, Reg: xReg}, true
	case 4, 5, 6:
		size, _ := sizeFromField(ooo - 4)
		op := subOp
		if isAdd {
			op = addOp
		}
		return Instruction{Op: op, Size: size, SrcMode: eaMode, SrcReg: eaR, Reg: xReg, Dir: true}, true
	default: // 7
		op := subaOp
		if isAdd {
			op = addaOp
		}
		return Instruction{Op: op, Size: SizeLong, SrcMode: eaMode, SrcReg: eaR, Reg: xReg}, true
	}
}
