package m68k

// decodeGroup4 covers the 0x4xxx "miscellaneous" opcode map: NEGX/CLR/
// NEG/NOT/TST, MOVE to/from SR/CCR, NBCD/PEA/SWAP/EXT/MOVEM, CHK, LEA,
// JMP/JSR, TRAP/LINK/UNLK/MOVE USP, and the no-operand control opcodes
// (RESET/NOP/STOP/RTE/RTS/TRAPV/RTR). Field layout grounded on
// cpu_m68k.go's M68K_NEGX/M68K_CLR/M68K_MOVEM_*/M68K_TRAP_BASE constants.
func decodeGroup4(opcode uint16) (Instruction, bool) {
	mode, reg := (opcode>>3)&7, opcode&7
	eaMode, eaReg := decodeEA(mode, reg)

	switch opcode {
	case 0x4AFC:
		return Instruction{Op: OpIllegal}, true
	case 0x4E70:
		return Instruction{Op: OpRESET}, true
	case 0x4E71:
		return Instruction{Op: OpNOP}, true
	case 0x4E72:
		return Instruction{Op: OpSTOP}, true
	case 0x4E73:
		return Instruction{Op: OpRTE}, true
	case 0x4E75:
		return Instruction{Op: OpRTS}, true
	case 0x4E76:
		return Instruction{Op: OpTRAPV}, true
	case 0x4E77:
		return Instruction{Op: OpRTR}, true
	}

	if opcode&0xFFF0 == 0x4E40 {
		return Instruction{Op: OpTRAP, Data: int32(opcode & 0xF)}, true
	}
	if opcode&0xFFF8 == 0x4E50 {
		return Instruction{Op: OpLINK, Reg: int(opcode & 7)}, true
	}
	if opcode&0xFFF8 == 0x4E58 {
		return Instruction{Op: OpUNLK, Reg: int(opcode & 7)}, true
	}
	if opcode&0xFFF8 == 0x4E60 {
		return Instruction{Op: OpMOVEtoUSP, Reg: int(opcode & 7)}, true
	}
	if opcode&0xFFF8 == 0x4E68 {
		return Instruction{Op: OpMOVEfromUSP, Reg: int(opcode & 7)}, true
	}
	if opcode&0xFFC0 == 0x4E80 {
		return Instruction{Op: OpJSR, SrcMode: eaMode, SrcReg: eaReg}, true
	}
	if opcode&0xFFC0 == 0x4EC0 {
		return Instruction{Op: OpJMP, SrcMode: eaMode, SrcReg: eaReg}, true
	}
	if opcode&0xFFC0 == 0x40C0 {
		return Instruction{Op: OpMOVEfromSR, DstMode: eaMode, DstReg: eaReg}, true
	}
	if opcode&0xFFC0 == 0x44C0 {
		return Instruction{Op: OpMOVEtoCCR, SrcMode: eaMode, SrcReg: eaReg}, true
	}
	if opcode&0xFFC0 == 0x46C0 {
		return Instruction{Op: OpMOVEtoSR, SrcMode: eaMode, SrcReg: eaReg}, true
	}
	if opcode&0xFFC0 == 0x4AC0 {
		return Instruction{Op: OpTAS, DstMode: eaMode, DstReg: eaReg}, true
	}
	if opcode&0xF1C0 == 0x4180 {
		return Instruction{Op: OpCHK, SrcMode: eaMode, SrcReg: eaReg, Reg: int((opcode >> 9) & 7)}, true
	}
	if opcode&0xF1C0 == 0x41C0 {
		return Instruction{Op: OpLEA, SrcMode: eaMode, SrcReg: eaReg, Reg: int((opcode >> 9) & 7)}, true
	}

	top8 := opcode & 0xFF00
	ss := (opcode >> 6) & 3
	switch top8 {
	case 0x4000:
		if size, ok := sizeFromField(ss); ok {
			return Instruction{Op: OpNEGX, Size: size, DstMode: eaMode, DstReg: eaReg}, true
		}
	case 0x4200:
		if size, ok := sizeFromField(ss); ok {
			return Instruction{Op: OpCLR, Size: size, DstMode: eaMode, DstReg: eaReg}, true
		}
	case 0x4400:
		if size, ok := sizeFromField(ss); ok {
			return Instruction{Op: OpNEG, Size: size, DstMode: eaMode, DstReg: eaReg}, true
		}
	case 0x4600:
		if size, ok := sizeFromField(ss); ok {
			return Instruction{Op: OpNOT, Size: size, DstMode: eaMode, DstReg: eaReg}, true
		}
	case 0x4A00:
		if size, ok := sizeFromField(ss); ok {
			return Instruction{Op: OpTST, Size: size, SrcMode: eaMode, SrcReg: eaReg}, true
		}
	case 0x4800:
		switch ss {
		case 0:
			return Instruction{Op: OpNBCD, DstMode: eaMode, DstReg: eaReg}, true
		case 1:
			if mode == 0 {
				return Instruction{Op: OpSWAP, Reg: int(reg)}, true
			}
			return Instruction{Op: OpPEA, SrcMode: eaMode, SrcReg: eaReg}, true
		case 2:
			if mode == 0 {
				return Instruction{Op: OpEXT, Size: SizeWord, Reg: int(reg)}, true
			}
			return Instruction{Op: OpMOVEM, Size: SizeWord, Dir: true, DstMode: eaMode, DstReg: eaReg}, true
		case 3:
			if mode == 0 {
				return Instruction{Op: OpEXT, Size: SizeLong, Reg: int(reg)}, true
			}
			return Instruction{Op: OpMOVEM, Size: SizeLong, Dir: true, DstMode: eaMode, DstReg: eaReg}, true
		}
	case 0x4C00:
		switch ss {
		case 2:
			return Instruction{Op: OpMOVEM, Size: SizeWord, Dir: false, SrcMode: eaMode, SrcReg: eaReg}, true
		case 3:
			return Instruction{Op: OpMOVEM, Size: SizeLong, Dir: false, SrcMode: eaMode, SrcReg: eaReg}, true
		}
	}
	return Instruction{}, false
}
