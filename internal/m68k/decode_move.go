package m68k

// decodeMoveGroup covers the generic two-operand MOVE family and its
// MOVEA variant (destination mode = address-register-direct). Per
// spec.md §4.3, MOVE's size code (01=B, 11=W, 10=L) differs from every
// other family's (00=B, 01=W, 10=L); this decoder normalizes it to a
// Size the executor shares with everything else.
func decodeMoveGroup(opcode uint16) (Instruction, bool) {
	size, ok := moveSizeField((opcode >> 12) & 3)
	if !ok {
		return Instruction{}, false
	}
	dstReg := (opcode >> 9) & 7
	dstMode := (opcode >> 6) & 7
	srcMode := (opcode >> 3) & 7
	srcReg := opcode & 7

	sMode, sReg := decodeEA(srcMode, srcReg)
	dMode, dReg := decodeEA(dstMode, dstReg)

	if dstMode == 1 {
		return Instruction{Op: OpMOVEA, Size: size, SrcMode: sMode, SrcReg: sReg, Reg: int(dstReg)}, true
	}
	return Instruction{Op: OpMOVE, Size: size, SrcMode: sMode, SrcReg: sReg, DstMode: dMode, DstReg: dReg}, true
}

func moveSizeField(ss uint16) (Size, bool) {
	switch ss {
	case 1:
		return SizeByte, true
	case 3:
		return SizeWord, true
	case 2:
		return SizeLong, true
	default:
		return 0, false
	}
}
