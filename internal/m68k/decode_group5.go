package m68k

// decodeGroup5 covers 0x5xxx: ADDQ/SUBQ (size field 0-2) and, where the
// size field reads 11, the Scc/DBcc family sharing that slot (DBcc when
// the EA mode is address-register-direct, Scc otherwise).
func decodeGroup5(opcode uint16) (Instruction, bool) {
	mode, reg := (opcode>>3)&7, opcode&7
	eaMode, eaReg := decodeEA(mode, reg)
	ss := (opcode >> 6) & 3
	data := (opcode >> 9) & 7

	if ss == 3 {
		cond := uint8((opcode >> 8) & 0xF)
		if mode == 1 {
			return Instruction{Op: OpDBcc, Cond: cond, Reg: int(reg)}, true
		}
		return Instruction{Op: OpScc, Cond: cond, DstMode: eaMode, DstReg: eaReg}, true
	}
	size, ok := sizeFromField(ss)
	if !ok {
		return Instruction{}, false
	}
	quick := int32(data)
	if quick == 0 {
		quick = 8
	}
	if opcode&0x0100 != 0 {
		return Instruction{Op: OpSUBQ, Size: size, Data: quick, DstMode: eaMode, DstReg: eaReg}, true
	}
	return Instruction{Op: OpADDQ, Size: size, Data: quick, DstMode: eaMode, DstReg: eaReg}, true
}
