package m68k

// decodeGroup0 covers opcode words 0x0000-0x0FFF: ORI/ANDI/SUBI/ADDI/
// EORI/CMPI (immediate family) including the to-CCR/to-SR exact forms,
// the static/dynamic bit-op family (BTST/BCHG/BCLR/BSET), and MOVEP.
// Grounded on parser.rs's equivalent tiers, cpu_m68k.go's
// M68K_ANDI_*/M68K_BTST_* constant families, and original_source/src/
// instructions.rs:476's MOVEP body for the tier spec.md §4.2 names.
func decodeGroup0(opcode uint16) (Instruction, bool) {
	switch opcode {
	case 0x003C:
		return Instruction{Op: OpORICCR}, true
	case 0x007C:
		return Instruction{Op: OpORISR}, true
	case 0x023C:
		return Instruction{Op: OpANDICCR}, true
	case 0x027C:
		return Instruction{Op: OpANDISR}, true
	case 0x0A3C:
		return Instruction{Op: OpEORICCR}, true
	case 0x0A7C:
		return Instruction{Op: OpEORISR}, true
	}

	mode, reg := (opcode>>3)&7, opcode&7
	eaMode, eaReg := decodeEA(mode, reg)

	if (opcode>>8)&1 == 1 {
		// mode==1 (address-register-direct) is never a legal bit-op EA;
		// that's MOVEP's fixed "An with d16" marker instead (opmode
		// 100/101/110/111 sharing the same bit8==1 tag as BTST/BCHG/
		// BCLR/BSET's dynamic form).
		if mode == 1 {
			oo := (opcode >> 6) & 3
			size := SizeWord
			if oo&1 == 1 {
				size = SizeLong
			}
			return Instruction{
				Op: OpMOVEP, Size: size,
				Reg: int((opcode >> 9) & 7), Reg2: int(reg),
				Dir: oo >= 2,
			}, true
		}
		bitReg := int((opcode >> 9) & 7)
		return Instruction{
			Op:      bitOpFromField((opcode >> 6) & 3),
			SrcMode: EADataDirect, SrcReg: bitReg,
			DstMode: eaMode, DstReg: eaReg,
		}, true
	}

	fam := (opcode >> 9) & 7
	if fam == 4 {
		return Instruction{
			Op:      bitOpFromField((opcode >> 6) & 3),
			SrcMode: EAImmediate,
			DstMode: eaMode, DstReg: eaReg,
		}, true
	}
	if fam == 7 {
		return Instruction{}, false
	}

	size, ok := sizeFromField((opcode >> 6) & 3)
	if !ok {
		return Instruction{}, false
	}
	var op Op
	switch fam {
	case 0:
		op = OpORI
	case 1:
		op = OpANDI
	case 2:
		op = OpSUBI
	case 3:
		op = OpADDI
	case 5:
		op = OpEORI
	case 6:
		op = OpCMPI
	}
	return Instruction{Op: op, Size: size, DstMode: eaMode, DstReg: eaReg}, true
}

func bitOpFromField(pp uint16) Op {
	switch pp {
	case 0:
		return OpBTST
	case 1:
		return OpBCHG
	case 2:
		return OpBCLR
	default:
		return OpBSET
	}
}

func sizeFromField(ss uint16) (Size, bool) {
	switch ss {
	case 0:
		return SizeByte, true
	case 1:
		return SizeWord, true
	case 2:
		return SizeLong, true
	default:
		return 0, false
	}
}
