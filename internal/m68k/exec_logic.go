package m68k

// execLogic dispatches AND/ANDI/OR/ORI/EOR/EORI (register and immediate
// forms), the *-to-CCR/*-to-SR immediate variants, NOT, and TST. Every
// variant here shares the logic-instruction CCR contract: V and C clear,
// N and Z from the result, X untouched (spec.md §4.3).
func (c *CPU) execLogic(inst Instruction) error {
	switch inst.Op {
	case OpAND:
		return c.execBitwiseReg(inst, func(a, b uint32) uint32 { return a & b })
	case OpOR:
		return c.execBitwiseReg(inst, func(a, b uint32) uint32 { return a | b })
	case OpEOR:
		return c.execEor(inst)
	case OpANDI:
		return c.execBitwiseImm(inst, func(a, b uint32) uint32 { return a & b })
	case OpORI:
		return c.execBitwiseImm(inst, func(a, b uint32) uint32 { return a | b })
	case OpEORI:
		return c.execBitwiseImm(inst, func(a, b uint32) uint32 { return a ^ b })
	case OpANDICCR:
		imm := c.Fetch16()
		c.SR = (c.SR &^ SRCCR) | (c.SR & uint16(imm) & SRCCR)
		return nil
	case OpORICCR:
		imm := c.Fetch16()
		c.SR |= uint16(imm) & SRCCR
		return nil
	case OpEORICCR:
		imm := c.Fetch16()
		c.SR ^= uint16(imm) & SRCCR
		return nil
	case OpANDISR:
		c.SR &= c.Fetch16()
		return nil
	case OpORISR:
		c.SR |= c.Fetch16()
		return nil
	case OpEORISR:
		c.SR ^= c.Fetch16()
		return nil
	case OpNOT:
		dst := c.Resolve(inst.DstMode, inst.DstReg, inst.Size)
		v, err := dst.Read()
		if err != nil {
			return err
		}
		result := NewValue(inst.Size, ^v.ZeroExtend())
		if err := dst.Write(result); err != nil {
			return err
		}
		c.SetFlagsNZ(result.ZeroExtend(), inst.Size)
		return nil
	case OpTST:
		src := c.Resolve(inst.SrcMode, inst.SrcReg, inst.Size)
		v, err := src.Read()
		if err != nil {
			return err
		}
		c.SetFlagsNZ(v.ZeroExtend(), inst.Size)
		return nil
	}
	return nil
}

// execBitwiseReg handles AND/OR's register forms: Dir selects ea->Dn
// (false) vs Dn->ea (true), the same split ADD/SUB use.
func (c *CPU) execBitwiseReg(inst Instruction, op func(a, b uint32) uint32) error {
	size := inst.Size
	eaH := c.Resolve(inst.SrcMode, inst.SrcReg, size)
	eaV, err := eaH.Read()
	if err != nil {
		return err
	}
	dnH := c.Resolve(EADataDirect, inst.Reg, size)
	dnV, err := dnH.Read()
	if err != nil {
		return err
	}
	dst := dnH
	result := op(dnV.ZeroExtend(), eaV.ZeroExtend())
	if inst.Dir {
		dst = eaH
	}
	v := NewValue(size, result)
	if err := dst.Write(v); err != nil {
		return err
	}
	c.SetFlagsNZ(v.ZeroExtend(), size)
	return nil
}

// execEor handles EOR: always Dn (source) XORed into the EA destination,
// there being no ea->Dn direction for this mnemonic.
func (c *CPU) execEor(inst Instruction) error {
	eaH := c.Resolve(inst.SrcMode, inst.SrcReg, inst.Size)
	eaV, err := eaH.Read()
	if err != nil {
		return err
	}
	result := NewValue(inst.Size, eaV.ZeroExtend()^c.D[inst.Reg])
	if err := eaH.Write(result); err != nil {
		return err
	}
	c.SetFlagsNZ(result.ZeroExtend(), inst.Size)
	return nil
}

// execBitwiseImm handles ANDI/ORI/EORI: the immediate word/long follows
// the opcode, fetched before the destination's own extension words.
func (c *CPU) execBitwiseImm(inst Instruction, op func(a, b uint32) uint32) error {
	imm := c.fetchImmediate(inst.Size)
	dst := c.Resolve(inst.DstMode, inst.DstReg, inst.Size)
	v, err := dst.Read()
	if err != nil {
		return err
	}
	result := NewValue(inst.Size, op(v.ZeroExtend(), imm))
	if err := dst.Write(result); err != nil {
		return err
	}
	c.SetFlagsNZ(result.ZeroExtend(), inst.Size)
	return nil
}
