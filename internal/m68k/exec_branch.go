package m68k

// execBranch dispatches Bcc/BRA/BSR, DBcc, Scc, JMP/JSR/RTS/RTR, and
// LINK/UNLK. Grounded on cpu_m68k.go's branch/stack-frame handlers,
// reworked to fetch each mnemonic's own extension words explicitly since
// the decoder never advances PC past the opcode.
func (c *CPU) execBranch(inst Instruction, startPC uint32) error {
	switch inst.Op {
	case OpBRA, OpBSR, OpBcc:
		return c.execBcc(inst, startPC)
	case OpDBcc:
		return c.execDBcc(inst)
	case OpScc:
		dst := c.Resolve(inst.DstMode, inst.DstReg, SizeByte)
		var v uint8
		if c.CheckCondition(inst.Cond) {
			v = 0xFF
		}
		return dst.Write(ByteValue(v))
	case OpJMP:
		c.PC = c.EffectiveAddr(inst.SrcMode, inst.SrcReg)
		return nil
	case OpJSR:
		target := c.EffectiveAddr(inst.SrcMode, inst.SrcReg)
		sp := c.AddrReg(7) - LongSize
		if err := c.Bus.WriteL(sp, c.PC); err != nil {
			return err
		}
		c.SetAddrReg(7, sp)
		c.PC = target
		return nil
	case OpRTS:
		sp := c.AddrReg(7)
		pc, err := c.Bus.ReadL(sp)
		if err != nil {
			return err
		}
		c.SetAddrReg(7, sp+LongSize)
		c.PC = pc
		return nil
	case OpRTR:
		sp := c.AddrReg(7)
		ccr, err := c.Bus.ReadW(sp)
		if err != nil {
			return err
		}
		sp += WordSize
		pc, err := c.Bus.ReadL(sp)
		if err != nil {
			return err
		}
		sp += LongSize
		c.SR = (c.SR &^ SRCCR) | (ccr & SRCCR)
		c.SetAddrReg(7, sp)
		c.PC = pc
		return nil
	case OpLINK:
		return c.execLink(inst)
	case OpUNLK:
		newSP := c.AddrReg(inst.Reg)
		v, err := c.Bus.ReadL(newSP)
		if err != nil {
			return err
		}
		c.SetAddrReg(7, newSP+LongSize)
		c.SetAddrReg(inst.Reg, v)
		return nil
	}
	return nil
}

// execBcc handles BRA/BSR/Bcc's shared displacement encoding: the 8-bit
// field embedded in the opcode, or (0x00/0xFF) a trailing word/long
// displacement, relative to the address right after the opcode word.
func (c *CPU) execBcc(inst Instruction, startPC uint32) error {
	base := startPC + WordSize
	var disp int32
	switch inst.Data {
	case 0:
		disp = int32(int16(c.Fetch16()))
	case -1:
		disp = int32(c.Fetch32())
	default:
		disp = inst.Data
	}
	target := uint32(int32(base) + disp)

	if inst.Op == OpBSR {
		sp := c.AddrReg(7) - LongSize
		if err := c.Bus.WriteL(sp, c.PC); err != nil {
			return err
		}
		c.SetAddrReg(7, sp)
		c.PC = target
		return nil
	}
	if inst.Op == OpBRA || c.CheckCondition(inst.Cond) {
		c.PC = target
	}
	return nil
}

// execDBcc always consumes its trailing displacement word, even when the
// condition is already true and the loop won't continue.
func (c *CPU) execDBcc(inst Instruction) error {
	base := c.PC
	disp := int32(int16(c.Fetch16()))
	if c.CheckCondition(inst.Cond) {
		return nil
	}
	d := int16(c.D[inst.Reg]) - 1
	c.D[inst.Reg] = (c.D[inst.Reg] &^ 0xFFFF) | uint32(uint16(d))
	if d != -1 {
		c.PC = uint32(int32(base) + disp)
	}
	return nil
}

func (c *CPU) execLink(inst Instruction) error {
	an := inst.Reg
	sp := c.AddrReg(7) - LongSize
	if err := c.Bus.WriteL(sp, c.AddrReg(an)); err != nil {
		return err
	}
	c.SetAddrReg(7, sp)
	c.SetAddrReg(an, sp)
	disp := int32(int16(c.Fetch16()))
	c.SetAddrReg(7, uint32(int32(sp)+disp))
	return nil
}
