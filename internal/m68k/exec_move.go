package m68k

// execMove carries out MOVE, MOVEA, MOVEQ, MOVEM, LEA, PEA, EXG, SWAP, EXT,
// CLR, and the USP/SR/CCR transfer forms. Grounded on cpu_m68k.go's
// ExecuteMove/ExecuteMOVEM/ExecuteLEA handlers, reworked onto the Handle
// abstraction and the two-phase decode/execute split.
func (c *CPU) execMove(inst Instruction) error {
	switch inst.Op {
	case OpMOVE:
		src := c.Resolve(inst.SrcMode, inst.SrcReg, inst.Size)
		v, err := src.Read()
		if err != nil {
			return err
		}
		dst := c.Resolve(inst.DstMode, inst.DstReg, inst.Size)
		if err := dst.Write(v); err != nil {
			return err
		}
		c.SetFlagsNZ(v.ZeroExtend(), inst.Size)
		return nil

	case OpMOVEA:
		src := c.Resolve(inst.SrcMode, inst.SrcReg, inst.Size)
		v, err := src.Read()
		if err != nil {
			return err
		}
		if inst.Size == SizeWord {
			c.SetAddrReg(inst.Reg, uint32(v.SignExtend()))
		} else {
			c.SetAddrReg(inst.Reg, v.Long())
		}
		return nil

	case OpMOVEQ:
		data := uint32(inst.Data)
		c.D[inst.Reg] = data
		c.SetFlagsNZ(data, SizeLong)
		return nil

	case OpMOVEM:
		return c.execMOVEM(inst)

	case OpMOVEP:
		return c.execMOVEP(inst)

	case OpLEA:
		c.SetAddrReg(inst.Reg, c.EffectiveAddr(inst.SrcMode, inst.SrcReg))
		return nil

	case OpPEA:
		addr := c.EffectiveAddr(inst.SrcMode, inst.SrcReg)
		sp := c.AddrReg(7) - LongSize
		if err := c.Bus.WriteL(sp, addr); err != nil {
			return err
		}
		c.SetAddrReg(7, sp)
		return nil

	case OpEXG:
		switch {
		case inst.Dir: // Dx,Ay
			d, a := c.D[inst.Reg], c.AddrReg(inst.Reg2)
			c.D[inst.Reg] = a
			c.SetAddrReg(inst.Reg2, d)
		case inst.Reg2Mem: // Ax,Ay
			a1, a2 := c.AddrReg(inst.Reg), c.AddrReg(inst.Reg2)
			c.SetAddrReg(inst.Reg, a2)
			c.SetAddrReg(inst.Reg2, a1)
		default: // Dx,Dy
			d1, d2 := c.D[inst.Reg], c.D[inst.Reg2]
			c.D[inst.Reg] = d2
			c.D[inst.Reg2] = d1
		}
		return nil

	case OpSWAP:
		v := c.D[inst.Reg]
		v = v<<16 | v>>16
		c.D[inst.Reg] = v
		c.SetFlagsNZ(v, SizeLong)
		return nil

	case OpEXT:
		return c.execEXT(inst)

	case OpCLR:
		dst := c.Resolve(inst.DstMode, inst.DstReg, inst.Size)
		if err := dst.Write(NewValue(inst.Size, 0)); err != nil {
			return err
		}
		c.SetFlagsNZ(0, inst.Size)
		return nil

	case OpMOVEtoCCR:
		src := c.Resolve(inst.SrcMode, inst.SrcReg, SizeWord)
		v, err := src.Read()
		if err != nil {
			return err
		}
		c.SR = (c.SR &^ SRCCR) | (v.Word() & SRCCR)
		return nil

	case OpMOVEtoSR:
		src := c.Resolve(inst.SrcMode, inst.SrcReg, SizeWord)
		v, err := src.Read()
		if err != nil {
			return err
		}
		c.SR = v.Word()
		return nil

	case OpMOVEfromSR:
		dst := c.Resolve(inst.DstMode, inst.DstReg, SizeWord)
		return dst.Write(WordValue(c.SR))

	case OpMOVEtoUSP:
		c.USP = c.AddrReg(inst.Reg)
		return nil

	case OpMOVEfromUSP:
		c.SetAddrReg(inst.Reg, c.USP)
		return nil
	}
	return nil
}

func (c *CPU) execEXT(inst Instruction) error {
	switch inst.Size {
	case SizeWord:
		b := int8(c.D[inst.Reg])
		v := uint32(c.D[inst.Reg]&0xFFFF0000) | uint32(uint16(int16(b)))
		c.D[inst.Reg] = v
		c.SetFlagsNZ(v&0xFFFF, SizeWord)
	default: // SizeLong
		w := int16(c.D[inst.Reg])
		v := uint32(int32(w))
		c.D[inst.Reg] = v
		c.SetFlagsNZ(v, SizeLong)
	}
	return nil
}

// regSlot maps a MOVEM mask position (0..15, normal D0..D7,A0..A7 order) to
// the register it names.
func regSlot(i int) (isAddr bool, num int) {
	if i < 8 {
		return false, i
	}
	return true, i - 8
}

func (c *CPU) getMovemReg(isAddr bool, num int) uint32 {
	if isAddr {
		return c.AddrReg(num)
	}
	return c.D[num]
}

func (c *CPU) setMovemReg(isAddr bool, num int, v uint32, size Size) {
	if size == SizeWord {
		v = uint32(int32(int16(v)))
	}
	if isAddr {
		c.SetAddrReg(num, v)
		return
	}
	c.D[num] = v
}

// execMOVEM implements register-list load/store, including the
// predecrement destination's reversed mask order and the pointer-advances-
// after-write / decrements-before-write rules spec.md §4.3 specifies.
func (c *CPU) execMOVEM(inst Instruction) error {
	mask := c.Fetch16()
	size := inst.Size

	if inst.Dir { // registers -> memory
		if inst.DstMode == EAPreDec {
			addr := c.AddrReg(inst.DstReg)
			for i := 0; i < 16; i++ {
				if mask&(1<<uint(i)) == 0 {
					continue
				}
				isAddr, num := regSlot(15 - i)
				addr -= uint32(size)
				if err := c.Bus.Write(addr, NewValue(size, c.getMovemReg(isAddr, num))); err != nil {
					return err
				}
			}
			c.SetAddrReg(inst.DstReg, addr)
			return nil
		}
		addr := c.EffectiveAddr(inst.DstMode, inst.DstReg)
		for i := 0; i < 16; i++ {
			if mask&(1<<uint(i)) == 0 {
				continue
			}
			isAddr, num := regSlot(i)
			if err := c.Bus.Write(addr, NewValue(size, c.getMovemReg(isAddr, num))); err != nil {
				return err
			}
			addr += uint32(size)
		}
		return nil
	}

	// memory -> registers
	if inst.SrcMode == EAPostInc {
		addr := c.AddrReg(inst.SrcReg)
		for i := 0; i < 16; i++ {
			if mask&(1<<uint(i)) == 0 {
				continue
			}
			v, err := c.Bus.Read(addr, size)
			if err != nil {
				return err
			}
			isAddr, num := regSlot(i)
			c.setMovemReg(isAddr, num, v.ZeroExtend(), size)
			addr += uint32(size)
		}
		c.SetAddrReg(inst.SrcReg, addr)
		return nil
	}
	addr := c.EffectiveAddr(inst.SrcMode, inst.SrcReg)
	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		v, err := c.Bus.Read(addr, size)
		if err != nil {
			return err
		}
		isAddr, num := regSlot(i)
		c.setMovemReg(isAddr, num, v.ZeroExtend(), size)
		addr += uint32(size)
	}
	return nil
}

// execMOVEP transfers a data register to/from alternate bytes of memory
// starting at An+d16, high-order byte first, per spec.md §4.2 tier 7 and
// original_source/src/instructions.rs:476's MOVEP body. Word size moves
// 2 bytes and leaves Dn's upper word untouched; long size moves 4 bytes
// and replaces Dn entirely.
func (c *CPU) execMOVEP(inst Instruction) error {
	disp := int16(c.Fetch16())
	addr := uint32(int32(c.AddrReg(inst.Reg2)) + int32(disp))
	n := 2
	if inst.Size == SizeLong {
		n = 4
	}

	if inst.Dir { // Dn -> memory
		v := c.D[inst.Reg]
		shift := uint(n-1) * 8
		for i := 0; i < n; i++ {
			if err := c.Bus.WriteB(addr, uint8(v>>shift)); err != nil {
				return err
			}
			addr += 2
			shift -= 8
		}
		return nil
	}

	// memory -> Dn
	var v uint32
	for i := 0; i < n; i++ {
		b, err := c.Bus.ReadB(addr)
		if err != nil {
			return err
		}
		v = v<<8 | uint32(b)
		addr += 2
	}
	if inst.Size == SizeWord {
		c.D[inst.Reg] = (c.D[inst.Reg] &^ 0xFFFF) | v
	} else {
		c.D[inst.Reg] = v
	}
	return nil
}
