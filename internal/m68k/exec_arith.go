package m68k

// execArith dispatches the arithmetic and comparison families: ADD/ADDA/
// ADDI/ADDQ/ADDX, the SUB counterparts, NEG/NEGX, CMP/CMPA/CMPI/CMPM,
// MULU/MULS, DIVU/DIVS, and CHK. Grounded on cpu_m68k.go's per-opcode
// arithmetic handlers, reworked around the typed Add/Sub/Cmp helpers in
// value.go so every variant shares one CCR derivation.
func (c *CPU) execArith(inst Instruction, startPC uint32) error {
	switch inst.Op {
	case OpADD:
		return c.execAddSub(inst, true)
	case OpSUB:
		return c.execAddSub(inst, false)
	case OpADDA:
		return c.execAddSubA(inst, true)
	case OpSUBA:
		return c.execAddSubA(inst, false)
	case OpADDI:
		return c.execAddSubI(inst, true)
	case OpSUBI:
		return c.execAddSubI(inst, false)
	case OpADDQ:
		return c.execAddSubQ(inst, true)
	case OpSUBQ:
		return c.execAddSubQ(inst, false)
	case OpADDX:
		return c.execAddSubX(inst, true)
	case OpSUBX:
		return c.execAddSubX(inst, false)
	case OpNEG:
		return c.execNeg(inst)
	case OpNEGX:
		return c.execNegX(inst)
	case OpCMP:
		return c.execCmp(inst)
	case OpCMPA:
		return c.execCmpA(inst)
	case OpCMPI:
		return c.execCmpI(inst)
	case OpCMPM:
		return c.execCmpM(inst)
	case OpMULU:
		return c.execMulu(inst)
	case OpMULS:
		return c.execMuls(inst)
	case OpDIVU:
		return c.execDivu(inst)
	case OpDIVS:
		return c.execDivs(inst)
	case OpCHK:
		return c.execCHK(inst)
	}
	return nil
}

// execAddSub handles the register-destination ADD/SUB forms: Dir selects
// which of Dn/ea is the destination, matching the opmode 0-2 (ea op Dn ->
// Dn) vs 4-6 (Dn op ea -> ea) split decodeGroup9OrD produces.
func (c *CPU) execAddSub(inst Instruction, isAdd bool) error {
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

	a, b, dst := dnV.ZeroExtend(), eaV.ZeroExtend(), dnH
	if inst.Dir {
		a, b, dst = eaV.ZeroExtend(), dnV.ZeroExtend(), eaH
	}
	var result Value
	var delta CCRDelta
	if isAdd {
		result, delta = Add(size, a, b)
	} else {
		result, delta = Sub(size, a, b)
	}
	if err := dst.Write(result); err != nil {
		return err
	}
	c.ApplyCCR(delta)
	return nil
}

// execAddSubA handles ADDA/SUBA: the destination is always an address
// register at full 32-bit width, word sources sign-extend, and CCR is
// never touched.
func (c *CPU) execAddSubA(inst Instruction, isAdd bool) error {
	eaH := c.Resolve(inst.SrcMode, inst.SrcReg, inst.Size)
	eaV, err := eaH.Read()
	if err != nil {
		return err
	}
	var ev uint32
	if inst.Size == SizeWord {
		ev = uint32(eaV.SignExtend())
	} else {
		ev = eaV.Long()
	}
	an := c.AddrReg(inst.Reg)
	if isAdd {
		c.SetAddrReg(inst.Reg, an+ev)
	} else {
		c.SetAddrReg(inst.Reg, an-ev)
	}
	return nil
}

// execAddSubI handles ADDI/SUBI: the immediate word/long follows the
// opcode and is fetched before the destination's own extension words.
func (c *CPU) execAddSubI(inst Instruction, isAdd bool) error {
	imm := c.fetchImmediate(inst.Size)
	dst := c.Resolve(inst.DstMode, inst.DstReg, inst.Size)
	v, err := dst.Read()
	if err != nil {
		return err
	}
	var result Value
	var delta CCRDelta
	if isAdd {
		result, delta = Add(inst.Size, v.ZeroExtend(), imm)
	} else {
		result, delta = Sub(inst.Size, v.ZeroExtend(), imm)
	}
	if err := dst.Write(result); err != nil {
		return err
	}
	c.ApplyCCR(delta)
	return nil
}

// execAddSubQ handles ADDQ/SUBQ; An destinations behave like ADDA/SUBA
// (full 32-bit, CCR untouched), per spec.md §4.3.
func (c *CPU) execAddSubQ(inst Instruction, isAdd bool) error {
	if inst.DstMode == EAAddrDirect {
		an := c.AddrReg(inst.DstReg)
		if isAdd {
			c.SetAddrReg(inst.DstReg, an+uint32(inst.Data))
		} else {
			c.SetAddrReg(inst.DstReg, an-uint32(inst.Data))
		}
		return nil
	}
	dst := c.Resolve(inst.DstMode, inst.DstReg, inst.Size)
	v, err := dst.Read()
	if err != nil {
		return err
	}
	var result Value
	var delta CCRDelta
	if isAdd {
		result, delta = Add(inst.Size, v.ZeroExtend(), uint32(inst.Data))
	} else {
		result, delta = Sub(inst.Size, v.ZeroExtend(), uint32(inst.Data))
	}
	if err := dst.Write(result); err != nil {
		return err
	}
	c.ApplyCCR(delta)
	return nil
}

// execAddSubX handles ADDX/SUBX in both their register-direct and
// predecrement-memory forms, folding in the X-flag carry/borrow and the
// "Z only ever cleared, never forced set" rule real extended arithmetic
// follows.
func (c *CPU) execAddSubX(inst Instruction, isAdd bool) error {
	size := inst.Size
	var srcV, dstV uint32
	var write func(uint32) error

	if inst.Reg2Mem {
		srcAddr := c.AddrReg(inst.Reg2) - uint32(size)
		c.SetAddrReg(inst.Reg2, srcAddr)
		sv, err := c.Bus.Read(srcAddr, size)
		if err != nil {
			return err
		}
		dstAddr := c.AddrReg(inst.Reg) - uint32(size)
		c.SetAddrReg(inst.Reg, dstAddr)
		dv, err := c.Bus.Read(dstAddr, size)
		if err != nil {
			return err
		}
		srcV, dstV = sv.ZeroExtend(), dv.ZeroExtend()
		write = func(res uint32) error { return c.Bus.Write(dstAddr, NewValue(size, res)) }
	} else {
		srcV = NewValue(size, c.D[inst.Reg2]).ZeroExtend()
		dstV = NewValue(size, c.D[inst.Reg]).ZeroExtend()
		reg := inst.Reg
		write = func(res uint32) error {
			if size == SizeLong {
				c.D[reg] = res
			} else {
				c.D[reg] = (c.D[reg] &^ size.Mask()) | (res & size.Mask())
			}
			return nil
		}
	}

	xIn := c.FlagX()
	var result Value
	var delta CCRDelta
	if isAdd {
		result, delta = addxCompute(size, dstV, srcV, xIn)
	} else {
		result, delta = subxCompute(size, dstV, srcV, xIn)
	}
	if delta.Z {
		delta.HasZ = false // a zero result leaves Z exactly as it was
	}
	if err := write(result.ZeroExtend()); err != nil {
		return err
	}
	c.ApplyCCR(delta)
	return nil
}

func addxCompute(size Size, a, b uint32, xIn bool) (Value, CCRDelta) {
	am, bm := a&size.Mask(), b&size.Mask()
	var extra uint32
	if xIn {
		extra = 1
	}
	sum := uint64(am) + uint64(bm) + uint64(extra)
	result := uint32(sum) & size.Mask()
	carry := sum > uint64(size.Mask())
	as, bs := int64(int32(signExtendRaw(size, am))), int64(int32(signExtendRaw(size, bm)))
	signedSum := as + bs + int64(extra)
	overflow := signedSum > int64(size.SignBit())-1 || signedSum < -int64(size.SignBit())
	n, _ := flagsFromResult(size, result)
	return NewValue(size, result), CCRDelta{
		C: carry, V: overflow, Z: result == 0, N: n, X: carry,
		HasC: true, HasV: true, HasZ: true, HasN: true, HasX: true,
	}
}

func subxCompute(size Size, a, b uint32, xIn bool) (Value, CCRDelta) {
	am, bm := a&size.Mask(), b&size.Mask()
	var extra int64
	if xIn {
		extra = 1
	}
	diff := int64(am) - int64(bm) - extra
	result := uint32(diff) & size.Mask()
	borrow := diff < 0
	as, bs := int64(int32(signExtendRaw(size, am))), int64(int32(signExtendRaw(size, bm)))
	signedDiff := as - bs - extra
	overflow := signedDiff > int64(size.SignBit())-1 || signedDiff < -int64(size.SignBit())
	n, _ := flagsFromResult(size, result)
	return NewValue(size, result), CCRDelta{
		C: borrow, V: overflow, Z: result == 0, N: n, X: borrow,
		HasC: true, HasV: true, HasZ: true, HasN: true, HasX: true,
	}
}

func (c *CPU) execNeg(inst Instruction) error {
	dst := c.Resolve(inst.DstMode, inst.DstReg, inst.Size)
	v, err := dst.Read()
	if err != nil {
		return err
	}
	result, delta := Sub(inst.Size, 0, v.ZeroExtend())
	if err := dst.Write(result); err != nil {
		return err
	}
	c.ApplyCCR(delta)
	return nil
}

func (c *CPU) execNegX(inst Instruction) error {
	dst := c.Resolve(inst.DstMode, inst.DstReg, inst.Size)
	v, err := dst.Read()
	if err != nil {
		return err
	}
	result, delta := subxCompute(inst.Size, 0, v.ZeroExtend(), c.FlagX())
	if delta.Z {
		delta.HasZ = false
	}
	if err := dst.Write(result); err != nil {
		return err
	}
	c.ApplyCCR(delta)
	return nil
}

func (c *CPU) execCmp(inst Instruction) error {
	eaH := c.Resolve(inst.SrcMode, inst.SrcReg, inst.Size)
	eaV, err := eaH.Read()
	if err != nil {
		return err
	}
	dn := NewValue(inst.Size, c.D[inst.Reg])
	c.ApplyCCR(Cmp(inst.Size, dn.ZeroExtend(), eaV.ZeroExtend()))
	return nil
}

func (c *CPU) execCmpA(inst Instruction) error {
	eaH := c.Resolve(inst.SrcMode, inst.SrcReg, inst.Size)
	eaV, err := eaH.Read()
	if err != nil {
		return err
	}
	var ev uint32
	if inst.Size == SizeWord {
		ev = uint32(eaV.SignExtend())
	} else {
		ev = eaV.Long()
	}
	c.ApplyCCR(Cmp(SizeLong, c.AddrReg(inst.Reg), ev))
	return nil
}

func (c *CPU) execCmpI(inst Instruction) error {
	imm := c.fetchImmediate(inst.Size)
	dst := c.Resolve(inst.DstMode, inst.DstReg, inst.Size)
	v, err := dst.Read()
	if err != nil {
		return err
	}
	c.ApplyCCR(Cmp(inst.Size, v.ZeroExtend(), imm))
	return nil
}

func (c *CPU) execCmpM(inst Instruction) error {
	dstH := c.Resolve(EAPostInc, inst.Reg, inst.Size)
	dstV, err := dstH.Read()
	if err != nil {
		return err
	}
	srcH := c.Resolve(EAPostInc, inst.Reg2, inst.Size)
	srcV, err := srcH.Read()
	if err != nil {
		return err
	}
	c.ApplyCCR(Cmp(inst.Size, dstV.ZeroExtend(), srcV.ZeroExtend()))
	return nil
}

func (c *CPU) execMulu(inst Instruction) error {
	eaH := c.Resolve(inst.SrcMode, inst.SrcReg, SizeWord)
	v, err := eaH.Read()
	if err != nil {
		return err
	}
	result := uint32(c.D[inst.Reg]&0xFFFF) * uint32(v.Word())
	c.D[inst.Reg] = result
	c.SetFlagN(result&0x80000000 != 0)
	c.SetFlagZ(result == 0)
	c.SetFlagV(false)
	c.SetFlagC(false)
	return nil
}

func (c *CPU) execMuls(inst Instruction) error {
	eaH := c.Resolve(inst.SrcMode, inst.SrcReg, SizeWord)
	v, err := eaH.Read()
	if err != nil {
		return err
	}
	a := int32(int16(c.D[inst.Reg]))
	b := int32(int16(v.Word()))
	result := uint32(a * b)
	c.D[inst.Reg] = result
	c.SetFlagN(result&0x80000000 != 0)
	c.SetFlagZ(result == 0)
	c.SetFlagV(false)
	c.SetFlagC(false)
	return nil
}

func (c *CPU) execDivu(inst Instruction) error {
	eaH := c.Resolve(inst.SrcMode, inst.SrcReg, SizeWord)
	v, err := eaH.Read()
	if err != nil {
		return err
	}
	divisor := uint32(v.Word())
	if divisor == 0 {
		c.Raise(VecZeroDivide, c.PC)
		return nil
	}
	dividend := c.D[inst.Reg]
	q, r := dividend/divisor, dividend%divisor
	if q > 0xFFFF {
		c.SetFlagV(true)
		return nil
	}
	c.D[inst.Reg] = r<<16 | (q & 0xFFFF)
	c.SetFlagN(q&0x8000 != 0)
	c.SetFlagZ(q == 0)
	c.SetFlagV(false)
	c.SetFlagC(false)
	return nil
}

func (c *CPU) execDivs(inst Instruction) error {
	eaH := c.Resolve(inst.SrcMode, inst.SrcReg, SizeWord)
	v, err := eaH.Read()
	if err != nil {
		return err
	}
	divisor := int32(int16(v.Word()))
	if divisor == 0 {
		c.Raise(VecZeroDivide, c.PC)
		return nil
	}
	dividend := int32(c.D[inst.Reg])
	q, r := dividend/divisor, dividend%divisor
	if q > 32767 || q < -32768 {
		c.SetFlagV(true)
		return nil
	}
	c.D[inst.Reg] = uint32(uint16(r))<<16 | uint32(uint16(q))
	c.SetFlagN(q < 0)
	c.SetFlagZ(q == 0)
	c.SetFlagV(false)
	c.SetFlagC(false)
	return nil
}

func (c *CPU) execCHK(inst Instruction) error {
	eaH := c.Resolve(inst.SrcMode, inst.SrcReg, SizeWord)
	v, err := eaH.Read()
	if err != nil {
		return err
	}
	bound := int32(int16(v.Word()))
	dn := int32(int16(c.D[inst.Reg]))
	c.SetFlagZ(dn == 0)
	c.SetFlagN(dn < 0)
	if dn < 0 || dn > bound {
		c.Raise(VecCHK, c.PC)
	}
	return nil
}

// fetchImmediate reads the immediate operand following an opcode word at
// the given width, the shape ADDI/SUBI/ANDI/ORI/EORI/CMPI all share.
func (c *CPU) fetchImmediate(size Size) uint32 {
	switch size {
	case SizeByte:
		return uint32(c.Fetch16() & 0xFF)
	case SizeWord:
		return uint32(c.Fetch16())
	default:
		return c.Fetch32()
	}
}
