package m68k

// Execute carries out one decoded Instruction against c. startPC is the
// address of the opcode word itself (before decode fetched it or any
// extension words), used as the faulting address for illegal-instruction
// and privilege-violation exceptions. When Execute is called c.PC points
// just past the opcode word; each handler fetches its own extension words,
// so by the time TRAP/CHK/TRAPV raise their exception c.PC is the address
// of the next instruction.
//
// Execution is a single large dispatch over Op (spec.md §9: "Instruction as
// tagged variant... execution is a single large match"), split across the
// exec_*.go files by instruction family purely for readability.
func (c *CPU) Execute(inst Instruction, startPC uint32) {
	if privileged(inst.Op) && !c.Supervisor() {
		c.Raise(VecPrivilege, startPC)
		return
	}

	var err error
	switch inst.Op {
	case OpIllegal:
		c.Raise(VecIllegal, startPC)
		return

	case OpNOP:
		// no operation

	case OpMOVE, OpMOVEA, OpMOVEQ, OpMOVEM, OpMOVEP, OpLEA, OpPEA, OpEXG, OpSWAP, OpEXT, OpCLR,
		OpMOVEtoCCR, OpMOVEtoSR, OpMOVEfromSR, OpMOVEtoUSP, OpMOVEfromUSP:
		err = c.execMove(inst)

	case OpADD, OpADDA, OpADDI, OpADDQ, OpADDX,
		OpSUB, OpSUBA, OpSUBI, OpSUBQ, OpSUBX,
		OpNEG, OpNEGX, OpCMP, OpCMPA, OpCMPI, OpCMPM,
		OpMULU, OpMULS, OpDIVU, OpDIVS, OpCHK:
		err = c.execArith(inst, startPC)

	case OpAND, OpANDI, OpANDICCR, OpANDISR,
		OpOR, OpORI, OpORICCR, OpORISR,
		OpEOR, OpEORI, OpEORICCR, OpEORISR,
		OpNOT, OpTST:
		err = c.execLogic(inst)

	case OpBCHG, OpBCLR, OpBSET, OpBTST, OpTAS:
		err = c.execBits(inst)

	case OpASL, OpASR, OpLSL, OpLSR, OpROL, OpROR, OpROXL, OpROXR:
		err = c.execShift(inst)

	case OpABCD, OpSBCD:
		err = c.execBCD(inst)

	case OpNBCD:
		err = c.execNBCD(inst)

	case OpBRA, OpBSR, OpBcc, OpDBcc, OpScc, OpJMP, OpJSR, OpRTS, OpRTR, OpLINK, OpUNLK:
		err = c.execBranch(inst, startPC)

	case OpTRAP:
		c.RaiseTrap(inst.Data, c.PC)
		return
	case OpTRAPV:
		if c.FlagV() {
			c.Raise(VecTRAPV, c.PC)
		}
		return
	case OpRTE:
		if rerr := c.Return(); rerr != nil {
			c.busFault(rerr, startPC)
		}
		return
	case OpRESET:
		// RESET has no effect beyond its privilege check: the core has no
		// device list, and the emulator loop does not reset devices either.
	case OpSTOP:
		// STOP's immediate SR operand follows the opcode word; the decoder
		// only ever sees the opcode, so it's fetched here.
		c.SR = c.Fetch16()
		c.Stopped = true

	default:
		c.Raise(VecIllegal, startPC)
		return
	}

	if err != nil {
		c.busFault(err, startPC)
	}
}

func (c *CPU) busFault(err error, startPC uint32) {
	if _, ok := err.(*BusError); ok {
		c.Raise(VecBusError, startPC)
		return
	}
	c.halted = true
}

// privileged reports whether an Op may only execute in supervisor mode.
func privileged(op Op) bool {
	switch op {
	case OpRESET, OpSTOP, OpRTE, OpMOVEtoSR, OpMOVEtoUSP, OpMOVEfromUSP,
		OpANDISR, OpORISR, OpEORISR:
		return true
	default:
		return false
	}
}
