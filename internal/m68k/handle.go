package m68k

import "fmt"

// EAMode is the effective-address sum type from spec.md §3: data/address
// direct, the indirect family, absolute short/long, PC-relative, and
// immediate.
type EAMode uint8

const (
	EADataDirect EAMode = iota
	EAAddrDirect
	EAAddrIndirect
	EAPostInc
	EAPreDec
	EADisp
	EAIndex
	EAAbsShort
	EAAbsLong
	EAPCDisp
	EAPCIndex
	EAImmediate
)

// decodeEA maps the classical 3-bit mode + 3-bit register fields to an
// EAMode, following the mode-7 sub-register special cases (absolute/
// PC-relative/immediate) exactly as GetEffectiveAddress in cpu_m68k.go
// does.
func decodeEA(mode, reg uint16) (EAMode, int) {
	switch mode {
	case 0:
		return EADataDirect, int(reg)
	case 1:
		return EAAddrDirect, int(reg)
	case 2:
		return EAAddrIndirect, int(reg)
	case 3:
		return EAPostInc, int(reg)
	case 4:
		return EAPreDec, int(reg)
	case 5:
		return EADisp, int(reg)
	case 6:
		return EAIndex, int(reg)
	default: // mode 7
		switch reg {
		case 0:
			return EAAbsShort, 0
		case 1:
			return EAAbsLong, 0
		case 2:
			return EAPCDisp, 0
		case 3:
			return EAPCIndex, 0
		case 4:
			return EAImmediate, 0
		default:
			return EAImmediate, int(reg)
		}
	}
}

// handleKind tags what a Handle refers to.
type handleKind uint8

const (
	handleDataReg handleKind = iota
	handleAddrReg
	handleMem
)

// Handle is the uniform register-slot/memory-address accessor from
// spec.md §4.1 — ephemeral, created per operand and used within a single
// instruction. Grounded on original_source/src/memory.rs's MemoryHandle,
// collapsed from its three-way {reg,ptr,mem} tag to a two-way tag that
// dispatches through the owning CPU (spec.md §9's rewrite guidance).
type Handle struct {
	cpu  *CPU
	kind handleKind
	reg  int
	addr uint32
	size Size
}

func regHandle(cpu *CPU, kind handleKind, reg int, size Size) Handle {
	return Handle{cpu: cpu, kind: kind, reg: reg, size: size}
}

func memHandle(cpu *CPU, addr uint32, size Size) Handle {
	return Handle{cpu: cpu, kind: handleMem, addr: addr, size: size}
}

func (h Handle) Size() Size { return h.size }
func (h Handle) IsMemory() bool { return h.kind == handleMem }
func (h Handle) Addr() uint32 { return h.addr }

// Read returns the handle's current value at its own width.
func (h Handle) Read() (Value, error) {
	switch h.kind {
	case handleDataReg:
		return NewValue(h.size, h.cpu.D[h.reg]), nil
	case handleAddrReg:
		return NewValue(h.size, h.cpu.AddrReg(h.reg)), nil
	default:
		return h.cpu.Bus.Read(h.addr, h.size)
	}
}

// Write stores v through the handle. A byte/word write to a data-register
// slot preserves the untouched high bits; a byte/word write to an address
// register instead sign-extends to 32 bits, per spec.md §4.1's explicit
// carve-out ("the 68000 always sign-extends word writes to 32 bits" for
// address registers).
func (h Handle) Write(v Value) error {
	switch h.kind {
	case handleDataReg:
		if v.Size() == SizeLong {
			h.cpu.D[h.reg] = v.Long()
			return nil
		}
		h.cpu.D[h.reg] = (h.cpu.D[h.reg] &^ v.Size().Mask()) | v.ZeroExtend()
		return nil
	case handleAddrReg:
		if v.Size() == SizeLong {
			h.cpu.SetAddrReg(h.reg, v.Long())
			return nil
		}
		h.cpu.SetAddrReg(h.reg, uint32(v.SignExtend()))
		return nil
	default:
		return h.cpu.Bus.Write(h.addr, v)
	}
}

// Offset repositions a memory handle by delta bytes; register handles
// reject offsetting, matching spec.md §4.1.
func (h Handle) Offset(delta int32) Handle {
	if h.kind != handleMem {
		panic("m68k: cannot offset a register handle")
	}
	return memHandle(h.cpu, uint32(int32(h.addr)+delta), h.size)
}

func (h Handle) String() string {
	switch h.kind {
	case handleDataReg:
		return fmt.Sprintf("D%d", h.reg)
	case handleAddrReg:
		return fmt.Sprintf("A%d", h.reg)
	default:
		return fmt.Sprintf("[%#08x]", h.addr)
	}
}
