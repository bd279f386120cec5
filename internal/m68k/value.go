// Package m68k implements the core of a Motorola 68000 instruction decoder,
// execution engine, memory bus, and exception/interrupt dispatch.
package m68k

import "encoding/binary"

// Operand widths, named and valued per the teacher's M68K_*_SIZE constants.
const (
	ByteSize = 1
	WordSize = 2
	LongSize = 4

	ByteSizeBits = 8
	WordSizeBits = 16
	LongSizeBits = 32
)

// Size identifies an operand width.
type Size uint8

const (
	SizeByte Size = ByteSize
	SizeWord Size = WordSize
	SizeLong Size = LongSize
)

func (s Size) String() string {
	switch s {
	case SizeByte:
		return "B"
	case SizeWord:
		return "W"
	case SizeLong:
		return "L"
	default:
		return "?"
	}
}

// Mask returns the bit mask covering exactly this width within a uint32.
func (s Size) Mask() uint32 {
	switch s {
	case SizeByte:
		return 0xFF
	case SizeWord:
		return 0xFFFF
	default:
		return 0xFFFFFFFF
	}
}

// SignBit returns the mask of the sign bit for this width.
func (s Size) SignBit() uint32 {
	switch s {
	case SizeByte:
		return 0x80
	case SizeWord:
		return 0x8000
	default:
		return 0x80000000
	}
}

// Value is a tagged Byte/Word/Long result, the Go equivalent of the
// original source's OpResult enum (original_source/src/memory.rs).
type Value struct {
	size Size
	raw  uint32
}

func ByteValue(v uint8) Value  { return Value{SizeByte, uint32(v)} }
func WordValue(v uint16) Value { return Value{SizeWord, uint32(v)} }
func LongValue(v uint32) Value { return Value{SizeLong, v} }

func NewValue(size Size, v uint32) Value { return Value{size, v & size.Mask()} }

func (v Value) Size() Size { return v.size }

// ZeroExtend widens the value to 32 bits without sign propagation.
func (v Value) ZeroExtend() uint32 { return v.raw & v.size.Mask() }

// SignExtend widens the value to 32 bits, propagating the sign bit.
func (v Value) SignExtend() int32 {
	m := v.raw & v.size.Mask()
	if m&v.size.SignBit() != 0 {
		switch v.size {
		case SizeByte:
			return int32(int8(m))
		case SizeWord:
			return int32(int16(m))
		}
	}
	return int32(m)
}

func (v Value) Byte() uint8  { return uint8(v.raw) }
func (v Value) Word() uint16 { return uint16(v.raw) }
func (v Value) Long() uint32 { return v.raw }

// CCRDelta carries the condition-code updates produced by a typed
// arithmetic operation; a nil-like "unset" field (tracked via the bool
// pairs below) means "leave this bit alone" — CMP, for instance, never
// touches X.
type CCRDelta struct {
	C, V, Z, N, X       bool
	HasC, HasV, HasX    bool
	HasZ, HasN, HasTest bool
}

// flagsFromResult derives N and Z from a result already masked to size.
func flagsFromResult(size Size, result uint32) (n, z bool) {
	m := result & size.Mask()
	return m&size.SignBit() != 0, m == 0
}

// Add computes a+b at the receiver's width and returns the typed sum plus
// the CCR deltas an ADD-family instruction applies (X=C).
func Add(size Size, a, b uint32) (Value, CCRDelta) {
	am, bm := a&size.Mask(), b&size.Mask()
	sum := uint64(am) + uint64(bm)
	result := uint32(sum) & size.Mask()
	carry := sum > uint64(size.Mask())
	as, bs := int64(int32(signExtendRaw(size, am))), int64(int32(signExtendRaw(size, bm)))
	signedSum := as + bs
	overflow := signedSum > int64(size.SignBit())-1 || signedSum < -int64(size.SignBit())
	n, z := flagsFromResult(size, result)
	return NewValue(size, result), CCRDelta{
		C: carry, V: overflow, Z: z, N: n, X: carry,
		HasC: true, HasV: true, HasZ: true, HasN: true, HasX: true,
	}
}

// Sub computes a-b at the receiver's width (SUB-family: X=C=borrow).
func Sub(size Size, a, b uint32) (Value, CCRDelta) {
	am, bm := a&size.Mask(), b&size.Mask()
	diff := int64(am) - int64(bm)
	result := uint32(diff) & size.Mask()
	borrow := diff < 0
	as, bs := int64(int32(signExtendRaw(size, am))), int64(int32(signExtendRaw(size, bm)))
	signedDiff := as - bs
	overflow := signedDiff > int64(size.SignBit())-1 || signedDiff < -int64(size.SignBit())
	n, z := flagsFromResult(size, result)
	return NewValue(size, result), CCRDelta{
		C: borrow, V: overflow, Z: z, N: n, X: borrow,
		HasC: true, HasV: true, HasZ: true, HasN: true, HasX: true,
	}
}

// Cmp computes a-b for comparison purposes: same N/Z/V/C as Sub but never
// touches X, matching spec.md's "CMP sets N/Z/V/C but not X".
func Cmp(size Size, a, b uint32) CCRDelta {
	_, d := Sub(size, a, b)
	d.HasX = false
	return d
}

func signExtendRaw(size Size, m uint32) uint32 {
	if m&size.SignBit() != 0 {
		switch size {
		case SizeByte:
			return uint32(int32(int8(m)))
		case SizeWord:
			return uint32(int32(int16(m)))
		}
	}
	return m
}

// beUint16/beUint32/putBEUint16/putBEUint32 centralize big-endian packing
// so no call site assumes host endianness (spec.md §9's "Big-endian
// arithmetic" design note). These wrap encoding/binary, matching the
// teacher's own binary.BigEndian usage in LoadProgramBytes.
func beUint16(b []byte) uint16 { return binary.BigEndian.Uint16(b) }
func beUint32(b []byte) uint32 { return binary.BigEndian.Uint32(b) }
func putBEUint16(b []byte, v uint16) { binary.BigEndian.PutUint16(b, v) }
func putBEUint32(b []byte, v uint32) { binary.BigEndian.PutUint32(b, v) }
