package ir

import "math/bits"

// OperandSemantic is the data-flow direction of an operand.
type OperandSemantic uint8

const (
	OperandIn OperandSemantic = iota
	OperandOut
	OperandInOut
)

// String returns the direction spelling used in diagnostics.
func (s OperandSemantic) String() string {
	switch s {
	case OperandIn:
		return "in"
	case OperandOut:
		return "out"
	case OperandInOut:
		return "inout"
	default:
		return "unknown"
	}
}

// Mask selects components of a parameter. A mask with k bits set
// denotes a k-wide slice; MaskAll means the parameter's full arity.
type Mask uint8

const (
	MaskX Mask = 1 << iota
	MaskY
	MaskZ
	MaskW

	MaskXY   = MaskX | MaskY
	MaskXYZ  = MaskX | MaskY | MaskZ
	MaskXYZW = MaskX | MaskY | MaskZ | MaskW
	MaskAll  Mask = 0xFF
)

var swizzleLetters = [4]byte{'x', 'y', 'z', 'w'}

// Bits returns the number of selected components. MaskAll reports 0;
// callers substitute the parameter's natural arity.
func (m Mask) Bits() int {
	if m == MaskAll {
		return 0
	}
	return bits.OnesCount8(uint8(m & MaskXYZW))
}

// AppendSwizzle appends the ".xyzw" slice for the mask. MaskAll
// appends nothing.
func (m Mask) AppendSwizzle(b []byte) []byte {
	if m == MaskAll {
		return b
	}
	b = append(b, '.')
	for i := 0; i < 4; i++ {
		if m&(1<<i) != 0 {
			b = append(b, swizzleLetters[i])
		}
	}
	return b
}

// Operand wraps a parameter reference with direction, component mask
// and indirection level. The indirection level renders array/matrix
// subscription as nested brackets: as the level increases between
// neighbouring operands a '[' opens, as it decreases a ']' closes.
type Operand struct {
	Param       ParameterHandle
	Semantic    OperandSemantic
	Mask        Mask
	Indirection uint8
}

// In returns an IN operand selecting all components.
func In(p ParameterHandle) Operand {
	return Operand{Param: p, Semantic: OperandIn, Mask: MaskAll}
}

// Out returns an OUT operand selecting all components.
func Out(p ParameterHandle) Operand {
	return Operand{Param: p, Semantic: OperandOut, Mask: MaskAll}
}

// InOut returns an INOUT operand selecting all components.
func InOut(p ParameterHandle) Operand {
	return Operand{Param: p, Semantic: OperandInOut, Mask: MaskAll}
}

// WithMask returns a copy of the operand restricted to the mask.
func (o Operand) WithMask(m Mask) Operand {
	o.Mask = m
	return o
}

// AtLevel returns a copy of the operand at the given indirection level.
func (o Operand) AtLevel(level uint8) Operand {
	o.Indirection = level
	return o
}

// FloatCount returns the scalar width of the masked operand given the
// parameter's natural component count.
func (o Operand) FloatCount(natural int) int {
	if o.Mask == MaskAll {
		return natural
	}
	return o.Mask.Bits()
}
