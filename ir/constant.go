package ir

import "strconv"

// ConstantValue is the payload of a literal constant parameter. Kind
// selects which fields are meaningful. Values stringify to the
// backend-neutral vecN(...) prose; writers map that to their language.
type ConstantValue struct {
	Kind ConstantKind
	F    [4]float32
	I    int32
}

// ConstantKind selects the literal form of a ConstantValue.
type ConstantKind uint8

const (
	ConstantFloat ConstantKind = iota
	ConstantVec2
	ConstantVec3
	ConstantVec4
	ConstantInt
)

// Float returns a scalar float literal.
func Float(v float32) *ConstantValue {
	return &ConstantValue{Kind: ConstantFloat, F: [4]float32{v}}
}

// Vec2 returns a two-component float literal.
func Vec2(x, y float32) *ConstantValue {
	return &ConstantValue{Kind: ConstantVec2, F: [4]float32{x, y}}
}

// Vec3 returns a three-component float literal.
func Vec3(x, y, z float32) *ConstantValue {
	return &ConstantValue{Kind: ConstantVec3, F: [4]float32{x, y, z}}
}

// Vec4 returns a four-component float literal.
func Vec4(x, y, z, w float32) *ConstantValue {
	return &ConstantValue{Kind: ConstantVec4, F: [4]float32{x, y, z, w}}
}

// Int returns an integer literal.
func Int(v int32) *ConstantValue {
	return &ConstantValue{Kind: ConstantInt, I: v}
}

// Type returns the IR type of the literal.
func (c *ConstantValue) Type() Type {
	switch c.Kind {
	case ConstantFloat:
		return TypeFloat1
	case ConstantVec2:
		return TypeFloat2
	case ConstantVec3:
		return TypeFloat3
	case ConstantVec4:
		return TypeFloat4
	case ConstantInt:
		return TypeInt1
	default:
		return TypeUnknown
	}
}

// AppendString appends the deterministic literal form to b. Floats
// always carry a decimal point so they never read as integers.
func (c *ConstantValue) AppendString(b []byte) []byte {
	switch c.Kind {
	case ConstantFloat:
		return appendFloat(b, c.F[0])
	case ConstantVec2:
		b = append(b, "vec2("...)
		b = appendFloat(b, c.F[0])
		b = append(b, ',')
		b = appendFloat(b, c.F[1])
		return append(b, ')')
	case ConstantVec3:
		b = append(b, "vec3("...)
		for i := 0; i < 3; i++ {
			if i > 0 {
				b = append(b, ',')
			}
			b = appendFloat(b, c.F[i])
		}
		return append(b, ')')
	case ConstantVec4:
		b = append(b, "vec4("...)
		for i := 0; i < 4; i++ {
			if i > 0 {
				b = append(b, ',')
			}
			b = appendFloat(b, c.F[i])
		}
		return append(b, ')')
	case ConstantInt:
		return strconv.AppendInt(b, int64(c.I), 10)
	default:
		return b
	}
}

// String returns the literal form.
func (c *ConstantValue) String() string {
	return string(c.AppendString(nil))
}

// appendFloat formats with enough precision to round-trip a float32
// and guarantees a decimal point.
func appendFloat(b []byte, v float32) []byte {
	start := len(b)
	b = strconv.AppendFloat(b, float64(v), 'f', -1, 32)
	for _, c := range b[start:] {
		if c == '.' {
			return b
		}
	}
	return append(b, ".0"...)
}
