package ir

import "errors"

// Sentinel errors raised by the IR layer. Callers match them with
// errors.Is; higher layers wrap them with context.
var (
	// ErrUnsupportedType is returned when a resolve requests a parameter
	// type the target role or backend writer cannot carry.
	ErrUnsupportedType = errors.New("unsupported parameter type")

	// ErrUnknownAutoConstant is returned when a uniform references an
	// auto-constant kind outside the closed catalogue.
	ErrUnknownAutoConstant = errors.New("unknown auto constant")

	// ErrUnresolvedLink is returned when a declared output is never
	// written or a varying has no producer.
	ErrUnresolvedLink = errors.New("unresolved stage link")
)

// ParameterHandle references a Parameter inside a ParameterArena.
// Handles are stable for the lifetime of the arena.
type ParameterHandle uint32

// InvalidHandle is the zero-value sentinel for "no parameter".
const InvalidHandle ParameterHandle = ^ParameterHandle(0)

// Type represents a parameter's primitive type.
type Type uint8

const (
	TypeUnknown Type = iota
	TypeFloat1
	TypeFloat2
	TypeFloat3
	TypeFloat4
	TypeInt1
	TypeInt2
	TypeInt3
	TypeInt4
	TypeUInt1
	TypeUInt2
	TypeUInt3
	TypeUInt4
	TypeBool1
	TypeBool2
	TypeBool3
	TypeBool4
	TypeMatrix2x2
	TypeMatrix2x4
	TypeMatrix3x3
	TypeMatrix3x4
	TypeMatrix4x4
	TypeSampler1D
	TypeSampler2D
	TypeSampler3D
	TypeSamplerCube
	TypeSampler2DArray
	TypeSamplerExternal
)

// BaseType represents the scalar base of a Type.
type BaseType uint8

const (
	BaseFloat BaseType = iota
	BaseInt
	BaseUInt
	BaseBool
	BaseSampler
)

// Base returns the scalar base of the type.
func (t Type) Base() BaseType {
	switch {
	case t >= TypeFloat1 && t <= TypeFloat4:
		return BaseFloat
	case t >= TypeInt1 && t <= TypeInt4:
		return BaseInt
	case t >= TypeUInt1 && t <= TypeUInt4:
		return BaseUInt
	case t >= TypeBool1 && t <= TypeBool4:
		return BaseBool
	case t.IsMatrix():
		return BaseFloat
	case t.IsSampler():
		return BaseSampler
	default:
		return BaseFloat
	}
}

// ComponentCount returns the number of scalar components, e.g. 4 for
// TypeFloat4, 12 for TypeMatrix3x4. Samplers report 1.
func (t Type) ComponentCount() int {
	switch t {
	case TypeFloat1, TypeInt1, TypeUInt1, TypeBool1:
		return 1
	case TypeFloat2, TypeInt2, TypeUInt2, TypeBool2:
		return 2
	case TypeFloat3, TypeInt3, TypeUInt3, TypeBool3:
		return 3
	case TypeFloat4, TypeInt4, TypeUInt4, TypeBool4:
		return 4
	case TypeMatrix2x2:
		return 4
	case TypeMatrix2x4:
		return 8
	case TypeMatrix3x3:
		return 9
	case TypeMatrix3x4:
		return 12
	case TypeMatrix4x4:
		return 16
	default:
		return 1
	}
}

// IsMatrix reports whether the type is a matrix type.
func (t Type) IsMatrix() bool {
	return t >= TypeMatrix2x2 && t <= TypeMatrix4x4
}

// IsSampler reports whether the type is a sampler variant.
func (t Type) IsSampler() bool {
	return t >= TypeSampler1D && t <= TypeSamplerExternal
}

// String returns the backend-neutral spelling of the type.
func (t Type) String() string {
	switch t {
	case TypeFloat1:
		return "float"
	case TypeFloat2:
		return "float2"
	case TypeFloat3:
		return "float3"
	case TypeFloat4:
		return "float4"
	case TypeInt1:
		return "int"
	case TypeInt2:
		return "int2"
	case TypeInt3:
		return "int3"
	case TypeInt4:
		return "int4"
	case TypeUInt1:
		return "uint"
	case TypeUInt2:
		return "uint2"
	case TypeUInt3:
		return "uint3"
	case TypeUInt4:
		return "uint4"
	case TypeBool1:
		return "bool"
	case TypeBool2:
		return "bool2"
	case TypeBool3:
		return "bool3"
	case TypeBool4:
		return "bool4"
	case TypeMatrix2x2:
		return "matrix2x2"
	case TypeMatrix2x4:
		return "matrix2x4"
	case TypeMatrix3x3:
		return "matrix3x3"
	case TypeMatrix3x4:
		return "matrix3x4"
	case TypeMatrix4x4:
		return "matrix4x4"
	case TypeSampler1D:
		return "sampler1D"
	case TypeSampler2D:
		return "sampler2D"
	case TypeSampler3D:
		return "sampler3D"
	case TypeSamplerCube:
		return "samplerCube"
	case TypeSampler2DArray:
		return "sampler2DArray"
	case TypeSamplerExternal:
		return "samplerExternalOES"
	default:
		return "unknown"
	}
}

// Semantic represents the coarse role of a parameter.
type Semantic uint8

const (
	SemanticUnknown Semantic = iota
	SemanticPosition
	SemanticBlendWeights
	SemanticBlendIndices
	SemanticNormal
	SemanticColor
	SemanticTexCoord
	SemanticBinormal
	SemanticTangent
	SemanticFrontFacing
)

// Content represents the fine-grained meaning of a parameter. Two
// parameters with the same content carry the same value; this is what
// makes resolve operations idempotent and contributors composable.
type Content uint16

const (
	ContentUnknown Content = iota

	ContentPositionObjectSpace
	ContentPositionWorldSpace
	ContentPositionViewSpace
	ContentPositionProjectiveSpace
	ContentPositionLightSpace

	ContentNormalObjectSpace
	ContentNormalWorldSpace
	ContentNormalViewSpace

	ContentTangentObjectSpace
	ContentTangentViewSpace
	ContentBinormalObjectSpace
	ContentBinormalViewSpace

	ContentColorDiffuse
	ContentColorSpecular

	ContentDepthViewSpace
	ContentDepthProjectiveSpace

	ContentBlendWeights
	ContentBlendIndices
	ContentFrontFacing
	ContentPointSpriteSize
)

// Indexed content blocks. Each block reserves eight slots, one per
// texture coordinate set or light index; use the accessor functions.
const (
	contentTextureCoordinateBase       Content = 100
	contentLightPositionViewSpaceBase  Content = 110
	contentLightDirectionViewSpaceBase Content = 120
)

// Custom content values are available to out-of-tree contributors.
const (
	ContentCustomBegin Content = 1000
	ContentCustomEnd   Content = 2000
)

// ContentTextureCoordinate returns the content tag for texture
// coordinate set n. n must be in [0,7].
func ContentTextureCoordinate(n int) Content {
	if n < 0 || n > 7 {
		panic("ir: texture coordinate set out of range")
	}
	return contentTextureCoordinateBase + Content(n)
}

// ContentLightPositionViewSpace returns the content tag for light n's
// view-space position. n must be in [0,7].
func ContentLightPositionViewSpace(n int) Content {
	if n < 0 || n > 7 {
		panic("ir: light index out of range")
	}
	return contentLightPositionViewSpaceBase + Content(n)
}

// ContentLightDirectionViewSpace returns the content tag for light n's
// view-space direction. n must be in [0,7].
func ContentLightDirectionViewSpace(n int) Content {
	if n < 0 || n > 7 {
		panic("ir: light index out of range")
	}
	return contentLightDirectionViewSpaceBase + Content(n)
}

// Variability is a bitmask describing when a uniform's value changes.
type Variability uint8

const (
	VariabilityGlobal Variability = 1 << iota
	VariabilityPerObject
	VariabilityLights
	VariabilityPassIteration

	VariabilityAll = VariabilityGlobal | VariabilityPerObject | VariabilityLights | VariabilityPassIteration
)

// Parameter is a typed named value. Parameters live in a ParameterArena
// and are referenced everywhere else by handle. The uniform-only
// fields (Variability, Auto, AutoExtra, PhysicalIndex, ElementSize)
// are zero for attributes, varyings and locals; Constant is non-nil
// only for literal constants.
type Parameter struct {
	Name      string
	Type      Type
	ArraySize int // 0 means not an array
	Semantic  Semantic
	Index     int // semantic index: texcoord set, color target, etc.
	Content   Content

	// Uniform-only fields.
	Variability Variability
	Auto        AutoConstant
	AutoExtra   AutoExtra

	// Constant is set for immutable literals.
	Constant *ConstantValue

	// PhysicalIndex and ElementSize are late-bound when the containing
	// Program is linked to a parameter block. -1 means unassigned.
	PhysicalIndex int
	ElementSize   int

	// Used marks parameters referenced by at least one atom.
	Used bool
}

// IsAuto reports whether the parameter is bound to an auto-constant.
func (p *Parameter) IsAuto() bool { return p.Auto != AutoUnknown }

// IsConstant reports whether the parameter is a literal constant.
func (p *Parameter) IsConstant() bool { return p.Constant != nil }

// IsSampler reports whether the parameter is a sampler.
func (p *Parameter) IsSampler() bool { return p.Type.IsSampler() }
