package rtss

import "github.com/gogpu/rtss/ir"

// LayerOp is the declarative blend operation of a texture unit.
type LayerOp uint8

const (
	LayerReplace LayerOp = iota
	LayerAdd
	LayerModulate
	LayerAlphaBlend
)

// String returns the operation name used in fingerprints.
func (op LayerOp) String() string {
	switch op {
	case LayerReplace:
		return "replace"
	case LayerAdd:
		return "add"
	case LayerModulate:
		return "modulate"
	case LayerAlphaBlend:
		return "alpha_blend"
	default:
		return "unknown"
	}
}

// TextureUnit is one texture layer of a pass.
type TextureUnit struct {
	// Name is the texture resource name, e.g. "wall.png".
	Name string
	// Op blends this layer over the accumulated colour.
	Op LayerOp
	// Sampler is the sampler type; the zero value means 2D.
	Sampler ir.Type
	// TexCoordSet selects the texture coordinate set, usually 0.
	TexCoordSet int
}

// SamplerType returns the unit's sampler type, defaulting to 2D.
func (u TextureUnit) SamplerType() ir.Type {
	if u.Sampler == ir.TypeUnknown {
		return ir.TypeSampler2D
	}
	return u.Sampler
}

// FogMode is the fixed-function fog equation.
type FogMode uint8

const (
	FogNone FogMode = iota
	FogLinear
	FogExp
	FogExp2
)

// String returns the mode name used in fingerprints.
func (m FogMode) String() string {
	switch m {
	case FogNone:
		return "NONE"
	case FogLinear:
		return "LINEAR"
	case FogExp:
		return "EXP"
	case FogExp2:
		return "EXP2"
	default:
		return "unknown"
	}
}

// CompareFunc is a comparison operation, used by the alpha test.
type CompareFunc uint8

const (
	CompareAlwaysPass CompareFunc = iota
	CompareAlwaysFail
	CompareLess
	CompareLessEqual
	CompareEqual
	CompareNotEqual
	CompareGreaterEqual
	CompareGreater
)

// String returns the function name used in fingerprints.
func (f CompareFunc) String() string {
	switch f {
	case CompareAlwaysPass:
		return "always_pass"
	case CompareAlwaysFail:
		return "always_fail"
	case CompareLess:
		return "less"
	case CompareLessEqual:
		return "less_equal"
	case CompareEqual:
		return "equal"
	case CompareNotEqual:
		return "not_equal"
	case CompareGreaterEqual:
		return "greater_equal"
	case CompareGreater:
		return "greater"
	default:
		return "unknown"
	}
}

// ColourValue is an RGBA colour.
type ColourValue [4]float32

// Pass is the read-only fixed-function-equivalent state the material
// system hands to the generator. Contributors inspect it to decide
// applicability and configuration; PreAddToRenderState may mutate the
// destination copy, never the source.
type Pass struct {
	Ambient   ColourValue
	Diffuse   ColourValue
	Specular  ColourValue
	Emissive  ColourValue
	Shininess float32

	// VertexColourTracking routes the vertex colour attribute into the
	// surface diffuse term.
	VertexColourTracking bool

	LightingEnabled   bool
	PointLights       int
	DirectionalLights int
	SpotLights        int

	TextureUnits []TextureUnit

	FogOverride bool
	FogMode     FogMode
	FogColour   ColourValue
	FogDensity  float32
	FogStart    float32
	FogEnd      float32

	AlphaRejectFunc  CompareFunc
	AlphaRejectValue float32

	PointSpritesEnabled bool
	PointSize           float32
}

// LightCount returns the total number of lights of all types.
func (p *Pass) LightCount() int {
	return p.PointLights + p.DirectionalLights + p.SpotLights
}

// Clone returns a deep copy; contributors mutate the destination copy
// during pipeline assembly.
func (p *Pass) Clone() *Pass {
	dup := *p
	dup.TextureUnits = append([]TextureUnit(nil), p.TextureUnits...)
	return &dup
}
