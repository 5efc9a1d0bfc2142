package rtss

import "github.com/gogpu/rtss/ir"

// Execution-order stages. The integer scale is the contract between
// independently authored contributors: a contributor that must run
// just after a well-known stage uses STAGE + 1.
const (
	OrderPreProcess  = 0
	OrderTransform   = 100
	OrderColour      = 200
	OrderLighting    = 300
	OrderTexturing   = 400
	OrderFog         = 500
	OrderPostProcess = 600
	OrderAlphaTest   = 1000

	// Vertex sub-scale late hook.
	OrderVSPostProcess = 2000
)

// Fragment sub-scale. Fragment atoms use these as group keys so colour
// initialization, sampling, blending, fog and the alpha test flatten
// in the right order inside the fragment main.
const (
	OrderFSColourBegin = 100
	OrderFSSampling    = 150
	OrderFSTexturing   = 200
	OrderFSColourEnd   = 300
	OrderFSFog         = 400
	OrderFSPostProcess = 500
	OrderFSAlphaTest   = 1000
)

// SubRenderState is a contributor: a pluggable module that mutates a
// ProgramSet at a declared pipeline stage.
type SubRenderState interface {
	// Type returns the stable string tag identifying the contributor
	// kind.
	Type() string

	// ExecutionOrder returns the coarse stage the contributor runs at.
	ExecutionOrder() int

	// StateKey digests the configuration-sensitive state into a stable
	// string; it feeds the fingerprint and the canonical ordering.
	StateKey() string

	// PreAddToRenderState inspects the source pass and reports whether
	// the contributor applies. It may mutate the destination pass,
	// e.g. append texture units.
	PreAddToRenderState(src, dst *Pass) bool

	// CreateCPUSubPrograms resolves parameters and appends atoms to
	// the set's vertex and/or fragment functions at the contributor's
	// assigned stages, and declares library dependencies.
	CreateCPUSubPrograms(set *ir.ProgramSet) error

	// CopyFrom deep-copies configuration from a sibling of the same
	// type.
	CopyFrom(other SubRenderState)
}

// SubRenderStateFactory creates contributors of one type for the
// generator's registry.
type SubRenderStateFactory interface {
	Type() string
	Create() SubRenderState
}

// factoryFunc adapts a constructor function to the factory interface.
type factoryFunc struct {
	typeTag string
	create  func() SubRenderState
}

func (f factoryFunc) Type() string           { return f.typeTag }
func (f factoryFunc) Create() SubRenderState { return f.create() }

// FactoryOf wraps a constructor as a SubRenderStateFactory.
func FactoryOf(typeTag string, create func() SubRenderState) SubRenderStateFactory {
	return factoryFunc{typeTag: typeTag, create: create}
}
