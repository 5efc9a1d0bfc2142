package ir

import (
	"fmt"
	"sort"
)

// ProgramKind is the shader stage a Program targets.
type ProgramKind uint8

const (
	ProgramVertex ProgramKind = iota
	ProgramFragment
	ProgramGeometry
	ProgramDomain
	ProgramHull
	ProgramCompute
)

// String returns the stage name.
func (k ProgramKind) String() string {
	switch k {
	case ProgramVertex:
		return "vertex"
	case ProgramFragment:
		return "fragment"
	case ProgramGeometry:
		return "geometry"
	case ProgramDomain:
		return "domain"
	case ProgramHull:
		return "hull"
	case ProgramCompute:
		return "compute"
	default:
		return "unknown"
	}
}

// StageIndex returns the index used for uniform block bindings.
func (k ProgramKind) StageIndex() int { return int(k) }

type autoKey struct {
	kind  AutoConstant
	extra AutoExtra
}

type paramKey struct {
	name  string
	t     Type
	index int
	size  int
}

// Program is a single CPU-side shader program: exactly one entry
// Function named main, a uniform list, library dependencies and two
// compile-time flags.
type Program struct {
	kind  ProgramKind
	arena *ParameterArena
	entry *Function

	uniforms     []ParameterHandle
	constants    []ParameterHandle
	dependencies []string

	// PreprocessorDefines is passed through to the backend compiler.
	PreprocessorDefines string

	// SkeletalAnimationIncluded marks vertex programs that blend by
	// world matrix arrays.
	SkeletalAnimationIncluded bool

	// ColumnMajorMatrices is set by default; instanced rendering clears
	// it because the per-instance matrix arrives in row-major texcoords.
	ColumnMajorMatrices bool

	autoMemo  map[autoKey]ParameterHandle
	paramMemo map[paramKey]ParameterHandle
}

// NewProgram creates an empty program of the given kind over the arena.
func NewProgram(kind ProgramKind, arena *ParameterArena) *Program {
	return &Program{
		kind:                kind,
		arena:               arena,
		entry:               NewFunction(arena),
		ColumnMajorMatrices: true,
		autoMemo:            make(map[autoKey]ParameterHandle),
		paramMemo:           make(map[paramKey]ParameterHandle),
	}
}

// Kind returns the program's stage.
func (p *Program) Kind() ProgramKind { return p.kind }

// EntryFunction returns the program's main function.
func (p *Program) EntryFunction() *Function { return p.entry }

// Arena returns the parameter arena shared with the ProgramSet.
func (p *Program) Arena() *ParameterArena { return p.arena }

// Uniforms returns the uniform handles in resolution order.
func (p *Program) Uniforms() []ParameterHandle { return p.uniforms }

// ResolveAutoParameter returns the uniform bound to the auto constant
// with the given extra data, creating it on first resolution. Repeated
// resolutions with the same key return the same handle.
func (p *Program) ResolveAutoParameter(kind AutoConstant, extra AutoExtra) (ParameterHandle, error) {
	if !kind.Valid() {
		return InvalidHandle, fmt.Errorf("auto constant %d: %w", kind, ErrUnknownAutoConstant)
	}
	key := autoKey{kind: kind, extra: extra}
	if h, ok := p.autoMemo[key]; ok {
		return h, nil
	}
	// Array kinds keep the plain catalogue name; the extra data is a
	// count, not an index, and lands in ArraySize instead.
	arraySize := 0
	name := kind.ParameterName(extra)
	if kind.ExtraKind() == ExtraInt && isArrayAuto(kind) {
		arraySize = int(extra.Int)
		name = kind.Name()
	}
	h := p.arena.Alloc(Parameter{
		Name:        name,
		Type:        kind.Type(),
		ArraySize:   arraySize,
		Variability: autoVariability(kind),
		Auto:        kind,
		AutoExtra:   extra,
		ElementSize: kind.ElementCount(),
		Used:        true,
	})
	p.autoMemo[key] = h
	p.uniforms = append(p.uniforms, h)
	return h, nil
}

// ResolveParameter returns the uniform with the given type, semantic
// index, name and array size, creating it on first resolution.
func (p *Program) ResolveParameter(t Type, index int, variability Variability, name string, arraySize int) (ParameterHandle, error) {
	if t == TypeUnknown {
		return InvalidHandle, fmt.Errorf("parameter %q: %w", name, ErrUnsupportedType)
	}
	key := paramKey{name: name, t: t, index: index, size: arraySize}
	if h, ok := p.paramMemo[key]; ok {
		return h, nil
	}
	h := p.arena.Alloc(Parameter{
		Name:        name,
		Type:        t,
		Index:       index,
		ArraySize:   arraySize,
		Variability: variability,
		ElementSize: t.ComponentCount(),
		Used:        true,
	})
	p.paramMemo[key] = h
	p.uniforms = append(p.uniforms, h)
	return h, nil
}

// ResolveConstant returns a named literal constant parameter.
func (p *Program) ResolveConstant(name string, value *ConstantValue) ParameterHandle {
	key := paramKey{name: name, t: value.Type(), size: 0}
	if h, ok := p.paramMemo[key]; ok {
		return h
	}
	h := p.arena.Alloc(Parameter{
		Name:        name,
		Type:        value.Type(),
		Constant:    value,
		ElementSize: value.Type().ComponentCount(),
		Used:        true,
	})
	p.paramMemo[key] = h
	p.constants = append(p.constants, h)
	return h
}

// Constants returns the literal constant handles in resolution order.
func (p *Program) Constants() []ParameterHandle { return p.constants }

// AddDependency records a library the generated source includes.
// Duplicates collapse; order of first addition is preserved.
func (p *Program) AddDependency(lib string) {
	for _, d := range p.dependencies {
		if d == lib {
			return
		}
	}
	p.dependencies = append(p.dependencies, lib)
}

// Dependencies returns the declared library names in addition order.
func (p *Program) Dependencies() []string { return p.dependencies }

// UniformDescriptor is one entry of a program's uniform manifest, the
// reflection contract handed to the GPU program system.
type UniformDescriptor struct {
	Name        string
	Type        Type
	ArraySize   int
	Variability Variability
	Auto        AutoConstant // AutoUnknown when not auto-bound
	AutoExtra   AutoExtra
}

// UniformManifest returns the manifest for all resolved uniforms, in
// resolution order.
func (p *Program) UniformManifest() []UniformDescriptor {
	out := make([]UniformDescriptor, 0, len(p.uniforms))
	for _, h := range p.uniforms {
		u := p.arena.Get(h)
		out = append(out, UniformDescriptor{
			Name:        u.Name,
			Type:        u.Type,
			ArraySize:   u.ArraySize,
			Variability: u.Variability,
			Auto:        u.Auto,
			AutoExtra:   u.AutoExtra,
		})
	}
	return out
}

// AssignPhysicalIndices lays the non-sampler uniforms out in a flat
// parameter block, assigning each its physical index. Returns the
// total float-equivalent size of the block.
func (p *Program) AssignPhysicalIndices() int {
	next := 0
	for _, h := range p.uniforms {
		u := p.arena.Get(h)
		if u.IsSampler() {
			continue
		}
		u.PhysicalIndex = next
		count := u.ElementSize
		if u.ArraySize > 0 {
			count *= u.ArraySize
		}
		next += count
	}
	return next
}

// isArrayAuto reports whether the kind's integer extra data is an
// array count rather than an index.
func isArrayAuto(kind AutoConstant) bool {
	switch kind {
	case AutoWorldMatrixArray3x4, AutoWorldMatrixArray, AutoWorldDualQuaternionArray2x4,
		AutoLightDiffuseColourArray, AutoLightSpecularColourArray,
		AutoLightDiffusePowerScaledArray, AutoLightSpecularPowerScaledArray,
		AutoLightAttenuationArray, AutoSpotlightParamsArray,
		AutoLightPositionArray, AutoLightPositionObjectSpaceArray, AutoLightPositionViewSpaceArray,
		AutoLightDirectionArray, AutoLightDirectionObjectSpaceArray, AutoLightDirectionViewSpaceArray,
		AutoLightDistanceObjectSpaceArray, AutoLightPowerScaleArray, AutoLightCastsShadowsArray,
		AutoShadowSceneDepthRangeArray,
		AutoTextureViewProjMatrixArray, AutoTextureWorldViewProjMatrixArray,
		AutoSpotlightViewProjMatrixArray, AutoSpotlightWorldViewProjMatrixArray:
		return true
	default:
		return false
	}
}

// autoVariability maps catalogue kinds to when their values change.
func autoVariability(kind AutoConstant) Variability {
	switch kind {
	case AutoWorldMatrix, AutoInverseWorldMatrix, AutoTransposeWorldMatrix, AutoInverseTransposeWorldMatrix,
		AutoWorldViewMatrix, AutoInverseWorldViewMatrix, AutoTransposeWorldViewMatrix, AutoInverseTransposeWorldViewMatrix,
		AutoWorldViewProjMatrix, AutoInverseWorldViewProjMatrix, AutoTransposeWorldViewProjMatrix, AutoInverseTransposeWorldViewProjMatrix,
		AutoNormalMatrix, AutoWorldMatrixArray3x4, AutoWorldMatrixArray, AutoWorldDualQuaternionArray2x4,
		AutoCameraPositionObjectSpace, AutoLightPositionObjectSpace, AutoLightPositionObjectSpaceArray,
		AutoLightDirectionObjectSpace, AutoLightDirectionObjectSpaceArray,
		AutoLightDistanceObjectSpace, AutoLightDistanceObjectSpaceArray,
		AutoLODCameraPositionObjectSpace, AutoAnimationParametric:
		return VariabilityPerObject
	case AutoLightDiffuseColour, AutoLightSpecularColour,
		AutoLightDiffusePowerScaled, AutoLightSpecularPowerScaled,
		AutoLightAttenuation, AutoSpotlightParams,
		AutoLightPosition, AutoLightPositionViewSpace,
		AutoLightDirection, AutoLightDirectionViewSpace,
		AutoLightPowerScale, AutoLightCastsShadows,
		AutoLightDiffuseColourArray, AutoLightSpecularColourArray,
		AutoLightDiffusePowerScaledArray, AutoLightSpecularPowerScaledArray,
		AutoLightAttenuationArray, AutoSpotlightParamsArray,
		AutoLightPositionArray, AutoLightPositionViewSpaceArray,
		AutoLightDirectionArray, AutoLightDirectionViewSpaceArray,
		AutoLightPowerScaleArray, AutoLightCastsShadowsArray,
		AutoLightCount, AutoLightCustom,
		AutoSpotlightViewProjMatrix, AutoSpotlightViewProjMatrixArray,
		AutoSpotlightWorldViewProjMatrix, AutoSpotlightWorldViewProjMatrixArray:
		return VariabilityLights
	case AutoPassNumber, AutoPassIterationNumber:
		return VariabilityPassIteration
	default:
		return VariabilityGlobal
	}
}

// ProgramSet is the vertex+fragment pair generated for one pass. Both
// programs share one parameter arena; the arena dies with the set.
type ProgramSet struct {
	arena    *ParameterArena
	vertex   *Program
	fragment *Program
}

// NewProgramSet creates a fresh set with empty vertex and fragment
// programs over a shared arena.
func NewProgramSet() *ProgramSet {
	arena := NewParameterArena()
	return &ProgramSet{
		arena:    arena,
		vertex:   NewProgram(ProgramVertex, arena),
		fragment: NewProgram(ProgramFragment, arena),
	}
}

// Arena returns the shared parameter arena.
func (s *ProgramSet) Arena() *ParameterArena { return s.arena }

// Vertex returns the vertex program.
func (s *ProgramSet) Vertex() *Program { return s.vertex }

// Fragment returns the fragment program.
func (s *ProgramSet) Fragment() *Program { return s.fragment }

// SortedGroups returns the distinct group keys used by fn, ascending.
// Exposed for diagnostics and tests.
func SortedGroups(fn *Function) []int {
	keys := append([]int(nil), fn.groups...)
	sort.Ints(keys)
	return keys
}
