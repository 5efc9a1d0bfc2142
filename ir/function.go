package ir

import (
	"fmt"
	"sort"
	"strconv"
)

// Function is a shader entry point: three disjoint parameter lists
// (inputs, outputs, locals) and a map from group key to an
// insertion-ordered list of atoms. Parameters are owned by the
// enclosing arena and referenced by handle.
type Function struct {
	arena   *ParameterArena
	inputs  []ParameterHandle
	outputs []ParameterHandle
	locals  []ParameterHandle

	atoms  map[int][]FunctionAtom
	groups []int // sorted group keys, kept in lockstep with atoms
}

// NewFunction creates an empty function over the arena.
func NewFunction(arena *ParameterArena) *Function {
	return &Function{
		arena: arena,
		atoms: make(map[int][]FunctionAtom),
	}
}

// Arena returns the parameter arena backing the function.
func (f *Function) Arena() *ParameterArena { return f.arena }

// Inputs returns the input parameter handles in resolution order.
func (f *Function) Inputs() []ParameterHandle { return f.inputs }

// Outputs returns the output parameter handles in resolution order.
func (f *Function) Outputs() []ParameterHandle { return f.outputs }

// Locals returns the local parameter handles in resolution order.
func (f *Function) Locals() []ParameterHandle { return f.locals }

// ResolveInput returns the existing input parameter matching
// (content, type), else creates one. Sampler types cannot be stage
// inputs and fail with ErrUnsupportedType.
func (f *Function) ResolveInput(content Content, t Type) (ParameterHandle, error) {
	if t.IsSampler() {
		return InvalidHandle, fmt.Errorf("input %v: %w", t, ErrUnsupportedType)
	}
	return f.resolveIn(&f.inputs, 'i', content, t)
}

// ResolveOutput returns the existing output parameter matching
// (content, type), else creates one. Samplers and matrices cannot be
// stage outputs.
func (f *Function) ResolveOutput(content Content, t Type) (ParameterHandle, error) {
	if t.IsSampler() || t.IsMatrix() {
		return InvalidHandle, fmt.Errorf("output %v: %w", t, ErrUnsupportedType)
	}
	return f.resolveIn(&f.outputs, 'o', content, t)
}

// ResolveLocal returns the existing local matching (content, type),
// else creates one.
func (f *Function) ResolveLocal(content Content, t Type) (ParameterHandle, error) {
	if t.IsSampler() {
		return InvalidHandle, fmt.Errorf("local %v: %w", t, ErrUnsupportedType)
	}
	return f.resolveIn(&f.locals, 'l', content, t)
}

// ResolveInputFromOutput produces the stage-to-stage varying for a
// producer's output: the input whose (semantic, index, content, type)
// matches. The input keeps the producer's name so the two stages link
// by identifier.
func (f *Function) ResolveInputFromOutput(out *Parameter) (ParameterHandle, error) {
	if out.Type.IsSampler() {
		return InvalidHandle, fmt.Errorf("varying %v: %w", out.Type, ErrUnsupportedType)
	}
	for _, h := range f.inputs {
		p := f.arena.Get(h)
		if p.Semantic == out.Semantic && p.Index == out.Index &&
			p.Content == out.Content && p.Type == out.Type {
			return h, nil
		}
	}
	h := f.arena.Alloc(Parameter{
		Name:     out.Name,
		Type:     out.Type,
		Semantic: out.Semantic,
		Index:    out.Index,
		Content:  out.Content,
		Used:     true,
	})
	f.inputs = append(f.inputs, h)
	return h, nil
}

func (f *Function) resolveIn(list *[]ParameterHandle, prefix byte, content Content, t Type) (ParameterHandle, error) {
	for _, h := range *list {
		p := f.arena.Get(h)
		if p.Content == content && p.Type == t {
			p.Used = true
			return h, nil
		}
	}
	sem, index := contentSemantic(content)
	h := f.arena.Alloc(Parameter{
		Name:     deriveName(prefix, content, index),
		Type:     t,
		Semantic: sem,
		Index:    index,
		Content:  content,
		Used:     true,
	})
	*list = append(*list, h)
	return h, nil
}

// AddAtom appends an atom to its group bucket.
func (f *Function) AddAtom(a FunctionAtom) {
	key := a.GroupOrder()
	if _, ok := f.atoms[key]; !ok {
		i := sort.SearchInts(f.groups, key)
		f.groups = append(f.groups, 0)
		copy(f.groups[i+1:], f.groups[i:])
		f.groups[i] = key
	}
	f.atoms[key] = append(f.atoms[key], a)
}

// DeleteAtom removes the atom, reporting whether it was present.
func (f *Function) DeleteAtom(a FunctionAtom) bool {
	key := a.GroupOrder()
	bucket := f.atoms[key]
	for i, atom := range bucket {
		if atom == a {
			f.atoms[key] = append(bucket[:i], bucket[i+1:]...)
			if len(f.atoms[key]) == 0 {
				delete(f.atoms, key)
				gi := sort.SearchInts(f.groups, key)
				f.groups = append(f.groups[:gi], f.groups[gi+1:]...)
			}
			return true
		}
	}
	return false
}

// Atoms returns all atoms in flattened order: buckets concatenated by
// ascending group key, insertion order within a bucket.
func (f *Function) Atoms() []FunctionAtom {
	var out []FunctionAtom
	for _, key := range f.groups {
		out = append(out, f.atoms[key]...)
	}
	return out
}

// InvocationPrototypes returns the library-function prototypes the
// function invokes, sorted by FunctionInvocation.Compare with
// equal-comparing duplicates collapsed. Overloads of one name stay
// distinct entries.
func (f *Function) InvocationPrototypes() []*FunctionInvocation {
	var protos []*FunctionInvocation
	for _, atom := range f.Atoms() {
		if inv, ok := atom.(*FunctionInvocation); ok {
			protos = append(protos, inv)
		}
	}
	sort.SliceStable(protos, func(i, j int) bool {
		return protos[i].Compare(protos[j], f.arena) < 0
	})
	var out []*FunctionInvocation
	var prev *FunctionInvocation
	for _, inv := range protos {
		if prev != nil && inv.Compare(prev, f.arena) == 0 {
			continue
		}
		out = append(out, inv)
		prev = inv
	}
	return out
}

// AtomCount returns the total number of atoms.
func (f *Function) AtomCount() int {
	n := 0
	for _, bucket := range f.atoms {
		n += len(bucket)
	}
	return n
}

// contentSemantic infers the coarse semantic and semantic index for a
// content tag. Stage-to-stage varyings without a dedicated vertex
// attribute semantic travel as texture coordinates.
func contentSemantic(content Content) (Semantic, int) {
	switch {
	case content >= contentTextureCoordinateBase && content < contentTextureCoordinateBase+8:
		return SemanticTexCoord, int(content - contentTextureCoordinateBase)
	case content == ContentPositionObjectSpace || content == ContentPositionProjectiveSpace:
		return SemanticPosition, 0
	case content == ContentNormalObjectSpace:
		return SemanticNormal, 0
	case content == ContentTangentObjectSpace:
		return SemanticTangent, 0
	case content == ContentBinormalObjectSpace:
		return SemanticBinormal, 0
	case content == ContentColorDiffuse:
		return SemanticColor, 0
	case content == ContentColorSpecular:
		return SemanticColor, 1
	case content == ContentBlendWeights:
		return SemanticBlendWeights, 0
	case content == ContentBlendIndices:
		return SemanticBlendIndices, 0
	case content == ContentFrontFacing:
		return SemanticFrontFacing, 0
	default:
		return SemanticTexCoord, 0
	}
}

// deriveName builds the conventional parameter name: a direction
// prefix (i/o/l), a content base name and the semantic index.
func deriveName(prefix byte, content Content, index int) string {
	return string(prefix) + contentBaseName(content) + "_" + strconv.Itoa(index)
}

func contentBaseName(content Content) string {
	switch {
	case content >= contentTextureCoordinateBase && content < contentTextureCoordinateBase+8:
		return "Texcoord"
	case content >= contentLightPositionViewSpaceBase && content < contentLightPositionViewSpaceBase+8:
		return "LightPos" + strconv.Itoa(int(content-contentLightPositionViewSpaceBase))
	case content >= contentLightDirectionViewSpaceBase && content < contentLightDirectionViewSpaceBase+8:
		return "LightDir" + strconv.Itoa(int(content-contentLightDirectionViewSpaceBase))
	case content >= ContentCustomBegin && content < ContentCustomEnd:
		return "Custom" + strconv.Itoa(int(content-ContentCustomBegin))
	}
	switch content {
	case ContentPositionObjectSpace, ContentPositionProjectiveSpace:
		return "Pos"
	case ContentPositionWorldSpace:
		return "PosWorld"
	case ContentPositionViewSpace:
		return "PosView"
	case ContentPositionLightSpace:
		return "PosLight"
	case ContentNormalObjectSpace:
		return "Normal"
	case ContentNormalWorldSpace:
		return "NormalWorld"
	case ContentNormalViewSpace:
		return "NormalView"
	case ContentTangentObjectSpace:
		return "Tangent"
	case ContentTangentViewSpace:
		return "TangentView"
	case ContentBinormalObjectSpace:
		return "Binormal"
	case ContentBinormalViewSpace:
		return "BinormalView"
	case ContentColorDiffuse:
		return "Colour"
	case ContentColorSpecular:
		return "ColourSpec"
	case ContentDepthViewSpace:
		return "DepthView"
	case ContentDepthProjectiveSpace:
		return "Depth"
	case ContentBlendWeights:
		return "BlendWeights"
	case ContentBlendIndices:
		return "BlendIndices"
	case ContentFrontFacing:
		return "FrontFacing"
	case ContentPointSpriteSize:
		return "PointSize"
	default:
		return "Param"
	}
}
