// Package rtss synthesizes vertex and fragment shader programs on
// demand from declarative pass state. Programs are composed from
// order-sensitive contributors (sub render states), cached against a
// structural fingerprint and handed to an opaque GPU compile seam.
//
// Structure:
//
//	ir/        parameter model, function-atom IR, programs
//	glsl/      GLSL writer backend
//	hlsl/      HLSL writer backend
//	cmd/rtssc  command line shader generator
//
// Pipeline: pass state → ordered contributor list → each contributor
// resolves parameters and appends atoms into a ProgramSet → linkage
// validation → writer emission → fingerprint-keyed cache → GPU
// compile → application to the pass.
//
// Entry point:
//
//	gen := rtss.NewGenerator(rtss.DefaultGeneratorOptions())
//	rs := gen.CreateRenderState(pass)
//	out, err := gen.Generate(pass, rs)
package rtss

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/rtss/glsl"
	"github.com/gogpu/rtss/hlsl"
	"github.com/gogpu/rtss/ir"
)

// TargetLanguage selects the writer backend.
type TargetLanguage uint8

const (
	LanguageGLSL TargetLanguage = iota
	LanguageHLSL
)

// GeneratorOptions configure a Generator.
type GeneratorOptions struct {
	// Language selects the emitted shader language.
	Language TargetLanguage
	// GLSL holds writer options for the GLSL backend.
	GLSL glsl.Options
	// HLSL holds writer options for the HLSL backend.
	HLSL hlsl.Options
	// Libraries resolves dependency names; nil means an empty pool.
	Libraries *LibraryPool
}

// DefaultGeneratorOptions returns GLSL emission with default writer
// options.
func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{
		Language: LanguageGLSL,
		GLSL:     glsl.DefaultOptions(),
		HLSL:     hlsl.DefaultOptions(),
	}
}

// GeneratedProgramSet is the output of one generation: the CPU-side
// program pair, its emitted sources and the uniform manifests.
type GeneratedProgramSet struct {
	Fingerprint Fingerprint
	Set         *ir.ProgramSet

	VertexSource   string
	FragmentSource string

	VertexUniforms   []ir.UniformDescriptor
	FragmentUniforms []ir.UniformDescriptor

	// VertexInfo/FragmentInfo carry backend binding metadata for the
	// GLSL backend; they are zero for HLSL (see HLSLInfo).
	VertexInfo   glsl.TranslationInfo
	FragmentInfo glsl.TranslationInfo

	// VertexHLSLInfo/FragmentHLSLInfo are set by the HLSL backend.
	VertexHLSLInfo   hlsl.TranslationInfo
	FragmentHLSLInfo hlsl.TranslationInfo
}

// Generator is the explicit context for runtime shader generation: a
// contributor factory registry, a program cache and a library pool.
type Generator struct {
	options   GeneratorOptions
	factories map[string]SubRenderStateFactory
	cache     *ProgramCache
	libraries *LibraryPool
}

// NewGenerator creates a generator with the built-in contributor
// factories registered.
func NewGenerator(options GeneratorOptions) *Generator {
	libs := options.Libraries
	if libs == nil {
		libs = NewLibraryPool()
	}
	g := &Generator{
		options:   options,
		factories: make(map[string]SubRenderStateFactory),
		cache:     NewProgramCache(),
		libraries: libs,
	}
	for _, f := range builtinFactories() {
		g.factories[f.Type()] = f
	}
	return g
}

// builtinFactories returns the contributors the core always ships.
func builtinFactories() []SubRenderStateFactory {
	return []SubRenderStateFactory{
		FactoryOf(TransformType, func() SubRenderState { return NewTransformSRS() }),
		FactoryOf(FogType, func() SubRenderState { return NewFogSRS() }),
		FactoryOf(PerPixelLightingType, func() SubRenderState { return NewPerPixelLightingSRS() }),
		FactoryOf(TexturingType, func() SubRenderState { return NewTexturingSRS() }),
		FactoryOf(GBufferType, func() SubRenderState { return NewGBufferSRS() }),
		FactoryOf(TriplanarType, func() SubRenderState { return NewTriplanarSRS() }),
		FactoryOf(AlphaTestType, func() SubRenderState { return NewAlphaTestSRS() }),
	}
}

// Cache returns the generator's program cache.
func (g *Generator) Cache() *ProgramCache { return g.cache }

// Libraries returns the generator's library pool.
func (g *Generator) Libraries() *LibraryPool { return g.libraries }

// RegisterFactory adds a contributor factory. The cache must be
// drained first: cached programs may embed contributors of the type
// being (re)registered.
func (g *Generator) RegisterFactory(f SubRenderStateFactory) error {
	if !g.cache.Drained() {
		return fmt.Errorf("register %s: %w", f.Type(), ErrCacheNotDrained)
	}
	g.factories[f.Type()] = f
	return nil
}

// UnregisterFactory removes a contributor factory under the same
// drained-cache requirement.
func (g *Generator) UnregisterFactory(typeTag string) error {
	if !g.cache.Drained() {
		return fmt.Errorf("unregister %s: %w", typeTag, ErrCacheNotDrained)
	}
	delete(g.factories, typeTag)
	return nil
}

// CreateSubRenderState instantiates a contributor by type tag.
func (g *Generator) CreateSubRenderState(typeTag string) (SubRenderState, error) {
	f, ok := g.factories[typeTag]
	if !ok {
		return nil, fmt.Errorf("no factory for contributor type %q", typeTag)
	}
	return f.Create(), nil
}

// CreateRenderState builds the default render state for a pass: every
// registered factory contributes one instance; applicability is
// decided later by PreAddToRenderState during assembly. GBuffer and
// triplanar contributors are opt-in and excluded from the default.
func (g *Generator) CreateRenderState(pass *Pass) *RenderState {
	rs := NewRenderState()
	tags := make([]string, 0, len(g.factories))
	for tag := range g.factories {
		if tag == GBufferType || tag == TriplanarType {
			continue
		}
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		rs.Add(g.factories[tag].Create())
	}
	return rs
}

// Fingerprint assembles the pipeline for (pass, rs) and returns its
// fingerprint without generating programs.
func (g *Generator) Fingerprint(pass *Pass, rs *RenderState) Fingerprint {
	active := rs.assemble(pass, pass.Clone())
	return computeFingerprint(active)
}

// Generate produces the program pair for (pass, rs), short-circuiting
// through the cache by fingerprint. Identical inputs yield byte-
// identical sources and the same cached instance.
func (g *Generator) Generate(pass *Pass, rs *RenderState) (*GeneratedProgramSet, error) {
	active := rs.assemble(pass, pass.Clone())
	fp := computeFingerprint(active)
	return g.cache.GetOrBuild(fp, func() (*GeneratedProgramSet, error) {
		return g.build(fp, active)
	})
}

// build runs pipeline assembly and emission for an assembled
// contributor list.
func (g *Generator) build(fp Fingerprint, active []SubRenderState) (*GeneratedProgramSet, error) {
	set, err := createPrograms(active)
	if err != nil {
		return nil, err
	}

	out := &GeneratedProgramSet{
		Fingerprint:      fp,
		Set:              set,
		VertexUniforms:   set.Vertex().UniformManifest(),
		FragmentUniforms: set.Fragment().UniformManifest(),
	}
	set.Vertex().AssignPhysicalIndices()
	set.Fragment().AssignPhysicalIndices()

	switch g.options.Language {
	case LanguageHLSL:
		out.VertexSource, out.VertexHLSLInfo, err = hlsl.Compile(set.Vertex(), g.options.HLSL)
		if err != nil {
			return nil, err
		}
		out.FragmentSource, out.FragmentHLSLInfo, err = hlsl.Compile(set.Fragment(), g.options.HLSL)
		if err != nil {
			return nil, err
		}
	default:
		out.VertexSource, out.VertexInfo, err = glsl.Compile(set.Vertex(), g.options.GLSL)
		if err != nil {
			return nil, err
		}
		out.FragmentSource, out.FragmentInfo, err = glsl.Compile(set.Fragment(), g.options.GLSL)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

var (
	defaultOnce sync.Once
	defaultGen  *Generator
)

// Default returns the process-wide generator, created on first use
// with default options. It is a convenience shim; code that needs its
// own cache, factories or options constructs a Generator explicitly.
func Default() *Generator {
	defaultOnce.Do(func() {
		defaultGen = NewGenerator(DefaultGeneratorOptions())
	})
	return defaultGen
}

// Generate runs the default generator over a pass with its default
// render state.
func Generate(pass *Pass) (*GeneratedProgramSet, error) {
	gen := Default()
	return gen.Generate(pass, gen.CreateRenderState(pass))
}

// ResolveLibraries concatenates the library sources both programs of a
// generated set depend on, vertex first.
func (g *Generator) ResolveLibraries(gen *GeneratedProgramSet) (vertex, fragment string, err error) {
	vertex, err = g.libraries.Resolve(gen.Set.Vertex().Dependencies())
	if err != nil {
		return "", "", err
	}
	fragment, err = g.libraries.Resolve(gen.Set.Fragment().Dependencies())
	if err != nil {
		return "", "", err
	}
	return vertex, fragment, nil
}
