package rtss

import (
	"fmt"

	"github.com/gogpu/rtss/ir"
)

// GPUProgram is a compiled program handle, opaque to the core. The one
// capability the core needs is uniform location lookup for binding.
type GPUProgram interface {
	// UniformLocation returns the uniform's location and whether the
	// compiled program still contains it. Uniforms the backend
	// optimized out report false.
	UniformLocation(name string) (int, bool)
}

// ProgramCompiler is the opaque GPU compile seam. Implementations wrap
// a graphics API; the core never touches the device.
type ProgramCompiler interface {
	Compile(kind ir.ProgramKind, source string) (GPUProgram, error)
}

// UniformBinding pairs one manifest entry with its resolved location.
type UniformBinding struct {
	ir.UniformDescriptor
	Location int
}

// CompiledProgramSet is a generated pair applied to the device:
// compiled handles plus the resolved uniform bindings.
type CompiledProgramSet struct {
	Fingerprint Fingerprint
	Vertex      GPUProgram
	Fragment    GPUProgram

	VertexBindings   []UniformBinding
	FragmentBindings []UniformBinding

	// SkippedUniforms lists manifest entries the backend optimized
	// out. Binding them is non-fatal; integrators log the list at
	// their layer.
	SkippedUniforms []string
}

// Apply compiles a generated pair and resolves its uniform bindings.
// A compile rejection surfaces as ErrBackendCompile with the source
// attached; a missing uniform is skipped, not an error.
func Apply(gen *GeneratedProgramSet, compiler ProgramCompiler) (*CompiledProgramSet, error) {
	vertex, err := compiler.Compile(ir.ProgramVertex, gen.VertexSource)
	if err != nil {
		return nil, fmt.Errorf("%w: %v\n%s", ErrBackendCompile, err, gen.VertexSource)
	}
	fragment, err := compiler.Compile(ir.ProgramFragment, gen.FragmentSource)
	if err != nil {
		return nil, fmt.Errorf("%w: %v\n%s", ErrBackendCompile, err, gen.FragmentSource)
	}

	out := &CompiledProgramSet{
		Fingerprint: gen.Fingerprint,
		Vertex:      vertex,
		Fragment:    fragment,
	}
	out.VertexBindings = bindUniforms(vertex, gen.VertexUniforms, &out.SkippedUniforms)
	out.FragmentBindings = bindUniforms(fragment, gen.FragmentUniforms, &out.SkippedUniforms)
	return out, nil
}

func bindUniforms(prog GPUProgram, manifest []ir.UniformDescriptor, skipped *[]string) []UniformBinding {
	var bindings []UniformBinding
	for _, desc := range manifest {
		loc, ok := prog.UniformLocation(desc.Name)
		if !ok {
			*skipped = append(*skipped, desc.Name)
			continue
		}
		bindings = append(bindings, UniformBinding{UniformDescriptor: desc, Location: loc})
	}
	return bindings
}
