// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/rtss/ir"
)

// Writer generates GLSL source code from one IR program.
type Writer struct {
	prog    *ir.Program
	arena   *ir.ParameterArena
	options *Options

	// Output buffer
	out strings.Builder

	// Emission-time parameter renames: builtins and local copies.
	aliases map[ir.ParameterHandle]string

	// Output tracking
	samplerBindings  map[string]int
	renamedOutputs   map[string]string
	localCopies      []string
	uniformBlockName string
}

// newWriter creates a new GLSL writer.
func newWriter(prog *ir.Program, options *Options) *Writer {
	return &Writer{
		prog:            prog,
		arena:           prog.Arena(),
		options:         options,
		aliases:         make(map[ir.ParameterHandle]string),
		samplerBindings: make(map[string]int),
		renamedOutputs:  make(map[string]string),
	}
}

// String returns the generated source.
func (w *Writer) String() string { return w.out.String() }

// paramName returns the emission name for a parameter handle.
func (w *Writer) paramName(h ir.ParameterHandle) string {
	if alias, ok := w.aliases[h]; ok {
		return alias
	}
	return escapeKeyword(w.arena.Get(h).Name)
}

// writeProgram emits the complete translation unit.
func (w *Writer) writeProgram() error {
	fn := w.prog.EntryFunction()

	w.resolveBuiltinAliases()
	localShadows := w.resolveLocalCopies()

	fmt.Fprintf(&w.out, "#version %s\n", w.options.LangVersion.String())
	if w.options.LangVersion.ES && w.options.ForceHighPrecision {
		w.out.WriteString("precision highp float;\n")
	}
	if w.usesExternalSampler() {
		w.out.WriteString("#extension GL_OES_EGL_image_external_essl3 : require\n")
	}
	w.out.WriteString("\n")

	for _, dep := range w.prog.Dependencies() {
		fmt.Fprintf(&w.out, "#include <%s%s>\n", dep, w.options.IncludeSuffix)
	}
	if len(w.prog.Dependencies()) > 0 {
		w.out.WriteString("\n")
	}

	if err := w.writeStageInputs(fn); err != nil {
		return err
	}
	if err := w.writeStageOutputs(fn); err != nil {
		return err
	}
	if err := w.writeConstants(); err != nil {
		return err
	}
	if err := w.writeUniforms(); err != nil {
		return err
	}

	w.out.WriteString("void main() {\n")
	if err := w.writeLocals(fn); err != nil {
		return err
	}
	for _, shadow := range localShadows {
		w.out.WriteString("\t" + shadow + "\n")
	}
	for _, atom := range fn.Atoms() {
		line, err := w.atomSource(atom)
		if err != nil {
			return err
		}
		w.out.WriteString("\t" + line + "\n")
	}
	w.out.WriteString("}\n")
	return nil
}

// resolveBuiltinAliases renames outputs the language provides as
// builtins; they are not declared and later atoms reference the new
// name.
func (w *Writer) resolveBuiltinAliases() {
	fn := w.prog.EntryFunction()
	if w.prog.Kind() == ir.ProgramVertex {
		for _, h := range fn.Outputs() {
			p := w.arena.Get(h)
			switch p.Content {
			case ir.ContentPositionProjectiveSpace:
				w.aliases[h] = "gl_Position"
				w.renamedOutputs[p.Name] = "gl_Position"
			case ir.ContentPointSpriteSize:
				w.aliases[h] = "gl_PointSize"
				w.renamedOutputs[p.Name] = "gl_PointSize"
			}
		}
	}
	if w.prog.Kind() == ir.ProgramFragment {
		for _, h := range fn.Inputs() {
			p := w.arena.Get(h)
			if p.Content == ir.ContentFrontFacing {
				w.aliases[h] = "gl_FrontFacing"
			}
		}
	}
}

// resolveLocalCopies shadows inputs that atoms also write, which GLSL
// forbids. Returns the shadow declarations for the top of main.
func (w *Writer) resolveLocalCopies() []string {
	fn := w.prog.EntryFunction()
	inputs := make(map[ir.ParameterHandle]bool, len(fn.Inputs()))
	for _, h := range fn.Inputs() {
		inputs[h] = true
	}

	var decls []string
	for _, atom := range fn.Atoms() {
		for _, op := range atom.Operands() {
			if op.Semantic == ir.OperandIn || !inputs[op.Param] {
				continue
			}
			if _, done := w.aliases[op.Param]; done {
				continue
			}
			p := w.arena.Get(op.Param)
			glType, err := typeToGLSL(p.Type)
			if err != nil {
				continue
			}
			original := escapeKeyword(p.Name)
			local := "local_" + original
			w.aliases[op.Param] = local
			w.localCopies = append(w.localCopies, local)
			decls = append(decls, fmt.Sprintf("%s %s = %s;", glType, local, original))
		}
	}
	return decls
}

func (w *Writer) usesExternalSampler() bool {
	for _, h := range w.prog.Uniforms() {
		if w.arena.Get(h).Type == ir.TypeSamplerExternal {
			return true
		}
	}
	return false
}

func (w *Writer) writeStageInputs(fn *ir.Function) error {
	wrote := false
	for _, h := range fn.Inputs() {
		p := w.arena.Get(h)
		if p.Content == ir.ContentFrontFacing {
			continue
		}
		glType, err := typeToGLSL(p.Type)
		if err != nil {
			return err
		}
		name := escapeKeyword(p.Name)
		if w.prog.Kind() == ir.ProgramVertex {
			loc := attributeLocation(p.Semantic, p.Index)
			fmt.Fprintf(&w.out, "layout(location = %d) in %s %s;\n", loc, glType, name)
		} else {
			fmt.Fprintf(&w.out, "in %s %s;\n", glType, name)
		}
		wrote = true
	}
	if wrote {
		w.out.WriteString("\n")
	}
	return nil
}

func (w *Writer) writeStageOutputs(fn *ir.Function) error {
	wrote := false
	for _, h := range fn.Outputs() {
		if _, builtin := w.aliases[h]; builtin {
			continue
		}
		p := w.arena.Get(h)
		glType, err := typeToGLSL(p.Type)
		if err != nil {
			return err
		}
		name := escapeKeyword(p.Name)
		if w.prog.Kind() == ir.ProgramFragment {
			fmt.Fprintf(&w.out, "layout(location = %d) out %s %s;\n", p.Index, glType, name)
		} else {
			fmt.Fprintf(&w.out, "out %s %s;\n", glType, name)
		}
		wrote = true
	}
	if wrote {
		w.out.WriteString("\n")
	}
	return nil
}

func (w *Writer) writeConstants() error {
	consts := w.prog.Constants()
	for _, h := range consts {
		p := w.arena.Get(h)
		glType, err := typeToGLSL(p.Type)
		if err != nil {
			return err
		}
		fmt.Fprintf(&w.out, "const %s %s = %s;\n", glType, escapeKeyword(p.Name), p.Constant.String())
	}
	if len(consts) > 0 {
		w.out.WriteString("\n")
	}
	return nil
}

// writeUniforms emits samplers as plain uniforms and synthesizes a
// uniform block for everything else, bound to the stage index.
func (w *Writer) writeUniforms() error {
	var samplers, plain []ir.ParameterHandle
	for _, h := range w.prog.Uniforms() {
		if w.arena.Get(h).IsSampler() {
			samplers = append(samplers, h)
		} else {
			plain = append(plain, h)
		}
	}

	for i, h := range samplers {
		p := w.arena.Get(h)
		glType, err := typeToGLSL(p.Type)
		if err != nil {
			return err
		}
		name := escapeKeyword(p.Name)
		w.samplerBindings[name] = i
		if w.options.LangVersion.SupportsBindings() {
			fmt.Fprintf(&w.out, "layout(binding = %d) uniform %s %s;\n", i, glType, name)
		} else {
			fmt.Fprintf(&w.out, "uniform %s %s;\n", glType, name)
		}
	}
	if len(samplers) > 0 {
		w.out.WriteString("\n")
	}

	if len(plain) == 0 {
		return nil
	}
	w.uniformBlockName = blockName(w.prog.Kind())
	if w.options.LangVersion.SupportsBindings() {
		fmt.Fprintf(&w.out, "layout(std140, binding = %d) uniform %s {\n", w.prog.Kind().StageIndex(), w.uniformBlockName)
	} else {
		fmt.Fprintf(&w.out, "layout(std140) uniform %s {\n", w.uniformBlockName)
	}
	for _, h := range plain {
		p := w.arena.Get(h)
		glType, err := typeToGLSL(p.Type)
		if err != nil {
			return err
		}
		if p.ArraySize > 0 {
			fmt.Fprintf(&w.out, "\t%s %s[%d];\n", glType, escapeKeyword(p.Name), p.ArraySize)
		} else {
			fmt.Fprintf(&w.out, "\t%s %s;\n", glType, escapeKeyword(p.Name))
		}
	}
	w.out.WriteString("};\n\n")
	return nil
}

func (w *Writer) writeLocals(fn *ir.Function) error {
	for _, h := range fn.Locals() {
		p := w.arena.Get(h)
		glType, err := typeToGLSL(p.Type)
		if err != nil {
			return err
		}
		fmt.Fprintf(&w.out, "\t%s %s;\n", glType, escapeKeyword(p.Name))
	}
	return nil
}

func blockName(kind ir.ProgramKind) string {
	switch kind {
	case ir.ProgramVertex:
		return "VertexParams"
	case ir.ProgramFragment:
		return "FragmentParams"
	default:
		return "StageParams" + strconv.Itoa(kind.StageIndex())
	}
}
