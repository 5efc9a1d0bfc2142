// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gogpu/rtss/ir"
)

// Writer generates HLSL source code from one IR program.
type Writer struct {
	prog    *ir.Program
	arena   *ir.ParameterArena
	options *Options

	out strings.Builder

	textureRegisters   map[string]int
	varyingSlots       map[string]int
	constantBufferName string
}

func newWriter(prog *ir.Program, options *Options) *Writer {
	return &Writer{
		prog:             prog,
		arena:            prog.Arena(),
		options:          options,
		textureRegisters: make(map[string]int),
		varyingSlots:     make(map[string]int),
	}
}

// String returns the generated source.
func (w *Writer) String() string { return w.out.String() }

func (w *Writer) paramName(h ir.ParameterHandle) string {
	return escapeKeyword(w.arena.Get(h).Name)
}

// samplerName returns the SamplerState identifier paired with a
// texture parameter.
func samplerName(textureName string) string { return textureName + "Sampler" }

// writeProgram emits the complete translation unit.
func (w *Writer) writeProgram() error {
	fn := w.prog.EntryFunction()

	for _, dep := range w.prog.Dependencies() {
		fmt.Fprintf(&w.out, "#include <%s%s>\n", dep, w.options.IncludeSuffix)
	}
	if len(w.prog.Dependencies()) > 0 {
		w.out.WriteString("\n")
	}

	w.assignVaryingSlots(fn)

	if err := w.writeConstants(); err != nil {
		return err
	}
	if err := w.writeUniforms(); err != nil {
		return err
	}
	if err := w.writeSignature(fn); err != nil {
		return err
	}

	w.out.WriteString("{\n")
	for _, h := range fn.Locals() {
		p := w.arena.Get(h)
		hlslType, err := typeToHLSL(p.Type)
		if err != nil {
			return err
		}
		fmt.Fprintf(&w.out, "\t%s %s;\n", hlslType, escapeKeyword(p.Name))
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

func (w *Writer) writeConstants() error {
	consts := w.prog.Constants()
	for _, h := range consts {
		p := w.arena.Get(h)
		hlslType, err := typeToHLSL(p.Type)
		if err != nil {
			return err
		}
		fmt.Fprintf(&w.out, "static const %s %s = %s;\n",
			hlslType, escapeKeyword(p.Name), constantHLSL(p.Constant))
	}
	if len(consts) > 0 {
		w.out.WriteString("\n")
	}
	return nil
}

// writeUniforms emits texture/sampler pairs in declaration order and
// packs the remaining uniforms into one cbuffer bound per stage.
func (w *Writer) writeUniforms() error {
	var textures, plain []ir.ParameterHandle
	for _, h := range w.prog.Uniforms() {
		if w.arena.Get(h).IsSampler() {
			textures = append(textures, h)
		} else {
			plain = append(plain, h)
		}
	}

	for i, h := range textures {
		p := w.arena.Get(h)
		texType, err := textureType(p.Type)
		if err != nil {
			return err
		}
		name := escapeKeyword(p.Name)
		w.textureRegisters[name] = i
		fmt.Fprintf(&w.out, "%s %s : register(t%d);\n", texType, name, i)
		fmt.Fprintf(&w.out, "SamplerState %s : register(s%d);\n", samplerName(name), i)
	}
	if len(textures) > 0 {
		w.out.WriteString("\n")
	}

	if len(plain) == 0 {
		return nil
	}
	w.constantBufferName = bufferName(w.prog.Kind())
	fmt.Fprintf(&w.out, "cbuffer %s : register(b%d) {\n",
		w.constantBufferName, w.prog.Kind().StageIndex())
	for _, h := range plain {
		p := w.arena.Get(h)
		hlslType, err := typeToHLSL(p.Type)
		if err != nil {
			return err
		}
		qualifier := ""
		if p.Type.IsMatrix() && w.prog.ColumnMajorMatrices {
			qualifier = "column_major "
		}
		if p.ArraySize > 0 {
			fmt.Fprintf(&w.out, "\t%s%s %s[%d];\n", qualifier, hlslType, escapeKeyword(p.Name), p.ArraySize)
		} else {
			fmt.Fprintf(&w.out, "\t%s%s %s;\n", qualifier, hlslType, escapeKeyword(p.Name))
		}
	}
	w.out.WriteString("};\n\n")
	return nil
}

// assignVaryingSlots numbers the inter-stage parameters. Varyings keep
// the producing stage's name on both sides of the interface, so sorting
// the names yields the same TEXCOORD register for a vertex output and
// the fragment input it feeds, even when the two programs declare them
// in different orders.
func (w *Writer) assignVaryingSlots(fn *ir.Function) {
	var names []string
	if w.prog.Kind() == ir.ProgramFragment {
		for _, h := range fn.Inputs() {
			p := w.arena.Get(h)
			if p.Content != ir.ContentFrontFacing {
				names = append(names, p.Name)
			}
		}
	} else {
		for _, h := range fn.Outputs() {
			p := w.arena.Get(h)
			switch p.Content {
			case ir.ContentPositionProjectiveSpace, ir.ContentPointSpriteSize:
			default:
				names = append(names, p.Name)
			}
		}
	}
	sort.Strings(names)
	for i, name := range names {
		w.varyingSlots[name] = i
	}
}

func (w *Writer) varyingSemantic(p *ir.Parameter) string {
	return "TEXCOORD" + strconv.Itoa(w.varyingSlots[p.Name])
}

// inputSemantic returns the HLSL semantic for a stage input.
func (w *Writer) inputSemantic(p *ir.Parameter) string {
	if w.prog.Kind() == ir.ProgramFragment {
		if p.Content == ir.ContentFrontFacing {
			return "SV_IsFrontFace"
		}
		return w.varyingSemantic(p)
	}
	return attributeSemantic(p)
}

// outputSemantic returns the HLSL semantic for a stage output.
func (w *Writer) outputSemantic(p *ir.Parameter) string {
	if w.prog.Kind() == ir.ProgramFragment {
		return "SV_Target" + strconv.Itoa(p.Index)
	}
	switch p.Content {
	case ir.ContentPositionProjectiveSpace:
		return "SV_Position"
	case ir.ContentPointSpriteSize:
		return "PSIZE"
	default:
		return w.varyingSemantic(p)
	}
}

// writeSignature emits the entry point header. Stage inputs and
// outputs are signature parameters carrying HLSL semantics; outputs
// are writable in place, so no renames or local shadows are needed.
func (w *Writer) writeSignature(fn *ir.Function) error {
	fmt.Fprintf(&w.out, "void %s(\n", w.options.EntryPoint)
	var params []string
	for _, h := range fn.Inputs() {
		p := w.arena.Get(h)
		hlslType, err := typeToHLSL(p.Type)
		if err != nil {
			return err
		}
		params = append(params, fmt.Sprintf("\tin %s %s : %s",
			hlslType, escapeKeyword(p.Name), w.inputSemantic(p)))
	}
	for _, h := range fn.Outputs() {
		p := w.arena.Get(h)
		hlslType, err := typeToHLSL(p.Type)
		if err != nil {
			return err
		}
		params = append(params, fmt.Sprintf("\tout %s %s : %s",
			hlslType, escapeKeyword(p.Name), w.outputSemantic(p)))
	}
	w.out.WriteString(strings.Join(params, ",\n"))
	w.out.WriteString(")\n")
	return nil
}

// constantHLSL rewrites the neutral vecN literal prose to floatN.
func constantHLSL(c *ir.ConstantValue) string {
	s := c.String()
	if strings.HasPrefix(s, "vec") {
		return "float" + s[3:]
	}
	return s
}

func bufferName(kind ir.ProgramKind) string {
	switch kind {
	case ir.ProgramVertex:
		return "VertexParams"
	case ir.ProgramFragment:
		return "FragmentParams"
	default:
		return "StageParams"
	}
}
