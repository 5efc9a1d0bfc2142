// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"

	"github.com/gogpu/rtss/ir"
)

// ShaderModel is an HLSL shader model version.
type ShaderModel struct {
	Major uint8
	Minor uint8
}

// Predefined shader models.
var (
	ShaderModel40 = ShaderModel{Major: 4, Minor: 0}
	ShaderModel50 = ShaderModel{Major: 5, Minor: 0}
	ShaderModel51 = ShaderModel{Major: 5, Minor: 1}
)

// String returns the profile suffix, e.g. "5_0".
func (m ShaderModel) String() string {
	return fmt.Sprintf("%d_%d", m.Major, m.Minor)
}

// Profile returns the compilation target for the program kind,
// e.g. "vs_5_0".
func (m ShaderModel) Profile(kind ir.ProgramKind) string {
	prefix := "vs"
	switch kind {
	case ir.ProgramFragment:
		prefix = "ps"
	case ir.ProgramGeometry:
		prefix = "gs"
	case ir.ProgramDomain:
		prefix = "ds"
	case ir.ProgramHull:
		prefix = "hs"
	case ir.ProgramCompute:
		prefix = "cs"
	}
	return prefix + "_" + m.String()
}

// Options configure the HLSL output.
type Options struct {
	// ShaderModel is the target model. Defaults to 5.0.
	ShaderModel ShaderModel
	// EntryPoint is the entry function name. Defaults to "main".
	EntryPoint string
	// IncludeSuffix is appended to dependency names in #include
	// directives. Defaults to ".hlsl".
	IncludeSuffix string
}

// DefaultOptions returns the default writer options.
func DefaultOptions() Options {
	return Options{
		ShaderModel:   ShaderModel50,
		EntryPoint:    "main",
		IncludeSuffix: ".hlsl",
	}
}

// TranslationInfo describes choices the writer made that callers need
// to bind the program.
type TranslationInfo struct {
	// Profile is the compilation target, e.g. "vs_5_0".
	Profile string
	// TextureRegisters maps texture parameter names to t-register
	// slots; the paired SamplerState uses the same s-register slot.
	TextureRegisters map[string]int
	// ConstantBufferName is the synthesized cbuffer name, empty when
	// the program has no non-sampler uniforms.
	ConstantBufferName string
	// ExternFunctions lists the library functions the program invokes,
	// in prototype order, one entry per distinct prototype.
	ExternFunctions []string
}

// Compile translates an IR program to HLSL source.
func Compile(prog *ir.Program, options Options) (string, TranslationInfo, error) {
	if options.EntryPoint == "" {
		options.EntryPoint = "main"
	}
	if options.IncludeSuffix == "" {
		options.IncludeSuffix = ".hlsl"
	}
	w := newWriter(prog, &options)
	if err := w.writeProgram(); err != nil {
		return "", TranslationInfo{}, err
	}
	info := TranslationInfo{
		Profile:            options.ShaderModel.Profile(prog.Kind()),
		TextureRegisters:   w.textureRegisters,
		ConstantBufferName: w.constantBufferName,
	}
	for _, inv := range prog.EntryFunction().InvocationPrototypes() {
		info.ExternFunctions = append(info.ExternFunctions, inv.Name)
	}
	return w.String(), info, nil
}
