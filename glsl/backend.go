// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"

	"github.com/gogpu/rtss/ir"
)

// Version represents a GLSL version.
type Version struct {
	Major uint8
	Minor uint8
	ES    bool // true for GLSL ES (OpenGL ES / WebGL)
}

// Common GLSL versions.
var (
	Version330 = Version{Major: 3, Minor: 30, ES: false} // OpenGL 3.3 Core
	Version420 = Version{Major: 4, Minor: 20, ES: false} // OpenGL 4.2 (binding qualifiers)
	Version430 = Version{Major: 4, Minor: 30, ES: false} // OpenGL 4.3
	Version460 = Version{Major: 4, Minor: 60, ES: false} // OpenGL 4.6

	VersionES300 = Version{Major: 3, Minor: 0, ES: true}  // ES 3.0 / WebGL 2.0
	VersionES310 = Version{Major: 3, Minor: 10, ES: true} // ES 3.1
)

// String returns the version as a GLSL version directive value.
func (v Version) String() string {
	if v.ES {
		return fmt.Sprintf("%d%02d es", v.Major, v.Minor)
	}
	return fmt.Sprintf("%d%02d core", v.Major, v.Minor)
}

// versionLessThan returns true if the numeric version (Major*100+Minor)
// is less than the given number.
func (v Version) versionLessThan(number int) bool {
	return int(v.Major)*100+int(v.Minor) < number
}

// SupportsBindings returns true if this version supports explicit
// binding qualifiers on uniform blocks and samplers.
func (v Version) SupportsBindings() bool {
	if v.ES {
		return !v.versionLessThan(310)
	}
	return !v.versionLessThan(420)
}

// Options configures GLSL code generation.
type Options struct {
	// LangVersion is the target GLSL version.
	// Defaults to Version430 if zero.
	LangVersion Version

	// IncludeSuffix is appended to library dependency names in
	// #include directives. Defaults to ".glsl".
	IncludeSuffix string

	// ForceHighPrecision forces highp precision for float types (ES only).
	ForceHighPrecision bool
}

// DefaultOptions returns sensible default options for GLSL generation.
func DefaultOptions() Options {
	return Options{
		LangVersion:        Version430,
		IncludeSuffix:      ".glsl",
		ForceHighPrecision: true,
	}
}

// TranslationInfo contains metadata about the translation.
type TranslationInfo struct {
	// SamplerBindings maps sampler uniform names to their texture units.
	SamplerBindings map[string]int

	// RenamedOutputs maps original parameter names to the builtin the
	// language forced (e.g. oPos_0 → gl_Position).
	RenamedOutputs map[string]string

	// LocalCopies lists inputs that needed a writable local shadow.
	LocalCopies []string

	// UniformBlockName is the synthesized block's name, empty when the
	// program has no non-sampler uniforms.
	UniformBlockName string

	// ExternFunctions lists the library functions the program invokes,
	// in prototype order, one entry per distinct prototype.
	ExternFunctions []string
}

// Compile generates GLSL source code for one IR program.
// Returns the GLSL source as a string, translation info, or an error.
func Compile(prog *ir.Program, options Options) (string, TranslationInfo, error) {
	if options.LangVersion.Major == 0 {
		options.LangVersion = Version430
	}
	if options.IncludeSuffix == "" {
		options.IncludeSuffix = ".glsl"
	}

	w := newWriter(prog, &options)
	if err := w.writeProgram(); err != nil {
		return "", TranslationInfo{}, fmt.Errorf("glsl: %w", err)
	}

	info := TranslationInfo{
		SamplerBindings:  w.samplerBindings,
		RenamedOutputs:   w.renamedOutputs,
		LocalCopies:      w.localCopies,
		UniformBlockName: w.uniformBlockName,
	}
	for _, inv := range prog.EntryFunction().InvocationPrototypes() {
		info.ExternFunctions = append(info.ExternFunctions, inv.Name)
	}
	return w.String(), info, nil
}
