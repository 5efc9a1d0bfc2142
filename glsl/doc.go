// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package glsl generates GLSL source code from rtss IR programs.
//
// The writer owns exactly three concerns: mapping IR types to GLSL
// spellings, mapping parameter content tags to input decorations
// (layout locations, builtins like gl_Position), and emitting function
// atoms in flattened group order. Everything else about the program —
// which atoms exist, at which stage, with which parameters — is
// decided by the contributors that built the IR.
//
// Example usage:
//
//	source, info, err := glsl.Compile(programSet.Vertex(), glsl.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The returned TranslationInfo carries the sampler binding units and
// any output renames or local copies the language forced.
package glsl
