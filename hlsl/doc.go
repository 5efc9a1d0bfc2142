// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package hlsl generates HLSL source code from IR programs.
//
// The writer targets shader model 4 and later: stage parameters are
// passed through the entry point signature with system-value
// semantics, non-sampler uniforms live in one cbuffer per stage, and
// texture fetches pair a TextureND object with a SamplerState.
//
// Entry point:
//
//	src, info, err := hlsl.Compile(prog, hlsl.DefaultOptions())
package hlsl
