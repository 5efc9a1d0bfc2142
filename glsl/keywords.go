// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

// glslKeywords contains the GLSL reserved words a generated parameter
// name could realistically collide with. Based on GLSL 4.60 and
// GLSL ES 3.20.
var glslKeywords = map[string]struct{}{
	// Basic types
	"void": {}, "bool": {}, "int": {}, "uint": {}, "float": {}, "double": {},

	// Vector types
	"vec2": {}, "vec3": {}, "vec4": {},
	"ivec2": {}, "ivec3": {}, "ivec4": {},
	"uvec2": {}, "uvec3": {}, "uvec4": {},
	"bvec2": {}, "bvec3": {}, "bvec4": {},

	// Matrix types
	"mat2": {}, "mat3": {}, "mat4": {},
	"mat2x2": {}, "mat2x3": {}, "mat2x4": {},
	"mat3x2": {}, "mat3x3": {}, "mat3x4": {},
	"mat4x2": {}, "mat4x3": {}, "mat4x4": {},

	// Sampler types
	"sampler": {}, "sampler1D": {}, "sampler2D": {}, "sampler3D": {},
	"samplerCube": {}, "sampler2DArray": {}, "sampler2DShadow": {},

	// Storage and layout qualifiers
	"const": {}, "uniform": {}, "buffer": {}, "shared": {},
	"in": {}, "out": {}, "inout": {}, "attribute": {}, "varying": {},
	"layout": {}, "binding": {}, "location": {},
	"flat": {}, "smooth": {}, "noperspective": {}, "centroid": {},
	"invariant": {}, "precise": {}, "coherent": {}, "volatile": {},
	"restrict": {}, "readonly": {}, "writeonly": {},
	"highp": {}, "mediump": {}, "lowp": {}, "precision": {},

	// Control flow
	"if": {}, "else": {}, "switch": {}, "case": {}, "default": {},
	"for": {}, "while": {}, "do": {}, "break": {}, "continue": {},
	"return": {}, "discard": {},

	// Literals and misc
	"true": {}, "false": {}, "struct": {}, "main": {},
	"texture": {}, "texelFetch": {},
}

// isKeyword reports whether name is a GLSL reserved word.
func isKeyword(name string) bool {
	_, ok := glslKeywords[name]
	return ok
}

// escapeKeyword returns a safe identifier for name, appending an
// underscore when it collides with a reserved word or the gl_ prefix.
func escapeKeyword(name string) string {
	if isKeyword(name) {
		return name + "_"
	}
	if len(name) >= 3 && name[:3] == "gl_" {
		return "p" + name
	}
	return name
}
