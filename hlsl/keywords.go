// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

// hlslKeywords contains reserved words that cannot be used as
// identifiers in HLSL output.
var hlslKeywords = map[string]bool{
	"bool": true, "break": true, "buffer": true, "case": true,
	"cbuffer": true, "centroid": true, "column_major": true,
	"const": true, "continue": true, "default": true, "discard": true,
	"do": true, "double": true, "else": true, "extern": true,
	"false": true, "float": true, "for": true, "groupshared": true,
	"half": true, "if": true, "in": true, "inline": true,
	"inout": true, "int": true, "linear": true, "matrix": true,
	"namespace": true, "nointerpolation": true, "out": true,
	"packoffset": true, "pass": true, "precise": true,
	"register": true, "return": true, "row_major": true,
	"sample": true, "sampler": true, "shared": true, "static": true,
	"struct": true, "switch": true, "technique": true, "texture": true,
	"true": true, "typedef": true, "uint": true, "uniform": true,
	"unorm": true, "vector": true, "void": true, "volatile": true,
	"while": true,
}

// escapeKeyword returns a safe identifier for the given name.
func escapeKeyword(name string) string {
	if hlslKeywords[name] {
		return name + "_"
	}
	return name
}
