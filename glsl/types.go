// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"

	"github.com/gogpu/rtss/ir"
)

// typeToGLSL returns the GLSL spelling for an IR type.
func typeToGLSL(t ir.Type) (string, error) {
	switch t {
	case ir.TypeFloat1:
		return "float", nil
	case ir.TypeFloat2:
		return "vec2", nil
	case ir.TypeFloat3:
		return "vec3", nil
	case ir.TypeFloat4:
		return "vec4", nil
	case ir.TypeInt1:
		return "int", nil
	case ir.TypeInt2:
		return "ivec2", nil
	case ir.TypeInt3:
		return "ivec3", nil
	case ir.TypeInt4:
		return "ivec4", nil
	case ir.TypeUInt1:
		return "uint", nil
	case ir.TypeUInt2:
		return "uvec2", nil
	case ir.TypeUInt3:
		return "uvec3", nil
	case ir.TypeUInt4:
		return "uvec4", nil
	case ir.TypeBool1:
		return "bool", nil
	case ir.TypeBool2:
		return "bvec2", nil
	case ir.TypeBool3:
		return "bvec3", nil
	case ir.TypeBool4:
		return "bvec4", nil
	case ir.TypeMatrix2x2:
		return "mat2", nil
	case ir.TypeMatrix2x4:
		return "mat2x4", nil
	case ir.TypeMatrix3x3:
		return "mat3", nil
	case ir.TypeMatrix3x4:
		return "mat3x4", nil
	case ir.TypeMatrix4x4:
		return "mat4", nil
	case ir.TypeSampler1D:
		return "sampler1D", nil
	case ir.TypeSampler2D:
		return "sampler2D", nil
	case ir.TypeSampler3D:
		return "sampler3D", nil
	case ir.TypeSamplerCube:
		return "samplerCube", nil
	case ir.TypeSampler2DArray:
		return "sampler2DArray", nil
	case ir.TypeSamplerExternal:
		return "samplerExternalOES", nil
	default:
		return "", fmt.Errorf("type %v: %w", t, ir.ErrUnsupportedType)
	}
}

// attributeLocation maps a vertex input's semantic to its layout
// location. Texture coordinate sets occupy 8..15.
func attributeLocation(sem ir.Semantic, index int) int {
	switch sem {
	case ir.SemanticPosition:
		return 0
	case ir.SemanticBlendWeights:
		return 1
	case ir.SemanticBlendIndices:
		return 2
	case ir.SemanticNormal:
		return 3
	case ir.SemanticColor:
		return 4 + index
	case ir.SemanticTangent:
		return 6
	case ir.SemanticBinormal:
		return 7
	case ir.SemanticTexCoord:
		return 8 + index
	default:
		return 8 + index
	}
}
