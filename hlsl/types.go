// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"strconv"

	"github.com/gogpu/rtss/ir"
)

// typeToHLSL maps an IR type to its HLSL spelling.
func typeToHLSL(t ir.Type) (string, error) {
	switch t {
	case ir.TypeFloat1:
		return "float", nil
	case ir.TypeFloat2:
		return "float2", nil
	case ir.TypeFloat3:
		return "float3", nil
	case ir.TypeFloat4:
		return "float4", nil
	case ir.TypeInt1:
		return "int", nil
	case ir.TypeInt2:
		return "int2", nil
	case ir.TypeInt3:
		return "int3", nil
	case ir.TypeInt4:
		return "int4", nil
	case ir.TypeUInt1:
		return "uint", nil
	case ir.TypeUInt2:
		return "uint2", nil
	case ir.TypeUInt3:
		return "uint3", nil
	case ir.TypeUInt4:
		return "uint4", nil
	case ir.TypeBool1:
		return "bool", nil
	case ir.TypeBool2:
		return "bool2", nil
	case ir.TypeBool3:
		return "bool3", nil
	case ir.TypeBool4:
		return "bool4", nil
	case ir.TypeMatrix2x2:
		return "float2x2", nil
	case ir.TypeMatrix2x4:
		return "float2x4", nil
	case ir.TypeMatrix3x3:
		return "float3x3", nil
	case ir.TypeMatrix3x4:
		return "float3x4", nil
	case ir.TypeMatrix4x4:
		return "float4x4", nil
	default:
		return "", fmt.Errorf("hlsl: %w: %s", ir.ErrUnsupportedType, t)
	}
}

// textureType maps a sampler type to its HLSL texture object.
func textureType(t ir.Type) (string, error) {
	switch t {
	case ir.TypeSampler1D:
		return "Texture1D", nil
	case ir.TypeSampler2D, ir.TypeSamplerExternal:
		return "Texture2D", nil
	case ir.TypeSampler3D:
		return "Texture3D", nil
	case ir.TypeSamplerCube:
		return "TextureCube", nil
	case ir.TypeSampler2DArray:
		return "Texture2DArray", nil
	default:
		return "", fmt.Errorf("hlsl: %w: %s", ir.ErrUnsupportedType, t)
	}
}

// attributeSemantic returns the HLSL semantic for a vertex attribute.
func attributeSemantic(p *ir.Parameter) string {
	switch p.Semantic {
	case ir.SemanticPosition:
		return "POSITION"
	case ir.SemanticBlendWeights:
		return "BLENDWEIGHT"
	case ir.SemanticBlendIndices:
		return "BLENDINDICES"
	case ir.SemanticNormal:
		return "NORMAL"
	case ir.SemanticColor:
		return "COLOR" + strconv.Itoa(p.Index)
	case ir.SemanticTangent:
		return "TANGENT"
	case ir.SemanticBinormal:
		return "BINORMAL"
	default:
		return "TEXCOORD" + strconv.Itoa(p.Index)
	}
}
