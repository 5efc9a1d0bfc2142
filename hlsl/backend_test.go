// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"strings"
	"testing"

	"github.com/gogpu/rtss/ir"
)

func TestCompileVertexProgram(t *testing.T) {
	prog := ir.NewProgram(ir.ProgramVertex, ir.NewParameterArena())
	fn := prog.EntryFunction()

	wvp, err := prog.ResolveAutoParameter(ir.AutoWorldViewProjMatrix, ir.AutoExtra{})
	if err != nil {
		t.Fatalf("resolve auto: %v", err)
	}
	pos, _ := fn.ResolveInput(ir.ContentPositionObjectSpace, ir.TypeFloat4)
	outPos, _ := fn.ResolveOutput(ir.ContentPositionProjectiveSpace, ir.TypeFloat4)
	texIn, _ := fn.ResolveInput(ir.ContentTextureCoordinate(0), ir.TypeFloat2)
	texOut, _ := fn.ResolveOutput(ir.ContentTextureCoordinate(0), ir.TypeFloat2)

	prog.AddDependency("FFPLib_Transform")
	fn.AddAtom(ir.NewFunctionInvocation("FFP_Transform", 100).
		MustPush(ir.In(wvp), ir.In(pos), ir.Out(outPos)))
	fn.AddAtom(ir.NewAssignment(400, ir.Out(texOut), ir.In(texIn)))

	src, info, err := Compile(prog, DefaultOptions())
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	for _, want := range []string{
		"#include <FFPLib_Transform.hlsl>",
		"cbuffer VertexParams : register(b0) {",
		"\tcolumn_major float4x4 worldViewProj;",
		"in float4 iPos_0 : POSITION",
		"in float2 iTexcoord_0 : TEXCOORD0",
		"out float4 oPos_0 : SV_Position",
		"out float2 oTexcoord_0 : TEXCOORD0",
		"FFP_Transform(worldViewProj, iPos_0, oPos_0);",
		"oTexcoord_0 = iTexcoord_0;",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, src)
		}
	}
	if info.Profile != "vs_5_0" {
		t.Errorf("Expected profile vs_5_0, got %q", info.Profile)
	}
	if info.ConstantBufferName != "VertexParams" {
		t.Errorf("Expected cbuffer VertexParams, got %q", info.ConstantBufferName)
	}
}

func TestCompileFragmentSamplers(t *testing.T) {
	prog := ir.NewProgram(ir.ProgramFragment, ir.NewParameterArena())
	fn := prog.EntryFunction()

	s0, _ := prog.ResolveParameter(ir.TypeSampler2D, 0, ir.VariabilityGlobal, "albedo_map", 0)
	tex, _ := fn.ResolveInput(ir.ContentTextureCoordinate(0), ir.TypeFloat2)
	colour, _ := fn.ResolveOutput(ir.ContentColorDiffuse, ir.TypeFloat4)

	fn.AddAtom(ir.NewSampleTexture(150, ir.In(s0), ir.In(tex), ir.Out(colour)))

	src, info, err := Compile(prog, DefaultOptions())
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	for _, want := range []string{
		"Texture2D albedo_map : register(t0);",
		"SamplerState albedo_mapSampler : register(s0);",
		"out float4 oColour_0 : SV_Target0",
		"oColour_0 = albedo_map.Sample(albedo_mapSampler, iTexcoord_0);",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, src)
		}
	}
	if info.TextureRegisters["albedo_map"] != 0 {
		t.Errorf("Unexpected texture registers: %v", info.TextureRegisters)
	}
	if info.Profile != "ps_5_0" {
		t.Errorf("Expected profile ps_5_0, got %q", info.Profile)
	}
}

func TestVaryingRegistersAgreeAcrossStages(t *testing.T) {
	arena := ir.NewParameterArena()

	vs := ir.NewProgram(ir.ProgramVertex, arena)
	vfn := vs.EntryFunction()
	pos, _ := vfn.ResolveInput(ir.ContentPositionObjectSpace, ir.TypeFloat4)
	outPos, _ := vfn.ResolveOutput(ir.ContentPositionProjectiveSpace, ir.TypeFloat4)
	texIn, _ := vfn.ResolveInput(ir.ContentTextureCoordinate(0), ir.TypeFloat2)
	texOut, _ := vfn.ResolveOutput(ir.ContentTextureCoordinate(0), ir.TypeFloat2)
	depthOut, _ := vfn.ResolveOutput(ir.ContentDepthViewSpace, ir.TypeFloat1)
	vfn.AddAtom(ir.NewAssignment(100, ir.Out(outPos), ir.In(pos)))
	vfn.AddAtom(ir.NewAssignment(400, ir.Out(texOut), ir.In(texIn)))
	vfn.AddAtom(ir.NewAssignment(500, ir.Out(depthOut), ir.In(pos).WithMask(ir.MaskZ)))

	fs := ir.NewProgram(ir.ProgramFragment, arena)
	ffn := fs.EntryFunction()
	// Consume in the opposite order to prove registers come from the
	// interface, not the declaration sequence.
	depthIn, _ := ffn.ResolveInputFromOutput(arena.Get(depthOut))
	texFS, _ := ffn.ResolveInputFromOutput(arena.Get(texOut))
	colour, _ := ffn.ResolveOutput(ir.ContentColorDiffuse, ir.TypeFloat4)
	ffn.AddAtom(ir.NewAssignment(100, ir.Out(colour).WithMask(ir.MaskXY), ir.In(texFS)))
	ffn.AddAtom(ir.NewAssignment(400, ir.Out(colour).WithMask(ir.MaskW), ir.In(depthIn)))

	vsSrc, _, err := Compile(vs, DefaultOptions())
	if err != nil {
		t.Fatalf("Compile(vertex) error: %v", err)
	}
	fsSrc, _, err := Compile(fs, DefaultOptions())
	if err != nil {
		t.Fatalf("Compile(fragment) error: %v", err)
	}

	pairs := []struct{ vs, fs string }{
		{"out float oDepthView_0 : TEXCOORD0", "in float oDepthView_0 : TEXCOORD0"},
		{"out float2 oTexcoord_0 : TEXCOORD1", "in float2 oTexcoord_0 : TEXCOORD1"},
	}
	for _, pair := range pairs {
		if !strings.Contains(vsSrc, pair.vs) {
			t.Errorf("Expected vertex output to contain %q, got:\n%s", pair.vs, vsSrc)
		}
		if !strings.Contains(fsSrc, pair.fs) {
			t.Errorf("Expected fragment output to contain %q, got:\n%s", pair.fs, fsSrc)
		}
	}
}

func TestConstantRewrite(t *testing.T) {
	tests := []struct {
		in   *ir.ConstantValue
		want string
	}{
		{ir.Float(0.5), "0.5"},
		{ir.Vec3(0, 0, 1), "float3(0.0,0.0,1.0)"},
		{ir.Int(-7), "-7"},
	}
	for _, tt := range tests {
		if got := constantHLSL(tt.in); got != tt.want {
			t.Errorf("constantHLSL() = %q, want %q", got, tt.want)
		}
	}
}

func TestShaderModelProfile(t *testing.T) {
	if got := ShaderModel40.Profile(ir.ProgramFragment); got != "ps_4_0" {
		t.Errorf("Expected ps_4_0, got %q", got)
	}
	if got := ShaderModel51.Profile(ir.ProgramVertex); got != "vs_5_1" {
		t.Errorf("Expected vs_5_1, got %q", got)
	}
}
