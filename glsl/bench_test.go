// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"testing"

	"github.com/gogpu/rtss/ir"
)

func benchProgram(b *testing.B) *ir.Program {
	b.Helper()
	prog := ir.NewProgram(ir.ProgramVertex, ir.NewParameterArena())
	fn := prog.EntryFunction()

	wvp, err := prog.ResolveAutoParameter(ir.AutoWorldViewProjMatrix, ir.AutoExtra{})
	if err != nil {
		b.Fatalf("resolve auto: %v", err)
	}
	pos, err := fn.ResolveInput(ir.ContentPositionObjectSpace, ir.TypeFloat4)
	if err != nil {
		b.Fatalf("resolve input: %v", err)
	}
	outPos, err := fn.ResolveOutput(ir.ContentPositionProjectiveSpace, ir.TypeFloat4)
	if err != nil {
		b.Fatalf("resolve output: %v", err)
	}
	prog.AddDependency("FFPLib_Transform")
	fn.AddAtom(ir.NewFunctionInvocation("FFP_Transform", 100).
		MustPush(ir.In(wvp), ir.In(pos), ir.Out(outPos)))
	return prog
}

func BenchmarkCompile(b *testing.B) {
	prog := benchProgram(b)
	options := DefaultOptions()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Compile(prog, options); err != nil {
			b.Fatalf("compile: %v", err)
		}
	}
}
