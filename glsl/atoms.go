// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"

	"github.com/gogpu/rtss/ir"
)

// atomSource renders a single function atom as one GLSL statement.
func (w *Writer) atomSource(atom ir.FunctionAtom) (string, error) {
	switch a := atom.(type) {
	case *ir.FunctionInvocation:
		b := append([]byte(a.Name), '(')
		b = w.appendOperandChain(b, a.Operands())
		b = append(b, ')', ';')
		return string(b), nil
	case *ir.Assignment:
		ops := a.Operands()
		b := w.appendOperandChain(nil, ops[:1])
		b = append(b, " = "...)
		b = w.appendOperandChain(b, ops[1:])
		b = append(b, ';')
		return string(b), nil
	case *ir.BinaryOp:
		ops := a.Operands()
		b := w.appendOperandChain(nil, ops[:1])
		b = append(b, " = "...)
		b = w.appendOperandChain(b, ops[1:2])
		b = append(b, ' ', byte(a.Op), ' ')
		b = w.appendOperandChain(b, ops[2:])
		b = append(b, ';')
		return string(b), nil
	case *ir.SampleTexture:
		ops := a.Operands()
		b := w.appendOperandChain(nil, ops[:1])
		b = append(b, " = texture("...)
		b = w.appendOperandChain(b, ops[1:])
		b = append(b, ')', ';')
		return string(b), nil
	default:
		return "", fmt.Errorf("glsl: unknown atom %T", atom)
	}
}

// appendOperandChain renders an operand list, turning indirection level
// changes between neighbours into subscript brackets. A rising level
// opens a bracket, a falling one closes; siblings at level zero are
// comma separated, siblings at a deeper level close and reopen.
func (w *Writer) appendOperandChain(b []byte, ops []ir.Operand) []byte {
	prev := uint8(0)
	for i, op := range ops {
		level := op.Indirection
		if i > 0 {
			switch {
			case level > prev:
				for j := prev; j < level; j++ {
					b = append(b, '[')
				}
			case level < prev:
				for j := level; j < prev; j++ {
					b = append(b, ']')
				}
				if level == 0 {
					b = append(b, ", "...)
				} else {
					b = append(b, '[')
				}
			case level == 0:
				b = append(b, ", "...)
			default:
				b = append(b, "]["...)
			}
		}
		b = append(b, w.paramName(op.Param)...)
		b = op.Mask.AppendSwizzle(b)
		prev = level
	}
	for j := uint8(0); j < prev; j++ {
		b = append(b, ']')
	}
	return b
}
