package ir

import (
	"errors"
	"fmt"
)

// FunctionAtom is an atomic IR node inside a Function. Every atom
// carries a group execution order placing it inside a coarse pipeline
// stage; the group key is the sole basis for ordering, and atoms with
// equal keys keep insertion order.
type FunctionAtom interface {
	// GroupOrder returns the atom's group execution order.
	GroupOrder() int
	// Operands returns the operand list. Writers walk it tracking
	// indirection levels; see the glsl and hlsl packages.
	Operands() []Operand

	atomKind()
}

// BinaryOperator is the operator of a BinaryOp atom.
type BinaryOperator byte

const (
	OpAdd BinaryOperator = '+'
	OpSub BinaryOperator = '-'
	OpMul BinaryOperator = '*'
	OpDiv BinaryOperator = '/'
)

var errNilOperand = errors.New("operand references no parameter")

// FunctionInvocation calls a library helper function.
type FunctionInvocation struct {
	Name       string
	ReturnType string
	Group      int
	ops        []Operand
}

func (f *FunctionInvocation) atomKind()           {}
func (f *FunctionInvocation) GroupOrder() int     { return f.Group }
func (f *FunctionInvocation) Operands() []Operand { return f.ops }

// NewFunctionInvocation creates an invocation of name at the given
// group order with a void return type.
func NewFunctionInvocation(name string, group int) *FunctionInvocation {
	return &FunctionInvocation{Name: name, ReturnType: "void", Group: group}
}

// PushOperand validates and appends an operand.
func (f *FunctionInvocation) PushOperand(op Operand) error {
	if op.Param == InvalidHandle {
		return fmt.Errorf("%s: %w", f.Name, errNilOperand)
	}
	f.ops = append(f.ops, op)
	return nil
}

// MustPush appends operands, panicking on a nil parameter. Built-in
// contributors use it: their operands come straight from resolve
// calls and cannot be invalid.
func (f *FunctionInvocation) MustPush(ops ...Operand) *FunctionInvocation {
	for _, op := range ops {
		if err := f.PushOperand(op); err != nil {
			panic(err)
		}
	}
	return f
}

// Compare defines a total order over invocation prototypes: names
// beginning with '_' sort strictly before any alphanumeric name, then
// names lexicographically, then return types, then arity, then
// pairwise operand direction and swizzled float count. The arena
// supplies operand arities. Returns -1, 0 or 1.
func (f *FunctionInvocation) Compare(other *FunctionInvocation, arena *ParameterArena) int {
	if c := compareNames(f.Name, other.Name); c != 0 {
		return c
	}
	if f.ReturnType != other.ReturnType {
		if f.ReturnType < other.ReturnType {
			return -1
		}
		return 1
	}
	if len(f.ops) != len(other.ops) {
		if len(f.ops) < len(other.ops) {
			return -1
		}
		return 1
	}
	for i := range f.ops {
		a, b := f.ops[i], other.ops[i]
		if a.Semantic != b.Semantic {
			if a.Semantic < b.Semantic {
				return -1
			}
			return 1
		}
		an := a.FloatCount(arena.Get(a.Param).Type.ComponentCount())
		bn := b.FloatCount(arena.Get(b.Param).Type.ComponentCount())
		if an != bn {
			if an < bn {
				return -1
			}
			return 1
		}
	}
	return 0
}

// compareNames orders names with the underscore exception: a leading
// '_' sorts before any alphanumeric name.
func compareNames(a, b string) int {
	au := len(a) > 0 && a[0] == '_'
	bu := len(b) > 0 && b[0] == '_'
	if au != bu {
		if au {
			return -1
		}
		return 1
	}
	if a == b {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

// Assignment writes its operands right-to-left: the single OUT operand
// is the lvalue, the remaining operands form the rvalue.
type Assignment struct {
	Group int
	ops   []Operand
}

func (a *Assignment) atomKind()           {}
func (a *Assignment) GroupOrder() int     { return a.Group }
func (a *Assignment) Operands() []Operand { return a.ops }

// NewAssignment creates dst = src at the given group order.
func NewAssignment(group int, dst, src Operand) *Assignment {
	if dst.Param == InvalidHandle || src.Param == InvalidHandle {
		panic(errNilOperand)
	}
	dst.Semantic = OperandOut
	src.Semantic = OperandIn
	return &Assignment{Group: group, ops: []Operand{dst, src}}
}

// BinaryOp computes dst = a op b.
type BinaryOp struct {
	Op    BinaryOperator
	Group int
	ops   []Operand
}

func (b *BinaryOp) atomKind()           {}
func (b *BinaryOp) GroupOrder() int     { return b.Group }
func (b *BinaryOp) Operands() []Operand { return b.ops }

// NewBinaryOp creates dst = a op b at the given group order.
func NewBinaryOp(op BinaryOperator, group int, a, b, dst Operand) *BinaryOp {
	if a.Param == InvalidHandle || b.Param == InvalidHandle || dst.Param == InvalidHandle {
		panic(errNilOperand)
	}
	a.Semantic = OperandIn
	b.Semantic = OperandIn
	dst.Semantic = OperandOut
	return &BinaryOp{Op: op, Group: group, ops: []Operand{dst, a, b}}
}

// SampleTexture computes dst = fetch(sampler, coord). The writer keys
// the fetch call off the sampler parameter's type.
type SampleTexture struct {
	Group int
	ops   []Operand
}

func (s *SampleTexture) atomKind()           {}
func (s *SampleTexture) GroupOrder() int     { return s.Group }
func (s *SampleTexture) Operands() []Operand { return s.ops }

// NewSampleTexture creates a texture fetch at the given group order.
func NewSampleTexture(group int, sampler, coord, dst Operand) *SampleTexture {
	if sampler.Param == InvalidHandle || coord.Param == InvalidHandle || dst.Param == InvalidHandle {
		panic(errNilOperand)
	}
	sampler.Semantic = OperandIn
	coord.Semantic = OperandIn
	dst.Semantic = OperandOut
	return &SampleTexture{Group: group, ops: []Operand{dst, sampler, coord}}
}
