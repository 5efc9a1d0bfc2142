package rtss

import (
	"github.com/gogpu/rtss/ir"
)

// AlphaTestType is the alpha test contributor's type tag.
const AlphaTestType = "FFP_AlphaTest"

// AlphaTestSRS discards fragments whose output alpha fails the pass's
// comparison against the reference value.
type AlphaTestSRS struct {
	fnc CompareFunc
}

// NewAlphaTestSRS returns an alpha test contributor; PreAdd captures
// the comparison from the pass.
func NewAlphaTestSRS() *AlphaTestSRS {
	return &AlphaTestSRS{fnc: CompareAlwaysPass}
}

func (a *AlphaTestSRS) Type() string        { return AlphaTestType }
func (a *AlphaTestSRS) ExecutionOrder() int { return OrderAlphaTest }

func (a *AlphaTestSRS) StateKey() string { return a.fnc.String() }

func (a *AlphaTestSRS) PreAddToRenderState(src, dst *Pass) bool {
	a.fnc = src.AlphaRejectFunc
	return a.fnc != CompareAlwaysPass
}

func (a *AlphaTestSRS) CopyFrom(other SubRenderState) {
	if o, ok := other.(*AlphaTestSRS); ok {
		*a = *o
	}
}

func (a *AlphaTestSRS) CreateCPUSubPrograms(set *ir.ProgramSet) error {
	fs := set.Fragment()
	fn := fs.EntryFunction()
	fs.AddDependency("FFPLib_AlphaTest")

	fnc := fs.ResolveConstant("alpha_test_func", ir.Int(int32(a.fnc)))
	ref, err := fs.ResolveAutoParameter(ir.AutoSurfaceAlphaRejectionValue, ir.AutoExtra{})
	if err != nil {
		return err
	}
	out, err := fn.ResolveOutput(ir.ContentColorDiffuse, ir.TypeFloat4)
	if err != nil {
		return err
	}
	// A pass with no colour-producing contributor still needs the
	// output written before the comparison reads its alpha.
	if !writesParam(fn, out) {
		diffuse, err := fs.ResolveAutoParameter(ir.AutoSurfaceDiffuseColour, ir.AutoExtra{})
		if err != nil {
			return err
		}
		fn.AddAtom(ir.NewAssignment(OrderFSColourBegin, ir.Out(out), ir.In(diffuse)))
	}
	fn.AddAtom(ir.NewFunctionInvocation("FFP_AlphaTest", OrderFSAlphaTest).
		MustPush(ir.In(fnc), ir.In(ref), ir.In(out).WithMask(ir.MaskW)))
	return nil
}

// writesParam reports whether any atom already writes the parameter.
func writesParam(fn *ir.Function, h ir.ParameterHandle) bool {
	for _, atom := range fn.Atoms() {
		for _, op := range atom.Operands() {
			if op.Param == h && op.Semantic != ir.OperandIn {
				return true
			}
		}
	}
	return false
}
