package rtss

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/gogpu/rtss/ir"
)

// FogType is the fog contributor's type tag.
const FogType = "FFP_Fog"

// FogCalcMode selects where the fog factor is computed.
type FogCalcMode uint8

const (
	FogPerVertex FogCalcMode = iota
	FogPerPixel
)

// String returns the mode name used in fingerprints.
func (m FogCalcMode) String() string {
	if m == FogPerPixel {
		return "PER_PIXEL"
	}
	return "PER_VERTEX"
}

// contentFogFactor carries the per-vertex fog factor varying.
const contentFogFactor = ir.ContentCustomBegin + 1

// FogSRS blends the output colour towards the fog colour. Per-vertex
// computes the factor in the vertex stage and interpolates it;
// per-pixel passes eye-space depth and evaluates the equation per
// fragment.
type FogSRS struct {
	Mode FogMode
	Calc FogCalcMode

	// Override state captured from the pass when FogOverride is set;
	// the fog parameters then become literal constants instead of
	// host-supplied auto constants.
	override bool
	colour   ColourValue
	density  float32
	start    float32
	end      float32
}

// NewFogSRS returns a fog contributor with no fog configured.
func NewFogSRS() *FogSRS {
	return &FogSRS{Mode: FogNone, Calc: FogPerVertex}
}

func (f *FogSRS) Type() string        { return FogType }
func (f *FogSRS) ExecutionOrder() int { return OrderFog }

func (f *FogSRS) StateKey() string {
	key := fmt.Sprintf("%s,%s", f.Mode, f.Calc)
	if f.override {
		key += ",override"
	}
	return key
}

func (f *FogSRS) PreAddToRenderState(src, dst *Pass) bool {
	if src.FogOverride {
		f.override = true
		f.Mode = src.FogMode
		f.colour = src.FogColour
		f.density = src.FogDensity
		f.start = src.FogStart
		f.end = src.FogEnd
	}
	return f.Mode != FogNone
}

func (f *FogSRS) CopyFrom(other SubRenderState) {
	if o, ok := other.(*FogSRS); ok {
		*f = *o
	}
}

// vertexEquation returns the library function computing the per-vertex
// fog factor for the mode.
func (f *FogSRS) vertexEquation() string {
	switch f.Mode {
	case FogLinear:
		return "FFP_VertexFog_Linear"
	case FogExp:
		return "FFP_VertexFog_Exp"
	default:
		return "FFP_VertexFog_Exp2"
	}
}

// pixelEquation returns the library function evaluating fog per
// fragment from interpolated depth.
func (f *FogSRS) pixelEquation() string {
	switch f.Mode {
	case FogLinear:
		return "FFP_PixelFog_Linear"
	case FogExp:
		return "FFP_PixelFog_Exp"
	default:
		return "FFP_PixelFog_Exp2"
	}
}

// fogParams resolves the fog parameter vector (density, start, end,
// 1/(end-start)). With a pass-level override the vector is folded to a
// literal constant on both programs.
func (f *FogSRS) fogParams(prog *ir.Program) (ir.ParameterHandle, error) {
	if !f.override {
		return prog.ResolveAutoParameter(ir.AutoFogParams, ir.AutoExtra{})
	}
	scale := float32(0)
	if span := f.end - f.start; math32.Abs(span) > 1e-6 {
		scale = 1 / span
	}
	return prog.ResolveConstant("fog_params_override",
		ir.Vec4(f.density, f.start, f.end, scale)), nil
}

func (f *FogSRS) fogColour(prog *ir.Program) (ir.ParameterHandle, error) {
	if !f.override {
		return prog.ResolveAutoParameter(ir.AutoFogColour, ir.AutoExtra{})
	}
	return prog.ResolveConstant("fog_colour_override",
		ir.Vec4(f.colour[0], f.colour[1], f.colour[2], f.colour[3])), nil
}

func (f *FogSRS) CreateCPUSubPrograms(set *ir.ProgramSet) error {
	if f.Mode == FogNone {
		return nil
	}
	if f.Calc == FogPerPixel {
		return f.createPerPixel(set)
	}
	return f.createPerVertex(set)
}

func (f *FogSRS) createPerVertex(set *ir.ProgramSet) error {
	vs, fs := set.Vertex(), set.Fragment()
	vfn, ffn := vs.EntryFunction(), fs.EntryFunction()
	vs.AddDependency("FFPLib_Fog")
	fs.AddDependency("FFPLib_Common")

	worldView, err := vs.ResolveAutoParameter(ir.AutoWorldViewMatrix, ir.AutoExtra{})
	if err != nil {
		return err
	}
	params, err := f.fogParams(vs)
	if err != nil {
		return err
	}
	posIn, err := vfn.ResolveInput(ir.ContentPositionObjectSpace, ir.TypeFloat4)
	if err != nil {
		return err
	}
	factorOut, err := vfn.ResolveOutput(contentFogFactor, ir.TypeFloat1)
	if err != nil {
		return err
	}
	vfn.AddAtom(ir.NewFunctionInvocation(f.vertexEquation(), OrderFog).
		MustPush(ir.In(worldView), ir.In(posIn), ir.In(params), ir.Out(factorOut)))

	factorIn, err := ffn.ResolveInputFromOutput(set.Arena().Get(factorOut))
	if err != nil {
		return err
	}
	colour, err := f.fogColour(fs)
	if err != nil {
		return err
	}
	out, err := ffn.ResolveOutput(ir.ContentColorDiffuse, ir.TypeFloat4)
	if err != nil {
		return err
	}
	ffn.AddAtom(ir.NewFunctionInvocation("FFP_Lerp", OrderFSFog).
		MustPush(ir.In(colour), ir.InOut(out), ir.In(factorIn)))
	return nil
}

func (f *FogSRS) createPerPixel(set *ir.ProgramSet) error {
	vs, fs := set.Vertex(), set.Fragment()
	vfn, ffn := vs.EntryFunction(), fs.EntryFunction()
	vs.AddDependency("FFPLib_Fog")
	fs.AddDependency("FFPLib_Fog")

	worldView, err := vs.ResolveAutoParameter(ir.AutoWorldViewMatrix, ir.AutoExtra{})
	if err != nil {
		return err
	}
	posIn, err := vfn.ResolveInput(ir.ContentPositionObjectSpace, ir.TypeFloat4)
	if err != nil {
		return err
	}
	depthOut, err := vfn.ResolveOutput(ir.ContentDepthViewSpace, ir.TypeFloat1)
	if err != nil {
		return err
	}
	vfn.AddAtom(ir.NewFunctionInvocation("FFP_PixelFog_PositionDepth", OrderFog).
		MustPush(ir.In(worldView), ir.In(posIn), ir.Out(depthOut)))

	depthIn, err := ffn.ResolveInputFromOutput(set.Arena().Get(depthOut))
	if err != nil {
		return err
	}
	params, err := f.fogParams(fs)
	if err != nil {
		return err
	}
	colour, err := f.fogColour(fs)
	if err != nil {
		return err
	}
	out, err := ffn.ResolveOutput(ir.ContentColorDiffuse, ir.TypeFloat4)
	if err != nil {
		return err
	}
	ffn.AddAtom(ir.NewFunctionInvocation(f.pixelEquation(), OrderFSFog).
		MustPush(ir.In(depthIn), ir.In(params), ir.In(colour), ir.In(out), ir.Out(out)))
	return nil
}
