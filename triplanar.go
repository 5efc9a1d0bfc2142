package rtss

import (
	"fmt"
	"strconv"

	"github.com/gogpu/rtss/ir"
)

// TriplanarType is the triplanar texturing contributor's type tag.
const TriplanarType = "SGX_TriplanarTexturing"

// TriplanarSRS samples three textures along the object-space axes,
// weighted by the squared normal components. Parameters carries
// (sharpness, tile, offset).
type TriplanarSRS struct {
	// TextureNames are the three axis textures, X/Y/Z order.
	TextureNames [3]string
	// Parameters is (sharpness, tile, offset).
	Parameters [3]float32
}

// NewTriplanarSRS returns a triplanar contributor with neutral
// parameters.
func NewTriplanarSRS() *TriplanarSRS {
	return &TriplanarSRS{Parameters: [3]float32{1, 1, 0}}
}

func (t *TriplanarSRS) Type() string        { return TriplanarType }
func (t *TriplanarSRS) ExecutionOrder() int { return OrderTexturing }

func (t *TriplanarSRS) StateKey() string {
	return fmt.Sprintf("%s,%s,%s,%v,%v,%v",
		t.TextureNames[0], t.TextureNames[1], t.TextureNames[2],
		t.Parameters[0], t.Parameters[1], t.Parameters[2])
}

func (t *TriplanarSRS) PreAddToRenderState(src, dst *Pass) bool {
	return t.TextureNames[0] != "" && t.TextureNames[1] != "" && t.TextureNames[2] != ""
}

func (t *TriplanarSRS) CopyFrom(other SubRenderState) {
	if o, ok := other.(*TriplanarSRS); ok {
		*t = *o
	}
}

func (t *TriplanarSRS) CreateCPUSubPrograms(set *ir.ProgramSet) error {
	vs, fs := set.Vertex(), set.Fragment()
	vfn, ffn := vs.EntryFunction(), fs.EntryFunction()
	fs.AddDependency("SGXLib_TriplanarTexturing")

	// The fragment stage needs the object-space normal and position;
	// both travel as varyings written straight through.
	normalIn, err := vfn.ResolveInput(ir.ContentNormalObjectSpace, ir.TypeFloat3)
	if err != nil {
		return err
	}
	normalOut, err := vfn.ResolveOutput(ir.ContentNormalObjectSpace, ir.TypeFloat3)
	if err != nil {
		return err
	}
	posIn, err := vfn.ResolveInput(ir.ContentPositionObjectSpace, ir.TypeFloat4)
	if err != nil {
		return err
	}
	posOut, err := vfn.ResolveOutput(ir.ContentPositionWorldSpace, ir.TypeFloat4)
	if err != nil {
		return err
	}
	vfn.AddAtom(ir.NewAssignment(OrderTexturing, ir.Out(normalOut), ir.In(normalIn)))
	vfn.AddAtom(ir.NewAssignment(OrderTexturing, ir.Out(posOut), ir.In(posIn)))

	normal, err := ffn.ResolveInputFromOutput(set.Arena().Get(normalOut))
	if err != nil {
		return err
	}
	pos, err := ffn.ResolveInputFromOutput(set.Arena().Get(posOut))
	if err != nil {
		return err
	}

	samplers := make([]ir.ParameterHandle, 3)
	for i := range samplers {
		samplers[i], err = fs.ResolveParameter(ir.TypeSampler2D, i, ir.VariabilityGlobal,
			"triplanar_sampler"+strconv.Itoa(i), 0)
		if err != nil {
			return err
		}
	}
	params := fs.ResolveConstant("triplanar_params",
		ir.Vec3(t.Parameters[0], t.Parameters[1], t.Parameters[2]))
	out, err := ffn.ResolveOutput(ir.ContentColorDiffuse, ir.TypeFloat4)
	if err != nil {
		return err
	}

	ffn.AddAtom(ir.NewFunctionInvocation("SGX_TriplanarTexturing", OrderFSTexturing).
		MustPush(
			ir.In(normal), ir.In(pos),
			ir.In(samplers[0]), ir.In(samplers[1]), ir.In(samplers[2]),
			ir.In(params), ir.Out(out),
		))
	return nil
}
