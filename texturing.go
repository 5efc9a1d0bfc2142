package rtss

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/rtss/ir"
)

// TexturingType is the texturing contributor's type tag.
const TexturingType = "FFP_Texturing"

// MaxTextureUnits is the backend texture unit limit.
const MaxTextureUnits = 16

// contentVertexColour carries the tracked vertex colour varying.
const contentVertexColour = ir.ContentCustomBegin + 2

// TexturingSRS samples the pass's texture units and blends them over
// the accumulated colour per their declarative layer operations.
type TexturingSRS struct {
	units []TextureUnit

	// lightingActive tells the contributor whether an earlier stage
	// seeds the colour output; without one it seeds white itself, or
	// the interpolated vertex colour when the pass tracks it.
	lightingActive bool
	vertexColour   bool
}

// NewTexturingSRS returns an empty texturing contributor; PreAdd
// captures the units from the pass.
func NewTexturingSRS() *TexturingSRS {
	return &TexturingSRS{}
}

func (t *TexturingSRS) Type() string        { return TexturingType }
func (t *TexturingSRS) ExecutionOrder() int { return OrderTexturing }

func (t *TexturingSRS) StateKey() string {
	ops := make([]string, len(t.units))
	for i, u := range t.units {
		ops[i] = u.Op.String()
	}
	key := fmt.Sprintf("%d unit,%s", len(t.units), strings.Join(ops, ","))
	if t.vertexColour {
		key += ",vc"
	}
	return key
}

func (t *TexturingSRS) PreAddToRenderState(src, dst *Pass) bool {
	t.units = append([]TextureUnit(nil), src.TextureUnits...)
	t.lightingActive = src.LightingEnabled && src.LightCount() > 0
	t.vertexColour = src.VertexColourTracking
	return len(t.units) > 0
}

func (t *TexturingSRS) CopyFrom(other SubRenderState) {
	if o, ok := other.(*TexturingSRS); ok {
		units := append([]TextureUnit(nil), o.units...)
		*t = *o
		t.units = units
	}
}

func (t *TexturingSRS) CreateCPUSubPrograms(set *ir.ProgramSet) error {
	if len(t.units) > MaxTextureUnits {
		return fmt.Errorf("%d texture units: %w", len(t.units), ErrCapacityExceeded)
	}
	if err := t.createVertexPassthrough(set); err != nil {
		return err
	}
	return t.createFragmentBlending(set)
}

// createVertexPassthrough forwards each referenced texture coordinate
// set to the fragment stage unchanged.
func (t *TexturingSRS) createVertexPassthrough(set *ir.ProgramSet) error {
	fn := set.Vertex().EntryFunction()
	done := make(map[int]bool)
	for _, u := range t.units {
		if done[u.TexCoordSet] {
			continue
		}
		done[u.TexCoordSet] = true
		in, err := fn.ResolveInput(ir.ContentTextureCoordinate(u.TexCoordSet), ir.TypeFloat2)
		if err != nil {
			return err
		}
		out, err := fn.ResolveOutput(ir.ContentTextureCoordinate(u.TexCoordSet), ir.TypeFloat2)
		if err != nil {
			return err
		}
		fn.AddAtom(ir.NewAssignment(OrderTexturing, ir.Out(out), ir.In(in)))
	}
	return nil
}

func (t *TexturingSRS) createFragmentBlending(set *ir.ProgramSet) error {
	fs := set.Fragment()
	fn := fs.EntryFunction()
	fs.AddDependency("FFPLib_Texturing")

	out, err := fn.ResolveOutput(ir.ContentColorDiffuse, ir.TypeFloat4)
	if err != nil {
		return err
	}
	vfn := set.Vertex().EntryFunction()
	if !t.lightingActive {
		if t.vertexColour {
			if err := t.seedVertexColour(set, fn, vfn, out); err != nil {
				return err
			}
		} else {
			white := fs.ResolveConstant("base_colour", ir.Vec4(1, 1, 1, 1))
			fn.AddAtom(ir.NewAssignment(OrderFSColourBegin, ir.Out(out), ir.In(white)))
		}
	}

	for i, u := range t.units {
		sampler, err := fs.ResolveParameter(u.SamplerType(), i, ir.VariabilityGlobal,
			"texture_sampler"+strconv.Itoa(i), 0)
		if err != nil {
			return err
		}
		coordOut, err := vfn.ResolveOutput(ir.ContentTextureCoordinate(u.TexCoordSet), ir.TypeFloat2)
		if err != nil {
			return err
		}
		coord, err := fn.ResolveInputFromOutput(set.Arena().Get(coordOut))
		if err != nil {
			return err
		}
		texel, err := fn.ResolveLocal(ir.ContentCustomBegin+ir.Content(100+i), ir.TypeFloat4)
		if err != nil {
			return err
		}
		fn.AddAtom(ir.NewSampleTexture(OrderFSSampling, ir.In(sampler), ir.In(coord), ir.Out(texel)))
		t.addBlend(fn, u.Op, texel, out)
	}
	return nil
}

// seedVertexColour routes the tracked vertex colour attribute through
// a varying and seeds the output colour from it.
func (t *TexturingSRS) seedVertexColour(set *ir.ProgramSet, fn, vfn *ir.Function, out ir.ParameterHandle) error {
	colourIn, err := vfn.ResolveInput(ir.ContentColorDiffuse, ir.TypeFloat4)
	if err != nil {
		return err
	}
	colourOut, err := vfn.ResolveOutput(contentVertexColour, ir.TypeFloat4)
	if err != nil {
		return err
	}
	vfn.AddAtom(ir.NewAssignment(OrderColour, ir.Out(colourOut), ir.In(colourIn)))

	colour, err := fn.ResolveInputFromOutput(set.Arena().Get(colourOut))
	if err != nil {
		return err
	}
	fn.AddAtom(ir.NewAssignment(OrderFSColourBegin, ir.Out(out), ir.In(colour)))
	return nil
}

// addBlend applies one layer operation over the accumulated colour.
func (t *TexturingSRS) addBlend(fn *ir.Function, op LayerOp, texel, out ir.ParameterHandle) {
	switch op {
	case LayerReplace:
		fn.AddAtom(ir.NewAssignment(OrderFSTexturing, ir.Out(out), ir.In(texel)))
	case LayerAdd:
		fn.AddAtom(ir.NewBinaryOp(ir.OpAdd, OrderFSTexturing, ir.InOut(out), ir.In(texel), ir.InOut(out)))
	case LayerModulate:
		fn.AddAtom(ir.NewBinaryOp(ir.OpMul, OrderFSTexturing, ir.InOut(out), ir.In(texel), ir.InOut(out)))
	case LayerAlphaBlend:
		fn.AddAtom(ir.NewFunctionInvocation("FFP_Lerp", OrderFSTexturing).
			MustPush(ir.In(texel), ir.InOut(out), ir.In(texel).WithMask(ir.MaskW)))
	}
}
