package rtss

import (
	"fmt"

	"github.com/gogpu/rtss/ir"
)

// TransformType is the transform contributor's type tag.
const TransformType = "FFP_Transform"

// TransformSRS projects positions into clip space. Optionally it
// consumes a per-instance 3x4 world matrix from a texture coordinate
// slot for instanced rendering, and derives the point sprite size from
// eye-space depth and the point-params auto constant.
type TransformSRS struct {
	// Instanced enables the per-instance world matrix path.
	Instanced bool
	// TexCoordSlot is the texture coordinate set carrying the instance
	// matrix rows.
	TexCoordSlot int
	// PointSprites enables point size derivation.
	PointSprites bool
}

// NewTransformSRS returns a transform contributor with defaults.
func NewTransformSRS() *TransformSRS {
	return &TransformSRS{TexCoordSlot: 3}
}

func (t *TransformSRS) Type() string        { return TransformType }
func (t *TransformSRS) ExecutionOrder() int { return OrderTransform }

func (t *TransformSRS) StateKey() string {
	if t.Instanced {
		return fmt.Sprintf("instanced,slot=%d,sprites=%t", t.TexCoordSlot, t.PointSprites)
	}
	return fmt.Sprintf("sprites=%t", t.PointSprites)
}

func (t *TransformSRS) PreAddToRenderState(src, dst *Pass) bool {
	if src.PointSpritesEnabled {
		t.PointSprites = true
	}
	return true
}

func (t *TransformSRS) CopyFrom(other SubRenderState) {
	if o, ok := other.(*TransformSRS); ok {
		*t = *o
	}
}

func (t *TransformSRS) CreateCPUSubPrograms(set *ir.ProgramSet) error {
	vs := set.Vertex()
	fn := vs.EntryFunction()
	vs.AddDependency("FFPLib_Transform")

	posIn, err := fn.ResolveInput(ir.ContentPositionObjectSpace, ir.TypeFloat4)
	if err != nil {
		return err
	}
	posOut, err := fn.ResolveOutput(ir.ContentPositionProjectiveSpace, ir.TypeFloat4)
	if err != nil {
		return err
	}

	if t.Instanced {
		if err := t.addInstancedTransform(set, posIn, posOut); err != nil {
			return err
		}
	} else {
		wvp, err := vs.ResolveAutoParameter(ir.AutoWorldViewProjMatrix, ir.AutoExtra{})
		if err != nil {
			return err
		}
		fn.AddAtom(ir.NewFunctionInvocation("FFP_Transform", OrderTransform).
			MustPush(ir.In(wvp), ir.In(posIn), ir.Out(posOut)))
	}

	if t.PointSprites {
		if err := t.addPointSpriteSize(set, posIn); err != nil {
			return err
		}
	}
	return nil
}

// addInstancedTransform reads the per-instance world matrix from the
// configured texture coordinate set and applies it before the shared
// view-projection. The instance matrix rows arrive row-major, so the
// column-major flag is cleared on the vertex program.
func (t *TransformSRS) addInstancedTransform(set *ir.ProgramSet, posIn, posOut ir.ParameterHandle) error {
	vs := set.Vertex()
	fn := vs.EntryFunction()
	vs.ColumnMajorMatrices = false
	vs.AddDependency("SGXLib_InstancedTransform")

	world, err := fn.ResolveInput(ir.ContentTextureCoordinate(t.TexCoordSlot), ir.TypeMatrix3x4)
	if err != nil {
		return err
	}
	viewProj, err := vs.ResolveAutoParameter(ir.AutoViewProjMatrix, ir.AutoExtra{})
	if err != nil {
		return err
	}
	posWorld, err := fn.ResolveLocal(ir.ContentPositionWorldSpace, ir.TypeFloat4)
	if err != nil {
		return err
	}

	fn.AddAtom(ir.NewFunctionInvocation("SGX_InstancedTransform", OrderTransform).
		MustPush(ir.In(world), ir.In(posIn), ir.Out(posWorld)))
	fn.AddAtom(ir.NewFunctionInvocation("FFP_Transform", OrderTransform).
		MustPush(ir.In(viewProj), ir.In(posWorld), ir.Out(posOut)))

	// Rotate the object-space normal by the instance matrix so later
	// stages operate on the instanced orientation.
	normalIn, err := fn.ResolveInput(ir.ContentNormalObjectSpace, ir.TypeFloat3)
	if err != nil {
		return err
	}
	normalWorld, err := fn.ResolveLocal(ir.ContentNormalWorldSpace, ir.TypeFloat3)
	if err != nil {
		return err
	}
	fn.AddAtom(ir.NewFunctionInvocation("SGX_InstancedRotate", OrderTransform).
		MustPush(ir.In(world), ir.In(normalIn), ir.Out(normalWorld)))
	return nil
}

// addPointSpriteSize derives gl_PointSize-style output from eye-space
// depth and the point-params attenuation vector.
func (t *TransformSRS) addPointSpriteSize(set *ir.ProgramSet, posIn ir.ParameterHandle) error {
	vs := set.Vertex()
	fn := vs.EntryFunction()

	worldView, err := vs.ResolveAutoParameter(ir.AutoWorldViewMatrix, ir.AutoExtra{})
	if err != nil {
		return err
	}
	pointParams, err := vs.ResolveAutoParameter(ir.AutoPointParams, ir.AutoExtra{})
	if err != nil {
		return err
	}
	depth, err := fn.ResolveLocal(ir.ContentDepthViewSpace, ir.TypeFloat1)
	if err != nil {
		return err
	}
	size, err := fn.ResolveOutput(ir.ContentPointSpriteSize, ir.TypeFloat1)
	if err != nil {
		return err
	}

	fn.AddAtom(ir.NewFunctionInvocation("FFP_PixelFog_PositionDepth", OrderTransform+1).
		MustPush(ir.In(worldView), ir.In(posIn), ir.Out(depth)))
	fn.AddAtom(ir.NewFunctionInvocation("FFP_DerivePointSize", OrderTransform+1).
		MustPush(ir.In(pointParams), ir.In(depth), ir.Out(size)))
	return nil
}
