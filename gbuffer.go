package rtss

import (
	"fmt"
	"strings"

	"github.com/gogpu/rtss/ir"
)

// GBufferType is the deferred-shading contributor's type tag.
const GBufferType = "SGX_GBuffer"

// GBufferTarget selects what one colour output of the gbuffer carries.
type GBufferTarget uint8

const (
	GBufferDepth GBufferTarget = iota
	GBufferViewPosition
	GBufferNormal
	GBufferNormalViewDepth
	GBufferDiffuseSpecular
)

// String returns the target name used in fingerprints.
func (t GBufferTarget) String() string {
	switch t {
	case GBufferDepth:
		return "DEPTH"
	case GBufferViewPosition:
		return "VIEWPOS"
	case GBufferNormal:
		return "NORMAL"
	case GBufferNormalViewDepth:
		return "NORMAL_VIEWDEPTH"
	case GBufferDiffuseSpecular:
		return "DIFFUSE_SPECULAR"
	default:
		return "unknown"
	}
}

// maxGBufferTargets is the colour output limit for deferred targets.
const maxGBufferTargets = 2

// GBufferSRS writes geometric surface data into up to two colour
// outputs for a deferred pipeline. When active it replaces the
// lighting contributor entirely.
type GBufferSRS struct {
	// Targets lists what each colour output carries, in output order.
	Targets []GBufferTarget
	// LinearDepth writes linearized depth instead of the default
	// z-over-far-clip convention.
	LinearDepth bool
}

// NewGBufferSRS returns a gbuffer contributor writing normal+depth.
func NewGBufferSRS() *GBufferSRS {
	return &GBufferSRS{Targets: []GBufferTarget{GBufferNormalViewDepth}}
}

func (g *GBufferSRS) Type() string        { return GBufferType }
func (g *GBufferSRS) ExecutionOrder() int { return OrderLighting }

func (g *GBufferSRS) StateKey() string {
	names := make([]string, len(g.Targets))
	for i, t := range g.Targets {
		names[i] = t.String()
	}
	key := strings.Join(names, ",")
	if g.LinearDepth {
		key += ",linear"
	}
	return key
}

func (g *GBufferSRS) PreAddToRenderState(src, dst *Pass) bool {
	return len(g.Targets) > 0
}

func (g *GBufferSRS) CopyFrom(other SubRenderState) {
	if o, ok := other.(*GBufferSRS); ok {
		targets := append([]GBufferTarget(nil), o.Targets...)
		*g = *o
		g.Targets = targets
	}
}

// needsNormal reports whether any target consumes the view normal.
func (g *GBufferSRS) needsNormal() bool {
	for _, t := range g.Targets {
		if t == GBufferNormal || t == GBufferNormalViewDepth {
			return true
		}
	}
	return false
}

// needsPosition reports whether any target consumes the view position.
func (g *GBufferSRS) needsPosition() bool {
	for _, t := range g.Targets {
		if t != GBufferDiffuseSpecular && t != GBufferNormal {
			return true
		}
	}
	return false
}

func (g *GBufferSRS) CreateCPUSubPrograms(set *ir.ProgramSet) error {
	if len(g.Targets) > maxGBufferTargets {
		return fmt.Errorf("%d gbuffer targets: %w", len(g.Targets), ErrCapacityExceeded)
	}
	vs, fs := set.Vertex(), set.Fragment()
	vfn, ffn := vs.EntryFunction(), fs.EntryFunction()
	vs.AddDependency("SGXLib_GBuffer")
	fs.AddDependency("SGXLib_GBuffer")

	normal := ir.InvalidHandle
	pos := ir.InvalidHandle
	var err error
	if g.needsNormal() {
		if normal, err = g.varyingNormal(set, vfn, ffn); err != nil {
			return err
		}
	}
	if g.needsPosition() {
		if pos, err = g.varyingPosition(set, vfn, ffn); err != nil {
			return err
		}
	}

	targetContents := [maxGBufferTargets]ir.Content{ir.ContentColorDiffuse, ir.ContentColorSpecular}
	for i, target := range g.Targets {
		out, err := ffn.ResolveOutput(targetContents[i], ir.TypeFloat4)
		if err != nil {
			return err
		}
		if err := g.fillTarget(fs, ffn, target, normal, pos, out); err != nil {
			return err
		}
	}
	return nil
}

func (g *GBufferSRS) varyingNormal(set *ir.ProgramSet, vfn, ffn *ir.Function) (ir.ParameterHandle, error) {
	vs := set.Vertex()
	normalMatrix, err := vs.ResolveAutoParameter(ir.AutoNormalMatrix, ir.AutoExtra{})
	if err != nil {
		return ir.InvalidHandle, err
	}
	in, err := vfn.ResolveInput(ir.ContentNormalObjectSpace, ir.TypeFloat3)
	if err != nil {
		return ir.InvalidHandle, err
	}
	out, err := vfn.ResolveOutput(ir.ContentNormalViewSpace, ir.TypeFloat3)
	if err != nil {
		return ir.InvalidHandle, err
	}
	vfn.AddAtom(ir.NewFunctionInvocation("SGX_TransformNormal", OrderLighting).
		MustPush(ir.In(normalMatrix), ir.In(in), ir.Out(out)))
	return ffn.ResolveInputFromOutput(set.Arena().Get(out))
}

func (g *GBufferSRS) varyingPosition(set *ir.ProgramSet, vfn, ffn *ir.Function) (ir.ParameterHandle, error) {
	vs := set.Vertex()
	worldView, err := vs.ResolveAutoParameter(ir.AutoWorldViewMatrix, ir.AutoExtra{})
	if err != nil {
		return ir.InvalidHandle, err
	}
	in, err := vfn.ResolveInput(ir.ContentPositionObjectSpace, ir.TypeFloat4)
	if err != nil {
		return ir.InvalidHandle, err
	}
	out, err := vfn.ResolveOutput(ir.ContentPositionViewSpace, ir.TypeFloat4)
	if err != nil {
		return ir.InvalidHandle, err
	}
	vfn.AddAtom(ir.NewFunctionInvocation("SGX_TransformPosition", OrderLighting).
		MustPush(ir.In(worldView), ir.In(in), ir.Out(out)))
	return ffn.ResolveInputFromOutput(set.Arena().Get(out))
}

// fillTarget emits the atoms writing one colour output.
func (g *GBufferSRS) fillTarget(fs *ir.Program, fn *ir.Function, target GBufferTarget,
	normal, pos, out ir.ParameterHandle) error {

	group := OrderFSColourBegin + 1
	switch target {
	case GBufferDepth:
		far, err := fs.ResolveAutoParameter(ir.AutoFarClipDistance, ir.AutoExtra{})
		if err != nil {
			return err
		}
		fn.AddAtom(ir.NewFunctionInvocation(g.depthFunc("SGX_GBuffer_Depth"), group).
			MustPush(ir.In(pos), ir.In(far), ir.Out(out)))
	case GBufferViewPosition:
		fn.AddAtom(ir.NewAssignment(group, ir.Out(out), ir.In(pos)))
	case GBufferNormal:
		fn.AddAtom(ir.NewFunctionInvocation("SGX_GBuffer_Normal", group).
			MustPush(ir.In(normal), ir.Out(out)))
	case GBufferNormalViewDepth:
		far, err := fs.ResolveAutoParameter(ir.AutoFarClipDistance, ir.AutoExtra{})
		if err != nil {
			return err
		}
		fn.AddAtom(ir.NewFunctionInvocation(g.depthFunc("SGX_GBuffer_NormalViewDepth"), group).
			MustPush(ir.In(normal), ir.In(pos), ir.In(far), ir.Out(out)))
	case GBufferDiffuseSpecular:
		diffuse, err := fs.ResolveAutoParameter(ir.AutoSurfaceDiffuseColour, ir.AutoExtra{})
		if err != nil {
			return err
		}
		shininess, err := fs.ResolveAutoParameter(ir.AutoSurfaceShininess, ir.AutoExtra{})
		if err != nil {
			return err
		}
		fn.AddAtom(ir.NewFunctionInvocation("SGX_GBuffer_DiffuseSpecular", group).
			MustPush(ir.In(diffuse), ir.In(shininess), ir.Out(out)))
	}
	return nil
}

// depthFunc appends the linear-depth suffix when configured.
func (g *GBufferSRS) depthFunc(base string) string {
	if g.LinearDepth {
		return base + "_Linear"
	}
	return base
}
