package rtss

import (
	"fmt"
	"strconv"

	"github.com/chewxy/math32"
	"github.com/gogpu/rtss/ir"
)

// PerPixelLightingType is the lighting contributor's type tag.
const PerPixelLightingType = "SGX_PerPixelLighting"

// PerPixelLightingSRS accumulates diffuse and optionally specular
// contributions from point, directional and spot lights per fragment.
// Light values arrive through per-light auto-constant arrays indexed
// directional lights first, then point, then spot.
type PerPixelLightingSRS struct {
	// Specular enables the specular accumulation path.
	Specular bool

	// SpotInnerAngle/SpotOuterAngle/SpotFalloff, when set, fold the
	// spotlight cone into a literal constant instead of the
	// host-supplied spotlight_params. Angles are in degrees.
	SpotInnerAngle float32
	SpotOuterAngle float32
	SpotFalloff    float32

	directional int
	point       int
	spot        int
}

// NewPerPixelLightingSRS returns a lighting contributor with specular
// enabled.
func NewPerPixelLightingSRS() *PerPixelLightingSRS {
	return &PerPixelLightingSRS{Specular: true}
}

func (l *PerPixelLightingSRS) Type() string        { return PerPixelLightingType }
func (l *PerPixelLightingSRS) ExecutionOrder() int { return OrderLighting }

func (l *PerPixelLightingSRS) StateKey() string {
	return fmt.Sprintf("d%d,p%d,s%d,spec=%t", l.directional, l.point, l.spot, l.Specular)
}

func (l *PerPixelLightingSRS) PreAddToRenderState(src, dst *Pass) bool {
	if !src.LightingEnabled {
		return false
	}
	l.directional = src.DirectionalLights
	l.point = src.PointLights
	l.spot = src.SpotLights
	return l.directional+l.point+l.spot > 0
}

func (l *PerPixelLightingSRS) CopyFrom(other SubRenderState) {
	if o, ok := other.(*PerPixelLightingSRS); ok {
		*l = *o
	}
}

// lightUniforms bundles the per-light array handles resolved on the
// fragment program.
type lightUniforms struct {
	diffuse   ir.ParameterHandle
	specular  ir.ParameterHandle
	position  ir.ParameterHandle
	direction ir.ParameterHandle
	atten     ir.ParameterHandle
	spot      ir.ParameterHandle
}

func (l *PerPixelLightingSRS) CreateCPUSubPrograms(set *ir.ProgramSet) error {
	if err := l.createVertexTransforms(set); err != nil {
		return err
	}
	return l.createFragmentLighting(set)
}

// createVertexTransforms moves the surface normal and position into
// view space and hands them to the fragment stage.
func (l *PerPixelLightingSRS) createVertexTransforms(set *ir.ProgramSet) error {
	vs := set.Vertex()
	fn := vs.EntryFunction()
	vs.AddDependency("SGXLib_PerPixelLighting")

	normalMatrix, err := vs.ResolveAutoParameter(ir.AutoNormalMatrix, ir.AutoExtra{})
	if err != nil {
		return err
	}
	worldView, err := vs.ResolveAutoParameter(ir.AutoWorldViewMatrix, ir.AutoExtra{})
	if err != nil {
		return err
	}
	normalIn, err := fn.ResolveInput(ir.ContentNormalObjectSpace, ir.TypeFloat3)
	if err != nil {
		return err
	}
	posIn, err := fn.ResolveInput(ir.ContentPositionObjectSpace, ir.TypeFloat4)
	if err != nil {
		return err
	}
	normalOut, err := fn.ResolveOutput(ir.ContentNormalViewSpace, ir.TypeFloat3)
	if err != nil {
		return err
	}
	posOut, err := fn.ResolveOutput(ir.ContentPositionViewSpace, ir.TypeFloat4)
	if err != nil {
		return err
	}

	fn.AddAtom(ir.NewFunctionInvocation("SGX_TransformNormal", OrderLighting).
		MustPush(ir.In(normalMatrix), ir.In(normalIn), ir.Out(normalOut)))
	fn.AddAtom(ir.NewFunctionInvocation("SGX_TransformPosition", OrderLighting).
		MustPush(ir.In(worldView), ir.In(posIn), ir.Out(posOut)))
	return nil
}

func (l *PerPixelLightingSRS) createFragmentLighting(set *ir.ProgramSet) error {
	fs := set.Fragment()
	fn := fs.EntryFunction()
	fs.AddDependency("SGXLib_PerPixelLighting")

	vfn := set.Vertex().EntryFunction()
	normalOut, err := vfn.ResolveOutput(ir.ContentNormalViewSpace, ir.TypeFloat3)
	if err != nil {
		return err
	}
	posOut, err := vfn.ResolveOutput(ir.ContentPositionViewSpace, ir.TypeFloat4)
	if err != nil {
		return err
	}
	normal, err := fn.ResolveInputFromOutput(set.Arena().Get(normalOut))
	if err != nil {
		return err
	}
	pos, err := fn.ResolveInputFromOutput(set.Arena().Get(posOut))
	if err != nil {
		return err
	}

	uniforms, err := l.resolveLightUniforms(fs)
	if err != nil {
		return err
	}
	shininess, err := fs.ResolveAutoParameter(ir.AutoSurfaceShininess, ir.AutoExtra{})
	if err != nil {
		return err
	}
	sceneColour, err := fs.ResolveAutoParameter(ir.AutoDerivedSceneColour, ir.AutoExtra{})
	if err != nil {
		return err
	}

	out, err := fn.ResolveOutput(ir.ContentColorDiffuse, ir.TypeFloat4)
	if err != nil {
		return err
	}
	specularAcc := ir.InvalidHandle
	if l.Specular {
		specularAcc, err = fn.ResolveLocal(ir.ContentColorSpecular, ir.TypeFloat4)
		if err != nil {
			return err
		}
	}

	// Diffuse accumulates straight into the colour output just above
	// the colour-begin group, so texturing at its later group blends
	// over the lit base. Specular accumulates in a local and is added
	// at colour-end, after texturing, so highlights are not modulated
	// by the texture layers.
	group := OrderFSColourBegin + 1
	fn.AddAtom(ir.NewAssignment(group, ir.Out(out), ir.In(sceneColour)))
	if l.Specular {
		zero := fs.ResolveConstant("zero_colour", ir.Vec4(0, 0, 0, 0))
		fn.AddAtom(ir.NewAssignment(group, ir.Out(specularAcc), ir.In(zero)))
	}

	globalIndex := 0
	for i := 0; i < l.directional; i++ {
		l.addDirectionalLight(fs, fn, group, normal, uniforms, shininess, i, globalIndex, out, specularAcc)
		globalIndex++
	}
	for i := 0; i < l.point; i++ {
		l.addPointLight(fs, fn, group, pos, normal, uniforms, shininess, i, globalIndex, out, specularAcc)
		globalIndex++
	}
	for i := 0; i < l.spot; i++ {
		if err := l.addSpotLight(fs, fn, group, pos, normal, uniforms, shininess, i, globalIndex, out, specularAcc); err != nil {
			return err
		}
		globalIndex++
	}

	if l.Specular {
		fn.AddAtom(ir.NewBinaryOp(ir.OpAdd, OrderFSColourEnd, ir.InOut(out), ir.In(specularAcc), ir.InOut(out)))
	}
	return nil
}

// resolveLightUniforms resolves the per-light arrays. Colour arrays
// span all lights; position and attenuation cover point and spot
// lights, direction covers directional and spot lights.
func (l *PerPixelLightingSRS) resolveLightUniforms(fs *ir.Program) (lightUniforms, error) {
	var u lightUniforms
	var err error
	total := l.directional + l.point + l.spot

	u.diffuse, err = fs.ResolveAutoParameter(ir.AutoLightDiffuseColourArray, ir.AutoExtra{Int: int32(total)})
	if err != nil {
		return u, err
	}
	if l.Specular {
		u.specular, err = fs.ResolveAutoParameter(ir.AutoLightSpecularColourArray, ir.AutoExtra{Int: int32(total)})
		if err != nil {
			return u, err
		}
	}
	if n := l.point + l.spot; n > 0 {
		u.position, err = fs.ResolveAutoParameter(ir.AutoLightPositionViewSpaceArray, ir.AutoExtra{Int: int32(n)})
		if err != nil {
			return u, err
		}
		u.atten, err = fs.ResolveAutoParameter(ir.AutoLightAttenuationArray, ir.AutoExtra{Int: int32(n)})
		if err != nil {
			return u, err
		}
	}
	if n := l.directional + l.spot; n > 0 {
		u.direction, err = fs.ResolveAutoParameter(ir.AutoLightDirectionViewSpaceArray, ir.AutoExtra{Int: int32(n)})
		if err != nil {
			return u, err
		}
	}
	if l.spot > 0 {
		u.spot, err = l.resolveSpotParams(fs)
		if err != nil {
			return u, err
		}
	}
	return u, nil
}

// resolveSpotParams returns the spotlight cone vector: host-supplied
// unless the contributor carries a literal cone configuration, in
// which case the cosines are folded on the CPU.
func (l *PerPixelLightingSRS) resolveSpotParams(fs *ir.Program) (ir.ParameterHandle, error) {
	if l.SpotOuterAngle == 0 {
		return fs.ResolveAutoParameter(ir.AutoSpotlightParamsArray, ir.AutoExtra{Int: int32(l.spot)})
	}
	const degToRad = math32.Pi / 180
	inner := math32.Cos(l.SpotInnerAngle * 0.5 * degToRad)
	outer := math32.Cos(l.SpotOuterAngle * 0.5 * degToRad)
	return fs.ResolveConstant("spotlight_params_custom",
		ir.Vec4(inner, outer, l.SpotFalloff, 1)), nil
}

// indexConstant returns an int literal parameter for subscripting the
// light arrays.
func indexConstant(fs *ir.Program, i int) ir.ParameterHandle {
	return fs.ResolveConstant("i"+strconv.Itoa(i), ir.Int(int32(i)))
}

func (l *PerPixelLightingSRS) addDirectionalLight(fs *ir.Program, fn *ir.Function, group int,
	normal ir.ParameterHandle, u lightUniforms, shininess ir.ParameterHandle,
	dirIndex, globalIndex int, diffuseAcc, specularAcc ir.ParameterHandle) {

	di := indexConstant(fs, dirIndex)
	gi := indexConstant(fs, globalIndex)

	name := "SGX_Light_Directional_Diffuse"
	if l.Specular {
		name = "SGX_Light_Directional_DiffuseSpecular"
	}
	inv := ir.NewFunctionInvocation(name, group).
		MustPush(
			ir.In(normal),
			ir.In(u.direction), ir.In(di).AtLevel(1),
			ir.In(u.diffuse), ir.In(gi).AtLevel(1),
		)
	if l.Specular {
		inv.MustPush(
			ir.In(u.specular), ir.In(gi).AtLevel(1),
			ir.In(shininess),
			ir.InOut(diffuseAcc), ir.InOut(specularAcc),
		)
	} else {
		inv.MustPush(ir.InOut(diffuseAcc))
	}
	fn.AddAtom(inv)
}

func (l *PerPixelLightingSRS) addPointLight(fs *ir.Program, fn *ir.Function, group int,
	pos, normal ir.ParameterHandle, u lightUniforms, shininess ir.ParameterHandle,
	posIndex, globalIndex int, diffuseAcc, specularAcc ir.ParameterHandle) {

	pi := indexConstant(fs, posIndex)
	gi := indexConstant(fs, globalIndex)

	name := "SGX_Light_Point_Diffuse"
	if l.Specular {
		name = "SGX_Light_Point_DiffuseSpecular"
	}
	inv := ir.NewFunctionInvocation(name, group).
		MustPush(
			ir.In(pos), ir.In(normal),
			ir.In(u.position), ir.In(pi).AtLevel(1),
			ir.In(u.atten), ir.In(pi).AtLevel(1),
			ir.In(u.diffuse), ir.In(gi).AtLevel(1),
		)
	if l.Specular {
		inv.MustPush(
			ir.In(u.specular), ir.In(gi).AtLevel(1),
			ir.In(shininess),
			ir.InOut(diffuseAcc), ir.InOut(specularAcc),
		)
	} else {
		inv.MustPush(ir.InOut(diffuseAcc))
	}
	fn.AddAtom(inv)
}

func (l *PerPixelLightingSRS) addSpotLight(fs *ir.Program, fn *ir.Function, group int,
	pos, normal ir.ParameterHandle, u lightUniforms, shininess ir.ParameterHandle,
	spotIndex, globalIndex int, diffuseAcc, specularAcc ir.ParameterHandle) error {

	posIndex := l.point + spotIndex
	dirIndex := l.directional + spotIndex
	pi := indexConstant(fs, posIndex)
	di := indexConstant(fs, dirIndex)
	gi := indexConstant(fs, globalIndex)

	name := "SGX_Light_Spot_Diffuse"
	if l.Specular {
		name = "SGX_Light_Spot_DiffuseSpecular"
	}
	inv := ir.NewFunctionInvocation(name, group).
		MustPush(
			ir.In(pos), ir.In(normal),
			ir.In(u.position), ir.In(pi).AtLevel(1),
			ir.In(u.direction), ir.In(di).AtLevel(1),
			ir.In(u.atten), ir.In(pi).AtLevel(1),
		)
	if l.SpotOuterAngle == 0 {
		si := indexConstant(fs, spotIndex)
		inv.MustPush(ir.In(u.spot), ir.In(si).AtLevel(1))
	} else {
		inv.MustPush(ir.In(u.spot))
	}
	inv.MustPush(ir.In(u.diffuse), ir.In(gi).AtLevel(1))
	if l.Specular {
		inv.MustPush(
			ir.In(u.specular), ir.In(gi).AtLevel(1),
			ir.In(shininess),
			ir.InOut(diffuseAcc), ir.InOut(specularAcc),
		)
	} else {
		inv.MustPush(ir.InOut(diffuseAcc))
	}
	fn.AddAtom(inv)
	return nil
}
