package ir

import (
	"strconv"
	"strings"
)

// AutoConstant identifies a uniform whose value is provided by the
// host from a fixed catalogue (world-view-projection matrix, camera
// position, per-light values, time, viewport size, ...). The
// catalogue is closed: resolving a kind outside it fails with
// ErrUnknownAutoConstant.
type AutoConstant uint16

// AutoExtraKind describes the extra-data arity of an auto constant.
type AutoExtraKind uint8

const (
	ExtraNone AutoExtraKind = iota
	ExtraInt                // one integer, e.g. a light index or array count
	ExtraFloat              // one real scalar, e.g. a time period
)

// AutoExtra carries the extra data for an auto-constant binding. Only
// the field matching the kind's ExtraKind is meaningful; the struct is
// comparable so it can key memoization maps.
type AutoExtra struct {
	Int   int32
	Float float32
}

// autoDesc describes one catalogue entry.
type autoDesc struct {
	name     string
	elements int
	base     BaseType
	extra    AutoExtraKind
}

const (
	AutoUnknown AutoConstant = iota

	// World / view / projection and combinations, with inverse,
	// transpose and inverse-transpose variants.
	AutoWorldMatrix
	AutoInverseWorldMatrix
	AutoTransposeWorldMatrix
	AutoInverseTransposeWorldMatrix
	AutoViewMatrix
	AutoInverseViewMatrix
	AutoTransposeViewMatrix
	AutoInverseTransposeViewMatrix
	AutoProjectionMatrix
	AutoInverseProjectionMatrix
	AutoTransposeProjectionMatrix
	AutoInverseTransposeProjectionMatrix
	AutoWorldViewMatrix
	AutoInverseWorldViewMatrix
	AutoTransposeWorldViewMatrix
	AutoInverseTransposeWorldViewMatrix
	AutoViewProjMatrix
	AutoInverseViewProjMatrix
	AutoTransposeViewProjMatrix
	AutoInverseTransposeViewProjMatrix
	AutoWorldViewProjMatrix
	AutoInverseWorldViewProjMatrix
	AutoTransposeWorldViewProjMatrix
	AutoInverseTransposeWorldViewProjMatrix
	AutoNormalMatrix

	// Skinning world matrix arrays, counted by extra data.
	AutoWorldMatrixArray3x4
	AutoWorldMatrixArray
	AutoWorldDualQuaternionArray2x4

	AutoRenderTargetFlipping

	// Fog.
	AutoFogColour
	AutoFogParams

	// Surface material.
	AutoSurfaceAmbientColour
	AutoSurfaceDiffuseColour
	AutoSurfaceSpecularColour
	AutoSurfaceEmissiveColour
	AutoSurfaceShininess
	AutoSurfaceAlphaRejectionValue

	AutoAmbientLightColour
	AutoLightCount

	// Per-light, indexed by extra data.
	AutoLightDiffuseColour
	AutoLightSpecularColour
	AutoLightDiffusePowerScaled
	AutoLightSpecularPowerScaled
	AutoLightAttenuation
	AutoSpotlightParams
	AutoLightPosition
	AutoLightPositionObjectSpace
	AutoLightPositionViewSpace
	AutoLightDirection
	AutoLightDirectionObjectSpace
	AutoLightDirectionViewSpace
	AutoLightDistanceObjectSpace
	AutoLightPowerScale
	AutoLightCastsShadows

	// Per-light array variants, counted by extra data.
	AutoLightDiffuseColourArray
	AutoLightSpecularColourArray
	AutoLightDiffusePowerScaledArray
	AutoLightSpecularPowerScaledArray
	AutoLightAttenuationArray
	AutoSpotlightParamsArray
	AutoLightPositionArray
	AutoLightPositionObjectSpaceArray
	AutoLightPositionViewSpaceArray
	AutoLightDirectionArray
	AutoLightDirectionObjectSpaceArray
	AutoLightDirectionViewSpaceArray
	AutoLightDistanceObjectSpaceArray
	AutoLightPowerScaleArray
	AutoLightCastsShadowsArray

	AutoDerivedAmbientLightColour
	AutoDerivedSceneColour

	// Shadows.
	AutoShadowExtrusionDistance
	AutoShadowColour
	AutoShadowSceneDepthRange
	AutoShadowSceneDepthRangeArray

	// Camera.
	AutoCameraPosition
	AutoCameraPositionObjectSpace
	AutoCameraRelativePosition

	// Texture and spotlight projection matrices.
	AutoTextureViewProjMatrix
	AutoTextureViewProjMatrixArray
	AutoTextureWorldViewProjMatrix
	AutoTextureWorldViewProjMatrixArray
	AutoSpotlightViewProjMatrix
	AutoSpotlightViewProjMatrixArray
	AutoSpotlightWorldViewProjMatrix
	AutoSpotlightWorldViewProjMatrixArray

	// Time family. The _0_X variants take a period as extra data.
	AutoTime
	AutoTime0X
	AutoCosTime0X
	AutoSinTime0X
	AutoTanTime0X
	AutoTime0XPacked
	AutoTime01
	AutoCosTime01
	AutoSinTime01
	AutoTanTime01
	AutoTime01Packed
	AutoTime02Pi
	AutoCosTime02Pi
	AutoSinTime02Pi
	AutoTanTime02Pi
	AutoTime02PiPacked
	AutoFrameTime
	AutoFPS

	// Viewport.
	AutoViewportWidth
	AutoViewportHeight
	AutoInverseViewportWidth
	AutoInverseViewportHeight
	AutoViewportSize

	// View vectors and frustum.
	AutoViewDirection
	AutoViewSideVector
	AutoViewUpVector
	AutoFOV
	AutoNearClipDistance
	AutoFarClipDistance

	AutoPassNumber
	AutoPassIterationNumber
	AutoAnimationParametric

	AutoTexelOffsets
	AutoSceneDepthRange

	// Texture reflection, indexed by unit.
	AutoTextureSize
	AutoInverseTextureSize
	AutoPackedTextureSize
	AutoTextureMatrix

	AutoLODCameraPosition
	AutoLODCameraPositionObjectSpace

	AutoLightCustom
	AutoPointParams

	autoConstantCount
)

var autoDescs = [autoConstantCount]autoDesc{
	AutoUnknown: {"", 0, BaseFloat, ExtraNone},

	AutoWorldMatrix:                         {"worldMatrix", 16, BaseFloat, ExtraNone},
	AutoInverseWorldMatrix:                  {"inverseWorldMatrix", 16, BaseFloat, ExtraNone},
	AutoTransposeWorldMatrix:                {"transposeWorldMatrix", 16, BaseFloat, ExtraNone},
	AutoInverseTransposeWorldMatrix:         {"inverseTransposeWorldMatrix", 16, BaseFloat, ExtraNone},
	AutoViewMatrix:                          {"viewMatrix", 16, BaseFloat, ExtraNone},
	AutoInverseViewMatrix:                   {"inverseViewMatrix", 16, BaseFloat, ExtraNone},
	AutoTransposeViewMatrix:                 {"transposeViewMatrix", 16, BaseFloat, ExtraNone},
	AutoInverseTransposeViewMatrix:          {"inverseTransposeViewMatrix", 16, BaseFloat, ExtraNone},
	AutoProjectionMatrix:                    {"projectionMatrix", 16, BaseFloat, ExtraNone},
	AutoInverseProjectionMatrix:             {"inverseProjectionMatrix", 16, BaseFloat, ExtraNone},
	AutoTransposeProjectionMatrix:           {"transposeProjectionMatrix", 16, BaseFloat, ExtraNone},
	AutoInverseTransposeProjectionMatrix:    {"inverseTransposeProjectionMatrix", 16, BaseFloat, ExtraNone},
	AutoWorldViewMatrix:                     {"worldViewMatrix", 16, BaseFloat, ExtraNone},
	AutoInverseWorldViewMatrix:              {"inverseWorldViewMatrix", 16, BaseFloat, ExtraNone},
	AutoTransposeWorldViewMatrix:            {"transposeWorldViewMatrix", 16, BaseFloat, ExtraNone},
	AutoInverseTransposeWorldViewMatrix:     {"inverseTransposeWorldViewMatrix", 16, BaseFloat, ExtraNone},
	AutoViewProjMatrix:                      {"viewProjMatrix", 16, BaseFloat, ExtraNone},
	AutoInverseViewProjMatrix:               {"inverseViewProjMatrix", 16, BaseFloat, ExtraNone},
	AutoTransposeViewProjMatrix:             {"transposeViewProjMatrix", 16, BaseFloat, ExtraNone},
	AutoInverseTransposeViewProjMatrix:      {"inverseTransposeViewProjMatrix", 16, BaseFloat, ExtraNone},
	AutoWorldViewProjMatrix:                 {"worldViewProj", 16, BaseFloat, ExtraNone},
	AutoInverseWorldViewProjMatrix:          {"inverseWorldViewProj", 16, BaseFloat, ExtraNone},
	AutoTransposeWorldViewProjMatrix:        {"transposeWorldViewProj", 16, BaseFloat, ExtraNone},
	AutoInverseTransposeWorldViewProjMatrix: {"inverseTransposeWorldViewProj", 16, BaseFloat, ExtraNone},
	AutoNormalMatrix:                        {"normalMatrix", 9, BaseFloat, ExtraNone},

	AutoWorldMatrixArray3x4:         {"worldMatrixArray3x4", 12, BaseFloat, ExtraInt},
	AutoWorldMatrixArray:            {"worldMatrixArray", 16, BaseFloat, ExtraInt},
	AutoWorldDualQuaternionArray2x4: {"worldDualQuaternionArray2x4", 8, BaseFloat, ExtraInt},

	AutoRenderTargetFlipping: {"renderTargetFlipping", 1, BaseFloat, ExtraNone},

	AutoFogColour: {"fog_colour", 4, BaseFloat, ExtraNone},
	AutoFogParams: {"fog_params", 4, BaseFloat, ExtraNone},

	AutoSurfaceAmbientColour:       {"surface_ambient_colour", 4, BaseFloat, ExtraNone},
	AutoSurfaceDiffuseColour:       {"surface_diffuse_colour", 4, BaseFloat, ExtraNone},
	AutoSurfaceSpecularColour:      {"surface_specular_colour", 4, BaseFloat, ExtraNone},
	AutoSurfaceEmissiveColour:      {"surface_emissive_colour", 4, BaseFloat, ExtraNone},
	AutoSurfaceShininess:           {"surface_shininess", 1, BaseFloat, ExtraNone},
	AutoSurfaceAlphaRejectionValue: {"surface_alpha_rejection_value", 1, BaseFloat, ExtraNone},

	AutoAmbientLightColour: {"ambient_light_colour", 4, BaseFloat, ExtraNone},
	AutoLightCount:         {"light_count", 1, BaseFloat, ExtraNone},

	AutoLightDiffuseColour:        {"light_diffuse_colour", 4, BaseFloat, ExtraInt},
	AutoLightSpecularColour:       {"light_specular_colour", 4, BaseFloat, ExtraInt},
	AutoLightDiffusePowerScaled:   {"light_diffuse_colour_power_scaled", 4, BaseFloat, ExtraInt},
	AutoLightSpecularPowerScaled:  {"light_specular_colour_power_scaled", 4, BaseFloat, ExtraInt},
	AutoLightAttenuation:          {"light_attenuation", 4, BaseFloat, ExtraInt},
	AutoSpotlightParams:           {"spotlight_params", 4, BaseFloat, ExtraInt},
	AutoLightPosition:             {"light_position_world", 4, BaseFloat, ExtraInt},
	AutoLightPositionObjectSpace:  {"light_position_object_space", 4, BaseFloat, ExtraInt},
	AutoLightPositionViewSpace:    {"light_position", 4, BaseFloat, ExtraInt},
	AutoLightDirection:            {"light_direction_world", 4, BaseFloat, ExtraInt},
	AutoLightDirectionObjectSpace: {"light_direction_object_space", 4, BaseFloat, ExtraInt},
	AutoLightDirectionViewSpace:   {"light_direction", 4, BaseFloat, ExtraInt},
	AutoLightDistanceObjectSpace:  {"light_distance_object_space", 1, BaseFloat, ExtraInt},
	AutoLightPowerScale:           {"light_power_scale", 1, BaseFloat, ExtraInt},
	AutoLightCastsShadows:         {"light_casts_shadows", 1, BaseFloat, ExtraInt},

	AutoLightDiffuseColourArray:        {"light_diffuse_colour", 4, BaseFloat, ExtraInt},
	AutoLightSpecularColourArray:       {"light_specular_colour", 4, BaseFloat, ExtraInt},
	AutoLightDiffusePowerScaledArray:   {"light_diffuse_colour_power_scaled", 4, BaseFloat, ExtraInt},
	AutoLightSpecularPowerScaledArray:  {"light_specular_colour_power_scaled", 4, BaseFloat, ExtraInt},
	AutoLightAttenuationArray:          {"light_attenuation", 4, BaseFloat, ExtraInt},
	AutoSpotlightParamsArray:           {"spotlight_params", 4, BaseFloat, ExtraInt},
	AutoLightPositionArray:             {"light_position_world", 4, BaseFloat, ExtraInt},
	AutoLightPositionObjectSpaceArray:  {"light_position_object_space", 4, BaseFloat, ExtraInt},
	AutoLightPositionViewSpaceArray:    {"light_position", 4, BaseFloat, ExtraInt},
	AutoLightDirectionArray:            {"light_direction_world", 4, BaseFloat, ExtraInt},
	AutoLightDirectionObjectSpaceArray: {"light_direction_object_space", 4, BaseFloat, ExtraInt},
	AutoLightDirectionViewSpaceArray:   {"light_direction", 4, BaseFloat, ExtraInt},
	AutoLightDistanceObjectSpaceArray:  {"light_distance_object_space", 1, BaseFloat, ExtraInt},
	AutoLightPowerScaleArray:           {"light_power_scale", 1, BaseFloat, ExtraInt},
	AutoLightCastsShadowsArray:         {"light_casts_shadows", 1, BaseFloat, ExtraInt},

	AutoDerivedAmbientLightColour: {"derived_ambient_light_colour", 4, BaseFloat, ExtraNone},
	AutoDerivedSceneColour:        {"derived_scene_colour", 4, BaseFloat, ExtraNone},

	AutoShadowExtrusionDistance:    {"shadow_extrusion_distance", 1, BaseFloat, ExtraInt},
	AutoShadowColour:               {"shadow_colour", 4, BaseFloat, ExtraNone},
	AutoShadowSceneDepthRange:      {"shadow_scene_depth_range", 4, BaseFloat, ExtraInt},
	AutoShadowSceneDepthRangeArray: {"shadow_scene_depth_range", 4, BaseFloat, ExtraInt},

	AutoCameraPosition:            {"camera_position", 3, BaseFloat, ExtraNone},
	AutoCameraPositionObjectSpace: {"camera_position_object_space", 3, BaseFloat, ExtraNone},
	AutoCameraRelativePosition:    {"camera_relative_position", 3, BaseFloat, ExtraNone},

	AutoTextureViewProjMatrix:             {"texture_viewproj_matrix", 16, BaseFloat, ExtraInt},
	AutoTextureViewProjMatrixArray:        {"texture_viewproj_matrix", 16, BaseFloat, ExtraInt},
	AutoTextureWorldViewProjMatrix:        {"texture_worldviewproj_matrix", 16, BaseFloat, ExtraInt},
	AutoTextureWorldViewProjMatrixArray:   {"texture_worldviewproj_matrix", 16, BaseFloat, ExtraInt},
	AutoSpotlightViewProjMatrix:           {"spotlight_viewproj_matrix", 16, BaseFloat, ExtraInt},
	AutoSpotlightViewProjMatrixArray:      {"spotlight_viewproj_matrix", 16, BaseFloat, ExtraInt},
	AutoSpotlightWorldViewProjMatrix:      {"spotlight_worldviewproj_matrix", 16, BaseFloat, ExtraInt},
	AutoSpotlightWorldViewProjMatrixArray: {"spotlight_worldviewproj_matrix", 16, BaseFloat, ExtraInt},

	AutoTime:           {"time", 1, BaseFloat, ExtraFloat},
	AutoTime0X:         {"time_0_x", 1, BaseFloat, ExtraFloat},
	AutoCosTime0X:      {"costime_0_x", 1, BaseFloat, ExtraFloat},
	AutoSinTime0X:      {"sintime_0_x", 1, BaseFloat, ExtraFloat},
	AutoTanTime0X:      {"tantime_0_x", 1, BaseFloat, ExtraFloat},
	AutoTime0XPacked:   {"time_0_x_packed", 4, BaseFloat, ExtraFloat},
	AutoTime01:         {"time_0_1", 1, BaseFloat, ExtraFloat},
	AutoCosTime01:      {"costime_0_1", 1, BaseFloat, ExtraFloat},
	AutoSinTime01:      {"sintime_0_1", 1, BaseFloat, ExtraFloat},
	AutoTanTime01:      {"tantime_0_1", 1, BaseFloat, ExtraFloat},
	AutoTime01Packed:   {"time_0_1_packed", 4, BaseFloat, ExtraFloat},
	AutoTime02Pi:       {"time_0_2pi", 1, BaseFloat, ExtraFloat},
	AutoCosTime02Pi:    {"costime_0_2pi", 1, BaseFloat, ExtraFloat},
	AutoSinTime02Pi:    {"sintime_0_2pi", 1, BaseFloat, ExtraFloat},
	AutoTanTime02Pi:    {"tantime_0_2pi", 1, BaseFloat, ExtraFloat},
	AutoTime02PiPacked: {"time_0_2pi_packed", 4, BaseFloat, ExtraFloat},
	AutoFrameTime:      {"frame_time", 1, BaseFloat, ExtraFloat},
	AutoFPS:            {"fps", 1, BaseFloat, ExtraNone},

	AutoViewportWidth:         {"viewport_width", 1, BaseFloat, ExtraNone},
	AutoViewportHeight:        {"viewport_height", 1, BaseFloat, ExtraNone},
	AutoInverseViewportWidth:  {"inverse_viewport_width", 1, BaseFloat, ExtraNone},
	AutoInverseViewportHeight: {"inverse_viewport_height", 1, BaseFloat, ExtraNone},
	AutoViewportSize:          {"viewport_size", 4, BaseFloat, ExtraNone},

	AutoViewDirection:    {"view_direction", 3, BaseFloat, ExtraNone},
	AutoViewSideVector:   {"view_side_vector", 3, BaseFloat, ExtraNone},
	AutoViewUpVector:     {"view_up_vector", 3, BaseFloat, ExtraNone},
	AutoFOV:              {"fov", 1, BaseFloat, ExtraNone},
	AutoNearClipDistance: {"near_clip_distance", 1, BaseFloat, ExtraNone},
	AutoFarClipDistance:  {"far_clip_distance", 1, BaseFloat, ExtraNone},

	AutoPassNumber:          {"pass_number", 1, BaseInt, ExtraNone},
	AutoPassIterationNumber: {"pass_iteration_number", 1, BaseInt, ExtraNone},
	AutoAnimationParametric: {"animation_parametric", 4, BaseFloat, ExtraInt},

	AutoTexelOffsets:    {"texel_offsets", 4, BaseFloat, ExtraNone},
	AutoSceneDepthRange: {"scene_depth_range", 4, BaseFloat, ExtraNone},

	AutoTextureSize:        {"texture_size", 4, BaseFloat, ExtraInt},
	AutoInverseTextureSize: {"inverse_texture_size", 4, BaseFloat, ExtraInt},
	AutoPackedTextureSize:  {"packed_texture_size", 4, BaseFloat, ExtraInt},
	AutoTextureMatrix:      {"texture_matrix", 16, BaseFloat, ExtraInt},

	AutoLODCameraPosition:            {"lod_camera_position", 3, BaseFloat, ExtraNone},
	AutoLODCameraPositionObjectSpace: {"lod_camera_position_object_space", 3, BaseFloat, ExtraNone},

	AutoLightCustom: {"light_custom", 4, BaseFloat, ExtraInt},
	AutoPointParams: {"point_params", 4, BaseFloat, ExtraNone},
}

// Valid reports whether the kind is inside the closed catalogue.
func (a AutoConstant) Valid() bool {
	return a > AutoUnknown && a < autoConstantCount
}

// Name returns the printable name of the auto constant.
func (a AutoConstant) Name() string {
	if !a.Valid() {
		return "unknown"
	}
	return autoDescs[a].name
}

// ElementCount returns the number of scalar elements per entry.
func (a AutoConstant) ElementCount() int {
	if !a.Valid() {
		return 0
	}
	return autoDescs[a].elements
}

// BaseType returns the scalar base of the auto constant's value.
func (a AutoConstant) BaseType() BaseType {
	if !a.Valid() {
		return BaseFloat
	}
	return autoDescs[a].base
}

// ExtraKind returns the extra-data arity of the auto constant.
func (a AutoConstant) ExtraKind() AutoExtraKind {
	if !a.Valid() {
		return ExtraNone
	}
	return autoDescs[a].extra
}

// Type returns the IR type a single element of the auto constant maps
// to. Matrix element counts map to matrix types, everything else to
// float/int vectors.
func (a AutoConstant) Type() Type {
	base := a.BaseType()
	switch a.ElementCount() {
	case 1:
		if base == BaseInt {
			return TypeInt1
		}
		return TypeFloat1
	case 3:
		return TypeFloat3
	case 4:
		return TypeFloat4
	case 8:
		return TypeMatrix2x4
	case 9:
		return TypeMatrix3x3
	case 12:
		return TypeMatrix3x4
	case 16:
		return TypeMatrix4x4
	default:
		return TypeUnknown
	}
}

// ParameterName derives the identifier-safe uniform name for a binding
// of this auto constant with the given extra data. Non-zero extra data
// is appended to the kind name; periods in float data are replaced
// with underscores so the result stays a valid identifier.
func (a AutoConstant) ParameterName(extra AutoExtra) string {
	name := a.Name()
	switch a.ExtraKind() {
	case ExtraInt:
		if extra.Int != 0 {
			name += strconv.FormatInt(int64(extra.Int), 10)
		}
	case ExtraFloat:
		if extra.Float != 0 {
			s := strconv.FormatFloat(float64(extra.Float), 'f', -1, 32)
			name += strings.ReplaceAll(s, ".", "_")
		}
	}
	return name
}
