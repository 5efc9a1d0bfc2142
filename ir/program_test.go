package ir

import (
	"errors"
	"testing"
)

func TestResolveAutoParameter_Memoized(t *testing.T) {
	set := NewProgramSet()
	vs := set.Vertex()

	h1, err := vs.ResolveAutoParameter(AutoWorldViewProjMatrix, AutoExtra{})
	if err != nil {
		t.Fatalf("ResolveAutoParameter: %v", err)
	}
	h2, err := vs.ResolveAutoParameter(AutoWorldViewProjMatrix, AutoExtra{})
	if err != nil {
		t.Fatalf("ResolveAutoParameter: %v", err)
	}

	if h1 != h2 {
		t.Errorf("Expected same handle, got %d and %d", h1, h2)
	}
	if len(vs.Uniforms()) != 1 {
		t.Errorf("Expected 1 uniform, got %d", len(vs.Uniforms()))
	}
	if got := set.Arena().Get(h1).Name; got != "worldViewProj" {
		t.Errorf("Name = %q, want worldViewProj", got)
	}
}

func TestResolveAutoParameter_ExtraDataSplits(t *testing.T) {
	set := NewProgramSet()
	fs := set.Fragment()

	l0, _ := fs.ResolveAutoParameter(AutoLightDiffuseColour, AutoExtra{Int: 0})
	l1, _ := fs.ResolveAutoParameter(AutoLightDiffuseColour, AutoExtra{Int: 1})
	if l0 == l1 {
		t.Error("Different extra data must produce different uniforms")
	}
	if got := set.Arena().Get(l1).Name; got != "light_diffuse_colour1" {
		t.Errorf("Name = %q, want light_diffuse_colour1", got)
	}
}

func TestResolveAutoParameter_Unknown(t *testing.T) {
	set := NewProgramSet()
	_, err := set.Vertex().ResolveAutoParameter(AutoConstant(9999), AutoExtra{})
	if !errors.Is(err, ErrUnknownAutoConstant) {
		t.Errorf("Expected ErrUnknownAutoConstant, got %v", err)
	}
}

func TestResolveAutoParameter_ArrayCount(t *testing.T) {
	set := NewProgramSet()
	fs := set.Fragment()

	h, err := fs.ResolveAutoParameter(AutoLightDiffuseColourArray, AutoExtra{Int: 2})
	if err != nil {
		t.Fatalf("ResolveAutoParameter: %v", err)
	}
	p := set.Arena().Get(h)
	if p.ArraySize != 2 {
		t.Errorf("ArraySize = %d, want 2", p.ArraySize)
	}
	// The count is an array size, not an index; the name stays bare so
	// the generated declaration reads light_diffuse_colour[2].
	if p.Name != "light_diffuse_colour" {
		t.Errorf("Name = %q, want light_diffuse_colour", p.Name)
	}
}

func TestAutoParameterName_FloatExtra(t *testing.T) {
	got := AutoTime0X.ParameterName(AutoExtra{Float: 0.5})
	if got != "time_0_x0_5" {
		t.Errorf("ParameterName = %q, want time_0_x0_5", got)
	}
}

func TestResolveParameter_Memoized(t *testing.T) {
	set := NewProgramSet()
	fs := set.Fragment()

	h1, err := fs.ResolveParameter(TypeSampler2D, 0, VariabilityGlobal, "gTexture0", 0)
	if err != nil {
		t.Fatalf("ResolveParameter: %v", err)
	}
	h2, err := fs.ResolveParameter(TypeSampler2D, 0, VariabilityGlobal, "gTexture0", 0)
	if err != nil {
		t.Fatalf("ResolveParameter: %v", err)
	}
	if h1 != h2 {
		t.Error("Repeated resolve must return the same uniform")
	}
}

func TestResolveParameter_IndexInKey(t *testing.T) {
	set := NewProgramSet()
	fs := set.Fragment()

	h0, err := fs.ResolveParameter(TypeSampler2D, 0, VariabilityGlobal, "gTexture", 0)
	if err != nil {
		t.Fatalf("ResolveParameter: %v", err)
	}
	h1, err := fs.ResolveParameter(TypeSampler2D, 1, VariabilityGlobal, "gTexture", 0)
	if err != nil {
		t.Fatalf("ResolveParameter: %v", err)
	}
	if h0 == h1 {
		t.Error("Distinct semantic indices must resolve distinct uniforms")
	}
	if got := set.Arena().Get(h1).Index; got != 1 {
		t.Errorf("Index = %d, want 1", got)
	}
}

func TestAssignPhysicalIndices(t *testing.T) {
	set := NewProgramSet()
	vs := set.Vertex()

	wvp, _ := vs.ResolveAutoParameter(AutoWorldViewProjMatrix, AutoExtra{}) // 16 floats
	fog, _ := vs.ResolveAutoParameter(AutoFogParams, AutoExtra{})          // 4 floats
	_, _ = vs.ResolveParameter(TypeSampler2D, 0, VariabilityGlobal, "gTex", 0)

	total := vs.AssignPhysicalIndices()
	if total != 20 {
		t.Errorf("Block size = %d, want 20", total)
	}
	if got := set.Arena().Get(wvp).PhysicalIndex; got != 0 {
		t.Errorf("wvp physical index = %d, want 0", got)
	}
	if got := set.Arena().Get(fog).PhysicalIndex; got != 16 {
		t.Errorf("fog physical index = %d, want 16", got)
	}
}

func TestAddDependency_Dedup(t *testing.T) {
	set := NewProgramSet()
	vs := set.Vertex()
	vs.AddDependency("FFPLib_Transform")
	vs.AddDependency("FFPLib_Common")
	vs.AddDependency("FFPLib_Transform")

	deps := vs.Dependencies()
	if len(deps) != 2 {
		t.Fatalf("Expected 2 dependencies, got %d", len(deps))
	}
	if deps[0] != "FFPLib_Transform" || deps[1] != "FFPLib_Common" {
		t.Errorf("Dependencies out of order: %v", deps)
	}
}

func TestUniformManifest(t *testing.T) {
	set := NewProgramSet()
	fs := set.Fragment()
	_, _ = fs.ResolveAutoParameter(AutoFogColour, AutoExtra{})
	_, _ = fs.ResolveParameter(TypeSampler2D, 0, VariabilityGlobal, "gTexture0", 0)

	manifest := fs.UniformManifest()
	if len(manifest) != 2 {
		t.Fatalf("Expected 2 manifest entries, got %d", len(manifest))
	}
	if manifest[0].Auto != AutoFogColour || manifest[0].Type != TypeFloat4 {
		t.Errorf("Entry 0 = %+v, want fog colour float4", manifest[0])
	}
	if manifest[1].Name != "gTexture0" || manifest[1].Auto != AutoUnknown {
		t.Errorf("Entry 1 = %+v, want plain sampler", manifest[1])
	}
}
