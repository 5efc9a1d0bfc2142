package rtss

import "testing"

func BenchmarkFingerprint(b *testing.B) {
	gen := NewGenerator(DefaultGeneratorOptions())
	pass := &Pass{
		LightingEnabled:   true,
		DirectionalLights: 1,
		PointLights:       2,
		TextureUnits:      []TextureUnit{{Name: "wall.png", Op: LayerModulate}},
	}
	rs := gen.CreateRenderState(pass)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = gen.Fingerprint(pass, rs)
	}
}

func BenchmarkGenerateCold(b *testing.B) {
	pass := &Pass{
		LightingEnabled:   true,
		DirectionalLights: 1,
		PointLights:       2,
		TextureUnits:      []TextureUnit{{Name: "wall.png", Op: LayerModulate}},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gen := NewGenerator(DefaultGeneratorOptions())
		rs := gen.CreateRenderState(pass)
		if _, err := gen.Generate(pass, rs); err != nil {
			b.Fatalf("Generate failed: %v", err)
		}
	}
}

func BenchmarkGenerateCached(b *testing.B) {
	gen := NewGenerator(DefaultGeneratorOptions())
	pass := texturedPass()
	rs := gen.CreateRenderState(pass)
	if _, err := gen.Generate(pass, rs); err != nil {
		b.Fatalf("Generate failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := gen.Generate(pass, rs); err != nil {
			b.Fatalf("Generate failed: %v", err)
		}
	}
}
