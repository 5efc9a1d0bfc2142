// Command rtssc generates shader source from a declarative pass
// description.
//
// Usage:
//
//	rtssc [options] <pass.json>
//
// Examples:
//
//	rtssc pass.json                      # Generate GLSL to stdout
//	rtssc -lang hlsl pass.json           # Generate HLSL
//	rtssc -o shader pass.json            # Write shader.vert / shader.frag
//	rtssc -fingerprint pass.json         # Print the fingerprint only
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/gogpu/rtss"
)

var (
	lang        = flag.String("lang", "glsl", "target language: glsl or hlsl")
	output      = flag.String("o", "", "output file prefix (default: stdout)")
	fingerprint = flag.Bool("fingerprint", false, "print the fingerprint and exit")
	version     = flag.Bool("version", false, "print version")
)

const rtsscVersion = "0.1.0-dev"

// passDesc is the JSON shape of a pass description file.
type passDesc struct {
	Lighting          bool    `json:"lighting"`
	DirectionalLights int     `json:"directional_lights"`
	PointLights       int     `json:"point_lights"`
	SpotLights        int     `json:"spot_lights"`
	Shininess         float32 `json:"shininess"`

	TextureUnits []textureUnitDesc `json:"texture_units"`

	Fog *fogDesc `json:"fog"`

	AlphaReject *alphaRejectDesc `json:"alpha_reject"`

	PointSprites bool    `json:"point_sprites"`
	PointSize    float32 `json:"point_size"`
}

type textureUnitDesc struct {
	Name        string `json:"name"`
	Op          string `json:"op"`
	TexCoordSet int    `json:"texcoord_set"`
}

type fogDesc struct {
	Mode    string     `json:"mode"`
	Colour  [4]float32 `json:"colour"`
	Density float32    `json:"density"`
	Start   float32    `json:"start"`
	End     float32    `json:"end"`
}

type alphaRejectDesc struct {
	Func  string  `json:"func"`
	Value float32 `json:"value"`
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("rtssc version %s\n", rtsscVersion)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no pass description specified")
		usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}
	var desc passDesc
	if err := json.Unmarshal(data, &desc); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing pass description: %v\n", err)
		os.Exit(1)
	}
	pass, err := buildPass(&desc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	options := rtss.DefaultGeneratorOptions()
	switch *lang {
	case "glsl":
		options.Language = rtss.LanguageGLSL
	case "hlsl":
		options.Language = rtss.LanguageHLSL
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown language %q\n", *lang)
		os.Exit(1)
	}

	gen := rtss.NewGenerator(options)
	rs := gen.CreateRenderState(pass)

	if *fingerprint {
		fmt.Println(gen.Fingerprint(pass, rs))
		return
	}

	out, err := gen.Generate(pass, rs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generation error: %v\n", err)
		os.Exit(1)
	}

	if *output == "" {
		fmt.Printf("// fingerprint: %s\n\n", out.Fingerprint)
		fmt.Println("// ---- vertex ----")
		fmt.Print(out.VertexSource)
		fmt.Println("// ---- fragment ----")
		fmt.Print(out.FragmentSource)
		return
	}

	vertPath, fragPath := *output+".vert", *output+".frag"
	if options.Language == rtss.LanguageHLSL {
		vertPath, fragPath = *output+".vs.hlsl", *output+".ps.hlsl"
	}
	if err := os.WriteFile(vertPath, []byte(out.VertexSource), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(fragPath, []byte(out.FragmentSource), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated %s and %s (fingerprint %s)\n", vertPath, fragPath, out.Fingerprint)
}

// buildPass converts the JSON description into a pass.
func buildPass(desc *passDesc) (*rtss.Pass, error) {
	pass := &rtss.Pass{
		LightingEnabled:     desc.Lighting,
		DirectionalLights:   desc.DirectionalLights,
		PointLights:         desc.PointLights,
		SpotLights:          desc.SpotLights,
		Shininess:           desc.Shininess,
		PointSpritesEnabled: desc.PointSprites,
		PointSize:           desc.PointSize,
	}
	for _, u := range desc.TextureUnits {
		op, err := parseLayerOp(u.Op)
		if err != nil {
			return nil, err
		}
		pass.TextureUnits = append(pass.TextureUnits, rtss.TextureUnit{
			Name:        u.Name,
			Op:          op,
			TexCoordSet: u.TexCoordSet,
		})
	}
	if desc.Fog != nil {
		mode, err := parseFogMode(desc.Fog.Mode)
		if err != nil {
			return nil, err
		}
		pass.FogOverride = true
		pass.FogMode = mode
		pass.FogColour = rtss.ColourValue(desc.Fog.Colour)
		pass.FogDensity = desc.Fog.Density
		pass.FogStart = desc.Fog.Start
		pass.FogEnd = desc.Fog.End
	}
	if desc.AlphaReject != nil {
		fnc, err := parseCompareFunc(desc.AlphaReject.Func)
		if err != nil {
			return nil, err
		}
		pass.AlphaRejectFunc = fnc
		pass.AlphaRejectValue = desc.AlphaReject.Value
	}
	return pass, nil
}

func parseLayerOp(s string) (rtss.LayerOp, error) {
	switch s {
	case "", "modulate":
		return rtss.LayerModulate, nil
	case "replace":
		return rtss.LayerReplace, nil
	case "add":
		return rtss.LayerAdd, nil
	case "alpha_blend":
		return rtss.LayerAlphaBlend, nil
	default:
		return 0, fmt.Errorf("unknown layer op %q", s)
	}
}

func parseFogMode(s string) (rtss.FogMode, error) {
	switch s {
	case "linear":
		return rtss.FogLinear, nil
	case "exp":
		return rtss.FogExp, nil
	case "exp2":
		return rtss.FogExp2, nil
	default:
		return 0, fmt.Errorf("unknown fog mode %q", s)
	}
}

func parseCompareFunc(s string) (rtss.CompareFunc, error) {
	switch s {
	case "always_pass":
		return rtss.CompareAlwaysPass, nil
	case "always_fail":
		return rtss.CompareAlwaysFail, nil
	case "less":
		return rtss.CompareLess, nil
	case "less_equal":
		return rtss.CompareLessEqual, nil
	case "equal":
		return rtss.CompareEqual, nil
	case "not_equal":
		return rtss.CompareNotEqual, nil
	case "greater_equal":
		return rtss.CompareGreaterEqual, nil
	case "greater":
		return rtss.CompareGreater, nil
	default:
		return 0, fmt.Errorf("unknown compare func %q", s)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: rtssc [options] <pass.json>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  rtssc pass.json              Generate GLSL to stdout\n")
	fmt.Fprintf(os.Stderr, "  rtssc -lang hlsl pass.json   Generate HLSL\n")
	fmt.Fprintf(os.Stderr, "  rtssc -o shader pass.json    Write shader.vert and shader.frag\n")
}
