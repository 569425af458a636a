package prefabs

import (
	"image/color"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{name: "hex", in: "#2d6a4f", want: color.NRGBA{R: 0x2d, G: 0x6a, B: 0x4f, A: 0xff}},
		{name: "hex_alpha", in: "e0e1ddcc", want: color.NRGBA{R: 0xe0, G: 0xe1, B: 0xdd, A: 0xcc}},
		{name: "named", in: "MidnightBlue", want: color.NRGBA{R: 25, G: 25, B: 112, A: 255}},
		{name: "short", in: "#fff", wantErr: true},
		{name: "not_hex", in: "#zzzzzz", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseColor(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if nrgba := color.NRGBAModel.Convert(got).(color.NRGBA); nrgba != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, nrgba)
			}
		})
	}
}

func TestYAMLColorRejectsNonScalar(t *testing.T) {
	var out struct {
		Color YAMLColor `yaml:"color"`
	}
	if err := yaml.Unmarshal([]byte("color: [1, 2]"), &out); err == nil {
		t.Fatalf("expected error for sequence colour")
	}
}

func TestLoadEmbeddedScene(t *testing.T) {
	spec, err := LoadSceneSpec("scene.yaml")
	if err != nil {
		t.Fatalf("load scene: %v", err)
	}
	if spec.Name == "" || len(spec.Entities) == 0 {
		t.Fatalf("expected a named scene with entities, got %+v", spec)
	}

	byName := map[string]EntityBuildSpec{}
	for _, e := range spec.Entities {
		byName[e.Name] = e
	}
	coord, ok := byName["parallax"]
	if !ok {
		t.Fatalf("scene has no coordinator entity")
	}
	cs, err := DecodeComponentSpec[ParallaxCoordinatorComponentSpec](coord.Components["parallax_coordinator"])
	if err != nil {
		t.Fatalf("decode coordinator: %v", err)
	}
	if cs.Target != "player" || cs.ReferenceSpeed == nil || *cs.ReferenceSpeed != 2 {
		t.Fatalf("unexpected coordinator spec %+v", cs)
	}

	if len(spec.Groups) != 1 || spec.Groups[0].Count != 3 || spec.Groups[0].MinColor == nil {
		t.Fatalf("unexpected groups %+v", spec.Groups)
	}
}

func TestDecodeComponentSpec(t *testing.T) {
	raw := map[string]any{"kind": "grid", "depth_order": -2, "speed": 0.5, "wrap": false}
	got, err := DecodeComponentSpec[ParallaxLayerComponentSpec](raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Kind != "grid" || got.DepthOrder != -2 || got.Speed != 0.5 || got.Wrap == nil || *got.Wrap {
		t.Fatalf("unexpected spec %+v", got)
	}

	empty, err := DecodeComponentSpec[SpriteComponentSpec](nil)
	if err != nil || empty.Color != nil {
		t.Fatalf("nil raw should decode to zero value, got %+v err=%v", empty, err)
	}
}

func TestCleanPaths(t *testing.T) {
	tests := []struct {
		fn   func(string) string
		in   string
		want string
	}{
		{cleanPrefabPath, "prefabs/scene.yaml", "scene.yaml"},
		{cleanPrefabPath, "scene.yaml", "scene.yaml"},
		{cleanScriptPath, "orbit.tengo", "scripts/orbit.tengo"},
		{cleanScriptPath, "prefabs/scripts/orbit.tengo", "scripts/orbit.tengo"},
		{cleanScriptPath, "scripts/orbit.tengo", "scripts/orbit.tengo"},
		{cleanScriptPath, "", ""},
	}
	for _, tc := range tests {
		if got := tc.fn(tc.in); got != tc.want {
			t.Errorf("clean(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"orbit.tengo", "drift.tengo"} {
		data, err := LoadScript(name)
		if err != nil || len(data) == 0 {
			t.Fatalf("load %s: %v", name, err)
		}
	}
	if _, err := LoadScript("missing.tengo"); err == nil {
		t.Fatalf("expected error for missing script")
	}
}
