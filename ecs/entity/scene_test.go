package entity

import (
	"strings"
	"testing"

	"github.com/milk9111/parallax/ecs"
	"github.com/milk9111/parallax/ecs/component"
	"github.com/milk9111/parallax/parallax"
	"github.com/milk9111/parallax/prefabs"
	"gopkg.in/yaml.v3"
)

func decodeScene(t *testing.T, src string) prefabs.SceneSpec {
	t.Helper()
	var spec prefabs.SceneSpec
	if err := yaml.Unmarshal([]byte(src), &spec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return spec
}

const baseScene = `
name: test
entities:
  - name: player
    components:
      transform: {x: 1, y: 2}
      scripted_motion: {script: drift.tengo, speed: 1}
  - name: parallax
    components:
      parallax_coordinator: {target: player}
  - name: hills
    components:
      transform: {y: 40}
      sprite: {width: 10, height: 5}
      parallax_layer: {kind: horizontal, depth_order: 1, speed: 0.5}
      parallax_tiling: {mode: strip}
  - name: rocks
    components:
      transform: {}
      parallax_layer: {kind: complex, depth_order: 2}
groups:
  - name: ridges
    count: 2
    speed: 1
    width: 8
    height: 8
`

func TestBuildSceneEmbedded(t *testing.T) {
	w := ecs.NewWorld()
	s, err := BuildScene(w, "scene.yaml")
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}
	if s.Name != "hills" {
		t.Fatalf("unexpected scene name %q", s.Name)
	}
	for _, name := range []string{"camera", "player", "parallax", "sky", "stars", "hills", "clouds"} {
		if _, ok := s.Entities[name]; !ok {
			t.Fatalf("missing entity %q", name)
		}
	}
	if got := len(s.Groups["ridges"]); got != 3 {
		t.Fatalf("expected 3 ridges, got %d", got)
	}
	if n := w.Count(component.ParallaxCoordinatorComponent.Kind()); n != 1 {
		t.Fatalf("expected one coordinator, got %d", n)
	}
	if n := w.Count(component.ParallaxLayerComponent.Kind()); n != 7 {
		t.Fatalf("expected 7 layers, got %d", n)
	}

	s.Destroy(w)
	if n := len(ecs.Entities(w)); n != 0 {
		t.Fatalf("expected empty world after Destroy, got %d entities", n)
	}
}

func TestBuildSceneSpecFailureCleansUp(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name: "duplicate_entity",
			src: `
entities:
  - name: a
    components: {transform: {}}
  - name: a
    components: {transform: {}}
`,
			wantErr: "duplicate entity name",
		},
		{
			name: "second_coordinator",
			src: `
entities:
  - name: a
    components: {parallax_coordinator: {}}
  - name: b
    components: {parallax_coordinator: {}}
`,
			wantErr: "more than one coordinator",
		},
		{
			name: "bad_group",
			src: `
entities:
  - name: a
    components: {transform: {}}
groups:
  - name: g
    count: 0
`,
			wantErr: "count must be positive",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := BuildSceneSpec(w, decodeScene(t, tc.src))
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
			if n := len(ecs.Entities(w)); n != 0 {
				t.Fatalf("failed build left %d entities", n)
			}
		})
	}
}

func TestReconfigureSceneInPlace(t *testing.T) {
	w := ecs.NewWorld()
	s, err := BuildSceneSpec(w, decodeScene(t, baseScene))
	if err != nil {
		t.Fatalf("BuildSceneSpec: %v", err)
	}
	hills := s.Entities["hills"]
	rocks := s.Entities["rocks"]
	player := s.Entities["player"]
	ridges := append([]ecs.Entity(nil), s.Groups["ridges"]...)

	pl, _ := ecs.Get(w, hills, component.ParallaxLayerComponent.Kind())
	layer := pl.Layer
	tr, _ := ecs.Get(w, hills, component.TransformComponent.Kind())
	tr.X = 99

	edited := strings.NewReplacer(
		"depth_order: 1, speed: 0.5", "depth_order: 3, speed: 0.25, disabled: true",
		"transform: {x: 1, y: 2}", "transform: {x: 5, y: 6}",
		"  - name: rocks\n    components:\n      transform: {}\n      parallax_layer: {kind: complex, depth_order: 2}\n",
		"  - name: moon\n    components:\n      transform: {}\n      parallax_layer: {kind: depth_only, depth_order: 8}\n",
		"speed: 1\n    width: 8", "speed: 2\n    width: 8",
	).Replace(baseScene)

	if err := ReconfigureScene(w, s, decodeScene(t, edited)); err != nil {
		t.Fatalf("ReconfigureScene: %v", err)
	}

	if s.Entities["hills"] != hills {
		t.Fatalf("hills was rebuilt")
	}
	pl, _ = ecs.Get(w, hills, component.ParallaxLayerComponent.Kind())
	if pl.Layer != layer {
		t.Fatalf("layer instance was replaced")
	}
	if cfg := layer.Config(); cfg.DepthOrder != 3 || cfg.Speed != 0.25 || !pl.Disabled {
		t.Fatalf("layer not reconfigured: %+v disabled=%v", cfg, pl.Disabled)
	}
	if tr, _ := ecs.Get(w, hills, component.TransformComponent.Kind()); tr.X != 99 {
		t.Fatalf("layer position should be left alone, got %v", tr.X)
	}

	m, _ := ecs.Get(w, player, component.ScriptedMotionComponent.Kind())
	if m.OriginX != 5 || m.OriginY != 6 {
		t.Fatalf("expected motion origin 5,6, got %v,%v", m.OriginX, m.OriginY)
	}

	if w.IsAlive(rocks) {
		t.Fatalf("removed entity still alive")
	}
	if _, ok := s.Entities["rocks"]; ok {
		t.Fatalf("removed entity still tracked")
	}
	moon, ok := s.Entities["moon"]
	if !ok || !ecs.Has(w, moon, component.ParallaxLayerComponent.Kind()) {
		t.Fatalf("new entity not built")
	}

	for i, e := range s.Groups["ridges"] {
		if e != ridges[i] {
			t.Fatalf("ridge %d rebuilt on an in-place change", i)
		}
	}
	rl, _ := ecs.Get(w, ridges[1], component.ParallaxLayerComponent.Kind())
	if rl.Layer.Config().Speed != 2 {
		t.Fatalf("expected ridge speed 2, got %v", rl.Layer.Config().Speed)
	}
}

func TestReconfigureSceneGroupResize(t *testing.T) {
	w := ecs.NewWorld()
	s, err := BuildSceneSpec(w, decodeScene(t, baseScene))
	if err != nil {
		t.Fatalf("BuildSceneSpec: %v", err)
	}
	old := append([]ecs.Entity(nil), s.Groups["ridges"]...)

	edited := strings.Replace(baseScene, "count: 2", "count: 4", 1)
	if err := ReconfigureScene(w, s, decodeScene(t, edited)); err != nil {
		t.Fatalf("ReconfigureScene: %v", err)
	}
	if got := len(s.Groups["ridges"]); got != 4 {
		t.Fatalf("expected 4 ridges, got %d", got)
	}
	for _, e := range old {
		if w.IsAlive(e) {
			t.Fatalf("old ridge %v still alive", e)
		}
	}

	noGroups := baseScene[:strings.Index(baseScene, "groups:")]
	if err := ReconfigureScene(w, s, decodeScene(t, noGroups)); err != nil {
		t.Fatalf("ReconfigureScene: %v", err)
	}
	if len(s.Groups) != 0 {
		t.Fatalf("expected groups removed, got %v", s.Groups)
	}
}

func TestReconfigureSceneTilingRemoved(t *testing.T) {
	w := ecs.NewWorld()
	src := baseScene + "    tiling: {mode: strip}\n"
	s, err := BuildSceneSpec(w, decodeScene(t, src))
	if err != nil {
		t.Fatalf("BuildSceneSpec: %v", err)
	}
	e := s.Groups["ridges"][0]
	pt, ok := ecs.Get(w, e, component.ParallaxTilingComponent.Kind())
	if !ok {
		t.Fatalf("expected tiling on ridge")
	}
	pt.Tiler = parallax.NewTiler(pt.Config, nil, nil)

	if err := ReconfigureScene(w, s, decodeScene(t, baseScene)); err != nil {
		t.Fatalf("ReconfigureScene: %v", err)
	}
	if pt.Tiler.Config().Mode != parallax.TileNone {
		t.Fatalf("expected tiling switched off, got %v", pt.Tiler.Config().Mode)
	}
}

func TestReconfigureSceneJoinsErrors(t *testing.T) {
	w := ecs.NewWorld()
	s, err := BuildSceneSpec(w, decodeScene(t, baseScene))
	if err != nil {
		t.Fatalf("BuildSceneSpec: %v", err)
	}
	edited := strings.NewReplacer(
		"kind: horizontal, depth_order: 1", "kind: spiral, depth_order: 1",
		"kind: complex, depth_order: 2", "kind: wobble, depth_order: 2",
	).Replace(baseScene)

	err = ReconfigureScene(w, s, decodeScene(t, edited))
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, name := range []string{`"hills"`, `"rocks"`} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("expected %s in %v", name, err)
		}
	}
}

func TestReloadScripts(t *testing.T) {
	w := ecs.NewWorld()
	s, err := BuildSceneSpec(w, decodeScene(t, baseScene))
	if err != nil {
		t.Fatalf("BuildSceneSpec: %v", err)
	}
	m, _ := ecs.Get(w, s.Entities["player"], component.ScriptedMotionComponent.Kind())
	m.Failed = true

	ReloadScripts(w)
	if m.Failed || m.Compiled != nil {
		t.Fatalf("expected motion reset, got %+v", m)
	}
}
