package entity

import (
	"image/color"
	"math"
	"testing"

	"github.com/milk9111/parallax/ecs"
	"github.com/milk9111/parallax/ecs/component"
	"github.com/milk9111/parallax/parallax"
	"github.com/milk9111/parallax/prefabs"
)

func TestGroupMembers(t *testing.T) {
	g := prefabs.LayerGroupSpec{
		Name:       "ridges",
		Count:      4,
		DepthStart: -2,
		Speed:      -0.8,
		Kind:       "horizontal",
		MinColor:   &prefabs.YAMLColor{Color: color.NRGBA{A: 255}},
		MaxColor:   &prefabs.YAMLColor{Color: color.NRGBA{R: 255, G: 120, B: 30, A: 255}},
		Tiling:     &prefabs.TilingComponentSpec{HorizontalSpacing: 5},
	}
	members, err := groupMembers(g)
	if err != nil {
		t.Fatalf("groupMembers: %v", err)
	}
	if len(members) != 4 {
		t.Fatalf("expected 4 members, got %d", len(members))
	}

	wantSpeeds := []float64{-0.2, -0.4, -0.6, -0.8}
	for i, m := range members {
		if m.Layer.DepthOrder != -2+i {
			t.Fatalf("member %d: depth order %d", i, m.Layer.DepthOrder)
		}
		if math.Abs(m.Layer.Speed-wantSpeeds[i]) > 1e-9 {
			t.Fatalf("member %d: speed %v want %v", i, m.Layer.Speed, wantSpeeds[i])
		}
		if math.Abs(m.Scale-float64(i+1)/4) > 1e-9 {
			t.Fatalf("member %d: scale %v", i, m.Scale)
		}
		if m.Tiling == nil || m.Tiling.Mode != parallax.TileStrip || m.Tiling.HorizontalSpacing != 5 {
			t.Fatalf("member %d: tiling %+v", i, m.Tiling)
		}
	}
	if members[0].Name != "ridges_0" || members[3].Name != "ridges_3" {
		t.Fatalf("unexpected names %q %q", members[0].Name, members[3].Name)
	}

	first := color.NRGBAModel.Convert(members[0].Color).(color.NRGBA)
	last := color.NRGBAModel.Convert(members[3].Color).(color.NRGBA)
	if first != (color.NRGBA{A: 255}) || last != (color.NRGBA{R: 255, G: 120, B: 30, A: 255}) {
		t.Fatalf("colour endpoints %v %v", first, last)
	}
}

func TestGroupMembersErrors(t *testing.T) {
	tests := []struct {
		name string
		g    prefabs.LayerGroupSpec
	}{
		{name: "zero_count", g: prefabs.LayerGroupSpec{Name: "a"}},
		{name: "bad_kind", g: prefabs.LayerGroupSpec{Name: "a", Count: 1, Kind: "spiral"}},
		{name: "bad_mode", g: prefabs.LayerGroupSpec{Name: "a", Count: 1, Mode: "sideways"}},
		{name: "bad_tiling", g: prefabs.LayerGroupSpec{Name: "a", Count: 1, Tiling: &prefabs.TilingComponentSpec{Mode: "hex"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := groupMembers(tc.g); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestBuildLayerGroup(t *testing.T) {
	w := ecs.NewWorld()
	ents, err := BuildLayerGroup(w, prefabs.LayerGroupSpec{
		Name:      "fog",
		Count:     2,
		Speed:     1,
		Kind:      "complex",
		Width:     30,
		Height:    10,
		Transform: prefabs.TransformComponentSpec{ScaleX: 2, ScaleY: 2},
	})
	if err != nil {
		t.Fatalf("BuildLayerGroup: %v", err)
	}
	if len(ents) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(ents))
	}

	tr, _ := ecs.Get(w, ents[0], component.TransformComponent.Kind())
	if tr.ScaleX != 1 || tr.ScaleY != 1 {
		t.Fatalf("expected half scale on the first member, got %+v", tr)
	}
	pl, ok := ecs.Get(w, ents[1], component.ParallaxLayerComponent.Kind())
	if !ok || pl.Group != "fog" || pl.Layer.Kind() != parallax.KindComplex {
		t.Fatalf("unexpected layer %+v", pl)
	}
	if ecs.Has(w, ents[0], component.ParallaxTilingComponent.Kind()) {
		t.Fatalf("untiled group should not add tiling")
	}
	s, _ := ecs.Get(w, ents[1], component.SpriteComponent.Kind())
	if s.Width != 30 || s.Height != 10 {
		t.Fatalf("unexpected sprite %+v", s)
	}
}
