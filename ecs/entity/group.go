package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/parallax/common"
	"github.com/milk9111/parallax/ecs"
	"github.com/milk9111/parallax/ecs/component"
	"github.com/milk9111/parallax/parallax"
	"github.com/milk9111/parallax/prefabs"
)

type layerGroupSpec = prefabs.LayerGroupSpec

// groupMember is the generated configuration of one layer in a group.
type groupMember struct {
	Name   string
	Layer  parallax.LayerConfig
	Tiling *parallax.TilingConfig
	Scale  float64
	Color  color.Color
}

func groupMembers(g layerGroupSpec) ([]groupMember, error) {
	if g.Count <= 0 {
		return nil, fmt.Errorf("layer group %q: count must be positive, got %d", g.Name, g.Count)
	}
	kind, err := parallax.ParseKind(g.Kind)
	if err != nil {
		return nil, fmt.Errorf("layer group %q: %w", g.Name, err)
	}
	mode := parallax.OffsetMode(-1)
	if g.Mode != "" {
		if mode, err = parallax.ParseOffsetMode(g.Mode); err != nil {
			return nil, fmt.Errorf("layer group %q: %w", g.Name, err)
		}
	}

	var minColor, maxColor color.Color = color.White, color.White
	if g.MinColor != nil && g.MinColor.Color != nil {
		minColor = g.MinColor.Color
	}
	if g.MaxColor != nil && g.MaxColor.Color != nil {
		maxColor = g.MaxColor.Color
	}

	members := make([]groupMember, 0, g.Count)
	for i := 0; i < g.Count; i++ {
		frac := float64(i+1) / float64(g.Count)
		t := 0.0
		if g.Count > 1 {
			t = float64(i) / float64(g.Count-1)
		}

		cfg := parallax.DefaultLayerConfig(kind)
		cfg.DepthOrder = g.DepthStart + i
		cfg.Speed = frac * g.Speed
		cfg.Angle = g.Angle
		if mode >= 0 {
			cfg.Mode = mode
		}

		m := groupMember{
			Name:  fmt.Sprintf("%s_%d", g.Name, i),
			Layer: cfg,
			Scale: frac,
			Color: common.LerpColor(minColor, maxColor, t),
		}
		if g.Tiling != nil {
			tiling, err := tilingConfigFromSpec(*g.Tiling, cfg.Tiling)
			if err != nil {
				return nil, fmt.Errorf("layer group %q: %w", g.Name, err)
			}
			m.Tiling = &tiling
		}
		members = append(members, m)
	}
	return members, nil
}

// BuildLayerGroup creates one layer entity per group member.
func BuildLayerGroup(w *ecs.World, g layerGroupSpec) ([]ecs.Entity, error) {
	members, err := groupMembers(g)
	if err != nil {
		return nil, err
	}

	ents := make([]ecs.Entity, 0, len(members))
	for _, m := range members {
		e, err := buildGroupMember(w, g, m)
		if err != nil {
			for _, built := range ents {
				ecs.DestroyEntity(w, built)
			}
			return nil, fmt.Errorf("layer group %q: %w", g.Name, err)
		}
		ents = append(ents, e)
	}
	return ents, nil
}

func buildGroupMember(w *ecs.World, g layerGroupSpec, m groupMember) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	fail := func(err error) (ecs.Entity, error) {
		ecs.DestroyEntity(w, e)
		return 0, err
	}

	t := transformFromSpec(g.Transform)
	t.ScaleX *= m.Scale
	t.ScaleY *= m.Scale
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
		return fail(err)
	}
	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: m.Name}); err != nil {
		return fail(err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Width: g.Width, Height: g.Height, Color: m.Color}); err != nil {
		return fail(err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: g.RenderLayer}); err != nil {
		return fail(err)
	}
	if err := ecs.Add(w, e, component.ParallaxLayerComponent.Kind(), &component.ParallaxLayer{
		Layer: parallax.NewLayer(m.Layer),
		Group: g.Name,
	}); err != nil {
		return fail(err)
	}
	if m.Tiling != nil {
		if err := ecs.Add(w, e, component.ParallaxTilingComponent.Kind(), &component.ParallaxTiling{Config: *m.Tiling}); err != nil {
			return fail(err)
		}
	}
	return e, nil
}
