package entity

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/parallax/ecs"
	"github.com/milk9111/parallax/ecs/component"
	"github.com/milk9111/parallax/parallax"
	"github.com/milk9111/parallax/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	Name string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":            addTransform,
	"sprite":               addSprite,
	"render_layer":         addRenderLayer,
	"camera":               addCamera,
	"parallax_coordinator": addParallaxCoordinator,
	"parallax_layer":       addParallaxLayer,
	"parallax_tiling":      addParallaxTiling,
	"scripted_motion":      addScriptedMotion,
}

// componentBuildOrder lists components that read ones built before them:
// tiling reads the layer, scripted motion reads the transform.
var componentBuildOrder = []string{
	"transform",
	"sprite",
	"render_layer",
	"camera",
	"parallax_coordinator",
	"parallax_layer",
	"parallax_tiling",
	"scripted_motion",
}

// BuildEntity loads an entity prefab file and builds it.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntitySpec(w, spec)
}

// BuildEntitySpec creates an entity from spec. On error nothing is left in
// the world.
func BuildEntitySpec(w *ecs.World, spec entityPrefabSpec) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: %q does not define components", spec.Name)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{Name: spec.Name}
	if spec.Name != "" {
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add name: %w", spec.Name, err)
		}
	}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
			delete(remaining, name)
		}
	}
	extra := make([]string, 0, len(remaining))
	for name := range remaining {
		extra = append(extra, name)
	}
	sort.Strings(extra)

	for _, name := range append(names, extra...) {
		builder, ok := componentRegistry[name]
		if !ok {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", spec.Name, name)
		}
		if err := builder(w, e, spec.Components[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", spec.Name, name, err)
		}
	}

	return e, nil
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), transformFromSpec(spec))
}

func transformFromSpec(spec prefabs.TransformComponentSpec) *component.Transform {
	t := &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		Z:        spec.Z,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	}
	if t.ScaleX == 0 {
		t.ScaleX = 1
	}
	if t.ScaleY == 0 {
		t.ScaleY = 1
	}
	return t
}

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpriteComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), spriteFromSpec(spec))
}

func spriteFromSpec(spec prefabs.SpriteComponentSpec) *component.Sprite {
	s := &component.Sprite{
		Width:  spec.Width,
		Height: spec.Height,
		Color:  color.White,
		Hidden: spec.Hidden,
	}
	if spec.Color != nil && spec.Color.Color != nil {
		s.Color = spec.Color.Color
	}
	return s
}

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderLayerComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return err
	}
	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		ViewWidth:  spec.ViewWidth,
		ViewHeight: spec.ViewHeight,
		Zoom:       zoom,
		TargetName: spec.Target,
		Smoothing:  spec.Smoothing,
	})
}

func addParallaxCoordinator(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ParallaxCoordinatorComponentSpec](raw)
	if err != nil {
		return err
	}
	return AttachCoordinator(w, e, coordinatorConfigFromSpec(spec), spec.Target, spec.DepthSource)
}

func coordinatorConfigFromSpec(spec prefabs.ParallaxCoordinatorComponentSpec) parallax.Config {
	cfg := parallax.DefaultConfig()
	if spec.ReferenceSpeed != nil {
		cfg.ReferenceSpeed = *spec.ReferenceSpeed
	}
	if spec.ReferenceZ != nil {
		cfg.ReferenceZ = *spec.ReferenceZ
	}
	if spec.MaxDepth != nil {
		cfg.MaxDepth = *spec.MaxDepth
	}
	if spec.UseDepth != nil {
		cfg.UseDepth = *spec.UseDepth
	}
	cfg.Origin = cp.Vector{X: spec.OriginX, Y: spec.OriginY}
	return cfg
}

func addParallaxLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ParallaxLayerComponentSpec](raw)
	if err != nil {
		return err
	}
	cfg, err := layerConfigFromSpec(spec)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ParallaxLayerComponent.Kind(), &component.ParallaxLayer{
		Layer:    parallax.NewLayer(cfg),
		Disabled: spec.Disabled,
	})
}

func layerConfigFromSpec(spec prefabs.ParallaxLayerComponentSpec) (parallax.LayerConfig, error) {
	kind, err := parallax.ParseKind(spec.Kind)
	if err != nil {
		return parallax.LayerConfig{}, err
	}
	cfg := parallax.DefaultLayerConfig(kind)
	cfg.DepthOrder = spec.DepthOrder
	cfg.Speed = spec.Speed
	cfg.Angle = spec.Angle
	if spec.Mode != "" {
		if cfg.Mode, err = parallax.ParseOffsetMode(spec.Mode); err != nil {
			return parallax.LayerConfig{}, err
		}
	}
	if spec.Wrap != nil {
		cfg.Wrap = *spec.Wrap
	}
	return cfg, nil
}

var errTilingWithoutLayer = errors.New("parallax_tiling needs a parallax_layer")

func addParallaxTiling(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TilingComponentSpec](raw)
	if err != nil {
		return err
	}
	pl, ok := ecs.Get(w, e, component.ParallaxLayerComponent.Kind())
	if !ok || pl.Layer == nil {
		return errTilingWithoutLayer
	}
	cfg, err := tilingConfigFromSpec(spec, pl.Layer.Config().Tiling)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ParallaxTilingComponent.Kind(), &component.ParallaxTiling{Config: cfg})
}

// tilingConfigFromSpec keeps the layer kind's default mode when the prefab
// leaves it empty.
func tilingConfigFromSpec(spec prefabs.TilingComponentSpec, defaults parallax.TilingConfig) (parallax.TilingConfig, error) {
	cfg := defaults
	if spec.Mode != "" {
		mode, err := parallax.ParseTileMode(spec.Mode)
		if err != nil {
			return parallax.TilingConfig{}, err
		}
		cfg.Mode = mode
	}
	cfg.HorizontalSpacing = spec.HorizontalSpacing
	cfg.VerticalSpacing = spec.VerticalSpacing
	return cfg, nil
}

func addScriptedMotion(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ScriptedMotionComponentSpec](raw)
	if err != nil {
		return err
	}
	m := &component.ScriptedMotion{ScriptPath: spec.Script, Speed: spec.Speed}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		m.OriginX, m.OriginY = t.X, t.Y
	}
	return ecs.Add(w, e, component.ScriptedMotionComponent.Kind(), m)
}
