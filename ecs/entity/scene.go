package entity

import (
	"errors"
	"fmt"

	"github.com/milk9111/parallax/ecs"
	"github.com/milk9111/parallax/ecs/component"
	"github.com/milk9111/parallax/parallax"
	"github.com/milk9111/parallax/prefabs"
)

// Scene records the entities built from a scene spec so a later edit of the
// same spec can be applied in place.
type Scene struct {
	Name     string
	Entities map[string]ecs.Entity
	Groups   map[string][]ecs.Entity
}

func BuildScene(w *ecs.World, filename string) (*Scene, error) {
	spec, err := prefabs.LoadSceneSpec(filename)
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	return BuildSceneSpec(w, spec)
}

// BuildSceneSpec builds every entity and layer group of spec. On error the
// entities built so far are destroyed.
func BuildSceneSpec(w *ecs.World, spec prefabs.SceneSpec) (*Scene, error) {
	s := &Scene{
		Name:     spec.Name,
		Entities: make(map[string]ecs.Entity, len(spec.Entities)),
		Groups:   make(map[string][]ecs.Entity, len(spec.Groups)),
	}

	for _, es := range spec.Entities {
		if _, dup := s.Entities[es.Name]; dup {
			s.Destroy(w)
			return nil, fmt.Errorf("build scene %q: duplicate entity name %q", spec.Name, es.Name)
		}
		e, err := BuildEntitySpec(w, es)
		if err != nil {
			s.Destroy(w)
			return nil, fmt.Errorf("build scene %q: %w", spec.Name, err)
		}
		s.Entities[es.Name] = e
	}

	for _, g := range spec.Groups {
		if _, dup := s.Groups[g.Name]; dup {
			s.Destroy(w)
			return nil, fmt.Errorf("build scene %q: duplicate layer group %q", spec.Name, g.Name)
		}
		ents, err := BuildLayerGroup(w, g)
		if err != nil {
			s.Destroy(w)
			return nil, fmt.Errorf("build scene %q: %w", spec.Name, err)
		}
		s.Groups[g.Name] = ents
	}
	return s, nil
}

func (s *Scene) Destroy(w *ecs.World) {
	if s == nil {
		return
	}
	for name, e := range s.Entities {
		ecs.DestroyEntity(w, e)
		delete(s.Entities, name)
	}
	for name, ents := range s.Groups {
		for _, e := range ents {
			ecs.DestroyEntity(w, e)
		}
		delete(s.Groups, name)
	}
}

// ReconfigureScene applies an edited spec to a built scene. Existing
// entities keep their identity and runtime state; layers pick up the new
// configuration through Layer.Reconfigure and tiled layers regenerate. New
// entities are built and entities missing from spec are destroyed. Every
// entity is attempted; the errors are joined.
func ReconfigureScene(w *ecs.World, s *Scene, spec prefabs.SceneSpec) error {
	if s == nil {
		return fmt.Errorf("reconfigure scene: scene is nil")
	}
	var errs []error
	s.Name = spec.Name

	wanted := make(map[string]struct{}, len(spec.Entities))
	for _, es := range spec.Entities {
		wanted[es.Name] = struct{}{}
		e, ok := s.Entities[es.Name]
		if ok && w.IsAlive(e) {
			if err := reconfigureEntity(w, e, es); err != nil {
				errs = append(errs, fmt.Errorf("reconfigure %q: %w", es.Name, err))
			}
			continue
		}
		e, err := BuildEntitySpec(w, es)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		s.Entities[es.Name] = e
	}
	for name, e := range s.Entities {
		if _, ok := wanted[name]; !ok {
			ecs.DestroyEntity(w, e)
			delete(s.Entities, name)
		}
	}

	wantedGroups := make(map[string]struct{}, len(spec.Groups))
	for _, g := range spec.Groups {
		wantedGroups[g.Name] = struct{}{}
		ents, err := reconfigureGroup(w, s.Groups[g.Name], g)
		if err != nil {
			errs = append(errs, fmt.Errorf("reconfigure group %q: %w", g.Name, err))
		}
		if ents != nil {
			s.Groups[g.Name] = ents
		}
	}
	for name, ents := range s.Groups {
		if _, ok := wantedGroups[name]; !ok {
			for _, e := range ents {
				ecs.DestroyEntity(w, e)
			}
			delete(s.Groups, name)
		}
	}

	return errors.Join(errs...)
}

func reconfigureEntity(w *ecs.World, e ecs.Entity, spec entityPrefabSpec) error {
	for _, name := range componentBuildOrder {
		raw, ok := spec.Components[name]
		if !ok {
			continue
		}
		var err error
		switch name {
		case "transform":
			err = reconfigureTransform(w, e, raw)
		case "sprite":
			err = reconfigureSprite(w, e, raw)
		case "render_layer":
			err = addRenderLayer(w, e, raw, nil)
		case "camera":
			err = reconfigureCamera(w, e, raw)
		case "parallax_coordinator":
			err = reconfigureCoordinator(w, e, raw)
		case "parallax_layer":
			err = reconfigureLayer(w, e, raw)
		case "parallax_tiling":
			err = reconfigureTiling(w, e, raw)
		case "scripted_motion":
			err = reconfigureScriptedMotion(w, e, raw)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// reconfigureTransform leaves the position of entities whose position is
// driven at runtime alone.
func reconfigureTransform(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return err
	}
	next := transformFromSpec(spec)
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return ecs.Add(w, e, component.TransformComponent.Kind(), next)
	}
	t.ScaleX, t.ScaleY, t.Rotation = next.ScaleX, next.ScaleY, next.Rotation
	if ecs.Has(w, e, component.ParallaxLayerComponent.Kind()) {
		return nil
	}
	if m, ok := ecs.Get(w, e, component.ScriptedMotionComponent.Kind()); ok {
		m.OriginX, m.OriginY = next.X, next.Y
		return nil
	}
	t.X, t.Y, t.Z = next.X, next.Y, next.Z
	return nil
}

func reconfigureSprite(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpriteComponentSpec](raw)
	if err != nil {
		return err
	}
	next := spriteFromSpec(spec)
	s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
	if !ok {
		return ecs.Add(w, e, component.SpriteComponent.Kind(), next)
	}
	next.Image = s.Image
	*s = *next
	if pt, ok := ecs.Get(w, e, component.ParallaxTilingComponent.Kind()); ok && pt.Tiler != nil {
		pt.Tiler.Invalidate()
	}
	return nil
}

func reconfigureCamera(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return err
	}
	cam, ok := ecs.Get(w, e, component.CameraComponent.Kind())
	if !ok {
		return addCamera(w, e, raw, nil)
	}
	if spec.Zoom > 0 {
		cam.Zoom = spec.Zoom
	}
	cam.TargetName = spec.Target
	cam.Smoothing = spec.Smoothing
	return nil
}

func reconfigureCoordinator(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ParallaxCoordinatorComponentSpec](raw)
	if err != nil {
		return err
	}
	pc, ok := ecs.Get(w, e, component.ParallaxCoordinatorComponent.Kind())
	if !ok || pc.Coordinator == nil {
		return AttachCoordinator(w, e, coordinatorConfigFromSpec(spec), spec.Target, spec.DepthSource)
	}
	cfg := coordinatorConfigFromSpec(spec)
	if spec.DepthSource == pc.DepthSourceName {
		cfg.ReferenceZSource = pc.Coordinator.Config().ReferenceZSource
	}
	pc.Coordinator.Configure(cfg)
	pc.TargetName = spec.Target
	pc.DepthSourceName = spec.DepthSource
	return nil
}

func reconfigureLayer(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ParallaxLayerComponentSpec](raw)
	if err != nil {
		return err
	}
	pl, ok := ecs.Get(w, e, component.ParallaxLayerComponent.Kind())
	if !ok || pl.Layer == nil {
		return addParallaxLayer(w, e, raw, nil)
	}
	cfg, err := layerConfigFromSpec(spec)
	if err != nil {
		return err
	}
	pl.Layer.Reconfigure(cfg)
	pl.Disabled = spec.Disabled
	return nil
}

func reconfigureTiling(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TilingComponentSpec](raw)
	if err != nil {
		return err
	}
	pt, ok := ecs.Get(w, e, component.ParallaxTilingComponent.Kind())
	if !ok {
		return addParallaxTiling(w, e, raw, nil)
	}
	defaults := pt.Config
	if pl, ok := ecs.Get(w, e, component.ParallaxLayerComponent.Kind()); ok && pl.Layer != nil {
		defaults = pl.Layer.Config().Tiling
	}
	cfg, err := tilingConfigFromSpec(spec, defaults)
	if err != nil {
		return err
	}
	pt.Config = cfg
	if pt.Tiler != nil {
		pt.Tiler.SetConfig(cfg)
	}
	return nil
}

func reconfigureScriptedMotion(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ScriptedMotionComponentSpec](raw)
	if err != nil {
		return err
	}
	m, ok := ecs.Get(w, e, component.ScriptedMotionComponent.Kind())
	if !ok {
		return addScriptedMotion(w, e, raw, nil)
	}
	m.Speed = spec.Speed
	if m.ScriptPath != spec.Script {
		m.ScriptPath = spec.Script
		m.Compiled = nil
		m.Failed = false
	}
	return nil
}

// reconfigureGroup updates a group in place when its size is unchanged and
// rebuilds it otherwise.
func reconfigureGroup(w *ecs.World, ents []ecs.Entity, g layerGroupSpec) ([]ecs.Entity, error) {
	members, err := groupMembers(g)
	if err != nil {
		return nil, err
	}

	inPlace := len(ents) == len(members)
	for _, e := range ents {
		if !ecs.Has(w, e, component.ParallaxLayerComponent.Kind()) {
			inPlace = false
		}
	}
	if !inPlace {
		for _, e := range ents {
			ecs.DestroyEntity(w, e)
		}
		return BuildLayerGroup(w, g)
	}

	for i, e := range ents {
		m := members[i]
		pl, _ := ecs.Get(w, e, component.ParallaxLayerComponent.Kind())
		pl.Layer.Reconfigure(m.Layer)

		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			base := transformFromSpec(g.Transform)
			t.ScaleX, t.ScaleY = base.ScaleX*m.Scale, base.ScaleY*m.Scale
			t.Rotation = base.Rotation
		}
		if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			s.Width, s.Height, s.Color = g.Width, g.Height, m.Color
		}
		if rl, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			rl.Index = g.RenderLayer
		}

		pt, hasTiling := ecs.Get(w, e, component.ParallaxTilingComponent.Kind())
		switch {
		case m.Tiling != nil && hasTiling:
			pt.Config = *m.Tiling
			if pt.Tiler != nil {
				pt.Tiler.SetConfig(*m.Tiling)
			}
		case m.Tiling != nil:
			if err := ecs.Add(w, e, component.ParallaxTilingComponent.Kind(), &component.ParallaxTiling{Config: *m.Tiling}); err != nil {
				return ents, err
			}
		case hasTiling && pt.Tiler != nil:
			pt.Config.Mode = parallax.TileNone
			pt.Tiler.SetConfig(pt.Config)
		}
	}
	return ents, nil
}

// ReloadScripts makes every scripted motion recompile on its next update.
func ReloadScripts(w *ecs.World) {
	ecs.ForEach(w, component.ScriptedMotionComponent.Kind(), func(_ ecs.Entity, m *component.ScriptedMotion) {
		m.Compiled = nil
		m.Failed = false
	})
}
