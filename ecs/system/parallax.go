package system

import (
	"log"

	"github.com/milk9111/parallax/ecs"
	"github.com/milk9111/parallax/ecs/component"
	"github.com/milk9111/parallax/parallax"
)

// ParallaxSystem drives every parallax layer from the scene's coordinator.
// It belongs in the late phase so it sees the follow target's final position
// for the frame.
type ParallaxSystem struct {
	locator *parallax.Locator
	metrics *parallax.Metrics
	config  parallax.Config

	boundTarget ecs.Entity
	boundDepth  ecs.Entity
	// known maps each registered layer entity to the depth order it was
	// registered with.
	known map[ecs.Entity]int
}

// NewParallaxSystem creates the system. In live mode a missing coordinator is
// created with DefaultConfig.
func NewParallaxSystem(live bool, m *parallax.Metrics, logger *log.Logger) *ParallaxSystem {
	return &ParallaxSystem{
		locator: parallax.NewLocator(live, logger),
		metrics: m,
		config:  parallax.DefaultConfig(),
		known:   make(map[ecs.Entity]int),
	}
}

func (s *ParallaxSystem) Locator() *parallax.Locator {
	return s.locator
}

func (s *ParallaxSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ce, c := s.resolve(w)
	if c == nil {
		ecs.ForEach(w, component.ParallaxLayerComponent.Kind(), func(_ ecs.Entity, pl *component.ParallaxLayer) {
			if pl.Layer != nil && pl.Layer.Phase() != parallax.PhaseInactive {
				s.metrics.SkippedTick()
			}
		})
		return
	}
	if c.Metrics() == nil {
		c.SetMetrics(s.metrics)
	}
	s.bind(w, ce, c)
	s.syncRegistry(w, c)

	active := 0
	ecs.ForEach(w, component.ParallaxLayerComponent.Kind(), func(e ecs.Entity, pl *component.ParallaxLayer) {
		if pl.Layer == nil || pl.Disabled {
			return
		}
		obj := entityObject{w: w, e: e}
		if !obj.Alive() {
			return
		}
		s.updateWrapWidth(w, e, pl.Layer)
		if pl.Layer.Phase() == parallax.PhaseInactive {
			pl.Layer.Activate(c, obj)
		} else {
			pl.Layer.Tick(c, obj)
		}
		active++
	})
	s.metrics.SetActiveLayers(active)
}

func (s *ParallaxSystem) resolve(w *ecs.World) (ecs.Entity, *parallax.Coordinator) {
	var (
		ents  []ecs.Entity
		found []*parallax.Coordinator
	)
	ecs.ForEach(w, component.ParallaxCoordinatorComponent.Kind(), func(e ecs.Entity, pc *component.ParallaxCoordinator) {
		if pc.Coordinator == nil {
			return
		}
		ents = append(ents, e)
		found = append(found, pc.Coordinator)
	})

	var created ecs.Entity
	c, err := s.locator.Resolve(found, func() *parallax.Coordinator {
		created = ecs.CreateEntity(w)
		coord := parallax.NewCoordinator(s.config)
		if err := ecs.Add(w, created, component.ParallaxCoordinatorComponent.Kind(), &component.ParallaxCoordinator{Coordinator: coord}); err != nil {
			ecs.DestroyEntity(w, created)
			return nil
		}
		_ = ecs.Add(w, created, component.NameComponent.Kind(), &component.Name{Value: "parallax_coordinator"})
		return coord
	})
	if err != nil {
		return 0, nil
	}
	if created.Valid() {
		return created, c
	}
	return ents[0], c
}

// bind points the coordinator at the entities named by its component.
func (s *ParallaxSystem) bind(w *ecs.World, ce ecs.Entity, c *parallax.Coordinator) {
	pc, ok := ecs.Get(w, ce, component.ParallaxCoordinatorComponent.Kind())
	if !ok {
		return
	}

	if !w.IsAlive(s.boundTarget) || !nameIs(w, s.boundTarget, pc.TargetName) {
		if e, ok := findEntityByName(w, pc.TargetName); ok && e != s.boundTarget {
			s.boundTarget = e
			c.Follow(entityObject{w: w, e: e})
		}
	}

	if pc.DepthSourceName == "" {
		return
	}
	if w.IsAlive(s.boundDepth) && nameIs(w, s.boundDepth, pc.DepthSourceName) {
		return
	}
	if e, ok := findEntityByName(w, pc.DepthSourceName); ok {
		s.boundDepth = e
		cfg := c.Config()
		cfg.ReferenceZSource = entityObject{w: w, e: e}
		c.Configure(cfg)
	}
}

func nameIs(w *ecs.World, e ecs.Entity, name string) bool {
	n, ok := ecs.Get(w, e, component.NameComponent.Kind())
	return ok && n.Value == name
}

// syncRegistry rebuilds the depth registry at most once per tick. Layers that
// were disabled or destroyed since the last tick are deactivated; when the
// registry is rebuilt, depth is reassigned to every active layer.
func (s *ParallaxSystem) syncRegistry(w *ecs.World, c *parallax.Coordinator) {
	seen := make(map[ecs.Entity]struct{}, len(s.known))
	var orders []int
	ecs.ForEach(w, component.ParallaxLayerComponent.Kind(), func(e ecs.Entity, pl *component.ParallaxLayer) {
		if pl.Layer == nil {
			return
		}
		if pl.Disabled {
			if pl.Layer.Phase() != parallax.PhaseInactive {
				pl.Layer.Deactivate()
			}
			return
		}
		order := pl.Layer.DepthOrder()
		if prev, ok := s.known[e]; !ok || prev != order {
			s.known[e] = order
			c.Invalidate()
		}
		seen[e] = struct{}{}
		orders = append(orders, order)
	})
	for e := range s.known {
		if _, ok := seen[e]; !ok {
			delete(s.known, e)
			c.Invalidate()
		}
	}

	if !c.Dirty() {
		return
	}
	c.Rebuild(orders)
	ecs.ForEach(w, component.ParallaxLayerComponent.Kind(), func(e ecs.Entity, pl *component.ParallaxLayer) {
		if pl.Layer != nil && !pl.Disabled && pl.Layer.Phase() != parallax.PhaseInactive {
			pl.Layer.ApplyDepth(c, entityObject{w: w, e: e})
		}
	})
}

// updateWrapWidth gives untiled wrapping layers their sprite width as the
// wrap period; strip tiling sets its own stride.
func (s *ParallaxSystem) updateWrapWidth(w *ecs.World, e ecs.Entity, l *parallax.Layer) {
	if !l.Config().Wrap {
		return
	}
	if pt, ok := ecs.Get(w, e, component.ParallaxTilingComponent.Kind()); ok && pt.Config.Mode != parallax.TileNone {
		return
	}
	width, _ := spriteSize(w, e)
	if width != l.WrapWidth() {
		l.SetWrapWidth(width)
	}
}
