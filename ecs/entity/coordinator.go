package entity

import (
	"fmt"

	"github.com/milk9111/parallax/ecs"
	"github.com/milk9111/parallax/ecs/component"
	"github.com/milk9111/parallax/parallax"
)

// NewCoordinator creates the world's coordinator entity. It fails with
// parallax.ErrAmbiguousCoordinator when the world already has one.
func NewCoordinator(w *ecs.World, cfg parallax.Config, target string) (ecs.Entity, *parallax.Coordinator, error) {
	e := ecs.CreateEntity(w)
	if err := AttachCoordinator(w, e, cfg, target, ""); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, nil, err
	}
	pc, _ := ecs.Get(w, e, component.ParallaxCoordinatorComponent.Kind())
	return e, pc.Coordinator, nil
}

// AttachCoordinator adds a coordinator component to e under the same
// one-per-world rule as NewCoordinator.
func AttachCoordinator(w *ecs.World, e ecs.Entity, cfg parallax.Config, target, depthSource string) error {
	if n := w.Count(component.ParallaxCoordinatorComponent.Kind()); n > 0 {
		return fmt.Errorf("%w: world already has %d", parallax.ErrAmbiguousCoordinator, n)
	}
	return ecs.Add(w, e, component.ParallaxCoordinatorComponent.Kind(), &component.ParallaxCoordinator{
		Coordinator:     parallax.NewCoordinator(cfg),
		TargetName:      target,
		DepthSourceName: depthSource,
	})
}
