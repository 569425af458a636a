package system

import (
	"fmt"
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/parallax/ecs"
	"github.com/milk9111/parallax/ecs/component"
	"github.com/milk9111/parallax/parallax"
)

// TilingSystem keeps the tiles of tiled layers covering the camera. Run it
// in the late phase after ParallaxSystem.
type TilingSystem struct {
	metrics *parallax.Metrics
	logger  *log.Logger
}

func NewTilingSystem(m *parallax.Metrics, logger *log.Logger) *TilingSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &TilingSystem{metrics: m, logger: logger}
}

func (s *TilingSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.sweepOrphans(w)
	view, hasView := findCameraView(w)

	ecs.ForEach3(w, component.ParallaxLayerComponent.Kind(), component.ParallaxTilingComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, pl *component.ParallaxLayer, pt *component.ParallaxTiling, t *component.Transform) {
			if pl.Layer == nil {
				return
			}
			if pt.Tiler == nil {
				pt.Tiler = parallax.NewTiler(pt.Config, &tileHost{w: w, owner: e}, s.metrics)
			}

			if pl.Disabled || pl.Layer.Phase() == parallax.PhaseInactive || pt.Tiler.Config().Mode == parallax.TileNone {
				if pt.Tiler.Set().Len() > 0 || pt.Tiler.Built() {
					pt.Tiler.Teardown()
				}
				return
			}

			center := cp.Vector{X: t.X, Y: t.Y}
			if hasView && pt.Tiler.NeedsRegenerate(center, view, pl.Layer.OffsetChanged()) {
				width, height := spriteSize(w, e)
				snap, err := pt.Tiler.Regenerate(pl.Layer, center, parallax.TileSource{Width: width, Height: height}, view)
				if err != nil {
					s.logger.Printf("parallax: regenerate tiles for entity %s: %v", e, err)
				}
				t.X += snap.X
				t.Y += snap.Y
			}
			pl.Layer.ClearOffsetChanged()

			host := &tileHost{w: w, owner: e}
			for _, tile := range pt.Tiler.Set().Tiles() {
				host.UpdateInstance(tile)
			}
		})
}

// sweepOrphans destroys tile entities whose owning layer entity is gone.
func (s *TilingSystem) sweepOrphans(w *ecs.World) {
	ecs.ForEach(w, component.ParallaxTileComponent.Kind(), func(e ecs.Entity, pt *component.ParallaxTile) {
		if !w.IsAlive(ecs.Entity(pt.Owner)) {
			ecs.DestroyEntity(w, e)
		}
	})
}

// tileHost backs tiles with entities that copy the owner's sprite.
type tileHost struct {
	w     *ecs.World
	owner ecs.Entity
}

func (h *tileHost) CreateInstance(tile *parallax.Tile) error {
	src, ok := ecs.Get(h.w, h.owner, component.SpriteComponent.Kind())
	if !ok {
		return fmt.Errorf("owner %s has no sprite", h.owner)
	}

	e := ecs.CreateEntity(h.w)
	sprite := *src
	if err := ecs.Add(h.w, e, component.SpriteComponent.Kind(), &sprite); err != nil {
		ecs.DestroyEntity(h.w, e)
		return err
	}
	if err := ecs.Add(h.w, e, component.TransformComponent.Kind(), &component.Transform{}); err != nil {
		ecs.DestroyEntity(h.w, e)
		return err
	}
	if err := ecs.Add(h.w, e, component.ParallaxTileComponent.Kind(), &component.ParallaxTile{Owner: uint64(h.owner), Tile: tile}); err != nil {
		ecs.DestroyEntity(h.w, e)
		return err
	}
	if layer, ok := ecs.Get(h.w, h.owner, component.RenderLayerComponent.Kind()); ok {
		copied := *layer
		_ = ecs.Add(h.w, e, component.RenderLayerComponent.Kind(), &copied)
	}
	tile.Handle = e
	return nil
}

// UpdateInstance places the tile entity relative to its owner and mirrors
// the owner's sprite settings.
func (h *tileHost) UpdateInstance(tile *parallax.Tile) {
	e, ok := tile.Handle.(ecs.Entity)
	if !ok {
		return
	}
	ot, ok := ecs.Get(h.w, h.owner, component.TransformComponent.Kind())
	if !ok {
		return
	}
	tt, ok := ecs.Get(h.w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	tt.X = ot.X + tile.Local.X
	tt.Y = ot.Y + tile.Local.Y
	tt.Z = ot.Z
	tt.ScaleX, tt.ScaleY = ot.ScaleX, ot.ScaleY
	tt.Rotation = ot.Rotation
	if pl, ok := ecs.Get(h.w, h.owner, component.ParallaxLayerComponent.Kind()); ok && pl.Layer != nil && pl.Layer.Kind() == parallax.KindGrid {
		d := pl.Layer.Direction()
		tt.Rotation = math.Atan2(d.Y, d.X)
	}

	if ts, ok := ecs.Get(h.w, e, component.SpriteComponent.Kind()); ok {
		if src, ok := ecs.Get(h.w, h.owner, component.SpriteComponent.Kind()); ok {
			*ts = *src
		}
		ts.Hidden = !tile.Visible
	}
}

func (h *tileHost) DestroyInstance(tile *parallax.Tile) {
	if e, ok := tile.Handle.(ecs.Entity); ok {
		ecs.DestroyEntity(h.w, e)
	}
	tile.Handle = nil
}
