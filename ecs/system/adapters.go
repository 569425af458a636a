package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/parallax/ecs"
	"github.com/milk9111/parallax/ecs/component"
	"github.com/milk9111/parallax/parallax"
)

// entityObject exposes an entity's transform to the parallax engine.
type entityObject struct {
	w *ecs.World
	e ecs.Entity
}

func (o entityObject) Position() parallax.Vec3 {
	t, ok := ecs.Get(o.w, o.e, component.TransformComponent.Kind())
	if !ok {
		return parallax.Vec3{}
	}
	return parallax.Vec3{X: t.X, Y: t.Y, Z: t.Z}
}

func (o entityObject) SetPosition(p parallax.Vec3) {
	t, ok := ecs.Get(o.w, o.e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	t.X, t.Y, t.Z = p.X, p.Y, p.Z
}

func (o entityObject) Alive() bool {
	return ecs.Has(o.w, o.e, component.TransformComponent.Kind())
}

// cameraView is the world rectangle seen by a camera entity.
type cameraView struct {
	bb     cp.BB
	aspect float64
}

func (v cameraView) Bounds() cp.BB   { return v.bb }
func (v cameraView) Aspect() float64 { return v.aspect }

// findCameraView returns the first camera's view, or false when no camera has
// a usable size.
func findCameraView(w *ecs.World) (cameraView, bool) {
	e, ok := w.First(component.CameraComponent.Kind(), component.TransformComponent.Kind())
	if !ok {
		return cameraView{}, false
	}
	cam, _ := ecs.Get(w, e, component.CameraComponent.Kind())
	t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if cam.ViewWidth <= 0 || cam.ViewHeight <= 0 {
		return cameraView{}, false
	}
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	hw, hh := cam.ViewWidth/zoom/2, cam.ViewHeight/zoom/2
	return cameraView{
		bb:     cp.BB{L: t.X - hw, B: t.Y - hh, R: t.X + hw, T: t.Y + hh},
		aspect: cam.ViewWidth / cam.ViewHeight,
	}, true
}

func findEntityByName(w *ecs.World, name string) (ecs.Entity, bool) {
	if name == "" {
		return 0, false
	}
	var found ecs.Entity
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		if !found.Valid() && n.Value == name {
			found = e
		}
	})
	return found, found.Valid()
}

// spriteSize is the scaled world size of an entity's sprite.
func spriteSize(w *ecs.World, e ecs.Entity) (float64, float64) {
	s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
	if !ok {
		return 0, 0
	}
	sx, sy := 1.0, 1.0
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		sx, sy = scaleOrOne(t.ScaleX), scaleOrOne(t.ScaleY)
	}
	return s.Width * math.Abs(sx), s.Height * math.Abs(sy)
}

func scaleOrOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
