package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/parallax/ecs"
	"github.com/milk9111/parallax/ecs/component"
)

type RenderSystem struct {
	solid map[color.NRGBA]*ebiten.Image
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{solid: make(map[color.NRGBA]*ebiten.Image)}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	camX, camY, zoom := 0.0, 0.0, 1.0
	if camEntity, ok := w.First(component.CameraComponent.Kind(), component.TransformComponent.Kind()); ok {
		camTransform, _ := ecs.Get(w, camEntity, component.TransformComponent.Kind())
		camX, camY = camTransform.X, camTransform.Y
		if cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind()); cam.Zoom > 0 {
			zoom = cam.Zoom
		}
	}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()

	for _, e := range drawOrder(w) {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())

		img := s.Image
		if img == nil {
			img = r.solidImage(s.Color)
		}
		iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
		if iw == 0 || ih == 0 {
			continue
		}
		width, height := s.Width, s.Height
		if width <= 0 {
			width = iw
		}
		if height <= 0 {
			height = ih
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-iw/2, -ih/2)
		op.GeoM.Scale(width/iw*scaleOrOne(t.ScaleX), height/ih*scaleOrOne(t.ScaleY))
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate((t.X-camX)*zoom+float64(sw)/2, (t.Y-camY)*zoom+float64(sh)/2)
		if s.Image != nil && s.Color != nil {
			op.ColorScale.ScaleWithColor(s.Color)
		}

		screen.DrawImage(img, op)
	}
}

func (r *RenderSystem) solidImage(c color.Color) *ebiten.Image {
	if c == nil {
		c = color.White
	}
	key := color.NRGBAModel.Convert(c).(color.NRGBA)
	if img, ok := r.solid[key]; ok {
		return img
	}
	img := ebiten.NewImage(1, 1)
	img.Fill(key)
	r.solid[key] = img
	return img
}

// drawOrder returns the drawable entities far-to-near: larger Z first, then
// by render layer, then by entity id. Hidden sprites and layers whose tiles
// already draw them are left out.
func drawOrder(w *ecs.World) []ecs.Entity {
	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	out := entities[:0]
	for _, e := range entities {
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
		if s.Hidden {
			continue
		}
		if pt, ok := ecs.Get(w, e, component.ParallaxTilingComponent.Kind()); ok && pt.Tiler != nil && pt.Tiler.Built() {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti, _ := ecs.Get(w, out[i], component.TransformComponent.Kind())
		tj, _ := ecs.Get(w, out[j], component.TransformComponent.Kind())
		if ti.Z != tj.Z {
			return ti.Z > tj.Z
		}
		li, lj := 0, 0
		if layer, ok := ecs.Get(w, out[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		if layer, ok := ecs.Get(w, out[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(out[i]) < uint64(out[j])
	})
	return out
}
