package component

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is drawn centred on its transform. Width and Height are the
// unscaled world size; when Image is nil a solid Color rectangle is drawn.
type Sprite struct {
	Image  *ebiten.Image
	Width  float64
	Height float64
	Color  color.Color
	Hidden bool
}

var SpriteComponent = NewComponent[Sprite]()
