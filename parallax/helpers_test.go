package parallax

import (
	"errors"

	"github.com/jakecoffman/cp"
)

type fakeObject struct {
	pos   Vec3
	alive bool
	sets  int
}

func newFakeObject(x, y, z float64) *fakeObject {
	return &fakeObject{pos: Vec3{X: x, Y: y, Z: z}, alive: true}
}

func (o *fakeObject) Position() Vec3 { return o.pos }

func (o *fakeObject) SetPosition(p Vec3) {
	o.pos = p
	o.sets++
}

func (o *fakeObject) Alive() bool { return o.alive }

func (o *fakeObject) moveTo(x, y float64) {
	o.pos.X, o.pos.Y = x, y
}

type fakeView struct {
	bb     cp.BB
	aspect float64
}

func newFakeView(cx, cy, w, h float64) *fakeView {
	return &fakeView{
		bb:     cp.BB{L: cx - w/2, B: cy - h/2, R: cx + w/2, T: cy + h/2},
		aspect: w / h,
	}
}

func (v *fakeView) Bounds() cp.BB   { return v.bb }
func (v *fakeView) Aspect() float64 { return v.aspect }

type fakeHost struct {
	created   int
	updated   int
	destroyed int
	failAfter int
}

var errHostFull = errors.New("host full")

func (h *fakeHost) CreateInstance(t *Tile) error {
	if h.failAfter > 0 && h.created >= h.failAfter {
		return errHostFull
	}
	h.created++
	t.Handle = h.created
	return nil
}

func (h *fakeHost) UpdateInstance(*Tile) { h.updated++ }

func (h *fakeHost) DestroyInstance(*Tile) { h.destroyed++ }
