package parallax

import "github.com/jakecoffman/cp"

// Vec3 is a world position. Z is the depth axis.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) XY() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

// Positioned is an object whose world position the engine reads and writes.
type Positioned interface {
	Position() Vec3
	SetPosition(Vec3)
}

// Target is something a Coordinator can follow. Alive reports false once the
// underlying object has been destroyed.
type Target interface {
	Position() Vec3
	Alive() bool
}

// Viewport describes the visible camera region in world units.
type Viewport interface {
	Bounds() cp.BB
	Aspect() float64
}
