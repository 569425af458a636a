package component

// Transform places an entity in the world. Z is depth: larger values are
// farther from the viewer and are drawn first.
type Transform struct {
	X        float64
	Y        float64
	Z        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
