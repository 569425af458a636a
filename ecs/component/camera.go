package component

// Camera views a ViewWidth x ViewHeight world rectangle centred on its
// transform. When TargetName is set the camera follows the named entity.
type Camera struct {
	ViewWidth  float64
	ViewHeight float64
	Zoom       float64
	TargetName string
	// Smoothing in [0,1) eases the camera toward the target; 0 snaps.
	Smoothing float64
}

var CameraComponent = NewComponent[Camera]()
