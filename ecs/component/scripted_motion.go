package component

import "github.com/d5/tengo/v2"

// ScriptedMotion moves an entity along a path computed by a tengo script.
// The script reads t, x0 and y0 and sets x and y.
type ScriptedMotion struct {
	ScriptPath string
	Source     []byte
	Speed      float64
	Elapsed    float64
	OriginX    float64
	OriginY    float64

	Compiled *tengo.Compiled
	Failed   bool
}

var ScriptedMotionComponent = NewComponent[ScriptedMotion]()
