package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/parallax/ecs"
	"github.com/milk9111/parallax/ecs/component"
	"github.com/milk9111/parallax/prefabs"
)

// ScriptedMotionSystem moves entities along tengo-scripted paths. The demo
// uses it to drive the coordinator's follow target.
type ScriptedMotionSystem struct {
	dt     float64
	logger *log.Logger
}

func NewScriptedMotionSystem(dt float64, logger *log.Logger) *ScriptedMotionSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &ScriptedMotionSystem{dt: dt, logger: logger}
}

func (s *ScriptedMotionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.ScriptedMotionComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, m *component.ScriptedMotion, t *component.Transform) {
			if m.Failed {
				return
			}
			if m.Compiled == nil {
				compiled, err := compileMotion(m)
				if err != nil {
					m.Failed = true
					s.logger.Printf("scripted motion: entity %s: %v", e, err)
					return
				}
				m.Compiled = compiled
			}

			speed := m.Speed
			if speed == 0 {
				speed = 1
			}
			m.Elapsed += s.dt * speed

			x, y, err := runMotion(m)
			if err != nil {
				m.Failed = true
				s.logger.Printf("scripted motion: entity %s: %v", e, err)
				return
			}
			t.X, t.Y = x, y
		})
}

func compileMotion(m *component.ScriptedMotion) (*tengo.Compiled, error) {
	src := m.Source
	if len(src) == 0 {
		data, err := prefabs.LoadScript(m.ScriptPath)
		if err != nil {
			return nil, fmt.Errorf("load script %q: %w", m.ScriptPath, err)
		}
		src = data
	}

	script := tengo.NewScript(src)
	_ = script.Add("t", 0.0)
	_ = script.Add("x0", 0.0)
	_ = script.Add("y0", 0.0)
	_ = script.Add("x", 0.0)
	_ = script.Add("y", 0.0)
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile script %q: %w", m.ScriptPath, err)
	}
	return compiled, nil
}

func runMotion(m *component.ScriptedMotion) (float64, float64, error) {
	c := m.Compiled
	if err := c.Set("t", m.Elapsed); err != nil {
		return 0, 0, err
	}
	if err := c.Set("x0", m.OriginX); err != nil {
		return 0, 0, err
	}
	if err := c.Set("y0", m.OriginY); err != nil {
		return 0, 0, err
	}
	if err := c.Run(); err != nil {
		return 0, 0, fmt.Errorf("run script %q: %w", m.ScriptPath, err)
	}
	return c.Get("x").Float(), c.Get("y").Float(), nil
}
