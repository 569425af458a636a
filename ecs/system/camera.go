package system

import (
	"github.com/milk9111/parallax/common"
	"github.com/milk9111/parallax/ecs"
	"github.com/milk9111/parallax/ecs/component"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
	targetName   string
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update moves the camera entity toward its target's position.
func (cs *CameraSystem) Update(w *ecs.World) {
	if !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind(), component.TransformComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
		cs.targetEntity = 0
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok || cam.TargetName == "" {
		return
	}
	if cam.TargetName != cs.targetName || !w.IsAlive(cs.targetEntity) {
		cs.targetName = cam.TargetName
		cs.targetEntity, _ = findEntityByName(w, cam.TargetName)
	}

	targetTransform, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	t := 1.0
	if cam.Smoothing > 0 && cam.Smoothing < 1 {
		t = 1 - cam.Smoothing
	}
	camTransform.X = common.Lerp(camTransform.X, targetTransform.X, t)
	camTransform.Y = common.Lerp(camTransform.Y, targetTransform.Y, t)
}
