package entity

import (
	"fmt"

	"github.com/milk9111/traverse/ecs"
	"github.com/milk9111/traverse/ecs/component"
)

// NewCamera builds a camera rig from prefab.
func NewCamera(w *ecs.World, prefab string, yaw float64, ctx *BuildContext) (ecs.Entity, *component.CameraRig, error) {
	camCtx := *ctx
	camCtx.Name = ""
	camCtx.Yaw = yaw

	e, err := BuildEntity(w, prefab, &camCtx)
	if err != nil {
		return 0, nil, err
	}
	rig, ok := ecs.Get(w, e, component.CameraRigComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, e)
		return 0, nil, fmt.Errorf("camera: prefab %q has no camera_rig component", prefab)
	}
	return e, rig, nil
}
