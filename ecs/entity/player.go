package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/traverse/ecs"
	"github.com/milk9111/traverse/ecs/component"
	"github.com/milk9111/traverse/prefabs"
)

// NewPlayer builds a player from prefab at pos facing yaw, coupled to rig.
func NewPlayer(w *ecs.World, prefab string, pos mgl64.Vec3, yaw float64, rig *component.CameraRig, ctx *BuildContext) (ecs.Entity, error) {
	if rig == nil {
		return 0, fmt.Errorf("player: camera rig is required")
	}
	playerCtx := *ctx
	playerCtx.Name = ""
	playerCtx.Position = pos
	playerCtx.Yaw = yaw
	playerCtx.Rig = rig

	e, err := BuildEntity(w, prefab, &playerCtx)
	if err != nil {
		return 0, err
	}
	if !ecs.Has(w, e, component.PlayerComponent.Kind()) {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("player: prefab %q has no player component", prefab)
	}
	return e, nil
}

// ReloadPlayer rebuilds the controller of e from prefab, keeping its body
// where it is. The new controller starts standing in third person.
func ReloadPlayer(w *ecs.World, e ecs.Entity, prefab string, ctx *BuildContext) error {
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		return fmt.Errorf("reload player: %s is not a player", e)
	}
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Body == nil {
		return fmt.Errorf("reload player: %s has no body", e)
	}

	spec, err := prefabs.LoadPlayerSpec(prefab)
	if err != nil {
		return fmt.Errorf("reload player: %w", err)
	}

	pb.Body.UseGravity = true
	c, err := NewController(w, e, pb.Body, spec.Config, ctx)
	if err != nil {
		return fmt.Errorf("reload player: %w", err)
	}
	p.Controller = c
	p.Prefab = prefab

	w.Events().Push(ecs.Event{Kind: ecs.EventReloaded, Entity: e, Data: prefab})
	ctx.Logger.Info().Stringer("player", e).Str("prefab", prefab).Msg("player reloaded")
	return nil
}
