package entity

import (
	"fmt"

	"github.com/milk9111/traverse/ecs"
	"github.com/milk9111/traverse/ecs/component"
	"github.com/milk9111/traverse/levels"
	"github.com/milk9111/traverse/player"
	"github.com/milk9111/traverse/prefabs"
)

// LoadLevel registers the level's boxes and climbing walls with the physics
// world and builds the entities it places.
func LoadLevel(w *ecs.World, lvl *levels.Level, ctx *BuildContext) error {
	if w == nil || lvl == nil {
		return fmt.Errorf("load level: world and level are required")
	}
	if ctx == nil || ctx.Physics == nil {
		return fmt.Errorf("load level %q: physics world is required", lvl.Name)
	}

	for _, b := range lvl.Boxes {
		layer, err := prefabs.ParseLayer(b.Layer)
		if err != nil {
			return fmt.Errorf("load level %q: box %q: %w", lvl.Name, b.Name, err)
		}
		e := ecs.CreateEntity(w)
		c := ctx.Physics.AddBox(e, layer, player.Bounds{Min: b.Min, Max: b.Max})
		if err := ecs.Add(w, e, component.StaticBoxComponent.Kind(), &component.StaticBox{Collider: c, Name: b.Name}); err != nil {
			return fmt.Errorf("load level %q: box %q: %w", lvl.Name, b.Name, err)
		}
	}

	for _, wall := range lvl.Walls {
		if _, err := addClimbingWall(w, wall, ctx); err != nil {
			return fmt.Errorf("load level %q: wall %q: %w", lvl.Name, wall.Name, err)
		}
	}

	for _, placed := range lvl.Entities {
		placeCtx := *ctx
		placeCtx.Name = placed.Name
		placeCtx.Position = placed.Position
		placeCtx.Yaw = 0
		if _, err := BuildEntity(w, placed.Prefab, &placeCtx); err != nil {
			return fmt.Errorf("load level %q: entity %q: %w", lvl.Name, placed.Name, err)
		}
	}

	ctx.Logger.Info().
		Str("level", lvl.Name).
		Int("boxes", len(lvl.Boxes)).
		Int("walls", len(lvl.Walls)).
		Int("entities", len(lvl.Entities)).
		Msg("level loaded")
	return nil
}

// addClimbingWall creates a solid block with a matching grip collider on the
// climbable layer.
func addClimbingWall(w *ecs.World, wall levels.Wall, ctx *BuildContext) (ecs.Entity, error) {
	ground, _ := prefabs.ParseLayer("ground")
	climbable, _ := prefabs.ParseLayer("climbable")
	bounds := player.Bounds{Min: wall.Min, Max: wall.Max}

	e := ecs.CreateEntity(w)
	solid := ctx.Physics.AddBox(e, ground, bounds)
	grip := ctx.Physics.AddBox(e, climbable, bounds)
	ctx.Physics.SetEnabled(grip.ID, wall.Enabled)

	if err := ecs.Add(w, e, component.StaticBoxComponent.Kind(), &component.StaticBox{Collider: solid, Name: wall.Name}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.ClimbingWallComponent.Kind(), &component.ClimbingWall{
		Colliders: []player.ColliderID{grip.ID},
		Enabled:   wall.Enabled,
	}); err != nil {
		return 0, err
	}
	return e, nil
}
