package system

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/traverse/ecs"
	"github.com/milk9111/traverse/ecs/component"
	"github.com/milk9111/traverse/player"
)

// ClimbingWallSystem switches the grip colliders of every climbing wall on
// when a player asks to climb and off again when the climb is cancelled.
// It must run before InputSystem drains the queues.
type ClimbingWallSystem struct {
	physics *ecs.PhysicsWorld
	log     zerolog.Logger
}

func NewClimbingWallSystem(physics *ecs.PhysicsWorld, log zerolog.Logger) *ClimbingWallSystem {
	return &ClimbingWallSystem{physics: physics, log: log}
}

func (s *ClimbingWallSystem) Update(w *ecs.World) {
	if w == nil || s.physics == nil {
		return
	}

	request, seen := false, false
	ecs.ForEach(w, component.InputQueueComponent.Kind(), func(_ ecs.Entity, q *component.InputQueue) {
		for _, evt := range q.Events {
			switch evt.Kind {
			case player.InputClimb:
				request, seen = true, true
			case player.InputCancelClimb:
				request, seen = false, true
			}
		}
	})
	if !seen {
		return
	}

	ecs.ForEach(w, component.ClimbingWallComponent.Kind(), func(e ecs.Entity, wall *component.ClimbingWall) {
		if wall.Enabled == request {
			return
		}
		for _, id := range wall.Colliders {
			s.physics.SetEnabled(id, request)
		}
		wall.Enabled = request
		s.log.Debug().Stringer("wall", e).Bool("enabled", request).Msg("climbing wall toggled")
	})
}
