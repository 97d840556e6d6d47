package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/milk9111/traverse/ecs"
	"github.com/milk9111/traverse/ecs/component"
)

// RespawnSystem performs pending respawn requests: destructible slots
// recreate their object and players return to their spawn point. It should
// run after the TimerSystem so requests raised by timers this frame are
// handled right away.
type RespawnSystem struct {
	destructibles *Destructibles
	log           zerolog.Logger
}

func NewRespawnSystem(destructibles *Destructibles, log zerolog.Logger) *RespawnSystem {
	return &RespawnSystem{destructibles: destructibles, log: log}
}

func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.RespawnRequestComponent.Kind(), func(e ecs.Entity, _ *component.RespawnRequest) {
		defer ecs.Remove(w, e, component.RespawnRequestComponent.Kind())

		if slot, ok := ecs.Get(w, e, component.DestructibleSlotComponent.Kind()); ok {
			s.respawnSlot(w, e, slot)
			return
		}
		if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
			s.respawnPlayer(w, e, p)
		}
	})
}

func (s *RespawnSystem) respawnSlot(w *ecs.World, e ecs.Entity, slot *component.DestructibleSlot) {
	if s.destructibles == nil {
		return
	}
	obj, err := s.destructibles.Spawn(e, true)
	if err != nil {
		s.log.Error().Err(err).Str("slot", slot.Name).Msg("respawn failed")
		return
	}
	w.Events().Push(ecs.Event{Kind: ecs.EventRespawned, Entity: obj, Data: slot.Name})
	s.log.Info().Str("slot", slot.Name).Stringer("object", obj).Msg("destructible respawned")
}

func (s *RespawnSystem) respawnPlayer(w *ecs.World, e ecs.Entity, p *component.Player) {
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Body == nil {
		return
	}
	pb.Body.Position = p.Spawn
	pb.Body.Velocity = mgl64.Vec3{}
	pb.Body.TakeForce()
	pb.Grounded = false
	pb.Airborne = 0
	s.log.Info().Stringer("player", e).Msg("player respawned")
}
