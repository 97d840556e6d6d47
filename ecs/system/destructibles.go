package system

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/milk9111/traverse/ecs"
	"github.com/milk9111/traverse/ecs/component"
	"github.com/milk9111/traverse/player"
)

// Destructibles breaks punched objects and restarts the respawn timer of the
// slot they came from. It implements player.Destructibles for one world.
type Destructibles struct {
	w       *ecs.World
	physics *ecs.PhysicsWorld
	timers  *ecs.Timers
	log     zerolog.Logger

	// slots maps a live object's collider to the slot that spawned it. Entries
	// outlive Destroy until RespawnAfter consumed them.
	slots map[player.ColliderID]ecs.Entity
}

var _ player.Destructibles = (*Destructibles)(nil)

func NewDestructibles(w *ecs.World, physics *ecs.PhysicsWorld, timers *ecs.Timers, log zerolog.Logger) *Destructibles {
	return &Destructibles{
		w:       w,
		physics: physics,
		timers:  timers,
		log:     log,
		slots:   make(map[player.ColliderID]ecs.Entity),
	}
}

// Destroy removes the object owning c. Colliders that do not belong to a
// destructible are left alone.
func (d *Destructibles) Destroy(c player.WorldCollider) bool {
	owner, ok := d.physics.Owner(c.ID)
	if !ok || !ecs.IsAlive(d.w, owner) {
		return false
	}
	dc, ok := ecs.Get(d.w, owner, component.DestructibleComponent.Kind())
	if !ok {
		return false
	}

	slotEntity := ecs.Entity(dc.Slot)
	if slot, ok := ecs.Get(d.w, slotEntity, component.DestructibleSlotComponent.Kind()); ok && slot.Current == uint64(owner) {
		slot.Current = 0
	}

	d.physics.RemoveCollider(dc.Collider)
	ecs.DestroyEntity(d.w, owner)
	d.w.Events().Push(ecs.Event{Kind: ecs.EventDestroyed, Entity: slotEntity, Data: c})
	d.log.Debug().Stringer("object", owner).Stringer("slot", slotEntity).Msg("destructible destroyed")
	return true
}

// RespawnAfter schedules the slot of c to recreate its object after the
// slot's delay. A later call for the same slot restarts the delay.
func (d *Destructibles) RespawnAfter(c player.WorldCollider) {
	slotEntity, ok := d.slots[c.ID]
	if !ok {
		return
	}
	delete(d.slots, c.ID)

	slot, ok := ecs.Get(d.w, slotEntity, component.DestructibleSlotComponent.Kind())
	if !ok {
		return
	}
	d.timers.ScheduleOnce(slotTimerID(slot.Name), slot.RespawnDelay, func() {
		if !ecs.IsAlive(d.w, slotEntity) {
			return
		}
		_ = ecs.Add(d.w, slotEntity, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{})
	})
}

// Spawn creates the slot's object. Respawned objects appear at the slot's
// offset and fall into place.
func (d *Destructibles) Spawn(slotEntity ecs.Entity, respawn bool) (ecs.Entity, error) {
	slot, ok := ecs.Get(d.w, slotEntity, component.DestructibleSlotComponent.Kind())
	if !ok {
		return 0, fmt.Errorf("destructibles: %s is not a slot", slotEntity)
	}
	if slot.Current != 0 && ecs.IsAlive(d.w, ecs.Entity(slot.Current)) {
		return ecs.Entity(slot.Current), nil
	}

	pos := slot.Origin
	if respawn {
		pos = pos.Add(slot.Offset)
	}

	e := ecs.CreateEntity(d.w)
	body := player.NewBody(pos, player.Collider{Height: slot.Size.Y(), Center: slot.Size.Y() / 2}, math.Max(slot.Size.X(), slot.Size.Z())/2)
	collider := d.physics.AddBox(e, slot.Layer, BodyBounds(body))

	if err := ecs.Add(d.w, e, component.DestructibleComponent.Kind(), &component.Destructible{
		Slot:     uint64(slotEntity),
		Collider: collider.ID,
	}); err != nil {
		return 0, fmt.Errorf("destructibles: spawn %q: %w", slot.Name, err)
	}
	if err := ecs.Add(d.w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Body:     body,
		Collider: collider.ID,
	}); err != nil {
		return 0, fmt.Errorf("destructibles: spawn %q: %w", slot.Name, err)
	}

	slot.Current = uint64(e)
	d.slots[collider.ID] = slotEntity
	return e, nil
}

// Object returns the live object of the slot named name.
func (d *Destructibles) Object(name string) (ecs.Entity, mgl64.Vec3, bool) {
	var found ecs.Entity
	ecs.ForEach(d.w, component.DestructibleSlotComponent.Kind(), func(_ ecs.Entity, slot *component.DestructibleSlot) {
		if slot.Name == name && slot.Current != 0 {
			found = ecs.Entity(slot.Current)
		}
	})
	if !ecs.IsAlive(d.w, found) {
		return 0, mgl64.Vec3{}, false
	}
	pb, ok := ecs.Get(d.w, found, component.PhysicsBodyComponent.Kind())
	if !ok {
		return found, mgl64.Vec3{}, true
	}
	return found, pb.Body.Position, true
}

func slotTimerID(name string) player.TimerID {
	return player.TimerID("slot/" + name)
}
