package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/traverse/player"
)

// Destructible marks an object a punch can break. Slot is the entity that
// respawns it.
type Destructible struct {
	Slot     uint64
	Collider player.ColliderID
}

var DestructibleComponent = NewComponent[Destructible]()

// DestructibleSlot is a fixed spawn point that recreates its object a while
// after it was destroyed.
type DestructibleSlot struct {
	Name   string
	Origin mgl64.Vec3
	// Offset is added to Origin on every respawn.
	Offset       mgl64.Vec3
	Size         mgl64.Vec3
	Layer        player.LayerMask
	RespawnDelay float64
	// Current is the live object entity, or zero while waiting to respawn.
	Current uint64
}

var DestructibleSlotComponent = NewComponent[DestructibleSlot]()

// RespawnRequest marks a slot whose timer ran out; the respawn system
// recreates the object on its next update.
type RespawnRequest struct{}

var RespawnRequestComponent = NewComponent[RespawnRequest]()
