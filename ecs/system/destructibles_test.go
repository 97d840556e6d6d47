package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/traverse/ecs"
	"github.com/milk9111/traverse/ecs/component"
)

func TestDestructibles_SpawnRegistersCollider(t *testing.T) {
	s := newTestScene(t)
	slot := s.addSlot(t, "crate", mgl64.Vec3{0, 0, 3})

	sl, _ := ecs.Get(s.w, slot, component.DestructibleSlotComponent.Kind())
	obj := ecs.Entity(sl.Current)
	require.True(t, ecs.IsAlive(s.w, obj))

	hits := s.physics.OverlapSphere(mgl64.Vec3{0, 0.5, 3}, 0.1, layerHit)
	require.Len(t, hits, 1)
	owner, ok := s.physics.Owner(hits[0].ID)
	require.True(t, ok)
	assert.Equal(t, obj, owner)

	again, err := s.destructibles.Spawn(slot, true)
	require.NoError(t, err)
	assert.Equal(t, obj, again, "a slot holds one object at a time")
}

func TestDestructibles_DestroyAndRespawnAfter(t *testing.T) {
	s := newTestScene(t)
	slot := s.addSlot(t, "crate", mgl64.Vec3{0, 0, 3})
	respawn := NewRespawnSystem(s.destructibles, zerolog.Nop())
	timerSys := ecs.NewTimerSystem(s.timers)

	target := s.physics.OverlapSphere(mgl64.Vec3{0, 0.5, 3}, 0.1, layerHit)[0]
	require.True(t, s.destructibles.Destroy(target))
	assert.True(t, hasEvent(s.w, ecs.EventDestroyed))
	assert.Empty(t, s.physics.OverlapSphere(mgl64.Vec3{0, 0.5, 3}, 0.1, layerHit))
	assert.False(t, s.destructibles.Destroy(target), "already gone")

	s.destructibles.RespawnAfter(target)
	remaining, ok := s.timers.Pending(slotTimerID("crate"))
	require.True(t, ok)
	assert.InDelta(t, 3, remaining, 1e-9)

	for i := 0; i < 3*60-1; i++ {
		step(s.w, timerSys, respawn)
	}
	sl, _ := ecs.Get(s.w, slot, component.DestructibleSlotComponent.Kind())
	assert.Zero(t, sl.Current)

	step(s.w, timerSys, respawn)
	require.NotZero(t, sl.Current)
	assert.True(t, hasEvent(s.w, ecs.EventRespawned))
	assert.False(t, ecs.Has(s.w, slot, component.RespawnRequestComponent.Kind()))

	pb, ok := ecs.Get(s.w, ecs.Entity(sl.Current), component.PhysicsBodyComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{3, 3, 3}, pb.Body.Position)
}

func TestDestructibles_IgnoresPlainColliders(t *testing.T) {
	s := newTestScene(t)
	floor := s.physics.OverlapSphere(mgl64.Vec3{}, 0.1, layerGround)
	require.Len(t, floor, 1)
	assert.False(t, s.destructibles.Destroy(floor[0]))
	s.destructibles.RespawnAfter(floor[0])
	assert.Zero(t, s.timers.Len())
}

func TestDestructibles_PunchTwoCratesRestartsEachSlot(t *testing.T) {
	s := newTestScene(t)
	s.addSlot(t, "left", mgl64.Vec3{-0.3, 0, 3})
	s.addSlot(t, "right", mgl64.Vec3{0.3, 0, 3})
	_, p := s.addPlayer(t, mgl64.Vec3{0, 0, 2})

	destroyed := p.Controller.Combat().Hit(p.Controller.Sensors().HitTargets(p.Controller.Body()))
	assert.Equal(t, 2, destroyed)
	assert.Equal(t, 2, s.timers.Len())
	for _, name := range []string{"left", "right"} {
		_, ok := s.timers.Pending(slotTimerID(name))
		assert.True(t, ok, name)
	}
	_, _, ok := s.destructibles.Object("left")
	assert.False(t, ok)
}
