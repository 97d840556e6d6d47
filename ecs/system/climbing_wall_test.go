package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/traverse/ecs"
	"github.com/milk9111/traverse/ecs/component"
	"github.com/milk9111/traverse/player"
)

func addWall(t *testing.T, s *testScene, bounds player.Bounds) (*component.ClimbingWall, player.ColliderID) {
	t.Helper()
	e := ecs.CreateEntity(s.w)
	s.physics.AddBox(e, layerGround, bounds)
	grip := s.physics.AddBox(e, layerClimbable, bounds)
	s.physics.SetEnabled(grip.ID, false)
	wall := &component.ClimbingWall{Colliders: []player.ColliderID{grip.ID}}
	require.NoError(t, ecs.Add(s.w, e, component.ClimbingWallComponent.Kind(), wall))
	return wall, grip.ID
}

func TestClimbingWallSystem_TogglesWithClimbInput(t *testing.T) {
	s := newTestScene(t)
	wall, grip := addWall(t, s, player.Bounds{Min: mgl64.Vec3{-2, 0, 1}, Max: mgl64.Vec3{2, 4, 2}})
	e, _ := s.addPlayer(t, mgl64.Vec3{})
	q, _ := ecs.Get(s.w, e, component.InputQueueComponent.Kind())
	sys := NewClimbingWallSystem(s.physics, zerolog.Nop())

	step(s.w, sys)
	assert.False(t, s.physics.Enabled(grip))

	q.Push(player.Press(player.InputClimb))
	step(s.w, sys)
	assert.True(t, wall.Enabled)
	assert.True(t, s.physics.Enabled(grip))
	assert.Len(t, q.Events, 1, "events stay queued for the controller")

	q.Drain()
	q.Push(player.Press(player.InputClimb), player.Press(player.InputCancelClimb))
	step(s.w, sys)
	assert.False(t, wall.Enabled, "the last request of the frame wins")
	assert.False(t, s.physics.Enabled(grip))
}

func TestPipeline_ClimbWallAndLetGo(t *testing.T) {
	s := newTestScene(t)
	addWall(t, s, player.Bounds{Min: mgl64.Vec3{-2, 0, 1}, Max: mgl64.Vec3{2, 4, 2}})
	e, p := s.addPlayer(t, mgl64.Vec3{0, 0, 0.3})
	q, _ := ecs.Get(s.w, e, component.InputQueueComponent.Kind())
	sched := s.pipeline()

	s.run(sched, 2)
	q.Push(player.Press(player.InputClimb))
	s.run(sched, 1)
	require.Equal(t, player.StanceClimb, p.Controller.Stance())
	body := p.Controller.Body()
	assert.False(t, body.UseGravity)
	startY := body.Position.Y()

	q.Push(player.Move(0, 1))
	s.run(sched, 60)
	assert.Greater(t, body.Position.Y(), startY+0.5)
	assert.Less(t, body.Position.Z(), 1.0)

	q.Push(player.Move(0, 0), player.Press(player.InputCancelClimb))
	s.run(sched, 120)
	assert.Equal(t, player.StanceStand, p.Controller.Stance())
	assert.True(t, p.Controller.Grounded())
	assert.InDelta(t, 0, body.Position.Y(), 1e-6)
}
