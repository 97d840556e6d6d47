package player

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 0.1

func TestControllerSpawnState(t *testing.T) {
	h := newHarness(mgl64.Vec3{})
	cfg := h.ctrl.Config()

	assert.Equal(t, StanceStand, h.ctrl.Stance())
	assert.Equal(t, cfg.Motion.WalkSpeed, h.ctrl.Speed())
	assert.Equal(t, cfg.Collider.Stand, h.body.Collider)
	assert.Equal(t, ThirdPerson, h.ctrl.Perspective())
	assert.Equal(t, cfg.Camera.DefaultFOV, h.rig.fov)

	h.tick(dt)
	assert.True(t, h.ctrl.Grounded())
	assert.True(t, h.sink.bools[AnimIsGrounded])
}

func TestSprintEasesToCeilingAndBack(t *testing.T) {
	h := newHarness(mgl64.Vec3{})
	m := h.ctrl.Config().Motion
	steps := int((m.SprintSpeed-m.WalkSpeed)/m.WalkSpeedTransition/dt) + 1

	h.ctrl.Handle(Sprint(true))
	prev := h.ctrl.Speed()
	for i := 0; i < steps; i++ {
		h.tick(dt)
		require.GreaterOrEqual(t, h.ctrl.Speed(), prev)
		require.LessOrEqual(t, h.ctrl.Speed(), m.SprintSpeed)
		prev = h.ctrl.Speed()
	}
	assert.Equal(t, m.SprintSpeed, h.ctrl.Speed())

	h.ctrl.Handle(Sprint(false))
	for i := 0; i < steps; i++ {
		h.tick(dt)
		require.LessOrEqual(t, h.ctrl.Speed(), prev)
		require.GreaterOrEqual(t, h.ctrl.Speed(), m.WalkSpeed)
		prev = h.ctrl.Speed()
	}
	assert.Equal(t, m.WalkSpeed, h.ctrl.Speed())
}

func TestCrouchIgnoresSprint(t *testing.T) {
	h := newHarness(mgl64.Vec3{})
	h.tick(dt, Press(InputCrouch), Sprint(true))
	for i := 0; i < 10; i++ {
		h.tick(dt)
	}
	assert.Equal(t, StanceCrouch, h.ctrl.Stance())
	assert.Equal(t, h.ctrl.Config().Motion.CrouchSpeed, h.ctrl.Speed())
	assert.Equal(t, h.ctrl.Config().Collider.Crouch, h.body.Collider)
	assert.True(t, h.sink.bools[AnimIsCrouch])
}

func TestStandBlockedOverhead(t *testing.T) {
	h := newHarness(mgl64.Vec3{})
	h.tick(dt, Press(InputCrouch))
	require.Equal(t, StanceCrouch, h.ctrl.Stance())

	ceiling := h.world.add(layerGround, mgl64.Vec3{-1, 2, -1}, mgl64.Vec3{1, 2.5, 1})
	h.tick(dt, Press(InputCrouch))
	assert.Equal(t, StanceCrouch, h.ctrl.Stance(), "obstructed")
	h.tick(dt)
	assert.Equal(t, StanceCrouch, h.ctrl.Stance(), "no retry without a new request")

	h.world.remove(ceiling.ID)
	h.tick(dt, Press(InputCrouch))
	assert.Equal(t, StanceStand, h.ctrl.Stance())
	assert.Equal(t, h.ctrl.Config().Motion.WalkSpeed, h.ctrl.Speed())
	assert.False(t, h.sink.bools[AnimIsCrouch])
}

func TestGlideAutoCancelsOnLanding(t *testing.T) {
	h := newHarness(mgl64.Vec3{0, 5, 0})
	h.tick(dt)
	require.False(t, h.ctrl.Grounded())

	h.tick(dt, Press(InputGlide))
	require.Equal(t, StanceGlide, h.ctrl.Stance())
	assert.True(t, h.sink.bools[AnimIsGliding])
	_, _, wrap := h.ctrl.Camera().YawRange()
	assert.False(t, wrap, "camera clamped while gliding")

	h.body.Position = mgl64.Vec3{}
	h.tick(dt, Press(InputGlide))
	assert.Equal(t, StanceStand, h.ctrl.Stance(), "landing wins over a held glide")
	assert.False(t, h.sink.bools[AnimIsGliding])
	_, _, wrap = h.ctrl.Camera().YawRange()
	assert.True(t, wrap)

	h.tick(dt, Press(InputGlide))
	assert.Equal(t, StanceStand, h.ctrl.Stance(), "glide is rejected on the ground")
}

func TestGlideRequiresAirborneStandOrCrouch(t *testing.T) {
	h := newHarness(mgl64.Vec3{})
	h.tick(dt, Press(InputGlide))
	assert.Equal(t, StanceStand, h.ctrl.Stance(), "grounded")

	h = newHarness(mgl64.Vec3{0, 5, 0})
	h.tick(dt, Press(InputCrouch))
	require.Equal(t, StanceCrouch, h.ctrl.Stance())
	h.tick(dt, Press(InputGlide))
	assert.Equal(t, StanceGlide, h.ctrl.Stance())
	assert.False(t, h.sink.bools[AnimIsCrouch])

	h.tick(dt, Press(InputCrouch))
	assert.Equal(t, StanceGlide, h.ctrl.Stance(), "crouch rejected mid-glide")
}

func TestGlidePropulsionWithoutInput(t *testing.T) {
	h := newHarness(mgl64.Vec3{0, 5, 0})
	h.tick(dt, Press(InputGlide))
	require.Equal(t, StanceGlide, h.ctrl.Stance())
	h.body.TakeForce()

	h.tick(dt)
	m := h.ctrl.Config().Motion
	want := mgl64.Vec3{0, m.AirDrag * dt, m.GlideSpeed * dt}
	got := h.body.TakeForce()
	assert.True(t, got.ApproxEqualThreshold(want, 1e-9), "got %v want %v", got, want)
}

func TestGlidePitchClamped(t *testing.T) {
	h := newHarness(mgl64.Vec3{0, 50, 0})
	h.tick(dt, Press(InputGlide))
	m := h.ctrl.Config().Motion

	h.ctrl.Handle(Move(0, 1))
	for i := 0; i < 50; i++ {
		h.tick(dt)
	}
	assert.Equal(t, m.MaxGlidePitch, h.body.Rotation.X())

	h.ctrl.Handle(Move(0, -1))
	for i := 0; i < 50; i++ {
		h.tick(dt)
	}
	assert.Equal(t, m.MinGlidePitch, h.body.Rotation.X())

	h.ctrl.Handle(Move(1, 0))
	h.tick(dt)
	assert.NotZero(t, h.body.Rotation.Z(), "roll follows horizontal input")

	h.tick(dt, Press(InputCancelGlide))
	assert.Equal(t, StanceStand, h.ctrl.Stance())
	assert.Zero(t, h.body.Rotation.X())
	assert.Zero(t, h.body.Rotation.Z())
}

func addClimbWall(h *harness) WorldCollider {
	return h.world.add(layerClimbable, mgl64.Vec3{-2, 0, 0.6}, mgl64.Vec3{2, 4, 1})
}

func TestClimbEntryAndExit(t *testing.T) {
	h := newHarness(mgl64.Vec3{})
	addClimbWall(h)
	cfg := h.ctrl.Config()
	h.body.Velocity = mgl64.Vec3{1, 0, 1}

	h.tick(dt, Press(InputClimb))
	require.Equal(t, StanceClimb, h.ctrl.Stance())
	assert.False(t, h.body.UseGravity)
	assert.Equal(t, mgl64.Vec3{}, h.body.Velocity)
	assert.True(t, h.body.Position.ApproxEqualThreshold(mgl64.Vec3{0, 0.2, 0.25}, 1e-9), "got %v", h.body.Position)
	assert.InDelta(t, 0, h.body.Yaw(), 1e-9)
	assert.Equal(t, cfg.Motion.ClimbSpeed, h.ctrl.Speed())
	assert.Equal(t, cfg.Camera.ClimbFOV, h.rig.fov)
	assert.Equal(t, -45.0, h.rig.min)
	assert.Equal(t, 45.0, h.rig.max)
	assert.True(t, h.sink.bools[AnimIsClimbing])
	assert.Equal(t, cfg.Collider.ClimbCenter, h.body.Collider.Center)

	h.ctrl.Handle(Sprint(true))
	for i := 0; i < 20; i++ {
		h.tick(dt)
	}
	assert.Equal(t, cfg.Motion.ClimbSprintSpeed, h.ctrl.Speed())

	h.tick(dt, Press(InputCancelClimb))
	assert.Equal(t, StanceStand, h.ctrl.Stance())
	assert.True(t, h.body.UseGravity)
	assert.InDelta(t, -0.75, h.body.Position.Z(), 1e-9)
	assert.Equal(t, cfg.Camera.DefaultFOV, h.rig.fov)
	assert.True(t, h.rig.wrap)
	assert.False(t, h.sink.bools[AnimIsClimbing])
}

func TestClimbRejected(t *testing.T) {
	t.Run("no wall", func(t *testing.T) {
		h := newHarness(mgl64.Vec3{})
		h.tick(dt, Press(InputClimb))
		assert.Equal(t, StanceStand, h.ctrl.Stance())
	})
	t.Run("crouched", func(t *testing.T) {
		h := newHarness(mgl64.Vec3{})
		addClimbWall(h)
		h.tick(dt, Press(InputCrouch))
		h.tick(dt, Press(InputClimb))
		assert.Equal(t, StanceCrouch, h.ctrl.Stance())
	})
	t.Run("airborne", func(t *testing.T) {
		h := newHarness(mgl64.Vec3{0, 2, 0})
		addClimbWall(h)
		h.tick(dt, Press(InputClimb))
		assert.Equal(t, StanceStand, h.ctrl.Stance())
	})
}

func TestClimbMovesAlongWall(t *testing.T) {
	h := newHarness(mgl64.Vec3{})
	addClimbWall(h)
	h.tick(dt, Press(InputClimb))
	require.Equal(t, StanceClimb, h.ctrl.Stance())
	h.body.TakeForce()

	h.tick(dt, Move(0, 1))
	speed := h.ctrl.Speed()
	got := h.body.TakeForce()
	assert.True(t, got.ApproxEqualThreshold(mgl64.Vec3{0, speed * dt, 0}, 1e-9), "got %v", got)
}

func TestJumpOnlyWhenGrounded(t *testing.T) {
	h := newHarness(mgl64.Vec3{})
	h.tick(dt, Press(InputJump))
	assert.InDelta(t, h.ctrl.Config().Motion.JumpForce, h.body.Velocity.Y(), 1e-9)
	assert.Contains(t, h.sink.triggers, AnimJump)

	h = newHarness(mgl64.Vec3{0, 5, 0})
	h.tick(dt, Press(InputJump))
	assert.Zero(t, h.body.Velocity.Y())
	assert.NotContains(t, h.sink.triggers, AnimJump)
}

func TestThirdPersonMoveRelativeToCamera(t *testing.T) {
	h := newHarness(mgl64.Vec3{})
	h.tick(dt)
	h.body.TakeForce()

	h.rig.yaw = 90
	h.tick(dt, Move(0, 1))
	got := h.body.TakeForce()
	want := mgl64.Vec3{h.ctrl.Speed() * dt, 0, 0}
	assert.True(t, got.ApproxEqualThreshold(want, 1e-9), "got %v want %v", got, want)
	assert.Greater(t, h.body.Yaw(), 0.0, "turning toward the camera heading")
}

func TestThirdPersonDeadzone(t *testing.T) {
	h := newHarness(mgl64.Vec3{})
	h.tick(dt, Move(0.05, 0.05))
	assert.Equal(t, mgl64.Vec3{}, h.body.TakeForce())
	assert.Zero(t, h.body.Yaw())
}

func TestFirstPersonLocksYawToCamera(t *testing.T) {
	h := newHarness(mgl64.Vec3{})
	h.tick(dt, Press(InputChangePerspective))
	require.Equal(t, FirstPerson, h.ctrl.Perspective())
	assert.Equal(t, FirstPerson, h.rig.perspective)
	assert.Contains(t, h.sink.triggers, AnimChangePerspective)
	h.body.TakeForce()

	h.rig.yaw = 30
	h.tick(dt, Move(1, 0))
	assert.InDelta(t, 30, h.body.Yaw(), 1e-9)
	got := h.body.TakeForce()
	want := YawRight(30).Mul(h.ctrl.Speed() * dt)
	assert.True(t, got.ApproxEqualThreshold(want, 1e-9), "got %v want %v", got, want)
}

func TestPunchSuppressesMovementAndHits(t *testing.T) {
	h := newHarness(mgl64.Vec3{})
	crate := h.world.add(layerHit, mgl64.Vec3{-0.25, 0.9, 0.5}, mgl64.Vec3{0.25, 1.4, 1})
	h.tick(dt)
	h.body.TakeForce()

	h.tick(dt, Press(InputPunch), Move(0, 1))
	require.True(t, h.ctrl.Combat().IsPunching())
	assert.Equal(t, 1, h.ctrl.Combat().Combo())
	assert.Equal(t, mgl64.Vec3{}, h.body.TakeForce())

	h.ctrl.OnAnimationEvent(AnimationEventHit)
	assert.Equal(t, []ColliderID{crate.ID}, h.dest.destroyed)
	assert.Equal(t, []ColliderID{crate.ID}, h.dest.respawns)

	h.ctrl.OnAnimationEvent(AnimationEventPunchEnd)
	assert.False(t, h.ctrl.Combat().IsPunching())
	h.tick(dt)
	assert.NotEqual(t, mgl64.Vec3{}, h.body.TakeForce())
}

func TestStepAssistPushesUp(t *testing.T) {
	h := newHarness(mgl64.Vec3{})
	h.world.add(layerGround, mgl64.Vec3{-1, 0, 0.3}, mgl64.Vec3{1, 0.3, 1})
	h.tick(dt)
	assert.True(t, h.ctrl.Readings().StepAhead)
	assert.InDelta(t, h.ctrl.Config().Motion.StepForce*dt, h.body.TakeForce().Y(), 1e-9)
}

func TestStanceIsAlwaysExactlyOne(t *testing.T) {
	h := newHarness(mgl64.Vec3{0, 5, 0})
	addClimbWall(h)
	seq := []InputKind{InputCrouch, InputGlide, InputClimb, InputCancelGlide, InputCrouch, InputPunch, InputCrouch, InputCancelClimb}
	valid := map[Stance]bool{StanceStand: true, StanceCrouch: true, StanceClimb: true, StanceGlide: true}
	for _, k := range seq {
		h.tick(dt, Press(k))
		assert.True(t, valid[h.ctrl.Stance()], "after %s", k)
		assert.Equal(t, ColliderFor(h.ctrl.Stance(), h.ctrl.Config().Collider), h.body.Collider)
	}
}
