package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// moveDeadzone is the axis magnitude below which third-person input is ignored.
const moveDeadzone = 0.1

// speedBand returns the base and ceiling speeds and the easing rate for the
// current stance.
func (c *Controller) speedBand() (base, ceiling, rate float64) {
	m := c.cfg.Motion
	if c.stance == StanceClimb {
		return m.ClimbSpeed, m.ClimbSprintSpeed, m.ClimbSpeedTransition
	}
	return m.WalkSpeed, m.SprintSpeed, m.WalkSpeedTransition
}

// easeSpeed moves the current speed toward the sprint ceiling while sprint is
// held, back toward the base otherwise. Crouching ignores sprint.
func (c *Controller) easeSpeed(dt float64) {
	if c.stance == StanceCrouch {
		return
	}
	base, ceiling, rate := c.speedBand()
	if c.sprintHeld {
		if c.speed < ceiling {
			c.speed = math.Min(c.speed+rate*dt, ceiling)
		}
		return
	}
	if c.speed > base {
		c.speed = math.Max(c.speed-rate*dt, base)
	}
}

func (c *Controller) move(dt float64) {
	switch c.stance {
	case StanceStand, StanceCrouch:
		if c.combat.IsPunching() {
			return
		}
		if c.camera.Perspective() == FirstPerson {
			c.moveFirstPerson(dt)
		} else {
			c.moveThirdPerson(dt)
		}
		c.pushGroundVelocity()
	case StanceClimb:
		c.moveClimb(dt)
	case StanceGlide:
		c.steerGlide(dt)
	}
}

func (c *Controller) moveThirdPerson(dt float64) {
	if c.axis.Len() <= moveDeadzone {
		return
	}
	target := mgl64.RadToDeg(math.Atan2(c.axis.X(), c.axis.Y())) + c.camera.Yaw()
	yaw := SmoothDampAngle(c.body.Yaw(), target, &c.yawVelocity, c.cfg.Motion.RotationSmoothTime, dt)
	c.body.SetYaw(yaw)

	dir := YawForward(target)
	c.body.AddForce(dir.Mul(c.speed * dt))
}

func (c *Controller) moveFirstPerson(dt float64) {
	c.body.SetYaw(c.camera.Yaw())
	dir := c.body.Forward().Mul(c.axis.Y()).Add(c.body.Right().Mul(c.axis.X()))
	c.body.AddForce(dir.Mul(c.speed * dt))
}

func (c *Controller) pushGroundVelocity() {
	v := c.body.Velocity
	planar := math.Hypot(v.X(), v.Z())
	c.anim.SetFloat(AnimVelocity, planar*c.axis.Len())
	c.anim.SetFloat(AnimVelocityX, planar*c.axis.X())
	c.anim.SetFloat(AnimVelocityZ, planar*c.axis.Y())
}

func (c *Controller) moveClimb(dt float64) {
	right, up := c.body.Right(), c.body.Up()
	dir := right.Mul(c.axis.X()).Add(up.Mul(c.axis.Y()))
	c.body.AddForce(dir.Mul(c.speed * dt))

	v := c.body.Velocity
	wall := math.Hypot(v.Dot(right), v.Dot(up))
	c.anim.SetFloat(AnimClimbVelocityX, wall*c.axis.X())
	c.anim.SetFloat(AnimClimbVelocityY, wall*c.axis.Y())
}

// steerGlide turns input into rotation only; propulsion is separate.
func (c *Controller) steerGlide(dt float64) {
	m := c.cfg.Motion
	rot := c.body.Rotation
	pitch := rot.X() + m.GlideRotationSpeed.X()*c.axis.Y()*dt
	pitch = mgl64.Clamp(pitch, m.MinGlidePitch, m.MaxGlidePitch)
	yaw := rot.Y() + m.GlideRotationSpeed.Y()*c.axis.X()*dt
	roll := rot.Z() + m.GlideRotationSpeed.Z()*c.axis.X()*dt
	c.body.Rotation = mgl64.Vec3{pitch, wrapDegrees(yaw), wrapDegrees(roll)}
}

// glidePropulsion pushes the glider forward and holds it up with the pitch as
// lift, whether or not there is input.
func (c *Controller) glidePropulsion(dt float64) {
	if c.stance != StanceGlide {
		return
	}
	m := c.cfg.Motion
	lift := c.body.Rotation.X()
	up := c.body.Up().Mul(lift + m.AirDrag)
	forward := c.body.Forward().Mul(m.GlideSpeed)
	c.body.AddForce(up.Add(forward).Mul(dt))
}

func (c *Controller) stepAssist(dt float64) {
	if !c.readings.StepAhead {
		return
	}
	c.body.AddForce(mgl64.Vec3{0, c.cfg.Motion.StepForce * dt, 0})
}

func (c *Controller) jump() {
	if !c.readings.Grounded {
		c.reject("jump")
		return
	}
	c.body.AddImpulse(worldUp.Mul(c.cfg.Motion.JumpForce))
	c.anim.SetTrigger(AnimJump)
}
