package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	worldUp      = mgl64.Vec3{0, 1, 0}
	worldForward = mgl64.Vec3{0, 0, 1}
	worldRight   = mgl64.Vec3{1, 0, 0}
)

// Body is the rigid body the controller drives. Forces accumulate between
// physics steps; the owner integrates them (see ecs/system.PhysicsSystem).
type Body struct {
	Position mgl64.Vec3
	// Rotation is Euler degrees: X pitch, Y yaw, Z roll. Applied roll, then
	// pitch, then yaw.
	Rotation   mgl64.Vec3
	Velocity   mgl64.Vec3
	Force      mgl64.Vec3
	Mass       float64
	UseGravity bool
	Collider   Collider
	Radius     float64
}

// NewBody creates a unit-mass body with gravity enabled.
func NewBody(pos mgl64.Vec3, collider Collider, radius float64) *Body {
	return &Body{
		Position:   pos,
		Mass:       1,
		UseGravity: true,
		Collider:   collider,
		Radius:     radius,
	}
}

// Orientation returns the body rotation as a quaternion.
func (b *Body) Orientation() mgl64.Quat {
	return eulerQuat(b.Rotation)
}

func (b *Body) Forward() mgl64.Vec3 { return b.Orientation().Rotate(worldForward) }
func (b *Body) Right() mgl64.Vec3 { return b.Orientation().Rotate(worldRight) }
func (b *Body) Up() mgl64.Vec3 { return b.Orientation().Rotate(worldUp) }

// Yaw returns the heading in degrees.
func (b *Body) Yaw() float64 { return b.Rotation.Y() }

// SetYaw replaces the heading and levels pitch and roll.
func (b *Body) SetYaw(deg float64) {
	b.Rotation = mgl64.Vec3{0, wrapDegrees(deg), 0}
}

// AddForce accumulates a continuous force for the next physics step.
func (b *Body) AddForce(f mgl64.Vec3) {
	b.Force = b.Force.Add(f)
}

// AddImpulse changes velocity immediately.
func (b *Body) AddImpulse(impulse mgl64.Vec3) {
	m := b.Mass
	if m <= 0 {
		m = 1
	}
	b.Velocity = b.Velocity.Add(impulse.Mul(1 / m))
}

// TakeForce returns the accumulated force and clears it.
func (b *Body) TakeForce() mgl64.Vec3 {
	f := b.Force
	b.Force = mgl64.Vec3{}
	return f
}

// LocalPoint converts a body-local offset into world space using yaw only,
// the way detector transforms are parented to an upright root.
func (b *Body) LocalPoint(offset mgl64.Vec3) mgl64.Vec3 {
	q := mgl64.QuatRotate(mgl64.DegToRad(b.Rotation.Y()), worldUp)
	return b.Position.Add(q.Rotate(offset))
}

// YawForward is the level forward vector for a heading in degrees.
func YawForward(deg float64) mgl64.Vec3 {
	return mgl64.QuatRotate(mgl64.DegToRad(deg), worldUp).Rotate(worldForward)
}

// YawRight is the level right vector for a heading in degrees.
func YawRight(deg float64) mgl64.Vec3 {
	return mgl64.QuatRotate(mgl64.DegToRad(deg), worldUp).Rotate(worldRight)
}

// LookYaw returns the heading that faces along dir, ignoring its height.
func LookYaw(dir mgl64.Vec3) (float64, bool) {
	if math.Abs(dir.X()) < 1e-9 && math.Abs(dir.Z()) < 1e-9 {
		return 0, false
	}
	return mgl64.RadToDeg(math.Atan2(dir.X(), dir.Z())), true
}

func eulerQuat(euler mgl64.Vec3) mgl64.Quat {
	yaw := mgl64.QuatRotate(mgl64.DegToRad(euler.Y()), worldUp)
	pitch := mgl64.QuatRotate(mgl64.DegToRad(euler.X()), worldRight)
	roll := mgl64.QuatRotate(mgl64.DegToRad(euler.Z()), worldForward)
	return yaw.Mul(pitch).Mul(roll)
}

// wrapDegrees maps an angle into (-180, 180].
func wrapDegrees(deg float64) float64 {
	d := repeat(deg, 360)
	if d > 180 {
		d -= 360
	}
	return d
}
