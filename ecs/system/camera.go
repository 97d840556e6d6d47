package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/traverse/ecs"
	"github.com/milk9111/traverse/ecs/component"
	"github.com/milk9111/traverse/player"
)

// eyeDrop is the distance from the top of the capsule to the eyes.
const eyeDrop = 0.1

// CameraSystem places each rig relative to the body it follows: at the eyes
// in first person, on an orbit behind the pivot in third person.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (s *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.CameraRigComponent.Kind(), func(_ ecs.Entity, rig *component.CameraRig) {
		pb, ok := ecs.Get(w, ecs.Entity(rig.Target), component.PhysicsBodyComponent.Kind())
		if !ok || pb.Body == nil {
			return
		}
		rig.Forward = LookDirection(rig.YawDeg, rig.PitchDeg)
		rig.Eye = CameraEye(pb.Body, rig)
	})
}

// LookDirection is the unit view vector for a yaw and a downward pitch in
// degrees.
func LookDirection(yawDeg, pitchDeg float64) mgl64.Vec3 {
	yaw, pitch := mgl64.DegToRad(yawDeg), mgl64.DegToRad(pitchDeg)
	return mgl64.Vec3{
		math.Sin(yaw) * math.Cos(pitch),
		-math.Sin(pitch),
		math.Cos(yaw) * math.Cos(pitch),
	}
}

// CameraEye computes where rig sits for body b.
func CameraEye(b *player.Body, rig *component.CameraRig) mgl64.Vec3 {
	if rig.View == player.FirstPerson {
		top := b.Collider.Center + b.Collider.Height/2
		return b.Position.Add(mgl64.Vec3{0, top - eyeDrop, 0})
	}
	pivot := b.Position.Add(mgl64.Vec3{0, rig.Height, 0})
	return pivot.Sub(LookDirection(rig.YawDeg, rig.PitchDeg).Mul(rig.Distance))
}
