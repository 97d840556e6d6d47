package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/milk9111/traverse/config"
	"github.com/milk9111/traverse/ecs"
	"github.com/milk9111/traverse/ecs/component"
	"github.com/milk9111/traverse/player"
)

const (
	// contactSlop is how far below the feet a supporting surface may be.
	contactSlop = 0.02
	// landingFrames is how long a body must be airborne before touching down
	// raises EventLanded.
	landingFrames = 3
	// resolveIterations bounds the push-out passes per body and frame.
	resolveIterations = 4
)

// PhysicsSystem integrates every PhysicsBody and pushes it out of the level's
// solid boxes. Forces are in the controller's per-step units: velocity
// changes by force/mass * dt.
type PhysicsSystem struct {
	physics     *ecs.PhysicsWorld
	settings    config.PhysicsSettings
	groundLayer player.LayerMask
	log         zerolog.Logger
}

func NewPhysicsSystem(physics *ecs.PhysicsWorld, settings config.PhysicsSettings, groundLayer player.LayerMask, log zerolog.Logger) *PhysicsSystem {
	return &PhysicsSystem{physics: physics, settings: settings, groundLayer: groundLayer, log: log}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	if w == nil || s.physics == nil {
		return
	}
	dt := w.Delta()
	if dt <= 0 {
		return
	}

	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody) {
		b := pb.Body
		if b == nil {
			return
		}

		s.integrate(pb, dt)
		impact := b.Velocity.Y()
		grounded := s.resolve(b, pb.Collider)
		if pb.Collider != 0 {
			s.physics.MoveCollider(pb.Collider, BodyBounds(b))
		}

		if grounded && !pb.Grounded && pb.Airborne >= landingFrames {
			w.Events().Push(ecs.Event{Kind: ecs.EventLanded, Entity: e, Data: -impact})
		}
		pb.Grounded = grounded
		if grounded {
			pb.Airborne = 0
		} else {
			pb.Airborne++
		}

		if b.Position.Y() < s.settings.KillPlane && ecs.Has(w, e, component.PlayerComponent.Kind()) {
			if !ecs.Has(w, e, component.RespawnRequestComponent.Kind()) {
				s.log.Info().Stringer("entity", e).Float64("y", b.Position.Y()).Msg("fell below kill plane")
				_ = ecs.Add(w, e, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{})
			}
		}
	})
}

func (s *PhysicsSystem) integrate(pb *component.PhysicsBody, dt float64) {
	b := pb.Body
	mass := b.Mass
	if mass <= 0 {
		mass = 1
	}

	v := b.Velocity.Add(b.TakeForce().Mul(dt / mass))
	if b.UseGravity {
		v[1] += s.settings.Gravity * dt
	}

	drag := s.settings.AirDrag
	if pb.Grounded || !b.UseGravity {
		drag = s.settings.GroundDrag
	}
	if drag > 0 {
		v = v.Mul(1 / (1 + drag*dt))
	}
	if s.settings.MaxFallRate > 0 && v.Y() < -s.settings.MaxFallRate {
		v[1] = -s.settings.MaxFallRate
	}

	b.Velocity = v
	b.Position = b.Position.Add(v.Mul(dt))
}

// BodyBounds is the axis-aligned box around the body's capsule.
func BodyBounds(b *player.Body) player.Bounds {
	r := b.Radius
	bottom := b.Position.Y() + b.Collider.Center - b.Collider.Height/2
	return player.Bounds{
		Min: mgl64.Vec3{b.Position.X() - r, bottom, b.Position.Z() - r},
		Max: mgl64.Vec3{b.Position.X() + r, bottom + b.Collider.Height, b.Position.Z() + r},
	}
}

// resolve pushes b out of every solid box it overlaps, other than its own,
// and reports whether it ended up standing on one.
func (s *PhysicsSystem) resolve(b *player.Body, self player.ColliderID) bool {
	for i := 0; i < resolveIterations; i++ {
		moved := false
		for _, c := range s.physics.OverlapBox(BodyBounds(b), s.groundLayer) {
			if c.ID == self {
				continue
			}
			if s.pushOut(b, c.Bounds) {
				moved = true
			}
		}
		if !moved {
			break
		}
	}
	return s.supported(b, self)
}

func (s *PhysicsSystem) pushOut(b *player.Body, box player.Bounds) bool {
	bb := BodyBounds(b)

	var depth [3]float64
	var sign [3]float64
	for axis := 0; axis < 3; axis++ {
		up := bb.Max[axis] - box.Min[axis]
		down := box.Max[axis] - bb.Min[axis]
		if up <= 0 || down <= 0 {
			return false
		}
		if down < up {
			depth[axis], sign[axis] = down, 1
		} else {
			depth[axis], sign[axis] = up, -1
		}
	}

	axis := 0
	if top := box.Max.Y() - bb.Min.Y(); top <= s.settings.StepHeight && b.Velocity.Y() <= 0 {
		axis, depth[1], sign[1] = 1, top, 1
	} else {
		for a := 1; a < 3; a++ {
			if depth[a] < depth[axis] {
				axis = a
			}
		}
	}

	b.Position[axis] += depth[axis] * sign[axis]
	if b.Velocity[axis]*sign[axis] < 0 {
		b.Velocity[axis] = 0
	}
	return true
}

// supported reports a solid box directly under the feet.
func (s *PhysicsSystem) supported(b *player.Body, self player.ColliderID) bool {
	bb := BodyBounds(b)
	feet := player.Bounds{
		Min: mgl64.Vec3{bb.Min.X(), bb.Min.Y() - contactSlop, bb.Min.Z()},
		Max: mgl64.Vec3{bb.Max.X(), bb.Min.Y(), bb.Max.Z()},
	}
	for _, c := range s.physics.OverlapBox(feet, s.groundLayer) {
		if c.ID == self {
			continue
		}
		if c.Bounds.Min.X() < feet.Max.X() && c.Bounds.Max.X() > feet.Min.X() &&
			c.Bounds.Min.Z() < feet.Max.Z() && c.Bounds.Max.Z() > feet.Min.Z() &&
			math.Abs(c.Bounds.Max.Y()-bb.Min.Y()) <= contactSlop {
			return true
		}
	}
	return false
}
