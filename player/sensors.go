package player

import "github.com/go-gl/mathgl/mgl64"

// Readings is one tick of sensor results.
type Readings struct {
	Grounded     bool
	StepAhead    bool
	Climbable    bool
	ClimbHit     RayHit
	OverheadFree bool
}

// Sensors runs the per-tick environment probes. It never mutates the body.
type Sensors struct {
	world     WorldQuery
	detectors Detectors
	motion    MotionParameters
}

func NewSensors(world WorldQuery, detectors Detectors, motion MotionParameters) *Sensors {
	return &Sensors{world: world, detectors: detectors, motion: motion}
}

// Read evaluates every probe against the body's current pose.
func (s *Sensors) Read(b *Body) Readings {
	r := Readings{
		Grounded:     s.Grounded(b),
		StepAhead:    s.StepAhead(b),
		OverheadFree: s.OverheadFree(b),
	}
	r.ClimbHit, r.Climbable = s.Climbable(b)
	return r
}

// Grounded overlaps a sphere at the ground detector against the ground layer.
func (s *Sensors) Grounded(b *Body) bool {
	center := b.LocalPoint(s.detectors.Ground)
	return len(s.world.OverlapSphere(center, s.detectors.GroundRadius, s.detectors.GroundLayer)) > 0
}

// StepAhead reports a low ledge: the ray at foot level hits and the raised
// ray does not.
func (s *Sensors) StepAhead(b *Body) bool {
	lower := b.LocalPoint(s.detectors.Ground)
	upper := lower.Add(s.motion.UpperStepOffset)
	fwd := b.Forward()
	_, lowerHit := s.world.Raycast(lower, fwd, s.motion.StepCheckDistance, AllLayers)
	if !lowerHit {
		return false
	}
	_, upperHit := s.world.Raycast(upper, fwd, s.motion.StepCheckDistance, AllLayers)
	return !upperHit
}

// Climbable casts the top, left and right probes forward. The surface is
// accepted only when all three hit; the top hit is returned for snapping.
func (s *Sensors) Climbable(b *Body) (RayHit, bool) {
	fwd := b.Forward()
	probe := func(offset mgl64.Vec3) (RayHit, bool) {
		return s.world.Raycast(b.LocalPoint(offset), fwd, s.motion.ClimbCheckDistance, s.detectors.ClimbableLayer)
	}
	top, ok := probe(s.detectors.ClimbTop)
	if !ok {
		return RayHit{}, false
	}
	if _, ok := probe(s.detectors.ClimbLeft); !ok {
		return RayHit{}, false
	}
	if _, ok := probe(s.detectors.ClimbRight); !ok {
		return RayHit{}, false
	}
	return top, true
}

// OverheadFree casts straight up from the head probe.
func (s *Sensors) OverheadFree(b *Body) bool {
	_, hit := s.world.Raycast(b.LocalPoint(s.detectors.Above), b.Up(), s.motion.AboveCheckDistance, AllLayers)
	return !hit
}

// HitTargets overlaps the punch sphere against the destructible layer.
func (s *Sensors) HitTargets(b *Body) []WorldCollider {
	return s.world.OverlapSphere(b.LocalPoint(s.detectors.Hit), s.detectors.HitRadius, s.detectors.HitLayer)
}
