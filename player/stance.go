package player

// Stance is the mutually exclusive locomotion mode of the player.
type Stance int

const (
	StanceStand Stance = iota
	StanceCrouch
	StanceClimb
	StanceGlide
)

func (s Stance) String() string {
	switch s {
	case StanceStand:
		return "stand"
	case StanceCrouch:
		return "crouch"
	case StanceClimb:
		return "climb"
	case StanceGlide:
		return "glide"
	default:
		return "unknown"
	}
}

// Collider is the capsule geometry of the body, measured from the feet.
type Collider struct {
	Height float64 `yaml:"height"`
	Center float64 `yaml:"center"`
}

// ColliderShape holds the per-stance capsule geometry.
type ColliderShape struct {
	Stand  Collider `yaml:"stand"`
	Crouch Collider `yaml:"crouch"`
	// ClimbCenter raises the capsule while hanging on a wall; height is kept.
	ClimbCenter float64 `yaml:"climb_center"`
	Radius      float64 `yaml:"radius"`
}

// DefaultColliderShape matches a 1.8m humanoid.
func DefaultColliderShape() ColliderShape {
	return ColliderShape{
		Stand:       Collider{Height: 1.8, Center: 0.9},
		Crouch:      Collider{Height: 1.3, Center: 0.66},
		ClimbCenter: 1.3,
		Radius:      0.3,
	}
}

// ColliderFor returns the capsule geometry used while in stance s.
func ColliderFor(s Stance, shape ColliderShape) Collider {
	switch s {
	case StanceCrouch:
		return shape.Crouch
	case StanceClimb:
		return Collider{Height: shape.Stand.Height, Center: shape.ClimbCenter}
	default:
		return shape.Stand
	}
}
