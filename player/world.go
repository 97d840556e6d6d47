package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LayerMask selects collider layers for a world query.
type LayerMask uint32

// AllLayers matches every collider.
const AllLayers LayerMask = math.MaxUint32

// ColliderID identifies a collider owned by the world.
type ColliderID uint64

// Bounds is an axis-aligned box in world space.
type Bounds struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// ClosestPoint returns the point inside b nearest to p.
func (b Bounds) ClosestPoint(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		mgl64.Clamp(p.X(), b.Min.X(), b.Max.X()),
		mgl64.Clamp(p.Y(), b.Min.Y(), b.Max.Y()),
		mgl64.Clamp(p.Z(), b.Min.Z(), b.Max.Z()),
	}
}

// Contains reports whether p lies inside b.
func (b Bounds) Contains(p mgl64.Vec3) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y() &&
		p.Z() >= b.Min.Z() && p.Z() <= b.Max.Z()
}

// WorldCollider is a collider reported by a world query.
type WorldCollider struct {
	ID     ColliderID
	Layer  LayerMask
	Bounds Bounds
}

// RayHit describes the first collider a ray touched.
type RayHit struct {
	Point    mgl64.Vec3
	Distance float64
	Collider WorldCollider
}

// WorldQuery is the physics capability the controller consumes. Misses are
// reported as empty results, never as errors.
type WorldQuery interface {
	OverlapSphere(center mgl64.Vec3, radius float64, mask LayerMask) []WorldCollider
	Raycast(origin, dir mgl64.Vec3, maxDistance float64, mask LayerMask) (RayHit, bool)
}
