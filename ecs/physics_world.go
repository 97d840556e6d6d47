package ecs

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/traverse/player"
)

// PhysicsWorld indexes the level's axis-aligned boxes. Shapes live in a
// Chipmunk space as their XZ footprint, filtered by layer through shape
// categories; height and exact geometry are checked after the broadphase.
type PhysicsWorld struct {
	space *cp.Space

	nextID    player.ColliderID
	colliders map[player.ColliderID]*physicsCollider
	byShape   map[*cp.Shape]player.ColliderID
}

type physicsCollider struct {
	collider player.WorldCollider
	owner    Entity
	shape    *cp.Shape
	enabled  bool
}

var _ player.WorldQuery = (*PhysicsWorld)(nil)

// NewPhysicsWorld creates an empty physics world.
func NewPhysicsWorld() *PhysicsWorld {
	return &PhysicsWorld{
		space:     cp.NewSpace(),
		colliders: make(map[player.ColliderID]*physicsCollider),
		byShape:   make(map[*cp.Shape]player.ColliderID),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

func footprint(b player.Bounds) cp.BB {
	return cp.BB{L: b.Min.X(), B: b.Min.Z(), R: b.Max.X(), T: b.Max.Z()}
}

func queryFilter(mask player.LayerMask) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
}

// newShape builds the footprint shape of c; the layer is its category.
func (pw *PhysicsWorld) newShape(c player.WorldCollider) *cp.Shape {
	shape := cp.NewBox2(pw.space.StaticBody, footprint(c.Bounds), 0)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(c.Layer), cp.ALL_CATEGORIES))
	shape.UserData = c.ID
	return shape
}

// AddBox registers a static box owned by e on layer and returns its collider.
func (pw *PhysicsWorld) AddBox(owner Entity, layer player.LayerMask, bounds player.Bounds) player.WorldCollider {
	pw.nextID++
	c := player.WorldCollider{ID: pw.nextID, Layer: layer, Bounds: bounds}

	shape := pw.newShape(c)
	pw.space.AddShape(shape)

	pw.colliders[c.ID] = &physicsCollider{collider: c, owner: owner, shape: shape, enabled: true}
	pw.byShape[shape] = c.ID
	return c
}

// MoveCollider replaces the bounds of a collider, keeping its id and layer.
func (pw *PhysicsWorld) MoveCollider(id player.ColliderID, bounds player.Bounds) bool {
	pc, ok := pw.colliders[id]
	if !ok {
		return false
	}
	if pc.enabled {
		pw.space.RemoveShape(pc.shape)
	}
	delete(pw.byShape, pc.shape)

	pc.collider.Bounds = bounds
	shape := pw.newShape(pc.collider)
	if pc.enabled {
		pw.space.AddShape(shape)
	}

	pc.shape = shape
	pw.byShape[shape] = id
	return true
}

// RemoveCollider drops a collider from the world.
func (pw *PhysicsWorld) RemoveCollider(id player.ColliderID) bool {
	pc, ok := pw.colliders[id]
	if !ok {
		return false
	}
	if pc.enabled {
		pw.space.RemoveShape(pc.shape)
	}
	delete(pw.byShape, pc.shape)
	delete(pw.colliders, id)
	return true
}

// SetEnabled takes a collider out of, or back into, every query without
// forgetting it.
func (pw *PhysicsWorld) SetEnabled(id player.ColliderID, enabled bool) bool {
	pc, ok := pw.colliders[id]
	if !ok {
		return false
	}
	if pc.enabled == enabled {
		return true
	}
	if enabled {
		pw.space.AddShape(pc.shape)
	} else {
		pw.space.RemoveShape(pc.shape)
	}
	pc.enabled = enabled
	return true
}

// Enabled reports whether id takes part in queries.
func (pw *PhysicsWorld) Enabled(id player.ColliderID) bool {
	pc, ok := pw.colliders[id]
	return ok && pc.enabled
}

// Collider looks up a collider by id.
func (pw *PhysicsWorld) Collider(id player.ColliderID) (player.WorldCollider, bool) {
	pc, ok := pw.colliders[id]
	if !ok {
		return player.WorldCollider{}, false
	}
	return pc.collider, true
}

// Owner returns the entity that registered id.
func (pw *PhysicsWorld) Owner(id player.ColliderID) (Entity, bool) {
	pc, ok := pw.colliders[id]
	if !ok {
		return 0, false
	}
	return pc.owner, true
}

// Colliders lists every collider, enabled or not, in id order.
func (pw *PhysicsWorld) Colliders() []player.WorldCollider {
	out := make([]player.WorldCollider, 0, len(pw.colliders))
	for _, pc := range pw.colliders {
		out = append(out, pc.collider)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// candidates runs the broadphase: enabled colliders on mask whose box
// overlaps area.
func (pw *PhysicsWorld) candidates(area player.Bounds, mask player.LayerMask) []player.WorldCollider {
	var out []player.WorldCollider
	pw.space.BBQuery(footprint(area), queryFilter(mask), func(shape *cp.Shape, _ interface{}) {
		id, ok := pw.byShape[shape]
		if !ok {
			return
		}
		c := pw.colliders[id].collider
		if c.Bounds.Max.Y() < area.Min.Y() || c.Bounds.Min.Y() > area.Max.Y() {
			return
		}
		out = append(out, c)
	}, nil)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// OverlapBox returns the colliders on mask intersecting box.
func (pw *PhysicsWorld) OverlapBox(box player.Bounds, mask player.LayerMask) []player.WorldCollider {
	return pw.candidates(box, mask)
}

// OverlapSphere returns the colliders on mask the sphere touches.
func (pw *PhysicsWorld) OverlapSphere(center mgl64.Vec3, radius float64, mask player.LayerMask) []player.WorldCollider {
	r := mgl64.Vec3{radius, radius, radius}
	var out []player.WorldCollider
	for _, c := range pw.candidates(player.Bounds{Min: center.Sub(r), Max: center.Add(r)}, mask) {
		if c.Bounds.ClosestPoint(center).Sub(center).Len() <= radius {
			out = append(out, c)
		}
	}
	return out
}

// Raycast returns the nearest collider on mask hit by the ray within
// maxDistance. Boxes that contain the origin are ignored.
func (pw *PhysicsWorld) Raycast(origin, dir mgl64.Vec3, maxDistance float64, mask player.LayerMask) (player.RayHit, bool) {
	if dir.Len() == 0 || maxDistance < 0 {
		return player.RayHit{}, false
	}
	dir = dir.Normalize()
	end := origin.Add(dir.Mul(maxDistance))
	area := player.Bounds{
		Min: mgl64.Vec3{math.Min(origin.X(), end.X()), math.Min(origin.Y(), end.Y()), math.Min(origin.Z(), end.Z())},
		Max: mgl64.Vec3{math.Max(origin.X(), end.X()), math.Max(origin.Y(), end.Y()), math.Max(origin.Z(), end.Z())},
	}

	best := player.RayHit{Distance: math.Inf(1)}
	found := false
	for _, c := range pw.candidates(area, mask) {
		if c.Bounds.Contains(origin) {
			continue
		}
		t, ok := rayBox(origin, dir, maxDistance, c.Bounds)
		if ok && t < best.Distance {
			best = player.RayHit{Point: origin.Add(dir.Mul(t)), Distance: t, Collider: c}
			found = true
		}
	}
	if !found {
		return player.RayHit{}, false
	}
	return best, true
}

// rayBox is the slab test; dir must be normalized.
func rayBox(origin, dir mgl64.Vec3, maxDistance float64, b player.Bounds) (float64, bool) {
	tmin, tmax := 0.0, maxDistance
	for axis := 0; axis < 3; axis++ {
		o, d := origin[axis], dir[axis]
		lo, hi := b.Min[axis], b.Max[axis]
		if math.Abs(d) < 1e-12 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}
