package player

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
)

const (
	layerGround    LayerMask = 1 << 0
	layerClimbable LayerMask = 1 << 1
	layerHit       LayerMask = 1 << 2
)

type fakeWorld struct {
	colliders []WorldCollider
	nextID    ColliderID
}

func (w *fakeWorld) add(layer LayerMask, min, max mgl64.Vec3) WorldCollider {
	w.nextID++
	c := WorldCollider{ID: w.nextID, Layer: layer, Bounds: Bounds{Min: min, Max: max}}
	w.colliders = append(w.colliders, c)
	return c
}

func (w *fakeWorld) remove(id ColliderID) bool {
	for i, c := range w.colliders {
		if c.ID == id {
			w.colliders = append(w.colliders[:i], w.colliders[i+1:]...)
			return true
		}
	}
	return false
}

func (w *fakeWorld) OverlapSphere(center mgl64.Vec3, radius float64, mask LayerMask) []WorldCollider {
	var out []WorldCollider
	for _, c := range w.colliders {
		if c.Layer&mask == 0 {
			continue
		}
		if c.Bounds.ClosestPoint(center).Sub(center).Len() <= radius {
			out = append(out, c)
		}
	}
	return out
}

func (w *fakeWorld) Raycast(origin, dir mgl64.Vec3, maxDistance float64, mask LayerMask) (RayHit, bool) {
	dir = dir.Normalize()
	best := RayHit{Distance: math.Inf(1)}
	found := false
	for _, c := range w.colliders {
		if c.Layer&mask == 0 || c.Bounds.Contains(origin) {
			continue
		}
		tmin, tmax := 0.0, maxDistance
		hit := true
		for axis := 0; axis < 3; axis++ {
			o, d := origin[axis], dir[axis]
			lo, hi := c.Bounds.Min[axis], c.Bounds.Max[axis]
			if math.Abs(d) < 1e-12 {
				if o < lo || o > hi {
					hit = false
					break
				}
				continue
			}
			t1, t2 := (lo-o)/d, (hi-o)/d
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			tmin, tmax = math.Max(tmin, t1), math.Min(tmax, t2)
			if tmin > tmax {
				hit = false
				break
			}
		}
		if hit && tmin < best.Distance {
			best = RayHit{Point: origin.Add(dir.Mul(tmin)), Distance: tmin, Collider: c}
			found = true
		}
	}
	if !found {
		return RayHit{}, false
	}
	return best, true
}

type fakeRig struct {
	yaw         float64
	perspective Perspective
	min, max    float64
	wrap        bool
	fov         float64
}

func (r *fakeRig) Yaw() float64                      { return r.yaw }
func (r *fakeRig) SetPerspective(p Perspective)      { r.perspective = p }
func (r *fakeRig) SetFieldOfView(fov float64)        { r.fov = fov }
func (r *fakeRig) SetYawRange(min, max float64, wrap bool) {
	r.min, r.max, r.wrap = min, max, wrap
}

type recordingSink struct {
	floats   map[string]float64
	bools    map[string]bool
	ints     map[string]int
	triggers []string
}

func newRecordingSink() *recordingSink {
	return &recordingSink{floats: map[string]float64{}, bools: map[string]bool{}, ints: map[string]int{}}
}

func (s *recordingSink) SetFloat(name string, v float64) { s.floats[name] = v }
func (s *recordingSink) SetBool(name string, v bool)     { s.bools[name] = v }
func (s *recordingSink) SetInt(name string, v int)       { s.ints[name] = v }
func (s *recordingSink) SetTrigger(name string)          { s.triggers = append(s.triggers, name) }

type pendingTimer struct {
	due float64
	fn  func()
}

type manualClock struct {
	now    float64
	timers map[TimerID]pendingTimer
	fired  map[TimerID]int
}

func newManualClock() *manualClock {
	return &manualClock{timers: map[TimerID]pendingTimer{}, fired: map[TimerID]int{}}
}

func (m *manualClock) ScheduleOnce(id TimerID, delay float64, fn func()) {
	m.timers[id] = pendingTimer{due: m.now + delay, fn: fn}
}

func (m *manualClock) Cancel(id TimerID) { delete(m.timers, id) }

func (m *manualClock) Advance(dt float64) {
	m.now += dt
	var due []TimerID
	for id, t := range m.timers {
		if t.due <= m.now+1e-9 {
			due = append(due, id)
		}
	}
	sort.Slice(due, func(i, j int) bool { return m.timers[due[i]].due < m.timers[due[j]].due })
	for _, id := range due {
		t := m.timers[id]
		delete(m.timers, id)
		m.fired[id]++
		t.fn()
	}
}

type fakeDestructibles struct {
	world     *fakeWorld
	destroyed []ColliderID
	respawns  []ColliderID
}

func (d *fakeDestructibles) Destroy(c WorldCollider) bool {
	if !d.world.remove(c.ID) {
		return false
	}
	d.destroyed = append(d.destroyed, c.ID)
	return true
}

func (d *fakeDestructibles) RespawnAfter(c WorldCollider) {
	d.respawns = append(d.respawns, c.ID)
}

// harness wires a controller to fakes on a flat ground plane.
type harness struct {
	world *fakeWorld
	rig   *fakeRig
	sink  *recordingSink
	clock *manualClock
	dest  *fakeDestructibles
	body  *Body
	ctrl  *Controller
}

func newHarness(pos mgl64.Vec3) *harness {
	h := &harness{
		world: &fakeWorld{},
		rig:   &fakeRig{},
		sink:  newRecordingSink(),
		clock: newManualClock(),
	}
	h.dest = &fakeDestructibles{world: h.world}
	h.world.add(layerGround, mgl64.Vec3{-50, -1, -50}, mgl64.Vec3{50, 0, 50})

	cfg := testConfig()
	h.body = NewBody(pos, cfg.Collider.Stand, cfg.Collider.Radius)
	h.ctrl = New("test", h.body, cfg, Deps{
		World:         h.world,
		Rig:           h.rig,
		Scheduler:     h.clock,
		Anim:          h.sink,
		Destructibles: h.dest,
		Logger:        zerolog.Nop(),
	})
	return h
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Detectors.GroundLayer = layerGround
	cfg.Detectors.ClimbableLayer = layerClimbable
	cfg.Detectors.HitLayer = layerHit
	return cfg
}

func (h *harness) tick(dt float64, events ...InputEvent) {
	for _, e := range events {
		h.ctrl.Handle(e)
	}
	h.ctrl.Tick(dt)
	h.clock.Advance(dt)
}
