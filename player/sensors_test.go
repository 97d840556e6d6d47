package player

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSensorFixture() (*fakeWorld, *Sensors, *Body) {
	w := &fakeWorld{}
	w.add(layerGround, mgl64.Vec3{-50, -1, -50}, mgl64.Vec3{50, 0, 50})
	cfg := testConfig()
	b := NewBody(mgl64.Vec3{}, cfg.Collider.Stand, cfg.Collider.Radius)
	return w, NewSensors(w, cfg.Detectors, cfg.Motion), b
}

func TestSensorsGrounded(t *testing.T) {
	_, s, b := newSensorFixture()
	assert.True(t, s.Grounded(b))

	b.Position = mgl64.Vec3{0, 3, 0}
	assert.False(t, s.Grounded(b))
}

func TestSensorsGroundedIgnoresOtherLayers(t *testing.T) {
	w := &fakeWorld{}
	w.add(layerClimbable, mgl64.Vec3{-5, -1, -5}, mgl64.Vec3{5, 0, 5})
	cfg := testConfig()
	s := NewSensors(w, cfg.Detectors, cfg.Motion)
	b := NewBody(mgl64.Vec3{}, cfg.Collider.Stand, cfg.Collider.Radius)
	assert.False(t, s.Grounded(b))
}

func TestSensorsStepAhead(t *testing.T) {
	tests := []struct {
		name   string
		height float64
		want   bool
	}{
		{name: "low ledge", height: 0.3, want: true},
		{name: "wall", height: 2, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, s, b := newSensorFixture()
			w.add(layerGround, mgl64.Vec3{-1, 0, 0.3}, mgl64.Vec3{1, tt.height, 1})
			assert.Equal(t, tt.want, s.StepAhead(b))
		})
	}

	_, s, b := newSensorFixture()
	assert.False(t, s.StepAhead(b), "open floor")
}

func TestSensorsClimbableNeedsAllProbes(t *testing.T) {
	tests := []struct {
		name     string
		min, max mgl64.Vec3
		want     bool
	}{
		{name: "full wall", min: mgl64.Vec3{-2, 0, 0.6}, max: mgl64.Vec3{2, 4, 1}, want: true},
		{name: "left probe misses", min: mgl64.Vec3{-0.1, 0, 0.6}, max: mgl64.Vec3{2, 4, 1}, want: false},
		{name: "right probe misses", min: mgl64.Vec3{-2, 0, 0.6}, max: mgl64.Vec3{0.1, 4, 1}, want: false},
		{name: "top probe misses", min: mgl64.Vec3{-2, 0, 0.6}, max: mgl64.Vec3{2, 1.4, 1}, want: false},
		{name: "out of reach", min: mgl64.Vec3{-2, 0, 1.5}, max: mgl64.Vec3{2, 4, 2}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, s, b := newSensorFixture()
			w.add(layerClimbable, tt.min, tt.max)
			hit, ok := s.Climbable(b)
			require.Equal(t, tt.want, ok)
			if ok {
				assert.InDelta(t, 0.6, hit.Point.Z(), 1e-9)
				assert.InDelta(t, 1.6, hit.Point.Y(), 1e-9)
			}
		})
	}
}

func TestSensorsClimbableIgnoresPlainWalls(t *testing.T) {
	w, s, b := newSensorFixture()
	w.add(layerGround, mgl64.Vec3{-2, 0, 0.6}, mgl64.Vec3{2, 4, 1})
	_, ok := s.Climbable(b)
	assert.False(t, ok)
}

func TestSensorsOverheadFree(t *testing.T) {
	w, s, b := newSensorFixture()
	assert.True(t, s.OverheadFree(b))

	w.add(layerGround, mgl64.Vec3{-1, 2, -1}, mgl64.Vec3{1, 2.5, 1})
	assert.False(t, s.OverheadFree(b))
}

func TestSensorsHitTargets(t *testing.T) {
	w, s, b := newSensorFixture()
	crate := w.add(layerHit, mgl64.Vec3{-0.25, 0.9, 0.5}, mgl64.Vec3{0.25, 1.4, 1})
	w.add(layerHit, mgl64.Vec3{-0.25, 0.9, -1}, mgl64.Vec3{0.25, 1.4, -0.5})

	targets := s.HitTargets(b)
	require.Len(t, targets, 1)
	assert.Equal(t, crate.ID, targets[0].ID)
}
