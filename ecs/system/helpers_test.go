package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/traverse/config"
	"github.com/milk9111/traverse/ecs"
	"github.com/milk9111/traverse/ecs/component"
	"github.com/milk9111/traverse/player"
)

const (
	layerGround    player.LayerMask = 1
	layerClimbable player.LayerMask = 2
	layerHit       player.LayerMask = 4

	frame = 1.0 / 60
)

type cue struct {
	name          string
	volume, pitch float64
}

type recordingSink struct {
	played  []cue
	stopped []string
}

func (s *recordingSink) Play(name string, volume, pitch float64) {
	s.played = append(s.played, cue{name: name, volume: volume, pitch: pitch})
}

func (s *recordingSink) Stop(name string) { s.stopped = append(s.stopped, name) }

func (s *recordingSink) count(name string) int {
	n := 0
	for _, c := range s.played {
		if c.name == name {
			n++
		}
	}
	return n
}

func testPhysicsSettings() config.PhysicsSettings {
	return config.PhysicsSettings{
		Gravity:     -9.81,
		GroundDrag:  2,
		AirDrag:     1,
		KillPlane:   -30,
		MaxFallRate: 50,
		StepHeight:  0.35,
	}
}

// testScene is a world with a floor and the services a player needs.
type testScene struct {
	w             *ecs.World
	physics       *ecs.PhysicsWorld
	timers        *ecs.Timers
	destructibles *Destructibles
	sink          *recordingSink
}

func newTestScene(t *testing.T) *testScene {
	t.Helper()
	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld()
	timers := ecs.NewTimers()
	floor := ecs.CreateEntity(w)
	pw.AddBox(floor, layerGround, player.Bounds{Min: mgl64.Vec3{-50, -1, -50}, Max: mgl64.Vec3{50, 0, 50}})
	return &testScene{
		w:             w,
		physics:       pw,
		timers:        timers,
		destructibles: NewDestructibles(w, pw, timers, zerolog.Nop()),
		sink:          &recordingSink{},
	}
}

// addPlayer creates a player entity at pos with a rig, an animator and an
// audio emitter.
func (s *testScene) addPlayer(t *testing.T, pos mgl64.Vec3) (ecs.Entity, *component.Player) {
	t.Helper()
	e := ecs.CreateEntity(s.w)

	body := player.NewBody(pos, player.Collider{}, 0)
	anim := component.NewAnimator(component.PunchClip{HitTime: 0.25, Duration: 0.6})
	rig := &component.CameraRig{Target: uint64(e), MinPitch: -30, MaxPitch: 60, Distance: 6, Height: 2, Sensitivity: 1}

	c := player.New("p", body, player.DefaultConfig(), player.Deps{
		World:         s.physics,
		Rig:           rig,
		Scheduler:     s.timers,
		Anim:          anim,
		Destructibles: s.destructibles,
		Logger:        zerolog.Nop(),
	})
	p := &component.Player{Controller: c, Spawn: pos}

	require.NoError(t, ecs.Add(s.w, e, component.PlayerComponent.Kind(), p))
	require.NoError(t, ecs.Add(s.w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body}))
	require.NoError(t, ecs.Add(s.w, e, component.AnimatorComponent.Kind(), anim))
	require.NoError(t, ecs.Add(s.w, e, component.InputQueueComponent.Kind(), &component.InputQueue{}))
	require.NoError(t, ecs.Add(s.w, e, component.AudioEmitterComponent.Kind(), &component.AudioEmitter{Sink: s.sink, StepInterval: 1.4, WasGrounded: true}))

	cam := ecs.CreateEntity(s.w)
	require.NoError(t, ecs.Add(s.w, cam, component.CameraRigComponent.Kind(), rig))
	return e, p
}

func (s *testScene) addSlot(t *testing.T, name string, origin mgl64.Vec3) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(s.w)
	require.NoError(t, ecs.Add(s.w, e, component.DestructibleSlotComponent.Kind(), &component.DestructibleSlot{
		Name:         name,
		Origin:       origin,
		Offset:       mgl64.Vec3{3, 3, 0},
		Size:         mgl64.Vec3{0.8, 1, 0.8},
		Layer:        layerHit | layerGround,
		RespawnDelay: 3,
	}))
	_, err := s.destructibles.Spawn(e, false)
	require.NoError(t, err)
	return e
}

// pipeline returns the full frame in the order the game runs it.
func (s *testScene) pipeline() *ecs.Scheduler {
	return ecs.NewScheduler(
		NewScriptInputSystem(zerolog.Nop()),
		NewClimbingWallSystem(s.physics, zerolog.Nop()),
		NewInputSystem(),
		NewPlayerControllerSystem(),
		NewPhysicsSystem(s.physics, testPhysicsSettings(), layerGround, zerolog.Nop()),
		NewAnimationSystem(),
		ecs.NewTimerSystem(s.timers),
		NewRespawnSystem(s.destructibles, zerolog.Nop()),
		NewAudioSystem(s.sink, 1),
		NewCameraSystem(),
	)
}

func (s *testScene) run(sched *ecs.Scheduler, frames int) {
	for i := 0; i < frames; i++ {
		sched.Update(s.w, frame)
	}
}

// step advances the world clock by one frame and runs systems without
// flushing events, so a test can inspect what they pushed.
func step(w *ecs.World, systems ...ecs.System) {
	w.Advance(frame)
	for _, sys := range systems {
		sys.Update(w)
	}
}

func hasEvent(w *ecs.World, kind ecs.EventKind) bool {
	for _, evt := range w.Events().Events() {
		if evt.Kind == kind {
			return true
		}
	}
	return false
}
