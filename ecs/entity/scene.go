package entity

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/milk9111/traverse/config"
	"github.com/milk9111/traverse/ecs"
	"github.com/milk9111/traverse/ecs/component"
	"github.com/milk9111/traverse/ecs/system"
	"github.com/milk9111/traverse/levels"
	"github.com/milk9111/traverse/player"
	"github.com/milk9111/traverse/prefabs"
)

// Scene is a loaded level with one player and its camera, plus the systems
// that step them.
type Scene struct {
	World         *ecs.World
	Physics       *ecs.PhysicsWorld
	Timers        *ecs.Timers
	Destructibles *system.Destructibles
	Scheduler     *ecs.Scheduler
	Level         *levels.Level

	Player ecs.Entity
	Camera ecs.Entity

	ctx *BuildContext
	log zerolog.Logger
}

// NewScene loads settings.Level and spawns settings.Player at the level's
// spawn point. A non-empty settings.Script drives the player.
func NewScene(settings config.Settings, audio component.AudioSink, log zerolog.Logger) (*Scene, error) {
	lvl, err := levels.Load(settings.Level)
	if err != nil {
		return nil, err
	}
	ground, err := prefabs.ParseLayer("ground")
	if err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	physics := ecs.NewPhysicsWorld()
	timers := ecs.NewTimers()
	destructibles := system.NewDestructibles(w, physics, timers, log)

	ctx := &BuildContext{
		Physics:       physics,
		Timers:        timers,
		Destructibles: destructibles,
		Audio:         audio,
		Logger:        log,
	}
	if err := LoadLevel(w, lvl, ctx); err != nil {
		return nil, err
	}

	camera, rig, err := NewCamera(w, settings.Camera, lvl.SpawnYaw, ctx)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	p, err := NewPlayer(w, settings.Player, lvl.Spawn, lvl.SpawnYaw, rig, ctx)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if settings.Script != "" {
		if err := AttachScript(w, p, settings.Script); err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
	}

	s := &Scene{
		World:         w,
		Physics:       physics,
		Timers:        timers,
		Destructibles: destructibles,
		Level:         lvl,
		Player:        p,
		Camera:        camera,
		ctx:           ctx,
		log:           log,
	}
	s.Scheduler = ecs.NewScheduler(
		system.NewScriptInputSystem(log),
		system.NewClimbingWallSystem(physics, log),
		system.NewInputSystem(),
		system.NewPlayerControllerSystem(),
		system.NewPhysicsSystem(physics, settings.Physics, ground, log),
		system.NewAnimationSystem(),
		ecs.NewTimerSystem(timers),
		system.NewRespawnSystem(destructibles, log),
		system.NewAudioSystem(audio, 1),
		system.NewCameraSystem(),
	)
	return s, nil
}

// Step advances the scene by one frame of dt seconds.
func (s *Scene) Step(dt float64) {
	s.Scheduler.Update(s.World, dt)
}

// Controller returns the player's controller.
func (s *Scene) Controller() *player.Controller {
	p, ok := ecs.Get(s.World, s.Player, component.PlayerComponent.Kind())
	if !ok {
		return nil
	}
	return p.Controller
}

func (s *Scene) Rig() *component.CameraRig {
	rig, _ := ecs.Get(s.World, s.Camera, component.CameraRigComponent.Kind())
	return rig
}

func (s *Scene) Input() *component.InputQueue {
	q, _ := ecs.Get(s.World, s.Player, component.InputQueueComponent.Kind())
	return q
}

func (s *Scene) Animator() *component.Animator {
	a, _ := ecs.Get(s.World, s.Player, component.AnimatorComponent.Kind())
	return a
}

// ScriptDone reports whether the player's script has finished, or true if
// it has none.
func (s *Scene) ScriptDone() bool {
	sc, ok := ecs.Get(s.World, s.Player, component.ScriptComponent.Kind())
	return !ok || sc.Done
}

// ReloadPlayer rebuilds the player controller from its prefab on disk.
func (s *Scene) ReloadPlayer() error {
	p, ok := ecs.Get(s.World, s.Player, component.PlayerComponent.Kind())
	if !ok {
		return fmt.Errorf("scene: player is gone")
	}
	ctx := *s.ctx
	ctx.Rig = s.Rig()
	return ReloadPlayer(s.World, s.Player, p.Prefab, &ctx)
}
