package entity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/milk9111/traverse/ecs"
	"github.com/milk9111/traverse/ecs/component"
	"github.com/milk9111/traverse/ecs/system"
	"github.com/milk9111/traverse/player"
	"github.com/milk9111/traverse/prefabs"
)

// BuildContext carries the world services component builders wire into, and
// the placement of the entity being built.
type BuildContext struct {
	Physics       *ecs.PhysicsWorld
	Timers        *ecs.Timers
	Destructibles *system.Destructibles
	Audio         component.AudioSink
	Logger        zerolog.Logger

	// Rig is the camera the player controller couples to.
	Rig *component.CameraRig

	Name     string
	Position mgl64.Vec3
	Yaw      float64

	prefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":    addPlayerTag,
	"camera_tag":    addCameraTag,
	"input_queue":   addInputQueue,
	"physics_body":  addPhysicsBody,
	"animator":      addAnimator,
	"audio_emitter": addAudioEmitter,
	"camera_rig":    addCameraRig,
	"script":        addScript,
	"player":        addPlayer,
	"destructible":  addDestructible,
}

// player needs the body and animator; destructible spawns its object last.
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"input_queue",
	"physics_body",
	"animator",
	"audio_emitter",
	"camera_rig",
	"script",
	"player",
	"destructible",
}

func BuildEntity(w *ecs.World, prefabPath string, ctx *BuildContext) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if ctx == nil {
		ctx = &BuildContext{}
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}
	if ctx.Name == "" {
		ctx.Name = spec.Name
	}
	ctx.prefabPath = prefabPath

	e := ecs.CreateEntity(w)

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	build := func(name string, raw any) error {
		builder, ok := componentRegistry[name]
		if !ok {
			return fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, raw, ctx); err != nil {
			return fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		return nil
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := build(name, raw); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
		delete(remaining, name)
	}

	names := make([]string, 0, len(remaining))
	for name := range remaining {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := build(name, remaining[name]); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	return e, nil
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *BuildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *BuildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addInputQueue(w *ecs.World, e ecs.Entity, _ any, _ *BuildContext) error {
	return ecs.Add(w, e, component.InputQueueComponent.Kind(), &component.InputQueue{})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	spec := prefabs.PhysicsBodySpec{Mass: 1}
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Mass <= 0 {
		return fmt.Errorf("%w: mass must be positive, got %g", prefabs.ErrInvalidSpec, spec.Mass)
	}

	body := player.NewBody(ctx.Position, player.Collider{}, 0)
	body.Mass = spec.Mass
	if spec.UseGravity != nil {
		body.UseGravity = *spec.UseGravity
	}
	body.SetYaw(ctx.Yaw)
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body})
}

func addAnimator(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AnimatorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animator spec: %w", err)
	}
	if spec.Duration <= 0 || spec.HitTime < 0 || spec.HitTime > spec.Duration {
		return fmt.Errorf("%w: punch clip hit_time %g must lie within duration %g", prefabs.ErrInvalidSpec, spec.HitTime, spec.Duration)
	}
	return ecs.Add(w, e, component.AnimatorComponent.Kind(), component.NewAnimator(component.PunchClip{
		HitTime:  spec.HitTime,
		Duration: spec.Duration,
	}))
}

func addAudioEmitter(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	spec := prefabs.AudioEmitterSpec{StepInterval: 1.4}
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode audio emitter spec: %w", err)
	}
	return ecs.Add(w, e, component.AudioEmitterComponent.Kind(), &component.AudioEmitter{
		Sink:         ctx.Audio,
		StepInterval: spec.StepInterval,
		WasGrounded:  true,
	})
}

func addCameraRig(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	spec := prefabs.CameraRigSpec{Distance: 6, Height: 2, Sensitivity: 0.15, MinPitch: -30, MaxPitch: 60, FOV: 70}
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode camera rig spec: %w", err)
	}
	if spec.MinPitch > spec.MaxPitch {
		return fmt.Errorf("%w: camera min_pitch %g above max_pitch %g", prefabs.ErrInvalidSpec, spec.MinPitch, spec.MaxPitch)
	}
	rig := &component.CameraRig{
		YawDeg:      ctx.Yaw,
		MinPitch:    spec.MinPitch,
		MaxPitch:    spec.MaxPitch,
		FOV:         spec.FOV,
		Distance:    spec.Distance,
		Height:      spec.Height,
		Sensitivity: spec.Sensitivity,
	}
	rig.PitchDeg = mgl64.Clamp(15, rig.MinPitch, rig.MaxPitch)
	return ecs.Add(w, e, component.CameraRigComponent.Kind(), rig)
}

func addScript(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ScriptSpec](raw)
	if err != nil {
		return fmt.Errorf("decode script spec: %w", err)
	}
	return AttachScript(w, e, spec.Path)
}

// AttachScript loads a tengo input script and puts it on e.
func AttachScript(w *ecs.World, e ecs.Entity, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: script path is empty", prefabs.ErrInvalidSpec)
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ScriptComponent.Kind(), &component.Script{Name: name, Source: src})
}

func addPlayer(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	spec := prefabs.DefaultPlayerSpec()
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return err
	}

	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return fmt.Errorf("player needs a physics_body")
	}
	c, err := NewController(w, e, pb.Body, spec.Config, ctx)
	if err != nil {
		return err
	}

	if ctx.Rig != nil {
		ctx.Rig.Target = uint64(e)
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		Controller: c,
		Prefab:     ctx.prefabPath,
		Spawn:      ctx.Position,
	})
}

// NewController builds a controller for e driving body, wired to the
// services in ctx and to e's animator if it has one.
func NewController(w *ecs.World, e ecs.Entity, body *player.Body, cfg player.Config, ctx *BuildContext) (*player.Controller, error) {
	if ctx.Rig == nil {
		return nil, fmt.Errorf("player needs a camera rig")
	}
	if ctx.Physics == nil || ctx.Timers == nil {
		return nil, fmt.Errorf("player needs a physics world and timers")
	}

	deps := player.Deps{
		World:     ctx.Physics,
		Rig:       ctx.Rig,
		Scheduler: ctx.Timers,
		Logger:    ctx.Logger,
	}
	if anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind()); ok {
		deps.Anim = anim
	}
	if ctx.Destructibles != nil {
		deps.Destructibles = ctx.Destructibles
	}
	return player.New("player:"+e.String(), body, cfg, deps), nil
}

func addDestructible(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	spec := prefabs.DefaultDestructibleSpec()
	if err := prefabs.DecodeComponentSpecInto(raw, &spec); err != nil {
		return fmt.Errorf("decode destructible spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return err
	}
	if ctx.Destructibles == nil {
		return fmt.Errorf("destructible needs the destructibles service")
	}

	layer, _ := prefabs.ParseLayer(spec.Layer)
	if err := ecs.Add(w, e, component.DestructibleSlotComponent.Kind(), &component.DestructibleSlot{
		Name:         ctx.Name,
		Origin:       ctx.Position,
		Offset:       spec.RespawnOffset,
		Size:         spec.Size,
		Layer:        layer,
		RespawnDelay: spec.RespawnDelay,
	}); err != nil {
		return err
	}
	_, err := ctx.Destructibles.Spawn(e, false)
	return err
}
