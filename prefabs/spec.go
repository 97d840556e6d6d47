package prefabs

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/traverse/player"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSpec is wrapped by every validation failure.
var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// EntityBuildSpec is a prefab: a named bag of component specs keyed by
// component name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// ComponentNames lists the components of the prefab in name order.
func (s EntityBuildSpec) ComponentNames() []string {
	names := make([]string, 0, len(s.Components))
	for name := range s.Components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var out T
	err := DecodeComponentSpecInto(raw, &out)
	return out, err
}

// DecodeComponentSpecInto decodes raw over dst, so fields missing from raw
// keep the values dst already holds.
func DecodeComponentSpecInto[T any](raw any, dst *T) error {
	if raw == nil {
		return nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, dst)
}

// Layer names used by prefabs and levels.
var layerNames = map[string]player.LayerMask{
	"ground":    1 << 0,
	"climbable": 1 << 1,
	"hit":       1 << 2,
}

// ParseLayer resolves a layer name such as "climbable" or a "|" separated
// list of names into a mask.
func ParseLayer(name string) (player.LayerMask, error) {
	var mask player.LayerMask
	for _, part := range strings.Split(name, "|") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "all" {
			return player.AllLayers, nil
		}
		bit, ok := layerNames[part]
		if !ok {
			return 0, fmt.Errorf("%w: unknown layer %q", ErrInvalidSpec, part)
		}
		mask |= bit
	}
	return mask, nil
}

// PlayerSpec is the "player" component of a prefab: the controller tuning.
// Fields left out of the YAML keep player.DefaultConfig values.
type PlayerSpec struct {
	player.Config `yaml:",inline"`
}

func DefaultPlayerSpec() PlayerSpec {
	return PlayerSpec{Config: player.DefaultConfig()}
}

// Validate rejects tuning the controller cannot run with.
func (s PlayerSpec) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidSpec}, args...)...))
		}
	}

	m := s.Motion
	speeds := map[string]float64{
		"walk_speed":             m.WalkSpeed,
		"sprint_speed":           m.SprintSpeed,
		"crouch_speed":           m.CrouchSpeed,
		"walk_speed_transition":  m.WalkSpeedTransition,
		"climb_speed":            m.ClimbSpeed,
		"climb_sprint_speed":     m.ClimbSprintSpeed,
		"climb_speed_transition": m.ClimbSpeedTransition,
		"jump_force":             m.JumpForce,
		"glide_speed":            m.GlideSpeed,
		"step_force":             m.StepForce,
	}
	names := make([]string, 0, len(speeds))
	for name := range speeds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		check(speeds[name] >= 0, "motion.%s is negative (%g)", name, speeds[name])
	}

	check(m.SprintSpeed >= m.WalkSpeed, "motion.sprint_speed %g below walk_speed %g", m.SprintSpeed, m.WalkSpeed)
	check(m.ClimbSprintSpeed >= m.ClimbSpeed, "motion.climb_sprint_speed %g below climb_speed %g", m.ClimbSprintSpeed, m.ClimbSpeed)
	check(m.MinGlidePitch <= m.MaxGlidePitch, "motion.min_glide_pitch %g above max_glide_pitch %g", m.MinGlidePitch, m.MaxGlidePitch)
	check(m.RotationSmoothTime >= 0, "motion.rotation_smooth_time is negative")
	check(m.StepCheckDistance >= 0 && m.ClimbCheckDistance >= 0 && m.AboveCheckDistance >= 0, "motion check distances must not be negative")

	d := s.Detectors
	check(d.GroundRadius >= 0, "detectors.ground_radius is negative (%g)", d.GroundRadius)
	check(d.HitRadius >= 0, "detectors.hit_radius is negative (%g)", d.HitRadius)
	check(d.GroundLayer != 0, "detectors.ground_layer is empty")
	check(d.ClimbableLayer != 0, "detectors.climbable_layer is empty")

	c := s.Collider
	check(c.Radius >= 0, "collider.radius is negative (%g)", c.Radius)
	check(c.Stand.Height > 0 && c.Crouch.Height > 0, "collider heights must be positive")

	check(s.Combat.ResetComboInterval >= 0, "combat.reset_combo_interval is negative")
	return errors.Join(errs...)
}

// PhysicsBodySpec tunes the rigid body of an entity.
type PhysicsBodySpec struct {
	Mass       float64 `yaml:"mass"`
	UseGravity *bool   `yaml:"use_gravity"`
}

// AnimatorSpec times the punch clip.
type AnimatorSpec struct {
	HitTime  float64 `yaml:"hit_time"`
	Duration float64 `yaml:"duration"`
}

// AudioEmitterSpec tunes footstep spacing.
type AudioEmitterSpec struct {
	StepInterval float64 `yaml:"step_interval"`
}

// CameraRigSpec tunes the camera rig.
type CameraRigSpec struct {
	Distance    float64 `yaml:"distance"`
	Height      float64 `yaml:"height"`
	Sensitivity float64 `yaml:"sensitivity"`
	MinPitch    float64 `yaml:"min_pitch"`
	MaxPitch    float64 `yaml:"max_pitch"`
	FOV         float64 `yaml:"fov"`
}

// ScriptSpec names a tengo input script under scripts/.
type ScriptSpec struct {
	Path string `yaml:"path"`
}

// DestructibleSpec describes a breakable prop and how its slot respawns it.
type DestructibleSpec struct {
	Size          mgl64.Vec3 `yaml:"size"`
	Layer         string     `yaml:"layer"`
	RespawnDelay  float64    `yaml:"respawn_delay"`
	RespawnOffset mgl64.Vec3 `yaml:"respawn_offset"`
}

func DefaultDestructibleSpec() DestructibleSpec {
	return DestructibleSpec{Size: mgl64.Vec3{1, 1, 1}, Layer: "hit", RespawnDelay: 3, RespawnOffset: mgl64.Vec3{3, 3, 0}}
}

func (s DestructibleSpec) Validate() error {
	var errs []error
	if s.Size.X() <= 0 || s.Size.Y() <= 0 || s.Size.Z() <= 0 {
		errs = append(errs, fmt.Errorf("%w: destructible size %v must be positive", ErrInvalidSpec, s.Size))
	}
	if s.RespawnDelay < 0 {
		errs = append(errs, fmt.Errorf("%w: destructible respawn_delay is negative", ErrInvalidSpec))
	}
	if _, err := ParseLayer(s.Layer); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LoadPlayerSpec reads the "player" component of a prefab over the defaults
// and validates it.
func LoadPlayerSpec(filename string) (*PlayerSpec, error) {
	build, err := LoadEntityBuildSpec(filename)
	if err != nil {
		return nil, err
	}
	spec := DefaultPlayerSpec()
	if err := DecodeComponentSpecInto(build.Components["player"], &spec); err != nil {
		return nil, fmt.Errorf("prefabs: decode %s player: %w", filename, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

// LoadDestructibleSpec reads the "destructible" component of a prefab.
func LoadDestructibleSpec(filename string) (*DestructibleSpec, error) {
	build, err := LoadEntityBuildSpec(filename)
	if err != nil {
		return nil, err
	}
	spec := DefaultDestructibleSpec()
	if err := DecodeComponentSpecInto(build.Components["destructible"], &spec); err != nil {
		return nil, fmt.Errorf("prefabs: decode %s destructible: %w", filename, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}
