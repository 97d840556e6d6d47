package player

import "github.com/go-gl/mathgl/mgl64"

// MotionParameters is the immutable tuning of one player entity.
type MotionParameters struct {
	WalkSpeed           float64 `yaml:"walk_speed"`
	SprintSpeed         float64 `yaml:"sprint_speed"`
	CrouchSpeed         float64 `yaml:"crouch_speed"`
	WalkSpeedTransition float64 `yaml:"walk_speed_transition"`
	JumpForce           float64 `yaml:"jump_force"`
	RotationSmoothTime  float64 `yaml:"rotation_smooth_time"`

	StepForce         float64    `yaml:"step_force"`
	StepCheckDistance float64    `yaml:"step_check_distance"`
	UpperStepOffset   mgl64.Vec3 `yaml:"upper_step_offset"`

	ClimbSpeed           float64    `yaml:"climb_speed"`
	ClimbSprintSpeed     float64    `yaml:"climb_sprint_speed"`
	ClimbSpeedTransition float64    `yaml:"climb_speed_transition"`
	ClimbCheckDistance   float64    `yaml:"climb_check_distance"`
	ClimbOffset          mgl64.Vec3 `yaml:"climb_offset"`

	AboveCheckDistance float64 `yaml:"above_check_distance"`

	GlideSpeed         float64    `yaml:"glide_speed"`
	AirDrag            float64    `yaml:"air_drag"`
	GlideRotationSpeed mgl64.Vec3 `yaml:"glide_rotation_speed"`
	MinGlidePitch      float64    `yaml:"min_glide_pitch"`
	MaxGlidePitch      float64    `yaml:"max_glide_pitch"`
}

// Detectors are the body-local probe points used by the sensor suite.
type Detectors struct {
	Ground         mgl64.Vec3 `yaml:"ground"`
	GroundRadius   float64    `yaml:"ground_radius"`
	ClimbTop       mgl64.Vec3 `yaml:"climb_top"`
	ClimbLeft      mgl64.Vec3 `yaml:"climb_left"`
	ClimbRight     mgl64.Vec3 `yaml:"climb_right"`
	Above          mgl64.Vec3 `yaml:"above"`
	Hit            mgl64.Vec3 `yaml:"hit"`
	HitRadius      float64    `yaml:"hit_radius"`
	GroundLayer    LayerMask  `yaml:"ground_layer"`
	ClimbableLayer LayerMask  `yaml:"climbable_layer"`
	HitLayer       LayerMask  `yaml:"hit_layer"`
}

// CombatParameters tunes the melee combo.
type CombatParameters struct {
	ResetComboInterval float64 `yaml:"reset_combo_interval"`
}

// CameraParameters tunes the camera coupling during climb and glide.
type CameraParameters struct {
	DefaultFOV    float64 `yaml:"default_fov"`
	ClimbFOV      float64 `yaml:"climb_fov"`
	ClampHalfSpan float64 `yaml:"clamp_half_span"`
}

// Config bundles everything a Controller needs.
type Config struct {
	Motion    MotionParameters `yaml:"motion"`
	Detectors Detectors        `yaml:"detectors"`
	Combat    CombatParameters `yaml:"combat"`
	Camera    CameraParameters `yaml:"camera"`
	Collider  ColliderShape    `yaml:"collider"`
}

// DefaultConfig returns tuning that works with the bundled playground level.
func DefaultConfig() Config {
	return Config{
		Motion: MotionParameters{
			WalkSpeed:            250,
			SprintSpeed:          500,
			CrouchSpeed:          120,
			WalkSpeedTransition:  250,
			JumpForce:            5,
			RotationSmoothTime:   0.1,
			StepForce:            300,
			StepCheckDistance:    0.6,
			UpperStepOffset:      mgl64.Vec3{0, 0.4, 0},
			ClimbSpeed:           150,
			ClimbSprintSpeed:     300,
			ClimbSpeedTransition: 150,
			ClimbCheckDistance:   1,
			ClimbOffset:          mgl64.Vec3{0, 1.4, 0.35},
			AboveCheckDistance:   1,
			GlideSpeed:           40,
			AirDrag:              6,
			GlideRotationSpeed:   mgl64.Vec3{60, 90, 30},
			MinGlidePitch:        -10,
			MaxGlidePitch:        30,
		},
		Detectors: Detectors{
			Ground:         mgl64.Vec3{0, 0, 0},
			GroundRadius:   0.2,
			ClimbTop:       mgl64.Vec3{0, 1.6, 0},
			ClimbLeft:      mgl64.Vec3{-0.25, 1.2, 0},
			ClimbRight:     mgl64.Vec3{0.25, 1.2, 0},
			Above:          mgl64.Vec3{0, 1.35, 0},
			Hit:            mgl64.Vec3{0, 1.2, 0.6},
			HitRadius:      0.4,
			GroundLayer:    1 << 0,
			ClimbableLayer: 1 << 1,
			HitLayer:       1 << 2,
		},
		Combat: CombatParameters{ResetComboInterval: 1},
		Camera: CameraParameters{
			DefaultFOV:    70,
			ClimbFOV:      40,
			ClampHalfSpan: 45,
		},
		Collider: DefaultColliderShape(),
	}
}
