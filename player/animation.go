package player

// AnimationSink receives animator parameters. Calls are fire-and-forget.
type AnimationSink interface {
	SetFloat(name string, value float64)
	SetBool(name string, value bool)
	SetTrigger(name string)
	SetInt(name string, value int)
}

// Animator parameter names.
const (
	AnimVelocity          = "Velocity"
	AnimVelocityX         = "VelocityX"
	AnimVelocityZ         = "VelocityZ"
	AnimClimbVelocityX    = "ClimbVelocityX"
	AnimClimbVelocityY    = "ClimbVelocityY"
	AnimIsGrounded        = "IsGrounded"
	AnimIsCrouch          = "IsCrouch"
	AnimIsClimbing        = "IsClimbing"
	AnimIsGliding         = "IsGliding"
	AnimJump              = "Jump"
	AnimPunch             = "Punch"
	AnimCombo             = "Combo"
	AnimChangePerspective = "ChangePerspective"
)

// AnimationEvent is a signal raised by the animation clips back into the
// controller.
type AnimationEvent int

const (
	// AnimationEventHit fires on the impact frame of a punch clip.
	AnimationEventHit AnimationEvent = iota
	// AnimationEventPunchEnd fires when a punch clip finishes.
	AnimationEventPunchEnd
)

func (e AnimationEvent) String() string {
	switch e {
	case AnimationEventHit:
		return "hit"
	case AnimationEventPunchEnd:
		return "punch_end"
	default:
		return "unknown"
	}
}

type nopSink struct{}

func (nopSink) SetFloat(string, float64) {}
func (nopSink) SetBool(string, bool) {}
func (nopSink) SetTrigger(string) {}
func (nopSink) SetInt(string, int) {}
