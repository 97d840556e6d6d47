package component

// Cue names understood by audio sinks.
const (
	CueFootstep = "footstep"
	CueLanding  = "landing"
	CuePunch    = "punch"
	CueGlide    = "glide"
	CueFall     = "fall"
)

// AudioSink plays and stops named sound cues. Volume is 0..1; pitch is a
// playback-rate multiplier.
type AudioSink interface {
	Play(cue string, volume, pitch float64)
	Stop(cue string)
}

// AudioEmitter turns player animation state into sound cues.
type AudioEmitter struct {
	Sink AudioSink
	// StepInterval is the distance in metres between footsteps.
	StepInterval float64

	StepDistance float64
	WasGrounded  bool
	WasGliding   bool
	WasPunching  bool
}

var AudioEmitterComponent = NewComponent[AudioEmitter]()
