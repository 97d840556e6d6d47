package system

import (
	"math"
	"math/rand"

	"github.com/milk9111/traverse/ecs"
	"github.com/milk9111/traverse/ecs/component"
	"github.com/milk9111/traverse/player"
)

// AudioSystem turns player state changes and world events into sound cues.
// Player cues go to the emitter's sink, world cues to the system sink.
type AudioSystem struct {
	sink component.AudioSink
	rng  *rand.Rand
}

func NewAudioSystem(sink component.AudioSink, seed int64) *AudioSystem {
	return &AudioSystem{sink: sink, rng: rand.New(rand.NewSource(seed))}
}

func (s *AudioSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	landed := make(map[ecs.Entity]bool)
	for _, evt := range w.Events().Events() {
		switch evt.Kind {
		case ecs.EventLanded:
			landed[evt.Entity] = true
		case ecs.EventRespawned:
			if s.sink != nil {
				s.sink.Play(component.CueFall, 1, 1)
			}
		}
	}

	dt := w.Delta()
	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.AudioEmitterComponent.Kind(), func(e ecs.Entity, p *component.Player, em *component.AudioEmitter) {
		c := p.Controller
		if c == nil {
			return
		}
		sink := em.Sink
		if sink == nil {
			sink = s.sink
		}
		if sink == nil {
			return
		}

		stance := c.Stance()
		grounded := c.Grounded()

		if landed[e] {
			sink.Play(component.CueLanding, 1, 1)
		}

		if grounded && (stance == player.StanceStand || stance == player.StanceCrouch) {
			v := c.Body().Velocity
			em.StepDistance += math.Hypot(v.X(), v.Z()) * dt
			if em.StepInterval > 0 && em.StepDistance >= em.StepInterval {
				em.StepDistance = math.Mod(em.StepDistance, em.StepInterval)
				vol, pitch := s.vary()
				sink.Play(component.CueFootstep, vol, pitch)
			}
		} else {
			em.StepDistance = 0
		}

		punching := false
		if anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind()); ok {
			punching = anim.PunchPlaying
		}
		if punching && !em.WasPunching {
			vol, pitch := s.vary()
			sink.Play(component.CuePunch, vol, pitch)
		}

		gliding := stance == player.StanceGlide
		switch {
		case gliding && !em.WasGliding:
			sink.Play(component.CueGlide, 1, 1)
		case !gliding && em.WasGliding:
			sink.Stop(component.CueGlide)
		}

		em.WasGrounded = grounded
		em.WasGliding = gliding
		em.WasPunching = punching
	})
}

// vary picks a volume in [0.8, 1.0] and a pitch in [0.8, 1.5].
func (s *AudioSystem) vary() (volume, pitch float64) {
	return 0.8 + s.rng.Float64()*0.2, 0.8 + s.rng.Float64()*0.7
}
