package system

import (
	"github.com/milk9111/traverse/ecs"
	"github.com/milk9111/traverse/ecs/component"
	"github.com/milk9111/traverse/player"
)

// AnimationSystem plays the punch clip started by the controller's Punch
// trigger and raises its hit and end events back into the controller. The
// remaining one-shot triggers are cleared at the end of the frame.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (s *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Delta()
	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.AnimatorComponent.Kind(), func(_ ecs.Entity, p *component.Player, anim *component.Animator) {
		if anim.ConsumeTrigger(player.AnimPunch) {
			anim.PunchPlaying = true
			anim.PunchTime = 0
			anim.HitFired = false
		}

		if anim.PunchPlaying {
			anim.PunchTime += dt
			if !anim.HitFired && anim.PunchTime >= anim.Punch.HitTime {
				anim.HitFired = true
				s.raise(p, player.AnimationEventHit)
			}
			if anim.PunchTime >= anim.Punch.Duration {
				anim.PunchPlaying = false
				s.raise(p, player.AnimationEventPunchEnd)
			}
		}

		for _, name := range anim.PendingTriggers() {
			anim.ConsumeTrigger(name)
		}
	})
}

func (s *AnimationSystem) raise(p *component.Player, evt player.AnimationEvent) {
	if p.Controller == nil {
		return
	}
	p.Controller.OnAnimationEvent(evt)
}
