package player

import "github.com/rs/zerolog"

// MaxCombo is the last punch of a combo string before it wraps to 1.
const MaxCombo = 3

// Destructibles removes punched objects and schedules their respawn.
type Destructibles interface {
	// Destroy removes the object owning c and reports whether anything was
	// destroyed.
	Destroy(c WorldCollider) bool
	// RespawnAfter (re)starts the respawn timer of the slot c belongs to.
	RespawnAfter(c WorldCollider)
}

// Combat owns the combo counter and punch hit resolution.
type Combat struct {
	scheduler     Scheduler
	destructibles Destructibles
	anim          AnimationSink
	resetInterval float64
	timerID       TimerID
	log           zerolog.Logger

	combo    int
	punching bool
}

func NewCombat(id string, scheduler Scheduler, destructibles Destructibles, anim AnimationSink, params CombatParameters, log zerolog.Logger) *Combat {
	return &Combat{
		scheduler:     scheduler,
		destructibles: destructibles,
		anim:          anim,
		resetInterval: params.ResetComboInterval,
		timerID:       TimerID(id + "/combo_reset"),
		log:           log,
	}
}

func (c *Combat) Combo() int { return c.combo }
func (c *Combat) IsPunching() bool { return c.punching }

// Punch starts the next attack of the combo. Only allowed standing and when
// the previous punch has ended.
func (c *Combat) Punch(stance Stance) bool {
	if c.punching || stance != StanceStand {
		return false
	}
	c.punching = true
	if c.combo < MaxCombo {
		c.combo++
	} else {
		c.combo = 1
	}
	c.scheduler.Cancel(c.timerID)

	c.anim.SetTrigger(AnimPunch)
	c.anim.SetInt(AnimCombo, c.combo)
	c.log.Debug().Int("combo", c.combo).Msg("punch")
	return true
}

// EndPunch clears the mid-punch flag and restarts the combo reset window.
func (c *Combat) EndPunch() {
	c.punching = false
	c.scheduler.ScheduleOnce(c.timerID, c.resetInterval, func() {
		c.combo = 0
		c.log.Debug().Msg("combo reset")
	})
}

// Hit destroys every destructible in the punch sphere and returns how many
// were destroyed.
func (c *Combat) Hit(targets []WorldCollider) int {
	if c.destructibles == nil {
		return 0
	}
	destroyed := make([]WorldCollider, 0, len(targets))
	for _, t := range targets {
		if c.destructibles.Destroy(t) {
			destroyed = append(destroyed, t)
		}
	}
	for _, t := range destroyed {
		c.destructibles.RespawnAfter(t)
	}
	if len(destroyed) > 0 {
		c.log.Debug().Int("destroyed", len(destroyed)).Msg("punch hit")
	}
	return len(destroyed)
}
