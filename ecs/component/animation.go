package component

import (
	"sort"

	"github.com/milk9111/traverse/player"
)

// PunchClip times the punch animation: the hit frame and the clip end, in
// seconds from the trigger.
type PunchClip struct {
	HitTime  float64 `yaml:"hit_time"`
	Duration float64 `yaml:"duration"`
}

// Animator is the parameter store of an animation graph. It receives the
// controller's named parameters; triggers stay set until consumed.
type Animator struct {
	Floats   map[string]float64
	Bools    map[string]bool
	Ints     map[string]int
	Triggers map[string]bool

	Punch PunchClip
	// Clip playback state for the punch.
	PunchPlaying bool
	PunchTime    float64
	HitFired     bool
}

var _ player.AnimationSink = (*Animator)(nil)

func NewAnimator(punch PunchClip) *Animator {
	return &Animator{
		Floats:   make(map[string]float64),
		Bools:    make(map[string]bool),
		Ints:     make(map[string]int),
		Triggers: make(map[string]bool),
		Punch:    punch,
	}
}

func (a *Animator) SetFloat(name string, v float64) { a.Floats[name] = v }
func (a *Animator) SetBool(name string, v bool)     { a.Bools[name] = v }
func (a *Animator) SetInt(name string, v int)       { a.Ints[name] = v }
func (a *Animator) SetTrigger(name string)          { a.Triggers[name] = true }

// ConsumeTrigger reports and clears a pending trigger.
func (a *Animator) ConsumeTrigger(name string) bool {
	if !a.Triggers[name] {
		return false
	}
	delete(a.Triggers, name)
	return true
}

// PendingTriggers lists the set triggers in name order.
func (a *Animator) PendingTriggers() []string {
	out := make([]string, 0, len(a.Triggers))
	for name := range a.Triggers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

var AnimatorComponent = NewComponent[Animator]()
