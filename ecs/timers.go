package ecs

import (
	"sort"

	"github.com/milk9111/traverse/player"
)

// dueEpsilon absorbs float drift from summing frame deltas.
const dueEpsilon = 1e-9

type timer struct {
	id  player.TimerID
	due float64
	seq uint64
	fn  func()
}

// Timers is a single-threaded one-shot timer wheel driven by simulated time.
// Scheduling an id that is already pending replaces it, so a timer always
// measures from its latest start.
type Timers struct {
	now     float64
	seq     uint64
	pending map[player.TimerID]*timer
}

var _ player.Scheduler = (*Timers)(nil)

func NewTimers() *Timers {
	return &Timers{pending: make(map[player.TimerID]*timer)}
}

// Now is the simulated time in seconds.
func (t *Timers) Now() float64 { return t.now }

// ScheduleOnce runs fn once delay seconds from now, cancelling any pending
// timer with the same id.
func (t *Timers) ScheduleOnce(id player.TimerID, delay float64, fn func()) {
	if fn == nil {
		return
	}
	if delay < 0 {
		delay = 0
	}
	t.seq++
	t.pending[id] = &timer{id: id, due: t.now + delay, seq: t.seq, fn: fn}
}

// Cancel drops the pending timer for id; its callback will not run.
func (t *Timers) Cancel(id player.TimerID) {
	delete(t.pending, id)
}

// Pending reports whether id is scheduled and how long until it fires.
func (t *Timers) Pending(id player.TimerID) (remaining float64, ok bool) {
	tm, ok := t.pending[id]
	if !ok {
		return 0, false
	}
	return tm.due - t.now, true
}

// Len is the number of pending timers.
func (t *Timers) Len() int { return len(t.pending) }

// Advance moves time forward by dt and fires every timer that came due, in
// due order. Timers scheduled by a callback fire on a later Advance.
func (t *Timers) Advance(dt float64) {
	t.now += dt

	due := make([]*timer, 0, len(t.pending))
	for _, tm := range t.pending {
		if tm.due <= t.now+dueEpsilon {
			due = append(due, tm)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})

	for _, tm := range due {
		// an earlier callback may have cancelled or restarted this id
		if cur, ok := t.pending[tm.id]; !ok || cur.seq != tm.seq {
			continue
		}
		delete(t.pending, tm.id)
		tm.fn()
	}
}

// TimerSystem advances a Timers by the world frame delta.
type TimerSystem struct {
	timers *Timers
}

func NewTimerSystem(timers *Timers) *TimerSystem {
	return &TimerSystem{timers: timers}
}

func (s *TimerSystem) Update(w *World) {
	if w == nil || s.timers == nil {
		return
	}
	s.timers.Advance(w.Delta())
}
