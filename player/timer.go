package player

// TimerID names a deferred action. Scheduling an id that is already pending
// replaces it.
type TimerID string

// Scheduler runs deferred callbacks against the owner's tick clock.
// Cancel must be synchronous: a cancelled callback never runs.
type Scheduler interface {
	ScheduleOnce(id TimerID, delay float64, fn func())
	Cancel(id TimerID)
}
