package timekeeper

import (
	"time"

	"minuteminder/internal/core/timefmt"
)

// State represents the current TimeKeeper mode.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventDurationChanged EventType = "duration_changed"
	EventStarted         EventType = "started"
	EventTick            EventType = "tick"
	EventAlert           EventType = "alert"
	EventPaused          EventType = "paused"
	EventReset           EventType = "reset"
)

// Snapshot is a read-only view of the countdown.
type Snapshot struct {
	RemainingSeconds int
	Running          bool
	HasActiveTimer   bool
	AlertFired       bool
	State            State
}

// Formatted renders the remaining time as [-]MM:SS.
func (snapshot Snapshot) Formatted() string {
	return timefmt.Format(snapshot.RemainingSeconds)
}

// Status reports whether the countdown is overdue.
func (snapshot Snapshot) Status() timefmt.Status {
	return timefmt.StatusOf(snapshot.RemainingSeconds)
}

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	At       time.Time
}

// Handler receives events synchronously on the emitting call.
type Handler func(Event)
