package timekeeper

import (
	"errors"
	"math"
	"sync"
	"time"

	"minuteminder/internal/core/clock"
)

// ErrInvalidDuration indicates a requested duration that is not a positive number of minutes.
var ErrInvalidDuration = errors.New("duration must be a positive number of minutes")

// MaxMinutes is the longest duration whose seconds fit in an int.
const MaxMinutes = math.MaxInt / 60

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
}

type listener struct {
	id      int
	handler Handler
}

// TimeKeeper is the countdown state machine. It owns the tick source and
// publishes lifecycle events to subscribers.
type TimeKeeper struct {
	mu         sync.Mutex
	clock      clock.Clock
	options    Config
	remaining  int
	alertFired bool
	ticker     clock.Handle
	listeners  map[EventType][]listener
	nextID     int
	closed     bool
}

// New creates an idle TimeKeeper driven by the given clock.
func New(source clock.Clock, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if source == nil {
		source = clock.NewReal(nil)
	}
	return &TimeKeeper{
		clock:     source,
		options:   options,
		listeners: make(map[EventType][]listener),
	}
}

// Subscription identifies a registered handler.
type Subscription struct {
	keeper    *TimeKeeper
	eventType EventType
	id        int
}

// Unsubscribe removes the handler. It is safe to call more than once.
func (subscription Subscription) Unsubscribe() {
	if subscription.keeper == nil {
		return
	}
	subscription.keeper.unsubscribe(subscription.eventType, subscription.id)
}

// Subscribe registers handler for one event type.
func (keeper *TimeKeeper) Subscribe(eventType EventType, handler Handler) Subscription {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed || handler == nil {
		return Subscription{}
	}
	keeper.nextID++
	keeper.listeners[eventType] = append(keeper.listeners[eventType], listener{id: keeper.nextID, handler: handler})
	return Subscription{keeper: keeper, eventType: eventType, id: keeper.nextID}
}

func (keeper *TimeKeeper) unsubscribe(eventType EventType, id int) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	current := keeper.listeners[eventType]
	for index, entry := range current {
		if entry.id == id {
			keeper.listeners[eventType] = append(current[:index:index], current[index+1:]...)
			return
		}
	}
}

// SetDuration loads a new countdown and starts it.
func (keeper *TimeKeeper) SetDuration(minutes int) error {
	if minutes <= 0 || minutes > MaxMinutes {
		return ErrInvalidDuration
	}

	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return nil
	}
	keeper.stopTickerLocked()
	keeper.remaining = minutes * 60
	keeper.alertFired = false
	snapshot := keeper.snapshotLocked()
	keeper.mu.Unlock()

	keeper.emit(EventDurationChanged, snapshot)
	keeper.Start()
	return nil
}

// Start begins ticking. It is a no-op while already running.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	if keeper.closed || keeper.ticker != nil {
		keeper.mu.Unlock()
		return
	}
	keeper.ticker = keeper.clock.SchedulePeriodic(keeper.options.TickInterval, keeper.tick)
	snapshot := keeper.snapshotLocked()
	keeper.mu.Unlock()

	keeper.emit(EventStarted, snapshot)
}

// Pause stops ticking and keeps the remaining time.
func (keeper *TimeKeeper) Pause() {
	keeper.mu.Lock()
	if keeper.ticker == nil {
		keeper.mu.Unlock()
		return
	}
	keeper.stopTickerLocked()
	snapshot := keeper.snapshotLocked()
	keeper.mu.Unlock()

	keeper.emit(EventPaused, snapshot)
}

// Toggle pauses a running countdown and resumes a stopped one.
func (keeper *TimeKeeper) Toggle() {
	if keeper.IsRunning() {
		keeper.Pause()
		return
	}
	keeper.Start()
}

// Reset stops ticking and returns to idle.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.stopTickerLocked()
	keeper.remaining = 0
	keeper.alertFired = false
	snapshot := keeper.snapshotLocked()
	keeper.mu.Unlock()

	keeper.emit(EventReset, snapshot)
}

// Close tears down the tick source and drops every subscriber.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return
	}
	keeper.closed = true
	keeper.stopTickerLocked()
	keeper.listeners = make(map[EventType][]listener)
}

// IsRunning reports whether a tick source is active.
func (keeper *TimeKeeper) IsRunning() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.ticker != nil
}

// HasActiveTimer is true while running or while paused with time left on the clock.
func (keeper *TimeKeeper) HasActiveTimer() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.hasActiveTimerLocked()
}

// IsOverdue reports whether the countdown has passed zero.
func (keeper *TimeKeeper) IsOverdue() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.remaining < 0
}

// Remaining returns the signed remaining seconds.
func (keeper *TimeKeeper) Remaining() int {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.remaining
}

// AlertFired reports whether the zero-crossing alert was already emitted.
func (keeper *TimeKeeper) AlertFired() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.alertFired
}

// State returns the current mode.
func (keeper *TimeKeeper) State() State {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.stateLocked()
}

// Snapshot returns the current read-only view.
func (keeper *TimeKeeper) Snapshot() Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.snapshotLocked()
}

func (keeper *TimeKeeper) tick() {
	keeper.mu.Lock()
	if keeper.ticker == nil {
		keeper.mu.Unlock()
		return
	}
	keeper.remaining--
	alert := false
	if keeper.remaining == 0 && !keeper.alertFired {
		keeper.alertFired = true
		alert = true
	}
	snapshot := keeper.snapshotLocked()
	keeper.mu.Unlock()

	if alert {
		keeper.emit(EventAlert, snapshot)
	}
	keeper.emit(EventTick, snapshot)
}

func (keeper *TimeKeeper) stopTickerLocked() {
	if keeper.ticker == nil {
		return
	}
	keeper.ticker.Cancel()
	keeper.ticker = nil
}

func (keeper *TimeKeeper) hasActiveTimerLocked() bool {
	return keeper.remaining != 0 || keeper.ticker != nil
}

func (keeper *TimeKeeper) stateLocked() State {
	switch {
	case keeper.ticker != nil:
		return StateRunning
	case keeper.remaining != 0:
		return StatePaused
	default:
		return StateIdle
	}
}

func (keeper *TimeKeeper) snapshotLocked() Snapshot {
	return Snapshot{
		RemainingSeconds: keeper.remaining,
		Running:          keeper.ticker != nil,
		HasActiveTimer:   keeper.hasActiveTimerLocked(),
		AlertFired:       keeper.alertFired,
		State:            keeper.stateLocked(),
	}
}

func (keeper *TimeKeeper) emit(eventType EventType, snapshot Snapshot) {
	keeper.mu.Lock()
	handlers := append([]listener(nil), keeper.listeners[eventType]...)
	now := keeper.clock.Now()
	keeper.mu.Unlock()

	event := Event{Type: eventType, Snapshot: snapshot, At: now}
	for _, entry := range handlers {
		entry.handler(event)
	}
}
