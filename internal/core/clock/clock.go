package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// Handle cancels a scheduled callback. Cancel is idempotent.
type Handle interface {
	Cancel()
}

// Clock schedules callbacks for the timer core.
type Clock interface {
	Now() time.Time
	SchedulePeriodic(interval time.Duration, callback func()) Handle
	ScheduleOnce(delay time.Duration, callback func()) Handle
}

// Dispatcher runs a callback on the thread that owns UI state.
type Dispatcher func(func())

// Direct runs callbacks on the calling goroutine.
func Direct(callback func()) {
	callback()
}

// Real schedules callbacks on wall-clock time and delivers them through a Dispatcher.
type Real struct {
	dispatch Dispatcher
}

// NewReal creates a wall-clock source. A nil dispatcher delivers directly.
func NewReal(dispatch Dispatcher) *Real {
	if dispatch == nil {
		dispatch = Direct
	}
	return &Real{dispatch: dispatch}
}

// Now returns the current wall-clock time.
func (real *Real) Now() time.Time {
	return time.Now()
}

// SchedulePeriodic starts a ticker goroutine that lives until the handle is cancelled.
// Non-positive intervals are raised to one millisecond.
func (real *Real) SchedulePeriodic(interval time.Duration, callback func()) Handle {
	if interval <= 0 {
		interval = time.Millisecond
	}
	handle := newRealHandle()
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-handle.done:
				return
			case <-ticker.C:
				real.deliver(handle, callback)
			}
		}
	}()
	return handle
}

// ScheduleOnce fires callback once after delay unless cancelled first.
func (real *Real) ScheduleOnce(delay time.Duration, callback func()) Handle {
	handle := newRealHandle()
	timer := time.AfterFunc(delay, func() {
		real.deliver(handle, callback)
	})
	handle.stop = func() {
		timer.Stop()
	}
	return handle
}

// deliver re-checks cancellation on the dispatcher thread: a tick queued before
// Cancel ran must not reach the callback.
func (real *Real) deliver(handle *realHandle, callback func()) {
	if handle.Cancelled() {
		return
	}
	real.dispatch(func() {
		if handle.Cancelled() {
			return
		}
		callback()
	})
}

type realHandle struct {
	once      sync.Once
	cancelled atomic.Bool
	done      chan struct{}
	stop      func()
}

func newRealHandle() *realHandle {
	return &realHandle{done: make(chan struct{})}
}

func (handle *realHandle) Cancel() {
	handle.once.Do(func() {
		handle.cancelled.Store(true)
		close(handle.done)
		if handle.stop != nil {
			handle.stop()
		}
	})
}

func (handle *realHandle) Cancelled() bool {
	return handle.cancelled.Load()
}

// Stop cancels a handle if it is set. It is safe on nil handles.
func Stop(handle Handle) {
	if handle != nil {
		handle.Cancel()
	}
}
