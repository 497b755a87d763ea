package clock

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRealPeriodicStopsAfterCancel(t *testing.T) {
	var fired atomic.Int32
	handle := NewReal(nil).SchedulePeriodic(5*time.Millisecond, func() {
		fired.Add(1)
	})

	require.Eventually(t, func() bool { return fired.Load() >= 2 }, time.Second, time.Millisecond)
	handle.Cancel()
	handle.Cancel()
	time.Sleep(10 * time.Millisecond)

	settled := fired.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, fired.Load())
}

func TestRealPeriodicNormalizesNonPositiveInterval(t *testing.T) {
	var fired atomic.Int32
	handle := NewReal(nil).SchedulePeriodic(0, func() {
		fired.Add(1)
	})
	defer handle.Cancel()

	require.Eventually(t, func() bool { return fired.Load() >= 1 }, time.Second, time.Millisecond)
}

func TestRealOnceCancelledNeverFires(t *testing.T) {
	var fired atomic.Bool
	handle := NewReal(nil).ScheduleOnce(20*time.Millisecond, func() {
		fired.Store(true)
	})
	handle.Cancel()

	time.Sleep(50 * time.Millisecond)
	assert.False(t, fired.Load())
}

func TestRealOnceFiresThroughDispatcher(t *testing.T) {
	var dispatched atomic.Int32
	done := make(chan struct{})
	real := NewReal(func(callback func()) {
		dispatched.Add(1)
		callback()
	})
	real.ScheduleOnce(time.Millisecond, func() {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("once callback did not fire")
	}
	assert.Equal(t, int32(1), dispatched.Load())
}

func TestRealDropsCallbackCancelledWhileQueued(t *testing.T) {
	queue := make(chan func(), 4)
	real := NewReal(func(callback func()) {
		queue <- callback
	})

	var fired atomic.Bool
	handle := real.ScheduleOnce(time.Millisecond, func() {
		fired.Store(true)
	})

	var queued func()
	select {
	case queued = <-queue:
	case <-time.After(time.Second):
		t.Fatal("callback was not dispatched")
	}
	handle.Cancel()
	queued()
	assert.False(t, fired.Load())
}

func TestFakeOrdersByDueThenScheduleOrder(t *testing.T) {
	fake := NewFake(time.Unix(0, 0))
	var order []string
	fake.ScheduleOnce(2*time.Second, func() { order = append(order, "late") })
	fake.ScheduleOnce(time.Second, func() { order = append(order, "first") })
	fake.ScheduleOnce(time.Second, func() { order = append(order, "second") })

	fake.Advance(3 * time.Second)
	assert.Equal(t, []string{"first", "second", "late"}, order)
	assert.Equal(t, 0, fake.Pending())
}

func TestFakePeriodic(t *testing.T) {
	start := time.Unix(100, 0)
	fake := NewFake(start)
	var stamps []time.Time
	handle := fake.SchedulePeriodic(time.Second, func() {
		stamps = append(stamps, fake.Now())
	})

	fake.Advance(3500 * time.Millisecond)
	require.Len(t, stamps, 3)
	assert.Equal(t, start.Add(3*time.Second), stamps[2])
	assert.Equal(t, start.Add(3500*time.Millisecond), fake.Now())

	handle.Cancel()
	fake.Advance(10 * time.Second)
	assert.Len(t, stamps, 3)
}

func TestFakeCancelBeforeDue(t *testing.T) {
	fake := NewFake(time.Unix(0, 0))
	fired := false
	handle := fake.ScheduleOnce(time.Second, func() { fired = true })

	handle.Cancel()
	handle.Cancel()
	fake.Advance(5 * time.Second)
	assert.False(t, fired)
}

func TestFakeCallbackCanCancelItself(t *testing.T) {
	fake := NewFake(time.Unix(0, 0))
	count := 0
	var handle Handle
	handle = fake.SchedulePeriodic(time.Second, func() {
		count++
		if count == 2 {
			handle.Cancel()
		}
	})

	fake.Advance(10 * time.Second)
	assert.Equal(t, 2, count)
}

func TestStopNilHandle(t *testing.T) {
	assert.NotPanics(t, func() { Stop(nil) })
}
