package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a virtual clock. Time only moves through Advance.
type Fake struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	tasks []*fakeTask
}

type fakeTask struct {
	clock    *Fake
	due      time.Time
	interval time.Duration
	seq      uint64
	callback func()
}

// NewFake creates a virtual clock starting at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the virtual time.
func (fake *Fake) Now() time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.now
}

// SchedulePeriodic registers callback every interval from now.
func (fake *Fake) SchedulePeriodic(interval time.Duration, callback func()) Handle {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return fake.schedule(interval, interval, callback)
}

// ScheduleOnce registers callback once after delay.
func (fake *Fake) ScheduleOnce(delay time.Duration, callback func()) Handle {
	if delay < 0 {
		delay = 0
	}
	return fake.schedule(delay, 0, callback)
}

// Advance moves virtual time forward and runs every callback that falls due,
// ordered by due time and then by scheduling order.
func (fake *Fake) Advance(delta time.Duration) {
	fake.mu.Lock()
	target := fake.now.Add(delta)
	fake.mu.Unlock()

	for {
		fake.mu.Lock()
		task := fake.nextDueLocked(target)
		if task == nil {
			fake.now = target
			fake.mu.Unlock()
			return
		}
		fake.now = task.due
		if task.interval > 0 {
			task.due = task.due.Add(task.interval)
		} else {
			fake.removeLocked(task)
		}
		fake.mu.Unlock()

		task.callback()
	}
}

// Pending returns the number of live schedules.
func (fake *Fake) Pending() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return len(fake.tasks)
}

func (fake *Fake) schedule(delay, interval time.Duration, callback func()) Handle {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.seq++
	task := &fakeTask{
		clock:    fake,
		due:      fake.now.Add(delay),
		interval: interval,
		seq:      fake.seq,
		callback: callback,
	}
	fake.tasks = append(fake.tasks, task)
	return task
}

func (fake *Fake) nextDueLocked(target time.Time) *fakeTask {
	if len(fake.tasks) == 0 {
		return nil
	}
	sort.SliceStable(fake.tasks, func(i, j int) bool {
		if fake.tasks[i].due.Equal(fake.tasks[j].due) {
			return fake.tasks[i].seq < fake.tasks[j].seq
		}
		return fake.tasks[i].due.Before(fake.tasks[j].due)
	})
	next := fake.tasks[0]
	if next.due.After(target) {
		return nil
	}
	return next
}

func (fake *Fake) removeLocked(task *fakeTask) {
	for index, candidate := range fake.tasks {
		if candidate == task {
			fake.tasks = append(fake.tasks[:index], fake.tasks[index+1:]...)
			return
		}
	}
}

func (task *fakeTask) Cancel() {
	task.clock.mu.Lock()
	defer task.clock.mu.Unlock()
	task.clock.removeLocked(task)
}
