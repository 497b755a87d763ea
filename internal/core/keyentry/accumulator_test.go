package keyentry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minuteminder/internal/core/clock"
	"minuteminder/internal/core/model"
)

type fakeIndicator struct {
	pending  []int
	visible  bool
	progress []float64
	hides    int
}

func (indicator *fakeIndicator) SetPending(value int) {
	indicator.pending = append(indicator.pending, value)
}

func (indicator *fakeIndicator) ShowProgress() {
	indicator.visible = true
}

func (indicator *fakeIndicator) SetProgress(progress float64) {
	indicator.progress = append(indicator.progress, progress)
}

func (indicator *fakeIndicator) HideProgress() {
	indicator.visible = false
	indicator.hides++
}

func (indicator *fakeIndicator) last() float64 {
	if len(indicator.progress) == 0 {
		return -1
	}
	return indicator.progress[len(indicator.progress)-1]
}

type harness struct {
	clock     *clock.Fake
	indicator *fakeIndicator
	commits   []int
	acc       *Accumulator
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		clock:     clock.NewFake(time.Unix(1000, 0)),
		indicator: &fakeIndicator{},
	}
	h.acc = New(h.clock, model.DefaultEntryConfig(), h.indicator, func(minutes int) {
		h.commits = append(h.commits, minutes)
	}, nil)
	t.Cleanup(h.acc.Destroy)
	return h
}

func TestDigitsThenEnterCommitOnce(t *testing.T) {
	h := newHarness(t)

	h.acc.OnDigit('1')
	h.acc.OnDigit('5')
	h.acc.OnEnter()

	assert.Equal(t, []int{15}, h.commits)
	assert.Empty(t, h.acc.Pending())
	assert.False(t, h.indicator.visible)

	h.clock.Advance(10 * time.Second)
	assert.Equal(t, []int{15}, h.commits)
	assert.Equal(t, 0, h.clock.Pending())
}

func TestDeadlineAutoCommits(t *testing.T) {
	h := newHarness(t)

	h.acc.OnDigit('2')
	h.acc.OnDigit('5')
	h.clock.Advance(2999 * time.Millisecond)
	assert.Empty(t, h.commits)

	h.clock.Advance(time.Millisecond)
	assert.Equal(t, []int{25}, h.commits)
	assert.False(t, h.acc.Active())

	h.clock.Advance(5 * time.Second)
	assert.Equal(t, []int{25}, h.commits)
}

func TestEachDigitResetsDeadline(t *testing.T) {
	h := newHarness(t)

	h.acc.OnDigit('1')
	h.clock.Advance(2 * time.Second)
	h.acc.OnDigit('0')
	h.clock.Advance(2 * time.Second)
	assert.Empty(t, h.commits)

	h.clock.Advance(time.Second)
	assert.Equal(t, []int{10}, h.commits)
}

func TestCancelPreventsCommit(t *testing.T) {
	h := newHarness(t)

	h.acc.OnDigit('7')
	h.acc.Cancel()
	h.clock.Advance(10 * time.Second)

	assert.Empty(t, h.commits)
	assert.False(t, h.indicator.visible)
	assert.Equal(t, 0, h.clock.Pending())
}

func TestDestroyIgnoresLaterInput(t *testing.T) {
	h := newHarness(t)

	h.acc.OnDigit('4')
	h.acc.Destroy()
	h.acc.OnDigit('2')
	h.acc.OnEnter()
	h.clock.Advance(10 * time.Second)

	assert.Empty(t, h.commits)
	assert.Empty(t, h.acc.Pending())
}

func TestEnterWithoutDigitsIsNoop(t *testing.T) {
	h := newHarness(t)

	h.acc.OnEnter()
	assert.Empty(t, h.commits)
	assert.Zero(t, h.indicator.hides)
}

func TestProgressIndicator(t *testing.T) {
	h := newHarness(t)

	h.acc.OnDigit('3')
	assert.True(t, h.indicator.visible)
	assert.Equal(t, 0.0, h.indicator.last())

	h.clock.Advance(1500 * time.Millisecond)
	assert.InDelta(t, 0.5, h.indicator.last(), 1e-9)
	require.Len(t, h.indicator.progress, 16)

	h.clock.Advance(1500 * time.Millisecond)
	assert.False(t, h.indicator.visible)
	for _, progress := range h.indicator.progress {
		assert.GreaterOrEqual(t, progress, 0.0)
		assert.LessOrEqual(t, progress, 1.0)
	}
}

func TestPendingPreview(t *testing.T) {
	h := newHarness(t)

	h.acc.OnDigit('0')
	h.acc.OnDigit('4')
	h.acc.OnDigit('5')

	assert.Equal(t, []int{0, 4, 45}, h.indicator.pending)
	assert.Equal(t, "045", h.acc.Pending())
}

func TestNonDigitsIgnored(t *testing.T) {
	h := newHarness(t)

	h.acc.OnDigit('x')
	h.acc.OnDigit(' ')
	assert.False(t, h.acc.Active())
	assert.Equal(t, 0, h.clock.Pending())
}

func TestMaxDigitsCap(t *testing.T) {
	h := newHarness(t)

	for _, digit := range "12345678" {
		h.acc.OnDigit(digit)
	}
	h.acc.OnEnter()

	assert.Equal(t, []int{123456}, h.commits)
}

func TestZeroValueIsCommittedForCallerToValidate(t *testing.T) {
	h := newHarness(t)

	h.acc.OnDigit('0')
	h.acc.OnEnter()
	assert.Equal(t, []int{0}, h.commits)
}

func TestSetConfigAppliesToNextBurst(t *testing.T) {
	h := newHarness(t)
	h.acc.SetConfig(model.EntryConfig{CommitDelay: time.Second})

	h.acc.OnDigit('9')
	h.clock.Advance(time.Second)
	assert.Equal(t, []int{9}, h.commits)
}

func TestSecondBurstAfterCommit(t *testing.T) {
	h := newHarness(t)

	h.acc.OnDigit('1')
	h.acc.OnEnter()
	h.acc.OnDigit('2')
	h.clock.Advance(3 * time.Second)

	assert.Equal(t, []int{1, 2}, h.commits)
}
