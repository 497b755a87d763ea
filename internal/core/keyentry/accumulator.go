package keyentry

import (
	"strconv"
	"time"

	"go.uber.org/zap"

	"minuteminder/internal/core/clock"
	"minuteminder/internal/core/model"
)

// Indicator shows the pending value and the auto-commit countdown.
type Indicator interface {
	SetPending(value int)
	ShowProgress()
	SetProgress(progress float64)
	HideProgress()
}

// CommitFunc receives the committed value in minutes.
type CommitFunc func(minutes int)

// Accumulator turns bursts of digit keys into a committed duration.
type Accumulator struct {
	clock     clock.Clock
	config    model.EntryConfig
	indicator Indicator
	onCommit  CommitFunc
	logger    *zap.Logger

	digits        []rune
	deadline      clock.Handle
	progress      clock.Handle
	progressStart time.Time
	destroyed     bool
}

// New creates an Accumulator. A nil indicator disables visual feedback.
func New(source clock.Clock, config model.EntryConfig, indicator Indicator, onCommit CommitFunc, logger *zap.Logger) *Accumulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if indicator == nil {
		indicator = nopIndicator{}
	}
	return &Accumulator{
		clock:     source,
		config:    normalize(config),
		indicator: indicator,
		onCommit:  onCommit,
		logger:    logger,
	}
}

// SetConfig replaces the timing options. A burst already in flight keeps its deadline.
func (acc *Accumulator) SetConfig(config model.EntryConfig) {
	acc.config = normalize(config)
}

// OnDigit appends a digit and restarts the commit countdown.
func (acc *Accumulator) OnDigit(digit rune) {
	if acc.destroyed || digit < '0' || digit > '9' {
		return
	}
	if len(acc.digits) >= acc.config.MaxDigits {
		acc.logger.Debug("typed value at max length, digit dropped", zap.String("digit", string(digit)))
	} else {
		acc.digits = append(acc.digits, digit)
	}

	if value, ok := acc.value(); ok {
		acc.indicator.SetPending(value)
	}
	acc.restartDeadline()
	acc.restartProgress()
}

// OnEnter commits immediately when digits are pending.
func (acc *Accumulator) OnEnter() {
	if acc.destroyed || len(acc.digits) == 0 {
		return
	}
	acc.commit()
}

// Cancel drops pending digits without committing.
func (acc *Accumulator) Cancel() {
	wasActive := acc.Active()
	acc.digits = nil
	acc.stopTimers()
	if wasActive {
		acc.indicator.HideProgress()
	}
}

// Destroy cancels everything and ignores later input.
func (acc *Accumulator) Destroy() {
	acc.Cancel()
	acc.destroyed = true
}

// Pending returns the typed digits not yet committed.
func (acc *Accumulator) Pending() string {
	return string(acc.digits)
}

// Active reports whether a commit countdown is armed.
func (acc *Accumulator) Active() bool {
	return acc.deadline != nil || acc.progress != nil
}

func (acc *Accumulator) restartDeadline() {
	clock.Stop(acc.deadline)
	acc.deadline = acc.clock.ScheduleOnce(acc.config.CommitDelay, func() {
		acc.deadline = nil
		if len(acc.digits) > 0 {
			acc.commit()
		}
	})
}

func (acc *Accumulator) restartProgress() {
	clock.Stop(acc.progress)
	acc.progressStart = acc.clock.Now()
	acc.indicator.ShowProgress()
	acc.indicator.SetProgress(0)
	acc.progress = acc.clock.SchedulePeriodic(acc.config.ProgressInterval, acc.reportProgress)
}

func (acc *Accumulator) reportProgress() {
	elapsed := acc.clock.Now().Sub(acc.progressStart)
	progress := float64(elapsed) / float64(acc.config.CommitDelay)
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	acc.indicator.SetProgress(progress)

	if progress >= 1 {
		clock.Stop(acc.progress)
		acc.progress = nil
		if len(acc.digits) > 0 {
			acc.commit()
		}
	}
}

func (acc *Accumulator) commit() {
	value, ok := acc.value()
	acc.digits = nil
	acc.stopTimers()
	acc.indicator.HideProgress()

	if !ok {
		return
	}
	acc.logger.Debug("typed duration committed", zap.Int("minutes", value))
	if acc.onCommit != nil {
		acc.onCommit(value)
	}
}

func (acc *Accumulator) value() (int, bool) {
	if len(acc.digits) == 0 {
		return 0, false
	}
	value, err := strconv.Atoi(string(acc.digits))
	if err != nil {
		acc.logger.Warn("typed value not parsable", zap.String("digits", string(acc.digits)), zap.Error(err))
		return 0, false
	}
	return value, true
}

func (acc *Accumulator) stopTimers() {
	clock.Stop(acc.deadline)
	acc.deadline = nil
	clock.Stop(acc.progress)
	acc.progress = nil
}

func normalize(config model.EntryConfig) model.EntryConfig {
	defaults := model.DefaultEntryConfig()
	if config.CommitDelay <= 0 {
		config.CommitDelay = defaults.CommitDelay
	}
	if config.ProgressInterval <= 0 {
		config.ProgressInterval = defaults.ProgressInterval
	}
	if config.MaxDigits <= 0 {
		config.MaxDigits = defaults.MaxDigits
	}
	return config
}

type nopIndicator struct{}

func (nopIndicator) SetPending(int)      {}
func (nopIndicator) ShowProgress()       {}
func (nopIndicator) SetProgress(float64) {}
func (nopIndicator) HideProgress()       {}
