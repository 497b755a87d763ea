package app

import (
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"minuteminder/internal/core/clock"
	"minuteminder/internal/core/keyentry"
	"minuteminder/internal/core/model"
	"minuteminder/internal/core/timekeeper"
	"minuteminder/internal/ui/display"
)

// DefaultTitle is the window title shown while no countdown is running.
const DefaultTitle = "Minute Minder"

// Cue is the audible alert sink.
type Cue interface {
	Arm()
	Play()
}

// Options wires the widget to its collaborators.
type Options struct {
	Clock     clock.Clock
	Surface   display.Surface
	Indicator keyentry.Indicator
	Cue       Cue
	Logger    *zap.Logger
	Title     string
	Timer     timekeeper.Config
	Entry     model.EntryConfig
}

// MinuteMinder is the application facade. Front ends call it from their UI
// thread; it is the only place that connects the engine to presentation and audio.
type MinuteMinder struct {
	keeper        *timekeeper.TimeKeeper
	presenter     *display.Presenter
	entry         *keyentry.Accumulator
	cue           Cue
	logger        *zap.Logger
	subscriptions []timekeeper.Subscription
	destroyed     bool
}

// New builds the widget and renders its initial idle state.
func New(options Options) *MinuteMinder {
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	if options.Clock == nil {
		options.Clock = clock.NewReal(nil)
	}
	if options.Cue == nil {
		options.Cue = nopCue{}
	}
	if options.Title == "" {
		options.Title = DefaultTitle
	}

	minder := &MinuteMinder{
		keeper:    timekeeper.New(options.Clock, options.Timer),
		presenter: display.NewPresenter(options.Surface, options.Title),
		cue:       options.Cue,
		logger:    options.Logger,
	}
	minder.entry = keyentry.New(options.Clock, options.Entry, options.Indicator, minder.SetTimer, options.Logger.Named("keyentry"))

	minder.bindEvents()
	minder.presenter.Render(minder.keeper.Snapshot())
	return minder
}

func (minder *MinuteMinder) bindEvents() {
	render := func(event timekeeper.Event) {
		minder.presenter.Render(event.Snapshot)
	}

	minder.subscribe(timekeeper.EventDurationChanged, render)
	minder.subscribe(timekeeper.EventTick, render)
	minder.subscribe(timekeeper.EventPaused, render)
	minder.subscribe(timekeeper.EventReset, render)
	minder.subscribe(timekeeper.EventStarted, func(event timekeeper.Event) {
		render(event)
		// Started is always the result of a user action, which is what audio output needs to unlock.
		minder.cue.Arm()
	})
	minder.subscribe(timekeeper.EventAlert, func(event timekeeper.Event) {
		minder.logger.Info("countdown reached zero")
		minder.cue.Play()
	})
}

func (minder *MinuteMinder) subscribe(eventType timekeeper.EventType, handler timekeeper.Handler) {
	minder.subscriptions = append(minder.subscriptions, minder.keeper.Subscribe(eventType, handler))
}

// SetTimer starts a countdown of minutes. Invalid values are ignored.
func (minder *MinuteMinder) SetTimer(minutes int) {
	if minder.destroyed {
		return
	}
	if err := minder.keeper.SetDuration(minutes); err != nil {
		if errors.Is(err, timekeeper.ErrInvalidDuration) {
			minder.logger.Debug("ignoring invalid duration", zap.Int("minutes", minutes))
			return
		}
		minder.logger.Warn("set duration failed", zap.Error(err))
		return
	}
	minder.logger.Debug("countdown set", zap.Int("minutes", minutes))
}

// SetCustomTime starts a countdown from free text such as the custom minutes field.
func (minder *MinuteMinder) SetCustomTime(text string) {
	minutes, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		minder.logger.Debug("ignoring non-numeric custom time", zap.String("text", text))
		return
	}
	minder.SetTimer(minutes)
}

// TogglePause pauses a running countdown or resumes a stopped one.
func (minder *MinuteMinder) TogglePause() {
	if minder.destroyed {
		return
	}
	minder.keeper.Toggle()
}

// Reset stops the countdown and returns to 00:00.
func (minder *MinuteMinder) Reset() {
	if minder.destroyed {
		return
	}
	minder.keeper.Reset()
}

// TypeDigit feeds a qualifying digit key press.
func (minder *MinuteMinder) TypeDigit(digit rune) {
	minder.entry.OnDigit(digit)
}

// PressEnter feeds a qualifying Enter key press.
func (minder *MinuteMinder) PressEnter() {
	minder.entry.OnEnter()
}

// CancelEntry drops typed digits without starting a countdown.
func (minder *MinuteMinder) CancelEntry() {
	minder.entry.Cancel()
}

// SetEntryConfig applies new typed-entry timings.
func (minder *MinuteMinder) SetEntryConfig(config model.EntryConfig) {
	minder.entry.SetConfig(config)
}

// Snapshot returns the current countdown state.
func (minder *MinuteMinder) Snapshot() timekeeper.Snapshot {
	return minder.keeper.Snapshot()
}

// Keeper exposes the engine for queries.
func (minder *MinuteMinder) Keeper() *timekeeper.TimeKeeper {
	return minder.keeper
}

// Destroy resets the display and cancels every scheduled callback owned by the widget.
func (minder *MinuteMinder) Destroy() {
	if minder.destroyed {
		return
	}
	minder.destroyed = true
	minder.entry.Destroy()
	minder.keeper.Reset()
	for _, subscription := range minder.subscriptions {
		subscription.Unsubscribe()
	}
	minder.keeper.Close()
}

type nopCue struct{}

func (nopCue) Arm()  {}
func (nopCue) Play() {}
