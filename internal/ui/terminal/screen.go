package terminal

import "minuteminder/internal/ui/display"

// Screen holds what the terminal renders. It implements display.Surface and
// keyentry.Indicator and is only touched from the bubbletea update loop.
type Screen struct {
	timerText       string
	title           string
	negative        bool
	controls        display.Controls
	pending         int
	hasPending      bool
	progressVisible bool
	progress        float64
}

// NewScreen returns an idle screen.
func NewScreen() *Screen {
	return &Screen{
		timerText: "00:00",
		controls:  display.Controls{Mode: display.ModeIdle, PauseLabel: "Pause"},
	}
}

func (screen *Screen) SetTimerText(text string)              { screen.timerText = text }
func (screen *Screen) SetTitle(title string)                 { screen.title = title }
func (screen *Screen) SetNegative(negative bool)             { screen.negative = negative }
func (screen *Screen) SetControls(controls display.Controls) { screen.controls = controls }
func (screen *Screen) ShowProgress()                         { screen.progressVisible = true }
func (screen *Screen) SetProgress(progress float64)          { screen.progress = progress }

// SetPending records the digits typed so far.
func (screen *Screen) SetPending(value int) {
	screen.pending = value
	screen.hasPending = true
}

// HideProgress hides the commit progress and clears the pending digits.
func (screen *Screen) HideProgress() {
	screen.progressVisible = false
	screen.progress = 0
	screen.pending = 0
	screen.hasPending = false
}

// Title returns the last title set by the presenter.
func (screen *Screen) Title() string {
	return screen.title
}

// TimerText returns the countdown text.
func (screen *Screen) TimerText() string {
	return screen.timerText
}
