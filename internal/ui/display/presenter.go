package display

import (
	"minuteminder/internal/core/timekeeper"
)

// Mode is the control-enablement state derived from a snapshot.
type Mode string

const (
	ModeIdle           Mode = "idle"
	ModeRunning        Mode = "running"
	ModePausedWithTime Mode = "paused_with_time"
)

const (
	labelPause  = "Pause"
	labelResume = "Resume"
)

// Controls describes the pause/reset controls.
type Controls struct {
	Mode       Mode
	Enabled    bool
	PauseLabel string
}

// View is everything a surface needs to show one snapshot.
type View struct {
	TimerText string
	Title     string
	Negative  bool
	Controls  Controls
}

// Surface is a rendering target.
type Surface interface {
	SetTimerText(text string)
	SetTitle(title string)
	SetNegative(negative bool)
	SetControls(controls Controls)
}

// Compose maps a snapshot to a View. The decorated title is only shown while
// running so a paused or idle widget does not keep a stale countdown title.
func Compose(snapshot timekeeper.Snapshot, baseTitle string) View {
	text := snapshot.Formatted()
	view := View{
		TimerText: text,
		Title:     baseTitle,
		Negative:  snapshot.RemainingSeconds < 0,
		Controls: Controls{
			Mode:       ModeIdle,
			Enabled:    snapshot.HasActiveTimer,
			PauseLabel: labelPause,
		},
	}

	switch {
	case snapshot.Running:
		view.Title = snapshot.Status().Glyph() + " " + text
		view.Controls.Mode = ModeRunning
	case snapshot.HasActiveTimer:
		view.Controls.Mode = ModePausedWithTime
		view.Controls.PauseLabel = labelResume
	}
	return view
}

// Presenter pushes snapshots to a surface.
type Presenter struct {
	surface   Surface
	baseTitle string
}

// NewPresenter creates a presenter. baseTitle is restored whenever the timer stops.
func NewPresenter(surface Surface, baseTitle string) *Presenter {
	if surface == nil {
		surface = Surfaces{}
	}
	return &Presenter{surface: surface, baseTitle: baseTitle}
}

// Render updates every visible element for snapshot.
func (presenter *Presenter) Render(snapshot timekeeper.Snapshot) {
	view := Compose(snapshot, presenter.baseTitle)
	presenter.surface.SetTimerText(view.TimerText)
	presenter.surface.SetTitle(view.Title)
	presenter.surface.SetNegative(view.Negative)
	presenter.surface.SetControls(view.Controls)
}

// Surfaces fans one render out to several targets.
type Surfaces []Surface

func (surfaces Surfaces) SetTimerText(text string) {
	for _, surface := range surfaces {
		surface.SetTimerText(text)
	}
}

func (surfaces Surfaces) SetTitle(title string) {
	for _, surface := range surfaces {
		surface.SetTitle(title)
	}
}

func (surfaces Surfaces) SetNegative(negative bool) {
	for _, surface := range surfaces {
		surface.SetNegative(negative)
	}
}

func (surfaces Surfaces) SetControls(controls Controls) {
	for _, surface := range surfaces {
		surface.SetControls(controls)
	}
}
