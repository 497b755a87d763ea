package window

import (
	"context"
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"minuteminder/internal/ui/animation"
	"minuteminder/internal/ui/display"
	"minuteminder/internal/ui/preferences"
)

// Config defines window visuals.
type Config struct {
	Title        string
	Presets      []int
	BlinkOverdue bool
	CloseToTray  bool
}

// Callbacks defines window action handlers.
type Callbacks struct {
	OnPreset      func(minutes int)
	OnCustom      func(text string)
	OnTogglePause func()
	OnReset       func()
	OnDigit       func(digit rune)
	OnEnter       func()
	OnCancelEntry func()
}

var (
	positiveBackground = color.NRGBA{R: 24, G: 64, B: 40, A: 255}
	negativeBackground = color.NRGBA{R: 92, G: 20, B: 28, A: 255}
	positiveText       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	negativeText       = color.NRGBA{R: 255, G: 120, B: 120, A: 255}
)

// Window is the main timer window. All methods must run on the fyne UI thread
// except the blink callback, which hops onto it through fyne.Do.
type Window struct {
	app         fyne.App
	window      fyne.Window
	config      Config
	callbacks   Callbacks
	background  *canvas.Rectangle
	timerLabel  *canvas.Text
	presetBox   *fyne.Container
	customEntry *widget.Entry
	startButton *widget.Button
	pauseButton *widget.Button
	resetButton *widget.Button
	progress    *widget.ProgressBar
	blinker     *animation.Engine
	negative    bool
}

// New creates the timer window.
func New(app fyne.App, config Config, callbacks Callbacks) *Window {
	window := app.NewWindow(config.Title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	background := canvas.NewRectangle(positiveBackground)

	timerLabel := canvas.NewText("00:00", positiveText)
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 64

	customEntry := widget.NewEntry()
	customEntry.SetPlaceHolder("Custom minutes")

	progress := widget.NewProgressBar()
	progress.Min = 0
	progress.Max = 1
	progress.TextFormatter = func() string { return "" }
	progress.Hide()

	overlay := &Window{
		app:         app,
		window:      window,
		config:      config,
		callbacks:   callbacks,
		background:  background,
		timerLabel:  timerLabel,
		presetBox:   container.NewGridWithColumns(3),
		customEntry: customEntry,
		progress:    progress,
	}

	overlay.startButton = widget.NewButton("Start", func() {
		overlay.fireCustom(customEntry.Text)
	})
	customEntry.OnSubmitted = overlay.fireCustom
	overlay.pauseButton = widget.NewButton("Pause", func() {
		if overlay.callbacks.OnTogglePause != nil {
			overlay.callbacks.OnTogglePause()
		}
	})
	overlay.resetButton = widget.NewButton("Reset", func() {
		if overlay.callbacks.OnReset != nil {
			overlay.callbacks.OnReset()
		}
	})
	overlay.pauseButton.Disable()
	overlay.resetButton.Disable()

	overlay.blinker = animation.New(animation.DefaultConfig(), overlay.blinkFrame)
	overlay.SetPresets(config.Presets)

	custom := container.NewBorder(nil, progress, nil, overlay.startButton, customEntry)
	controls := container.NewHBox(layout.NewSpacer(), overlay.pauseButton, overlay.resetButton, layout.NewSpacer())
	content := container.NewVBox(
		container.NewCenter(timerLabel),
		overlay.presetBox,
		custom,
		controls,
	)
	window.SetContent(container.NewStack(background, container.NewPadded(content)))
	window.Resize(fyne.NewSize(420, 320))
	window.Canvas().SetOnTypedKey(overlay.handleTypedKey)

	if config.CloseToTray {
		window.SetCloseIntercept(window.Hide)
	} else {
		window.SetMaster()
	}

	return overlay
}

// Show displays the window.
func (overlay *Window) Show() {
	overlay.window.Show()
	overlay.window.RequestFocus()
}

// ShowAndRun displays the window and runs the fyne event loop.
func (overlay *Window) ShowAndRun() {
	overlay.window.ShowAndRun()
}

// Close stops the blink animation and closes the window.
func (overlay *Window) Close() {
	overlay.blinker.Stop()
	overlay.window.Close()
}

// SetPresets rebuilds the preset buttons.
func (overlay *Window) SetPresets(presets []int) {
	overlay.config.Presets = presets
	objects := make([]fyne.CanvasObject, 0, len(presets))
	for _, minutes := range presets {
		minutes := minutes
		objects = append(objects, widget.NewButton(preferences.PresetLabel(minutes), func() {
			if overlay.callbacks.OnPreset != nil {
				overlay.callbacks.OnPreset(minutes)
			}
		}))
	}
	overlay.presetBox.Objects = objects
	overlay.presetBox.Refresh()
}

// SetBlinkOverdue toggles the overdue blink animation.
func (overlay *Window) SetBlinkOverdue(enabled bool) {
	overlay.config.BlinkOverdue = enabled
	overlay.applyBlink()
}

// SetTimerText updates the countdown label.
func (overlay *Window) SetTimerText(text string) {
	overlay.timerLabel.Text = text
	overlay.timerLabel.Refresh()
}

// SetTitle updates the window title.
func (overlay *Window) SetTitle(title string) {
	overlay.window.SetTitle(title)
}

// SetNegative switches between the positive and overdue styles.
func (overlay *Window) SetNegative(negative bool) {
	if overlay.negative == negative {
		return
	}
	overlay.negative = negative
	if negative {
		overlay.background.FillColor = negativeBackground
		overlay.timerLabel.Color = negativeText
	} else {
		overlay.background.FillColor = positiveBackground
		overlay.timerLabel.Color = positiveText
	}
	overlay.background.Refresh()
	overlay.timerLabel.Refresh()
	overlay.applyBlink()
}

// SetControls enables pause/reset and sets the pause label.
func (overlay *Window) SetControls(controls display.Controls) {
	overlay.pauseButton.SetText(controls.PauseLabel)
	if controls.Enabled {
		overlay.pauseButton.Enable()
		overlay.resetButton.Enable()
		return
	}
	overlay.pauseButton.Disable()
	overlay.resetButton.Disable()
}

// SetPending mirrors typed digits into the custom minutes field.
func (overlay *Window) SetPending(value int) {
	overlay.customEntry.SetText(strconv.Itoa(value))
}

// ShowProgress reveals the auto-start progress bar.
func (overlay *Window) ShowProgress() {
	overlay.progress.Show()
}

// SetProgress updates the auto-start progress bar.
func (overlay *Window) SetProgress(progress float64) {
	overlay.progress.SetValue(progress)
}

// HideProgress hides and rewinds the auto-start progress bar.
func (overlay *Window) HideProgress() {
	overlay.progress.SetValue(0)
	overlay.progress.Hide()
}

func (overlay *Window) fireCustom(text string) {
	if overlay.callbacks.OnCustom != nil {
		overlay.callbacks.OnCustom(text)
	}
}

func (overlay *Window) handleTypedKey(event *fyne.KeyEvent) {
	if overlay.entryFocused() {
		return
	}
	action, digit := ClassifyKey(event.Name)
	switch action {
	case KeyDigit:
		if overlay.callbacks.OnDigit != nil {
			overlay.callbacks.OnDigit(digit)
		}
	case KeyEnter:
		if overlay.callbacks.OnEnter != nil {
			overlay.callbacks.OnEnter()
		}
	case KeyCancel:
		if overlay.callbacks.OnCancelEntry != nil {
			overlay.callbacks.OnCancelEntry()
		}
	}
}

func (overlay *Window) entryFocused() bool {
	focused := overlay.window.Canvas().Focused()
	if focused == nil {
		return false
	}
	_, isEntry := focused.(*widget.Entry)
	return isEntry
}

func (overlay *Window) applyBlink() {
	if overlay.negative && overlay.config.BlinkOverdue {
		overlay.blinker.StartBlink(context.Background())
		return
	}
	overlay.blinker.Stop()
}

func (overlay *Window) blinkFrame(visible bool) {
	fyne.Do(func() {
		if visible {
			overlay.timerLabel.Show()
		} else {
			overlay.timerLabel.Hide()
		}
	})
}
