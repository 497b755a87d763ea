package preferences

import (
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window      fyne.Window
	settings    Settings
	onSave      func(Settings)
	presets     *widget.Entry
	commitDelay *widget.Entry
	frequency   *widget.Entry
	volume      *widget.Slider
	muted       *widget.Check
	blink       *widget.Check
	status      *widget.Label
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Minute Minder Settings")

	presets := widget.NewEntry()
	commitDelay := widget.NewEntry()
	frequency := widget.NewEntry()

	volume := widget.NewSlider(-4, 2)
	volume.Step = 0.5

	muted := widget.NewCheck("Mute alert", nil)
	blink := widget.NewCheck("Blink when overdue", nil)
	status := widget.NewLabel("")

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Presets"), presets, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Typed entry starts after"), commitDelay, widget.NewLabel("sec")),
		blink,
		widget.NewLabelWithStyle("Alert", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Tone"), frequency, widget.NewLabel("Hz")),
		widget.NewLabel("Volume"),
		volume,
		muted,
		status,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(420, 380))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:      window,
		onSave:      onSave,
		presets:     presets,
		commitDelay: commitDelay,
		frequency:   frequency,
		volume:      volume,
		muted:       muted,
		blink:       blink,
		status:      status,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.presets.SetText(FormatPresets(settings.Presets))
	prefs.commitDelay.SetText(strconv.FormatFloat(settings.CommitDelay.Seconds(), 'f', -1, 64))
	prefs.frequency.SetText(strconv.FormatFloat(settings.ToneFrequency, 'f', -1, 64))
	prefs.volume.Value = settings.Volume
	prefs.volume.Refresh()
	prefs.muted.SetChecked(settings.Muted)
	prefs.blink.SetChecked(settings.BlinkOverdue)
	prefs.status.SetText("")
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	presets, err := ParsePresets(prefs.presets.Text)
	if err != nil {
		prefs.status.SetText(err.Error())
		return
	}
	settings.Presets = presets

	if seconds, ok := parsePositiveSeconds(prefs.commitDelay.Text); ok {
		settings.CommitDelay = time.Duration(seconds * float64(time.Second))
	}
	if hertz, err := strconv.ParseFloat(prefs.frequency.Text, 64); err == nil && hertz >= 20 && hertz <= 20000 {
		settings.ToneFrequency = hertz
	}

	settings.Volume = prefs.volume.Value
	settings.Muted = prefs.muted.Checked
	settings.BlinkOverdue = prefs.blink.Checked

	prefs.settings = settings
	prefs.status.SetText("")
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveSeconds(value string) (float64, bool) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || !(parsed > 0 && parsed <= 3600) {
		return 0, false
	}
	return parsed, true
}
