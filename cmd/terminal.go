package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"minuteminder/internal/app"
	"minuteminder/internal/audio"
	"minuteminder/internal/core/clock"
	"minuteminder/internal/ui/preferences"
	"minuteminder/internal/ui/terminal"
)

func runTerminal(settings preferences.Settings) error {
	relay := terminal.NewRelay()
	screen := terminal.NewScreen()
	cue := audio.NewCue(audio.NewSpeakerDevice(), settings.ToneConfig(), logger.Named("audio"))

	minder := app.New(app.Options{
		Clock:     clock.NewReal(relay.Dispatch),
		Surface:   screen,
		Indicator: screen,
		Cue:       cue,
		Logger:    logger.Named("timer"),
		Title:     app.DefaultTitle,
		Timer:     settings.TimerConfig(),
		Entry:     settings.EntryConfig(),
	})

	program := tea.NewProgram(terminal.NewModel(screen, minder, settings.Presets, minutes), tea.WithAltScreen())
	relay.Bind(program)
	_, err := program.Run()
	relay.Bind(nil)
	minder.Destroy()
	if err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
