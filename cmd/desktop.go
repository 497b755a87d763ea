package main

import (
	"errors"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"go.uber.org/zap"

	"minuteminder/internal/app"
	"minuteminder/internal/audio"
	"minuteminder/internal/core/clock"
	"minuteminder/internal/platform"
	"minuteminder/internal/storage"
	"minuteminder/internal/ui/display"
	"minuteminder/internal/ui/preferences"
	"minuteminder/internal/ui/tray"
	"minuteminder/internal/ui/window"
	"minuteminder/resources"
)

func runDesktop(settings preferences.Settings, settingsPath string) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info("already running, raising the existing window")
			if activateErr := platform.ActivateRunning(appName, time.Second); activateErr != nil {
				logger.Warn("activate running instance", zap.Error(activateErr))
			}
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.SetIcon(resources.MustStatusIcon(resources.IconRunning))
	desktopApp, hasTray := fyneApp.(desktop.App)
	if !hasTray {
		logger.Info("system tray unsupported on this platform")
	}

	source := clock.NewReal(fyne.Do)
	cue := audio.NewCue(audio.NewSpeakerDevice(), settings.ToneConfig(), logger.Named("audio"))

	var minder *app.MinuteMinder
	timerWindow := window.New(fyneApp, window.Config{
		Title:        app.DefaultTitle,
		Presets:      settings.Presets,
		BlinkOverdue: settings.BlinkOverdue,
		CloseToTray:  hasTray,
	}, window.Callbacks{
		OnPreset:      func(presetMinutes int) { minder.SetTimer(presetMinutes) },
		OnCustom:      func(text string) { minder.SetCustomTime(text) },
		OnTogglePause: func() { minder.TogglePause() },
		OnReset:       func() { minder.Reset() },
		OnDigit:       func(digit rune) { minder.TypeDigit(digit) },
		OnEnter:       func() { minder.PressEnter() },
		OnCancelEntry: func() { minder.CancelEntry() },
	})

	var prefsWindow *preferences.Window
	surfaces := display.Surfaces{timerWindow}
	var trayManager *tray.Manager
	if hasTray {
		trayManager = tray.New(desktopApp, app.DefaultTitle, settings.Presets, tray.Callbacks{
			OnPreset:      func(presetMinutes int) { minder.SetTimer(presetMinutes) },
			OnTogglePause: func() { minder.TogglePause() },
			OnReset:       func() { minder.Reset() },
			OnShowWindow:  timerWindow.Show,
			OnPreferences: func() { prefsWindow.Show() },
			OnQuit: func() {
				timerWindow.Close()
				fyneApp.Quit()
			},
		})
		surfaces = append(surfaces, trayManager)
	}

	minder = app.New(app.Options{
		Clock:     source,
		Surface:   surfaces,
		Indicator: timerWindow,
		Cue:       cue,
		Logger:    logger.Named("timer"),
		Title:     app.DefaultTitle,
		Timer:     settings.TimerConfig(),
		Entry:     settings.EntryConfig(),
	})

	applySettings := func(updated preferences.Settings) {
		minder.SetEntryConfig(updated.EntryConfig())
		cue.SetTone(updated.ToneConfig())
		timerWindow.SetPresets(updated.Presets)
		timerWindow.SetBlinkOverdue(updated.BlinkOverdue)
		if trayManager != nil {
			trayManager.SetPresets(updated.Presets)
		}
	}

	prefsWindow = preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		updated = withFlags(updated)
		applySettings(updated)
		if err := storage.SaveSettingsTo(settingsPath, updated); err != nil {
			logger.Warn("save settings", zap.Error(err))
		}
	})

	watcher, err := storage.WatchSettings(settingsPath, 0, func(updated preferences.Settings) {
		updated = withFlags(updated)
		fyne.Do(func() {
			applySettings(updated)
			prefsWindow.UpdateSettings(updated)
		})
	}, logger.Named("settings"))
	if err != nil {
		logger.Warn("settings live reload disabled", zap.Error(err))
	} else {
		defer watcher.Stop()
	}

	guard.ServeActivation(func() {
		fyne.Do(timerWindow.Show)
	})

	fyneApp.Lifecycle().SetOnStarted(func() {
		if minutes > 0 {
			minder.SetTimer(minutes)
		}
	})
	fyneApp.Lifecycle().SetOnStopped(minder.Destroy)

	timerWindow.ShowAndRun()
	return nil
}
