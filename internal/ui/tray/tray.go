package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"minuteminder/internal/ui/display"
	"minuteminder/internal/ui/preferences"
	"minuteminder/resources"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnPreset      func(minutes int)
	OnTogglePause func()
	OnReset       func()
	OnShowWindow  func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state and mirrors the timer as a display surface.
type Manager struct {
	app        desktop.App
	title      string
	statusItem *fyne.MenuItem
	presetItem *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	resetItem  *fyne.MenuItem
	callbacks  Callbacks
	timerText  string
	negative   bool
	icon       resources.Icon
	mode       display.Mode

	iconApplied bool
}

// New creates a tray manager with the provided callbacks. A nil app yields a
// manager that tracks state without touching a tray.
func New(app desktop.App, title string, presets []int, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		title:     title,
		callbacks: callbacks,
		timerText: "00:00",
		mode:      display.ModeIdle,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.presetItem = fyne.NewMenuItem("Start timer", nil)
	manager.pauseItem = fyne.NewMenuItem("Pause", func() {
		if manager.callbacks.OnTogglePause != nil {
			manager.callbacks.OnTogglePause()
		}
	})
	manager.resetItem = fyne.NewMenuItem("Reset", func() {
		if manager.callbacks.OnReset != nil {
			manager.callbacks.OnReset()
		}
	})
	manager.pauseItem.Disabled = true
	manager.resetItem.Disabled = true

	manager.SetPresets(presets)
	manager.refreshStatus()
	manager.refreshIcon()
	return manager
}

// SetPresets rebuilds the preset submenu.
func (manager *Manager) SetPresets(presets []int) {
	items := make([]*fyne.MenuItem, 0, len(presets))
	for _, minutes := range presets {
		minutes := minutes
		items = append(items, fyne.NewMenuItem(preferences.PresetLabel(minutes), func() {
			if manager.callbacks.OnPreset != nil {
				manager.callbacks.OnPreset(minutes)
			}
		}))
	}
	manager.presetItem.ChildMenu = fyne.NewMenu("", items...)
	manager.refreshMenu()
}

// SetTimerText updates the status label.
func (manager *Manager) SetTimerText(text string) {
	manager.timerText = text
	manager.refreshStatus()
}

// SetTitle is a no-op; the tray shows its own status line.
func (manager *Manager) SetTitle(string) {}

// SetNegative switches the tray icon to the overdue variant.
func (manager *Manager) SetNegative(negative bool) {
	manager.negative = negative
	manager.refreshIcon()
}

// SetControls updates pause/reset items.
func (manager *Manager) SetControls(controls display.Controls) {
	manager.mode = controls.Mode
	manager.pauseItem.Label = controls.PauseLabel
	manager.pauseItem.Disabled = !controls.Enabled
	manager.resetItem.Disabled = !controls.Enabled
	manager.refreshStatus()
	manager.refreshIcon()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

func (manager *Manager) refreshStatus() {
	status := "idle"
	switch manager.mode {
	case display.ModeRunning:
		status = manager.timerText
	case display.ModePausedWithTime:
		status = fmt.Sprintf("%s (paused)", manager.timerText)
	}
	manager.statusItem.Label = fmt.Sprintf("Timer: %s", status)
	manager.refreshMenu()
}

func (manager *Manager) refreshIcon() {
	icon := resources.IconIdle
	switch {
	case manager.negative:
		icon = resources.IconOverdue
	case manager.mode == display.ModeRunning:
		icon = resources.IconRunning
	}
	if icon == manager.icon && manager.iconApplied {
		return
	}
	manager.icon = icon
	if manager.app == nil {
		return
	}
	manager.iconApplied = true
	resource, err := resources.StatusIcon(icon)
	if err != nil {
		return
	}
	manager.app.SetSystemTrayIcon(resource)
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(manager.title,
		manager.statusItem,
		manager.presetItem,
		manager.pauseItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show timer", func() {
			if manager.callbacks.OnShowWindow != nil {
				manager.callbacks.OnShowWindow()
			}
		}),
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
