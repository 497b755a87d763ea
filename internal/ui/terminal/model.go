package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"minuteminder/internal/ui/display"
	"minuteminder/internal/ui/preferences"
)

// Controller is the part of the timer facade the terminal drives.
type Controller interface {
	SetTimer(minutes int)
	TogglePause()
	Reset()
	TypeDigit(digit rune)
	PressEnter()
	CancelEntry()
}

type autoStartMsg int

var (
	positiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")).Padding(1, 4)
	negativeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")).Padding(1, 4)
	pausedStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9E2AF"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7F849C"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89B4FA"))
)

// Model is the bubbletea model for the terminal timer.
type Model struct {
	controller  Controller
	screen      *Screen
	presets     []int
	selected    int
	autoStart   int
	keys        keyMap
	help        help.Model
	bar         progress.Model
	width       int
	windowTitle string
}

// NewModel creates a terminal model. A positive autoStart starts a countdown
// of that many minutes once the program runs.
func NewModel(screen *Screen, controller Controller, presets []int, autoStart int) Model {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 30

	helpModel := help.New()
	helpModel.Styles.ShortKey = mutedStyle.Bold(true)
	helpModel.Styles.ShortDesc = mutedStyle
	helpModel.Styles.ShortSeparator = mutedStyle

	return Model{
		controller: controller,
		screen:     screen,
		presets:    presets,
		autoStart:  autoStart,
		keys:       defaultKeyMap,
		help:       helpModel,
		bar:        bar,
	}
}

// Init returns the initial command for the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle(m.screen.Title())}
	if m.autoStart > 0 {
		minutes := m.autoStart
		cmds = append(cmds, func() tea.Msg { return autoStartMsg(minutes) })
	}
	return tea.Batch(cmds...)
}

// Update handles incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dispatchMsg:
		msg()

	case autoStartMsg:
		m.controller.SetTimer(int(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.bar.Width = max(10, min(40, msg.Width-8))

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Digit):
			m.controller.TypeDigit(msg.Runes[0])
		case key.Matches(msg, m.keys.Enter):
			m.controller.PressEnter()
		case key.Matches(msg, m.keys.Cancel):
			m.controller.CancelEntry()
		case key.Matches(msg, m.keys.Toggle):
			m.controller.TogglePause()
		case key.Matches(msg, m.keys.Reset):
			m.controller.Reset()
		case key.Matches(msg, m.keys.Next):
			if len(m.presets) > 0 {
				m.selected = (m.selected + 1) % len(m.presets)
			}
		case key.Matches(msg, m.keys.Start):
			if len(m.presets) > 0 {
				m.controller.SetTimer(m.presets[m.selected])
			}
		}
	}

	return m.syncTitle()
}

func (m Model) syncTitle() (tea.Model, tea.Cmd) {
	title := m.screen.Title()
	if title == m.windowTitle {
		return m, nil
	}
	m.windowTitle = title
	return m, tea.SetWindowTitle(title)
}

// View renders the current model state.
func (m Model) View() string {
	var sections []string

	style := positiveStyle
	if m.screen.negative {
		style = negativeStyle
	}
	sections = append(sections, style.Render(m.screen.timerText))

	if m.screen.controls.Mode == display.ModePausedWithTime {
		sections = append(sections, pausedStyle.Render("PAUSED"))
	}

	if m.screen.hasPending {
		entry := fmt.Sprintf("Starting %s...", preferences.PresetLabel(m.screen.pending))
		sections = append(sections, entry)
		if m.screen.progressVisible {
			sections = append(sections, m.bar.ViewAs(m.screen.progress))
		}
	}

	sections = append(sections, "", m.presetLine(), "", m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) presetLine() string {
	labels := make([]string, 0, len(m.presets))
	for index, minutes := range m.presets {
		label := fmt.Sprintf("%dm", minutes)
		if index == m.selected {
			labels = append(labels, selectedStyle.Render("["+label+"]"))
			continue
		}
		labels = append(labels, mutedStyle.Render(" "+label+" "))
	}
	return strings.Join(labels, " ")
}
