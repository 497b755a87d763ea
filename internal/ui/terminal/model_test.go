package terminal

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minuteminder/internal/app"
	"minuteminder/internal/core/clock"
	"minuteminder/internal/ui/display"
)

func keyMsg(s string) tea.Msg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

type recorder struct {
	calls  []string
	digits []rune
	timers []int
}

func (r *recorder) SetTimer(minutes int) {
	r.calls = append(r.calls, "set")
	r.timers = append(r.timers, minutes)
}
func (r *recorder) TogglePause() { r.calls = append(r.calls, "toggle") }
func (r *recorder) Reset()       { r.calls = append(r.calls, "reset") }
func (r *recorder) TypeDigit(digit rune) {
	r.calls = append(r.calls, "digit")
	r.digits = append(r.digits, digit)
}
func (r *recorder) PressEnter()  { r.calls = append(r.calls, "enter") }
func (r *recorder) CancelEntry() { r.calls = append(r.calls, "cancel") }

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}

func TestKeyDispatch(t *testing.T) {
	controller := &recorder{}
	m := NewModel(NewScreen(), controller, []int{1, 5}, 0)

	press(m, "4", "2", "enter", "esc", " ", "p", "r", "x")

	assert.Equal(t, []string{"digit", "digit", "enter", "cancel", "toggle", "toggle", "reset"}, controller.calls)
	assert.Equal(t, []rune{'4', '2'}, controller.digits)
}

func TestPresetSelection(t *testing.T) {
	controller := &recorder{}
	m := NewModel(NewScreen(), controller, []int{1, 5, 10}, 0)

	m = press(m, "s")
	m = press(m, "tab", "tab", "s")
	m = press(m, "tab", "s")

	assert.Equal(t, []int{1, 10, 1}, controller.timers)
}

func TestQuitKey(t *testing.T) {
	m := NewModel(NewScreen(), &recorder{}, nil, 0)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestAutoStart(t *testing.T) {
	controller := &recorder{}
	m := NewModel(NewScreen(), controller, nil, 7)

	require.NotNil(t, m.Init())
	m.Update(autoStartMsg(7))

	assert.Equal(t, []int{7}, controller.timers)
}

func TestDispatchMsgRunsCallback(t *testing.T) {
	m := NewModel(NewScreen(), &recorder{}, nil, 0)
	ran := false

	m.Update(dispatchMsg(func() { ran = true }))

	assert.True(t, ran)
}

func TestUnboundRelayDrops(t *testing.T) {
	relay := NewRelay()
	ran := false

	relay.Dispatch(func() { ran = true })

	assert.False(t, ran)
}

func newMinder(t *testing.T) (*clock.Fake, *Screen, *app.MinuteMinder) {
	t.Helper()
	fake := clock.NewFake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	screen := NewScreen()
	minder := app.New(app.Options{Clock: fake, Surface: screen, Indicator: screen})
	t.Cleanup(minder.Destroy)
	return fake, screen, minder
}

func TestTypedMinutesDriveScreen(t *testing.T) {
	fake, screen, minder := newMinder(t)
	m := NewModel(screen, minder, []int{1}, 0)

	m = press(m, "1", "2")
	assert.True(t, screen.hasPending)
	assert.Equal(t, 12, screen.pending)
	assert.Contains(t, m.View(), "Starting 12 minutes...")

	fake.Advance(3 * time.Second)
	assert.False(t, screen.hasPending)
	assert.Equal(t, "12:00", screen.TimerText())

	next, cmd := m.Update(dispatchMsg(func() {}))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, "🟢 12:00", m.windowTitle)
}

func TestPauseShowsBadge(t *testing.T) {
	fake, screen, minder := newMinder(t)
	m := NewModel(screen, minder, []int{1}, 0)

	m = press(m, "s")
	fake.Advance(5 * time.Second)
	m = press(m, " ")

	assert.Equal(t, display.ModePausedWithTime, screen.controls.Mode)
	assert.Contains(t, m.View(), "PAUSED")
	assert.Contains(t, m.View(), "00:55")
}

func TestOverdueUsesNegativeStyle(t *testing.T) {
	fake, screen, minder := newMinder(t)
	m := NewModel(screen, minder, []int{1}, 0)

	m = press(m, "s")
	fake.Advance(62 * time.Second)

	assert.True(t, screen.negative)
	assert.Contains(t, m.View(), "-00:02")
}
