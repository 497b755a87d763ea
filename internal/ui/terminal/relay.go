package terminal

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// dispatchMsg carries a clock callback onto the update loop.
type dispatchMsg func()

// Relay hands scheduled callbacks to a running bubbletea program so that they
// execute on its update loop. Callbacks arriving before Bind are dropped.
type Relay struct {
	mu      sync.Mutex
	program *tea.Program
}

// NewRelay returns an unbound relay.
func NewRelay() *Relay {
	return &Relay{}
}

// Bind attaches the program that will run callbacks.
func (relay *Relay) Bind(program *tea.Program) {
	relay.mu.Lock()
	relay.program = program
	relay.mu.Unlock()
}

// Dispatch satisfies clock.Dispatcher.
func (relay *Relay) Dispatch(callback func()) {
	relay.mu.Lock()
	program := relay.program
	relay.mu.Unlock()
	if program == nil {
		return
	}
	program.Send(dispatchMsg(callback))
}
