package animation

import "time"

// DefaultConfig returns a one second blink: mostly visible, briefly hidden.
func DefaultConfig() Config {
	return Config{
		Visible: 700 * time.Millisecond,
		Hidden:  300 * time.Millisecond,
	}
}
