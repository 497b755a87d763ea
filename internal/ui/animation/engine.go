package animation

import (
	"context"
	"sync"
	"time"
)

// Config contains blink timing values.
type Config struct {
	Visible time.Duration
	Hidden  time.Duration
}

// Engine blinks an element by toggling its visibility on a background goroutine.
type Engine struct {
	mu      sync.Mutex
	config  Config
	update  func(visible bool)
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// New creates a new animation engine. update is called from the animation goroutine.
func New(config Config, update func(visible bool)) *Engine {
	defaults := DefaultConfig()
	if config.Visible <= 0 {
		config.Visible = defaults.Visible
	}
	if config.Hidden <= 0 {
		config.Hidden = defaults.Hidden
	}
	return &Engine{
		config: config,
		update: update,
	}
}

// StartBlink starts blinking until ctx is done or Stop is called.
// Starting an already running engine is a no-op.
func (engine *Engine) StartBlink(ctx context.Context) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.running {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	engine.cancel = cancel
	engine.done = make(chan struct{})
	engine.running = true

	go engine.run(runCtx, engine.done)
}

// Stop terminates the animation and leaves the element visible.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	if !engine.running {
		engine.mu.Unlock()
		return
	}
	engine.cancel()
	done := engine.done
	engine.cancel = nil
	engine.done = nil
	engine.running = false
	engine.mu.Unlock()

	<-done
	engine.update(true)
}

// Running reports whether a blink loop is active.
func (engine *Engine) Running() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.running
}

func (engine *Engine) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		engine.update(false)
		if !sleepWithContext(ctx, engine.config.Hidden) {
			return
		}
		engine.update(true)
		if !sleepWithContext(ctx, engine.config.Visible) {
			return
		}
	}
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
