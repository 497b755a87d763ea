package animation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type frames struct {
	mu     sync.Mutex
	values []bool
}

func (f *frames) record(visible bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = append(f.values, visible)
}

func (f *frames) snapshot() []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]bool(nil), f.values...)
}

func TestBlinkTogglesUntilStopped(t *testing.T) {
	rec := &frames{}
	engine := New(Config{Visible: 2 * time.Millisecond, Hidden: 2 * time.Millisecond}, rec.record)

	engine.StartBlink(context.Background())
	engine.StartBlink(context.Background())
	require.Eventually(t, func() bool { return len(rec.snapshot()) >= 4 }, time.Second, time.Millisecond)
	assert.True(t, engine.Running())

	engine.Stop()
	engine.Stop()
	values := rec.snapshot()
	assert.False(t, values[0])
	assert.True(t, values[len(values)-1])
	assert.False(t, engine.Running())

	time.Sleep(10 * time.Millisecond)
	assert.Len(t, rec.snapshot(), len(values))
}

func TestBlinkStopsWithContext(t *testing.T) {
	rec := &frames{}
	engine := New(Config{Visible: time.Millisecond, Hidden: time.Millisecond}, rec.record)
	ctx, cancel := context.WithCancel(context.Background())

	engine.StartBlink(ctx)
	cancel()
	engine.Stop()

	values := rec.snapshot()
	assert.True(t, values[len(values)-1])
}

func TestDefaultsApplied(t *testing.T) {
	engine := New(Config{}, func(bool) {})
	assert.Equal(t, DefaultConfig(), engine.config)
}
