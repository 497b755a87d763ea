package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"minuteminder/internal/storage"
	"minuteminder/internal/ui/preferences"
)

func withGlobals(t *testing.T) {
	t.Helper()
	previousLogger, previousMute := logger, mute
	logger = zap.NewNop()
	t.Cleanup(func() {
		logger, mute = previousLogger, previousMute
	})
}

func TestLoadSettingsMergesFileEnvAndFlags(t *testing.T) {
	withGlobals(t)
	path := filepath.Join(t.TempDir(), "settings.yaml")
	stored := preferences.DefaultSettings()
	stored.Presets = []int{4, 8}
	require.NoError(t, storage.SaveSettingsTo(path, stored))
	t.Setenv("MINUTEMINDER_COMMIT_DELAY", "2s")
	mute = true

	settings, resolved, err := loadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, path, resolved)
	assert.Equal(t, []int{4, 8}, settings.Presets)
	assert.Equal(t, 2*time.Second, settings.CommitDelay)
	assert.True(t, settings.Muted)
}

func TestLoadSettingsRejectsBadEnv(t *testing.T) {
	withGlobals(t)
	t.Setenv("MINUTEMINDER_VOLUME", "loud")

	_, _, err := loadSettings(filepath.Join(t.TempDir(), "settings.yaml"))
	assert.Error(t, err)
}

func TestBuildLogger(t *testing.T) {
	verboseLogger, err := buildLogger(true, false)
	require.NoError(t, err)
	assert.True(t, verboseLogger.Core().Enabled(zap.DebugLevel))

	quietLogger, err := buildLogger(false, false)
	require.NoError(t, err)
	assert.False(t, quietLogger.Core().Enabled(zap.DebugLevel))
}

func TestRootFlags(t *testing.T) {
	for _, name := range []string{"tui", "minutes", "config", "mute", "verbose"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), name)
	}
}
