package storage

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"minuteminder/internal/ui/preferences"
)

const envPrefix = "MINUTEMINDER_"

type envSettings struct {
	Muted       *bool          `env:"MUTED"`
	Volume      *float64       `env:"VOLUME"`
	ToneHz      *float64       `env:"TONE_HZ"`
	Presets     []int          `env:"PRESETS"      envSeparator:","`
	CommitDelay *time.Duration `env:"COMMIT_DELAY"`
}

// ApplyEnv overlays MINUTEMINDER_* environment variables on settings.
func ApplyEnv(settings preferences.Settings) (preferences.Settings, error) {
	return applyEnv(settings, env.Options{Prefix: envPrefix})
}

// ApplyEnvFrom is ApplyEnv over an explicit environment.
func ApplyEnvFrom(settings preferences.Settings, environment map[string]string) (preferences.Settings, error) {
	return applyEnv(settings, env.Options{Prefix: envPrefix, Environment: environment})
}

func applyEnv(settings preferences.Settings, options env.Options) (preferences.Settings, error) {
	var overrides envSettings
	if err := env.ParseWithOptions(&overrides, options); err != nil {
		return settings, fmt.Errorf("parse env: %w", err)
	}

	if overrides.Muted != nil {
		settings.Muted = *overrides.Muted
	}
	if overrides.Volume != nil {
		if *overrides.Volume < minVolume || *overrides.Volume > maxVolume {
			return settings, fmt.Errorf("parse env: %sVOLUME must be between %d and %d", envPrefix, minVolume, maxVolume)
		}
		settings.Volume = *overrides.Volume
	}
	if overrides.ToneHz != nil {
		if *overrides.ToneHz < 20 || *overrides.ToneHz > 20000 {
			return settings, fmt.Errorf("parse env: %sTONE_HZ must be between 20 and 20000", envPrefix)
		}
		settings.ToneFrequency = *overrides.ToneHz
	}
	if len(overrides.Presets) > 0 {
		presets, err := preferences.ParsePresets(preferences.FormatPresets(overrides.Presets))
		if err != nil {
			return settings, fmt.Errorf("parse env: %sPRESETS: %w", envPrefix, err)
		}
		settings.Presets = presets
	}
	if overrides.CommitDelay != nil && *overrides.CommitDelay > 0 {
		settings.CommitDelay = *overrides.CommitDelay
	}
	return settings, nil
}
