package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"minuteminder/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

const (
	minVolume = -4
	maxVolume = 2
)

type yamlSettings struct {
	Presets            []int   `yaml:"presets,omitempty"`
	CommitDelaySeconds float64 `yaml:"commit_delay_seconds,omitempty"`
	ToneHz             float64 `yaml:"tone_hz,omitempty"`
	ToneGain           float64 `yaml:"tone_gain,omitempty"`
	ToneDurationMillis int     `yaml:"tone_duration_ms,omitempty"`
	Volume             float64 `yaml:"volume"`
	Muted              bool    `yaml:"muted"`
	BlinkOverdue       *bool   `yaml:"blink_overdue,omitempty"`
}

// SettingsPath returns the settings file location for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads user preferences from the default location.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFrom(configPath)
}

// LoadSettingsFrom reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func LoadSettingsFrom(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to the default location.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsTo(configPath, settings)
}

// SaveSettingsTo writes user preferences to YAML.
func SaveSettingsTo(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	blink := settings.BlinkOverdue
	fileData := yamlSettings{
		Presets:            settings.Presets,
		CommitDelaySeconds: settings.CommitDelay.Seconds(),
		ToneHz:             settings.ToneFrequency,
		ToneGain:           settings.ToneGain,
		ToneDurationMillis: int(settings.ToneDuration / time.Millisecond),
		Volume:             settings.Volume,
		Muted:              settings.Muted,
		BlinkOverdue:       &blink,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if presets, err := preferences.ParsePresets(preferences.FormatPresets(fileData.Presets)); err == nil {
		settings.Presets = presets
	}
	if fileData.CommitDelaySeconds > 0 {
		settings.CommitDelay = time.Duration(fileData.CommitDelaySeconds * float64(time.Second))
	}
	if fileData.ToneHz >= 20 && fileData.ToneHz <= 20000 {
		settings.ToneFrequency = fileData.ToneHz
	}
	if fileData.ToneGain > 0 && fileData.ToneGain <= 1 {
		settings.ToneGain = fileData.ToneGain
	}
	if fileData.ToneDurationMillis > 0 {
		settings.ToneDuration = time.Duration(fileData.ToneDurationMillis) * time.Millisecond
	}
	if fileData.Volume >= minVolume && fileData.Volume <= maxVolume {
		settings.Volume = fileData.Volume
	}
	if fileData.BlinkOverdue != nil {
		settings.BlinkOverdue = *fileData.BlinkOverdue
	}

	settings.Muted = fileData.Muted
}
