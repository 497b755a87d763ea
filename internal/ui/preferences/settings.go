package preferences

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"minuteminder/internal/core/model"
	"minuteminder/internal/core/timekeeper"
)

const maxPresets = 8

// Settings defines editable user preferences.
type Settings struct {
	Presets     []int
	CommitDelay time.Duration

	ToneFrequency float64
	ToneGain      float64
	ToneDuration  time.Duration
	Volume        float64
	Muted         bool

	BlinkOverdue bool
}

// DefaultSettings returns default settings for Minute Minder.
func DefaultSettings() Settings {
	tone := model.DefaultToneConfig()
	return Settings{
		Presets:       []int{1, 3, 5, 10, 15, 25},
		CommitDelay:   model.DefaultEntryConfig().CommitDelay,
		ToneFrequency: tone.Frequency,
		ToneGain:      tone.Gain,
		ToneDuration:  tone.Duration,
		Volume:        0,
		Muted:         false,
		BlinkOverdue:  true,
	}
}

// EntryConfig converts settings to the typed-entry options.
func (settings Settings) EntryConfig() model.EntryConfig {
	config := model.DefaultEntryConfig()
	if settings.CommitDelay > 0 {
		config.CommitDelay = settings.CommitDelay
	}
	return config
}

// TimerConfig converts settings to engine options.
func (settings Settings) TimerConfig() timekeeper.Config {
	return timekeeper.Config{TickInterval: time.Second}
}

// ToneConfig converts settings to the alert tone.
func (settings Settings) ToneConfig() model.ToneConfig {
	return model.ToneConfig{
		Frequency: settings.ToneFrequency,
		Gain:      settings.ToneGain,
		Duration:  settings.ToneDuration,
		Volume:    settings.Volume,
		Muted:     settings.Muted,
	}
}

// ParsePresets reads a comma separated list of positive minute values.
// Duplicates are dropped and the result is sorted.
func ParsePresets(text string) ([]int, error) {
	seen := make(map[int]bool)
	var presets []int
	for _, field := range strings.Split(text, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		minutes, err := strconv.Atoi(field)
		if err != nil || minutes <= 0 {
			return nil, fmt.Errorf("invalid preset %q", field)
		}
		if seen[minutes] {
			continue
		}
		seen[minutes] = true
		presets = append(presets, minutes)
	}
	if len(presets) == 0 {
		return nil, fmt.Errorf("no presets given")
	}
	if len(presets) > maxPresets {
		return nil, fmt.Errorf("at most %d presets allowed", maxPresets)
	}
	sort.Ints(presets)
	return presets, nil
}

// FormatPresets is the inverse of ParsePresets.
func FormatPresets(presets []int) string {
	parts := make([]string, 0, len(presets))
	for _, minutes := range presets {
		parts = append(parts, strconv.Itoa(minutes))
	}
	return strings.Join(parts, ", ")
}

// PresetLabel renders a preset button caption.
func PresetLabel(minutes int) string {
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
