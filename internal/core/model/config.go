package model

import "time"

// EntryConfig controls how typed digits are turned into a duration.
type EntryConfig struct {
	CommitDelay      time.Duration
	ProgressInterval time.Duration
	MaxDigits        int
}

// ToneConfig defines the zero-crossing cue.
type ToneConfig struct {
	Frequency float64
	Gain      float64
	Duration  time.Duration

	// Volume is a base-2 exponent applied on top of Gain; 0 leaves Gain untouched.
	Volume float64
	Muted  bool
}

// DefaultEntryConfig returns the 3s commit window with a 100ms progress step.
func DefaultEntryConfig() EntryConfig {
	return EntryConfig{
		CommitDelay:      3 * time.Second,
		ProgressInterval: 100 * time.Millisecond,
		MaxDigits:        6,
	}
}

// DefaultToneConfig returns a quiet one second 880 Hz sine.
func DefaultToneConfig() ToneConfig {
	return ToneConfig{
		Frequency: 880,
		Gain:      0.1,
		Duration:  time.Second,
	}
}
