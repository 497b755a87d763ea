package audio

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"minuteminder/internal/core/model"
)

// ErrUnavailable indicates the platform has no usable sound output.
var ErrUnavailable = errors.New("audio output unavailable")

// Device is the raw sound output behind a Cue.
type Device interface {
	Init() error
	Unlock() error
	PlayTone(tone model.ToneConfig) error
}

// Cue plays the zero-crossing tone. It never reports failures to callers.
type Cue struct {
	mu     sync.Mutex
	device Device
	tone   model.ToneConfig
	logger *zap.Logger
	armed  bool
}

// NewCue creates an unarmed cue.
func NewCue(device Device, tone model.ToneConfig, logger *zap.Logger) *Cue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cue{
		device: device,
		tone:   tone,
		logger: logger,
	}
}

// Arm initializes the device on the first call made from a user action.
// A failed initialization is retried on the next Arm.
func (cue *Cue) Arm() {
	cue.mu.Lock()
	defer cue.mu.Unlock()
	if cue.armed {
		return
	}
	if cue.device == nil {
		cue.logger.Warn("audio cue disabled", zap.Error(ErrUnavailable))
		return
	}

	if err := cue.guard("init", cue.device.Init); err != nil {
		cue.logger.Warn("failed to initialise audio", zap.Error(fmt.Errorf("%w: %v", ErrUnavailable, err)))
		return
	}
	if err := cue.guard("unlock", cue.device.Unlock); err != nil {
		cue.logger.Warn("failed to play unlock sound", zap.Error(err))
	}
	cue.armed = true
	cue.logger.Debug("audio cue armed")
}

// Play emits the tone when armed.
func (cue *Cue) Play() {
	cue.mu.Lock()
	defer cue.mu.Unlock()
	if !cue.armed {
		return
	}
	tone := cue.tone
	if err := cue.guard("play", func() error { return cue.device.PlayTone(tone) }); err != nil {
		cue.logger.Warn("failed to play beep", zap.Error(err))
	}
}

// SetTone replaces the tone used by later Play calls.
func (cue *Cue) SetTone(tone model.ToneConfig) {
	cue.mu.Lock()
	defer cue.mu.Unlock()
	cue.tone = tone
}

// Armed reports whether the device was initialized.
func (cue *Cue) Armed() bool {
	cue.mu.Lock()
	defer cue.mu.Unlock()
	return cue.armed
}

// guard turns device panics into errors.
func (cue *Cue) guard(operation string, call func() error) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("audio %s panicked: %v", operation, recovered)
		}
	}()
	return call()
}
