package audio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"minuteminder/internal/core/model"
)

type fakeDevice struct {
	initErr   error
	initPanic bool
	playPanic bool
	inits     int
	unlocks   int
	tones     []model.ToneConfig
}

func (device *fakeDevice) Init() error {
	device.inits++
	if device.initPanic {
		panic("no sound card")
	}
	return device.initErr
}

func (device *fakeDevice) Unlock() error {
	device.unlocks++
	return nil
}

func (device *fakeDevice) PlayTone(tone model.ToneConfig) error {
	if device.playPanic {
		panic("device vanished")
	}
	device.tones = append(device.tones, tone)
	return nil
}

func TestPlayBeforeArmIsSilent(t *testing.T) {
	device := &fakeDevice{}
	cue := NewCue(device, model.DefaultToneConfig(), nil)

	cue.Play()
	assert.Empty(t, device.tones)
	assert.Zero(t, device.inits)
}

func TestArmOnceThenPlay(t *testing.T) {
	device := &fakeDevice{}
	cue := NewCue(device, model.DefaultToneConfig(), nil)

	cue.Arm()
	cue.Arm()
	cue.Play()

	assert.True(t, cue.Armed())
	assert.Equal(t, 1, device.inits)
	assert.Equal(t, 1, device.unlocks)
	if assert.Len(t, device.tones, 1) {
		assert.Equal(t, 880.0, device.tones[0].Frequency)
		assert.Equal(t, 0.1, device.tones[0].Gain)
	}
}

func TestArmFailureIsSwallowedAndRetried(t *testing.T) {
	device := &fakeDevice{initErr: errors.New("no backend")}
	cue := NewCue(device, model.DefaultToneConfig(), nil)

	assert.NotPanics(t, cue.Arm)
	assert.False(t, cue.Armed())
	cue.Play()
	assert.Empty(t, device.tones)

	device.initErr = nil
	cue.Arm()
	assert.True(t, cue.Armed())
	assert.Equal(t, 2, device.inits)
}

func TestDevicePanicsAreRecovered(t *testing.T) {
	device := &fakeDevice{initPanic: true}
	cue := NewCue(device, model.DefaultToneConfig(), nil)
	assert.NotPanics(t, cue.Arm)
	assert.False(t, cue.Armed())

	device.initPanic = false
	device.playPanic = true
	cue.Arm()
	assert.NotPanics(t, cue.Play)
}

func TestNilDeviceDegrades(t *testing.T) {
	cue := NewCue(nil, model.DefaultToneConfig(), nil)
	assert.NotPanics(t, func() {
		cue.Arm()
		cue.Play()
	})
	assert.False(t, cue.Armed())
}

func TestSetTone(t *testing.T) {
	device := &fakeDevice{}
	cue := NewCue(device, model.DefaultToneConfig(), nil)
	cue.Arm()

	tone := model.DefaultToneConfig()
	tone.Frequency = 440
	cue.SetTone(tone)
	cue.Play()

	assert.Equal(t, 440.0, device.tones[0].Frequency)
}
