package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"

	"minuteminder/internal/core/model"
)

const (
	defaultSampleRate = beep.SampleRate(44100)
	unlockDuration    = 10 * time.Millisecond
)

// SpeakerDevice plays tones through the system speaker.
type SpeakerDevice struct {
	sampleRate beep.SampleRate
}

// NewSpeakerDevice returns a device bound to the default output.
func NewSpeakerDevice() *SpeakerDevice {
	return &SpeakerDevice{sampleRate: defaultSampleRate}
}

// Init opens the speaker with a 100ms buffer.
func (device *SpeakerDevice) Init() error {
	if err := speaker.Init(device.sampleRate, device.sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	return nil
}

// Unlock pushes a short silence so the output stream starts flowing.
func (device *SpeakerDevice) Unlock() error {
	speaker.Play(beep.Silence(device.sampleRate.N(unlockDuration)))
	return nil
}

// PlayTone queues a sine tone on the speaker mixer.
func (device *SpeakerDevice) PlayTone(tone model.ToneConfig) error {
	if tone.Muted {
		return nil
	}
	speaker.Play(ToneStreamer(device.sampleRate, tone))
	return nil
}

// ToneStreamer renders tone as a finite stereo stream.
func ToneStreamer(sampleRate beep.SampleRate, tone model.ToneConfig) beep.Streamer {
	return &effects.Volume{
		Streamer: Sine(sampleRate, tone.Frequency, tone.Gain, tone.Duration),
		Base:     2,
		Volume:   tone.Volume,
		Silent:   tone.Muted,
	}
}

// Sine generates a sine wave at frequency with a fixed amplitude for duration.
func Sine(sampleRate beep.SampleRate, frequency, gain float64, duration time.Duration) beep.Streamer {
	total := sampleRate.N(duration)
	position := 0
	step := 2 * math.Pi * frequency / float64(sampleRate)
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if position >= total {
			return 0, false
		}
		count := 0
		for index := range samples {
			if position >= total {
				break
			}
			value := gain * math.Sin(step*float64(position))
			samples[index][0] = value
			samples[index][1] = value
			position++
			count++
		}
		return count, true
	})
}
