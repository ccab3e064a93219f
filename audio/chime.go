package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/motionfield/parameter"
)

// ChimeConfig describes the burst tone
type ChimeConfig struct {
	Frequency float64
	Duration  time.Duration
	Fade      time.Duration
	Volume    float64
}

// DefaultChime returns the short high ping played on pointer bursts
func DefaultChime() ChimeConfig {
	return ChimeConfig{
		Frequency: parameter.ChimeFrequency,
		Duration:  parameter.ChimeDuration,
		Fade:      parameter.ChimeFade,
		Volume:    parameter.ChimeVolume,
	}
}

// NewChimeStreamer builds a finite sine tone with a linear fade-out tail
func NewChimeStreamer(sr beep.SampleRate, cfg ChimeConfig) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, cfg.Frequency)
	if err != nil {
		return nil, fmt.Errorf("chime tone: %w", err)
	}
	total := sr.N(cfg.Duration)
	fade := min(sr.N(cfg.Fade), total)

	tone := beep.Take(total, sine)
	faded := newFadeOut(tone, total, fade)
	return &effects.Volume{
		Streamer: faded,
		Base:     2,
		Volume:   cfg.Volume,
	}, nil
}

// newFadeOut ramps the gain linearly to zero over the last fade samples of a total-sample stream
func newFadeOut(s beep.Streamer, total, fade int) beep.Streamer {
	pos := 0
	start := total - fade
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			if pos >= start && fade > 0 {
				gain := float64(total-pos) / float64(fade)
				samples[i][0] *= gain
				samples[i][1] *= gain
			}
			pos++
		}
		return n, ok
	})
}
