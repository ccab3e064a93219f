package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestChimeLength(t *testing.T) {
	sr := beep.SampleRate(44100)
	s, err := NewChimeStreamer(sr, DefaultChime())
	require.NoError(t, err)

	samples := drain(t, s)
	assert.Equal(t, sr.N(120*time.Millisecond), len(samples))
}

func TestChimeFadesOut(t *testing.T) {
	sr := beep.SampleRate(44100)
	cfg := DefaultChime()
	cfg.Volume = 0
	s, err := NewChimeStreamer(sr, cfg)
	require.NoError(t, err)
	samples := drain(t, s)

	peak := func(from, to int) float64 {
		p := 0.0
		for _, smp := range samples[from:to] {
			p = math.Max(p, math.Abs(smp[0]))
		}
		return p
	}

	n := len(samples)
	head := peak(0, n/4)
	tail := peak(n-20, n)
	assert.Greater(t, head, 0.5, "full gain before the fade")
	assert.Less(t, tail, 0.01, "silent at the end")
	for i, smp := range samples {
		if math.Abs(smp[0]) > 1.0001 {
			t.Fatalf("sample %d clipped: %v", i, smp[0])
		}
	}
}

func TestChimeVolumeAttenuates(t *testing.T) {
	sr := beep.SampleRate(44100)
	cfg := DefaultChime()
	cfg.Volume = -2 // 2^-2 = 0.25
	s, err := NewChimeStreamer(sr, cfg)
	require.NoError(t, err)

	for _, smp := range drain(t, s) {
		if math.Abs(smp[0]) > 0.2501 {
			t.Fatalf("sample above attenuated peak: %v", smp[0])
		}
	}
}

func TestChimeInvalidFrequency(t *testing.T) {
	cfg := DefaultChime()
	cfg.Frequency = 30000 // above Nyquist for 44.1kHz
	_, err := NewChimeStreamer(beep.SampleRate(44100), cfg)
	assert.Error(t, err)
}
