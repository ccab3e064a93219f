package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond
)

// Burst Chime
const (
	// ChimeFrequency is the sine tone pitch in Hz
	ChimeFrequency = 880

	// ChimeDuration is the tone length
	ChimeDuration = 120 * time.Millisecond

	// ChimeFade is the linear fade-out length at the end of the tone
	ChimeFade = 60 * time.Millisecond

	// ChimeVolume is the beep effects.Volume exponent (base 2), negative is quieter
	ChimeVolume = -2.0
)
