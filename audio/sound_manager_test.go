package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Cues on a manager without a speaker must be dropped, never panic
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(DefaultChime(), nil)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	sm.PlayChime(10)
	sm.PlayChime(25)
	sm.Cleanup()
	sm.Cleanup()
	assert.Equal(t, 0, sm.Played())
}

// Initialization depends on an audio device, skip where none exists
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager(DefaultChime(), nil)
	if err := sm.Initialize(); err != nil {
		t.Skipf("Audio initialization failed (expected in CI): %v", err)
	}
	defer sm.Cleanup()

	// Second call is a no-op
	assert.NoError(t, sm.Initialize())

	sm.PlayChime(12)
	assert.Equal(t, 1, sm.Played())
}
