package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/motionfield/parameter"
)

const (
	sampleRate = beep.SampleRate(parameter.AudioSampleRate)
)

// SoundManager owns the speaker and plays cues through a shared mixer
// A manager that failed to initialize silently drops every cue
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	chime       ChimeConfig
	initialized bool
	played      int

	logger *zap.Logger
}

// NewSoundManager creates an uninitialized manager
func NewSoundManager(chime ChimeConfig, logger *zap.Logger) *SoundManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		chime:  chime,
		logger: logger,
	}
}

// Initialize opens the speaker, failure is non-fatal for callers
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.logger.Debug("audio initialized", zap.Int("sample_rate", int(sampleRate)))
	return nil
}

// Cleanup stops all cues and releases the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// PlayChime queues one chime, speed only feeds the log
func (sm *SoundManager) PlayChime(speed float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	streamer, err := NewChimeStreamer(sampleRate, sm.chime)
	if err != nil {
		sm.logger.Warn("chime unavailable", zap.Error(err))
		return
	}
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
	sm.played++
	sm.logger.Debug("chime", zap.Float64("speed", speed))
}

// Played returns the number of chimes queued since initialization
func (sm *SoundManager) Played() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}
