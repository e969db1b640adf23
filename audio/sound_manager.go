// Package audio synthesizes and plays the game's sound effects through the beep speaker.
// Playback degrades to silence when no audio device is available.
package audio

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/minetower/core"
	"github.com/lixenwraith/minetower/parameter"
)

// ErrDisabled is returned by Initialize when the config turns audio off
var ErrDisabled = errors.New("audio disabled by config")

// speakerInit is replaced in tests
var speakerInit = func(sr beep.SampleRate, bufferSize int) error {
	return speaker.Init(sr, bufferSize)
}

// SoundManager owns the speaker mixer and plays one-shot effects into it
type SoundManager struct {
	mu          sync.Mutex
	config      *AudioConfig
	mixer       *beep.Mixer
	initialized bool
	muted       atomic.Bool
	played      atomic.Int64
}

// NewSoundManager creates a manager; nil cfg uses defaults
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	cfg.Clamp()
	sm := &SoundManager{
		config: cfg,
		mixer:  &beep.Mixer{},
	}
	sm.muted.Store(!cfg.Enabled)
	return sm
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if !sm.config.Enabled {
		return ErrDisabled
	}

	rate := beep.SampleRate(sm.config.SampleRate)
	if err := speakerInit(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker Close; the cleared mixer keeps the device quiet
	sm.initialized = false
}

// Play queues a sound; false when uninitialized, muted or unknown
func (sm *SoundManager) Play(s core.SoundType) bool {
	if sm.muted.Load() {
		return false
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return false
	}

	streamer := GetSoundEffect(s, sm.config)
	if streamer == nil {
		return false
	}

	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
	sm.played.Add(1)
	return true
}

// ToggleMute flips the mute state and returns the new value
func (sm *SoundManager) ToggleMute() bool {
	for {
		old := sm.muted.Load()
		if sm.muted.CompareAndSwap(old, !old) {
			if !old {
				sm.clearMixer()
			}
			return !old
		}
	}
}

func (sm *SoundManager) clearMixer() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
}

func (sm *SoundManager) IsMuted() bool {
	return sm.muted.Load()
}

func (sm *SoundManager) IsRunning() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Played counts sounds handed to the mixer
func (sm *SoundManager) Played() int64 {
	return sm.played.Load()
}
