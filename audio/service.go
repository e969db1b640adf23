package audio

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/minetower/core"
)

// AudioService wraps SoundManager as a Service
// Handles graceful degradation when no audio device is available
type AudioService struct {
	manager  *SoundManager
	log      *zap.Logger
	disabled atomic.Bool
}

// NewService creates a new audio service
func NewService() *AudioService {
	return &AudioService{log: zap.NewNop()}
}

// Name implements service.Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements service.Service
func (s *AudioService) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: *AudioConfig (optional), args[1]: *zap.Logger (optional)
func (s *AudioService) Init(args ...any) error {
	var cfg *AudioConfig
	if len(args) > 0 {
		if c, ok := args[0].(*AudioConfig); ok {
			cfg = c
		}
	}
	if len(args) > 1 {
		if log, ok := args[1].(*zap.Logger); ok && log != nil {
			s.log = log.Named("audio")
		}
	}
	s.manager = NewSoundManager(cfg)
	return nil
}

// Start implements service.Service
// Device failures set the disabled flag and are not returned
func (s *AudioService) Start() error {
	if s.manager == nil {
		s.disabled.Store(true)
		return nil
	}
	if err := s.manager.Initialize(); err != nil {
		s.log.Info("audio unavailable, running silent", zap.Error(err))
		s.disabled.Store(true)
	}
	return nil
}

// Stop implements service.Service
func (s *AudioService) Stop() error {
	if s.manager != nil {
		s.manager.Cleanup()
	}
	return nil
}

// IsDisabled returns true if audio is unavailable
func (s *AudioService) IsDisabled() bool {
	return s.disabled.Load()
}

// Play plays a sound effect; silent when disabled
func (s *AudioService) Play(sound core.SoundType) {
	if s.disabled.Load() || s.manager == nil {
		return
	}
	if !s.manager.Play(sound) {
		s.log.Debug("sound skipped", zap.Stringer("sound", sound))
	}
}

// ToggleMute flips mute; reports true (muted) when disabled
func (s *AudioService) ToggleMute() bool {
	if s.manager == nil {
		return true
	}
	return s.manager.ToggleMute()
}

func (s *AudioService) IsMuted() bool {
	return s.manager == nil || s.disabled.Load() || s.manager.IsMuted()
}
