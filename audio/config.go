package audio

import (
	"github.com/lixenwraith/minetower/core"
	"github.com/lixenwraith/minetower/parameter"
)

// AudioConfig holds playback settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64
	SampleRate    int
	EffectVolumes map[core.SoundType]float64
}

// DefaultAudioConfig returns enabled audio at the default master volume
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: parameter.DefaultMasterVolume,
		SampleRate:   parameter.AudioSampleRate,
		EffectVolumes: map[core.SoundType]float64{
			core.SoundBombExplode:  1.0,
			core.SoundFlagReveal:   0.8,
			core.SoundGameComplete: 0.9,
		},
	}
}

// Clamp bounds volumes to [0, 1] and fills a missing sample rate
func (c *AudioConfig) Clamp() {
	c.MasterVolume = clamp01(c.MasterVolume)
	for k, v := range c.EffectVolumes {
		c.EffectVolumes[k] = clamp01(v)
	}
	if c.SampleRate <= 0 {
		c.SampleRate = parameter.AudioSampleRate
	}
}

func (c *AudioConfig) volumeFor(s core.SoundType) float64 {
	v, ok := c.EffectVolumes[s]
	if !ok {
		v = 1.0
	}
	return v * c.MasterVolume
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
