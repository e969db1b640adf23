package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/minetower/core"
	"github.com/lixenwraith/minetower/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves, optionally gliding between two frequencies
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-frequency oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator whose frequency moves linearly from start to end
func NewSweep(start, end float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     start,
		endFreq:  end,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.currentFreq() / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) currentFreq() float64 {
	if o.endFreq == o.freq || o.duration == 0 {
		return o.freq
	}
	t := float64(o.position) / float64(o.duration)
	return o.freq + (o.endFreq-o.freq)*t
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = float64(remaining) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain; math.Log2(0) is -Inf so zero maps to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateBombSound generates a noise burst over a falling rumble
func CreateBombSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.BombSoundDuration

	noise := NewOscillator(0, d, WaveNoise, rate)
	noiseShaped := NewEnvelope(noise, d, parameter.BombSoundAttack, parameter.BombSoundRelease, rate)

	rumble := NewSweep(parameter.BombRumbleStartHz, parameter.BombRumbleEndHz, d, WaveSine, rate)
	rumbleShaped := NewEnvelope(rumble, d, parameter.BombSoundAttack, parameter.BombSoundRelease, rate)

	mixed := beep.Take(rate.N(d), beep.Mix(
		newVolume(noiseShaped, parameter.BombNoiseMix),
		newVolume(rumbleShaped, 1-parameter.BombNoiseMix),
	))

	return newVolume(mixed, cfg.volumeFor(core.SoundBombExplode))
}

// CreateFlagSound generates a bell with an octave overtone
func CreateFlagSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.FlagSoundDuration

	fund := NewOscillator(parameter.FlagFundamentalHz, d, WaveSine, rate)
	fundShaped := NewEnvelope(fund, d, parameter.FlagSoundAttack, parameter.FlagSoundFundamentalRelease, rate)

	over := NewOscillator(parameter.FlagOvertoneHz, d, WaveSine, rate)
	overShaped := NewEnvelope(over, d, parameter.FlagSoundAttack, parameter.FlagSoundOvertoneRelease, rate)

	mixed := beep.Take(rate.N(d), beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	))

	return newVolume(mixed, cfg.volumeFor(core.SoundFlagReveal))
}

// CreateCompleteSound generates a rising arpeggio; the last note rings longer
func CreateCompleteSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	notes := make([]beep.Streamer, 0, len(parameter.CompleteNotesHz))
	last := len(parameter.CompleteNotesHz) - 1
	for i, hz := range parameter.CompleteNotesHz {
		d, rel := parameter.CompleteNoteDuration, parameter.CompleteNoteRelease
		if i == last {
			d, rel = parameter.CompleteFinalNote, parameter.CompleteFinalRelease
		}
		osc := NewOscillator(hz, d, WaveSquare, rate)
		notes = append(notes, NewEnvelope(osc, d, parameter.CompleteAttack, rel, rate))
	}

	return newVolume(beep.Seq(notes...), cfg.volumeFor(core.SoundGameComplete)*0.5)
}

// GetSoundEffect returns a fresh streamer for the sound, nil when unknown
func GetSoundEffect(soundType core.SoundType, cfg *AudioConfig) beep.Streamer {
	switch soundType {
	case core.SoundBombExplode:
		return CreateBombSound(cfg)
	case core.SoundFlagReveal:
		return CreateFlagSound(cfg)
	case core.SoundGameComplete:
		return CreateCompleteSound(cfg)
	default:
		return nil
	}
}

// SoundDuration is the playing length of a sound effect
func SoundDuration(soundType core.SoundType) time.Duration {
	switch soundType {
	case core.SoundBombExplode:
		return parameter.BombSoundDuration
	case core.SoundFlagReveal:
		return parameter.FlagSoundDuration
	case core.SoundGameComplete:
		return time.Duration(len(parameter.CompleteNotesHz)-1)*parameter.CompleteNoteDuration + parameter.CompleteFinalNote
	default:
		return 0
	}
}
