package parameter

import "time"

// Audio hardware settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// DefaultMasterVolume applies when no config overrides it
	DefaultMasterVolume = 0.7
)

// Bomb explode sound: noise burst over a falling rumble
const (
	BombSoundDuration = 700 * time.Millisecond
	BombSoundAttack   = 3 * time.Millisecond
	BombSoundRelease  = 550 * time.Millisecond
	BombRumbleStartHz = 120.0
	BombRumbleEndHz   = 35.0
	BombNoiseMix      = 0.55
)

// Flag reveal sound: bell with an octave overtone
const (
	FlagSoundDuration           = 450 * time.Millisecond
	FlagSoundAttack             = 5 * time.Millisecond
	FlagSoundFundamentalRelease = 400 * time.Millisecond
	FlagSoundOvertoneRelease    = 150 * time.Millisecond
	FlagFundamentalHz           = 880.0
	FlagOvertoneHz              = 1760.0
)

// Game complete sound: rising three-note arpeggio
const (
	CompleteNoteDuration = 140 * time.Millisecond
	CompleteFinalNote    = 420 * time.Millisecond
	CompleteAttack       = 5 * time.Millisecond
	CompleteNoteRelease  = 60 * time.Millisecond
	CompleteFinalRelease = 300 * time.Millisecond
)

// CompleteNotesHz are C6, E6, G6
var CompleteNotesHz = [3]float64{1046.50, 1318.51, 1567.98}
