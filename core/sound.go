package core

// SoundType represents different sound effects
type SoundType int

const (
	SoundBombExplode  SoundType = iota // Mine hit blast
	SoundFlagReveal                    // Safe cell flagged
	SoundGameComplete                  // Top row cleared
	SoundTypeCount
)

// String returns the sound name used in logs and config keys
func (s SoundType) String() string {
	switch s {
	case SoundBombExplode:
		return "bomb"
	case SoundFlagReveal:
		return "flag"
	case SoundGameComplete:
		return "complete"
	default:
		return "unknown"
	}
}
