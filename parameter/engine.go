package parameter

import "time"

// Frame loop timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// EventChannelSize buffers terminal events between the poller and the loop
	EventChannelSize = 256
)

// Animation timing
const (
	// ForwardMovementDuration is the climb transition between rows
	ForwardMovementDuration = 600 * time.Millisecond

	// BlastDuration is the length of the blast frame sequence
	BlastDuration = 500 * time.Millisecond

	// NamedAnimationDuration bounds one-shot cell animations (shake, pulse)
	NamedAnimationDuration = 400 * time.Millisecond

	// BackgroundPulsePeriod is the shimmer cycle of an animated row background
	BackgroundPulsePeriod = 1200 * time.Millisecond

	// ButtonHideDuration is how long start/collect stay hidden after a round ends
	ButtonHideDuration = 1 * time.Second
)

// Remote channel defaults
const (
	DefaultServerURL      = "ws://127.0.0.1:8765/mines"
	DefaultRequestTimeout = 10 * time.Second
	DefaultDialTimeout    = 5 * time.Second
	DefaultWriteTimeout   = 5 * time.Second
)

// Logging
const (
	LogDirName  = "logs"
	LogFileName = "minetower.log"

	// MaxLogSize triggers rotation of the previous session's log file
	MaxLogSize = 10 * 1024 * 1024
)
