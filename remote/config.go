package remote

import (
	"time"

	"github.com/lixenwraith/minetower/parameter"
)

// Config holds adjudicator connection settings
type Config struct {
	// URL is the websocket endpoint, ws:// or wss://
	URL string

	// Timing
	DialTimeout    time.Duration
	RequestTimeout time.Duration
	WriteTimeout   time.Duration

	// Buffer sizes, zero uses the websocket defaults
	ReadBufferSize  int
	WriteBufferSize int
}

// DefaultConfig returns local development defaults
func DefaultConfig() Config {
	return Config{
		URL:             parameter.DefaultServerURL,
		DialTimeout:     parameter.DefaultDialTimeout,
		RequestTimeout:  parameter.DefaultRequestTimeout,
		WriteTimeout:    parameter.DefaultWriteTimeout,
		ReadBufferSize:  16 * 1024,
		WriteBufferSize: 4 * 1024,
	}
}

// withDefaults fills unset timings
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DialTimeout <= 0 {
		c.DialTimeout = d.DialTimeout
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = d.RequestTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	return c
}
