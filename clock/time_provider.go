// Package clock supplies the time source used for animation timing
package clock

import "time"

// TimeProvider abstracts the wall clock so animations can be driven in tests
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider provides the real system time with monotonic clock readings
type RealTimeProvider struct{}

// NewRealTimeProvider creates a new monotonic time provider
func NewRealTimeProvider() *RealTimeProvider {
	return &RealTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
