// Package service defines the lifecycle of long-lived infrastructure (the adjudicator
// connection, the audio device) and the Hub that starts and stops it in dependency order.
package service

// Service is a long-lived subsystem managed by the Hub
//
// Lifecycle:
//  1. Construction
//  2. Init(args...) - configuration from the loaded config
//  3. Start() - open connections and devices
//  4. [runtime operation]
//  5. Stop() - release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init before this one
	Dependencies() []string

	// Init configures the service from service-specific args
	Init(args ...any) error

	// Start begins service operation
	// Called after all services have initialized
	Start() error

	// Stop releases resources; must be idempotent
	Stop() error
}
