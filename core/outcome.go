package core

// Outcome is the adjudication of one clicked cell
// Response carries the transport payload for logging; the core only reads HitMine
type Outcome struct {
	HitMine  bool
	Response any
}
