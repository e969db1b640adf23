// Package hud holds the controls surrounding the grid: the container input gate,
// the start and collect buttons, the status line and the animation phase that
// ties them together.
package hud

import "sync/atomic"

// Gate is the container-level input switch of the grid
// Zero value is disabled
type Gate struct {
	enabled atomic.Bool
}

// NewGate creates an enabled gate
func NewGate() *Gate {
	g := &Gate{}
	g.enabled.Store(true)
	return g
}

func (g *Gate) DisableContainer() { g.enabled.Store(false) }
func (g *Gate) EnableContainer()  { g.enabled.Store(true) }
func (g *Gate) Enabled() bool     { return g.enabled.Load() }
