package render

import (
	"time"

	"github.com/lixenwraith/minetower/grid"
	"github.com/lixenwraith/minetower/hud"
)

// RenderContext provides frame state for renderers, passed by value
type RenderContext struct {
	Now time.Time

	// Screen dimensions (terminal size)
	ScreenWidth  int
	ScreenHeight int

	// Grid copy taken at frame start
	Grid grid.Snapshot

	// Session state
	Started    bool
	CurrentRow int

	// HUD
	Buttons []hud.ButtonView
	Status  string
	Tone    hud.Tone
	Muted   bool

	// Forward movement progress in [0, 1]; only meaningful when Forwarding
	Forwarding bool
	Forward    float64
}

// IsActiveRow reports whether row is the one awaiting a click
func (rc *RenderContext) IsActiveRow(row int) bool {
	return rc.Started && row == rc.CurrentRow
}
