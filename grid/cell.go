package grid

import (
	"time"

	"github.com/lixenwraith/minetower/core"
)

// Animation names understood by the renderer
const (
	AnimBlast = "blast"
	AnimShake = "shake"
	AnimPulse = "pulse"
)

// CellState is the visual state of one cell
type CellState struct {
	Pressed  bool
	Mine     bool // clicked mine overlay
	Bomb     bool // revealed bomb overlay
	Blasted  bool
	Flag     bool // green safe marker
	Tinted   bool
	Animated bool // animated background, set only on the active row

	Animation      string
	AnimationStart time.Time
}

// Visual is the per-cell effect surface driven by the grid
type Visual interface {
	SetPressed(pressed bool)
	AddMineOverlay()
	AddBombOverlay()
	PlayBlast(now time.Time)
	AddGreenFlag()
	Reset()
	TriggerAnimation(name string, now time.Time)
	SwitchBackground(animated bool)
	SetTint(tinted bool)
}

// Cell is one grid square and its paired indicator
type Cell struct {
	pos       core.Pos
	id        string
	rect      core.Rect
	state     CellState
	indicator *Indicator
}

var _ Visual = (*Cell)(nil)

func newCell(pos core.Pos, rect core.Rect) *Cell {
	return &Cell{
		pos:  pos,
		id:   pos.ID(),
		rect: rect,
	}
}

// Pos returns the cell coordinates
func (c *Cell) Pos() core.Pos { return c.pos }

// ID returns the stable identifier
func (c *Cell) ID() string { return c.id }

// Rect returns the cell box
func (c *Cell) Rect() core.Rect { return c.rect }

// State returns a copy of the visual state
func (c *Cell) State() CellState { return c.state }

// Indicator returns the paired indicator
func (c *Cell) Indicator() *Indicator { return c.indicator }

func (c *Cell) SetPressed(pressed bool) {
	c.state.Pressed = pressed
}

func (c *Cell) AddMineOverlay() {
	c.state.Mine = true
}

func (c *Cell) AddBombOverlay() {
	c.state.Bomb = true
}

func (c *Cell) PlayBlast(now time.Time) {
	c.state.Blasted = true
	c.TriggerAnimation(AnimBlast, now)
}

func (c *Cell) AddGreenFlag() {
	c.state.Flag = true
}

// Reset returns the cell to its freshly built look
func (c *Cell) Reset() {
	c.state = CellState{}
}

func (c *Cell) TriggerAnimation(name string, now time.Time) {
	c.state.Animation = name
	c.state.AnimationStart = now
}

func (c *Cell) SwitchBackground(animated bool) {
	c.state.Animated = animated
}

func (c *Cell) SetTint(tinted bool) {
	c.state.Tinted = tinted
}

func (c *Cell) place(rect core.Rect) {
	c.rect = rect
	if c.indicator != nil {
		c.indicator.MoveTo(rect.X, rect.Y)
		c.indicator.Resize(rect.W, rect.H)
	}
}
