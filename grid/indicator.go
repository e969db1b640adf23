package grid

import "github.com/lixenwraith/minetower/core"

// TapFunc receives the bound cell of a tapped indicator
type TapFunc func(row, col int)

// Indicator is the clickable highlight over one cell
// Visible only on the active row; hover is cosmetic
type Indicator struct {
	pos       core.Pos
	rect      core.Rect
	visible   bool
	hovered   bool
	destroyed bool
	onTap     TapFunc
}

// NewIndicator creates a hidden indicator bound to pos
func NewIndicator(pos core.Pos, rect core.Rect, onTap TapFunc) *Indicator {
	return &Indicator{
		pos:   pos,
		rect:  rect,
		onTap: onTap,
	}
}

func (i *Indicator) Pos() core.Pos   { return i.pos }
func (i *Indicator) Rect() core.Rect { return i.rect }
func (i *Indicator) Visible() bool   { return i.visible }
func (i *Indicator) Hovered() bool   { return i.hovered }
func (i *Indicator) Destroyed() bool { return i.destroyed }

func (i *Indicator) Show() {
	if i.destroyed {
		return
	}
	i.visible = true
}

func (i *Indicator) Hide() {
	i.visible = false
	i.hovered = false
}

// Resize changes the hit area
func (i *Indicator) Resize(w, h int) {
	i.rect.W = w
	i.rect.H = h
}

// MoveTo repositions the hit area
func (i *Indicator) MoveTo(x, y int) {
	i.rect.X = x
	i.rect.Y = y
}

// SetHovered toggles the highlight; hidden indicators never hover
func (i *Indicator) SetHovered(hovered bool) {
	i.hovered = hovered && i.visible
}

// Contains reports whether (x, y) hits the indicator
func (i *Indicator) Contains(x, y int) bool {
	return i.rect.Contains(x, y)
}

// Destroy releases the callback; the indicator stays hidden afterwards
func (i *Indicator) Destroy() {
	i.destroyed = true
	i.visible = false
	i.hovered = false
	i.onTap = nil
}

// Tap fires the bound callback, returns false when nothing was bound
func (i *Indicator) Tap() bool {
	fn := i.tapFunc()
	if fn == nil {
		return false
	}
	fn(i.pos.Row, i.pos.Col)
	return true
}

func (i *Indicator) tapFunc() TapFunc {
	if i.destroyed {
		return nil
	}
	return i.onTap
}
