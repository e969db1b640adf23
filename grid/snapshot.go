package grid

import "github.com/lixenwraith/minetower/core"

// IndicatorView is a read-only copy of an indicator
type IndicatorView struct {
	Rect    core.Rect
	Visible bool
	Hovered bool
}

// CellView is a read-only copy of a cell and its indicator
type CellView struct {
	Pos       core.Pos
	ID        string
	Rect      core.Rect
	State     CellState
	Indicator IndicatorView
}

// Snapshot is a consistent copy of the grid for one frame
type Snapshot struct {
	Rows, Cols int
	CellSize   float64
	Cells      []CellView // row-major, row 0 first
	Labels     []Label
}

// At returns the view of (row, col); false outside the grid or on a destroyed grid
func (s Snapshot) At(row, col int) (CellView, bool) {
	if row < 0 || row >= s.Rows || col < 0 || col >= s.Cols {
		return CellView{}, false
	}
	i := row*s.Cols + col
	if i >= len(s.Cells) {
		return CellView{}, false
	}
	return s.Cells[i], true
}

// VisibleIndicators counts indicators currently shown
func (s Snapshot) VisibleIndicators() int {
	n := 0
	for _, c := range s.Cells {
		if c.Indicator.Visible {
			n++
		}
	}
	return n
}

// Snapshot copies the grid state under the read lock
func (g *Grid) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.destroyed {
		return Snapshot{}
	}
	s := Snapshot{
		Rows:     g.geom.rows,
		Cols:     g.geom.cols,
		CellSize: g.geom.cellSize,
	}

	s.Cells = make([]CellView, 0, g.geom.rows*g.geom.cols)
	for _, row := range g.cells {
		for _, c := range row {
			s.Cells = append(s.Cells, CellView{
				Pos:   c.pos,
				ID:    c.id,
				Rect:  c.rect,
				State: c.state,
				Indicator: IndicatorView{
					Rect:    c.indicator.rect,
					Visible: c.indicator.visible,
					Hovered: c.indicator.hovered,
				},
			})
		}
	}
	s.Labels = append([]Label(nil), g.labels...)
	return s
}
