// Package grid builds the staggered tower of cells and their indicators and exposes
// the by-position and by-row control surface used by the click orchestrator.
//
// Rows are numbered bottom-up: row 0 is nearest the player. Every mutator is a
// no-op for coordinates outside the grid. The grid only changes visuals; game
// state lives in the session.
package grid

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lixenwraith/minetower/clock"
	"github.com/lixenwraith/minetower/core"
)

// ErrInvalidDimensions is returned for non-positive sizes or counts
var ErrInvalidDimensions = errors.New("invalid grid dimensions")

// Options configures a grid build
type Options struct {
	// Width and Height are the drawable area in terminal cells
	Width, Height int

	Rows, Cols int

	// CellSize is the cell width in terminal columns; zero fits the area
	CellSize float64

	// BaseX and BaseY shift the computed anchor
	BaseX, BaseY float64

	// Multipliers holds one reward multiplier per row, bottom row first; optional
	Multipliers []decimal.Decimal

	// OnTap is bound to every indicator; optional
	OnTap TapFunc

	Clock  clock.TimeProvider
	Logger *zap.Logger
}

// Grid owns the cells, indicators and row labels of one tower
type Grid struct {
	mu sync.RWMutex

	geom   geometry
	cells  [][]*Cell // [row][col]
	labels []Label

	clock     clock.TimeProvider
	log       *zap.Logger
	destroyed bool
}

// New builds a rows x cols grid; every indicator starts hidden
func New(opts Options) (*Grid, error) {
	if opts.Rows <= 0 || opts.Cols <= 0 || opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d cells on %dx%d", ErrInvalidDimensions, opts.Rows, opts.Cols, opts.Width, opts.Height)
	}
	if len(opts.Multipliers) > 0 && len(opts.Multipliers) != opts.Rows {
		return nil, fmt.Errorf("%w: %d multipliers for %d rows", ErrInvalidDimensions, len(opts.Multipliers), opts.Rows)
	}

	off, err := Offset(opts.Rows, opts.Cols)
	if err != nil {
		return nil, err
	}

	cellSize := opts.CellSize
	if cellSize <= 0 {
		if cellSize, err = FitCellSize(opts.Width, opts.Height, opts.Rows, opts.Cols, labelWidth(opts.Multipliers)); err != nil {
			return nil, err
		}
	}

	g := &Grid{
		geom: geometry{
			width:    opts.Width,
			height:   opts.Height,
			rows:     opts.Rows,
			cols:     opts.Cols,
			cellSize: cellSize,
			baseX:    opts.BaseX,
			baseY:    opts.BaseY,
			offset:   off,
		},
		clock: opts.Clock,
		log:   opts.Logger,
	}
	if g.clock == nil {
		g.clock = clock.NewRealTimeProvider()
	}
	if g.log == nil {
		g.log = zap.NewNop()
	}

	g.cells = make([][]*Cell, opts.Rows)
	for r := 0; r < opts.Rows; r++ {
		g.cells[r] = make([]*Cell, opts.Cols)
		for c := 0; c < opts.Cols; c++ {
			pos := core.Pos{Row: r, Col: c}
			rect := g.geom.cellRect(r, c)
			cell := newCell(pos, rect)
			cell.indicator = NewIndicator(pos, rect, opts.OnTap)
			g.cells[r][c] = cell
		}
	}

	if len(opts.Multipliers) > 0 {
		g.labels = make([]Label, opts.Rows)
		for r, v := range opts.Multipliers {
			g.labels[r] = Label{Row: r, Value: v, Pos: g.geom.labelPoint(r)}
		}
	}

	g.log.Debug("grid built",
		zap.Int("rows", opts.Rows),
		zap.Int("cols", opts.Cols),
		zap.Float64("cellSize", cellSize),
	)
	return g, nil
}

// cell returns nil when out of range; caller holds the lock
func (g *Grid) cell(row, col int) *Cell {
	if g.destroyed || row < 0 || row >= g.geom.rows || col < 0 || col >= g.geom.cols {
		return nil
	}
	return g.cells[row][col]
}

// row returns nil when out of range; caller holds the lock
func (g *Grid) row(row int) []*Cell {
	if g.destroyed || row < 0 || row >= g.geom.rows {
		return nil
	}
	return g.cells[row]
}

// withCell applies fn to one cell under the write lock
func (g *Grid) withCell(row, col int, fn func(*Cell)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if c := g.cell(row, col); c != nil {
		fn(c)
	}
}

// withRow applies fn to every cell of a row under the write lock
func (g *Grid) withRow(row int, fn func(*Cell)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range g.row(row) {
		fn(c)
	}
}

// ===== Single-cell operations =====

func (g *Grid) SetPressed(row, col int, pressed bool) {
	g.withCell(row, col, func(c *Cell) { c.SetPressed(pressed) })
}

func (g *Grid) AddMineOverlay(row, col int) {
	g.withCell(row, col, (*Cell).AddMineOverlay)
}

func (g *Grid) AddBombOverlay(row, col int) {
	g.withCell(row, col, (*Cell).AddBombOverlay)
}

func (g *Grid) PlayBlast(row, col int) {
	now := g.clock.Now()
	g.withCell(row, col, func(c *Cell) { c.PlayBlast(now) })
}

func (g *Grid) AddGreenFlag(row, col int) {
	g.withCell(row, col, (*Cell).AddGreenFlag)
}

// ResetCell restores the initial look of one cell and hides its indicator
func (g *Grid) ResetCell(row, col int) {
	g.withCell(row, col, resetCell)
}

// TriggerAnimation starts a named one-shot animation on a cell
func (g *Grid) TriggerAnimation(row, col int, name string) {
	now := g.clock.Now()
	g.withCell(row, col, func(c *Cell) { c.TriggerAnimation(name, now) })
}

// ===== Single-indicator operations =====

func (g *Grid) ShowIndicator(row, col int) {
	g.withCell(row, col, func(c *Cell) { c.indicator.Show() })
}

func (g *Grid) HideIndicator(row, col int) {
	g.withCell(row, col, func(c *Cell) { c.indicator.Hide() })
}

// IndicatorAt returns the visible indicator under (x, y)
func (g *Grid) IndicatorAt(x, y int) (core.Pos, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if ind := g.indicatorAt(x, y); ind != nil {
		return ind.pos, true
	}
	return core.Pos{}, false
}

// TapAt fires the visible indicator under (x, y); the callback runs outside the lock
func (g *Grid) TapAt(x, y int) bool {
	g.mu.RLock()
	var fn TapFunc
	var pos core.Pos
	if ind := g.indicatorAt(x, y); ind != nil {
		fn = ind.tapFunc()
		pos = ind.pos
	}
	g.mu.RUnlock()

	if fn == nil {
		return false
	}
	fn(pos.Row, pos.Col)
	return true
}

// SetHover highlights the visible indicator under (x, y) and clears the rest
func (g *Grid) SetHover(x, y int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	hit := g.indicatorAt(x, y)
	for _, row := range g.cells {
		for _, c := range row {
			c.indicator.SetHovered(c.indicator == hit)
		}
	}
}

// indicatorAt scans top rows first so overlapping boxes resolve to the drawn one
func (g *Grid) indicatorAt(x, y int) *Indicator {
	if g.destroyed {
		return nil
	}
	for r := g.geom.rows - 1; r >= 0; r-- {
		for _, c := range g.cells[r] {
			if c.indicator.Visible() && c.indicator.Contains(x, y) {
				return c.indicator
			}
		}
	}
	return nil
}

// ===== Row operations =====

// SetRowPressed presses or releases every cell of a row
func (g *Grid) SetRowPressed(row int, pressed bool) {
	g.withRow(row, func(c *Cell) { c.SetPressed(pressed) })
}

func (g *Grid) ShowRowIndicators(row int) {
	g.withRow(row, func(c *Cell) { c.indicator.Show() })
}

func (g *Grid) HideRowIndicators(row int) {
	g.withRow(row, func(c *Cell) { c.indicator.Hide() })
}

// SetRowBackground switches a row between the static and animated look
func (g *Grid) SetRowBackground(row int, animated bool) {
	g.withRow(row, func(c *Cell) { c.SwitchBackground(animated) })
}

// SetRowTint applies or clears the darker tint on a row
func (g *Grid) SetRowTint(row int, tinted bool) {
	g.withRow(row, func(c *Cell) { c.SetTint(tinted) })
}

// ResetRow restores every cell of a row and hides its indicators
func (g *Grid) ResetRow(row int) {
	g.withRow(row, resetCell)
}

// UpdateTints tints rows strictly above currentRow and clears the rest
// An out-of-range currentRow, e.g. -1, clears every tint
func (g *Grid) UpdateTints(currentRow int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.destroyed {
		return
	}
	inRange := currentRow >= 0 && currentRow < g.geom.rows
	for r, row := range g.cells {
		tinted := inRange && r > currentRow
		for _, c := range row {
			c.SetTint(tinted)
		}
	}
}

// ===== Grid-wide operations =====

// Reset restores every cell and hides every indicator
func (g *Grid) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.destroyed {
		return
	}
	for _, row := range g.cells {
		for _, c := range row {
			resetCell(c)
		}
	}
}

// Dimensions returns the row and column counts
func (g *Grid) Dimensions() (rows, cols int) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.geom.rows, g.geom.cols
}

// CellSize returns the current cell width
func (g *Grid) CellSize() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.geom.cellSize
}

// Resize lays the grid out for a new area; without cellSize the area is fitted
func (g *Grid) Resize(width, height int, cellSize ...float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: resize to %dx%d", ErrInvalidDimensions, width, height)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.destroyed {
		return nil
	}

	size := 0.0
	if len(cellSize) > 0 {
		size = cellSize[0]
	}
	if size <= 0 {
		values := make([]decimal.Decimal, len(g.labels))
		for i, l := range g.labels {
			values[i] = l.Value
		}
		fitted, err := FitCellSize(width, height, g.geom.rows, g.geom.cols, labelWidth(values))
		if err != nil {
			return err
		}
		size = fitted
	}

	g.geom.width = width
	g.geom.height = height
	g.geom.cellSize = size

	for r, row := range g.cells {
		for c, cell := range row {
			cell.place(g.geom.cellRect(r, c))
		}
	}
	for i := range g.labels {
		g.labels[i].Pos = g.geom.labelPoint(g.labels[i].Row)
	}

	g.log.Debug("grid resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Float64("cellSize", size),
	)
	return nil
}

// SetMultipliers replaces the row labels; an empty slice removes them
func (g *Grid) SetMultipliers(values []decimal.Decimal) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(values) > 0 && len(values) != g.geom.rows {
		return fmt.Errorf("%w: %d multipliers for %d rows", ErrInvalidDimensions, len(values), g.geom.rows)
	}
	if len(values) == 0 {
		g.labels = nil
		return nil
	}
	g.labels = make([]Label, len(values))
	for r, v := range values {
		g.labels[r] = Label{Row: r, Value: v, Pos: g.geom.labelPoint(r)}
	}
	return nil
}

// Destroy tears down cells and indicators together
func (g *Grid) Destroy() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.destroyed {
		return
	}
	for _, row := range g.cells {
		for _, c := range row {
			c.indicator.Destroy()
		}
	}
	g.destroyed = true
}

// Destroyed reports whether Destroy ran
func (g *Grid) Destroyed() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.destroyed
}

func resetCell(c *Cell) {
	c.Reset()
	c.indicator.Hide()
}
