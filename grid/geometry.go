package grid

import (
	"math"

	"github.com/lixenwraith/minetower/core"
	"github.com/lixenwraith/minetower/parameter"
)

// geometry computes the staggered layout from screen size and cell size
type geometry struct {
	width, height int
	rows, cols    int
	cellSize      float64
	baseX, baseY  float64
	offset        OffsetPair
}

// anchor is the top-left of cell (0, 0)
func (g geometry) anchor() (float64, float64) {
	return float64(g.width)*g.offset.X + g.baseX, float64(g.height)*g.offset.Y + g.baseY
}

// cellRect places one cell: rows climb up and right, columns cascade right and down
func (g geometry) cellRect(row, col int) core.Rect {
	ax, ay := g.anchor()
	rowX := ax + float64(row)*parameter.XRowShift*g.cellSize
	rowY := ay - float64(row)*parameter.YRowShift*g.cellSize

	x := rowX + float64(col)*(g.cellSize+parameter.XGap)
	y := rowY + float64(col)*parameter.YStep*g.cellSize

	return core.Rect{
		X: round(x),
		Y: round(y),
		W: round(g.cellSize),
		H: cellHeight(g.cellSize),
	}
}

// labelPoint places a row label right of the row's last column
func (g geometry) labelPoint(row int) core.Point {
	last := g.cellRect(row, g.cols-1)
	return core.Point{
		X: last.Right() + parameter.LabelGapX,
		Y: last.Y + last.H/2,
	}
}

// bounds returns the bounding box of every cell plus label text width
func (g geometry) bounds(labelWidth int) core.Rect {
	minX, minY := math.MaxInt, math.MaxInt
	maxX, maxY := math.MinInt, math.MinInt
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			rect := g.cellRect(r, c)
			minX = min(minX, rect.X)
			minY = min(minY, rect.Y)
			maxX = max(maxX, rect.Right())
			maxY = max(maxY, rect.Bottom())
		}
		if labelWidth > 0 {
			p := g.labelPoint(r)
			maxX = max(maxX, p.X+labelWidth)
		}
	}
	return core.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

func cellHeight(cellSize float64) int {
	return max(parameter.MinCellHeight, round(cellSize*parameter.CellAspect))
}

func round(v float64) int {
	return int(math.Round(v))
}

// FitCellSize returns the largest cell size whose layout fits a width x height area
// Falls back to MinCellSize when nothing fits; the renderer clips the overflow
func FitCellSize(width, height, rows, cols int, labelWidth int) (float64, error) {
	off, err := Offset(rows, cols)
	if err != nil {
		return 0, err
	}
	for size := parameter.MaxCellSize; size >= parameter.MinCellSize; size-- {
		g := geometry{
			width:    width,
			height:   height,
			rows:     rows,
			cols:     cols,
			cellSize: float64(size),
			offset:   off,
		}
		b := g.bounds(labelWidth)
		if b.X >= 0 && b.Y >= 0 && b.Right() <= width && b.Bottom() <= height {
			return float64(size), nil
		}
	}
	return parameter.MinCellSize, nil
}
