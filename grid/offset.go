package grid

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnsupportedGridSize is returned for row counts missing from the offset table
var ErrUnsupportedGridSize = errors.New("unsupported grid size")

// OffsetPair positions the grid anchor as fractions of the screen size
type OffsetPair struct {
	X, Y float64
}

// offsetTable maps row count to anchor fractions
// Taller towers anchor lower and further left to leave room for the climb
var offsetTable = map[int]OffsetPair{
	3:  {X: 0.30, Y: 0.72},
	6:  {X: 0.26, Y: 0.80},
	9:  {X: 0.22, Y: 0.86},
	12: {X: 0.18, Y: 0.90},
	15: {X: 0.14, Y: 0.93},
}

// Offset returns the anchor fractions for a grid of the given shape
// cols does not take part in the selection
func Offset(rows, cols int) (OffsetPair, error) {
	off, ok := offsetTable[rows]
	if !ok {
		return OffsetPair{}, fmt.Errorf("%w: %d rows x %d cols", ErrUnsupportedGridSize, rows, cols)
	}
	return off, nil
}

// SupportedRowCounts returns the row counts with a defined offset, ascending
func SupportedRowCounts() []int {
	out := make([]int, 0, len(offsetTable))
	for rows := range offsetTable {
		out = append(out, rows)
	}
	sort.Ints(out)
	return out
}

// IsSupported reports whether rows has an offset entry
func IsSupported(rows int) bool {
	_, ok := offsetTable[rows]
	return ok
}
