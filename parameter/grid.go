package parameter

// Grid stagger geometry, expressed as fractions of the cell size
const (
	// XRowShift moves each row to the right of the one below
	XRowShift = 0.5

	// YRowShift lifts each row above the one below
	YRowShift = 0.75

	// XGap is the horizontal space between neighbouring cells in a row, in terminal columns
	XGap = 1.0

	// YStep drops each column below its left neighbour, producing the diagonal cascade
	YStep = 0.125

	// CellAspect converts cell width to height; terminal glyphs are about twice as tall as wide
	CellAspect = 0.5

	// MinCellHeight keeps room for a border and one glyph row
	MinCellHeight = 3
)

// Cell size limits, in terminal columns
const (
	DefaultCellSize = 8
	MinCellSize     = 4
	MaxCellSize     = 16
)

// Row multiplier labels
const (
	// LabelGapX is the distance between the last cell of a row and its label
	LabelGapX = 2

	// LabelPrefix precedes the multiplier value
	LabelPrefix = "x"
)

// Supported grid shapes
const (
	DefaultRows = 9
	DefaultCols = 3
	MaxCols     = 8
)
