package core

import "fmt"

// Pos addresses one grid cell. Row 0 is the bottom row
type Pos struct {
	Row, Col int
}

// ID returns the stable cell identifier
func (p Pos) ID() string {
	return fmt.Sprintf("cell-%d-%d", p.Row, p.Col)
}

// Point is a terminal coordinate
type Point struct {
	X, Y int
}

// Rect is an axis-aligned box in terminal cells
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) falls inside the rect
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Right returns the first column past the rect
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the first row past the rect
func (r Rect) Bottom() int {
	return r.Y + r.H
}
