package core

import (
	"fmt"
	"strings"
)

// CellClass is the server classification of a single cell
type CellClass int

const (
	ClassHidden CellClass = iota
	ClassMine
	ClassSafe
)

const (
	classHiddenName = "HIDDEN"
	classMineName   = "MINE"
	classSafeName   = "SAFE"
)

// String returns the wire name of the class
func (c CellClass) String() string {
	switch c {
	case ClassMine:
		return classMineName
	case ClassSafe:
		return classSafeName
	default:
		return classHiddenName
	}
}

// ParseCellClass maps a wire name to a class, case-insensitive
func ParseCellClass(s string) (CellClass, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case classHiddenName, "":
		return ClassHidden, nil
	case classMineName:
		return ClassMine, nil
	case classSafeName:
		return ClassSafe, nil
	default:
		return ClassHidden, fmt.Errorf("unknown cell class %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (c CellClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *CellClass) UnmarshalText(text []byte) error {
	v, err := ParseCellClass(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// RevealedMatrix is the server view of the board
// Index 0 is the topmost visual row, the inverse of visual row numbering
type RevealedMatrix [][]CellClass

// MatrixRow converts a visual row to its matrix index
func MatrixRow(totalRows, visualRow int) int {
	return totalRows - (visualRow + 1)
}

// VisualRow converts a matrix index to its visual row
func VisualRow(totalRows, matrixRow int) int {
	return totalRows - (matrixRow + 1)
}

// Row returns the matrix row at index m, nil when out of range
func (m RevealedMatrix) Row(idx int) []CellClass {
	if idx < 0 || idx >= len(m) {
		return nil
	}
	return m[idx]
}

// At returns the class at matrix coordinates, ClassHidden when out of range
func (m RevealedMatrix) At(idx, col int) CellClass {
	row := m.Row(idx)
	if col < 0 || col >= len(row) {
		return ClassHidden
	}
	return row[col]
}

// Clone returns a deep copy
func (m RevealedMatrix) Clone() RevealedMatrix {
	if m == nil {
		return nil
	}
	out := make(RevealedMatrix, len(m))
	for i, row := range m {
		out[i] = append([]CellClass(nil), row...)
	}
	return out
}

// ParseRevealed builds a matrix from wire names, used by tests and fixtures
func ParseRevealed(rows [][]string) (RevealedMatrix, error) {
	out := make(RevealedMatrix, len(rows))
	for i, row := range rows {
		out[i] = make([]CellClass, len(row))
		for j, name := range row {
			c, err := ParseCellClass(name)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", i, j, err)
			}
			out[i][j] = c
		}
	}
	return out, nil
}
