// Package terrain turns a height grid and a terrain-type grid into a static
// list of colored world-space triangles.
package terrain

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Map shape errors. They are returned (wrapped) from NewMap and LoadMap and
// are meant to stop the program before the first frame.
var (
	ErrEmptyMap       = errors.New("terrain: map has no cells")
	ErrRaggedGrid     = errors.New("terrain: grid rows have different lengths")
	ErrShapeMismatch  = errors.New("terrain: height and type grids differ in shape")
	ErrNegativeHeight = errors.New("terrain: negative height")
	ErrNonASCIICode   = errors.New("terrain: type codes must be ASCII")
)

// HeightGrid maps (row, col) to a non-negative height in grid units.
type HeightGrid [][]int

// Rows returns the number of rows.
func (g HeightGrid) Rows() int { return len(g) }

// Cols returns the number of columns (of the first row).
func (g HeightGrid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// At returns the height at (row, col). Indices outside the grid clamp to the
// nearest edge sample, so the border of the terrain extends flat instead of
// dropping to zero. An empty grid reports 0.
func (g HeightGrid) At(row, col int) int {
	if len(g) == 0 {
		return 0
	}
	row = clampIndex(row, len(g))
	r := g[row]
	if len(r) == 0 {
		return 0
	}
	return r[clampIndex(col, len(r))]
}

// TypeGrid holds one terrain code per cell, one string per row. Codes are
// single ASCII bytes, so a row's length is its cell count.
type TypeGrid []string

// Rows returns the number of rows.
func (g TypeGrid) Rows() int { return len(g) }

// Cols returns the number of columns (of the first row).
func (g TypeGrid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// At returns the code at (row, col), or 0 when outside the grid.
func (g TypeGrid) At(row, col int) byte {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return 0
	}
	return g[row][col]
}

// Map is a validated pair of height and type grids of identical shape.
// Treat it as immutable once built.
type Map struct {
	Name    string
	Heights HeightGrid
	Types   TypeGrid
}

// NewMap validates the grids and returns a Map.
func NewMap(name string, heights HeightGrid, types TypeGrid) (*Map, error) {
	m := &Map{Name: name, Heights: heights, Types: types}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks that both grids are rectangular, non-empty, share a shape,
// hold no negative heights and use ASCII type codes only.
func (m *Map) Validate() error {
	rows, cols := m.Heights.Rows(), m.Heights.Cols()
	if rows == 0 || cols == 0 {
		return ErrEmptyMap
	}
	for r, row := range m.Heights {
		if len(row) != cols {
			return fmt.Errorf("heights row %d has %d cells, want %d: %w", r, len(row), cols, ErrRaggedGrid)
		}
		for c, h := range row {
			if h < 0 {
				return fmt.Errorf("heights[%d][%d] = %d: %w", r, c, h, ErrNegativeHeight)
			}
		}
	}
	if m.Types.Rows() != rows {
		return fmt.Errorf("types has %d rows, heights has %d: %w", m.Types.Rows(), rows, ErrShapeMismatch)
	}
	for r, row := range m.Types {
		for c := range len(row) {
			if row[c] >= utf8.RuneSelf {
				return fmt.Errorf("types row %d byte %d = %#x: %w", r, c, row[c], ErrNonASCIICode)
			}
		}
		if len(row) != cols {
			return fmt.Errorf("types row %d has %d cells, heights has %d: %w", r, len(row), cols, ErrShapeMismatch)
		}
	}
	return nil
}

// Size returns the grid dimensions.
func (m *Map) Size() (rows, cols int) {
	return m.Heights.Rows(), m.Heights.Cols()
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
