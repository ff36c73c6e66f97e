// Package field stores the dense 2D grids the solver works on.
//
// Every grid carries a one-cell ghost ring on each side, so a W×H grid has an
// interior of (W-2)×(H-2) cells. Cells are kept in row-major order: cell
// (x, y) lives at index y*W + x, and vector grids interleave their x and y
// components at twice that index.
package field

import (
	"errors"
	"fmt"
)

var (
	// ErrTooSmall is returned when a grid would not have at least one interior cell.
	ErrTooSmall = errors.New("field: dimensions must be at least 3x3")
	// ErrDataLength is returned when a flat slice does not match the grid size.
	ErrDataLength = errors.New("field: data length does not match dimensions")
)

// Dims describes the size of a grid including its ghost ring.
type Dims struct {
	W int
	H int
}

// Validate reports whether the dimensions leave room for an interior.
func (d Dims) Validate() error {
	if d.W < 3 || d.H < 3 {
		return fmt.Errorf("%w: got %dx%d", ErrTooSmall, d.W, d.H)
	}
	return nil
}

// Cells returns W*H.
func (d Dims) Cells() int { return d.W * d.H }

// Inner returns the number of interior cells.
func (d Dims) Inner() int { return (d.W - 2) * (d.H - 2) }

// Index returns the row-major cell index for (x, y).
func (d Dims) Index(x, y int) int { return y*d.W + x }

// Interior reports whether (x, y) lies inside the ghost ring.
func (d Dims) Interior(x, y int) bool {
	return x >= 1 && x <= d.W-2 && y >= 1 && y <= d.H-2
}

// Contains reports whether (x, y) addresses any cell of the grid.
func (d Dims) Contains(x, y int) bool {
	return x >= 0 && x < d.W && y >= 0 && y < d.H
}

func (d Dims) String() string { return fmt.Sprintf("%dx%d", d.W, d.H) }

func checkLength(d Dims, components int, data []float64) error {
	if want := d.Cells() * components; len(data) != want {
		return fmt.Errorf("%w: got %d values, want %d for %s", ErrDataLength, len(data), want, d)
	}
	return nil
}

func mustMatch(a, b Dims) {
	if a != b {
		panic(fmt.Sprintf("field: dimension mismatch %s vs %s", a, b))
	}
}
