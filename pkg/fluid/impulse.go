package fluid

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrOutsideInterior is returned when an impulse targets a ghost or
// out-of-range cell.
var ErrOutsideInterior = errors.New("fluid: cell outside interior")

// AddDensity adds amount to the current density at (x, y).
func (s *State) AddDensity(x, y int, amount float64) error {
	if !s.dims.Interior(x, y) {
		return fmt.Errorf("%w: (%d,%d) in %s", ErrOutsideInterior, x, y, s.dims)
	}
	s.Density().Add(x, y, amount)
	LimitScalar(s.Density())
	return nil
}

// AddVelocity adds v to the current velocity at (x, y).
func (s *State) AddVelocity(x, y int, v mgl64.Vec2) error {
	if !s.dims.Interior(x, y) {
		return fmt.Errorf("%w: (%d,%d) in %s", ErrOutsideInterior, x, y, s.dims)
	}
	s.Velocity().Add(x, y, v)
	LimitVector(s.Velocity(), true)
	return nil
}

// Splat adds density and velocity to every interior cell within radius of
// (cx, cy), weighted by exp(-3 d²/r²). Cells beyond the interior are skipped.
func (s *State) Splat(cx, cy float64, radius, density float64, v mgl64.Vec2) {
	if radius <= 0 {
		return
	}
	r2 := radius * radius
	x0 := max(1, int(math.Floor(cx-radius)))
	x1 := min(s.dims.W-2, int(math.Ceil(cx+radius)))
	y0 := max(1, int(math.Floor(cy-radius)))
	y1 := min(s.dims.H-2, int(math.Ceil(cy+radius)))

	dens, vel := s.Density(), s.Velocity()
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			d2 := dx*dx + dy*dy
			if d2 > r2 {
				continue
			}
			w := math.Exp(-3 * d2 / r2)
			dens.Add(x, y, density*w)
			vel.Add(x, y, v.Mul(w))
		}
	}
	LimitScalar(dens)
	LimitVector(vel, true)
}
