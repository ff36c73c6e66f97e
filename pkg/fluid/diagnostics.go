package fluid

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrNotFinite is returned by CheckFinite when a field holds NaN or Inf.
var ErrNotFinite = errors.New("fluid: non-finite value")

// Stats summarises the interior of the current fields.
type Stats struct {
	TotalDensity  float64 `json:"total_density"`
	MinDensity    float64 `json:"min_density"`
	MaxDensity    float64 `json:"max_density"`
	KineticEnergy float64 `json:"kinetic_energy"`
	MaxSpeed      float64 `json:"max_speed"`
	MaxDivergence float64 `json:"max_divergence"`
}

// Stats computes summary values over the interior cells.
func (s *State) Stats() Stats {
	d := s.dims
	dens := s.Density().Values()
	vel := s.Velocity().Values()

	st := Stats{MinDensity: math.Inf(1), MaxDensity: math.Inf(-1)}
	for y := 1; y <= d.H-2; y++ {
		row := dens[y*d.W+1 : y*d.W+d.W-1]
		st.TotalDensity += floats.Sum(row)
		st.MinDensity = math.Min(st.MinDensity, floats.Min(row))
		st.MaxDensity = math.Max(st.MaxDensity, floats.Max(row))

		vrow := vel[2*(y*d.W+1) : 2*(y*d.W+d.W-1)]
		st.KineticEnergy += 0.5 * floats.Dot(vrow, vrow)
		for i := 0; i < len(vrow); i += 2 {
			st.MaxSpeed = math.Max(st.MaxSpeed, math.Hypot(vrow[i], vrow[i+1]))
		}
	}
	st.MaxDivergence = MaxDivergence(s.Velocity().Values(), d.W, d.H)
	return st
}

// MaxDivergence returns the largest central-difference divergence magnitude
// over the interior of an interleaved w×h velocity grid.
func MaxDivergence(vel []float64, w, h int) float64 {
	var worst float64
	for y := 1; y <= h-2; y++ {
		for x := 1; x <= w-2; x++ {
			i := y*w + x
			div := 0.5 * ((vel[2*(i+1)] - vel[2*(i-1)]) + (vel[2*(i+w)+1] - vel[2*(i-w)+1]))
			worst = math.Max(worst, math.Abs(div))
		}
	}
	return worst
}

// CheckFinite reports whether any current density or velocity value is NaN or
// infinite.
func (s *State) CheckFinite() error {
	for name, values := range map[string][]float64{
		"density":  s.Density().Values(),
		"velocity": s.Velocity().Values(),
	} {
		if floats.HasNaN(values) {
			return fmt.Errorf("%w: NaN in %s", ErrNotFinite, name)
		}
		for i, v := range values {
			if math.IsInf(v, 0) {
				return fmt.Errorf("%w: Inf in %s at %d", ErrNotFinite, name, i)
			}
		}
	}
	return nil
}
