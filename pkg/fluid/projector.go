package fluid

import "stable-fluids/pkg/field"

// Projector removes the divergent part of a velocity field by solving a
// Poisson equation for pressure and subtracting its gradient.
type Projector struct {
	solver     *LinearSolver
	divergence *field.Scalar
	pressure   *field.Scalar
}

// NewProjector allocates the divergence and pressure grids.
func NewProjector(solver *LinearSolver) (*Projector, error) {
	div, err := field.NewScalar(solver.Dims())
	if err != nil {
		return nil, err
	}
	p, err := field.NewScalar(solver.Dims())
	if err != nil {
		return nil, err
	}
	return &Projector{solver: solver, divergence: div, pressure: p}, nil
}

// Divergence exposes the divergence computed by the last Project call.
func (pr *Projector) Divergence() *field.Scalar { return pr.divergence }

// Pressure exposes the pressure solved by the last Project call.
func (pr *Projector) Pressure() *field.Scalar { return pr.pressure }

// Project makes vel approximately divergence free in place. On return prev
// holds the divergence in its x component and the pressure in its y component.
func (pr *Projector) Project(vel, prev *field.Vector, iterations int) {
	pr.initialize(vel)
	pr.solver.SolveScalar(pr.pressure, pr.divergence, 1, 6, iterations, LimitScalar)
	pr.subtractGradient(vel)
	pr.propagate(prev)
}

func (pr *Projector) initialize(vel *field.Vector) {
	d := vel.Dims()
	v, div := vel.Values(), pr.divergence.Values()
	parallelRows(1, d.H-1, func(y int) {
		for x := 1; x <= d.W-2; x++ {
			i := y*d.W + x
			du := v[2*(i+1)] - v[2*(i-1)]
			dv := v[2*(i+d.W)+1] - v[2*(i-d.W)+1]
			div[i] = -0.5 * (du + dv)
		}
	})
	LimitScalar(pr.divergence)
	pr.pressure.Fill(0)
}

func (pr *Projector) subtractGradient(vel *field.Vector) {
	d := vel.Dims()
	v, p := vel.Values(), pr.pressure.Values()
	parallelRows(1, d.H-1, func(y int) {
		for x := 1; x <= d.W-2; x++ {
			i := y*d.W + x
			v[2*i] -= 0.5 * (p[i+1] - p[i-1])
			v[2*i+1] -= 0.5 * (p[i+d.W] - p[i-d.W])
		}
	})
	LimitVector(vel, true)
}

func (pr *Projector) propagate(prev *field.Vector) {
	out, div, p := prev.Values(), pr.divergence.Values(), pr.pressure.Values()
	for i := range div {
		out[2*i] = div[i]
		out[2*i+1] = p[i]
	}
}
