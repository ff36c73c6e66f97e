package fluid

import "stable-fluids/pkg/field"

// Diffuser spreads a field implicitly so large rates and time steps stay
// stable.
type Diffuser struct {
	solver *LinearSolver
}

// NewDiffuser returns a Diffuser backed by the shared solver.
func NewDiffuser(solver *LinearSolver) *Diffuser {
	return &Diffuser{solver: solver}
}

// Coefficients returns the Jacobi weights for the given rate and time step.
func (d *Diffuser) Coefficients(rate, dt float64) (a, c float64) {
	a = dt * rate * float64(d.solver.Dims().Inner())
	return a, 1 + 6*a
}

// DiffuseScalar solves for x given the previous values x0.
func (d *Diffuser) DiffuseScalar(x, x0 *field.Scalar, rate, dt float64, iterations int) {
	a, c := d.Coefficients(rate, dt)
	x.CopyFrom(x0)
	d.solver.SolveScalar(x, x0, a, c, iterations, LimitScalar)
}

// DiffuseVector solves for a velocity field x given the previous velocity x0.
func (d *Diffuser) DiffuseVector(x, x0 *field.Vector, rate, dt float64, iterations int) {
	a, c := d.Coefficients(rate, dt)
	x.CopyFrom(x0)
	d.solver.SolveVector(x, x0, a, c, iterations, limitVelocity)
}

func limitVelocity(v *field.Vector) { LimitVector(v, true) }
