package fluid

import "stable-fluids/pkg/field"

// Simulator sequences the passes of one time step. It owns the solver scratch
// and projector grids, so one Simulator serves exactly one State size.
type Simulator struct {
	solver    *LinearSolver
	diffuser  *Diffuser
	projector *Projector
	advector  Advector

	// Iterations is the number of Jacobi sweeps used by diffusion and
	// projection.
	Iterations int
	// Diffuse enables the implicit viscosity and density diffusion pass.
	Diffuse bool
	// Project enables the pressure projection pass.
	Project bool
}

// NewSimulator builds a Simulator for grids of the given size with both
// optional passes enabled.
func NewSimulator(d field.Dims, iterations int) (*Simulator, error) {
	solver, err := NewLinearSolver(d)
	if err != nil {
		return nil, err
	}
	projector, err := NewProjector(solver)
	if err != nil {
		return nil, err
	}
	return &Simulator{
		solver:     solver,
		diffuser:   NewDiffuser(solver),
		projector:  projector,
		Iterations: iterations,
		Diffuse:    true,
		Project:    true,
	}, nil
}

// Projector exposes the pressure projection working state.
func (s *Simulator) Projector() *Projector { return s.projector }

// Simulate advances st by dt.
//
// The current buffers become the sources of this step. Diffusion writes into
// the other buffers and the roles are exchanged again, projection corrects the
// advection source in place, and advection finally writes the current buffers
// from the previous ones.
func (s *Simulator) Simulate(st *State, dt float64) {
	st.swap()

	if s.Diffuse {
		s.diffuser.DiffuseVector(st.Velocity(), st.PreviousVelocity(), st.viscosity, dt, s.Iterations)
		s.diffuser.DiffuseScalar(st.Density(), st.PreviousDensity(), st.diffusionRate, dt, s.Iterations)
		st.swap()
	}

	if s.Project {
		s.projector.Project(st.PreviousVelocity(), st.Velocity(), s.Iterations)
	}

	s.advector.AdvectVectorWithBoundaries(st.Velocity(), st.PreviousVelocity(), st.PreviousVelocity(), dt, true)
	s.advector.AdvectScalarWithBoundaries(st.Density(), st.PreviousDensity(), st.Velocity(), dt)
}
