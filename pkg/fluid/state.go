// Package fluid implements a 2D stable-fluids solver: semi-Lagrangian
// advection, implicit diffusion and pressure projection on a grid with a
// one-cell ghost ring.
package fluid

import (
	"errors"
	"fmt"
	"math"

	"stable-fluids/pkg/field"
)

// ErrInvalidConfig wraps every configuration problem reported by New.
var ErrInvalidConfig = errors.New("fluid: invalid config")

// Config describes a fluid state.
type Config struct {
	Dims          field.Dims
	Viscosity     float64
	DiffusionRate float64
	Iterations    int
	Diffuse       bool
	Project       bool
}

// DefaultConfig returns a 128x128 grid with both optional passes enabled.
func DefaultConfig() Config {
	return Config{
		Dims:          field.Dims{W: 128, H: 128},
		Viscosity:     1e-7,
		DiffusionRate: 1e-7,
		Iterations:    20,
		Diffuse:       true,
		Project:       true,
	}
}

// Validate checks the config without allocating.
func (c Config) Validate() error {
	if err := c.Dims.Validate(); err != nil {
		return err
	}
	if c.Viscosity < 0 || math.IsNaN(c.Viscosity) {
		return fmt.Errorf("%w: viscosity %v", ErrInvalidConfig, c.Viscosity)
	}
	if c.DiffusionRate < 0 || math.IsNaN(c.DiffusionRate) {
		return fmt.Errorf("%w: diffusion rate %v", ErrInvalidConfig, c.DiffusionRate)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("%w: iterations %d", ErrInvalidConfig, c.Iterations)
	}
	return nil
}

// State owns the velocity and density fields of one simulation. Each field
// has two buffers; front selects which of them is current.
type State struct {
	dims          field.Dims
	velocity      [2]*field.Vector
	density       [2]*field.Scalar
	front         int
	viscosity     float64
	diffusionRate float64

	sim   *Simulator
	steps int
}

// New allocates a zeroed State.
func New(cfg Config) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	st := &State{
		dims:          cfg.Dims,
		viscosity:     cfg.Viscosity,
		diffusionRate: cfg.DiffusionRate,
	}
	for i := range st.velocity {
		v, err := field.NewVector(cfg.Dims)
		if err != nil {
			return nil, err
		}
		s, err := field.NewScalar(cfg.Dims)
		if err != nil {
			return nil, err
		}
		st.velocity[i] = v
		st.density[i] = s
	}
	sim, err := NewSimulator(cfg.Dims, cfg.Iterations)
	if err != nil {
		return nil, err
	}
	sim.Diffuse = cfg.Diffuse
	sim.Project = cfg.Project
	st.sim = sim
	return st, nil
}

// Step advances the simulation by dt. dt must be finite and non-negative.
func (s *State) Step(dt float64) {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		panic(fmt.Sprintf("fluid: invalid time step %v", dt))
	}
	s.sim.Simulate(s, dt)
	s.steps++
}

func (s *State) swap() { s.front ^= 1 }

// Dims returns the grid size.
func (s *State) Dims() field.Dims { return s.dims }

// Steps returns the number of completed steps.
func (s *State) Steps() int { return s.steps }

// Simulator exposes the pass sequencer so callers can toggle passes.
func (s *State) Simulator() *Simulator { return s.sim }

// Velocity returns the current velocity buffer.
func (s *State) Velocity() *field.Vector { return s.velocity[s.front] }

// PreviousVelocity returns the velocity buffer from the previous step.
func (s *State) PreviousVelocity() *field.Vector { return s.velocity[s.front^1] }

// Density returns the current density buffer.
func (s *State) Density() *field.Scalar { return s.density[s.front] }

// PreviousDensity returns the density buffer from the previous step.
func (s *State) PreviousDensity() *field.Scalar { return s.density[s.front^1] }

// VelocityValues returns an interleaved row-major copy of the current velocity.
func (s *State) VelocityValues() []float64 { return s.Velocity().Snapshot() }

// DensityValues returns a row-major copy of the current density.
func (s *State) DensityValues() []float64 { return s.Density().Snapshot() }

// Viscosity returns the velocity diffusion rate.
func (s *State) Viscosity() float64 { return s.viscosity }

// SetViscosity updates the velocity diffusion rate. Negative values are ignored.
func (s *State) SetViscosity(v float64) {
	if v >= 0 {
		s.viscosity = v
	}
}

// DiffusionRate returns the density diffusion rate.
func (s *State) DiffusionRate() float64 { return s.diffusionRate }

// SetDiffusionRate updates the density diffusion rate. Negative values are ignored.
func (s *State) SetDiffusionRate(v float64) {
	if v >= 0 {
		s.diffusionRate = v
	}
}

// LoadDensity replaces the current density with a row-major slice and
// resolves its ghost ring.
func (s *State) LoadDensity(data []float64) error {
	if err := s.Density().Load(data); err != nil {
		return err
	}
	LimitScalar(s.Density())
	return nil
}

// LoadVelocity replaces the current velocity with an interleaved row-major
// slice and resolves its ghost ring.
func (s *State) LoadVelocity(data []float64) error {
	if err := s.Velocity().Load(data); err != nil {
		return err
	}
	LimitVector(s.Velocity(), true)
	return nil
}

// Reset zeroes every buffer and the step counter.
func (s *State) Reset() {
	for i := range s.velocity {
		s.velocity[i].Fill([2]float64{})
		s.density[i].Fill(0)
	}
	s.front = 0
	s.steps = 0
}
