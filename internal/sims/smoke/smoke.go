// Package smoke wraps the fluid solver into named scenarios that seed the
// grid and keep injecting density and momentum while they run.
package smoke

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"stable-fluids/internal/core"
	pcore "stable-fluids/pkg/core"
	"stable-fluids/pkg/field"
	"stable-fluids/pkg/fluid"
)

// Smoke is a fluid scenario driven by a preset.
type Smoke struct {
	cfg    Config
	state  *fluid.State
	preset preset
	rng    *pcore.RNG
	tick   int
}

// New builds a scenario from cfg.
func New(cfg Config) (*Smoke, error) {
	p, ok := presets[cfg.Preset]
	if !ok {
		return nil, fmt.Errorf("smoke: unknown preset %q", cfg.Preset)
	}
	st, err := fluid.New(fluid.Config{
		Dims:          field.Dims{W: cfg.Width, H: cfg.Height},
		Viscosity:     cfg.Params.Viscosity,
		DiffusionRate: cfg.Params.Diffusion,
		Iterations:    cfg.Params.Iterations,
		Diffuse:       cfg.Params.Diffuse,
		Project:       cfg.Params.Project,
	})
	if err != nil {
		return nil, fmt.Errorf("smoke: %w", err)
	}
	s := &Smoke{cfg: cfg, state: st, preset: p}
	s.Reset(0)
	return s, nil
}

func init() {
	for name := range presets {
		core.Register(name, func(m map[string]string) (core.Sim, error) {
			cfg := FromMap(m)
			cfg.Preset = name
			return New(cfg)
		})
	}
}

// Name returns the preset identifier.
func (s *Smoke) Name() string { return s.cfg.Preset }

// Size returns the grid dimensions including the ghost ring.
func (s *Smoke) Size() core.Size { return core.Size{W: s.cfg.Width, H: s.cfg.Height} }

// Config returns the active configuration.
func (s *Smoke) Config() Config { return s.cfg }

// State exposes the underlying solver state.
func (s *Smoke) State() *fluid.State { return s.state }

// Density exposes the current density grid. Callers must not modify it.
func (s *Smoke) Density() []float64 { return s.state.Density().Values() }

// Velocity exposes the current interleaved velocity grid. Callers must not
// modify it.
func (s *Smoke) Velocity() []float64 { return s.state.Velocity().Values() }

// Divergence exposes the divergence grid from the last projection.
func (s *Smoke) Divergence() []float64 {
	return s.state.Simulator().Projector().Divergence().Values()
}

// Stats summarises the current fields.
func (s *Smoke) Stats() fluid.Stats { return s.state.Stats() }

// Steps returns the number of steps since the last reset.
func (s *Smoke) Steps() int { return s.state.Steps() }

// Reset clears the fields and reseeds the preset. A zero seed reuses the
// configured one.
func (s *Smoke) Reset(seed int64) {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	s.state.Reset()
	s.rng = pcore.NewRNG(seed)
	s.tick = 0
	if s.preset.seed != nil {
		s.preset.seed(s)
	}
}

// Step runs the preset emitter and advances the solver by one time step.
func (s *Smoke) Step() {
	if s.preset.emit != nil {
		s.preset.emit(s)
	}
	s.state.Step(s.cfg.Params.TimeStep)
	s.tick++
}

// Inject adds density and velocity at an interior cell.
func (s *Smoke) Inject(x, y int, density, vx, vy float64) error {
	if err := s.state.AddDensity(x, y, density); err != nil {
		return err
	}
	return s.state.AddVelocity(x, y, mgl64.Vec2{vx, vy})
}

// SetDiffusion toggles the diffusion pass.
func (s *Smoke) SetDiffusion(enabled bool) {
	s.cfg.Params.Diffuse = enabled
	s.state.Simulator().Diffuse = enabled
}

// SetProjection toggles the pressure projection pass.
func (s *Smoke) SetProjection(enabled bool) {
	s.cfg.Params.Project = enabled
	s.state.Simulator().Project = enabled
}

// Diffusion reports whether the diffusion pass is enabled.
func (s *Smoke) Diffusion() bool { return s.state.Simulator().Diffuse }

// Projection reports whether the projection pass is enabled.
func (s *Smoke) Projection() bool { return s.state.Simulator().Project }

func (s *Smoke) splat(cx, cy, radius, density float64, v mgl64.Vec2) {
	s.state.Splat(cx, cy, radius, density, v)
}
