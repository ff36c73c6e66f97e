package core

import (
	"fmt"
	"sort"
)

// Size describes the dimensions of a simulation grid, ghost cells included.
type Size struct {
	W int
	H int
}

// Sim defines the contract every fluid scenario implements.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	// Density returns the current density grid in row-major order.
	Density() []float64
	// Velocity returns the current velocity grid, x and y interleaved.
	Velocity() []float64
}

// Injector accepts user impulses between steps.
type Injector interface {
	Inject(x, y int, density, vx, vy float64) error
}

// StageToggler switches the optional solver passes on or off.
type StageToggler interface {
	SetDiffusion(enabled bool)
	SetProjection(enabled bool)
	Diffusion() bool
	Projection() bool
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Names lists the registered simulations in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New looks up name in the registry and builds it with cfg.
func New(name string, cfg map[string]string) (Sim, error) {
	f, ok := sims[name]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (have %v)", name, Names())
	}
	return f(cfg)
}
