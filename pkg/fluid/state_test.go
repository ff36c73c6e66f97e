package fluid

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"stable-fluids/pkg/field"
)

func newTestState(t *testing.T, mutate func(*Config)) *State {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Dims = field.Dims{W: 12, H: 10}
	cfg.Viscosity = 0
	cfg.DiffusionRate = 0
	cfg.Iterations = 10
	if mutate != nil {
		mutate(&cfg)
	}
	st, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return st
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"small", func(c *Config) { c.Dims = field.Dims{W: 2, H: 9} }, field.ErrTooSmall},
		{"viscosity", func(c *Config) { c.Viscosity = -1 }, ErrInvalidConfig},
		{"diffusion", func(c *Config) { c.DiffusionRate = math.NaN() }, ErrInvalidConfig},
		{"iterations", func(c *Config) { c.Iterations = -2 }, ErrInvalidConfig},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)
		if _, err := New(cfg); !errors.Is(err, tc.want) {
			t.Fatalf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestStepZeroVelocityKeepsDensity(t *testing.T) {
	st := newTestState(t, nil)
	for y := 1; y <= 8; y++ {
		for x := 1; x <= 10; x++ {
			if err := st.AddDensity(x, y, float64(x+y)); err != nil {
				t.Fatalf("AddDensity(%d,%d): %v", x, y, err)
			}
		}
	}
	before := st.DensityValues()
	for i := 0; i < 5; i++ {
		st.Step(0.1)
	}
	if got := st.DensityValues(); !slices.Equal(got, before) {
		t.Fatalf("density changed under zero velocity:\n got %v\nwant %v", got, before)
	}
	if st.Steps() != 5 {
		t.Fatalf("Steps() = %d, want 5", st.Steps())
	}
}

func TestStepSwapsBuffersWithoutDiffusion(t *testing.T) {
	st := newTestState(t, func(c *Config) { c.Diffuse = false })
	current := st.Velocity()
	st.Step(0.1)
	if st.PreviousVelocity() != current {
		t.Fatal("current velocity buffer did not become the previous buffer")
	}
	if st.Velocity() == current {
		t.Fatal("velocity buffer was not swapped")
	}
}

func TestStepAdvectsImpulseThroughVelocity(t *testing.T) {
	st := newTestState(t, func(c *Config) {
		c.Dims = field.Dims{W: 7, H: 7}
		c.Diffuse = false
		c.Project = false
	})
	uniform := make([]float64, st.Dims().Cells()*field.Components)
	for i := 0; i < len(uniform); i += 2 {
		uniform[i], uniform[i+1] = 1, 1
	}
	if err := st.LoadVelocity(uniform); err != nil {
		t.Fatalf("LoadVelocity: %v", err)
	}
	if err := st.AddDensity(2, 2, 1); err != nil {
		t.Fatalf("AddDensity: %v", err)
	}

	st.Step(1)

	if got := st.Density().At(3, 3); got != 1 {
		t.Fatalf("density at (3,3) = %v, want 1", got)
	}
	if got := st.Density().At(2, 2); got != 0 {
		t.Fatalf("density at (2,2) = %v, want 0", got)
	}
}

func TestStepKeepsGhostRingResolved(t *testing.T) {
	st := newTestState(t, func(c *Config) {
		c.Viscosity = 1e-4
		c.DiffusionRate = 1e-4
	})
	st.Splat(6, 5, 3, 5, mgl64.Vec2{2, -1})
	for i := 0; i < 3; i++ {
		st.Step(0.05)
	}
	d := st.Dims()
	dens := st.Density()
	for x := 1; x <= d.W-2; x++ {
		if dens.At(x, 0) != dens.At(x, 1) {
			t.Fatalf("top ghost at x=%d = %v, want %v", x, dens.At(x, 0), dens.At(x, 1))
		}
	}
	vel := st.Velocity()
	for y := 1; y <= d.H-2; y++ {
		if got, want := vel.Component(0, y, 0), -vel.Component(1, y, 0); got != want {
			t.Fatalf("left ghost u at y=%d = %v, want %v", y, got, want)
		}
	}
	if err := st.CheckFinite(); err != nil {
		t.Fatalf("CheckFinite: %v", err)
	}
}

func TestDiffusionSpreadsDensity(t *testing.T) {
	st := newTestState(t, func(c *Config) {
		c.DiffusionRate = 0.01
		c.Project = false
	})
	if err := st.AddDensity(6, 5, 10); err != nil {
		t.Fatalf("AddDensity: %v", err)
	}
	st.Step(0.1)
	if st.Density().At(7, 5) <= 0 {
		t.Fatalf("neighbour density = %v, want > 0", st.Density().At(7, 5))
	}
	if st.Density().At(6, 5) >= 10 {
		t.Fatalf("source density = %v, want < 10", st.Density().At(6, 5))
	}
}

func TestAddImpulseRejectsGhostCells(t *testing.T) {
	st := newTestState(t, nil)
	for _, p := range [][2]int{{0, 3}, {3, 0}, {11, 3}, {3, 9}, {-1, 4}, {40, 40}} {
		if err := st.AddDensity(p[0], p[1], 1); !errors.Is(err, ErrOutsideInterior) {
			t.Fatalf("AddDensity(%d,%d) err = %v, want ErrOutsideInterior", p[0], p[1], err)
		}
		if err := st.AddVelocity(p[0], p[1], mgl64.Vec2{1, 0}); !errors.Is(err, ErrOutsideInterior) {
			t.Fatalf("AddVelocity(%d,%d) err = %v, want ErrOutsideInterior", p[0], p[1], err)
		}
	}
}

func TestStepPanicsOnNegativeDelta(t *testing.T) {
	st := newTestState(t, nil)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for negative dt")
		}
	}()
	st.Step(-1)
}

func TestStatsSummarisesInterior(t *testing.T) {
	st := newTestState(t, nil)
	_ = st.AddDensity(2, 2, 3)
	_ = st.AddDensity(4, 4, 1)
	_ = st.AddVelocity(5, 5, mgl64.Vec2{3, 4})

	stats := st.Stats()
	if stats.TotalDensity != 4 {
		t.Fatalf("TotalDensity = %v, want 4", stats.TotalDensity)
	}
	if stats.MaxDensity != 3 || stats.MinDensity != 0 {
		t.Fatalf("density range = [%v,%v], want [0,3]", stats.MinDensity, stats.MaxDensity)
	}
	if stats.MaxSpeed != 5 {
		t.Fatalf("MaxSpeed = %v, want 5", stats.MaxSpeed)
	}
	if stats.KineticEnergy != 12.5 {
		t.Fatalf("KineticEnergy = %v, want 12.5", stats.KineticEnergy)
	}
}

func TestResetClearsState(t *testing.T) {
	st := newTestState(t, nil)
	_ = st.AddDensity(3, 3, 1)
	st.Step(0.1)
	st.Reset()
	if st.Steps() != 0 {
		t.Fatalf("Steps() = %d after reset", st.Steps())
	}
	for i, v := range st.DensityValues() {
		if v != 0 {
			t.Fatalf("density %d = %v after reset", i, v)
		}
	}
}
