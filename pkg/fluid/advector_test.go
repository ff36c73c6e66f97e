package fluid

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"stable-fluids/pkg/field"
)

func uniformVelocity(t *testing.T, d field.Dims, v mgl64.Vec2) *field.Vector {
	t.Helper()
	vel, err := field.NewVector(d)
	if err != nil {
		t.Fatalf("NewVector: %v", err)
	}
	vel.Fill(v)
	return vel
}

func impulse(t *testing.T) *field.Scalar {
	t.Helper()
	s, err := field.NewScalar(field.Dims{W: 5, H: 5})
	if err != nil {
		t.Fatalf("NewScalar: %v", err)
	}
	s.Set(2, 2, 1)
	return s
}

func TestAdvectWholeStepMovesImpulse(t *testing.T) {
	src := impulse(t)
	dst, _ := field.NewScalar(src.Dims())
	vel := uniformVelocity(t, src.Dims(), mgl64.Vec2{1, 1})

	Advector{}.AdvectScalar(dst, src, vel, 1)

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			want := 0.0
			if x == 3 && y == 3 {
				want = 1
			}
			if got := dst.At(x, y); got != want {
				t.Fatalf("cell (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestAdvectHalfStepSplitsImpulse(t *testing.T) {
	src := impulse(t)
	dst, _ := field.NewScalar(src.Dims())
	vel := uniformVelocity(t, src.Dims(), mgl64.Vec2{1, 1})

	Advector{}.AdvectScalar(dst, src, vel, 0.5)

	quarter := map[[2]int]bool{{2, 2}: true, {3, 2}: true, {2, 3}: true, {3, 3}: true}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			want := 0.0
			if quarter[[2]int{x, y}] {
				want = 0.25
			}
			if got := dst.At(x, y); got != want {
				t.Fatalf("cell (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestAdvectZeroVelocityIsFixedPoint(t *testing.T) {
	d := field.Dims{W: 9, H: 7}
	rng := rand.New(rand.NewPCG(7, 0))
	data := make([]float64, d.Cells())
	vdata := make([]float64, d.Cells()*field.Components)
	for i := range data {
		data[i] = rng.Float64()*10 - 5
	}
	for i := range vdata {
		vdata[i] = rng.Float64()*4 - 2
	}
	src, _ := field.ScalarFromData(d, data)
	vsrc, _ := field.VectorFromData(d, vdata)
	zero := uniformVelocity(t, d, mgl64.Vec2{})

	for _, dt := range []float64{0, 0.1, 1, 250} {
		dst := src.Clone()
		Advector{}.AdvectScalar(dst, src, zero, dt)
		if !slices.Equal(dst.Values(), src.Values()) {
			t.Fatalf("dt=%v: scalar drifted under zero velocity", dt)
		}
		vdst := vsrc.Clone()
		Advector{}.AdvectVector(vdst, vsrc, zero, dt)
		if !slices.Equal(vdst.Values(), vsrc.Values()) {
			t.Fatalf("dt=%v: vector drifted under zero velocity", dt)
		}
	}
}

func TestAdvectClampsLargeSteps(t *testing.T) {
	d := field.Dims{W: 6, H: 6}
	src, _ := field.NewScalar(d)
	src.Fill(2)
	dst, _ := field.NewScalar(d)
	vel := uniformVelocity(t, d, mgl64.Vec2{1e6, -1e6})

	Advector{}.AdvectScalarWithBoundaries(dst, src, vel, 10)

	for i, v := range dst.Values() {
		if v != 2 {
			t.Fatalf("cell %d = %v, want 2 from a constant source", i, v)
		}
	}
}

func TestAdvectNaNVelocityStaysOnGrid(t *testing.T) {
	d := field.Dims{W: 6, H: 6}
	src, _ := field.NewScalar(d)
	src.Fill(2)
	dst, _ := field.NewScalar(d)
	vel := uniformVelocity(t, d, mgl64.Vec2{})
	vel.Set(3, 3, mgl64.Vec2{math.NaN(), math.NaN()})

	Advector{}.AdvectScalar(dst, src, vel, 0.1)

	if got := dst.At(3, 3); got != 2 {
		t.Fatalf("cell (3,3) = %v, want 2 sampled from the clamped corner", got)
	}
}

func TestStepWithNaNVelocityDoesNotPanic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dims = field.Dims{W: 12, H: 12}
	cfg.Iterations = 4
	st, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st.Velocity().Set(5, 5, mgl64.Vec2{math.NaN(), 0})
	st.Step(0.1)
	if err := st.CheckFinite(); err == nil {
		t.Fatal("expected the NaN to be reported by CheckFinite")
	}
}

func TestAdvectVectorWithBoundariesReflects(t *testing.T) {
	d := field.Dims{W: 5, H: 5}
	src := uniformVelocity(t, d, mgl64.Vec2{0.5, 0.25})
	dst, _ := field.NewVector(d)
	zero := uniformVelocity(t, d, mgl64.Vec2{})

	Advector{}.AdvectVectorWithBoundaries(dst, src, zero, 1, true)

	if got := dst.At(2, 0); got != (mgl64.Vec2{0.5, -0.25}) {
		t.Fatalf("top ghost = %v, want [0.5 -0.25]", got)
	}
	if got := dst.At(0, 2); got != (mgl64.Vec2{-0.5, 0.25}) {
		t.Fatalf("left ghost = %v, want [-0.5 0.25]", got)
	}
}
