package fluid

import (
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"stable-fluids/pkg/field"
)

func newSolverFixture(t *testing.T) (*LinearSolver, *field.Scalar, *field.Scalar) {
	t.Helper()
	d := field.Dims{W: 5, H: 5}
	ls, err := NewLinearSolver(d)
	if err != nil {
		t.Fatalf("NewLinearSolver: %v", err)
	}
	x, _ := field.NewScalar(d)
	b, _ := field.NewScalar(d)
	b.Set(2, 2, 1)
	return ls, x, b
}

func TestSolveSingleSweepReturnsSource(t *testing.T) {
	ls, x, b := newSolverFixture(t)
	ls.SolveScalar(x, b, 1, 1, 1, nil)
	if !floats.Equal(x.Values(), b.Values()) {
		t.Fatalf("after one sweep x = %v, want %v", x.Values(), b.Values())
	}
}

func TestSolveTwoSweepsSpreadsToNeighbours(t *testing.T) {
	ls, x, b := newSolverFixture(t)
	ls.SolveScalar(x, b, 1, 1, 2, nil)

	ones := map[[2]int]bool{{2, 2}: true, {1, 2}: true, {3, 2}: true, {2, 1}: true, {2, 3}: true}
	for y := 0; y < 5; y++ {
		for x0 := 0; x0 < 5; x0++ {
			want := 0.0
			if ones[[2]int{x0, y}] {
				want = 1
			}
			if got := x.At(x0, y); got != want {
				t.Fatalf("cell (%d,%d) = %v, want %v", x0, y, got, want)
			}
		}
	}
}

func TestSolveZeroIterationsLeavesInput(t *testing.T) {
	ls, x, b := newSolverFixture(t)
	x.Set(1, 1, 7)
	ls.SolveScalar(x, b, 1, 6, 0, LimitScalar)
	if x.At(1, 1) != 7 || x.At(0, 0) != 0 {
		t.Fatalf("zero iterations modified x: %v", x.Values())
	}
}

func TestSolveRunsBoundHook(t *testing.T) {
	ls, x, b := newSolverFixture(t)
	calls := 0
	ls.SolveScalar(x, b, 1, 6, 3, func(s *field.Scalar) {
		calls++
		LimitScalar(s)
	})
	if calls != 3 {
		t.Fatalf("bound hook ran %d times, want 3", calls)
	}
	if x.At(2, 0) != x.At(2, 1) {
		t.Fatalf("ghost (2,0) = %v, want %v", x.At(2, 0), x.At(2, 1))
	}
}

func TestSolveVectorMatchesPerComponentScalar(t *testing.T) {
	d := field.Dims{W: 6, H: 5}
	ls, _ := NewLinearSolver(d)
	bv, _ := field.NewVector(d)
	xv, _ := field.NewVector(d)
	bx, _ := field.NewScalar(d)
	xs, _ := field.NewScalar(d)
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 4; x++ {
			val := float64(x*y) * 0.1
			bv.Set(x, y, [2]float64{val, -2 * val})
			bx.Set(x, y, val)
		}
	}
	ls.SolveVector(xv, bv, 0.5, 3, 4, nil)
	ls.SolveScalar(xs, bx, 0.5, 3, 4, nil)
	for y := 0; y < d.H; y++ {
		for x := 0; x < d.W; x++ {
			if got, want := xv.Component(x, y, 0), xs.At(x, y); got != want {
				t.Fatalf("x component at (%d,%d) = %v, want %v", x, y, got, want)
			}
			if got, want := xv.Component(x, y, 1), -2*xs.At(x, y); !scalar.EqualWithinAbs(got, want, 1e-12) {
				t.Fatalf("y component at (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}
