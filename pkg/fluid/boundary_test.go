package fluid

import (
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"stable-fluids/pkg/field"
)

func interiorGrid(t *testing.T) *field.Scalar {
	t.Helper()
	s, err := field.NewScalar(field.Dims{W: 5, H: 5})
	if err != nil {
		t.Fatalf("NewScalar: %v", err)
	}
	v := 1.0
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			s.Set(x, y, v)
			v++
		}
	}
	return s
}

func TestLimitScalarSidesAndCorners(t *testing.T) {
	s := interiorGrid(t)
	LimitScalar(s)

	want := [][]float64{
		{1, 1, 2, 3, 3},
		{1, 1, 2, 3, 3},
		{4, 4, 5, 6, 6},
		{7, 7, 8, 9, 9},
		{7, 7, 8, 9, 9},
	}
	for y, row := range want {
		for x, expected := range row {
			if got := s.At(x, y); got != expected {
				t.Fatalf("cell (%d,%d) = %v, want %v", x, y, got, expected)
			}
		}
	}
}

func TestLimitScalarIdempotent(t *testing.T) {
	s := interiorGrid(t)
	LimitScalar(s)
	once := s.Snapshot()
	LimitScalar(s)
	if !slices.Equal(once, s.Snapshot()) {
		t.Fatal("second LimitScalar changed the grid")
	}
}

func TestLimitVectorReflectsNormalComponent(t *testing.T) {
	d := field.Dims{W: 4, H: 4}
	v, _ := field.NewVector(d)
	for y := 1; y <= 2; y++ {
		for x := 1; x <= 2; x++ {
			v.Set(x, y, mgl64.Vec2{float64(x), float64(10 * y)})
		}
	}
	LimitVector(v, true)

	checks := []struct {
		x, y int
		want mgl64.Vec2
	}{
		{1, 0, mgl64.Vec2{1, -10}}, // top: y negated
		{2, 3, mgl64.Vec2{2, -20}}, // bottom
		{0, 1, mgl64.Vec2{-1, 10}}, // left: x negated
		{3, 2, mgl64.Vec2{-2, 20}}, // right
		{0, 0, mgl64.Vec2{1, -10}}, // corner copies (1,0)
		{3, 0, mgl64.Vec2{2, -10}}, // corner copies (2,0)
		{0, 3, mgl64.Vec2{1, -20}}, // corner copies (1,3)
		{3, 3, mgl64.Vec2{2, -20}}, // corner copies (2,3)
	}
	for _, c := range checks {
		if got := v.At(c.x, c.y); got != c.want {
			t.Fatalf("cell (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}

	once := v.Snapshot()
	LimitVector(v, true)
	if !slices.Equal(once, v.Snapshot()) {
		t.Fatal("second LimitVector changed the grid")
	}
}

func TestLimitVectorWithoutReflection(t *testing.T) {
	d := field.Dims{W: 3, H: 3}
	v, _ := field.NewVector(d)
	v.Set(1, 1, mgl64.Vec2{2, 3})
	LimitVector(v, false)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if got := v.At(x, y); got != (mgl64.Vec2{2, 3}) {
				t.Fatalf("cell (%d,%d) = %v, want [2 3]", x, y, got)
			}
		}
	}
}
