package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for i := 0; i < 32; i++ {
		if x, y := a.Range(-3, 3), b.Range(-3, 3); x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
	}
}

func TestRNGBounds(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 1000; i++ {
		if v := r.Range(2, 5); v < 2 || v >= 5 {
			t.Fatalf("Range out of bounds: %v", v)
		}
		if v := r.IntRange(3, 6); v < 3 || v > 6 {
			t.Fatalf("IntRange out of bounds: %d", v)
		}
	}
	if r.Range(4, 4) != 4 || r.IntRange(9, 1) != 9 {
		t.Fatal("degenerate ranges must return lo")
	}
}
