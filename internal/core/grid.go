package core

// Cells returns W*H.
func (s Size) Cells() int { return s.W * s.H }

// Index returns the linear slice index for coordinates (x, y).
func (s Size) Index(x, y int) int { return y*s.W + x }

// Interior reports whether (x, y) lies inside the one-cell ghost ring.
func (s Size) Interior(x, y int) bool {
	return x >= 1 && x <= s.W-2 && y >= 1 && y <= s.H-2
}

// ClampInterior pulls (x, y) onto the nearest interior cell.
func (s Size) ClampInterior(x, y int) (int, int) {
	x = min(max(x, 1), s.W-2)
	y = min(max(y, 1), s.H-2)
	return x, y
}

// Downsample averages a row-major scalar grid into blocks of factor×factor
// cells. Partial blocks at the right and bottom edges average what they cover.
func Downsample(values []float64, s Size, factor int) ([]float64, Size) {
	if factor <= 1 || len(values) != s.Cells() {
		return values, s
	}
	out := Size{W: (s.W + factor - 1) / factor, H: (s.H + factor - 1) / factor}
	sums := make([]float64, out.Cells())
	counts := make([]int, out.Cells())
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			i := out.Index(x/factor, y/factor)
			sums[i] += values[s.Index(x, y)]
			counts[i]++
		}
	}
	for i := range sums {
		sums[i] /= float64(counts[i])
	}
	return sums, out
}
