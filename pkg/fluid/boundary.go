package fluid

import (
	"fmt"

	"stable-fluids/pkg/field"
)

// LimitScalar resolves the ghost ring of s by copying the nearest interior
// value outward.
func LimitScalar(s *field.Scalar) {
	limit(s.Dims(), 1, s.Values(), false)
}

// LimitVector resolves the ghost ring of v. When isVelocity is set the
// component perpendicular to each wall is negated so no flow crosses it.
func LimitVector(v *field.Vector, isVelocity bool) {
	limit(v.Dims(), field.Components, v.Values(), isVelocity)
}

// limit runs the side pass and then the corner pass over a grid with the given
// number of interleaved components. Component 0 is x, component 1 is y.
func limit(d field.Dims, comps int, data []float64, reflect bool) {
	w, h := d.W, d.H
	if w < 3 || h < 3 {
		panic(fmt.Sprintf("fluid: cannot limit %s grid", d))
	}
	at := func(x, y int) int { return (y*w + x) * comps }

	// top and bottom rows; the y component faces these walls.
	for x := 1; x <= w-2; x++ {
		copyCell(data, at(x, 0), at(x, 1), comps, reflect, 1)
		copyCell(data, at(x, h-1), at(x, h-2), comps, reflect, 1)
	}
	// left and right columns; the x component faces these walls.
	for y := 1; y <= h-2; y++ {
		copyCell(data, at(0, y), at(1, y), comps, reflect, 0)
		copyCell(data, at(w-1, y), at(w-2, y), comps, reflect, 0)
	}
	// corners take their horizontal ghost neighbour, already resolved above.
	copyCell(data, at(0, 0), at(1, 0), comps, false, 0)
	copyCell(data, at(w-1, 0), at(w-2, 0), comps, false, 0)
	copyCell(data, at(0, h-1), at(1, h-1), comps, false, 0)
	copyCell(data, at(w-1, h-1), at(w-2, h-1), comps, false, 0)
}

func copyCell(data []float64, dst, src, comps int, reflect bool, normal int) {
	for c := 0; c < comps; c++ {
		v := data[src+c]
		if reflect && c == normal {
			v = -v
		}
		data[dst+c] = v
	}
}
