package fluid

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"stable-fluids/pkg/field"
)

// Advector moves quantities along a velocity field by tracing each interior
// cell backwards and sampling the source bilinearly. It writes interior cells
// only; the source must not alias the destination.
type Advector struct{}

// AdvectScalar transports src through vel into dst.
func (Advector) AdvectScalar(dst, src *field.Scalar, vel *field.Vector, dt float64) {
	d := dst.Dims()
	out, in, v := dst.Values(), src.Values(), vel.Values()
	parallelRows(1, d.H-1, func(y int) {
		for x := 1; x <= d.W-2; x++ {
			i := y*d.W + x
			p := backtrace(d, x, y, mgl64.Vec2{v[2*i], v[2*i+1]}, dt)
			out[i] = sample(in, d, 1, 0, p)
		}
	})
}

// AdvectVector transports both components of src through vel into dst.
func (Advector) AdvectVector(dst, src, vel *field.Vector, dt float64) {
	d := dst.Dims()
	out, in, v := dst.Values(), src.Values(), vel.Values()
	parallelRows(1, d.H-1, func(y int) {
		for x := 1; x <= d.W-2; x++ {
			i := y*d.W + x
			p := backtrace(d, x, y, mgl64.Vec2{v[2*i], v[2*i+1]}, dt)
			out[2*i] = sample(in, d, field.Components, 0, p)
			out[2*i+1] = sample(in, d, field.Components, 1, p)
		}
	})
}

// AdvectScalarWithBoundaries advects and then limits dst.
func (a Advector) AdvectScalarWithBoundaries(dst, src *field.Scalar, vel *field.Vector, dt float64) {
	a.AdvectScalar(dst, src, vel, dt)
	LimitScalar(dst)
}

// AdvectVectorWithBoundaries advects and then limits dst, reflecting the
// normal component when dst is a velocity field.
func (a Advector) AdvectVectorWithBoundaries(dst, src, vel *field.Vector, dt float64, isVelocity bool) {
	a.AdvectVector(dst, src, vel, dt)
	LimitVector(dst, isVelocity)
}

// backtrace returns the departure point of cell (x, y), clamped so all four
// bilinear taps stay on the grid.
func backtrace(d field.Dims, x, y int, vel mgl64.Vec2, dt float64) mgl64.Vec2 {
	p := mgl64.Vec2{float64(x), float64(y)}.Sub(vel.Mul(dt))
	p[0] = clamp(p[0], 0.5, float64(d.W)-1.5)
	p[1] = clamp(p[1], 0.5, float64(d.H)-1.5)
	return p
}

// sample interpolates component c of an interleaved grid at p.
func sample(data []float64, d field.Dims, comps, c int, p mgl64.Vec2) float64 {
	fx0, fy0 := math.Floor(p[0]), math.Floor(p[1])
	x0, y0 := int(fx0), int(fy0)
	sx, sy := p[0]-fx0, p[1]-fy0

	i00 := (y0*d.W+x0)*comps + c
	i10 := i00 + comps
	i01 := i00 + d.W*comps
	i11 := i01 + comps
	return (1-sx)*(1-sy)*data[i00] +
		sx*(1-sy)*data[i10] +
		(1-sx)*sy*data[i01] +
		sx*sy*data[i11]
}

// clamp maps NaN to lo so a poisoned velocity cannot index off the grid.
func clamp(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
