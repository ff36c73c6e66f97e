package fluid

import "stable-fluids/pkg/field"

// LinearSolver runs Jacobi relaxation for the implicit diffusion and pressure
// systems. It owns one scratch grid per field kind so repeated solves do not
// allocate.
type LinearSolver struct {
	dims   field.Dims
	scalar *field.Scalar
	vector *field.Vector
}

// NewLinearSolver allocates scratch storage for grids of the given size.
func NewLinearSolver(d field.Dims) (*LinearSolver, error) {
	s, err := field.NewScalar(d)
	if err != nil {
		return nil, err
	}
	v, err := field.NewVector(d)
	if err != nil {
		return nil, err
	}
	return &LinearSolver{dims: d, scalar: s, vector: v}, nil
}

// Dims returns the grid size the solver was built for.
func (ls *LinearSolver) Dims() field.Dims { return ls.dims }

// SolveScalar performs iterations sweeps of
//
//	x(i,j) = (b(i,j) + a*(x(i-1,j) + x(i+1,j) + x(i,j-1) + x(i,j+1))) / c
//
// over the interior of x. bound, when non-nil, runs on x after every sweep.
func (ls *LinearSolver) SolveScalar(x, b *field.Scalar, a, c float64, iterations int, bound func(*field.Scalar)) {
	if iterations <= 0 {
		return
	}
	ls.scalar.CopyFrom(x)
	for k := 0; k < iterations; k++ {
		relax(ls.scalar.Values(), x.Values(), b.Values(), ls.dims, 1, a, 1/c)
		x.Swap(ls.scalar)
		if bound != nil {
			bound(x)
		}
	}
}

// SolveVector is SolveScalar applied to both components of a vector grid.
func (ls *LinearSolver) SolveVector(x, b *field.Vector, a, c float64, iterations int, bound func(*field.Vector)) {
	if iterations <= 0 {
		return
	}
	ls.vector.CopyFrom(x)
	for k := 0; k < iterations; k++ {
		relax(ls.vector.Values(), x.Values(), b.Values(), ls.dims, field.Components, a, 1/c)
		x.Swap(ls.vector)
		if bound != nil {
			bound(x)
		}
	}
}

// relax writes one Jacobi sweep of x into dst. Components are interleaved, so
// horizontal neighbours sit comps slots away and vertical ones a row away.
func relax(dst, x, b []float64, d field.Dims, comps int, a, cInv float64) {
	stride := d.W * comps
	parallelRows(1, d.H-1, func(y int) {
		row := y * stride
		for i := row + comps; i < row+stride-comps; i++ {
			dst[i] = (b[i] + a*(x[i-comps]+x[i+comps]+x[i-stride]+x[i+stride])) * cInv
		}
	})
}
