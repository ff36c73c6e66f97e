package field

import "github.com/go-gl/mathgl/mgl64"

// Components is the number of interleaved values per vector cell.
const Components = 2

// Vector holds a 2D vector per cell, x and y interleaved.
type Vector struct {
	dims Dims
	data []float64
}

// NewVector allocates a zeroed vector grid.
func NewVector(d Dims) (*Vector, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &Vector{dims: d, data: make([]float64, d.Cells()*Components)}, nil
}

// VectorFromData builds a grid from an interleaved row-major slice. The slice
// is copied.
func VectorFromData(d Dims, data []float64) (*Vector, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := checkLength(d, Components, data); err != nil {
		return nil, err
	}
	return &Vector{dims: d, data: append([]float64(nil), data...)}, nil
}

// Dims returns the grid dimensions.
func (v *Vector) Dims() Dims { return v.dims }

// Values exposes the interleaved backing slice.
func (v *Vector) Values() []float64 { return v.data }

// Snapshot returns an interleaved row-major copy of every cell.
func (v *Vector) Snapshot() []float64 { return append([]float64(nil), v.data...) }

// At returns the vector stored at (x, y).
func (v *Vector) At(x, y int) mgl64.Vec2 {
	i := (y*v.dims.W + x) * Components
	return mgl64.Vec2{v.data[i], v.data[i+1]}
}

// Set stores val at (x, y).
func (v *Vector) Set(x, y int, val mgl64.Vec2) {
	i := (y*v.dims.W + x) * Components
	v.data[i] = val[0]
	v.data[i+1] = val[1]
}

// Add accumulates val into (x, y).
func (v *Vector) Add(x, y int, val mgl64.Vec2) {
	i := (y*v.dims.W + x) * Components
	v.data[i] += val[0]
	v.data[i+1] += val[1]
}

// Component returns component c (0 for x, 1 for y) at (x, y).
func (v *Vector) Component(x, y, c int) float64 {
	return v.data[(y*v.dims.W+x)*Components+c]
}

// Fill writes val into every cell.
func (v *Vector) Fill(val mgl64.Vec2) {
	for i := 0; i < len(v.data); i += Components {
		v.data[i] = val[0]
		v.data[i+1] = val[1]
	}
}

// Clone returns an independent copy.
func (v *Vector) Clone() *Vector {
	return &Vector{dims: v.dims, data: append([]float64(nil), v.data...)}
}

// CopyFrom overwrites every cell with the values of o.
func (v *Vector) CopyFrom(o *Vector) {
	mustMatch(v.dims, o.dims)
	copy(v.data, o.data)
}

// Load overwrites every cell from an interleaved row-major slice.
func (v *Vector) Load(data []float64) error {
	if err := checkLength(v.dims, Components, data); err != nil {
		return err
	}
	copy(v.data, data)
	return nil
}

// Swap exchanges backing storage with o.
func (v *Vector) Swap(o *Vector) {
	mustMatch(v.dims, o.dims)
	v.data, o.data = o.data, v.data
}
