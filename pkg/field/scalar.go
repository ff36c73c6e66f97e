package field

// Scalar holds one float64 per cell.
type Scalar struct {
	dims Dims
	data []float64
}

// NewScalar allocates a zeroed scalar grid.
func NewScalar(d Dims) (*Scalar, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &Scalar{dims: d, data: make([]float64, d.Cells())}, nil
}

// ScalarFromData builds a grid from a row-major slice. The slice is copied.
func ScalarFromData(d Dims, data []float64) (*Scalar, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := checkLength(d, 1, data); err != nil {
		return nil, err
	}
	return &Scalar{dims: d, data: append([]float64(nil), data...)}, nil
}

// Dims returns the grid dimensions.
func (s *Scalar) Dims() Dims { return s.dims }

// Values exposes the backing slice so callers can read/write cells directly.
func (s *Scalar) Values() []float64 { return s.data }

// Snapshot returns a row-major copy of every cell.
func (s *Scalar) Snapshot() []float64 { return append([]float64(nil), s.data...) }

// At returns the value stored at (x, y).
func (s *Scalar) At(x, y int) float64 { return s.data[y*s.dims.W+x] }

// Set stores v at (x, y).
func (s *Scalar) Set(x, y int, v float64) { s.data[y*s.dims.W+x] = v }

// Add accumulates v into (x, y).
func (s *Scalar) Add(x, y int, v float64) { s.data[y*s.dims.W+x] += v }

// Fill writes v into every cell.
func (s *Scalar) Fill(v float64) {
	for i := range s.data {
		s.data[i] = v
	}
}

// Clone returns an independent copy.
func (s *Scalar) Clone() *Scalar {
	return &Scalar{dims: s.dims, data: append([]float64(nil), s.data...)}
}

// CopyFrom overwrites every cell with the values of o.
func (s *Scalar) CopyFrom(o *Scalar) {
	mustMatch(s.dims, o.dims)
	copy(s.data, o.data)
}

// Load overwrites every cell from a row-major slice.
func (s *Scalar) Load(data []float64) error {
	if err := checkLength(s.dims, 1, data); err != nil {
		return err
	}
	copy(s.data, data)
	return nil
}

// Swap exchanges backing storage with o.
func (s *Scalar) Swap(o *Scalar) {
	mustMatch(s.dims, o.dims)
	s.data, o.data = o.data, s.data
}
