// Package tensor provides the dense matrix type used by the attention kernels.
package tensor

import "fmt"

// Matrix is a dense, row-major matrix of float64 values.
//
// The element type is float64 throughout: the attention kernels rely on
// double-precision exponent range for their stability guarantees.
type Matrix struct {
	rows int
	cols int
	data []float64
}

// New creates a zero-initialized matrix with the given dimensions.
func New(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid matrix dimensions %dx%d (must be > 0)", rows, cols)
	}
	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
	}, nil
}

// FromSlice creates a matrix backed by a copy of data, interpreted row-major.
func FromSlice(data []float64, rows, cols int) (*Matrix, error) {
	m, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("data length %d does not match shape %dx%d", len(data), rows, cols)
	}
	copy(m.data, data)
	return m, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.data[i*m.cols+j]
}

// Set stores v at row i, column j.
func (m *Matrix) Set(i, j int, v float64) {
	m.data[i*m.cols+j] = v
}

// Row returns row i as a slice view into the backing array.
// Mutating the returned slice mutates the matrix.
func (m *Matrix) Row(i int) []float64 {
	return m.data[i*m.cols : (i+1)*m.cols]
}

// Data returns the backing row-major array.
func (m *Matrix) Data() []float64 { return m.data }

// Clone returns a deep copy of the matrix.
func (m *Matrix) Clone() *Matrix {
	clone := &Matrix{
		rows: m.rows,
		cols: m.cols,
		data: make([]float64, len(m.data)),
	}
	copy(clone.data, m.data)
	return clone
}
