package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a rows×cols grid of float64 values in row-major order.
type Matrix struct {
	rows, cols int
	data       []float64
}

// New returns a zero-filled rows×cols matrix.
func New(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", rows, cols, ErrBadShape)
	}
	return zeros(rows, cols), nil
}

// FromRows copies row-major data into a new matrix. Every row must have the
// same, non-zero length.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("empty data: %w", ErrBadShape)
	}
	cols := len(rows[0])
	m := zeros(len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w", i, len(row), cols, ErrBadShape)
		}
		copy(m.data[i*cols:], row)
	}
	return m, nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) (*Matrix, error) {
	m, err := New(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m, nil
}

func zeros(rows, cols int) *Matrix {
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

func (m *Matrix) Shape() (rows, cols int) { return m.rows, m.cols }
func (m *Matrix) NumRows() int            { return m.rows }
func (m *Matrix) NumCols() int            { return m.cols }
func (m *Matrix) IsSquare() bool          { return m.rows == m.cols }

// At returns the cell at (row, col).
func (m *Matrix) At(row, col int) (float64, error) {
	if !m.inBounds(row, col) {
		return 0, fmt.Errorf("At(%d,%d) on %dx%d: %w", row, col, m.rows, m.cols, ErrOutOfRange)
	}
	return m.at(row, col), nil
}

// Set overwrites the cell at (row, col).
func (m *Matrix) Set(row, col int, v float64) error {
	if !m.inBounds(row, col) {
		return fmt.Errorf("Set(%d,%d) on %dx%d: %w", row, col, m.rows, m.cols, ErrOutOfRange)
	}
	m.data[row*m.cols+col] = v
	return nil
}

func (m *Matrix) inBounds(row, col int) bool {
	return row >= 0 && row < m.rows && col >= 0 && col < m.cols
}

func (m *Matrix) at(row, col int) float64 {
	return m.data[row*m.cols+col]
}

// Rows returns a copy of the grid as a slice of rows.
func (m *Matrix) Rows() [][]float64 {
	out := make([][]float64, m.rows)
	for i := range out {
		out[i] = make([]float64, m.cols)
		copy(out[i], m.data[i*m.cols:(i+1)*m.cols])
	}
	return out
}

func (m *Matrix) Clone() *Matrix {
	c := zeros(m.rows, m.cols)
	copy(c.data, m.data)
	return c
}

// Equal reports whether both matrices have the same shape and identical cells.
func (m *Matrix) Equal(other *Matrix) bool {
	return m.sameShape(other) && floats.Equal(m.data, other.data)
}

// EqualApprox is Equal with an absolute tolerance per cell.
func (m *Matrix) EqualApprox(other *Matrix, tol float64) bool {
	return m.sameShape(other) && floats.EqualApprox(m.data, other.data, tol)
}

func (m *Matrix) sameShape(other *Matrix) bool {
	return m.rows == other.rows && m.cols == other.cols
}

// Dense converts m to a gonum matrix. The backing slice is copied.
func (m *Matrix) Dense() *mat.Dense {
	data := make([]float64, len(m.data))
	copy(data, m.data)
	return mat.NewDense(m.rows, m.cols, data)
}

// transform builds a rows×cols matrix whose cell (row, col) is f(col, row).
// The generator sees the column first so reflections can be written as a
// plain index mapping.
func (m *Matrix) transform(rows, cols int, f func(x, y int) float64) *Matrix {
	out := zeros(rows, cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			out.data[row*cols+col] = f(col, row)
		}
	}
	return out
}
