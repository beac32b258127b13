package matrix

import "fmt"

// Add returns the elementwise sum of m and other.
func (m *Matrix) Add(other *Matrix) (*Matrix, error) {
	if !m.sameShape(other) {
		return nil, fmt.Errorf("add %dx%d and %dx%d: %w", m.rows, m.cols, other.rows, other.cols, ErrShape)
	}
	return m.transform(m.rows, m.cols, func(x, y int) float64 {
		return m.at(y, x) + other.at(y, x)
	}), nil
}

// Scale multiplies every cell by multiplier.
func (m *Matrix) Scale(multiplier int) *Matrix {
	k := float64(multiplier)
	return m.transform(m.rows, m.cols, func(x, y int) float64 {
		return k * m.at(y, x)
	})
}

// Multiply returns the matrix product m·other.
func (m *Matrix) Multiply(other *Matrix) (*Matrix, error) {
	if m.cols != other.rows {
		return nil, fmt.Errorf("multiply %dx%d by %dx%d: %w", m.rows, m.cols, other.rows, other.cols, ErrShape)
	}
	out := zeros(m.rows, other.cols)
	for row := 0; row < m.rows; row++ {
		for col := 0; col < other.cols; col++ {
			idx := row*out.cols + col
			for k := 0; k < m.cols; k++ {
				out.data[idx] += m.at(row, k) * other.at(k, col)
			}
		}
	}
	return out, nil
}
