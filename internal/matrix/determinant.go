package matrix

import "fmt"

// Determinant computes det(m) by Laplace expansion along the first row.
// Runs in O(n!) and is meant for the small matrices typed at a prompt.
func (m *Matrix) Determinant() (float64, error) {
	if !m.IsSquare() {
		return 0, fmt.Errorf("determinant of %dx%d: %w", m.rows, m.cols, ErrShape)
	}
	if m.rows < parallelMin {
		return m.det(), nil
	}

	// Terms are summed in column order so the result matches det().
	terms := make([]float64, m.cols)
	parallelFor(m.cols, 1, func(start, end int) {
		for col := start; col < end; col++ {
			terms[col] = sign(col) * m.at(0, col) * m.minor(0, col).det()
		}
	})
	sum := 0.0
	for _, t := range terms {
		sum += t
	}
	return sum, nil
}

func (m *Matrix) det() float64 {
	switch m.rows {
	case 1:
		return m.data[0]
	case 2:
		return m.data[0]*m.data[3] - m.data[1]*m.data[2]
	}
	sum := 0.0
	for col := 0; col < m.cols; col++ {
		sum += sign(col) * m.at(0, col) * m.minor(0, col).det()
	}
	return sum
}

// minor copies m without the given row and column.
func (m *Matrix) minor(row, col int) *Matrix {
	out := zeros(m.rows-1, m.cols-1)
	i := 0
	for r := 0; r < m.rows; r++ {
		if r == row {
			continue
		}
		for c := 0; c < m.cols; c++ {
			if c == col {
				continue
			}
			out.data[i] = m.at(r, c)
			i++
		}
	}
	return out
}

// Inverse returns adj(m)/det(m). A zero determinant yields ErrSingular
// instead of a grid of Inf and NaN.
func (m *Matrix) Inverse() (*Matrix, error) {
	det, err := m.Determinant()
	if err != nil {
		return nil, err
	}
	if det == 0 {
		return nil, ErrSingular
	}
	k := 1 / det
	if m.rows == 1 {
		return m.transform(1, 1, func(int, int) float64 { return k }), nil
	}
	// Cell (row, col) takes the cofactor of source cell (col, row), which
	// transposes the cofactor grid into the adjugate.
	n := m.rows
	out := zeros(n, n)
	parallelFor(n, parallelMin-1, func(start, end int) {
		for row := start; row < end; row++ {
			for col := 0; col < n; col++ {
				out.data[row*n+col] = k * sign(row+col) * m.minor(col, row).det()
			}
		}
	})
	return out, nil
}

func sign(n int) float64 {
	if n%2 == 0 {
		return 1
	}
	return -1
}
