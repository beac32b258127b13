package matrix

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadShape reads a "<rows> <cols>" line.
func ReadShape(sc *bufio.Scanner) (rows, cols int, err error) {
	fields, err := nextFields(sc)
	if err != nil {
		return 0, 0, err
	}
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("shape %q: want two integers: %w", strings.Join(fields, " "), ErrBadShape)
	}
	if rows, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, fmt.Errorf("rows %q: %w", fields[0], ErrParse)
	}
	if cols, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, fmt.Errorf("cols %q: %w", fields[1], ErrParse)
	}
	if rows <= 0 || cols <= 0 {
		return 0, 0, fmt.Errorf("%dx%d: %w", rows, cols, ErrBadShape)
	}
	return rows, cols, nil
}

// ReadMatrix reads rows lines of exactly cols whitespace-separated numbers.
func ReadMatrix(sc *bufio.Scanner, rows, cols int) (*Matrix, error) {
	m, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	for row := 0; row < rows; row++ {
		fields, err := nextFields(sc)
		if err != nil {
			return nil, err
		}
		if len(fields) != cols {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w", row, len(fields), cols, ErrBadShape)
		}
		if err := parseRow(fields, m.data[row*cols:(row+1)*cols]); err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
	}
	return m, nil
}

// Read reads a shape line followed by the matrix body.
func Read(sc *bufio.Scanner) (*Matrix, error) {
	rows, cols, err := ReadShape(sc)
	if err != nil {
		return nil, err
	}
	return ReadMatrix(sc, rows, cols)
}

// Parse reads a matrix body without a shape line; the shape is taken from
// the non-blank lines of text.
func Parse(text string) (*Matrix, error) {
	var rows [][]float64
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		row := make([]float64, len(fields))
		if err := parseRow(fields, row); err != nil {
			return nil, fmt.Errorf("row %d: %w", len(rows), err)
		}
		rows = append(rows, row)
	}
	return FromRows(rows)
}

func parseRow(fields []string, dst []float64) error {
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return fmt.Errorf("%q: %w", f, ErrParse)
		}
		dst[i] = v
	}
	return nil
}

// nextFields returns the fields of the next non-blank line.
func nextFields(sc *bufio.Scanner) ([]string, error) {
	for sc.Scan() {
		if fields := strings.Fields(sc.Text()); len(fields) > 0 {
			return fields, nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}
