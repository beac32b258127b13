package matrix

import "fmt"

// TransposeKind selects a reflection. Values follow the calculator menu.
type TransposeKind int

const (
	MainDiagonal TransposeKind = iota + 1
	SideDiagonal
	VerticalLine
	HorizontalLine
)

var transposeNames = map[TransposeKind]string{
	MainDiagonal:   "main",
	SideDiagonal:   "side",
	VerticalLine:   "vertical",
	HorizontalLine: "horizontal",
}

func (k TransposeKind) String() string {
	if name, ok := transposeNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TransposeKind(%d)", int(k))
}

// ParseTransposeKind accepts either the menu number or the name.
func ParseTransposeKind(s string) (TransposeKind, error) {
	for k, name := range transposeNames {
		if s == name || s == fmt.Sprint(int(k)) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrInvalidChoice)
}

// Transpose dispatches to the reflection named by kind.
func (m *Matrix) Transpose(kind TransposeKind) (*Matrix, error) {
	switch kind {
	case MainDiagonal:
		return m.TransposeMain(), nil
	case SideDiagonal:
		return m.TransposeSide(), nil
	case VerticalLine:
		return m.TransposeVertical(), nil
	case HorizontalLine:
		return m.TransposeHorizontal(), nil
	}
	return nil, fmt.Errorf("%v: %w", kind, ErrInvalidChoice)
}

// TransposeMain reflects across the main diagonal.
func (m *Matrix) TransposeMain() *Matrix {
	return m.transform(m.cols, m.rows, func(x, y int) float64 {
		return m.at(x, y)
	})
}

// TransposeSide reflects across the anti-diagonal.
func (m *Matrix) TransposeSide() *Matrix {
	return m.transform(m.cols, m.rows, func(x, y int) float64 {
		return m.at(m.rows-1-x, m.cols-1-y)
	})
}

// TransposeVertical mirrors left to right.
func (m *Matrix) TransposeVertical() *Matrix {
	return m.transform(m.rows, m.cols, func(x, y int) float64 {
		return m.at(y, m.cols-1-x)
	})
}

// TransposeHorizontal mirrors top to bottom.
func (m *Matrix) TransposeHorizontal() *Matrix {
	return m.transform(m.rows, m.cols, func(x, y int) float64 {
		return m.at(m.rows-1-y, x)
	})
}
