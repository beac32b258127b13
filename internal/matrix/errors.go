package matrix

import "errors"

var (
	// ErrShape is returned when an operation's shape precondition fails:
	// Add on unequal shapes, Multiply with mismatched inner dimensions,
	// Determinant or Inverse on a non-square matrix.
	ErrShape = errors.New("matrix: operation cannot be performed")

	// ErrSingular is returned by Inverse when the determinant is exactly zero.
	ErrSingular = errors.New("matrix: singular matrix has no inverse")

	// ErrBadShape indicates non-positive dimensions or ragged row data.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates a row or column index outside the grid.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrParse indicates text that is not a number where one was expected.
	ErrParse = errors.New("matrix: invalid number")

	// ErrInvalidChoice indicates an unknown transpose kind.
	ErrInvalidChoice = errors.New("matrix: invalid transpose kind")
)
