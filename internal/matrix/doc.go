// Package matrix provides the numerical core of the calculator.
//
// A [Matrix] is a rows×cols grid of float64 values stored row-major. Every
// operation returns a freshly allocated Matrix and leaves its operands
// untouched:
//
//   - [Matrix.Add], [Matrix.Scale], [Matrix.Multiply]
//   - [Matrix.TransposeMain], [Matrix.TransposeSide],
//     [Matrix.TransposeVertical], [Matrix.TransposeHorizontal]
//   - [Matrix.Determinant] (Laplace expansion along the first row)
//   - [Matrix.Inverse] (adjugate divided by the determinant)
//
// # Example
//
//	a, _ := matrix.FromRows([][]float64{{1, 2}, {3, 4}})
//	det, _ := a.Determinant() // -2
//	inv, _ := a.Inverse()
//	fmt.Println(inv)
//
// # Thread Safety
//
// A Matrix may be read from several goroutines as long as none of them calls
// [Matrix.Set].
package matrix
