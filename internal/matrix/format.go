package matrix

import (
	"math"
	"strconv"
	"strings"
)

// String renders rows on separate lines with cells separated by one space.
func (m *Matrix) String() string {
	var b strings.Builder
	for row := 0; row < m.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < m.cols; col++ {
			if col > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(FormatFloat(m.at(row, col)))
		}
	}
	return b.String()
}

// FormatFloat renders v the way the JVM prints a double: the shortest
// round-tripping decimal, always with a fractional part, switching to
// d.dddEn notation outside [1e-3, 1e7).
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	abs := math.Abs(v)
	if abs == 0 || (abs >= 1e-3 && abs < 1e7) {
		return withFraction(strconv.FormatFloat(v, 'f', -1, 64))
	}

	s := strconv.FormatFloat(v, 'E', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "E")
	n, _ := strconv.Atoi(exp)
	return withFraction(mantissa) + "E" + strconv.Itoa(n)
}

func withFraction(s string) string {
	if strings.ContainsRune(s, '.') {
		return s
	}
	return s + ".0"
}
