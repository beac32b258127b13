package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/matcalc/internal/matrix"
)

// Format names an export encoding accepted by Write.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatSVG  Format = "svg"
)

// seriesColors cycles across rows in RowsToSVG.
var seriesColors = []string{"#00d7ff", "#ff5fd7", "#5fff87", "#ffd75f", "#af87ff", "#ff875f"}

// MatrixToSVG draws m as a grid of cells shaded by value, with the value
// printed in each cell. Negative values are red, positive green.
func MatrixToSVG(m *matrix.Matrix, cell float64) string {
	rows, cols := m.Shape()
	width := float64(cols) * cell
	height := float64(rows) * cell

	peak := 0.0
	for _, row := range m.Rows() {
		for _, v := range row {
			if a := math.Abs(v); a > peak && !math.IsInf(a, 0) {
				peak = a
			}
		}
	}
	if peak == 0 {
		peak = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	fontSize := cell / 4
	for r, row := range m.Rows() {
		for c, v := range row {
			x := float64(c) * cell
			y := float64(r) * cell
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#303030"/>
`, x, y, cell, cell, shade(v, peak)))
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-family="monospace" font-size="%.1f" fill="#e0e0e0" text-anchor="middle" dominant-baseline="middle">%s</text>
`, x+cell/2, y+cell/2, fontSize, matrix.FormatFloat(v)))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func shade(v, peak float64) string {
	if math.IsNaN(v) {
		return "#404040"
	}
	t := math.Min(math.Abs(v)/peak, 1)
	level := int(40 + t*160)
	if v < 0 {
		return fmt.Sprintf("#%02x1010", level)
	}
	return fmt.Sprintf("#10%02x10", level)
}

// RowsToSVG draws each row of m as a polyline over its column index.
func RowsToSVG(m *matrix.Matrix, width, height int) string {
	rows, cols := m.Shape()
	data := m.Rows()

	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, row := range data {
		for _, v := range row {
			minY = math.Min(minY, v)
			maxY = math.Max(maxY, v)
		}
	}

	rangeX := float64(cols - 1)
	if rangeX == 0 {
		rangeX = 1
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for r := 0; r < rows; r++ {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, seriesColors[r%len(seriesColors)]))
		for c, v := range data[r] {
			x := float64(c) / rangeX * float64(width)
			y := float64(height) - (v-minY)/rangeY*float64(height)
			if c == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		if cols == 1 {
			sb.WriteString(fmt.Sprintf(" L%d,%.1f", width, float64(height)-(data[r][0]-minY)/rangeY*float64(height)))
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// WriteCSV writes m one row per record.
func WriteCSV(w io.Writer, m *matrix.Matrix) error {
	cw := csv.NewWriter(w)
	for _, row := range m.Rows() {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = matrix.FormatFloat(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatCSV, FormatSVG:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (json, csv, svg)", s)
}
