// Package viz renders matrices for the terminal: a framed grid with aligned
// columns and an ASCII line plot with one series per row.
package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/matcalc/internal/matrix"
)

// RenderMatrix draws m inside a rounded box with right-aligned columns.
func RenderMatrix(m *matrix.Matrix) string {
	rows := m.Rows()
	cells := make([][]string, len(rows))
	widths := make([]int, m.NumCols())
	for i, row := range rows {
		cells[i] = make([]string, len(row))
		for j, v := range row {
			s := matrix.FormatFloat(v)
			cells[i][j] = s
			if w := lipgloss.Width(s); w > widths[j] {
				widths[j] = w
			}
		}
	}

	lines := make([]string, len(cells))
	for i, row := range cells {
		parts := make([]string, len(row))
		for j, s := range row {
			parts[j] = Cell.Width(widths[j]).Render(s)
		}
		lines[i] = strings.Join(parts, "  ")
	}
	return Box.Render(strings.Join(lines, "\n"))
}

// PlotRows plots each row of m as a series over the column index.
func PlotRows(m *matrix.Matrix, caption string) string {
	rows := m.Rows()
	if m.NumCols() == 1 {
		for i := range rows {
			rows[i] = append(rows[i], rows[i][0])
		}
	}

	colors := []asciigraph.AnsiColor{
		asciigraph.Cyan, asciigraph.Magenta, asciigraph.Yellow,
		asciigraph.Green, asciigraph.Red, asciigraph.Blue,
	}
	series := make([]asciigraph.AnsiColor, len(rows))
	for i := range series {
		series[i] = colors[i%len(colors)]
	}

	return asciigraph.PlotMany(rows,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(series...),
	)
}
