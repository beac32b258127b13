package tui

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/matcalc/internal/matrix"
	"github.com/san-kum/matcalc/internal/processor"
	"github.com/san-kum/matcalc/internal/viz"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

type operation struct {
	name   string
	inputs int
}

var operations = []operation{
	{"add matrices", 2},
	{"multiply by a constant", 1},
	{"multiply matrices", 2},
	{"transpose", 1},
	{"determinant", 1},
	{"inverse", 1},
}

var transposeKinds = []matrix.TransposeKind{
	matrix.MainDiagonal, matrix.SideDiagonal, matrix.VerticalLine, matrix.HorizontalLine,
}

type state int

const (
	stateMenu state = iota
	stateTranspose
	stateShape
	stateRow
	stateConstant
	stateResult
)

type model struct {
	state  state
	cursor int
	op     int
	kind   matrix.TransposeKind

	inputs     []*matrix.Matrix
	rows, cols int
	pending    [][]float64
	buf        string

	result string
	err    string

	rec processor.Recorder
}

// New returns the calculator model. rec may be nil.
func New(rec processor.Recorder) tea.Model {
	return model{rec: rec}
}

// Run starts the full-screen calculator.
func Run(rec processor.Recorder) error {
	_, err := tea.NewProgram(New(rec)).Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.state {
	case stateMenu:
		return m.menuKey(key)
	case stateTranspose:
		return m.transposeKey(key), nil
	case stateShape, stateRow, stateConstant:
		return m.inputKey(key), nil
	case stateResult:
		m.reset()
		return m, nil
	}
	return m, nil
}

func (m model) menuKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(operations)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.op = m.cursor
		m.cursor = 0
		if m.op == 3 {
			m.state = stateTranspose
		} else {
			m.state = stateShape
		}
	default:
		if n, err := strconv.Atoi(key.String()); err == nil && n >= 1 && n <= len(operations) {
			m.cursor = n - 1
			return m.menuKey(tea.KeyMsg{Type: tea.KeyEnter})
		}
	}
	return m, nil
}

func (m model) transposeKey(key tea.KeyMsg) model {
	switch key.String() {
	case "esc", "q":
		m.reset()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(transposeKinds)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.kind = transposeKinds[m.cursor]
		m.state = stateShape
	}
	return m
}

func (m model) inputKey(key tea.KeyMsg) model {
	switch key.Type {
	case tea.KeyEsc:
		m.reset()
		return m
	case tea.KeyBackspace:
		if len(m.buf) > 0 {
			m.buf = m.buf[:len(m.buf)-1]
		}
		return m
	case tea.KeyEnter:
		return m.submit()
	case tea.KeySpace:
		m.buf += " "
		return m
	case tea.KeyRunes:
		for _, r := range key.Runes {
			if strings.ContainsRune("0123456789.-+eE ", r) {
				m.buf += string(r)
			}
		}
	}
	return m
}

func (m model) submit() model {
	m.err = ""
	line := strings.TrimSpace(m.buf)
	m.buf = ""

	switch m.state {
	case stateShape:
		rows, cols, err := matrix.ReadShape(bufio.NewScanner(strings.NewReader(line)))
		if err != nil {
			m.err = processor.Message(err)
			return m
		}
		m.rows, m.cols = rows, cols
		m.pending = nil
		m.state = stateRow

	case stateRow:
		row, err := matrix.Parse(line)
		if err == nil && row.NumCols() != m.cols {
			err = fmt.Errorf("%d values, want %d: %w", row.NumCols(), m.cols, matrix.ErrBadShape)
		}
		if err != nil {
			m.err = processor.Message(err)
			return m
		}
		m.pending = append(m.pending, row.Rows()[0])
		if len(m.pending) < m.rows {
			return m
		}
		in, err := matrix.FromRows(m.pending)
		if err != nil {
			m.err = processor.Message(err)
			return m
		}
		m.inputs = append(m.inputs, in)
		switch {
		case len(m.inputs) < operations[m.op].inputs:
			m.state = stateShape
		case m.op == 1:
			m.state = stateConstant
		default:
			return m.compute(0)
		}

	case stateConstant:
		k, err := strconv.Atoi(line)
		if err != nil {
			m.err = processor.Message(fmt.Errorf("constant %q: %w", line, matrix.ErrParse))
			return m
		}
		return m.compute(k)
	}
	return m
}

func (m model) compute(k int) model {
	var (
		result *matrix.Matrix
		err    error
		op     string
	)
	in := m.inputs
	switch m.op {
	case 0:
		op = "add"
		result, err = in[0].Add(in[1])
	case 1:
		op = "scale"
		result = in[0].Scale(k)
	case 2:
		op = "multiply"
		result, err = in[0].Multiply(in[1])
	case 3:
		op = "transpose_" + m.kind.String()
		result, err = in[0].Transpose(m.kind)
	case 4:
		var det float64
		if det, err = in[0].Determinant(); err == nil {
			m.result = matrix.FormatFloat(det)
			if m.rec != nil {
				_, _ = m.rec.SaveValue("determinant", in, det)
			}
		}
	case 5:
		op = "inverse"
		result, err = in[0].Inverse()
	}

	m.state = stateResult
	if err != nil {
		m.err = processor.Message(err)
		return m
	}
	if result != nil {
		m.result = viz.RenderMatrix(result)
		if m.rec != nil {
			var scalar *int
			if m.op == 1 {
				scalar = &k
			}
			_, _ = m.rec.Save(op, in, scalar, result)
		}
	}
	return m
}

func (m *model) reset() {
	m.state = stateMenu
	m.cursor = 0
	m.inputs = nil
	m.pending = nil
	m.buf = ""
	m.result = ""
	m.err = ""
	m.kind = 0
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("          " + cyan.Render("m a t c a l c") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	switch m.state {
	case stateMenu:
		for i, op := range operations {
			label := fmt.Sprintf("%d. %s", i+1, op.name)
			if i == m.cursor {
				b.WriteString("      " + cyan.Render("▸ ") + white.Render(label) + "\n")
			} else {
				b.WriteString("        " + dim.Render(label) + "\n")
			}
		}
		b.WriteString("\n" + viz.KeyHint.Render("      ↑↓ select   enter choose   q quit") + "\n")

	case stateTranspose:
		for i, kind := range transposeKinds {
			label := fmt.Sprintf("%d. %s", int(kind), kind)
			if i == m.cursor {
				b.WriteString("      " + cyan.Render("▸ ") + white.Render(label) + "\n")
			} else {
				b.WriteString("        " + dim.Render(label) + "\n")
			}
		}
		b.WriteString("\n" + viz.KeyHint.Render("      ↑↓ select   enter choose   esc back") + "\n")

	case stateShape, stateRow, stateConstant:
		b.WriteString("      " + viz.Title.Render(operations[m.op].name) + "\n\n")
		b.WriteString("      " + dim.Render(m.prompt()) + "\n")
		b.WriteString("      " + magenta.Render(m.buf+"▋") + "\n")
		b.WriteString("\n" + viz.KeyHint.Render("      enter submit   esc back") + "\n")

	case stateResult:
		if m.err == "" {
			b.WriteString("      " + viz.Title.Render("The result is:") + "\n")
			b.WriteString(indent(m.result, "      ") + "\n")
		}
		b.WriteString("\n" + viz.KeyHint.Render("      any key to continue") + "\n")
	}

	if m.err != "" {
		b.WriteString("\n      " + viz.ErrorText.Render(m.err) + "\n")
	}
	return b.String()
}

func (m model) prompt() string {
	which := ""
	if operations[m.op].inputs == 2 {
		which = [...]string{"first ", "second "}[len(m.inputs)]
	}
	switch m.state {
	case stateShape:
		return "Enter size of " + which + "matrix:"
	case stateRow:
		return fmt.Sprintf("Enter %smatrix, row %d of %d:", which, len(m.pending)+1, m.rows)
	case stateConstant:
		return "Enter constant:"
	}
	return ""
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
