// Package processor runs the interactive calculator session: it prints the
// menu, reads matrices in the shape-line-then-rows text format, calls into
// the matrix core and prints "The result is:" blocks. Errors end the current
// operation, never the session.
package processor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/matcalc/internal/matrix"
	"go.uber.org/zap"
)

const (
	menu = `1. Add matrices
2. Multiply matrix by a constant
3. Multiply matrices
4. Transpose matrix
5. Calculate a determinant
6. Inverse matrix
0. Exit
Your choice: `

	transposeMenu = `
1. Main diagonal
2. Side diagonal
3. Vertical line
4. Horizontal line
Your choice: `

	msgCannotPerform = "The operation cannot be performed."
	msgNoInverse     = "This matrix doesn't have an inverse."
	msgInvalidChoice = "Not a valid choice!"
)

// ErrInvalidChoice is reported for menu numbers outside 0..6.
var ErrInvalidChoice = errors.New("processor: invalid menu choice")

// Recorder receives every successful computation.
type Recorder interface {
	Save(op string, inputs []*matrix.Matrix, scalar *int, result *matrix.Matrix) (string, error)
	SaveValue(op string, inputs []*matrix.Matrix, value float64) (string, error)
}

type Processor struct {
	in     *bufio.Scanner
	out    io.Writer
	log    *zap.Logger
	rec    Recorder
	render func(*matrix.Matrix) string
}

type Option func(*Processor)

func WithLogger(l *zap.Logger) Option {
	return func(p *Processor) { p.log = l }
}

func WithRecorder(r Recorder) Option {
	return func(p *Processor) { p.rec = r }
}

// WithRenderer replaces Matrix.String for result output.
func WithRenderer(f func(*matrix.Matrix) string) Option {
	return func(p *Processor) { p.render = f }
}

func New(in io.Reader, out io.Writer, opts ...Option) *Processor {
	p := &Processor{
		in:     bufio.NewScanner(in),
		out:    out,
		log:    zap.NewNop(),
		render: (*matrix.Matrix).String,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run loops over the menu until the user picks 0, input ends, or ctx is
// canceled.
func (p *Processor) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(p.out, menu)
		line, err := p.readLine()
		if err != nil {
			return ignoreEOF(err)
		}

		choice, err := strconv.Atoi(line)
		if err != nil {
			p.report(ErrInvalidChoice)
			continue
		}
		if choice == 0 {
			return nil
		}

		start := time.Now()
		err = p.dispatch(choice)
		if errors.Is(err, io.EOF) {
			return nil
		}
		p.log.Debug("operation finished",
			zap.Int("choice", choice),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		if err != nil {
			p.report(err)
			continue
		}
		fmt.Fprintln(p.out)
	}
}

func (p *Processor) dispatch(choice int) error {
	switch choice {
	case 1:
		return p.binary("add", (*matrix.Matrix).Add)
	case 2:
		return p.scale()
	case 3:
		return p.binary("multiply", (*matrix.Matrix).Multiply)
	case 4:
		return p.transpose()
	case 5:
		return p.determinant()
	case 6:
		return p.unary("inverse", (*matrix.Matrix).Inverse)
	}
	return fmt.Errorf("%d: %w", choice, ErrInvalidChoice)
}

func (p *Processor) binary(op string, f func(a, b *matrix.Matrix) (*matrix.Matrix, error)) error {
	a, err := p.readMatrix("first ")
	if err != nil {
		return err
	}
	b, err := p.readMatrix("second ")
	if err != nil {
		return err
	}
	result, err := f(a, b)
	if err != nil {
		return err
	}
	p.printMatrix(result)
	p.record(op, []*matrix.Matrix{a, b}, nil, result)
	return nil
}

func (p *Processor) unary(op string, f func(m *matrix.Matrix) (*matrix.Matrix, error)) error {
	m, err := p.readMatrix("")
	if err != nil {
		return err
	}
	result, err := f(m)
	if err != nil {
		return err
	}
	p.printMatrix(result)
	p.record(op, []*matrix.Matrix{m}, nil, result)
	return nil
}

func (p *Processor) scale() error {
	m, err := p.readMatrix("")
	if err != nil {
		return err
	}
	fmt.Fprint(p.out, "Enter constant: ")
	line, err := p.readLine()
	if err != nil {
		return err
	}
	k, err := strconv.Atoi(line)
	if err != nil {
		return fmt.Errorf("constant %q: %w", line, matrix.ErrParse)
	}
	result := m.Scale(k)
	p.printMatrix(result)
	p.record("scale", []*matrix.Matrix{m}, &k, result)
	return nil
}

func (p *Processor) transpose() error {
	fmt.Fprint(p.out, transposeMenu)
	line, err := p.readLine()
	if err != nil {
		return err
	}
	// validate before asking for the matrix
	kind, err := matrix.ParseTransposeKind(line)
	if err != nil {
		return err
	}
	return p.unary("transpose_"+kind.String(), func(m *matrix.Matrix) (*matrix.Matrix, error) {
		return m.Transpose(kind)
	})
}

func (p *Processor) determinant() error {
	m, err := p.readMatrix("")
	if err != nil {
		return err
	}
	det, err := m.Determinant()
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "The result is:\n%s\n", matrix.FormatFloat(det))
	if p.rec != nil {
		if _, err := p.rec.SaveValue("determinant", []*matrix.Matrix{m}, det); err != nil {
			p.log.Warn("history not saved", zap.String("operation", "determinant"), zap.Error(err))
		}
	}
	return nil
}

func (p *Processor) readMatrix(prefix string) (*matrix.Matrix, error) {
	fmt.Fprintf(p.out, "Enter size of %smatrix: ", prefix)
	rows, cols, err := matrix.ReadShape(p.in)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(p.out, "Enter %smatrix:\n", prefix)
	m, err := matrix.ReadMatrix(p.in, rows, cols)
	if err != nil {
		return nil, err
	}
	p.log.Debug("matrix read", zap.String("which", strings.TrimSpace(prefix)), zap.Int("rows", rows), zap.Int("cols", cols))
	return m, nil
}

func (p *Processor) readLine() (string, error) {
	for p.in.Scan() {
		if line := strings.TrimSpace(p.in.Text()); line != "" {
			return line, nil
		}
	}
	if err := p.in.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (p *Processor) printMatrix(m *matrix.Matrix) {
	fmt.Fprintf(p.out, "The result is:\n%s\n", p.render(m))
}

func (p *Processor) record(op string, inputs []*matrix.Matrix, scalar *int, result *matrix.Matrix) {
	if p.rec == nil {
		return
	}
	if _, err := p.rec.Save(op, inputs, scalar, result); err != nil {
		p.log.Warn("history not saved", zap.String("operation", op), zap.Error(err))
	}
}

func (p *Processor) report(err error) {
	fmt.Fprintf(p.out, "%s\n\n", Message(err))
}

// Message maps an error to the text shown to the user.
func Message(err error) string {
	switch {
	case errors.Is(err, matrix.ErrShape):
		return msgCannotPerform
	case errors.Is(err, matrix.ErrSingular):
		return msgNoInverse
	case errors.Is(err, matrix.ErrInvalidChoice), errors.Is(err, ErrInvalidChoice):
		return msgInvalidChoice
	}
	return "Invalid input: " + err.Error()
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
