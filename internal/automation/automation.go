package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/matcalc/internal/matrix"
	"gopkg.in/yaml.v3"
)

// ErrUnknownMatrix is returned when a step names a matrix that is neither
// defined in the scenario, saved by an earlier step, nor found by the
// fallback lookup.
var ErrUnknownMatrix = errors.New("automation: unknown matrix")

// Scenario is a scripted sequence of matrix operations.
type Scenario struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description"`
	Matrices    map[string][][]float64 `yaml:"matrices"`
	Steps       []Step                 `yaml:"steps"`
}

// Step is a single operation. Inputs name matrices from the scenario, from
// an earlier step's save_as, or from the lookup passed to Run.
type Step struct {
	Op       string   `yaml:"op"`
	Inputs   []string `yaml:"inputs"`
	Constant int      `yaml:"constant"`
	Kind     string   `yaml:"kind"`
	SaveAs   string   `yaml:"save_as"`
}

// Result holds the outcome of one step: Matrix for matrix-valued
// operations, Value for determinants.
type Result struct {
	Step   int
	Op     string
	Inputs []*matrix.Matrix
	Scalar *int
	Matrix *matrix.Matrix
	Value  *float64
}

// LookupFunc resolves names the scenario does not define itself.
type LookupFunc func(name string) (*matrix.Matrix, error)

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", sc.Name)
	}
	return &sc, nil
}

// arity is the number of inputs each operation takes.
var arity = map[string]int{
	"add":         2,
	"multiply":    2,
	"scale":       1,
	"transpose":   1,
	"determinant": 1,
	"inverse":     1,
}

var aliases = map[string]string{
	"det": "determinant",
	"mul": "multiply",
}

// Run executes the steps in order and stops at the first failing one. The
// results of completed steps are returned alongside the error.
func Run(ctx context.Context, sc *Scenario, lookup LookupFunc) ([]Result, error) {
	named := make(map[string]*matrix.Matrix, len(sc.Matrices))
	for name, rows := range sc.Matrices {
		m, err := matrix.FromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("matrix %s: %w", name, err)
		}
		named[name] = m
	}

	resolve := func(name string) (*matrix.Matrix, error) {
		if m, ok := named[name]; ok {
			return m, nil
		}
		if lookup != nil {
			if m, err := lookup(name); err == nil {
				return m, nil
			}
		}
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownMatrix)
	}

	results := make([]Result, 0, len(sc.Steps))
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res, err := runStep(step, resolve)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
		res.Step = i + 1

		if step.SaveAs != "" {
			if res.Matrix == nil {
				return results, fmt.Errorf("step %d: save_as needs a matrix result", i+1)
			}
			named[step.SaveAs] = res.Matrix
		}
		results = append(results, res)
	}
	return results, nil
}

func runStep(step Step, resolve func(string) (*matrix.Matrix, error)) (Result, error) {
	op := step.Op
	if a, ok := aliases[op]; ok {
		op = a
	}
	n, ok := arity[op]
	if !ok {
		return Result{}, fmt.Errorf("unknown operation %q", step.Op)
	}
	if len(step.Inputs) != n {
		return Result{}, fmt.Errorf("want %d inputs, got %d", n, len(step.Inputs))
	}

	in := make([]*matrix.Matrix, n)
	for i, name := range step.Inputs {
		m, err := resolve(name)
		if err != nil {
			return Result{}, err
		}
		in[i] = m
	}

	res := Result{Op: op, Inputs: in}
	var err error
	switch op {
	case "add":
		res.Matrix, err = in[0].Add(in[1])
	case "multiply":
		res.Matrix, err = in[0].Multiply(in[1])
	case "scale":
		k := step.Constant
		res.Scalar = &k
		res.Matrix = in[0].Scale(k)
	case "transpose":
		var kind matrix.TransposeKind
		if kind, err = matrix.ParseTransposeKind(step.Kind); err == nil {
			res.Op = "transpose_" + kind.String()
			res.Matrix, err = in[0].Transpose(kind)
		}
	case "determinant":
		var det float64
		if det, err = in[0].Determinant(); err == nil {
			res.Value = &det
		}
	case "inverse":
		res.Matrix, err = in[0].Inverse()
	}
	return res, err
}
