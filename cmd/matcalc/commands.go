package main

import (
	"bufio"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/san-kum/matcalc/internal/automation"
	"github.com/san-kum/matcalc/internal/matrix"
	"github.com/san-kum/matcalc/internal/processor"
	"github.com/san-kum/matcalc/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

func runSession(cmd *cobra.Command, args []string) error {
	p := processor.New(cmd.InOrStdin(), cmd.OutOrStdout(),
		processor.WithLogger(state.log),
		processor.WithRecorder(state.recorder()),
		processor.WithRenderer(state.renderMatrix),
	)
	return p.Run(cmd.Context())
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run(state.recorder())
}

// readInputs returns n matrices, from --preset names when given, otherwise
// from stdin in the "rows cols" line plus rows format.
func readInputs(cmd *cobra.Command, n int) ([]*matrix.Matrix, error) {
	if len(presets) > 0 {
		if len(presets) != n {
			return nil, fmt.Errorf("need %d presets, got %d", n, len(presets))
		}
		out := make([]*matrix.Matrix, n)
		for i, name := range presets {
			p, err := state.cfg.GetPreset(name)
			if err != nil {
				return nil, err
			}
			if out[i], err = p.Matrix(); err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	sc := bufio.NewScanner(cmd.InOrStdin())
	out := make([]*matrix.Matrix, n)
	for i := range out {
		m, err := matrix.Read(sc)
		if err != nil {
			return nil, fmt.Errorf("matrix %d: %w", i+1, err)
		}
		out[i] = m
	}
	return out, nil
}

func printMatrix(cmd *cobra.Command, op string, inputs []*matrix.Matrix, scalar *int, result *matrix.Matrix, start time.Time) {
	fmt.Fprintln(cmd.OutOrStdout(), state.renderMatrix(result))

	rows, cols := result.Shape()
	state.log.Debug("operation finished",
		zap.String("operation", op),
		zap.Int("rows", rows),
		zap.Int("cols", cols),
		zap.Duration("elapsed", time.Since(start)),
	)
	if state.store == nil {
		return
	}
	id, err := state.store.Save(op, inputs, scalar, result)
	if err != nil {
		state.log.Warn("history not saved", zap.String("operation", op), zap.Error(err))
		return
	}
	state.log.Info("recorded", zap.String("id", id), zap.String("operation", op))
}

func binaryCommand(op string, f func(a, b *matrix.Matrix) (*matrix.Matrix, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		in, err := readInputs(cmd, 2)
		if err != nil {
			return err
		}
		result, err := f(in[0], in[1])
		if err != nil {
			return err
		}
		printMatrix(cmd, op, in, nil, result, start)
		return nil
	}
}

var (
	runAdd      = binaryCommand("add", (*matrix.Matrix).Add)
	runMultiply = binaryCommand("multiply", (*matrix.Matrix).Multiply)
)

func runScale(cmd *cobra.Command, args []string) error {
	start := time.Now()
	k, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("constant %q: %w", args[0], matrix.ErrParse)
	}
	in, err := readInputs(cmd, 1)
	if err != nil {
		return err
	}
	printMatrix(cmd, "scale", in, &k, in[0].Scale(k), start)
	return nil
}

func runTranspose(cmd *cobra.Command, args []string) error {
	start := time.Now()
	kind, err := matrix.ParseTransposeKind(args[0])
	if err != nil {
		return err
	}
	in, err := readInputs(cmd, 1)
	if err != nil {
		return err
	}
	result, err := in[0].Transpose(kind)
	if err != nil {
		return err
	}
	printMatrix(cmd, "transpose_"+kind.String(), in, nil, result, start)
	return nil
}

func runInverse(cmd *cobra.Command, args []string) error {
	start := time.Now()
	in, err := readInputs(cmd, 1)
	if err != nil {
		return err
	}
	result, err := in[0].Inverse()
	if err != nil {
		return err
	}
	printMatrix(cmd, "inverse", in, nil, result, start)
	return nil
}

func runDeterminant(cmd *cobra.Command, args []string) error {
	in, err := readInputs(cmd, 1)
	if err != nil {
		return err
	}
	det, err := in[0].Determinant()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), matrix.FormatFloat(det))

	if checkLU {
		lu := mat.Det(in[0].Dense())
		diff := math.Abs(lu - det)
		fmt.Fprintf(cmd.OutOrStdout(), "lu: %s (diff %.3g)\n", matrix.FormatFloat(lu), diff)
		if diff > 1e-9*math.Max(1, math.Abs(det)) {
			state.log.Warn("determinant disagrees with LU", zap.Float64("laplace", det), zap.Float64("lu", lu))
		}
	}

	if state.store != nil {
		if _, err := state.store.SaveValue("determinant", in, det); err != nil {
			state.log.Warn("history not saved", zap.String("operation", "determinant"), zap.Error(err))
		}
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, name := range state.cfg.ListPresets() {
		p, err := state.cfg.GetPreset(name)
		if err != nil {
			return err
		}
		m, err := p.Matrix()
		if err != nil {
			return err
		}
		rows, cols := m.Shape()
		fmt.Fprintf(out, "  %-12s %dx%d  %s\n", name, rows, cols, p.Description)
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	state.log.Info("running scenario", zap.String("name", sc.Name), zap.Int("steps", len(sc.Steps)))

	lookup := func(name string) (*matrix.Matrix, error) {
		p, err := state.cfg.GetPreset(name)
		if err != nil {
			return nil, err
		}
		return p.Matrix()
	}

	results, err := automation.Run(cmd.Context(), sc, lookup)
	out := cmd.OutOrStdout()
	for _, r := range results {
		fmt.Fprintf(out, "[%d] %s\n", r.Step, r.Op)
		if r.Value != nil {
			fmt.Fprintln(out, matrix.FormatFloat(*r.Value))
		} else {
			fmt.Fprintln(out, state.renderMatrix(r.Matrix))
		}
		recordResult(r)
	}
	return err
}

func recordResult(r automation.Result) {
	if state.store == nil {
		return
	}
	var err error
	if r.Value != nil {
		_, err = state.store.SaveValue(r.Op, r.Inputs, *r.Value)
	} else {
		_, err = state.store.Save(r.Op, r.Inputs, r.Scalar, r.Matrix)
	}
	if err != nil {
		state.log.Warn("history not saved", zap.String("operation", r.Op), zap.Error(err))
	}
}
