package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/san-kum/matcalc/internal/export"
	"github.com/san-kum/matcalc/internal/matrix"
	"github.com/san-kum/matcalc/internal/storage"
	"github.com/san-kum/matcalc/internal/viz"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
	svgCell      float64
	plotSVG      string
)

func newHistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "inspect recorded results",
	}

	exportCmd := &cobra.Command{
		Use:   "export [id]",
		Short: "write a recorded result as json, csv or svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportHistory,
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", string(export.FormatJSON), "output format (json, csv, svg)")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "write to file instead of stdout")
	exportCmd.Flags().Float64Var(&svgCell, "cell", 48, "svg cell size in pixels")

	plotCmd := &cobra.Command{
		Use:   "plot [id]",
		Short: "plot each row of a recorded result",
		Args:  cobra.ExactArgs(1),
		RunE:  plotHistory,
	}
	plotCmd.Flags().StringVar(&plotSVG, "svg", "", "also write the plot as svg to this file")

	historyCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "list recorded results",
			Args:  cobra.NoArgs,
			RunE:  listHistory,
		},
		&cobra.Command{
			Use:   "show [id]",
			Short: "print a recorded result",
			Args:  cobra.ExactArgs(1),
			RunE:  showHistory,
		},
		plotCmd,
		exportCmd,
	)
	return historyCmd
}

// historyStore reads from the data directory even when recording is off.
func historyStore() *storage.Store {
	if state.store != nil {
		return state.store
	}
	return storage.New(state.cfg.DataDir)
}

func listHistory(cmd *cobra.Command, args []string) error {
	entries, err := historyStore().List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no results recorded")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tOPERATION\tTIME\tINPUTS\tRESULT")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.Operation,
			e.Timestamp.Format("2006-01-02 15:04:05"),
			formatShapes(e.Inputs),
			formatResult(e),
		)
	}
	return w.Flush()
}

func formatShapes(shapes []storage.Shape) string {
	s := ""
	for i, sh := range shapes {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%dx%d", sh.Rows, sh.Cols)
	}
	return s
}

func formatResult(e storage.Entry) string {
	switch {
	case e.Value != nil:
		return matrix.FormatFloat(*e.Value)
	case e.Result != nil:
		return fmt.Sprintf("%dx%d", e.Result.Rows, e.Result.Cols)
	}
	return "-"
}

func showHistory(cmd *cobra.Command, args []string) error {
	st := historyStore()
	entry, err := st.Load(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "id: %s\n", entry.ID)
	fmt.Fprintf(out, "operation: %s\n", entry.Operation)
	fmt.Fprintf(out, "inputs: %s\n", formatShapes(entry.Inputs))
	if entry.Scalar != nil {
		fmt.Fprintf(out, "constant: %d\n", *entry.Scalar)
	}
	if entry.Value != nil {
		fmt.Fprintf(out, "The result is:\n%s\n", matrix.FormatFloat(*entry.Value))
		return nil
	}

	m, err := st.LoadMatrix(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "The result is:\n%s\n", state.renderMatrix(m))
	return nil
}

func plotHistory(cmd *cobra.Command, args []string) error {
	m, err := historyStore().LoadMatrix(args[0])
	if errors.Is(err, storage.ErrNoMatrix) {
		return fmt.Errorf("%s holds a single value, nothing to plot", args[0])
	}
	if err != nil {
		return err
	}
	rows, cols := m.Shape()
	fmt.Fprintln(cmd.OutOrStdout(), viz.PlotRows(m, fmt.Sprintf("%s: %d rows over %d columns", args[0], rows, cols)))

	if plotSVG != "" {
		if err := os.WriteFile(plotSVG, []byte(export.RowsToSVG(m, 640, 320)), 0644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", plotSVG)
	}
	return nil
}


func exportHistory(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	st := historyStore()
	if format == export.FormatJSON {
		return st.ExportJSON(w, args[0])
	}

	m, err := st.LoadMatrix(args[0])
	if err != nil {
		return err
	}
	switch format {
	case export.FormatCSV:
		return export.WriteCSV(w, m)
	default:
		_, err = fmt.Fprintln(w, export.MatrixToSVG(m, svgCell))
		return err
	}
}
