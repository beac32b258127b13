package main

import (
	"fmt"
	"os"

	"github.com/san-kum/matcalc/internal/config"
	"github.com/san-kum/matcalc/internal/logging"
	"github.com/san-kum/matcalc/internal/matrix"
	"github.com/san-kum/matcalc/internal/processor"
	"github.com/san-kum/matcalc/internal/storage"
	"github.com/san-kum/matcalc/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	dataDir    string
	logLevel   string
	render     string
	noHistory  bool
	presets    []string
	checkLU    bool
)

// app is the state shared by every command once flags are parsed.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	store *storage.Store
}

var state app

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, processor.Message(err))
		if state.log != nil {
			state.log.Debug("command failed", zap.Error(err))
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "matcalc",
		Short:             "console matrix calculator",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if state.log != nil {
				_ = state.log.Sync()
			}
		},
		RunE: runSession,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "history directory")
	pf.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVar(&render, "render", config.DefaultRender, "result rendering (plain, box)")
	pf.BoolVar(&noHistory, "no-history", false, "do not record results")

	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "interactive menu on stdin/stdout",
		RunE:  runSession,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "full-screen interactive calculator",
		RunE:  runTUI,
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "add two matrices read from stdin",
		Args:  cobra.NoArgs,
		RunE:  runAdd,
	}

	scaleCmd := &cobra.Command{
		Use:   "scale [constant]",
		Short: "multiply a matrix by an integer constant",
		Args:  cobra.ExactArgs(1),
		RunE:  runScale,
	}

	multiplyCmd := &cobra.Command{
		Use:   "multiply",
		Short: "multiply two matrices read from stdin",
		Args:  cobra.NoArgs,
		RunE:  runMultiply,
	}

	transposeCmd := &cobra.Command{
		Use:       "transpose [main|side|vertical|horizontal]",
		Short:     "reflect a matrix",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"main", "side", "vertical", "horizontal"},
		RunE:      runTranspose,
	}

	detCmd := &cobra.Command{
		Use:   "det",
		Short: "calculate a determinant",
		Args:  cobra.NoArgs,
		RunE:  runDeterminant,
	}
	detCmd.Flags().BoolVar(&checkLU, "check", false, "cross-check against an LU determinant")

	inverseCmd := &cobra.Command{
		Use:   "inverse",
		Short: "invert a matrix",
		Args:  cobra.NoArgs,
		RunE:  runInverse,
	}

	for _, c := range []*cobra.Command{addCmd, scaleCmd, multiplyCmd, transposeCmd, detCmd, inverseCmd} {
		c.Flags().StringSliceVar(&presets, "preset", nil, "use named sample matrices instead of stdin")
	}

	runCmd := &cobra.Command{
		Use:   "run [scenario.yaml]",
		Short: "run a scripted sequence of operations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list sample matrices",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	})

	rootCmd.AddCommand(sessionCmd, tuiCmd, addCmd, scaleCmd, multiplyCmd, transposeCmd,
		detCmd, inverseCmd, runCmd, presetsCmd, configCmd, newHistoryCmd())

	return rootCmd
}

// setup resolves configuration in order: defaults, config file, MATCALC_*
// environment, explicit flags.
func setup(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("render") {
		cfg.Render = render
	}
	if flags.Changed("no-history") {
		cfg.History = !noHistory
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	state = app{cfg: cfg, log: logger}
	if cfg.History {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		state.store = st
	}
	logger.Debug("configured",
		zap.String("data_dir", cfg.DataDir),
		zap.Bool("history", cfg.History),
		zap.String("render", cfg.Render),
	)
	return nil
}

// recorder returns the history store, or nil when history is off. The nil
// check keeps a nil *Store out of the interface.
func (a *app) recorder() processor.Recorder {
	if a.store == nil {
		return nil
	}
	return a.store
}

func (a *app) renderMatrix(m *matrix.Matrix) string {
	if a.cfg.Render == "box" {
		return viz.RenderMatrix(m)
	}
	return m.String()
}
