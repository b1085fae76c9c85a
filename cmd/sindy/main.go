package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/sindy/internal/config"
	"github.com/san-kum/sindy/internal/features"
	"github.com/san-kum/sindy/internal/logging"
	"github.com/san-kum/sindy/internal/viz"
)

var (
	dataDir   string
	logLevel  string
	logFormat string
	theme     string

	configFile   string
	preset       string
	integrator   string
	dt           float64
	duration     float64
	sampleEvery  int
	seed         int64
	trajectories int
	perturbation float64
	adaptive     bool
	tolerance    float64
	initState    []float64

	libraryKind string
	degree      float64
	noBias      bool
	interOnly   bool
	noInter     bool
	frequencies float64
	noSin       bool
	noCos       bool
	functions   []string

	columns string
	phase   string
	svgOut  string
	width   int
	height  int
	outFile string

	logger = zap.NewNop()
)

// main registers the commands and exits with status 1 when one fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "sindy",
		Short:         "feature libraries for sparse identification of dynamical systems",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(cmd, logging.DefaultConfig())
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sindy", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "cyberpunk", "color theme: "+strings.Join(viz.ThemeNames(), ", "))

	simulateCmd := newSimulateCmd()

	featuresCmd := &cobra.Command{
		Use:   "features [run_id]",
		Short: "show or recompute the feature matrix of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  runFeatures,
	}
	addLibraryFlags(featuresCmd)

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot feature columns or a phase portrait",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}
	plotCmd.Flags().StringVar(&columns, "columns", "", "feature columns to plot, by index or name")
	plotCmd.Flags().StringVar(&phase, "phase", "", "state indices for a phase portrait, e.g. 0,2")
	plotCmd.Flags().StringVar(&svgOut, "svg", "", "also write the phase portrait as SVG")
	plotCmd.Flags().IntVar(&width, "width", 70, "plot width")
	plotCmd.Flags().IntVar(&height, "height", 15, "plot height")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "report degenerate and collinear features",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run features to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	librariesCmd := &cobra.Command{
		Use:   "libraries",
		Short: "list library kinds and custom functions",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("kinds:     %s\n", strings.Join(features.Kinds, ", "))
			fmt.Printf("functions: %s\n", strings.Join(features.FunctionNames(), ", "))
		},
	}

	rootCmd.AddCommand(simulateCmd, featuresCmd, plotCmd, analyzeCmd, exportCmd, listCmd, presetsCmd, librariesCmd)

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newSimulateCmd registers the simulate flags, resetting their variables to
// the defaults.
func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [model]",
		Short: "simulate trajectories and expand them through a feature library",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulate,
	}
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "record every n-th step")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for perturbed trajectories")
	cmd.Flags().IntVar(&trajectories, "trajectories", 1, "number of trajectories")
	cmd.Flags().Float64Var(&perturbation, "perturbation", 0, "std dev of initial state noise")
	cmd.Flags().BoolVar(&adaptive, "adaptive", false, "adaptive step size")
	cmd.Flags().Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "adaptive error tolerance")
	cmd.Flags().Float64SliceVar(&initState, "init", nil, "initial state")
	addLibraryFlags(cmd)
	return cmd
}

func setupLogger(cmd *cobra.Command, base logging.Config) error {
	cfg := base
	if cmd.Flags().Changed("log-level") || cfg.Level == "" {
		cfg.Level = logLevel
	}
	if cmd.Flags().Changed("log-format") || cfg.Format == "" {
		cfg.Format = logFormat
	}
	l, err := logging.New(cfg)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func addLibraryFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&libraryKind, "library", "", "library kind: "+strings.Join(features.Kinds, ", "))
	cmd.Flags().Float64Var(&degree, "degree", features.DefaultDegree, "polynomial degree")
	cmd.Flags().BoolVar(&noBias, "no-bias", false, "drop the constant polynomial term")
	cmd.Flags().BoolVar(&interOnly, "interaction-only", false, "polynomial terms without repeated factors")
	cmd.Flags().BoolVar(&noInter, "no-interaction", false, "polynomial terms without cross products")
	cmd.Flags().Float64Var(&frequencies, "frequencies", features.DefaultFrequencies, "fourier frequencies")
	cmd.Flags().BoolVar(&noSin, "no-sin", false, "drop fourier sine terms")
	cmd.Flags().BoolVar(&noCos, "no-cos", false, "drop fourier cosine terms")
	cmd.Flags().StringSliceVar(&functions, "functions", nil, "custom functions: "+strings.Join(features.FunctionNames(), ", "))
}

// libraryFromFlags overrides base with the library flags that were set.
// ok is false when no library flag was given.
func libraryFromFlags(cmd *cobra.Command, base features.Config) (cfg features.Config, ok bool) {
	cfg = base
	f := cmd.Flags()
	if f.Changed("library") {
		cfg = features.Config{Kind: libraryKind}
		ok = true
	}
	set := func(name string, apply func()) {
		if f.Changed(name) {
			apply()
			ok = true
		}
	}
	set("degree", func() { cfg.Degree = features.Ptr(degree) })
	set("no-bias", func() { cfg.IncludeBias = features.Ptr(!noBias) })
	set("interaction-only", func() { cfg.InteractionOnly = features.Ptr(interOnly) })
	set("no-interaction", func() { cfg.IncludeInteraction = features.Ptr(!noInter) })
	set("frequencies", func() { cfg.Frequencies = features.Ptr(frequencies) })
	set("no-sin", func() { cfg.IncludeSin = features.Ptr(!noSin) })
	set("no-cos", func() { cfg.IncludeCos = features.Ptr(!noCos) })
	set("functions", func() { cfg.Functions = functions })
	return cfg, ok
}

// parseIndices reads a comma separated list of column indices or names.
func parseIndices(s string, names []string) ([]int, error) {
	var out []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if i, err := strconv.Atoi(field); err == nil {
			out = append(out, i)
			continue
		}
		found := false
		for j, name := range names {
			if name == field {
				out = append(out, j)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown column: %q", field)
		}
	}
	return out, nil
}
