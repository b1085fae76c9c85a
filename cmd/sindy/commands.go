package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/sindy/internal/analysis"
	"github.com/san-kum/sindy/internal/config"
	"github.com/san-kum/sindy/internal/experiment"
	"github.com/san-kum/sindy/internal/export"
	"github.com/san-kum/sindy/internal/features"
	"github.com/san-kum/sindy/internal/storage"
	"github.com/san-kum/sindy/internal/viz"
)

// loadConfig resolves preset, then config file, then explicit flags.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	model := cfg.Model
	if len(args) > 0 {
		model = args[0]
	}

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
		if len(args) == 0 {
			model = cfg.Model
		}
	}
	cfg.Model = model

	f := cmd.Flags()
	if f.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if f.Changed("dt") {
		cfg.Dt = dt
	}
	if f.Changed("time") {
		cfg.Duration = duration
	}
	if f.Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if f.Changed("seed") {
		cfg.Seed = seed
	}
	if f.Changed("trajectories") {
		cfg.Trajectories = trajectories
	}
	if f.Changed("perturbation") {
		cfg.Perturbation = perturbation
	}
	if f.Changed("adaptive") {
		cfg.Adaptive = adaptive
	}
	if f.Changed("tolerance") {
		cfg.Tolerance = tolerance
	}
	if f.Changed("init") {
		cfg.InitState = initState
	}
	cfg.Library, _ = libraryFromFlags(cmd, cfg.Library)

	return cfg, cfg.Validate()
}

func openStore() (*storage.Store, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if configFile != "" {
		if err := setupLogger(cmd, cfg.Log); err != nil {
			return err
		}
	}

	st, err := openStore()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("running simulation", zap.String("model", cfg.Model), zap.String("library", cfg.Library.Kind))
	start := time.Now()
	res, err := experiment.New(cfg, experiment.NewRegistry(), logger).Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	meta := &storage.RunMetadata{
		Model:      cfg.Model,
		Seed:       cfg.Seed,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Integrator: cfg.Integrator,
		Params:     cfg.Params,
		InputNames: res.InputNames,
	}
	runID, err := st.Save(meta, res.Trajectories)
	if err != nil {
		return err
	}
	if err := st.SaveFeatures(runID, cfg.Library, res.FeatureNames, res.Theta); err != nil {
		return err
	}
	logger.Info("run saved", zap.String("run", runID), zap.Duration("elapsed", elapsed))

	table, err := viz.FeatureTable(res.Theta, res.FeatureNames, viz.GetTheme(theme))
	if err != nil {
		return err
	}
	fmt.Println(table)
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}
	fmt.Println(viz.RunTable(runs, viz.GetTheme(theme)))
	return nil
}

// runFeatures prints the stored feature matrix, or re-expands the stored
// states when library flags are given.
func runFeatures(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st, err := openStore()
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	base := features.Config{Kind: features.KindPolynomial}
	if meta.Library != nil {
		base = *meta.Library
	}
	libCfg, changed := libraryFromFlags(cmd, base)

	names, theta, err := st.LoadFeatures(runID)
	if changed || errors.Is(err, storage.ErrNoFeatures) {
		lib, err := features.FromConfig(libCfg)
		if err != nil {
			return err
		}
		x, err := st.LoadMatrix(runID)
		if err != nil {
			return err
		}
		if theta, err = lib.FitTransform(x); err != nil {
			return err
		}
		if names, err = lib.FeatureNames(meta.InputNames); err != nil {
			return err
		}
		if err := st.SaveFeatures(runID, libCfg, names, theta); err != nil {
			return err
		}
		logger.Info("features recomputed", zap.String("run", runID), zap.String("library", libCfg.Kind),
			zap.Int("features", len(names)))
	} else if err != nil {
		return err
	}

	table, err := viz.FeatureTable(theta, names, viz.GetTheme(theme))
	if err != nil {
		return err
	}
	fmt.Println(table)
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st, err := openStore()
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	if phase != "" {
		x, err := st.LoadMatrix(runID)
		if err != nil {
			return err
		}
		idx, err := parseIndices(phase, meta.InputNames)
		if err != nil {
			return err
		}
		if len(idx) != 2 {
			return fmt.Errorf("--phase needs two state indices, got %d", len(idx))
		}
		canvas, err := viz.Attractor(x, idx[0], idx[1], width, height)
		if err != nil {
			return err
		}
		fmt.Printf("%s vs %s\n", meta.InputNames[idx[1]], meta.InputNames[idx[0]])
		fmt.Print(canvas.String())

		if svgOut != "" {
			portrait, err := analysis.NewPhasePortrait(x, idx[0], idx[1])
			if err != nil {
				return err
			}
			f, err := os.Create(svgOut)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := export.PortraitSVG(f, portrait, 800, 600, string(viz.GetTheme(theme).Primary)); err != nil {
				return err
			}
			logger.Info("svg written", zap.String("path", svgOut))
		}
		return nil
	}

	names, theta, err := st.LoadFeatures(runID)
	if err != nil {
		return err
	}
	cols := []int{0}
	if columns != "" {
		if cols, err = parseIndices(columns, names); err != nil {
			return err
		}
	}
	chart, err := viz.ColumnPlot(theta, names, cols, width, height)
	if err != nil {
		return err
	}
	fmt.Println(chart)
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	names, theta, err := st.LoadFeatures(args[0])
	if err != nil {
		return err
	}

	stats, err := analysis.Summarize(theta, names)
	if err != nil {
		return err
	}
	pairs, err := analysis.Correlated(theta, names, 0.99)
	if err != nil {
		return err
	}

	fmt.Printf("condition number: %.4g\n", analysis.Condition(theta))
	if deg := analysis.Degenerate(stats, viz.DegenerateTol); len(deg) > 0 {
		fmt.Printf("constant features: %v\n", deg)
	}
	if len(pairs) == 0 {
		fmt.Println("no collinear feature pairs")
		return nil
	}
	fmt.Println("collinear feature pairs:")
	for _, p := range pairs {
		fmt.Printf("  %-12s %-12s r=%+.4f\n", p.A, p.B, p.R)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	w := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return st.ExportJSON(w, args[0])
}
