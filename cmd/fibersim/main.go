package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/fibersim/internal/analysis"
	"github.com/san-kum/fibersim/internal/config"
	"github.com/san-kum/fibersim/internal/drive"
	"github.com/san-kum/fibersim/internal/export"
	"github.com/san-kum/fibersim/internal/graph"
	"github.com/san-kum/fibersim/internal/metrics"
	"github.com/san-kum/fibersim/internal/propagate"
	"github.com/san-kum/fibersim/internal/sim"
	"github.com/san-kum/fibersim/internal/storage"
	"github.com/san-kum/fibersim/internal/tissue"
	"github.com/san-kum/fibersim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir        string
	driveName      string
	ticks          int
	dt             float64
	seed           int64
	intensity      float64
	pumpAmount     float64
	capPercentage  float64
	forceThreshold float64
	coupling       float64
	pumpNode       string
	pumpTick       int
	fiberIndex     int
	numRuns        int
	outPath        string
	seriesOnly     bool
	// Config file
	configFile string
	// Preset name
	preset string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fibersim",
		Short: "muscle fiber network simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live keyboard view when no command given
			return runLive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fibersim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless simulation",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVar(&pumpNode, "pump-node", "g", "fiber to pump at start")
	runCmd.Flags().IntVar(&pumpTick, "pump-tick", 0, "tick of the initial pump")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive keyboard view",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&fiberIndex, "fiber", -1, "fiber index to plot (-1 for mean force)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSVRun,
	}
	exportCSVCmd.Flags().StringVar(&outPath, "out", "run.csv", "output path")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSONRun,
	}
	exportJSONCmd.Flags().StringVar(&outPath, "out", "", "output path (stdout when empty)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "run a simulation and render it as SVG",
		RunE:  exportSVGRun,
	}
	addSimFlags(exportSVGCmd)
	exportSVGCmd.Flags().StringVar(&outPath, "out", "network.svg", "output path")
	exportSVGCmd.Flags().BoolVar(&seriesOnly, "series", false, "render the force series instead of the network")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "rhythm analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run seeded variants concurrently",
		RunE:  runEnsemble,
	}
	addSimFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 4, "number of runs")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the network update loop",
		RunE:  benchNetwork,
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, analyzeCmd, presetsCmd, ensembleCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&driveName, "drive", "none", "autonomous drive (none, breathing, spasm)")
	cmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "seconds per tick")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().Float64Var(&intensity, "intensity", config.DefaultIntensity, "stimulation intensity")
	cmd.Flags().Float64Var(&pumpAmount, "pump", config.DefaultPumpAmount, "energy per pump")
	cmd.Flags().Float64Var(&capPercentage, "cap", config.DefaultCapPercentage, "propagation decay per hop")
	cmd.Flags().Float64Var(&forceThreshold, "threshold", config.DefaultForceThreshold, "propagation cutoff")
	cmd.Flags().Float64Var(&coupling, "coupling", config.DefaultCoupling, "diffusion coupling strength")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers preset, config file and flags: flags win over the
// config file, the config file wins over the preset.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
		cfg.FillDriveDefaults()
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("drive") {
		cfg.Drive = driveName
	}
	if cmd.Flags().Changed("ticks") {
		cfg.Ticks = ticks
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("intensity") {
		cfg.Intensity = intensity
	}
	if cmd.Flags().Changed("pump") {
		cfg.PumpAmount = pumpAmount
	}
	if cmd.Flags().Changed("cap") {
		cfg.CapPercentage = capPercentage
	}
	if cmd.Flags().Changed("threshold") {
		cfg.ForceThreshold = forceThreshold
	}
	if cmd.Flags().Changed("coupling") {
		cfg.Coupling = coupling
	}
	if cfg.PumpAmount == 0 {
		cfg.PumpAmount = config.DefaultPumpAmount
	}

	return cfg, nil
}

func buildDriver(cfg *config.Config, seed int64) drive.Driver {
	switch cfg.Drive {
	case "breathing":
		return drive.NewBreathing(cfg.Breathing.Amplitude, cfg.Breathing.Period)
	case "spasm":
		return drive.NewSpasm(seed, cfg.Spasm.Probability, cfg.Spasm.Burst)
	default:
		return drive.NewNone()
	}
}

func buildRunner(cfg *config.Config, seed int64) (*sim.Runner, *graph.Graph, error) {
	g, err := cfg.BuildGraph()
	if err != nil {
		return nil, nil, err
	}
	tis := tissue.New(g.Len(), cfg.Coupling, cfg.FiberParams())
	r := sim.New(tis, propagate.New(g), buildDriver(cfg, seed))
	r.AddMetric(metrics.NewMeanForce())
	r.AddMetric(metrics.NewPeakForce())
	r.AddMetric(metrics.NewFatigueIndex())
	r.AddMetric(metrics.NewDamageLoad())
	return r, g, nil
}

func simConfig(cfg *config.Config) sim.Config {
	return sim.Config{
		Ticks:          cfg.Ticks,
		Dt:             cfg.Dt,
		Intensity:      cfg.Intensity,
		CapPercentage:  cfg.CapPercentage,
		ForceThreshold: cfg.ForceThreshold,
		Seed:           cfg.Seed,
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner, _, err := buildRunner(cfg, cfg.Seed)
	if err != nil {
		return err
	}

	if pumpNode != "" {
		runner.Schedule(sim.Event{
			Tick:   pumpTick,
			Node:   rune(pumpNode[0]),
			Amount: cfg.PumpAmount,
		})
	}

	fmt.Printf("running %s network for %d ticks...\n", cfg.Drive, cfg.Ticks)
	start := time.Now()

	result, err := runner.Run(context.Background(), simConfig(cfg))
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Drive, cfg.Dt, cfg.Ticks, cfg.Seed, cfg.Coupling, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.TicksRun)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	g, err := cfg.BuildGraph()
	if err != nil {
		return err
	}
	rebuild := func() *tissue.Tissue {
		return tissue.New(g.Len(), cfg.Coupling, cfg.FiberParams())
	}

	return viz.Run(g, rebuild(), propagate.New(g), buildDriver(cfg, cfg.Seed), rebuild, viz.Options{
		Intensity:      cfg.Intensity,
		PumpAmount:     cfg.PumpAmount,
		CapPercentage:  cfg.CapPercentage,
		ForceThreshold: cfg.ForceThreshold,
		Dt:             cfg.Dt,
	})
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDRIVE\tTIME\tTICKS\tDT\tCOUPLING\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%.3f\t%d\n",
			run.ID,
			run.Drive,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Dt,
			run.Coupling,
			run.Seed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, averages, forces, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(averages) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("drive: %s\n", meta.Drive)
	fmt.Printf("samples: %d\n\n", len(times))

	data := averages
	caption := "mean force"
	if fiberIndex >= 0 {
		if fiberIndex >= len(forces[0]) {
			return fmt.Errorf("fiber index out of range: %d", fiberIndex)
		}
		data = make([]float64, len(forces))
		for i := range forces {
			data[i] = forces[i][fiberIndex]
		}
		caption = fmt.Sprintf("fiber %d force", fiberIndex)
	}

	chart := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(chart)

	return nil
}

func loadResult(st *storage.Store, runID string) (*storage.RunMetadata, *sim.Result, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	times, averages, forces, err := st.LoadSeries(runID)
	if err != nil {
		return nil, nil, err
	}

	totals := make([]float64, len(forces))
	for i, row := range forces {
		for _, f := range row {
			totals[i] += f
		}
	}

	return meta, &sim.Result{
		Times:    times,
		Averages: averages,
		Totals:   totals,
		Forces:   forces,
		Metrics:  meta.Metrics,
		TicksRun: len(times),
	}, nil
}

func exportCSVRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	_, result, err := loadResult(st, args[0])
	if err != nil {
		return err
	}

	if err := storage.ExportCSV(outPath, result); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func exportJSONRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := loadResult(st, args[0])
	if err != nil {
		return err
	}

	if outPath == "" {
		return storage.ExportJSONStdout(meta.Drive, meta.Dt, meta.Coupling, result)
	}
	if err := storage.ExportJSON(outPath, meta.Drive, meta.Dt, meta.Coupling, result); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func exportSVGRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	runner, g, err := buildRunner(cfg, cfg.Seed)
	if err != nil {
		return err
	}
	runner.Schedule(sim.Event{Tick: 0, Node: 'g', Amount: cfg.PumpAmount})

	result, err := runner.Run(context.Background(), simConfig(cfg))
	if err != nil {
		return err
	}

	var svg string
	if seriesOnly {
		svg = export.SeriesToSVG(result.Averages, 800, 300, "#00ff88")
	} else {
		svg = export.NetworkToSVG(g, runner.Tissue().Snapshots(), 80)
	}
	if svg == "" {
		return fmt.Errorf("nothing to render")
	}

	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, averages, _, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(averages) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("rhythm analysis: %s\n", meta.ID)
	fmt.Printf("drive: %s\n\n", meta.Drive)

	period := analysis.DominantPeriod(averages, meta.Dt)
	if period == 0 {
		fmt.Println("no dominant rhythm")
	} else {
		fmt.Printf("dominant period: %.3fs (%.3f Hz)\n", period, 1/period)
	}

	ac := analysis.Autocorrelation(averages)
	limit := len(ac) / 2
	if limit > 200 {
		limit = 200
	}
	if limit >= 2 {
		chart := asciigraph.Plot(ac[:limit],
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption("autocorrelation"),
		)
		fmt.Println()
		fmt.Println(chart)
	}

	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	// Validate any graph override once; per-seed builds share the config.
	if _, err := cfg.BuildGraph(); err != nil {
		return err
	}

	build := func(seed int64) *sim.Runner {
		runner, _, _ := buildRunner(cfg, seed)
		runner.Schedule(sim.Event{Tick: 0, Node: 'g', Amount: cfg.PumpAmount})
		return runner
	}

	fmt.Printf("running %d seeded variants...\n\n", numRuns)
	start := time.Now()

	results, err := sim.NewEnsemble(build, numRuns, cfg.Seed).Run(context.Background(), simConfig(cfg))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSEED\tMEAN\tPEAK\tFATIGUE\tDAMAGE")
	for i, res := range results {
		fmt.Fprintf(w, "%d\t%d\t%.4f\t%.4f\t%.4f\t%.4f\n",
			i,
			cfg.Seed+int64(i),
			res.Metrics["mean_force"],
			res.Metrics["peak_force"],
			res.Metrics["fatigue_index"],
			res.Metrics["damage_load"],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", time.Since(start))
	return nil
}

func benchNetwork(cmd *cobra.Command, args []string) error {
	tickCounts := []int{600, 3600, 18000}
	couplings := []float64{0.0, 0.05, 0.2}

	fmt.Println("benchmarking network update loop")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TICKS\tCOUPLING\tTIME\tTICKS/SEC")

	for _, n := range tickCounts {
		for _, c := range couplings {
			cfg := config.DefaultConfig()
			cfg.Ticks = n
			cfg.Coupling = c

			runner, _, err := buildRunner(cfg, 42)
			if err != nil {
				return err
			}
			runner.Schedule(sim.Event{Tick: 0, Node: 'g', Amount: 1.0})

			start := time.Now()
			result, err := runner.Run(context.Background(), simConfig(cfg))
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%d\t%.2f\t%v\t%.0f\n",
				n, c, elapsed, float64(result.TicksRun)/elapsed.Seconds())
		}
	}

	return w.Flush()
}
