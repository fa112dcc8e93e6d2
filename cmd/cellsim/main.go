package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/cellsim/internal/config"
	"github.com/san-kum/cellsim/internal/disc"
	"github.com/san-kum/cellsim/internal/export"
	"github.com/san-kum/cellsim/internal/lithium"
	"github.com/san-kum/cellsim/internal/params"
	"github.com/san-kum/cellsim/internal/solver"
	"github.com/san-kum/cellsim/internal/storage"
	"github.com/san-kum/cellsim/internal/tui"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	cRate      float64
	cutoff     float64
	stepper    string
	configFile string
	preset     string
	paramsFile string
	outFile    string
	plotVar    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cellsim",
		Short: "lithium-ion cell simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".cellsim", "data directory")

	buildCmd := &cobra.Command{
		Use:   "build [model]",
		Short: "assemble a model and print its structure",
		Args:  cobra.ExactArgs(1),
		RunE:  buildModel,
	}

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run a discharge simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSolve,
	}
	addSolveFlags(runCmd)

	watchCmd := &cobra.Command{
		Use:   "watch [model]",
		Short: "run a simulation with a live terminal view",
		Args:  cobra.ExactArgs(1),
		RunE:  watchSolve,
	}
	addSolveFlags(watchCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot stored output series in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotVar, "var", "", "plot only this output")

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render stored output series to an image file",
		Args:  cobra.ExactArgs(1),
		RunE:  renderRun,
	}
	renderCmd.Flags().StringVar(&outFile, "out", "run.png", "output image path")
	renderCmd.Flags().StringVar(&plotVar, "var", "", "render only this output")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list available models",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range lithium.NewCatalog().List() {
				fmt.Println(name)
			}
			return nil
		},
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

	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "write the default parameter set as a YAML override file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outFile == "" {
				outFile = "params.yaml"
			}
			if err := params.Save(outFile, params.LithiumIon()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", outFile)
			return nil
		},
	}
	paramsCmd.Flags().StringVar(&outFile, "out", "params.yaml", "output path")

	rootCmd.AddCommand(buildCmd, runCmd, watchCmd, listCmd, plotCmd, renderCmd, exportCmd, modelsCmd, presetsCmd, paramsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSolveFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&cRate, "c-rate", config.DefaultCRate, "applied current in C-rate")
	cmd.Flags().Float64Var(&cutoff, "cutoff", config.DefaultCutoff, "low voltage cutoff")
	cmd.Flags().StringVar(&stepper, "stepper", "rk4", "time stepper (euler, rk4)")
	cmd.Flags().StringVar(&configFile, "config", "", "run config file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&paramsFile, "params", "", "parameter override file (yaml)")
}

// resolveConfig merges preset, config file and flags into one run
// config. CLI flags win over the config file, which wins over the
// preset.
func resolveConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Model = model

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		*cfg = *p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		cfg.Model = model
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("c-rate") {
		cfg.CRate = cRate
	}
	if cmd.Flags().Changed("cutoff") {
		cfg.CutoffVoltage = cutoff
	}
	if cmd.Flags().Changed("stepper") {
		cfg.Stepper = stepper
	}
	if paramsFile != "" {
		cfg.ParamsFile = paramsFile
	}
	if len(cfg.Outputs) == 0 {
		cfg.Outputs = config.DefaultConfig().Outputs
	}
	return cfg, nil
}

func buildSolver(cfg *config.Config) (*solver.Solver, error) {
	set := params.LithiumIon()
	if cfg.ParamsFile != "" {
		loaded, err := params.Load(cfg.ParamsFile, set)
		if err != nil {
			return nil, fmt.Errorf("failed to load params: %w", err)
		}
		set = loaded
	}
	set.SetScalar("Current [C-rate]", cfg.CRate)
	set.SetScalar("Voltage low cut", cfg.CutoffVoltage)

	m, err := lithium.NewCatalog().Build(cfg.Model, set)
	if err != nil {
		return nil, err
	}
	sys, err := disc.Discretize(m, cfg.MeshSpec())
	if err != nil {
		return nil, err
	}
	step, err := solver.NewStepper(cfg.Stepper)
	if err != nil {
		return nil, err
	}

	s := solver.New(sys, step)
	s.AddMetric(solver.NewDischargedCapacity(cfg.CRate))
	s.AddMetric(solver.NewMinVoltage())
	s.AddMetric(solver.NewMeanPower(cfg.CRate))
	return s, nil
}

func buildModel(cmd *cobra.Command, args []string) error {
	m, err := lithium.NewCatalog().Build(args[0], params.LithiumIon())
	if err != nil {
		return err
	}

	fmt.Printf("%s\n\n", m.Name())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STATE VARIABLE\tROLE\tDOMAIN")
	for _, eq := range m.Differential() {
		fmt.Fprintf(w, "%s\tdifferential\t%s\n", eq.Var.Name(), eq.Var.Domain())
	}
	for _, eq := range m.Algebraic() {
		fmt.Fprintf(w, "%s\talgebraic\t%s\n", eq.Var.Name(), eq.Var.Domain())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nvariables:")
	for _, name := range m.VariableNames() {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println("\nevents:")
	for _, ev := range m.Events() {
		fmt.Printf("  %s\n", ev.Name)
	}
	return nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	s, err := buildSolver(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s...\n", cfg.Model)
	start := time.Now()
	result, err := s.Run(context.Background(), solver.Config{
		Duration:      cfg.Duration,
		Dt:            cfg.Dt,
		ValidateState: true,
		Outputs:       cfg.Outputs,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Model, cfg.Stepper, cfg.Dt, cfg.Duration, cfg.CRate, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	if result.Terminated {
		fmt.Printf("terminated by %q at t=%.4f\n", result.EventName, result.EventTime)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func watchSolve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	s, err := buildSolver(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	result, err := tui.Watch(cfg.Model, cfg.Duration, func(emit func(tui.Sample)) (*solver.Result, error) {
		s.AddObserver(observerFunc(func(t float64, outputs map[string]float64) {
			emit(tui.Sample{T: t, Outputs: outputs})
		}))
		return s.Run(context.Background(), solver.Config{
			Duration:      cfg.Duration,
			Dt:            cfg.Dt,
			ValidateState: true,
			Outputs:       cfg.Outputs,
		})
	})
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}

	runID, err := st.Save(cfg.Model, cfg.Stepper, cfg.Dt, cfg.Duration, cfg.CRate, result)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

type observerFunc func(t float64, outputs map[string]float64)

func (f observerFunc) OnSample(t float64, outputs map[string]float64) { f(t, outputs) }

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
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tDURATION\tDT\tSTEPPER\tC-RATE\tEVENT")
	for _, run := range runs {
		event := "-"
		if run.Terminated {
			event = fmt.Sprintf("%s@%.3f", run.EventName, run.EventTime)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.4f\t%s\t%.2f\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Stepper,
			run.CRate,
			event,
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
	_, outputs, err := st.LoadSolution(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n\n", meta.Model)

	columns := meta.OutputColumns
	if plotVar != "" {
		columns = []string{plotVar}
	}
	for _, name := range columns {
		series, ok := outputs[name]
		if !ok {
			return fmt.Errorf("no output series %q", name)
		}
		graph := asciigraph.Plot(series,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func renderRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	times, outputs, err := st.LoadSolution(runID)
	if err != nil {
		return err
	}

	var names []string
	if plotVar != "" {
		names = []string{plotVar}
	}
	title := fmt.Sprintf("%s (%s)", meta.Model, meta.ID)
	if err := export.PlotSeries(outFile, title, times, outputs, names); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	times, outputs, err := st.LoadSolution(runID)
	if err != nil {
		return err
	}

	result := &solver.Result{
		Times:      times,
		Outputs:    outputs,
		Metrics:    meta.Metrics,
		StepsTaken: meta.StepsTaken,
		Terminated: meta.Terminated,
		EventName:  meta.EventName,
		EventTime:  meta.EventTime,
	}
	return export.ExportJSONStdout(meta.Model, meta.Stepper, meta.Dt, meta.Duration, result)
}
