package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"ecoliccm/internal/dataio"
	"ecoliccm/internal/kinetics"
	"ecoliccm/internal/simulation"
	"ecoliccm/internal/storage"
	"ecoliccm/internal/tuning"
	"ecoliccm/pkg/ecoliccm"
)

const (
	runsDir    = "runs"
	exportsDir = "exports"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "simulate":
		return runSimulate(ctx, args[1:])
	case "steady":
		return runSteady(ctx, args[1:])
	case "pulse":
		return runPulse(ctx, args[1:])
	case "score":
		return runScore(ctx, args[1:])
	case "fit":
		return runFit(ctx, args[1:])
	case "analyze":
		return runAnalyze(ctx, args[1:])
	case "fluxes":
		return runFluxes(ctx, args[1:])
	case "plot":
		return runPlot(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "params":
		return runParams(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

// commonFlags are shared by every command that builds a client.
type commonFlags struct {
	configPath *string
	paramsPath *string
	storeKind  *string
	dbPath     *string
	logLevel   *string

	set map[string]bool
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	return &commonFlags{
		configPath: fs.String("config", "", "optional YAML run config path"),
		paramsPath: fs.String("params", "", "parameter file (one value per line); defaults to the published set"),
		storeKind:  fs.String("store", "", "store backend: memory|sqlite (default "+storage.DefaultStoreKind()+")"),
		dbPath:     fs.String("db-path", "ecoliccm.db", "sqlite database path"),
		logLevel:   fs.String("log-level", "info", "log level: debug|info|warn|error"),
	}
}

// open loads the run config and builds a client over it.
func (c *commonFlags) open() (*ecoliccm.Client, runFile, error) {
	file, err := loadRunFile(*c.configPath)
	if err != nil {
		return nil, runFile{}, err
	}
	logger, err := setupLogger(*c.logLevel)
	if err != nil {
		return nil, runFile{}, err
	}
	storeKind := *c.storeKind
	if storeKind == "" {
		storeKind = file.Store
	}
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := *c.dbPath
	if file.DBPath != "" && !flagWasSet(c, "db-path") {
		dbPath = file.DBPath
	}
	client, err := ecoliccm.New(ecoliccm.Options{
		StoreKind:  storeKind,
		DBPath:     dbPath,
		RunsDir:    runsDir,
		ExportsDir: exportsDir,
		Logger:     logger,
	})
	if err != nil {
		return nil, runFile{}, err
	}
	return client, file, nil
}

func setupLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(lvl)
	return logger, nil
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	common := addCommonFlags(fs)
	if err := parseFlags(fs, common, args); err != nil {
		return err
	}

	client, _, err := common.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	fmt.Printf("initialized store=%s\n", storeLabel(common))
	return nil
}

func runSimulate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	common := addCommonFlags(fs)
	start := fs.Float64("start", 0, "first sample time (s)")
	end := fs.Float64("end", 0, "end of the sample grid, excluded (s); 0 uses the config segments or the default experiment")
	step := fs.Float64("step", 0.05, "sample spacing (s)")
	glucose := fs.Float64("glucose", kinetics.PulseGlucose, "extracellular glucose set at the first sample when -end is given (negative keeps the initial value)")
	out := fs.String("out", "", "optional trajectory CSV output path")
	seed := fs.Int64("seed", 0, "seed recorded with the run")
	jsonOut := fs.Bool("json", false, "emit the run summary as JSON")
	if err := parseFlags(fs, common, args); err != nil {
		return err
	}

	client, file, err := common.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	opts, err := file.modelOptions(*common.paramsPath)
	if err != nil {
		return err
	}
	initial, err := file.initialState(kinetics.PublishedInitialState())
	if err != nil {
		return err
	}
	segments := file.Segments
	if *end != 0 {
		segment := simulation.Segment{Start: *start, End: *end, Step: *step}
		if *glucose >= 0 {
			segment.Override = map[string]float64{"glcex": *glucose}
		}
		segments = []simulation.Segment{segment}
	}

	summary, err := client.Simulate(ctx, ecoliccm.SimulateRequest{
		ModelOptions: opts,
		Initial:      initial,
		Segments:     segments,
		Seed:         *seed,
	})
	if err != nil {
		return err
	}
	if *out != "" {
		if err := dataio.WriteTrajectoryFile(*out, summary.Trajectory.Times, summary.Trajectory.States); err != nil {
			return err
		}
	}

	final, _ := summary.Trajectory.Last()
	if *jsonOut {
		return writeJSON(map[string]any{
			"run_id":        summary.RunID,
			"artifacts_dir": summary.ArtifactsDir,
			"samples":       summary.Trajectory.Len(),
			"final":         final.Map(),
		})
	}
	fmt.Printf("run_id=%s samples=%d artifacts=%s\n", summary.RunID, summary.Trajectory.Len(), summary.ArtifactsDir)
	printState("final", final)
	return nil
}

func runSteady(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("steady", flag.ContinueOnError)
	common := addCommonFlags(fs)
	threshold := fs.Float64("threshold", simulation.DefaultSteadyStateThreshold, "derivative norm below which the state counts as steady")
	jsonOut := fs.Bool("json", false, "emit the report as JSON")
	if err := parseFlags(fs, common, args); err != nil {
		return err
	}

	client, file, err := common.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	opts, err := file.modelOptions(*common.paramsPath)
	if err != nil {
		return err
	}
	base := kinetics.PublishedInitialState()
	initial, err := file.initialState(base)
	if err != nil {
		return err
	}
	if initial == nil {
		initial = &base
	}

	report, err := client.SteadyState(ctx, ecoliccm.SteadyRequest{
		ModelOptions: opts,
		Initial:      initial,
		Threshold:    *threshold,
	})
	if err != nil {
		return err
	}
	if *jsonOut {
		return writeJSON(report)
	}
	fmt.Printf("reached=%t first_norm=%g last_norm=%g samples=%d\n", report.Reached, report.FirstNorm, report.LastNorm, report.Samples)
	return nil
}

func runPulse(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pulse", flag.ContinueOnError)
	common := addCommonFlags(fs)
	glucose := fs.Float64("glucose", 0, "extracellular glucose after the pulse (mM); 0 keeps the config value")
	relaxFrom := fs.Float64("relax-from", 0, "start of the relaxation window, < 0; 0 keeps the config value")
	until := fs.Float64("until", 0, "end of the pulse window, excluded; 0 keeps the config value")
	step := fs.Float64("step", 0, "sample spacing; 0 keeps the config value")
	dataPath := fs.String("data", "", "optional experimental data overlaid on the plots")
	plotDir := fs.String("plot-dir", "", "write time course PNGs to this directory")
	if err := parseFlags(fs, common, args); err != nil {
		return err
	}

	client, file, err := common.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	opts, err := file.modelOptions(*common.paramsPath)
	if err != nil {
		return err
	}
	initial, err := file.initialState(kinetics.PublishedInitialState())
	if err != nil {
		return err
	}
	pulse := file.Pulse
	if *glucose > 0 {
		pulse.Glucose = *glucose
	}
	if *relaxFrom != 0 {
		pulse.RelaxFrom = *relaxFrom
	}
	if *until != 0 {
		pulse.Until = *until
	}
	if *step != 0 {
		pulse.Step = *step
	}
	data := *dataPath
	if data == "" {
		data = file.Data
	}

	summary, err := client.Pulse(ctx, ecoliccm.PulseRequest{
		ModelOptions: opts,
		Initial:      initial,
		Options:      &pulse,
		DataPath:     data,
		PlotDir:      *plotDir,
	})
	if err != nil {
		return err
	}
	final, _ := summary.Result.Trajectory.Last()
	fmt.Printf("run_id=%s samples=%d artifacts=%s plots=%d\n", summary.RunID, summary.Result.Trajectory.Len(), summary.ArtifactsDir, len(summary.Plots))
	printState("final", final)
	return nil
}

func runScore(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	common := addCommonFlags(fs)
	dataPath := fs.String("data", "", "experimental data TSV (time, value, metabolite, sd)")
	workers := fs.Int("workers", 1, "concurrent simulations when scoring several parameter files")
	jsonOut := fs.Bool("json", false, "emit scores as JSON")
	if err := parseFlags(fs, common, args); err != nil {
		return err
	}

	client, file, err := common.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	opts, err := file.modelOptions(*common.paramsPath)
	if err != nil {
		return err
	}
	data := *dataPath
	if data == "" {
		data = file.Data
	}
	if data == "" {
		return errors.New("data path is required")
	}
	if *workers <= 0 {
		return errors.New("workers must be > 0")
	}

	summary, err := client.Score(ctx, ecoliccm.ScoreRequest{
		ModelOptions: opts,
		ParamsPaths:  fs.Args(),
		DataPath:     data,
		Workers:      *workers,
	})
	if err != nil {
		return err
	}
	if *jsonOut {
		return writeJSON(summary)
	}
	for _, item := range summary.Scores {
		fmt.Printf("source=%s score=%.6f\n", item.Source, item.Score)
	}
	for _, r := range summary.Residuals {
		fmt.Printf("metabolite=%s count=%d mean_error=%.6f rmse=%.6f weighted=%.6f\n", r.Metabolite, r.Count, r.MeanError, r.RMSE, r.Weighted)
	}
	return nil
}

func runFit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fit", flag.ContinueOnError)
	common := addCommonFlags(fs)
	dataPath := fs.String("data", "", "experimental data TSV")
	method := fs.String("method", tuning.MethodHillClimb, "optimizer: hillclimb|neldermead|cmaes")
	free := fs.String("free", "", "comma-separated free parameters (default: every maximal rate)")
	budget := fs.Int("budget", 200, "objective evaluation budget")
	budgetPolicy := fs.String("budget-policy", "fixed", "budget policy: fixed|dimension_scaled|dimension_proportional")
	budgetParam := fs.Float64("budget-param", 0, "budget policy parameter")
	lower := fs.Float64("lower", 0.75, "lower bound factor relative to the starting value")
	upper := fs.Float64("upper", 1.5, "upper bound factor relative to the starting value")
	seed := fs.Int64("seed", 1, "rng seed")
	workers := fs.Int("workers", 1, "concurrent objective evaluations")
	plotDir := fs.String("plot-dir", "", "write best-fit time course PNGs to this directory")
	jsonOut := fs.Bool("json", false, "emit the fit summary as JSON")
	if err := parseFlags(fs, common, args); err != nil {
		return err
	}

	client, file, err := common.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	opts, err := file.modelOptions(*common.paramsPath)
	if err != nil {
		return err
	}
	data := *dataPath
	if data == "" {
		data = file.Data
	}

	fitCfg := file.Fit
	set := setFlags(fs)
	if set["method"] {
		fitCfg.Method = *method
	}
	if set["free"] {
		fitCfg.Free = splitList(*free)
	}
	if set["budget"] {
		fitCfg.Budget = *budget
	}
	if set["budget-policy"] {
		fitCfg.BudgetPolicy = *budgetPolicy
	}
	if set["budget-param"] {
		fitCfg.BudgetParam = *budgetParam
	}
	if set["lower"] {
		fitCfg.LowerFactor = *lower
	}
	if set["upper"] {
		fitCfg.UpperFactor = *upper
	}
	if set["seed"] {
		fitCfg.Seed = *seed
	}
	if set["workers"] {
		fitCfg.Workers = *workers
	}

	summary, err := client.Fit(ctx, ecoliccm.FitRequest{
		ModelOptions: opts,
		DataPath:     data,
		Fit:          fitCfg,
		PlotDir:      *plotDir,
	})
	if err != nil {
		return err
	}
	if *jsonOut {
		return writeJSON(map[string]any{
			"run_id":        summary.RunID,
			"artifacts_dir": summary.ArtifactsDir,
			"method":        summary.Result.Method,
			"free":          summary.Result.Free,
			"initial_score": summary.Result.InitialScore,
			"final_score":   summary.Result.FinalScore,
			"evaluations":   summary.Result.Report.CandidateEvaluations,
			"diverged":      summary.Result.Report.DivergedCandidates,
			"residuals":     summary.Residuals,
		})
	}
	fmt.Printf("run_id=%s method=%s free=%d initial_score=%.6f final_score=%.6f evaluations=%d diverged=%d\n",
		summary.RunID,
		summary.Result.Method,
		len(summary.Result.Free),
		summary.Result.InitialScore,
		summary.Result.FinalScore,
		summary.Result.Report.CandidateEvaluations,
		summary.Result.Report.DivergedCandidates,
	)
	for _, name := range summary.Result.Free {
		value, _ := summary.Result.Parameters.Lookup(name)
		fmt.Printf("param=%s value=%g\n", name, value)
	}
	return nil
}

func runAnalyze(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	common := addCommonFlags(fs)
	outDir := fs.String("out-dir", "", "write one CSV per matrix to this directory")
	jsonOut := fs.Bool("json", false, "emit the full report as JSON")
	if err := parseFlags(fs, common, args); err != nil {
		return err
	}

	client, file, err := common.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	opts, err := file.modelOptions(*common.paramsPath)
	if err != nil {
		return err
	}
	state, err := file.initialState(kinetics.PublishedInitialState())
	if err != nil {
		return err
	}

	report, err := client.Analyze(ctx, ecoliccm.AnalyzeRequest{
		ModelOptions: opts,
		State:        state,
		OutDir:       *outDir,
	})
	if err != nil {
		return err
	}
	if *jsonOut {
		return writeJSON(report)
	}
	fmt.Printf("backend=%s stable=%t min_real=%g max_real=%g\n", report.Backend, report.Stability.Stable, report.Stability.MinReal, report.Stability.MaxReal)
	for _, ev := range report.Stability.Eigenvalues {
		fmt.Printf("eigenvalue real=%g imag=%g\n", ev.Real, ev.Imag)
	}
	if *outDir != "" {
		fmt.Printf("matrices=%s\n", *outDir)
	}
	return nil
}

func runFluxes(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fluxes", flag.ContinueOnError)
	common := addCommonFlags(fs)
	jsonOut := fs.Bool("json", false, "emit fluxes as JSON")
	if err := parseFlags(fs, common, args); err != nil {
		return err
	}

	client, file, err := common.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	opts, err := file.modelOptions(*common.paramsPath)
	if err != nil {
		return err
	}
	state, err := file.initialState(kinetics.PublishedInitialState())
	if err != nil {
		return err
	}

	fluxes, err := client.Fluxes(ctx, ecoliccm.FluxesRequest{ModelOptions: opts, State: state})
	if err != nil {
		return err
	}
	if *jsonOut {
		return writeJSON(fluxes)
	}
	for _, f := range fluxes {
		fmt.Printf("flux=%s value=%g\n", f.Name, f.Value)
	}
	return nil
}

func runPlot(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("plot", flag.ContinueOnError)
	common := addCommonFlags(fs)
	runID := fs.String("run-id", "", "run id to plot")
	latest := fs.Bool("latest", false, "plot the most recent run")
	dataPath := fs.String("data", "", "optional experimental data overlaid on the plots")
	outDir := fs.String("out-dir", "", "output directory (default runs/<run-id>/plots)")
	if err := parseFlags(fs, common, args); err != nil {
		return err
	}

	client, file, err := common.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	data := *dataPath
	if data == "" {
		data = file.Data
	}
	paths, err := client.Plot(ctx, ecoliccm.PlotRequest{
		RunID:    *runID,
		Latest:   *latest,
		DataPath: data,
		OutDir:   *outDir,
	})
	if err != nil {
		return err
	}
	for _, path := range paths {
		fmt.Printf("plot=%s\n", path)
	}
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	common := addCommonFlags(fs)
	limit := fs.Int("limit", 20, "max runs to list")
	stored := fs.Bool("stored", false, "list the runs held by the store instead of the run index")
	jsonOut := fs.Bool("json", false, "emit runs list as JSON")
	if err := parseFlags(fs, common, args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("limit must be > 0")
	}

	client, _, err := common.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if *stored {
		runs, err := client.StoredRuns(ctx)
		if err != nil {
			return err
		}
		if len(runs) > *limit {
			runs = runs[:*limit]
		}
		if *jsonOut {
			return writeJSON(runs)
		}
		if len(runs) == 0 {
			fmt.Println("no runs found")
			return nil
		}
		for _, r := range runs {
			fmt.Printf("run_id=%s kind=%s created_at=%s\n", r.RunID, r.Kind, r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
		}
		return nil
	}

	entries, err := client.Runs(ctx, ecoliccm.RunsRequest{Limit: *limit})
	if err != nil {
		return err
	}
	if *jsonOut {
		return writeJSON(entries)
	}
	if len(entries) == 0 {
		fmt.Println("no runs found")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("run_id=%s kind=%s created_at=%s", e.RunID, e.Kind, e.CreatedAtUTC)
		if e.Kind == ecoliccm.KindFit {
			fmt.Printf(" method=%s initial_score=%.6f final_score=%.6f evaluations=%d", e.Method, e.InitialScore, e.FinalScore, e.Evaluations)
		}
		fmt.Println()
	}
	return nil
}

func runParams(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("params", flag.ContinueOnError)
	out := fs.String("out", "parameters.txt", "output path for the published parameter set")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := ecoliccm.New(ecoliccm.Options{StoreKind: "memory", RunsDir: runsDir, ExportsDir: exportsDir})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.WriteBaselineParameters(*out); err != nil {
		return err
	}
	fmt.Printf("wrote parameters=%d path=%s\n", len(kinetics.ParameterNames()), *out)
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id to export")
	latest := fs.Bool("latest", false, "export the most recent run")
	outDir := fs.String("out", exportsDir, "export output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := ecoliccm.New(ecoliccm.Options{StoreKind: "memory", RunsDir: runsDir, ExportsDir: *outDir})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	exported, err := client.Export(ctx, ecoliccm.ExportRequest{RunID: *runID, Latest: *latest, OutDir: *outDir})
	if err != nil {
		return err
	}
	fmt.Printf("exported run_id=%s dir=%s\n", exported.RunID, exported.Directory)
	return nil
}

// parseFlags parses args and rejects stray positional arguments except for
// score, which takes extra parameter files.
func parseFlags(fs *flag.FlagSet, common *commonFlags, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	common.set = setFlags(fs)
	if fs.Name() != "score" && fs.NArg() > 0 {
		return fmt.Errorf("%s: unexpected arguments: %s", fs.Name(), strings.Join(fs.Args(), " "))
	}
	return nil
}

func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

func flagWasSet(c *commonFlags, name string) bool {
	return c.set[name]
}

func storeLabel(c *commonFlags) string {
	if *c.storeKind != "" {
		return *c.storeKind
	}
	return storage.DefaultStoreKind()
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func printState(label string, s kinetics.State) {
	names := kinetics.StateNames()
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%g", name, s[i])
	}
	fmt.Printf("%s %s\n", label, strings.Join(parts, " "))
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: ecoliccmctl <init|simulate|steady|pulse|score|fit|analyze|fluxes|plot|runs|params|export> [flags]", msg)
}
