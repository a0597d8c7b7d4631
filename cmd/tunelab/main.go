package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/avega-cr/tunelab/internal/config"
	"github.com/avega-cr/tunelab/internal/storage"
	"github.com/avega-cr/tunelab/internal/tui"
	"github.com/avega-cr/tunelab/internal/tuning"
)

var (
	dataDir    string
	configFile string
	preset     string
	precision  int
	sortBy     string
	descending bool
	// Sweep selection
	sweepMethod     string
	sweepMode       string
	sweepController string
	sweepCriterion  string
	sweepFrom       float64
	sweepTo         float64
	sweepPoints     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tunelab",
		Short: "PID tuning correlations for FOPDT process models",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".tunelab", "data directory")

	evalCmd := &cobra.Command{
		Use:   "eval [K T a tau0]",
		Short: "evaluate every tuning rule for one process",
		Args:  cobra.RangeArgs(0, 4),
		RunE:  evalProcess,
	}
	addProcessFlags(evalCmd)
	evalCmd.Flags().StringVar(&sortBy, "sort", "variant", "sort column (variant, method, mode, criterion)")
	evalCmd.Flags().BoolVar(&descending, "desc", false, "sort descending")

	tableCmd := &cobra.Command{
		Use:   "table [K T a tau0]",
		Short: "interactive sortable result table",
		Args:  cobra.RangeArgs(0, 4),
		RunE:  runTable,
	}
	addProcessFlags(tableCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [K T a]",
		Short: "plot one rule across a dead-time range",
		Args:  cobra.RangeArgs(0, 3),
		RunE:  sweepRule,
	}
	addProcessFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepMethod, "method", "uSORT1", "correlation method")
	sweepCmd.Flags().StringVar(&sweepMode, "mode", "Regulador", "Regulador or Servo")
	sweepCmd.Flags().StringVar(&sweepController, "controller", "PI", "controller type")
	sweepCmd.Flags().StringVar(&sweepCriterion, "criterion", "2.0", "Ms level or error index")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.1, "lowest normalized dead time")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 2.0, "highest normalized dead time")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 80, "number of samples")

	saveCmd := &cobra.Command{
		Use:   "save [K T a tau0]",
		Short: "evaluate and persist a run",
		Args:  cobra.RangeArgs(0, 4),
		RunE:  saveRun,
	}
	addProcessFlags(saveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print a saved result table",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().IntVar(&precision, "precision", config.DefaultPrecision, "decimal places")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run results to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run results to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list example processes",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(evalCmd, tableCmd, sweepCmd, saveCmd, listCmd, showCmd, exportCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addProcessFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset process")
	cmd.Flags().IntVar(&precision, "precision", config.DefaultPrecision, "decimal places")
}

// resolveConfig layers preset, config file and positional K T a tau0 in
// increasing precedence.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	fields := []*float64{&cfg.Process.K, &cfg.Process.T, &cfg.Process.A, &cfg.Process.Tau0}
	for i, arg := range args {
		val, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid process parameter %q: %w", arg, err)
		}
		*fields[i] = val
	}

	if cmd.Flags().Changed("precision") {
		cfg.Output.Precision = precision
	}
	if f := cmd.Flags().Lookup("sort"); f != nil && f.Changed {
		cfg.Output.SortBy = sortBy
	}
	if f := cmd.Flags().Lookup("desc"); f != nil && f.Changed {
		cfg.Output.Descending = descending
	}

	return cfg, nil
}

func evalProcess(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	p := cfg.Params()
	results, err := tuning.Evaluate(p)
	if err != nil {
		return err
	}

	key, err := cfg.SortKey()
	if err != nil {
		return err
	}
	results = tuning.Sort(results, key, !cfg.Output.Descending)

	printParams(p)
	return printTables(results, cfg.Output.Precision)
}

func printParams(p tuning.ProcessParameters) {
	fmt.Printf("K=%g  T=%g  a=%g  tau0=%g\n\n", p.K, p.T, p.A, p.Tau0)
}

// printTables splits the results the way the comparison tables are usually
// read: P/PI rules first, PID rules after with their derivative column.
func printTables(results tuning.ResultSet, prec int) error {
	var pi, pid tuning.ResultSet
	for _, r := range results {
		if r.Controller == tuning.PID {
			pid = append(pid, r)
		} else {
			pi = append(pi, r)
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	if len(pi) > 0 {
		fmt.Fprintln(w, "VARIANTE\tMÉTODO\tMODO\tCRITERIO\tKP\tTI\tβ")
		for _, r := range pi {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.*f\t%.*f\t%s\n",
				r.Variant, r.Method, r.Mode, r.Criterion.Label(),
				prec, r.Kp, prec, r.Ti, r.Beta)
		}
		fmt.Fprintln(w)
	}

	if len(pid) > 0 {
		fmt.Fprintln(w, "VARIANTE\tMÉTODO\tMODO\tCRITERIO\tKP\tTI\tTD\tβ")
		for _, r := range pid {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.*f\t%.*f\t%.*f\t%s\n",
				r.Variant, r.Method, r.Mode, r.Criterion.Label(),
				prec, r.Kp, prec, r.Ti, prec, r.Td, r.Beta)
		}
	}

	return w.Flush()
}

func runTable(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	p := cfg.Params()
	results, err := tuning.Evaluate(p)
	if err != nil {
		return err
	}
	return tui.RunTable(p, results, cfg.Output.Precision)
}

func sweepRule(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	p := cfg.Params()

	method, err := tuning.ParseMethod(sweepMethod)
	if err != nil {
		return err
	}
	mode, err := tuning.ParseMode(sweepMode)
	if err != nil {
		return err
	}
	ctrl, err := tuning.ParseControllerType(sweepController)
	if err != nil {
		return err
	}
	crit, err := tuning.ParseCriterion(sweepCriterion)
	if err != nil {
		return err
	}
	key := tuning.Key{Method: method, Mode: mode, Controller: ctrl, Criterion: crit}

	if sweepPoints < 2 {
		sweepPoints = 2
	}
	if sweepTo <= sweepFrom {
		return fmt.Errorf("sweep range is empty: from=%g to=%g", sweepFrom, sweepTo)
	}

	kps := make([]float64, 0, sweepPoints)
	tis := make([]float64, 0, sweepPoints)
	tds := make([]float64, 0, sweepPoints)
	step := (sweepTo - sweepFrom) / float64(sweepPoints-1)
	for i := 0; i < sweepPoints; i++ {
		p.Tau0 = sweepFrom + float64(i)*step
		rec, err := tuning.EvaluateOne(p, key)
		if err != nil {
			return err
		}
		kps = append(kps, rec.Kp)
		tis = append(tis, rec.Ti)
		tds = append(tds, rec.Td)
	}

	fmt.Printf("%s  %s  %s  %s   tau0 in [%g, %g]\n\n",
		method, mode, ctrl, crit.Label(), sweepFrom, sweepTo)

	plot := func(data []float64, caption string) {
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	plot(kps, "Kp vs tau0")
	if ctrl != tuning.P {
		plot(tis, "Ti vs tau0")
	}
	if ctrl == tuning.PID {
		plot(tds, "Td vs tau0")
	}

	return nil
}

func saveRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	p := cfg.Params()
	results, err := tuning.Evaluate(p)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runID, err := st.Save(p, results)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("records: %d\n", len(results))
	return nil
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
	fmt.Fprintln(w, "ID\tTIME\tK\tT\tA\tTAU0\tRECORDS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%g\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.K, run.T, run.A, run.Tau0,
			run.Records,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	results, err := st.LoadResults(args[0])
	if err != nil {
		return err
	}

	printParams(tuning.ProcessParameters{K: meta.K, T: meta.T, A: meta.A, Tau0: meta.Tau0})
	return printTables(results, precision)
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	results, err := st.LoadResults(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, results)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	results, err := st.LoadResults(args[0])
	if err != nil {
		return err
	}

	p := tuning.ProcessParameters{K: meta.K, T: meta.T, A: meta.A, Tau0: meta.Tau0}
	return storage.ExportJSONStdout(p, results)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tK\tT\tA\tTAU0")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\n",
			name, cfg.Process.K, cfg.Process.T, cfg.Process.A, cfg.Process.Tau0)
	}
	return w.Flush()
}
