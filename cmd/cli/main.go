package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"peoplelens/adapters/model"
	"peoplelens/adapters/tabular"
	"peoplelens/app"
	"peoplelens/domain/employee"
	"peoplelens/domain/insight"
	"peoplelens/internal/export"
	"peoplelens/internal/testkit"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "peoplelens-cli",
		Short: "PeopleLens CLI for running the attrition analytics without the dashboard",
	}

	rootCmd.AddCommand(
		newSummaryCmd(),
		newGroupsCmd(),
		newTTestCmd(),
		newRiskCmd(),
		newReportCmd(),
		newExportCmd(),
		newValidateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// sourceOptions are the dataset flags shared by the analytics commands.
type sourceOptions struct {
	dataPath    string
	sheetName   string
	departments string
	synthetic   bool
}

func (o *sourceOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.dataPath, "data", "data/employees.csv", "Path to the employee table (.csv or .xlsx)")
	cmd.Flags().StringVar(&o.sheetName, "sheet", "", "Worksheet name for xlsx sources (first sheet when empty)")
	cmd.Flags().StringVar(&o.departments, "departments", "", "Comma-separated department filter (all departments when empty)")
	cmd.Flags().BoolVar(&o.synthetic, "synthetic", false, "Use the generated demo workforce instead of a file")
}

func (o *sourceOptions) dataset(ctx context.Context) (*employee.Dataset, error) {
	if o.synthetic {
		return testkit.NewTestKit().Dataset(), nil
	}
	reader := tabular.NewReader(tabular.Config{Path: o.dataPath, SheetName: o.sheetName})
	return reader.Load(ctx)
}

func (o *sourceOptions) selection(engine *app.Engine) []string {
	if strings.TrimSpace(o.departments) == "" {
		return engine.Departments()
	}

	parts := strings.Split(o.departments, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func newSummaryCmd() *cobra.Command {
	var opts sourceOptions
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Compute the headline KPIs for a department selection",
		Long: `Load the employee table, apply the department filter, and print the
headline figures: headcount, attrition rate, average tenure, and average
job satisfaction.

Example: peoplelens-cli summary --data data/employees.csv --departments "Sales"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd.Context(), opts, asJSON)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full snapshot as JSON instead of text")

	return cmd
}

func runSummary(ctx context.Context, opts sourceOptions, asJSON bool) error {
	dataset, err := opts.dataset(ctx)
	if err != nil {
		return err
	}
	engine := app.NewEngine(dataset)
	snapshot := engine.Snapshot(opts.selection(engine))

	if asJSON {
		data, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("\n=== DATASET ===\n")
	fmt.Printf("Source: %s\n", dataset.SourcePath)
	fmt.Printf("Rows: %d\n", dataset.Len())
	fmt.Printf("Hash: %s\n", dataset.Hash.Short())
	fmt.Printf("Selection: %s\n", joinOrAll(snapshot.Departments))

	fmt.Printf("\n=== KPIS ===\n")
	fmt.Printf("Headcount: %d\n", snapshot.KPIs.Headcount)
	fmt.Printf("Attrition Rate: %s%%\n", snapshot.KPIs.AttritionRate.Format(1))
	fmt.Printf("Avg Tenure: %s years\n", snapshot.KPIs.AvgTenure.Format(1))
	fmt.Printf("Avg Satisfaction: %s / 4\n", snapshot.KPIs.AvgSatisfaction.Format(2))

	return nil
}

func newGroupsCmd() *cobra.Command {
	var opts sourceOptions

	cmd := &cobra.Command{
		Use:   "groups [dimension]",
		Short: "Print attrition rates grouped by a dimension",
		Long: `Group the filtered view by a dimension and print the attrition rate per
group. Without an argument every supported dimension is printed.

Dimensions: department, job_role, tenure_group, work_life_balance

Example: peoplelens-cli groups job_role --departments "Research & Development"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dimension := ""
			if len(args) == 1 {
				dimension = args[0]
			}
			return runGroups(cmd.Context(), opts, dimension)
		},
	}

	opts.register(cmd)
	return cmd
}

func runGroups(ctx context.Context, opts sourceOptions, dimension string) error {
	dataset, err := opts.dataset(ctx)
	if err != nil {
		return err
	}
	engine := app.NewEngine(dataset)
	view := engine.Filter(opts.selection(engine))

	var sets []insight.GroupSet
	if dimension == "" {
		sets = engine.AllGroupedRates(view)
	} else {
		dim, err := employee.ParseDimension(dimension)
		if err != nil {
			return err
		}
		sets = []insight.GroupSet{engine.GroupedRates(view, dim)}
	}

	for _, set := range sets {
		fmt.Printf("\n=== ATTRITION BY %s ===\n", strings.ToUpper(set.Dimension.Label()))
		if len(set.Groups) == 0 {
			fmt.Println("(no rows in selection)")
			continue
		}
		for _, g := range set.Groups {
			fmt.Printf("%-26s %5d rows %5d left %7.1f%%\n", g.Key, g.Count, g.Attrition, g.Rate)
		}
	}

	return nil
}

func newTTestCmd() *cobra.Command {
	var opts sourceOptions

	cmd := &cobra.Command{
		Use:   "ttest",
		Short: "Compare job satisfaction between stayers and leavers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTTest(cmd.Context(), opts)
		},
	}

	opts.register(cmd)
	return cmd
}

func runTTest(ctx context.Context, opts sourceOptions) error {
	dataset, err := opts.dataset(ctx)
	if err != nil {
		return err
	}
	engine := app.NewEngine(dataset)
	result := engine.SatisfactionTTest(engine.Filter(opts.selection(engine)))

	fmt.Printf("\n=== SATISFACTION T-TEST ===\n")
	if !result.Computed() {
		fmt.Printf("Not enough data: both groups must be present (stayed n=%d, left n=%d)\n",
			result.NStayed, result.NLeft)
		return nil
	}

	fmt.Printf("Stayed: mean %.3f (n=%d)\n", result.MeanStayed, result.NStayed)
	fmt.Printf("Left:   mean %.3f (n=%d)\n", result.MeanLeft, result.NLeft)
	fmt.Printf("t = %.4f | p = %.4f | df = %.1f\n", result.TStatistic, result.PValue, result.DF)
	if result.Significant {
		fmt.Printf("✅ Significant at α = 0.05\n")
	} else {
		fmt.Printf("Not significant at α = 0.05\n")
	}

	return nil
}

func newRiskCmd() *cobra.Command {
	var opts sourceOptions

	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Size the early-risk segment of the selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRisk(cmd.Context(), opts)
		},
	}

	opts.register(cmd)
	return cmd
}

func runRisk(ctx context.Context, opts sourceOptions) error {
	dataset, err := opts.dataset(ctx)
	if err != nil {
		return err
	}
	engine := app.NewEngine(dataset)
	risk := engine.RiskSummary(engine.Filter(opts.selection(engine)))

	fmt.Printf("\n=== EARLY-RISK SEGMENT ===\n")
	fmt.Printf("Employees: %d (%s%% of selection)\n", risk.Count, risk.Share.Format(1))
	fmt.Printf("Segment Attrition: %s%%\n", risk.SegmentRate.Format(1))
	fmt.Printf("Baseline Attrition: %s%%\n", risk.BaselineRate.Format(1))
	fmt.Printf("Delta: %s points\n", risk.Delta.Format(1))

	return nil
}

func newReportCmd() *cobra.Command {
	var modelPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the packaged model evaluation report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), modelPath)
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "models/attrition_model.json", "Path to the serialized model artifact")
	return cmd
}

func runReport(ctx context.Context, modelPath string) error {
	artifact, err := model.NewSource(modelPath).Load(ctx)
	if err != nil {
		return err
	}
	report, err := app.BuildModelReport(artifact)
	if err != nil {
		return err
	}

	fmt.Printf("\n=== MODEL ===\n")
	fmt.Printf("Algorithm: %s\n", report.Algorithm)
	fmt.Printf("Trees: %d | Inputs: %d | Hash: %s\n", report.NumTrees, report.NumInputs, report.ModelHash)

	fmt.Printf("\n=== EVALUATION ===\n")
	fmt.Printf("Accuracy: %.1f%%\n", report.AccuracyPercent())
	fmt.Printf("ROC-AUC: %.3f\n", report.ROCAUC)
	fmt.Printf("Recall (leavers): %.1f%%\n", report.RecallPercent())

	fmt.Printf("\n=== FEATURE IMPORTANCE ===\n")
	for i := len(report.Features) - 1; i >= 0; i-- {
		f := report.Features[i]
		fmt.Printf("%-24s %.3f\n", f.Feature, f.Score)
	}

	return nil
}

func newExportCmd() *cobra.Command {
	var opts sourceOptions
	var modelPath string

	cmd := &cobra.Command{
		Use:   "export [output.xlsx]",
		Short: "Write the full analytics snapshot to an Excel workbook",
		Long: `Recompute the snapshot for the selection and write it to a workbook with
one sheet per panel: overview, grouped rates, the satisfaction test, the
risk segment, and the model report.

Example: peoplelens-cli export report.xlsx --departments "Sales,Human Resources"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outPath := "peoplelens_report.xlsx"
			if len(args) == 1 {
				outPath = args[0]
			}
			return runExport(cmd.Context(), opts, modelPath, outPath)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&modelPath, "model", "models/attrition_model.json", "Path to the serialized model artifact")

	return cmd
}

func runExport(ctx context.Context, opts sourceOptions, modelPath, outPath string) error {
	dataset, err := opts.dataset(ctx)
	if err != nil {
		return err
	}

	var report insight.ModelReport
	if opts.synthetic {
		report, err = app.BuildModelReport(testkit.SyntheticArtifact())
	} else {
		artifact, loadErr := model.NewSource(modelPath).Load(ctx)
		if loadErr != nil {
			return loadErr
		}
		report, err = app.BuildModelReport(artifact)
	}
	if err != nil {
		return err
	}

	engine := app.NewEngine(dataset)
	snapshot := engine.Snapshot(opts.selection(engine))

	if err := export.NewExporter().Export(ctx, snapshot, report, outPath); err != nil {
		return err
	}

	fmt.Printf("✅ Workbook written to %s (%d rows in selection)\n", outPath, snapshot.KPIs.Headcount)
	return nil
}

func newValidateCmd() *cobra.Command {
	var modelPath string
	var probe string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a model artifact and optionally score a probe vector",
		Long: `Load and validate the serialized tree ensemble. With --probe, the
comma-separated feature vector is scored and the attrition probability
printed; values follow the artifact's feature order.

Example: peoplelens-cli validate --model models/attrition_model.json --probe "3,2,2.5,12,1,29,2600"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), modelPath, probe)
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "models/attrition_model.json", "Path to the serialized model artifact")
	cmd.Flags().StringVar(&probe, "probe", "", "Comma-separated feature vector to score")

	return cmd
}

func runValidate(ctx context.Context, modelPath, probe string) error {
	artifact, err := model.NewSource(modelPath).LoadArtifact(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Model artifact is valid\n")
	fmt.Printf("Algorithm: %s\n", artifact.Algorithm())
	fmt.Printf("Trees: %d | Inputs: %d | Hash: %s\n", artifact.NumTrees(), artifact.NumInputs(), artifact.HashShort())
	fmt.Printf("Features: %s\n", strings.Join(artifact.Features, ", "))

	if probe == "" {
		return nil
	}

	vector, err := parseProbe(probe)
	if err != nil {
		return err
	}
	probability, err := artifact.Probability(vector)
	if err != nil {
		return err
	}
	fmt.Printf("\nProbe attrition probability: %.3f\n", probability)

	return nil
}

func parseProbe(probe string) ([]float64, error) {
	parts := strings.Split(probe, ",")
	vector := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid probe value %q: %w", p, err)
		}
		vector = append(vector, v)
	}
	return vector, nil
}

func joinOrAll(departments []string) string {
	if len(departments) == 0 {
		return "(none)"
	}
	return strings.Join(departments, ", ")
}
