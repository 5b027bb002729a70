package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rgehrsitz/hpgo/internal/calculation"
	"github.com/rgehrsitz/hpgo/internal/config"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/internal/logging"
	"github.com/rgehrsitz/hpgo/internal/output"
	"github.com/rgehrsitz/hpgo/internal/transform"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries the settings and collaborators every command shares. It is
// filled in by the root command's PersistentPreRunE.
type app struct {
	configPath string
	debug      bool
	now        func() time.Time

	cfg    config.ServiceConfig
	log    *zap.Logger
	engine *calculation.CalculationEngine
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadServiceConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.debug {
		cfg.Log.Level = "debug"
		cfg.Projection.Debug = true
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	a.cfg = cfg
	a.log = log
	a.engine = calculation.NewCalculationEngine()
	a.engine.Debug = cfg.Projection.Debug
	a.engine.SetLogger(logging.EngineLogger(log))
	return nil
}

// loadPlan reads and normalizes a plan file, then applies any templates and
// transform specs in that order
func (a *app) loadPlan(path string, templates, specs []string) (domain.Plan, []transform.PlanTransform, error) {
	input, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return domain.Plan{}, nil, err
	}
	plan := config.Normalize(a.cfg.Projection.ApplyDefaults(*input), a.now())

	var transforms []transform.PlanTransform
	registry := transform.CreateBuiltInTemplates()
	for _, name := range templates {
		tmpl, ok := registry.Get(name)
		if !ok {
			return domain.Plan{}, nil, fmt.Errorf("unknown template %q (see 'hpgo compare --list-templates')", name)
		}
		transforms = append(transforms, tmpl.Transforms...)
	}
	parsed, err := transform.NewTransformRegistry().ParseTransformSpecs(specs)
	if err != nil {
		return domain.Plan{}, nil, err
	}
	transforms = append(transforms, parsed...)

	if len(transforms) == 0 {
		return plan, nil, nil
	}
	plan, err = transform.ApplyTransforms(plan, transforms)
	if err != nil {
		return domain.Plan{}, nil, err
	}
	a.log.Debug("applied assumptions", zap.String("plan", plan.Name), zap.String("transforms", transform.Describe(transforms)))
	return plan, transforms, nil
}

// emit renders a report with the named formatter to stdout, or to a file in outputDir
func (a *app) emit(cmd *cobra.Command, report *output.Report, format, outputDir string) error {
	f := output.GetFormatterByName(strings.ToLower(format))
	if f == nil {
		return fmt.Errorf("unknown format %q (valid: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
	}

	if outputDir != "" {
		path, err := output.WriteFormatted(f, report, outputDir, extensionFor(f.Name()))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
		return nil
	}

	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func extensionFor(format string) string {
	switch format {
	case "console", "console-lite":
		return "txt"
	default:
		return format
	}
}

func addReportFlags(cmd *cobra.Command, defaultFormat string) {
	cmd.Flags().StringP("format", "f", defaultFormat,
		fmt.Sprintf("Output format (%s)", strings.Join(output.AvailableFormatterNames(), ", ")))
	cmd.Flags().String("output-dir", "", "Write the report to a timestamped file in this directory")
}

func addAssumptionFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("template", nil, "Built-in template(s) to apply before projecting")
	cmd.Flags().StringArrayP("transform", "t", nil, "Transform spec to apply, e.g. adjust_rate:field=loan_rate,delta=1 (repeatable)")
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hpgo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func newRootCmd() *cobra.Command {
	a := &app{now: time.Now}

	root := &cobra.Command{
		Use:   "hpgo",
		Short: "Home purchase affordability calculator",
		Long: `Project a household's savings year by year, size the mortgage a target
house would need, and find the first year the payment fits the budget.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Service config file (YAML); HPGO_* environment variables also apply")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging of every projected year")

	root.AddCommand(
		projectCmd(a),
		affordCmd(a),
		amortizeCmd(a),
		compareCmd(a),
		solveCmd(a),
		validateCmd(a),
		serveCmd(a),
		versionCmd(),
	)
	return root
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [plan-file]",
		Short: "Validate a plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, _, err := a.loadPlan(args[0], nil, nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plan file %s is valid\n", args[0])
			for _, line := range output.PlanAssumptions(plan) {
				fmt.Fprintf(cmd.OutOrStdout(), "* %s\n", line)
			}
			return nil
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
