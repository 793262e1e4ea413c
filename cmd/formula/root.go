package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kishan-gau/recruitiq-sub007/pkg/cli"
	"github.com/kishan-gau/recruitiq-sub007/pkg/config"
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/engine"
	"github.com/kishan-gau/recruitiq-sub007/pkg/telemetry/logging"
	"github.com/kishan-gau/recruitiq-sub007/pkg/telemetry/metrics"
	"github.com/kishan-gau/recruitiq-sub007/pkg/telemetry/tracing"
)

var (
	// Global flags
	cfgFile  string
	verbose  bool
	astInput bool
)

var rootCmd = &cobra.Command{
	Use:   "formula",
	Short: "Payroll formula engine",
	Long: `Parse, validate and evaluate payroll formulas.

Formulas are arithmetic expressions over whitelisted payroll variables
(gross_pay, hours_worked, overtime_rate, ...) with comparison and logical
operators, a ternary conditional and the functions MIN, MAX, ROUND, ABS,
FLOOR, CEIL and IF.

Formula arguments are formula text unless --ast is given, in which case
they are the serialized AST JSON produced by "formula parse".`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return cli.ExitCode(err)
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults apply when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().BoolVar(&astInput, "ast", false, "treat formula arguments as serialized AST JSON")
}

// app holds the components a command needs, built from the configuration.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	engine  *engine.Engine
}

// newApp loads configuration and builds the logger, metrics collector,
// tracer and engine. Logs go to the command's error stream. Callers must
// close the app to flush spans.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	config.Publish(cfg)

	logCfg := logging.FromConfig(cfg.Telemetry.Logging)
	logCfg.Writer = cmd.ErrOrStderr()
	if verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return nil, cli.NewConfigError("telemetry.tracing", err.Error())
	}

	eng, err := engine.New(engine.FromConfig(cfg.Engine), logger, collector)
	if err != nil {
		_ = tracer.Shutdown(context.Background())
		return nil, cli.NewConfigError("engine", err.Error())
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		metrics: collector,
		tracer:  tracer,
		engine:  eng,
	}, nil
}

// close flushes buffered spans.
func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.tracer.Shutdown(ctx); err != nil {
		a.logger.Warn("tracer shutdown failed", "error", err)
	}
}

// formulaArg converts a positional argument into engine input.
func formulaArg(arg string) any {
	if astInput {
		return []byte(arg)
	}
	return arg
}

// formatValue renders a result without exponent notation.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// commandContext returns the command's context, or Background when the
// command was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
