package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kishan-gau/recruitiq-sub007/pkg/cli"
)

var calcFlags struct {
	vars   []string
	format string
}

var calcCmd = &cobra.Command{
	Use:   "calc <formula>",
	Short: "Evaluate a formula",
	Long: `Validate and evaluate a formula against variable bindings.

Every variable the formula reads must be bound with --var, unless the
branch reading it is never taken.

Examples:
  # Ten percent bonus
  formula calc "gross_pay * 0.1" --var gross_pay=5000

  # Several bindings
  formula calc "ROUND(base_salary / working_days, 2)" --var base_salary=6000 --var working_days=26

  # Result with execution metadata
  formula calc "MAX(gross_pay - deductions, 0)" --var gross_pay=100 --var deductions=40 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: calcFormula,
}

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().StringArrayVar(&calcFlags.vars, "var", nil, "variable binding name=value (repeatable)")
	calcCmd.Flags().StringVar(&calcFlags.format, "format", "text", "output format: text, json")
}

func calcFormula(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(calcFlags.format, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return err
	}

	vars, err := parseVars(calcFlags.vars)
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	res, err := a.engine.ExecuteContext(commandContext(cmd), formulaArg(args[0]), vars)
	if err != nil {
		return cli.NewCommandError("calc", err)
	}

	if format == cli.FormatJSON {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(cmd.OutOrStdout(), res)
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatValue(res.Value))
	return nil
}

// parseVars turns name=value pairs into bindings. Later pairs override
// earlier ones.
func parseVars(pairs []string) (map[string]float64, error) {
	vars := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --var %q: want name=value", pair)
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --var %q: %q is not a number", pair, raw)
		}
		vars[name] = value
	}
	return vars, nil
}
