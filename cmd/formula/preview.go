package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kishan-gau/recruitiq-sub007/pkg/cli"
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/engine"
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/variables"
)

var previewFlags struct {
	format string
}

var previewCmd = &cobra.Command{
	Use:   "preview <formula>",
	Short: "Evaluate a formula over low, base and high scenarios",
	Long: `Evaluate a formula with the sample value of every payroll variable,
scaling the first variable it references by 0.5, 1 and 2.

Sample values can be overridden with engine.sample_values in the config
file. Scenario errors are reported per row and do not fail the command.

Examples:
  formula preview "hours_worked > 160 ? (hours_worked - 160) * overtime_rate : 0"
  formula preview "gross_pay * tax_rate" --format csv`,
	Args: cobra.ExactArgs(1),
	RunE: previewFormula,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&previewFlags.format, "format", "text", "output format: text, json, csv")
}

func previewFormula(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(previewFlags.format, cli.FormatText, cli.FormatJSON, cli.FormatCSV)
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	src := formulaArg(args[0])
	scenarios, err := a.engine.Test(src)
	if err != nil {
		return cli.NewCommandError("preview", err)
	}

	columns, err := a.engine.ExtractVariables(src)
	if err != nil {
		return cli.NewCommandError("preview", err)
	}
	if len(columns) == 0 {
		columns = []string{variables.GrossPay}
	}

	table := scenarioTable{columns: columns, scenarios: scenarios}
	out := cmd.OutOrStdout()

	switch format {
	case cli.FormatJSON:
		return cli.NewFormatter(cli.FormatJSON).FormatTo(out, scenarios)
	case cli.FormatCSV:
		return cli.NewFormatter(cli.FormatCSV).FormatTo(out, table)
	default:
		return table.write(out)
	}
}

// scenarioTable shows the referenced variables of each scenario next to its
// result.
type scenarioTable struct {
	columns   []string
	scenarios []engine.Scenario
}

func (t scenarioTable) Header() []string {
	header := append([]string{"scenario"}, t.columns...)
	return append(header, "result", "error")
}

func (t scenarioTable) Rows() [][]string {
	rows := make([][]string, 0, len(t.scenarios))
	for _, s := range t.scenarios {
		row := []string{s.Name}
		for _, c := range t.columns {
			row = append(row, formatValue(s.Variables[c]))
		}
		result := formatValue(s.Result)
		if s.Error != "" {
			result = "-"
		}
		rows = append(rows, append(row, result, s.Error))
	}
	return rows
}

func (t scenarioTable) write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(t.Header(), "\t")))
	for _, row := range t.Rows() {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
