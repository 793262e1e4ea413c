package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kishan-gau/recruitiq-sub007/pkg/cli"
)

var statsFlags struct {
	format string
}

var statsCmd = &cobra.Command{
	Use:   "stats <formula>",
	Short: "Show size and complexity of a formula",
	Long: `Show the variables, node count, weighted complexity and depth of a formula.

Examples:
  formula stats "IF(hours_worked > 160, hours_worked * 1.5, hours_worked)"
  formula stats "gross_pay * 0.1" --format json`,
	Args: cobra.ExactArgs(1),
	RunE: showStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVar(&statsFlags.format, "format", "text", "output format: text, json")
}

func showStats(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(statsFlags.format, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	stats, err := a.engine.GetStats(formulaArg(args[0]))
	if err != nil {
		return cli.NewCommandError("stats", err)
	}

	out := cmd.OutOrStdout()
	if format == cli.FormatJSON {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(out, stats)
	}

	fmt.Fprintf(out, "Variables:  %s\n", strings.Join(stats.Variables, ", "))
	fmt.Fprintf(out, "Nodes:      %d\n", stats.NodeCount)
	fmt.Fprintf(out, "Complexity: %d\n", stats.Complexity)
	fmt.Fprintf(out, "Depth:      %d\n", stats.Depth)
	return nil
}
