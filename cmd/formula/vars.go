package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kishan-gau/recruitiq-sub007/pkg/cli"
)

var varsFlags struct {
	whitelist bool
	format    string
}

var varsCmd = &cobra.Command{
	Use:   "vars [formula]",
	Short: "List the variables a formula reads",
	Long: `List the distinct variables a formula references, in order of first
appearance. With --whitelist, list every variable formulas may reference.

Examples:
  formula vars "(hours_worked - 160) * overtime_rate + hours_worked"
  formula vars --whitelist`,
	Args: cobra.MaximumNArgs(1),
	RunE: listVariables,
}

func init() {
	rootCmd.AddCommand(varsCmd)

	varsCmd.Flags().BoolVar(&varsFlags.whitelist, "whitelist", false, "list all allowed variables")
	varsCmd.Flags().StringVar(&varsFlags.format, "format", "text", "output format: text, json")
}

func listVariables(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(varsFlags.format, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return err
	}
	if !varsFlags.whitelist && len(args) == 0 {
		return fmt.Errorf("a formula argument or --whitelist is required")
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	var names []string
	if varsFlags.whitelist {
		names = a.engine.Whitelist().Sorted()
	} else {
		names, err = a.engine.ExtractVariables(formulaArg(args[0]))
		if err != nil {
			return cli.NewCommandError("vars", err)
		}
	}

	out := cmd.OutOrStdout()
	if format == cli.FormatJSON {
		if names == nil {
			names = []string{}
		}
		return cli.NewFormatter(cli.FormatJSON).FormatTo(out, names)
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}
