package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kishan-gau/recruitiq-sub007/pkg/cli"
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/ast"
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/codec"
)

var parseFlags struct {
	compact bool
}

var parseCmd = &cobra.Command{
	Use:   "parse <formula>",
	Short: "Print the AST of a formula as JSON",
	Long: `Parse a formula and print its syntax tree in the serialized JSON form.

The output can be stored and passed back to any other command with --ast.

Examples:
  # Indented AST
  formula parse "hours_worked > 160 ? (hours_worked - 160) * overtime_rate : 0"

  # Single line, for storage
  formula parse "gross_pay * 0.1" --compact

  # Normalize stored JSON
  formula parse --ast '{"type":"Literal","value":1}'`,
	Args: cobra.ExactArgs(1),
	RunE: parseFormula,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVar(&parseFlags.compact, "compact", false, "print JSON on a single line")
}

func parseFormula(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	var node ast.Node
	if astInput {
		node, err = codec.Unmarshal([]byte(args[0]))
	} else {
		node, err = a.engine.Parse(args[0])
	}
	if err != nil {
		return cli.NewCommandError("parse", err)
	}

	var out []byte
	if parseFlags.compact {
		out, err = codec.Marshal(node)
	} else {
		out, err = codec.MarshalIndent(node, "", "  ")
	}
	if err != nil {
		return cli.NewCommandError("parse", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
