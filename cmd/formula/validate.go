package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kishan-gau/recruitiq-sub007/pkg/cli"
	formulaErrors "github.com/kishan-gau/recruitiq-sub007/pkg/formula/errors"
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/validator"
)

var validateFlags struct {
	strict        bool
	maxDepth      int
	maxComplexity int
	format        string
}

var validateCmd = &cobra.Command{
	Use:   "validate <formula>",
	Short: "Check a formula without evaluating it",
	Long: `Validate a formula against the variable whitelist, function arities,
literal division by zero and the depth and complexity limits.

Errors make the formula unusable; warnings are advisory. Limits default to
the engine configuration.

Examples:
  # Validate a formula
  formula validate "gross_pay * tax_rate"

  # Warn on division by runtime values
  formula validate "base_salary / working_days" --strict

  # Tighter limits, JSON output for CI/CD
  formula validate "MAX(gross_pay, 0)" --max-depth 10 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: validateFormula,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateFlags.strict, "strict", false, "warn on division or modulo by non-literal values")
	validateCmd.Flags().IntVar(&validateFlags.maxDepth, "max-depth", 0, "maximum tree depth (0 uses the configured limit)")
	validateCmd.Flags().IntVar(&validateFlags.maxComplexity, "max-complexity", 0, "complexity warning threshold (0 uses the configured limit)")
	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
}

func validateFormula(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(validateFlags.format, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	opts := validator.Options{
		Strict:        a.cfg.Engine.Strict || validateFlags.strict,
		MaxDepth:      a.cfg.Engine.MaxDepth,
		MaxComplexity: a.cfg.Engine.MaxComplexity,
	}
	if validateFlags.maxDepth < 0 || validateFlags.maxComplexity < 0 {
		return fmt.Errorf("--max-depth and --max-complexity must not be negative")
	}
	if validateFlags.maxDepth > 0 {
		opts.MaxDepth = validateFlags.maxDepth
	}
	if validateFlags.maxComplexity > 0 {
		opts.MaxComplexity = validateFlags.maxComplexity
	}

	res, err := a.engine.Validate(formulaArg(args[0]), &opts)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}

	out := cmd.OutOrStdout()
	if format == cli.FormatJSON {
		if err := cli.NewFormatter(cli.FormatJSON).FormatTo(out, res); err != nil {
			return err
		}
	} else {
		printFindings(out, res)
	}

	if !res.Valid {
		return cli.NewCommandError("validate", fmt.Errorf("formula is invalid"))
	}
	return nil
}

func printFindings(w io.Writer, res *validator.Result) {
	if res.Valid && len(res.Warnings) == 0 {
		fmt.Fprintln(w, "✓ Formula is valid")
		return
	}

	for _, f := range res.Errors {
		fmt.Fprintf(w, "✗ Error: %s\n", findingText(f))
	}
	for _, f := range res.Warnings {
		fmt.Fprintf(w, "⚠  Warning: %s\n", findingText(f))
	}
	fmt.Fprintf(w, "%d error(s), %d warning(s)\n", len(res.Errors), len(res.Warnings))
}

func findingText(f formulaErrors.Finding) string {
	return fmt.Sprintf("%s [%s]", f.String(), f.Code)
}
