package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/kishan-gau/recruitiq-sub007/pkg/cli"
	"github.com/kishan-gau/recruitiq-sub007/pkg/library"
)

var testFlags struct {
	file   string
	format string
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run the tests embedded in formula catalogs",
	Long: `Execute the test cases declared next to each formula in a catalog.

Test Case Format (YAML):
  formulas:
    - name: overtime_pay
      expression: "hours_worked > 160 ? (hours_worked - 160) * overtime_rate : 0"
      tests:
        - name: ten hours overtime
          variables: {hours_worked: 170, overtime_rate: 40}
          expect: 400
        - name: rejects missing rate
          variables: {hours_worked: 170}
          expect_error: "missing variable"

Expected values are compared with a relative tolerance of 1e-9.
expect_error matches a case-insensitive substring of the error.

Examples:
  # Run tests in one catalog
  formula test --file formulas/earnings.yaml

  # Run every catalog in a directory, JUnit output for CI
  formula test --file formulas/ --format junit`,
	RunE: runCatalogTests,
}

func init() {
	rootCmd.AddCommand(testCmd)

	testCmd.Flags().StringVarP(&testFlags.file, "file", "f", "", "catalog file or directory to test")
	testCmd.Flags().StringVar(&testFlags.format, "format", "text", "output format: text, json, junit")

	// Mark required flags - panic if this fails as it's a programming error
	if err := testCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}
}

func runCatalogTests(cmd *cobra.Command, args []string) error {
	if testFlags.file == "" {
		return fmt.Errorf("--file must be specified")
	}

	format, err := cli.ParseFormat(testFlags.format, cli.FormatText, cli.FormatJSON, cli.FormatJUnit)
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	lib, loadErr := library.NewLoader(a.engine, nil).Load(testFlags.file)
	if lib == nil {
		return cli.NewCommandError("test", fmt.Errorf("failed to load catalogs: %w", loadErr))
	}
	if loadErr != nil {
		a.logger.Warn("some catalogs failed to load", "path", testFlags.file, "error", loadErr)
	}

	start := time.Now()
	report := library.NewRunner(a.engine, a.logger, a.metrics).Run(commandContext(cmd), lib)
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	switch format {
	case cli.FormatJSON:
		err = cli.NewFormatter(cli.FormatJSON).FormatTo(out, report)
	case cli.FormatJUnit:
		err = cli.NewFormatter(cli.FormatJUnit).FormatTo(out, junitReport(report, elapsed))
	default:
		writeReport(out, report)
	}
	if err != nil {
		return err
	}

	if !report.OK() {
		return cli.NewCommandError("test", fmt.Errorf("%d test(s) failed", report.Failed))
	}
	if loadErr != nil {
		return cli.NewCommandError("test", loadErr)
	}
	return nil
}

func writeReport(w io.Writer, report *library.Report) {
	fmt.Fprintln(w, "Running formula tests...")
	for _, r := range report.Results {
		if r.Passed {
			fmt.Fprintf(w, "  ✓ %s / %s\n", r.Formula, r.Test)
			continue
		}
		fmt.Fprintf(w, "  ✗ %s / %s: %s\n", r.Formula, r.Test, r.Message)
	}
	fmt.Fprintf(w, "\nResults: %d passed, %d failed\n", report.Passed, report.Failed)
}

func junitReport(report *library.Report, elapsed time.Duration) *cli.JUnitSuites {
	suites := &cli.JUnitSuites{}
	for _, r := range report.Results {
		failure := ""
		if !r.Passed {
			failure = r.Message
		}
		suites.AddCase(r.Formula, r.Test, failure)
	}
	suites.SetDuration(elapsed)
	return suites
}
