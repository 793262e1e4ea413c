package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kishan-gau/recruitiq-sub007/pkg/cli"
	"github.com/kishan-gau/recruitiq-sub007/pkg/library"
)

var lintFlags struct {
	file     string
	dir      string
	strict   bool
	format   string
	progress bool
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate formula catalog files",
	Long: `Validate YAML formula catalogs for syntax and semantic errors.

The lint command loads catalog files and checks every formula:
  - YAML syntax and unknown fields
  - Catalog structure (names, duplicates, test expectations)
  - Formula syntax
  - Semantic validation (variables, functions, arity, division by zero)

Examples:
  # Lint single file
  formula lint --file formulas/earnings.yaml

  # Lint directory (recursive)
  formula lint --dir formulas/

  # Strict mode (warnings as errors)
  formula lint --dir formulas/ --strict

  # JSON output for CI/CD
  formula lint --dir formulas/ --format json`,
	RunE: lintCatalogs,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "catalog file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of catalog files")
	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "treat warnings as errors")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
	lintCmd.Flags().BoolVar(&lintFlags.progress, "progress", false, "show progress on stderr")
}

// LintResult represents the validation result for a single catalog file.
type LintResult struct {
	File     string      `json:"file"`
	Valid    bool        `json:"valid"`
	Formulas int         `json:"formulas"`
	Errors   []LintIssue `json:"errors,omitempty"`
	Warnings []LintIssue `json:"warnings,omitempty"`
}

// LintIssue represents a single validation error or warning.
type LintIssue struct {
	Formula  string `json:"formula,omitempty"`
	Line     int    `json:"line,omitempty"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

func lintCatalogs(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	format, err := cli.ParseFormat(lintFlags.format, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()
	loader := library.NewLoader(a.engine, nil)

	var files []string
	if lintFlags.file != "" {
		files = append(files, lintFlags.file)
	}
	if lintFlags.dir != "" {
		found, err := loader.Files(lintFlags.dir)
		if err != nil {
			return cli.NewCommandError("lint", err)
		}
		files = append(files, found...)
	}

	if len(files) == 0 {
		return cli.NewCommandError("lint", fmt.Errorf("no catalog files found"))
	}

	var progress cli.ProgressReporter
	if lintFlags.progress {
		progress = cli.NewProgressReporter(cmd.ErrOrStderr())
		progress.Start(len(files))
	}

	results := make([]LintResult, 0, len(files))
	for _, file := range files {
		results = append(results, lintFile(loader, file))
		if progress != nil {
			progress.Done(file)
		}
	}
	if progress != nil {
		progress.Finish()
	}

	out := cmd.OutOrStdout()
	if format == cli.FormatJSON {
		if err := cli.NewFormatter(cli.FormatJSON).FormatTo(out, results); err != nil {
			return err
		}
	}

	errCount, warnCount := writeLintText(out, results, format == cli.FormatText)

	if lintFlags.strict && warnCount > 0 {
		if format == cli.FormatText {
			fmt.Fprintln(out, "  Strict mode enabled: treating warnings as errors")
		}
		return cli.NewCommandError("lint", fmt.Errorf("validation failed"))
	}
	if errCount > 0 {
		return cli.NewCommandError("lint", fmt.Errorf("validation failed"))
	}
	return nil
}

// lintFile loads one catalog file and collects every problem in it.
func lintFile(loader *library.Loader, path string) LintResult {
	result := LintResult{File: path}

	lib, err := loader.Load(path)
	if err != nil {
		result.Errors = append(result.Errors, loadIssues(err)...)
	}

	if lib != nil {
		result.Formulas = len(lib.Formulas)
		for _, f := range lib.Formulas {
			if f.ParseErr != nil {
				result.Errors = append(result.Errors, LintIssue{
					Formula:  f.Name,
					Code:     "syntax",
					Message:  f.ParseErr.Error(),
					Severity: "error",
				})
				continue
			}
			for _, finding := range f.Validation.Errors {
				result.Errors = append(result.Errors, LintIssue{
					Formula:  f.Name,
					Code:     string(finding.Code),
					Message:  finding.String(),
					Severity: "error",
				})
			}
			for _, finding := range f.Validation.Warnings {
				result.Warnings = append(result.Warnings, LintIssue{
					Formula:  f.Name,
					Code:     string(finding.Code),
					Message:  finding.String(),
					Severity: "warning",
				})
			}
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// loadIssues converts loader errors into lint issues.
func loadIssues(err error) []LintIssue {
	var list *library.ErrorList
	if errors.As(err, &list) {
		var issues []LintIssue
		for _, e := range list.Errors {
			issues = append(issues, loadIssues(e)...)
		}
		return issues
	}

	issue := LintIssue{Message: err.Error(), Severity: "error"}

	var parseErr *library.ParseError
	var catalogErr *library.CatalogError
	switch {
	case errors.As(err, &parseErr):
		issue.Line = parseErr.Line
		issue.Code = "yaml"
		issue.Message = parseErr.Message
		if parseErr.Cause != nil {
			issue.Message = fmt.Sprintf("%s: %v", parseErr.Message, parseErr.Cause)
		}
	case errors.As(err, &catalogErr):
		issue.Formula = catalogErr.Formula
		issue.Code = "catalog"
		issue.Message = catalogErr.Message
		if catalogErr.Field != "" {
			issue.Message = fmt.Sprintf("%s: %s", catalogErr.Field, catalogErr.Message)
		}
	default:
		issue.Code = "load"
	}
	return []LintIssue{issue}
}

// writeLintText prints per-file results when print is set and always
// returns the totals.
func writeLintText(w io.Writer, results []LintResult, print bool) (errCount, warnCount int) {
	for _, result := range results {
		errCount += len(result.Errors)
		warnCount += len(result.Warnings)
		if !print {
			continue
		}

		fmt.Fprintf(w, "Validating %s...\n", result.File)

		if len(result.Errors) == 0 && len(result.Warnings) == 0 {
			fmt.Fprintf(w, "✓ %d formula(s) valid\n", result.Formulas)
		}
		for _, issue := range result.Errors {
			fmt.Fprintf(w, "✗ Error: %s\n", issueText(issue))
		}
		for _, issue := range result.Warnings {
			fmt.Fprintf(w, "⚠  Warning: %s\n", issueText(issue))
		}
		fmt.Fprintln(w)
	}

	if print {
		fmt.Fprintln(w, "Summary:")
		fmt.Fprintf(w, "  %d file(s), %d error(s), %d warning(s)\n", len(results), errCount, warnCount)
	}
	return errCount, warnCount
}

func issueText(issue LintIssue) string {
	text := issue.Message
	if issue.Formula != "" {
		text = fmt.Sprintf("%s: %s", issue.Formula, text)
	}
	if issue.Line > 0 {
		text += fmt.Sprintf(" (line %d)", issue.Line)
	}
	if issue.Code != "" {
		text += fmt.Sprintf(" [%s]", issue.Code)
	}
	return text
}
