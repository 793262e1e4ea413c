package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/kishan-gau/recruitiq-sub007/pkg/library"
)

func setLintFlags(file, dir string, strict bool, format string) {
	lintFlags.file = file
	lintFlags.dir = dir
	lintFlags.strict = strict
	lintFlags.format = format
	lintFlags.progress = false
}

func TestLintCatalogsValidFile(t *testing.T) {
	cmd, stdout, _ := newTestCommand(t)
	setLintFlags("testdata/catalogs/earnings.yaml", "", false, "text")

	if err := lintCatalogs(cmd, nil); err != nil {
		t.Fatalf("lintCatalogs() with valid file returned error: %v", err)
	}
	if !strings.Contains(stdout.String(), "✓ 2 formula(s) valid") {
		t.Errorf("output = %q", stdout.String())
	}
}

func TestLintCatalogsInvalidFile(t *testing.T) {
	cmd, stdout, _ := newTestCommand(t)
	setLintFlags("testdata/invalid.yaml", "", false, "json")

	if err := lintCatalogs(cmd, nil); err == nil {
		t.Fatal("lintCatalogs() with invalid file should return error")
	}

	var results []LintResult
	if err := json.Unmarshal(stdout.Bytes(), &results); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(results) != 1 || results[0].Valid || results[0].Formulas != 3 {
		t.Fatalf("results = %+v", results)
	}

	codes := map[string]string{}
	for _, issue := range results[0].Errors {
		codes[issue.Formula] = issue.Code
	}
	if codes["typo"] != "unknown_variable" || codes["broken"] != "syntax" {
		t.Errorf("issue codes = %v", codes)
	}
	if _, ok := codes["fine"]; ok {
		t.Error("valid formula reported as an error")
	}
}

func TestLintCatalogsMalformedFile(t *testing.T) {
	cmd, stdout, _ := newTestCommand(t)
	setLintFlags("testdata/malformed.yaml", "", false, "json")

	if err := lintCatalogs(cmd, nil); err == nil {
		t.Fatal("lintCatalogs() with malformed file should return error")
	}

	var results []LintResult
	if err := json.Unmarshal(stdout.Bytes(), &results); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	issue := results[0].Errors[0]
	if issue.Code != "yaml" || issue.Line == 0 {
		t.Errorf("issue = %+v, want yaml error with line", issue)
	}
}

func TestLintCatalogsArgumentErrors(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		dir    string
		format string
	}{
		{"no file or dir", "", "", "text"},
		{"nonexistent file", "testdata/nonexistent.yaml", "", "text"},
		{"nonexistent dir", "", "testdata/nonexistent", "text"},
		{"bad format", "testdata/catalogs/earnings.yaml", "", "junit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, _ := newTestCommand(t)
			setLintFlags(tt.file, tt.dir, false, tt.format)

			if err := lintCatalogs(cmd, nil); err == nil {
				t.Error("lintCatalogs() should return error")
			}
		})
	}
}

func TestLintCatalogsDirectory(t *testing.T) {
	cmd, stdout, stderr := newTestCommand(t)
	setLintFlags("", "testdata/catalogs", false, "text")
	lintFlags.progress = true

	if err := lintCatalogs(cmd, nil); err != nil {
		t.Fatalf("lintCatalogs() with valid directory returned error: %v", err)
	}
	if !strings.Contains(stdout.String(), "2 file(s), 0 error(s), 0 warning(s)") {
		t.Errorf("output = %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "Linted 2/2 files") {
		t.Errorf("progress output missing from stderr: %q", stderr.String())
	}
}

func TestLintCatalogsStrict(t *testing.T) {
	cmd, stdout, _ := newTestCommand(t)
	cfgFile = "testdata/strict-config.yaml"
	setLintFlags("testdata/catalogs/earnings.yaml", "", false, "text")

	if err := lintCatalogs(cmd, nil); err != nil {
		t.Fatalf("warnings alone should not fail lint: %v", err)
	}
	if !strings.Contains(stdout.String(), "⚠  Warning: daily_rate:") ||
		!strings.Contains(stdout.String(), "[variable_divisor]") {
		t.Errorf("output = %q, want variable divisor warning", stdout.String())
	}

	stdout.Reset()
	lintFlags.strict = true
	if err := lintCatalogs(cmd, nil); err == nil {
		t.Error("--strict should fail on warnings")
	}
	if !strings.Contains(stdout.String(), "Strict mode enabled") {
		t.Errorf("output = %q", stdout.String())
	}
}

func TestLoadIssues(t *testing.T) {
	list := &library.ErrorList{}
	list.Add(&library.ParseError{FilePath: "a.yaml", Line: 4, Message: "bad indent"})
	list.Add(&library.CatalogError{FilePath: "b.yaml", Formula: "bonus", Field: "expression", Message: "expression is required"})
	list.Add(&library.LoadError{FilePath: "c.yaml", Message: "file too large"})

	issues := loadIssues(list)
	if len(issues) != 3 {
		t.Fatalf("loadIssues() = %+v, want 3 issues", issues)
	}

	if issues[0].Code != "yaml" || issues[0].Line != 4 || issues[0].Message != "bad indent" {
		t.Errorf("parse issue = %+v", issues[0])
	}
	if issues[1].Code != "catalog" || issues[1].Formula != "bonus" || issues[1].Message != "expression: expression is required" {
		t.Errorf("catalog issue = %+v", issues[1])
	}
	if issues[2].Code != "load" {
		t.Errorf("load issue = %+v", issues[2])
	}

	text := issueText(issues[1])
	if text != "bonus: expression: expression is required [catalog]" {
		t.Errorf("issueText() = %q", text)
	}
}
