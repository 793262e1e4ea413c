package library

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/codec"
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/engine"
	formulaErrors "github.com/kishan-gau/recruitiq-sub007/pkg/formula/errors"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng, err := engine.New(nil, nil, nil)
	if err != nil {
		t.Fatalf("engine.New() error = %v", err)
	}
	return eng
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func formulaNames(formulas []*Formula) []string {
	names := make([]string, len(formulas))
	for i, f := range formulas {
		names[i] = f.Name
	}
	return names
}

func TestLoader_LoadDirectory(t *testing.T) {
	lib, err := NewLoader(newTestEngine(t), nil).Load("testdata/catalogs")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(lib.Catalogs) != 2 {
		t.Fatalf("len(Catalogs) = %d, want 2", len(lib.Catalogs))
	}

	got := strings.Join(formulaNames(lib.Formulas), ",")
	want := "overtime_pay,daily_rate,pension,per_dependent"
	if got != want {
		t.Errorf("formulas = %s, want %s", got, want)
	}

	for _, f := range lib.Formulas {
		if !f.Valid() {
			t.Errorf("formula %s invalid: %v", f.Name, f.Err())
		}
	}
}

func TestLoader_FormulaDetails(t *testing.T) {
	lib, err := Load(newTestEngine(t), "testdata/catalogs/nested/deductions.yml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	f, ok := lib.Lookup("pension")
	if !ok {
		t.Fatal("pension not loaded")
	}
	if f.Catalog != "acme-deductions" || f.Version != "2.1.0" {
		t.Errorf("catalog = %s@%s", f.Catalog, f.Version)
	}
	if f.SourceFile != "testdata/catalogs/nested/deductions.yml" {
		t.Errorf("SourceFile = %s", f.SourceFile)
	}
	if len(f.Variables) != 1 || f.Variables[0] != "gross_pay" {
		t.Errorf("Variables = %v", f.Variables)
	}
	if len(f.Tests) != 2 {
		t.Errorf("len(Tests) = %d, want 2", len(f.Tests))
	}

	tree, err := codec.FromJSON(f.JSON)
	if err != nil {
		t.Fatalf("stored JSON does not decode: %v", err)
	}
	if tree.String() != f.Tree.String() {
		t.Errorf("stored JSON = %s, want %s", tree, f.Tree)
	}
}

func TestLoader_InvalidFormulasAreKept(t *testing.T) {
	lib, err := Load(newTestEngine(t), "testdata/invalid/mixed.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := formulaNames(lib.ValidFormulas()); strings.Join(got, ",") != "good,wrong_expectation" {
		t.Errorf("valid formulas = %v", got)
	}

	typo, _ := lib.Lookup("typo")
	if typo.Valid() || !formulaErrors.IsValidationError(typo.Err()) {
		t.Errorf("typo Err() = %v, want ValidationError", typo.Err())
	}
	if typo.JSON != "" {
		t.Error("invalid formula should not be serialized")
	}

	broken, _ := lib.Lookup("broken_syntax")
	if broken.Tree != nil || !formulaErrors.IsParseError(broken.Err()) {
		t.Errorf("broken_syntax Err() = %v, want ParseError", broken.Err())
	}
}

func TestLoader_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		check   func(error) bool
		message string
	}{
		{
			name:    "unknown field",
			content: "name: x\nformulas:\n  - name: a\n    expression: \"1\"\n    bogus: 1\n",
			check:   func(err error) bool { var pe *ParseError; return errors.As(err, &pe) && pe.Line == 5 },
			message: "line 5",
		},
		{
			name:    "syntax",
			content: "name: x\nformulas: [\n",
			check:   func(err error) bool { var pe *ParseError; return errors.As(err, &pe) },
			message: "YAML parsing failed",
		},
		{
			name:    "empty",
			content: "",
			check:   func(err error) bool { var pe *ParseError; return errors.As(err, &pe) },
			message: "catalog is empty",
		},
		{
			name:    "missing name",
			content: "formulas:\n  - name: a\n    expression: \"1\"\n",
			check:   func(err error) bool { var ce *CatalogError; return errors.As(err, &ce) },
			message: "catalog name is required",
		},
		{
			name:    "no formulas",
			content: "name: x\n",
			check:   func(err error) bool { var ce *CatalogError; return errors.As(err, &ce) },
			message: "catalog defines no formulas",
		},
		{
			name:    "duplicate",
			content: "name: x\nformulas:\n  - name: a\n    expression: \"1\"\n  - name: a\n    expression: \"2\"\n",
			check:   func(err error) bool { var ce *CatalogError; return errors.As(err, &ce) },
			message: "duplicate formula name",
		},
		{
			name:    "bad formula name",
			content: "name: x\nformulas:\n  - name: 1abc\n    expression: \"1\"\n",
			check:   func(err error) bool { var ce *CatalogError; return errors.As(err, &ce) },
			message: "must be an identifier",
		},
		{
			name:    "test without expectation",
			content: "name: x\nformulas:\n  - name: a\n    expression: \"1\"\n    tests:\n      - name: t\n",
			check:   func(err error) bool { var ce *CatalogError; return errors.As(err, &ce) },
			message: "formulas[0].tests[0]",
		},
		{
			name:    "test with both expectations",
			content: "name: x\nformulas:\n  - name: a\n    expression: \"1\"\n    tests:\n      - expect: 1\n        expect_error: boom\n",
			check:   func(err error) bool { var ce *CatalogError; return errors.As(err, &ce) },
			message: "cannot set both",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml", tt.content)
			lib, err := Load(newTestEngine(t), path)
			if err == nil {
				t.Fatalf("Load() = %v, want error", lib)
			}
			if !tt.check(err) {
				t.Errorf("Load() error = %T %v, unexpected kind", err, err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("Load() error = %q, want it to contain %q", err, tt.message)
			}
		})
	}
}

func TestLoader_FileSystemErrors(t *testing.T) {
	eng := newTestEngine(t)

	_, err := Load(eng, filepath.Join(t.TempDir(), "missing.yaml"))
	var le *LoadError
	if !errors.As(err, &le) || !os.IsNotExist(errors.Unwrap(err)) {
		t.Errorf("missing file error = %v, want LoadError wrapping not-exist", err)
	}

	empty := t.TempDir()
	if _, err := Load(eng, empty); err == nil || !strings.Contains(err.Error(), "no catalog files") {
		t.Errorf("empty directory error = %v", err)
	}

	big := writeFile(t, t.TempDir(), "big.yaml", "name: big\n")
	loader := NewLoader(eng, &LoaderConfig{MaxFileSize: 4, Extensions: []string{".yaml"}})
	if _, err := loader.Load(big); err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
		t.Errorf("oversized file error = %v", err)
	}

	if _, err := LoadBytes(eng, []byte{0xff, 0xfe}, "memory"); err == nil || !strings.Contains(err.Error(), "UTF-8") {
		t.Errorf("invalid UTF-8 error = %v", err)
	}
}

func TestLoader_PartialDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "name: a\nformulas:\n  - name: shared\n    expression: \"1\"\n")
	writeFile(t, dir, "b.yaml", "name: b\nformulas:\n  - name: shared\n    expression: \"2\"\n  - name: other\n    expression: \"3\"\n")
	writeFile(t, dir, "c.yaml", "name: c\nformulas: [\n")

	lib, err := Load(newTestEngine(t), dir)
	if lib == nil {
		t.Fatalf("Load() returned no library: %v", err)
	}

	var list *ErrorList
	if !errors.As(err, &list) || len(list.Errors) != 2 {
		t.Fatalf("Load() error = %v, want 2 collected errors", err)
	}

	if got := strings.Join(formulaNames(lib.Formulas), ","); got != "shared,other" {
		t.Errorf("formulas = %s, want shared,other", got)
	}
	if f, _ := lib.Lookup("shared"); f.Expression != "1" {
		t.Errorf("first definition should win, got %q", f.Expression)
	}
}

func TestLoadBytes(t *testing.T) {
	data := []byte(`
name: inline
version: 1.0.0
formulas:
  - name: bonus
    expression: "performance_score >= 4 ? bonus_amount : 0"
`)

	lib, err := LoadBytes(newTestEngine(t), data, "memory://inline")
	if err != nil {
		t.Fatalf("LoadBytes() error = %v", err)
	}
	if lib.Catalogs[0].SourceFile != "memory://inline" {
		t.Errorf("SourceFile = %s", lib.Catalogs[0].SourceFile)
	}
	f, ok := lib.Lookup("bonus")
	if !ok || !f.Valid() {
		t.Fatalf("bonus not loaded or invalid: %v", f)
	}
}

func TestErrorList(t *testing.T) {
	list := &ErrorList{}
	if list.ToError() != nil {
		t.Error("empty list should convert to nil")
	}

	first := &LoadError{FilePath: "a", Message: "boom"}
	list.Add(first)
	list.Add(nil)
	if list.ToError() != first {
		t.Error("single error should be returned as-is")
	}

	list.Add(&ErrorList{Errors: []error{&LoadError{FilePath: "b"}, &LoadError{FilePath: "c"}}})
	if len(list.Errors) != 3 {
		t.Errorf("nested list not flattened: %d errors", len(list.Errors))
	}
	if !strings.HasPrefix(list.Error(), "3 errors occurred") {
		t.Errorf("Error() = %q", list.Error())
	}
	if !errors.Is(list, first) {
		t.Error("errors.Is should see collected errors")
	}
}

func TestLoader_Files(t *testing.T) {
	loader := NewLoader(newTestEngine(t), nil)

	files, err := loader.Files("testdata/catalogs")
	if err != nil {
		t.Fatalf("Files() error = %v", err)
	}
	want := []string{
		filepath.Join("testdata", "catalogs", "earnings.yaml"),
		filepath.Join("testdata", "catalogs", "nested", "deductions.yml"),
	}
	if len(files) != len(want) {
		t.Fatalf("Files() = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("Files()[%d] = %q, want %q", i, files[i], want[i])
		}
	}

	single, err := loader.Files("testdata/invalid/mixed.yaml")
	if err != nil || len(single) != 1 {
		t.Errorf("Files(file) = %v, %v", single, err)
	}

	if _, err := loader.Files("testdata/missing"); err == nil {
		t.Error("Files() on a missing path should fail")
	}
}
