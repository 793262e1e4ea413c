package library

import (
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/ast"
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/validator"
)

// Catalog is a decoded catalog file.
type Catalog struct {
	Name     string        `yaml:"name"`
	Version  string        `yaml:"version"`
	Formulas []FormulaSpec `yaml:"formulas"`

	// SourceFile is the file the catalog was read from.
	SourceFile string `yaml:"-"`
}

// FormulaSpec is a formula as authored in a catalog.
type FormulaSpec struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Expression  string     `yaml:"expression"`
	Tests       []TestCase `yaml:"tests"`
}

// TestCase is an embedded check run by the Runner. Exactly one of Expect
// and ExpectError is set.
type TestCase struct {
	Name      string             `yaml:"name"`
	Variables map[string]float64 `yaml:"variables"`

	// Expect is the expected value.
	Expect *float64 `yaml:"expect"`

	// ExpectError is a case-insensitive fragment of the expected error.
	ExpectError string `yaml:"expect_error"`
}

// Formula is a loaded formula with the outcome of parsing and validation.
type Formula struct {
	Name        string
	Description string
	Expression  string
	Tests       []TestCase

	// Catalog and Version identify the catalog the formula came from.
	Catalog    string
	Version    string
	SourceFile string

	// Tree is the parsed formula, nil when parsing failed.
	Tree ast.Node

	// JSON is the serialized tree of a valid formula.
	JSON string

	// Variables are the variables the formula references.
	Variables []string

	// ParseErr is set when the expression does not parse.
	ParseErr error

	// Validation is the validator result, nil when parsing failed.
	Validation *validator.Result
}

// Valid reports whether the formula parsed and passed validation.
func (f *Formula) Valid() bool {
	return f.ParseErr == nil && f.Validation != nil && f.Validation.Valid
}

// Err returns the parse error or the validation error, or nil for a valid
// formula.
func (f *Formula) Err() error {
	if f.ParseErr != nil {
		return f.ParseErr
	}
	if f.Validation == nil {
		return ErrFormulaInvalid
	}
	return f.Validation.Err()
}

// Library is the result of loading one or more catalogs.
type Library struct {
	Catalogs []*Catalog

	// Formulas holds every formula in load order, valid or not.
	Formulas []*Formula
}

// ValidFormulas returns the formulas that can be registered.
func (lib *Library) ValidFormulas() []*Formula {
	out := make([]*Formula, 0, len(lib.Formulas))
	for _, f := range lib.Formulas {
		if f.Valid() {
			out = append(out, f)
		}
	}
	return out
}

// InvalidFormulas returns the formulas that failed to parse or validate.
func (lib *Library) InvalidFormulas() []*Formula {
	var out []*Formula
	for _, f := range lib.Formulas {
		if !f.Valid() {
			out = append(out, f)
		}
	}
	return out
}

// Lookup returns the formula with the given name.
func (lib *Library) Lookup(name string) (*Formula, bool) {
	for _, f := range lib.Formulas {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}
