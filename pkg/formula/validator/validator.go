package validator

import (
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/ast"
	formulaErrors "github.com/kishan-gau/recruitiq-sub007/pkg/formula/errors"
	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/variables"
)

const (
	// DefaultMaxDepth is the deepest tree accepted.
	DefaultMaxDepth = 50

	// DefaultMaxComplexity is the weighted size above which a warning is raised.
	DefaultMaxComplexity = 100
)

// Options tunes a validation run. Zero-valued limits fall back to the defaults.
type Options struct {
	Strict        bool // Warn on division or modulo by non-literal operands
	MaxDepth      int  // Maximum tree depth (error when exceeded)
	MaxComplexity int  // Maximum weighted node count (warning when exceeded)
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		MaxDepth:      DefaultMaxDepth,
		MaxComplexity: DefaultMaxComplexity,
	}
}

func (o *Options) withDefaults() Options {
	out := DefaultOptions()
	if o == nil {
		return out
	}
	out.Strict = o.Strict
	if o.MaxDepth > 0 {
		out.MaxDepth = o.MaxDepth
	}
	if o.MaxComplexity > 0 {
		out.MaxComplexity = o.MaxComplexity
	}
	return out
}

// Result is the outcome of a validation run.
type Result struct {
	Valid    bool                    `json:"valid"`
	Errors   []formulaErrors.Finding `json:"errors"`
	Warnings []formulaErrors.Finding `json:"warnings"`
}

// Err returns a *errors.ValidationError aggregating all errors, or nil when
// the formula is valid. Warnings are not included.
func (r *Result) Err() error {
	if r.Valid {
		return nil
	}
	return &formulaErrors.ValidationError{Findings: r.Errors}
}

// Validator runs the structural and semantic passes.
type Validator struct {
	structural *StructuralValidator
	semantic   *SemanticValidator
}

// New creates a validator for the given whitelist. A nil whitelist selects
// variables.Default().
func New(whitelist *variables.Whitelist) *Validator {
	if whitelist == nil {
		whitelist = variables.Default()
	}
	return &Validator{
		structural: NewStructuralValidator(),
		semantic:   NewSemanticValidator(whitelist),
	}
}

// Validate checks node and returns a fresh result. A nil opts selects
// DefaultOptions. The tree is never modified.
func (v *Validator) Validate(node ast.Node, opts *Options) *Result {
	o := opts.withDefaults()

	errs := formulaErrors.NewFindingList()
	warnings := formulaErrors.NewFindingList()

	v.structural.Validate(node, o, errs, warnings)
	v.semantic.Validate(node, o, errs, warnings)

	return &Result{
		Valid:    !errs.HasFindings(),
		Errors:   errs.Findings,
		Warnings: warnings.Findings,
	}
}
