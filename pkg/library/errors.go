package library

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFormulaNotFound is returned when a registry lookup fails.
var ErrFormulaNotFound = errors.New("formula not found")

// ErrFormulaInvalid is returned when an invalid formula is executed.
var ErrFormulaInvalid = errors.New("formula is invalid")

// LoadError represents a file system failure while loading a catalog:
// a missing file, a permission problem, a size limit or bad encoding.
type LoadError struct {
	// FilePath is the path to the file that failed to load
	FilePath string

	// Message describes the error
	Message string

	// Cause is the underlying error that caused this load error
	Cause error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load catalog %q: %s: %v", e.FilePath, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load catalog %q: %s", e.FilePath, e.Message)
}

// Unwrap implements the errors.Unwrap interface for error chain support.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ParseError represents a YAML decoding failure.
type ParseError struct {
	// FilePath is the path to the file that failed to parse
	FilePath string

	// Line is the line number where the error occurred (1-indexed, 0 if unknown)
	Line int

	// Message describes the parsing error
	Message string

	// Cause is the underlying decoder error
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %q at line %d: %s", e.FilePath, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %q: %s", e.FilePath, e.Message)
}

// Unwrap implements the errors.Unwrap interface for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// CatalogError represents a structural problem in a decoded catalog, such
// as a missing name or a duplicate formula.
type CatalogError struct {
	// FilePath is the catalog file
	FilePath string

	// Formula is the formula involved (if applicable)
	Formula string

	// Field is the path to the offending field (e.g., "formulas[0].tests[1]")
	Field string

	// Message describes the problem
	Message string
}

// Error implements the error interface.
func (e *CatalogError) Error() string {
	parts := []string{"catalog error"}

	if e.FilePath != "" {
		parts = append(parts, fmt.Sprintf("in %q", e.FilePath))
	}

	if e.Formula != "" {
		parts = append(parts, fmt.Sprintf("in formula %q", e.Formula))
	}

	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("at %s", e.Field))
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, " ")
}

// RegistryError represents a failed registry operation.
type RegistryError struct {
	// Formula is the formula involved in the error
	Formula string

	// Operation is the operation that failed (e.g., "replace")
	Operation string

	// Message describes the registry error
	Message string
}

// Error implements the error interface.
func (e *RegistryError) Error() string {
	if e.Formula != "" {
		return fmt.Sprintf("registry error for formula %q during %s: %s", e.Formula, e.Operation, e.Message)
	}
	return fmt.Sprintf("registry error during %s: %s", e.Operation, e.Message)
}

// ErrorList contains multiple errors that occurred while loading catalogs.
// Loading continues past a bad file, so some catalogs may still be returned.
type ErrorList struct {
	Errors []error
}

// Error implements the error interface.
func (e *ErrorList) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %v\n", i+1, err))
	}
	return sb.String()
}

// Unwrap returns the collected errors for errors.Is and errors.As.
func (e *ErrorList) Unwrap() []error {
	return e.Errors
}

// Add adds an error to the list. Nested lists are flattened.
func (e *ErrorList) Add(err error) {
	if err == nil {
		return
	}
	var list *ErrorList
	if errors.As(err, &list) {
		e.Errors = append(e.Errors, list.Errors...)
		return
	}
	e.Errors = append(e.Errors, err)
}

// HasErrors returns true if the list contains any errors.
func (e *ErrorList) HasErrors() bool {
	return len(e.Errors) > 0
}

// ToError returns nil if there are no errors, the single error if there is one,
// or the ErrorList itself if there are multiple errors.
func (e *ErrorList) ToError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	if len(e.Errors) == 1 {
		return e.Errors[0]
	}
	return e
}
