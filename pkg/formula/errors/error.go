package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/ast"
)

// ErrorType categorizes an engine error.
type ErrorType string

const (
	ErrorTypeSyntax     ErrorType = "syntax"     // Tokenizer/parser failure
	ErrorTypeValidation ErrorType = "validation" // Static check failure
	ErrorTypeExecution  ErrorType = "execution"  // Runtime evaluation failure
)

// Sentinel causes wrapped by ExecutionError.
var (
	ErrDivisionByZero  = errors.New("division by zero")
	ErrModuloByZero    = errors.New("modulo by zero")
	ErrMissingVariable = errors.New("missing variable")
	ErrMalformedTree   = errors.New("malformed formula tree")
)

// ParseError reports a syntactically invalid formula.
type ParseError struct {
	Message string
	Pos     int    // Byte offset of the offending token, -1 if unknown
	Source  string // Formula text, empty when parsing a token slice
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s", ErrorTypeSyntax, e.Message))
	if ctx := ExtractContext(e.Source, e.Pos); ctx != "" {
		sb.WriteString("\n")
		sb.WriteString(ctx)
	}
	return sb.String()
}

// NewParseError creates a parse error at the given position.
func NewParseError(pos int, format string, args ...any) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	}
}

// ValidationError aggregates the findings of a failed validation.
type ValidationError struct {
	Findings []Finding
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch len(e.Findings) {
	case 0:
		return fmt.Sprintf("[%s] formula is invalid", ErrorTypeValidation)
	case 1:
		return fmt.Sprintf("[%s] %s", ErrorTypeValidation, e.Findings[0].Message)
	}

	messages := make([]string, len(e.Findings))
	for i, f := range e.Findings {
		messages[i] = f.Message
	}
	return fmt.Sprintf("[%s] %d errors: %s", ErrorTypeValidation, len(e.Findings), strings.Join(messages, "; "))
}

// Messages returns the messages of all findings.
func (e *ValidationError) Messages() []string {
	out := make([]string, len(e.Findings))
	for i, f := range e.Findings {
		out[i] = f.Message
	}
	return out
}

// ExecutionError reports a runtime evaluation failure.
type ExecutionError struct {
	Message  string
	Variable string // Variable involved, if any
	Cause    error  // One of the sentinel errors
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("[%s] %s", ErrorTypeExecution, e.Message)
}

// Unwrap returns the sentinel cause.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// NewDivisionByZero returns the runtime error for x / 0.
func NewDivisionByZero() *ExecutionError {
	return &ExecutionError{Message: "division by zero", Cause: ErrDivisionByZero}
}

// NewModuloByZero returns the runtime error for x % 0.
func NewModuloByZero() *ExecutionError {
	return &ExecutionError{Message: "modulo by zero", Cause: ErrModuloByZero}
}

// NewMissingVariable returns the runtime error for an unbound variable.
func NewMissingVariable(name string) *ExecutionError {
	return &ExecutionError{
		Message:  "Missing variable: " + name,
		Variable: name,
		Cause:    ErrMissingVariable,
	}
}

// NewMalformed returns the runtime error for a structurally broken tree.
func NewMalformed(format string, args ...any) *ExecutionError {
	return &ExecutionError{
		Message: fmt.Sprintf(format, args...),
		Cause:   ErrMalformedTree,
	}
}

// IsParseError reports whether err is or wraps a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsValidationError reports whether err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsExecutionError reports whether err is or wraps an ExecutionError.
func IsExecutionError(err error) bool {
	var ee *ExecutionError
	return errors.As(err, &ee)
}

// Finding is a single validation error or warning.
type Finding struct {
	Code       Code     `json:"code"`                 // Machine-readable category
	Message    string   `json:"message"`              // Human-readable message
	Suggestion string   `json:"suggestion,omitempty"` // Suggested fix (optional)
	Node       ast.Node `json:"-"`                    // Offending node (optional)
}

// Code identifies the check that produced a finding.
type Code string

const (
	CodeUnknownVariable Code = "unknown_variable"
	CodeArity           Code = "invalid_arity"
	CodeUnknownFunction Code = "unknown_function"
	CodeDivisionByZero  Code = "division_by_zero"
	CodeModuloByZero    Code = "modulo_by_zero"
	CodeVariableDivisor Code = "variable_divisor"
	CodeMaxDepth        Code = "max_depth"
	CodeComplexity      Code = "complexity"
	CodeMalformed       Code = "malformed"
	CodeInvalidOperator Code = "invalid_operator"
)

// String renders the finding with its suggestion.
func (f Finding) String() string {
	if f.Suggestion != "" {
		return f.Message + " (" + f.Suggestion + ")"
	}
	return f.Message
}

// FindingList accumulates findings instead of failing on the first one.
type FindingList struct {
	Findings []Finding
}

// NewFindingList creates an empty list.
func NewFindingList() *FindingList {
	return &FindingList{Findings: make([]Finding, 0)}
}

// Add appends a finding.
func (fl *FindingList) Add(f Finding) {
	fl.Findings = append(fl.Findings, f)
}

// AddFinding creates and adds a finding.
func (fl *FindingList) AddFinding(code Code, message string, node ast.Node) {
	fl.Add(Finding{Code: code, Message: message, Node: node})
}

// AddFindingWithSuggestion creates and adds a finding with a suggestion.
func (fl *FindingList) AddFindingWithSuggestion(code Code, message string, node ast.Node, suggestion string) {
	fl.Add(Finding{Code: code, Message: message, Node: node, Suggestion: suggestion})
}

// HasFindings returns true if the list is not empty.
func (fl *FindingList) HasFindings() bool {
	return len(fl.Findings) > 0
}

// Count returns the number of findings.
func (fl *FindingList) Count() int {
	return len(fl.Findings)
}

// ByCode returns all findings with the given code.
func (fl *FindingList) ByCode(code Code) []Finding {
	var result []Finding
	for _, f := range fl.Findings {
		if f.Code == code {
			result = append(result, f)
		}
	}
	return result
}

// ToError returns nil if the list is empty, otherwise a ValidationError.
func (fl *FindingList) ToError() error {
	if !fl.HasFindings() {
		return nil
	}
	return &ValidationError{Findings: fl.Findings}
}
