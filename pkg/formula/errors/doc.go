// Package errors provides the error types of the formula engine.
//
// Three kinds of failure are kept apart:
//
// ParseError: the text is not a formula (invalid character, unmatched
// parenthesis, incomplete ternary, malformed function call). Returned only by
// the tokenizer and parser.
//
// ValidationError: the formula parses but is semantically wrong (unknown
// variable, wrong function arity, division by a literal zero, excessive
// nesting). The validator reports these as Findings without failing; the
// engine converts a failed validation into a ValidationError when asked to
// execute.
//
// ExecutionError: evaluation failed at runtime (division by a value that
// turned out to be zero, a whitelisted variable missing from the bindings).
//
// # Basic Usage
//
//	value, err := eng.Calculate("gross_pay / hours_worked", vars)
//	switch {
//	case errors.IsValidationError(err):
//	    // show findings to the formula author
//	case errors.IsExecutionError(err):
//	    // halt the payroll run
//	}
//
// # Error Format
//
// Parse errors carry the source and the offending position, and render a
// caret under it:
//
//	[syntax] Unmatched parenthesis: expected ')'
//	  |
//	  | (gross_pay * 0.1
//	  |                 ^
//
// # Suggestions
//
// SuggestName uses Levenshtein distance to propose a close match for a
// misspelled variable:
//
//	errors.SuggestName("gros_pay", whitelist.Names())
//	// Returns: "Did you mean 'gross_pay'?"
package errors
