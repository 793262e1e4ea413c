// Package parser turns formula text into an abstract syntax tree.
//
// Parsing happens in two phases. Tokenize splits the text into a flat token
// stream, and the precedence-climbing parser builds the tree from it.
// Operator precedence, from lowest to highest:
//
//	?:             ternary, right-associative
//	OR
//	AND
//	NOT            prefix
//	> < >= <= == != comparison, non-associative
//	+ -
//	* / %
//	-              unary minus
//	primary        number, variable, function call, parenthesized expression
//
// Function arity is not checked here; that is the validator's job.
package parser
