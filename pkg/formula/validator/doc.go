// Package validator performs static checks on formula syntax trees.
//
// Validation never fails with an error. Every problem found is reported as
// a Finding in the returned Result, so an authoring UI can show all of them
// at once. Errors make a formula invalid; warnings are advisory.
//
// The checks are split in two passes:
//
//   - Structural: tree shape, operator sets, nesting depth and complexity.
//   - Semantic: variable whitelist, function arity, division by literal zero,
//     and in strict mode division by runtime values.
//
// A Validator only reads its whitelist and is safe for concurrent use.
package validator
