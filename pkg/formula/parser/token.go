package parser

import (
	"fmt"
	"strconv"
)

// Kind identifies the lexical class of a token.
type Kind int

const (
	NUMBER Kind = iota
	VARIABLE
	OPERATOR
	COMPARISON
	LOGICAL
	FUNCTION
	LPAREN
	RPAREN
	COMMA
	QUESTION
	COLON
)

var kindNames = [...]string{
	NUMBER:     "NUMBER",
	VARIABLE:   "VARIABLE",
	OPERATOR:   "OPERATOR",
	COMPARISON: "COMPARISON",
	LOGICAL:    "LOGICAL",
	FUNCTION:   "FUNCTION",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	COMMA:      "COMMA",
	QUESTION:   "QUESTION",
	COLON:      "COLON",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Token is a single lexical unit of a formula.
type Token struct {
	Kind  Kind
	Text  string  // Source text of the token
	Value float64 // Numeric value, NUMBER only
	Pos   int     // Byte offset in the source
}

// Equal reports whether two tokens have the same kind, text and value.
// Positions are ignored.
func (t Token) Equal(other Token) bool {
	return t.Kind == other.Kind && t.Text == other.Text && t.Value == other.Value
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%s)@%d", t.Kind, t.Text, t.Pos)
}

// Is reports whether the token has the given kind and text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}
