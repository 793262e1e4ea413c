package parser

import (
	"errors"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/ast"
	formulaErrors "github.com/kishan-gau/recruitiq-sub007/pkg/formula/errors"
)

// Tokenize splits source into tokens. Whitespace is dropped.
// Any character outside the formula alphabet yields a *errors.ParseError.
func Tokenize(source string) ([]Token, error) {
	tokens, err := tokenize(source)
	if err != nil {
		err.Source = source
		return nil, err
	}
	return tokens, nil
}

func tokenize(source string) ([]Token, *formulaErrors.ParseError) {
	var tokens []Token
	i := 0
	for i < len(source) {
		c := source[i]

		switch {
		case c < utf8.RuneSelf && unicode.IsSpace(rune(c)):
			i++

		case isDigit(c):
			tok, next, err := scanNumber(source, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next

		case isIdentStart(c):
			start := i
			for i < len(source) && isIdentPart(source[i]) {
				i++
			}
			tokens = append(tokens, Token{Kind: classifyWord(source[start:i]), Text: source[start:i], Pos: start})

		case c == '>' || c == '<' || c == '=' || c == '!':
			if i+1 < len(source) && source[i+1] == '=' {
				tokens = append(tokens, Token{Kind: COMPARISON, Text: source[i : i+2], Pos: i})
				i += 2
				continue
			}
			if c == '=' || c == '!' {
				return nil, formulaErrors.NewParseError(i, "Invalid character '%c'", c)
			}
			tokens = append(tokens, Token{Kind: COMPARISON, Text: string(c), Pos: i})
			i++

		case c == '+' || c == '-' || c == '*' || c == '/' || c == '%':
			tokens = append(tokens, Token{Kind: OPERATOR, Text: string(c), Pos: i})
			i++

		case c == '(':
			tokens = append(tokens, Token{Kind: LPAREN, Text: "(", Pos: i})
			i++
		case c == ')':
			tokens = append(tokens, Token{Kind: RPAREN, Text: ")", Pos: i})
			i++
		case c == ',':
			tokens = append(tokens, Token{Kind: COMMA, Text: ",", Pos: i})
			i++
		case c == '?':
			tokens = append(tokens, Token{Kind: QUESTION, Text: "?", Pos: i})
			i++
		case c == ':':
			tokens = append(tokens, Token{Kind: COLON, Text: ":", Pos: i})
			i++

		default:
			r, size := utf8.DecodeRuneInString(source[i:])
			if unicode.IsSpace(r) {
				i += size
				continue
			}
			if r == utf8.RuneError && size == 1 {
				return nil, formulaErrors.NewParseError(i, "Invalid byte 0x%02x", c)
			}
			return nil, formulaErrors.NewParseError(i, "Invalid character '%c'", r)
		}
	}
	return tokens, nil
}

// scanNumber reads digit+ ('.' digit+)? starting at i.
func scanNumber(source string, i int) (Token, int, *formulaErrors.ParseError) {
	start := i
	for i < len(source) && isDigit(source[i]) {
		i++
	}
	if i+1 < len(source) && source[i] == '.' && isDigit(source[i+1]) {
		i++
		for i < len(source) && isDigit(source[i]) {
			i++
		}
	}

	text := source[start:i]
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Token{}, 0, formulaErrors.NewParseError(start, "Number out of range: %s", text)
		}
		return Token{}, 0, formulaErrors.NewParseError(start, "Invalid number: %s", text)
	}
	return Token{Kind: NUMBER, Text: text, Value: value, Pos: start}, i, nil
}

func classifyWord(word string) Kind {
	if _, ok := ast.LookupFunction(word); ok {
		return FUNCTION
	}
	switch ast.Operator(word) {
	case ast.OpAnd, ast.OpOr, ast.OpNot:
		return LOGICAL
	}
	return VARIABLE
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
