package parser

import (
	"strings"

	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/ast"
	formulaErrors "github.com/kishan-gau/recruitiq-sub007/pkg/formula/errors"
)

const (
	// DefaultMaxSourceLength is the largest formula accepted, in bytes.
	DefaultMaxSourceLength = 4096

	// DefaultMaxNesting bounds parser recursion. It is far above any
	// validator depth limit and only protects the stack.
	DefaultMaxNesting = 256
)

// Parser builds syntax trees from formula text or token streams.
// A Parser holds only configuration and is safe for concurrent use.
type Parser struct {
	maxSourceLength int // Maximum formula length in bytes (0 disables the check)
	maxNesting      int // Maximum recursion depth while parsing
}

// NewParser creates a parser with default limits.
func NewParser() *Parser {
	return &Parser{
		maxSourceLength: DefaultMaxSourceLength,
		maxNesting:      DefaultMaxNesting,
	}
}

// WithMaxSourceLength sets the maximum formula length in bytes.
// Zero or a negative value disables the check.
func (p *Parser) WithMaxSourceLength(n int) *Parser {
	p.maxSourceLength = n
	return p
}

// WithMaxNesting sets the maximum recursion depth while parsing.
func (p *Parser) WithMaxNesting(n int) *Parser {
	if n > 0 {
		p.maxNesting = n
	}
	return p
}

var defaultParser = NewParser()

// Parse builds a tree from a token stream using the default parser.
func Parse(tokens []Token) (ast.Node, error) {
	return defaultParser.Parse(tokens)
}

// ParseString tokenizes and parses source using the default parser.
func ParseString(source string) (ast.Node, error) {
	return defaultParser.ParseString(source)
}

// ParseString tokenizes and parses source. Errors carry the source text so
// they render with a caret pointing at the offending position.
func (p *Parser) ParseString(source string) (ast.Node, error) {
	if p.maxSourceLength > 0 && len(source) > p.maxSourceLength {
		return nil, formulaErrors.NewParseError(-1, "Formula exceeds maximum length of %d characters", p.maxSourceLength)
	}
	if strings.TrimSpace(source) == "" {
		return nil, &formulaErrors.ParseError{Message: "Formula is empty", Pos: -1}
	}

	tokens, perr := tokenize(source)
	if perr != nil {
		perr.Source = source
		return nil, perr
	}

	node, perr := p.parse(tokens, len(source))
	if perr != nil {
		perr.Source = source
		return nil, perr
	}
	return node, nil
}

// Parse builds a tree from a token stream.
func (p *Parser) Parse(tokens []Token) (ast.Node, error) {
	end := 0
	if len(tokens) > 0 {
		last := tokens[len(tokens)-1]
		end = last.Pos + len(last.Text)
	}
	node, perr := p.parse(tokens, end)
	if perr != nil {
		return nil, perr
	}
	return node, nil
}

func (p *Parser) parse(tokens []Token, end int) (ast.Node, *formulaErrors.ParseError) {
	if len(tokens) == 0 {
		return nil, &formulaErrors.ParseError{Message: "Formula is empty", Pos: -1}
	}

	st := &state{tokens: tokens, end: end, maxNesting: p.maxNesting}
	node, err := st.parseTernary()
	if err != nil {
		return nil, err
	}
	if tok, ok := st.peek(); ok {
		if tok.Kind == RPAREN {
			return nil, formulaErrors.NewParseError(tok.Pos, "Unmatched parenthesis: unexpected ')'")
		}
		return nil, formulaErrors.NewParseError(tok.Pos, "Unexpected token '%s'", tok.Text)
	}
	return node, nil
}

// state is the cursor of a single parse.
type state struct {
	tokens     []Token
	pos        int
	end        int // Byte offset reported for errors at end of input
	depth      int
	maxNesting int
}

func (s *state) peek() (Token, bool) {
	if s.pos >= len(s.tokens) {
		return Token{}, false
	}
	return s.tokens[s.pos], true
}

func (s *state) next() Token {
	tok := s.tokens[s.pos]
	s.pos++
	return tok
}

// accept consumes the next token if it has the given kind, and text when
// text is non-empty.
func (s *state) accept(kind Kind, text string) (Token, bool) {
	tok, ok := s.peek()
	if !ok || tok.Kind != kind || (text != "" && tok.Text != text) {
		return Token{}, false
	}
	s.pos++
	return tok, true
}

func (s *state) enter() *formulaErrors.ParseError {
	s.depth++
	if s.depth > s.maxNesting {
		pos := s.end
		if tok, ok := s.peek(); ok {
			pos = tok.Pos
		}
		return formulaErrors.NewParseError(pos, "Formula exceeds maximum nesting of %d", s.maxNesting)
	}
	return nil
}

func (s *state) leave() {
	s.depth--
}

// parseTernary: or ('?' ternary ':' ternary)?
func (s *state) parseTernary() (ast.Node, *formulaErrors.ParseError) {
	if err := s.enter(); err != nil {
		return nil, err
	}
	defer s.leave()

	cond, err := s.parseOr()
	if err != nil {
		return nil, err
	}
	if _, ok := s.accept(QUESTION, ""); !ok {
		return cond, nil
	}

	consequent, err := s.parseTernary()
	if err != nil {
		return nil, err
	}
	if _, ok := s.accept(COLON, ""); !ok {
		return nil, formulaErrors.NewParseError(s.errorPos(), "Incomplete ternary expression: expected ':'")
	}
	alternate, err := s.parseTernary()
	if err != nil {
		return nil, err
	}
	return &ast.Conditional{Condition: cond, Consequent: consequent, Alternate: alternate}, nil
}

// parseOr: and (OR and)*
func (s *state) parseOr() (ast.Node, *formulaErrors.ParseError) {
	left, err := s.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := s.accept(LOGICAL, string(ast.OpOr)); !ok {
			return left, nil
		}
		right, err := s.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Logical{Op: ast.OpOr, Left: left, Right: right}
	}
}

// parseAnd: not (AND not)*
func (s *state) parseAnd() (ast.Node, *formulaErrors.ParseError) {
	left, err := s.parseNot()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := s.accept(LOGICAL, string(ast.OpAnd)); !ok {
			return left, nil
		}
		right, err := s.parseNot()
		if err != nil {
			return nil, err
		}
		left = &ast.Logical{Op: ast.OpAnd, Left: left, Right: right}
	}
}

// parseNot: NOT not | comparison
func (s *state) parseNot() (ast.Node, *formulaErrors.ParseError) {
	if _, ok := s.accept(LOGICAL, string(ast.OpNot)); !ok {
		return s.parseComparison()
	}
	if err := s.enter(); err != nil {
		return nil, err
	}
	defer s.leave()

	operand, err := s.parseNot()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryOp{Op: ast.OpNot, Operand: operand}, nil
}

// parseComparison: additive (cmp additive)?
func (s *state) parseComparison() (ast.Node, *formulaErrors.ParseError) {
	left, err := s.parseAdditive()
	if err != nil {
		return nil, err
	}
	op, ok := s.accept(COMPARISON, "")
	if !ok {
		return left, nil
	}
	right, err := s.parseAdditive()
	if err != nil {
		return nil, err
	}
	if tok, ok := s.peek(); ok && tok.Kind == COMPARISON {
		return nil, formulaErrors.NewParseError(tok.Pos, "Chained comparisons are not supported; combine them with AND")
	}
	return &ast.Comparison{Op: ast.Operator(op.Text), Left: left, Right: right}, nil
}

// parseAdditive: multiplicative (('+' | '-') multiplicative)*
func (s *state) parseAdditive() (ast.Node, *formulaErrors.ParseError) {
	left, err := s.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := s.peek()
		if !ok || tok.Kind != OPERATOR || (tok.Text != "+" && tok.Text != "-") {
			return left, nil
		}
		s.next()
		right, err := s.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: ast.Operator(tok.Text), Left: left, Right: right}
	}
}

// parseMultiplicative: unary (('*' | '/' | '%') unary)*
func (s *state) parseMultiplicative() (ast.Node, *formulaErrors.ParseError) {
	left, err := s.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := s.peek()
		if !ok || tok.Kind != OPERATOR || (tok.Text != "*" && tok.Text != "/" && tok.Text != "%") {
			return left, nil
		}
		s.next()
		right, err := s.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: ast.Operator(tok.Text), Left: left, Right: right}
	}
}

// parseUnary: '-' unary | primary
func (s *state) parseUnary() (ast.Node, *formulaErrors.ParseError) {
	if _, ok := s.accept(OPERATOR, "-"); !ok {
		return s.parsePrimary()
	}
	if err := s.enter(); err != nil {
		return nil, err
	}
	defer s.leave()

	operand, err := s.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryOp{Op: ast.OpSub, Operand: operand}, nil
}

// parsePrimary: NUMBER | VARIABLE | call | '(' ternary ')'
func (s *state) parsePrimary() (ast.Node, *formulaErrors.ParseError) {
	tok, ok := s.peek()
	if !ok {
		return nil, formulaErrors.NewParseError(s.end, "Unexpected end of formula")
	}

	switch tok.Kind {
	case NUMBER:
		s.next()
		return &ast.Literal{Value: tok.Value}, nil

	case VARIABLE:
		s.next()
		return &ast.Variable{Name: tok.Text}, nil

	case FUNCTION:
		s.next()
		return s.parseCall(tok)

	case LPAREN:
		s.next()
		inner, err := s.parseTernary()
		if err != nil {
			return nil, err
		}
		if _, ok := s.accept(RPAREN, ""); !ok {
			return nil, formulaErrors.NewParseError(s.errorPos(), "Unmatched parenthesis: expected ')'")
		}
		return inner, nil

	case RPAREN:
		return nil, formulaErrors.NewParseError(tok.Pos, "Unmatched parenthesis: unexpected ')'")
	}

	return nil, formulaErrors.NewParseError(tok.Pos, "Unexpected token '%s'", tok.Text)
}

// parseCall parses the argument list of a function whose name was consumed.
func (s *state) parseCall(name Token) (ast.Node, *formulaErrors.ParseError) {
	if _, ok := s.accept(LPAREN, ""); !ok {
		return nil, formulaErrors.NewParseError(s.errorPos(), "Function %s must be followed by '('", name.Text)
	}
	if tok, ok := s.peek(); ok && tok.Kind == RPAREN {
		return nil, formulaErrors.NewParseError(tok.Pos, "Function %s requires at least one argument", name.Text)
	}

	call := &ast.FunctionCall{Name: ast.Function(name.Text)}
	for {
		arg, err := s.parseTernary()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)

		tok, ok := s.peek()
		if !ok {
			return nil, formulaErrors.NewParseError(s.end, "Unclosed parenthesis in call to %s", name.Text)
		}
		switch tok.Kind {
		case RPAREN:
			s.next()
			return call, nil
		case COMMA:
			s.next()
			if next, ok := s.peek(); ok && next.Kind == RPAREN {
				return nil, formulaErrors.NewParseError(next.Pos, "Trailing comma in call to %s", name.Text)
			}
		default:
			return nil, formulaErrors.NewParseError(tok.Pos, "Expected ',' or ')' in call to %s, got '%s'", name.Text, tok.Text)
		}
	}
}

// errorPos is the position of the next token, or the end of input.
func (s *state) errorPos() int {
	if tok, ok := s.peek(); ok {
		return tok.Pos
	}
	return s.end
}
