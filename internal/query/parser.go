package query

import (
	"fmt"
	"strconv"
)

// Parser consumes the token sequence via recursive descent and builds a
// Query. Every failure is a *SyntaxError carrying the expected and actual
// token descriptions plus the position of the offending token.
type Parser struct {
	tokens  []Token
	current int
}

// NewParser creates a new Parser over a token sequence.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse tokenizes and parses a query string in one step.
func Parse(input string) (*Query, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

// Parse builds the Query. Grammar:
//
//	Query := 'SELECT' CommandClause? TargetClause? 'FROM' String?
//	         WhereClause? ModifierClause* OutputClause?
func (p *Parser) Parse() (*Query, error) {
	q := &Query{
		Command: CommandFind,
		Target:  TargetLines,
		Output:  OutputText,
	}

	if err := p.expectKeyword("SELECT"); err != nil {
		return nil, err
	}

	switch {
	case p.atKeyword("COUNT"):
		p.next()
		q.Command = CommandCount
	case p.atKeyword("EXTRACT"):
		p.next()
		q.Command = CommandExtract
		tok, err := p.expect(TokenString)
		if err != nil {
			return nil, err
		}
		q.ExtractPattern = tok.Value
	}

	switch {
	case p.atKeyword("LINES"):
		p.next()
	case p.atKeyword("WORDS"):
		p.next()
		q.Target = TargetWords
	}

	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}

	// the source is optional: FROM may be followed directly by WHERE,
	// a modifier, AS, or end of input
	if p.at(TokenString) {
		q.FilePattern = p.next().Value
	}

	if p.atKeyword("WHERE") {
		p.next()
		if err := p.parseConditions(q); err != nil {
			return nil, err
		}
	}

	if err := p.parseModifiers(q); err != nil {
		return nil, err
	}

	if p.atKeyword("AS") {
		p.next()
		switch {
		case p.atKeyword("JSON"):
			p.next()
			q.Output = OutputJSON
		case p.atKeyword("CSV"):
			p.next()
			q.Output = OutputCSV
		default:
			return nil, p.syntaxError(TokenKeyword, "JSON or CSV")
		}
	}

	if !p.at(TokenEOF) {
		return nil, p.syntaxError(TokenEOF, "")
	}
	return q, nil
}

// parseConditions parses one condition then loops over AND/OR connectors,
// each optionally followed by NOT. Connector logic and negation attach to
// the newly parsed condition, never retroactively to earlier ones.
func (p *Parser) parseConditions(q *Query) error {
	cond, err := p.parseCondition(LogicAnd, false)
	if err != nil {
		return err
	}
	q.Conditions = append(q.Conditions, cond)

	for p.atKeyword("AND") || p.atKeyword("OR") {
		logic := LogicAnd
		if p.cur().Value == "OR" {
			logic = LogicOr
		}
		p.next()

		negated := false
		if p.atKeyword("NOT") {
			p.next()
			negated = true
		}

		cond, err := p.parseCondition(logic, negated)
		if err != nil {
			return err
		}
		q.Conditions = append(q.Conditions, cond)
	}
	return nil
}

// parseCondition parses an optional quantifier prefix, an optional
// condition-kind phrase, and the condition's string literal. A quantifier
// prefix forces KindRepeat; a kind keyword that follows one is consumed
// but has no effect.
func (p *Parser) parseCondition(logic Logic, negated bool) (Condition, error) {
	cond := Condition{
		Kind:    KindContains,
		Logic:   logic,
		Negated: negated,
	}

	quantifier, hasQuantifier, err := p.parseQuantifier()
	if err != nil {
		return cond, err
	}
	if hasQuantifier {
		cond.Kind = KindRepeat
		cond.Quantifier = quantifier
	}

	switch {
	case p.atKeyword("CONTAINS"):
		p.next()
	case p.atKeyword("STARTS"):
		p.next()
		if err := p.expectKeyword("WITH"); err != nil {
			return cond, err
		}
		if !hasQuantifier {
			cond.Kind = KindStartsWith
		}
	case p.atKeyword("ENDS"):
		p.next()
		if err := p.expectKeyword("WITH"); err != nil {
			return cond, err
		}
		if !hasQuantifier {
			cond.Kind = KindEndsWith
		}
	case p.atKeyword("MATCHES"):
		p.next()
		if !hasQuantifier {
			cond.Kind = KindMatches
		}
	}

	tok, err := p.expect(TokenString)
	if err != nil {
		return cond, err
	}
	cond.Value = tok.Value
	return cond, nil
}

// parseQuantifier recognizes the repetition prefixes:
//
//	AT LEAST n TIMES?        -> {n,}
//	AT MOST n TIMES?         -> {0,n}
//	EXACTLY n TIMES?         -> {n}
//	BETWEEN n AND m TIMES?   -> {n,m}
//
// It reports whether a prefix was present.
func (p *Parser) parseQuantifier() (string, bool, error) {
	switch {
	case p.atKeyword("AT"):
		p.next()
		switch {
		case p.atKeyword("LEAST"):
			p.next()
			n, err := p.expectNumber()
			if err != nil {
				return "", false, err
			}
			p.skipKeyword("TIMES")
			return fmt.Sprintf("{%d,}", n), true, nil
		case p.atKeyword("MOST"):
			p.next()
			n, err := p.expectNumber()
			if err != nil {
				return "", false, err
			}
			p.skipKeyword("TIMES")
			return fmt.Sprintf("{0,%d}", n), true, nil
		default:
			return "", false, p.syntaxError(TokenKeyword, "LEAST or MOST")
		}

	case p.atKeyword("EXACTLY"):
		p.next()
		n, err := p.expectNumber()
		if err != nil {
			return "", false, err
		}
		p.skipKeyword("TIMES")
		return fmt.Sprintf("{%d}", n), true, nil

	case p.atKeyword("BETWEEN"):
		p.next()
		lo, err := p.expectNumber()
		if err != nil {
			return "", false, err
		}
		if err := p.expectKeyword("AND"); err != nil {
			return "", false, err
		}
		hi, err := p.expectNumber()
		if err != nil {
			return "", false, err
		}
		if hi < lo {
			return "", false, p.syntaxError(TokenNumber, fmt.Sprintf("a number >= %d", lo))
		}
		p.skipKeyword("TIMES")
		return fmt.Sprintf("{%d,%d}", lo, hi), true, nil
	}

	return "", false, nil
}

func (p *Parser) parseModifiers(q *Query) error {
	for {
		switch {
		case p.atKeyword("IGNORE"):
			p.next()
			if err := p.expectKeyword("CASE"); err != nil {
				return err
			}
			q.Modifiers.IgnoreCase = true
		case p.atKeyword("WHOLE"):
			p.next()
			if err := p.expectKeyword("WORD"); err != nil {
				return err
			}
			q.Modifiers.WholeWord = true
		case p.atKeyword("MULTILINE"):
			p.next()
			q.Modifiers.Multiline = true
		case p.atKeyword("DOTALL"):
			p.next()
			q.Modifiers.DotAll = true
		case p.atKeyword("CONTEXT"):
			p.next()
			n, err := p.expectNumber()
			if err != nil {
				return err
			}
			q.Modifiers.ContextLines = n
		default:
			return nil
		}
	}
}

func (p *Parser) cur() Token {
	if p.current >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.current]
}

func (p *Parser) next() Token {
	tok := p.cur()
	if p.current < len(p.tokens) {
		p.current++
	}
	return tok
}

func (p *Parser) at(t TokenType) bool {
	return p.cur().Type == t
}

func (p *Parser) atKeyword(name string) bool {
	tok := p.cur()
	return tok.Type == TokenKeyword && tok.Value == name
}

// skipKeyword consumes the keyword if present; it is never required.
func (p *Parser) skipKeyword(name string) {
	if p.atKeyword(name) {
		p.next()
	}
}

func (p *Parser) expect(t TokenType) (Token, error) {
	if !p.at(t) {
		return Token{}, p.syntaxError(t, "")
	}
	return p.next(), nil
}

func (p *Parser) expectKeyword(name string) error {
	if !p.atKeyword(name) {
		return p.syntaxError(TokenKeyword, name)
	}
	p.next()
	return nil
}

func (p *Parser) expectNumber() (int, error) {
	tok, err := p.expect(TokenNumber)
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(tok.Value)
	if convErr != nil {
		return 0, &SyntaxError{
			Expected: TokenNumber,
			Got:      tok.Type,
			GotValue: tok.Value,
			Line:     tok.Line,
			Column:   tok.Column,
		}
	}
	return n, nil
}

func (p *Parser) syntaxError(expected TokenType, expectedValue string) error {
	tok := p.cur()
	return &SyntaxError{
		Expected:      expected,
		ExpectedValue: expectedValue,
		Got:           tok.Type,
		GotValue:      tok.Value,
		Line:          tok.Line,
		Column:        tok.Column,
	}
}
