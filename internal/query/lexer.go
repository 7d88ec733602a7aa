package query

import "strings"

// Lexer scans a query string and produces a flat token sequence.
type Lexer struct {
	input    string
	position int
	line     int
	column   int
	tokens   []Token
}

// NewLexer returns a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		line:   1,
		column: 1,
		tokens: make([]Token, 0),
	}
}

// Tokenize processes the entire input and returns the token list,
// terminated by a TokenEOF. The only failure mode is an unterminated
// quoted literal.
func Tokenize(input string) ([]Token, error) {
	return NewLexer(input).Tokenize()
}

func (l *Lexer) Tokenize() ([]Token, error) {
	for l.position < len(l.input) {
		c := l.input[l.position]
		switch {
		case c == '\n':
			l.position++
			l.line++
			l.column = 1

		case c == ' ' || c == '\t' || c == '\r':
			l.advance()

		case c == '"' || c == '\'':
			if err := l.lexString(c); err != nil {
				return nil, err
			}

		case isDigit(c):
			l.lexNumber()

		case isWordChar(c):
			l.lexWord()

		case isOperatorChar(c):
			l.lexOperator()

		default:
			// anything unrecognized is skipped, not an error
			l.advance()
		}
	}

	l.addToken(TokenEOF, "", l.line, l.column)
	return l.tokens, nil
}

// lexString scans a quoted literal until the matching quote. A backslash
// consumes the following character so an escaped quote does not terminate
// the literal; the escape sequence itself is kept verbatim in the value.
func (l *Lexer) lexString(quote byte) error {
	startLine, startCol := l.line, l.column
	l.advance() // opening quote
	start := l.position

	for l.position < len(l.input) {
		c := l.input[l.position]
		if c == quote {
			l.addToken(TokenString, l.input[start:l.position], startLine, startCol)
			l.advance() // closing quote
			return nil
		}
		if c == '\\' && l.position+1 < len(l.input) {
			l.advanceRaw()
		}
		l.advanceRaw()
	}

	return &LexError{
		Message: "unterminated string literal",
		Line:    startLine,
		Column:  startCol,
	}
}

// lexNumber scans a run of digits.
func (l *Lexer) lexNumber() {
	startLine, startCol := l.line, l.column
	start := l.position
	for l.position < len(l.input) && isDigit(l.input[l.position]) {
		l.advance()
	}
	l.addToken(TokenNumber, l.input[start:l.position], startLine, startCol)
}

// lexWord scans a run of letters/underscores and classifies it as a
// keyword (upper-cased) or an identifier.
func (l *Lexer) lexWord() {
	startLine, startCol := l.line, l.column
	start := l.position
	for l.position < len(l.input) && isWordChar(l.input[l.position]) {
		l.advance()
	}
	word := l.input[start:l.position]
	if isKeyword(word) {
		l.addToken(TokenKeyword, strings.ToUpper(word), startLine, startCol)
	} else {
		l.addToken(TokenIdentifier, word, startLine, startCol)
	}
}

// lexOperator scans a run of operator characters. The current grammar
// never consumes these; they exist for forward compatibility.
func (l *Lexer) lexOperator() {
	startLine, startCol := l.line, l.column
	start := l.position
	for l.position < len(l.input) && isOperatorChar(l.input[l.position]) {
		l.advance()
	}
	l.addToken(TokenOperator, l.input[start:l.position], startLine, startCol)
}

// advance moves past one byte that is known not to be a newline.
func (l *Lexer) advance() {
	l.position++
	l.column++
}

// advanceRaw moves past one byte inside a string literal, where newlines
// still need line/column bookkeeping.
func (l *Lexer) advanceRaw() {
	if l.input[l.position] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.position++
}

func (l *Lexer) addToken(tokenType TokenType, value string, line, col int) {
	l.tokens = append(l.tokens, Token{
		Type:   tokenType,
		Value:  value,
		Line:   line,
		Column: col,
	})
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isOperatorChar(c byte) bool {
	switch c {
	case '=', '<', '>', '!', '&', '|':
		return true
	}
	return false
}
