package query

import "strings"

// TokenType defines the types of tokens produced by the lexer.
type TokenType int

const (
	TokenKeyword    TokenType = iota // reserved word, value is upper-cased
	TokenString                      // quoted literal, value excludes the quotes
	TokenNumber                      // run of digits
	TokenOperator                    // run over = < > ! & | (reserved for future grammar)
	TokenIdentifier                  // bare word that is not a reserved word
	TokenEOF                         // end of input
)

func (t TokenType) String() string {
	switch t {
	case TokenKeyword:
		return "keyword"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenOperator:
		return "operator"
	case TokenIdentifier:
		return "identifier"
	case TokenEOF:
		return "end of input"
	}
	return "unknown"
}

// Token represents a single lexical token with type, value, and position.
// Tokens are immutable once produced.
type Token struct {
	Type   TokenType
	Value  string
	Line   int // 1-based
	Column int // 1-based
}

// keywords is the reserved-word set. Matching is case-insensitive; the
// lexer stores the upper-cased form in the token value.
var keywords = map[string]bool{
	"SELECT":    true,
	"COUNT":     true,
	"EXTRACT":   true,
	"LINES":     true,
	"WORDS":     true,
	"FROM":      true,
	"WHERE":     true,
	"AND":       true,
	"OR":        true,
	"NOT":       true,
	"CONTAINS":  true,
	"STARTS":    true,
	"ENDS":      true,
	"WITH":      true,
	"MATCHES":   true,
	"AT":        true,
	"LEAST":     true,
	"MOST":      true,
	"EXACTLY":   true,
	"BETWEEN":   true,
	"TIMES":     true,
	"IGNORE":    true,
	"CASE":      true,
	"WHOLE":     true,
	"WORD":      true,
	"MULTILINE": true,
	"DOTALL":    true,
	"CONTEXT":   true,
	"AS":        true,
	"JSON":      true,
	"CSV":       true,
}

func isKeyword(word string) bool {
	return keywords[strings.ToUpper(word)]
}
