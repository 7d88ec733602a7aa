// Package grepql exposes the query language as a library: parse a query,
// compile its conditions into an include/exclude pattern pair, and test
// candidate strings against it. The grepql command wraps this with file
// iteration, formatting, and an interactive loop.
package grepql

import (
	"github.com/grepql/grepql/internal/query"
)

// Re-exported core types, so library consumers never import internal
// packages directly.
type (
	Query           = query.Query
	Condition       = query.Condition
	Modifiers       = query.Modifiers
	CompiledPattern = query.CompiledPattern
	Matcher         = query.Matcher
	Token           = query.Token
	LexError        = query.LexError
	SyntaxError     = query.SyntaxError
	PatternError    = query.PatternError
)

// Parse tokenizes and parses a query string.
func Parse(input string) (*Query, error) {
	return query.Parse(input)
}

// Tokenize scans a query string into its token sequence.
func Tokenize(input string) ([]Token, error) {
	return query.Tokenize(input)
}

// Compile translates a condition list plus modifiers into the
// include/exclude pattern pair.
func Compile(conditions []Condition, modifiers Modifiers) CompiledPattern {
	return query.Compile(conditions, modifiers)
}

// NewMatcher compiles a pattern pair into a reusable predicate.
func NewMatcher(pattern CompiledPattern, modifiers Modifiers) (*Matcher, error) {
	return query.NewMatcher(pattern, modifiers)
}

// Match is a convenience for one-shot use: compile the query's
// conditions and test a single candidate string.
func Match(q *Query, item string) (bool, error) {
	matcher, err := NewMatcher(Compile(q.Conditions, q.Modifiers), q.Modifiers)
	if err != nil {
		return false, err
	}
	return matcher.Match(item)
}
