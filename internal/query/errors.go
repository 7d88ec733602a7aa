package query

import "fmt"

// LexError reports an unterminated quoted literal. It aborts the whole
// query; the lexer produces no token stream once one occurs.
type LexError struct {
	Message string
	Line    int
	Column  int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// SyntaxError reports a required token that was absent or mismatched.
// ExpectedValue is set when a specific keyword was required, not just
// a token type.
type SyntaxError struct {
	Expected      TokenType
	ExpectedValue string
	Got           TokenType
	GotValue      string
	Line          int
	Column        int
}

func (e *SyntaxError) Error() string {
	want := e.Expected.String()
	if e.ExpectedValue != "" {
		want = fmt.Sprintf("%s %q", want, e.ExpectedValue)
	}
	if e.Got == TokenEOF {
		return fmt.Sprintf("%d:%d: expected %s, got end of input", e.Line, e.Column, want)
	}
	return fmt.Sprintf("%d:%d: expected %s, got %s %q", e.Line, e.Column, want, e.Got, e.GotValue)
}

// PatternError wraps a failure from the regex engine. The only way to
// produce one is a malformed raw fragment from a MATCHES condition or
// an extraction pattern; everything the compiler emits itself is valid.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }
