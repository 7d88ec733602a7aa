package internal

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/grepql/grepql/internal/query"
	tt "github.com/grepql/grepql/internal/types"
)

// Engine binds a parsed query to its compiled matcher and streams
// candidate strings from a reader through it. One Engine serves any
// number of Run calls, concurrently if needed; it holds no per-run state.
type Engine struct {
	query   *query.Query
	matcher *query.Matcher
	extract *regexp2.Regexp
}

// NewEngine compiles the query's conditions and, for EXTRACT queries,
// its extraction pattern. A malformed MATCHES fragment or extraction
// pattern surfaces here as a *query.PatternError.
func NewEngine(q *query.Query) (*Engine, error) {
	compiled := query.Compile(q.Conditions, q.Modifiers)
	matcher, err := query.NewMatcher(compiled, q.Modifiers)
	if err != nil {
		return nil, err
	}

	engine := &Engine{query: q, matcher: matcher}

	if q.Command == query.CommandExtract && q.ExtractPattern != "" {
		options := regexp2.None
		if q.Modifiers.IgnoreCase {
			options |= regexp2.IgnoreCase
		}
		re, err := regexp2.Compile(q.ExtractPattern, options)
		if err != nil {
			return nil, &query.PatternError{Pattern: q.ExtractPattern, Err: err}
		}
		engine.extract = re
	}

	return engine, nil
}

// Query returns the query this engine executes.
func (e *Engine) Query() *query.Query {
	return e.query
}

// FindSpan locates the include-pattern match inside text, for result
// highlighting. ok is false when text does not match.
func (e *Engine) FindSpan(text string) (start, length int, ok bool) {
	start, length, ok, err := e.matcher.Find(text)
	if err != nil {
		return 0, 0, false
	}
	return start, length, ok
}

// Run streams candidates from r and returns the matches. name is
// recorded on each match; pass "" for stdin. Lines are the candidate
// unit unless the query targets words, in which case each whitespace
// separated word of every line is tested individually.
func (e *Engine) Run(ctx context.Context, r io.Reader, name string) ([]tt.Match, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var matches []tt.Match

	// indices into matches still owed trailing context lines, with the
	// number of lines remaining for each
	var open []int
	remaining := make(map[int]int)

	contextLines := e.query.Modifiers.ContextLines
	var before []string

	lineNo := 0
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		line := scanner.Text()
		lineNo++

		if e.query.Target == query.TargetWords {
			wordMatches, err := e.runWords(line, lineNo, name)
			if err != nil {
				return nil, err
			}
			matches = append(matches, wordMatches...)
			continue
		}

		// settle trailing context owed by earlier matches
		if len(open) > 0 {
			kept := open[:0]
			for _, idx := range open {
				matches[idx].After = append(matches[idx].After, line)
				remaining[idx]--
				if remaining[idx] > 0 {
					kept = append(kept, idx)
				} else {
					delete(remaining, idx)
				}
			}
			open = kept
		}

		ok, err := e.matcher.Match(line)
		if err != nil {
			return nil, err
		}
		if ok {
			match := tt.Match{
				File: name,
				Line: lineNo,
				Text: line,
			}
			if start, _, found := e.FindSpan(line); found {
				match.Column = start + 1
			}
			if contextLines > 0 {
				match.Before = append([]string(nil), before...)
			}
			if e.extract != nil {
				match.Extracted = e.extractAll(line)
			}
			matches = append(matches, match)
			if contextLines > 0 {
				open = append(open, len(matches)-1)
				remaining[len(matches)-1] = contextLines
			}
		}

		if contextLines > 0 {
			before = append(before, line)
			if len(before) > contextLines {
				before = before[1:]
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

// runWords tests every word of one line.
func (e *Engine) runWords(line string, lineNo int, name string) ([]tt.Match, error) {
	var matches []tt.Match
	for _, w := range splitWords(line) {
		ok, err := e.matcher.Match(w.text)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		match := tt.Match{
			File:   name,
			Line:   lineNo,
			Column: w.column,
			Text:   w.text,
		}
		if e.extract != nil {
			match.Extracted = e.extractAll(w.text)
		}
		matches = append(matches, match)
	}
	return matches, nil
}

// extractAll applies the extraction pattern to one matching candidate.
// Capture groups are joined with a space per occurrence; a groupless
// pattern yields the whole occurrence.
func (e *Engine) extractAll(s string) []string {
	var out []string
	match, err := e.extract.FindStringMatch(s)
	for err == nil && match != nil {
		groups := match.Groups()
		if len(groups) > 1 {
			parts := make([]string, 0, len(groups)-1)
			for _, g := range groups[1:] {
				parts = append(parts, g.String())
			}
			out = append(out, strings.Join(parts, " "))
		} else {
			out = append(out, match.String())
		}
		match, err = e.extract.FindNextMatch(match)
	}
	return out
}

type word struct {
	text   string
	column int // 1-based byte column of the word's first character
}

// splitWords splits on spaces and tabs while preserving each word's
// column, which strings.Fields discards.
func splitWords(line string) []word {
	var words []word
	start := -1
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ', '\t':
			if start >= 0 {
				words = append(words, word{text: line[start:i], column: start + 1})
				start = -1
			}
		default:
			if start < 0 {
				start = i
			}
		}
	}
	if start >= 0 {
		words = append(words, word{text: line[start:], column: start + 1})
	}
	return words
}
