package query

import "github.com/dlclark/regexp2"

// Matcher decides whether a candidate string satisfies a compiled
// pattern pair. The include pattern relies on zero-width lookaheads for
// AND semantics, so matching is delegated to the regexp2 engine; the
// standard library's RE2 engine cannot express them.
//
// A Matcher holds no mutable state after construction and is safe for
// concurrent use.
type Matcher struct {
	include  *regexp2.Regexp
	excludes []*regexp2.Regexp
}

// NewMatcher compiles the pattern pair under the modifier flags. The only
// failure mode is a malformed raw fragment, reported as a *PatternError.
func NewMatcher(pattern CompiledPattern, modifiers Modifiers) (*Matcher, error) {
	options := RegexOptions(modifiers)

	include, err := regexp2.Compile(pattern.Include, options)
	if err != nil {
		return nil, &PatternError{Pattern: pattern.Include, Err: err}
	}

	m := &Matcher{include: include}
	for _, exclude := range pattern.Excludes {
		re, err := regexp2.Compile(exclude, options)
		if err != nil {
			return nil, &PatternError{Pattern: exclude, Err: err}
		}
		m.excludes = append(m.excludes, re)
	}
	return m, nil
}

// RegexOptions maps modifier flags onto engine options.
func RegexOptions(modifiers Modifiers) regexp2.RegexOptions {
	options := regexp2.None
	if modifiers.IgnoreCase {
		options |= regexp2.IgnoreCase
	}
	if modifiers.Multiline {
		options |= regexp2.Multiline
	}
	if modifiers.DotAll {
		options |= regexp2.Singleline
	}
	return options
}

// Match reports whether item matches the include pattern and none of the
// exclude patterns.
func (m *Matcher) Match(item string) (bool, error) {
	ok, err := m.include.MatchString(item)
	if err != nil {
		return false, &PatternError{Pattern: m.include.String(), Err: err}
	}
	if !ok {
		return false, nil
	}
	for _, exclude := range m.excludes {
		hit, err := exclude.MatchString(item)
		if err != nil {
			return false, &PatternError{Pattern: exclude.String(), Err: err}
		}
		if hit {
			return false, nil
		}
	}
	return true, nil
}

// Find returns the span of the include match within item, for callers
// that highlight results. ok is false when item is not a match under
// Match semantics.
func (m *Matcher) Find(item string) (start, length int, ok bool, err error) {
	matched, err := m.Match(item)
	if err != nil || !matched {
		return 0, 0, false, err
	}
	match, err := m.include.FindStringMatch(item)
	if err != nil {
		return 0, 0, false, &PatternError{Pattern: m.include.String(), Err: err}
	}
	if match == nil {
		return 0, 0, false, nil
	}
	return match.Index, match.Length, true, nil
}
