package query

import (
	"regexp"
	"strings"
)

// CompiledPattern is the include/exclude pair a condition list compiles
// to. It is derived deterministically from the conditions and modifiers
// and has no identity of its own.
type CompiledPattern struct {
	Include  string
	Excludes []string
}

// Compile translates a condition list plus modifiers into one include
// pattern and a list of exclude patterns. It is a pure function and
// cannot fail: every fragment it emits itself is valid, and raw MATCHES
// fragments are passed through on the author's responsibility.
//
// Non-negated conditions are partitioned into an AND bucket and an OR
// bucket by each condition's own Logic field; the first condition has no
// left operand but its field is still honored as written. Negated
// conditions each contribute one exclude pattern regardless of logic.
func Compile(conditions []Condition, modifiers Modifiers) CompiledPattern {
	var andParts, orParts, excludes []string

	for _, cond := range conditions {
		fragment := conditionFragment(cond)
		switch {
		case cond.Negated:
			excludes = append(excludes, fragment)
		case cond.Logic == LogicOr:
			orParts = append(orParts, fragment)
		default:
			andParts = append(andParts, fragment)
		}
	}

	var include string
	switch {
	case len(andParts) > 0 && len(orParts) > 0:
		// either the full lookahead chain or any OR alternative satisfies
		include = "(?:(" + lookaheadChain(andParts) + ")|(" + strings.Join(orParts, "|") + "))"
	case len(andParts) == 1:
		// a lone fragment needs no lookahead; this also keeps the
		// word-boundary wrap below meaningful, since anchoring a
		// lookahead chain in \b constrains nothing
		include = andParts[0]
	case len(andParts) > 1:
		include = lookaheadChain(andParts)
	case len(orParts) > 0:
		include = "(?:" + strings.Join(orParts, "|") + ")"
	default:
		include = ".*"
	}

	if modifiers.WholeWord {
		include = `\b(?:` + include + `)\b`
		for i, pattern := range excludes {
			excludes[i] = `\b(?:` + pattern + `)\b`
		}
	}

	return CompiledPattern{Include: include, Excludes: excludes}
}

// conditionFragment builds the regex snippet for a single condition.
// Everything except a MATCHES fragment is literal-escaped.
func conditionFragment(cond Condition) string {
	escaped := regexp.QuoteMeta(cond.Value)
	switch cond.Kind {
	case KindStartsWith:
		return "^" + escaped
	case KindEndsWith:
		return escaped + "$"
	case KindMatches:
		return cond.Value
	case KindRepeat:
		quantifier := cond.Quantifier
		if quantifier == "" {
			quantifier = "{1,}"
		}
		return "(?:" + escaped + ")" + quantifier
	default:
		return escaped
	}
}

// lookaheadChain realizes conjunction: one zero-width lookahead per
// fragment, each testing that the fragment occurs somewhere, followed by
// an unconstrained match of the rest.
func lookaheadChain(parts []string) string {
	var b strings.Builder
	for _, part := range parts {
		b.WriteString("(?=.*")
		b.WriteString(part)
		b.WriteString(")")
	}
	b.WriteString(".*")
	return b.String()
}
