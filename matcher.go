package songfilter

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// Position is where within the haystack a StringMatcher's literal value
// must occur (§3).
type Position int

const (
	Anywhere Position = iota
	Prefix
	Full
)

// StringMatcher is the value object every string-valued filter node
// (TagMatch, UriMatch) delegates its comparison to (§3, §4.2). It is
// immutable once constructed and shared by value — cloning a StringMatcher
// is just a copy.
type StringMatcher struct {
	Value    string
	Position Position
	FoldCase bool
	Negated  bool

	// Regex is set when the matcher was parsed from a =~/!~ operator. When
	// non-nil, Position is always Full and Regex is the authoritative test
	// (§3, §4.2 step 1).
	Regex *regexp2.Regexp
}

func newLiteralMatcher(value string, position Position, foldCase, negated bool) StringMatcher {
	return StringMatcher{Value: value, Position: position, FoldCase: foldCase, Negated: negated}
}

func newRegexMatcher(pattern string, foldCase, negated bool) (StringMatcher, error) {
	opts := regexp2.None
	if foldCase {
		opts = regexp2.IgnoreCase
	}
	// Anchor the whole pattern so a match always spans the entire input.
	re, err := regexp2.Compile(`\A(?:`+pattern+`)\z`, opts)
	if err != nil {
		return StringMatcher{}, wrapParseError(BadRegex, err, "Bad regex: %v", err)
	}
	return StringMatcher{
		Value:    pattern,
		Position: Full,
		FoldCase: foldCase,
		Negated:  negated,
		Regex:    re,
	}, nil
}

// Match evaluates the matcher against input (§4.2).
func (m StringMatcher) Match(input string) bool {
	var decision bool
	if m.Regex != nil {
		// §4.2 step 1 / §3 define the regex decision as a full match, not a
		// search, so a match must span the entire input; the compiled
		// pattern is anchored at both ends for that reason.
		decision, _ = m.Regex.MatchString(input)
	} else {
		needle := m.Value
		hay := input
		if m.FoldCase {
			needle = toLowerAscii(needle)
			hay = toLowerAscii(hay)
		}
		switch m.Position {
		case Full:
			decision = hay == needle
		case Prefix:
			decision = strings.HasPrefix(hay, needle)
		default: // Anywhere
			decision = strings.Contains(hay, needle)
		}
	}
	return decision != m.Negated
}

// Equal reports structural equality, used by the optimizer to merge
// identical children.
func (m StringMatcher) Equal(other StringMatcher) bool {
	if m.Value != other.Value || m.Position != other.Position ||
		m.FoldCase != other.FoldCase || m.Negated != other.Negated {
		return false
	}
	return (m.Regex == nil) == (other.Regex == nil)
}

// hasRegex reports whether this matcher is regex-backed.
func (m StringMatcher) hasRegex() bool {
	return m.Regex != nil
}
