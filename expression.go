package songfilter

import "strings"

// quoteString renders s as a double-quoted token, escaping '"' and '\' with
// a leading backslash (§4.8, §6 "quoted" production).
func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b == '"' || b == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(b)
	}
	sb.WriteByte('"')
	return sb.String()
}

// stringMatcherExpression renders the " <operator> <quoted>" suffix of a
// TagMatch/UriMatch filter (everything after the tag key). The inheriting
// spellings ("==", "contains ", "starts_with ") default to foldCase=false on
// reparse, so they already reproduce a matcher whose FoldCase is false and
// are the shortest unambiguous choice for it; a matcher with FoldCase=true
// needs the explicit _ci suffix so the flag survives reparsing under a
// caller-supplied top-level foldCase of false (§4.8 "shortest unambiguous
// operator").
func stringMatcherExpression(m StringMatcher) string {
	var positive, negative string
	switch {
	case m.hasRegex():
		positive, negative = "=~", "!~"
	case m.Position == Full && m.FoldCase:
		positive, negative = "eq_ci", "!eq_ci"
	case m.Position == Full:
		positive, negative = "==", "!="
	case m.Position == Prefix && m.FoldCase:
		positive, negative = "starts_with_ci", "!starts_with_ci"
	case m.Position == Prefix:
		positive, negative = "starts_with", "!starts_with"
	case m.FoldCase: // Anywhere
		positive, negative = "contains_ci", "!contains_ci"
	default: // Anywhere
		positive, negative = "contains", "!contains"
	}
	op := positive
	if m.Negated {
		op = negative
	}
	return " " + op + " " + quoteString(m.Value)
}
