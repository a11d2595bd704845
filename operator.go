package songfilter

// stringOperator is one entry of the operator table in §4.4.2. foldCase is
// nil when the operator inherits the top-level parsing fold-case flag
// rather than fixing it.
type stringOperator struct {
	prefix   string
	foldCase *bool
	negated  bool
	position Position
	regex    bool
}

func boolPtr(b bool) *bool { return &b }

// stringOperators is the read-only module-local operator table (§9, "Global
// table"). Order matters only for readability here, since every prefix is a
// distinct literal and matchPrefixCaseInsensitive requires an exact literal
// match — no prefix of this table is itself a prefix of another entry's
// match semantics.
var stringOperators = []stringOperator{
	{prefix: "contains_cs ", foldCase: boolPtr(false), negated: false, position: Anywhere},
	{prefix: "!contains_cs ", foldCase: boolPtr(false), negated: true, position: Anywhere},
	{prefix: "contains_ci ", foldCase: boolPtr(true), negated: false, position: Anywhere},
	{prefix: "!contains_ci ", foldCase: boolPtr(true), negated: true, position: Anywhere},

	{prefix: "starts_with_cs ", foldCase: boolPtr(false), negated: false, position: Prefix},
	{prefix: "!starts_with_cs ", foldCase: boolPtr(false), negated: true, position: Prefix},
	{prefix: "starts_with_ci ", foldCase: boolPtr(true), negated: false, position: Prefix},
	{prefix: "!starts_with_ci ", foldCase: boolPtr(true), negated: true, position: Prefix},

	{prefix: "eq_cs ", foldCase: boolPtr(false), negated: false, position: Full},
	{prefix: "!eq_cs ", foldCase: boolPtr(false), negated: true, position: Full},
	{prefix: "eq_ci ", foldCase: boolPtr(true), negated: false, position: Full},
	{prefix: "!eq_ci ", foldCase: boolPtr(true), negated: true, position: Full},

	{prefix: "contains ", foldCase: nil, negated: false, position: Anywhere},
	{prefix: "!contains ", foldCase: nil, negated: true, position: Anywhere},

	{prefix: "starts_with ", foldCase: nil, negated: false, position: Prefix},
	{prefix: "!starts_with ", foldCase: nil, negated: true, position: Prefix},

	{prefix: "==", foldCase: nil, negated: false, position: Full},
	{prefix: "!=", foldCase: nil, negated: true, position: Full},

	{prefix: "=~", foldCase: nil, negated: false, position: Full, regex: true},
	{prefix: "!~", foldCase: nil, negated: true, position: Full, regex: true},
}

// resolveStringOperator tries each table entry in turn at the cursor's
// current position, returning the matched entry or ok=false. Operators that
// require a trailing space to delimit the operand (everything but
// ==/!=/=~/!~) include that space in the prefix, per §4.4.2.
func resolveStringOperator(c *cursor, regexEnabled bool) (stringOperator, bool) {
	for _, op := range stringOperators {
		if op.regex && !regexEnabled {
			continue
		}
		if c.matchPrefixCaseInsensitive(op.prefix) {
			return op, true
		}
	}
	return stringOperator{}, false
}
