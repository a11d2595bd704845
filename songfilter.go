package songfilter

import "strings"

// SongFilter owns a single root And node (§3 "Root model"). It is mutated
// only while parsing; once built it is logically immutable and Match may be
// called concurrently from multiple goroutines provided nothing is parsing
// or optimizing it at the same time (§5).
type SongFilter struct {
	root         *And
	regexEnabled bool
}

// Option configures a SongFilter at construction time.
type Option func(*SongFilter)

// WithRegex toggles the =~/!~ regex-operator capability (§9 "Regex
// optionality"). Enabled by default; when disabled, those operator prefixes
// resolve to UnknownOperator instead of silently falling back to a literal
// comparison.
func WithRegex(enabled bool) Option {
	return func(f *SongFilter) { f.regexEnabled = enabled }
}

// New returns an empty SongFilter (an empty root And, which matches every
// song until something is parsed into it; §8 law 4).
func New(opts ...Option) *SongFilter {
	f := &SongFilter{root: &And{}, regexEnabled: true}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Parse consumes args left to right (§4.4.4). An element beginning with '('
// (after skipping leading whitespace) is parsed as a full parenthesized
// expression (§4.4); otherwise it is paired with the following element as a
// flat legacy (tag, value) entry. An element whose expression is a group of
// sub-expressions joined by AND contributes each of those sub-expressions as
// a direct child of the root And; any other element or pair contributes
// exactly one child. Either every element parses and all resulting
// children are appended, or none are — a failed Parse call never mutates
// the receiver (§7).
func (f *SongFilter) Parse(args []string, foldCase bool) error {
	if len(args) == 0 {
		return newParseError(ArgumentCount, "Incorrect number of filter arguments")
	}

	p := &parser{foldCase: foldCase, regexEnabled: f.regexEnabled}
	var newChildren []Node

	i := 0
	for i < len(args) {
		arg := args[i]
		trimmed := strings.TrimLeft(arg, " \t")
		if strings.HasPrefix(trimmed, "(") {
			c := newCursor(arg)
			node, err := p.parseExpression(c)
			if err != nil {
				return err
			}
			if !c.eof() {
				return newParseError(UnparsedTrailing, "Unparsed trailing input: %s", c.rest())
			}
			if group, ok := node.(*And); ok {
				newChildren = append(newChildren, group.Children...)
			} else {
				newChildren = append(newChildren, node)
			}
			i++
			continue
		}

		if i+1 >= len(args) {
			return newParseError(ArgumentCount, "Incorrect number of filter arguments")
		}
		node, err := p.parseFlatPair(arg, args[i+1])
		if err != nil {
			return err
		}
		newChildren = append(newChildren, node)
		i += 2
	}

	f.root.Children = append(f.root.Children, newChildren...)
	return nil
}

// ParsePair is the single-pair convenience form of Parse (§4.6 "parse(tag,
// value, foldCase)").
func (f *SongFilter) ParsePair(tag, value string, foldCase bool) error {
	return f.Parse([]string{tag, value}, foldCase)
}

// Match delegates to the root And (§4.6).
func (f *SongFilter) Match(song Song) bool {
	return f.root.Match(song)
}

// ToExpression serializes the root, combining its direct children with
// " AND " when there is more than one (§4.8).
func (f *SongFilter) ToExpression() string {
	return f.root.ToExpression()
}

// HasFoldCase reports whether any TagMatch or UriMatch anywhere under the
// root has FoldCase set (§4.6).
func (f *SongFilter) HasFoldCase() bool {
	return anyNode(f.root, func(n Node) bool {
		switch v := n.(type) {
		case *TagMatch:
			return v.Matcher.FoldCase
		case *UriMatch:
			return v.Matcher.FoldCase
		}
		return false
	})
}

// HasOtherThanBase reports whether any direct child of root is not a Base
// node (§4.6).
func (f *SongFilter) HasOtherThanBase() bool {
	for _, c := range f.root.Children {
		if _, ok := c.(*Base); !ok {
			return true
		}
	}
	return false
}

// GetBase returns the first direct Base child's prefix, if any (§4.6).
func (f *SongFilter) GetBase() (string, bool) {
	for _, c := range f.root.Children {
		if b, ok := c.(*Base); ok {
			return b.Prefix, true
		}
	}
	return "", false
}

// WithoutBasePrefix returns a fresh SongFilter with prefix stripped from any
// direct Base child (§4.7). The receiver is unchanged. A Base child whose
// prefix does not align with prefix on a '/' boundary is kept unmodified —
// this mirrors a quirk of the original source, not a bug to silently fix
// (spec.md §9).
func (f *SongFilter) WithoutBasePrefix(prefix string) *SongFilter {
	out := &SongFilter{root: &And{Children: make([]Node, 0, len(f.root.Children))}, regexEnabled: f.regexEnabled}
	for _, c := range f.root.Children {
		b, ok := c.(*Base)
		if !ok || !strings.HasPrefix(b.Prefix, prefix) {
			out.root.Children = append(out.root.Children, c.Clone())
			continue
		}
		remainder := b.Prefix[len(prefix):]
		switch {
		case remainder == "":
			// drop
		case remainder[0] == '/':
			stripped := remainder[1:]
			if stripped != "" {
				out.root.Children = append(out.root.Children, &Base{Prefix: stripped})
			}
		default:
			out.root.Children = append(out.root.Children, c.Clone())
		}
	}
	return out
}

// Optimize applies the rewrites of §4.5 in place. Idempotent.
func (f *SongFilter) Optimize() {
	f.root = optimize(f.root, true).(*And)
}

// Clone performs a deep copy (§3 "Clones are deep").
func (f *SongFilter) Clone() *SongFilter {
	return &SongFilter{root: f.root.Clone().(*And), regexEnabled: f.regexEnabled}
}

// RootNode exposes the filter's root And node for callers that want to walk
// the tree directly, e.g. with Visit.
func RootNode(f *SongFilter) Node {
	return f.root
}

// anyNode reports whether pred holds for n or any descendant reachable
// through And/Not children.
func anyNode(n Node, pred func(Node) bool) bool {
	if pred(n) {
		return true
	}
	switch v := n.(type) {
	case *And:
		for _, c := range v.Children {
			if anyNode(c, pred) {
				return true
			}
		}
	case *Not:
		return anyNode(v.Child, pred)
	}
	return false
}
