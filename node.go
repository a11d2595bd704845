package songfilter

import (
	"fmt"
	"strings"
	"time"
)

// Node is implemented by every filter tree element (§3, §4.3). Match is
// pure and total; it never panics and never returns an error — any
// evaluation anomaly is defined to yield false (§7).
type Node interface {
	Match(song Song) bool
	Clone() Node
	ToExpression() string
	equal(other Node) bool
}

// TagMatch tests one or all of a song's tag values against a StringMatcher
// (§3). Tag == TagAny iterates every tag kind the song carries.
type TagMatch struct {
	Tag     TagKind
	Matcher StringMatcher
}

func (n *TagMatch) Match(song Song) bool {
	if n.Tag == TagAny {
		values := song.AllTagValues()
		if len(values) == 0 {
			return n.Matcher.Match("")
		}
		for _, tv := range values {
			if n.Matcher.Match(tv.Value) {
				return true
			}
		}
		return false
	}
	values := song.TagValues(n.Tag)
	if len(values) == 0 {
		return n.Matcher.Match("")
	}
	for _, v := range values {
		if n.Matcher.Match(v) {
			return true
		}
	}
	return false
}

func (n *TagMatch) Clone() Node {
	c := *n
	return &c
}

func (n *TagMatch) ToExpression() string {
	return fmt.Sprintf("(%s%s)", tagKeyLiteral(n.Tag), stringMatcherExpression(n.Matcher))
}

func (n *TagMatch) equal(other Node) bool {
	o, ok := other.(*TagMatch)
	return ok && o.Tag == n.Tag && o.Matcher.Equal(n.Matcher)
}

func tagKeyLiteral(kind TagKind) string {
	if kind == TagAny {
		return "any"
	}
	return kind.String()
}

// UriMatch tests a song's URI against a StringMatcher (§3).
type UriMatch struct {
	Matcher StringMatcher
}

func (n *UriMatch) Match(song Song) bool {
	return n.Matcher.Match(song.URI())
}

func (n *UriMatch) Clone() Node {
	c := *n
	return &c
}

func (n *UriMatch) ToExpression() string {
	return fmt.Sprintf("(file%s)", stringMatcherExpression(n.Matcher))
}

func (n *UriMatch) equal(other Node) bool {
	o, ok := other.(*UriMatch)
	return ok && o.Matcher.Equal(n.Matcher)
}

// Base restricts matching to songs whose URI falls under a directory
// prefix (§3). Prefix never has a trailing slash, is never empty, and is
// URI-safe (no "..", no leading slash, no empty segments).
type Base struct {
	Prefix string
}

func (n *Base) Match(song Song) bool {
	uri := song.URI()
	return uri == n.Prefix || (len(uri) > len(n.Prefix) &&
		uri[:len(n.Prefix)] == n.Prefix && uri[len(n.Prefix)] == '/')
}

func (n *Base) Clone() Node {
	c := *n
	return &c
}

func (n *Base) ToExpression() string {
	return fmt.Sprintf("(base %s)", quoteString(n.Prefix))
}

func (n *Base) equal(other Node) bool {
	o, ok := other.(*Base)
	return ok && o.Prefix == n.Prefix
}

// ModifiedSince matches songs whose modification time is at or after
// Instant (§3).
type ModifiedSince struct {
	Instant time.Time
}

func (n *ModifiedSince) Match(song Song) bool {
	return !song.ModifiedAt().Before(n.Instant)
}

func (n *ModifiedSince) Clone() Node {
	c := *n
	return &c
}

func (n *ModifiedSince) ToExpression() string {
	return fmt.Sprintf("(modified-since %s)", quoteString(n.Instant.UTC().Format(time.RFC3339)))
}

func (n *ModifiedSince) equal(other Node) bool {
	o, ok := other.(*ModifiedSince)
	return ok && o.Instant.Equal(n.Instant)
}

// AddedSince matches songs whose added time is at or after Instant (§3).
type AddedSince struct {
	Instant time.Time
}

func (n *AddedSince) Match(song Song) bool {
	return !song.AddedAt().Before(n.Instant)
}

func (n *AddedSince) Clone() Node {
	c := *n
	return &c
}

func (n *AddedSince) ToExpression() string {
	return fmt.Sprintf("(added-since %s)", quoteString(n.Instant.UTC().Format(time.RFC3339)))
}

func (n *AddedSince) equal(other Node) bool {
	o, ok := other.(*AddedSince)
	return ok && o.Instant.Equal(n.Instant)
}

// AudioFormatMatch matches a song's audio format exactly (Mask == false) or
// field-wise with zero fields treated as wildcards (Mask == true) (§3,
// §4.3).
type AudioFormatMatch struct {
	Format AudioFormat
	Mask   bool
}

func (n *AudioFormatMatch) Match(song Song) bool {
	format, ok := song.AudioFormat()
	if !ok {
		return false
	}
	if n.Mask {
		return n.Format.matchesMasked(format)
	}
	return n.Format.matchesExact(format)
}

func (n *AudioFormatMatch) Clone() Node {
	c := *n
	return &c
}

func (n *AudioFormatMatch) ToExpression() string {
	op := "=="
	if n.Mask {
		op = "=~"
	}
	return fmt.Sprintf("(AudioFormat%s%s)", op, quoteString(n.Format.literal(n.Mask)))
}

func (n *AudioFormatMatch) equal(other Node) bool {
	o, ok := other.(*AudioFormatMatch)
	return ok && o.Format == n.Format && o.Mask == n.Mask
}

// PriorityAtLeast matches songs whose priority is at least Threshold
// (§3).
type PriorityAtLeast struct {
	Threshold uint8
}

func (n *PriorityAtLeast) Match(song Song) bool {
	return song.Priority() >= n.Threshold
}

func (n *PriorityAtLeast) Clone() Node {
	c := *n
	return &c
}

func (n *PriorityAtLeast) ToExpression() string {
	return fmt.Sprintf("(prio >= %d)", n.Threshold)
}

func (n *PriorityAtLeast) equal(other Node) bool {
	o, ok := other.(*PriorityAtLeast)
	return ok && o.Threshold == n.Threshold
}

// And matches when every child matches; an empty And matches everything
// (§3, §8 law 4).
type And struct {
	Children []Node
}

func (n *And) Match(song Song) bool {
	for _, c := range n.Children {
		if !c.Match(song) {
			return false
		}
	}
	return true
}

func (n *And) Clone() Node {
	c := &And{Children: make([]Node, len(n.Children))}
	for i, child := range n.Children {
		c.Children[i] = child.Clone()
	}
	return c
}

func (n *And) ToExpression() string {
	if len(n.Children) == 0 {
		return "()"
	}
	if len(n.Children) == 1 {
		return n.Children[0].ToExpression()
	}
	parts := make([]string, len(n.Children))
	for i, child := range n.Children {
		parts[i] = child.ToExpression()
	}
	return "(" + strings.Join(parts, " AND ") + ")"
}

func (n *And) equal(other Node) bool {
	o, ok := other.(*And)
	if !ok || len(o.Children) != len(n.Children) {
		return false
	}
	for i, c := range n.Children {
		if !c.equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// Not matches when its child does not (§3, §8 law 3).
type Not struct {
	Child Node
}

func (n *Not) Match(song Song) bool {
	return !n.Child.Match(song)
}

func (n *Not) Clone() Node {
	return &Not{Child: n.Child.Clone()}
}

func (n *Not) ToExpression() string {
	return fmt.Sprintf("(!%s)", n.Child.ToExpression())
}

func (n *Not) equal(other Node) bool {
	o, ok := other.(*Not)
	return ok && n.Child.equal(o.Child)
}
