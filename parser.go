package songfilter

import (
	"strings"

	"github.com/spf13/cast"
)

// filterKind is the resolved discriminant for a filter-name keyword (§4.4.1).
type filterKind int

const (
	kindTag filterKind = iota
	kindAny
	kindUri
	kindBase
	kindModifiedSince
	kindAddedSince
	kindAudioFormat
	kindPriority
	kindUnknown
)

// resolveFilterKind implements the case rules of §4.4.1: base,
// modified-since and added-since are matched case-sensitively; file,
// filename, any, AudioFormat and prio are matched case-insensitively;
// everything else falls through to the tag-name table.
func resolveFilterKind(name string) (filterKind, TagKind) {
	switch name {
	case "base":
		return kindBase, TagUnknown
	case "modified-since":
		return kindModifiedSince, TagUnknown
	case "added-since":
		return kindAddedSince, TagUnknown
	}
	switch toLowerAscii(name) {
	case "file", "filename":
		return kindUri, TagUnknown
	case "any":
		return kindAny, TagUnknown
	case "audioformat":
		return kindAudioFormat, TagUnknown
	case "prio":
		return kindPriority, TagUnknown
	}
	if tk := parseTagName(name); tk != TagUnknown {
		return kindTag, tk
	}
	return kindUnknown, TagUnknown
}

// parser holds the state threaded through one parse call: the cursor, the
// top-level fold-case flag inherited forms rely on, and whether the regex
// capability is enabled (§9 "Regex optionality").
type parser struct {
	foldCase     bool
	regexEnabled bool
}

// parseExpression implements the `expr := '(' body ')'` production (§4.4).
func (p *parser) parseExpression(c *cursor) (Node, error) {
	c.skipLeftWhitespace()
	if c.eof() || c.input[c.at] != '(' {
		return nil, newParseError(ParenExpected, "'(' expected").withPos(c.position())
	}
	c.at++
	node, err := p.parseBody(c)
	if err != nil {
		return nil, err
	}
	c.skipLeftWhitespace()
	if c.eof() || c.input[c.at] != ')' {
		return nil, newParseError(ParenExpected, "')' expected").withPos(c.position())
	}
	c.at++
	c.skipLeftWhitespace()
	return node, nil
}

// parseBody implements `body := group | '!' expr | filter` (§4.4).
func (p *parser) parseBody(c *cursor) (Node, error) {
	c.skipLeftWhitespace()
	if !c.eof() && c.input[c.at] == '!' {
		c.at++
		child, err := p.parseExpression(c)
		if err != nil {
			return nil, err
		}
		return &Not{Child: child}, nil
	}
	if !c.eof() && c.input[c.at] == '(' {
		return p.parseGroup(c)
	}
	return p.parseFilter(c)
}

// parseGroup implements `group := expr ( 'AND' expr )*` (§4.4). More than
// one expression becomes a nested And; a single expression passes through
// unchanged.
func (p *parser) parseGroup(c *cursor) (Node, error) {
	first, err := p.parseExpression(c)
	if err != nil {
		return nil, err
	}
	children := []Node{first}
	for {
		c.skipLeftWhitespace()
		if c.eof() || c.input[c.at] == ')' {
			break
		}
		if !strings.HasPrefix(c.rest(), "AND") {
			return nil, newParseError(KeywordExpected, "'AND' expected").withPos(c.position())
		}
		c.at += len("AND")
		c.skipLeftWhitespace()
		next, err := p.parseExpression(c)
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return &And{Children: children}, nil
}

// parseFilter implements `filter := name op operand` (§4.4).
func (p *parser) parseFilter(c *cursor) (Node, error) {
	name, err := c.readWord()
	if err != nil {
		return nil, err
	}
	kind, tagKind := resolveFilterKind(name)

	switch kind {
	case kindTag:
		return p.parseStringFilter(c, tagKind)
	case kindAny:
		return p.parseStringFilter(c, TagAny)
	case kindUri:
		return p.parseUriFilter(c)
	case kindBase:
		return p.parseBaseFilter(c)
	case kindModifiedSince:
		return p.parseSinceFilter(c, false)
	case kindAddedSince:
		return p.parseSinceFilter(c, true)
	case kindAudioFormat:
		return p.parseAudioFormatFilter(c)
	case kindPriority:
		return p.parsePriorityFilter(c)
	default:
		return nil, newParseError(UnknownFilterType, "Unknown filter type: %s", name).withPos(c.position())
	}
}

func (p *parser) parseStringOperand(c *cursor) (StringMatcher, error) {
	c.skipLeftWhitespace()
	op, ok := resolveStringOperator(c, p.regexEnabled)
	if !ok {
		return StringMatcher{}, newParseError(UnknownOperator, "Unknown filter operator: %s", c.rest()).withPos(c.position())
	}
	c.skipLeftWhitespace()
	pos := c.position()
	value, err := c.readQuoted()
	if err != nil {
		return StringMatcher{}, err
	}
	if op.regex {
		m, err := newRegexMatcher(value, resolveFoldCase(op.foldCase, p.foldCase), op.negated)
		if err != nil {
			return StringMatcher{}, attachPos(err, pos)
		}
		return m, nil
	}
	return newLiteralMatcher(value, op.position, resolveFoldCase(op.foldCase, p.foldCase), op.negated), nil
}

func resolveFoldCase(explicit *bool, inherited bool) bool {
	if explicit != nil {
		return *explicit
	}
	return inherited
}

func (p *parser) parseStringFilter(c *cursor, tag TagKind) (Node, error) {
	matcher, err := p.parseStringOperand(c)
	if err != nil {
		return nil, err
	}
	return &TagMatch{Tag: tag, Matcher: matcher}, nil
}

func (p *parser) parseUriFilter(c *cursor) (Node, error) {
	matcher, err := p.parseStringOperand(c)
	if err != nil {
		return nil, err
	}
	return &UriMatch{Matcher: matcher}, nil
}

func (p *parser) parseBaseFilter(c *cursor) (Node, error) {
	c.skipLeftWhitespace()
	pos := c.position()
	value, err := c.readQuoted()
	if err != nil {
		return nil, err
	}
	if err := validateBasePrefix(value); err != nil {
		return nil, attachPos(err, pos)
	}
	return &Base{Prefix: value}, nil
}

func (p *parser) parseSinceFilter(c *cursor, added bool) (Node, error) {
	c.skipLeftWhitespace()
	pos := c.position()
	value, err := c.readQuoted()
	if err != nil {
		return nil, err
	}
	instant, err := parseTimestamp(value)
	if err != nil {
		return nil, attachPos(err, pos)
	}
	if added {
		return &AddedSince{Instant: instant}, nil
	}
	return &ModifiedSince{Instant: instant}, nil
}

func (p *parser) parseAudioFormatFilter(c *cursor) (Node, error) {
	c.skipLeftWhitespace()
	var mask bool
	switch {
	case c.matchPrefixCaseInsensitive("=="):
		mask = false
	case c.matchPrefixCaseInsensitive("=~"):
		mask = true
	default:
		return nil, newParseError(UnknownOperator, "Unknown filter operator: %s", c.rest()).withPos(c.position())
	}
	c.skipLeftWhitespace()
	pos := c.position()
	value, err := c.readQuoted()
	if err != nil {
		return nil, err
	}
	format, err := parseAudioFormat(value, mask)
	if err != nil {
		return nil, attachPos(err, pos)
	}
	return &AudioFormatMatch{Format: format, Mask: mask}, nil
}

func (p *parser) parsePriorityFilter(c *cursor) (Node, error) {
	c.skipLeftWhitespace()
	if !c.matchPrefixCaseInsensitive(">=") {
		return nil, newParseError(BadPriority, "Bad priority: '>=' expected").withPos(c.position())
	}
	c.skipLeftWhitespace()
	pos := c.position()
	digits, err := c.readDecimal()
	if err != nil {
		return nil, newParseError(BadPriority, "Bad priority: decimal expected").withPos(pos)
	}
	value, err := parseUintDecimal(digits)
	if err != nil || value > 255 {
		return nil, newParseError(BadPriority, "Bad priority: %q out of range", digits).withPos(pos)
	}
	return &PriorityAtLeast{Threshold: uint8(value)}, nil
}

func parseUintDecimal(s string) (uint64, error) {
	return cast.ToUint64E(s)
}

// validateBasePrefix enforces the invariants in §3: prefix is never empty,
// never has a leading or trailing slash, and has no ".." or empty segment.
func validateBasePrefix(s string) error {
	if s == "" || strings.HasPrefix(s, "/") || strings.HasSuffix(s, "/") {
		return newParseError(BadUri, "Bad URI")
	}
	for _, seg := range strings.Split(s, "/") {
		if seg == "" || seg == ".." {
			return newParseError(BadUri, "Bad URI")
		}
	}
	return nil
}

// parseFlatPair implements one (tag, value) entry of the legacy flat form
// (§4.4.4).
func (p *parser) parseFlatPair(tag, value string) (Node, error) {
	kind, tagKind := resolveFilterKind(tag)
	position := Full
	if p.foldCase {
		position = Anywhere
	}

	switch kind {
	case kindBase:
		if err := validateBasePrefix(value); err != nil {
			return nil, err
		}
		return &Base{Prefix: value}, nil
	case kindModifiedSince:
		instant, err := parseTimestamp(value)
		if err != nil {
			return nil, err
		}
		return &ModifiedSince{Instant: instant}, nil
	case kindAddedSince:
		instant, err := parseTimestamp(value)
		if err != nil {
			return nil, err
		}
		return &AddedSince{Instant: instant}, nil
	case kindUri:
		return &UriMatch{Matcher: newLiteralMatcher(value, position, p.foldCase, false)}, nil
	case kindAny:
		return &TagMatch{Tag: TagAny, Matcher: newLiteralMatcher(value, position, p.foldCase, false)}, nil
	case kindTag:
		return &TagMatch{Tag: tagKind, Matcher: newLiteralMatcher(value, position, p.foldCase, false)}, nil
	default:
		// kindAudioFormat, kindPriority and kindUnknown all resolve to
		// UnknownFilterType in the flat form; see SPEC_FULL.md's decision
		// on the open question in spec.md §9.
		return nil, newParseError(UnknownFilterType, "Unknown filter type: %s", tag)
	}
}
