package songfilter

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// maxQuotedLength bounds the accumulated length of a quoted token; see §4.1
// and §9 ("Quoted value is too long" bound is 4096 bytes in the source).
const maxQuotedLength = 4096

// cursor walks a parse input left to right. It only advances on success, so
// a failed read leaves the cursor (and therefore the caller's retry point)
// untouched. position() reports the current line/column as a lexer.Position,
// the same shape the teacher's AST nodes embed as Pos, and is attached to
// every ParseError so failures carry a location; nothing here runs a
// participle grammar.
type cursor struct {
	input string
	at    int
}

func newCursor(input string) *cursor {
	return &cursor{input: input}
}

func (c *cursor) eof() bool {
	return c.at >= len(c.input)
}

func (c *cursor) rest() string {
	return c.input[c.at:]
}

func (c *cursor) position() lexer.Position {
	line := 1
	col := 1
	for _, r := range c.input[:c.at] {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return lexer.Position{Offset: c.at, Line: line, Column: col}
}

// skipLeftWhitespace advances past ASCII spaces and tabs.
func (c *cursor) skipLeftWhitespace() {
	for c.at < len(c.input) && (c.input[c.at] == ' ' || c.input[c.at] == '\t') {
		c.at++
	}
}

// readWord reads a maximal run of [A-Za-z_-]. Fails with WordExpected if the
// run is empty.
func (c *cursor) readWord() (string, error) {
	start := c.at
	i := c.at
	for i < len(c.input) && isWordByte(c.input[i]) {
		i++
	}
	if i == start {
		return "", newParseError(WordExpected, "Word expected").withPos(c.position())
	}
	c.at = i
	return c.input[start:i], nil
}

func isWordByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '_' || b == '-'
}

// readDecimal reads a maximal run of ASCII digits. Fails with BadNumber if
// the run is empty — used by the `prio >= <decimal>` operand (§4.4), which,
// unlike every other operand, is a bare unquoted token.
func (c *cursor) readDecimal() (string, error) {
	start := c.at
	i := c.at
	for i < len(c.input) && c.input[i] >= '0' && c.input[i] <= '9' {
		i++
	}
	if i == start {
		return "", newParseError(BadNumber, "Number expected").withPos(c.position())
	}
	c.at = i
	return c.input[start:i], nil
}

// readQuoted requires the next byte to be a single or double quote, reads
// until the matching quote, honoring backslash-escapes of any byte
// (including the quote and the backslash itself), and consumes the closing
// quote plus any trailing whitespace.
func (c *cursor) readQuoted() (string, error) {
	if c.eof() || (c.input[c.at] != '\'' && c.input[c.at] != '"') {
		return "", newParseError(QuotedExpected, "Quoted value expected").withPos(c.position())
	}
	quote := c.input[c.at]
	i := c.at + 1
	var sb strings.Builder
	for {
		if i >= len(c.input) {
			return "", newParseError(ClosingQuoteMissing, "Closing quote not found").withPos(c.position())
		}
		b := c.input[i]
		if b == '\\' {
			i++
			if i >= len(c.input) {
				return "", newParseError(ClosingQuoteMissing, "Closing quote not found").withPos(c.position())
			}
			sb.WriteByte(c.input[i])
			i++
		} else if b == quote {
			i++
			break
		} else {
			sb.WriteByte(b)
			i++
		}
		if sb.Len() > maxQuotedLength {
			return "", newParseError(QuotedTooLong, "Quoted value is too long").withPos(c.position())
		}
	}
	if sb.Len() > maxQuotedLength {
		return "", newParseError(QuotedTooLong, "Quoted value is too long").withPos(c.position())
	}
	c.at = i
	c.skipLeftWhitespace()
	return sb.String(), nil
}

// matchPrefixCaseInsensitive performs an ASCII case-insensitive prefix test
// against literal at the current position. On success it advances the
// cursor past the matched prefix and returns true.
func (c *cursor) matchPrefixCaseInsensitive(literal string) bool {
	if len(c.rest()) < len(literal) {
		return false
	}
	if !strings.EqualFold(c.input[c.at:c.at+len(literal)], literal) {
		return false
	}
	c.at += len(literal)
	return true
}

// peekPrefixCaseInsensitive is matchPrefixCaseInsensitive without advancing.
func (c *cursor) peekPrefixCaseInsensitive(literal string) bool {
	if len(c.rest()) < len(literal) {
		return false
	}
	return strings.EqualFold(c.input[c.at:c.at+len(literal)], literal)
}

// toLowerAscii folds only ASCII letters; per the glossary, fold-case is
// ASCII-only, so non-ASCII bytes (e.g. the "ö" in "Björk") are left as-is
// and a fold-case comparison against an ASCII needle will not match them.
func toLowerAscii(s string) string {
	b := []byte(s)
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
