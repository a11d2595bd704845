package songfilter

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// Kind identifies a class of parse failure (§7 of the filter-expression
// design). Every parse error returned by this package unwraps to exactly
// one Kind via errors.Is.
type Kind int

const (
	UnknownFilterType Kind = iota
	UnknownOperator
	WordExpected
	QuotedExpected
	ClosingQuoteMissing
	QuotedTooLong
	ParenExpected
	KeywordExpected
	BadUri
	BadTimestamp
	BadAudioFormat
	BadPriority
	BadNumber
	UnparsedTrailing
	ArgumentCount
	BadRegex
)

func (k Kind) String() string {
	switch k {
	case UnknownFilterType:
		return "UnknownFilterType"
	case UnknownOperator:
		return "UnknownOperator"
	case WordExpected:
		return "WordExpected"
	case QuotedExpected:
		return "QuotedExpected"
	case ClosingQuoteMissing:
		return "ClosingQuoteMissing"
	case QuotedTooLong:
		return "QuotedTooLong"
	case ParenExpected:
		return "ParenExpected"
	case KeywordExpected:
		return "KeywordExpected"
	case BadUri:
		return "BadUri"
	case BadTimestamp:
		return "BadTimestamp"
	case BadAudioFormat:
		return "BadAudioFormat"
	case BadPriority:
		return "BadPriority"
	case BadNumber:
		return "BadNumber"
	case UnparsedTrailing:
		return "UnparsedTrailing"
	case ArgumentCount:
		return "ArgumentCount"
	case BadRegex:
		return "BadRegex"
	default:
		return "Unknown"
	}
}

// ParseError is returned by every parsing entry point in this package. It
// carries the taxonomy Kind from §7 alongside a human-readable message, and
// is comparable with errors.Is against the bare Kind sentinels below. Pos, if
// set, locates the failure in the original input the way the teacher's AST
// nodes locate themselves via their embedded lexer.Position.
type ParseError struct {
	Kind    Kind
	Message string
	Pos     lexer.Position
	cause   error
}

func (e *ParseError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Pos.Line != 0 {
		return fmt.Sprintf("%s (line %d, column %d)", msg, e.Pos.Line, e.Pos.Column)
	}
	return msg
}

// withPos records where in the input the error occurred and returns the
// receiver, so callers can chain it onto a newParseError/wrapParseError call.
func (e *ParseError) withPos(pos lexer.Position) *ParseError {
	e.Pos = pos
	return e
}

// attachPos sets the position on err if it is a *ParseError, for call sites
// that only get an error back from a helper with no cursor of its own
// (validateBasePrefix, parseTimestamp, parseAudioFormat, newRegexMatcher).
func attachPos(err error, pos lexer.Position) error {
	if pe, ok := err.(*ParseError); ok {
		pe.Pos = pos
	}
	return err
}

func (e *ParseError) Unwrap() error {
	return e.cause
}

// Is reports whether target is the Kind sentinel matching e.Kind, so callers
// can write errors.Is(err, songfilter.ErrUnknownFilterType) etc.
func (e *ParseError) Is(target error) bool {
	k, ok := target.(kindSentinel)
	return ok && k.Kind == e.Kind
}

type kindSentinel struct{ Kind Kind }

func (s kindSentinel) Error() string { return s.Kind.String() }

// Sentinel errors, one per Kind, for use with errors.Is.
var (
	ErrUnknownFilterType  error = kindSentinel{UnknownFilterType}
	ErrUnknownOperator    error = kindSentinel{UnknownOperator}
	ErrWordExpected       error = kindSentinel{WordExpected}
	ErrQuotedExpected     error = kindSentinel{QuotedExpected}
	ErrClosingQuoteMissing error = kindSentinel{ClosingQuoteMissing}
	ErrQuotedTooLong      error = kindSentinel{QuotedTooLong}
	ErrParenExpected      error = kindSentinel{ParenExpected}
	ErrKeywordExpected    error = kindSentinel{KeywordExpected}
	ErrBadUri             error = kindSentinel{BadUri}
	ErrBadTimestamp       error = kindSentinel{BadTimestamp}
	ErrBadAudioFormat     error = kindSentinel{BadAudioFormat}
	ErrBadPriority        error = kindSentinel{BadPriority}
	ErrBadNumber          error = kindSentinel{BadNumber}
	ErrUnparsedTrailing   error = kindSentinel{UnparsedTrailing}
	ErrArgumentCount      error = kindSentinel{ArgumentCount}
	ErrBadRegex           error = kindSentinel{BadRegex}
)

func newParseError(kind Kind, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapParseError(kind Kind, cause error, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Message: fmt.Sprintf(format, args...), cause: cause}
}
