package songfilter

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

// parseTimestamp implements §4.4.3: try ISO 8601 first (date-only allowed,
// time defaults per ISO 8601 rules), and only fall back to an unsigned
// decimal epoch-seconds integer if the ISO 8601 parse fails. If the integer
// form does not consume the entire string, or both forms fail, surface the
// ISO 8601 error.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := parseIso8601(s); err == nil {
		return t, nil
	} else if epoch, numErr := cast.ToUint64E(strings.TrimSpace(s)); numErr == nil {
		return time.Unix(int64(epoch), 0).UTC(), nil
	} else {
		return time.Time{}, wrapParseError(BadTimestamp, err, "Bad timestamp: %q", s)
	}
}

// parseIso8601 accepts an RFC 3339 date-time or a bare date, returning an
// absolute UTC instant. This stands in for the external ISO-8601 parser
// collaborator described in §6; it follows the same "date-only defaults to
// midnight UTC" convention.
func parseIso8601(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
