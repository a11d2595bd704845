package songfilter

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// AudioFormat describes a PCM format triple (§3 AudioFormatMatch, §6
// audioFormat parser). A zero field is a wildcard when the match is masked.
type AudioFormat struct {
	SampleRate   uint32
	SampleFormat uint16
	ChannelCount uint8
}

// literal renders the "sampleRate:sampleFormat:channelCount" form that
// AudioFormatMatch.toExpression produces, using "*" for a wildcard (zero)
// field when masked is true.
func (f AudioFormat) literal(masked bool) string {
	field := func(v uint32) string {
		if masked && v == 0 {
			return "*"
		}
		return fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("%s:%s:%s",
		field(f.SampleRate),
		field(uint32(f.SampleFormat)),
		field(uint32(f.ChannelCount)))
}

// parseAudioFormat parses a "sampleRate:sampleFormat:channelCount" literal
// (§6). Each field may be "*" (wildcard, encoded as 0) only when mask is
// true; a literal "*" when mask is false is a BadAudioFormat error, since an
// exact-equality match has no wildcard field.
func parseAudioFormat(s string, mask bool) (AudioFormat, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return AudioFormat{}, newParseError(BadAudioFormat, "Bad audio format: %q", s)
	}

	sampleRate, err := parseFormatField(parts[0], mask)
	if err != nil {
		return AudioFormat{}, err
	}
	sampleFormat, err := parseFormatField(parts[1], mask)
	if err != nil {
		return AudioFormat{}, err
	}
	channelCount, err := parseFormatField(parts[2], mask)
	if err != nil {
		return AudioFormat{}, err
	}

	return AudioFormat{
		SampleRate:   uint32(sampleRate),
		SampleFormat: uint16(sampleFormat),
		ChannelCount: uint8(channelCount),
	}, nil
}

func parseFormatField(s string, mask bool) (uint64, error) {
	if s == "*" {
		if !mask {
			return 0, newParseError(BadAudioFormat, "Bad audio format: wildcard not allowed in non-mask match")
		}
		return 0, nil
	}
	v, err := cast.ToUint64E(s)
	if err != nil {
		return 0, wrapParseError(BadAudioFormat, err, "Bad audio format: %q", s)
	}
	return v, nil
}

// matchesMasked reports whether song satisfies this format under mask
// semantics: every non-zero field of f must equal the song's field, and
// zero fields are wildcards (§4.3).
func (f AudioFormat) matchesMasked(song AudioFormat) bool {
	if f.SampleRate != 0 && f.SampleRate != song.SampleRate {
		return false
	}
	if f.SampleFormat != 0 && f.SampleFormat != song.SampleFormat {
		return false
	}
	if f.ChannelCount != 0 && f.ChannelCount != song.ChannelCount {
		return false
	}
	return true
}

// matchesExact reports whether song is field-wise identical to f (§4.3,
// mask=false).
func (f AudioFormat) matchesExact(song AudioFormat) bool {
	return f == song
}
