package songfilter

import (
	"testing"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"
)

type fakeSong struct {
	uri        string
	tags       map[TagKind][]string
	modifiedAt time.Time
	addedAt    time.Time
	format     AudioFormat
	hasFormat  bool
	priority   uint8
}

func (s *fakeSong) URI() string                  { return s.uri }
func (s *fakeSong) TagValues(k TagKind) []string { return s.tags[k] }
func (s *fakeSong) AllTagValues() []TagValue {
	var out []TagValue
	for k, vs := range s.tags {
		for _, v := range vs {
			out = append(out, TagValue{Kind: k, Value: v})
		}
	}
	return out
}
func (s *fakeSong) ModifiedAt() time.Time            { return s.modifiedAt }
func (s *fakeSong) AddedAt() time.Time               { return s.addedAt }
func (s *fakeSong) AudioFormat() (AudioFormat, bool) { return s.format, s.hasFormat }
func (s *fakeSong) Priority() uint8                  { return s.priority }

func sampleSong() *fakeSong {
	return &fakeSong{
		uri:        "A/B/song.flac",
		tags:       map[TagKind][]string{TagTitle: {"Rain"}, TagArtist: {"Björk"}},
		modifiedAt: time.Unix(1700000000, 0).UTC(),
		addedAt:    time.Unix(1700000100, 0).UTC(),
		format:     AudioFormat{SampleRate: 44100, SampleFormat: 16, ChannelCount: 2},
		hasFormat:  true,
		priority:   10,
	}
}

func TestTagMatchAny(t *testing.T) {
	song := sampleSong()
	n := &TagMatch{Tag: TagAny, Matcher: newLiteralMatcher("rain", Anywhere, true, false)}
	require.True(t, n.Match(song), "expected ANY match on title")
}

func TestTagMatchMissingTagNegated(t *testing.T) {
	song := sampleSong()
	n := &TagMatch{Tag: TagGenre, Matcher: newLiteralMatcher("rock", Anywhere, false, true)}
	if !n.Match(song) {
		t.Error("expected negated matcher to satisfy absent tag")
	}
	positive := &TagMatch{Tag: TagGenre, Matcher: newLiteralMatcher("rock", Anywhere, false, false)}
	if positive.Match(song) {
		t.Error("expected non-negated matcher to fail on absent tag")
	}
}

func TestBaseMatch(t *testing.T) {
	song := sampleSong()
	cases := []struct {
		prefix string
		want   bool
	}{
		{"A", true},
		{"A/B", true},
		{"A/B/song.flac", true},
		{"A/B/song", false},
		{"B", false},
	}
	for _, tc := range cases {
		n := &Base{Prefix: tc.prefix}
		if got := n.Match(song); got != tc.want {
			t.Errorf("Base(%q).Match() = %v, want %v", tc.prefix, got, tc.want)
		}
	}
}

func TestModifiedAndAddedSince(t *testing.T) {
	song := sampleSong()
	m := &ModifiedSince{Instant: time.Unix(1600000000, 0).UTC()}
	if !m.Match(song) {
		t.Error("expected ModifiedSince to match")
	}
	m2 := &ModifiedSince{Instant: time.Unix(1800000000, 0).UTC()}
	if m2.Match(song) {
		t.Error("expected ModifiedSince in the future to not match")
	}
	a := &AddedSince{Instant: time.Unix(1700000100, 0).UTC()}
	if !a.Match(song) {
		t.Error("expected AddedSince boundary to match (>=)")
	}
}

func TestAudioFormatMatchMaskAndExact(t *testing.T) {
	song := sampleSong()
	masked := &AudioFormatMatch{Format: AudioFormat{SampleRate: 44100, ChannelCount: 2}, Mask: true}
	if !masked.Match(song) {
		t.Error("expected masked match to ignore zero sampleFormat")
	}
	exact := &AudioFormatMatch{Format: AudioFormat{SampleRate: 44100, SampleFormat: 16, ChannelCount: 2}, Mask: false}
	if !exact.Match(song) {
		t.Error("expected exact match")
	}
	mismatch := &AudioFormatMatch{Format: AudioFormat{SampleRate: 48000, SampleFormat: 16, ChannelCount: 2}, Mask: false}
	if mismatch.Match(song) {
		t.Error("expected sample-rate mismatch to fail")
	}
}

func TestPriorityAtLeast(t *testing.T) {
	song := sampleSong()
	if !(&PriorityAtLeast{Threshold: 10}).Match(song) {
		t.Error("expected threshold == priority to match")
	}
	if (&PriorityAtLeast{Threshold: 11}).Match(song) {
		t.Error("expected threshold > priority to fail")
	}
}

func TestAndEmptyMatchesEverything(t *testing.T) {
	n := &And{}
	if !n.Match(sampleSong()) {
		t.Error("expected empty And to match everything")
	}
}

func TestAndSingleChildEquivalence(t *testing.T) {
	song := sampleSong()
	inner := &PriorityAtLeast{Threshold: 5}
	wrapped := &And{Children: []Node{inner}}
	if inner.Match(song) != wrapped.Match(song) {
		t.Error("And(x) should match identically to x")
	}
}

func TestDoubleNegation(t *testing.T) {
	song := sampleSong()
	inner := &PriorityAtLeast{Threshold: 5}
	doubled := &Not{Child: &Not{Child: inner}}
	if inner.Match(song) != doubled.Match(song) {
		t.Error("Not(Not(x)) should match identically to x")
	}
}

func TestCloneEquivalence(t *testing.T) {
	song := sampleSong()
	nodes := []Node{
		&TagMatch{Tag: TagTitle, Matcher: newLiteralMatcher("Rain", Full, false, false)},
		&Base{Prefix: "A/B"},
		&And{Children: []Node{&PriorityAtLeast{Threshold: 1}, &Base{Prefix: "A"}}},
		&Not{Child: &PriorityAtLeast{Threshold: 99}},
	}
	for _, n := range nodes {
		c := n.Clone()
		if c.Match(song) != n.Match(song) {
			t.Errorf("clone mismatch for %#v", n)
		}
		if c.ToExpression() != n.ToExpression() {
			t.Errorf("clone.ToExpression() = %q, want %q", c.ToExpression(), n.ToExpression())
		}
		if diff := cmp.Diff(n, c, cmpopts.IgnoreUnexported(regexp2.Regexp{})); diff != "" {
			t.Errorf("clone is not structurally identical (-orig +clone):\n%s\nfull dump: %s", diff, pretty.Sprint(n))
		}
	}
}

func TestToExpressionCanonicalForms(t *testing.T) {
	cases := []struct {
		node Node
		want string
	}{
		{&Base{Prefix: "A"}, `(base "A")`},
		{&PriorityAtLeast{Threshold: 5}, `(prio >= 5)`},
		{&TagMatch{Tag: TagTitle, Matcher: newLiteralMatcher("Rai", Anywhere, false, false)}, `(title contains "Rai")`},
		{&And{Children: []Node{&Base{Prefix: "A"}, &TagMatch{Tag: TagTitle, Matcher: newLiteralMatcher("Rain", Full, false, false)}}},
			`((base "A") AND (title == "Rain"))`},
	}
	for _, tc := range cases {
		if got := tc.node.ToExpression(); got != tc.want {
			t.Errorf("ToExpression() = %q, want %q", got, tc.want)
		}
	}
}
