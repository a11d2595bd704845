package songfilter_test

import (
	"testing"

	"github.com/jaqx0r/songfilter"
	"github.com/stretchr/testify/require"
)

// TestS1StringContains exercises the §8 worked scenario S1.
func TestS1StringContains(t *testing.T) {
	f := songfilter.New()
	require.NoError(t, f.Parse([]string{`(title contains "Rai")`}, false))
	require.True(t, f.Match(sampleSong()), "expected match on title contains \"Rai\"")
	require.Equal(t, `(title contains "Rai")`, f.ToExpression())
}

// TestS2CaseSensitiveEquality exercises S2.
func TestS2CaseSensitiveEquality(t *testing.T) {
	f := songfilter.New()
	require.NoError(t, f.Parse([]string{`(artist eq_cs "björk")`}, false))
	require.False(t, f.Match(sampleSong()), "expected case-sensitive mismatch against \"björk\"")

	negated := songfilter.New()
	require.NoError(t, negated.Parse([]string{`(artist !eq_cs "björk")`}, false))
	require.True(t, negated.Match(sampleSong()), "expected negated case-sensitive mismatch to match")
}

// TestS3BaseAndIntrospection exercises S3.
func TestS3BaseAndIntrospection(t *testing.T) {
	f := songfilter.New()
	require.NoError(t, f.Parse([]string{`((base "A") AND (title == "Rain"))`}, false))
	require.True(t, f.Match(sampleSong()))

	base, ok := f.GetBase()
	require.True(t, ok)
	require.Equal(t, "A", base)
	require.True(t, f.HasOtherThanBase())

	stripped := f.WithoutBasePrefix("A")
	require.Equal(t, `(title == "Rain")`, stripped.ToExpression())
}

// TestS4ModifiedSince exercises S4.
func TestS4ModifiedSince(t *testing.T) {
	iso := songfilter.New()
	require.NoError(t, iso.Parse([]string{`(modified-since "2023-01-01")`}, false))
	require.True(t, iso.Match(sampleSong()), "expected sample song (mtime 1700000000) to match modified-since 2023-01-01")

	epoch := songfilter.New()
	require.NoError(t, epoch.Parse([]string{`(modified-since "1672531200")`}, false))
	require.True(t, epoch.Match(sampleSong()), "expected integer-epoch form to match identically")
}

// TestS5AudioFormat exercises S5.
func TestS5AudioFormat(t *testing.T) {
	masked := songfilter.New()
	require.NoError(t, masked.Parse([]string{`(AudioFormat =~ "44100:*:2")`}, false))
	require.True(t, masked.Match(sampleSong()), "expected masked match")

	exact := songfilter.New()
	require.NoError(t, exact.Parse([]string{`(AudioFormat == "44100:16:2")`}, false))
	require.True(t, exact.Match(sampleSong()), "expected exact match")

	mismatch := songfilter.New()
	require.NoError(t, mismatch.Parse([]string{`(AudioFormat == "48000:16:2")`}, false))
	require.False(t, mismatch.Match(sampleSong()), "expected sample-rate mismatch to not match")
}

// TestS6Priority exercises S6.
func TestS6Priority(t *testing.T) {
	quoted := songfilter.New()
	err := quoted.Parse([]string{`(prio >= "5")`}, false)
	require.ErrorIs(t, err, songfilter.ErrBadPriority, "quoted prio operand")

	ok := songfilter.New()
	require.NoError(t, ok.Parse([]string{`(prio >= 5)`}, false))
	require.True(t, ok.Match(sampleSong()), "expected priority 10 to satisfy prio >= 5")

	outOfRange := songfilter.New()
	err = outOfRange.Parse([]string{`(prio >= 300)`}, false)
	require.ErrorIs(t, err, songfilter.ErrBadPriority, "out-of-range prio")
}

// TestRoundTripStability exercises §8 law 1.
func TestRoundTripStability(t *testing.T) {
	exprs := []string{
		`(title contains "Rai")`,
		`((base "A") AND (title == "Rain"))`,
		`(artist !eq_cs "björk")`,
		`(prio >= 5)`,
		`(AudioFormat =~ "44100:*:2")`,
	}
	for _, expr := range exprs {
		f := songfilter.New()
		require.NoErrorf(t, f.Parse([]string{expr}, false), "Parse(%q)", expr)
		f.Optimize()
		first := f.ToExpression()

		reparsed := songfilter.New()
		require.NoErrorf(t, reparsed.Parse([]string{first}, false), "reparse(%q)", first)
		reparsed.Optimize()
		second := reparsed.ToExpression()

		require.Equalf(t, second, first, "round-trip unstable: %q -> %q -> %q", expr, first, second)
	}
}

// TestDoubleNegationLaw exercises §8 law 3.
func TestDoubleNegationLaw(t *testing.T) {
	f := songfilter.New()
	require.NoError(t, f.Parse([]string{`(!(!(title == "Rain")))`}, false))
	plain := songfilter.New()
	require.NoError(t, plain.Parse([]string{`(title == "Rain")`}, false))
	require.Equal(t, plain.Match(sampleSong()), f.Match(sampleSong()), "Not(Not(x)) should match identically to x")
}

// TestAndIdentityLaw exercises §8 law 4.
func TestAndIdentityLaw(t *testing.T) {
	empty := songfilter.New()
	require.True(t, empty.Match(sampleSong()), "expected empty And (fresh SongFilter) to match everything")
}

// TestCloneEquivalenceLaw exercises §8 law 5.
func TestCloneEquivalenceLaw(t *testing.T) {
	f := songfilter.New()
	require.NoError(t, f.Parse([]string{`((base "A") AND (title contains "Rai"))`}, false))
	clone := f.Clone()
	require.Equal(t, f.Match(sampleSong()), clone.Match(sampleSong()))
	require.Equal(t, f.ToExpression(), clone.ToExpression())
}

// TestBasePrefixLaw exercises §8 law 7.
func TestBasePrefixLaw(t *testing.T) {
	f := songfilter.New()
	require.NoError(t, f.Parse([]string{"base", "A"}, false))
	stripped := f.WithoutBasePrefix("A")
	require.True(t, stripped.Match(sampleSong()), "expected Base(p).withoutBasePrefix(p) to match everything")
	require.False(t, stripped.HasOtherThanBase(), "expected stripped filter to have no remaining children")

	identity := f.WithoutBasePrefix("")
	require.Equal(t, f.ToExpression(), identity.ToExpression())
}

// TestMixedFlatAndExpressionArgs covers §4.4.4's "freely mix" rule.
func TestMixedFlatAndExpressionArgs(t *testing.T) {
	f := songfilter.New()
	require.NoError(t, f.Parse([]string{`(base "A")`, "title", "Rain"}, false))
	require.True(t, f.Match(sampleSong()), "expected mixed flat+expression filter to match")
}

// TestParseAllOrNothing ensures a failing element leaves the receiver
// unchanged (§7).
func TestParseAllOrNothing(t *testing.T) {
	f := songfilter.New()
	require.NoError(t, f.Parse([]string{`(title == "Rain")`}, false))
	before := f.ToExpression()

	err := f.Parse([]string{`(title == "Rain")`, `(nonsense-tag == "x")`}, false)
	require.Error(t, err, "expected an error from the unknown second filter")
	require.Equal(t, before, f.ToExpression(), "Parse() mutated receiver on failure")
}

func TestHasFoldCase(t *testing.T) {
	f := songfilter.New()
	require.NoError(t, f.Parse([]string{`(title contains_ci "rain")`}, false))
	require.True(t, f.HasFoldCase())
}
