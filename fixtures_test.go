package songfilter_test

import (
	"time"

	"github.com/jaqx0r/songfilter"
)

// fakeSong is a minimal songfilter.Song used across this package's tests.
type fakeSong struct {
	uri        string
	tags       map[songfilter.TagKind][]string
	modifiedAt time.Time
	addedAt    time.Time
	format     songfilter.AudioFormat
	hasFormat  bool
	priority   uint8
}

func (s *fakeSong) URI() string { return s.uri }

func (s *fakeSong) TagValues(kind songfilter.TagKind) []string {
	return s.tags[kind]
}

func (s *fakeSong) AllTagValues() []songfilter.TagValue {
	var out []songfilter.TagValue
	for kind, values := range s.tags {
		for _, v := range values {
			out = append(out, songfilter.TagValue{Kind: kind, Value: v})
		}
	}
	return out
}

func (s *fakeSong) ModifiedAt() time.Time { return s.modifiedAt }
func (s *fakeSong) AddedAt() time.Time    { return s.addedAt }

func (s *fakeSong) AudioFormat() (songfilter.AudioFormat, bool) {
	return s.format, s.hasFormat
}

func (s *fakeSong) Priority() uint8 { return s.priority }

// sampleSong is the §8 worked-scenario song: uri="A/B/song.flac",
// title="Rain", artist="Björk", mtime=1700000000, addedAt=1700000100,
// priority=10, audio={44100,S16,2}.
func sampleSong() *fakeSong {
	return &fakeSong{
		uri: "A/B/song.flac",
		tags: map[songfilter.TagKind][]string{
			songfilter.TagTitle:  {"Rain"},
			songfilter.TagArtist: {"Björk"},
		},
		modifiedAt: time.Unix(1700000000, 0).UTC(),
		addedAt:    time.Unix(1700000100, 0).UTC(),
		format:     songfilter.AudioFormat{SampleRate: 44100, SampleFormat: 16, ChannelCount: 2},
		hasFormat:  true,
		priority:   10,
	}
}
