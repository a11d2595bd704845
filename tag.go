package songfilter

// TagKind identifies a metadata field on a Song (§6, "Tag-name table"). This
// package ships a fixed table of the common tags; callers embedding a
// richer tag vocabulary can still drive matching through the Song
// interface's TagValues/AllTagValues, since TagKind is just the table index
// the parser resolves a bareword against.
type TagKind int

const (
	TagUnknown TagKind = iota
	TagAny
	TagArtist
	TagArtistSort
	TagAlbum
	TagAlbumSort
	TagAlbumArtist
	TagAlbumArtistSort
	TagTitle
	TagTrack
	TagName
	TagGenre
	TagDate
	TagOriginalDate
	TagComposer
	TagPerformer
	TagConductor
	TagWork
	TagGrouping
	TagComment
	TagDisc
	TagLabel
	TagMUSICBRAINZArtistID
	TagMUSICBRAINZAlbumID
	TagMUSICBRAINZAlbumArtistID
	TagMUSICBRAINZTrackID
	TagMUSICBRAINZReleaseTrackID
	TagMUSICBRAINZWorkID

	tagKindCount
)

var tagNames = map[TagKind]string{
	TagArtist:                    "artist",
	TagArtistSort:                "artistsort",
	TagAlbum:                     "album",
	TagAlbumSort:                 "albumsort",
	TagAlbumArtist:               "albumartist",
	TagAlbumArtistSort:           "albumartistsort",
	TagTitle:                     "title",
	TagTrack:                     "track",
	TagName:                      "name",
	TagGenre:                     "genre",
	TagDate:                      "date",
	TagOriginalDate:              "originaldate",
	TagComposer:                  "composer",
	TagPerformer:                 "performer",
	TagConductor:                 "conductor",
	TagWork:                      "work",
	TagGrouping:                  "grouping",
	TagComment:                   "comment",
	TagDisc:                      "disc",
	TagLabel:                     "label",
	TagMUSICBRAINZArtistID:       "musicbrainz_artistid",
	TagMUSICBRAINZAlbumID:        "musicbrainz_albumid",
	TagMUSICBRAINZAlbumArtistID:  "musicbrainz_albumartistid",
	TagMUSICBRAINZTrackID:        "musicbrainz_trackid",
	TagMUSICBRAINZReleaseTrackID: "musicbrainz_releasetrackid",
	TagMUSICBRAINZWorkID:         "musicbrainz_workid",
}

var namesToTag map[string]TagKind

func init() {
	namesToTag = make(map[string]TagKind, len(tagNames))
	for kind, name := range tagNames {
		namesToTag[name] = kind
	}
}

// parseTagName resolves a bareword to a TagKind, or TagUnknown if the
// package's table has no entry for it. Lookup is case-insensitive (ASCII
// fold), matching the rest of the keyword resolution in §4.4.1.
func parseTagName(s string) TagKind {
	if kind, ok := namesToTag[toLowerAscii(s)]; ok {
		return kind
	}
	return TagUnknown
}

// String renders the canonical tag name, for serialization.
func (k TagKind) String() string {
	if k == TagAny {
		return "any"
	}
	if name, ok := tagNames[k]; ok {
		return name
	}
	return "unknown"
}
