// Copyright (c) 2026 Harmonia. All rights reserved.

/*
Package release implements the Release entity materializer: the most
involved entity kind in the catalog, owning discs and tracks in addition
to the usual flat child relations. A track either links to an existing
Song (Linked) or carries its own title and gets a new Song materialized
for it the first time the release's discs are written (Unlinked).
*/
package release

import "time"

// Type classifies the kind of release.
type Type string

const (
	TypeAlbum       Type = "album"
	TypeEP          Type = "ep"
	TypeSingle      Type = "single"
	TypeCompilation Type = "compilation"
	TypeOther       Type = "other"
)

// DatePrecision is the granularity at which a partial date is known.
type DatePrecision string

const (
	PrecisionDay   DatePrecision = "day"
	PrecisionMonth DatePrecision = "month"
	PrecisionYear  DatePrecision = "year"
)

// Date is a value/precision pair; both must be set or unset together.
type Date struct {
	Value     *time.Time
	Precision *DatePrecision
}

// CatalogNumber is one catalog identifier a release was issued under,
// optionally attributed to a label.
type CatalogNumber struct {
	Number  string
	LabelID *string
}

// Credit is a release-level artist credit (producer, mixer, ...). On
// names the zero-based disc indices the credit applies to; an empty On
// means the credit applies to every disc.
type Credit struct {
	ArtistID string
	RoleID   string
	On       []int32
}

// LocalizedTitle is the release title in one language other than the
// primary Title.
type LocalizedTitle struct {
	LanguageID int
	Title      string
}

// Track is one track of a disc. A Linked track names an existing Song
// (SongID set); an Unlinked track (SongID empty) supplies its own title
// and gets a new Song materialized for it.
type Track struct {
	SongID        string
	UnlinkedTitle string
	ArtistIDs     []string
	TrackNumber   *string
	DisplayTitle  *string
	DurationMs    *int32
}

// IsLinked reports whether the track names an existing Song.
func (t Track) IsLinked() bool { return t.SongID != "" }

// Disc is one disc of a release, holding its tracks in playback order.
type Disc struct {
	Name   *string
	Tracks []Track
}

// Payload is the proposed state of a release.
type Payload struct {
	Title              string
	ReleaseType        Type
	ReleaseDate        Date
	RecordingStartDate Date
	RecordingEndDate   Date
	ArtistIDs          []string
	CatalogNumbers     []CatalogNumber
	Credits            []Credit
	EventIDs           []string
	LocalizedTitles    []LocalizedTitle
	Discs              []Disc
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldReleaseType = "release_type"
	FieldDiscs       = "discs"
)
