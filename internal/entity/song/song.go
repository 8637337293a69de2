// Copyright (c) 2026 Harmonia. All rights reserved.

/*
Package song implements the Song entity materializer: a musical work,
independent of any particular release, with credited contributors,
source languages, and localized titles.
*/
package song

// Credit is one contributor to a song in a given credit role.
type Credit struct {
	ArtistID string
	RoleID   string
}

// LocalizedTitle is a title in one language other than the primary Title.
type LocalizedTitle struct {
	LanguageID int
	Title      string
}

// Payload is the proposed state of a song.
type Payload struct {
	Title           string
	Credits         []Credit
	LanguageIDs     []int
	LocalizedTitles []LocalizedTitle
}

// # Field Identifiers

const (
	FieldTitle = "title"
)
