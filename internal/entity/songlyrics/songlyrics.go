// Copyright (c) 2026 Harmonia. All rights reserved.

/*
Package songlyrics implements the SongLyrics entity materializer: the
lyric text of a song in one language. At most one lyrics row per song
may be marked IsMain (the canonical transcription).
*/
package songlyrics

// Payload is the proposed state of a song's lyrics in one language.
type Payload struct {
	SongID     string
	LanguageID int
	Content    string
	IsMain     bool
}

// # Field Identifiers

const (
	FieldSongID  = "song_id"
	FieldContent = "content"
)
