package schema

// SongLyricsTable represents the live 'catalog.song_lyrics' table. Unlike
// most entity kinds, song lyrics carry no further child relations and
// reference an already-existing Song, so history/live share the same
// parent-resolution shape.
type SongLyricsTable struct {
	Table      string
	ID         string
	SongID     string
	LanguageID string
	Content    string
	IsMain     string
	CreatedAt  string
	UpdatedAt  string
}

var SongLyrics = SongLyricsTable{
	Table:      "catalog.song_lyrics",
	ID:         "id",
	SongID:     "song_id",
	LanguageID: "language_id",
	Content:    "content",
	IsMain:     "is_main",
	CreatedAt:  "created_at",
	UpdatedAt:  "updated_at",
}

func (t SongLyricsTable) Columns() []string {
	return []string{t.ID, t.SongID, t.LanguageID, t.Content, t.IsMain, t.CreatedAt, t.UpdatedAt}
}

type SongLyricsHistoryTable struct {
	Table      string
	ID         string
	SongID     string
	LanguageID string
	Content    string
	IsMain     string
	CreatedAt  string
}

var SongLyricsHistory = SongLyricsHistoryTable{
	Table:      "catalog.song_lyrics_history",
	ID:         "id",
	SongID:     "song_id",
	LanguageID: "language_id",
	Content:    "content",
	IsMain:     "is_main",
	CreatedAt:  "created_at",
}

func (t SongLyricsHistoryTable) Columns() []string {
	return []string{t.ID, t.SongID, t.LanguageID, t.Content, t.IsMain, t.CreatedAt}
}
