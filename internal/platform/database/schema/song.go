package schema

// SongTable represents the live 'catalog.song' table.
type SongTable struct {
	Table     string
	ID        string
	Title     string
	CreatedAt string
	UpdatedAt string
}

var Song = SongTable{Table: "catalog.song", ID: "id", Title: "title", CreatedAt: "created_at", UpdatedAt: "updated_at"}

func (t SongTable) Columns() []string { return []string{t.ID, t.Title, t.CreatedAt, t.UpdatedAt} }

type SongHistoryTable struct {
	Table     string
	ID        string
	Title     string
	CreatedAt string
}

var SongHistory = SongHistoryTable{Table: "catalog.song_history", ID: "id", Title: "title", CreatedAt: "created_at"}

func (t SongHistoryTable) Columns() []string { return []string{t.ID, t.Title, t.CreatedAt} }

type SongCreditTable struct {
	Table    string
	SongID   string
	ArtistID string
	RoleID   string
}

var SongCredit = SongCreditTable{Table: "catalog.song_credit", SongID: "song_id", ArtistID: "artist_id", RoleID: "role_id"}

type SongCreditHistoryTable struct {
	Table         string
	SongHistoryID string
	ArtistID      string
	RoleID        string
}

var SongCreditHistory = SongCreditHistoryTable{
	Table: "catalog.song_credit_history", SongHistoryID: "song_history_id", ArtistID: "artist_id", RoleID: "role_id",
}

type SongLanguageTable struct {
	Table      string
	SongID     string
	LanguageID string
}

var SongLanguage = SongLanguageTable{Table: "catalog.song_language", SongID: "song_id", LanguageID: "language_id"}

type SongLanguageHistoryTable struct {
	Table         string
	SongHistoryID string
	LanguageID    string
}

var SongLanguageHistory = SongLanguageHistoryTable{
	Table: "catalog.song_language_history", SongHistoryID: "song_history_id", LanguageID: "language_id",
}

type SongLocalizedTitleTable struct {
	Table      string
	SongID     string
	LanguageID string
	Title      string
}

var SongLocalizedTitle = SongLocalizedTitleTable{
	Table: "catalog.song_localized_title", SongID: "song_id", LanguageID: "language_id", Title: "title",
}

type SongLocalizedTitleHistoryTable struct {
	Table         string
	SongHistoryID string
	LanguageID    string
	Title         string
}

var SongLocalizedTitleHistory = SongLocalizedTitleHistoryTable{
	Table: "catalog.song_localized_title_history", SongHistoryID: "song_history_id", LanguageID: "language_id", Title: "title",
}
