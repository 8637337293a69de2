package schema

// ReleaseTable represents the live 'catalog.release' table.
type ReleaseTable struct {
	Table                    string
	ID                       string
	Title                    string
	ReleaseType              string
	ReleaseDate              string
	ReleaseDatePrecision     string
	RecordingDateStart       string
	RecordingDateStartPrecision string
	RecordingDateEnd         string
	RecordingDateEndPrecision   string
	CreatedAt                string
	UpdatedAt                string
}

var Release = ReleaseTable{
	Table:                       "catalog.release",
	ID:                          "id",
	Title:                       "title",
	ReleaseType:                 "release_type",
	ReleaseDate:                 "release_date",
	ReleaseDatePrecision:        "release_date_precision",
	RecordingDateStart:          "recording_date_start",
	RecordingDateStartPrecision: "recording_date_start_precision",
	RecordingDateEnd:            "recording_date_end",
	RecordingDateEndPrecision:   "recording_date_end_precision",
	CreatedAt:                   "created_at",
	UpdatedAt:                   "updated_at",
}

func (t ReleaseTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.ReleaseType, t.ReleaseDate, t.ReleaseDatePrecision,
		t.RecordingDateStart, t.RecordingDateStartPrecision,
		t.RecordingDateEnd, t.RecordingDateEndPrecision, t.CreatedAt, t.UpdatedAt,
	}
}

type ReleaseHistoryTable struct {
	Table                       string
	ID                          string
	Title                       string
	ReleaseType                 string
	ReleaseDate                 string
	ReleaseDatePrecision        string
	RecordingDateStart          string
	RecordingDateStartPrecision string
	RecordingDateEnd            string
	RecordingDateEndPrecision   string
	CreatedAt                   string
}

var ReleaseHistory = ReleaseHistoryTable{
	Table:                       "catalog.release_history",
	ID:                          "id",
	Title:                       "title",
	ReleaseType:                 "release_type",
	ReleaseDate:                 "release_date",
	ReleaseDatePrecision:        "release_date_precision",
	RecordingDateStart:          "recording_date_start",
	RecordingDateStartPrecision: "recording_date_start_precision",
	RecordingDateEnd:            "recording_date_end",
	RecordingDateEndPrecision:   "recording_date_end_precision",
	CreatedAt:                   "created_at",
}

func (t ReleaseHistoryTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.ReleaseType, t.ReleaseDate, t.ReleaseDatePrecision,
		t.RecordingDateStart, t.RecordingDateStartPrecision,
		t.RecordingDateEnd, t.RecordingDateEndPrecision, t.CreatedAt,
	}
}

// # Release artists

type ReleaseArtistTable struct {
	Table     string
	ReleaseID string
	ArtistID  string
}

var ReleaseArtist = ReleaseArtistTable{Table: "catalog.release_artist", ReleaseID: "release_id", ArtistID: "artist_id"}

type ReleaseArtistHistoryTable struct {
	Table            string
	ReleaseHistoryID string
	ArtistID         string
}

var ReleaseArtistHistory = ReleaseArtistHistoryTable{
	Table: "catalog.release_artist_history", ReleaseHistoryID: "release_history_id", ArtistID: "artist_id",
}

// # Catalog numbers

type ReleaseCatalogNumberTable struct {
	Table         string
	ReleaseID     string
	CatalogNumber string
	LabelID       string
}

var ReleaseCatalogNumber = ReleaseCatalogNumberTable{
	Table: "catalog.release_catalog_number", ReleaseID: "release_id", CatalogNumber: "catalog_number", LabelID: "label_id",
}

type ReleaseCatalogNumberHistoryTable struct {
	Table            string
	ReleaseHistoryID string
	CatalogNumber    string
	LabelID          string
}

var ReleaseCatalogNumberHistory = ReleaseCatalogNumberHistoryTable{
	Table: "catalog.release_catalog_number_history", ReleaseHistoryID: "release_history_id",
	CatalogNumber: "catalog_number", LabelID: "label_id",
}

// # Credits

type ReleaseCreditTable struct {
	Table     string
	ReleaseID string
	ArtistID  string
	RoleID    string
	On        string
}

var ReleaseCredit = ReleaseCreditTable{
	Table: "catalog.release_credit", ReleaseID: "release_id", ArtistID: "artist_id", RoleID: "role_id", On: "on_discs",
}

type ReleaseCreditHistoryTable struct {
	Table            string
	ReleaseHistoryID string
	ArtistID         string
	RoleID           string
	On               string
}

var ReleaseCreditHistory = ReleaseCreditHistoryTable{
	Table: "catalog.release_credit_history", ReleaseHistoryID: "release_history_id",
	ArtistID: "artist_id", RoleID: "role_id", On: "on_discs",
}

// # Events

type ReleaseEventTable struct {
	Table     string
	ReleaseID string
	EventID   string
}

var ReleaseEvent = ReleaseEventTable{Table: "catalog.release_event", ReleaseID: "release_id", EventID: "event_id"}

type ReleaseEventHistoryTable struct {
	Table            string
	ReleaseHistoryID string
	EventID          string
}

var ReleaseEventHistory = ReleaseEventHistoryTable{
	Table: "catalog.release_event_history", ReleaseHistoryID: "release_history_id", EventID: "event_id",
}

// # Localized titles

type ReleaseLocalizedTitleTable struct {
	Table      string
	ReleaseID  string
	LanguageID string
	Title      string
}

var ReleaseLocalizedTitle = ReleaseLocalizedTitleTable{
	Table: "catalog.release_localized_title", ReleaseID: "release_id", LanguageID: "language_id", Title: "title",
}

type ReleaseLocalizedTitleHistoryTable struct {
	Table            string
	ReleaseHistoryID string
	LanguageID       string
	Title            string
}

var ReleaseLocalizedTitleHistory = ReleaseLocalizedTitleHistoryTable{
	Table: "catalog.release_localized_title_history", ReleaseHistoryID: "release_history_id",
	LanguageID: "language_id", Title: "title",
}

// # Discs

type ReleaseDiscTable struct {
	Table     string
	ID        string
	ReleaseID string
	Name      string
	Position  string
}

var ReleaseDisc = ReleaseDiscTable{
	Table: "catalog.release_disc", ID: "id", ReleaseID: "release_id", Name: "name", Position: "position",
}

// ReleaseDiscHistoryTable keeps its own id, ordered by Position, so that
// reapply can remap history_disc.id -> new live disc.id.
type ReleaseDiscHistoryTable struct {
	Table            string
	ID               string
	ReleaseHistoryID string
	Name             string
	Position         string
}

var ReleaseDiscHistory = ReleaseDiscHistoryTable{
	Table: "catalog.release_disc_history", ID: "id", ReleaseHistoryID: "release_history_id",
	Name: "name", Position: "position",
}

// # Tracks
//
// Track.SongID always names a real Song row: Linked tracks name an
// existing song, Unlinked tracks get one auto-created during
// materialization.

type ReleaseTrackTable struct {
	Table       string
	ID          string
	ReleaseID   string
	DiscID      string
	SongID      string
	TrackNumber string
	DisplayTitle string
	DurationMs  string
	Position    string
}

var ReleaseTrack = ReleaseTrackTable{
	Table: "catalog.release_track", ID: "id", ReleaseID: "release_id", DiscID: "disc_id", SongID: "song_id",
	TrackNumber: "track_number", DisplayTitle: "display_title", DurationMs: "duration_ms", Position: "position",
}

// ReleaseTrackHistoryTable stores DiscHistoryID (not a live disc id) and,
// for Unlinked tracks authored before any live song exists, the proposed
// title needed to materialize a new Song later.
type ReleaseTrackHistoryTable struct {
	Table            string
	ID               string
	ReleaseHistoryID string
	DiscHistoryID    string
	SongID           string
	UnlinkedTitle    string
	TrackNumber      string
	DisplayTitle     string
	DurationMs       string
	Position         string
}

var ReleaseTrackHistory = ReleaseTrackHistoryTable{
	Table: "catalog.release_track_history", ID: "id", ReleaseHistoryID: "release_history_id",
	DiscHistoryID: "disc_history_id", SongID: "song_id", UnlinkedTitle: "unlinked_title",
	TrackNumber: "track_number", DisplayTitle: "display_title", DurationMs: "duration_ms", Position: "position",
}

// ReleaseTrackArtistTable / history: the performing artists of one track
// (distinct from the release-level artist credit).
type ReleaseTrackArtistTable struct {
	Table   string
	TrackID string
	ArtistID string
}

var ReleaseTrackArtist = ReleaseTrackArtistTable{Table: "catalog.release_track_artist", TrackID: "track_id", ArtistID: "artist_id"}

type ReleaseTrackArtistHistoryTable struct {
	Table          string
	TrackHistoryID string
	ArtistID       string
}

var ReleaseTrackArtistHistory = ReleaseTrackArtistHistoryTable{
	Table: "catalog.release_track_artist_history", TrackHistoryID: "track_history_id", ArtistID: "artist_id",
}
