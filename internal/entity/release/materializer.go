// Copyright (c) 2026 Harmonia. All rights reserved.

package release

import (
	"context"
	"fmt"

	"github.com/harmonia-catalog/harmonia/internal/correction"
	"github.com/harmonia-catalog/harmonia/internal/entity/dbutil"
	"github.com/harmonia-catalog/harmonia/internal/platform/database/schema"
	"github.com/harmonia-catalog/harmonia/internal/platform/dberr"
	"github.com/harmonia-catalog/harmonia/internal/platform/postgres"
)

// Materializer implements [correction.Materializer] for releases. Of
// every entity kind it owns the deepest child structure: discs, which
// own tracks, which may each mint a new Song the first time an Unlinked
// track is written live.
type Materializer struct{}

// NewMaterializer constructs a release [Materializer].
func NewMaterializer() *Materializer { return &Materializer{} }

var _ correction.Materializer[Payload] = (*Materializer)(nil)

func (m *Materializer) EntityType() correction.EntityType { return correction.EntityRelease }

func (m *Materializer) Validate(ctx context.Context, p Payload) error {
	return Validate(ctx, p)
}

func (m *Materializer) CreateHistory(ctx context.Context, tx postgres.Tx, p Payload) (string, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING %s
	`,
		schema.ReleaseHistory.Table,
		schema.ReleaseHistory.Title, schema.ReleaseHistory.ReleaseType,
		schema.ReleaseHistory.ReleaseDate, schema.ReleaseHistory.ReleaseDatePrecision,
		schema.ReleaseHistory.RecordingDateStart, schema.ReleaseHistory.RecordingDateStartPrecision,
		schema.ReleaseHistory.RecordingDateEnd, schema.ReleaseHistory.RecordingDateEndPrecision,
		schema.ReleaseHistory.CreatedAt,
		schema.ReleaseHistory.ID,
	)

	var historyID string
	if err := tx.QueryRow(ctx, query, p.Title, p.ReleaseType,
		p.ReleaseDate.Value, p.ReleaseDate.Precision,
		p.RecordingStartDate.Value, p.RecordingStartDate.Precision,
		p.RecordingEndDate.Value, p.RecordingEndDate.Precision,
	).Scan(&historyID); err != nil {
		return "", dberr.Wrap(err, "create release history")
	}

	if err := insertArtistHistory(ctx, tx, historyID, p.ArtistIDs); err != nil {
		return "", err
	}
	if err := insertCatalogNumberHistory(ctx, tx, historyID, p.CatalogNumbers); err != nil {
		return "", err
	}
	if err := insertCreditHistory(ctx, tx, historyID, p.Credits); err != nil {
		return "", err
	}
	if err := insertEventHistory(ctx, tx, historyID, p.EventIDs); err != nil {
		return "", err
	}
	if err := insertLocalizedTitleHistory(ctx, tx, historyID, p.LocalizedTitles); err != nil {
		return "", err
	}
	if err := insertDiscsHistory(ctx, tx, historyID, p.Discs); err != nil {
		return "", err
	}
	return historyID, nil
}

func (m *Materializer) CreateLive(ctx context.Context, tx postgres.Tx, p Payload) (string, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING %s
	`,
		schema.Release.Table,
		schema.Release.Title, schema.Release.ReleaseType,
		schema.Release.ReleaseDate, schema.Release.ReleaseDatePrecision,
		schema.Release.RecordingDateStart, schema.Release.RecordingDateStartPrecision,
		schema.Release.RecordingDateEnd, schema.Release.RecordingDateEndPrecision,
		schema.Release.CreatedAt, schema.Release.UpdatedAt,
		schema.Release.ID,
	)

	var entityID string
	if err := tx.QueryRow(ctx, query, p.Title, p.ReleaseType,
		p.ReleaseDate.Value, p.ReleaseDate.Precision,
		p.RecordingStartDate.Value, p.RecordingStartDate.Precision,
		p.RecordingEndDate.Value, p.RecordingEndDate.Precision,
	).Scan(&entityID); err != nil {
		return "", dberr.Wrap(err, "create live release")
	}

	if err := insertArtistsLive(ctx, tx, entityID, p.ArtistIDs); err != nil {
		return "", err
	}
	if err := insertCatalogNumbersLive(ctx, tx, entityID, p.CatalogNumbers); err != nil {
		return "", err
	}
	if err := insertCreditsLive(ctx, tx, entityID, p.Credits); err != nil {
		return "", err
	}
	if err := insertEventsLive(ctx, tx, entityID, p.EventIDs); err != nil {
		return "", err
	}
	if err := insertLocalizedTitlesLive(ctx, tx, entityID, p.LocalizedTitles); err != nil {
		return "", err
	}
	if err := materializeDiscsLive(ctx, tx, entityID, p.Discs); err != nil {
		return "", err
	}
	return entityID, nil
}

type releaseHistoryRecord struct {
	Title              string
	ReleaseType        Type
	ReleaseDate        Date
	RecordingDateStart Date
	RecordingDateEnd   Date
}

func loadReleaseHistory(ctx context.Context, tx postgres.Tx, historyID string) (*releaseHistoryRecord, error) {
	query := fmt.Sprintf("SELECT %s, %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1",
		schema.ReleaseHistory.Title, schema.ReleaseHistory.ReleaseType,
		schema.ReleaseHistory.ReleaseDate, schema.ReleaseHistory.ReleaseDatePrecision,
		schema.ReleaseHistory.RecordingDateStart, schema.ReleaseHistory.RecordingDateStartPrecision,
		schema.ReleaseHistory.RecordingDateEnd, schema.ReleaseHistory.RecordingDateEndPrecision,
		schema.ReleaseHistory.Table, schema.ReleaseHistory.ID)

	h := &releaseHistoryRecord{}
	if err := tx.QueryRow(ctx, query, historyID).Scan(
		&h.Title, &h.ReleaseType,
		&h.ReleaseDate.Value, &h.ReleaseDate.Precision,
		&h.RecordingDateStart.Value, &h.RecordingDateStart.Precision,
		&h.RecordingDateEnd.Value, &h.RecordingDateEnd.Precision,
	); err != nil {
		return nil, dberr.Wrap(err, "load release history")
	}
	return h, nil
}

func (m *Materializer) Reapply(ctx context.Context, tx postgres.Tx, entityID, historyID string) error {
	h, err := loadReleaseHistory(ctx, tx, historyID)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = NOW()
		WHERE %s = $1
	`,
		schema.Release.Table,
		schema.Release.Title, schema.Release.ReleaseType,
		schema.Release.ReleaseDate, schema.Release.ReleaseDatePrecision,
		schema.Release.RecordingDateStart, schema.Release.RecordingDateStartPrecision,
		schema.Release.RecordingDateEnd, schema.Release.RecordingDateEndPrecision,
		schema.Release.UpdatedAt,
		schema.Release.ID,
	)
	tag, err := tx.Exec(ctx, query, entityID, h.Title, h.ReleaseType,
		h.ReleaseDate.Value, h.ReleaseDate.Precision,
		h.RecordingDateStart.Value, h.RecordingDateStart.Precision,
		h.RecordingDateEnd.Value, h.RecordingDateEnd.Precision,
	)
	if err != nil {
		return dberr.Wrap(err, "update live release")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return m.applyChildrenFromHistory(ctx, tx, entityID, historyID)
}

func (m *Materializer) applyChildrenFromHistory(ctx context.Context, tx postgres.Tx, entityID, historyID string) error {
	artistIDs, err := selectArtistHistory(ctx, tx, historyID)
	if err != nil {
		return err
	}
	if err := dbutil.ReplaceChildren(ctx, tx, schema.ReleaseArtist.Table, schema.ReleaseArtist.ReleaseID, entityID,
		fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)", schema.ReleaseArtist.Table, schema.ReleaseArtist.ReleaseID, schema.ReleaseArtist.ArtistID),
		idRows(entityID, artistIDs),
	); err != nil {
		return err
	}

	catalogNumbers, err := selectCatalogNumberHistory(ctx, tx, historyID)
	if err != nil {
		return err
	}
	if err := dbutil.ReplaceChildren(ctx, tx, schema.ReleaseCatalogNumber.Table, schema.ReleaseCatalogNumber.ReleaseID, entityID,
		fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
			schema.ReleaseCatalogNumber.Table, schema.ReleaseCatalogNumber.ReleaseID, schema.ReleaseCatalogNumber.CatalogNumber, schema.ReleaseCatalogNumber.LabelID),
		catalogNumberRows(entityID, catalogNumbers),
	); err != nil {
		return err
	}

	credits, err := selectCreditHistory(ctx, tx, historyID)
	if err != nil {
		return err
	}
	if err := dbutil.ReplaceChildren(ctx, tx, schema.ReleaseCredit.Table, schema.ReleaseCredit.ReleaseID, entityID,
		fmt.Sprintf("INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)",
			schema.ReleaseCredit.Table, schema.ReleaseCredit.ReleaseID, schema.ReleaseCredit.ArtistID, schema.ReleaseCredit.RoleID, schema.ReleaseCredit.On),
		creditRows(entityID, credits),
	); err != nil {
		return err
	}

	eventIDs, err := selectEventHistory(ctx, tx, historyID)
	if err != nil {
		return err
	}
	if err := dbutil.ReplaceChildren(ctx, tx, schema.ReleaseEvent.Table, schema.ReleaseEvent.ReleaseID, entityID,
		fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)", schema.ReleaseEvent.Table, schema.ReleaseEvent.ReleaseID, schema.ReleaseEvent.EventID),
		idRows(entityID, eventIDs),
	); err != nil {
		return err
	}

	titles, err := selectLocalizedTitleHistory(ctx, tx, historyID)
	if err != nil {
		return err
	}
	if err := dbutil.ReplaceChildren(ctx, tx, schema.ReleaseLocalizedTitle.Table, schema.ReleaseLocalizedTitle.ReleaseID, entityID,
		fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
			schema.ReleaseLocalizedTitle.Table, schema.ReleaseLocalizedTitle.ReleaseID, schema.ReleaseLocalizedTitle.LanguageID, schema.ReleaseLocalizedTitle.Title),
		localizedTitleRows(entityID, titles),
	); err != nil {
		return err
	}

	return materializeDiscsFromHistory(ctx, tx, entityID, historyID)
}

// # Flat child relations (artists, catalog numbers, credits, events, localized titles)

func idRows(id string, ids []string) [][]any {
	rows := make([][]any, 0, len(ids))
	for _, other := range ids {
		rows = append(rows, []any{id, other})
	}
	return rows
}

func insertArtistHistory(ctx context.Context, tx postgres.Tx, historyID string, artistIDs []string) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.ReleaseArtistHistory.Table, schema.ReleaseArtistHistory.ReleaseHistoryID, schema.ReleaseArtistHistory.ArtistID)
	return dbutil.BatchInsert(ctx, tx, query, idRows(historyID, artistIDs))
}

func selectArtistHistory(ctx context.Context, tx postgres.Tx, historyID string) ([]string, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		schema.ReleaseArtistHistory.ArtistID, schema.ReleaseArtistHistory.Table, schema.ReleaseArtistHistory.ReleaseHistoryID)
	rows, err := tx.Query(ctx, query, historyID)
	if err != nil {
		return nil, dberr.Wrap(err, "select release artist history")
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan release artist history")
		}
		out = append(out, id)
	}
	return out, nil
}

func insertArtistsLive(ctx context.Context, tx postgres.Tx, entityID string, artistIDs []string) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.ReleaseArtist.Table, schema.ReleaseArtist.ReleaseID, schema.ReleaseArtist.ArtistID)
	return dbutil.BatchInsert(ctx, tx, query, idRows(entityID, artistIDs))
}

func catalogNumberRows(id string, numbers []CatalogNumber) [][]any {
	rows := make([][]any, 0, len(numbers))
	for _, n := range numbers {
		rows = append(rows, []any{id, n.Number, n.LabelID})
	}
	return rows
}

func insertCatalogNumberHistory(ctx context.Context, tx postgres.Tx, historyID string, numbers []CatalogNumber) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
		schema.ReleaseCatalogNumberHistory.Table, schema.ReleaseCatalogNumberHistory.ReleaseHistoryID,
		schema.ReleaseCatalogNumberHistory.CatalogNumber, schema.ReleaseCatalogNumberHistory.LabelID)
	return dbutil.BatchInsert(ctx, tx, query, catalogNumberRows(historyID, numbers))
}

func selectCatalogNumberHistory(ctx context.Context, tx postgres.Tx, historyID string) ([]CatalogNumber, error) {
	query := fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s = $1",
		schema.ReleaseCatalogNumberHistory.CatalogNumber, schema.ReleaseCatalogNumberHistory.LabelID,
		schema.ReleaseCatalogNumberHistory.Table, schema.ReleaseCatalogNumberHistory.ReleaseHistoryID)
	rows, err := tx.Query(ctx, query, historyID)
	if err != nil {
		return nil, dberr.Wrap(err, "select release catalog number history")
	}
	defer rows.Close()

	var out []CatalogNumber
	for rows.Next() {
		n := CatalogNumber{}
		if err := rows.Scan(&n.Number, &n.LabelID); err != nil {
			return nil, dberr.Wrap(err, "scan release catalog number history")
		}
		out = append(out, n)
	}
	return out, nil
}

func insertCatalogNumbersLive(ctx context.Context, tx postgres.Tx, entityID string, numbers []CatalogNumber) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
		schema.ReleaseCatalogNumber.Table, schema.ReleaseCatalogNumber.ReleaseID,
		schema.ReleaseCatalogNumber.CatalogNumber, schema.ReleaseCatalogNumber.LabelID)
	return dbutil.BatchInsert(ctx, tx, query, catalogNumberRows(entityID, numbers))
}

func creditRows(id string, credits []Credit) [][]any {
	rows := make([][]any, 0, len(credits))
	for _, c := range credits {
		rows = append(rows, []any{id, c.ArtistID, c.RoleID, c.On})
	}
	return rows
}

func insertCreditHistory(ctx context.Context, tx postgres.Tx, historyID string, credits []Credit) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)",
		schema.ReleaseCreditHistory.Table, schema.ReleaseCreditHistory.ReleaseHistoryID,
		schema.ReleaseCreditHistory.ArtistID, schema.ReleaseCreditHistory.RoleID, schema.ReleaseCreditHistory.On)
	return dbutil.BatchInsert(ctx, tx, query, creditRows(historyID, credits))
}

func selectCreditHistory(ctx context.Context, tx postgres.Tx, historyID string) ([]Credit, error) {
	query := fmt.Sprintf("SELECT %s, %s, %s FROM %s WHERE %s = $1",
		schema.ReleaseCreditHistory.ArtistID, schema.ReleaseCreditHistory.RoleID, schema.ReleaseCreditHistory.On,
		schema.ReleaseCreditHistory.Table, schema.ReleaseCreditHistory.ReleaseHistoryID)
	rows, err := tx.Query(ctx, query, historyID)
	if err != nil {
		return nil, dberr.Wrap(err, "select release credit history")
	}
	defer rows.Close()

	var out []Credit
	for rows.Next() {
		c := Credit{}
		if err := rows.Scan(&c.ArtistID, &c.RoleID, &c.On); err != nil {
			return nil, dberr.Wrap(err, "scan release credit history")
		}
		out = append(out, c)
	}
	return out, nil
}

func insertCreditsLive(ctx context.Context, tx postgres.Tx, entityID string, credits []Credit) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)",
		schema.ReleaseCredit.Table, schema.ReleaseCredit.ReleaseID,
		schema.ReleaseCredit.ArtistID, schema.ReleaseCredit.RoleID, schema.ReleaseCredit.On)
	return dbutil.BatchInsert(ctx, tx, query, creditRows(entityID, credits))
}

func insertEventHistory(ctx context.Context, tx postgres.Tx, historyID string, eventIDs []string) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.ReleaseEventHistory.Table, schema.ReleaseEventHistory.ReleaseHistoryID, schema.ReleaseEventHistory.EventID)
	return dbutil.BatchInsert(ctx, tx, query, idRows(historyID, eventIDs))
}

func selectEventHistory(ctx context.Context, tx postgres.Tx, historyID string) ([]string, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		schema.ReleaseEventHistory.EventID, schema.ReleaseEventHistory.Table, schema.ReleaseEventHistory.ReleaseHistoryID)
	rows, err := tx.Query(ctx, query, historyID)
	if err != nil {
		return nil, dberr.Wrap(err, "select release event history")
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan release event history")
		}
		out = append(out, id)
	}
	return out, nil
}

func insertEventsLive(ctx context.Context, tx postgres.Tx, entityID string, eventIDs []string) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.ReleaseEvent.Table, schema.ReleaseEvent.ReleaseID, schema.ReleaseEvent.EventID)
	return dbutil.BatchInsert(ctx, tx, query, idRows(entityID, eventIDs))
}

func localizedTitleRows(id string, titles []LocalizedTitle) [][]any {
	rows := make([][]any, 0, len(titles))
	for _, t := range titles {
		rows = append(rows, []any{id, t.LanguageID, t.Title})
	}
	return rows
}

func insertLocalizedTitleHistory(ctx context.Context, tx postgres.Tx, historyID string, titles []LocalizedTitle) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
		schema.ReleaseLocalizedTitleHistory.Table, schema.ReleaseLocalizedTitleHistory.ReleaseHistoryID,
		schema.ReleaseLocalizedTitleHistory.LanguageID, schema.ReleaseLocalizedTitleHistory.Title)
	return dbutil.BatchInsert(ctx, tx, query, localizedTitleRows(historyID, titles))
}

func selectLocalizedTitleHistory(ctx context.Context, tx postgres.Tx, historyID string) ([]LocalizedTitle, error) {
	query := fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s = $1",
		schema.ReleaseLocalizedTitleHistory.LanguageID, schema.ReleaseLocalizedTitleHistory.Title,
		schema.ReleaseLocalizedTitleHistory.Table, schema.ReleaseLocalizedTitleHistory.ReleaseHistoryID)
	rows, err := tx.Query(ctx, query, historyID)
	if err != nil {
		return nil, dberr.Wrap(err, "select release localized title history")
	}
	defer rows.Close()

	var out []LocalizedTitle
	for rows.Next() {
		t := LocalizedTitle{}
		if err := rows.Scan(&t.LanguageID, &t.Title); err != nil {
			return nil, dberr.Wrap(err, "scan release localized title history")
		}
		out = append(out, t)
	}
	return out, nil
}

func insertLocalizedTitlesLive(ctx context.Context, tx postgres.Tx, entityID string, titles []LocalizedTitle) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
		schema.ReleaseLocalizedTitle.Table, schema.ReleaseLocalizedTitle.ReleaseID,
		schema.ReleaseLocalizedTitle.LanguageID, schema.ReleaseLocalizedTitle.Title)
	return dbutil.BatchInsert(ctx, tx, query, localizedTitleRows(entityID, titles))
}

// # Discs, tracks, and the Unlinked-track auto-Song path
//
// Discs and tracks are the one child structure a generic
// dbutil.ReplaceChildren cannot express: a disc needs its generated id
// before its tracks can be inserted, and a reapply must remap each
// history disc to the *new* live disc id it is given this time around,
// not whatever id the previous materialization happened to assign.

// createUnlinkedSong materializes a bare Song for a track that was
// authored without one, named after the track's own title. It carries
// no credits of its own; the track's performers are recorded on
// release_track_artist, not on the song.
func createUnlinkedSong(ctx context.Context, tx postgres.Tx, title string) (string, error) {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, NOW(), NOW()) RETURNING %s",
		schema.Song.Table, schema.Song.Title, schema.Song.CreatedAt, schema.Song.UpdatedAt, schema.Song.ID)

	var songID string
	if err := tx.QueryRow(ctx, query, title).Scan(&songID); err != nil {
		return "", dberr.Wrap(err, "create song for unlinked track")
	}
	return songID, nil
}

func insertTrackArtistsLive(ctx context.Context, tx postgres.Tx, trackID string, artistIDs []string) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.ReleaseTrackArtist.Table, schema.ReleaseTrackArtist.TrackID, schema.ReleaseTrackArtist.ArtistID)
	return dbutil.BatchInsert(ctx, tx, query, idRows(trackID, artistIDs))
}

// materializeDiscsLive inserts discs and tracks directly from a fresh
// payload (no history snapshot involved), minting a Song for every
// Unlinked track as it goes.
func materializeDiscsLive(ctx context.Context, tx postgres.Tx, entityID string, discs []Disc) error {
	discQuery := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s",
		schema.ReleaseDisc.Table, schema.ReleaseDisc.ReleaseID, schema.ReleaseDisc.Name, schema.ReleaseDisc.Position, schema.ReleaseDisc.ID)
	trackQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s
	`,
		schema.ReleaseTrack.Table, schema.ReleaseTrack.ReleaseID, schema.ReleaseTrack.DiscID, schema.ReleaseTrack.SongID,
		schema.ReleaseTrack.TrackNumber, schema.ReleaseTrack.DisplayTitle, schema.ReleaseTrack.DurationMs, schema.ReleaseTrack.Position,
		schema.ReleaseTrack.ID,
	)

	for discPos, disc := range discs {
		var discID string
		if err := tx.QueryRow(ctx, discQuery, entityID, disc.Name, discPos).Scan(&discID); err != nil {
			return dberr.Wrap(err, "create live release disc")
		}

		for trackPos, track := range disc.Tracks {
			songID := track.SongID
			if !track.IsLinked() {
				newSongID, err := createUnlinkedSong(ctx, tx, track.UnlinkedTitle)
				if err != nil {
					return err
				}
				songID = newSongID
			}

			var trackID string
			if err := tx.QueryRow(ctx, trackQuery, entityID, discID, songID, track.TrackNumber, track.DisplayTitle, track.DurationMs, trackPos).Scan(&trackID); err != nil {
				return dberr.Wrap(err, "create live release track")
			}

			if err := insertTrackArtistsLive(ctx, tx, trackID, track.ArtistIDs); err != nil {
				return err
			}
		}
	}
	return nil
}

func insertDiscsHistory(ctx context.Context, tx postgres.Tx, releaseHistoryID string, discs []Disc) error {
	discQuery := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s",
		schema.ReleaseDiscHistory.Table, schema.ReleaseDiscHistory.ReleaseHistoryID, schema.ReleaseDiscHistory.Name, schema.ReleaseDiscHistory.Position,
		schema.ReleaseDiscHistory.ID)
	trackQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`,
		schema.ReleaseTrackHistory.Table, schema.ReleaseTrackHistory.ReleaseHistoryID, schema.ReleaseTrackHistory.DiscHistoryID,
		schema.ReleaseTrackHistory.SongID, schema.ReleaseTrackHistory.UnlinkedTitle,
		schema.ReleaseTrackHistory.TrackNumber, schema.ReleaseTrackHistory.DisplayTitle,
		schema.ReleaseTrackHistory.DurationMs, schema.ReleaseTrackHistory.Position,
		schema.ReleaseTrackHistory.ID,
	)

	for discPos, disc := range discs {
		var discHistoryID string
		if err := tx.QueryRow(ctx, discQuery, releaseHistoryID, disc.Name, discPos).Scan(&discHistoryID); err != nil {
			return dberr.Wrap(err, "create release disc history")
		}

		for trackPos, track := range disc.Tracks {
			var songID *string
			var unlinkedTitle *string
			if track.IsLinked() {
				id := track.SongID
				songID = &id
			} else {
				title := track.UnlinkedTitle
				unlinkedTitle = &title
			}

			var trackHistoryID string
			if err := tx.QueryRow(ctx, trackQuery, releaseHistoryID, discHistoryID, songID, unlinkedTitle, track.TrackNumber, track.DisplayTitle, track.DurationMs, trackPos).
				Scan(&trackHistoryID); err != nil {
				return dberr.Wrap(err, "create release track history")
			}

			query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
				schema.ReleaseTrackArtistHistory.Table, schema.ReleaseTrackArtistHistory.TrackHistoryID, schema.ReleaseTrackArtistHistory.ArtistID)
			if err := dbutil.BatchInsert(ctx, tx, query, idRows(trackHistoryID, track.ArtistIDs)); err != nil {
				return err
			}
		}
	}
	return nil
}

type discHistoryRow struct {
	ID       string
	Name     *string
	Position int
}

func loadDiscHistories(ctx context.Context, tx postgres.Tx, releaseHistoryID string) ([]discHistoryRow, error) {
	query := fmt.Sprintf("SELECT %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s ASC",
		schema.ReleaseDiscHistory.ID, schema.ReleaseDiscHistory.Name, schema.ReleaseDiscHistory.Position,
		schema.ReleaseDiscHistory.Table, schema.ReleaseDiscHistory.ReleaseHistoryID, schema.ReleaseDiscHistory.Position)
	rows, err := tx.Query(ctx, query, releaseHistoryID)
	if err != nil {
		return nil, dberr.Wrap(err, "select release disc history")
	}
	defer rows.Close()

	var out []discHistoryRow
	for rows.Next() {
		d := discHistoryRow{}
		if err := rows.Scan(&d.ID, &d.Name, &d.Position); err != nil {
			return nil, dberr.Wrap(err, "scan release disc history")
		}
		out = append(out, d)
	}
	return out, nil
}

type trackHistoryRow struct {
	ID            string
	DiscHistoryID string
	SongID        *string
	UnlinkedTitle *string
	TrackNumber   *string
	DisplayTitle  *string
	DurationMs    *int32
	Position      int
}

func loadTrackHistories(ctx context.Context, tx postgres.Tx, releaseHistoryID string) ([]trackHistoryRow, error) {
	query := fmt.Sprintf("SELECT %s, %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s ASC",
		schema.ReleaseTrackHistory.ID, schema.ReleaseTrackHistory.DiscHistoryID, schema.ReleaseTrackHistory.SongID,
		schema.ReleaseTrackHistory.UnlinkedTitle, schema.ReleaseTrackHistory.TrackNumber, schema.ReleaseTrackHistory.DisplayTitle,
		schema.ReleaseTrackHistory.DurationMs, schema.ReleaseTrackHistory.Position,
		schema.ReleaseTrackHistory.Table, schema.ReleaseTrackHistory.ReleaseHistoryID, schema.ReleaseTrackHistory.Position)
	rows, err := tx.Query(ctx, query, releaseHistoryID)
	if err != nil {
		return nil, dberr.Wrap(err, "select release track history")
	}
	defer rows.Close()

	var out []trackHistoryRow
	for rows.Next() {
		t := trackHistoryRow{}
		if err := rows.Scan(&t.ID, &t.DiscHistoryID, &t.SongID, &t.UnlinkedTitle, &t.TrackNumber, &t.DisplayTitle, &t.DurationMs, &t.Position); err != nil {
			return nil, dberr.Wrap(err, "scan release track history")
		}
		out = append(out, t)
	}
	return out, nil
}

func loadTrackArtistHistory(ctx context.Context, tx postgres.Tx, trackHistoryID string) ([]string, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		schema.ReleaseTrackArtistHistory.ArtistID, schema.ReleaseTrackArtistHistory.Table, schema.ReleaseTrackArtistHistory.TrackHistoryID)
	rows, err := tx.Query(ctx, query, trackHistoryID)
	if err != nil {
		return nil, dberr.Wrap(err, "select release track artist history")
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan release track artist history")
		}
		out = append(out, id)
	}
	return out, nil
}

// deleteLiveTracksAndDiscs clears every live disc and track belonging to
// entityID, the first half of the delete-all-then-reinsert-from-history
// protocol. Track-artist rows are cleared explicitly first since they
// reference tracks by id rather than by release id.
func deleteLiveTracksAndDiscs(ctx context.Context, tx postgres.Tx, entityID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s IN (SELECT %s FROM %s WHERE %s = $1)",
		schema.ReleaseTrackArtist.Table, schema.ReleaseTrackArtist.TrackID,
		schema.ReleaseTrack.ID, schema.ReleaseTrack.Table, schema.ReleaseTrack.ReleaseID)
	if _, err := tx.Exec(ctx, query, entityID); err != nil {
		return dberr.Wrap(err, "clear live release track artists")
	}

	if err := dbutil.DeleteAll(ctx, tx, schema.ReleaseTrack.Table, schema.ReleaseTrack.ReleaseID, entityID); err != nil {
		return err
	}
	return dbutil.DeleteAll(ctx, tx, schema.ReleaseDisc.Table, schema.ReleaseDisc.ReleaseID, entityID)
}

// materializeDiscsFromHistory replaces every live disc and track of
// entityID with a fresh materialization of the historyID snapshot. Each
// history disc is re-inserted in its recorded position order and given
// a brand-new live id; discHistoryIndex maps each history disc to that
// position so every track can resolve its disc_id through the position
// it shares with the disc it belonged to, not through any id that
// happened to exist in a previous materialization.
func materializeDiscsFromHistory(ctx context.Context, tx postgres.Tx, entityID, historyID string) error {
	if err := deleteLiveTracksAndDiscs(ctx, tx, entityID); err != nil {
		return err
	}

	discHistories, err := loadDiscHistories(ctx, tx, historyID)
	if err != nil {
		return err
	}

	discQuery := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s",
		schema.ReleaseDisc.Table, schema.ReleaseDisc.ReleaseID, schema.ReleaseDisc.Name, schema.ReleaseDisc.Position, schema.ReleaseDisc.ID)

	discHistoryIndex := make(map[string]int, len(discHistories))
	newDiscIDs := make([]string, len(discHistories))
	for i, dh := range discHistories {
		var discID string
		if err := tx.QueryRow(ctx, discQuery, entityID, dh.Name, i).Scan(&discID); err != nil {
			return dberr.Wrap(err, "recreate live release disc")
		}
		newDiscIDs[i] = discID
		discHistoryIndex[dh.ID] = i
	}

	trackHistories, err := loadTrackHistories(ctx, tx, historyID)
	if err != nil {
		return err
	}

	trackQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s
	`,
		schema.ReleaseTrack.Table, schema.ReleaseTrack.ReleaseID, schema.ReleaseTrack.DiscID, schema.ReleaseTrack.SongID,
		schema.ReleaseTrack.TrackNumber, schema.ReleaseTrack.DisplayTitle, schema.ReleaseTrack.DurationMs, schema.ReleaseTrack.Position,
		schema.ReleaseTrack.ID,
	)

	for _, th := range trackHistories {
		idx, ok := discHistoryIndex[th.DiscHistoryID]
		if !ok {
			return dberr.Wrap(fmt.Errorf("release track history %s names an unknown disc history", th.ID), "recreate live release track")
		}
		discID := newDiscIDs[idx]

		songID := th.SongID
		if songID == nil {
			title := ""
			if th.UnlinkedTitle != nil {
				title = *th.UnlinkedTitle
			}
			newSongID, err := createUnlinkedSong(ctx, tx, title)
			if err != nil {
				return err
			}
			songID = &newSongID
		}

		var trackID string
		if err := tx.QueryRow(ctx, trackQuery, entityID, discID, songID, th.TrackNumber, th.DisplayTitle, th.DurationMs, th.Position).
			Scan(&trackID); err != nil {
			return dberr.Wrap(err, "recreate live release track")
		}

		artistIDs, err := loadTrackArtistHistory(ctx, tx, th.ID)
		if err != nil {
			return err
		}
		if err := insertTrackArtistsLive(ctx, tx, trackID, artistIDs); err != nil {
			return err
		}
	}
	return nil
}
