// Copyright (c) 2026 Harmonia. All rights reserved.

package songlyrics

import (
	"context"
	"fmt"

	"github.com/harmonia-catalog/harmonia/internal/correction"
	"github.com/harmonia-catalog/harmonia/internal/platform/database/schema"
	"github.com/harmonia-catalog/harmonia/internal/platform/dberr"
	"github.com/harmonia-catalog/harmonia/internal/platform/postgres"
)

// Materializer implements [correction.Materializer] for song lyrics.
type Materializer struct{}

// NewMaterializer constructs a song-lyrics [Materializer].
func NewMaterializer() *Materializer { return &Materializer{} }

var _ correction.Materializer[Payload] = (*Materializer)(nil)

func (m *Materializer) EntityType() correction.EntityType { return correction.EntitySongLyrics }

func (m *Materializer) Validate(ctx context.Context, p Payload) error {
	return Validate(ctx, p)
}

func (m *Materializer) CreateHistory(ctx context.Context, tx postgres.Tx, p Payload) (string, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING %s
	`,
		schema.SongLyricsHistory.Table,
		schema.SongLyricsHistory.SongID, schema.SongLyricsHistory.LanguageID,
		schema.SongLyricsHistory.Content, schema.SongLyricsHistory.IsMain,
		schema.SongLyricsHistory.CreatedAt,
		schema.SongLyricsHistory.ID,
	)

	var historyID string
	if err := tx.QueryRow(ctx, query, p.SongID, p.LanguageID, p.Content, p.IsMain).Scan(&historyID); err != nil {
		return "", dberr.Wrap(err, "create song lyrics history")
	}
	return historyID, nil
}

// clearOtherMainFlags enforces the is_main exclusivity invariant: at most
// one lyrics row per song may be IsMain. excludeID is the row being
// (re)written, which is exempt so it can keep or take the flag itself.
func clearOtherMainFlags(ctx context.Context, tx postgres.Tx, songID, excludeID string) error {
	query := fmt.Sprintf("UPDATE %s SET %s = FALSE WHERE %s = $1 AND %s <> $2",
		schema.SongLyrics.Table, schema.SongLyrics.IsMain, schema.SongLyrics.SongID, schema.SongLyrics.ID)
	if _, err := tx.Exec(ctx, query, songID, excludeID); err != nil {
		return dberr.Wrap(err, "clear other main lyrics flags")
	}
	return nil
}

func (m *Materializer) CreateLive(ctx context.Context, tx postgres.Tx, p Payload) (string, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s
	`,
		schema.SongLyrics.Table,
		schema.SongLyrics.SongID, schema.SongLyrics.LanguageID,
		schema.SongLyrics.Content, schema.SongLyrics.IsMain,
		schema.SongLyrics.CreatedAt, schema.SongLyrics.UpdatedAt,
		schema.SongLyrics.ID,
	)

	var entityID string
	if err := tx.QueryRow(ctx, query, p.SongID, p.LanguageID, p.Content, p.IsMain).Scan(&entityID); err != nil {
		return "", dberr.Wrap(err, "create live song lyrics")
	}

	if p.IsMain {
		if err := clearOtherMainFlags(ctx, tx, p.SongID, entityID); err != nil {
			return "", err
		}
	}
	return entityID, nil
}

type historyRecord struct {
	SongID     string
	LanguageID int
	Content    string
	IsMain     bool
}

func loadHistory(ctx context.Context, tx postgres.Tx, historyID string) (*historyRecord, error) {
	query := fmt.Sprintf("SELECT %s, %s, %s, %s FROM %s WHERE %s = $1",
		schema.SongLyricsHistory.SongID, schema.SongLyricsHistory.LanguageID,
		schema.SongLyricsHistory.Content, schema.SongLyricsHistory.IsMain,
		schema.SongLyricsHistory.Table, schema.SongLyricsHistory.ID)

	h := &historyRecord{}
	if err := tx.QueryRow(ctx, query, historyID).Scan(&h.SongID, &h.LanguageID, &h.Content, &h.IsMain); err != nil {
		return nil, dberr.Wrap(err, "load song lyrics history")
	}
	return h, nil
}

func (m *Materializer) Reapply(ctx context.Context, tx postgres.Tx, entityID, historyID string) error {
	h, err := loadHistory(ctx, tx, historyID)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW() WHERE %s = $1
	`,
		schema.SongLyrics.Table,
		schema.SongLyrics.SongID, schema.SongLyrics.LanguageID, schema.SongLyrics.Content, schema.SongLyrics.IsMain, schema.SongLyrics.UpdatedAt,
		schema.SongLyrics.ID,
	)
	tag, err := tx.Exec(ctx, query, entityID, h.SongID, h.LanguageID, h.Content, h.IsMain)
	if err != nil {
		return dberr.Wrap(err, "update live song lyrics")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	if h.IsMain {
		if err := clearOtherMainFlags(ctx, tx, h.SongID, entityID); err != nil {
			return err
		}
	}
	return nil
}
