// Copyright (c) 2026 Harmonia. All rights reserved.

package song

import (
	"context"
	"fmt"

	"github.com/harmonia-catalog/harmonia/internal/correction"
	"github.com/harmonia-catalog/harmonia/internal/entity/dbutil"
	"github.com/harmonia-catalog/harmonia/internal/platform/database/schema"
	"github.com/harmonia-catalog/harmonia/internal/platform/dberr"
	"github.com/harmonia-catalog/harmonia/internal/platform/postgres"
)

// Materializer implements [correction.Materializer] for songs.
type Materializer struct{}

// NewMaterializer constructs a song [Materializer].
func NewMaterializer() *Materializer { return &Materializer{} }

var _ correction.Materializer[Payload] = (*Materializer)(nil)

func (m *Materializer) EntityType() correction.EntityType { return correction.EntitySong }

func (m *Materializer) Validate(ctx context.Context, p Payload) error {
	return Validate(ctx, p)
}

func (m *Materializer) CreateHistory(ctx context.Context, tx postgres.Tx, p Payload) (string, error) {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, NOW()) RETURNING %s",
		schema.SongHistory.Table, schema.SongHistory.Title, schema.SongHistory.CreatedAt, schema.SongHistory.ID)

	var historyID string
	if err := tx.QueryRow(ctx, query, p.Title).Scan(&historyID); err != nil {
		return "", dberr.Wrap(err, "create song history")
	}

	if err := insertCreditHistory(ctx, tx, historyID, p.Credits); err != nil {
		return "", err
	}
	if err := insertLanguageHistory(ctx, tx, historyID, p.LanguageIDs); err != nil {
		return "", err
	}
	if err := insertLocalizedTitleHistory(ctx, tx, historyID, p.LocalizedTitles); err != nil {
		return "", err
	}
	return historyID, nil
}

func (m *Materializer) CreateLive(ctx context.Context, tx postgres.Tx, p Payload) (string, error) {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, NOW(), NOW()) RETURNING %s",
		schema.Song.Table, schema.Song.Title, schema.Song.CreatedAt, schema.Song.UpdatedAt, schema.Song.ID)

	var entityID string
	if err := tx.QueryRow(ctx, query, p.Title).Scan(&entityID); err != nil {
		return "", dberr.Wrap(err, "create live song")
	}

	if err := insertCreditsLive(ctx, tx, entityID, p.Credits); err != nil {
		return "", err
	}
	if err := insertLanguagesLive(ctx, tx, entityID, p.LanguageIDs); err != nil {
		return "", err
	}
	if err := insertLocalizedTitlesLive(ctx, tx, entityID, p.LocalizedTitles); err != nil {
		return "", err
	}
	return entityID, nil
}

func loadTitle(ctx context.Context, tx postgres.Tx, historyID string) (string, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", schema.SongHistory.Title, schema.SongHistory.Table, schema.SongHistory.ID)

	var title string
	if err := tx.QueryRow(ctx, query, historyID).Scan(&title); err != nil {
		return "", dberr.Wrap(err, "load song history")
	}
	return title, nil
}

func (m *Materializer) Reapply(ctx context.Context, tx postgres.Tx, entityID, historyID string) error {
	title, err := loadTitle(ctx, tx, historyID)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1",
		schema.Song.Table, schema.Song.Title, schema.Song.UpdatedAt, schema.Song.ID)
	tag, err := tx.Exec(ctx, query, entityID, title)
	if err != nil {
		return dberr.Wrap(err, "update live song")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return m.applyChildrenFromHistory(ctx, tx, entityID, historyID)
}

func (m *Materializer) applyChildrenFromHistory(ctx context.Context, tx postgres.Tx, entityID, historyID string) error {
	credits, err := selectCreditHistory(ctx, tx, historyID)
	if err != nil {
		return err
	}
	if err := dbutil.ReplaceChildren(ctx, tx, schema.SongCredit.Table, schema.SongCredit.SongID, entityID,
		fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)", schema.SongCredit.Table, schema.SongCredit.SongID, schema.SongCredit.ArtistID, schema.SongCredit.RoleID),
		creditRows(entityID, credits),
	); err != nil {
		return err
	}

	langs, err := selectLanguageHistory(ctx, tx, historyID)
	if err != nil {
		return err
	}
	if err := dbutil.ReplaceChildren(ctx, tx, schema.SongLanguage.Table, schema.SongLanguage.SongID, entityID,
		fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)", schema.SongLanguage.Table, schema.SongLanguage.SongID, schema.SongLanguage.LanguageID),
		languageRows(entityID, langs),
	); err != nil {
		return err
	}

	titles, err := selectLocalizedTitleHistory(ctx, tx, historyID)
	if err != nil {
		return err
	}
	return dbutil.ReplaceChildren(ctx, tx, schema.SongLocalizedTitle.Table, schema.SongLocalizedTitle.SongID, entityID,
		fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
			schema.SongLocalizedTitle.Table, schema.SongLocalizedTitle.SongID, schema.SongLocalizedTitle.LanguageID, schema.SongLocalizedTitle.Title),
		localizedTitleRows(entityID, titles),
	)
}

func creditRows(id string, credits []Credit) [][]any {
	rows := make([][]any, 0, len(credits))
	for _, c := range credits {
		rows = append(rows, []any{id, c.ArtistID, c.RoleID})
	}
	return rows
}

func insertCreditHistory(ctx context.Context, tx postgres.Tx, historyID string, credits []Credit) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
		schema.SongCreditHistory.Table, schema.SongCreditHistory.SongHistoryID, schema.SongCreditHistory.ArtistID, schema.SongCreditHistory.RoleID)
	return dbutil.BatchInsert(ctx, tx, query, creditRows(historyID, credits))
}

func selectCreditHistory(ctx context.Context, tx postgres.Tx, historyID string) ([]Credit, error) {
	query := fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s = $1",
		schema.SongCreditHistory.ArtistID, schema.SongCreditHistory.RoleID, schema.SongCreditHistory.Table, schema.SongCreditHistory.SongHistoryID)
	rows, err := tx.Query(ctx, query, historyID)
	if err != nil {
		return nil, dberr.Wrap(err, "select song credit history")
	}
	defer rows.Close()

	var out []Credit
	for rows.Next() {
		c := Credit{}
		if err := rows.Scan(&c.ArtistID, &c.RoleID); err != nil {
			return nil, dberr.Wrap(err, "scan song credit history")
		}
		out = append(out, c)
	}
	return out, nil
}

func insertCreditsLive(ctx context.Context, tx postgres.Tx, entityID string, credits []Credit) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
		schema.SongCredit.Table, schema.SongCredit.SongID, schema.SongCredit.ArtistID, schema.SongCredit.RoleID)
	return dbutil.BatchInsert(ctx, tx, query, creditRows(entityID, credits))
}

func languageRows(id string, langIDs []int) [][]any {
	rows := make([][]any, 0, len(langIDs))
	for _, l := range langIDs {
		rows = append(rows, []any{id, l})
	}
	return rows
}

func insertLanguageHistory(ctx context.Context, tx postgres.Tx, historyID string, langIDs []int) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.SongLanguageHistory.Table, schema.SongLanguageHistory.SongHistoryID, schema.SongLanguageHistory.LanguageID)
	return dbutil.BatchInsert(ctx, tx, query, languageRows(historyID, langIDs))
}

func selectLanguageHistory(ctx context.Context, tx postgres.Tx, historyID string) ([]int, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		schema.SongLanguageHistory.LanguageID, schema.SongLanguageHistory.Table, schema.SongLanguageHistory.SongHistoryID)
	rows, err := tx.Query(ctx, query, historyID)
	if err != nil {
		return nil, dberr.Wrap(err, "select song language history")
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var l int
		if err := rows.Scan(&l); err != nil {
			return nil, dberr.Wrap(err, "scan song language history")
		}
		out = append(out, l)
	}
	return out, nil
}

func insertLanguagesLive(ctx context.Context, tx postgres.Tx, entityID string, langIDs []int) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.SongLanguage.Table, schema.SongLanguage.SongID, schema.SongLanguage.LanguageID)
	return dbutil.BatchInsert(ctx, tx, query, languageRows(entityID, langIDs))
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
		schema.SongLocalizedTitleHistory.Table, schema.SongLocalizedTitleHistory.SongHistoryID,
		schema.SongLocalizedTitleHistory.LanguageID, schema.SongLocalizedTitleHistory.Title)
	return dbutil.BatchInsert(ctx, tx, query, localizedTitleRows(historyID, titles))
}

func selectLocalizedTitleHistory(ctx context.Context, tx postgres.Tx, historyID string) ([]LocalizedTitle, error) {
	query := fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s = $1",
		schema.SongLocalizedTitleHistory.LanguageID, schema.SongLocalizedTitleHistory.Title,
		schema.SongLocalizedTitleHistory.Table, schema.SongLocalizedTitleHistory.SongHistoryID)
	rows, err := tx.Query(ctx, query, historyID)
	if err != nil {
		return nil, dberr.Wrap(err, "select song localized title history")
	}
	defer rows.Close()

	var out []LocalizedTitle
	for rows.Next() {
		t := LocalizedTitle{}
		if err := rows.Scan(&t.LanguageID, &t.Title); err != nil {
			return nil, dberr.Wrap(err, "scan song localized title history")
		}
		out = append(out, t)
	}
	return out, nil
}

func insertLocalizedTitlesLive(ctx context.Context, tx postgres.Tx, entityID string, titles []LocalizedTitle) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
		schema.SongLocalizedTitle.Table, schema.SongLocalizedTitle.SongID, schema.SongLocalizedTitle.LanguageID, schema.SongLocalizedTitle.Title)
	return dbutil.BatchInsert(ctx, tx, query, localizedTitleRows(entityID, titles))
}
