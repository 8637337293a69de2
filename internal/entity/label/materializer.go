// Copyright (c) 2026 Harmonia. All rights reserved.

package label

import (
	"context"
	"fmt"
	"time"

	"github.com/harmonia-catalog/harmonia/internal/correction"
	"github.com/harmonia-catalog/harmonia/internal/entity/dbutil"
	"github.com/harmonia-catalog/harmonia/internal/platform/database/schema"
	"github.com/harmonia-catalog/harmonia/internal/platform/dberr"
	"github.com/harmonia-catalog/harmonia/internal/platform/postgres"
)

// Materializer implements [correction.Materializer] for labels.
type Materializer struct{}

// NewMaterializer constructs a label [Materializer].
func NewMaterializer() *Materializer { return &Materializer{} }

var _ correction.Materializer[Payload] = (*Materializer)(nil)

func (m *Materializer) EntityType() correction.EntityType { return correction.EntityLabel }

func (m *Materializer) Validate(ctx context.Context, p Payload) error {
	return Validate(ctx, p)
}

func (m *Materializer) CreateHistory(ctx context.Context, tx postgres.Tx, p Payload) (string, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING %s
	`,
		schema.LabelHistory.Table,
		schema.LabelHistory.Name, schema.LabelHistory.FoundedDate, schema.LabelHistory.FoundedDatePrecision,
		schema.LabelHistory.DissolvedDate, schema.LabelHistory.DissolvedDatePrecision,
		schema.LabelHistory.CreatedAt,
		schema.LabelHistory.ID,
	)

	var historyID string
	err := tx.QueryRow(ctx, query, p.Name,
		p.FoundedDate.Value, p.FoundedDate.Precision, p.DissolvedDate.Value, p.DissolvedDate.Precision,
	).Scan(&historyID)
	if err != nil {
		return "", dberr.Wrap(err, "create label history")
	}

	if err := insertFounderHistory(ctx, tx, historyID, p.FounderIDs); err != nil {
		return "", err
	}
	if err := insertLocalizedNameHistory(ctx, tx, historyID, p.LocalizedNames); err != nil {
		return "", err
	}
	return historyID, nil
}

func (m *Materializer) CreateLive(ctx context.Context, tx postgres.Tx, p Payload) (string, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s
	`,
		schema.Label.Table,
		schema.Label.Name, schema.Label.FoundedDate, schema.Label.FoundedDatePrecision,
		schema.Label.DissolvedDate, schema.Label.DissolvedDatePrecision,
		schema.Label.CreatedAt, schema.Label.UpdatedAt,
		schema.Label.ID,
	)

	var entityID string
	err := tx.QueryRow(ctx, query, p.Name,
		p.FoundedDate.Value, p.FoundedDate.Precision, p.DissolvedDate.Value, p.DissolvedDate.Precision,
	).Scan(&entityID)
	if err != nil {
		return "", dberr.Wrap(err, "create live label")
	}

	if err := insertFoundersLive(ctx, tx, entityID, p.FounderIDs); err != nil {
		return "", err
	}
	if err := insertLocalizedNamesLive(ctx, tx, entityID, p.LocalizedNames); err != nil {
		return "", err
	}
	return entityID, nil
}

type labelHistoryRecord struct {
	Name                   string
	FoundedDate            *time.Time
	FoundedDatePrecision   *DatePrecision
	DissolvedDate          *time.Time
	DissolvedDatePrecision *DatePrecision
}

func loadHistory(ctx context.Context, tx postgres.Tx, historyID string) (*labelHistoryRecord, error) {
	query := fmt.Sprintf("SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1",
		schema.LabelHistory.Name, schema.LabelHistory.FoundedDate, schema.LabelHistory.FoundedDatePrecision,
		schema.LabelHistory.DissolvedDate, schema.LabelHistory.DissolvedDatePrecision,
		schema.LabelHistory.Table, schema.LabelHistory.ID)

	h := &labelHistoryRecord{}
	err := tx.QueryRow(ctx, query, historyID).Scan(
		&h.Name, &h.FoundedDate, &h.FoundedDatePrecision, &h.DissolvedDate, &h.DissolvedDatePrecision)
	if err != nil {
		return nil, dberr.Wrap(err, "load label history")
	}
	return h, nil
}

func (m *Materializer) Reapply(ctx context.Context, tx postgres.Tx, entityID, historyID string) error {
	h, err := loadHistory(ctx, tx, historyID)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW() WHERE %s = $1
	`,
		schema.Label.Table,
		schema.Label.Name, schema.Label.FoundedDate, schema.Label.FoundedDatePrecision,
		schema.Label.DissolvedDate, schema.Label.DissolvedDatePrecision, schema.Label.UpdatedAt,
		schema.Label.ID,
	)
	tag, err := tx.Exec(ctx, query, entityID, h.Name, h.FoundedDate, h.FoundedDatePrecision, h.DissolvedDate, h.DissolvedDatePrecision)
	if err != nil {
		return dberr.Wrap(err, "update live label")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return m.applyChildrenFromHistory(ctx, tx, entityID, historyID)
}

func (m *Materializer) applyChildrenFromHistory(ctx context.Context, tx postgres.Tx, entityID, historyID string) error {
	founders, err := selectFounderHistory(ctx, tx, historyID)
	if err != nil {
		return err
	}
	if err := dbutil.ReplaceChildren(ctx, tx, schema.LabelFounder.Table, schema.LabelFounder.LabelID, entityID,
		fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)", schema.LabelFounder.Table, schema.LabelFounder.LabelID, schema.LabelFounder.ArtistID),
		founderRows(entityID, founders),
	); err != nil {
		return err
	}

	names, err := selectLocalizedNameHistory(ctx, tx, historyID)
	if err != nil {
		return err
	}
	return dbutil.ReplaceChildren(ctx, tx, schema.LabelLocalizedName.Table, schema.LabelLocalizedName.LabelID, entityID,
		fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
			schema.LabelLocalizedName.Table, schema.LabelLocalizedName.LabelID, schema.LabelLocalizedName.LanguageID, schema.LabelLocalizedName.Name),
		localizedNameRows(entityID, names),
	)
}

func founderRows(id string, founderIDs []string) [][]any {
	rows := make([][]any, 0, len(founderIDs))
	for _, f := range founderIDs {
		rows = append(rows, []any{id, f})
	}
	return rows
}

func insertFounderHistory(ctx context.Context, tx postgres.Tx, historyID string, founderIDs []string) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.LabelFounderHistory.Table, schema.LabelFounderHistory.LabelHistoryID, schema.LabelFounderHistory.ArtistID)
	return dbutil.BatchInsert(ctx, tx, query, founderRows(historyID, founderIDs))
}

func selectFounderHistory(ctx context.Context, tx postgres.Tx, historyID string) ([]string, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		schema.LabelFounderHistory.ArtistID, schema.LabelFounderHistory.Table, schema.LabelFounderHistory.LabelHistoryID)
	rows, err := tx.Query(ctx, query, historyID)
	if err != nil {
		return nil, dberr.Wrap(err, "select label founder history")
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan label founder history")
		}
		out = append(out, id)
	}
	return out, nil
}

func insertFoundersLive(ctx context.Context, tx postgres.Tx, entityID string, founderIDs []string) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.LabelFounder.Table, schema.LabelFounder.LabelID, schema.LabelFounder.ArtistID)
	return dbutil.BatchInsert(ctx, tx, query, founderRows(entityID, founderIDs))
}

func localizedNameRows(id string, names []LocalizedName) [][]any {
	rows := make([][]any, 0, len(names))
	for _, n := range names {
		rows = append(rows, []any{id, n.LanguageID, n.Name})
	}
	return rows
}

func insertLocalizedNameHistory(ctx context.Context, tx postgres.Tx, historyID string, names []LocalizedName) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
		schema.LabelLocalizedNameHistory.Table, schema.LabelLocalizedNameHistory.LabelHistoryID,
		schema.LabelLocalizedNameHistory.LanguageID, schema.LabelLocalizedNameHistory.Name)
	return dbutil.BatchInsert(ctx, tx, query, localizedNameRows(historyID, names))
}

func insertLocalizedNamesLive(ctx context.Context, tx postgres.Tx, entityID string, names []LocalizedName) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
		schema.LabelLocalizedName.Table, schema.LabelLocalizedName.LabelID, schema.LabelLocalizedName.LanguageID, schema.LabelLocalizedName.Name)
	return dbutil.BatchInsert(ctx, tx, query, localizedNameRows(entityID, names))
}
