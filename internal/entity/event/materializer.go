// Copyright (c) 2026 Harmonia. All rights reserved.

package event

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

// Materializer implements [correction.Materializer] for events.
type Materializer struct{}

// NewMaterializer constructs an event [Materializer].
func NewMaterializer() *Materializer { return &Materializer{} }

var _ correction.Materializer[Payload] = (*Materializer)(nil)

func (m *Materializer) EntityType() correction.EntityType { return correction.EntityEvent }

func (m *Materializer) Validate(ctx context.Context, p Payload) error {
	return Validate(ctx, p)
}

func (m *Materializer) CreateHistory(ctx context.Context, tx postgres.Tx, p Payload) (string, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING %s
	`,
		schema.EventHistory.Table,
		schema.EventHistory.Name, schema.EventHistory.ShortDescription, schema.EventHistory.Description,
		schema.EventHistory.StartDate, schema.EventHistory.StartDatePrecision,
		schema.EventHistory.EndDate, schema.EventHistory.EndDatePrecision,
		schema.EventHistory.CreatedAt,
		schema.EventHistory.ID,
	)

	var historyID string
	err := tx.QueryRow(ctx, query, p.Name, p.ShortDescription, p.Description,
		p.StartDate.Value, p.StartDate.Precision, p.EndDate.Value, p.EndDate.Precision,
	).Scan(&historyID)
	if err != nil {
		return "", dberr.Wrap(err, "create event history")
	}

	if err := insertAltNameHistory(ctx, tx, historyID, p.AlternativeNames); err != nil {
		return "", err
	}
	return historyID, nil
}

func (m *Materializer) CreateLive(ctx context.Context, tx postgres.Tx, p Payload) (string, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s
	`,
		schema.Event.Table,
		schema.Event.Name, schema.Event.ShortDescription, schema.Event.Description,
		schema.Event.StartDate, schema.Event.StartDatePrecision,
		schema.Event.EndDate, schema.Event.EndDatePrecision,
		schema.Event.CreatedAt, schema.Event.UpdatedAt,
		schema.Event.ID,
	)

	var entityID string
	err := tx.QueryRow(ctx, query, p.Name, p.ShortDescription, p.Description,
		p.StartDate.Value, p.StartDate.Precision, p.EndDate.Value, p.EndDate.Precision,
	).Scan(&entityID)
	if err != nil {
		return "", dberr.Wrap(err, "create live event")
	}

	if err := insertAltNamesLive(ctx, tx, entityID, p.AlternativeNames); err != nil {
		return "", err
	}
	return entityID, nil
}

type eventHistoryRecord struct {
	Name               string
	ShortDescription   *string
	Description        *string
	StartDate          *time.Time
	StartDatePrecision *DatePrecision
	EndDate            *time.Time
	EndDatePrecision   *DatePrecision
}

func loadHistory(ctx context.Context, tx postgres.Tx, historyID string) (*eventHistoryRecord, error) {
	query := fmt.Sprintf("SELECT %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1",
		schema.EventHistory.Name, schema.EventHistory.ShortDescription, schema.EventHistory.Description,
		schema.EventHistory.StartDate, schema.EventHistory.StartDatePrecision,
		schema.EventHistory.EndDate, schema.EventHistory.EndDatePrecision,
		schema.EventHistory.Table, schema.EventHistory.ID)

	h := &eventHistoryRecord{}
	err := tx.QueryRow(ctx, query, historyID).Scan(
		&h.Name, &h.ShortDescription, &h.Description,
		&h.StartDate, &h.StartDatePrecision, &h.EndDate, &h.EndDatePrecision)
	if err != nil {
		return nil, dberr.Wrap(err, "load event history")
	}
	return h, nil
}

func (m *Materializer) Reapply(ctx context.Context, tx postgres.Tx, entityID, historyID string) error {
	h, err := loadHistory(ctx, tx, historyID)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = NOW()
		WHERE %s = $1
	`,
		schema.Event.Table,
		schema.Event.Name, schema.Event.ShortDescription, schema.Event.Description,
		schema.Event.StartDate, schema.Event.StartDatePrecision,
		schema.Event.EndDate, schema.Event.EndDatePrecision, schema.Event.UpdatedAt,
		schema.Event.ID,
	)
	tag, err := tx.Exec(ctx, query, entityID, h.Name, h.ShortDescription, h.Description,
		h.StartDate, h.StartDatePrecision, h.EndDate, h.EndDatePrecision)
	if err != nil {
		return dberr.Wrap(err, "update live event")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return m.applyChildrenFromHistory(ctx, tx, entityID, historyID)
}

func (m *Materializer) applyChildrenFromHistory(ctx context.Context, tx postgres.Tx, entityID, historyID string) error {
	names, err := selectAltNameHistory(ctx, tx, historyID)
	if err != nil {
		return err
	}
	return dbutil.ReplaceChildren(ctx, tx, schema.EventAlternativeName.Table, schema.EventAlternativeName.EventID, entityID,
		fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)", schema.EventAlternativeName.Table, schema.EventAlternativeName.EventID, schema.EventAlternativeName.Name),
		altNameRows(entityID, names),
	)
}

func altNameRows(id string, names []string) [][]any {
	rows := make([][]any, 0, len(names))
	for _, n := range names {
		rows = append(rows, []any{id, n})
	}
	return rows
}

func insertAltNameHistory(ctx context.Context, tx postgres.Tx, historyID string, names []string) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.EventAlternativeNameHistory.Table, schema.EventAlternativeNameHistory.EventHistoryID, schema.EventAlternativeNameHistory.Name)
	return dbutil.BatchInsert(ctx, tx, query, altNameRows(historyID, names))
}

func selectAltNameHistory(ctx context.Context, tx postgres.Tx, historyID string) ([]string, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		schema.EventAlternativeNameHistory.Name, schema.EventAlternativeNameHistory.Table, schema.EventAlternativeNameHistory.EventHistoryID)
	rows, err := tx.Query(ctx, query, historyID)
	if err != nil {
		return nil, dberr.Wrap(err, "select event alternative name history")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, dberr.Wrap(err, "scan event alternative name history")
		}
		names = append(names, n)
	}
	return names, nil
}

func insertAltNamesLive(ctx context.Context, tx postgres.Tx, entityID string, names []string) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.EventAlternativeName.Table, schema.EventAlternativeName.EventID, schema.EventAlternativeName.Name)
	return dbutil.BatchInsert(ctx, tx, query, altNameRows(entityID, names))
}
