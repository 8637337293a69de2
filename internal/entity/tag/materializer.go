// Copyright (c) 2026 Harmonia. All rights reserved.

package tag

import (
	"context"
	"fmt"

	"github.com/harmonia-catalog/harmonia/internal/correction"
	"github.com/harmonia-catalog/harmonia/internal/entity/dbutil"
	"github.com/harmonia-catalog/harmonia/internal/platform/database/schema"
	"github.com/harmonia-catalog/harmonia/internal/platform/dberr"
	"github.com/harmonia-catalog/harmonia/internal/platform/postgres"
)

// Materializer implements [correction.Materializer] for tags.
type Materializer struct{}

// NewMaterializer constructs a tag [Materializer].
func NewMaterializer() *Materializer { return &Materializer{} }

var _ correction.Materializer[Payload] = (*Materializer)(nil)

func (m *Materializer) EntityType() correction.EntityType { return correction.EntityTag }

func (m *Materializer) Validate(ctx context.Context, p Payload) error {
	return Validate(ctx, p)
}

func (m *Materializer) CreateHistory(ctx context.Context, tx postgres.Tx, p Payload) (string, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING %s
	`,
		schema.TagHistory.Table,
		schema.TagHistory.Name, schema.TagHistory.Type, schema.TagHistory.ShortDescription, schema.TagHistory.Description,
		schema.TagHistory.CreatedAt,
		schema.TagHistory.ID,
	)

	var historyID string
	if err := tx.QueryRow(ctx, query, p.Name, p.TagType, p.ShortDescription, p.Description).Scan(&historyID); err != nil {
		return "", dberr.Wrap(err, "create tag history")
	}

	if err := insertAltNameHistory(ctx, tx, historyID, p.AltNames); err != nil {
		return "", err
	}
	if err := insertRelationHistory(ctx, tx, historyID, p.Relations); err != nil {
		return "", err
	}
	return historyID, nil
}

func (m *Materializer) CreateLive(ctx context.Context, tx postgres.Tx, p Payload) (string, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s
	`,
		schema.Tag.Table,
		schema.Tag.Name, schema.Tag.Type, schema.Tag.ShortDescription, schema.Tag.Description,
		schema.Tag.CreatedAt, schema.Tag.UpdatedAt,
		schema.Tag.ID,
	)

	var entityID string
	if err := tx.QueryRow(ctx, query, p.Name, p.TagType, p.ShortDescription, p.Description).Scan(&entityID); err != nil {
		return "", dberr.Wrap(err, "create live tag")
	}

	if err := insertAltNamesLive(ctx, tx, entityID, p.AltNames); err != nil {
		return "", err
	}
	if err := insertRelationsLive(ctx, tx, entityID, p.Relations); err != nil {
		return "", err
	}
	return entityID, nil
}

type tagHistoryRecord struct {
	Name             string
	TagType          Type
	ShortDescription *string
	Description      *string
}

func loadHistory(ctx context.Context, tx postgres.Tx, historyID string) (*tagHistoryRecord, error) {
	query := fmt.Sprintf("SELECT %s, %s, %s, %s FROM %s WHERE %s = $1",
		schema.TagHistory.Name, schema.TagHistory.Type, schema.TagHistory.ShortDescription, schema.TagHistory.Description,
		schema.TagHistory.Table, schema.TagHistory.ID)

	h := &tagHistoryRecord{}
	if err := tx.QueryRow(ctx, query, historyID).Scan(&h.Name, &h.TagType, &h.ShortDescription, &h.Description); err != nil {
		return nil, dberr.Wrap(err, "load tag history")
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
		schema.Tag.Table,
		schema.Tag.Name, schema.Tag.Type, schema.Tag.ShortDescription, schema.Tag.Description, schema.Tag.UpdatedAt,
		schema.Tag.ID,
	)
	tag, err := tx.Exec(ctx, query, entityID, h.Name, h.TagType, h.ShortDescription, h.Description)
	if err != nil {
		return dberr.Wrap(err, "update live tag")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return m.applyChildrenFromHistory(ctx, tx, entityID, historyID)
}

func (m *Materializer) applyChildrenFromHistory(ctx context.Context, tx postgres.Tx, entityID, historyID string) error {
	altNames, err := selectAltNameHistory(ctx, tx, historyID)
	if err != nil {
		return err
	}
	if err := dbutil.ReplaceChildren(ctx, tx, schema.TagAltName.Table, schema.TagAltName.TagID, entityID,
		fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)", schema.TagAltName.Table, schema.TagAltName.TagID, schema.TagAltName.Name),
		altNameRows(entityID, altNames),
	); err != nil {
		return err
	}

	relations, err := selectRelationHistory(ctx, tx, historyID)
	if err != nil {
		return err
	}
	if err := dbutil.ReplaceChildren(ctx, tx, schema.TagRelation.Table, schema.TagRelation.TagID, entityID,
		fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
			schema.TagRelation.Table, schema.TagRelation.TagID, schema.TagRelation.RelatedTagID, schema.TagRelation.Type),
		relationRows(entityID, relations),
	); err != nil {
		return err
	}

	return nil
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
		schema.TagAltNameHistory.Table, schema.TagAltNameHistory.TagHistoryID, schema.TagAltNameHistory.Name)
	return dbutil.BatchInsert(ctx, tx, query, altNameRows(historyID, names))
}

func selectAltNameHistory(ctx context.Context, tx postgres.Tx, historyID string) ([]string, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		schema.TagAltNameHistory.Name, schema.TagAltNameHistory.Table, schema.TagAltNameHistory.TagHistoryID)
	rows, err := tx.Query(ctx, query, historyID)
	if err != nil {
		return nil, dberr.Wrap(err, "select tag alt name history")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, dberr.Wrap(err, "scan tag alt name history")
		}
		names = append(names, n)
	}
	return names, nil
}

func insertAltNamesLive(ctx context.Context, tx postgres.Tx, entityID string, names []string) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.TagAltName.Table, schema.TagAltName.TagID, schema.TagAltName.Name)
	return dbutil.BatchInsert(ctx, tx, query, altNameRows(entityID, names))
}

func relationRows(id string, relations []Relation) [][]any {
	rows := make([][]any, 0, len(relations))
	for _, r := range relations {
		rows = append(rows, []any{id, r.RelatedTagID, r.Type})
	}
	return rows
}

func insertRelationHistory(ctx context.Context, tx postgres.Tx, historyID string, relations []Relation) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
		schema.TagRelationHistory.Table, schema.TagRelationHistory.TagHistoryID,
		schema.TagRelationHistory.RelatedTagID, schema.TagRelationHistory.Type)
	return dbutil.BatchInsert(ctx, tx, query, relationRows(historyID, relations))
}

func selectRelationHistory(ctx context.Context, tx postgres.Tx, historyID string) ([]Relation, error) {
	query := fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s = $1",
		schema.TagRelationHistory.RelatedTagID, schema.TagRelationHistory.Type,
		schema.TagRelationHistory.Table, schema.TagRelationHistory.TagHistoryID)
	rows, err := tx.Query(ctx, query, historyID)
	if err != nil {
		return nil, dberr.Wrap(err, "select tag relation history")
	}
	defer rows.Close()

	var out []Relation
	for rows.Next() {
		r := Relation{}
		if err := rows.Scan(&r.RelatedTagID, &r.Type); err != nil {
			return nil, dberr.Wrap(err, "scan tag relation history")
		}
		out = append(out, r)
	}
	return out, nil
}

func insertRelationsLive(ctx context.Context, tx postgres.Tx, entityID string, relations []Relation) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
		schema.TagRelation.Table, schema.TagRelation.TagID, schema.TagRelation.RelatedTagID, schema.TagRelation.Type)
	return dbutil.BatchInsert(ctx, tx, query, relationRows(entityID, relations))
}
