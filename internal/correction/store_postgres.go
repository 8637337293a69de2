// Copyright (c) 2026 Harmonia. All rights reserved.

package correction

import (
	"context"
	"fmt"
	"time"

	"github.com/harmonia-catalog/harmonia/internal/platform/database/schema"
	"github.com/harmonia-catalog/harmonia/internal/platform/dberr"
	"github.com/harmonia-catalog/harmonia/internal/platform/postgres"
)

// pgStore implements [Store] against the correction.* tables.
type pgStore struct{}

// NewPostgresStore constructs a pgx-backed [Store]. It holds no state of
// its own — every call is scoped to the [postgres.Tx] passed in, threading
// a transaction explicitly rather than storing one on the repository.
func NewPostgresStore() Store {
	return &pgStore{}
}

func (s *pgStore) CreateCorrection(ctx context.Context, tx postgres.Tx, c *Correction) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
	`,
		schema.Correction.Table,
		schema.Correction.ID, schema.Correction.Status, schema.Correction.Type,
		schema.Correction.EntityType, schema.Correction.EntityID,
		schema.Correction.CreatedAt, schema.Correction.HandledAt,
	)
	_, err := tx.Exec(ctx, query, c.ID, c.Status, c.Type, c.EntityType, c.EntityID, c.CreatedAt, c.HandledAt)
	if err != nil {
		return dberr.Wrap(err, "create correction")
	}
	return nil
}

func (s *pgStore) CreateRevision(ctx context.Context, tx postgres.Tx, rev *CorrectionRevision) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, (
			SELECT COALESCE(MAX(%s), 0) + 1 FROM %s WHERE %s = $1
		), $5)
	`,
		schema.CorrectionRevision.Table,
		schema.CorrectionRevision.CorrectionID, schema.CorrectionRevision.EntityHistoryID,
		schema.CorrectionRevision.AuthorID, schema.CorrectionRevision.Description,
		schema.CorrectionRevision.Seq, schema.CorrectionRevision.Table, schema.CorrectionRevision.CorrectionID,
		schema.CorrectionRevision.CreatedAt,
	)
	_, err := tx.Exec(ctx, query, rev.CorrectionID, rev.EntityHistoryID, rev.AuthorID, rev.Description, rev.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create correction revision")
	}
	return nil
}

func (s *pgStore) GetCorrection(ctx context.Context, tx postgres.Tx, id string) (*Correction, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, COALESCE(%s, ''), %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Correction.ID, schema.Correction.Status, schema.Correction.Type,
		schema.Correction.EntityType, schema.Correction.EntityID,
		schema.Correction.CreatedAt, schema.Correction.HandledAt,
		schema.Correction.Table, schema.Correction.ID,
	)
	c := &Correction{}
	err := tx.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Status, &c.Type, &c.EntityType, &c.EntityID, &c.CreatedAt, &c.HandledAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get correction")
	}
	return c, nil
}

func (s *pgStore) LatestCorrectionForEntity(ctx context.Context, tx postgres.Tx, entityType EntityType, entityID string) (*Correction, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, COALESCE(%s, ''), %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
		ORDER BY %s DESC, %s DESC
		LIMIT 1
	`,
		schema.Correction.ID, schema.Correction.Status, schema.Correction.Type,
		schema.Correction.EntityType, schema.Correction.EntityID,
		schema.Correction.CreatedAt, schema.Correction.HandledAt,
		schema.Correction.Table,
		schema.Correction.EntityType, schema.Correction.EntityID,
		schema.Correction.CreatedAt, schema.Correction.ID,
	)
	c := &Correction{}
	err := tx.QueryRow(ctx, query, entityType, entityID).Scan(
		&c.ID, &c.Status, &c.Type, &c.EntityType, &c.EntityID, &c.CreatedAt, &c.HandledAt,
	)
	if err != nil {
		wrapped := dberr.Wrap(err, "latest correction for entity")
		if wrapped == dberr.ErrNotFound {
			return nil, nil
		}
		return nil, wrapped
	}
	return c, nil
}

func (s *pgStore) LatestRevision(ctx context.Context, tx postgres.Tx, correctionID string) (*CorrectionRevision, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC, %s DESC
		LIMIT 1
	`,
		schema.CorrectionRevision.CorrectionID, schema.CorrectionRevision.EntityHistoryID,
		schema.CorrectionRevision.AuthorID, schema.CorrectionRevision.Description,
		schema.CorrectionRevision.Seq, schema.CorrectionRevision.CreatedAt,
		schema.CorrectionRevision.Table, schema.CorrectionRevision.CorrectionID,
		schema.CorrectionRevision.EntityHistoryID, schema.CorrectionRevision.Seq,
	)
	rev := &CorrectionRevision{}
	err := tx.QueryRow(ctx, query, correctionID).Scan(
		&rev.CorrectionID, &rev.EntityHistoryID, &rev.AuthorID, &rev.Description, &rev.Seq, &rev.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "latest correction revision")
	}
	return rev, nil
}

func (s *pgStore) SetStatus(ctx context.Context, tx postgres.Tx, correctionID string, status Status, handledAt time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1
	`,
		schema.Correction.Table, schema.Correction.Status, schema.Correction.HandledAt, schema.Correction.ID,
	)
	tag, err := tx.Exec(ctx, query, correctionID, status, handledAt)
	if err != nil {
		return dberr.Wrap(err, "set correction status")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (s *pgStore) AddCorrectionUser(ctx context.Context, tx postgres.Tx, correctionID, userID string, userType UserType) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`,
		schema.CorrectionUser.Table,
		schema.CorrectionUser.CorrectionID, schema.CorrectionUser.UserID, schema.CorrectionUser.UserType,
	)
	_, err := tx.Exec(ctx, query, correctionID, userID, userType)
	if err != nil {
		return dberr.Wrap(err, "add correction user")
	}
	return nil
}

func (s *pgStore) IsAuthor(ctx context.Context, tx postgres.Tx, correctionID, userID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3
		)
	`,
		schema.CorrectionUser.Table,
		schema.CorrectionUser.CorrectionID, schema.CorrectionUser.UserID, schema.CorrectionUser.UserType,
	)
	var exists bool
	if err := tx.QueryRow(ctx, query, correctionID, userID, UserTypeAuthor).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check correction authorship")
	}
	return exists, nil
}
