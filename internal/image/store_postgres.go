// Copyright (c) 2026 Harmonia. All rights reserved.

package image

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/harmonia-catalog/harmonia/internal/platform/database/schema"
	"github.com/harmonia-catalog/harmonia/internal/platform/dberr"
	"github.com/harmonia-catalog/harmonia/internal/platform/postgres"
)

// pgStore implements [Store] against the media.* tables.
type pgStore struct{}

// NewPostgresStore constructs a pgx-backed [Store].
func NewPostgresStore() Store {
	return &pgStore{}
}

func (s *pgStore) FindImageByFilename(ctx context.Context, tx postgres.Tx, filename string) (*Image, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Image.ID, schema.Image.Hash, schema.Image.Filename, schema.Image.Extension, schema.Image.CreatedAt,
		schema.Image.Table, schema.Image.Filename,
	)
	img := &Image{}
	err := tx.QueryRow(ctx, query, filename).Scan(&img.ID, &img.Hash, &img.Filename, &img.Extension, &img.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "find image by filename")
	}
	return img, nil
}

func (s *pgStore) GetImage(ctx context.Context, tx postgres.Tx, id string) (*Image, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Image.ID, schema.Image.Hash, schema.Image.Filename, schema.Image.Extension, schema.Image.CreatedAt,
		schema.Image.Table, schema.Image.ID,
	)
	img := &Image{}
	err := tx.QueryRow(ctx, query, id).Scan(&img.ID, &img.Hash, &img.Filename, &img.Extension, &img.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get image")
	}
	return img, nil
}

func (s *pgStore) CreateImage(ctx context.Context, tx postgres.Tx, img *Image) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
	`,
		schema.Image.Table,
		schema.Image.ID, schema.Image.Hash, schema.Image.Filename, schema.Image.Extension, schema.Image.CreatedAt,
	)
	_, err := tx.Exec(ctx, query, img.ID, img.Hash, img.Filename, img.Extension, img.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create image")
	}
	return nil
}

func (s *pgStore) DeleteImage(ctx context.Context, tx postgres.Tx, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.Image.Table, schema.Image.ID)
	if _, err := tx.Exec(ctx, query, id); err != nil {
		return dberr.Wrap(err, "delete image")
	}
	return nil
}

func (s *pgStore) CreateReference(ctx context.Context, tx postgres.Tx, ref *Reference) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		schema.ImageReference.Table,
		schema.ImageReference.ID, schema.ImageReference.ImageID, schema.ImageReference.EntityType,
		schema.ImageReference.EntityID, schema.ImageReference.Usage, schema.ImageReference.CreatedAt,
	)
	_, err := tx.Exec(ctx, query, ref.ID, ref.ImageID, ref.EntityType, ref.EntityID, ref.Usage, ref.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create image reference")
	}
	return nil
}

func (s *pgStore) GetReference(ctx context.Context, tx postgres.Tx, id string) (*Reference, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.ImageReference.ID, schema.ImageReference.ImageID, schema.ImageReference.EntityType,
		schema.ImageReference.EntityID, schema.ImageReference.Usage, schema.ImageReference.CreatedAt,
		schema.ImageReference.Table, schema.ImageReference.ID,
	)
	ref := &Reference{}
	err := tx.QueryRow(ctx, query, id).Scan(
		&ref.ID, &ref.ImageID, &ref.EntityType, &ref.EntityID, &ref.Usage, &ref.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get image reference")
	}
	return ref, nil
}

func (s *pgStore) DeleteReference(ctx context.Context, tx postgres.Tx, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.ImageReference.Table, schema.ImageReference.ID)
	if _, err := tx.Exec(ctx, query, id); err != nil {
		return dberr.Wrap(err, "delete image reference")
	}
	return nil
}

func (s *pgStore) CountReferences(ctx context.Context, tx postgres.Tx, imageID string) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = $1", schema.ImageReference.Table, schema.ImageReference.ImageID)
	var count int
	if err := tx.QueryRow(ctx, query, imageID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count image references")
	}
	return count, nil
}

func (s *pgStore) CreateQueueEntry(ctx context.Context, tx postgres.Tx, q *Queue) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		schema.ImageQueue.Table,
		schema.ImageQueue.ID, schema.ImageQueue.ImageID, schema.ImageQueue.EntityType, schema.ImageQueue.EntityID,
		schema.ImageQueue.Usage, schema.ImageQueue.Status, schema.ImageQueue.UploaderID, schema.ImageQueue.CreatedAt,
	)
	_, err := tx.Exec(ctx, query, q.ID, q.ImageID, q.EntityType, q.EntityID, q.Usage, q.Status, q.UploaderID, q.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create image queue entry")
	}
	return nil
}

func (s *pgStore) GetQueueEntry(ctx context.Context, tx postgres.Tx, id string) (*Queue, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.ImageQueue.ID, schema.ImageQueue.ImageID, schema.ImageQueue.EntityType, schema.ImageQueue.EntityID,
		schema.ImageQueue.Usage, schema.ImageQueue.Status, schema.ImageQueue.UploaderID, schema.ImageQueue.CreatedAt,
		schema.ImageQueue.HandledAt, schema.ImageQueue.HandledBy, schema.ImageQueue.RevertedAt, schema.ImageQueue.RevertedBy,
		schema.ImageQueue.Table, schema.ImageQueue.ID,
	)
	q := &Queue{}
	err := tx.QueryRow(ctx, query, id).Scan(
		&q.ID, &q.ImageID, &q.EntityType, &q.EntityID, &q.Usage, &q.Status, &q.UploaderID, &q.CreatedAt,
		&q.HandledAt, &q.HandledBy, &q.RevertedAt, &q.RevertedBy,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get image queue entry")
	}
	return q, nil
}

func (s *pgStore) SetQueueHandled(ctx context.Context, tx postgres.Tx, id string, status Status, handledAt time.Time, handledBy string) error {
	query := fmt.Sprintf(
		"UPDATE %s SET %s = $2, %s = $3, %s = $4 WHERE %s = $1",
		schema.ImageQueue.Table, schema.ImageQueue.Status, schema.ImageQueue.HandledAt, schema.ImageQueue.HandledBy, schema.ImageQueue.ID,
	)
	if _, err := tx.Exec(ctx, query, id, status, handledAt, handledBy); err != nil {
		return dberr.Wrap(err, "set image queue handled")
	}
	return nil
}

func (s *pgStore) SetQueueReverted(ctx context.Context, tx postgres.Tx, id string, revertedAt time.Time, revertedBy string) error {
	query := fmt.Sprintf(
		"UPDATE %s SET %s = $2, %s = $3, %s = $4 WHERE %s = $1",
		schema.ImageQueue.Table, schema.ImageQueue.Status, schema.ImageQueue.RevertedAt, schema.ImageQueue.RevertedBy, schema.ImageQueue.ID,
	)
	if _, err := tx.Exec(ctx, query, id, StatusReverted, revertedAt, revertedBy); err != nil {
		return dberr.Wrap(err, "set image queue reverted")
	}
	return nil
}
