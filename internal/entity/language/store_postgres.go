// Copyright (c) 2026 Harmonia. All rights reserved.

package language

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harmonia-catalog/harmonia/internal/platform/database/schema"
	"github.com/harmonia-catalog/harmonia/internal/platform/dberr"
)

// PostgresRepository implements [Repository] against the core.language table.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a pool-backed [Repository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListLanguages(ctx context.Context) ([]*Language, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC
	`,
		schema.RefLanguage.ID, schema.RefLanguage.Code, schema.RefLanguage.Name, schema.RefLanguage.NativeName,
		schema.RefLanguage.Table,
		schema.RefLanguage.ID,
	)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list languages")
	}
	defer rows.Close()

	var langs []*Language
	for rows.Next() {
		l := &Language{}
		if err := rows.Scan(&l.ID, &l.Code, &l.Name, &l.NativeName); err != nil {
			return nil, dberr.Wrap(err, "scan language")
		}
		langs = append(langs, l)
	}
	return langs, nil
}

func (r *PostgresRepository) GetLanguage(ctx context.Context, id int) (*Language, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.RefLanguage.ID, schema.RefLanguage.Code, schema.RefLanguage.Name, schema.RefLanguage.NativeName,
		schema.RefLanguage.Table,
		schema.RefLanguage.ID,
	)

	l := &Language{}
	err := r.db.QueryRow(ctx, query, id).Scan(&l.ID, &l.Code, &l.Name, &l.NativeName)
	if err != nil {
		return nil, dberr.Wrap(err, "get language")
	}
	return l, nil
}
