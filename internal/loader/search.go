// Copyright (c) 2026 Harmonia. All rights reserved.

package loader

import (
	"context"
	"fmt"

	"github.com/harmonia-catalog/harmonia/internal/platform/dberr"
	"github.com/harmonia-catalog/harmonia/internal/platform/postgres"
)

// SearchByTrigram ranks table by lowercase trigram similarity of column
// against query, ordering ascending by trigram distance and returning up
// to limit matching ids. Requires the pg_trgm extension and, ideally, a
// GIN/GiST trigram index on lower(column) for production-sized tables.
func SearchByTrigram(ctx context.Context, tx postgres.Tx, table, idColumn, column, query string, limit int) ([]string, error) {
	sql := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE lower(%s) %% lower($1)
		ORDER BY lower(%s) <-> lower($1) ASC
		LIMIT $2
	`, idColumn, table, column, column)

	rows, err := tx.Query(ctx, sql, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, fmt.Sprintf("trigram search %s", table))
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan trigram search result")
		}
		out = append(out, id)
	}
	return out, nil
}
