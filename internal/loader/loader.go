// Copyright (c) 2026 Harmonia. All rights reserved.

/*
Package loader provides the read-side projection helpers every entity's
hydration query shares: batched N+1-free child-relation loading, a
time-cursor pagination helper, and (in search.go) trigram keyword
ranking. It generalizes a `json_agg` sub-select technique into a
reusable, entity-agnostic shape instead of hand-rolling one aggregation
sub-query per parent+child pair.
*/
package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/harmonia-catalog/harmonia/internal/platform/dberr"
	"github.com/harmonia-catalog/harmonia/internal/platform/postgres"
)

// RowScanner reads one row of a child-relation result set into a
// parent id and the associated child value.
type RowScanner[C any] func(rows interface{ Scan(dest ...any) error }) (parentID string, child C, err error)

// BatchChildren fetches every row of table whose parentCol is one of
// parentIDs in a single round trip and groups the results by parent id,
// keeping a many-to-one or many-to-many child relation to at most two
// round trips total (the caller's own parent-row query is the first
// trip; this is the second).
//
// columns is the full SELECT list, parentCol included; scan must read
// columns in that order and return which parent the row belongs to.
func BatchChildren[C any](ctx context.Context, tx postgres.Tx, table string, parentCol string, columns []string, parentIDs []string, scan RowScanner[C]) (map[string][]C, error) {
	out := make(map[string][]C, len(parentIDs))
	if len(parentIDs) == 0 {
		return out, nil
	}

	selectList := ""
	for i, c := range columns {
		if i > 0 {
			selectList += ", "
		}
		selectList += c
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ANY($1)", selectList, table, parentCol)

	rows, err := tx.Query(ctx, query, parentIDs)
	if err != nil {
		return nil, dberr.Wrap(err, fmt.Sprintf("batch load children of %s", table))
	}
	defer rows.Close()

	for rows.Next() {
		parentID, child, err := scan(rows)
		if err != nil {
			return nil, dberr.Wrap(err, fmt.Sprintf("scan child row of %s", table))
		}
		out[parentID] = append(out[parentID], child)
	}
	return out, nil
}

// Cursor is a time-ordered pagination request: return rows created
// strictly after After (nil means start from the beginning), capped at
// Limit rows.
type Cursor struct {
	After *time.Time
	Limit int
}

// Page is one page of time-ordered results. NextCursor is set only when
// the page was full, signaling there may be more rows; an empty or
// partial page means the caller has reached the end.
type Page[T any] struct {
	Items      []T
	NextCursor *time.Time
}

// NewPage builds a [Page] from a full result slice and the function that
// extracts each item's created_at. next_cursor is last.created_at only
// when the page is full (len(items) == cur.Limit), otherwise nil.
func NewPage[T any](items []T, cur Cursor, createdAt func(T) time.Time) Page[T] {
	page := Page[T]{Items: items}
	if cur.Limit > 0 && len(items) == cur.Limit {
		last := createdAt(items[len(items)-1])
		page.NextCursor = &last
	}
	return page
}
