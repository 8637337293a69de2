// Copyright (c) 2026 Harmonia. All rights reserved.

/*
Package dbutil collects the small transaction-scoped helpers every entity
materializer in internal/entity/* needs, generalizing a "clear and
insert" junction-refresh strategy so each materializer does not
reimplement it.
*/
package dbutil

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/harmonia-catalog/harmonia/internal/platform/postgres"
)

// DeleteAll removes every row of table referencing parentID through
// parentCol. It is the first half of the delete-all-then-reinsert-from-
// history protocol required for every child relation during reapply,
// and is also used live-side to refresh a junction before a batch
// insert.
func DeleteAll(ctx context.Context, tx postgres.Tx, table, parentCol, parentID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", table, parentCol)
	if _, err := tx.Exec(ctx, query, parentID); err != nil {
		return fmt.Errorf("dbutil: failed to clear %s: %w", table, err)
	}
	return nil
}

// BatchInsert queues one INSERT per row using insertSQL and dispatches
// them as a single [pgx.Batch], generalizing a bulk-insert junction
// strategy to any column count (not just two-column junction tables).
// A nil or empty rows is a no-op.
func BatchInsert(ctx context.Context, tx postgres.Tx, insertSQL string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(insertSQL, row...)
	}

	results := tx.SendBatch(ctx, batch)
	if err := results.Close(); err != nil {
		return fmt.Errorf("dbutil: batch insert failed: %w", err)
	}
	return nil
}

// ReplaceChildren is DeleteAll followed by BatchInsert, the full
// clear-and-insert cycle used both for live-side junction refresh on
// update and for reapply's delete-all-for-parent-then-reinsert-from-
// history step.
func ReplaceChildren(ctx context.Context, tx postgres.Tx, table, parentCol, parentID, insertSQL string, rows [][]any) error {
	if err := DeleteAll(ctx, tx, table, parentCol, parentID); err != nil {
		return err
	}
	return BatchInsert(ctx, tx, insertSQL, rows)
}

// NormalizePair orders an unordered symmetric pair (e.g. two sides of an
// artist alias) so that it is always stored and looked up as (min, max),
// regardless of argument order.
func NormalizePair(a, b string) (min, max string) {
	if a <= b {
		return a, b
	}
	return b, a
}
