// Copyright (c) 2026 Harmonia. All rights reserved.

package correction

import (
	"context"

	"github.com/harmonia-catalog/harmonia/internal/platform/postgres"
)

// Materializer is the capability set an [Engine] dispatches to for one
// entity kind T. There is no common base type across entity kinds; the
// engine holds only EntityType() as a runtime tag and otherwise treats T
// opaquely — dispatch happens on the entity-type tag, with no virtual
// inheritance required.
type Materializer[T any] interface {
	// EntityType identifies which [EntityType] this materializer serves.
	EntityType() EntityType

	// Validate checks payload against the entity's invariants (required
	// fields, referential sanity, domain-specific rules such as artist
	// tenure ordering). It must not touch the database.
	Validate(ctx context.Context, payload T) error

	// CreateHistory inserts an immutable history snapshot of payload and
	// its child relations, returning the new history row's id. It never
	// touches the live tables.
	CreateHistory(ctx context.Context, tx postgres.Tx, payload T) (historyID string, err error)

	// CreateLive inserts payload into the live tables, returning the new
	// live entity's id. It runs for every propose_create regardless of
	// the author's privilege; only the enclosing Correction's Status
	// distinguishes an auto-approved creation from a pending one.
	CreateLive(ctx context.Context, tx postgres.Tx, payload T) (entityID string, err error)

	// Reapply re-derives an existing live entity and all of its child
	// relations from the given history snapshot, following the
	// delete-all-then-reinsert-from-history protocol. historyID must
	// name a row previously returned by CreateHistory.
	Reapply(ctx context.Context, tx postgres.Tx, entityID, historyID string) error
}
