// Copyright (c) 2026 Harmonia. All rights reserved.

package image

import (
	"context"
	"time"

	"github.com/harmonia-catalog/harmonia/internal/platform/postgres"
)

// Store persists Image rows, their References, and the moderation Queue.
// Like [correction.Store], it knows nothing beyond these three tables —
// [Service] owns all orchestration.
type Store interface {
	// FindImageByFilename looks up an existing [Image] by its
	// content-derived filename, or returns nil if none exists yet.
	FindImageByFilename(ctx context.Context, tx postgres.Tx, filename string) (*Image, error)

	// GetImage fetches an image by id, or [dberr.ErrNotFound].
	GetImage(ctx context.Context, tx postgres.Tx, id string) (*Image, error)

	// CreateImage inserts a brand-new [Image] row.
	CreateImage(ctx context.Context, tx postgres.Tx, img *Image) error

	// DeleteImage removes an [Image] row once it has no remaining
	// references.
	DeleteImage(ctx context.Context, tx postgres.Tx, id string) error

	// CreateReference inserts a new [Reference] row.
	CreateReference(ctx context.Context, tx postgres.Tx, ref *Reference) error

	// GetReference fetches a reference by id, or [dberr.ErrNotFound].
	GetReference(ctx context.Context, tx postgres.Tx, id string) (*Reference, error)

	// DeleteReference removes a reference row.
	DeleteReference(ctx context.Context, tx postgres.Tx, id string) error

	// CountReferences reports how many [Reference] rows still point at
	// imageID.
	CountReferences(ctx context.Context, tx postgres.Tx, imageID string) (int, error)

	// CreateQueueEntry inserts a new, Pending [Queue] row.
	CreateQueueEntry(ctx context.Context, tx postgres.Tx, q *Queue) error

	// GetQueueEntry fetches a queue entry by id, or [dberr.ErrNotFound].
	GetQueueEntry(ctx context.Context, tx postgres.Tx, id string) (*Queue, error)

	// SetQueueHandled stamps a terminal Approve/Reject/Cancel decision.
	SetQueueHandled(ctx context.Context, tx postgres.Tx, id string, status Status, handledAt time.Time, handledBy string) error

	// SetQueueReverted stamps a Revert decision on a previously Approved
	// entry.
	SetQueueReverted(ctx context.Context, tx postgres.Tx, id string, revertedAt time.Time, revertedBy string) error
}
