// Copyright (c) 2026 Harmonia. All rights reserved.

package correction

import (
	"context"
	"time"

	"github.com/harmonia-catalog/harmonia/internal/platform/postgres"
)

// Store persists the three correction lifecycle tables. It knows nothing
// about entity shapes; [Engine] is responsible for all entity dispatch via
// the injected [Materializer].
type Store interface {
	// CreateCorrection inserts a new [Correction] row with the status set on c.
	CreateCorrection(ctx context.Context, tx postgres.Tx, c *Correction) error

	// CreateRevision appends a [CorrectionRevision] to an existing
	// correction. Seq must be monotonically increasing per correction.
	CreateRevision(ctx context.Context, tx postgres.Tx, rev *CorrectionRevision) error

	// GetCorrection fetches a correction by id, or [dberr.ErrNotFound].
	GetCorrection(ctx context.Context, tx postgres.Tx, id string) (*Correction, error)

	// LatestCorrectionForEntity returns the most recently created correction
	// of any status for entityType/entityID, or nil if the entity has none.
	LatestCorrectionForEntity(ctx context.Context, tx postgres.Tx, entityType EntityType, entityID string) (*Correction, error)

	// LatestRevision returns the revision a correction currently points
	// at: highest EntityHistoryID first, ties broken by highest Seq.
	LatestRevision(ctx context.Context, tx postgres.Tx, correctionID string) (*CorrectionRevision, error)

	// SetStatus transitions a correction to Approved or Rejected and
	// stamps HandledAt.
	SetStatus(ctx context.Context, tx postgres.Tx, correctionID string, status Status, handledAt time.Time) error

	// AddCorrectionUser records userID's relationship to correctionID.
	AddCorrectionUser(ctx context.Context, tx postgres.Tx, correctionID, userID string, userType UserType) error

	// IsAuthor reports whether userID authored correctionID.
	IsAuthor(ctx context.Context, tx postgres.Tx, correctionID, userID string) (bool, error)
}
