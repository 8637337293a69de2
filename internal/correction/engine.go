// Copyright (c) 2026 Harmonia. All rights reserved.

package correction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/harmonia-catalog/harmonia/internal/platform/apperr"
	"github.com/harmonia-catalog/harmonia/internal/platform/postgres"
	"github.com/harmonia-catalog/harmonia/internal/platform/sec"
	"github.com/harmonia-catalog/harmonia/pkg/pointer"
	"github.com/harmonia-catalog/harmonia/pkg/uuidv7"
)

// Engine orchestrates the propose/approve/reject lifecycle for one entity
// kind T, dispatching entity-shape work to a [Materializer] and its own
// lifecycle-table bookkeeping to a [Store]. One Engine is instantiated per
// entity kind at wiring time; there is no runtime plugin registry.
type Engine[T any] struct {
	materializer Materializer[T]
	store        Store
	roles        sec.RoleChecker
	txm          postgres.TxRunner
	logger       *slog.Logger
}

// NewEngine constructs an Engine for one entity kind.
func NewEngine[T any](materializer Materializer[T], store Store, roles sec.RoleChecker, txm postgres.TxRunner, logger *slog.Logger) *Engine[T] {
	return &Engine[T]{
		materializer: materializer,
		store:        store,
		roles:        roles,
		txm:          txm,
		logger:       logger.With("entity_type", string(materializer.EntityType())),
	}
}

// ProposeCreate validates and proposes a brand-new entity. The live entity
// is always materialized in the same transaction as the history snapshot,
// so its latest revision's history snapshot equals the live projection
// from the moment it is returned, whether or not the author is privileged.
// Privileged authors are additionally auto-approved; everyone else's
// proposal is left Pending against the now-existing live entity.
func (e *Engine[T]) ProposeCreate(ctx context.Context, payload T, authorID, description string) (entityID string, err error) {
	if err := e.materializer.Validate(ctx, payload); err != nil {
		return "", err
	}

	privileged, err := e.roles.IsPrivileged(ctx, authorID)
	if err != nil {
		return "", fmt.Errorf("correction: checking author privilege: %w", err)
	}

	status := StatusPending
	if privileged {
		status = StatusApproved
	}

	correctionID := uuidv7.New()
	now := time.Now()

	err = e.txm.Run(ctx, func(tx postgres.Tx) error {
		historyID, err := e.materializer.CreateHistory(ctx, tx, payload)
		if err != nil {
			return fmt.Errorf("correction: creating history snapshot: %w", err)
		}

		entityID, err = e.materializer.CreateLive(ctx, tx, payload)
		if err != nil {
			return fmt.Errorf("correction: creating live entity: %w", err)
		}

		c := &Correction{
			ID:         correctionID,
			Status:     status,
			Type:       TypeCreate,
			EntityType: e.materializer.EntityType(),
			EntityID:   entityID,
			CreatedAt:  now,
		}
		if privileged {
			c.HandledAt = pointer.To(now)
		}
		if err := e.store.CreateCorrection(ctx, tx, c); err != nil {
			return fmt.Errorf("correction: recording correction: %w", err)
		}

		rev := &CorrectionRevision{
			CorrectionID:    correctionID,
			EntityHistoryID: historyID,
			AuthorID:        authorID,
			Description:     description,
			CreatedAt:       now,
		}
		if err := e.store.CreateRevision(ctx, tx, rev); err != nil {
			return fmt.Errorf("correction: recording revision: %w", err)
		}

		if err := e.store.AddCorrectionUser(ctx, tx, correctionID, authorID, UserTypeAuthor); err != nil {
			return fmt.Errorf("correction: recording author: %w", err)
		}
		if privileged {
			if err := e.store.AddCorrectionUser(ctx, tx, correctionID, authorID, UserTypeApprover); err != nil {
				return fmt.Errorf("correction: recording auto-approver: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	e.logger.Info("correction proposed", "operation", "create", "correction_id", correctionID, "status", status, "entity_id", entityID)
	return entityID, nil
}

// ProposeUpdate proposes a change to an existing entity.
//
// If the entity's latest correction is Pending, the author (who must be
// the original author or hold a privileged role) appends a new revision
// to that same correction — an iterative edit of an un-reviewed proposal.
// If the latest correction is terminal (Approved or Rejected), a brand
// new Pending correction is opened instead.
func (e *Engine[T]) ProposeUpdate(ctx context.Context, entityID string, payload T, authorID, description string) error {
	if err := e.materializer.Validate(ctx, payload); err != nil {
		return err
	}

	entityType := e.materializer.EntityType()
	now := time.Now()

	return e.txm.Run(ctx, func(tx postgres.Tx) error {
		latest, err := e.store.LatestCorrectionForEntity(ctx, tx, entityType, entityID)
		if err != nil {
			return fmt.Errorf("correction: loading latest correction: %w", err)
		}
		if latest == nil {
			return apperr.NotFound("Correction")
		}

		historyID, err := e.materializer.CreateHistory(ctx, tx, payload)
		if err != nil {
			return fmt.Errorf("correction: creating history snapshot: %w", err)
		}

		if latest.IsPending() {
			isAuthor, err := e.store.IsAuthor(ctx, tx, latest.ID, authorID)
			if err != nil {
				return fmt.Errorf("correction: checking authorship: %w", err)
			}
			privileged, err := e.roles.IsPrivileged(ctx, authorID)
			if err != nil {
				return fmt.Errorf("correction: checking author privilege: %w", err)
			}
			if !isAuthor && !privileged {
				return apperr.Unauthorized("only the proposal's author or a privileged user may revise it")
			}

			rev := &CorrectionRevision{
				CorrectionID:    latest.ID,
				EntityHistoryID: historyID,
				AuthorID:        authorID,
				Description:     description,
				CreatedAt:       now,
			}
			if err := e.store.CreateRevision(ctx, tx, rev); err != nil {
				return fmt.Errorf("correction: recording revision: %w", err)
			}
			return nil
		}

		correctionID := uuidv7.New()
		c := &Correction{
			ID:         correctionID,
			Status:     StatusPending,
			Type:       TypeUpdate,
			EntityType: entityType,
			EntityID:   entityID,
			CreatedAt:  now,
		}
		if err := e.store.CreateCorrection(ctx, tx, c); err != nil {
			return fmt.Errorf("correction: recording correction: %w", err)
		}

		rev := &CorrectionRevision{
			CorrectionID:    correctionID,
			EntityHistoryID: historyID,
			AuthorID:        authorID,
			Description:     description,
			CreatedAt:       now,
		}
		if err := e.store.CreateRevision(ctx, tx, rev); err != nil {
			return fmt.Errorf("correction: recording revision: %w", err)
		}

		return e.store.AddCorrectionUser(ctx, tx, correctionID, authorID, UserTypeAuthor)
	})
}

// Approve reapplies the latest revision's history snapshot onto the live
// entity and marks the correction Approved.
func (e *Engine[T]) Approve(ctx context.Context, correctionID, approverID string) error {
	privileged, err := e.roles.IsPrivileged(ctx, approverID)
	if err != nil {
		return fmt.Errorf("correction: checking approver privilege: %w", err)
	}
	if !privileged {
		return apperr.Unauthorized("only a privileged user may approve a correction")
	}

	now := time.Now()

	return e.txm.Run(ctx, func(tx postgres.Tx) error {
		c, err := e.store.GetCorrection(ctx, tx, correctionID)
		if err != nil {
			return err
		}
		if !c.IsPending() {
			return apperr.InvalidState("correction is not pending")
		}

		rev, err := e.store.LatestRevision(ctx, tx, correctionID)
		if err != nil {
			return fmt.Errorf("correction: loading latest revision: %w", err)
		}

		// The live entity already exists from propose_create; approving a
		// Create-type correction only needs to reapply its latest revision,
		// same as an Update. When revisions were appended while it was
		// Pending, the reapply writes the latest one onto the live entity.
		if err := e.materializer.Reapply(ctx, tx, c.EntityID, rev.EntityHistoryID); err != nil {
			return fmt.Errorf("correction: reapplying history snapshot: %w", err)
		}

		if err := e.store.SetStatus(ctx, tx, correctionID, StatusApproved, now); err != nil {
			return fmt.Errorf("correction: marking approved: %w", err)
		}
		return e.store.AddCorrectionUser(ctx, tx, correctionID, approverID, UserTypeApprover)
	})
}

// Reject transitions a Pending correction to Rejected. The live entity is
// left unchanged.
func (e *Engine[T]) Reject(ctx context.Context, correctionID, actorID string) error {
	privileged, err := e.roles.IsPrivileged(ctx, actorID)
	if err != nil {
		return fmt.Errorf("correction: checking actor privilege: %w", err)
	}
	if !privileged {
		return apperr.Unauthorized("only a privileged user may reject a correction")
	}

	now := time.Now()

	return e.txm.Run(ctx, func(tx postgres.Tx) error {
		c, err := e.store.GetCorrection(ctx, tx, correctionID)
		if err != nil {
			return err
		}
		if !c.IsPending() {
			return apperr.InvalidState("correction is not pending")
		}

		if err := e.store.SetStatus(ctx, tx, correctionID, StatusRejected, now); err != nil {
			return fmt.Errorf("correction: marking rejected: %w", err)
		}
		return e.store.AddCorrectionUser(ctx, tx, correctionID, actorID, UserTypeRejecter)
	})
}
