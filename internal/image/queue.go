// Copyright (c) 2026 Harmonia. All rights reserved.

package image

import (
	"context"
	"fmt"
	"time"

	"github.com/harmonia-catalog/harmonia/internal/platform/apperr"
	"github.com/harmonia-catalog/harmonia/internal/platform/postgres"
)

// Approve transitions a Pending queue entry to Approved. Only a
// privileged role may approve.
func (s *Service) Approve(ctx context.Context, queueID, actorID string) error {
	privileged, err := s.roles.IsPrivileged(ctx, actorID)
	if err != nil {
		return fmt.Errorf("image: checking approver privilege: %w", err)
	}
	if !privileged {
		return apperr.Unauthorized("only a privileged user may approve a queued image")
	}

	now := time.Now()
	err = s.txm.Run(ctx, func(tx postgres.Tx) error {
		q, err := s.store.GetQueueEntry(ctx, tx, queueID)
		if err != nil {
			return err
		}
		if !q.IsPending() {
			return apperr.InvalidState("image queue entry is not pending")
		}
		return s.store.SetQueueHandled(ctx, tx, queueID, StatusApproved, now, actorID)
	})
	if err != nil {
		return err
	}
	s.logger.Info("image queue entry approved", "queue_id", queueID, "actor_id", actorID)
	return nil
}

// Reject transitions a Pending queue entry to Rejected. Only a
// privileged role may reject.
func (s *Service) Reject(ctx context.Context, queueID, actorID string) error {
	privileged, err := s.roles.IsPrivileged(ctx, actorID)
	if err != nil {
		return fmt.Errorf("image: checking rejecter privilege: %w", err)
	}
	if !privileged {
		return apperr.Unauthorized("only a privileged user may reject a queued image")
	}

	now := time.Now()
	err = s.txm.Run(ctx, func(tx postgres.Tx) error {
		q, err := s.store.GetQueueEntry(ctx, tx, queueID)
		if err != nil {
			return err
		}
		if !q.IsPending() {
			return apperr.InvalidState("image queue entry is not pending")
		}
		return s.store.SetQueueHandled(ctx, tx, queueID, StatusRejected, now, actorID)
	})
	if err != nil {
		return err
	}
	s.logger.Info("image queue entry rejected", "queue_id", queueID, "actor_id", actorID)
	return nil
}

// Cancel transitions a Pending queue entry to Cancelled. Unlike
// Approve/Reject, a privileged role is not the only one allowed: the
// original uploader may also cancel their own still-pending submission.
func (s *Service) Cancel(ctx context.Context, queueID, actorID string) error {
	now := time.Now()
	return s.txm.Run(ctx, func(tx postgres.Tx) error {
		q, err := s.store.GetQueueEntry(ctx, tx, queueID)
		if err != nil {
			return err
		}
		if !q.IsPending() {
			return apperr.InvalidState("image queue entry is not pending")
		}

		if q.UploaderID != actorID {
			privileged, err := s.roles.IsPrivileged(ctx, actorID)
			if err != nil {
				return fmt.Errorf("image: checking canceller privilege: %w", err)
			}
			if !privileged {
				return apperr.Unauthorized("only the uploader or a privileged user may cancel a queued image")
			}
		}

		if err := s.store.SetQueueHandled(ctx, tx, queueID, StatusCancelled, now, actorID); err != nil {
			return err
		}
		s.logger.Info("image queue entry cancelled", "queue_id", queueID, "actor_id", actorID)
		return nil
	})
}

// Revert transitions a previously Approved queue entry back out of
// approved state, stamping RevertedAt/RevertedBy. It intentionally does
// not touch the image's [Reference] row — removing a reference (and
// possibly garbage-collecting the [Image] itself) is a separate,
// explicit [Service.DecrementReference] call, since the two operations
// answer different questions ("should this submission have been
// approved" vs. "does an entity still use this image"). Only a
// privileged role may revert.
func (s *Service) Revert(ctx context.Context, queueID, actorID string) error {
	privileged, err := s.roles.IsPrivileged(ctx, actorID)
	if err != nil {
		return fmt.Errorf("image: checking reverter privilege: %w", err)
	}
	if !privileged {
		return apperr.Unauthorized("only a privileged user may revert an approved image")
	}

	now := time.Now()
	err = s.txm.Run(ctx, func(tx postgres.Tx) error {
		q, err := s.store.GetQueueEntry(ctx, tx, queueID)
		if err != nil {
			return err
		}
		if !q.IsApproved() {
			return apperr.InvalidState("image queue entry is not approved")
		}
		return s.store.SetQueueReverted(ctx, tx, queueID, now, actorID)
	})
	if err != nil {
		return err
	}
	s.logger.Info("image queue entry reverted", "queue_id", queueID, "actor_id", actorID)
	return nil
}
