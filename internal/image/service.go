// Copyright (c) 2026 Harmonia. All rights reserved.

package image

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/harmonia-catalog/harmonia/internal/platform/postgres"
	"github.com/harmonia-catalog/harmonia/internal/platform/redisqueue"
	"github.com/harmonia-catalog/harmonia/internal/platform/sec"
	"github.com/harmonia-catalog/harmonia/pkg/uuidv7"
)

// Service orchestrates the upload/dedupe/reference-count lifecycle of
// images, in the same transactional shape as [correction.Engine]:
// permission check (where one applies), then a single [postgres.TxRunner]
// round trip.
type Service struct {
	store        Store
	storage      FileStorage
	parser       Parser
	roles        sec.RoleChecker
	txm          postgres.TxRunner
	removalQueue *redisqueue.RemovalQueue
	logger       *slog.Logger
}

// NewService constructs a [Service].
func NewService(store Store, storage FileStorage, parser Parser, roles sec.RoleChecker, txm postgres.TxRunner, removalQueue *redisqueue.RemovalQueue, logger *slog.Logger) *Service {
	return &Service{
		store:        store,
		storage:      storage,
		parser:       parser,
		roles:        roles,
		txm:          txm,
		removalQueue: removalQueue,
		logger:       logger.With("component", "image"),
	}
}

// hashFilename derives the content-addressed filename for a parsed
// image's bytes: a 128-bit blake2b digest, hex-encoded, plus extension.
func hashFilename(parsed ParsedImage) (hash, filename string) {
	sum := blake2b.Sum256(parsed.Bytes)
	digest := sum[:16] // truncate to a 128-bit content hash
	hash = hex.EncodeToString(digest)
	return hash, hash + "." + parsed.Extension
}

// Create validates raw upload bytes, stores the resulting blob
// (deduplicating by content hash when an identical image already
// exists), and opens a Pending [Queue] entry for it. The caller's own
// upload-permission check (if any) happens before this is called; Create
// itself does not gate on role, matching [FileStorage]/[Parser] being
// pure mechanism with no policy of their own.
func (s *Service) Create(ctx context.Context, raw []byte, opts ParseOptions, meta CreateMeta) (*Queue, error) {
	parsed, err := s.parser.Parse(ctx, raw, opts)
	if err != nil {
		return nil, err
	}
	hash, filename := hashFilename(parsed)
	now := time.Now()

	var queued *Queue
	var deduped bool
	err = s.txm.Run(ctx, func(tx postgres.Tx) error {
		existing, err := s.store.FindImageByFilename(ctx, tx, filename)
		if err != nil {
			return fmt.Errorf("image: looking up existing image: %w", err)
		}

		img := existing
		if img != nil {
			deduped = true
		} else {
			img = &Image{
				ID:        uuidv7.New(),
				Hash:      hash,
				Filename:  filename,
				Extension: parsed.Extension,
				CreatedAt: now,
			}
			if err := s.store.CreateImage(ctx, tx, img); err != nil {
				return fmt.Errorf("image: recording image row: %w", err)
			}
			if err := s.storage.Write(ctx, img.Path(), parsed.Bytes); err != nil {
				return fmt.Errorf("image: writing blob: %w", err)
			}
		}

		ref := &Reference{
			ID:         uuidv7.New(),
			ImageID:    img.ID,
			EntityType: meta.EntityType,
			EntityID:   meta.EntityID,
			Usage:      meta.Usage,
			CreatedAt:  now,
		}
		if err := s.store.CreateReference(ctx, tx, ref); err != nil {
			return fmt.Errorf("image: recording reference: %w", err)
		}

		queued = &Queue{
			ID:         uuidv7.New(),
			ImageID:    img.ID,
			EntityType: meta.EntityType,
			EntityID:   meta.EntityID,
			Usage:      meta.Usage,
			Status:     StatusPending,
			UploaderID: meta.UploaderID,
			CreatedAt:  now,
		}
		return s.store.CreateQueueEntry(ctx, tx, queued)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("image uploaded", "queue_id", queued.ID, "image_id", queued.ImageID, "deduped", deduped)
	return queued, nil
}

// DecrementReference removes a reference row and, if it was the image's
// last one, deletes the [Image] row and best-effort removes its blob —
// enqueueing the path for retry on removal failure rather than failing
// the whole operation; the core only guarantees the enqueue attempt.
// This is a low-level capability: the caller (an entity
// materializer dropping an image from its payload, or a handler acting
// on an already-authorized request) is responsible for its own
// permission check before calling it.
func (s *Service) DecrementReference(ctx context.Context, referenceID string) error {
	return s.txm.Run(ctx, func(tx postgres.Tx) error {
		ref, err := s.store.GetReference(ctx, tx, referenceID)
		if err != nil {
			return err
		}
		if err := s.store.DeleteReference(ctx, tx, referenceID); err != nil {
			return fmt.Errorf("image: removing reference: %w", err)
		}

		remaining, err := s.store.CountReferences(ctx, tx, ref.ImageID)
		if err != nil {
			return fmt.Errorf("image: counting remaining references: %w", err)
		}
		if remaining > 0 {
			return nil
		}

		img, err := s.store.GetImage(ctx, tx, ref.ImageID)
		if err != nil {
			return err
		}
		if err := s.store.DeleteImage(ctx, tx, ref.ImageID); err != nil {
			return fmt.Errorf("image: removing unreferenced image row: %w", err)
		}

		if err := s.storage.Remove(ctx, img.Path()); err != nil {
			if qerr := s.removalQueue.Enqueue(ctx, img.Path()); qerr != nil {
				return fmt.Errorf("image: blob removal failed and retry enqueue failed: %w", qerr)
			}
			s.logger.Warn("blob removal failed, enqueued for retry", "path", img.Path(), "error", err)
		}
		return nil
	})
}
