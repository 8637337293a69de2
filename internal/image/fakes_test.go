// Copyright (c) 2026 Harmonia. All rights reserved.

package image_test

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/harmonia-catalog/harmonia/internal/image"
	"github.com/harmonia-catalog/harmonia/internal/platform/apperr"
	"github.com/harmonia-catalog/harmonia/internal/platform/postgres"
	"github.com/harmonia-catalog/harmonia/internal/platform/sec"
)

// fakeTx is a no-op [postgres.Tx]; every fake in this file operates on
// its own in-memory state and never actually issues SQL through it.
type fakeTx struct{}

func (fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) { return nil, nil }
func (fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row        { return nil }
func (fakeTx) SendBatch(ctx context.Context, batch *pgx.Batch) pgx.BatchResults     { return nil }
func (fakeTx) Begin(ctx context.Context) (postgres.Tx, error)                       { return fakeTx{}, nil }
func (fakeTx) Commit(ctx context.Context) error                                     { return nil }
func (fakeTx) Rollback(ctx context.Context) error                                   { return nil }

type fakeTxRunner struct{}

func (fakeTxRunner) Run(ctx context.Context, fn func(postgres.Tx) error) error {
	return fn(fakeTx{})
}

// fakeRoles grants privilege to a fixed set of user ids.
type fakeRoles struct {
	privileged map[string]bool
}

func (r *fakeRoles) HasAnyRole(ctx context.Context, userID string, roles ...sec.UserRole) (bool, error) {
	return r.privileged[userID], nil
}

func (r *fakeRoles) IsPrivileged(ctx context.Context, userID string) (bool, error) {
	return r.privileged[userID], nil
}

// fakeParser returns the bytes it is given unchanged, tagged with a
// fixed extension, so hashing is deterministic per input.
type fakeParser struct {
	extension string
	err       error
}

func (p *fakeParser) Parse(ctx context.Context, raw []byte, opts image.ParseOptions) (image.ParsedImage, error) {
	if p.err != nil {
		return image.ParsedImage{}, p.err
	}
	ext := p.extension
	if ext == "" {
		ext = "webp"
	}
	return image.ParsedImage{Bytes: raw, Extension: ext, WidthPx: 512, HeightPx: 512}, nil
}

// fakeStorage records every write/remove by path.
type fakeStorage struct {
	mu        sync.Mutex
	written   map[string][]byte
	removed   []string
	removeErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{written: map[string][]byte{}}
}

func (s *fakeStorage) Write(ctx context.Context, path string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written[path] = data
	return nil
}

func (s *fakeStorage) Remove(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.removeErr != nil {
		return s.removeErr
	}
	s.removed = append(s.removed, path)
	delete(s.written, path)
	return nil
}

// fakeStore implements [image.Store] entirely in memory.
type fakeStore struct {
	mu         sync.Mutex
	images     map[string]*image.Image
	byFilename map[string]string // filename -> image id
	references map[string]*image.Reference
	queue      map[string]*image.Queue
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		images:     map[string]*image.Image{},
		byFilename: map[string]string{},
		references: map[string]*image.Reference{},
		queue:      map[string]*image.Queue{},
	}
}

func (s *fakeStore) FindImageByFilename(ctx context.Context, tx postgres.Tx, filename string) (*image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byFilename[filename]
	if !ok {
		return nil, nil
	}
	cp := *s.images[id]
	return &cp, nil
}

func (s *fakeStore) GetImage(ctx context.Context, tx postgres.Tx, id string) (*image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	img, ok := s.images[id]
	if !ok {
		return nil, apperr.NotFound("Image")
	}
	cp := *img
	return &cp, nil
}

func (s *fakeStore) CreateImage(ctx context.Context, tx postgres.Tx, img *image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *img
	s.images[img.ID] = &cp
	s.byFilename[img.Filename] = img.ID
	return nil
}

func (s *fakeStore) DeleteImage(ctx context.Context, tx postgres.Tx, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if img, ok := s.images[id]; ok {
		delete(s.byFilename, img.Filename)
	}
	delete(s.images, id)
	return nil
}

func (s *fakeStore) CreateReference(ctx context.Context, tx postgres.Tx, ref *image.Reference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *ref
	s.references[ref.ID] = &cp
	return nil
}

func (s *fakeStore) GetReference(ctx context.Context, tx postgres.Tx, id string) (*image.Reference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref, ok := s.references[id]
	if !ok {
		return nil, apperr.NotFound("Reference")
	}
	cp := *ref
	return &cp, nil
}

func (s *fakeStore) DeleteReference(ctx context.Context, tx postgres.Tx, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.references, id)
	return nil
}

func (s *fakeStore) CountReferences(ctx context.Context, tx postgres.Tx, imageID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for _, ref := range s.references {
		if ref.ImageID == imageID {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) CreateQueueEntry(ctx context.Context, tx postgres.Tx, q *image.Queue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *q
	s.queue[q.ID] = &cp
	return nil
}

func (s *fakeStore) GetQueueEntry(ctx context.Context, tx postgres.Tx, id string) (*image.Queue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.queue[id]
	if !ok {
		return nil, apperr.NotFound("Queue")
	}
	cp := *q
	return &cp, nil
}

func (s *fakeStore) SetQueueHandled(ctx context.Context, tx postgres.Tx, id string, status image.Status, handledAt time.Time, handledBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.queue[id]
	if !ok {
		return apperr.NotFound("Queue")
	}
	q.Status = status
	q.HandledAt = &handledAt
	q.HandledBy = &handledBy
	return nil
}

func (s *fakeStore) SetQueueReverted(ctx context.Context, tx postgres.Tx, id string, revertedAt time.Time, revertedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.queue[id]
	if !ok {
		return apperr.NotFound("Queue")
	}
	q.Status = image.StatusReverted
	q.RevertedAt = &revertedAt
	q.RevertedBy = &revertedBy
	return nil
}
