// Copyright (c) 2026 Harmonia. All rights reserved.

package image_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonia-catalog/harmonia/internal/image"
	"github.com/harmonia-catalog/harmonia/internal/platform/redisqueue"
)

// unreachableRemovalQueue builds a [redisqueue.RemovalQueue] bound to an
// address nothing listens on, so an Enqueue call fails with a real dial
// error rather than needing a live Redis instance in tests.
func unreachableRemovalQueue() *redisqueue.RemovalQueue {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond})
	return redisqueue.NewRemovalQueue(client)
}

func newTestService(t *testing.T, parser *fakeParser, storage *fakeStorage, store *fakeStore, privilegedUsers ...string) *image.Service {
	t.Helper()
	privileged := map[string]bool{}
	for _, u := range privilegedUsers {
		privileged[u] = true
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return image.NewService(store, storage, parser, &fakeRoles{privileged: privileged}, fakeTxRunner{}, unreachableRemovalQueue(), logger)
}

func TestService_Create_FirstUploadWritesBlobAndReference(t *testing.T) {
	store := newFakeStore()
	storage := newFakeStorage()
	svc := newTestService(t, &fakeParser{extension: "webp"}, storage, store)

	q, err := svc.Create(context.Background(), []byte("cover art bytes"), image.DefaultParseOptions(), image.CreateMeta{
		EntityType: "release",
		EntityID:   "release-1",
		Usage:      "cover",
		UploaderID: "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, image.StatusPending, q.Status)
	require.NotEmpty(t, q.ImageID)

	assert.Len(t, storage.written, 1, "a brand-new image must write its blob exactly once")
	assert.Len(t, store.references, 1)
}

func TestService_Create_DuplicateContentDedupesByFilenameAndSkipsStorageWrite(t *testing.T) {
	store := newFakeStore()
	storage := newFakeStorage()
	svc := newTestService(t, &fakeParser{extension: "webp"}, storage, store)
	ctx := context.Background()
	meta := image.CreateMeta{EntityType: "release", EntityID: "release-1", Usage: "cover", UploaderID: "user-1"}

	first, err := svc.Create(ctx, []byte("same bytes"), image.DefaultParseOptions(), meta)
	require.NoError(t, err)

	second, err := svc.Create(ctx, []byte("same bytes"), image.DefaultParseOptions(), meta)
	require.NoError(t, err)

	assert.Equal(t, first.ImageID, second.ImageID, "identical content must dedupe to the same image row")
	assert.Len(t, storage.written, 1, "the second upload must not write another blob")
	assert.Len(t, store.references, 2, "each upload still registers its own reference")
	assert.Len(t, store.queue, 2, "each upload still opens its own queue entry")
}

func TestService_Create_ParserRejectionNeverTouchesStorage(t *testing.T) {
	store := newFakeStore()
	storage := newFakeStorage()
	svc := newTestService(t, &fakeParser{err: image.ValidationError("file too small")}, storage, store)

	_, err := svc.Create(context.Background(), []byte("x"), image.DefaultParseOptions(), image.CreateMeta{})
	require.Error(t, err)
	assert.Empty(t, storage.written)
	assert.Empty(t, store.images)
}

func TestService_DecrementReference_LastReferenceGarbageCollectsImage(t *testing.T) {
	store := newFakeStore()
	storage := newFakeStorage()
	svc := newTestService(t, &fakeParser{extension: "webp"}, storage, store)
	ctx := context.Background()

	q, err := svc.Create(ctx, []byte("only ref"), image.DefaultParseOptions(), image.CreateMeta{
		EntityType: "release", EntityID: "release-1", Usage: "cover", UploaderID: "user-1",
	})
	require.NoError(t, err)

	var refID string
	for id := range store.references {
		refID = id
	}
	require.NotEmpty(t, refID)

	err = svc.DecrementReference(ctx, refID)
	require.NoError(t, err)

	assert.Empty(t, store.images, "the last reference gone must garbage collect the image row")
	assert.Len(t, storage.removed, 1)
	_ = q
}

func TestService_DecrementReference_RemainingReferenceKeepsImage(t *testing.T) {
	store := newFakeStore()
	storage := newFakeStorage()
	svc := newTestService(t, &fakeParser{extension: "webp"}, storage, store)
	ctx := context.Background()
	meta := image.CreateMeta{EntityType: "release", EntityID: "release-1", Usage: "cover", UploaderID: "user-1"}

	_, err := svc.Create(ctx, []byte("shared"), image.DefaultParseOptions(), meta)
	require.NoError(t, err)
	_, err = svc.Create(ctx, []byte("shared"), image.DefaultParseOptions(), meta)
	require.NoError(t, err)
	require.Len(t, store.references, 2)

	var firstRefID string
	for id := range store.references {
		firstRefID = id
		break
	}

	err = svc.DecrementReference(ctx, firstRefID)
	require.NoError(t, err)

	assert.Len(t, store.images, 1, "one remaining reference must keep the image row")
	assert.Empty(t, storage.removed)
}

func TestService_DecrementReference_RemovalAndEnqueueFailureReturnsError(t *testing.T) {
	store := newFakeStore()
	storage := newFakeStorage()
	storage.removeErr = assertAnError{}
	svc := newTestService(t, &fakeParser{extension: "webp"}, storage, store)
	ctx := context.Background()

	_, err := svc.Create(ctx, []byte("about to fail removal"), image.DefaultParseOptions(), image.CreateMeta{
		EntityType: "release", EntityID: "release-1", Usage: "cover", UploaderID: "user-1",
	})
	require.NoError(t, err)

	var refID string
	for id := range store.references {
		refID = id
	}

	// The removal queue here is bound to an unreachable address, so the
	// enqueue-on-failure fallback itself fails, exercising the "both
	// removal and enqueue failed" error path. A real wiring supplies a
	// live Redis client, at which point the enqueue succeeds and
	// DecrementReference returns nil despite the storage removal error.
	err = svc.DecrementReference(ctx, refID)
	require.Error(t, err)
}

type assertAnError struct{}

func (assertAnError) Error() string { return "storage backend unavailable" }
