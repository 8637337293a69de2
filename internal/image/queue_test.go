// Copyright (c) 2026 Harmonia. All rights reserved.

package image_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonia-catalog/harmonia/internal/image"
	"github.com/harmonia-catalog/harmonia/internal/platform/apperr"
)

func uploadOne(t *testing.T, svc *image.Service, store *fakeStore, uploaderID string) string {
	t.Helper()
	q, err := svc.Create(context.Background(), []byte("pending upload"), image.DefaultParseOptions(), image.CreateMeta{
		EntityType: "release", EntityID: "release-1", Usage: "cover", UploaderID: uploaderID,
	})
	require.NoError(t, err)
	return q.ID
}

func TestService_Approve_RequiresPrivilegedRole(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, &fakeParser{}, newFakeStorage(), store)
	queueID := uploadOne(t, svc, store, "user-1")

	err := svc.Approve(context.Background(), queueID, "user-1")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
	assert.Equal(t, image.StatusPending, store.queue[queueID].Status)
}

func TestService_Approve_PrivilegedTransitionsToApproved(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, &fakeParser{}, newFakeStorage(), store, "mod-1")
	queueID := uploadOne(t, svc, store, "user-1")

	err := svc.Approve(context.Background(), queueID, "mod-1")
	require.NoError(t, err)

	q := store.queue[queueID]
	assert.Equal(t, image.StatusApproved, q.Status)
	require.NotNil(t, q.HandledBy)
	assert.Equal(t, "mod-1", *q.HandledBy)
}

func TestService_Approve_NotPendingFails(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, &fakeParser{}, newFakeStorage(), store, "mod-1")
	queueID := uploadOne(t, svc, store, "user-1")
	require.NoError(t, svc.Approve(context.Background(), queueID, "mod-1"))

	err := svc.Approve(context.Background(), queueID, "mod-1")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INVALID_STATE", ae.Code)
}

func TestService_Reject_PrivilegedTransitionsToRejected(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, &fakeParser{}, newFakeStorage(), store, "mod-1")
	queueID := uploadOne(t, svc, store, "user-1")

	err := svc.Reject(context.Background(), queueID, "mod-1")
	require.NoError(t, err)
	assert.Equal(t, image.StatusRejected, store.queue[queueID].Status)
}

func TestService_Cancel_UploaderMayCancelOwnPendingEntry(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, &fakeParser{}, newFakeStorage(), store)
	queueID := uploadOne(t, svc, store, "user-1")

	err := svc.Cancel(context.Background(), queueID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, image.StatusCancelled, store.queue[queueID].Status)
}

func TestService_Cancel_NonUploaderNonPrivilegedIsUnauthorized(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, &fakeParser{}, newFakeStorage(), store)
	queueID := uploadOne(t, svc, store, "user-1")

	err := svc.Cancel(context.Background(), queueID, "user-2")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
}

func TestService_Cancel_PrivilegedMayCancelSomeoneElsesEntry(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, &fakeParser{}, newFakeStorage(), store, "mod-1")
	queueID := uploadOne(t, svc, store, "user-1")

	err := svc.Cancel(context.Background(), queueID, "mod-1")
	require.NoError(t, err)
	assert.Equal(t, image.StatusCancelled, store.queue[queueID].Status)
}

func TestService_Revert_RequiresApprovedState(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, &fakeParser{}, newFakeStorage(), store, "mod-1")
	queueID := uploadOne(t, svc, store, "user-1")

	err := svc.Revert(context.Background(), queueID, "mod-1")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INVALID_STATE", ae.Code)
}

func TestService_Revert_DoesNotRemoveReference(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, &fakeParser{}, newFakeStorage(), store, "mod-1")
	queueID := uploadOne(t, svc, store, "user-1")
	require.NoError(t, svc.Approve(context.Background(), queueID, "mod-1"))

	err := svc.Revert(context.Background(), queueID, "mod-1")
	require.NoError(t, err)

	q := store.queue[queueID]
	assert.Equal(t, image.StatusReverted, q.Status)
	require.NotNil(t, q.RevertedBy)
	assert.Equal(t, "mod-1", *q.RevertedBy)
	assert.Len(t, store.references, 1, "revert must not touch the image reference row")
}
