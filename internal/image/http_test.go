// Copyright (c) 2026 Harmonia. All rights reserved.

package image_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonia-catalog/harmonia/internal/image"
	"github.com/harmonia-catalog/harmonia/internal/platform/ctxutil"
	"github.com/harmonia-catalog/harmonia/internal/platform/sec"
)

func authenticate(req *http.Request, userID string) *http.Request {
	claims := &sec.AuthClaims{UserID: userID}
	return req.WithContext(ctxutil.WithAuthUser(req.Context(), claims))
}

func TestImageHandler_Upload_ReturnsCreatedQueueEntry(t *testing.T) {
	store := newFakeStore()
	storage := newFakeStorage()
	svc := newTestService(t, &fakeParser{extension: "png"}, storage, store, "uploader-1")
	handler := image.NewHandler(svc)

	router := chi.NewRouter()
	router.Mount("/", handler.Routes())

	req := httptest.NewRequest(http.MethodPost, "/?entity_type=artist&entity_id=artist-1&usage=avatar", bytes.NewReader([]byte("raw-bytes")))
	req = authenticate(req, "uploader-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestImageHandler_Upload_MissingEntityParamsIsValidationError(t *testing.T) {
	store := newFakeStore()
	storage := newFakeStorage()
	svc := newTestService(t, &fakeParser{}, storage, store, "uploader-1")
	handler := image.NewHandler(svc)

	router := chi.NewRouter()
	router.Mount("/", handler.Routes())

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("raw-bytes")))
	req = authenticate(req, "uploader-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImageHandler_Approve_PrivilegedSucceeds(t *testing.T) {
	store := newFakeStore()
	storage := newFakeStorage()
	svc := newTestService(t, &fakeParser{}, storage, store, "uploader-1", "mod-1")
	handler := image.NewHandler(svc)

	queued, err := svc.Create(context.Background(), []byte("raw-bytes"), image.DefaultParseOptions(), image.CreateMeta{
		EntityType: "artist", EntityID: "artist-1", Usage: "avatar", UploaderID: "uploader-1",
	})
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Mount("/", handler.Routes())

	req := httptest.NewRequest(http.MethodPost, "/queue/"+queued.ID+"/approve", nil)
	req = authenticate(req, "mod-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, image.StatusApproved, store.queue[queued.ID].Status)
}

func TestImageHandler_DecrementReference_NoContent(t *testing.T) {
	store := newFakeStore()
	storage := newFakeStorage()
	svc := newTestService(t, &fakeParser{}, storage, store, "uploader-1")
	handler := image.NewHandler(svc)

	queued, err := svc.Create(context.Background(), []byte("raw-bytes"), image.DefaultParseOptions(), image.CreateMeta{
		EntityType: "artist", EntityID: "artist-1", Usage: "avatar", UploaderID: "uploader-1",
	})
	require.NoError(t, err)

	var referenceID string
	for id := range store.references {
		referenceID = id
	}
	require.NotEmpty(t, referenceID)
	_ = queued

	router := chi.NewRouter()
	router.Mount("/", handler.Routes())

	req := httptest.NewRequest(http.MethodDelete, "/references/"+referenceID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
