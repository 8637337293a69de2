// Copyright (c) 2026 Harmonia. All rights reserved.

package loader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonia-catalog/harmonia/internal/loader"
	"github.com/harmonia-catalog/harmonia/internal/platform/postgres"
)

// failingTxRunner fails the test if Run is ever invoked: used to assert a
// request is rejected before it reaches the database.
type failingTxRunner struct{ t *testing.T }

func (f failingTxRunner) Run(ctx context.Context, fn func(postgres.Tx) error) error {
	f.t.Fatal("txm.Run should not be called for a request that fails validation")
	return nil
}

func TestSearchHandler_RejectsUnknownType(t *testing.T) {
	h := loader.NewSearchHandler(failingTxRunner{t: t}, map[string]loader.SearchableKind{
		"artist": {Table: "catalog.artist", IDColumn: "id", Column: "name"},
	})

	req := httptest.NewRequest(http.MethodGet, "/?q=kanno&types=artist,spaceship", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchHandler_RejectsUnknownType_EvenWhenMixedWithKnown(t *testing.T) {
	h := loader.NewSearchHandler(failingTxRunner{t: t}, map[string]loader.SearchableKind{
		"artist":  {Table: "catalog.artist", IDColumn: "id", Column: "name"},
		"release": {Table: "catalog.release", IDColumn: "id", Column: "title"},
	})

	req := httptest.NewRequest(http.MethodGet, "/?q=kanno&types=release,unknown", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
