package correction_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonia-catalog/harmonia/internal/correction"
	"github.com/harmonia-catalog/harmonia/internal/platform/ctxutil"
	"github.com/harmonia-catalog/harmonia/internal/platform/sec"
)

// authenticate attaches claims for userID to req so requestutil.RequiredUserID
// resolves it, matching what the real Authenticate middleware would do.
func authenticate(req *http.Request, userID string) *http.Request {
	claims := &sec.AuthClaims{UserID: userID}
	return req.WithContext(ctxutil.WithAuthUser(req.Context(), claims))
}

func TestHandler_ProposeCreate_ReturnsCreatedEnvelope(t *testing.T) {
	engine, _, _ := newEngine()
	handler := correction.NewHandler(engine)

	router := chi.NewRouter()
	router.Mount("/", handler.Routes())

	body, err := json.Marshal(map[string]any{
		"payload":     payload{Name: "Aimer"},
		"description": "first proposal",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	req = authenticate(req, "user-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestHandler_ProposeCreate_WithoutAuthIsUnauthorized(t *testing.T) {
	engine, _, _ := newEngine()
	handler := correction.NewHandler(engine)

	router := chi.NewRouter()
	router.Mount("/", handler.Routes())

	body, err := json.Marshal(map[string]any{"payload": payload{Name: "Aimer"}})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_Approve_PrivilegedSucceeds(t *testing.T) {
	engine, _, store := newEngine("mod-1")
	handler := correction.NewHandler(engine)

	_, err := engine.ProposeCreate(context.Background(), payload{Name: "Aimer"}, "user-1", "first")
	require.NoError(t, err)

	var correctionID string
	for id := range store.corrections {
		correctionID = id
	}

	router := chi.NewRouter()
	router.Mount("/", handler.Routes())

	req := httptest.NewRequest(http.MethodPost, "/corrections/"+correctionID+"/approve", nil)
	req = authenticate(req, "mod-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, correction.StatusApproved, store.corrections[correctionID].Status)
}

func TestHandler_Approve_NonPrivilegedIsForbiddenOrUnauthorized(t *testing.T) {
	engine, _, store := newEngine("mod-1")
	handler := correction.NewHandler(engine)

	_, err := engine.ProposeCreate(context.Background(), payload{Name: "Aimer"}, "user-1", "first")
	require.NoError(t, err)

	var correctionID string
	for id := range store.corrections {
		correctionID = id
	}

	router := chi.NewRouter()
	router.Mount("/", handler.Routes())

	req := httptest.NewRequest(http.MethodPost, "/corrections/"+correctionID+"/approve", nil)
	req = authenticate(req, "user-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.NotEqual(t, http.StatusOK, rec.Code)
	assert.Equal(t, correction.StatusPending, store.corrections[correctionID].Status)
}
