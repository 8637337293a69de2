// Copyright (c) 2026 Harmonia. All rights reserved.

package image

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harmonia-catalog/harmonia/internal/platform/apperr"
	requestutil "github.com/harmonia-catalog/harmonia/internal/platform/request"
	"github.com/harmonia-catalog/harmonia/internal/platform/respond"
)

// Handler exposes [Service] over HTTP: raw-body upload plus the queue
// moderation actions and reference decrement.
type Handler struct {
	service *Service
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for the image upload/moderation surface.
// Callers mount it under their own prefix (e.g. "/images").
func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", h.upload)
	router.Post("/queue/{queueID}/approve", h.approve)
	router.Post("/queue/{queueID}/reject", h.reject)
	router.Post("/queue/{queueID}/cancel", h.cancel)
	router.Post("/queue/{queueID}/revert", h.revert)
	router.Delete("/references/{referenceID}", h.decrementReference)
	return router
}

/*
upload accepts a raw image body and registers it against an entity.

POST /images/?entity_type=release&entity_id=...&usage=cover

Request:
  - query: entity_type, entity_id, usage
  - body: raw image bytes

Response:
  - 201: Queue: the Pending queue entry created for this upload
  - 400: ValidationError: entity_type or entity_id missing
  - 422: ErrUnprocessable: the body fails parse/validation (size, dimensions, format)
  - 401: ErrUnauthorized: authentication required
*/
func (h *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	uploaderID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := request.URL.Query()
	meta := CreateMeta{
		EntityType: query.Get("entity_type"),
		EntityID:   query.Get("entity_id"),
		Usage:      query.Get("usage"),
		UploaderID: uploaderID,
	}
	if meta.EntityType == "" || meta.EntityID == "" {
		respond.Error(writer, request, apperr.ValidationError(
			"entity_type and entity_id query parameters are required",
			apperr.FieldError{Field: FieldEntityType, Message: "required"},
		))
		return
	}

	raw, err := io.ReadAll(request.Body)
	if err != nil {
		respond.Error(writer, request, apperr.Unprocessable("could not read request body"))
		return
	}

	queued, err := h.service.Create(request.Context(), raw, DefaultParseOptions(), meta)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, queued)
}

/*
approve transitions a pending queue entry to Approved.

POST /images/queue/{queueID}/approve

Response:
  - 200: {queue_id}
  - 401: ErrUnauthorized: only a privileged user may approve
  - 409: ErrInvalidState: queue entry is not pending
*/
func (h *Handler) approve(writer http.ResponseWriter, request *http.Request) {
	h.queueAction(writer, request, h.service.Approve)
}

/*
reject transitions a pending queue entry to Rejected.

POST /images/queue/{queueID}/reject
*/
func (h *Handler) reject(writer http.ResponseWriter, request *http.Request) {
	h.queueAction(writer, request, h.service.Reject)
}

/*
cancel transitions a pending queue entry to Cancelled. The original
uploader may cancel their own entry; anyone else needs a privileged role.

POST /images/queue/{queueID}/cancel
*/
func (h *Handler) cancel(writer http.ResponseWriter, request *http.Request) {
	h.queueAction(writer, request, h.service.Cancel)
}

/*
revert transitions a previously Approved queue entry out of approved
state without touching its image reference.

POST /images/queue/{queueID}/revert
*/
func (h *Handler) revert(writer http.ResponseWriter, request *http.Request) {
	h.queueAction(writer, request, h.service.Revert)
}

// queueAction is the shared request/response plumbing for the four queue
// moderation actions, which all share the same (ctx, queueID, actorID) error
// signature.
func (h *Handler) queueAction(writer http.ResponseWriter, request *http.Request, action func(ctx context.Context, queueID, actorID string) error) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	queueID := requestutil.Param(request, "queueID")
	if err := action(request.Context(), queueID, actorID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"queue_id": queueID})
}

/*
decrementReference removes an image reference, garbage-collecting the
underlying image when no reference remains.

DELETE /images/references/{referenceID}

Response:
  - 204: No Content
  - 404: ErrNotFound: referenceID does not exist
*/
func (h *Handler) decrementReference(writer http.ResponseWriter, request *http.Request) {
	referenceID := requestutil.Param(request, "referenceID")
	if err := h.service.DecrementReference(request.Context(), referenceID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
