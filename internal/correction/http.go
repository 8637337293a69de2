// Copyright (c) 2026 Harmonia. All rights reserved.

package correction

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/harmonia-catalog/harmonia/internal/platform/request"
	"github.com/harmonia-catalog/harmonia/internal/platform/respond"
	"github.com/harmonia-catalog/harmonia/internal/platform/validate"
)

// proposeRequest is the JSON envelope every propose-create/propose-update
// call decodes. T is the entity-kind payload (artist.Payload,
// release.Payload, ...); Description is the free-text revision summary
// every [CorrectionRevision] records.
type proposeRequest[T any] struct {
	Payload     T      `json:"payload"`
	Description string `json:"description"`
}

// Handler exposes one entity kind's [Engine] over HTTP. It is generic over
// the same payload type T the Engine is, so one handler type serves every
// catalog entity — only the constructor's Engine instance differs.
type Handler[T any] struct {
	engine *Engine[T]
}

// NewHandler constructs a [Handler] wrapping an already-wired [Engine].
func NewHandler[T any](engine *Engine[T]) *Handler[T] {
	return &Handler[T]{engine: engine}
}

// Routes returns a [chi.Router] exposing the propose/approve/reject
// surface for this entity kind. Callers mount it under their own
// entity-kind prefix (e.g. "/artists").
func (h *Handler[T]) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", h.proposeCreate)
	router.Put("/{entityID}", h.proposeUpdate)
	router.Post("/corrections/{correctionID}/approve", h.approve)
	router.Post("/corrections/{correctionID}/reject", h.reject)
	return router
}

/*
proposeCreate handles a brand-new entity proposal.

POST /{entity}/

Request:
  - body: proposeRequest[T] (Payload, Description)

Response:
  - 201: {"entity_id": string} on success, auto-approved if the author is privileged
  - 400: ErrInvalidJSON/Validation: Bad input or payload that fails entity validation
  - 401: ErrUnauthorized: Authentication required
*/
func (h *Handler[T]) proposeCreate(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input proposeRequest[T]
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	entityID, err := h.engine.ProposeCreate(request.Context(), input.Payload, authorID, input.Description)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{"entity_id": entityID})
}

/*
proposeUpdate handles a proposed change to an existing entity.

PUT /{entity}/{entityID}

Request:
  - entityID: string (UUID)
  - body: proposeRequest[T] (Payload, Description)

Response:
  - 200: {entity_id}
  - 400: ErrInvalidJSON/Validation: Bad input or payload that fails entity validation
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: entityID has no existing correction lineage
*/
func (h *Handler[T]) proposeUpdate(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entityID := requestutil.Param(request, "entityID")

	var input proposeRequest[T]
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := h.engine.ProposeUpdate(request.Context(), entityID, input.Payload, authorID, input.Description); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"entity_id": entityID})
}

/*
approve reapplies a pending correction's latest revision onto the live entity.

POST /{entity}/corrections/{correctionID}/approve

Response:
  - 200: {correction_id, status}
  - 401: ErrUnauthorized: only a privileged role may approve
  - 409: ErrInvalidState: correction is not pending
*/
func (h *Handler[T]) approve(writer http.ResponseWriter, request *http.Request) {
	approverID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	correctionID := requestutil.Param(request, "correctionID")
	if err := h.engine.Approve(request.Context(), correctionID, approverID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"correction_id": correctionID, "status": string(StatusApproved)})
}

/*
reject transitions a pending correction to Rejected, leaving the live entity untouched.

POST /{entity}/corrections/{correctionID}/reject

Response:
  - 200: {correction_id, status}
  - 401: ErrUnauthorized: only a privileged role may reject
  - 409: ErrInvalidState: correction is not pending
*/
func (h *Handler[T]) reject(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	correctionID := requestutil.Param(request, "correctionID")
	if err := h.engine.Reject(request.Context(), correctionID, actorID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"correction_id": correctionID, "status": string(StatusRejected)})
}
