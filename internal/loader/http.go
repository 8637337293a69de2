// Copyright (c) 2026 Harmonia. All rights reserved.

package loader

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harmonia-catalog/harmonia/internal/platform/apperr"
	"github.com/harmonia-catalog/harmonia/internal/platform/postgres"
	"github.com/harmonia-catalog/harmonia/internal/platform/respond"
	"github.com/harmonia-catalog/harmonia/pkg/query"
)

// SearchableKind binds one entity kind's live table to the column searched
// by [SearchByTrigram].
type SearchableKind struct {
	Table    string
	IDColumn string
	Column   string
}

const defaultSearchLimit = 20

// SearchHandler exposes cross-entity keyword typeahead search: every
// registered kind is searched independently by trigram distance over its
// own table, so one request can populate, e.g., an "artist or label"
// combobox without the caller issuing a request per kind.
type SearchHandler struct {
	txm   postgres.TxRunner
	kinds map[string]SearchableKind
}

// NewSearchHandler builds a [SearchHandler] over the given kind name ->
// table mapping (e.g. {"artist": {...}, "release": {...}}).
func NewSearchHandler(txm postgres.TxRunner, kinds map[string]SearchableKind) *SearchHandler {
	return &SearchHandler{txm: txm, kinds: kinds}
}

// Routes returns a [chi.Router] for the typeahead search surface. Callers
// mount it under their own prefix (e.g. "/search").
func (h *SearchHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.search)
	return r
}

/*
search ranks each requested entity kind by trigram keyword distance
against q, independently, and returns up to limit ids per kind.

GET /search?q=...&types=artist,release&limit=20

Request:
  - q: keyword search term
  - types: comma-separated entity kinds to search (defaults to every
    registered kind when omitted)
  - limit: max ids per kind, repeatable; the first valid value wins,
    falling back to 20

Response:
  - 200: {"<kind>": [id, ...], ...} one entry per matched, requested kind
  - 400: ErrValidation: an unrecognized kind was requested
*/
func (h *SearchHandler) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	term := q.Get("q")

	types := query.StringSlice(q.Get("types"))
	if len(types) == 0 {
		for kind := range h.kinds {
			types = append(types, kind)
		}
	}

	limit := defaultSearchLimit
	if parsed := query.IntSlice(q["limit"]); len(parsed) > 0 {
		limit = parsed[0]
	}

	kinds := make([]SearchableKind, 0, len(types))
	for _, kind := range types {
		k, ok := h.kinds[kind]
		if !ok {
			respond.Error(w, r, apperr.ValidationError(
				"unrecognized search type",
				apperr.FieldError{Field: "types", Message: kind},
			))
			return
		}
		kinds = append(kinds, k)
	}

	out := make(map[string][]string, len(types))
	err := h.txm.Run(r.Context(), func(tx postgres.Tx) error {
		for i, kind := range types {
			ids, err := SearchByTrigram(r.Context(), tx, kinds[i].Table, kinds[i].IDColumn, kinds[i].Column, term, limit)
			if err != nil {
				return err
			}
			out[kind] = ids
		}
		return nil
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, out)
}
