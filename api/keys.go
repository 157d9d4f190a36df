package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/redispanel/pkg/inspector"
)

func (h *Handler) listKeys(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	q := inspector.ListQuery{
		Pattern:   qs.Get("pattern"),
		SortBy:    qs.Get("sort_by"),
		SortOrder: qs.Get("sort_order"),
	}
	if v, err := strconv.Atoi(qs.Get("page")); err == nil {
		q.Page = v
	}
	if v, err := strconv.Atoi(qs.Get("page_size")); err == nil {
		q.PageSize = v
	}

	page, err := h.inspector.ListKeys(r.Context(), chi.URLParam(r, "id"), q)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, page)
}

func (h *Handler) keyDetails(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	// Routing happens on the raw path when it carries non-canonical escapes
	// (a key named "cache/users" arrives as "cache%2Fusers"), so the param is
	// still percent-encoded in that case and must be decoded here. When the
	// raw path is absent the param is already decoded and must not be decoded
	// twice, or a literal "%" in a key name would corrupt it.
	if r.URL.RawPath != "" {
		decoded, err := url.PathUnescape(name)
		if err != nil {
			respondError(w, fmt.Errorf("%w: %s", errBadRequest, "malformed key name escape"))
			return
		}
		name = decoded
	}

	details, err := h.inspector.KeyDetails(r.Context(), chi.URLParam(r, "id"), name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, details)
}

type deleteKeysRequest struct {
	Keys []string `json:"keys"`
}

func (h *Handler) deleteKeys(w http.ResponseWriter, r *http.Request) {
	var req deleteKeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: %s", errBadRequest, "invalid JSON body"))
		return
	}
	if len(req.Keys) == 0 {
		respondError(w, fmt.Errorf("%w: %s", errBadRequest, "keys must not be empty"))
		return
	}

	deleted, err := h.inspector.DeleteKeys(r.Context(), chi.URLParam(r, "id"), req.Keys)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, map[string]any{"deleted": deleted})
}
