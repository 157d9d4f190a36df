package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type executeCommandRequest struct {
	Command string `json:"command"`
}

func (h *Handler) executeCommand(w http.ResponseWriter, r *http.Request) {
	var req executeCommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: %s", errBadRequest, "invalid JSON body"))
		return
	}

	outcome, err := h.gateway.Execute(r.Context(), chi.URLParam(r, "id"), req.Command)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, outcome)
}

func (h *Handler) commandHistory(w http.ResponseWriter, r *http.Request) {
	respondData(w, h.gateway.History(chi.URLParam(r, "id")))
}
