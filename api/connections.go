package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/redispanel/pkg/logger"
	"github.com/dmitrymomot/redispanel/pkg/registry"
)

// connectionView is the externally visible shape of a saved connection.
// Credentials never leave the server.
type connectionView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Host      string `json:"host"`
	Port      int    `json:"port"`
	DB        int    `json:"db"`
	Connected bool   `json:"connected"`
}

func (h *Handler) view(p registry.Profile) connectionView {
	return connectionView{
		ID:        p.ID,
		Name:      p.Name,
		Host:      p.Host,
		Port:      p.Port,
		DB:        p.DB,
		Connected: h.registry.Connected(p.ID),
	}
}

func (h *Handler) listConnections(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.List()
	if err != nil {
		respondError(w, err)
		return
	}
	views := make([]connectionView, len(profiles))
	for i, p := range profiles {
		views[i] = h.view(p)
	}
	respondData(w, views)
}

type saveConnectionRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

func (h *Handler) saveConnection(w http.ResponseWriter, r *http.Request) {
	var req saveConnectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: %s", errBadRequest, "invalid JSON body"))
		return
	}

	p := registry.Profile{
		ID:       req.ID,
		Name:     req.Name,
		Host:     req.Host,
		Port:     req.Port,
		Password: req.Password,
		DB:       req.DB,
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Name == "" {
		p.Name = p.Addr()
	}
	if err := p.Validate(); err != nil {
		respondError(w, err)
		return
	}

	if err := h.profiles.Save(p); err != nil {
		respondError(w, err)
		return
	}
	h.log.Info("connection profile saved", logger.ConnectionID(p.ID))
	respondData(w, h.view(p))
}

// connect opens a session for the profile saved under id. A request body, if
// present, overrides the saved profile for this session only; it is not
// persisted.
func (h *Handler) connect(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.profiles.Get(id)
	if err != nil {
		respondError(w, err)
		return
	}

	var override saveConnectionRequest
	switch err := json.NewDecoder(r.Body).Decode(&override); {
	case errors.Is(err, io.EOF):
		// no body, use the saved profile as-is
	case err != nil:
		respondError(w, fmt.Errorf("%w: %s", errBadRequest, "invalid JSON body"))
		return
	default:
		if override.Host != "" {
			p.Host = override.Host
		}
		if override.Port != 0 {
			p.Port = override.Port
		}
		if override.Password != "" {
			p.Password = override.Password
		}
		if override.DB != 0 {
			p.DB = override.DB
		}
	}

	if err := h.registry.Connect(r.Context(), id, p); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, h.view(p))
}

func (h *Handler) disconnect(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.registry.Disconnect(id); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, map[string]any{"id": id, "connected": false})
}

func (h *Handler) deleteConnection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.registry.Disconnect(id); err != nil {
		respondError(w, err)
		return
	}
	if err := h.profiles.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	h.gateway.Forget(id)
	h.log.Info("connection profile deleted", logger.ConnectionID(id))
	respondData(w, map[string]any{"id": id, "deleted": true})
}

func (h *Handler) serverInfo(w http.ResponseWriter, r *http.Request) {
	snap, err := h.reporter.Snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, snap)
}
