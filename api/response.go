package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/redispanel/pkg/gateway"
	"github.com/dmitrymomot/redispanel/pkg/inspector"
	"github.com/dmitrymomot/redispanel/pkg/profilestore"
	"github.com/dmitrymomot/redispanel/pkg/registry"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respond(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondData(w http.ResponseWriter, data any) {
	respond(w, http.StatusOK, Response{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, err error) {
	respond(w, errorStatus(err), Response{Success: false, Error: err.Error()})
}

// errorStatus maps the domain error taxonomy onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, registry.ErrNotConnected):
		return http.StatusConflict
	case errors.Is(err, inspector.ErrKeyNotFound),
		errors.Is(err, profilestore.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, registry.ErrInvalidProfile),
		errors.Is(err, gateway.ErrEmptyCommand),
		errors.Is(err, profilestore.ErrMissingID),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, registry.ErrConnectFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
