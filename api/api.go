package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/redispanel/pkg/gateway"
	"github.com/dmitrymomot/redispanel/pkg/inspector"
	"github.com/dmitrymomot/redispanel/pkg/logger"
	"github.com/dmitrymomot/redispanel/pkg/profilestore"
	"github.com/dmitrymomot/redispanel/pkg/registry"
	"github.com/dmitrymomot/redispanel/pkg/serverinfo"
)

// errBadRequest marks request decoding and validation failures.
var errBadRequest = errors.New("bad request")

// Handler bundles the console components behind the HTTP boundary.
type Handler struct {
	log       *slog.Logger
	registry  *registry.Registry
	gateway   *gateway.Gateway
	inspector *inspector.Inspector
	reporter  *serverinfo.Reporter
	profiles  *profilestore.Store
}

// New creates the API handler.
func New(
	log *slog.Logger,
	reg *registry.Registry,
	gw *gateway.Gateway,
	insp *inspector.Inspector,
	reporter *serverinfo.Reporter,
	profiles *profilestore.Store,
) *Handler {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{
		log:       log.With(logger.Component("api")),
		registry:  reg,
		gateway:   gw,
		inspector: insp,
		reporter:  reporter,
		profiles:  profiles,
	}
}

// Router mounts all console endpoints.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/api/connections", func(r chi.Router) {
		r.Get("/", h.listConnections)
		r.Post("/", h.saveConnection)

		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", h.deleteConnection)
			r.Post("/connect", h.connect)
			r.Post("/disconnect", h.disconnect)
			r.Get("/info", h.serverInfo)
			r.Get("/keys", h.listKeys)
			r.Delete("/keys", h.deleteKeys)
			r.Get("/keys/{name}", h.keyDetails)
			r.Post("/command", h.executeCommand)
			r.Get("/history", h.commandHistory)
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondData(w, map[string]string{"status": "ok"})
}
