package serverinfo

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/redispanel/pkg/logger"
	"github.com/dmitrymomot/redispanel/pkg/registry"
)

// Reporter translates INFO queries against a registered session into typed
// snapshots.
type Reporter struct {
	reg *registry.Registry
	log *slog.Logger
}

// New creates a reporter backed by the given registry.
func New(reg *registry.Registry, log *slog.Logger) *Reporter {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Reporter{
		reg: reg,
		log: log.With(logger.Component("serverinfo")),
	}
}

// Snapshot issues INFO against the session registered under id and parses
// the reply. INFO lines the parser does not recognize are ignored rather
// than failing the snapshot.
func (r *Reporter) Snapshot(ctx context.Context, id string) (Snapshot, error) {
	client, err := r.reg.Lookup(id)
	if err != nil {
		return Snapshot{}, err
	}

	info, err := client.Info(ctx).Result()
	if err != nil {
		return Snapshot{}, fmt.Errorf("info query: %w", err)
	}
	return Parse(info), nil
}
