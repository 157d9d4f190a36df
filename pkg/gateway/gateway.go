package gateway

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/redispanel/pkg/logger"
	"github.com/dmitrymomot/redispanel/pkg/registry"
)

// DefaultHistoryLimit bounds the per-connection outcome history.
const DefaultHistoryLimit = 50

// Outcome is the immutable record of one executed command.
type Outcome struct {
	Command   string    `json:"command"`
	Reply     Reply     `json:"reply"`
	Error     string    `json:"error,omitempty"`
	ElapsedMS int64     `json:"elapsed_ms"`
	IssuedAt  time.Time `json:"issued_at"`
}

// Gateway validates and forwards raw commands to a registered session. Beyond
// the registry it owns only the bounded per-connection outcome history.
type Gateway struct {
	reg          *registry.Registry
	log          *slog.Logger
	historyLimit int

	mu      sync.Mutex
	history map[string][]Outcome // most-recent-first
}

// New creates a gateway backed by the given registry.
func New(reg *registry.Registry, log *slog.Logger) *Gateway {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Gateway{
		reg:          reg,
		log:          log.With(logger.Component("gateway")),
		historyLimit: DefaultHistoryLimit,
		history:      make(map[string][]Outcome),
	}
}

// Execute tokenizes raw on whitespace and forwards it as a single command to
// the session registered under id. Quoting and escaping are not supported.
//
// Server-side rejection of the command is not a gateway fault: it is captured
// in the outcome's Error field and the outcome is still recorded in history.
// The only error returns are an empty command and a missing session, neither
// of which leaves a trace in history.
func (g *Gateway) Execute(ctx context.Context, id, raw string) (Outcome, error) {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return Outcome{}, ErrEmptyCommand
	}

	client, err := g.reg.Lookup(id)
	if err != nil {
		return Outcome{}, err
	}

	args := make([]any, len(tokens))
	for i, tok := range tokens {
		args[i] = tok
	}

	start := time.Now()
	val, err := client.Do(ctx, args...).Result()
	elapsed := time.Since(start)

	outcome := Outcome{
		Command:   raw,
		ElapsedMS: elapsed.Milliseconds(),
		IssuedAt:  start,
	}
	switch {
	case errors.Is(err, redis.Nil):
		outcome.Reply = Reply{Kind: ReplyNull}
	case err != nil:
		outcome.Error = err.Error()
		outcome.Reply = Reply{Kind: ReplyError, Text: err.Error()}
	default:
		outcome.Reply = replyFrom(val)
	}

	g.log.Debug("command executed",
		logger.ConnectionID(id),
		logger.Command(tokens[0]),
		logger.Elapsed(elapsed),
	)

	g.record(id, outcome)
	return outcome, nil
}

// record prepends the outcome and trims the history to the retention limit.
func (g *Gateway) record(id string, o Outcome) {
	g.mu.Lock()
	defer g.mu.Unlock()

	h := append([]Outcome{o}, g.history[id]...)
	if len(h) > g.historyLimit {
		h = h[:g.historyLimit]
	}
	g.history[id] = h
}

// History returns the recorded outcomes for id, most recent first. The
// returned slice is a copy. A connection with no recorded commands yields an
// empty history, whether or not it is currently registered.
func (g *Gateway) History(id string) []Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()

	h := g.history[id]
	out := make([]Outcome, len(h))
	copy(out, h)
	return out
}

// Forget drops the recorded history for id. Called when a connection profile
// is deleted.
func (g *Gateway) Forget(id string) {
	g.mu.Lock()
	delete(g.history, id)
	g.mu.Unlock()
}
