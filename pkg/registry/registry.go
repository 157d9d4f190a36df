package registry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/redispanel/pkg/logger"
)

// Registry owns the mapping from opaque connection identifiers to live Redis
// sessions. Connect and Disconnect are mutually exclusive per id; operations
// on distinct ids proceed independently.
type Registry struct {
	cfg Config
	log *slog.Logger

	mu      sync.Mutex
	entries map[string]*entry
}

// entry holds the per-id session state. The op mutex serializes connect and
// disconnect for one id; mu guards the fields below it. An entry is removed
// from the registry map only by Disconnect while its op mutex is held, so a
// holder that verified the entry is current keeps that guarantee until it
// unlocks op.
type entry struct {
	op sync.Mutex

	mu      sync.Mutex
	client  *redis.Client
	profile Profile
	cancel  context.CancelFunc // cancels an in-flight dial, nil otherwise
}

// New creates an empty registry.
func New(cfg Config, log *slog.Logger) *Registry {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Registry{
		cfg:     cfg.withDefaults(),
		log:     log.With(logger.Component("registry")),
		entries: make(map[string]*entry),
	}
}

func (r *Registry) entry(id string) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		e = &entry{}
		r.entries[id] = e
	}
	return e
}

// abortDial cancels any in-flight connect attempt for the entry so a
// subsequent connect or disconnect does not wait out the backoff loop.
func (e *entry) abortDial() {
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.mu.Unlock()
}

// acquire returns the current entry for id with its op mutex held, cancelling
// any in-flight connect first. The loop handles losing a race with Disconnect:
// if the entry was removed from the map while we waited for its lock, it is
// stale and we start over with a fresh one.
func (r *Registry) acquire(id string) *entry {
	for {
		e := r.entry(id)
		e.abortDial()
		e.op.Lock()

		r.mu.Lock()
		current := r.entries[id] == e
		r.mu.Unlock()
		if current {
			return e
		}
		e.op.Unlock()
	}
}

// Connect opens a session for id described by the profile and registers it.
// An existing session for the same id is closed first; close failure does not
// block the new session. An in-flight connect for the same id is cancelled.
//
// Connection attempts retry with a bounded backoff delay of
// min(attempt * RetryBaseDelay, RetryMaxDelay) until either an attempt
// succeeds, MaxAttempts is exhausted, or ctx is cancelled.
func (r *Registry) Connect(ctx context.Context, id string, p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	e := r.acquire(id)
	defer e.op.Unlock()

	// Take over: terminate the previous session best-effort.
	e.mu.Lock()
	old := e.client
	e.client = nil
	e.mu.Unlock()
	if old != nil {
		if err := old.Close(); err != nil {
			r.log.Warn("failed to close previous session",
				logger.ConnectionID(id), logger.Error(err))
		}
	}

	dialCtx, cancel := context.WithCancel(ctx)
	e.mu.Lock()
	e.cancel = cancel
	e.mu.Unlock()
	defer func() {
		cancel()
		e.mu.Lock()
		e.cancel = nil
		e.mu.Unlock()
	}()

	var lastErr error
	for attempt := 1; ; attempt++ {
		client := redis.NewClient(&redis.Options{
			Addr:        p.Addr(),
			Password:    p.Password,
			DB:          p.DB,
			DialTimeout: r.cfg.DialTimeout,
			MaxRetries:  -1, // the registry owns the retry policy
		})

		pingCtx, pingCancel := context.WithTimeout(dialCtx, r.cfg.DialTimeout)
		err := client.Ping(pingCtx).Err()
		pingCancel()
		if err == nil {
			e.mu.Lock()
			e.client = client
			e.profile = p
			e.mu.Unlock()
			r.log.Info("session opened",
				logger.ConnectionID(id), slog.String("addr", p.Addr()))
			return nil
		}
		_ = client.Close()
		lastErr = err

		if r.cfg.MaxAttempts > 0 && attempt >= r.cfg.MaxAttempts {
			return errors.Join(ErrConnectFailed, lastErr)
		}

		select {
		case <-dialCtx.Done():
			return errors.Join(ErrConnectFailed, dialCtx.Err(), lastErr)
		case <-time.After(r.cfg.backoff(attempt)):
		}
	}
}

// Disconnect closes the session for id and removes it from the registry.
// A missing session is not an error. Any in-flight connect for the same id
// is cancelled.
func (r *Registry) Disconnect(id string) error {
	r.mu.Lock()
	_, ok := r.entries[id]
	r.mu.Unlock()
	if !ok {
		return nil
	}

	e := r.acquire(id)
	defer e.op.Unlock()

	e.mu.Lock()
	client := e.client
	e.client = nil
	e.mu.Unlock()

	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()

	if client != nil {
		if err := client.Close(); err != nil {
			r.log.Warn("failed to close session",
				logger.ConnectionID(id), logger.Error(err))
		}
		r.log.Info("session closed", logger.ConnectionID(id))
	}
	return nil
}

// Lookup returns the live session for id, or ErrNotConnected. Pure read.
func (r *Registry) Lookup(id string) (*redis.Client, error) {
	r.mu.Lock()
	e, ok := r.entries[id]
	r.mu.Unlock()
	if !ok {
		return nil, ErrNotConnected
	}

	e.mu.Lock()
	client := e.client
	e.mu.Unlock()
	if client == nil {
		return nil, ErrNotConnected
	}
	return client, nil
}

// Connected reports whether id has a live session.
func (r *Registry) Connected(id string) bool {
	_, err := r.Lookup(id)
	return err == nil
}

// Live returns the ids of all live sessions.
func (r *Registry) Live() []string {
	r.mu.Lock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	live := ids[:0]
	for _, id := range ids {
		if r.Connected(id) {
			live = append(live, id)
		}
	}
	return live
}

// Close disconnects every registered session. Used on shutdown.
func (r *Registry) Close() {
	r.mu.Lock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	for _, id := range ids {
		_ = r.Disconnect(id)
	}
}
