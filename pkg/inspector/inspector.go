package inspector

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/redispanel/pkg/logger"
	"github.com/dmitrymomot/redispanel/pkg/registry"
)

// scanBatchSize is the COUNT hint passed to SCAN so enumeration does not
// block the server on large keyspaces.
const scanBatchSize = 1000

// KeySummary describes one key in a listing. It is recomputed on every
// request and never cached by the inspector.
type KeySummary struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	TTLSeconds int64  `json:"ttl_seconds"` // -1 means no expiry
}

// Page is one page of a key listing, produced after the full candidate set
// for the pattern has been materialized and sorted.
type Page struct {
	Keys     []KeySummary `json:"keys"`
	Total    int          `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

// ZSetMember is one member of a sorted set value.
type ZSetMember struct {
	Member string  `json:"member"`
	Score  float64 `json:"score"`
}

// StreamEntry is one message of a stream value.
type StreamEntry struct {
	ID     string            `json:"id"`
	Fields map[string]string `json:"fields"`
}

// KeyDetails carries the full value payload for a single key. Value's shape
// depends on Type: string, []string, []ZSetMember, map[string]string, or
// []StreamEntry. Encoding and MemoryBytes are best-effort: servers that do
// not expose them leave the zero value.
type KeyDetails struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	TTLSeconds  int64  `json:"ttl_seconds"`
	Encoding    string `json:"encoding,omitempty"`
	MemoryBytes int64  `json:"memory_bytes,omitempty"`
	Value       any    `json:"value"`
}

// ListQuery parametrizes a key listing.
type ListQuery struct {
	Pattern   string `json:"pattern"`
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
	SortBy    string `json:"sort_by"`    // name, type, ttl
	SortOrder string `json:"sort_order"` // asc, desc
}

func (q ListQuery) normalize() ListQuery {
	if q.Pattern == "" {
		q.Pattern = "*"
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 50
	}
	if q.PageSize > 1000 {
		q.PageSize = 1000
	}
	switch q.SortBy {
	case "name", "type", "ttl":
	default:
		q.SortBy = "name"
	}
	switch q.SortOrder {
	case "asc", "desc":
	default:
		q.SortOrder = "asc"
	}
	return q
}

// Inspector provides derived read and delete operations over keys of a
// registered session.
type Inspector struct {
	reg *registry.Registry
	log *slog.Logger
}

// New creates an inspector backed by the given registry.
func New(reg *registry.Registry, log *slog.Logger) *Inspector {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Inspector{
		reg: reg,
		log: log.With(logger.Component("inspector")),
	}
}

// ListKeys enumerates keys matching the glob pattern, probes type and TTL for
// each, then sorts and paginates the materialized set. This is a full
// materialization by design and does not scale to huge keyspaces.
func (i *Inspector) ListKeys(ctx context.Context, id string, q ListQuery) (Page, error) {
	client, err := i.reg.Lookup(id)
	if err != nil {
		return Page{}, err
	}
	q = q.normalize()

	names, err := scanAll(ctx, client, q.Pattern)
	if err != nil {
		return Page{}, fmt.Errorf("scan keys: %w", err)
	}

	summaries, err := probe(ctx, client, names)
	if err != nil {
		return Page{}, fmt.Errorf("probe keys: %w", err)
	}

	sortSummaries(summaries, q.SortBy, q.SortOrder)

	total := len(summaries)
	start := (q.Page - 1) * q.PageSize
	if start > total {
		start = total
	}
	end := start + q.PageSize
	if end > total {
		end = total
	}

	return Page{
		Keys:     summaries[start:end],
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
	}, nil
}

// scanAll walks the SCAN cursor to completion for the pattern.
func scanAll(ctx context.Context, client *redis.Client, pattern string) ([]string, error) {
	var (
		names  []string
		cursor uint64
	)
	for {
		batch, next, err := client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return nil, err
		}
		names = append(names, batch...)
		cursor = next
		if cursor == 0 {
			return names, nil
		}
	}
}

// probe fetches type and TTL for every key in one pipeline round-trip.
// Keys that vanished between scan and probe are dropped.
func probe(ctx context.Context, client *redis.Client, names []string) ([]KeySummary, error) {
	if len(names) == 0 {
		return []KeySummary{}, nil
	}

	pipe := client.Pipeline()
	typeCmds := make([]*redis.StatusCmd, len(names))
	ttlCmds := make([]*redis.DurationCmd, len(names))
	for i, name := range names {
		typeCmds[i] = pipe.Type(ctx, name)
		ttlCmds[i] = pipe.TTL(ctx, name)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	summaries := make([]KeySummary, 0, len(names))
	for i, name := range names {
		keyType := typeCmds[i].Val()
		if keyType == "none" {
			continue
		}
		summaries = append(summaries, KeySummary{
			Name:       name,
			Type:       keyType,
			TTLSeconds: ttlSeconds(ttlCmds[i]),
		})
	}
	return summaries, nil
}

func ttlSeconds(cmd *redis.DurationCmd) int64 {
	d := cmd.Val()
	if d < 0 {
		return -1
	}
	return int64(d.Seconds())
}

func sortSummaries(keys []KeySummary, by, order string) {
	less := func(a, b KeySummary) bool { return a.Name < b.Name }
	switch by {
	case "type":
		less = func(a, b KeySummary) bool {
			if a.Type != b.Type {
				return a.Type < b.Type
			}
			return a.Name < b.Name
		}
	case "ttl":
		less = func(a, b KeySummary) bool {
			if a.TTLSeconds != b.TTLSeconds {
				return a.TTLSeconds < b.TTLSeconds
			}
			return a.Name < b.Name
		}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		if order == "desc" {
			return less(keys[j], keys[i])
		}
		return less(keys[i], keys[j])
	})
}

// KeyDetails fetches type, TTL, and the full value payload for one key.
// Encoding and memory estimate are fetched best-effort: their absence is not
// an error.
func (i *Inspector) KeyDetails(ctx context.Context, id, name string) (KeyDetails, error) {
	client, err := i.reg.Lookup(id)
	if err != nil {
		return KeyDetails{}, err
	}

	keyType, err := client.Type(ctx, name).Result()
	if err != nil {
		return KeyDetails{}, fmt.Errorf("type of %q: %w", name, err)
	}
	if keyType == "none" {
		return KeyDetails{}, ErrKeyNotFound
	}

	details := KeyDetails{Name: name, Type: keyType}

	ttl, err := client.TTL(ctx, name).Result()
	if err != nil {
		return KeyDetails{}, fmt.Errorf("ttl of %q: %w", name, err)
	}
	if ttl < 0 {
		details.TTLSeconds = -1
	} else {
		details.TTLSeconds = int64(ttl.Seconds())
	}

	details.Value, err = fetchValue(ctx, client, name, keyType)
	if err != nil {
		return KeyDetails{}, fmt.Errorf("value of %q: %w", name, err)
	}

	// Optional metadata: older servers and test doubles may not support
	// OBJECT ENCODING or MEMORY USAGE.
	if enc, err := client.ObjectEncoding(ctx, name).Result(); err == nil {
		details.Encoding = enc
	}
	if mem, err := client.MemoryUsage(ctx, name).Result(); err == nil {
		details.MemoryBytes = mem
	}

	return details, nil
}

func fetchValue(ctx context.Context, client *redis.Client, name, keyType string) (any, error) {
	switch keyType {
	case "string":
		return client.Get(ctx, name).Result()
	case "list":
		return client.LRange(ctx, name, 0, -1).Result()
	case "set":
		members, err := client.SMembers(ctx, name).Result()
		if err != nil {
			return nil, err
		}
		sort.Strings(members)
		return members, nil
	case "zset":
		zs, err := client.ZRangeWithScores(ctx, name, 0, -1).Result()
		if err != nil {
			return nil, err
		}
		members := make([]ZSetMember, len(zs))
		for i, z := range zs {
			members[i] = ZSetMember{Member: fmt.Sprint(z.Member), Score: z.Score}
		}
		return members, nil
	case "hash":
		return client.HGetAll(ctx, name).Result()
	case "stream":
		msgs, err := client.XRange(ctx, name, "-", "+").Result()
		if err != nil {
			return nil, err
		}
		entries := make([]StreamEntry, len(msgs))
		for i, msg := range msgs {
			fields := make(map[string]string, len(msg.Values))
			for k, v := range msg.Values {
				fields[k] = fmt.Sprint(v)
			}
			entries[i] = StreamEntry{ID: msg.ID, Fields: fields}
		}
		return entries, nil
	default:
		// Module types and future additions: report the key without a payload.
		return nil, nil
	}
}

// DeleteKeys removes the named keys in one batch and returns the number
// actually deleted. Names that do not exist are not an error.
func (i *Inspector) DeleteKeys(ctx context.Context, id string, names []string) (int64, error) {
	client, err := i.reg.Lookup(id)
	if err != nil {
		return 0, err
	}
	if len(names) == 0 {
		return 0, nil
	}

	deleted, err := client.Del(ctx, names...).Result()
	if err != nil {
		return 0, fmt.Errorf("delete keys: %w", err)
	}
	i.log.Info("keys deleted",
		logger.ConnectionID(id),
		slog.Int("requested", len(names)),
		slog.Int64("deleted", deleted),
	)
	return deleted, nil
}
