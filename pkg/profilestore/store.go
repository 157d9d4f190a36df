package profilestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/dgraph-io/badger/v3"

	"github.com/dmitrymomot/redispanel/pkg/logger"
	"github.com/dmitrymomot/redispanel/pkg/registry"
)

// keyPrefix namespaces profile records inside the key-value store.
const keyPrefix = "profile:"

type Config struct {
	Dir      string `env:"PROFILE_STORE_DIR" envDefault:"./data/profiles"` // Dir is the on-disk location of the profile database.
	InMemory bool   `env:"PROFILE_STORE_IN_MEMORY" envDefault:"false"`     // InMemory keeps profiles in memory only; useful for tests.
}

// Store persists saved connection profiles in a local Badger key-value
// database. Profiles are loaded at startup and written on every mutation.
type Store struct {
	db  *badger.DB
	log *slog.Logger
}

// Open opens (or creates) the profile database.
func Open(cfg Config, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Dir == "" && !cfg.InMemory {
		return nil, errors.New("profilestore: dir is required")
	}

	opts := badger.DefaultOptions(cfg.Dir).
		WithInMemory(cfg.InMemory).
		WithLogger(nil)
	if cfg.InMemory {
		opts.Dir = ""
		opts.ValueDir = ""
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("profilestore: open db: %w", err)
	}
	return &Store{
		db:  db,
		log: log.With(logger.Component("profilestore")),
	}, nil
}

func profileKey(id string) []byte {
	return []byte(keyPrefix + id)
}

// Save writes the profile, overwriting any existing record with the same id.
func (s *Store) Save(p registry.Profile) error {
	if p.ID == "" {
		return ErrMissingID
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("profilestore: encode profile: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(profileKey(p.ID), data)
	})
}

// Get returns the saved profile for id.
func (s *Store) Get(id string) (registry.Profile, error) {
	var p registry.Profile
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(profileKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrProfileNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &p)
		})
	})
	if err != nil {
		return registry.Profile{}, err
	}
	return p, nil
}

// Delete removes the saved profile for id. Missing profiles are not an error.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(profileKey(id))
	})
}

// List returns all saved profiles ordered by name, then id.
func (s *Store) List() ([]registry.Profile, error) {
	profiles := []registry.Profile{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var p registry.Profile
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &p)
			})
			if err != nil {
				// A corrupt record should not hide the rest of the list.
				s.log.Warn("skipping unreadable profile record", logger.Error(err))
				continue
			}
			profiles = append(profiles, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].Name != profiles[j].Name {
			return profiles[i].Name < profiles[j].Name
		}
		return profiles[i].ID < profiles[j].ID
	})
	return profiles, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
