// Package cache implements the persistent memoization store.
package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/mill/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultPath is the store location relative to the working directory.
const DefaultPath = ".mill/cache.json"

// Store implements ports.ResultStore using a flat JSON file keyed by
// fingerprint. The file survives process restarts so an unchanged pipeline
// skips all work on re-run.
type Store struct {
	path    string
	mu      sync.RWMutex
	entries map[string]domain.CacheEntry
}

// NewStore creates a ResultStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:    filepath.Clean(path),
		entries: make(map[string]domain.CacheEntry),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read result store")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		return zerr.Wrap(err, "failed to unmarshal result store")
	}

	return nil
}

func (s *Store) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal result store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for result store")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write result store")
	}

	return nil
}

// Lookup retrieves the cache entry for a fingerprint. Returns nil, nil on a miss.
func (s *Store) Lookup(fingerprint string) (*domain.CacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[fingerprint]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// Store persists the entry under its fingerprint. A byte-identical overwrite
// is a no-op; otherwise the last write wins.
func (s *Store) Store(entry domain.CacheEntry) error {
	s.mu.Lock()
	if existing, ok := s.entries[entry.Fingerprint]; ok && existing.Same(entry) {
		s.mu.Unlock()
		return nil
	}
	s.entries[entry.Fingerprint] = entry
	s.mu.Unlock()

	return s.save()
}

// Reset drops every entry and truncates the backing file.
func (s *Store) Reset() error {
	s.mu.Lock()
	s.entries = make(map[string]domain.CacheEntry)
	s.mu.Unlock()

	return s.save()
}
