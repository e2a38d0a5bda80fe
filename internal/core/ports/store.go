package ports

import "go.trai.ch/mill/internal/core/domain"

// ResultStore is the memoization store: a persistent mapping from
// fingerprint to the Result computed under it.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ResultStore interface {
	// Lookup retrieves the cache entry for a fingerprint.
	// Returns nil, nil on a miss.
	Lookup(fingerprint string) (*domain.CacheEntry, error)

	// Store persists the entry. Overwriting a fingerprint with a
	// byte-identical result is a no-op; otherwise last write wins.
	Store(entry domain.CacheEntry) error

	// Reset drops every entry. Used by `mill clean`.
	Reset() error
}
