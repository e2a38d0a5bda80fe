package domain

import (
	"bytes"
	"time"
)

// CacheEntry associates a fingerprint with the Result computed under it.
// Entries are never mutated in place; a changed input yields a new
// fingerprint and therefore a new entry.
type CacheEntry struct {
	TaskName    string    `json:"task_name,omitzero"`
	Fingerprint string    `json:"fingerprint,omitzero"`
	Result      Result    `json:"result,omitzero"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// Same reports whether the entry holds a byte-identical result for the same
// fingerprint. Stores use it to turn identical overwrites into no-ops.
func (e CacheEntry) Same(other CacheEntry) bool {
	return e.Fingerprint == other.Fingerprint && bytes.Equal(e.Result, other.Result)
}
