// Package fingerprint computes the content digests that key memoization.
package fingerprint

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/mill/internal/core/domain"
	"go.trai.ch/mill/internal/core/ports"
)

var _ ports.Fingerprinter = (*Fingerprinter)(nil)

// Fingerprinter implements ports.Fingerprinter using XXHash.
type Fingerprinter struct{}

// New creates a new Fingerprinter.
func New() *Fingerprinter {
	return &Fingerprinter{}
}

// Fingerprint computes a single digest from the task's definition and the
// ordered fingerprints of its upstream outputs. A changed upstream output or
// task definition yields a different digest, invalidating the cache entry.
func (f *Fingerprinter) Fingerprint(task *domain.Task, upstream []string) (string, error) {
	hasher := xxhash.New()

	hashTaskDefinition(task, hasher)
	hashConfig(task.Config, hasher)

	for _, fp := range upstream {
		_, _ = hasher.WriteString(fp)
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// hashTaskDefinition hashes the task's name, compute identity and upstream names.
func hashTaskDefinition(task *domain.Task, hasher *xxhash.Digest) {
	_, _ = hasher.WriteString(task.Name.String())
	_, _ = hasher.Write([]byte{0})

	_, _ = hasher.WriteString(task.Identity)
	_, _ = hasher.Write([]byte{0})

	for _, dep := range task.Upstream {
		_, _ = hasher.WriteString(dep.String())
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0}) // Section separator
}

// hashConfig hashes the task's literal config values in a deterministic order.
func hashConfig(config map[string]string, hasher *xxhash.Digest) {
	keys := make([]string, 0, len(config))
	for k := range config {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		_, _ = hasher.WriteString(k)
		_, _ = hasher.Write([]byte{'='})
		_, _ = hasher.WriteString(config[k])
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})
}
