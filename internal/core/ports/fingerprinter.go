package ports

import "go.trai.ch/mill/internal/core/domain"

// Fingerprinter computes the deterministic digest that keys memoization.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type Fingerprinter interface {
	// Fingerprint digests the task's definition (name, identity, config)
	// together with the ordered fingerprints of its resolved upstream
	// outputs. Identical inputs must always produce identical digests.
	Fingerprint(task *domain.Task, upstream []string) (string, error)
}
