package ports

import "go.trai.ch/mill/internal/core/domain"

// ConfigLoader defines the interface for loading the pipeline definition.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the pipeline definition from the given working directory.
	Load(cwd string) (*domain.Pipeline, error)
}
