package ports

import "go.trai.ch/margin/internal/core/domain"

// ConfigLoader defines the interface for loading the margin configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path and applies environment overrides.
	// An empty path looks up margin.yaml in the working directory and falls back to
	// defaults when it does not exist.
	Load(path string) (*domain.Config, error)
}
