package config

import (
	"fmt"

	"NewspaperAnalyzer/internal/domain"
)

// Validation failures; all of them match domain.ErrConfiguration.
var (
	ErrConfigFile       = fmt.Errorf("%w: config file", domain.ErrConfiguration)
	ErrUnknownDriver    = fmt.Errorf("%w: unknown database driver", domain.ErrConfiguration)
	ErrMissingDSN       = fmt.Errorf("%w: database dsn is required", domain.ErrConfiguration)
	ErrMissingAPIKey    = fmt.Errorf("%w: llm api key is required", domain.ErrConfiguration)
	ErrMissingModel     = fmt.Errorf("%w: llm model is required", domain.ErrConfiguration)
	ErrInvalidChunkSize = fmt.Errorf("%w: chunk size must be positive", domain.ErrConfiguration)
	ErrNoSources        = fmt.Errorf("%w: no enabled source", domain.ErrConfiguration)
	ErrInvalidSource    = fmt.Errorf("%w: invalid source", domain.ErrConfiguration)
	ErrMissingAppURL    = fmt.Errorf("%w: availability url is required", domain.ErrConfiguration)
)
