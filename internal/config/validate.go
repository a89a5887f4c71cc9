package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"NewspaperAnalyzer/internal/domain"
)

// Validate reports every problem found; the result matches
// domain.ErrConfiguration when anything is wrong.
func (c Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Database.Driver) {
	case DriverSQLite:
	case DriverPostgres:
		if c.Database.DSN == "" {
			errs = append(errs, ErrMissingDSN)
		}
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownDriver, c.Database.Driver))
	}

	if strings.TrimSpace(c.LLM.APIKey) == "" {
		errs = append(errs, ErrMissingAPIKey)
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		errs = append(errs, ErrMissingModel)
	}
	if c.Analysis.ChunkSize <= 0 {
		errs = append(errs, ErrInvalidChunkSize)
	}

	seen := map[string]struct{}{}
	for _, s := range c.Sources {
		if err := validateSource(s); err != nil {
			errs = append(errs, err)
		}
		key := strings.ToLower(s.Name)
		if _, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("%w: duplicate name %q", ErrInvalidSource, s.Name))
		}
		seen[key] = struct{}{}
	}
	if len(domain.EnabledSources(c.DomainSources())) == 0 {
		errs = append(errs, ErrNoSources)
	}

	return errors.Join(errs...)
}

// ValidateForRun is Validate plus the settings only a daily run needs: the
// availability check must point at an http(s) URL.
func (c Config) ValidateForRun() error {
	err := c.Validate()
	u, perr := url.Parse(c.Availability.URL)
	if c.Availability.URL == "" || perr != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		err = errors.Join(err, ErrMissingAppURL)
	}
	return err
}

func validateSource(s SourceConfig) error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidSource)
	}
	u, err := url.Parse(s.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s has no http(s) url", ErrInvalidSource, s.Name)
	}
	switch s.Strategy {
	case "", domain.StrategyDirect, domain.StrategyLanding:
		return nil
	default:
		return fmt.Errorf("%w: %s uses unknown strategy %q", ErrInvalidSource, s.Name, s.Strategy)
	}
}
