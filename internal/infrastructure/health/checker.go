package health

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"NewspaperAnalyzer/internal/ports"
)

const defaultTimeout = 30 * time.Second

// Checker probes the analysis web application with a plain GET.
type Checker struct {
	url    string
	client *http.Client
}

var _ ports.AvailabilityChecker = (*Checker)(nil)

// NewChecker builds a checker; a non-positive timeout means 30s.
func NewChecker(url string, timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Checker{url: url, client: &http.Client{Timeout: timeout}}
}

// Check succeeds only on HTTP 200.
func (c *Checker) Check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("probe %s: %w", c.url, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("probe %s returned %s", c.url, resp.Status)
	}
	return nil
}
