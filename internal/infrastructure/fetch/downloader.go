package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"NewspaperAnalyzer/internal/domain"
	"NewspaperAnalyzer/internal/ports"
)

// DefaultUserAgent is sent because several e-paper hosts reject bot agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

const (
	defaultTimeout  = 60 * time.Second
	defaultMaxBytes = 100 << 20
	pdfContentType  = "application/pdf"
)

// DownloaderConfig tunes the HTTP downloader.
type DownloaderConfig struct {
	Timeout   time.Duration
	MaxBytes  int64
	UserAgent string
}

// HTTPDownloader fetches today's PDF of a source over HTTP.
type HTTPDownloader struct {
	client    *http.Client
	registry  *Registry
	userAgent string
	maxBytes  int64
	logger    *slog.Logger
}

var _ ports.Downloader = (*HTTPDownloader)(nil)

// NewHTTPDownloader builds a downloader; zero config values fall back to
// a 60s timeout and a 100 MiB limit.
func NewHTTPDownloader(cfg DownloaderConfig, registry *Registry, logger *slog.Logger) *HTTPDownloader {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = defaultMaxBytes
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if logger == nil {
		logger = slog.Default()
	}
	client := &http.Client{Timeout: cfg.Timeout}
	if registry == nil {
		registry = DefaultRegistry(NewLandingStrategy(client, cfg.UserAgent))
	}
	return &HTTPDownloader{
		client:    client,
		registry:  registry,
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBytes,
		logger:    logger,
	}
}

// Download resolves the PDF URL through the source strategy and returns the
// document bytes. Failures wrap domain.ErrDownload.
func (d *HTTPDownloader) Download(ctx context.Context, source domain.Source) ([]byte, error) {
	strategy, err := d.registry.Resolve(source.Strategy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDownload, err)
	}

	pdfURL, err := strategy.Resolve(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve %s: %w", domain.ErrDownload, source.Name, err)
	}
	d.logger.Debug("downloading pdf", "source", source.Name, "url", pdfURL, "strategy", strategy.Name())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", domain.ErrDownload, err)
	}
	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set("Accept", pdfContentType)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request %s: %w", domain.ErrDownload, pdfURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", domain.ErrDownload, pdfURL, resp.Status)
	}
	if !isPDF(resp.Header.Get("Content-Type")) {
		return nil, fmt.Errorf("%w: unexpected content type %q", domain.ErrDownload, resp.Header.Get("Content-Type"))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, d.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", domain.ErrDownload, err)
	}
	if int64(len(data)) > d.maxBytes {
		return nil, fmt.Errorf("%w: document exceeds %d bytes", domain.ErrDownload, d.maxBytes)
	}

	d.logger.Info("pdf downloaded", "source", source.Name, "bytes", len(data))
	return data, nil
}

// isPDF accepts any media type starting with application/pdf, in any case.
func isPDF(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mediaType)), pdfContentType)
}
