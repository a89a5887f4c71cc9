package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"NewspaperAnalyzer/internal/config"
	"NewspaperAnalyzer/internal/domain"
)

type staticGenerator struct{}

func (staticGenerator) Generate(context.Context, string) (string, error) {
	return "", nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, DSN: filepath.Join(t.TempDir(), "app.db")},
		LLM:      config.LLMConfig{APIKey: "test", Model: "gemini-1.5-flash"},
		Availability: config.AvailabilityConfig{
			Attempts: 1,
		},
		Analysis: config.AnalysisConfig{ChunkSize: 15000},
		Run:      config.RunConfig{Timezone: "UTC"},
		Sources: []config.SourceConfig{
			{Name: "MZ", URL: "https://epaper.example/today.pdf", Enabled: true},
		},
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.LLM.APIKey = ""

	if _, err := New(context.Background(), cfg, quietLogger()); !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestCheckHealth(t *testing.T) {
	t.Parallel()

	var status atomic.Int32
	status.Store(http.StatusOK)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	}))
	defer server.Close()

	cfg := testConfig(t)
	cfg.Availability.URL = server.URL

	application, err := New(context.Background(), cfg, quietLogger(), WithGenerator(staticGenerator{}))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer application.Close()

	if err := application.CheckHealth(context.Background()); err != nil {
		t.Fatalf("CheckHealth error: %v", err)
	}

	status.Store(http.StatusBadGateway)
	if err := application.CheckHealth(context.Background()); !errors.Is(err, domain.ErrAvailability) {
		t.Fatalf("expected ErrAvailability, got %v", err)
	}
}

func TestRunWithoutStorage(t *testing.T) {
	t.Parallel()

	application, err := New(context.Background(), testConfig(t), quietLogger(), WithoutStorage(), WithGenerator(staticGenerator{}))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if _, err := application.Run(context.Background()); !errors.Is(err, ErrStorageDisabled) {
		t.Fatalf("expected ErrStorageDisabled, got %v", err)
	}
	if err := application.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	application, err := New(context.Background(), testConfig(t), quietLogger(), WithoutStorage(), WithGenerator(staticGenerator{}))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if _, err := application.Analyze(context.Background(), "Unbekannt", []byte("x")); !errors.Is(err, config.ErrInvalidSource) {
		t.Fatalf("expected ErrInvalidSource, got %v", err)
	}

	_, err = application.Analyze(context.Background(), "mz", []byte("not a pdf"))
	var se *domain.StageError
	if !errors.As(err, &se) || se.Stage != domain.StageExtract {
		t.Fatalf("expected extract stage error, got %v", err)
	}
}

func TestRunRequiresAvailabilityURL(t *testing.T) {
	t.Parallel()

	application, err := New(context.Background(), testConfig(t), quietLogger(), WithGenerator(staticGenerator{}))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer application.Close()

	summary, err := application.Run(context.Background())
	if !errors.Is(err, config.ErrMissingAppURL) {
		t.Fatalf("expected ErrMissingAppURL, got %v", err)
	}
	if summary.Processed != 0 {
		t.Fatalf("no source may be processed, got %+v", summary)
	}
}

func TestRunPolicyOverlaysDefaults(t *testing.T) {
	t.Parallel()

	policy := runPolicy(config.Config{Analysis: config.AnalysisConfig{ChunkSize: 8000}})
	if policy.ChunkSize != 8000 {
		t.Fatalf("chunk size = %d", policy.ChunkSize)
	}
	if policy.AvailabilityAttempts != 5 || policy.AvailabilityDelay != 3*time.Minute {
		t.Fatalf("defaults lost: %+v", policy)
	}

	policy = runPolicy(config.Config{Availability: config.AvailabilityConfig{Attempts: 2, Delay: time.Second}})
	if policy.AvailabilityAttempts != 2 || policy.AvailabilityDelay != time.Second || policy.ChunkSize != 15000 {
		t.Fatalf("unexpected policy %+v", policy)
	}
}
