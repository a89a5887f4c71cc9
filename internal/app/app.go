package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"NewspaperAnalyzer/internal/analysis"
	"NewspaperAnalyzer/internal/articleparser"
	"NewspaperAnalyzer/internal/config"
	"NewspaperAnalyzer/internal/domain"
	"NewspaperAnalyzer/internal/infrastructure/fetch"
	"NewspaperAnalyzer/internal/infrastructure/health"
	"NewspaperAnalyzer/internal/infrastructure/llm"
	"NewspaperAnalyzer/internal/infrastructure/pdftext"
	"NewspaperAnalyzer/internal/infrastructure/storage"
	"NewspaperAnalyzer/internal/logging"
	"NewspaperAnalyzer/internal/pacing"
	"NewspaperAnalyzer/internal/ports"
	"NewspaperAnalyzer/internal/usecase"
)

// Option adjusts how New wires the application.
type Option func(*options)

type options struct {
	storage   bool
	generator ports.Generator
}

// WithoutStorage skips opening the database; daily runs are then refused.
func WithoutStorage() Option {
	return func(o *options) { o.storage = false }
}

// WithGenerator replaces the language model adapter.
func WithGenerator(g ports.Generator) Option {
	return func(o *options) { o.generator = g }
}

// ErrStorageDisabled is returned by Run on an application built WithoutStorage.
var ErrStorageDisabled = errors.New("storage is disabled")

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg          config.Config
	logger       *slog.Logger
	db           *sql.DB
	checker      ports.AvailabilityChecker
	orchestrator *usecase.Orchestrator
}

// New validates cfg and builds a runnable application.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger, opts ...Option) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	o := options{storage: true}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Application{cfg: cfg, logger: baseLogger}
	now := a.Now

	generator := o.generator
	if generator == nil {
		client, err := llm.NewClient(cfg.LLM)
		if err != nil {
			return nil, err
		}
		generator = client
	}

	var gateway *usecase.Gateway
	if o.storage {
		db, err := storage.Open(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
		}
		repo, err := storage.NewSQLRepository(db, cfg.Database.Driver)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		if err := repo.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
		}
		a.db = db
		gateway = usecase.NewGateway(repo, now, baseLogger.With("component", "gateway"))
	}

	if cfg.Availability.URL != "" {
		a.checker = health.NewChecker(cfg.Availability.URL, cfg.Availability.Timeout)
	}

	downloader := fetch.NewHTTPDownloader(fetch.DownloaderConfig{
		Timeout:   cfg.Download.Timeout,
		MaxBytes:  cfg.Download.MaxBytes,
		UserAgent: cfg.Download.UserAgent,
	}, nil, baseLogger.With("component", "fetch"))

	a.orchestrator = usecase.NewOrchestrator(usecase.OrchestratorDeps{
		Sources:      cfg.DomainSources(),
		Downloader:   downloader,
		Extractor:    pdftext.NewExtractor(baseLogger.With("component", "pdf")),
		Analyzer:     analysis.NewClient(generator, pacing.Every(cfg.LLM.CallInterval), baseLogger.With("component", "analysis")),
		Parser:       articleparser.New(baseLogger.With("component", "parser")),
		Gateway:      gateway,
		Availability: a.checker,
		SourcePacer:  pacing.Fixed(cfg.Run.SourceInterval),
		Policy:       runPolicy(cfg),
		Now:          now,
		Logger:       baseLogger.With("component", "orchestrator"),
	})

	return a, nil
}

// runPolicy overlays the configured limits on usecase.DefaultRunPolicy.
func runPolicy(cfg config.Config) usecase.RunPolicy {
	policy := usecase.DefaultRunPolicy()
	if cfg.Analysis.ChunkSize > 0 {
		policy.ChunkSize = cfg.Analysis.ChunkSize
	}
	if cfg.Availability.Attempts > 0 {
		policy.AvailabilityAttempts = cfg.Availability.Attempts
	}
	if cfg.Availability.Delay > 0 {
		policy.AvailabilityDelay = cfg.Availability.Delay
	}
	return policy
}

// Now returns the current time in the configured timezone.
func (a *Application) Now() time.Time {
	return time.Now().In(a.cfg.Run.Location())
}

// Run performs one daily run over all enabled sources. It refuses to start
// without storage or without an availability URL to poll.
func (a *Application) Run(ctx context.Context) (domain.RunSummary, error) {
	if a.db == nil {
		return domain.RunSummary{}, ErrStorageDisabled
	}
	if err := a.cfg.ValidateForRun(); err != nil {
		return domain.RunSummary{}, err
	}
	return a.orchestrator.RunDaily(ctx)
}

// CheckHealth checks the analysis application once and pings the database.
func (a *Application) CheckHealth(ctx context.Context) error {
	var errs []error
	if a.checker != nil {
		if err := a.checker.Check(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", domain.ErrAvailability, err))
		}
	}
	if a.db != nil {
		if err := a.db.PingContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", domain.ErrPersistence, err))
		}
	}
	return errors.Join(errs...)
}

// Analyze runs one source without persisting. A nil document is downloaded.
func (a *Application) Analyze(ctx context.Context, sourceName string, document []byte) ([]domain.Article, error) {
	source, ok := a.cfg.FindSource(sourceName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown source %q", config.ErrInvalidSource, sourceName)
	}
	return a.orchestrator.DryRun(ctx, source, document)
}

// Close releases the database connection.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
