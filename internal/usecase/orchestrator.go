package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"

	"NewspaperAnalyzer/internal/chunker"
	"NewspaperAnalyzer/internal/domain"
	"NewspaperAnalyzer/internal/ports"
)

// ChunkAnalyzer sends chunks to the language model and concatenates the answers.
type ChunkAnalyzer interface {
	Analyze(ctx context.Context, chunks []domain.Chunk, sourceName, date string) string
}

// ArticleParser turns the concatenated answers into articles.
type ArticleParser interface {
	Parse(text string) []domain.Article
}

// RunPolicy holds the fixed limits of a daily run.
type RunPolicy struct {
	ChunkSize            int
	AvailabilityAttempts uint
	AvailabilityDelay    time.Duration
}

// DefaultRunPolicy mirrors the production schedule: 15000-character chunks
// and five availability probes three minutes apart.
func DefaultRunPolicy() RunPolicy {
	return RunPolicy{
		ChunkSize:            chunker.DefaultMaxSize,
		AvailabilityAttempts: 5,
		AvailabilityDelay:    3 * time.Minute,
	}
}

// OrchestratorDeps wires all driven adapters into the orchestrator.
type OrchestratorDeps struct {
	Sources      []domain.Source
	Downloader   ports.Downloader
	Extractor    ports.TextExtractor
	Analyzer     ChunkAnalyzer
	Parser       ArticleParser
	Gateway      *Gateway
	Availability ports.AvailabilityChecker
	SourcePacer  ports.Pacer
	Policy       RunPolicy
	Now          func() time.Time
	Logger       *slog.Logger
}

// Orchestrator drives sources through download, extraction, analysis,
// parsing and persistence, strictly one at a time.
type Orchestrator struct {
	sources      []domain.Source
	downloader   ports.Downloader
	extractor    ports.TextExtractor
	analyzer     ChunkAnalyzer
	parser       ArticleParser
	gateway      *Gateway
	availability ports.AvailabilityChecker
	sourcePacer  ports.Pacer
	policy       RunPolicy
	now          func() time.Time
	logger       *slog.Logger
}

// NewOrchestrator constructs the orchestration component.
func NewOrchestrator(deps OrchestratorDeps) *Orchestrator {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Policy.ChunkSize <= 0 {
		deps.Policy.ChunkSize = chunker.DefaultMaxSize
	}
	if deps.Policy.AvailabilityAttempts == 0 {
		deps.Policy.AvailabilityAttempts = 1
	}

	return &Orchestrator{
		sources:      deps.Sources,
		downloader:   deps.Downloader,
		extractor:    deps.Extractor,
		analyzer:     deps.Analyzer,
		parser:       deps.Parser,
		gateway:      deps.Gateway,
		availability: deps.Availability,
		sourcePacer:  deps.SourcePacer,
		policy:       deps.Policy,
		now:          deps.Now,
		logger:       deps.Logger,
	}
}

// RunDaily waits for the application to be reachable, then processes every
// enabled source in order. It fails with domain.ErrAvailability before
// touching any source, and with domain.ErrNoSourceSucceeded when every
// source was skipped or failed.
func (o *Orchestrator) RunDaily(ctx context.Context) (domain.RunSummary, error) {
	summary := domain.RunSummary{RunID: uuid.NewString()}
	log := o.logger.With("run_id", summary.RunID)
	log.Info("daily run started")

	if err := o.waitForAvailability(ctx, log); err != nil {
		log.Error("application not reachable, aborting run", "error", err)
		return summary, err
	}

	enabled := domain.EnabledSources(o.sources)
	log.Info("processing sources", "count", len(enabled))

	for i, source := range enabled {
		if i > 0 && o.sourcePacer != nil {
			if err := o.sourcePacer.Wait(ctx); err != nil {
				log.Warn("pause between sources interrupted", "error", err)
			}
		}

		outcome := o.processSafely(ctx, source, log)
		summary.Outcomes = append(summary.Outcomes, outcome)
		summary.Processed++
		if outcome.Status == domain.StatusSucceeded {
			summary.Succeeded++
		}
	}

	log.Info("daily run finished", "succeeded", summary.Succeeded, "sources", len(enabled))

	if !summary.Successful() {
		return summary, domain.ErrNoSourceSucceeded
	}
	return summary, nil
}

// ProcessSource runs one source end-to-end.
func (o *Orchestrator) ProcessSource(ctx context.Context, source domain.Source) domain.SourceOutcome {
	return o.processSafely(ctx, source, o.logger)
}

// DryRun extracts and analyzes a source without the daily check and without
// persisting anything. When data is nil the PDF is downloaded first.
func (o *Orchestrator) DryRun(ctx context.Context, source domain.Source, data []byte) ([]domain.Article, error) {
	log := o.logger.With("source", source.Name, "dry_run", true)

	if data == nil {
		var err error
		if data, err = o.download(ctx, source); err != nil {
			return nil, err
		}
	}

	_, articles, err := o.analyzeDocument(ctx, source, data, log)
	return articles, err
}

func (o *Orchestrator) processSafely(ctx context.Context, source domain.Source, log *slog.Logger) (outcome domain.SourceOutcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("source processing panicked", "source", source.Name, "panic", r)
			outcome = domain.SourceOutcome{
				Source: source.Name,
				Status: domain.StatusFailed,
				Err:    fmt.Errorf("source %s: panic: %v", source.Name, r),
			}
		}
	}()
	return o.process(ctx, source, log.With("source", source.Name))
}

func (o *Orchestrator) process(ctx context.Context, source domain.Source, log *slog.Logger) domain.SourceOutcome {
	log.Info("processing source")
	outcome := domain.SourceOutcome{Source: source.Name, Status: domain.StatusPending}

	done, err := o.gateway.AlreadyProcessedToday(ctx, source.Name)
	if err != nil {
		log.Warn("duplicate check failed, continuing", "error", err)
	}
	if done {
		log.Info("source already analyzed today, skipping")
		outcome.Status = domain.StatusSkipped
		return outcome
	}

	fail := func(err error) domain.SourceOutcome {
		var se *domain.StageError
		stage := domain.Stage("")
		if errors.As(err, &se) {
			stage = se.Stage
		}
		log.Error("source failed", "stage", stage, "error", err)
		outcome.Status = domain.StatusFailed
		outcome.Err = err
		return outcome
	}

	data, err := o.download(ctx, source)
	if err != nil {
		return fail(err)
	}

	text, articles, err := o.analyzeDocument(ctx, source, data, log)
	if err != nil {
		return fail(err)
	}

	id, err := o.gateway.Persist(ctx, source.Name, text, articles)
	if err != nil {
		return fail(stageError(source, domain.StagePersist, err))
	}

	outcome.Status = domain.StatusSucceeded
	outcome.AnalysisID = id
	outcome.Articles = len(articles)
	log.Info("source analyzed",
		"analysis_id", id,
		"articles", len(articles),
		"highest", domain.CountByPriority(articles, domain.PriorityHighest),
		"high", domain.CountByPriority(articles, domain.PriorityHigh))
	return outcome
}

func (o *Orchestrator) download(ctx context.Context, source domain.Source) ([]byte, error) {
	if o.downloader == nil {
		return nil, stageError(source, domain.StageDownload, errors.New("downloader not configured"))
	}
	data, err := o.downloader.Download(ctx, source)
	if err != nil {
		return nil, stageError(source, domain.StageDownload, err)
	}
	if len(data) == 0 {
		return nil, stageError(source, domain.StageDownload, errors.New("empty document"))
	}
	return data, nil
}

// analyzeDocument runs extraction, chunking, analysis and parsing and returns
// the extracted text with the parsed articles.
func (o *Orchestrator) analyzeDocument(ctx context.Context, source domain.Source, data []byte, log *slog.Logger) (string, []domain.Article, error) {
	text, err := o.extractor.Extract(data)
	if err != nil {
		return "", nil, stageError(source, domain.StageExtract, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", nil, stageError(source, domain.StageExtract, errors.New("no text extracted"))
	}
	log.Info("text extracted", "chars", len([]rune(text)))

	chunks, err := chunker.Split(text, o.policy.ChunkSize)
	if err != nil {
		return "", nil, stageError(source, domain.StageAnalyze, err)
	}
	log.Info("text split", "chunks", len(chunks))

	result := o.analyzer.Analyze(ctx, chunks, source.Name, o.now().Format("2006-01-02"))
	if strings.TrimSpace(result) == "" {
		return "", nil, stageError(source, domain.StageAnalyze, errors.New("empty analysis"))
	}

	articles := o.parser.Parse(result)
	if len(articles) == 0 {
		return "", nil, stageError(source, domain.StageParse, errors.New("no articles found"))
	}

	return text, articles, nil
}

func (o *Orchestrator) waitForAvailability(ctx context.Context, log *slog.Logger) error {
	if o.availability == nil {
		return nil
	}

	attempts := o.policy.AvailabilityAttempts
	err := retry.Do(
		func() error { return o.availability.Check(ctx) },
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(o.policy.AvailabilityDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn("application not available", "attempt", n+1, "attempts", attempts, "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("%w after %d attempts: %w", domain.ErrAvailability, attempts, err)
	}

	log.Info("application available")
	return nil
}

func stageError(source domain.Source, stage domain.Stage, err error) error {
	var se *domain.StageError
	if errors.As(err, &se) {
		return err
	}
	return &domain.StageError{Source: source.Name, Stage: stage, Err: err}
}
