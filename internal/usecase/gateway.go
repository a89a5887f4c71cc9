package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"NewspaperAnalyzer/internal/domain"
	"NewspaperAnalyzer/internal/ports"
)

// Gateway answers "was this source analyzed today?" and stores new results.
//
// The check and the insert are not atomic: two concurrent runs for the same
// source and day can both pass the check. Article inserts are independent,
// so a failure part-way leaves an analysis with fewer article rows than
// TotalArticles claims.
type Gateway struct {
	repo   ports.AnalysisRepository
	now    func() time.Time
	logger *slog.Logger
}

// NewGateway wires the repository; now decides which calendar day is "today".
func NewGateway(repo ports.AnalysisRepository, now func() time.Time, logger *slog.Logger) *Gateway {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{repo: repo, now: now, logger: logger}
}

// TodayKey returns the analysis name used for source today.
func (g *Gateway) TodayKey(source string) string {
	return domain.AnalysisName(source, g.now())
}

// AlreadyProcessedToday reports whether an analysis named after source and
// today's date exists. It has no side effects.
func (g *Gateway) AlreadyProcessedToday(ctx context.Context, source string) (bool, error) {
	if g == nil || g.repo == nil {
		return false, fmt.Errorf("%w: repository not configured", domain.ErrPersistence)
	}

	rows, err := g.repo.FindAnalysesByName(ctx, g.TodayKey(source))
	if err != nil {
		return false, fmt.Errorf("%w: lookup analysis: %w", domain.ErrPersistence, err)
	}
	return len(rows) > 0, nil
}

// Persist stores one analysis row followed by one row per article and
// returns the analysis id.
func (g *Gateway) Persist(ctx context.Context, source, originalText string, articles []domain.Article) (int64, error) {
	if g == nil || g.repo == nil {
		return 0, fmt.Errorf("%w: repository not configured", domain.ErrPersistence)
	}

	now := g.now()
	analysis := domain.Analysis{
		Name:                domain.AnalysisName(source, now),
		TotalArticles:       len(articles),
		HighPriorityCount:   domain.CountByPriority(articles, domain.PriorityHighest),
		MediumPriorityCount: domain.CountByPriority(articles, domain.PriorityHigh),
		OriginalText:        domain.TruncateRunes(originalText, domain.MaxStoredTextLength),
		Metadata: domain.AnalysisMetadata{
			Source:        source,
			AutoGenerated: true,
			TextLength:    utf8.RuneCountInString(originalText),
			Timestamp:     now,
		},
		CreatedAt: now,
	}

	id, err := g.repo.InsertAnalysis(ctx, analysis)
	if err != nil {
		return 0, fmt.Errorf("%w: insert analysis %s: %w", domain.ErrPersistence, analysis.Name, err)
	}

	for i, article := range articles {
		if _, err := g.repo.InsertArticle(ctx, id, article); err != nil {
			g.logger.Error("article insert failed, analysis is incomplete",
				"analysis", analysis.Name,
				"analysis_id", id,
				"stored", i,
				"expected", len(articles),
				"error", err)
			return id, fmt.Errorf("%w: insert article %d of analysis %d: %w", domain.ErrPersistence, i, id, err)
		}
	}

	g.logger.Info("analysis stored", "analysis", analysis.Name, "analysis_id", id, "articles", len(articles))
	return id, nil
}
