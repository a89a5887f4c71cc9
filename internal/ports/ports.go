package ports

import (
	"context"

	"NewspaperAnalyzer/internal/domain"
)

// Downloader retrieves the raw PDF of a source.
type Downloader interface {
	Download(ctx context.Context, source domain.Source) ([]byte, error)
}

// TextExtractor turns PDF bytes into text with "=== PAGE n ===" markers.
type TextExtractor interface {
	Extract(data []byte) (string, error)
}

// Generator sends a single prompt to a language model and returns its answer.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AnalysisRepository stores analyses and their articles. Only inserts and
// filtered selects are needed.
type AnalysisRepository interface {
	InsertAnalysis(ctx context.Context, analysis domain.Analysis) (int64, error)
	InsertArticle(ctx context.Context, analysisID int64, article domain.Article) (int64, error)
	FindAnalysesByName(ctx context.Context, name string) ([]domain.Analysis, error)
}

// AvailabilityChecker probes the external application before a daily run.
type AvailabilityChecker interface {
	Check(ctx context.Context) error
}

// Pacer enforces a minimum interval between consecutive calls.
type Pacer interface {
	Wait(ctx context.Context) error
}
