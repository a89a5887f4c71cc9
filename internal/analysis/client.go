// Package analysis submits chunks to the language model one by one and
// concatenates the answers.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"NewspaperAnalyzer/internal/domain"
	"NewspaperAnalyzer/internal/ports"
)

// Separator joins the per-chunk answers.
const Separator = "\n\n"

var errEmptyResponse = errors.New("empty model response")

// Client analyzes chunks sequentially with no shared state between chunks.
type Client struct {
	generator ports.Generator
	pacer     ports.Pacer
	logger    *slog.Logger
}

// NewClient wires the model and the pacer consulted before every call.
func NewClient(generator ports.Generator, pacer ports.Pacer, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{generator: generator, pacer: pacer, logger: logger}
}

// ErrorMarker is the placeholder a failed chunk contributes to the result.
func ErrorMarker(index int) string {
	return fmt.Sprintf("❌ processing failed for segment %d", index+1)
}

// Analyze returns the model answers in chunk order. A failing chunk is
// replaced by its ErrorMarker; it never aborts the remaining chunks.
func (c *Client) Analyze(ctx context.Context, chunks []domain.Chunk, sourceName, date string) string {
	outputs := make([]string, 0, len(chunks))

	for _, chunk := range chunks {
		log := c.logger.With("source", sourceName, "segment", chunk.Index+1, "segments", len(chunks))
		log.Info("analyze segment", "chars", len([]rune(chunk.Text)))

		answer, err := c.analyzeChunk(ctx, chunk, len(chunks), sourceName, date)
		if err != nil {
			log.Error("segment analysis failed", "error", err)
			outputs = append(outputs, ErrorMarker(chunk.Index))
			continue
		}
		outputs = append(outputs, answer)
	}

	return strings.Join(outputs, Separator)
}

func (c *Client) analyzeChunk(ctx context.Context, chunk domain.Chunk, total int, sourceName, date string) (string, error) {
	if c.generator == nil {
		return "", fmt.Errorf("%w: language model not configured", domain.ErrAnalysis)
	}

	if c.pacer != nil {
		if err := c.pacer.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: wait for rate limit: %w", domain.ErrAnalysis, err)
		}
	}

	answer, err := c.generator.Generate(ctx, BuildPrompt(chunk, total, sourceName, date))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrAnalysis, err)
	}
	if strings.TrimSpace(answer) == "" {
		return "", fmt.Errorf("%w: %w", domain.ErrAnalysis, errEmptyResponse)
	}

	return answer, nil
}
