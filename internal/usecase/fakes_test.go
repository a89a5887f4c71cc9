package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"NewspaperAnalyzer/internal/domain"
)

var fixedNow = func() time.Time {
	return time.Date(2025, time.March, 7, 9, 30, 0, 0, time.UTC)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memRepository struct {
	mu             sync.Mutex
	analyses       []domain.Analysis
	articles       map[int64][]domain.Article
	lookups        int
	failArticleAt  int
	failAnalysis   error
	failLookup     error
	articleInserts int
}

func newMemRepository() *memRepository {
	return &memRepository{articles: map[int64][]domain.Article{}, failArticleAt: -1}
}

func (r *memRepository) InsertAnalysis(_ context.Context, a domain.Analysis) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAnalysis != nil {
		return 0, r.failAnalysis
	}
	a.ID = int64(len(r.analyses) + 1)
	r.analyses = append(r.analyses, a)
	return a.ID, nil
}

func (r *memRepository) InsertArticle(_ context.Context, analysisID int64, article domain.Article) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failArticleAt == r.articleInserts {
		return 0, errors.New("connection reset")
	}
	r.articleInserts++
	r.articles[analysisID] = append(r.articles[analysisID], article)
	return int64(r.articleInserts), nil
}

func (r *memRepository) FindAnalysesByName(_ context.Context, name string) ([]domain.Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups++
	if r.failLookup != nil {
		return nil, r.failLookup
	}
	var out []domain.Analysis
	for _, a := range r.analyses {
		if a.Name == name {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeDownloader struct {
	calls []string
	fail  map[string]error
}

func (d *fakeDownloader) Download(_ context.Context, source domain.Source) ([]byte, error) {
	d.calls = append(d.calls, source.Name)
	if err := d.fail[source.Name]; err != nil {
		return nil, err
	}
	return []byte("%PDF-" + source.Name), nil
}

type fakeExtractor struct {
	text string
	err  error
}

func (e fakeExtractor) Extract([]byte) (string, error) {
	return e.text, e.err
}

type fakeAnalyzer struct {
	answer string
	calls  int
	chunks int
}

func (a *fakeAnalyzer) Analyze(_ context.Context, chunks []domain.Chunk, _, _ string) string {
	a.calls++
	a.chunks += len(chunks)
	return a.answer
}

type flakyChecker struct {
	failures int
	calls    int
}

func (c *flakyChecker) Check(context.Context) error {
	c.calls++
	if c.calls <= c.failures {
		return errors.New("status 503")
	}
	return nil
}

type countingPacer struct {
	waits int
}

func (p *countingPacer) Wait(context.Context) error {
	p.waits++
	return nil
}
