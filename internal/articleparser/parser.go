// Package articleparser turns the model's annotated text back into
// structured articles.
package articleparser

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"NewspaperAnalyzer/internal/domain"
)

// MinBlockLength drops fragments that cannot hold an article.
const MinBlockLength = 50

// Parser extracts articles block by block.
type Parser struct {
	logger *slog.Logger
}

// New returns a parser that classifies categories with domain.Classify.
func New(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Parse returns one article per block carrying a title, in block order.
func (p *Parser) Parse(text string) []domain.Article {
	var articles []domain.Article

	for i, raw := range strings.Split(text, domain.BlockSeparator) {
		raw = strings.TrimSpace(raw)
		if utf8.RuneCountInString(raw) < MinBlockLength {
			continue
		}

		article, err := p.parseBlock(i, raw)
		if err != nil {
			p.logger.Debug("block discarded", "block", i, "error", err)
			continue
		}
		articles = append(articles, article)
	}

	p.logger.Info("articles extracted", "count", len(articles))
	return articles
}

func (p *Parser) parseBlock(index int, raw string) (domain.Article, error) {
	b := tokenize(raw)

	heading, ok := p.field(index, "title", b.title)
	if !ok {
		return domain.Article{}, fmt.Errorf("%w: block %d has no title", domain.ErrParsing, index)
	}

	category, title := splitHeading(heading)
	article := domain.Article{
		Title:     title,
		Category:  category,
		Priority:  domain.Classify(category),
		Page:      domain.PageNotDetected,
		Relevance: "",
	}

	if summary, ok := p.field(index, "summary", b.summary); ok {
		article.Summary = summary
	}
	if page, ok := p.field(index, "page", b.page); ok {
		article.Page = page
	}
	if relevance, ok := p.field(index, "relevance", b.relevance); ok {
		article.Relevance = relevance
	}

	return article, nil
}

// field runs one extractor; a panic only loses that field.
func (p *Parser) field(index int, name string, extract func() (string, bool)) (value string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("field extraction failed",
				"block", index,
				"field", name,
				"error", fmt.Errorf("%w: %v", domain.ErrParsing, r))
			value, ok = "", false
		}
	}()
	return extract()
}

// splitHeading separates "Category - Title"; headings without the delimiter
// fall into the default category.
func splitHeading(heading string) (category, title string) {
	before, after, found := strings.Cut(heading, " - ")
	if !found {
		return domain.DefaultCategory, heading
	}

	category = strings.TrimSpace(strings.Trim(strings.TrimSpace(before), "[]"))
	if category == "" {
		category = domain.DefaultCategory
	}
	return category, strings.TrimSpace(after)
}
