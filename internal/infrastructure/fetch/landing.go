package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewspaperAnalyzer/internal/domain"
)

// DefaultPDFSelector picks the first link pointing at a PDF.
const DefaultPDFSelector = `a[href$=".pdf"]`

// LandingStrategy crawls an e-paper landing page and follows the first link
// matching the "selector" option.
type LandingStrategy struct {
	client    *http.Client
	userAgent string
}

// NewLandingStrategy wires an HTTP client; a nil client gets a 20s timeout.
func NewLandingStrategy(client *http.Client, userAgent string) *LandingStrategy {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &LandingStrategy{client: client, userAgent: userAgent}
}

// Name identifies the strategy inside the registry.
func (l *LandingStrategy) Name() string {
	return domain.StrategyLanding
}

// Resolve loads the landing page and returns the absolute PDF link.
func (l *LandingStrategy) Resolve(ctx context.Context, source domain.Source) (string, error) {
	base, err := url.Parse(source.URL)
	if err != nil {
		return "", fmt.Errorf("invalid landing url %s: %w", source.URL, err)
	}

	doc, err := l.fetchDocument(ctx, source.URL)
	if err != nil {
		return "", err
	}

	selector := source.Option("selector", DefaultPDFSelector)
	href, ok := findLink(doc, selector)
	if !ok {
		return "", fmt.Errorf("no link matches %q on %s", selector, source.URL)
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid pdf link %s: %w", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}

func (l *LandingStrategy) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request landing page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("landing page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse landing page: %w", err)
	}
	return doc, nil
}

func findLink(doc *goquery.Document, selector string) (string, bool) {
	var href string
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, ok := s.Attr("href"); ok && strings.TrimSpace(v) != "" {
			href = strings.TrimSpace(v)
			return false
		}
		return true
	})
	return href, href != ""
}
