package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"NewspaperAnalyzer/internal/config"
	"NewspaperAnalyzer/internal/domain"
	"NewspaperAnalyzer/internal/ports"
)

const (
	dialectPostgres = config.DriverPostgres
	dialectSQLite   = config.DriverSQLite
)

var analysisColumns = []string{
	"id", "name", "total_articles", "high_priority_count", "medium_priority_count",
	"original_text", "metadata", "created_at",
}

// SQLRepository persists analyses and articles through database/sql. It only
// inserts and selects.
type SQLRepository struct {
	db      *sql.DB
	dialect string
	sb      sq.StatementBuilderType
}

var _ ports.AnalysisRepository = (*SQLRepository)(nil)

// NewSQLRepository wires a sql.DB opened for driver ("postgres" or "sqlite").
func NewSQLRepository(db *sql.DB, driver string) (*SQLRepository, error) {
	dialect := strings.ToLower(driver)
	var format sq.PlaceholderFormat
	switch dialect {
	case dialectPostgres:
		format = sq.Dollar
	case dialectSQLite:
		format = sq.Question
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, driver)
	}
	return &SQLRepository{
		db:      db,
		dialect: dialect,
		sb:      sq.StatementBuilder.PlaceholderFormat(format),
	}, nil
}

// InsertAnalysis stores one analysis row and returns its id.
func (r *SQLRepository) InsertAnalysis(ctx context.Context, a domain.Analysis) (int64, error) {
	meta, err := json.Marshal(a.Metadata)
	if err != nil {
		return 0, fmt.Errorf("marshal metadata: %w", err)
	}
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query, args, err := r.sb.Insert("analyses").
		Columns("name", "total_articles", "high_priority_count", "medium_priority_count",
			"original_text", "metadata", "created_at").
		Values(a.Name, a.TotalArticles, a.HighPriorityCount, a.MediumPriorityCount,
			a.OriginalText, string(meta), createdAt.UTC()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build analysis insert: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert analysis: %w", err)
	}
	return id, nil
}

// InsertArticle stores one article of an analysis and returns its id.
func (r *SQLRepository) InsertArticle(ctx context.Context, analysisID int64, a domain.Article) (int64, error) {
	query, args, err := r.sb.Insert("articles").
		Columns("analysis_id", "title", "category", "priority", "summary", "page", "relevance").
		Values(analysisID, a.Title, a.Category, a.Priority.String(), a.Summary, a.Page, a.Relevance).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build article insert: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert article: %w", err)
	}
	return id, nil
}

// FindAnalysesByName returns all analyses with exactly that name, oldest first.
func (r *SQLRepository) FindAnalysesByName(ctx context.Context, name string) ([]domain.Analysis, error) {
	query, args, err := r.sb.Select(analysisColumns...).
		From("analyses").
		Where(sq.Eq{"name": name}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build analysis select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var result []domain.Analysis
	for rows.Next() {
		var (
			a    domain.Analysis
			meta []byte
		)
		if err := rows.Scan(&a.ID, &a.Name, &a.TotalArticles, &a.HighPriorityCount,
			&a.MediumPriorityCount, &a.OriginalText, &meta, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		if err := json.Unmarshal(meta, &a.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata of analysis %d: %w", a.ID, err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return result, nil
}
