package storage

import (
	"context"
	"fmt"
)

var schemas = map[string][]string{
	dialectPostgres: {
		`CREATE TABLE IF NOT EXISTS analyses (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			total_articles INTEGER NOT NULL,
			high_priority_count INTEGER NOT NULL,
			medium_priority_count INTEGER NOT NULL,
			original_text TEXT NOT NULL,
			metadata JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_name ON analyses(name)`,
		`CREATE TABLE IF NOT EXISTS articles (
			id BIGSERIAL PRIMARY KEY,
			analysis_id BIGINT NOT NULL REFERENCES analyses(id),
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			priority TEXT NOT NULL,
			summary TEXT NOT NULL,
			page TEXT NOT NULL,
			relevance TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_analysis ON articles(analysis_id)`,
	},
	dialectSQLite: {
		`CREATE TABLE IF NOT EXISTS analyses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			total_articles INTEGER NOT NULL,
			high_priority_count INTEGER NOT NULL,
			medium_priority_count INTEGER NOT NULL,
			original_text TEXT NOT NULL,
			metadata TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_name ON analyses(name)`,
		`CREATE TABLE IF NOT EXISTS articles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id INTEGER NOT NULL REFERENCES analyses(id),
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			priority TEXT NOT NULL,
			summary TEXT NOT NULL,
			page TEXT NOT NULL,
			relevance TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_analysis ON articles(analysis_id)`,
	},
}

// Migrate creates the analyses and articles tables when they are missing.
func (r *SQLRepository) Migrate(ctx context.Context) error {
	for _, stmt := range schemas[r.dialect] {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate %s schema: %w", r.dialect, err)
		}
	}
	return nil
}
