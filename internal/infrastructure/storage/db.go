package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"NewspaperAnalyzer/internal/config"
)

const appDataDir = "newspaper-analyzer"

// DefaultSQLitePath returns the database file under the XDG data directory.
func DefaultSQLitePath() string {
	return filepath.Join(xdg.DataHome, appDataDir, "analyses.db")
}

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	driver := strings.ToLower(cfg.Driver)
	dsn := cfg.DSN

	switch driver {
	case config.DriverPostgres:
	case config.DriverSQLite:
		if dsn == "" {
			dsn = DefaultSQLitePath()
		}
		if !strings.HasPrefix(dsn, ":memory:") && !strings.HasPrefix(dsn, "file:") {
			path, _, _ := strings.Cut(dsn, "?")
			if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
			if !strings.Contains(dsn, "?") {
				dsn += "?_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)"
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if driver == config.DriverSQLite {
		db.SetMaxOpenConns(1)
	}
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s database: %w", driver, err)
	}
	return db, nil
}
