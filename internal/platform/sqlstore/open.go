package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/phrazzld/dayplan-api/internal/config"
	"github.com/phrazzld/dayplan-api/internal/redact"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const pingTimeout = 5 * time.Second

// Open opens and verifies a connection pool for the configured database.
// SQLite pools are limited to a single connection so writers never contend
// for the database lock.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, Dialect, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, "", err
	}
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, "", errors.New("database URL is empty: check your configuration")
	}

	dsn := cfg.URL
	if dialect == DialectSQLite {
		dsn = sqliteDSN(cfg.URL)
	}

	log := logger.With(
		slog.String("component", "database"),
		slog.String("driver", string(dialect)),
	)
	log.Info("opening database connection", slog.String("url", redact.String(cfg.URL)))

	db, err := sql.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database connection: %w", err)
	}

	if dialect == DialectSQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, "", fmt.Errorf("database ping timed out after %s: %w", pingTimeout, err)
		}
		return nil, "", fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established")
	return db, dialect, nil
}

// sqliteDSN turns a plain file path into a modernc DSN with the pragmas the
// store relies on. Values that already carry query parameters pass through.
func sqliteDSN(url string) string {
	if strings.Contains(url, "?") {
		return url
	}
	if !strings.HasPrefix(url, "file:") {
		url = "file:" + url
	}
	return url + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"
}
