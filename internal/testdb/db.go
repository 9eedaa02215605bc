package testdb

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/dayplan-api/internal/config"
	"github.com/phrazzld/dayplan-api/internal/platform/sqlstore"
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds connection setup and migrations.
const TestTimeout = 10 * time.Second

// PostgresURLEnv names the variable that switches tests to PostgreSQL.
const PostgresURLEnv = "DAYPLAN_TEST_DATABASE_URL"

// IsIntegrationTestEnvironment reports whether a PostgreSQL test database is configured.
func IsIntegrationTestEnvironment() bool {
	return os.Getenv(PostgresURLEnv) != ""
}

// Open returns a migrated database, closed automatically when the test ends.
func Open(t *testing.T) (*sql.DB, sqlstore.Dialect) {
	t.Helper()
	if IsIntegrationTestEnvironment() {
		return OpenPostgres(t)
	}
	return OpenSQLite(t), sqlstore.DialectSQLite
}

// OpenSQLite returns a migrated SQLite database stored in t.TempDir().
func OpenSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, _ := open(t, config.DatabaseConfig{
		Driver: string(sqlstore.DialectSQLite),
		URL:    filepath.Join(t.TempDir(), "dayplan.db"),
	})
	return db
}

// OpenPostgres returns the migrated PostgreSQL test database, skipping the
// test when none is configured.
func OpenPostgres(t *testing.T) (*sql.DB, sqlstore.Dialect) {
	t.Helper()
	url := os.Getenv(PostgresURLEnv)
	if url == "" {
		t.Skip(PostgresURLEnv + " not set - skipping PostgreSQL test")
	}
	return open(t, config.DatabaseConfig{
		Driver:                 string(sqlstore.DialectPostgres),
		URL:                    url,
		MaxOpenConns:           5,
		MaxIdleConns:           2,
		ConnMaxLifetimeMinutes: 5,
	})
}

func open(t *testing.T, cfg config.DatabaseConfig) (*sql.DB, sqlstore.Dialect) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, dialect, err := sqlstore.Open(ctx, cfg, nil)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	migrator, err := sqlstore.NewMigrator(db, dialect, nil, false)
	require.NoError(t, err, "failed to create migrator")
	require.NoError(t, migrator.Up(ctx), "failed to migrate test database")

	return db, dialect
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Errorf("failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}
