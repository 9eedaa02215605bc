package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/phrazzld/dayplan-api/internal/config"
	"github.com/phrazzld/dayplan-api/internal/platform/logger"
)

const testJWTSecret = "cmd-server-test-secret-at-least-32-chars"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// Monday 2025-01-13, 08:00 UTC.
var testNow = time.Date(2025, time.January, 13, 8, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// writeTestConfig writes a config file that points at a fresh SQLite
// database and returns its path.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`server:
  port: 18080
  log_level: error
database:
  driver: sqlite
  url: %s
auth:
  jwt_secret: %s
schedule:
  horizon_days: 28
  search_days: 14
  timezone: UTC
`, filepath.Join(dir, "dayplan.db"), testJWTSecret)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// runCLI executes the command tree with args and returns its stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := newCLI()
	c.now = fixedClock

	var stdout, stderr bytes.Buffer
	c.root.SetOut(&stdout)
	c.root.SetErr(&stderr)
	c.root.SetArgs(args)

	err := c.ExecuteContext(context.Background())
	return stdout.String(), err
}

// newTestApp wires an application against a migrated SQLite database.
func newTestApp(t *testing.T) *application {
	t.Helper()
	cfg, err := config.LoadFile(writeTestConfig(t))
	require.NoError(t, err)

	_, log := logger.NewTestLogger(t)
	app, err := newApplication(context.Background(), cfg, log, fixedClock)
	require.NoError(t, err)
	t.Cleanup(app.cleanup)

	m, err := app.migrator(false)
	require.NoError(t, err)
	require.NoError(t, m.Up(context.Background()))
	return app
}

// signToken issues an access token for userID the way the identity service does.
func signToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	now := time.Now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}
