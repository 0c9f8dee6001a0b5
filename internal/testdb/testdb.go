//go:build integration

// Package testdb opens a migrated Postgres database for integration tests and
// isolates each test in a rolled-back transaction.
//
// Tests are skipped when no database URL is configured, except in CI where a
// missing database is a failure.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/folioworks/folio-api/internal/platform/logger"
	"github.com/folioworks/folio-api/internal/platform/postgres"
	"github.com/folioworks/folio-api/internal/redact"
)

// URL environment variables, in order of preference.
var urlEnvVars = []string{"FOLIO_TEST_DATABASE_URL", "FOLIO_DATABASE_URL", "DATABASE_URL"}

var ciEnvVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// DatabaseURL returns the first configured database URL, or "".
func DatabaseURL() string {
	for _, name := range urlEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// IsCI reports whether the tests run in a CI environment.
func IsCI() bool {
	for _, name := range ciEnvVars {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// Open connects to the test database, applies all migrations and closes the
// connection when the test ends.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := DatabaseURL()
	if url == "" {
		if IsCI() {
			t.Fatalf("no test database configured; set one of %v", urlEnvVars)
		}
		t.Skipf("skipping integration test: set one of %v", urlEnvVars)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, url)
	if err != nil {
		t.Fatalf("failed to open test database: %s", redact.Error(err))
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	log, _ := logger.GetTestLogger(t)
	if err := postgres.Migrate(ctx, db, log); err != nil {
		t.Fatalf("failed to migrate test database: %s", redact.Error(err))
	}
	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so tests
// never see each other's rows.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, tx)
}
