// Package iotesting provides shared test utilities for store tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/cyclopts/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "cyclopts_test"
)

// GetTestConfig returns a configuration suitable for tests. Database
// settings can be overridden by CYCLOPTS_DATABASE_HOST and
// CYCLOPTS_DATABASE_PORT. The database is always TestDatabaseName.
func GetTestConfig() *config.Config {
	cfg := config.New()
	var opts []config.Option
	if host := os.Getenv("CYCLOPTS_DATABASE_HOST"); host != "" {
		opts = append(opts, config.OptDatabaseHost(host))
	}
	var port int
	if _, err := fmt.Sscanf(os.Getenv("CYCLOPTS_DATABASE_PORT"), "%d", &port); err == nil {
		opts = append(opts, config.OptDatabasePort(port))
	}
	opts = append(opts,
		config.OptDatabaseDatabase(TestDatabaseName),
		config.OptLogDestination("stderr"),
	)
	cfg.Update(opts)
	return cfg
}

// TempStorePath returns a path of a not yet existing SQLite store inside
// a temporary directory removed after the test.
func TempStorePath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name+".sqlite")
}

// ResetPostgres drops every table of the test database. It skips the test
// in short mode or when PostgreSQL is not reachable.
func ResetPostgres(t *testing.T, cfg *config.Config) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}

	ctx := context.Background()
	db := cfg.Database
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		db.User, db.Password, db.Host, db.Port, db.Database, db.SSLMode,
	)
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Skipf("PostgreSQL is not available: %v", err)
	}
	defer pool.Close()
	if err = pool.Ping(ctx); err != nil {
		t.Skipf("PostgreSQL is not available: %v", err)
	}

	rows, err := pool.Query(ctx,
		"SELECT tablename FROM pg_tables WHERE schemaname = 'public'")
	if err != nil {
		t.Fatalf("cannot list tables: %v", err)
	}
	var tables []string
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			t.Fatalf("cannot scan table name: %v", err)
		}
		tables = append(tables, name)
	}
	rows.Close()

	for _, name := range tables {
		if _, err = pool.Exec(ctx, "DROP TABLE IF EXISTS "+name+" CASCADE"); err != nil {
			t.Fatalf("cannot drop %s: %v", name, err)
		}
	}
}
