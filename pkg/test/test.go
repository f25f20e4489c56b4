// Package test provides testing utilities for database operations.
package test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/soft-issues/pkg/db"
	"github.com/charmbracelet/soft-issues/pkg/db/schema"
)

// OpenSqlite opens a new temp SQLite database for testing.
// It removes the database file when the test is done using tb.Cleanup.
// If ctx is nil, context.TODO() is used.
func OpenSqlite(ctx context.Context, tb testing.TB) (*db.DB, error) {
	if ctx == nil {
		ctx = context.TODO()
	}
	dbpath := filepath.Join(tb.TempDir(), "test.db")
	dbx, err := db.Open(ctx, db.DriverSQLite, dbpath)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	tb.Cleanup(func() {
		if err := dbx.Close(); err != nil {
			tb.Error(err)
		}
	})
	return dbx, nil
}

// OpenSqliteWithSchema is like OpenSqlite but also creates the users and
// issues tables. It fails the test on error.
func OpenSqliteWithSchema(ctx context.Context, tb testing.TB) *db.DB {
	tb.Helper()
	if ctx == nil {
		ctx = context.TODO()
	}
	dbx, err := OpenSqlite(ctx, tb)
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	if err := schema.Create(ctx, dbx); err != nil {
		tb.Fatalf("create schema: %v", err)
	}
	return dbx
}
