// Package schema creates the tables the store reads and writes.
//
// The scripts are idempotent and carry no version bookkeeping; existing
// deployments are expected to manage their own schema.
package schema

import (
	"context"
	"embed"
	"fmt"

	"github.com/charmbracelet/soft-issues/pkg/db"
)

//go:embed *.sql
var sqls embed.FS

func scriptName(driverName string) (string, error) {
	switch {
	case driverName == db.DriverSQLite:
		return "sqlite.sql", nil
	case db.IsPostgres(driverName):
		return "postgres.sql", nil
	default:
		return "", fmt.Errorf("no schema for driver %q", driverName)
	}
}

// Create creates the users and issues tables, and the title search index,
// if they do not exist yet.
func Create(ctx context.Context, h db.Handler) error {
	fn, err := scriptName(h.DriverName())
	if err != nil {
		return err
	}

	sqlstr, err := sqls.ReadFile(fn)
	if err != nil {
		return err
	}

	if _, err := h.ExecContext(ctx, string(sqlstr)); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	return nil
}
