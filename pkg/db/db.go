// Package db provides the database handle and error helpers used by the
// soft-issues store.
package db

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/soft-issues/pkg/config"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // postgres driver
	_ "modernc.org/sqlite" // sqlite driver
)

// Supported driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

// DB is the database handle used by soft-issues.
type DB struct {
	*sqlx.DB
	logger *log.Logger
}

var _ Handler = (*DB)(nil)

// Open opens a database connection.
// The caller is responsible for closing the returned handle.
func Open(ctx context.Context, driverName string, dsn string) (*DB, error) {
	if !IsSupportedDriver(driverName) {
		return nil, fmt.Errorf("unknown driver %q", driverName)
	}

	db, err := sqlx.ConnectContext(ctx, driverName, dsn)
	if err != nil {
		return nil, err
	}

	d := &DB{
		DB: db,
	}

	if config.IsVerbose() {
		logger := log.FromContext(ctx).WithPrefix("db")
		d.logger = logger
	}

	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.DB.Close()
}

// IsSupportedDriver reports whether the given driver name can be opened.
func IsSupportedDriver(driverName string) bool {
	switch driverName {
	case DriverSQLite, DriverPostgres, DriverPgx:
		return true
	default:
		return false
	}
}

// IsPostgres reports whether the driver speaks the Postgres dialect.
func IsPostgres(driverName string) bool {
	switch driverName {
	case DriverPostgres, DriverPgx:
		return true
	default:
		return false
	}
}
