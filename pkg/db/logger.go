package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var queryCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "soft_issues",
	Subsystem: "db",
	Name:      "queries_total",
	Help:      "The total number of database queries",
}, []string{"op"})

func trace(l *log.Logger, op string, query string, args ...interface{}) {
	queryCounter.WithLabelValues(op).Inc()
	if l != nil {
		// Remove newlines and tabs
		query = strings.ReplaceAll(query, "\t", "")
		query = strings.ReplaceAll(query, "\n", " ")
		query = strings.TrimSpace(query)
		l.Debug("trace", "op", op, "query", query, "args", args)
	}
}

// SelectContext is a wrapper around sqlx.SelectContext that logs the query and arguments.
func (d *DB) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	trace(d.logger, "select", query, args...)
	return d.DB.SelectContext(ctx, dest, query, args...)
}

// GetContext is a wrapper around sqlx.GetContext that logs the query and arguments.
func (d *DB) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	trace(d.logger, "get", query, args...)
	return d.DB.GetContext(ctx, dest, query, args...)
}

// QueryxContext is a wrapper around sqlx.QueryxContext that logs the query and arguments.
func (d *DB) QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	trace(d.logger, "query", query, args...)
	return d.DB.QueryxContext(ctx, query, args...)
}

// QueryRowxContext is a wrapper around sqlx.QueryRowxContext that logs the query and arguments.
func (d *DB) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	trace(d.logger, "query_row", query, args...)
	return d.DB.QueryRowxContext(ctx, query, args...)
}

// ExecContext is a wrapper around sqlx.ExecContext that logs the query and arguments.
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	trace(d.logger, "exec", query, args...)
	return d.DB.ExecContext(ctx, query, args...)
}

// NamedExecContext is a wrapper around sqlx.NamedExecContext that logs the query and argument.
func (d *DB) NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error) {
	trace(d.logger, "named_exec", query, arg)
	return d.DB.NamedExecContext(ctx, query, arg)
}
