// Package cmd holds helpers shared by the soft-issues commands.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/soft-issues/pkg/config"
	"github.com/charmbracelet/soft-issues/pkg/db"
	"github.com/charmbracelet/soft-issues/pkg/store"
	"github.com/charmbracelet/soft-issues/pkg/store/database"
	"github.com/spf13/cobra"
)

// InitStoreContext opens the configured database and attaches it, and a
// store to run queries against it, to the command context.
func InitStoreContext(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return config.ErrNilConfig
	}

	if _, err := os.Stat(cfg.DataPath); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(cfg.DataPath, os.ModePerm); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}

	dbx, err := db.Open(ctx, cfg.DB.Driver, cfg.DB.DataSource)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	ctx = db.WithContext(ctx, dbx)
	ctx = store.WithContext(ctx, database.New(ctx))
	cmd.SetContext(ctx)

	return nil
}

// CloseDBContext closes the database context.
func CloseDBContext(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	dbx := db.FromContext(ctx)
	if dbx != nil {
		if err := dbx.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}

	return nil
}

// QueryContext bounds ctx by the configured query timeout.
func QueryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	cfg := config.FromContext(ctx)
	if cfg == nil || cfg.Query.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, cfg.Query.Timeout)
}

// WriteJSON writes v to w as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
