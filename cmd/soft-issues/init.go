package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/soft-issues/cmd"
	"github.com/charmbracelet/soft-issues/pkg/config"
	"github.com/charmbracelet/soft-issues/pkg/db"
	"github.com/charmbracelet/soft-issues/pkg/db/schema"
	"github.com/spf13/cobra"
)

func initCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "init",
		Short:              "Write the default config and create the database tables",
		Args:               cobra.NoArgs,
		PersistentPreRunE:  cmd.InitStoreContext,
		PersistentPostRunE: cmd.CloseDBContext,
		RunE: func(co *cobra.Command, _ []string) error {
			ctx, cancel := cmd.QueryContext(co.Context())
			defer cancel()

			cfg := config.FromContext(ctx)
			if !cfg.Exist() {
				if err := cfg.WriteConfig(); err != nil {
					return fmt.Errorf("write config file: %w", err)
				}
			}

			if err := schema.Create(ctx, db.FromContext(ctx)); err != nil {
				return err
			}

			log.FromContext(ctx).Info("database ready", "driver", cfg.DB.Driver)
			return nil
		},
	}
}
