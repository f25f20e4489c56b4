package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/soft-issues/cmd/soft-issues/issue"
	"github.com/charmbracelet/soft-issues/cmd/soft-issues/user"
	"github.com/charmbracelet/soft-issues/pkg/config"
	logr "github.com/charmbracelet/soft-issues/pkg/log"
	"github.com/spf13/cobra"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "soft-issues",
		Short:        "A tiny issue tracker for the command line",
		Long:         "Soft Issues keeps users and issues in SQLite or Postgres.",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		initCommand(),
		manCommand(rootCmd),
		user.Command(),
		issue.Command(),
	)

	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
			Version = info.Main.Version
		} else {
			Version = "unknown (built from source)"
		}
	}
	rootCmd.Version = Version

	return rootCmd
}

// loadConfig reads the config file, when present, and then the environment.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if cfg.Exist() {
		if err := cfg.ParseFile(); err != nil {
			return nil, err
		}
	}

	if err := cfg.ParseEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("load config", "err", err)
	}

	logger, f, err := logr.NewLogger(cfg)
	if err != nil {
		log.Fatal("create logger", "err", err)
	}

	// Set global logger
	log.SetDefault(logger)

	ctx := config.WithContext(context.Background(), cfg)
	ctx = log.WithContext(ctx, logger)

	code := 0
	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		code = 1
	}

	if f != nil {
		f.Close() // nolint: errcheck
	}
	os.Exit(code)
}
