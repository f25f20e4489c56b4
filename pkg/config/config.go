// Package config holds the soft-issues configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNilConfig is returned when a nil config is passed to a function.
	ErrNilConfig = errors.New("nil config")

	// ErrUnknownDriver is returned when the configured database driver is
	// not supported.
	ErrUnknownDriver = errors.New("unknown database driver")

	// ErrInvalidPageSize is returned when the page size settings are out
	// of range.
	ErrInvalidPageSize = errors.New("invalid page size")
)

// supportedDrivers mirrors the drivers registered by package db.
var supportedDrivers = []string{"sqlite", "postgres", "pgx"}

// LogConfig is the logger configuration.
type LogConfig struct {
	// Format is the format of the logs.
	// Valid values are "json", "logfmt", and "text".
	Format string `env:"FORMAT" yaml:"format"`

	// Time format for the log `ts` field.
	// Format must be described in Golang's time format.
	TimeFormat string `env:"TIME_FORMAT" yaml:"time_format"`

	// Path to a file to write logs to.
	// If not set, logs will be written to stderr.
	Path string `env:"PATH" yaml:"path"`
}

// DBConfig is the database connection configuration.
type DBConfig struct {
	// Driver is the driver for the database.
	// Valid values are "sqlite", "postgres", and "pgx".
	Driver string `env:"DRIVER" yaml:"driver"`

	// DataSource is the database data source name.
	DataSource string `env:"DATA_SOURCE" yaml:"data_source"`
}

// QueryConfig bounds the queries issued by the command line.
type QueryConfig struct {
	// DefaultPageSize is the page size used when none is given.
	DefaultPageSize int `env:"DEFAULT_PAGE_SIZE" yaml:"default_page_size"`

	// MaxPageSize is the largest page size a listing may request.
	MaxPageSize int `env:"MAX_PAGE_SIZE" yaml:"max_page_size"`

	// Timeout is applied to every database call. Zero means no timeout.
	Timeout time.Duration `env:"TIMEOUT" yaml:"timeout"`
}

// Config is the configuration for soft-issues.
type Config struct {
	// Name is the name of the tracker.
	Name string `env:"NAME" yaml:"name"`

	// Log is the logger configuration.
	Log LogConfig `envPrefix:"LOG_" yaml:"log"`

	// DB is the database configuration.
	DB DBConfig `envPrefix:"DB_" yaml:"db"`

	// Query is the query configuration.
	Query QueryConfig `envPrefix:"QUERY_" yaml:"query"`

	// DataPath is the path to the directory where soft-issues will store its data.
	DataPath string `env:"DATA_PATH" yaml:"-"`
}

// Environ returns the config as a list of environment variables.
func (c *Config) Environ() []string {
	envs := []string{}
	if c == nil {
		return envs
	}

	envs = append(envs, []string{
		fmt.Sprintf("SOFT_ISSUES_DATA_PATH=%s", c.DataPath),
		fmt.Sprintf("SOFT_ISSUES_NAME=%s", c.Name),
		fmt.Sprintf("SOFT_ISSUES_LOG_FORMAT=%s", c.Log.Format),
		fmt.Sprintf("SOFT_ISSUES_LOG_TIME_FORMAT=%s", c.Log.TimeFormat),
		fmt.Sprintf("SOFT_ISSUES_LOG_PATH=%s", c.Log.Path),
		fmt.Sprintf("SOFT_ISSUES_DB_DRIVER=%s", c.DB.Driver),
		fmt.Sprintf("SOFT_ISSUES_DB_DATA_SOURCE=%s", c.DB.DataSource),
		fmt.Sprintf("SOFT_ISSUES_QUERY_DEFAULT_PAGE_SIZE=%d", c.Query.DefaultPageSize),
		fmt.Sprintf("SOFT_ISSUES_QUERY_MAX_PAGE_SIZE=%d", c.Query.MaxPageSize),
		fmt.Sprintf("SOFT_ISSUES_QUERY_TIMEOUT=%s", c.Query.Timeout),
	}...)

	return envs
}

// IsDebug returns true if soft-issues is running in debug mode.
func IsDebug() bool {
	debug, _ := strconv.ParseBool(os.Getenv("SOFT_ISSUES_DEBUG"))
	return debug
}

// IsVerbose returns true if soft-issues is running in verbose mode.
// Verbose mode is only enabled if debug mode is enabled.
func IsVerbose() bool {
	verbose, _ := strconv.ParseBool(os.Getenv("SOFT_ISSUES_VERBOSE"))
	return IsDebug() && verbose
}

// parseFile parses the given file as a configuration file.
// The file must be in YAML format.
func parseFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	defer f.Close() // nolint: errcheck
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return cfg.Validate()
}

// ParseFile parses the config from the default file path.
// This also calls Validate() on the config.
func (c *Config) ParseFile() error {
	return parseFile(c, c.ConfigPath())
}

// parseEnv parses the environment variables as a configuration file.
func parseEnv(cfg *Config) error {
	// Override with environment variables
	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix: "SOFT_ISSUES_",
	}); err != nil {
		return fmt.Errorf("parse environment variables: %w", err)
	}

	return cfg.Validate()
}

// ParseEnv parses the config from the environment variables.
// This also calls Validate() on the config.
func (c *Config) ParseEnv() error {
	return parseEnv(c)
}

// Parse parses the config from the default file path and environment variables.
// This also calls Validate() on the config.
func (c *Config) Parse() error {
	if err := c.ParseFile(); err != nil {
		return err
	}

	return c.ParseEnv()
}

// writeConfig writes the configuration to the given file.
func writeConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(newConfigFile(cfg)), 0o644) // nolint: errcheck, gosec
}

// WriteConfig writes the configuration to the default file.
func (c *Config) WriteConfig() error {
	return writeConfig(c, c.ConfigPath())
}

// DefaultDataPath returns the path to the data directory.
// It uses the SOFT_ISSUES_DATA_PATH environment variable if set, otherwise it
// uses "data".
func DefaultDataPath() string {
	dp := os.Getenv("SOFT_ISSUES_DATA_PATH")
	if dp == "" {
		dp = "data"
	}

	return dp
}

// ConfigPath returns the path to the config file.
// SOFT_ISSUES_CONFIG_LOCATION takes precedence when it points to an
// existing file.
func (c *Config) ConfigPath() string { // nolint:revive
	if path := os.Getenv("SOFT_ISSUES_CONFIG_LOCATION"); exist(path) {
		return path
	}

	return filepath.Join(c.DataPath, "config.yaml")
}

func exist(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Exist returns true if the config file exists.
func (c *Config) Exist() bool {
	return exist(c.ConfigPath())
}

// DefaultConfig returns the default Config. All the path values are relative
// to the data directory.
// Use Validate() to validate the config and ensure absolute paths.
func DefaultConfig() *Config {
	return &Config{
		Name:     "Soft Issues",
		DataPath: DefaultDataPath(),
		Log: LogConfig{
			Format:     "text",
			TimeFormat: time.DateTime,
		},
		DB: DBConfig{
			Driver: "sqlite",
			DataSource: "soft-issues.db?_pragma=busy_timeout(5000)",
		},
		Query: QueryConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
			Timeout:         30 * time.Second,
		},
	}
}

// Validate validates the configuration.
// It updates the configuration with absolute paths.
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}

	// Use absolute paths
	if !filepath.IsAbs(c.DataPath) {
		dp, err := filepath.Abs(c.DataPath)
		if err != nil {
			return err
		}
		c.DataPath = dp
	}

	if !isSupportedDriver(c.DB.Driver) {
		return fmt.Errorf("%w %q", ErrUnknownDriver, c.DB.Driver)
	}

	if strings.HasPrefix(c.DB.Driver, "sqlite") && !filepath.IsAbs(c.DB.DataSource) {
		c.DB.DataSource = filepath.Join(c.DataPath, c.DB.DataSource)
	}

	if c.Query.DefaultPageSize <= 0 || c.Query.MaxPageSize < c.Query.DefaultPageSize {
		return fmt.Errorf("%w: default %d, max %d", ErrInvalidPageSize,
			c.Query.DefaultPageSize, c.Query.MaxPageSize)
	}

	if c.Query.Timeout < 0 {
		return fmt.Errorf("negative query timeout %s", c.Query.Timeout)
	}

	return nil
}

func isSupportedDriver(name string) bool {
	for _, d := range supportedDrivers {
		if d == name {
			return true
		}
	}
	return false
}
