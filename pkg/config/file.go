package config

import (
	"bytes"
	"text/template"
)

var configFileTmpl = template.Must(template.New("config").Parse(`# Soft Issues configuration

# The name of the tracker.
name: "{{ .Name }}"

# Logging configuration.
log:
  # Log format to use. Valid values are "json", "logfmt", and "text".
  format: "{{ .Log.Format }}"
  # Time format for the log "timestamp" field.
  # Should be described in Golang's time format.
  time_format: "{{ .Log.TimeFormat }}"
  # Path to the log file. Leave empty to write to stderr.
  #path: "{{ .Log.Path }}"

# Database configuration.
db:
  # The database driver to use.
  # Valid values are "sqlite", "postgres", and "pgx".
  driver: "{{ .DB.Driver }}"
  # The database data source name.
  # This is driver specific and can be a file path or connection string.
  # Make sure foreign key support is enabled when using SQLite.
  data_source: "{{ .DB.DataSource }}"

# Query configuration.
query:
  # The page size used by "issue list" when none is given.
  default_page_size: {{ .Query.DefaultPageSize }}
  # The largest page size a listing may request.
  max_page_size: {{ .Query.MaxPageSize }}
  # Timeout applied to every database call, e.g. "30s". "0s" disables it.
  timeout: "{{ .Query.Timeout }}"
`))

func newConfigFile(cfg *Config) string {
	var b bytes.Buffer
	configFileTmpl.Execute(&b, cfg) // nolint: errcheck
	return b.String()
}
