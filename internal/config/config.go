// Package config holds the command-line configuration of csvsql.
//
// Every flag has an environment variable fallback so the REPL can be
// configured once per shell session.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/vegasq/csvsql/internal/logger"
	"github.com/vegasq/csvsql/output"
	"github.com/vegasq/csvsql/query"
	"github.com/vegasq/csvsql/reader"
)

// Config holds the settings of one csvsql invocation
type Config struct {
	DataDir   string // directory tables are read from
	Query     string // one-shot statement; empty starts the REPL
	Format    string // table, csv, json or jsonl
	Encoding  string // character encoding of text tables
	Collation string // "binary" or a BCP 47 locale tag
	MaxWidth  int    // table cell truncation width; 0 disables
	LogLevel  string
	LogFile   string
	Schema    string // table to describe instead of querying
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		DataDir:   "sample_data",
		Format:    output.FormatTable,
		Collation: "binary",
		LogLevel:  "WARN",
	}
}

// Load parses args (without the program name) on top of environment values
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Default()

	cfg.DataDir = getEnv("CSVSQL_DATA_DIR", cfg.DataDir)
	cfg.Format = getEnv("CSVSQL_FORMAT", cfg.Format)
	cfg.Encoding = getEnv("CSVSQL_ENCODING", cfg.Encoding)
	cfg.Collation = getEnv("CSVSQL_COLLATION", cfg.Collation)
	cfg.LogLevel = getEnv("CSVSQL_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnv("CSVSQL_LOG_FILE", cfg.LogFile)
	maxWidth, err := getIntEnv("CSVSQL_MAX_WIDTH", cfg.MaxWidth)
	if err != nil {
		return cfg, err
	}
	cfg.MaxWidth = maxWidth

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "Directory containing table files")
	fs.StringVar(&cfg.Query, "q", cfg.Query, "SQL statement to run (e.g., \"SELECT * FROM people WHERE age > 30\"); starts the REPL when empty")
	fs.StringVar(&cfg.Format, "f", cfg.Format, "Output format: table, csv, json, jsonl")
	fs.StringVar(&cfg.Encoding, "encoding", cfg.Encoding, "Character encoding of text tables (default UTF-8)")
	fs.StringVar(&cfg.Collation, "collation", cfg.Collation, "Text ordering for WHERE: binary or a locale tag such as en")
	fs.IntVar(&cfg.MaxWidth, "max-width", cfg.MaxWidth, "Truncate table cells wider than this (0 = unlimited)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: DEBUG, INFO, WARN, ERROR")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Also write logs to this file")
	fs.StringVar(&cfg.Schema, "schema", cfg.Schema, "Describe the columns of a table instead of querying")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks flag values and combinations
func (c Config) Validate() error {
	var errs []error

	if c.DataDir == "" {
		errs = append(errs, errors.New("data directory must not be empty"))
	}
	if _, err := output.New(c.Format, nil); err != nil {
		errs = append(errs, err)
	}
	if err := reader.ValidateEncoding(c.Encoding); err != nil {
		errs = append(errs, err)
	}
	if _, err := query.CollatorFor(c.Collation); err != nil {
		errs = append(errs, err)
	}
	if c.MaxWidth < 0 {
		errs = append(errs, fmt.Errorf("-max-width must be non-negative, got %d", c.MaxWidth))
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Schema != "" && c.Query != "" {
		errs = append(errs, errors.New("-schema and -q cannot be used together"))
	}

	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback, fmt.Errorf("%s: invalid integer %q", key, value)
	}
	return n, nil
}
