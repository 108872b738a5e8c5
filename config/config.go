package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Rankers accepted in Config.Ranker.
const (
	RankerBrute  = "brute"
	RankerSQLite = "sqlite"
)

// Environment variables overriding file values.
const (
	EnvDataset  = "PARLGRAPH_DATASET"
	EnvSnapshot = "PARLGRAPH_SNAPSHOT"
	EnvRanker   = "PARLGRAPH_RANKER"
	EnvK        = "PARLGRAPH_K"
	EnvWorkers  = "PARLGRAPH_WORKERS"
	EnvLogLevel = "PARLGRAPH_LOG_LEVEL"
)

// Config captures the settings needed to load a dataset and answer queries.
type Config struct {
	// Dataset is the path of the JSON dataset document.
	Dataset string `yaml:"dataset"`

	// Snapshot is the SQLite snapshot path. It is read when Dataset is empty
	// and is required by the sqlite ranker.
	Snapshot string `yaml:"snapshot"`

	// Ranker selects the similarity engine: "brute" or "sqlite".
	Ranker string `yaml:"ranker"`

	// K is the default number of neighbors per query.
	K int `yaml:"k"`

	// Workers bounds batch query parallelism.
	Workers int `yaml:"workers"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Dataset:  "datos_completos.json",
		Ranker:   RankerBrute,
		K:        5,
		Workers:  4,
		LogLevel: "info",
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty), the dotenv file at envFile (skipped when empty or missing)
// and finally the process environment, in increasing precedence.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	dotenv := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			dotenv = m
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("config: read %s: %w", envFile, err)
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.apply(lookup); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) apply(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDataset); ok {
		c.Dataset = v
	}
	if v, ok := lookup(EnvSnapshot); ok {
		c.Snapshot = v
	}
	if v, ok := lookup(EnvRanker); ok {
		c.Ranker = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.LogLevel = v
	}
	for key, dst := range map[string]*int{EnvK: &c.K, EnvWorkers: &c.Workers} {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s: %w", key, err)
		}
		*dst = n
	}
	return nil
}

// Validate reports settings that cannot serve a query.
func (c *Config) Validate() error {
	if c.K < 0 {
		return fmt.Errorf("config: k must be non-negative, got %d", c.K)
	}
	switch c.Ranker {
	case RankerBrute:
		if c.Dataset == "" && c.Snapshot == "" {
			return fmt.Errorf("config: dataset or snapshot is required")
		}
	case RankerSQLite:
		if c.Snapshot == "" {
			return fmt.Errorf("config: snapshot is required for the %s ranker", RankerSQLite)
		}
	default:
		return fmt.Errorf("config: unknown ranker %q", c.Ranker)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: log level: %w", err)
	}
	return level, nil
}
