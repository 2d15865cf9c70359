package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	AI        AIConfig        `toml:"ai"`
	Reader    ReaderConfig    `toml:"reader"`
	Generator GeneratorConfig `toml:"generator"`
	Dedup     DedupConfig     `toml:"dedup"`
}

// AIConfig holds generative service settings.
type AIConfig struct {
	APIKey   string `toml:"api_key"`
	Endpoint string `toml:"endpoint"`
	Model    string `toml:"model"`
}

// ReaderConfig holds content extraction service settings.
type ReaderConfig struct {
	Endpoint       string `toml:"endpoint"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// GeneratorConfig controls how many articles a run produces and how it
// paces its external calls.
type GeneratorConfig struct {
	MinArticles    int    `toml:"min_articles"`
	MaxArticles    int    `toml:"max_articles"`
	WindowHours    int    `toml:"window_hours"`
	Timezone       string `toml:"timezone"`
	CallDelayMs    int    `toml:"call_delay_ms"`
	ArticleDelayMs int    `toml:"article_delay_ms"`
	RetryDelayMs   int    `toml:"retry_delay_ms"`
}

// DedupConfig holds duplicate-rejection tuning. The defaults are carried
// over from the production pipeline rather than re-derived.
type DedupConfig struct {
	SimilarityThreshold float64 `toml:"similarity_threshold"`
	URLRecencyDays      int     `toml:"url_recency_days"`
	MinSlugLength       int     `toml:"min_slug_length"`
	HistoryMaxEntries   int     `toml:"history_max_entries"`
}

const defaultConfigContent = `[ai]
api_key = ""                     # or set GROQ_API_KEY
endpoint = "https://api.groq.com/openai/v1/chat/completions"
model = "llama-3.3-70b-versatile"

[reader]
endpoint = "https://r.jina.ai/"
timeout_seconds = 15

[generator]
min_articles = 4
max_articles = 6
window_hours = 4                 # slightly wider than the 3h schedule for overlap
timezone = "Asia/Jakarta"
call_delay_ms = 500
article_delay_ms = 1000
retry_delay_ms = 3000

[dedup]
similarity_threshold = 0.6
url_recency_days = 2
min_slug_length = 5
history_max_entries = 500
`

// Load reads and parses the TOML config from the given path. If the file
// does not exist, it creates a default config file at that path. The
// GROQ_API_KEY environment variable overrides ai.api_key with highest
// priority.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		slog.Info("created default config file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyDefaults(&cfg)

	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// createDefault writes the default config content to the given path,
// creating any parent directories as needed.
func createDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// applyDefaults sets default values for any zero-valued fields.
func applyDefaults(cfg *Config) {
	if cfg.AI.Endpoint == "" {
		cfg.AI.Endpoint = "https://api.groq.com/openai/v1/chat/completions"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "llama-3.3-70b-versatile"
	}
	if cfg.Reader.Endpoint == "" {
		cfg.Reader.Endpoint = "https://r.jina.ai/"
	}
	if cfg.Reader.TimeoutSeconds == 0 {
		cfg.Reader.TimeoutSeconds = 15
	}
	if cfg.Generator.MinArticles == 0 {
		cfg.Generator.MinArticles = 4
	}
	if cfg.Generator.MaxArticles == 0 {
		cfg.Generator.MaxArticles = 6
	}
	if cfg.Generator.WindowHours == 0 {
		cfg.Generator.WindowHours = 4
	}
	if cfg.Generator.Timezone == "" {
		cfg.Generator.Timezone = "Asia/Jakarta"
	}
	if cfg.Generator.CallDelayMs == 0 {
		cfg.Generator.CallDelayMs = 500
	}
	if cfg.Generator.ArticleDelayMs == 0 {
		cfg.Generator.ArticleDelayMs = 1000
	}
	if cfg.Generator.RetryDelayMs == 0 {
		cfg.Generator.RetryDelayMs = 3000
	}
	if cfg.Dedup.SimilarityThreshold == 0 {
		cfg.Dedup.SimilarityThreshold = 0.6
	}
	if cfg.Dedup.URLRecencyDays == 0 {
		cfg.Dedup.URLRecencyDays = 2
	}
	if cfg.Dedup.MinSlugLength == 0 {
		cfg.Dedup.MinSlugLength = 5
	}
	if cfg.Dedup.HistoryMaxEntries == 0 {
		cfg.Dedup.HistoryMaxEntries = 500
	}
}

// validate checks that configuration values are within acceptable ranges.
// The API key is deliberately not checked here: its absence is a fatal
// startup condition decided by the caller, not a config parse error.
func validate(cfg *Config) error {
	if cfg.Generator.MinArticles > cfg.Generator.MaxArticles {
		return fmt.Errorf("invalid generator article range [%d,%d]: min must not exceed max",
			cfg.Generator.MinArticles, cfg.Generator.MaxArticles)
	}
	if cfg.Dedup.SimilarityThreshold < 0 || cfg.Dedup.SimilarityThreshold > 1 {
		return fmt.Errorf("invalid dedup.similarity_threshold %v: must be in [0,1]",
			cfg.Dedup.SimilarityThreshold)
	}
	if _, err := time.LoadLocation(cfg.Generator.Timezone); err != nil {
		return fmt.Errorf("invalid generator.timezone %q: %w", cfg.Generator.Timezone, err)
	}
	return nil
}

// Location resolves the configured timezone. Validation guarantees the
// zone loads, so a failure here can only mean the zone database changed
// underneath us; fall back to UTC rather than fail a run.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Generator.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
