package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadCreatesDefaultConfig(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config file not created: %v", err)
	}
	if cfg.AI.Model != "llama-3.3-70b-versatile" {
		t.Errorf("AI.Model = %q", cfg.AI.Model)
	}
	if cfg.Generator.MinArticles != 4 || cfg.Generator.MaxArticles != 6 {
		t.Errorf("article range = [%d,%d]", cfg.Generator.MinArticles, cfg.Generator.MaxArticles)
	}
	if cfg.Dedup.SimilarityThreshold != 0.6 {
		t.Errorf("SimilarityThreshold = %v", cfg.Dedup.SimilarityThreshold)
	}
	if cfg.Generator.Timezone != "Asia/Jakarta" {
		t.Errorf("Timezone = %q", cfg.Generator.Timezone)
	}
}

func TestLoadParsesExistingConfig(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[ai]
api_key = "file-key"

[generator]
min_articles = 2
max_articles = 3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.AI.APIKey != "file-key" {
		t.Errorf("APIKey = %q", cfg.AI.APIKey)
	}
	if cfg.Generator.MinArticles != 2 || cfg.Generator.MaxArticles != 3 {
		t.Errorf("article range = [%d,%d]", cfg.Generator.MinArticles, cfg.Generator.MaxArticles)
	}
	// Omitted sections still get their defaults.
	if cfg.Reader.Endpoint == "" || cfg.Dedup.HistoryMaxEntries != 500 {
		t.Error("defaults not applied to omitted sections")
	}
}

func TestLoadEnvOverridesAPIKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "env-key")
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[ai]\napi_key = \"file-key\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AI.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want the environment to win", cfg.AI.APIKey)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "min above max",
			content: "[generator]\nmin_articles = 6\nmax_articles = 2\n",
			wantErr: "min must not exceed max",
		},
		{
			name:    "threshold out of range",
			content: "[dedup]\nsimilarity_threshold = 1.5\n",
			wantErr: "similarity_threshold",
		},
		{
			name:    "unknown timezone",
			content: "[generator]\ntimezone = \"Mars/Olympus\"\n",
			wantErr: "timezone",
		},
		{
			name:    "malformed toml",
			content: "[generator\n",
			wantErr: "parsing config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GROQ_API_KEY", "")
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			_, err := Load(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLocation(t *testing.T) {
	cfg := &Config{Generator: GeneratorConfig{Timezone: "Asia/Jakarta"}}
	if got := cfg.Location().String(); got != "Asia/Jakarta" {
		t.Errorf("Location = %q", got)
	}

	cfg.Generator.Timezone = "Mars/Olympus"
	if got := cfg.Location(); got.String() != "UTC" {
		t.Errorf("unknown zone should fall back to UTC, got %q", got)
	}
}
