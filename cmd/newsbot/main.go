package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/itsanla/menit/internal/ai"
	"github.com/itsanla/menit/internal/config"
	"github.com/itsanla/menit/internal/feeds"
	"github.com/itsanla/menit/internal/history"
	"github.com/itsanla/menit/internal/pipeline"
	"github.com/itsanla/menit/internal/publish"
	"github.com/itsanla/menit/internal/reader"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	sourcesPath := flag.String("sources", "sources.yaml", "path to editorial sources file")
	blogDir := flag.String("blog-dir", "blog", "path to the document directory")
	historyPath := flag.String("history", "history.json", "path to the history file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Missing credential is the one fatal configuration error: abort
	// before any network activity.
	if cfg.AI.APIKey == "" {
		slog.Error("GROQ_API_KEY is not set; aborting")
		os.Exit(1)
	}

	sources, err := config.LoadSources(*sourcesPath)
	if err != nil {
		slog.Error("failed to load sources", "error", err)
		os.Exit(1)
	}

	client := ai.NewClient(cfg.AI.Endpoint, cfg.AI.APIKey, cfg.AI.Model)
	retryDelay := time.Duration(cfg.Generator.RetryDelayMs) * time.Millisecond
	readerTimeout := time.Duration(cfg.Reader.TimeoutSeconds) * time.Second

	p := pipeline.New(pipeline.Deps{
		Config:    cfg,
		Sources:   sources,
		Crawler:   feeds.NewCrawler(),
		Reader:    reader.NewClient(cfg.Reader.Endpoint, readerTimeout),
		Generator: ai.NewGenerator(client, retryDelay),
		Tagger:    ai.NewTagger(sources.Categories),
		History:   history.Open(*historyPath, cfg.Dedup.HistoryMaxEntries),
		Persister: publish.NewPersister(*blogDir),
		LockPath:  *historyPath + ".lock",
	})

	produced, err := p.Run(context.Background())
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}

	slog.Info("done", "articles", produced)
}
