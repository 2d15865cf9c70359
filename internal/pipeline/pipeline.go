// Package pipeline drives one unattended generation run: crawl, dedup,
// extract, rewrite, and persist.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/itsanla/menit/internal/ai"
	"github.com/itsanla/menit/internal/config"
	"github.com/itsanla/menit/internal/dedup"
	"github.com/itsanla/menit/internal/feeds"
	"github.com/itsanla/menit/internal/history"
	"github.com/itsanla/menit/internal/models"
	"github.com/itsanla/menit/internal/publish"
	"github.com/itsanla/menit/internal/reader"
)

// minFallbackLength is the content length below which the reader result
// is discarded in favor of the feed summary.
const minFallbackLength = 100

// minContentLength is the content length below which a candidate is not
// worth rewriting at all.
const minContentLength = 50

// Deps are the collaborators a Pipeline needs. All of them are loaded or
// constructed once per run and threaded through explicitly.
type Deps struct {
	Config    *config.Config
	Sources   *config.Sources
	Crawler   *feeds.Crawler
	Reader    *reader.Client
	Generator *ai.Generator
	Tagger    *ai.Tagger
	History   *history.Store
	Persister *publish.Persister
	LockPath  string
}

// Pipeline executes a single generation run.
type Pipeline struct {
	deps Deps
	loc  *time.Location
}

// New creates a Pipeline from its dependencies.
func New(deps Deps) *Pipeline {
	return &Pipeline{deps: deps, loc: deps.Config.Location()}
}

// Run executes one complete run and returns the number of articles
// produced. Failures of individual sources or candidates are recovered
// inside the loop; only setup failures (lock, blog directory) escape.
func (p *Pipeline) Run(ctx context.Context) (int, error) {
	release, err := acquireRunLock(p.deps.LockPath)
	if err != nil {
		return 0, fmt.Errorf("acquiring run lock: %w", err)
	}
	defer release()

	if err := p.deps.Persister.EnsureDir(); err != nil {
		return 0, err
	}

	if p.deps.History.NeedsReconcile() {
		slog.Info("history is thin, rebuilding from document corpus")
		if err := p.deps.History.Reconcile(p.deps.Persister.ScanCorpus()); err != nil {
			slog.Warn("history reconciliation failed", "error", err)
		}
	}

	cfg := p.deps.Config
	window := time.Duration(cfg.Generator.WindowHours) * time.Hour
	items := p.deps.Crawler.Crawl(ctx, p.deps.Sources.Portals, window)

	selector := dedup.NewSelector(
		dedup.NewScorer(p.deps.Sources.Keywords),
		p.deps.History,
		p.deps.Persister.Exists,
		cfg.Dedup.SimilarityThreshold,
		cfg.Dedup.URLRecencyDays,
		cfg.Dedup.MinSlugLength,
	)
	candidates := selector.Select(items, cfg.Generator.MaxArticles)
	slog.Info("candidates selected", "count", len(candidates))

	if len(candidates) == 0 {
		slog.Info("no new stories meet the criteria")
		return 0, nil
	}

	target := cfg.Generator.MinArticles +
		rand.IntN(cfg.Generator.MaxArticles-cfg.Generator.MinArticles+1)
	slog.Info("run target", "articles", target,
		"min", cfg.Generator.MinArticles, "max", cfg.Generator.MaxArticles)

	produced := 0
	for _, cand := range candidates {
		if produced >= target {
			break
		}
		if p.processCandidate(ctx, cand) {
			produced++
			p.sleep(cfg.Generator.ArticleDelayMs)
		}
	}

	slog.Info("run finished", "produced", produced)
	return produced, nil
}

// processCandidate runs one candidate through fetch, rewrite, metadata
// and persistence. Every failure path skips the candidate and keeps the
// run alive, including panics from unexpected states.
func (p *Pipeline) processCandidate(ctx context.Context, cand models.Candidate) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("candidate processing panicked", "title", cand.Title, "panic", r)
			ok = false
		}
	}()

	cfg := p.deps.Config
	slog.Info("processing candidate", "title", cand.Title, "portal", cand.SourceName, "score", cand.HotScore)

	res := p.deps.Reader.Fetch(ctx, cand.Link)
	content := res.Text
	if len(content) < minFallbackLength {
		slog.Info("falling back to feed summary", "title", cand.Title)
		content = cand.Summary
	}
	if len(content) < minContentLength {
		slog.Info("skipping candidate, content too short", "title", cand.Title)
		return false
	}

	body, rewritten := p.deps.Generator.Rewrite(ctx, cand.Title, content, cand.SourceName)
	if !rewritten {
		slog.Warn("skipping candidate, rewrite failed", "title", cand.Title)
		return false
	}
	p.sleep(cfg.Generator.CallDelayMs)

	title := p.deps.Generator.GenerateTitle(ctx, cand.Title, body)
	p.sleep(cfg.Generator.CallDelayMs)

	description := p.deps.Generator.GenerateDescription(ctx, title, body)
	p.sleep(cfg.Generator.CallDelayMs)

	tags := p.deps.Tagger.Detect(title, body)

	slug := dedup.Slugify(title)
	if len(slug) < cfg.Dedup.MinSlugLength ||
		p.deps.Persister.Exists(slug) || p.deps.History.ContainsSlug(slug) {
		slog.Info("skipping candidate, slug invalid or taken", "slug", slug)
		return false
	}

	// The feed image wins over whatever the reader scraped out of the page.
	image := cand.Image
	if image == "" {
		image = res.Image
	}

	now := time.Now().In(p.loc)
	doc := models.Document{
		Slug:        slug,
		Title:       title,
		Date:        now.Format("2006-01-02"),
		Time:        now.Format("15:04"),
		Description: description,
		Tags:        tags,
		Image:       image,
		Body:        body,
		SourceName:  cand.SourceName,
		SourceURL:   cand.Link,
	}

	if err := p.deps.Persister.Write(doc); err != nil {
		slog.Warn("skipping candidate, persist failed", "slug", slug, "error", err)
		return false
	}

	entry := models.HistoryEntry{
		Slug:        slug,
		Title:       title,
		SourceTitle: cand.Title,
		SourceURL:   cand.Link,
		SourceName:  cand.SourceName,
		Date:        doc.Date,
	}
	if err := p.deps.History.Append(entry); err != nil {
		// The document is already on disk; the next reconciliation pass
		// recovers the missing entry from the corpus.
		slog.Error("failed to append history entry", "slug", slug, "error", err)
	}

	slog.Info("article published", "slug", slug, "tags", tags)
	return true
}

func (p *Pipeline) sleep(ms int) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}
