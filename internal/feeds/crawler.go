// Package feeds crawls the configured portal RSS feeds and normalizes
// their items for the pipeline.
package feeds

import (
	"context"
	"html"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/itsanla/menit/internal/config"
	"github.com/itsanla/menit/internal/models"
)

const (
	httpTimeout   = 10 * time.Second
	maxConcurrent = 5
	userAgent     = "MenitLiveBot/1.0 (+https://menit.live)"
)

var htmlTagPattern = regexp.MustCompile("<[^>]*>")

// Crawler fetches and parses portal feeds.
type Crawler struct {
	client *http.Client
}

// NewCrawler creates a Crawler with a 10-second timeout HTTP client and
// the bot user agent.
func NewCrawler() *Crawler {
	return &Crawler{
		client: &http.Client{
			Timeout: httpTimeout,
			Transport: &userAgentTransport{
				base: http.DefaultTransport,
			},
		},
	}
}

// userAgentTransport wraps an http.RoundTripper to inject the bot
// User-Agent header on every request.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", userAgent)
	return t.base.RoundTrip(req)
}

// Crawl fetches every feed of every portal, at most 5 concurrently, and
// returns the union of items published within the recency window. A feed
// that cannot be fetched or parsed is logged and skipped; one broken
// portal never aborts the crawl. The result is unsorted.
func (c *Crawler) Crawl(ctx context.Context, portals []config.Portal, window time.Duration) []models.FeedItem {
	cutoff := time.Now().Add(-window)

	var (
		mu    sync.Mutex
		items []models.FeedItem
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for _, portal := range portals {
		for _, feedURL := range portal.Feeds {
			g.Go(func() error {
				fetched, err := c.fetchFeed(ctx, portal.Name, feedURL, cutoff)
				if err != nil {
					slog.Warn("failed to fetch feed",
						"portal", portal.Name,
						"url", feedURL,
						"error", err,
					)
					return nil // skip failures, don't fail the crawl
				}

				mu.Lock()
				items = append(items, fetched...)
				mu.Unlock()

				slog.Info("fetched feed", "portal", portal.Name, "url", feedURL, "items", len(fetched))
				return nil
			})
		}
	}

	// Goroutines only return nil; Wait is for completion, not errors.
	_ = g.Wait()

	slog.Info("crawl finished", "window", window, "items", len(items))
	return items
}

// fetchFeed retrieves and parses one feed URL, keeping items inside the
// recency window.
func (c *Crawler) fetchFeed(ctx context.Context, portalName, feedURL string, cutoff time.Time) ([]models.FeedItem, error) {
	fp := gofeed.NewParser()
	fp.Client = c.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	var items []models.FeedItem
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" || item.Link == "" {
			continue
		}

		// Items without a parseable date are treated as just published,
		// matching how the portals emit breaking stories.
		publishedAt := time.Now()
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		}
		if publishedAt.Before(cutoff) {
			continue
		}

		items = append(items, models.FeedItem{
			Title:       title,
			Link:        item.Link,
			Summary:     itemSummary(item),
			PublishedAt: publishedAt,
			SourceName:  portalName,
			Image:       ExtractItemImage(item),
		})
	}

	return items, nil
}

// itemSummary picks the best available text for an item and strips
// markup. content:encoded usually carries more text than the
// description, so it wins when both are present.
func itemSummary(item *gofeed.Item) string {
	text := item.Content
	if text == "" {
		text = item.Description
	}
	return strings.TrimSpace(stripHTML(text))
}

// stripHTML removes HTML tags from s and unescapes HTML entities.
func stripHTML(s string) string {
	clean := htmlTagPattern.ReplaceAllString(s, "")
	return html.UnescapeString(clean)
}
