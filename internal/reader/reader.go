// Package reader retrieves full readable article text for a candidate,
// delegating to a markdown reader service with a local readability
// fallback.
package reader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	readability "github.com/go-shiori/go-readability"
)

// maxContentLength caps extracted text so the rewrite prompt stays inside
// the generative model's context window.
const maxContentLength = 4000

// Result is the outcome of one extraction attempt. Both fields may be
// empty; the caller decides what to do with a degraded result.
type Result struct {
	Text  string
	Image string
}

// Client fetches article text through a Jina-style reader endpoint that
// returns clean markdown for any article URL appended to it.
type Client struct {
	endpoint string
	timeout  time.Duration
	client   *http.Client
}

// NewClient creates a Client for the given reader endpoint. The timeout
// bounds each extraction attempt.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		timeout:  timeout,
		client:   &http.Client{Timeout: timeout},
	}
}

// Fetch extracts the article at articleURL. It tries the reader service
// first, then direct readability extraction of the page itself. Text is
// truncated to 4000 characters and an image URL is pulled from the
// content when one is present. Fetch never fails: a total miss returns an
// empty Result and the caller falls back to the feed summary.
func (c *Client) Fetch(ctx context.Context, articleURL string) Result {
	text, err := c.fetchMarkdown(ctx, articleURL)
	if err == nil {
		return Result{
			Text:  truncate(text, maxContentLength),
			Image: ImageFromContent(text),
		}
	}
	slog.Warn("reader service failed", "url", articleURL, "error", err)

	article, err := readability.FromURL(articleURL, c.timeout, browserHeaders)
	if err != nil {
		slog.Warn("readability extraction failed", "url", articleURL, "error", err)
		return Result{}
	}

	return Result{
		Text:  truncate(article.TextContent, maxContentLength),
		Image: article.Image,
	}
}

// fetchMarkdown requests the reader endpoint for the given article URL.
func (c *Client) fetchMarkdown(ctx context.Context, articleURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+articleURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/markdown")
	req.Header.Set("X-Return-Format", "markdown")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	return string(body), nil
}

// browserHeaders sets browser-like request headers so sites that check
// Accept or User-Agent don't reject the direct extraction request.
func browserHeaders(r *http.Request) {
	r.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	r.Header.Set("User-Agent", "Mozilla/5.0 (compatible; MenitLiveBot/1.0; +https://menit.live)")
}

// truncate cuts s to at most max bytes without splitting a multibyte
// rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
