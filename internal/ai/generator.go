package ai

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"
)

const (
	rewriteAttempts  = 2
	minRewriteLength = 200

	minTitleLength = 10
	maxTitleLength = 150

	minDescriptionLength      = 20
	fallbackDescriptionLength = 155
)

var headingPattern = regexp.MustCompile(`(?m)^#+\s.+$`)
var newlinePattern = regexp.MustCompile(`\n+`)

// Generator produces the rewritten article body and its metadata. Every
// method degrades to a fallback rather than failing the pipeline; only
// Rewrite can give up, and it signals that with ok=false.
type Generator struct {
	client     *Client
	retryDelay time.Duration
}

// NewGenerator creates a Generator. retryDelay is the pause between
// rewrite attempts.
func NewGenerator(client *Client, retryDelay time.Duration) *Generator {
	return &Generator{client: client, retryDelay: retryDelay}
}

// Rewrite produces a fully reworded article body from the source text. A
// failed call or a response under 200 characters is retried once after
// the backoff delay. Returns ok=false when both attempts come up short;
// the caller must skip the candidate.
func (g *Generator) Rewrite(ctx context.Context, title, content, sourceName string) (string, bool) {
	prompt := RewritePrompt(title, content, sourceName)

	for attempt := 1; attempt <= rewriteAttempts; attempt++ {
		slog.Info("rewriting article", "attempt", attempt, "title", title)

		text, err := g.client.Complete(ctx, prompt, Options{Temperature: 0.7, MaxTokens: 1024})
		if err != nil {
			slog.Warn("rewrite call failed", "attempt", attempt, "error", err)
		} else if body := strings.TrimSpace(text); len(body) > minRewriteLength {
			return body, true
		} else {
			slog.Warn("rewrite too short, retrying", "attempt", attempt, "length", len(body))
		}

		if attempt < rewriteAttempts {
			time.Sleep(g.retryDelay)
		}
	}

	return "", false
}

// GenerateTitle requests a new headline distinct from the source title.
// Out-of-range or failed results fall back to the source title.
func (g *Generator) GenerateTitle(ctx context.Context, sourceTitle, body string) string {
	text, err := g.client.Complete(ctx, TitlePrompt(sourceTitle, body), Options{Temperature: 0.8, MaxTokens: 80})
	if err != nil {
		slog.Warn("title generation failed", "error", err)
		return sourceTitle
	}

	title := strings.TrimSpace(text)
	if len(title) <= minTitleLength || len(title) >= maxTitleLength {
		slog.Warn("generated title out of range", "length", len(title))
		return sourceTitle
	}

	return stripWrappingQuotes(title)
}

// GenerateDescription requests a short SEO summary. Failures and trivial
// results fall back to a truncation of the body with headings removed.
func (g *Generator) GenerateDescription(ctx context.Context, title, body string) string {
	text, err := g.client.Complete(ctx, DescriptionPrompt(title, body), Options{Temperature: 0.5, MaxTokens: 80})
	if err == nil {
		if desc := strings.TrimSpace(text); len(desc) > minDescriptionLength {
			return stripWrappingQuotes(desc)
		}
	} else {
		slog.Warn("description generation failed", "error", err)
	}

	return fallbackDescription(body)
}

// fallbackDescription derives a description from the body itself: drop
// markdown headings, flatten newlines, take the first ~155 characters.
func fallbackDescription(body string) string {
	text := headingPattern.ReplaceAllString(body, "")
	text = newlinePattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	return head(text, fallbackDescriptionLength) + "..."
}

// stripWrappingQuotes removes a single leading and trailing quote
// character the model sometimes adds despite instructions.
func stripWrappingQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimPrefix(s, "'")
	s = strings.TrimSuffix(s, `"`)
	s = strings.TrimSuffix(s, "'")
	return s
}
