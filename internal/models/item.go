package models

import "time"

// FeedItem is a single normalized entry from a portal RSS feed. It lives
// only for the duration of one pipeline run.
type FeedItem struct {
	Title       string
	Link        string
	Summary     string
	PublishedAt time.Time
	SourceName  string
	Image       string // representative image from the feed entry, may be empty
}

// Candidate is a FeedItem that passed scoring and awaits deduplication.
// Candidates are ordered by (HotScore desc, PublishedAt desc).
type Candidate struct {
	FeedItem
	HotScore int
	Slug     string // normalized-title slug, the dedupe key
}
