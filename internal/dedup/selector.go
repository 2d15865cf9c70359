package dedup

import (
	"log/slog"
	"sort"

	"github.com/itsanla/menit/internal/models"
)

// History is the read view over previously produced documents that the
// selector consults for cross-run rejection.
type History interface {
	ContainsSlug(slug string) bool
	URLsSeenWithin(days int) map[string]struct{}
	Titles() []string
	SourceTitles() []string
}

// Selector admits only genuinely novel candidates, in hotness order.
type Selector struct {
	scorer    *Scorer
	history   History
	docExists func(slug string) bool

	threshold   float64
	recencyDays int
	minSlugLen  int
}

// NewSelector creates a Selector. docExists reports whether a document
// with the given slug is already persisted in the corpus.
func NewSelector(scorer *Scorer, history History, docExists func(string) bool, threshold float64, recencyDays, minSlugLen int) *Selector {
	return &Selector{
		scorer:      scorer,
		history:     history,
		docExists:   docExists,
		threshold:   threshold,
		recencyDays: recencyDays,
		minSlugLen:  minSlugLen,
	}
}

// Select scores and orders the crawled items, then admits them one by one
// while rejecting anything already covered by history or by an earlier
// admission in the same pass. Admission order matters: as soon as an item
// is admitted, its slug, URL and title become rejection criteria for
// everything after it, so two near-identical stories from different feeds
// cannot both survive one run.
//
// At most 2*maxCount candidates are returned, as a buffer against
// failures in the later pipeline stages.
func (s *Selector) Select(items []models.FeedItem, maxCount int) []models.Candidate {
	scored := make([]models.Candidate, 0, len(items))
	for _, item := range items {
		scored = append(scored, models.Candidate{
			FeedItem: item,
			HotScore: s.scorer.Score(item.Title),
			Slug:     Slugify(item.Title),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].HotScore != scored[j].HotScore {
			return scored[i].HotScore > scored[j].HotScore
		}
		return scored[i].PublishedAt.After(scored[j].PublishedAt)
	})

	historyTitles := s.history.Titles()
	historySourceTitles := s.history.SourceTitles()
	recentURLs := s.history.URLsSeenWithin(s.recencyDays)

	seenSlugs := make(map[string]struct{})
	seenURLs := make(map[string]struct{})
	var seenTitles []string

	limit := maxCount * 2
	admitted := make([]models.Candidate, 0, limit)

	for _, cand := range scored {
		if len(admitted) >= limit {
			break
		}

		if len(cand.Slug) < s.minSlugLen {
			continue
		}
		if _, ok := seenSlugs[cand.Slug]; ok {
			continue
		}
		if s.docExists(cand.Slug) || s.history.ContainsSlug(cand.Slug) {
			continue
		}
		if _, ok := recentURLs[cand.Link]; ok {
			slog.Info("skipping candidate, source URL already processed", "title", cand.Title)
			continue
		}
		if _, ok := seenURLs[cand.Link]; ok {
			continue
		}

		existing := make([]string, 0, len(historyTitles)+len(historySourceTitles)+len(seenTitles))
		existing = append(existing, historyTitles...)
		existing = append(existing, historySourceTitles...)
		existing = append(existing, seenTitles...)
		if IsNearDuplicate(cand.Title, existing, s.threshold) {
			slog.Info("skipping candidate, near-duplicate title", "title", cand.Title)
			continue
		}

		seenSlugs[cand.Slug] = struct{}{}
		seenURLs[cand.Link] = struct{}{}
		seenTitles = append(seenTitles, cand.Title)
		admitted = append(admitted, cand)
	}

	return admitted
}
