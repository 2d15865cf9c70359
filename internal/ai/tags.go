package ai

import (
	"sort"
	"strings"

	"github.com/itsanla/menit/internal/config"
)

const maxTags = 4

// defaultTags is used when no category matches at all.
var defaultTags = []string{"berita", "terkini"}

// Tagger detects topic tags for an article from a configured category
// taxonomy. It is purely local; no generative call is involved.
type Tagger struct {
	categories []config.Category
}

// NewTagger creates a Tagger over the given taxonomy.
func NewTagger(categories []config.Category) *Tagger {
	return &Tagger{categories: categories}
}

// Detect scores every category by how many of its keywords appear in the
// combined title and body, takes the two best-matching categories, and
// returns their tags deduplicated and capped at four.
func (t *Tagger) Detect(title, body string) []string {
	text := strings.ToLower(title + " " + body)

	type match struct {
		tags []string
		hits int
	}
	var matched []match

	for _, cat := range t.categories {
		hits := 0
		for _, kw := range cat.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				hits++
			}
		}
		if hits >= 1 {
			matched = append(matched, match{tags: cat.Tags, hits: hits})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].hits > matched[j].hits
	})
	if len(matched) > 2 {
		matched = matched[:2]
	}

	seen := make(map[string]struct{})
	var tags []string
	for _, m := range matched {
		for _, tag := range m.tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	if len(tags) == 0 {
		return append([]string{}, defaultTags...)
	}
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	return tags
}
