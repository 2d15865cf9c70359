package dedup

import (
	"strings"

	"github.com/itsanla/menit/internal/config"
)

// Scorer assigns hotness scores to titles from a configured keyword list.
type Scorer struct {
	keywords []config.Keyword
}

// NewScorer creates a Scorer over the given weighted keyword list.
func NewScorer(keywords []config.Keyword) *Scorer {
	return &Scorer{keywords: keywords}
}

// Score sums the weight of every keyword that appears (case-insensitive
// substring) in the title. A title matching no keywords scores 0.
func (s *Scorer) Score(title string) int {
	lower := strings.ToLower(title)
	score := 0
	for _, kw := range s.keywords {
		if strings.Contains(lower, strings.ToLower(kw.Term)) {
			score += kw.Weight
		}
	}
	return score
}
