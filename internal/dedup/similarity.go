// Package dedup decides which crawled stories are genuinely new. It
// combines title similarity, slug identity and source-URL history so the
// same story never gets published twice, within a run or across runs.
package dedup

import (
	"regexp"
	"strings"
)

var nonAlnumPattern = regexp.MustCompile(`[^a-z0-9\s]`)
var whitespacePattern = regexp.MustCompile(`\s+`)

// Normalize lowercases s, strips everything but letters, digits and
// whitespace, and collapses whitespace runs into single spaces.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = nonAlnumPattern.ReplaceAllString(s, "")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Similarity returns the Jaccard index of the normalized token sets of a
// and b, in [0,1]. Identical titles score 1, titles with disjoint
// vocabulary score 0. If either side normalizes to nothing there is no
// basis for comparison and the result is 0.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0
	}

	setA := tokenSet(na)
	setB := tokenSet(nb)

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection

	return float64(intersection) / float64(union)
}

// IsNearDuplicate reports whether title is similar to any of the existing
// titles at or above the given threshold.
func IsNearDuplicate(title string, existing []string, threshold float64) bool {
	for _, other := range existing {
		if Similarity(title, other) >= threshold {
			return true
		}
	}
	return false
}

func tokenSet(normalized string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(normalized) {
		set[tok] = struct{}{}
	}
	return set
}
