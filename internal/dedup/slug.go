package dedup

import (
	"regexp"
	"strings"
)

const maxSlugLength = 80

var slugStripPattern = regexp.MustCompile(`[^a-z0-9\s-]`)
var slugDashPattern = regexp.MustCompile(`-+`)

// Slugify derives a URL-safe, length-capped identifier from a title. Two
// titles that normalize identically produce the same slug, which is
// exactly what makes the slug usable as a dedupe key. Applying Slugify to
// its own output is a no-op.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = slugStripPattern.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), "-")
	s = slugDashPattern.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxSlugLength {
		// The cap can land right after a hyphen; trim again so the
		// truncated slug stays a fixed point of Slugify.
		s = strings.Trim(s[:maxSlugLength], "-")
	}
	return s
}
