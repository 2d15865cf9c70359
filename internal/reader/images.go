package reader

import (
	"regexp"

	"github.com/itsanla/menit/internal/feeds"
)

var markdownImagePattern = regexp.MustCompile(`!\[[^\]]*\]\(([^)]+)\)`)
var bareImageURLPattern = regexp.MustCompile(`(?i)https?://[^\s"'<>]+\.(?:jpg|jpeg|png|webp|gif)(?:\?[^\s"'<>]*)?`)

// ImageFromContent pulls an image URL out of extracted markdown content:
// the first markdown image syntax if its target looks like an image, else
// the first bare image-like URL in the text.
func ImageFromContent(text string) string {
	if text == "" {
		return ""
	}

	if m := markdownImagePattern.FindStringSubmatch(text); m != nil && feeds.IsImageURL(m[1]) {
		return m[1]
	}

	if m := bareImageURLPattern.FindString(text); m != "" {
		return m
	}

	return ""
}
