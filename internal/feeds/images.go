package feeds

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

var imageExtPattern = regexp.MustCompile(`\.(jpg|jpeg|png|webp|gif|svg|avif)(\?.*)?$`)

// ExtractItemImage finds a representative image for a feed item, trying in
// priority order: the enclosure, media:content, media:thumbnail, then the
// first <img> tag embedded in the item's HTML body. Returns "" when
// nothing plausible is found.
func ExtractItemImage(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc == nil {
			continue
		}
		if strings.HasPrefix(enc.Type, "image/") || IsImageURL(enc.URL) {
			return enc.URL
		}
	}

	for _, field := range []string{"content", "thumbnail"} {
		for _, ext := range item.Extensions["media"][field] {
			if url := ext.Attrs["url"]; IsImageURL(url) {
				return url
			}
		}
	}

	body := item.Content
	if body == "" {
		body = item.Description
	}
	if url := imageFromHTML(body); url != "" {
		return url
	}

	return ""
}

// imageFromHTML parses an HTML fragment and returns the src of the first
// <img> tag that looks like an image URL.
func imageFromHTML(fragment string) string {
	if fragment == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}

	var found string
	doc.Find("img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src, ok := sel.Attr("src")
		if ok && IsImageURL(src) {
			found = src
			return false
		}
		return true
	})

	return found
}

// IsImageURL reports whether the URL plausibly points at an image, by
// file extension or by the CDN path patterns the Indonesian portals use.
func IsImageURL(url string) bool {
	if url == "" {
		return false
	}
	lower := strings.ToLower(url)
	if imageExtPattern.MatchString(lower) {
		return true
	}
	for _, marker := range []string{"/image/", "/foto/", "/photo/"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	switch {
	case strings.Contains(lower, "akcdn.detik.net.id"):
		return true
	case strings.Contains(lower, "asset.kompas.com"):
		return true
	case strings.Contains(lower, "cdn-") && strings.Contains(lower, "tribunnews"):
		return true
	case strings.Contains(lower, "img.cnn"):
		return true
	}
	return false
}
