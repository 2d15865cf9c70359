package models

// Document is the final published artifact, written once per slug and
// never mutated afterwards. The rendering site consumes these files
// read-only.
type Document struct {
	Slug        string
	Title       string
	Date        string // YYYY-MM-DD
	Time        string // HH:MM
	Description string
	Tags        []string // 1-4 entries, ordered
	Image       string   // optional
	Body        string
	SourceName  string
	SourceURL   string
}
