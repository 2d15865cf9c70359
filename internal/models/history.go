package models

// HistoryEntry records one previously produced document. The history file
// is the cross-run dedup memory: slugs, source URLs and both title forms
// are all checked against it before a candidate is admitted.
type HistoryEntry struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	SourceTitle string `json:"sourceTitle"`
	SourceURL   string `json:"sourceUrl"`
	SourceName  string `json:"portal"`
	Date        string `json:"date"` // YYYY-MM-DD
}
