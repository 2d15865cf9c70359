// Package history persists the append-only record of produced documents
// that makes cross-run deduplication work. The store is a single JSON
// array file, capped in size, replaced wholesale on every append.
package history

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/itsanla/menit/internal/models"
)

// reconcileThreshold is the entry count below which a loaded store is
// assumed fresh or lost and gets rebuilt from the document corpus.
const reconcileThreshold = 10

// Store holds the history entries for one run. It is loaded once at run
// start and flushed to disk after every append, so a crash loses at most
// the in-flight candidate.
type Store struct {
	path       string
	maxEntries int
	entries    []models.HistoryEntry
}

// Open loads the store from path. An absent or malformed file yields an
// empty store, never an error: losing history degrades dedup quality but
// must not fail the run.
func Open(path string, maxEntries int) *Store {
	s := &Store{path: path, maxEntries: maxEntries}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to read history file", "path", path, "error", err)
		}
		return s
	}

	var entries []models.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		slog.Warn("history file is malformed, starting empty", "path", path, "error", err)
		return s
	}

	s.entries = entries
	slog.Info("history loaded", "entries", len(entries))
	return s
}

// Len returns the number of loaded entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// NeedsReconcile reports whether the store is thin enough that it should
// be rebuilt from the document corpus.
func (s *Store) NeedsReconcile() bool {
	return len(s.entries) < reconcileThreshold
}

// Append adds an entry, evicts the oldest entries beyond the cap, and
// flushes to disk immediately.
func (s *Store) Append(entry models.HistoryEntry) error {
	s.entries = append(s.entries, entry)
	if len(s.entries) > s.maxEntries {
		s.entries = s.entries[len(s.entries)-s.maxEntries:]
	}
	return s.save()
}

// Reconcile merges entries recovered from the document corpus into the
// store, deduplicated by slug with the scanned entry winning, and
// persists the merged result. This is what restores the invariant that
// every persisted document has a history entry after the store file is
// lost.
func (s *Store) Reconcile(scanned []models.HistoryEntry) error {
	merged := make([]models.HistoryEntry, 0, len(s.entries)+len(scanned))
	index := make(map[string]int)

	for _, e := range append(append([]models.HistoryEntry{}, s.entries...), scanned...) {
		if i, ok := index[e.Slug]; ok {
			merged[i] = e
			continue
		}
		index[e.Slug] = len(merged)
		merged = append(merged, e)
	}

	s.entries = merged
	if len(s.entries) > s.maxEntries {
		s.entries = s.entries[len(s.entries)-s.maxEntries:]
	}

	slog.Info("history reconciled from corpus", "entries", len(s.entries))
	return s.save()
}

// ContainsSlug reports whether a document with this slug was already
// produced.
func (s *Store) ContainsSlug(slug string) bool {
	for _, e := range s.entries {
		if e.Slug == slug {
			return true
		}
	}
	return false
}

// URLsSeenWithin returns the set of source URLs processed in the last
// given number of days. Entries with unparseable dates are ignored.
func (s *Store) URLsSeenWithin(days int) map[string]struct{} {
	cutoff := time.Now().AddDate(0, 0, -days)
	urls := make(map[string]struct{})
	for _, e := range s.entries {
		if e.SourceURL == "" {
			continue
		}
		d, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			continue
		}
		// The date has day granularity; an entry from N days ago is
		// still within an N-day window.
		if !d.Before(cutoff.Truncate(24 * time.Hour)) {
			urls[e.SourceURL] = struct{}{}
		}
	}
	return urls
}

// Titles returns the published titles of all entries.
func (s *Store) Titles() []string {
	titles := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		titles = append(titles, e.Title)
	}
	return titles
}

// SourceTitles returns the original source titles of all entries.
func (s *Store) SourceTitles() []string {
	titles := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		if e.SourceTitle != "" {
			titles = append(titles, e.SourceTitle)
		}
	}
	return titles
}

// save writes the whole store back to disk via a temp file and rename, so
// a crash mid-write never leaves a truncated history file behind.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return fmt.Errorf("creating temp history file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing temp history file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp history file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing history file: %w", err)
	}

	slog.Info("history saved", "entries", len(s.entries))
	return nil
}
