package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/itsanla/menit/internal/models"
)

func entry(slug string) models.HistoryEntry {
	return models.HistoryEntry{
		Slug:        slug,
		Title:       "Judul untuk " + slug,
		SourceTitle: "Judul sumber untuk " + slug,
		SourceURL:   "https://news.example/" + slug,
		SourceName:  "Detik",
		Date:        time.Now().Format("2006-01-02"),
	}
}

func TestAppendThenLoadContainsEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	store := Open(path, 500)
	if err := store.Append(entry("berita-pertama")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	reloaded := Open(path, 500)
	if !reloaded.ContainsSlug("berita-pertama") {
		t.Error("appended entry missing after reload")
	}
	if got := reloaded.Len(); got != 1 {
		t.Errorf("Len = %d, want 1", got)
	}
}

func TestAppendEvictsOldestBeyondCap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	const maxEntries = 5

	store := Open(path, maxEntries)
	for i := 0; i < maxEntries+3; i++ {
		if err := store.Append(entry(fmt.Sprintf("berita-%02d", i))); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	if got := store.Len(); got != maxEntries {
		t.Fatalf("Len = %d, want %d", got, maxEntries)
	}
	// Oldest entries are dropped first.
	for i := 0; i < 3; i++ {
		if store.ContainsSlug(fmt.Sprintf("berita-%02d", i)) {
			t.Errorf("entry berita-%02d should have been evicted", i)
		}
	}
	if !store.ContainsSlug(fmt.Sprintf("berita-%02d", maxEntries+2)) {
		t.Error("newest entry should survive eviction")
	}
}

func TestOpenToleratesMissingAndMalformedFiles(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		store := Open(filepath.Join(t.TempDir(), "nope.json"), 500)
		if store.Len() != 0 {
			t.Errorf("Len = %d, want 0", store.Len())
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatal(err)
		}
		store := Open(path, 500)
		if store.Len() != 0 {
			t.Errorf("Len = %d, want 0", store.Len())
		}
	})

	t.Run("wrong shape", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.json")
		if err := os.WriteFile(path, []byte(`{"slug":"x"}`), 0o644); err != nil {
			t.Fatal(err)
		}
		store := Open(path, 500)
		if store.Len() != 0 {
			t.Errorf("Len = %d, want 0", store.Len())
		}
	})
}

func TestReconcile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	store := Open(path, 500)
	if !store.NeedsReconcile() {
		t.Fatal("fresh store should need reconciliation")
	}

	if err := store.Append(entry("sudah-ada")); err != nil {
		t.Fatal(err)
	}

	scanned := []models.HistoryEntry{
		entry("dari-korpus"),
		{Slug: "sudah-ada", Title: "Judul dari korpus", Date: "2026-08-30"},
	}
	if err := store.Reconcile(scanned); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if store.Len() != 2 {
		t.Fatalf("Len = %d, want 2", store.Len())
	}
	if !store.ContainsSlug("dari-korpus") {
		t.Error("corpus entry missing after reconcile")
	}

	// Last write wins on slug conflicts: the scanned entry replaces the
	// loaded one.
	found := false
	for _, title := range store.Titles() {
		if title == "Judul dari korpus" {
			found = true
		}
	}
	if !found {
		t.Error("scanned entry should win the slug conflict")
	}

	// The merged result is persisted immediately.
	reloaded := Open(path, 500)
	if reloaded.Len() != 2 {
		t.Errorf("reloaded Len = %d, want 2", reloaded.Len())
	}
}

func TestURLsSeenWithin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	store := Open(path, 500)

	recent := entry("baru-kemarin")
	recent.Date = time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	old := entry("lama-sekali")
	old.Date = time.Now().AddDate(0, 0, -10).Format("2006-01-02")
	undated := entry("tanpa-tanggal")
	undated.Date = "bukan tanggal"

	for _, e := range []models.HistoryEntry{recent, old, undated} {
		if err := store.Append(e); err != nil {
			t.Fatal(err)
		}
	}

	urls := store.URLsSeenWithin(2)
	if _, ok := urls[recent.SourceURL]; !ok {
		t.Error("URL produced 1 day ago should be within a 2-day window")
	}
	if _, ok := urls[old.SourceURL]; ok {
		t.Error("URL produced 10 days ago should be outside a 2-day window")
	}
	if _, ok := urls[undated.SourceURL]; ok {
		t.Error("entry with unparseable date should be ignored")
	}
}

func TestViews(t *testing.T) {
	store := Open(filepath.Join(t.TempDir(), "history.json"), 500)
	e := entry("satu-satunya")
	if err := store.Append(e); err != nil {
		t.Fatal(err)
	}

	if titles := store.Titles(); len(titles) != 1 || titles[0] != e.Title {
		t.Errorf("Titles = %v", titles)
	}
	if titles := store.SourceTitles(); len(titles) != 1 || titles[0] != e.SourceTitle {
		t.Errorf("SourceTitles = %v", titles)
	}
	if store.ContainsSlug("tidak-ada") {
		t.Error("ContainsSlug should be false for unknown slug")
	}
}

func TestSaveWritesValidJSONArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	store := Open(path, 500)
	if err := store.Append(entry("cek-format")); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var out []models.HistoryEntry
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("history file is not a JSON array: %v", err)
	}
	if len(out) != 1 || out[0].Slug != "cek-format" {
		t.Errorf("unexpected file contents: %+v", out)
	}
}
