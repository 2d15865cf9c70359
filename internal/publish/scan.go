package publish

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/itsanla/menit/internal/models"
)

var titlePattern = regexp.MustCompile(`(?m)^title: "(.+)"$`)
var datePattern = regexp.MustCompile(`(?m)^date: "(.+)"$`)
var attributionPattern = regexp.MustCompile(`\*Sumber referensi: \[(.+)\]\((.+)\)\*`)

// ScanCorpus reads every persisted document and extracts a history entry
// from it. This is the recovery path for a missing or thin history file;
// documents that cannot be parsed are skipped rather than failing the
// scan.
func (p *Persister) ScanCorpus() []models.HistoryEntry {
	files, err := os.ReadDir(p.blogDir)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to scan blog directory", "dir", p.blogDir, "error", err)
		}
		return nil
	}

	var entries []models.HistoryEntry
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".mdx") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(p.blogDir, f.Name()))
		if err != nil {
			continue
		}
		content := string(data)

		titleMatch := titlePattern.FindStringSubmatch(content)
		dateMatch := datePattern.FindStringSubmatch(content)
		if titleMatch == nil || dateMatch == nil {
			continue
		}

		title := strings.ReplaceAll(titleMatch[1], `\"`, `"`)
		entry := models.HistoryEntry{
			Slug:        strings.TrimSuffix(f.Name(), ".mdx"),
			Title:       title,
			SourceTitle: title, // the original source title is not recoverable
			Date:        dateMatch[1],
		}
		if attr := attributionPattern.FindStringSubmatch(content); attr != nil {
			entry.SourceName = attr[1]
			entry.SourceURL = attr[2]
		}

		entries = append(entries, entry)
	}

	return entries
}
