// Package publish writes the final article documents and recovers history
// entries from them when the history file is lost.
package publish

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/itsanla/menit/internal/models"
)

// Persister writes documents into the blog directory, one MDX file per
// slug. Documents are immutable: an existing slug is never overwritten.
type Persister struct {
	blogDir string
}

// NewPersister creates a Persister over the given blog directory.
func NewPersister(blogDir string) *Persister {
	return &Persister{blogDir: blogDir}
}

// EnsureDir creates the blog directory if it does not exist yet.
func (p *Persister) EnsureDir() error {
	if err := os.MkdirAll(p.blogDir, 0o755); err != nil {
		return fmt.Errorf("creating blog directory: %w", err)
	}
	return nil
}

// Exists reports whether a document with the given slug is already
// persisted.
func (p *Persister) Exists(slug string) bool {
	_, err := os.Stat(p.path(slug))
	return err == nil
}

// Write persists the document. It fails if a document with the same slug
// already exists.
func (p *Persister) Write(doc models.Document) error {
	if p.Exists(doc.Slug) {
		return fmt.Errorf("document %q already exists", doc.Slug)
	}

	content, err := renderMDX(doc)
	if err != nil {
		return fmt.Errorf("rendering document %q: %w", doc.Slug, err)
	}

	if err := os.WriteFile(p.path(doc.Slug), []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing document %q: %w", doc.Slug, err)
	}
	return nil
}

func (p *Persister) path(slug string) string {
	return filepath.Join(p.blogDir, slug+".mdx")
}

// renderMDX builds the document file: a quoted key-value frontmatter
// block, the body, and the trailing attribution line the rendering site
// (and the corpus scanner) rely on.
func renderMDX(doc models.Document) (string, error) {
	tags, err := json.Marshal(doc.Tags)
	if err != nil {
		return "", fmt.Errorf("encoding tags: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", doc.Title)
	fmt.Fprintf(&b, "date: %q\n", doc.Date)
	fmt.Fprintf(&b, "time: %q\n", doc.Time)
	fmt.Fprintf(&b, "description: %q\n", doc.Description)
	fmt.Fprintf(&b, "tags: %s\n", tags)
	if doc.Image != "" {
		fmt.Fprintf(&b, "image: %q\n", doc.Image)
	}
	b.WriteString("---\n\n")
	b.WriteString(doc.Body)
	b.WriteString("\n\n---\n\n")
	fmt.Fprintf(&b, "*Sumber referensi: [%s](%s)*\n", doc.SourceName, doc.SourceURL)

	return b.String(), nil
}
