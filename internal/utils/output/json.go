package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/law-makers/fototeca/pkg/models"
)

// PageFileName returns the artifact name for page with the given extension
func PageFileName(page int, ext string) string {
	return fmt.Sprintf("page_%d.%s", page, ext)
}

// WriteJSON writes records as an indented JSON array. Non-ASCII characters and
// '&', '<', '>' are written literally.
func WriteJSON(w io.Writer, records []models.PhotoRecord) error {
	if records == nil {
		records = []models.PhotoRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// JSONSink writes one page_<n>.json file per emitted page into a directory
type JSONSink struct {
	dir string
}

// NewJSONSink creates a JSONSink writing under dir
func NewJSONSink(dir string) *JSONSink {
	return &JSONSink{dir: dir}
}

// Emit writes the page file, replacing any previous one
func (s *JSONSink) Emit(_ context.Context, page int, records []models.PhotoRecord) error {
	return writeFile(s.dir, PageFileName(page, "json"), func(w io.Writer) error {
		return WriteJSON(w, records)
	})
}

// Path returns where Emit writes page
func (s *JSONSink) Path(page int) string {
	return filepath.Join(s.dir, PageFileName(page, "json"))
}

// writeFile renders into a temp file and renames it into place, so a failed
// write never leaves a truncated page behind.
func writeFile(dir, name string, render func(io.Writer) error) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := render(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return os.Rename(tmp.Name(), filepath.Join(dir, name))
}
