// Package documents provides upload, persistence, and retrieval of PDF
// documents together with their extracted file attributes.
package documents

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pagelab/pagelab/internal/pages"
)

// Document represents a stored PDF with its extracted attributes.
type Document struct {
	ID         uuid.UUID            `json:"id"`
	Name       string               `json:"name"`
	Filename   string               `json:"filename"`
	Attributes pages.FileAttributes `json:"attributes"`
	StorageKey string               `json:"storage_key"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// CreateCommand contains the data required to store a new document.
// Data holds the raw PDF bytes; Attributes must already be extracted.
type CreateCommand struct {
	Name       string
	Filename   string
	Attributes pages.FileAttributes
	Data       []byte
}

// Filters contains optional criteria for document list queries.
type Filters struct {
	Name *string
}

func buildStorageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("documents/%s/%s", id.String(), sanitizeFilename(filename))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	replacer := strings.NewReplacer(
		" ", "_",
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(name)
}
