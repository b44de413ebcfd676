package ingest

import (
	"errors"
	"strings"
)

// Doc is a text submitted for ingestion.
type Doc struct {
	Source string // file path, URL or corpus id
	Title  string
	Text   string
}

// Validate checks if the document has required fields
func (d *Doc) Validate() error {
	if strings.TrimSpace(d.Source) == "" {
		return errors.New("doc source is required")
	}

	if strings.TrimSpace(d.Text) == "" {
		return errors.New("doc text is required")
	}

	return nil
}
