// Package ner finds named entities in French text by merging a
// statistical extractor with a configured gazetteer.
package ner

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/cognicore/frtext/pkg/frtext/internalerr"
	"github.com/cognicore/frtext/pkg/frtext/normalize"
)

// Entity labels.
const (
	Person       = "PER"
	Location     = "LOC"
	Organization = "ORG"
	Misc         = "MISC"
)

// Entity is a recognized entity.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Extractor finds entities in text.
type Extractor interface {
	Extract(text string) ([]Entity, error)
}

// Recognizer merges the output of several extractors. The first extractor
// to report an entity wins; later duplicates (same label, same folded text)
// are dropped.
type Recognizer struct {
	extractors []Extractor
	logger     *slog.Logger
}

// NewRecognizer creates a recognizer over extractors, in priority order.
func NewRecognizer(extractors ...Extractor) *Recognizer {
	return &Recognizer{extractors: extractors, logger: slog.Default()}
}

// SetLogger replaces the logger.
func (r *Recognizer) SetLogger(l *slog.Logger) {
	if l != nil {
		r.logger = l
	}
}

// Recognize runs every extractor and returns the merged entities.
func (r *Recognizer) Recognize(text string) ([]Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	seen := make(map[string]struct{})
	var out []Entity
	for _, ex := range r.extractors {
		ents, err := ex.Extract(text)
		if err != nil {
			return nil, fmt.Errorf("%w: entity extraction: %v", internalerr.ErrModel, err)
		}
		for _, e := range ents {
			key := e.Label + "|" + normalize.Fold(strings.TrimSpace(e.Text))
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, e)
		}
	}
	r.logger.Debug("entities recognized", "count", len(out))
	return out, nil
}

// Summary groups entity texts by label.
type Summary struct {
	Persons       []string `json:"persons"`
	Locations     []string `json:"locations"`
	Organizations []string `json:"organizations"`
	Other         []string `json:"other,omitempty"`
}

// Group sorts entities into a Summary, keeping their order.
func Group(ents []Entity) Summary {
	s := Summary{
		Persons:       []string{},
		Locations:     []string{},
		Organizations: []string{},
	}
	for _, e := range ents {
		switch e.Label {
		case Person:
			s.Persons = append(s.Persons, e.Text)
		case Location:
			s.Locations = append(s.Locations, e.Text)
		case Organization:
			s.Organizations = append(s.Organizations, e.Text)
		default:
			s.Other = append(s.Other, e.Text)
		}
	}
	return s
}
