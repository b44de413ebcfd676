package ner

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

// Prose extracts entities with the prose statistical model. The model is
// trained on English news, so it mostly catches capitalized person and
// place names; the gazetteer covers the rest.
type Prose struct{}

// Extract implements Extractor.
func (Prose) Extract(text string) ([]Entity, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, err
	}
	var out []Entity
	for _, ent := range doc.Entities() {
		name := strings.TrimSpace(ent.Text)
		if name == "" {
			continue
		}
		out = append(out, Entity{Text: name, Label: mapLabel(ent.Label)})
	}
	return out, nil
}

func mapLabel(label string) string {
	switch label {
	case "PERSON":
		return Person
	case "GPE", "LOC", "LOCATION":
		return Location
	case "ORG", "ORGANIZATION":
		return Organization
	default:
		return Misc
	}
}
