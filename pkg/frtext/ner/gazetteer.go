package ner

import (
	"sort"
	"strings"

	"github.com/cognicore/frtext/pkg/frtext/normalize"
)

type gazEntry struct {
	label string
	name  string
	forms [][]string // token sequences
}

// Gazetteer recognizes configured entities by their surface forms. Forms
// are matched on whole tokens after folding, so "macron" matches
// "Macron," but not "macronie".
type Gazetteer struct {
	entries []gazEntry
}

// NewGazetteer creates an empty gazetteer.
func NewGazetteer() *Gazetteer {
	return &Gazetteer{}
}

// FromMap builds a gazetteer from label → name → forms. Names are added
// in sorted order per label so results are deterministic.
func FromMap(m map[string]map[string][]string) *Gazetteer {
	g := NewGazetteer()
	labels := make([]string, 0, len(m))
	for l := range m {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	for _, label := range labels {
		names := make([]string, 0, len(m[label]))
		for n := range m[label] {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, name := range names {
			g.Add(label, name, m[label][name])
		}
	}
	return g
}

// Add registers an entity. The name itself is always a form.
func (g *Gazetteer) Add(label, name string, forms []string) {
	label = strings.ToUpper(strings.TrimSpace(label))
	name = strings.TrimSpace(name)
	if label == "" || name == "" {
		return
	}
	e := gazEntry{label: label, name: name}
	for _, f := range append([]string{name}, forms...) {
		toks := strings.Fields(normalize.Clean(f))
		if len(toks) > 0 {
			e.forms = append(e.forms, toks)
		}
	}
	g.entries = append(g.entries, e)
}

// Len returns the number of entries.
func (g *Gazetteer) Len() int {
	return len(g.entries)
}

// Extract implements Extractor. Entities are returned in order of first
// occurrence in text.
func (g *Gazetteer) Extract(text string) ([]Entity, error) {
	tokens := strings.Fields(normalize.Clean(text))
	if len(tokens) == 0 {
		return nil, nil
	}

	type hit struct {
		pos int
		ent Entity
	}
	var hits []hit
	for _, e := range g.entries {
		pos := -1
		for _, form := range e.forms {
			if p := indexSeq(tokens, form); p >= 0 && (pos < 0 || p < pos) {
				pos = p
			}
		}
		if pos >= 0 {
			hits = append(hits, hit{pos: pos, ent: Entity{Text: e.name, Label: e.label}})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	out := make([]Entity, len(hits))
	for i, h := range hits {
		out[i] = h.ent
	}
	return out, nil
}

func indexSeq(tokens, seq []string) int {
	for i := 0; i+len(seq) <= len(tokens); i++ {
		match := true
		for j, s := range seq {
			if tokens[i+j] != s {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
