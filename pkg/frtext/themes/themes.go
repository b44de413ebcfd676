// Package themes scores token sequences against keyword tables and picks
// the dominant theme.
package themes

import (
	"strings"

	"github.com/cognicore/frtext/pkg/frtext/normalize"
)

// Unknown is returned when no theme reaches the threshold.
const Unknown = "Unknown"

// Theme is a named keyword set.
type Theme struct {
	Name     string
	Keywords []string
}

// Table maps theme names to keyword sets. Iteration follows insertion
// order, which is also the tie-break order for Classify.
type Table struct {
	order    []string
	keywords map[string][]string            // folded, deduplicated, in config order
	sets     map[string]map[string]struct{} // for lookups
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		keywords: make(map[string][]string),
		sets:     make(map[string]map[string]struct{}),
	}
}

// FromThemes builds a table from an ordered theme list.
func FromThemes(list []Theme) *Table {
	t := NewTable()
	for _, th := range list {
		t.Add(th.Name, th.Keywords)
	}
	return t
}

// Add adds a theme with its keywords. Keywords are folded the way tokens
// are. Re-adding a theme replaces its keywords and keeps its position.
func (t *Table) Add(name string, keywords []string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if _, exists := t.sets[name]; !exists {
		t.order = append(t.order, name)
	}

	set := make(map[string]struct{}, len(keywords))
	list := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = normalize.Fold(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, dup := set[kw]; dup {
			continue
		}
		set[kw] = struct{}{}
		list = append(list, kw)
	}
	t.sets[name] = set
	t.keywords[name] = list
}

// Names returns theme names in table order.
func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of themes.
func (t *Table) Len() int {
	return len(t.order)
}

// Keywords returns the folded keywords of a theme.
func (t *Table) Keywords(name string) []string {
	kws := t.keywords[name]
	out := make([]string, len(kws))
	copy(out, kws)
	return out
}

// Themes returns the table as an ordered theme list.
func (t *Table) Themes() []Theme {
	out := make([]Theme, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, Theme{Name: name, Keywords: t.Keywords(name)})
	}
	return out
}

// Contains reports whether token is a keyword of theme.
func (t *Table) Contains(theme, token string) bool {
	_, ok := t.sets[theme][normalize.Fold(token)]
	return ok
}

// ThemesFor returns every theme listing token, in table order.
func (t *Table) ThemesFor(token string) []string {
	token = normalize.Fold(token)
	var out []string
	for _, name := range t.order {
		if _, ok := t.sets[name][token]; ok {
			out = append(out, name)
		}
	}
	return out
}

// Map returns a copy of the table with every keyword passed through fn.
// Used to compare lemmas with lemmatized keywords.
func (t *Table) Map(fn func(string) string) *Table {
	out := NewTable()
	for _, name := range t.order {
		kws := t.keywords[name]
		mapped := make([]string, len(kws))
		for i, kw := range kws {
			mapped[i] = fn(kw)
		}
		out.Add(name, mapped)
	}
	return out
}
