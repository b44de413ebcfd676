package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/frtext/pkg/frtext/internalerr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("embedded config invalid: %v", err)
	}
	if cfg.ClassifyThreshold != 1 || cfg.DiscoveryThreshold != 2 {
		t.Errorf("thresholds = %d/%d", cfg.ClassifyThreshold, cfg.DiscoveryThreshold)
	}
	if cfg.Clusters != 2 || cfg.Seed != 42 || cfg.TopTerms != 10 {
		t.Errorf("clustering defaults = %+v", cfg)
	}

	table := cfg.Table()
	names := table.Names()
	want := []string{"science", "politique", "sport", "économie", "technologie", "santé"}
	if len(names) != len(want) {
		t.Fatalf("themes = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("theme %d = %q, want %q", i, names[i], want[i])
		}
	}
	if !table.Contains("politique", "republique") {
		t.Error("accented keyword should be folded")
	}
}

func TestDefaultClassifiesSample(t *testing.T) {
	tokens := []string{"emmanuel", "macron", "ministre", "economie", "gouvernement", "president", "banque"}
	if got := Default().Table().Classify(tokens, 1); got != "politique" {
		t.Errorf("Classify = %q, want politique", got)
	}
}

func TestParseOverridesAndKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("clusters: 3\nseed: 7\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Clusters != 3 || cfg.Seed != 7 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.TopTerms != 10 || len(cfg.Themes) != 6 || len(cfg.Entities) == 0 {
		t.Error("defaults should survive a partial file")
	}
}

func TestParseReplacesThemes(t *testing.T) {
	cfg, err := Parse([]byte(`
themes:
  - name: cuisine
    keywords: [recette, chef]
entities:
  PER:
    Auguste Escoffier: [escoffier]
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if names := cfg.Table().Names(); len(names) != 1 || names[0] != "cuisine" {
		t.Errorf("themes = %v", names)
	}
	if len(cfg.Entities) != 1 {
		t.Errorf("entities = %v", cfg.Entities)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"zero clusters", "clusters: 0"},
		{"bad lemmatizer", "lemmatizer: spacy"},
		{"bad df", "stopword_df: 120"},
		{"empty theme table", "themes: []"},
		{"theme without keywords", "themes:\n  - name: vide\n"},
		{"duplicate theme", "themes:\n  - name: a\n    keywords: [x]\n  - name: a\n    keywords: [y]\n"},
		{"malformed", "clusters: [1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadThemes(t *testing.T) {
	path := writeFile(t, "themes.yaml", `themes:
  - name: sport
    keywords: [match]
`)
	tf, err := LoadThemes(path)
	if err != nil {
		t.Fatalf("LoadThemes: %v", err)
	}
	if len(tf.Themes) != 1 || tf.Themes[0].Name != "sport" {
		t.Errorf("themes = %+v", tf.Themes)
	}

	empty := writeFile(t, "empty.yaml", "themes: []\n")
	if _, err := LoadThemes(empty); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("empty theme file should be invalid, got %v", err)
	}
}

func TestLoadStoplist(t *testing.T) {
	path := writeFile(t, "stoplist.yaml", `terms:
  - aussi
  - macron
`)
	sl, err := LoadStoplist(path)
	if err != nil {
		t.Fatalf("Failed to load stoplist: %v", err)
	}
	if len(sl.Terms) != 2 {
		t.Errorf("Expected 2 terms, got %d", len(sl.Terms))
	}
}

func TestGazetteerFromConfig(t *testing.T) {
	ents, err := Default().Gazetteer().Extract("Nommé par François Hollande, Macron rejoint Rothschild")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"François Hollande", "Emmanuel Macron", "Rothschild & Cie"}
	if len(ents) != len(want) {
		t.Fatalf("entities = %+v", ents)
	}
	for i := range want {
		if ents[i].Text != want[i] {
			t.Errorf("entity %d = %q, want %q", i, ents[i].Text, want[i])
		}
	}
}
