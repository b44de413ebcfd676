package lemma

import (
	_ "embed"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/frtext/pkg/frtext/normalize"
)

//go:embed data/lemmas.yaml
var defaultLemmas []byte

// Dictionary maps inflected forms to lemmas.
//
// Expected YAML format:
//
//	lemmas:
//	  - lemma: etre
//	    forms: [est, sont, fut]
//
// Lemmas and forms are folded (lowercase, no accents) on load.
type Dictionary struct {
	// lemma -> forms (lemma first)
	forms map[string][]string
	// form -> lemma
	reverseIndex map[string]string
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		forms:        make(map[string][]string),
		reverseIndex: make(map[string]string),
	}
}

// DefaultDictionary returns the embedded dictionary of irregular forms.
func DefaultDictionary() *Dictionary {
	d, err := ParseYAML(defaultLemmas)
	if err != nil {
		// embedded data is validated by tests
		panic(err)
	}
	return d
}

// LoadFromYAML loads a dictionary from a YAML file.
func LoadFromYAML(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseYAML(data)
}

// ParseYAML parses dictionary YAML.
func ParseYAML(data []byte) (*Dictionary, error) {
	var config struct {
		Lemmas []struct {
			Lemma string   `yaml:"lemma"`
			Forms []string `yaml:"forms"`
		} `yaml:"lemmas"`
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	d := NewDictionary()
	for _, entry := range config.Lemmas {
		d.Add(entry.Lemma, entry.Forms)
	}
	return d, nil
}

// Add registers forms for lemma. If the lemma already exists its old
// forms are dropped first.
func (d *Dictionary) Add(lemma string, forms []string) {
	lemma = normalize.Fold(strings.TrimSpace(lemma))
	if lemma == "" {
		return
	}

	if old, exists := d.forms[lemma]; exists {
		for _, f := range old {
			delete(d.reverseIndex, f)
		}
	}

	normalized := []string{lemma}
	seen := map[string]bool{lemma: true}
	for _, f := range forms {
		f = normalize.Fold(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		normalized = append(normalized, f)
	}

	d.forms[lemma] = normalized
	for _, f := range normalized {
		d.reverseIndex[f] = lemma
	}
}

// Lemma implements Lemmatizer. Unknown words are returned unchanged.
func (d *Dictionary) Lemma(word string) string {
	if l, ok := d.reverseIndex[word]; ok {
		return l
	}
	return word
}

// Forms returns all forms of a lemma, lemma first.
func (d *Dictionary) Forms(lemma string) []string {
	forms := d.forms[normalize.Fold(lemma)]
	out := make([]string, len(forms))
	copy(out, forms)
	return out
}

// Lemmas returns all lemmas, sorted.
func (d *Dictionary) Lemmas() []string {
	out := make([]string, 0, len(d.forms))
	for l := range d.forms {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of lemmas.
func (d *Dictionary) Len() int {
	return len(d.forms)
}
