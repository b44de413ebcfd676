// Package config loads the frtext YAML configuration: thresholds,
// clustering parameters, the theme table, the entity gazetteer and
// extra stop-words.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/frtext/pkg/frtext/internalerr"
	"github.com/cognicore/frtext/pkg/frtext/lemma"
	"github.com/cognicore/frtext/pkg/frtext/ner"
	"github.com/cognicore/frtext/pkg/frtext/themes"
)

//go:embed data/default.yaml
var defaultConfig []byte

// Config is the top-level configuration file.
type Config struct {
	ClassifyThreshold  int                            `yaml:"classify_threshold"`
	DiscoveryThreshold int                            `yaml:"discovery_threshold"`
	Clusters           int                            `yaml:"clusters"`
	Seed               int64                          `yaml:"seed"`
	TopTerms           int                            `yaml:"top_terms"`
	SummarySentences   int                            `yaml:"summary_sentences"`
	Lemmatizer         string                         `yaml:"lemmatizer"`
	StopwordDF         float64                        `yaml:"stopword_df"`
	Themes             []ThemeConfig                  `yaml:"themes"`
	Entities           map[string]map[string][]string `yaml:"entities"`
	Stopwords          []string                       `yaml:"stopwords"`
}

// ThemeConfig is one entry of the theme table.
type ThemeConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Default returns the embedded configuration.
func Default() *Config {
	cfg := &Config{
		ClassifyThreshold:  1,
		DiscoveryThreshold: 2,
		Clusters:           2,
		Seed:               42,
		TopTerms:           10,
		SummarySentences:   1,
		Lemmatizer:         lemma.KindDictionary,
		StopwordDF:         60,
	}
	if err := yaml.Unmarshal(defaultConfig, cfg); err != nil {
		panic(fmt.Sprintf("embedded config: %v", err))
	}
	return cfg
}

// LoadConfig reads a configuration file. Fields missing from the file
// keep their defaults; themes and entities, when present, replace the
// default table and gazetteer as a whole.
func LoadConfig(path string) (*Config, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	defThemes, defEntities := cfg.Themes, cfg.Entities
	cfg.Themes, cfg.Entities = nil, nil

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	if cfg.Themes == nil {
		cfg.Themes = defThemes
	}
	if cfg.Entities == nil {
		cfg.Entities = defEntities
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and the theme table.
func (c *Config) Validate() error {
	var problems []string
	if c.Clusters < 1 {
		problems = append(problems, fmt.Sprintf("clusters must be >= 1, got %d", c.Clusters))
	}
	if c.TopTerms < 1 {
		problems = append(problems, fmt.Sprintf("top_terms must be >= 1, got %d", c.TopTerms))
	}
	if c.SummarySentences < 1 {
		problems = append(problems, fmt.Sprintf("summary_sentences must be >= 1, got %d", c.SummarySentences))
	}
	if c.StopwordDF <= 0 || c.StopwordDF > 100 {
		problems = append(problems, fmt.Sprintf("stopword_df must be in (0, 100], got %g", c.StopwordDF))
	}
	switch strings.ToLower(c.Lemmatizer) {
	case "", lemma.KindDictionary, lemma.KindSnowball, lemma.KindNone:
	default:
		problems = append(problems, fmt.Sprintf("unknown lemmatizer %q", c.Lemmatizer))
	}
	if len(c.Themes) == 0 {
		problems = append(problems, "theme table is empty")
	}
	seen := make(map[string]bool)
	for i, th := range c.Themes {
		name := strings.TrimSpace(th.Name)
		switch {
		case name == "":
			problems = append(problems, fmt.Sprintf("theme %d has no name", i))
		case seen[name]:
			problems = append(problems, fmt.Sprintf("duplicate theme %q", name))
		case len(th.Keywords) == 0:
			problems = append(problems, fmt.Sprintf("theme %q has no keywords", name))
		}
		seen[name] = true
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", internalerr.ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Table builds the theme table in file order.
func (c *Config) Table() *themes.Table {
	return tableFrom(c.Themes)
}

// Gazetteer builds the entity gazetteer.
func (c *Config) Gazetteer() *ner.Gazetteer {
	return ner.FromMap(c.Entities)
}

func tableFrom(list []ThemeConfig) *themes.Table {
	t := themes.NewTable()
	for _, th := range list {
		t.Add(strings.TrimSpace(th.Name), th.Keywords)
	}
	return t
}

// ThemeFile is a standalone theme table file.
type ThemeFile struct {
	Themes []ThemeConfig `yaml:"themes"`
}

// LoadThemes loads a theme table file.
func LoadThemes(path string) (*ThemeFile, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var tf ThemeFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	if len(tf.Themes) == 0 {
		return nil, fmt.Errorf("%w: %s has no themes", internalerr.ErrInvalidConfig, path)
	}
	return &tf, nil
}

// Stoplist represents an extra stop-word file
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}

	return &sl, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", internalerr.ErrNotFound, path)
	}
	return data, err
}
