package config

import (
	"fmt"

	"github.com/cognicore/frtext/pkg/frtext/ingest"
	"github.com/cognicore/frtext/pkg/frtext/lemma"
	"github.com/cognicore/frtext/pkg/frtext/ner"
	"github.com/cognicore/frtext/pkg/frtext/stoplist"
	"github.com/cognicore/frtext/pkg/frtext/themes"
)

// Loader loads all configuration files and constructs components.
// Every path is optional; empty paths fall back to the embedded data.
type Loader struct {
	ConfigPath   string
	ThemesPath   string
	StoplistPath string
	LemmasPath   string
}

// Components holds all loaded configuration components
type Components struct {
	Config     *Config
	Table      *themes.Table
	Stoplist   *stoplist.Manager
	Dictionary *lemma.Dictionary
	Lemmatizer lemma.Lemmatizer
	Gazetteer  *ner.Gazetteer
	Cleaner    *ingest.Cleaner
}

// Load reads all configuration files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	// Load main config
	if l.ConfigPath != "" {
		cfg, err := LoadConfig(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		comp.Config = cfg
	} else {
		comp.Config = Default()
	}

	// Load theme table
	if l.ThemesPath != "" {
		tf, err := LoadThemes(l.ThemesPath)
		if err != nil {
			return nil, fmt.Errorf("load themes: %w", err)
		}
		comp.Config.Themes = tf.Themes
		if err := comp.Config.Validate(); err != nil {
			return nil, fmt.Errorf("load themes: %w", err)
		}
	}
	comp.Table = comp.Config.Table()

	// Load stoplist: French defaults, config extras, then the file
	comp.Stoplist = stoplist.NewFrench()
	for _, w := range comp.Config.Stopwords {
		comp.Stoplist.Add(w, stoplist.Reason{Builtin: true})
	}
	if l.StoplistPath != "" {
		sl, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		for _, w := range sl.Terms {
			comp.Stoplist.Add(w, stoplist.Reason{Builtin: true})
		}
	}

	// Load lemma dictionary: file groups extend the embedded ones
	comp.Dictionary = lemma.DefaultDictionary()
	if l.LemmasPath != "" {
		extra, err := lemma.LoadFromYAML(l.LemmasPath)
		if err != nil {
			return nil, fmt.Errorf("load lemmas: %w", err)
		}
		for _, lem := range extra.Lemmas() {
			comp.Dictionary.Add(lem, extra.Forms(lem))
		}
	}

	lem, err := lemma.New(comp.Config.Lemmatizer, comp.Dictionary)
	if err != nil {
		return nil, err
	}
	comp.Lemmatizer = lem

	comp.Gazetteer = comp.Config.Gazetteer()
	comp.Cleaner = ingest.NewCleaner(comp.Stoplist, comp.Lemmatizer)

	return comp, nil
}
