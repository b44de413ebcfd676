package ingest

import (
	"strings"

	"github.com/cognicore/frtext/pkg/frtext/lemma"
	"github.com/cognicore/frtext/pkg/frtext/normalize"
	"github.com/cognicore/frtext/pkg/frtext/stoplist"
)

// Cleaner turns raw French text into a token sequence: lowercase, no
// accents, letters only, stopwords removed, lemmatized.
type Cleaner struct {
	stops      *stoplist.Manager
	lemmatizer lemma.Lemmatizer
	minLen     int
}

// NewCleaner creates a cleaner. A nil stoplist means no stopwords and a
// nil lemmatizer keeps words as they are.
func NewCleaner(stops *stoplist.Manager, lemmatizer lemma.Lemmatizer) *Cleaner {
	if stops == nil {
		stops = stoplist.NewManager(nil)
	}
	if lemmatizer == nil {
		lemmatizer = lemma.Identity
	}
	return &Cleaner{stops: stops, lemmatizer: lemmatizer, minLen: 2}
}

// Clean returns the cleaned token sequence of text.
func (c *Cleaner) Clean(text string) []string {
	var tokens []string
	for _, word := range strings.Fields(normalize.Clean(text)) {
		if tok := c.processToken(word); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// processToken applies length and stopword filtering, then lemmatization.
func (c *Cleaner) processToken(word string) string {
	if len(word) < c.minLen {
		return ""
	}
	if c.stops.IsStop(word) {
		return ""
	}
	return c.lemmatizer.Lemma(word)
}

// IsStop reports whether word is a stopword for this cleaner.
func (c *Cleaner) IsStop(word string) bool {
	return c.stops.IsStop(word)
}

// Lemma lemmatizes one folded word.
func (c *Cleaner) Lemma(word string) string {
	return c.lemmatizer.Lemma(word)
}

// AddStopword adds a word to the stopword list
func (c *Cleaner) AddStopword(word string) {
	c.stops.Add(word, stoplist.Reason{})
}

// RemoveStopword removes a word from the stopword list
func (c *Cleaner) RemoveStopword(word string) {
	c.stops.Remove(word)
}
