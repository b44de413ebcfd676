// Package lemma maps inflected French words to a base form.
package lemma

import (
	"fmt"
	"strings"

	"github.com/kljensen/snowball/french"

	"github.com/cognicore/frtext/pkg/frtext/internalerr"
)

// Lemmatizer reduces a folded, lowercase word to its base form.
type Lemmatizer interface {
	Lemma(word string) string
}

// Func adapts a plain function to Lemmatizer.
type Func func(string) string

// Lemma implements Lemmatizer.
func (f Func) Lemma(word string) string { return f(word) }

// Identity returns words unchanged.
var Identity = Func(func(w string) string { return w })

// Kinds accepted by New.
const (
	KindDictionary = "dictionary"
	KindSnowball   = "snowball"
	KindNone       = "none"
)

// New builds the lemmatizer for kind. The dictionary, when non-nil, is
// consulted before the fallback of every kind except "none".
func New(kind string, dict *Dictionary) (Lemmatizer, error) {
	switch strings.ToLower(kind) {
	case "", KindDictionary:
		return chainWith(dict, Rules{}), nil
	case KindSnowball:
		return chainWith(dict, Snowball{}), nil
	case KindNone:
		return Identity, nil
	default:
		return nil, fmt.Errorf("%w: unknown lemmatizer %q", internalerr.ErrInvalidConfig, kind)
	}
}

func chainWith(dict *Dictionary, fallback Lemmatizer) Lemmatizer {
	if dict == nil || dict.Len() == 0 {
		return fallback
	}
	return Chain{dict, fallback}
}

// Chain tries each lemmatizer in turn and returns the first result that
// differs from the input.
type Chain []Lemmatizer

// Lemma implements Lemmatizer.
func (c Chain) Lemma(word string) string {
	for _, l := range c {
		if out := l.Lemma(word); out != word && out != "" {
			return out
		}
	}
	return word
}

// Snowball stems with the Snowball French algorithm. Stems are not
// dictionary words ("gouvernement" → "gouvern") so callers compare stems
// with stems.
type Snowball struct{}

// Lemma implements Lemmatizer.
func (Snowball) Lemma(word string) string {
	if word == "" {
		return word
	}
	return french.Stem(word, false)
}

// invariable words that end in s/x but are not plurals
var invariable = map[string]struct{}{
	"pays": {}, "fois": {}, "temps": {}, "corps": {}, "prix": {}, "bras": {},
	"cas": {}, "dos": {}, "mois": {}, "paris": {}, "francais": {}, "anglais": {},
	"avis": {}, "choix": {}, "travaux": {}, "voix": {}, "paix": {}, "croix": {},
	"discours": {}, "concours": {}, "cours": {}, "parcours": {}, "secours": {},
	"succes": {}, "proces": {}, "acces": {}, "progres": {}, "exces": {},
	"jus": {}, "virus": {}, "campus": {}, "bus": {}, "plus": {}, "sous": {},
	"gaz": {}, "nez": {}, "assez": {}, "chez": {}, "alors": {}, "apres": {},
	"depuis": {}, "toujours": {}, "jamais": {}, "puis": {}, "vers": {},
}

// Rules is a light French lemmatizer: it undoes regular plurals
// ("reformes" → "reforme", "journaux" → "journal").
type Rules struct{}

// Lemma implements Lemmatizer.
func (Rules) Lemma(word string) string {
	if len(word) <= 3 {
		return word
	}
	if _, ok := invariable[word]; ok {
		return word
	}
	switch {
	case strings.HasSuffix(word, "eaux"):
		return strings.TrimSuffix(word, "x")
	case strings.HasSuffix(word, "aux") && len(word) > 4:
		return strings.TrimSuffix(word, "aux") + "al"
	case strings.HasSuffix(word, "ss"):
		return word
	case strings.HasSuffix(word, "s"):
		return strings.TrimSuffix(word, "s")
	}
	return word
}
