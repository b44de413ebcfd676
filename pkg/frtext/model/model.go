// Package model is the NLP model shared by the analyzers: sentence
// segmentation, part-of-speech tagging, lemmatization, stop-word flags
// and language detection behind one value.
//
// The default model is expensive to build (the tagger and the language
// detector load their weights), so Shared builds it once per process.
package model

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/cognicore/frtext/pkg/frtext/internalerr"
	"github.com/cognicore/frtext/pkg/frtext/lemma"
	"github.com/cognicore/frtext/pkg/frtext/normalize"
	"github.com/cognicore/frtext/pkg/frtext/stoplist"
)

// Coarse part-of-speech tags.
const (
	Noun       = "NOUN"
	ProperNoun = "PROPN"
	Verb       = "VERB"
	Other      = "X"
)

// Token is one tagged word of a sentence.
type Token struct {
	Text    string `json:"text"`
	Lemma   string `json:"lemma"`
	POS     string `json:"pos"`
	IsStop  bool   `json:"is_stop"`
	IsAlpha bool   `json:"is_alpha"`
}

// Sentence is a segmented sentence with its tokens.
type Sentence struct {
	Text   string  `json:"text"`
	Tokens []Token `json:"tokens"`
}

// Segmenter splits text into sentences.
type Segmenter interface {
	Segment(text string) []string
}

// TaggedWord is a tagger result: surface text and coarse tag.
type TaggedWord struct {
	Text string
	POS  string
}

// Tagger assigns coarse part-of-speech tags to the words of a sentence.
type Tagger interface {
	Tag(sentence string) ([]TaggedWord, error)
}

// LanguageDetector guesses the language of a text as an ISO 639-1 code.
type LanguageDetector interface {
	Detect(text string) (string, bool)
}

// Options configures New. Nil fields get the defaults.
type Options struct {
	Segmenter  Segmenter
	Tagger     Tagger
	Lemmatizer lemma.Lemmatizer
	Stoplist   *stoplist.Manager
	Detector   LanguageDetector
	Logger     *slog.Logger
}

// Model is safe for concurrent use once built.
type Model struct {
	segmenter  Segmenter
	tagger     Tagger
	lemmatizer lemma.Lemmatizer
	stops      *stoplist.Manager
	detector   LanguageDetector
	logger     *slog.Logger
}

// New builds a model from opts.
func New(opts Options) (*Model, error) {
	m := &Model{
		segmenter:  opts.Segmenter,
		tagger:     opts.Tagger,
		lemmatizer: opts.Lemmatizer,
		stops:      opts.Stoplist,
		detector:   opts.Detector,
		logger:     opts.Logger,
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.segmenter == nil {
		seg, err := NewPunktSegmenter()
		if err != nil {
			return nil, fmt.Errorf("%w: sentence segmenter: %v", internalerr.ErrModel, err)
		}
		m.segmenter = seg
	}
	if m.tagger == nil {
		m.tagger = ProseTagger{}
	}
	if m.lemmatizer == nil {
		lem, err := lemma.New(lemma.KindDictionary, lemma.DefaultDictionary())
		if err != nil {
			return nil, err
		}
		m.lemmatizer = lem
	}
	if m.stops == nil {
		m.stops = stoplist.NewFrench()
	}
	if m.detector == nil {
		m.detector = NewLinguaDetector()
	}
	return m, nil
}

var (
	sharedOnce  sync.Once
	sharedModel *Model
	sharedErr   error
)

// Shared returns the process-wide default model, building it on first use.
func Shared() (*Model, error) {
	sharedOnce.Do(func() {
		sharedModel, sharedErr = New(Options{})
	})
	return sharedModel, sharedErr
}

// Sentences segments, tags and lemmatizes text.
func (m *Model) Sentences(text string) ([]Sentence, error) {
	var out []Sentence
	for _, s := range m.segmenter.Segment(text) {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		words, err := m.tagger.Tag(s)
		if err != nil {
			return nil, fmt.Errorf("%w: tag sentence: %v", internalerr.ErrModel, err)
		}
		sent := Sentence{Text: s, Tokens: make([]Token, 0, len(words))}
		for _, w := range words {
			article, rest, ok := splitElision(w)
			if !ok {
				sent.Tokens = append(sent.Tokens, m.token(w))
				continue
			}
			art := m.token(article)
			art.IsStop = true
			sent.Tokens = append(sent.Tokens, art, m.token(rest))
		}
		out = append(out, sent)
	}
	m.logger.Debug("model analyzed text", "sentences", len(out))
	return out, nil
}

// Tokens returns the tokens of every sentence of text, in order.
func (m *Model) Tokens(text string) ([]Token, error) {
	sents, err := m.Sentences(text)
	if err != nil {
		return nil, err
	}
	var out []Token
	for _, s := range sents {
		out = append(out, s.Tokens...)
	}
	return out, nil
}

// Language returns the detected language code of text.
func (m *Model) Language(text string) (string, bool) {
	return m.detector.Detect(text)
}

// Lemmatizer returns the lemmatizer tokens are reduced with.
func (m *Model) Lemmatizer() lemma.Lemmatizer {
	return m.lemmatizer
}

// IsStop reports whether word is a stop-word for this model.
func (m *Model) IsStop(word string) bool {
	return m.stops.IsStop(word)
}

func (m *Model) token(w TaggedWord) Token {
	word := strings.TrimSpace(normalize.Clean(w.Text))
	tok := Token{Text: w.Text, POS: w.POS, Lemma: w.Text}
	if word == "" || strings.ContainsAny(word, " \t") {
		return tok
	}
	tok.IsAlpha = normalize.IsAlpha(word)
	tok.IsStop = m.stops.IsStop(word)
	tok.Lemma = m.lemmatizer.Lemma(word)
	return tok
}

// elisions are the French words that drop their vowel before another
// word: l'état, d'économie, qu'il, jusqu'au.
var elisions = map[string]bool{
	"l": true, "d": true, "j": true, "m": true, "n": true, "s": true,
	"t": true, "c": true, "qu": true, "jusqu": true, "lorsqu": true,
	"puisqu": true, "quoiqu": true,
}

// splitElision splits "l'économie" into the article "l'" and the word
// "économie", which keeps the tag of the whole.
func splitElision(w TaggedWord) (TaggedWord, TaggedWord, bool) {
	i := strings.IndexAny(w.Text, "'’")
	if i <= 0 {
		return TaggedWord{}, TaggedWord{}, false
	}
	_, size := utf8.DecodeRuneInString(w.Text[i:])
	head, tail := w.Text[:i], w.Text[i+size:]
	if tail == "" || !elisions[normalize.Fold(head)] {
		return TaggedWord{}, TaggedWord{}, false
	}
	return TaggedWord{Text: w.Text[:i+size], POS: Other}, TaggedWord{Text: tail, POS: w.POS}, true
}

// ContentLemmas returns the lemmas of alphabetic, non-stop tokens.
func ContentLemmas(tokens []Token) []string {
	var out []string
	for _, t := range tokens {
		if t.IsAlpha && !t.IsStop {
			out = append(out, t.Lemma)
		}
	}
	return out
}
