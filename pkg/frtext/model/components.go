package model

import (
	_ "embed"
	"strings"

	"github.com/jdkato/prose/v2"
	"github.com/neurosnap/sentences"
	"github.com/pemistahl/lingua-go"
)

// French punkt training data from github.com/neurosnap/sentences (data/french.json).
//
//go:embed data/punkt_french.json
var punktFrench []byte

// PunktSegmenter splits sentences with the punkt tokenizer trained on
// French.
type PunktSegmenter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunktSegmenter loads the embedded French punkt parameters.
func NewPunktSegmenter() (*PunktSegmenter, error) {
	training, err := sentences.LoadTraining(punktFrench)
	if err != nil {
		return nil, err
	}
	return &PunktSegmenter{tokenizer: sentences.NewSentenceTokenizer(training)}, nil
}

// Segment implements Segmenter.
func (p *PunktSegmenter) Segment(text string) []string {
	var out []string
	for _, s := range p.tokenizer.Tokenize(text) {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ProseTagger tags with the prose averaged perceptron and maps Penn
// Treebank tags onto the coarse tag set.
type ProseTagger struct{}

// Tag implements Tagger.
func (ProseTagger) Tag(sentence string) ([]TaggedWord, error) {
	doc, err := prose.NewDocument(sentence,
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, err
	}
	toks := doc.Tokens()
	out := make([]TaggedWord, len(toks))
	for i, t := range toks {
		out[i] = TaggedWord{Text: t.Text, POS: coarseTag(t.Tag)}
	}
	return out, nil
}

func coarseTag(penn string) string {
	switch {
	case penn == "NNP" || penn == "NNPS":
		return ProperNoun
	case strings.HasPrefix(penn, "NN"):
		return Noun
	case strings.HasPrefix(penn, "VB"):
		return Verb
	default:
		return Other
	}
}

// LinguaDetector detects languages with lingua among the languages
// likely to show up in a French corpus.
type LinguaDetector struct {
	detector lingua.LanguageDetector
}

// NewLinguaDetector builds the detector.
func NewLinguaDetector() *LinguaDetector {
	d := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.French, lingua.English, lingua.German, lingua.Spanish, lingua.Italian).
		Build()
	return &LinguaDetector{detector: d}
}

// Detect implements LanguageDetector.
func (l *LinguaDetector) Detect(text string) (string, bool) {
	lang, ok := l.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
