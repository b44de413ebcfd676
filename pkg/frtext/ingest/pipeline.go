package ingest

import (
	"github.com/cognicore/frtext/pkg/frtext/ner"
	"github.com/cognicore/frtext/pkg/frtext/themes"
)

// Pipeline orchestrates the ingestion flow:
// text → cleaning → theme scoring → entity recognition
type Pipeline struct {
	cleaner    *Cleaner
	table      *themes.Table
	threshold  int
	recognizer *ner.Recognizer
}

// NewPipeline creates an ingestion pipeline. recognizer may be nil.
func NewPipeline(cleaner *Cleaner, table *themes.Table, threshold int, recognizer *ner.Recognizer) *Pipeline {
	return &Pipeline{
		cleaner:    cleaner,
		table:      table,
		threshold:  threshold,
		recognizer: recognizer,
	}
}

// ProcessedDoc represents a text after ingestion processing
type ProcessedDoc struct {
	Tokens   []string
	Scores   themes.Scores
	Theme    string
	Entities []ner.Entity
}

// Process runs text through the pipeline.
func (p *Pipeline) Process(text string) (ProcessedDoc, error) {
	tokens := p.cleaner.Clean(text)
	return p.ProcessTokens(text, tokens)
}

// ProcessTokens scores already-cleaned tokens; text feeds entity
// recognition and may be the joined tokens.
func (p *Pipeline) ProcessTokens(text string, tokens []string) (ProcessedDoc, error) {
	scores := p.table.Score(tokens)
	doc := ProcessedDoc{
		Tokens: tokens,
		Scores: scores,
		Theme:  scores.Label(p.threshold),
	}

	if p.recognizer != nil {
		ents, err := p.recognizer.Recognize(text)
		if err != nil {
			return ProcessedDoc{}, err
		}
		doc.Entities = ents
	}
	return doc, nil
}
