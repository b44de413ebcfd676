// Package frtext is the French text analytics engine: it ties the theme
// table, the cleaner, the NLP model, entity recognition and the store
// together behind one facade used by the CLI.
package frtext

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/cognicore/frtext/pkg/frtext/cluster"
	"github.com/cognicore/frtext/pkg/frtext/config"
	"github.com/cognicore/frtext/pkg/frtext/freq"
	"github.com/cognicore/frtext/pkg/frtext/ingest"
	"github.com/cognicore/frtext/pkg/frtext/internalerr"
	"github.com/cognicore/frtext/pkg/frtext/model"
	"github.com/cognicore/frtext/pkg/frtext/ner"
	"github.com/cognicore/frtext/pkg/frtext/report"
	"github.com/cognicore/frtext/pkg/frtext/stoplist"
	"github.com/cognicore/frtext/pkg/frtext/store"
	"github.com/cognicore/frtext/pkg/frtext/subject"
	"github.com/cognicore/frtext/pkg/frtext/tfidf"
	"github.com/cognicore/frtext/pkg/frtext/themes"
)

// Engine is the main analytics facade
type Engine struct {
	cfg        *config.Config
	comp       *config.Components
	table      *themes.Table
	recognizer *ner.Recognizer
	pipeline   *ingest.Pipeline
	store      store.Store
	reports    *report.Builder
	logger     *slog.Logger

	modelOnce sync.Once
	model     *model.Model
	modelErr  error
}

// Options configures an Engine
type Options struct {
	Components *config.Components // required
	Store      store.Store        // optional; needed by Ingest, DiscoverStored and SuggestStopwords
	Model      *model.Model       // optional; built from Components on first use
	Extractors []ner.Extractor    // optional; defaults to the gazetteer plus prose
	Logger     *slog.Logger
}

// New creates an Engine with the given dependencies
func New(opts Options) (*Engine, error) {
	if opts.Components == nil || opts.Components.Config == nil {
		return nil, fmt.Errorf("%w: engine needs loaded components", internalerr.ErrInvalidConfig)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	extractors := opts.Extractors
	if extractors == nil {
		extractors = []ner.Extractor{opts.Components.Gazetteer, ner.Prose{}}
	}
	recognizer := ner.NewRecognizer(extractors...)
	recognizer.SetLogger(logger)

	comp := opts.Components
	return &Engine{
		cfg:        comp.Config,
		comp:       comp,
		table:      comp.Table,
		recognizer: recognizer,
		pipeline:   ingest.NewPipeline(comp.Cleaner, comp.Table, comp.Config.ClassifyThreshold, recognizer),
		store:      opts.Store,
		reports:    report.New(),
		logger:     logger,
		model:      opts.Model,
	}, nil
}

// Close releases the store, if any
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// Config returns the active configuration.
func (e *Engine) Config() *config.Config { return e.cfg }

// Table returns the theme table.
func (e *Engine) Table() *themes.Table { return e.table }

// Model returns the NLP model, building it on first use.
func (e *Engine) Model() (*model.Model, error) {
	e.modelOnce.Do(func() {
		if e.model != nil {
			return
		}
		e.logger.Debug("building NLP model", "lemmatizer", e.cfg.Lemmatizer)
		e.model, e.modelErr = model.New(model.Options{
			Lemmatizer: e.comp.Lemmatizer,
			Stoplist:   e.comp.Stoplist,
			Logger:     e.logger,
		})
	})
	return e.model, e.modelErr
}

// Input is a text ready for analysis: its raw form, when known, and its
// cleaned tokens.
type Input struct {
	Source string   `json:"source"`
	Raw    string   `json:"-"`
	Tokens []string `json:"tokens"`
}

// Text returns the raw text, or the tokens joined by spaces.
func (in Input) Text() string {
	if strings.TrimSpace(in.Raw) != "" {
		return in.Raw
	}
	return strings.Join(in.Tokens, " ")
}

// Prepare cleans raw text into an Input.
func (e *Engine) Prepare(source, raw string) Input {
	return Input{Source: source, Raw: raw, Tokens: e.comp.Cleaner.Clean(raw)}
}

// FromTokens wraps an already-cleaned token list.
func FromTokens(source string, tokens []string) Input {
	return Input{Source: source, Tokens: tokens}
}

// Load reads and cleans a text file.
func (e *Engine) Load(path string) (Input, error) {
	raw, err := ingest.LoadFile(path)
	if err != nil {
		return Input{}, err
	}
	in := e.Prepare(path, raw)
	e.logger.Debug("loaded text", "path", path, "bytes", len(raw), "tokens", len(in.Tokens))
	return in, nil
}

// CleanResult is the output of Clean.
type CleanResult struct {
	Source  string   `json:"source"`
	Preview string   `json:"preview,omitempty"`
	Excerpt string   `json:"excerpt,omitempty"`
	Tokens  []string `json:"tokens"`
}

// Clean reports the first lines, an excerpt and the cleaned tokens.
func (e *Engine) Clean(in Input) CleanResult {
	return CleanResult{
		Source:  in.Source,
		Preview: ingest.Preview(in.Raw, 5),
		Excerpt: ingest.Excerpt(in.Raw, 300),
		Tokens:  in.Tokens,
	}
}

// AnalyzeResult is the output of Analyze.
type AnalyzeResult struct {
	TopWords []freq.Entry   `json:"top_words"`
	TFIDF    [][]tfidf.Term `json:"tfidf"`
	Entities []ner.Entity   `json:"entities"`
	Summary  ner.Summary    `json:"summary"`
	Sources  []string       `json:"sources"`
}

// Analyze computes word frequencies of main, TF-IDF over main followed by
// others, and the named entities of main.
func (e *Engine) Analyze(ctx context.Context, main Input, others ...Input) (AnalyzeResult, error) {
	topN := e.cfg.TopTerms
	res := AnalyzeResult{
		TopWords: freq.NewCounter(main.Tokens...).MostCommon(topN),
		Sources:  []string{main.Source},
	}

	docs := [][]string{main.Tokens}
	for _, o := range others {
		docs = append(docs, o.Tokens)
		res.Sources = append(res.Sources, o.Source)
	}
	m, err := tfidf.Fit(docs)
	if err != nil {
		return AnalyzeResult{}, err
	}
	for i := range docs {
		res.TFIDF = append(res.TFIDF, m.Top(i, topN))
	}

	if err := ctx.Err(); err != nil {
		return AnalyzeResult{}, err
	}
	ents, err := e.recognizer.Recognize(main.Text())
	if err != nil {
		return AnalyzeResult{}, err
	}
	res.Entities = ents
	res.Summary = ner.Group(ents)
	return res, nil
}

// ClassifyResult is the output of Classify.
type ClassifyResult struct {
	KeywordScores themes.Scores `json:"keyword_scores"`
	KeywordTheme  string        `json:"keyword_theme"`
	TopLemmas     []freq.Entry  `json:"top_lemmas"`
	ModelScores   themes.Scores `json:"model_scores"`
	ModelTheme    string        `json:"model_theme"`
}

// Classify scores the tokens against the theme table, then scores the
// model lemmas of the text against the lemmatized table.
func (e *Engine) Classify(ctx context.Context, in Input) (ClassifyResult, error) {
	threshold := e.cfg.ClassifyThreshold
	scores := e.table.Score(in.Tokens)
	res := ClassifyResult{
		KeywordScores: scores,
		KeywordTheme:  scores.Label(threshold),
	}

	m, err := e.Model()
	if err != nil {
		return ClassifyResult{}, err
	}
	toks, err := m.Tokens(in.Text())
	if err != nil {
		return ClassifyResult{}, err
	}
	lemmas := model.ContentLemmas(toks)
	res.TopLemmas = freq.NewCounter(lemmas...).MostCommon(e.cfg.TopTerms)
	res.ModelScores = e.lemmaTable(m).Score(lemmas)
	res.ModelTheme = res.ModelScores.Label(threshold)

	e.logger.Debug("classified", "source", in.Source, "keyword", res.KeywordTheme, "model", res.ModelTheme)
	return res, ctx.Err()
}

func (e *Engine) lemmaTable(m *model.Model) *themes.Table {
	return e.table.Map(m.Lemmatizer().Lemma)
}

// Discover clusters the inputs the theme table cannot classify.
func (e *Engine) Discover(ctx context.Context, ins []Input) (cluster.Result, error) {
	docs := make([][]string, len(ins))
	for i, in := range ins {
		docs[i] = in.Tokens
	}
	return e.discover(ctx, docs)
}

// DiscoverStored clusters the unclassified documents of the store.
func (e *Engine) DiscoverStored(ctx context.Context) (cluster.Result, error) {
	if e.store == nil {
		return cluster.Result{}, fmt.Errorf("%w: no store configured", internalerr.ErrStoreUnavailable)
	}
	stored, err := e.store.ListDocs(ctx, 0)
	if err != nil {
		return cluster.Result{}, fmt.Errorf("list docs: %w", err)
	}
	docs := make([][]string, len(stored))
	for i, d := range stored {
		docs[i] = d.Tokens
	}
	return e.discover(ctx, docs)
}

func (e *Engine) discover(ctx context.Context, docs [][]string) (cluster.Result, error) {
	if err := ctx.Err(); err != nil {
		return cluster.Result{}, err
	}
	opts := cluster.DefaultOptions()
	opts.Clusters = e.cfg.Clusters
	opts.Seed = e.cfg.Seed
	opts.Threshold = e.cfg.DiscoveryThreshold
	opts.Logger = e.logger
	return cluster.Discover(docs, e.table, opts)
}

// SubjectResult is the output of Subject.
type SubjectResult struct {
	KeySentence string             `json:"key_sentence"`
	Summary     []string           `json:"summary"`
	Language    string             `json:"language,omitempty"`
	Comparison  subject.Comparison `json:"comparison"`
}

// Subject finds the key sentence, a TextRank summary and checks the key
// sentence's theme against the keyword theme of the tokens.
func (e *Engine) Subject(ctx context.Context, in Input) (SubjectResult, error) {
	m, err := e.Model()
	if err != nil {
		return SubjectResult{}, err
	}
	text := in.Text()
	sents, err := m.Sentences(text)
	if err != nil {
		return SubjectResult{}, err
	}

	res := SubjectResult{
		KeySentence: subject.KeySentence(sents),
		Summary:     subject.Summarize(sents, e.cfg.SummarySentences),
	}
	res.Language, _ = m.Language(text)

	var keyTokens []model.Token
	if res.KeySentence != "" {
		keyTokens, err = m.Tokens(res.KeySentence)
		if err != nil {
			return SubjectResult{}, err
		}
	}
	keywordTheme := e.table.Classify(in.Tokens, e.cfg.ClassifyThreshold)
	res.Comparison = subject.Compare(e.lemmaTable(m), keywordTheme, keyTokens)
	return res, ctx.Err()
}

// IngestedDoc summarizes one stored document.
type IngestedDoc struct {
	ID       int64  `json:"id"`
	Source   string `json:"source"`
	Theme    string `json:"theme"`
	Language string `json:"language,omitempty"`
	Tokens   int    `json:"tokens"`
	Entities int    `json:"entities"`
}

// Ingest cleans, classifies and stores documents.
func (e *Engine) Ingest(ctx context.Context, docs []ingest.Doc) ([]IngestedDoc, error) {
	if e.store == nil {
		return nil, fmt.Errorf("%w: no store configured", internalerr.ErrStoreUnavailable)
	}
	m, err := e.Model()
	if err != nil {
		return nil, err
	}

	out := make([]IngestedDoc, 0, len(docs))
	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if err := d.Validate(); err != nil {
			return out, fmt.Errorf("%w: %s: %v", internalerr.ErrInvalidInput, d.Source, err)
		}

		processed, err := e.pipeline.Process(d.Text)
		if err != nil {
			return out, fmt.Errorf("process %s: %w", d.Source, err)
		}
		lang, _ := m.Language(d.Text)

		ents := make([]store.Entity, len(processed.Entities))
		for i, ent := range processed.Entities {
			ents[i] = store.Entity{Type: ent.Label, Value: ent.Text}
		}
		id, err := e.store.UpsertDoc(ctx, store.Doc{
			Source:   d.Source,
			Title:    d.Title,
			Language: lang,
			Theme:    processed.Theme,
			Tokens:   processed.Tokens,
			Ents:     ents,
		})
		if err != nil {
			return out, fmt.Errorf("store %s: %w", d.Source, err)
		}

		e.logger.Info("ingested", "source", d.Source, "theme", processed.Theme, "tokens", len(processed.Tokens))
		out = append(out, IngestedDoc{
			ID:       id,
			Source:   d.Source,
			Theme:    processed.Theme,
			Language: lang,
			Tokens:   len(processed.Tokens),
			Entities: len(ents),
		})
	}
	return out, nil
}

// SuggestStopwords proposes stop-words from the document frequencies of
// stored documents. minDF <= 0 uses the configured stopword_df.
func (e *Engine) SuggestStopwords(ctx context.Context, minDF float64) ([]stoplist.Candidate, error) {
	if e.store == nil {
		return nil, fmt.Errorf("%w: no store configured", internalerr.ErrStoreUnavailable)
	}
	stored, err := e.store.ListDocs(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list docs: %w", err)
	}

	df := freq.NewDocumentFrequency()
	for _, d := range stored {
		df.Process(d.Tokens)
	}

	thresholds := stoplist.DefaultThresholds()
	thresholds.DFPercent = e.cfg.StopwordDF
	if minDF > 0 {
		thresholds.DFPercent = minDF
	}
	return e.comp.Stoplist.SuggestCandidates(df.StopwordStats(), df.TotalDocs(), thresholds), nil
}

// SaveReport keeps r in the store. Without a store it does nothing.
func (e *Engine) SaveReport(ctx context.Context, r *report.Report) error {
	if e.store == nil {
		return nil
	}
	body, err := r.Body()
	if err != nil {
		return err
	}
	return e.store.SaveReport(ctx, store.Report{
		ID:        r.ID,
		Kind:      r.Kind,
		Source:    r.Source,
		Body:      body,
		CreatedAt: r.CreatedAt,
	})
}
