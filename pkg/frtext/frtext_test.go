package frtext

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cognicore/frtext/pkg/frtext/config"
	"github.com/cognicore/frtext/pkg/frtext/ingest"
	"github.com/cognicore/frtext/pkg/frtext/internalerr"
	"github.com/cognicore/frtext/pkg/frtext/model"
	"github.com/cognicore/frtext/pkg/frtext/ner"
	"github.com/cognicore/frtext/pkg/frtext/store/memstore"
	"github.com/cognicore/frtext/pkg/frtext/themes"
)

// periodSegmenter splits on full stops.
type periodSegmenter struct{}

func (periodSegmenter) Segment(text string) []string {
	var out []string
	for _, s := range strings.Split(text, ".") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// nounTagger tags every word as a noun.
type nounTagger struct{}

func (nounTagger) Tag(sentence string) ([]model.TaggedWord, error) {
	var out []model.TaggedWord
	for _, w := range strings.Fields(sentence) {
		out = append(out, model.TaggedWord{Text: strings.Trim(w, ",;:!?"), POS: model.Noun})
	}
	return out, nil
}

type frDetector struct{}

func (frDetector) Detect(string) (string, bool) { return "fr", true }

func newTestEngine(t *testing.T, withStore bool) *Engine {
	t.Helper()
	loader := config.Loader{}
	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m, err := model.New(model.Options{
		Segmenter:  periodSegmenter{},
		Tagger:     nounTagger{},
		Lemmatizer: comp.Lemmatizer,
		Stoplist:   comp.Stoplist,
		Detector:   frDetector{},
	})
	if err != nil {
		t.Fatalf("model.New: %v", err)
	}

	opts := Options{
		Components: comp,
		Model:      m,
		Extractors: []ner.Extractor{comp.Gazetteer},
	}
	if withStore {
		opts.Store = memstore.New()
	}
	e, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e
}

func TestNewRequiresComponents(t *testing.T) {
	if _, err := New(Options{}); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestAnalyze(t *testing.T) {
	e := newTestEngine(t, false)
	ctx := context.Background()

	main := e.Prepare("main", "Emmanuel Macron, né à Amiens. Macron rejoint la banque Rothschild. Macron est élu.")
	other := FromTokens("other", []string{"banque", "finance", "banque"})

	res, err := e.Analyze(ctx, main, other)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(res.TopWords) == 0 || res.TopWords[0].Token != "macron" || res.TopWords[0].Count != 3 {
		t.Errorf("TopWords = %+v", res.TopWords)
	}
	if len(res.TFIDF) != 2 {
		t.Fatalf("TFIDF docs = %d", len(res.TFIDF))
	}
	if res.TFIDF[0][0].Token != "macron" {
		t.Errorf("top TF-IDF term of main = %+v", res.TFIDF[0])
	}

	sum := res.Summary
	if len(sum.Persons) != 1 || sum.Persons[0] != "Emmanuel Macron" {
		t.Errorf("Persons = %v", sum.Persons)
	}
	if len(sum.Locations) != 1 || sum.Locations[0] != "Amiens" {
		t.Errorf("Locations = %v", sum.Locations)
	}
	if len(sum.Organizations) != 1 || sum.Organizations[0] != "Rothschild & Cie" {
		t.Errorf("Organizations = %v", sum.Organizations)
	}

	var buf strings.Builder
	if err := e.AnalyzeReport(res).WriteText(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Emmanuel Macron → PER") {
		t.Errorf("report missing entity line:\n%s", buf.String())
	}
}

func TestClassify(t *testing.T) {
	e := newTestEngine(t, false)
	in := e.Prepare("t", "Le président nomme un ministre au gouvernement.")

	res, err := e.Classify(context.Background(), in)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if res.KeywordTheme != "politique" {
		t.Errorf("KeywordTheme = %q", res.KeywordTheme)
	}
	if res.ModelTheme != "politique" {
		t.Errorf("ModelTheme = %q (scores %+v)", res.ModelTheme, res.ModelScores)
	}
	if res.KeywordScores.Count("politique") != 3 {
		t.Errorf("politique hits = %d", res.KeywordScores.Count("politique"))
	}

	unknown, err := e.Classify(context.Background(), e.Prepare("u", "Une recette de cuisine."))
	if err != nil {
		t.Fatal(err)
	}
	if unknown.KeywordTheme != themes.Unknown || unknown.ModelTheme != themes.Unknown {
		t.Errorf("expected Unknown, got %+v", unknown)
	}
}

func TestClassifyReportOrder(t *testing.T) {
	e := newTestEngine(t, false)
	res, err := e.Classify(context.Background(), e.Prepare("t", "Le président nomme un ministre au gouvernement."))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	var buf strings.Builder
	if err := e.ClassifyReport("t", res).WriteText(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	keyword := strings.Index(out, "Classification par mots-clés")
	lemmas := strings.Index(out, "Mots dominants dans le texte")
	nlp := strings.Index(out, "Thème NLP")
	if keyword < 0 || lemmas < 0 || nlp < 0 {
		t.Fatalf("missing section:\n%s", out)
	}
	if !(keyword < lemmas && lemmas < nlp) {
		t.Errorf("sections out of order:\n%s", out)
	}
}

func TestSubject(t *testing.T) {
	e := newTestEngine(t, false)
	in := e.Prepare("t", "Le gouvernement de Macron. Il pleut.")

	res, err := e.Subject(context.Background(), in)
	if err != nil {
		t.Fatalf("Subject: %v", err)
	}
	if res.KeySentence != "Le gouvernement de Macron" {
		t.Errorf("KeySentence = %q", res.KeySentence)
	}
	if len(res.Summary) != 1 {
		t.Errorf("Summary = %v", res.Summary)
	}
	c := res.Comparison
	if c.KeywordTheme != "politique" || c.SubjectTheme != "politique" || !c.Consistent {
		t.Errorf("Comparison = %+v", c)
	}
	if res.Language != "fr" {
		t.Errorf("Language = %q", res.Language)
	}
}

func TestDiscoverEmpty(t *testing.T) {
	e := newTestEngine(t, false)
	if _, err := e.Discover(context.Background(), nil); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStoreOperationsNeedStore(t *testing.T) {
	e := newTestEngine(t, false)
	ctx := context.Background()
	if _, err := e.Ingest(ctx, []ingest.Doc{{Source: "a", Text: "b"}}); !errors.Is(err, internalerr.ErrStoreUnavailable) {
		t.Errorf("Ingest: %v", err)
	}
	if _, err := e.DiscoverStored(ctx); !errors.Is(err, internalerr.ErrStoreUnavailable) {
		t.Errorf("DiscoverStored: %v", err)
	}
	if _, err := e.SuggestStopwords(ctx, 0); !errors.Is(err, internalerr.ErrStoreUnavailable) {
		t.Errorf("SuggestStopwords: %v", err)
	}
}

func TestIngestDiscoverAndSuggest(t *testing.T) {
	e := newTestEngine(t, true)
	ctx := context.Background()

	docs := []ingest.Doc{
		{Source: "1", Text: "Le ministre du gouvernement parle au parlement. Commune."},
		{Source: "2", Text: "Une banque et un crédit. Commune."},
		{Source: "3", Text: "Une recette de cuisine du chef. Commune."},
		{Source: "4", Text: "Un jardin fleuri. Commune."},
	}
	ingested, err := e.Ingest(ctx, docs)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if len(ingested) != 4 || ingested[0].Theme != "politique" || ingested[0].Language != "fr" {
		t.Errorf("ingested = %+v", ingested)
	}
	// one keyword is enough to classify at ingestion time
	if ingested[1].Theme != "économie" {
		t.Errorf("bank text theme = %q", ingested[1].Theme)
	}
	if ingested[2].Theme != themes.Unknown {
		t.Errorf("cooking text should be Unknown, got %q", ingested[2].Theme)
	}

	cands, err := e.SuggestStopwords(ctx, 0)
	if err != nil {
		t.Fatalf("SuggestStopwords: %v", err)
	}
	if len(cands) == 0 || cands[0].Token != "commune" {
		t.Errorf("candidates = %+v", cands)
	}

	res, err := e.DiscoverStored(ctx)
	if err != nil {
		t.Fatalf("DiscoverStored: %v", err)
	}
	// discovery needs two keyword hits, so the bank text is unclassified too
	if res.Total != 4 || res.Unknown != 3 {
		t.Errorf("Total=%d Unknown=%d", res.Total, res.Unknown)
	}

	if _, err := e.Ingest(ctx, []ingest.Doc{{Source: "vide"}}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("empty doc should be rejected, got %v", err)
	}
}

func TestSaveReport(t *testing.T) {
	e := newTestEngine(t, true)
	ctx := context.Background()

	r := e.CleanReport(e.Clean(e.Prepare("mon_texte.txt", "Bonjour la France")))
	if err := e.SaveReport(ctx, r); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	got, err := e.store.GetReport(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if got.Kind != "clean" || !strings.Contains(got.Body, "bonjour") {
		t.Errorf("stored report = %+v", got)
	}
}
