package subject

import (
	"reflect"
	"testing"

	"github.com/cognicore/frtext/pkg/frtext/model"
	"github.com/cognicore/frtext/pkg/frtext/themes"
)

func tok(lemma, pos string) model.Token {
	return model.Token{Text: lemma, Lemma: lemma, POS: pos, IsAlpha: true}
}

func stop(word string) model.Token {
	return model.Token{Text: word, Lemma: word, POS: model.Other, IsStop: true, IsAlpha: true}
}

func sentence(text string, toks ...model.Token) model.Sentence {
	return model.Sentence{Text: text, Tokens: toks}
}

func TestKeySentenceHigherScoreWins(t *testing.T) {
	sents := []model.Sentence{
		sentence("Il pleut.", stop("il"), tok("pleuvoir", model.Verb)),
		sentence("Macron réforme, Macron gouverne.",
			tok("macron", model.ProperNoun), tok("reformer", model.Verb),
			tok("macron", model.ProperNoun), tok("gouverner", model.Verb)),
	}
	if got := KeySentence(sents); got != "Macron réforme, Macron gouverne." {
		t.Errorf("KeySentence = %q", got)
	}
}

func TestKeySentenceTieFirstSeen(t *testing.T) {
	sents := []model.Sentence{
		sentence("Premier mandat.", tok("mandat", model.Noun)),
		sentence("Second mandat.", tok("mandat", model.Noun)),
	}
	if got := KeySentence(sents); got != "Premier mandat." {
		t.Errorf("KeySentence = %q", got)
	}
}

func TestKeySentenceNoScore(t *testing.T) {
	sents := []model.Sentence{
		sentence("Et puis ?", stop("et"), stop("puis")),
	}
	if got := KeySentence(sents); got != "" {
		t.Errorf("KeySentence = %q, want empty", got)
	}
	if got := KeySentence(nil); got != "" {
		t.Errorf("KeySentence(nil) = %q", got)
	}
}

func TestImportanceIgnoresOtherPOS(t *testing.T) {
	counts := Importance([]model.Sentence{
		sentence("", tok("rapide", model.Other), tok("ascension", model.Noun), stop("etre")),
	})
	if !reflect.DeepEqual(counts, map[string]int{"ascension": 1}) {
		t.Errorf("Importance = %v", counts)
	}
}

func TestSummarizeDocumentOrder(t *testing.T) {
	sents := []model.Sentence{
		sentence("A", tok("cuisine", model.Noun)),
		sentence("B", tok("macron", model.ProperNoun), tok("reforme", model.Noun)),
		sentence("C", tok("macron", model.ProperNoun), tok("mandat", model.Noun)),
		sentence("D", tok("reforme", model.Noun), tok("mandat", model.Noun), tok("macron", model.ProperNoun)),
	}
	got := Summarize(sents, 2)
	if len(got) != 2 {
		t.Fatalf("Summarize = %v", got)
	}
	// the isolated sentence A never ranks
	for _, s := range got {
		if s == "A" {
			t.Errorf("unlinked sentence selected: %v", got)
		}
	}
	pos := map[string]int{"A": 0, "B": 1, "C": 2, "D": 3}
	if pos[got[0]] > pos[got[1]] {
		t.Errorf("summary not in document order: %v", got)
	}
}

func TestSummarizeWithoutLinks(t *testing.T) {
	sents := []model.Sentence{
		sentence("Un.", tok("alpha", model.Noun)),
		sentence("Deux.", tok("beta", model.Noun)),
	}
	if got := Summarize(sents, 1); !reflect.DeepEqual(got, []string{"Un."}) {
		t.Errorf("Summarize = %v", got)
	}
	if got := Summarize(sents, 0); got != nil {
		t.Errorf("n=0 should give nil, got %v", got)
	}
}

func TestCompare(t *testing.T) {
	table := themes.FromThemes([]themes.Theme{
		{Name: "politique", Keywords: []string{"gouvernement", "ministre"}},
		{Name: "economie", Keywords: []string{"banque", "finance"}},
	})

	c := Compare(table, "politique", []model.Token{stop("le"), tok("ministre", model.Noun)})
	if c.SubjectTheme != "politique" || !c.Consistent {
		t.Errorf("Compare = %+v", c)
	}

	c = Compare(table, "politique", []model.Token{tok("banque", model.Noun)})
	if c.SubjectTheme != "economie" || c.Consistent {
		t.Errorf("Compare = %+v", c)
	}

	c = Compare(table, "politique", nil)
	if c.SubjectTheme != themes.Unknown || c.Consistent {
		t.Errorf("Compare with no tokens = %+v", c)
	}
}
