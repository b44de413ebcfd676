package stoplist

import "testing"

func TestManagerBasics(t *testing.T) {
	m := NewManager([]string{"le", "Être"})

	if !m.IsStop("le") {
		t.Error("'le' should be a stopword")
	}
	if !m.IsStop("etre") || !m.IsStop("être") {
		t.Error("folded and accented forms should both match")
	}
	if m.IsStop("macron") {
		t.Error("'macron' should not be a stopword")
	}

	m.Remove("le")
	if m.IsStop("le") {
		t.Error("'le' should be removed")
	}

	m.Add("  ", Reason{})
	if m.Len() != 1 {
		t.Errorf("blank token should be ignored, got %d entries", m.Len())
	}
}

func TestNewFrenchIncludesDeterminers(t *testing.T) {
	m := NewFrench()
	for _, w := range []string{"leurs", "cette", "de", "qui", "avec"} {
		if !m.IsStop(w) {
			t.Errorf("%q should be a French stopword", w)
		}
	}
	for _, w := range []string{"gouvernement", "president", "qu"} {
		if m.IsStop(w) {
			t.Errorf("%q should not be a stopword", w)
		}
	}
}

func TestAllSorted(t *testing.T) {
	m := NewManager([]string{"zebre", "arbre", "maison"})
	all := m.All()
	if len(all) != 3 || all[0] != "arbre" || all[2] != "zebre" {
		t.Errorf("expected sorted list, got %v", all)
	}
}

func TestSuggestCandidates(t *testing.T) {
	m := NewManager([]string{"le"})
	stats := []Stats{
		{Token: "le", DF: 10, DFPercent: 100},
		{Token: "politique", DF: 8, DFPercent: 80},
		{Token: "annee", DF: 9, DFPercent: 90},
		{Token: "macron", DF: 2, DFPercent: 20},
	}

	cands := m.SuggestCandidates(stats, 10, DefaultThresholds())
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(cands), cands)
	}
	if cands[0].Token != "annee" || cands[1].Token != "politique" {
		t.Errorf("unexpected order: %+v", cands)
	}
	if !cands[0].Reason.HighDF {
		t.Error("candidate should be flagged HighDF")
	}
}

func TestSuggestCandidatesSmallCorpus(t *testing.T) {
	m := NewManager(nil)
	stats := []Stats{{Token: "mot", DF: 1, DFPercent: 100}}
	if cands := m.SuggestCandidates(stats, 1, DefaultThresholds()); len(cands) != 0 {
		t.Errorf("corpus below MinDocs should yield no candidates, got %v", cands)
	}
}
