package ner

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cognicore/frtext/pkg/frtext/internalerr"
)

func testGazetteer() *Gazetteer {
	return FromMap(map[string]map[string][]string{
		"PER": {
			"Emmanuel Macron":   {"macron"},
			"François Hollande": {"hollande"},
		},
		"LOC": {
			"Amiens": {"amien"},
		},
		"ORG": {
			"Sciences Po": {"science po"},
		},
	})
}

func TestGazetteerExtract(t *testing.T) {
	g := testGazetteer()
	text := "emmanuel macron decembre amien science po hollande"

	got, err := g.Extract(text)
	if err != nil {
		t.Fatal(err)
	}
	want := []Entity{
		{Text: "Emmanuel Macron", Label: Person},
		{Text: "Amiens", Label: Location},
		{Text: "Sciences Po", Label: Organization},
		{Text: "François Hollande", Label: Person},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %+v, want %+v", got, want)
	}
}

func TestGazetteerWholeTokens(t *testing.T) {
	g := testGazetteer()
	got, _ := g.Extract("la macronie")
	if len(got) != 0 {
		t.Errorf("partial token should not match, got %+v", got)
	}
	got, _ = g.Extract("Le président Macron, à Amiens.")
	if len(got) != 2 {
		t.Errorf("accented, punctuated text should match, got %+v", got)
	}
}

type staticExtractor []Entity

func (s staticExtractor) Extract(string) ([]Entity, error) { return s, nil }

type failingExtractor struct{}

func (failingExtractor) Extract(string) ([]Entity, error) { return nil, errors.New("boom") }

func TestRecognizerMergesAndDedupes(t *testing.T) {
	r := NewRecognizer(
		staticExtractor{{Text: "Emmanuel Macron", Label: Person}},
		staticExtractor{{Text: "emmanuel macron", Label: Person}, {Text: "Paris", Label: Location}},
	)
	got, err := r.Recognize("texte")
	if err != nil {
		t.Fatal(err)
	}
	want := []Entity{
		{Text: "Emmanuel Macron", Label: Person},
		{Text: "Paris", Label: Location},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Recognize = %+v, want %+v", got, want)
	}
}

func TestRecognizerEmptyText(t *testing.T) {
	r := NewRecognizer(failingExtractor{})
	got, err := r.Recognize("   ")
	if err != nil || got != nil {
		t.Errorf("blank text should short-circuit, got %v %v", got, err)
	}
}

func TestRecognizerError(t *testing.T) {
	r := NewRecognizer(failingExtractor{})
	if _, err := r.Recognize("texte"); !errors.Is(err, internalerr.ErrModel) {
		t.Errorf("expected ErrModel, got %v", err)
	}
}

func TestGroup(t *testing.T) {
	s := Group([]Entity{
		{Text: "Emmanuel Macron", Label: Person},
		{Text: "Paris", Label: Location},
		{Text: "ENA", Label: Organization},
		{Text: "COVID", Label: Misc},
		{Text: "Brigitte Trogneux", Label: Person},
	})
	if !reflect.DeepEqual(s.Persons, []string{"Emmanuel Macron", "Brigitte Trogneux"}) {
		t.Errorf("Persons = %v", s.Persons)
	}
	if len(s.Locations) != 1 || len(s.Organizations) != 1 || len(s.Other) != 1 {
		t.Errorf("unexpected summary %+v", s)
	}

	empty := Group(nil)
	if empty.Persons == nil || empty.Locations == nil || empty.Organizations == nil {
		t.Error("empty summary should use empty slices")
	}
}

func TestMapLabel(t *testing.T) {
	cases := map[string]string{"PERSON": Person, "GPE": Location, "ORG": Organization, "DATE": Misc}
	for in, want := range cases {
		if got := mapLabel(in); got != want {
			t.Errorf("mapLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
