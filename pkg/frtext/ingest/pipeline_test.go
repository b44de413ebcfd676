package ingest

import (
	"testing"

	"github.com/cognicore/frtext/pkg/frtext/ner"
	"github.com/cognicore/frtext/pkg/frtext/stoplist"
	"github.com/cognicore/frtext/pkg/frtext/themes"
)

func testTable() *themes.Table {
	return themes.FromThemes([]themes.Theme{
		{Name: "politique", Keywords: []string{"gouvernement", "président", "ministre"}},
		{Name: "sport", Keywords: []string{"match", "joueur"}},
	})
}

func TestPipelineProcess(t *testing.T) {
	gaz := ner.NewGazetteer()
	gaz.Add(ner.Person, "Manuel Valls", nil)

	p := NewPipeline(
		NewCleaner(stoplist.NewFrench(), nil),
		testTable(),
		1,
		ner.NewRecognizer(gaz),
	)

	doc, err := p.Process("Le ministre entre au gouvernement de Manuel Valls.")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if doc.Theme != "politique" {
		t.Errorf("Theme = %q, want politique", doc.Theme)
	}
	if doc.Scores.Count("politique") != 2 {
		t.Errorf("politique score = %d", doc.Scores.Count("politique"))
	}
	if len(doc.Entities) != 1 || doc.Entities[0].Text != "Manuel Valls" {
		t.Errorf("Entities = %+v", doc.Entities)
	}
}

func TestPipelineUnknownBelowThreshold(t *testing.T) {
	p := NewPipeline(NewCleaner(stoplist.NewFrench(), nil), testTable(), 2, nil)

	doc, err := p.Process("Un match nul.")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Theme != themes.Unknown {
		t.Errorf("single hit under threshold 2 should be Unknown, got %q", doc.Theme)
	}
	if doc.Entities != nil {
		t.Error("nil recognizer should produce no entities")
	}
}
