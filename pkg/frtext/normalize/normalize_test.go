package normalize

import (
	"strings"
	"testing"
)

func TestStripAccents(t *testing.T) {
	cases := map[string]string{
		"république":  "republique",
		"Économie":    "Economie",
		"accroître":   "accroitre",
		"français":    "francais",
		"œuvre":       "oeuvre",
		"déjà-vu":     "deja-vu",
		"plain ascii": "plain ascii",
	}
	for in, want := range cases {
		if got := StripAccents(in); got != want {
			t.Errorf("StripAccents(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFold(t *testing.T) {
	if got := Fold("Élection PRÉSIDENTIELLE"); got != "election presidentielle" {
		t.Errorf("Fold = %q", got)
	}
}

func TestASCIILetters(t *testing.T) {
	in := "l'etat, en 2017 !"
	got := ASCIILetters(in)
	if len(got) != len(in) {
		t.Errorf("ASCIILetters changed length: %q", got)
	}
	fields := strings.Fields(got)
	if strings.Join(fields, "|") != "l|etat|en" {
		t.Errorf("ASCIILetters = %q", got)
	}
}

func TestClean(t *testing.T) {
	got := Clean("L'État.")
	if got != "l etat " {
		t.Errorf("Clean = %q", got)
	}
}

func TestIsAlpha(t *testing.T) {
	if !IsAlpha("macron") {
		t.Error("macron should be alphabetic")
	}
	if IsAlpha("gpt-4") {
		t.Error("gpt-4 should not be alphabetic")
	}
	if IsAlpha("") {
		t.Error("empty string is not alphabetic")
	}
}
