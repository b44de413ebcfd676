package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/frtext/internal/sample"
	"github.com/cognicore/frtext/pkg/frtext/internalerr"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp(&stdout, &stderr)
	err := app.Run(append([]string{"frtext"}, args...))
	return stdout.String(), err
}

func TestCleanFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texte.txt")
	if err := os.WriteFile(path, []byte("Le gouvernement vote la loi.\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := run(t, "--json", "clean", path)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}

	var got struct {
		Kind   string `json:"kind"`
		Source string `json:"source"`
		Data   struct {
			Tokens []string `json:"tokens"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if got.Kind != "clean" || got.Source != path {
		t.Fatalf("unexpected header: %+v", got)
	}
	if strings.Join(got.Data.Tokens, " ") == "" {
		t.Fatal("expected cleaned tokens")
	}
	for _, tok := range got.Data.Tokens {
		if tok == "le" || tok == "la" {
			t.Fatalf("stop-word %q left in %v", tok, got.Data.Tokens)
		}
	}
}

func TestCleanFallsBackToSample(t *testing.T) {
	out, err := run(t, "clean")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if !strings.Contains(out, "Liste finale des mots nettoyés") {
		t.Fatalf("missing token section:\n%s", out)
	}
	if !strings.Contains(out, sample.Tokens()[0]) {
		t.Fatalf("sample tokens not printed:\n%s", out)
	}
}

func TestCleanMissingFile(t *testing.T) {
	_, err := run(t, "clean", filepath.Join(t.TempDir(), "absent.txt"))
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "clean")
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestDiscoverCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.jsonl")
	lines := []string{
		`{"id":"a","tokens":["chat","chien","jardin"]}`,
		`{"id":"b","tokens":["chat","chien","maison"]}`,
		`not json`,
		`{"id":"c","tokens":["voiture","route","moteur"]}`,
		`{"id":"d","tokens":["voiture","route","pneu"]}`,
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := run(t, "discover", "--input", path)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if !strings.Contains(out, "4 texte(s) non classés détectés.") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if strings.Count(out, "Nouveau thème détecté") != 2 {
		t.Fatalf("expected two clusters:\n%s", out)
	}
}

func TestDiscoverSampleIsClassified(t *testing.T) {
	out, err := run(t, "discover")
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if !strings.Contains(out, "Aucun texte inconnu") {
		t.Fatalf("sample should be classified:\n%s", out)
	}
}

func TestStoreCommandsNeedDB(t *testing.T) {
	_, err := run(t, "stopwords")
	if !errors.Is(err, internalerr.ErrStoreUnavailable) {
		t.Fatalf("stopwords: expected ErrStoreUnavailable, got %v", err)
	}
	_, err = run(t, "discover", "--from-store")
	if !errors.Is(err, internalerr.ErrStoreUnavailable) {
		t.Fatalf("discover: expected ErrStoreUnavailable, got %v", err)
	}
	_, err = run(t, "ingest")
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Fatalf("ingest: expected ErrInvalidInput, got %v", err)
	}
}

func TestStopwordsEmptyStore(t *testing.T) {
	db := filepath.Join(t.TempDir(), "frtext.db")
	out, err := run(t, "--db", db, "stopwords")
	if err != nil {
		t.Fatalf("stopwords: %v", err)
	}
	if !strings.Contains(out, "Aucun mot vide") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
