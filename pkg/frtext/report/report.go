// Package report builds the results printed by the CLI and kept in the
// store: a ULID-identified list of titled sections plus the structured
// result for JSON output.
package report

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Report kinds, one per command.
const (
	KindClean     = "clean"
	KindAnalyze   = "analyze"
	KindClassify  = "classify"
	KindDiscover  = "discover"
	KindSubject   = "subject"
	KindIngest    = "ingest"
	KindStopwords = "stopwords"
)

// Builder issues reports with monotonic ULIDs.
type Builder struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// New creates a new report builder
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Report is a rendered result.
type Report struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Sections  []Section `json:"sections"`
	Data      any       `json:"data,omitempty"`
}

// Section is a titled block of lines.
type Section struct {
	Title string   `json:"title"`
	Lines []string `json:"lines,omitempty"`
}

// Build starts a report. data is the structured result emitted with JSON
// output.
func (b *Builder) Build(kind, source string, data any) *Report {
	b.mu.Lock()
	id := ulid.MustNew(ulid.Now(), b.entropy)
	b.mu.Unlock()

	return &Report{
		ID:        id.String(),
		Kind:      kind,
		Source:    source,
		CreatedAt: ulid.Time(id.Time()),
		Sections:  []Section{},
		Data:      data,
	}
}

// Section appends a section.
func (r *Report) Section(title string, lines ...string) *Report {
	r.Sections = append(r.Sections, Section{Title: title, Lines: lines})
	return r
}

// Linef appends a formatted line to the last section, starting one with
// an empty title when there is none.
func (r *Report) Linef(format string, args ...any) *Report {
	if len(r.Sections) == 0 {
		r.Sections = append(r.Sections, Section{})
	}
	last := &r.Sections[len(r.Sections)-1]
	last.Lines = append(last.Lines, fmt.Sprintf(format, args...))
	return r
}

// WriteText renders the sections, separated by blank lines.
func (r *Report) WriteText(w io.Writer) error {
	var b strings.Builder
	for i, s := range r.Sections {
		if i > 0 {
			b.WriteByte('\n')
		}
		if s.Title != "" {
			b.WriteString(s.Title)
			b.WriteByte('\n')
		}
		for _, line := range s.Lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}

// Body returns the compact JSON form kept in the store.
func (r *Report) Body() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
