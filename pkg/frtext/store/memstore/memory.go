package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cognicore/frtext/pkg/frtext/internalerr"
	"github.com/cognicore/frtext/pkg/frtext/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu          sync.RWMutex
	nextID      int64
	docs        map[int64]store.Doc
	sourceIndex map[string]int64
	reports     map[string]store.Report
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		nextID:      1,
		docs:        make(map[int64]store.Doc),
		sourceIndex: make(map[string]int64),
		reports:     make(map[string]store.Report),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertDoc inserts or updates a document, keyed by source.
func (s *Store) UpsertDoc(ctx context.Context, d store.Doc) (int64, error) {
	if d.Source == "" {
		return 0, fmt.Errorf("%w: document source is required", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.sourceIndex[d.Source]
	if !ok {
		id = s.nextID
		s.nextID++
		s.sourceIndex[d.Source] = id
	}
	if d.IngestedAt.IsZero() {
		d.IngestedAt = time.Now()
	}

	d.ID = id
	s.docs[id] = copyDoc(d)
	return id, nil
}

// GetDoc returns a document by ID.
func (s *Store) GetDoc(ctx context.Context, id int64) (store.Doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if doc, ok := s.docs[id]; ok {
		return copyDoc(doc), nil
	}
	return store.Doc{}, fmt.Errorf("%w: document %d", internalerr.ErrNotFound, id)
}

// GetDocBySource returns a document by source.
func (s *Store) GetDocBySource(ctx context.Context, source string) (store.Doc, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id, ok := s.sourceIndex[source]; ok {
		if doc, exists := s.docs[id]; exists {
			return copyDoc(doc), true, nil
		}
	}
	return store.Doc{}, false, nil
}

// ListDocs returns documents in ingestion order.
func (s *Store) ListDocs(ctx context.Context, limit int) ([]store.Doc, error) {
	docs := s.sorted(func(store.Doc) bool { return true })
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// DocsByTheme returns documents classified under theme.
func (s *Store) DocsByTheme(ctx context.Context, theme string) ([]store.Doc, error) {
	return s.sorted(func(d store.Doc) bool { return d.Theme == theme }), nil
}

// CountDocs returns the number of documents.
func (s *Store) CountDocs(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.docs)), nil
}

// SaveReport stores a report.
func (s *Store) SaveReport(ctx context.Context, r store.Report) error {
	if r.ID == "" {
		return fmt.Errorf("%w: report id is required", internalerr.ErrInvalidInput)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.ID] = r
	return nil
}

// GetReport returns a report by ID.
func (s *Store) GetReport(ctx context.Context, id string) (store.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.reports[id]; ok {
		return r, nil
	}
	return store.Report{}, fmt.Errorf("%w: report %s", internalerr.ErrNotFound, id)
}

// ListReports returns the newest reports first.
func (s *Store) ListReports(ctx context.Context, kind string, limit int) ([]store.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Report
	for _, r := range s.reports {
		if kind == "" || r.Kind == kind {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) sorted(keep func(store.Doc) bool) []store.Doc {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Doc
	for _, d := range s.docs {
		if keep(d) {
			out = append(out, copyDoc(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func copyDoc(doc store.Doc) store.Doc {
	cp := doc
	if len(doc.Tokens) > 0 {
		cp.Tokens = append([]string(nil), doc.Tokens...)
	}
	if len(doc.Ents) > 0 {
		cp.Ents = append([]store.Entity(nil), doc.Ents...)
	}
	return cp
}
