package store

import (
	"context"
	"time"
)

// Store persists ingested documents and rendered reports.
type Store interface {
	Close() error

	// Docs
	UpsertDoc(ctx context.Context, d Doc) (int64, error)
	GetDoc(ctx context.Context, id int64) (Doc, error)
	GetDocBySource(ctx context.Context, source string) (Doc, bool, error)
	ListDocs(ctx context.Context, limit int) ([]Doc, error)
	DocsByTheme(ctx context.Context, theme string) ([]Doc, error)
	CountDocs(ctx context.Context) (int64, error)

	// Reports
	SaveReport(ctx context.Context, r Report) error
	GetReport(ctx context.Context, id string) (Report, error)
	ListReports(ctx context.Context, kind string, limit int) ([]Report, error)
}

// Doc represents a stored document
type Doc struct {
	ID         int64
	Source     string // unique key: file path or corpus id
	Title      string
	Language   string
	IngestedAt time.Time
	Theme      string
	Tokens     []string // cleaned tokens, order and duplicates kept
	Ents       []Entity
}

// Entity represents a recognized entity in a document
type Entity struct {
	Type  string // PER, LOC, ORG, MISC
	Value string
}

// Report represents a stored analysis report
type Report struct {
	ID        string // ULID
	Kind      string
	Source    string
	Body      string // JSON
	CreatedAt time.Time
}
