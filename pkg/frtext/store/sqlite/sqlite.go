package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/frtext/pkg/frtext/internalerr"
	"github.com/cognicore/frtext/pkg/frtext/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: init schema: %v", internalerr.ErrStoreUnavailable, err)
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS docs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	source TEXT UNIQUE NOT NULL,
	title TEXT,
	language TEXT,
	theme TEXT,
	ingested_at TEXT
);

CREATE INDEX IF NOT EXISTS docs_theme ON docs(theme);

CREATE TABLE IF NOT EXISTS doc_tokens (
	doc_id INTEGER NOT NULL,
	position INTEGER NOT NULL,
	token TEXT NOT NULL,
	PRIMARY KEY(doc_id, position),
	FOREIGN KEY(doc_id) REFERENCES docs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS doc_entities (
	doc_id INTEGER NOT NULL,
	position INTEGER NOT NULL,
	type TEXT NOT NULL,
	value TEXT NOT NULL,
	UNIQUE(doc_id, type, value),
	FOREIGN KEY(doc_id) REFERENCES docs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	source TEXT,
	body TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS reports_kind ON reports(kind, created_at);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertDoc inserts or updates a document keyed by source
func (s *sqliteStore) UpsertDoc(ctx context.Context, d store.Doc) (int64, error) {
	if d.Source == "" {
		return 0, fmt.Errorf("%w: document source is required", internalerr.ErrInvalidInput)
	}
	if d.IngestedAt.IsZero() {
		d.IngestedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO docs (source, title, language, theme, ingested_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(source) DO UPDATE SET
	title=excluded.title,
	language=excluded.language,
	theme=excluded.theme,
	ingested_at=excluded.ingested_at
RETURNING id;
`

	var docID int64
	err = tx.QueryRowContext(
		ctx,
		stmt,
		d.Source,
		d.Title,
		d.Language,
		d.Theme,
		d.IngestedAt.UTC().Format(time.RFC3339Nano),
	).Scan(&docID)
	if err != nil {
		return 0, err
	}

	if err := replaceDocTokens(ctx, tx, docID, d.Tokens); err != nil {
		return 0, err
	}
	if err := replaceDocEntities(ctx, tx, docID, uniqueEntities(d.Ents)); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return docID, nil
}

func replaceDocTokens(ctx context.Context, tx *sql.Tx, docID int64, tokens []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM doc_tokens WHERE doc_id=?`, docID); err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO doc_tokens (doc_id, position, token) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	pos := 0
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, docID, pos, tok); err != nil {
			return err
		}
		pos++
	}
	return nil
}

func replaceDocEntities(ctx context.Context, tx *sql.Tx, docID int64, ents []store.Entity) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM doc_entities WHERE doc_id=?`, docID); err != nil {
		return err
	}
	if len(ents) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO doc_entities (doc_id, position, type, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, ent := range ents {
		if _, err := stmt.ExecContext(ctx, docID, i, ent.Type, ent.Value); err != nil {
			return err
		}
	}
	return nil
}

// GetDoc retrieves a document by ID
func (s *sqliteStore) GetDoc(ctx context.Context, id int64) (store.Doc, error) {
	doc, err := s.loadDoc(ctx, `WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Doc{}, fmt.Errorf("%w: document %d", internalerr.ErrNotFound, id)
	}
	return doc, err
}

// GetDocBySource retrieves a document by its source
func (s *sqliteStore) GetDocBySource(ctx context.Context, source string) (store.Doc, bool, error) {
	doc, err := s.loadDoc(ctx, `WHERE source = ?`, source)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Doc{}, false, nil
	}
	if err != nil {
		return store.Doc{}, false, err
	}
	return doc, true, nil
}

// ListDocs returns documents in ingestion order. limit <= 0 returns all.
func (s *sqliteStore) ListDocs(ctx context.Context, limit int) ([]store.Doc, error) {
	query := `SELECT id FROM docs ORDER BY id`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.loadDocs(ctx, query, args...)
}

// DocsByTheme returns documents classified under theme, in ingestion order
func (s *sqliteStore) DocsByTheme(ctx context.Context, theme string) ([]store.Doc, error) {
	return s.loadDocs(ctx, `SELECT id FROM docs WHERE theme = ? ORDER BY id`, theme)
}

// CountDocs returns the number of stored documents
func (s *sqliteStore) CountDocs(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM docs`).Scan(&n)
	return n, err
}

// SaveReport stores a report; saving an existing ID replaces it
func (s *sqliteStore) SaveReport(ctx context.Context, r store.Report) error {
	if r.ID == "" {
		return fmt.Errorf("%w: report id is required", internalerr.ErrInvalidInput)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO reports (id, kind, source, body, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	kind=excluded.kind,
	source=excluded.source,
	body=excluded.body,
	created_at=excluded.created_at;
`, r.ID, r.Kind, r.Source, r.Body, r.CreatedAt.UTC().Format(time.RFC3339Nano))
	return err
}

// GetReport retrieves a report by ID
func (s *sqliteStore) GetReport(ctx context.Context, id string) (store.Report, error) {
	var (
		r       store.Report
		created string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, kind, source, body, created_at
FROM reports
WHERE id = ?;
`, id).Scan(&r.ID, &r.Kind, &r.Source, &r.Body, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Report{}, fmt.Errorf("%w: report %s", internalerr.ErrNotFound, id)
	}
	if err != nil {
		return store.Report{}, err
	}
	r.CreatedAt = parseTime(created)
	return r, nil
}

// ListReports returns the newest reports first. An empty kind matches all
// kinds and limit <= 0 returns every report.
func (s *sqliteStore) ListReports(ctx context.Context, kind string, limit int) ([]store.Report, error) {
	query := `SELECT id, kind, source, body, created_at FROM reports`
	args := []interface{}{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	// ULIDs sort by creation time
	query += ` ORDER BY id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Report
	for rows.Next() {
		var (
			r       store.Report
			created string
		)
		if err := rows.Scan(&r.ID, &r.Kind, &r.Source, &r.Body, &created); err != nil {
			return nil, err
		}
		r.CreatedAt = parseTime(created)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sqliteStore) loadDocs(ctx context.Context, idQuery string, args ...interface{}) ([]store.Doc, error) {
	rows, err := s.db.QueryContext(ctx, idQuery, args...)
	if err != nil {
		return nil, err
	}
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	out := make([]store.Doc, 0, len(ids))
	for _, id := range ids {
		doc, err := s.loadDoc(ctx, `WHERE id = ?`, id)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (s *sqliteStore) loadDoc(ctx context.Context, where string, arg interface{}) (store.Doc, error) {
	var (
		doc      store.Doc
		ingested string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, source, title, language, theme, ingested_at
FROM docs
`+where, arg).Scan(&doc.ID, &doc.Source, &doc.Title, &doc.Language, &doc.Theme, &ingested)
	if err != nil {
		return store.Doc{}, err
	}
	doc.IngestedAt = parseTime(ingested)

	doc.Tokens, err = s.loadStringColumn(ctx, `SELECT token FROM doc_tokens WHERE doc_id=? ORDER BY position`, doc.ID)
	if err != nil {
		return store.Doc{}, err
	}
	doc.Ents, err = s.loadEntities(ctx, doc.ID)
	if err != nil {
		return store.Doc{}, err
	}

	return doc, nil
}

func (s *sqliteStore) loadStringColumn(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *sqliteStore) loadEntities(ctx context.Context, docID int64) ([]store.Entity, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT type, value FROM doc_entities WHERE doc_id=? ORDER BY position`, docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Entity
	for rows.Next() {
		var e store.Entity
		if err := rows.Scan(&e.Type, &e.Value); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	return time.Time{}
}

func uniqueEntities(in []store.Entity) []store.Entity {
	type key struct{ t, v string }
	set := make(map[key]struct{}, len(in))
	var out []store.Entity
	for _, e := range in {
		if e.Type == "" || e.Value == "" {
			continue
		}
		k := key{e.Type, e.Value}
		if _, ok := set[k]; ok {
			continue
		}
		set[k] = struct{}{}
		out = append(out, e)
	}
	return out
}
