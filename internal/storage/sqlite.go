package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/matsen/bibx/internal/analysis"
	"github.com/matsen/bibx/internal/document"
	"github.com/matsen/bibx/internal/metrics"
	"github.com/matsen/bibx/internal/registry"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// DocumentRow is one indexed document.
type DocumentRow struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Authors      string `json:"authors"`
	Year         int    `json:"year,omitempty"`
	Source       string `json:"source"`
	DOI          string `json:"doi,omitempty"`
	DocumentType string `json:"document_type"`
	Citations    int    `json:"citations"`
	Dialect      string `json:"dialect"`
}

// EntityRow is one indexed entity.
type EntityRow struct {
	Kind      registry.Kind `json:"kind"`
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Documents int           `json:"documents"`
	Citations int           `json:"citations"`
}

// BuildInfo identifies one rebuild of the index.
type BuildInfo struct {
	ID        string    `json:"build_id"`
	Documents int       `json:"documents"`
	BuiltAt   time.Time `json:"built_at"`
}

const selectDocumentFields = `id, title, authors, year, source, doi, document_type, citations, dialect`

// entityKinds are the classes stored in the entities table.
var entityKinds = []registry.Kind{
	registry.KindAuthor,
	registry.KindSource,
	registry.KindInstitution,
	registry.KindCountry,
	registry.KindAuthorKeyword,
	registry.KindKeywordPlus,
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			authors TEXT NOT NULL,
			year INTEGER,
			source TEXT NOT NULL,
			doi TEXT,
			document_type TEXT NOT NULL,
			citations INTEGER NOT NULL,
			dialect TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_documents_doi ON documents(doi) WHERE doi IS NOT NULL;

		CREATE TABLE IF NOT EXISTS entities (
			kind TEXT NOT NULL,
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			documents INTEGER NOT NULL,
			citations INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_entities_kind ON entities(kind);

		CREATE TABLE IF NOT EXISTS document_entities (
			doc_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			position INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_document_entities_doc ON document_entities(doc_id);
		CREATE INDEX IF NOT EXISTS idx_document_entities_entity ON document_entities(entity_id);

		-- Full-text search virtual table (standalone, not external content)
		CREATE VIRTUAL TABLE IF NOT EXISTS documents_fts USING fts5(
			doc_id UNINDEXED,
			title,
			abstract,
			keywords
		);

		CREATE TABLE IF NOT EXISTS build_metadata (
			build_id TEXT PRIMARY KEY,
			documents INTEGER NOT NULL,
			built_at INTEGER NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromIndex clears the database and repopulates it from ix in one
// transaction.
func (d *DB) RebuildFromIndex(ix *analysis.Index) (BuildInfo, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return BuildInfo{}, fmt.Errorf("starting rebuild: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"documents", "entities", "document_entities", "documents_fts", "build_metadata"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return BuildInfo{}, fmt.Errorf("clearing %s table: %w", table, err)
		}
	}

	if err := insertDocuments(tx, ix); err != nil {
		return BuildInfo{}, err
	}
	if err := insertEntities(tx, ix); err != nil {
		return BuildInfo{}, err
	}

	info := BuildInfo{
		ID:        uuid.NewString(),
		Documents: ix.Len(),
		BuiltAt:   time.Now().UTC().Truncate(time.Second),
	}
	if _, err := tx.Exec(`INSERT INTO build_metadata (build_id, documents, built_at) VALUES (?, ?, ?)`,
		info.ID, info.Documents, info.BuiltAt.Unix()); err != nil {
		return BuildInfo{}, fmt.Errorf("recording build: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return BuildInfo{}, fmt.Errorf("committing rebuild: %w", err)
	}

	log.WithFields(log.Fields{"build_id": info.ID, "documents": info.Documents}).Debug("rebuilt index database")
	return info, nil
}

func insertDocuments(tx *sql.Tx, ix *analysis.Index) error {
	docStmt, err := tx.Prepare(`
		INSERT INTO documents (` + selectDocumentFields + `, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing documents insert: %w", err)
	}
	defer docStmt.Close()

	ftsStmt, err := tx.Prepare(`INSERT INTO documents_fts (doc_id, title, abstract, keywords) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	t := ix.Corpus.Table()
	for i, entry := range ix.Documents.Entries() {
		r := t.Record(i)
		var year sql.NullInt64
		if ix.Years[i] != metrics.NoYear {
			year = sql.NullInt64{Int64: int64(ix.Years[i]), Valid: true}
		}

		_, err := docStmt.Exec(
			entry.ID, r.Get(document.FieldTitle), r.Get(document.FieldAuthor), year,
			r.Get(document.FieldAbbrevSourceTitle), nullableField(r, document.FieldDOI),
			r.Get(document.FieldDocumentType), ix.Citations[i], r.Dialect.String(), i,
		)
		if err != nil {
			return fmt.Errorf("inserting document %s: %w", entry.ID, err)
		}

		_, err = ftsStmt.Exec(entry.ID, searchable(r, document.FieldTitle), searchable(r, document.FieldAbstract), keywordsText(r))
		if err != nil {
			return fmt.Errorf("inserting fts for %s: %w", entry.ID, err)
		}
	}
	return nil
}

func insertEntities(tx *sql.Tx, ix *analysis.Index) error {
	entStmt, err := tx.Prepare(`INSERT INTO entities (kind, id, name, documents, citations) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing entities insert: %w", err)
	}
	defer entStmt.Close()

	linkStmt, err := tx.Prepare(`INSERT INTO document_entities (doc_id, kind, entity_id, position) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing document_entities insert: %w", err)
	}
	defer linkStmt.Close()

	docs := ix.Documents.Entries()
	for _, kind := range entityKinds {
		class := ix.Entity(kind)
		if class == nil {
			continue
		}
		vocab := class.Vocabulary
		for j, entry := range class.Registry.Entries() {
			if _, err := entStmt.Exec(string(kind), entry.ID, entry.Name, vocab.Documents[j], vocab.Citations[j]); err != nil {
				return fmt.Errorf("inserting entity %s: %w", entry.ID, err)
			}
		}

		for i, list := range class.PerDocument {
			for pos, name := range list {
				id, ok := class.Registry.ID(name)
				if !ok {
					continue // sentinel
				}
				if _, err := linkStmt.Exec(docs[i].ID, string(kind), id, pos); err != nil {
					return fmt.Errorf("linking %s to %s: %w", docs[i].ID, id, err)
				}
			}
		}
	}
	return nil
}

// searchable returns the field value, or "" for the placeholder so it never
// matches a query for "unknown".
func searchable(r document.Record, field string) string {
	if !r.Has(field) {
		return ""
	}
	return r.Get(field)
}

func keywordsText(r document.Record) string {
	var parts []string
	for _, f := range []string{document.FieldAuthorKeywords, document.FieldKeywords} {
		if v := searchable(r, f); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "; ")
}

func nullableField(r document.Record, field string) sql.NullString {
	if !r.Has(field) {
		return sql.NullString{}
	}
	return sql.NullString{String: r.Get(field), Valid: true}
}

// Search performs a full-text search over titles, abstracts and keywords.
func (d *DB) Search(query string, limit int) ([]DocumentRow, error) {
	ftsQuery := prepareFTSQuery(query)
	if ftsQuery == "" {
		return nil, nil
	}

	rows, err := d.db.Query(`
		SELECT `+selectDocumentFields+`
		FROM documents
		WHERE id IN (SELECT doc_id FROM documents_fts WHERE documents_fts MATCH ?)
		ORDER BY position
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// DocumentByID retrieves a document, or nil when the ID is unknown.
func (d *DB) DocumentByID(id string) (*DocumentRow, error) {
	row := d.db.QueryRow(`SELECT `+selectDocumentFields+` FROM documents WHERE id = ?`, id)
	return scanDocument(row)
}

// EntityByID retrieves an entity, or nil when the ID is unknown.
func (d *DB) EntityByID(id string) (*EntityRow, error) {
	var e EntityRow
	var kind string
	err := d.db.QueryRow(`SELECT kind, id, name, documents, citations FROM entities WHERE id = ?`, id).
		Scan(&kind, &e.ID, &e.Name, &e.Documents, &e.Citations)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	e.Kind = registry.Kind(kind)
	return &e, nil
}

// DocumentsOf returns the documents linked to an entity, in corpus order.
func (d *DB) DocumentsOf(entityID string) ([]DocumentRow, error) {
	rows, err := d.db.Query(`
		SELECT `+selectDocumentFields+`
		FROM documents
		WHERE id IN (SELECT doc_id FROM document_entities WHERE entity_id = ?)
		ORDER BY position`, entityID)
	if err != nil {
		return nil, fmt.Errorf("listing documents of %s: %w", entityID, err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// Count returns the total number of documents.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&count)
	return count, err
}

// LastBuild returns the metadata of the current build, or nil when the
// database has never been built.
func (d *DB) LastBuild() (*BuildInfo, error) {
	var info BuildInfo
	var builtAt int64
	err := d.db.QueryRow(`SELECT build_id, documents, built_at FROM build_metadata ORDER BY built_at DESC LIMIT 1`).
		Scan(&info.ID, &info.Documents, &builtAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	info.BuiltAt = time.Unix(builtAt, 0).UTC()
	return &info, nil
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(s scanner) (*DocumentRow, error) {
	var doc DocumentRow
	var year sql.NullInt64
	var doi sql.NullString
	err := s.Scan(&doc.ID, &doc.Title, &doc.Authors, &year, &doc.Source, &doi, &doc.DocumentType, &doc.Citations, &doc.Dialect)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	doc.Year = int(year.Int64)
	doc.DOI = doi.String
	return &doc, nil
}

func scanDocuments(rows *sql.Rows) ([]DocumentRow, error) {
	var docs []DocumentRow
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		if doc != nil {
			docs = append(docs, *doc)
		}
	}
	return docs, rows.Err()
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// FTS5 uses double quotes for phrase matching
	if strings.ContainsAny(query, "\"*+-:(){}[]^~.,;") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
