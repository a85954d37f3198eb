// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library persists structured papers and their analyses in a
// SQLite database and serves queries over them. The database lives at
// libraryDir/index/library.db; full analysis records are stored as JSON
// payloads alongside the queryable columns.
package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-collector/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "library.db"

	defaultMaxResults = 20
)

// Store manages the paper library SQLite database.
type Store struct {
	db         *sql.DB
	libraryDir string
	maxResults int
}

// NewStore opens or creates the library database at
// libraryDir/index/library.db, creating the schema if it does not exist.
func NewStore(cfg types.LibraryConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.LibraryDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{
		db:         db,
		libraryDir: cfg.LibraryDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			slug TEXT NOT NULL UNIQUE,
			title TEXT,
			authors TEXT,
			date TEXT,
			doi TEXT,
			arxiv_id TEXT,
			venue TEXT,
			abstract TEXT,
			source_file TEXT,
			section_count INTEGER,
			reference_count INTEGER,
			parser_version TEXT,
			ingested_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS analyses (
			id TEXT PRIMARY KEY,
			paper_id TEXT NOT NULL REFERENCES papers(id),
			tier TEXT NOT NULL,
			confidence TEXT,
			technical_summary TEXT,
			citation_summary TEXT,
			thematic_tags TEXT,
			payload TEXT NOT NULL,
			created_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_paper_id ON analyses(paper_id)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			slug TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table over paper title and abstract, with triggers
	// keeping it in sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE papers_fts USING fts5(title, abstract, content=papers, content_rowid=rowid)`,
			`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
				INSERT INTO papers_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
			`CREATE TRIGGER papers_ad AFTER DELETE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
			END`,
			`CREATE TRIGGER papers_au AFTER UPDATE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
				INSERT INTO papers_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// SavePaper upserts a paper record keyed by slug and returns the paper's
// library ID. Re-ingesting the same source keeps the existing ID and
// refreshes the stored fields.
func (s *Store) SavePaper(ctx context.Context, slug string, paper *types.Paper) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM papers WHERE slug = ?`, slug,
	).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		id = uuid.NewString()
	case err != nil:
		return "", fmt.Errorf("looking up paper %s: %w", slug, err)
	}

	authorsJSON, _ := json.Marshal(paper.Authors)
	dateStr := ""
	if !paper.Date.IsZero() {
		dateStr = paper.Date.Format(time.RFC3339)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO papers (id, slug, title, authors, date, doi, arxiv_id, venue,
			abstract, source_file, section_count, reference_count, parser_version, ingested_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slug) DO UPDATE SET
			title=excluded.title, authors=excluded.authors, date=excluded.date,
			doi=excluded.doi, arxiv_id=excluded.arxiv_id, venue=excluded.venue,
			abstract=excluded.abstract, source_file=excluded.source_file,
			section_count=excluded.section_count, reference_count=excluded.reference_count,
			parser_version=excluded.parser_version, ingested_at=excluded.ingested_at`,
		id, slug, paper.Title, string(authorsJSON), dateStr,
		paper.DOI, paper.ArxivID, paper.Venue, paper.Abstract, paper.SourceFile,
		len(paper.Sections), len(paper.References), paper.ParserVersion,
		paper.IngestionTimestamp.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("upserting paper %s: %w", slug, err)
	}

	return id, nil
}

// SaveAnalysis stores an analysis record for a paper and returns the new
// analysis ID. The full analysis is kept as a JSON payload; summary
// columns are duplicated for listing without deserialization.
func (s *Store) SaveAnalysis(ctx context.Context, paperID, tier string, analysis *types.AcademicAnalysis) (string, error) {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return "", fmt.Errorf("marshaling analysis: %w", err)
	}
	tagsJSON, _ := json.Marshal(analysis.ThematicTags)

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, paper_id, tier, confidence, technical_summary,
			citation_summary, thematic_tags, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, paperID, tier, string(analysis.AnalysisConfidence),
		analysis.TechnicalSummary, analysis.CitationSummary,
		string(tagsJSON), string(payload),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("inserting analysis for %s: %w", paperID, err)
	}

	return id, nil
}
