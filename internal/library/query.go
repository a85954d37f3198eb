// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/paper-collector/pkg/types"
)

// PaperSummary is one row of a library listing.
type PaperSummary struct {
	ID             string   `json:"id" yaml:"id"`
	Slug           string   `json:"slug" yaml:"slug"`
	Title          string   `json:"title" yaml:"title"`
	Authors        []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	DOI            string   `json:"doi,omitempty" yaml:"doi,omitempty"`
	Venue          string   `json:"venue,omitempty" yaml:"venue,omitempty"`
	SectionCount   int      `json:"section_count" yaml:"section_count"`
	ReferenceCount int      `json:"reference_count" yaml:"reference_count"`
	AnalysisCount  int      `json:"analysis_count" yaml:"analysis_count"`
	IngestedAt     string   `json:"ingested_at" yaml:"ingested_at"`
}

// QueryOptions holds parameters for library queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over titles and abstracts.
	Query string

	// Tag filters papers to those with an analysis carrying the tag.
	Tag string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// List returns paper summaries, newest ingestion first, honoring the
// options' full-text query and tag filter.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]PaperSummary, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT p.id, p.slug, p.title, p.authors, p.doi, p.venue,
				p.section_count, p.reference_count, p.ingested_at,
				(SELECT count(*) FROM analyses a WHERE a.paper_id = p.id)
			FROM papers_fts
			JOIN papers p ON p.rowid = papers_fts.rowid
			WHERE papers_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT p.id, p.slug, p.title, p.authors, p.doi, p.venue,
				p.section_count, p.reference_count, p.ingested_at,
				(SELECT count(*) FROM analyses a WHERE a.paper_id = p.id)
			FROM papers p
			WHERE 1=1`)
	}

	if opts.Tag != "" {
		qb.WriteString(` AND EXISTS (
			SELECT 1 FROM analyses a, json_each(a.thematic_tags)
			WHERE a.paper_id = p.id AND value = ?)`)
		args = append(args, opts.Tag)
	}

	if useFTS {
		qb.WriteString(` ORDER BY papers_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY p.ingested_at DESC, p.slug`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying library: %w", err)
	}
	defer rows.Close()

	var results []PaperSummary
	for rows.Next() {
		var (
			ps          PaperSummary
			authorsJSON sql.NullString
			doi         sql.NullString
			venue       sql.NullString
		)
		if err := rows.Scan(
			&ps.ID, &ps.Slug, &ps.Title, &authorsJSON, &doi, &venue,
			&ps.SectionCount, &ps.ReferenceCount, &ps.IngestedAt, &ps.AnalysisCount,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		if authorsJSON.Valid {
			var authors []types.Author
			json.Unmarshal([]byte(authorsJSON.String), &authors)
			for _, a := range authors {
				ps.Authors = append(ps.Authors, a.Name)
			}
		}
		ps.DOI = doi.String
		ps.Venue = venue.String

		results = append(results, ps)
	}

	return results, rows.Err()
}

// Record is one paper with its stored analyses, newest first.
type Record struct {
	PaperSummary `yaml:",inline"`
	Abstract     string           `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	SourceFile   string           `json:"source_file,omitempty" yaml:"source_file,omitempty"`
	Analyses     []AnalysisRecord `json:"analyses,omitempty" yaml:"analyses,omitempty"`
}

// AnalysisRecord pairs a stored analysis with its provenance.
type AnalysisRecord struct {
	ID        string                  `json:"id" yaml:"id"`
	Tier      string                  `json:"tier" yaml:"tier"`
	CreatedAt string                  `json:"created_at" yaml:"created_at"`
	Analysis  *types.AcademicAnalysis `json:"analysis" yaml:"analysis"`
}

// Show returns the full record for a paper identified by library ID or
// slug, including every stored analysis.
func (s *Store) Show(ctx context.Context, idOrSlug string) (*Record, error) {
	var (
		rec         Record
		authorsJSON sql.NullString
		doi         sql.NullString
		venue       sql.NullString
		abstract    sql.NullString
		sourceFile  sql.NullString
	)

	err := s.db.QueryRowContext(ctx,
		`SELECT id, slug, title, authors, doi, venue, abstract, source_file,
			section_count, reference_count, ingested_at
		 FROM papers WHERE id = ? OR slug = ?`, idOrSlug, idOrSlug,
	).Scan(
		&rec.ID, &rec.Slug, &rec.Title, &authorsJSON, &doi, &venue,
		&abstract, &sourceFile, &rec.SectionCount, &rec.ReferenceCount,
		&rec.IngestedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("paper %s not found", idOrSlug)
		}
		return nil, fmt.Errorf("looking up paper: %w", err)
	}

	if authorsJSON.Valid {
		var authors []types.Author
		json.Unmarshal([]byte(authorsJSON.String), &authors)
		for _, a := range authors {
			rec.Authors = append(rec.Authors, a.Name)
		}
	}
	rec.DOI = doi.String
	rec.Venue = venue.String
	rec.Abstract = abstract.String
	rec.SourceFile = sourceFile.String

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tier, created_at, payload FROM analyses
		 WHERE paper_id = ? ORDER BY created_at DESC`, rec.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying analyses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ar      AnalysisRecord
			payload string
		)
		if err := rows.Scan(&ar.ID, &ar.Tier, &ar.CreatedAt, &payload); err != nil {
			return nil, fmt.Errorf("scanning analysis: %w", err)
		}
		var analysis types.AcademicAnalysis
		if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
			return nil, fmt.Errorf("parsing analysis %s: %w", ar.ID, err)
		}
		ar.Analysis = &analysis
		rec.Analyses = append(rec.Analyses, ar)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rec.AnalysisCount = len(rec.Analyses)
	return &rec, nil
}
