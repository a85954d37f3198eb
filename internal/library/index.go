// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-collector/pkg/types"
)

const metadataDir = "metadata"

// IndexSummary holds counts from a library indexing run.
type IndexSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of papers processed.
func (s IndexSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Index scans papersDir/metadata/ for paper YAML records and upserts each
// into the library, keyed by the filename stem. Files unchanged since the
// last run are skipped. On success it refreshes export.yaml.
func (s *Store) Index(ctx context.Context, papersDir string, w io.Writer) (IndexSummary, error) {
	metaDir := filepath.Join(papersDir, metadataDir)

	entries, err := os.ReadDir(metaDir)
	if err != nil {
		return IndexSummary{}, fmt.Errorf("reading metadata directory %s: %w", metaDir, err)
	}

	var summary IndexSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		slug := strings.TrimSuffix(entry.Name(), ".yaml")
		filePath := filepath.Join(metaDir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", slug, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE slug = ?`, slug,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", slug)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		data, err := os.ReadFile(filePath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", slug, err)
			summary.Failed++
			continue
		}

		var paper types.Paper
		if err := yaml.Unmarshal(data, &paper); err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", slug, err)
			summary.Failed++
			continue
		}

		if _, err := s.SavePaper(ctx, slug, &paper); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", slug, err)
			summary.Failed++
			continue
		}

		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO indexing_status (slug, file_mod_time) VALUES (?, ?)
			 ON CONFLICT(slug) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
			slug, modTime,
		); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", slug, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s\n", slug)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s\n", slug)
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	if summary.Indexed > 0 || summary.Updated > 0 {
		if err := s.ExportYAML(ctx, QueryOptions{}); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}

	return summary, nil
}

// PaperID resolves a slug or library ID to the canonical library ID.
func (s *Store) PaperID(ctx context.Context, idOrSlug string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM papers WHERE id = ? OR slug = ?`, idOrSlug, idOrSlug,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("paper %s not found", idOrSlug)
	}
	return id, nil
}
