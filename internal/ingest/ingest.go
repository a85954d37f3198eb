// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest turns a source PDF into a structured Paper. It extracts
// the linear text stream and document-info metadata from the PDF, then
// hands both to the structurer. Sources are local files or URLs.
//
// Extraction is text-only: no OCR and no multi-column layout recovery.
// A PDF whose text stream carries no recognizable headers still ingests;
// the structurer degrades to a single catch-all section.
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-collector/internal/httputil"
	"github.com/pdiddy/paper-collector/internal/structure"
	"github.com/pdiddy/paper-collector/pkg/types"
)

const (
	rawDir      = "raw"
	metadataDir = "metadata"
)

// FromFile extracts text and document info from a local PDF and builds
// the structured Paper. Metadata supplied by the caller wins over the
// PDF's own document info.
func FromFile(path string, meta structure.Metadata, w io.Writer) (*types.Paper, error) {
	fmt.Fprintf(w, "ingesting %s\n", path)

	text, info, err := extractText(path)
	if err != nil {
		return nil, fmt.Errorf("extracting text from %s: %w", path, err)
	}

	if meta.Title == "" {
		meta.Title = info.title
	}
	if meta.AuthorString == "" {
		meta.AuthorString = info.author
	}
	if meta.SourceFile == "" {
		meta.SourceFile = path
	}

	paper := structure.BuildPaper(text, meta)
	fmt.Fprintf(w, "structured %q: %d section(s)\n", paper.Title, len(paper.Sections))
	return paper, nil
}

// FromURL downloads a PDF into papersDir/raw/ and ingests it. Downloads
// retry on HTTP 429 with backoff; any other non-200 status fails.
func FromURL(ctx context.Context, client *http.Client, url string, meta structure.Metadata, cfg types.IngestConfig, w io.Writer) (*types.Paper, error) {
	dir := filepath.Join(cfg.PapersDir, rawDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, Slug(url)+".pdf")
	fmt.Fprintf(w, "downloading %s\n", url)
	if err := downloadFile(ctx, client, url, path, cfg); err != nil {
		return nil, fmt.Errorf("downloading %s: %w", url, err)
	}

	if meta.SourceFile == "" {
		meta.SourceFile = url
	}
	return FromFile(path, meta, w)
}

// WriteMetadata writes the paper record to papersDir/metadata/<slug>.yaml
// and returns the path.
func WriteMetadata(paper *types.Paper, cfg types.IngestConfig) (string, error) {
	dir := filepath.Join(cfg.PapersDir, metadataDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(paper)
	if err != nil {
		return "", fmt.Errorf("marshaling paper: %w", err)
	}

	path := filepath.Join(dir, Slug(paper.SourceFile)+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing metadata: %w", err)
	}
	return path, nil
}

// slugStrip collapses every run of non-alphanumeric characters.
var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives a filesystem-safe identifier from a source path or URL.
func Slug(source string) string {
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	slug := slugStrip.ReplaceAllString(strings.ToLower(base), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "paper"
	}
	return slug
}

// docInfo carries the PDF document-information fields used as metadata
// fallbacks.
type docInfo struct {
	title  string
	author string
}

// extractText reads the PDF's plain-text stream and document info.
func extractText(path string) (string, docInfo, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", docInfo{}, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", docInfo{}, fmt.Errorf("reading text stream: %w", err)
	}
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", docInfo{}, fmt.Errorf("copying text stream: %w", err)
	}

	var info docInfo
	if v := reader.Trailer().Key("Info"); !v.IsNull() {
		info.title = strings.TrimSpace(v.Key("Title").Text())
		info.author = strings.TrimSpace(v.Key("Author").Text())
	}
	if strings.EqualFold(info.title, "untitled") {
		info.title = ""
	}

	return buf.String(), info, nil
}

// downloadFile fetches url into destPath through a temp file, renaming
// on success so partial downloads never land at the final path.
func downloadFile(ctx context.Context, client *http.Client, url, destPath string, cfg types.IngestConfig) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".ingest-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
