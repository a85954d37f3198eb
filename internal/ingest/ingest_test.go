// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-collector/internal/structure"
	"github.com/pdiddy/paper-collector/pkg/types"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"papers/raw/My Paper (final).pdf", "my-paper-final"},
		{"https://example.org/pubs/attention_is_all.pdf", "attention-is-all"},
		{"UPPER.PDF", "upper"},
		{"///", "paper"},
		{"", "paper"},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDownloadFile(t *testing.T) {
	payload := []byte("%PDF-1.4 fake body")
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write(payload)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "paper.pdf")
	cfg := types.IngestConfig{HTTPConfig: types.HTTPConfig{UserAgent: "paper-collector/test"}}

	err := downloadFile(context.Background(), srv.Client(), srv.URL, dest, cfg)
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("downloaded %q, want %q", data, payload)
	}
	if gotUA != "paper-collector/test" {
		t.Errorf("User-Agent = %q", gotUA)
	}

	// No stray temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(dest))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("destination directory holds %d entries, want 1", len(entries))
	}
}

func TestDownloadFileHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "paper.pdf")
	err := downloadFile(context.Background(), srv.Client(), srv.URL, dest, types.IngestConfig{})
	if err == nil {
		t.Fatal("expected an error for HTTP 404")
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("failed download must not create the destination file")
	}
}

func TestWriteMetadata(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := types.IngestConfig{PapersDir: tmpDir}

	paper := &types.Paper{
		Title:              "Sample Paper",
		Sections:           []types.Section{{Type: types.SectionOther, Content: "Body."}},
		SourceFile:         "papers/raw/sample.pdf",
		IngestionTimestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	path, err := WriteMetadata(paper, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(tmpDir, metadataDir, "sample.yaml"); path != want {
		t.Errorf("metadata path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got types.Paper
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("metadata YAML does not parse: %v", err)
	}
	if got.Title != paper.Title || len(got.Sections) != 1 {
		t.Errorf("round-tripped paper = %+v", got)
	}
}

func TestFromFileMissingPDF(t *testing.T) {
	var out bytes.Buffer
	_, err := FromFile(filepath.Join(t.TempDir(), "absent.pdf"), structure.Metadata{}, &out)
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
