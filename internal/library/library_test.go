// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-collector/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()

	store, err := NewStore(types.LibraryConfig{
		LibraryDir: filepath.Join(tmpDir, "library"),
		MaxResults: 20,
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return store, tmpDir
}

func samplePaper(title string) *types.Paper {
	return &types.Paper{
		Title:    title,
		Authors:  []types.Author{{Name: "J. Smith"}, {Name: "A. Doe"}},
		DOI:      "10.1000/example.2026",
		Abstract: "We propose a compact architecture for on-device speech recognition.",
		Sections: []types.Section{
			{Type: types.SectionAbstract, Title: "Abstract", Content: "We propose a compact architecture."},
			{Type: types.SectionConclusion, Title: "Conclusion", Content: "It works."},
		},
		References:         []string{"[1] Prior work."},
		SourceFile:         "papers/raw/sample.pdf",
		IngestionTimestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		ParserVersion:      "structurer-0.2.0",
	}
}

func sampleAnalysis(title string) *types.AcademicAnalysis {
	return &types.AcademicAnalysis{
		PaperTitle:         title,
		TechnicalSummary:   "A compact on-device recognizer.",
		ResearchProblem:    types.ResearchProblem{ProblemStatement: "On-device recognition."},
		MainContributions:  []string{"Compact architecture.", "Real-time inference."},
		ThematicTags:       []string{"Speech Processing", "Embedded Systems"},
		CitationSummary:    "Smith et al. present a compact recognizer.",
		AnalysisConfidence: types.ConfidenceMedium,
	}
}

func writePaperMeta(t *testing.T, tmpDir, slug string, paper *types.Paper) {
	t.Helper()
	dir := filepath.Join(tmpDir, "papers", metadataDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	data, err := yaml.Marshal(paper)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, slug+".yaml"), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

// --- tests ---

func TestSavePaperUpsertKeepsID(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	id1, err := store.SavePaper(ctx, "sample", samplePaper("First Title"))
	if err != nil {
		t.Fatal(err)
	}
	id2, err := store.SavePaper(ctx, "sample", samplePaper("Revised Title"))
	if err != nil {
		t.Fatal(err)
	}
	if id1 != id2 {
		t.Errorf("re-saving the same slug changed the ID: %s vs %s", id1, id2)
	}

	rec, err := store.Show(ctx, "sample")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Title != "Revised Title" {
		t.Errorf("title = %q, want the refreshed value", rec.Title)
	}
}

func TestSaveAnalysisAndShow(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	paperID, err := store.SavePaper(ctx, "sample", samplePaper("Sample Paper"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveAnalysis(ctx, paperID, "nlp", sampleAnalysis("Sample Paper")); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveAnalysis(ctx, paperID, "template", sampleAnalysis("Sample Paper")); err != nil {
		t.Fatal(err)
	}

	rec, err := store.Show(ctx, paperID)
	if err != nil {
		t.Fatal(err)
	}
	if rec.AnalysisCount != 2 {
		t.Fatalf("analysis count = %d, want 2", rec.AnalysisCount)
	}
	for _, ar := range rec.Analyses {
		if ar.Analysis == nil || ar.Analysis.TechnicalSummary == "" {
			t.Errorf("analysis %s payload did not round-trip", ar.ID)
		}
	}
	if len(rec.Authors) != 2 || rec.Authors[0] != "J. Smith" {
		t.Errorf("authors = %v", rec.Authors)
	}
}

func TestShowNotFound(t *testing.T) {
	store, _ := testStore(t)
	if _, err := store.Show(context.Background(), "nope"); err == nil {
		t.Error("expected an error for an unknown paper")
	}
}

func TestListFullTextSearch(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	speech := samplePaper("Speech Recognition on Microcontrollers")
	vision := samplePaper("Image Segmentation for Robotics")
	vision.Abstract = "A vision pipeline for robotic grasping."
	if _, err := store.SavePaper(ctx, "speech", speech); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SavePaper(ctx, "vision", vision); err != nil {
		t.Fatal(err)
	}

	all, err := store.List(ctx, QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("unfiltered list = %d papers, want 2", len(all))
	}

	hits, err := store.List(ctx, QueryOptions{Query: "microcontrollers"})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].Slug != "speech" {
		t.Errorf("search hits = %v, want only the speech paper", hits)
	}
}

func TestListTagFilter(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	id, err := store.SavePaper(ctx, "tagged", samplePaper("Tagged Paper"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.SavePaper(ctx, "untagged", samplePaper("Untagged Paper")); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveAnalysis(ctx, id, "nlp", sampleAnalysis("Tagged Paper")); err != nil {
		t.Fatal(err)
	}

	hits, err := store.List(ctx, QueryOptions{Tag: "Speech Processing"})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].Slug != "tagged" {
		t.Errorf("tag filter hits = %v, want only the tagged paper", hits)
	}
}

func TestIndexMetadataDir(t *testing.T) {
	store, tmpDir := testStore(t)
	ctx := context.Background()
	papersDir := filepath.Join(tmpDir, "papers")

	writePaperMeta(t, tmpDir, "one", samplePaper("Paper One"))
	writePaperMeta(t, tmpDir, "two", samplePaper("Paper Two"))

	var out bytes.Buffer
	summary, err := store.Index(ctx, papersDir, &out)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Indexed != 2 || summary.Failed != 0 {
		t.Fatalf("first run summary = %+v, want 2 indexed", summary)
	}

	// Second run over unchanged files skips everything.
	summary, err = store.Index(ctx, papersDir, &out)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Skipped != 2 || summary.Indexed != 0 {
		t.Fatalf("second run summary = %+v, want 2 skipped", summary)
	}

	// A successful run refreshes export.yaml.
	exportPath := filepath.Join(tmpDir, "library", indexDir, "export.yaml")
	if _, err := os.Stat(exportPath); err != nil {
		t.Errorf("export.yaml not written: %v", err)
	}
}

func TestIndexMalformedRecord(t *testing.T) {
	store, tmpDir := testStore(t)
	papersDir := filepath.Join(tmpDir, "papers")

	writePaperMeta(t, tmpDir, "good", samplePaper("Good Paper"))
	dir := filepath.Join(papersDir, metadataDir)
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(":\n :::"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	summary, err := store.Index(context.Background(), papersDir, &out)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Indexed != 1 || summary.Failed != 1 {
		t.Errorf("summary = %+v, want 1 indexed and 1 failed", summary)
	}
}

func TestExportJSON(t *testing.T) {
	store, tmpDir := testStore(t)
	ctx := context.Background()

	id, err := store.SavePaper(ctx, "sample", samplePaper("Sample Paper"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveAnalysis(ctx, id, "template", sampleAnalysis("Sample Paper")); err != nil {
		t.Fatal(err)
	}

	if err := store.ExportJSON(ctx, QueryOptions{}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(tmpDir, "library", indexDir, "export.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("Sample Paper")) {
		t.Error("export.json missing paper record")
	}
}

func TestPaperID(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	id, err := store.SavePaper(ctx, "sample", samplePaper("Sample Paper"))
	if err != nil {
		t.Fatal(err)
	}

	got, err := store.PaperID(ctx, "sample")
	if err != nil {
		t.Fatal(err)
	}
	if got != id {
		t.Errorf("PaperID(slug) = %s, want %s", got, id)
	}
	if _, err := store.PaperID(ctx, "missing"); err == nil {
		t.Error("expected an error for an unknown slug")
	}
}
