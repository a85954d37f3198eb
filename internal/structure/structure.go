// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structure

import (
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/paper-collector/pkg/types"
)

// ParserVersion tags Paper records produced by this structurer.
const ParserVersion = "structurer-0.2.0"

// Metadata carries optional document metadata supplied by the extraction
// collaborator (PDF document info, upload form, command-line flags).
type Metadata struct {
	// Title is a title hint. When empty the first non-blank line of the
	// text is used instead.
	Title string

	// AuthorString is a raw author listing, split on commas, semicolons,
	// and the word "and".
	AuthorString string

	// DOI is the Digital Object Identifier, when known.
	DOI string

	// SourceFile is the path or URL the document came from.
	SourceFile string
}

// authorSeparators splits a raw author string into individual names.
var authorSeparators = regexp.MustCompile(`[,;]|\sand\s`)

// BuildPaper structures raw extracted text into the canonical Paper
// record: it segments sections, lifts the abstract out of the first
// abstract-typed section, splits the references section into raw entries,
// and resolves title and authors from the supplied metadata with textual
// fallbacks. Empty-content sections produced by consecutive headers are
// dropped. BuildPaper never fails.
func BuildPaper(text string, meta Metadata) *types.Paper {
	sections := keepNonEmpty(Segment(text))

	paper := &types.Paper{
		DOI:                meta.DOI,
		Title:              resolveTitle(meta.Title, text),
		Authors:            ParseAuthors(meta.AuthorString),
		Sections:           sections,
		SourceFile:         meta.SourceFile,
		IngestionTimestamp: time.Now().UTC(),
		ParserVersion:      ParserVersion,
	}

	for _, s := range sections {
		if s.Type == types.SectionAbstract {
			paper.Abstract = s.Content
			break
		}
	}
	if refs := paper.SectionContent(types.SectionReferences); refs != "" {
		paper.References = splitReferences(refs)
	}

	return paper
}

// keepNonEmpty drops sections with empty content. The synthetic leading
// section survives because it only exists when preamble text filled it.
func keepNonEmpty(sections []types.Section) []types.Section {
	out := make([]types.Section, 0, len(sections))
	for _, s := range sections {
		if s.Content != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		// Keep the catch-all section so a Paper always has one.
		return sections[:1]
	}
	return out
}

// resolveTitle prefers the metadata hint, falls back to the first
// non-blank line of the text, and finally to a fixed placeholder.
func resolveTitle(hint, text string) string {
	if t := strings.TrimSpace(hint); t != "" && !strings.EqualFold(t, "untitled") {
		return t
	}
	for _, line := range strings.Split(text, "\n") {
		if l := strings.TrimSpace(line); l != "" {
			return l
		}
	}
	return "Untitled Document"
}

// ParseAuthors splits a raw author string into Author records. Empty
// fragments are discarded; an empty input yields nil.
func ParseAuthors(authorString string) []types.Author {
	var authors []types.Author
	for _, name := range authorSeparators.Split(authorString, -1) {
		if name = strings.TrimSpace(name); name != "" {
			authors = append(authors, types.Author{Name: name})
		}
	}
	return authors
}

// splitReferences breaks a references section into raw entry strings,
// one per non-blank line.
func splitReferences(content string) []string {
	var refs []string
	for _, line := range strings.Split(content, "\n") {
		if l := strings.TrimSpace(line); l != "" {
			refs = append(refs, l)
		}
	}
	return refs
}
