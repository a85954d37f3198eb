// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package structure reconstructs the logical structure of an academic
// paper from linearly extracted text: it detects typed section headers,
// groups lines into sections, and assembles the canonical Paper record.
package structure

import (
	"regexp"
	"strings"

	"github.com/pdiddy/paper-collector/pkg/types"
)

// Header-shape thresholds: a line longer than this, or with this many
// words or more, is never considered a section header.
const (
	maxHeaderLen   = 80
	maxHeaderWords = 10
)

// headerPattern binds a section type to the regex that recognizes its
// header lines.
type headerPattern struct {
	sectionType types.SectionType
	re          *regexp.Regexp
}

// headerPatterns is the ordered header table, checked first to last. The
// patterns tolerate optional arabic or roman numbering, optional trailing
// punctuation, and common cross-lingual and cross-discipline synonyms
// (engineering, medicine, social sciences). The permissive
// multi-disciplinary set is used deliberately; related-work and
// literature-review headers map to the discussion type.
var headerPatterns = []headerPattern{
	{types.SectionAbstract, headerRegexp(
		`abstract|resumen|summary|executive\s+summary`)},
	{types.SectionIntroduction, headerRegexp(
		`introduction|introducción|background|motivation|overview|preliminaries|problem\s+statement|context`)},
	{types.SectionMethodology, headerRegexp(
		`methodology|methods?|materials?\s+and\s+methods?|experimental\s+setup|approach|implementation|system\s+design|architecture|system\s+model|proposed\s+method|algorithm|procedure|study\s+design|participants?|protocol`)},
	{types.SectionResults, headerRegexp(
		`results?|findings|experimental\s+results?|experiments?|evaluations?|performance|outcomes?|simulation\s+results?|analysis\s+of\s+results`)},
	{types.SectionDiscussion, headerRegexp(
		`discussion|analysis|interpretation|limitations?|implications?|theoretical\s+framework|literature\s+review|related\s+work`)},
	{types.SectionConclusion, headerRegexp(
		`conclusion|conclusions|concluding\s+remarks|summary|future\s+work|recommendations?`)},
	{types.SectionReferences, headerRegexp(
		`references?|bibliography|works?\s+cited|sources?`)},
}

// headerRegexp wraps a synonym alternation in the shared header shape:
// case-insensitive, optional leading arabic or roman numeral, optional
// trailing colon, period, or dash, anchored to the whole line.
func headerRegexp(synonyms string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^\s*(?:(?:\d+|[IVX]+)\.?\s*)?(?:` + synonyms + `)\s*[:.-]?\s*$`)
}

// matchHeader returns the section type whose pattern matches the line,
// checking the table in priority order. ok is false when the line is not
// header-shaped or matches no pattern.
func matchHeader(line string) (types.SectionType, bool) {
	if len(line) >= maxHeaderLen || len(strings.Fields(line)) >= maxHeaderWords {
		return "", false
	}
	for _, hp := range headerPatterns {
		if hp.re.MatchString(line) {
			return hp.sectionType, true
		}
	}
	return "", false
}

// Segment walks the extracted text line by line, detects section-header
// lines, and groups the remaining lines into typed sections. Text before
// the first detected header lands in a synthetic leading section typed
// other. Consecutive headers produce an empty-content section the caller
// may drop. Segment never fails: a document with no matched headers
// yields exactly one other-typed section holding all of its text.
func Segment(text string) []types.Section {
	var sections []types.Section

	currentType := types.SectionOther
	currentTitle := ""
	var buf []string

	flush := func() {
		// Skip the implicit leading section when nothing preceded the
		// first header.
		if len(buf) == 0 && currentTitle == "" {
			return
		}
		sections = append(sections, types.Section{
			Type:    currentType,
			Title:   currentTitle,
			Content: strings.TrimSpace(strings.Join(buf, "\n")),
		})
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if sectionType, ok := matchHeader(line); ok {
			flush()
			currentType = sectionType
			currentTitle = line
			buf = buf[:0]
			continue
		}
		buf = append(buf, line)
	}
	flush()

	// Malformed or empty input still yields a catch-all section.
	if len(sections) == 0 {
		sections = append(sections, types.Section{Type: types.SectionOther})
	}

	return sections
}
