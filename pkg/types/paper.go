// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// SectionType classifies the structural role of a section within an
// academic paper.
type SectionType string

const (
	SectionAbstract        SectionType = "abstract"
	SectionIntroduction    SectionType = "introduction"
	SectionBackground      SectionType = "background"
	SectionMethodology     SectionType = "methodology"
	SectionResults         SectionType = "results"
	SectionDiscussion      SectionType = "discussion"
	SectionConclusion      SectionType = "conclusion"
	SectionReferences      SectionType = "references"
	SectionAcknowledgments SectionType = "acknowledgments"
	SectionAppendix        SectionType = "appendix"
	SectionOther           SectionType = "other"
)

// Author is a single author of a paper.
type Author struct {
	// Name is the author's full name as printed on the paper.
	Name string `json:"name" yaml:"name"`

	// Affiliation is the institutional affiliation, when known.
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`

	// Email is the contact email, when known.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// ORCID is the author's ORCID identifier, when known.
	ORCID string `json:"orcid,omitempty" yaml:"orcid,omitempty"`
}

// Section is one structural section of a paper.
type Section struct {
	// Type classifies the section's structural role.
	Type SectionType `json:"section_type" yaml:"section_type"`

	// Title is the raw header line that opened the section. Empty for a
	// synthetic leading section holding text before the first header.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Content is the joined body text of the section.
	Content string `json:"content" yaml:"content"`

	// PageStart and PageEnd bound the section when page boundaries were
	// supplied by extraction. Zero when unknown.
	PageStart int `json:"page_start,omitempty" yaml:"page_start,omitempty"`
	PageEnd   int `json:"page_end,omitempty" yaml:"page_end,omitempty"`
}

// Paper is the structured representation of an ingested academic paper.
// Sections preserve original document order; Abstract, when present,
// equals the content of the first section typed abstract.
type Paper struct {
	// DOI is the Digital Object Identifier, when known.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// ArxivID is the arXiv identifier, when known.
	ArxivID string `json:"arxiv_id,omitempty" yaml:"arxiv_id,omitempty"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []Author `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Date is the publication or preprint date, when known.
	Date time.Time `json:"date,omitempty" yaml:"date,omitempty"`

	// Venue is the journal or conference name, when known.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Abstract is the paper abstract, when one was detected.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Sections holds the structured sections in document order.
	Sections []Section `json:"sections" yaml:"sections"`

	// References lists cited references as raw strings.
	References []string `json:"references,omitempty" yaml:"references,omitempty"`

	// SourceFile is the path or URL the paper was ingested from.
	SourceFile string `json:"source_file,omitempty" yaml:"source_file,omitempty"`

	// IngestionTimestamp records when the paper was structured.
	IngestionTimestamp time.Time `json:"ingestion_timestamp" yaml:"ingestion_timestamp"`

	// ParserVersion tags which structurer produced this record.
	ParserVersion string `json:"parser_version" yaml:"parser_version"`
}

// SectionContent returns the content of the first section with the given
// type, or the empty string when no such section exists.
func (p *Paper) SectionContent(t SectionType) string {
	for _, s := range p.Sections {
		if s.Type == t {
			return s.Content
		}
	}
	return ""
}
