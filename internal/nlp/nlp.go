// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package nlp provides deterministic local NLP over academic text:
// scientific entity extraction, discourse segmentation (rhetorical
// function classification), and key-phrase extraction.
//
// All components are keyword- and pattern-driven, with no trained models
// and no model I/O. Results are reproducible given identical inputs.
// A Processor is read-only after construction and may be shared across
// concurrent document analyses.
package nlp

import "github.com/pdiddy/paper-collector/pkg/types"

// Processor bundles the NLP components behind one handle. Construct once
// per process and reuse.
type Processor struct {
	Entities   *EntityMatcher
	Discourse  *DiscourseSegmenter
	KeyPhrases *KeyPhraseExtractor
}

// NewProcessor returns a Processor with all components initialized.
func NewProcessor() *Processor {
	return &Processor{
		Entities:   NewEntityMatcher(),
		Discourse:  NewDiscourseSegmenter(),
		KeyPhrases: NewKeyPhraseExtractor(),
	}
}

// Result holds the combined output of one processing pass.
type Result struct {
	Entities  []types.ScientificEntity
	Sentences []types.AnnotatedSentence
	Phrases   []types.KeyPhrase
}

// Process runs all components over one text block. sectionHint, when
// non-empty, biases rhetorical classification toward the section's
// expected functions.
func (p *Processor) Process(text, sectionHint string) Result {
	return Result{
		Entities:  p.Entities.Extract(text),
		Sentences: p.Discourse.Segment(text, sectionHint),
		Phrases:   p.KeyPhrases.Extract(text, DefaultMaxPhrases),
	}
}
