// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package nlp

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/paper-collector/pkg/types"
)

const (
	// patternConfidence is assigned to regex-pattern matches.
	patternConfidence = 0.8

	// conceptConfidence is assigned to noun-phrase concept candidates.
	conceptConfidence = 0.6
)

// patternSet binds an entity type to its ordered regex patterns.
type patternSet struct {
	entityType types.EntityType
	patterns   []*regexp.Regexp
}

// entityPatterns is the fixed extraction table, applied in order. The
// patterns target common machine-learning and engineering vocabulary;
// the table is data and can be extended without touching control flow.
var entityPatterns = []patternSet{
	{types.EntityMethod, compileAll(
		`(?i)\b(?:algorithm|approach|method|technique|model|framework|system|architecture)\b`,
		`(?i)\b(?:neural network|deep learning|machine learning|SVM|CNN|RNN|LSTM|transformer)\b`,
		`(?i)\b(?:classification|regression|clustering|segmentation|detection)\b`,
	)},
	{types.EntityMetric, compileAll(
		`(?i)\b(?:accuracy|precision|recall|F1[- ]score|AUC|ROC)\b`,
		`(?i)\b(?:RMSE|MAE|MSE|error rate|performance)\b`,
		`\d+(?:\.\d+)?%`,
	)},
	{types.EntityMaterial, compileAll(
		`(?i)\b(?:dataset|corpus|benchmark|database)\b`,
		`(?i)\b(?:MNIST|ImageNet|COCO|TIMIT|LibriSpeech)\b`,
		`(?i)\b(?:training set|test set|validation set)\b`,
	)},
	{types.EntityTask, compileAll(
		`(?i)\b(?:recognition|detection|classification|prediction|estimation)\b`,
		`(?i)\b(?:speech recognition|image classification|object detection)\b`,
		`(?i)\b(?:problem|task|challenge)\b`,
	)},
	{types.EntityTool, compileAll(
		`(?i)\b(?:TensorFlow|PyTorch|Keras|scikit-learn|MATLAB)\b`,
		`(?i)\b(?:Python|Java|R)\b|C\+\+`,
		`(?i)\b(?:GPU|CPU|FPGA|embedded system)\b`,
	)},
}

func compileAll(exprs ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		res[i] = regexp.MustCompile(e)
	}
	return res
}

// EntityMatcher tags spans of scientific text with domain entity types
// using the fixed pattern table plus noun-phrase concept candidates.
// It is stateless and safe for concurrent use.
type EntityMatcher struct{}

// NewEntityMatcher returns an EntityMatcher.
func NewEntityMatcher() *EntityMatcher {
	return &EntityMatcher{}
}

// Extract finds scientific entities in text. Pattern matches carry the
// containing sentence as context; capitalized noun phrases of two or more
// tokens become concept entities at lower confidence. The result is
// deduplicated by (lowercased text, type), keeping the highest-confidence
// instance. Extract never fails: malformed or empty input yields an empty
// slice.
func (m *EntityMatcher) Extract(text string) []types.ScientificEntity {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	sents := SplitSentences(text)
	var entities []types.ScientificEntity

	for _, ps := range entityPatterns {
		for _, re := range ps.patterns {
			for _, loc := range re.FindAllStringIndex(text, -1) {
				entities = append(entities, types.ScientificEntity{
					Text:       text[loc[0]:loc[1]],
					Type:       ps.entityType,
					Context:    SentenceAt(sents, loc[0]),
					Confidence: patternConfidence,
				})
			}
		}
	}

	for _, s := range sents {
		for _, phrase := range nounPhraseCandidates(s.Text) {
			first, _ := utf8.DecodeRuneInString(phrase)
			if !unicode.IsUpper(first) {
				continue
			}
			entities = append(entities, types.ScientificEntity{
				Text:       phrase,
				Type:       types.EntityConcept,
				Context:    s.Text,
				Confidence: conceptConfidence,
			})
		}
	}

	return DedupeEntities(entities)
}

// DedupeEntities collapses entities sharing (lowercased text, type),
// keeping the highest-confidence instance. First-seen order is preserved
// so extraction stays deterministic.
func DedupeEntities(entities []types.ScientificEntity) []types.ScientificEntity {
	type key struct {
		text string
		typ  types.EntityType
	}

	index := make(map[key]int)
	out := make([]types.ScientificEntity, 0, len(entities))

	for _, e := range entities {
		k := key{strings.ToLower(e.Text), e.Type}
		if i, seen := index[k]; seen {
			if e.Confidence > out[i].Confidence {
				out[i] = e
			}
			continue
		}
		index[k] = len(out)
		out = append(out, e)
	}

	return out
}
