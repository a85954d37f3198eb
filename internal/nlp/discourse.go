// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package nlp

import (
	"strings"

	"github.com/pdiddy/paper-collector/pkg/types"
)

// functionIndicators maps each rhetorical function to its indicator
// phrases. Each case-insensitive substring match contributes one unit to
// the function's score. The table is data, not code: swap or localize it
// without touching the classifier.
var functionIndicators = map[types.RhetoricalFunction][]string{
	types.FunctionBackground: {
		"previous", "prior", "existing", "traditional", "conventional",
		"literature", "research has shown", "studies have", "well-known",
	},
	types.FunctionObjective: {
		"we propose", "we present", "we introduce", "our goal", "our aim",
		"this paper", "this work", "we develop", "objective", "purpose",
	},
	types.FunctionMethod: {
		"we use", "we apply", "we implement", "algorithm", "approach",
		"methodology", "technique", "procedure", "process", "framework",
	},
	types.FunctionResult: {
		"results show", "we found", "we observed", "demonstrates",
		"achieves", "performance", "accuracy", "outperforms", "improvement",
	},
	types.FunctionConclusion: {
		"in conclusion", "we conclude", "in summary", "overall",
		"demonstrates that", "shows that", "indicates that",
	},
	types.FunctionFutureWork: {
		"future work", "future research", "future direction", "next step",
		"plan to", "will explore", "intend to",
	},
	types.FunctionLimitation: {
		"limitation", "constraint", "challenge", "drawback", "however",
		"unfortunately", "difficult", "cannot", "unable to",
	},
}

// Score weights: keyword matches count one unit each, section hints add a
// fixed bonus, and document position nudges the early/late functions.
const (
	hintBonus         = 2.0
	introHintBonus    = 1.0
	earlyPosBonus     = 0.5
	latePosBonus      = 0.5
	futureWorkBonus   = 0.3
	confidenceDivisor = 3.0
)

// DiscourseSegmenter splits a text block into sentences and labels each
// with its rhetorical function. The classifier is deterministic and
// stateless: identical input and hint always produce identical labels and
// confidences. Safe for concurrent use.
type DiscourseSegmenter struct{}

// NewDiscourseSegmenter returns a DiscourseSegmenter.
func NewDiscourseSegmenter() *DiscourseSegmenter {
	return &DiscourseSegmenter{}
}

// Segment tokenizes text into sentences and annotates each with the
// rhetorical function scored from keyword indicators, the optional
// section-type hint, and the sentence's position in the block.
func (d *DiscourseSegmenter) Segment(text, sectionHint string) []types.AnnotatedSentence {
	sents := SplitSentences(text)
	annotated := make([]types.AnnotatedSentence, 0, len(sents))

	for i, s := range sents {
		function, confidence := d.classify(s.Text, sectionHint, i, len(sents))
		annotated = append(annotated, types.AnnotatedSentence{
			Text:       s.Text,
			Function:   function,
			Confidence: confidence,
			Position:   i,
		})
	}

	return annotated
}

// classify scores one sentence against every rhetorical function and
// returns the argmax with a normalized confidence. Ties break in enum
// declaration order. A zero max score yields unknown with confidence 0.
func (d *DiscourseSegmenter) classify(sentence, sectionHint string, position, total int) (types.RhetoricalFunction, float64) {
	lower := strings.ToLower(sentence)
	scores := make(map[types.RhetoricalFunction]float64, len(types.RhetoricalFunctions))

	for function, indicators := range functionIndicators {
		for _, ind := range indicators {
			if strings.Contains(lower, ind) {
				scores[function]++
			}
		}
	}

	if hint := strings.ToLower(sectionHint); hint != "" {
		switch {
		case strings.Contains(hint, "method"):
			scores[types.FunctionMethod] += hintBonus
		case strings.Contains(hint, "result"):
			scores[types.FunctionResult] += hintBonus
		case strings.Contains(hint, "conclusion"):
			scores[types.FunctionConclusion] += hintBonus
		case strings.Contains(hint, "introduction"), strings.Contains(hint, "background"):
			scores[types.FunctionBackground] += introHintBonus
			scores[types.FunctionObjective] += introHintBonus
		}
	}

	if total < 1 {
		total = 1
	}
	relative := float64(position) / float64(total)
	if relative < 0.2 {
		scores[types.FunctionBackground] += earlyPosBonus
		scores[types.FunctionObjective] += earlyPosBonus
	} else if relative > 0.8 {
		scores[types.FunctionConclusion] += latePosBonus
		scores[types.FunctionFutureWork] += futureWorkBonus
	}

	best := types.FunctionUnknown
	var max float64
	for _, function := range types.RhetoricalFunctions {
		if scores[function] > max {
			max = scores[function]
			best = function
		}
	}

	if max == 0 {
		return types.FunctionUnknown, 0
	}
	confidence := max / confidenceDivisor
	if confidence > 1 {
		confidence = 1
	}
	return best, confidence
}
