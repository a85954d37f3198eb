// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package nlp

import (
	"sort"
	"strings"

	"github.com/pdiddy/paper-collector/pkg/types"
)

// DefaultMaxPhrases bounds key-phrase output when the caller passes a
// non-positive limit.
const DefaultMaxPhrases = 20

// KeyPhraseExtractor surfaces salient terminology by scoring noun-phrase
// candidates purely by occurrence frequency. There is no corpus-level
// normalization. Stateless and safe for concurrent use.
type KeyPhraseExtractor struct{}

// NewKeyPhraseExtractor returns a KeyPhraseExtractor.
func NewKeyPhraseExtractor() *KeyPhraseExtractor {
	return &KeyPhraseExtractor{}
}

// Extract returns up to maxPhrases key phrases sorted by descending
// frequency, ties broken by first appearance in the text. Candidates are
// noun-phrase spans of at least two tokens; phrases made entirely of stop
// words are discarded.
func (k *KeyPhraseExtractor) Extract(text string, maxPhrases int) []types.KeyPhrase {
	if maxPhrases <= 0 {
		maxPhrases = DefaultMaxPhrases
	}

	scores := make(map[string]float64)
	firstSeen := make(map[string]int)
	order := 0

	for _, s := range SplitSentences(text) {
		for _, phrase := range nounPhraseCandidates(s.Text) {
			lower := strings.ToLower(phrase)
			if allStopwords(lower) {
				continue
			}
			if _, seen := scores[lower]; !seen {
				firstSeen[lower] = order
				order++
			}
			scores[lower]++
		}
	}

	phrases := make([]types.KeyPhrase, 0, len(scores))
	for text, score := range scores {
		phrases = append(phrases, types.KeyPhrase{Text: text, Score: score})
	}
	sort.Slice(phrases, func(i, j int) bool {
		if phrases[i].Score != phrases[j].Score {
			return phrases[i].Score > phrases[j].Score
		}
		return firstSeen[phrases[i].Text] < firstSeen[phrases[j].Text]
	})

	if len(phrases) > maxPhrases {
		phrases = phrases[:maxPhrases]
	}
	return phrases
}
