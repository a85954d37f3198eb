// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import "strings"

// thematicEntry maps trigger keywords to a thematic tag.
type thematicEntry struct {
	keywords []string
	tag      string
}

// thematicLexicon is the fixed keyword-to-tag table, checked in order.
// Multi-label: every matching entry contributes its tag.
var thematicLexicon = []thematicEntry{
	{[]string{"speech", "voice", "audio"}, "Speech Processing"},
	{[]string{"recognition", "classification"}, "Pattern Recognition"},
	{[]string{"embedded", "portable", "device"}, "Embedded Systems"},
	{[]string{"assistive", "accessibility", "disability"}, "Assistive Technologies"},
	{[]string{"machine learning", "neural", "deep learning"}, "Machine Learning"},
}

// defaultThematicTag applies when no lexicon keyword matches.
const defaultThematicTag = "General Research"

// classifyThematic tags the paper by keyword membership over its title
// and abstract. Always returns at least one tag.
func classifyThematic(title, abstract string) []string {
	text := strings.ToLower(title + " " + abstract)

	var tags []string
	for _, entry := range thematicLexicon {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				tags = append(tags, entry.tag)
				break
			}
		}
	}

	if len(tags) == 0 {
		tags = append(tags, defaultThematicTag)
	}
	return tags
}
