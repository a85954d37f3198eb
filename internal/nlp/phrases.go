// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package nlp

import "strings"

// nounPhraseCandidates returns noun-phrase-like spans within one sentence:
// maximal runs of non-stopword word tokens, at least two tokens long.
// Stop words act as chunk boundaries, approximating a noun-chunk parse.
func nounPhraseCandidates(sentence string) []string {
	var out []string
	var run []string

	flush := func() {
		if len(run) >= 2 {
			out = append(out, strings.Join(run, " "))
		}
		run = run[:0]
	}

	for _, tok := range splitWords(sentence) {
		if isStopword(tok) {
			flush()
			continue
		}
		run = append(run, tok)
	}
	flush()

	return out
}

// allStopwords reports whether every token of the phrase is a stop word.
func allStopwords(phrase string) bool {
	for _, tok := range strings.Fields(phrase) {
		if !isStopword(tok) {
			return false
		}
	}
	return true
}
