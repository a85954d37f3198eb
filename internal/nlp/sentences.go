// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package nlp

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/sentences"
	"github.com/clipperhouse/uax29/v2/words"
)

// Sentence is a tokenized sentence together with its byte span in the
// source text. Spans are contiguous and cover the whole input, so a match
// offset can be mapped back to its containing sentence.
type Sentence struct {
	// Text is the sentence with surrounding whitespace trimmed.
	Text string

	// Start and End bound the untrimmed segment, End exclusive.
	Start int
	End   int
}

// SplitSentences tokenizes text into sentences using Unicode UAX #29
// sentence segmentation. Segments that are empty after trimming are
// dropped. Never fails; empty input yields an empty slice.
func SplitSentences(text string) []Sentence {
	var out []Sentence
	offset := 0
	segs := sentences.FromString(text)
	for segs.Next() {
		seg := segs.Value()
		if t := strings.TrimSpace(seg); t != "" {
			out = append(out, Sentence{Text: t, Start: offset, End: offset + len(seg)})
		}
		offset += len(seg)
	}
	return out
}

// SentenceAt returns the trimmed text of the sentence whose span contains
// the given byte offset, or the empty string when the offset is out of
// range.
func SentenceAt(sents []Sentence, offset int) string {
	for _, s := range sents {
		if offset >= s.Start && offset < s.End {
			return s.Text
		}
	}
	return ""
}

// splitWords tokenizes text into word tokens using UAX #29 word
// segmentation, dropping whitespace and punctuation-only tokens.
func splitWords(text string) []string {
	var out []string
	toks := words.FromString(text)
	for toks.Next() {
		tok := toks.Value()
		if isWordToken(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// isWordToken reports whether a UAX #29 token contains at least one
// letter or digit.
func isWordToken(tok string) bool {
	for _, r := range tok {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
