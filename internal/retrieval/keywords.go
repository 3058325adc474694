// Package retrieval provides the in-memory keyword index over the classification
// corpus and the frequency-scored retriever built on top of it.
package retrieval

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// MinKeywordLength is the minimum keyword length in runes
const MinKeywordLength = 2

// Keywords extracts the unique keywords of text in first-seen order.
// Text is NFC-normalized and case-folded, every rune that is not a letter,
// number, mark, underscore or space becomes a separator, and tokens shorter
// than MinKeywordLength are dropped. The index and the query path must both
// use this function.
func Keywords(text string) []string {
	// A Caser is stateful, so one is made per call.
	text = cases.Fold().String(norm.NFC.String(text))
	cleaned := strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, text)

	fields := strings.Fields(cleaned)
	keywords := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, word := range fields {
		if utf8.RuneCountInString(word) < MinKeywordLength || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
	}
	return keywords
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}
