// Package sanitize strips HTML markup from model answers and search snippets.
package sanitize

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// tagPattern is the fallback used when the HTML parser rejects the input
var tagPattern = regexp.MustCompile(`<[^>]+>`)

// StripTags removes HTML tags and returns the remaining text, trimmed.
// Text without markup or entities is returned as is apart from trimming.
func StripTags(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return strings.TrimSpace(text)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return strings.TrimSpace(tagPattern.ReplaceAllString(text, ""))
	}
	return strings.TrimSpace(doc.Text())
}

// CleanAnswer prepares a generated answer for display: markup is removed and
// blank runs longer than one empty line are collapsed.
func CleanAnswer(text string) string {
	text = StripTags(text)
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		cleaned = append(cleaned, line)
	}
	return strings.Join(cleaned, "\n")
}
