// Package hscode extracts HS codes from free text and resolves their
// section, heading and subheading explanations from the explanatory notes.
package hscode

import (
	"regexp"
	"strings"
	"unicode"
)

// codePattern matches an optional "HS" prefix, four digits and up to three
// further two-digit groups separated by '.' or '-'.
var codePattern = regexp.MustCompile(`(?i)\b(?:HS)?\s*\d{4}(?:[.-]\d{2}(?:[.-]\d{2}(?:[.-]\d{2})?)?)?\b`)

// ExtractCodes returns the digits-only codes found in text, first occurrence first
func ExtractCodes(text string) []string {
	matches := codePattern.FindAllString(text, -1)
	codes := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, raw := range matches {
		code := digitsOnly(raw)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return codes
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// Format renders a digits-only code in the dotted notation used by the
// explanatory notes: "8517" stays as is, "851762" becomes "8517.62" and
// longer national codes keep their tail after a dash ("8517.62-1000").
// Input that is not a plain code of at least four digits is returned unchanged.
func Format(code string) string {
	if len(code) < 4 || digitsOnly(code) != code {
		return code
	}
	switch {
	case len(code) <= 4:
		return code
	case len(code) <= 6:
		return code[:4] + "." + code[4:]
	default:
		return code[:4] + "." + code[4:6] + "-" + code[6:]
	}
}
