package rag

import (
	"strings"
	"unicode"
)

// SplitSentences splits text into sentences on terminal punctuation.
// Common abbreviation shapes are not treated as sentence ends: a terminator
// followed by a lowercase letter ("e.g. something") or preceded by a lone
// capital letter ("Mr. Smith") keeps the sentence going.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if r != '.' && r != '!' && r != '?' {
			continue
		}

		if next, ok := nextNonSpace(runes, i+1); ok && unicode.IsLower(next) {
			continue
		}
		if isAbbreviationEnd(runes, i) {
			continue
		}

		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// nextNonSpace returns the first non-space rune at or after position i.
func nextNonSpace(runes []rune, i int) (rune, bool) {
	for ; i < len(runes); i++ {
		if !unicode.IsSpace(runes[i]) {
			return runes[i], true
		}
	}
	return 0, false
}

// isAbbreviationEnd reports whether the terminator at position i closes a
// single-capital abbreviation like "J." or "Mr"-style initials.
func isAbbreviationEnd(runes []rune, i int) bool {
	if i < 1 || !unicode.IsUpper(runes[i-1]) {
		return false
	}
	return i < 2 || unicode.IsSpace(runes[i-2])
}
