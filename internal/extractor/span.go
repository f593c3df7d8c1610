package extractor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"joblocator/internal/domain"
)

// LocateSpan finds answer inside text and returns its rune offsets, trying an exact
// match first and a case-insensitive one second. It returns nil when the answer is
// absent or cannot be found verbatim.
func LocateSpan(text, answer string) *domain.Span {
	if domain.IsAbsentAnswer(answer) {
		return nil
	}

	if i := strings.Index(text, answer); i >= 0 {
		start := utf8.RuneCountInString(text[:i])
		return &domain.Span{Start: start, End: start + utf8.RuneCountInString(answer)}
	}

	// Folding rune by rune keeps offsets aligned with the original text.
	haystack := lowerRunes(text)
	needle := lowerRunes(answer)
	if i := indexRunes(haystack, needle); i >= 0 {
		return &domain.Span{Start: i, End: i + len(needle)}
	}
	return nil
}

func lowerRunes(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

func indexRunes(haystack, needle []rune) int {
	n := len(needle)
	if n == 0 || n > len(haystack) {
		return -1
	}
outer:
	for i := 0; i+n <= len(haystack); i++ {
		for j := 0; j < n; j++ {
			if haystack[i+j] != needle[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}
