// Package normalize turns raw OCR menu text into the normalized forms the
// matching pipeline consumes: a display form (Hangul + single spaces), a
// compact form (no spaces) used for exact lookup, and a jamo key with
// generic culinary suffixes stripped so they do not dominate sub-character
// similarity.
package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	reNonHangulSpace = regexp.MustCompile(`[^가-힣\s]+`)
	reMultiSpace     = regexp.MustCompile(`\s+`)
)

// Generic trailing words (soup, stew, rice bowl, grill...) shared by many
// unrelated dishes. Longest first so 국밥 wins over 국.
var jamoKeySuffixes = []string{
	"국밥", "덮밥", "볶음밥", "전골", "찌개", "볶음", "구이", "무침", "조림", "튀김", "국", "탕", "밥",
}

// NormalForm is the normalized rendering of one text fragment.
type NormalForm struct {
	// Display keeps Hangul and single spaces.
	Display string
	// Compact is Display with all spaces removed.
	Compact string
}

// Normalize strips everything but Hangul, collapses whitespace runs and
// returns both normalized forms. Unparseable input yields empty forms,
// which callers must treat as "no candidate".
func Normalize(raw string) NormalForm {
	s := reNonHangulSpace.ReplaceAllString(strings.TrimSpace(raw), " ")
	s = strings.TrimSpace(reMultiSpace.ReplaceAllString(s, " "))
	return NormalForm{
		Display: s,
		Compact: strings.ReplaceAll(s, " ", ""),
	}
}

// Compact is shorthand for Normalize(raw).Compact.
func Compact(raw string) string {
	return Normalize(raw).Compact
}

// JamoKey returns the compact normalized form with at most one generic
// culinary suffix stripped, provided the remaining stem still has at least
// two syllables. "김치찌개" and "김치" then share a jamo key stem while
// "찌개" alone is left untouched.
func JamoKey(raw string) string {
	c := Compact(raw)
	for _, suf := range jamoKeySuffixes {
		if !strings.HasSuffix(c, suf) {
			continue
		}
		stem := strings.TrimSuffix(c, suf)
		if utf8.RuneCountInString(stem) >= 2 {
			return stem
		}
	}
	return c
}

// HangulRatio returns the fraction of runes in s that are Hangul syllables.
func HangulRatio(s string) float64 {
	if s == "" {
		return 0
	}
	total, hangul := 0, 0
	for _, r := range s {
		total++
		if r >= 0xAC00 && r <= 0xD7A3 {
			hangul++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(hangul) / float64(total)
}

// IsMenuCandidate reports whether a compact-normalized string is long
// enough to attempt matching at all.
func IsMenuCandidate(compact string, minLen int) bool {
	return utf8.RuneCountInString(compact) >= minLen
}
