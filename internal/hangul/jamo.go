// Package hangul decomposes Hangul syllable blocks into jamo sequences and
// scores jamo-level similarity. The jamo n-gram Jaccard signal stays high
// under the single-consonant/vowel substitutions OCR typically produces
// (꼬/코, 되/돼), where plain edit distance on syllables drops sharply.
package hangul

import "strings"

// Jamo tables indexed by the arithmetic decomposition of a syllable block
// (U+AC00..U+D7A3): block = 0xAC00 + cho*588 + jung*28 + jong.
var (
	choseong = []rune("ㄱㄲㄴㄷㄸㄹㅁㅂㅃㅅㅆㅇㅈㅉㅊㅋㅌㅍㅎ")

	jungseong = []rune("ㅏㅐㅑㅒㅓㅔㅕㅖㅗㅘㅙㅚㅛㅜㅝㅞㅟㅠㅡㅢㅣ")

	// Index 0 is the empty final.
	jongseong = []string{
		"", "ㄱ", "ㄲ", "ㄳ", "ㄴ", "ㄵ", "ㄶ", "ㄷ", "ㄹ", "ㄺ", "ㄻ", "ㄼ", "ㄽ",
		"ㄾ", "ㄿ", "ㅀ", "ㅁ", "ㅂ", "ㅄ", "ㅅ", "ㅆ", "ㅇ", "ㅈ", "ㅊ", "ㅋ", "ㅌ", "ㅍ", "ㅎ",
	}
)

const (
	syllableBase = 0xAC00
	syllableLast = 0xD7A3
)

// Decompose converts a string into its jamo sequence. Spaces are removed
// first so spacing differences never affect similarity. Non-Hangul runes
// pass through unchanged (normalization upstream removes most of them).
func Decompose(s string) string {
	var b strings.Builder
	for _, r := range strings.ReplaceAll(s, " ", "") {
		if r < syllableBase || r > syllableLast {
			b.WriteRune(r)
			continue
		}
		base := int(r - syllableBase)
		b.WriteRune(choseong[base/588])
		b.WriteRune(jungseong[(base%588)/28])
		if jong := jongseong[base%28]; jong != "" {
			b.WriteString(jong)
		}
	}
	return b.String()
}

// Bigrams returns the set of rune 2-grams of s. A string shorter than two
// runes yields itself as the only gram.
func Bigrams(s string) map[string]struct{} {
	runes := []rune(s)
	grams := make(map[string]struct{})
	if len(runes) == 0 {
		return grams
	}
	if len(runes) < 2 {
		grams[s] = struct{}{}
		return grams
	}
	for i := 0; i+2 <= len(runes); i++ {
		grams[string(runes[i:i+2])] = struct{}{}
	}
	return grams
}

// Similarity computes the Jaccard index of the jamo bigram sets of two
// already-decomposed strings. Empty input on either side scores 0.
func Similarity(aJamo, bJamo string) float64 {
	if aJamo == "" || bJamo == "" {
		return 0
	}
	a := Bigrams(aJamo)
	b := Bigrams(bJamo)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	inter := 0
	for g := range a {
		if _, ok := b[g]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
