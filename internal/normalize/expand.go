package normalize

import (
	"regexp"
	"strings"

	"github.com/menulens/menulens/internal/domain/match"
)

var (
	// "만두샤브세트(만두+소고기+칼국수)" -> name "만두샤브세트", detail inside.
	reParen = regexp.MustCompile(`^\s*(.*?)\s*\(\s*(.*?)\s*\)\s*$`)
	// Conjunction-like separators inside parenthetical detail.
	reDetailSplit = regexp.MustCompile(`[+,/·ㆍ&|]`)
	// "물냉면/비빔냉면" style alternative listings.
	reSlashSplit = regexp.MustCompile(`\s*/\s*`)
)

const setHintWord = "세트"

// SplitParentheses separates a trailing parenthetical from the outer name.
// ok is false when the fragment has no parenthetical suffix.
func SplitParentheses(raw string) (name, detail string, ok bool) {
	m := reParen.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return strings.TrimSpace(raw), "", false
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
}

// SplitDetail breaks parenthetical content into detail tokens.
func SplitDetail(detail string) []string {
	var out []string
	for _, p := range reDetailSplit.Split(detail, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Expand turns one raw fragment into the fully prepared QueryFragment:
// parenthetical detail extracted, slash alternatives split into variants,
// every variant independently normalized. The normalized whole name is
// always kept as the first variant, so expansion can never lose the
// original reading. Variants are deduplicated preserving order.
func Expand(raw string) match.QueryFragment {
	name, detail, hasParen := SplitParentheses(raw)

	var candidates []string
	if whole := Normalize(name).Display; whole != "" {
		candidates = append(candidates, whole)
	}
	if strings.Contains(name, "/") {
		for _, part := range reSlashSplit.Split(name, -1) {
			if n := Normalize(part).Display; n != "" {
				candidates = append(candidates, n)
			}
		}
	}

	seen := make(map[string]struct{}, len(candidates))
	variants := make([]match.NameVariant, 0, len(candidates))
	for _, display := range candidates {
		if _, dup := seen[display]; dup {
			continue
		}
		seen[display] = struct{}{}
		variants = append(variants, match.NameVariant{
			Display: display,
			Compact: strings.ReplaceAll(display, " ", ""),
			JamoKey: JamoKey(display),
		})
	}

	var details []string
	if detail != "" {
		for _, p := range SplitDetail(detail) {
			if n := Normalize(p).Compact; n != "" {
				details = append(details, n)
			}
		}
	}

	isSet := strings.Contains(name, setHintWord) || hasParen
	return match.QueryFragment{
		Raw:          raw,
		Variants:     variants,
		DetailTokens: details,
		IsSet:        &isSet,
	}
}
