package match

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/menulens/menulens/internal/category"
	dommatch "github.com/menulens/menulens/internal/domain/match"
	"github.com/menulens/menulens/internal/lexical"
)

// genericWords are bare category words that should never win on their own;
// a catalog entry whose whole compact name is one of these is penalized.
var genericWords = map[string]struct{}{
	"국": {}, "탕": {}, "찌개": {}, "전골": {},
	"밥": {}, "면": {}, "고기": {}, "구이": {},
	"볶음": {}, "튀김": {}, "요리": {}, "안주": {},
	"세트": {}, "정식": {}, "특선": {}, "식사": {}, "메뉴": {},
}

// setWords mark an entry name as a set/combo listing.
var setWords = []string{"세트", "정식", "모듬", "모둠", "코스"}

// detailOverlapCap bounds how many detail tokens contribute to the
// overlap signal.
const detailOverlapCap = 5

// querySignals carries the per-variant inputs to fusion.
type querySignals struct {
	compact  string
	detail   []string
	isSet    *bool
	category category.Result
}

// fuse computes the weighted combination of all similarity signals per
// candidate and returns the slice sorted descending by fused score, ties
// broken by catalog insertion order (stable).
func fuse(cands []dommatch.Candidate, sig querySignals, cfg Config) []dommatch.Candidate {
	w := cfg.Weights

	for i := range cands {
		c := &cands[i]

		var exact, contain float64
		if c.NameCompact == sig.compact {
			exact = 1.0
		}
		if exact == 0 && c.NameCompact != "" && sig.compact != "" &&
			(strings.Contains(c.NameCompact, sig.compact) || strings.Contains(sig.compact, c.NameCompact)) {
			contain = 1.0
		}
		seq := lexical.SequenceRatio(sig.compact, c.NameCompact)

		c.DetailOverlap = detailOverlap(sig.detail, c.Ingredients)
		c.SetBonus = setSignal(sig.isSet, c.NameCompact)
		c.CategoryBonus = categorySignal(sig.category, c.Category, cfg.CategoryMinConfidence)
		c.Penalty = penalty(c.NameCompact, w)

		fused := w.Vector*c.Vector +
			w.Exact*exact +
			w.Contain*contain +
			w.Sequence*seq +
			w.Jamo*c.Jamo +
			w.Detail*c.DetailOverlap +
			w.Set*c.SetBonus +
			w.Category*c.CategoryBonus -
			c.Penalty

		if fused < 0 {
			fused = 0
		}
		if fused > maxFused {
			fused = maxFused
		}
		c.Fused = fused
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Fused > cands[j].Fused
	})
	return cands
}

// detailOverlap is the fraction of query detail tokens found as substrings
// of the candidate's ingredient tokens, over at most detailOverlapCap tokens.
func detailOverlap(detail, ingredients []string) float64 {
	if len(detail) == 0 || len(ingredients) == 0 {
		return 0
	}

	considered := len(detail)
	if considered > detailOverlapCap {
		considered = detailOverlapCap
	}

	matched := 0
	for _, tok := range detail[:considered] {
		for _, ing := range ingredients {
			if strings.Contains(ing, tok) || strings.Contains(tok, ing) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(considered)
}

// setSignal rewards a set-hinted query landing on a set-named candidate
// and penalizes a non-set query landing on one. A plain candidate name is
// neutral either way, as is an absent hint; only set-indicating words in
// the candidate carry signal.
func setSignal(isSet *bool, nameCompact string) float64 {
	if isSet == nil {
		return 0
	}

	candIsSet := false
	for _, w := range setWords {
		if strings.Contains(nameCompact, w) {
			candIsSet = true
			break
		}
	}
	if !candIsSet {
		return 0
	}

	if *isSet {
		return 1.0
	}
	return -0.5
}

func categorySignal(q category.Result, candCategory string, minConf float64) float64 {
	if q.Category == category.Other || q.Confidence < minConf {
		return 0
	}
	if q.Category == candCategory {
		return 1.0
	}
	return 0
}

func penalty(nameCompact string, w Weights) float64 {
	var p float64
	if _, generic := genericWords[nameCompact]; generic {
		p += w.GenericPenalty
	}
	if utf8.RuneCountInString(nameCompact) <= 2 {
		p += w.TooShortPenalty
	}
	return p
}
