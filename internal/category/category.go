// Package category assigns a coarse cuisine category to a normalized menu
// fragment via weighted keyword rules. The tables are data, not control
// flow: new categories or domains plug in by swapping the Rules value.
package category

import "strings"

// Coarse category labels.
const (
	Rice          = "RICE"
	Noodle        = "NOODLE"
	SoupStew      = "SOUP_STEW"
	Meat          = "MEAT"
	Seafood       = "SEAFOOD"
	SnackStreet   = "SNACK_STREET"
	FriedCutlet   = "FRIED_CUTLET"
	Dumpling      = "DUMPLING"
	VegSalad      = "VEG_SALAD"
	DessertBakery = "DESSERT_BAKERY"
	Beverage      = "BEVERAGE"
	Other         = "OTHER"
)

const (
	strongWeight = 3.0
	weakWeight   = 1.0

	baseConfidence = 0.55
	confPerScore   = 0.10
	maxConfidence  = 0.97

	// Confidence reported when no keyword matched at all.
	fallbackConfidence = 0.30
)

// Rules holds the keyword tables and the tie-break priority order.
type Rules struct {
	Strong   map[string][]string
	Weak     map[string][]string
	Priority []string
}

// Result is the classification outcome.
type Result struct {
	Category   string
	Confidence float64
	Matched    []string
}

// DefaultRules returns the built-in Korean menu keyword tables.
func DefaultRules() Rules {
	return Rules{
		Strong: map[string][]string{
			Noodle:        {"냉면", "막국수", "쫄면", "칼국수", "수제비", "우동", "국수", "소면", "라면", "짜장면", "짬뽕", "파스타", "스파게티"},
			SoupStew:      {"순대국", "해장국", "곰탕", "설렁탕", "삼계탕", "감자탕", "전골", "찌개", "탕", "국", "샤브"},
			Rice:          {"비빔밥", "볶음밥", "덮밥", "김밥", "오므라이스", "카레", "주먹밥"},
			FriedCutlet:   {"돈까스", "돈가스", "카츠"},
			SnackStreet:   {"떡볶이", "순대", "어묵", "김말이", "핫도그", "튀김"},
			Dumpling:      {"만두", "교자", "딤섬"},
			Meat:          {"갈비", "삼겹", "목살", "불고기", "족발", "보쌈", "닭갈비", "치킨"},
			Seafood:       {"회", "사시미", "전복", "조개", "굴", "새우", "낙지", "문어", "오징어"},
			DessertBakery: {"빙수", "아이스크림", "케이크", "쿠키", "도넛", "마카롱", "떡", "빵"},
			Beverage:      {"아메리카노", "라떼", "커피", "스무디", "에이드", "주스"},
			VegSalad:      {"샐러드"},
		},
		Weak: map[string][]string{
			Rice:          {"정식", "세트", "특선", "백반"},
			Meat:          {"구이", "바베큐"},
			Seafood:       {"해물", "해산물"},
			DessertBakery: {"디저트"},
			Beverage:      {"음료"},
		},
		Priority: []string{
			FriedCutlet, Noodle, SoupStew, SnackStreet,
			Rice, Meat, Seafood, Dumpling, VegSalad, DessertBakery, Beverage,
		},
	}
}

// Classify scores every category against the normalized text and returns
// the winner with a calibrated confidence. Ties resolve by priority order.
// It never fails: unmatched text yields OTHER at low confidence, empty
// input yields OTHER at zero confidence.
func (r Rules) Classify(norm string) Result {
	if norm == "" {
		return Result{Category: Other, Confidence: 0}
	}

	scores := make(map[string]float64)
	matched := make(map[string][]string)

	scan := func(tables map[string][]string, weight float64) {
		for cat, kws := range tables {
			for _, kw := range kws {
				if strings.Contains(norm, kw) {
					scores[cat] += weight
					matched[cat] = append(matched[cat], kw)
				}
			}
		}
	}
	scan(r.Strong, strongWeight)
	scan(r.Weak, weakWeight)

	best, bestScore := Other, 0.0
	for _, cat := range r.Priority {
		if sc := scores[cat]; sc > bestScore {
			best, bestScore = cat, sc
		}
	}

	if bestScore <= 0 {
		return Result{Category: Other, Confidence: fallbackConfidence}
	}

	conf := baseConfidence + bestScore*confPerScore
	if conf > maxConfidence {
		conf = maxConfidence
	}
	return Result{Category: best, Confidence: conf, Matched: matched[best]}
}
