package normalize

import "regexp"

// Patterns that mark a fragment as something other than a menu item:
// prices, opening-hours notices, shop names. Matching these before the
// retrieval stages saves an embedding call per noise fragment.
var (
	rePrice  = regexp.MustCompile(`(\d[\d,]*\s*원)|(\d+\s*￦)|(?i)(\d+\s*KRW)`)
	reTime   = regexp.MustCompile(`\d{1,2}:\d{2}`)
	reNotice = regexp.MustCompile(`주문|셀프|포장|배달|키오스크|원산지|영업|휴무|공지|안내|전화|예약|매장|테이블|카드|현금|부가세`)
	reShop   = regexp.MustCompile(`(전문점|식당|카페|분식|\d+호점|\d+점)$`)
)

// Skip reasons reported for filtered fragments.
const (
	SkipEmpty     = "empty_after_normalize"
	SkipTooShort  = "too_short"
	SkipPrice     = "price_pattern"
	SkipTime      = "time_pattern"
	SkipNotice    = "notice_pattern"
	SkipShopName  = "shop_name_pattern"
	SkipLowHangul = "low_hangul_ratio"
)

// SkipReason decides whether a raw fragment should bypass matching
// entirely. Returns the reason and true when the fragment is noise.
func SkipReason(raw string, minLen int) (string, bool) {
	nf := Normalize(raw)
	if nf.Compact == "" {
		return SkipEmpty, true
	}
	if !IsMenuCandidate(nf.Compact, minLen) {
		return SkipTooShort, true
	}
	if rePrice.MatchString(raw) {
		return SkipPrice, true
	}
	if reTime.MatchString(raw) {
		return SkipTime, true
	}
	if reNotice.MatchString(raw) {
		return SkipNotice, true
	}
	if reShop.MatchString(raw) {
		return SkipShopName, true
	}
	if HangulRatio(raw) < 0.35 {
		return SkipLowHangul, true
	}
	return "", false
}
