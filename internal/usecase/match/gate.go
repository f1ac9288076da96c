package match

import (
	"unicode/utf8"

	dommatch "github.com/menulens/menulens/internal/domain/match"
)

// Gate decision reasons recorded on Debug.Reason.
const (
	reasonExactMatch     = "exact_match"
	reasonEmptyQuery     = "empty_query"
	reasonTooShort       = "query_too_short"
	reasonNoCandidates   = "no_candidates"
	reasonSubcharFloor   = "all_below_subchar_floor"
	reasonBelowThreshold = "below_threshold"
	reasonMarginTooSmall = "margin_too_small"
	reasonConfirmed      = "confirmed"
)

// threshold returns the confirm threshold for a query of the given compact
// length. Short queries produce spurious high-similarity matches, so they
// require a much stricter bar. The length-specific bars tighten the base
// threshold and never relax it, even when an operator raises ConfirmThreshold
// above them.
func (c Config) threshold(compact string) float64 {
	switch n := utf8.RuneCountInString(compact); {
	case n <= 2:
		return max(c.ShortQueryThreshold, c.ConfirmThreshold)
	case n == 3:
		return max(c.ThreeCharThreshold, c.ConfirmThreshold)
	default:
		return c.ConfirmThreshold
	}
}

// decide applies the threshold and margin gates to fused, sorted
// candidates. It is a pure function of its inputs.
func decide(cands []dommatch.Candidate, usedVariant, compact string, cfg Config) dommatch.Result {
	if len(cands) == 0 {
		return notFound(reasonNoCandidates)
	}

	thr := cfg.threshold(compact)
	top := cands[0]

	var second float64
	if len(cands) > 1 {
		second = cands[1].Fused
	}
	margin := top.Fused - second

	debug := &dommatch.Debug{
		Threshold:   thr,
		Margin:      margin,
		SecondScore: second,
	}

	shown := cands
	if len(shown) > cfg.ResultTopK {
		shown = shown[:cfg.ResultTopK]
	}

	if top.Fused < thr {
		debug.Reason = reasonBelowThreshold
		return dommatch.Result{
			Status:      dommatch.NotFound,
			UsedVariant: usedVariant,
			Candidates:  shown,
			Debug:       debug,
		}
	}

	// fewer than 2 candidates satisfies the margin trivially
	if len(cands) > 1 && margin < cfg.MarginThreshold {
		debug.Reason = reasonMarginTooSmall
		best := top
		return dommatch.Result{
			Status:      dommatch.Ambiguous,
			UsedVariant: usedVariant,
			Best:        &best,
			Candidates:  shown,
			Debug:       debug,
		}
	}

	debug.Reason = reasonConfirmed
	best := top
	return dommatch.Result{
		Status:      dommatch.Confirmed,
		UsedVariant: usedVariant,
		Best:        &best,
		Candidates:  shown,
		Debug:       debug,
	}
}

func notFound(reason string) dommatch.Result {
	return dommatch.Result{
		Status: dommatch.NotFound,
		Debug:  &dommatch.Debug{Reason: reason},
	}
}
