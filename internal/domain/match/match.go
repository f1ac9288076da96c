// Package match holds the request-scoped data types of the menu matching
// pipeline: the expanded query fragment going in, the scored candidates in
// flight, and the gated result coming out.
package match

// Status is the confidence class of a match outcome.
type Status string

const (
	// Confirmed means the top candidate cleared both the score threshold
	// and the top1-top2 margin.
	Confirmed Status = "CONFIRMED"
	// Ambiguous means the score threshold passed but the margin did not;
	// downstream consumers must not auto-substitute.
	Ambiguous Status = "AMBIGUOUS"
	// NotFound means no candidate survived gating.
	NotFound Status = "NOT_FOUND"
)

// NameVariant is one alternate reading of a fragment, pre-normalized.
type NameVariant struct {
	Display string
	Compact string
	JamoKey string
}

// QueryFragment is one OCR-recognized text span prepared for matching.
// Box is positional metadata carried through unmodified for downstream
// consumers; matching logic never reads it.
type QueryFragment struct {
	Raw          string
	Variants     []NameVariant
	DetailTokens []string
	IsSet        *bool
	Box          []int
}

// Candidate is a catalog entry under consideration for one query, with the
// per-stage score record. Candidates are request-local and discarded once
// the result is emitted.
type Candidate struct {
	ID          string
	Name        string
	NameCompact string
	Ingredients []string
	Allergens   []string
	Category    string

	Lexical       float64
	Vector        float64
	Jamo          float64
	DetailOverlap float64
	SetBonus      float64
	CategoryBonus float64
	Penalty       float64
	Fused         float64
}

// Debug carries per-decision diagnostics for audit output.
type Debug struct {
	Reason      string
	Threshold   float64
	Margin      float64
	SecondScore float64
	ExactMatch  bool
}

// Result is the gated outcome for one fragment.
// Best is non-nil exactly when Status != NotFound. Candidates are sorted
// by fused score descending, stable by catalog insertion order.
type Result struct {
	Status      Status
	UsedVariant string
	Best        *Candidate
	Candidates  []Candidate
	Debug       *Debug
}
