package match

// Config holds the numeric knobs of the matching pipeline. Defaults are
// tuned against the reference catalog; deployments override them via the
// application config.
type Config struct {
	MinQueryLen int

	LexicalTopN   int
	LexicalCutoff float64
	ResultTopK    int

	ConfirmThreshold    float64
	ShortQueryThreshold float64 // at <=2 compact chars
	ThreeCharThreshold  float64 // at exactly 3 compact chars
	MarginThreshold     float64
	JamoFloor           float64

	CategoryMinConfidence float64
	CategoryMinKeep       int

	Weights Weights
}

// Weights is the fusion policy: one positive weight per signal, penalties
// subtracted, fused score clamped to [0, maxFused].
type Weights struct {
	Vector   float64
	Exact    float64
	Contain  float64
	Sequence float64
	Jamo     float64
	Detail   float64
	Set      float64
	Category float64

	GenericPenalty  float64
	TooShortPenalty float64
}

// maxFused is the fused score clamp ceiling; the exact-match fast path
// reports this value directly.
const maxFused = 2.0

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		MinQueryLen:           2,
		LexicalTopN:           200,
		LexicalCutoff:         0.40,
		ResultTopK:            5,
		ConfirmThreshold:      0.90,
		ShortQueryThreshold:   0.985,
		ThreeCharThreshold:    0.96,
		MarginThreshold:       0.05,
		JamoFloor:             0.22,
		CategoryMinConfidence: 0.85,
		CategoryMinKeep:       2,
		Weights: Weights{
			Vector:          0.65,
			Exact:           0.40,
			Contain:         0.22,
			Sequence:        0.18,
			Jamo:            0.10,
			Detail:          0.10,
			Set:             0.08,
			Category:        0.05,
			GenericPenalty:  0.20,
			TooShortPenalty: 0.10,
		},
	}
}
