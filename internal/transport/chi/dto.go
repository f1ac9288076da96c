package chi

import (
	dommatch "github.com/menulens/menulens/internal/domain/match"
	healthuc "github.com/menulens/menulens/internal/usecase/health"
)

// ErrorCode identifies an API error class.
type ErrorCode string

const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeValidationFailed ErrorCode = "validation_failed"
	CodeUnauthorized     ErrorCode = "unauthorized"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// FragmentRequest is one OCR text span submitted for matching. Box is
// optional positional metadata echoed back untouched.
type FragmentRequest struct {
	Text string `json:"text"`
	Box  []int  `json:"box,omitempty"`
}

// MatchRequest is the body of POST /v1/match.
type MatchRequest struct {
	Fragments []FragmentRequest `json:"fragments"`
}

// CandidateResponse is one scored catalog entry.
type CandidateResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Allergens   []string `json:"allergens,omitempty"`

	Lexical float64 `json:"lexical_score"`
	Vector  float64 `json:"vector_score"`
	Jamo    float64 `json:"jamo_score"`
	Fused   float64 `json:"fused_score"`
}

// DebugResponse carries per-decision diagnostics.
type DebugResponse struct {
	Reason      string  `json:"reason"`
	Threshold   float64 `json:"threshold,omitempty"`
	Margin      float64 `json:"margin,omitempty"`
	SecondScore float64 `json:"second_score,omitempty"`
	ExactMatch  bool    `json:"exact_match,omitempty"`
}

// FragmentResponse is the match outcome for one submitted fragment, in
// request order. A pre-filtered fragment reports NOT_FOUND with SkipReason
// set and no candidates.
type FragmentResponse struct {
	Text        string              `json:"text"`
	Box         []int               `json:"box,omitempty"`
	Status      string              `json:"status"`
	SkipReason  string              `json:"skip_reason,omitempty"`
	UsedVariant string              `json:"used_variant,omitempty"`
	Best        *CandidateResponse  `json:"best,omitempty"`
	Candidates  []CandidateResponse `json:"candidates,omitempty"`
	Debug       *DebugResponse      `json:"debug,omitempty"`
}

// MatchResponse is the body of a successful POST /v1/match.
type MatchResponse struct {
	Items []FragmentResponse `json:"items"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func candidateToDTO(c *dommatch.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:          c.ID,
		Name:        c.Name,
		Category:    c.Category,
		Ingredients: c.Ingredients,
		Allergens:   c.Allergens,
		Lexical:     c.Lexical,
		Vector:      c.Vector,
		Jamo:        c.Jamo,
		Fused:       c.Fused,
	}
}

func resultToDTO(text string, box []int, res dommatch.Result) FragmentResponse {
	out := FragmentResponse{
		Text:        text,
		Box:         box,
		Status:      string(res.Status),
		UsedVariant: res.UsedVariant,
	}

	if res.Best != nil {
		best := candidateToDTO(res.Best)
		out.Best = &best
	}

	if len(res.Candidates) > 0 {
		out.Candidates = make([]CandidateResponse, len(res.Candidates))
		for i := range res.Candidates {
			out.Candidates[i] = candidateToDTO(&res.Candidates[i])
		}
	}

	if res.Debug != nil {
		out.Debug = &DebugResponse{
			Reason:      res.Debug.Reason,
			Threshold:   res.Debug.Threshold,
			Margin:      res.Debug.Margin,
			SecondScore: res.Debug.SecondScore,
			ExactMatch:  res.Debug.ExactMatch,
		}
	}

	return out
}

func healthToDTO(r healthuc.Report) HealthResponse {
	checks := make(map[string]string, len(r.Checks))
	for k, v := range r.Checks {
		checks[k] = string(v)
	}
	return HealthResponse{Status: string(r.Status), Checks: checks}
}
