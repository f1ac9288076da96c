package chi

import (
	"encoding/json"
	"fmt"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	dommatch "github.com/menulens/menulens/internal/domain/match"
	"github.com/menulens/menulens/internal/metrics"
	"github.com/menulens/menulens/internal/normalize"
	healthuc "github.com/menulens/menulens/internal/usecase/health"
	matchuc "github.com/menulens/menulens/internal/usecase/match"
)

// maxFragments bounds one request; a full menu photo rarely yields more.
const maxFragments = 200

// Server is the HTTP API surface.
type Server struct {
	matcher     *matchuc.Service
	health      *healthuc.Service
	minQueryLen int
	logger      *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(matcher *matchuc.Service, health *healthuc.Service, minQueryLen int, logger *zap.Logger) *Server {
	if minQueryLen <= 0 {
		minQueryLen = 2
	}
	return &Server{
		matcher:     matcher,
		health:      health,
		minQueryLen: minQueryLen,
		logger:      logger,
	}
}

// Router assembles the chi router with metrics and auth middleware.
func (s *Server) Router(apiKeys []string) http.Handler {
	r := chirouter.NewRouter()
	r.Use(metrics.Middleware())
	r.Use(BearerAuthMiddleware(apiKeys))

	r.Post("/v1/match", s.MatchFragments)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	return r
}

// MatchFragments handles POST /v1/match. Fragments are resolved
// independently and reported in request order; a fragment that trips the
// non-menu pre-filter skips the pipeline entirely.
func (s *Server) MatchFragments(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Fragments) == 0 || len(req.Fragments) > maxFragments {
		writeError(w, http.StatusBadRequest, CodeValidationFailed,
			fmt.Sprintf("fragments count must be between 1 and %d", maxFragments))
		return
	}

	items := make([]FragmentResponse, len(req.Fragments))
	for i, f := range req.Fragments {
		if reason, skip := normalize.SkipReason(f.Text, s.minQueryLen); skip {
			metrics.MatchPrefilterSkipsTotal.WithLabelValues(reason).Inc()
			items[i] = FragmentResponse{
				Text:       f.Text,
				Box:        f.Box,
				Status:     string(dommatch.NotFound),
				SkipReason: reason,
			}
			continue
		}

		frag := normalize.Expand(f.Text)
		frag.Box = f.Box
		res := s.matcher.Match(r.Context(), frag)
		items[i] = resultToDTO(f.Text, f.Box, res)
	}

	s.logger.Debug("match request served", zap.Int("fragments", len(items)))
	writeJSON(w, http.StatusOK, MatchResponse{Items: items})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthToDTO(report))
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}
