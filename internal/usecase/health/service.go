package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure; matching still works lexical-only.
	Degraded Status = "degraded"
	// Unhealthy indicates the service cannot match at all.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db        DBPinger
	embedding EmbeddingChecker
	catalog   CatalogCounter
	vectors   VectorCounter
}

// New creates a Service. embedding and vectors can be nil.
func New(db DBPinger, embedding EmbeddingChecker, catalog CatalogCounter, vectors VectorCounter) *Service {
	return &Service{db: db, embedding: embedding, catalog: catalog, vectors: vectors}
}

// Check runs health checks against all components. An empty catalog is
// Unhealthy because no query can ever match; database and embedding
// failures only degrade the service.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	catalogEmpty := s.catalog.Len() == 0
	if catalogEmpty {
		checks["catalog"] = CheckError
	} else {
		checks["catalog"] = CheckOK
	}

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
		} else {
			checks["embedding"] = CheckOK
		}
	}

	if s.vectors != nil {
		if n, err := s.vectors.Count(ctx); err != nil || n == 0 {
			checks["vector_index"] = CheckError
		} else {
			checks["vector_index"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	if catalogEmpty {
		status = Unhealthy
	}

	return Report{Status: status, Checks: checks}
}
