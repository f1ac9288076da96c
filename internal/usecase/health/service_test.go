package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockEmbeddingChecker struct {
	err error
}

func (m *mockEmbeddingChecker) HealthCheck(_ context.Context) error { return m.err }

type mockCatalog struct {
	n int
}

func (m *mockCatalog) Len() int { return m.n }

type mockVectors struct {
	n   int
	err error
}

func (m *mockVectors) Count(_ context.Context) (int, error) { return m.n, m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockEmbeddingChecker{}, &mockCatalog{n: 120}, &mockVectors{n: 120})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	for _, name := range []string{"catalog", "database", "embedding", "vector_index"} {
		if r.Checks[name] != CheckOK {
			t.Errorf("expected %s %q, got %q", name, CheckOK, r.Checks[name])
		}
	}
}

func TestCheck_DBErrorDegrades(t *testing.T) {
	svc := New(&mockDBPinger{err: errors.New("conn refused")}, &mockEmbeddingChecker{}, &mockCatalog{n: 10}, nil)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks["database"])
	}
	if r.Checks["catalog"] != CheckOK {
		t.Errorf("expected catalog %q, got %q", CheckOK, r.Checks["catalog"])
	}
}

func TestCheck_EmbeddingErrorDegrades(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockEmbeddingChecker{err: errors.New("timeout")}, &mockCatalog{n: 10}, &mockVectors{n: 10})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["embedding"] != CheckError {
		t.Errorf("expected embedding %q, got %q", CheckError, r.Checks["embedding"])
	}
}

func TestCheck_EmptyCatalogUnhealthy(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockEmbeddingChecker{}, &mockCatalog{n: 0}, &mockVectors{n: 10})
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks["catalog"] != CheckError {
		t.Errorf("expected catalog %q, got %q", CheckError, r.Checks["catalog"])
	}
}

func TestCheck_EmptyVectorIndexDegrades(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockEmbeddingChecker{}, &mockCatalog{n: 10}, &mockVectors{n: 0})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["vector_index"] != CheckError {
		t.Errorf("expected vector_index %q, got %q", CheckError, r.Checks["vector_index"])
	}
}

func TestCheck_VectorCountErrorDegrades(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockEmbeddingChecker{}, &mockCatalog{n: 10}, &mockVectors{err: errors.New("scan failed")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
}

func TestCheck_OptionalChecksAbsentWhenNil(t *testing.T) {
	svc := New(&mockDBPinger{}, nil, &mockCatalog{n: 10}, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["embedding"]; ok {
		t.Error("embedding check should be absent when embedding is nil")
	}
	if _, ok := r.Checks["vector_index"]; ok {
		t.Error("vector_index check should be absent when vectors is nil")
	}
}
