package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// CatalogCounter reports how many catalog entries are loaded.
type CatalogCounter interface {
	Len() int
}

// VectorCounter reports how many precomputed embeddings the index holds.
type VectorCounter interface {
	Count(ctx context.Context) (int, error)
}
