package match

import (
	"context"

	"github.com/menulens/menulens/internal/domain"
	domcat "github.com/menulens/menulens/internal/domain/catalog"
)

// Catalog is the read-only catalog contract (ISP).
type Catalog interface {
	Len() int
	Names() []string
	At(i int) domcat.Entry
	ExactMatch(compact string) (domcat.Entry, bool)
}

// VectorIndex scores a candidate id subset against a query embedding.
// The index is opaque and pre-populated; the service never writes to it.
type VectorIndex interface {
	Scores(ctx context.Context, query []float32, ids []string) (map[string]float64, error)
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
