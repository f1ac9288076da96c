// Package vector scores catalog entries against a query embedding. Entry
// embeddings are precomputed by the offline index builder and stored as
// packed little-endian float32 values, one key per entry.
package vector

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/menulens/menulens/internal/domain"
)

// store is the consumer interface for the embedding store (ISP).
type store interface {
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/match.VectorIndex.
type Repo struct {
	store store
}

// New creates a vector repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Scores computes cosine similarity between the query vector and the stored
// embeddings of the given entry ids. Entries with no stored embedding or a
// dimension mismatch are omitted from the result.
func (r *Repo) Scores(ctx context.Context, query []float32, ids []string) (map[string]float64, error) {
	if len(query) == 0 || len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = embKey(id)
	}

	raws, err := r.store.GetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch embeddings: %w", domain.ErrVectorUnavailable, err)
	}

	scores := make(map[string]float64, len(ids))
	for i, raw := range raws {
		if raw == nil {
			continue
		}
		vec, err := bytesToVector(raw)
		if err != nil || len(vec) != len(query) {
			continue
		}
		scores[ids[i]] = cosine(query, vec)
	}
	return scores, nil
}

// Meta returns the index metadata written by the offline builder
// (model, dimension). An empty map means no index has been built.
func (r *Repo) Meta(ctx context.Context) (map[string]string, error) {
	m, err := r.store.HGetAll(ctx, metaKey())
	if err != nil {
		return nil, fmt.Errorf("index meta: %w", err)
	}
	return m, nil
}

// Count returns the number of stored entry embeddings.
func (r *Repo) Count(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, embKey("*"))
	if err != nil {
		return 0, fmt.Errorf("count embeddings: %w", err)
	}
	return len(keys), nil
}

func embKey(id string) string {
	return domain.KeyPrefix + "emb:" + id
}

func metaKey() string {
	return domain.KeyPrefix + "index:meta"
}

// VectorToBytes packs a float32 vector into little-endian bytes, the
// storage format of the offline index builder.
func VectorToBytes(vec []float32) []byte {
	out := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

func bytesToVector(raw []byte) ([]float32, error) {
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("invalid embedding length %d", len(raw))
	}
	vec := make([]float32, len(raw)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return vec, nil
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
