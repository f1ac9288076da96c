package match

import (
	"context"

	"go.uber.org/zap"

	"github.com/menulens/menulens/internal/category"
	"github.com/menulens/menulens/internal/domain"
	domcat "github.com/menulens/menulens/internal/domain/catalog"
	"github.com/menulens/menulens/internal/normalize"
)

// memCatalog implements Catalog over an in-memory entry list.
type memCatalog struct {
	entries []domcat.Entry
	names   []string
	exact   map[string]int
}

func newCatalog(entries ...domcat.Entry) *memCatalog {
	c := &memCatalog{exact: make(map[string]int)}
	for _, e := range entries {
		idx := len(c.entries)
		c.entries = append(c.entries, e)
		c.names = append(c.names, e.NameCompact())
		if _, taken := c.exact[e.NameCompact()]; !taken {
			c.exact[e.NameCompact()] = idx
		}
		for _, v := range e.Variants() {
			if _, taken := c.exact[v]; !taken {
				c.exact[v] = idx
			}
		}
	}
	return c
}

func (c *memCatalog) Len() int              { return len(c.entries) }
func (c *memCatalog) Names() []string       { return c.names }
func (c *memCatalog) At(i int) domcat.Entry { return c.entries[i] }

func (c *memCatalog) ExactMatch(compact string) (domcat.Entry, bool) {
	idx, ok := c.exact[compact]
	if !ok {
		return domcat.Entry{}, false
	}
	return c.entries[idx], true
}

// entry builds a catalog entry the way the loader does, normalizing the
// display name and variants.
func entry(id, name, cat string, variants ...string) domcat.Entry {
	compactVariants := make([]string, 0, len(variants))
	for _, v := range variants {
		compactVariants = append(compactVariants, normalize.Compact(v))
	}
	return domcat.New(
		id, name,
		normalize.Compact(name),
		normalize.JamoKey(name),
		compactVariants,
		nil, nil,
		cat, 0.9,
	)
}

type mockEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

type mockVectors struct {
	scores map[string]float64
	err    error
	calls  int
}

func (m *mockVectors) Scores(_ context.Context, _ []float32, ids []string) (map[string]float64, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string]float64, len(ids))
	for _, id := range ids {
		if sc, ok := m.scores[id]; ok {
			out[id] = sc
		}
	}
	return out, nil
}

func newTestService(cat Catalog, vec VectorIndex, emb Embedder, cfg Config) *Service {
	return New(cat, vec, emb, category.DefaultRules(), cfg, zap.NewNop())
}
