// Package match runs the menu matching pipeline: lexical candidate
// generation, vector rerank scoped to those candidates, jamo filtering,
// weighted fusion and confidence gating, per query variant with keep-best
// reduction across variants.
package match

import (
	"context"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/menulens/menulens/internal/category"
	dommatch "github.com/menulens/menulens/internal/domain/match"
	"github.com/menulens/menulens/internal/hangul"
	"github.com/menulens/menulens/internal/lexical"
	"github.com/menulens/menulens/internal/metrics"
)

// Service resolves one OCR fragment against the catalog.
type Service struct {
	catalog Catalog
	vectors VectorIndex
	embed   Embedder
	rules   category.Rules
	cfg     Config
	logger  *zap.Logger
}

// New creates a match service.
func New(
	cat Catalog, vec VectorIndex, embed Embedder,
	rules category.Rules, cfg Config, logger *zap.Logger,
) *Service {
	return &Service{
		catalog: cat,
		vectors: vec,
		embed:   embed,
		rules:   rules,
		cfg:     cfg,
		logger:  logger,
	}
}

// Match resolves a query fragment to a catalog entry. It always returns a
// well-formed result; no input or backend condition is fatal.
func (s *Service) Match(ctx context.Context, frag dommatch.QueryFragment) dommatch.Result {
	start := time.Now()
	res := s.match(ctx, frag)
	metrics.MatchDuration.Observe(time.Since(start).Seconds())
	metrics.MatchRequestsTotal.WithLabelValues(string(res.Status)).Inc()
	return res
}

func (s *Service) match(ctx context.Context, frag dommatch.QueryFragment) dommatch.Result {
	if len(frag.Variants) == 0 {
		return notFound(reasonEmptyQuery)
	}

	var (
		best       []dommatch.Candidate
		bestVar    dommatch.NameVariant
		sawUsable  bool
		lastReason = reasonTooShort
	)

	for _, v := range frag.Variants {
		if utf8.RuneCountInString(v.Compact) < s.cfg.MinQueryLen {
			continue
		}
		sawUsable = true

		// exact-match fast path: a literal catalog name or stored variant
		// wins outright, independent of the vector store
		if entry, ok := s.catalog.ExactMatch(v.Compact); ok {
			cand := dommatch.Candidate{
				ID:          entry.ID(),
				Name:        entry.Name(),
				NameCompact: entry.NameCompact(),
				Ingredients: entry.Ingredients(),
				Allergens:   entry.Allergens(),
				Category:    entry.Category(),
				Lexical:     1.0,
				Fused:       maxFused,
			}
			return dommatch.Result{
				Status:      dommatch.Confirmed,
				UsedVariant: v.Display,
				Best:        &cand,
				Candidates:  []dommatch.Candidate{cand},
				Debug: &dommatch.Debug{
					Reason:     reasonExactMatch,
					ExactMatch: true,
				},
			}
		}

		cands, reason := s.evaluate(ctx, v, frag)
		if len(cands) == 0 {
			if reason != "" {
				lastReason = reason
			}
			continue
		}

		// keep the variant with the best top-1 fused score, first wins ties
		if best == nil || cands[0].Fused > best[0].Fused {
			best, bestVar = cands, v
		}
	}

	if best == nil {
		if !sawUsable {
			return notFound(reasonTooShort)
		}
		return notFound(lastReason)
	}

	return decide(best, bestVar.Display, bestVar.Compact, s.cfg)
}

// evaluate runs the classify → lexical → vector → jamo-filter → fuse chain
// for one variant. An empty result carries the reason for debug output.
func (s *Service) evaluate(
	ctx context.Context, v dommatch.NameVariant, frag dommatch.QueryFragment,
) ([]dommatch.Candidate, string) {
	catRes := s.rules.Classify(v.Display)

	hits := lexical.TopN(v.Compact, s.catalog.Names(), s.cfg.LexicalTopN, s.cfg.LexicalCutoff)
	if len(hits) == 0 {
		return nil, reasonNoCandidates
	}

	hits = s.categoryFilter(hits, catRes)

	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = s.catalog.At(h.Index).ID()
	}

	vecScores := s.vectorScores(ctx, v.Display, ids)

	queryJamo := hangul.Decompose(v.JamoKey)

	cands := make([]dommatch.Candidate, 0, len(hits))
	for _, h := range hits {
		entry := s.catalog.At(h.Index)

		jamoSim := hangul.Similarity(queryJamo, hangul.Decompose(entry.JamoKey()))
		if jamoSim < s.cfg.JamoFloor {
			continue
		}

		cands = append(cands, dommatch.Candidate{
			ID:          entry.ID(),
			Name:        entry.Name(),
			NameCompact: entry.NameCompact(),
			Ingredients: entry.Ingredients(),
			Allergens:   entry.Allergens(),
			Category:    entry.Category(),
			Lexical:     h.Score,
			Vector:      vecScores[entry.ID()],
			Jamo:        jamoSim,
		})
	}
	if len(cands) == 0 {
		return nil, reasonSubcharFloor
	}

	sig := querySignals{
		compact:  v.Compact,
		detail:   frag.DetailTokens,
		isSet:    frag.IsSet,
		category: catRes,
	}
	return fuse(cands, sig, s.cfg), ""
}

// categoryFilter drops candidates outside the classifier's category when
// the classification is confident, unless doing so would leave fewer than
// the configured minimum.
func (s *Service) categoryFilter(hits []lexical.Hit, catRes category.Result) []lexical.Hit {
	if catRes.Category == category.Other || catRes.Confidence < s.cfg.CategoryMinConfidence {
		return hits
	}

	kept := make([]lexical.Hit, 0, len(hits))
	for _, h := range hits {
		if s.catalog.At(h.Index).Category() == catRes.Category {
			kept = append(kept, h)
		}
	}
	if len(kept) < s.cfg.CategoryMinKeep {
		return hits
	}
	return kept
}

// vectorScores embeds the query and scores the candidate subset. Any
// failure degrades to an empty map; fusion then runs lexical-only.
func (s *Service) vectorScores(ctx context.Context, text string, ids []string) map[string]float64 {
	emb, err := s.embed.Embed(ctx, text)
	if err != nil {
		s.logger.Warn("Embedding failed, degrading to lexical-only scoring",
			zap.String("query", text), zap.Error(err))
		metrics.MatchVectorFallbacksTotal.Inc()
		return nil
	}

	scores, err := s.vectors.Scores(ctx, emb.Embedding, ids)
	if err != nil {
		s.logger.Warn("Vector scoring failed, degrading to lexical-only scoring",
			zap.Int("candidates", len(ids)), zap.Error(err))
		metrics.MatchVectorFallbacksTotal.Inc()
		return nil
	}
	return scores
}
