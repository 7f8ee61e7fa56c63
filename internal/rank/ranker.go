package rank

import (
	"context"
	"sort"

	"topicscope/internal/domain/entity"
	"topicscope/internal/embedding"
)

// Weights are the composite scoring coefficients of spec §4.5:
// score = 0.45*bm25 + 0.30*vector + 0.15*quality - 0.50*penalty.
const (
	WeightBM25    = 0.45
	WeightVector  = 0.30
	WeightQuality = 0.15
	WeightPenalty = 0.50
)

// Ranker computes the hybrid score for a candidate set and sorts it descending, with
// ties broken by original insertion order (stable sort).
type Ranker struct {
	Embedder embedding.Provider
}

// New builds a Ranker. A nil Embedder defaults to keyword-only mode
// (embedding.NoopProvider).
func New(embedder embedding.Provider) *Ranker {
	if embedder == nil {
		embedder = embedding.NoopProvider{}
	}
	return &Ranker{Embedder: embedder}
}

// Rank scores, sorts, and returns hits in descending hybrid-score order. The input
// slice's order is treated as insertion order if SetInsertionOrder has not already
// been called on each hit.
func (r *Ranker) Rank(ctx context.Context, query string, hits []*entity.Hit) []*entity.Hit {
	if len(hits) == 0 {
		return hits
	}

	for i, h := range hits {
		if h.InsertionOrder() == 0 {
			h.SetInsertionOrder(i + 1) // 1-based so a never-set hit (0) sorts first, not last
		}
	}

	documents := make([]string, len(hits))
	for i, h := range hits {
		documents[i] = h.Title + " " + h.Snippet
	}
	corpus := NewBM25Corpus(documents)

	rawBM25 := make([]float64, len(hits))
	for i := range hits {
		rawBM25[i] = corpus.Score(i, query)
	}
	normBM25 := MinMaxNormalize(rawBM25)

	rawVector := r.computeVectorScores(ctx, query, hits)
	normVector := MinMaxNormalize(rawVector)

	for i, h := range hits {
		h.BM25 = normBM25[i]
		h.Vector = normVector[i]
		h.Quality = Quality(h.URL, h.Snippet)
		h.Penalty = Penalty(h.Title)
		h.Hybrid = WeightBM25*h.BM25 + WeightVector*h.Vector + WeightQuality*h.Quality - WeightPenalty*h.Penalty
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Hybrid != hits[j].Hybrid {
			return hits[i].Hybrid > hits[j].Hybrid
		}
		return hits[i].InsertionOrder() < hits[j].InsertionOrder()
	})
	return hits
}

// computeVectorScores embeds the query once and each hit's text, returning raw cosine
// similarities. Any embedding failure (including the NoopProvider default) yields an
// all-zero slice, which MinMaxNormalize maps to all-zero — keyword-only mode, exactly
// as spec §4.5 requires.
func (r *Ranker) computeVectorScores(ctx context.Context, query string, hits []*entity.Hit) []float64 {
	out := make([]float64, len(hits))
	queryVec, err := r.Embedder.Embed(ctx, query)
	if err != nil || len(queryVec.Slice()) == 0 {
		return out
	}
	for i, h := range hits {
		hitVec, err := r.Embedder.Embed(ctx, h.Title+" "+h.Snippet)
		if err != nil || len(hitVec.Slice()) == 0 {
			continue
		}
		out[i] = embedding.CosineSimilarity(queryVec, hitVec)
	}
	return out
}
