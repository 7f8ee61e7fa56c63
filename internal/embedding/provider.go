// Package embedding supplies the optional dense-vector arm of the Hybrid Ranker
// (spec §4.5 C5): "if no embedding model is available, vector := 0 and the system
// operates in keyword-only mode." Provider is the seam a real embedding service plugs
// into; NoopProvider is the keyword-only default.
package embedding

import (
	"context"
	"math"

	"github.com/pgvector/pgvector-go"
)

// Provider computes a dense embedding vector for a piece of text. A nil error with a
// nil/empty vector is treated the same as ErrUnavailable by callers: keyword-only mode.
type Provider interface {
	Embed(ctx context.Context, text string) (pgvector.Vector, error)
}

// NoopProvider never produces an embedding. Ranking with NoopProvider degrades
// gracefully to keyword-only mode per spec §4.5 — it is the default when no embedding
// model is configured.
type NoopProvider struct{}

func (NoopProvider) Embed(context.Context, string) (pgvector.Vector, error) {
	return pgvector.Vector{}, nil
}

// CosineSimilarity computes cosine similarity between two embedding vectors. Returns 0
// for a zero-length vector on either side (treated as "no signal", never NaN).
func CosineSimilarity(a, b pgvector.Vector) float64 {
	av, bv := a.Slice(), b.Slice()
	if len(av) == 0 || len(bv) == 0 || len(av) != len(bv) {
		return 0
	}
	var dot, na, nb float64
	for i := range av {
		dot += float64(av[i]) * float64(bv[i])
		na += float64(av[i]) * float64(av[i])
		nb += float64(bv[i]) * float64(bv[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
