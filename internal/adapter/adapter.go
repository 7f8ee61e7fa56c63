// Package adapter implements the Source Adapters (spec §4.3, C3): per-provider clients
// that each yield partially-populated Hits with at minimum title, url, source_type, and
// engine. The Orchestrator (internal/orchestrate) owns normalization, deduplication,
// filtering, ranking, and geo-tiering; an adapter's only job is to talk to one provider
// and come back with a flat list of candidates or an isolated failure.
package adapter

import (
	"context"

	"topicscope/internal/domain/entity"
)

// Request is the common shape every web/news/video adapter accepts (spec §4.3).
type Request struct {
	// Query is the raw (already topic-constrained, already-expanded) query text.
	Query string
	// Region is a provider region code, default "" (global), overridable to "in-en".
	Region string
	// Recency is an optional time filter: "d", "w", "m", or "y".
	Recency string
	// Limit caps the number of returned hits.
	Limit int
	// Lang is an optional language hint that, when set, disables the non-Latin-script
	// title filter (spec §4.3: "unless the caller passes a language hint").
	Lang string
}

// Adapter is the common interface every per-provider client implements. A failing
// Adapter must return a non-nil error describing the failure; the caller (the
// Orchestrator's fan-out) is responsible for isolating it into the request's errors
// list rather than aborting the whole request (spec §4.3 "Error semantics").
type Adapter interface {
	// Name identifies which engine produced the hits, recorded on Hit.Engine.
	Name() string
	Search(ctx context.Context, req Request) ([]*entity.Hit, error)
}

func clampLimit(n, limit int) int {
	if limit <= 0 || n < limit {
		return n
	}
	return limit
}
