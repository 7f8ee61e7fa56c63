// Package trend implements the Trend Miner (spec §4.13, C12): topic-expansion search,
// snippet concatenation, LLM numeric extraction, and forecaster handoff.
package trend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"topicscope/internal/adapter"
	"topicscope/internal/domain/entity"
	"topicscope/internal/forecast"
	"topicscope/internal/llm"
	"topicscope/internal/orchestrate"
)

// FanoutPool is the hard concurrency cap for the query-expansion fan-out (spec §5:
// "trend miner 5").
const FanoutPool = 5

// snippetTopK is how many deduped snippets are concatenated into the LLM context
// (spec §4.13: "Concatenate top 300 snippets").
const snippetTopK = 300

// Result is the response shape of AnalyzeTrend (spec §4.13).
type Result struct {
	Historical []forecast.Point `json:"historical"`
	Forecast   []forecast.Point `json:"forecast"`
	Stats      forecast.Stats   `json:"stats"`
	Context    string           `json:"context"`
	Error      string           `json:"error,omitempty"`
}

// Miner wires the web adapter, synthesis LLM, and forecaster together.
type Miner struct {
	Web        *adapter.WebAdapter
	LLM        llm.Client
	Forecaster forecast.Forecaster
	Logger     *slog.Logger
}

// New builds a Miner with sane defaults for every collaborator not supplied.
func New(llmClient llm.Client, forecaster forecast.Forecaster, logger *slog.Logger) *Miner {
	if logger == nil {
		logger = slog.Default()
	}
	if llmClient == nil {
		llmClient = llm.NoOp{}
	}
	if forecaster == nil {
		forecaster = forecast.NoOp{}
	}
	return &Miner{
		Web:        adapter.NewWeb(logger),
		LLM:        llmClient,
		Forecaster: forecaster,
		Logger:     logger,
	}
}

// AnalyzeTrend implements spec §4.13's analyzeTrend(topic, horizonDays): expand the
// topic into query variants, fan out under a pool of 5, dedupe, concatenate the
// top-300 snippets, extract a numeric series via the LLM, and hand it to the
// forecaster. Returns entity.ErrNoData when the LLM extracts zero points — the core
// never invents a trend.
func (m *Miner) AnalyzeTrend(ctx context.Context, topic string, horizonDays int) (Result, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Result{}, entity.ErrValidation
	}

	hits := m.fanOut(ctx, expandQueries(topic, time.Now()))
	hits = orchestrate.Dedupe(hits)

	snippetCtx := concatenateSnippets(hits, snippetTopK)
	prompt := buildExtractionPrompt(topic, snippetCtx)

	raw, err := m.LLM.Complete(ctx, prompt)
	if err != nil {
		return Result{Context: snippetCtx, Error: "trend analysis is temporarily unavailable; please try again shortly"}, nil
	}

	points := extractNumericPoints(raw)
	if len(points) == 0 {
		return Result{Context: snippetCtx, Error: entity.ErrNoData.Error()}, entity.ErrNoData
	}

	fr, err := m.Forecaster.Forecast(ctx, points, horizonDays)
	if err != nil {
		m.Logger.Warn("trend: forecaster call failed", slog.Any("error", err))
		fr = forecast.Result{Historical: points}
	}
	return Result{
		Historical: fr.Historical,
		Forecast:   fr.Forecast,
		Stats:      fr.Stats,
		Context:    snippetCtx,
	}, nil
}

// fanOut runs every expanded query against the web adapter under a pool of
// FanoutPool, isolating per-query failures the same way the Orchestrator does.
func (m *Miner) fanOut(ctx context.Context, queries []string) []*entity.Hit {
	sem := semaphore.NewWeighted(FanoutPool)
	g, gctx := errgroup.WithContext(ctx)

	results := make([][]*entity.Hit, len(queries))
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return nil
			}
			defer sem.Release(1)

			hits, err := m.Web.Search(gctx, adapter.Request{Query: q, Limit: 10})
			if err != nil {
				m.Logger.Debug("trend: web adapter failed", slog.String("query", q), slog.Any("error", err))
				return nil
			}
			results[i] = hits
			return nil
		})
	}
	_ = g.Wait()

	var out []*entity.Hit
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

// concatenateSnippets builds the "[date] title | snippet" context lines spec §4.13
// describes, capped at topK hits.
func concatenateSnippets(hits []*entity.Hit, topK int) string {
	if len(hits) > topK {
		hits = hits[:topK]
	}
	lines := make([]string, 0, len(hits))
	for _, h := range hits {
		date := h.PublishedAt
		if date == "" {
			date = "unknown"
		}
		lines = append(lines, fmt.Sprintf("[%s] %s | %s", date, h.Title, h.Snippet))
	}
	return strings.Join(lines, "\n")
}

// buildExtractionPrompt assembles the strict numeric-extraction prompt (spec §4.13:
// "return [{date, count, summary}] JSON array, no prose").
func buildExtractionPrompt(topic, context string) string {
	return fmt.Sprintf(`Extract a time series of numeric data points about "%s" from the context below.

Return ONLY a JSON array of objects shaped exactly as [{"date": "YYYY-MM", "count": <integer>, "summary": "<short phrase>"}]. No prose, no explanation, no Markdown formatting outside the array itself.

Context:
%s`, topic, context)
}
