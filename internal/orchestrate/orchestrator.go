package orchestrate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"topicscope/internal/adapter"
	"topicscope/internal/domain/entity"
	"topicscope/internal/enrich"
	"topicscope/internal/filter"
	"topicscope/internal/geo"
	httphandler "topicscope/internal/handler/http"
	"topicscope/internal/pinned"
	"topicscope/internal/rank"
	"topicscope/internal/topics"
)

// FanoutPool is the hard concurrency cap for the Orchestrator's adapter fan-out (spec
// §5: "orchestrator 10").
const FanoutPool = 10

// LowResultThreshold triggers a secondary, broader-parameter deep-discovery call when
// fewer than this many hits survive ranking (spec §5 "An explicit 'low results' rule").
const LowResultThreshold = 10

// Request is the single public operation's input (spec §4.8: "run(topic, intents,
// limit, timeFilter, keys)").
type Request struct {
	Topic            string
	Intents          []string
	Limit            int
	TimeFilter       string
	PaidSearchAPIKey string
	Region           string
	Lang             string
}

// Result is the single public operation's output (spec §4.8: "(hits, errors)").
type Result struct {
	Hits   []*entity.Hit
	Errors []*entity.AdapterError
}

// Orchestrator wires the full discovery pipeline (spec §4.8, C8): topic constraint,
// query expansion, bounded fan-out across Source Adapters, dedupe, filter, rank, and
// geo-tier, in that fixed order.
type Orchestrator struct {
	Topics  *topics.Manager
	Intents adapter.IntentSet

	Web      *adapter.WebAdapter
	News     *adapter.NewsAdapter
	Video    *adapter.VideoAdapter
	PaidWeb  func(apiKey string) *adapter.PaidWebAdapter

	Filter    FilterThreshold
	Ranker    *rank.Ranker
	Enricher  *enrich.Enricher
	Pinned    *pinned.List

	Logger *slog.Logger
}

// FilterThreshold is the minimum _relevance score, overridable per deployment (spec
// §4.4 default 5).
type FilterThreshold int

// New builds an Orchestrator with sane defaults for every collaborator not explicitly
// provided.
func New(topicMgr *topics.Manager, intents adapter.IntentSet, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		Topics:  topicMgr,
		Intents: intents,
		Web:     adapter.NewWeb(logger),
		News:    adapter.NewNews(),
		Video:   adapter.NewVideo(logger),
		PaidWeb: func(key string) *adapter.PaidWebAdapter { return adapter.NewPaidWeb(key, logger) },
		Filter:  filter.DefaultThreshold,
		Ranker:  rank.New(nil),
		Enricher: enrich.New(logger),
		Pinned:   pinned.Default(),
		Logger:   logger,
	}
}

// Run executes the full pipeline of spec §4.8 and returns the ranked, geo-tiered hit
// list plus any per-adapter failures. Every phase runs even when an earlier phase
// produced zero items or partial errors — only step 1 (validation) short-circuits.
func (o *Orchestrator) Run(ctx context.Context, req Request) Result {
	query := Sanitize(req.Topic)
	if query == "" {
		return Result{Errors: []*entity.AdapterError{{Intent: "validate", Message: "empty query after sanitization", Err: entity.ErrValidation}}}
	}

	query = o.applyTopicConstraint(query)

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}

	intents := req.Intents
	if len(intents) == 0 {
		intents = o.Intents.AllIntentNames()
	}
	expanded := o.Intents.Expand(query, intents)
	if len(expanded) == 0 {
		expanded = []string{query}
	}

	hits, errs := o.fanOut(ctx, expanded, req, limit)

	hits = Dedupe(hits)
	hits = filter.Apply(query, hits, int(o.Filter))
	hits = o.Ranker.Rank(ctx, query, hits)

	if len(hits) < LowResultThreshold {
		deepHits, deepErrs := o.deepDiscovery(ctx, query, req, limit)
		hits = Dedupe(append(hits, deepHits...))
		hits = filter.Apply(query, hits, int(o.Filter))
		hits = o.Ranker.Rank(ctx, query, hits)
		errs = append(errs, deepErrs...)
	}

	if o.Enricher != nil {
		o.Enricher.EnrichTop(ctx, hits)
	}
	o.applyPinned(hits)
	hits = geo.Sort(hits)

	return Result{Hits: hits, Errors: errs}
}

// applyTopicConstraint appends the Topic Manager's active-topic OR-clause when the
// query doesn't already mention one of them (spec §4.8 step 2).
func (o *Orchestrator) applyTopicConstraint(query string) string {
	if o.Topics == nil {
		return query
	}
	active := o.Topics.ActiveKeywords()
	if len(active) == 0 {
		return query
	}
	lowerQuery := toLower(query)
	for _, kw := range active {
		if containsFold(lowerQuery, kw) {
			return query
		}
	}
	clause := o.Topics.ActiveTopicQuery()
	if clause == "" {
		return query
	}
	return query + ` AND (` + clause + `)`
}

// engineFor implements spec §4.8 step 3: prefer the paid adapter when a key is
// supplied, else the free web adapter.
func (o *Orchestrator) engineFor(req Request) adapter.Adapter {
	if req.PaidSearchAPIKey != "" && o.PaidWeb != nil {
		return o.PaidWeb(req.PaidSearchAPIKey)
	}
	return o.Web
}

// fanOut runs one adapter task per expanded query across a bounded pool of FanoutPool
// workers (spec §4.8 step 5, §5). Per-task failures are isolated into the errors list;
// they never abort the request.
func (o *Orchestrator) fanOut(ctx context.Context, queries []string, req Request, limit int) ([]*entity.Hit, []*entity.AdapterError) {
	engine := o.engineFor(req)
	sem := semaphore.NewWeighted(FanoutPool)
	var mu sync.Mutex
	var hits []*entity.Hit
	var errs []*entity.AdapterError

	g, gctx := errgroup.WithContext(ctx)
	for _, q := range queries {
		q := q
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return nil
			}
			defer sem.Release(1)

			adapterReq := adapter.Request{Query: q, Region: req.Region, Recency: req.TimeFilter, Limit: limit, Lang: req.Lang}
			start := time.Now()
			res, err := engine.Search(gctx, adapterReq)
			httphandler.RecordAdapterLatency(engine.Name(), time.Since(start))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, &entity.AdapterError{
					Intent:  truncate(q, 40),
					Engine:  engine.Name(),
					Message: err.Error(),
					Err:     err,
				})
				return nil
			}
			for n, h := range res {
				h.SetInsertionOrder(len(hits) + n + 1)
			}
			hits = append(hits, res...)
			return nil
		})
	}
	_ = g.Wait() // task bodies never return a non-nil error; isolation happens inline
	return hits, errs
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "…"
	}
	return s
}

// deepDiscovery is the "low results" secondary call (spec §5): broader parameters
// (global region, no time filter, every intent) issued once when the primary pass
// under-delivers.
func (o *Orchestrator) deepDiscovery(ctx context.Context, query string, req Request, limit int) ([]*entity.Hit, []*entity.AdapterError) {
	broad := req
	broad.Region = ""
	broad.TimeFilter = ""
	expanded := o.Intents.Expand(query, o.Intents.AllIntentNames())
	if len(expanded) == 0 {
		expanded = []string{query}
	}
	return o.fanOut(ctx, expanded, broad, limit)
}

// applyPinned marks every hit whose title/source/snippet matches a pinned-entity token
// (spec §4.11); geo.Sort preserves relative order within each tier, so pinned dominance
// for request-scoped Hits is a display concern left to callers that choose to
// stable-sort again on Pinned — the Orchestrator's own contract (spec §4.8) only ranks
// and geo-tiers, it does not reorder by pin. Feed reads (C9/C10) are where pinned
// dominance is load-bearing (spec §8 "Priority dominance").
func (o *Orchestrator) applyPinned(hits []*entity.Hit) {
	if o.Pinned == nil {
		return
	}
	for _, h := range hits {
		h.Pinned = o.Pinned.Match(h.Title, h.Engine, h.Snippet)
	}
}

func toLower(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			r = r - 'A' + 'a'
		}
		out = append(out, r)
	}
	return string(out)
}

func containsFold(haystack, needle string) bool {
	return len(needle) > 0 && len(haystack) >= len(needle) && indexFold(haystack, toLower(needle)) >= 0
}

func indexFold(haystack, lowerNeedle string) int {
	for i := 0; i+len(lowerNeedle) <= len(haystack); i++ {
		if haystack[i:i+len(lowerNeedle)] == lowerNeedle {
			return i
		}
	}
	return -1
}
