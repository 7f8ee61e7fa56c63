// Package legal implements the Legal Fan-Out (spec §4.12, C11): a three-way
// bounded-parallel search across statute, procedure, and news registries, synthesized
// into a structured Markdown answer by an external LLM.
package legal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"topicscope/internal/adapter"
	"topicscope/internal/domain/entity"
	"topicscope/internal/llm"
	"topicscope/internal/orchestrate"
	"topicscope/internal/topics"
)

// FanoutPool is the hard concurrency cap for the three-adapter-class fan-out (spec §5:
// "legal fan-out 3").
const FanoutPool = 3

const (
	actsLimit       = 5
	proceduresLimit = 5
	newsLimit       = 3
	regionIndia     = "in-en"
)

// Result is the response shape of Ask (spec §4.12).
type Result struct {
	Acts       []*entity.Hit `json:"acts"`
	Procedures []*entity.Hit `json:"procedures"`
	News       []*entity.Hit `json:"news"`
	Answer     string        `json:"answer"`
	AudioVoice string        `json:"audio_voice,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// Asker wires the three adapter classes and the synthesis LLM together.
type Asker struct {
	Web    *adapter.WebAdapter
	News   *adapter.NewsAdapter
	LLM    llm.Client
	Topics *topics.Manager
	Logger *slog.Logger
}

// New builds an Asker with sane defaults for every collaborator not supplied.
func New(llmClient llm.Client, topicMgr *topics.Manager, logger *slog.Logger) *Asker {
	if logger == nil {
		logger = slog.Default()
	}
	if llmClient == nil {
		llmClient = llm.NoOp{}
	}
	return &Asker{
		Web:    adapter.NewWeb(logger),
		News:   adapter.NewNews(),
		LLM:    llmClient,
		Topics: topicMgr,
		Logger: logger,
	}
}

// Ask implements spec §4.12's ask(query, lang): translate if needed, append active
// topic tokens, fan out to acts/procedures/news under a pool of 3, dedupe each class
// by URL, then synthesize a structured Markdown answer.
func (a *Asker) Ask(ctx context.Context, query, lang string) (*Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, entity.ErrValidation
	}

	translated, err := a.translateIfNeeded(ctx, query, lang)
	if err != nil {
		a.Logger.Warn("legal: translation failed, searching with original query", slog.Any("error", err))
		translated = query
	}
	translated = a.appendTopicTokens(translated)

	acts, procs, news := a.fanOut(ctx, translated)

	res := &Result{Acts: acts, Procedures: procs, News: news}
	if voice, ok := voiceMap[lang]; ok {
		res.AudioVoice = voice
	}

	actsCtx := snippetLines(acts)
	procsCtx := snippetLines(procs)
	newsCtx := snippetLines(news)
	prompt := buildSynthesisPrompt(query, lang, actsCtx, procsCtx, newsCtx)

	answer, err := a.LLM.Complete(ctx, prompt)
	if err != nil {
		res.Error = "legal synthesis is temporarily unavailable; please try again shortly"
		res.Answer = res.Error
		return res, nil
	}
	if !hasSectionContract(answer) {
		a.Logger.Debug("legal: synthesis answer missing the seven-section contract")
	}
	res.Answer = answer
	return res, nil
}

// fanOut runs the three adapter classes under a pool of FanoutPool, each with its own
// region-fallback and dedupe (spec §4.12).
func (a *Asker) fanOut(ctx context.Context, query string) (acts, procs, news []*entity.Hit) {
	sem := semaphore.NewWeighted(FanoutPool)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := sem.Acquire(gctx, 1); err != nil {
			return nil
		}
		defer sem.Release(1)
		acts = a.searchTemplatesWithFallback(gctx, actsTemplates, query, actsLimit)
		return nil
	})
	g.Go(func() error {
		if err := sem.Acquire(gctx, 1); err != nil {
			return nil
		}
		defer sem.Release(1)
		procs = a.searchTemplatesWithFallback(gctx, proceduresTemplates, query, proceduresLimit)
		return nil
	})
	g.Go(func() error {
		if err := sem.Acquire(gctx, 1); err != nil {
			return nil
		}
		defer sem.Release(1)
		news = a.newsSearch(gctx, query)
		return nil
	})
	_ = g.Wait()
	return acts, procs, news
}

// searchTemplatesWithFallback expands templates against the Web adapter, retrying
// with global region whenever the India-region attempt returns nothing (spec §4.12:
// "runs once with region in-en; if empty, retry with global region").
func (a *Asker) searchTemplatesWithFallback(ctx context.Context, templates []string, query string, limit int) []*entity.Hit {
	var all []*entity.Hit
	for _, q := range expand(templates, query) {
		hits, err := a.Web.Search(ctx, adapter.Request{Query: q, Region: regionIndia, Limit: limit})
		if err != nil {
			a.Logger.Debug("legal: web adapter failed", slog.String("query", q), slog.Any("error", err))
			continue
		}
		if len(hits) == 0 {
			hits, err = a.Web.Search(ctx, adapter.Request{Query: q, Limit: limit})
			if err != nil {
				continue
			}
		}
		all = append(all, hits...)
	}
	all = orchestrate.Dedupe(all)
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

// newsSearch builds the compound statutory/rights query and applies the legal
// vocabulary keyword filter (spec §4.12: "must contain one of a fixed ~15-token legal
// vocabulary").
func (a *Asker) newsSearch(ctx context.Context, query string) []*entity.Hit {
	compound := query + " rights law statute"
	hits, err := a.News.Search(ctx, adapter.Request{Query: compound, Region: regionIndia, Limit: newsLimit * 3})
	if err != nil {
		a.Logger.Debug("legal: news adapter failed", slog.Any("error", err))
		return nil
	}
	hits = orchestrate.Dedupe(hits)
	hits = filterHits(hits, func(h *entity.Hit) bool {
		return matchesLegalVocabulary(h.Title + " " + h.Snippet)
	})
	if len(hits) > newsLimit {
		hits = hits[:newsLimit]
	}
	return hits
}

func filterHits(hits []*entity.Hit, keep func(*entity.Hit) bool) []*entity.Hit {
	out := make([]*entity.Hit, 0, len(hits))
	for _, h := range hits {
		if keep(h) {
			out = append(out, h)
		}
	}
	return out
}

// translateIfNeeded asks the LLM to translate a non-English query before search (spec
// §4.12). lang == "" or "en" is treated as already English.
func (a *Asker) translateIfNeeded(ctx context.Context, query, lang string) (string, error) {
	if lang == "" || lang == "en" {
		return query, nil
	}
	prompt := fmt.Sprintf("Translate the following legal query from %s to English. Reply with only the translated text:\n\n%s", lang, query)
	return a.LLM.Complete(ctx, prompt)
}

// appendTopicTokens appends active Topic Manager tokens to the search query (spec
// §4.12: "If admin topics are active, append the topic tokens").
func (a *Asker) appendTopicTokens(query string) string {
	if a.Topics == nil {
		return query
	}
	tokens := a.Topics.ActiveKeywords()
	if len(tokens) == 0 {
		return query
	}
	return query + " " + strings.Join(tokens, " ")
}

func snippetLines(hits []*entity.Hit) string {
	lines := make([]string, 0, len(hits))
	for _, h := range hits {
		lines = append(lines, fmt.Sprintf("%s | %s", h.Title, h.Snippet))
	}
	return contextLines(lines)
}
