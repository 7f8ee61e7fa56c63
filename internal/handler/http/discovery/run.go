// Package discovery is the thin HTTP façade over the discovery core: one handler per
// operation named in spec §6 (run, getNews/getNewsByLanguage/search(news),
// getTrending/getVideosByLanguage/search(video), legalAsk, trendAnalyze, toggleTopic,
// activeKeywords). Handlers only decode the request, call the core, and project the
// result to its wire shape — no pipeline logic lives here.
package discovery

import (
	"encoding/json"
	"net/http"

	"topicscope/internal/domain/entity"
	"topicscope/internal/orchestrate"

	"topicscope/internal/handler/http/respond"
)

// RunRequest is the POST body for the run operation (spec §6: "search (POST
// topic+type+limit+lang+intents)").
type RunRequest struct {
	Topic            string   `json:"topic"`
	Intents          []string `json:"intents"`
	Limit            int      `json:"limit"`
	TimeFilter       string   `json:"time_filter"`
	Region           string   `json:"region"`
	Lang             string   `json:"lang"`
	PaidSearchAPIKey string   `json:"paid_search_api_key,omitempty"`
}

// RunResponse is the wire shape of a Run result: hits projected to WireHit, errors
// projected to their message strings (internal adapter/engine detail never crosses
// the HTTP boundary).
type RunResponse struct {
	Hits   []entity.WireHit `json:"hits"`
	Errors []string         `json:"errors,omitempty"`
}

// RunHandler implements the run operation (spec §4.8, C8): run(topic, intents,
// limit, timeFilter, keys) -> (hits, errors).
type RunHandler struct {
	Orchestrator *orchestrate.Orchestrator
}

// ServeHTTP decodes a RunRequest, calls the Orchestrator, and writes a RunResponse.
//
// @Summary      Run a topic-scoped discovery search
// @Description  Fans out across Source Adapters, dedupes, filters, ranks, and geo-tiers the results.
// @Tags         discovery
// @Accept       json
// @Produce      json
// @Param        body body RunRequest true "search request"
// @Success      200 {object} RunResponse
// @Failure      400 {string} string "bad request"
// @Router       /search [post]
func (h *RunHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result := h.Orchestrator.Run(r.Context(), orchestrate.Request{
		Topic:            req.Topic,
		Intents:          req.Intents,
		Limit:            req.Limit,
		TimeFilter:       req.TimeFilter,
		Region:           req.Region,
		Lang:             req.Lang,
		PaidSearchAPIKey: req.PaidSearchAPIKey,
	})

	respond.JSON(w, http.StatusOK, toRunResponse(result))
}

func toRunResponse(result orchestrate.Result) RunResponse {
	out := RunResponse{Hits: toWireHits(result.Hits)}
	for _, e := range result.Errors {
		out.Errors = append(out.Errors, e.Error())
	}
	return out
}

func toWireHits(hits []*entity.Hit) []entity.WireHit {
	out := make([]entity.WireHit, len(hits))
	for i, h := range hits {
		out[i] = h.ToWire()
	}
	return out
}
