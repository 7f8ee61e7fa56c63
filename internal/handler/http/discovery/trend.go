package discovery

import (
	"encoding/json"
	"errors"
	"net/http"

	"topicscope/internal/domain/entity"
	"topicscope/internal/handler/http/respond"
	"topicscope/internal/trend"
)

// TrendAnalyzeRequest is the POST body for trendAnalyze (spec §4.13, §6).
type TrendAnalyzeRequest struct {
	Topic       string `json:"topic"`
	HorizonDays int    `json:"horizon_days"`
}

// TrendAnalyzeHandler implements trendAnalyze (spec §4.13, C12): query expansion,
// snippet concatenation, LLM numeric extraction, and forecaster handoff.
type TrendAnalyzeHandler struct {
	Miner *trend.Miner
}

// ServeHTTP decodes a TrendAnalyzeRequest and returns the Miner's Result. A zero-point
// extraction (entity.ErrNoData) still reports 200 with empty series — the caller asked
// a legitimate question that simply had no numeric answer, not a failed request.
//
// @Summary      Analyze a topic's trend and forecast it forward
// @Tags         trend
// @Accept       json
// @Produce      json
// @Param        body body TrendAnalyzeRequest true "trend analysis request"
// @Success      200 {object} trend.Result
// @Failure      400 {string} string "bad request"
// @Failure      500 {string} string "internal error"
// @Router       /trend/analyze [post]
func (h *TrendAnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req TrendAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.Miner.AnalyzeTrend(r.Context(), req.Topic, req.HorizonDays)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrValidation):
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		case errors.Is(err, entity.ErrNoData):
			respond.JSON(w, http.StatusOK, result)
			return
		default:
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}
	}
	respond.JSON(w, http.StatusOK, result)
}
