package discovery

import (
	"encoding/json"
	"errors"
	"net/http"

	"topicscope/internal/domain/entity"
	"topicscope/internal/handler/http/respond"
	"topicscope/internal/legal"
)

// LegalAskRequest is the POST body for legalAsk (spec §4.12, §6).
type LegalAskRequest struct {
	Query string `json:"query"`
	Lang  string `json:"lang"`
}

// LegalAskHandler implements legalAsk (spec §4.12, C11): a three-way fan-out across
// statute, procedure, and news registries, synthesized into a Markdown answer.
type LegalAskHandler struct {
	Asker *legal.Asker
}

// ServeHTTP decodes a LegalAskRequest and returns the Asker's Result.
//
// @Summary      Ask a legal question
// @Description  Fans out across statute, procedure, and news registries and synthesizes a Markdown answer.
// @Tags         legal
// @Accept       json
// @Produce      json
// @Param        body body LegalAskRequest true "legal question"
// @Success      200 {object} legal.Result
// @Failure      400 {string} string "bad request"
// @Failure      500 {string} string "internal error"
// @Router       /legal/ask [post]
func (h *LegalAskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req LegalAskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.Asker.Ask(r.Context(), req.Query, req.Lang)
	if err != nil {
		if errors.Is(err, entity.ErrValidation) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, result)
}
