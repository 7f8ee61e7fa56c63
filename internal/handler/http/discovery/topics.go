package discovery

import (
	"encoding/json"
	"net/http"

	"topicscope/internal/handler/http/respond"
	"topicscope/internal/topics"
)

// ToggleTopicRequest is the POST body for toggleTopic (spec §4.7, §6: "topic toggle
// (POST topic+status)").
type ToggleTopicRequest struct {
	Topic  string `json:"topic"`
	Status bool   `json:"status"`
}

// ToggleTopicHandler implements toggleTopic (spec §4.7): flips a single topic's
// active flag and persists the change atomically.
type ToggleTopicHandler struct {
	Topics *topics.Manager
}

// ServeHTTP decodes a ToggleTopicRequest and applies it to the Topic Manager.
//
// @Summary      Toggle a topic on or off
// @Tags         topics
// @Accept       json
// @Produce      json
// @Param        body body ToggleTopicRequest true "topic toggle"
// @Success      204
// @Failure      400 {string} string "bad request"
// @Failure      500 {string} string "internal error"
// @Router       /topics/toggle [post]
func (h *ToggleTopicHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req ToggleTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Topic == "" {
		respond.SafeError(w, http.StatusBadRequest, errTopicRequired)
		return
	}
	if err := h.Topics.SetTopic(req.Topic, req.Status); err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ActiveKeywordsHandler implements activeKeywords (spec §4.7, §6): the sorted list
// of currently-active topic names.
type ActiveKeywordsHandler struct {
	Topics *topics.Manager
}

// ServeHTTP returns the sorted list of active topic names.
//
// @Summary      List active topics
// @Tags         topics
// @Produce      json
// @Success      200 {array} string
// @Router       /topics/active [get]
func (h *ActiveKeywordsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.Topics.ActiveKeywords())
}
