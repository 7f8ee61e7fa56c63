package discovery

import (
	"net/http"

	"topicscope/internal/feed/video"
	"topicscope/internal/handler/http/respond"
)

// TrendingHandler implements getTrending (spec §4.10, §6): GET /videos?limit=N, the
// cached video feed read path.
type TrendingHandler struct {
	Worker *video.Worker
}

// ServeHTTP returns the current trending-video feed.
//
// @Summary      Read the cached trending-video feed
// @Tags         videos
// @Produce      json
// @Param        limit query int false "max rows (default 50)"
// @Success      200 {array} entity.WireHit
// @Failure      500 {string} string "internal error"
// @Router       /videos [get]
func (h *TrendingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	hits, err := h.Worker.GetVideos(r.Context(), parseLimit(r))
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, toWireHits(hits))
}

// VideosByLanguageHandler implements getVideosByLanguage (spec §6): GET
// /videos/lang?lang=&limit=.
type VideosByLanguageHandler struct {
	Worker *video.Worker
}

// ServeHTTP returns the video feed filtered to one detected title language.
//
// @Summary      Read the cached video feed narrowed to one language
// @Tags         videos
// @Produce      json
// @Param        lang query string true "ISO 639-1 language code"
// @Param        limit query int false "max rows (default 50)"
// @Success      200 {array} entity.WireHit
// @Failure      400 {string} string "bad request"
// @Failure      500 {string} string "internal error"
// @Router       /videos/lang [get]
func (h *VideosByLanguageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		respond.SafeError(w, http.StatusBadRequest, errLangRequired)
		return
	}
	hits, err := h.Worker.GetVideosByLanguage(r.Context(), parseLimit(r), lang)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, toWireHits(hits))
}

// VideoSearchHandler implements search(video) (spec §4.10, §6): GET
// /videos/search?q=&lang=.
type VideoSearchHandler struct {
	Worker *video.Worker
}

// ServeHTTP runs a live video search, warming the cache as a side effect.
//
// @Summary      Search videos live
// @Tags         videos
// @Produce      json
// @Param        q query string true "search query"
// @Param        lang query string false "ISO 639-1 language hint"
// @Param        limit query int false "max rows (default 50)"
// @Success      200 {array} entity.WireHit
// @Failure      400 {string} string "bad request"
// @Failure      500 {string} string "internal error"
// @Router       /videos/search [get]
func (h *VideoSearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		respond.SafeError(w, http.StatusBadRequest, errQueryRequired)
		return
	}
	lang := r.URL.Query().Get("lang")
	hits, err := h.Worker.Search(r.Context(), q, parseLimit(r), lang)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, toWireHits(hits))
}
