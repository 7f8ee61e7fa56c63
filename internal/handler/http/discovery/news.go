package discovery

import (
	"net/http"
	"strconv"

	"topicscope/internal/feed/news"
	"topicscope/internal/handler/http/respond"
)

// parseLimit reads the optional "limit" query parameter, defaulting to 0 (the
// collaborator's own default) when absent or malformed.
func parseLimit(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return limit
}

// NewsHandler implements getNews (spec §4.9, §6): GET /news?limit=N, the cached
// read path with the empty-store synchronous-seed-once fallback.
type NewsHandler struct {
	Worker *news.Worker
}

// ServeHTTP returns the current news feed.
//
// @Summary      Read the cached news feed
// @Tags         news
// @Produce      json
// @Param        limit query int false "max rows (default 50)"
// @Success      200 {array} entity.WireHit
// @Failure      500 {string} string "internal error"
// @Router       /news [get]
func (h *NewsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	hits, err := h.Worker.GetNews(r.Context(), parseLimit(r))
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, toWireHits(hits))
}

// NewsByLanguageHandler implements getNewsByLanguage (spec §6): GET
// /news/lang/{lang}?limit=N, the same read narrowed to one detected title language.
type NewsByLanguageHandler struct {
	Worker *news.Worker
}

// ServeHTTP returns the news feed filtered to a single detected title language. lang
// is taken from the "lang" query parameter rather than a path segment, matching the
// rest of this façade's flat query-param convention.
//
// @Summary      Read the cached news feed narrowed to one language
// @Tags         news
// @Produce      json
// @Param        lang query string true "ISO 639-1 language code"
// @Param        limit query int false "max rows (default 50)"
// @Success      200 {array} entity.WireHit
// @Failure      400 {string} string "bad request"
// @Failure      500 {string} string "internal error"
// @Router       /news/lang [get]
func (h *NewsByLanguageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		respond.SafeError(w, http.StatusBadRequest, errLangRequired)
		return
	}
	hits, err := h.Worker.GetNewsByLanguage(r.Context(), parseLimit(r), lang)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, toWireHits(hits))
}

// NewsSearchHandler implements search(news) (spec §4.9, §6): GET /news/search?q=&lang=.
type NewsSearchHandler struct {
	Worker *news.Worker
}

// ServeHTTP runs a live news search, warming the cache as a side effect.
//
// @Summary      Search news live
// @Tags         news
// @Produce      json
// @Param        q query string true "search query"
// @Param        lang query string false "ISO 639-1 language hint"
// @Param        limit query int false "max rows (default 50)"
// @Success      200 {array} entity.WireHit
// @Failure      400 {string} string "bad request"
// @Failure      500 {string} string "internal error"
// @Router       /news/search [get]
func (h *NewsSearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
