package adapter

import (
	"strings"

	"github.com/RadhiFadlillah/whatlanggo"

	"topicscope/internal/domain/entity"
)

// isLatinScript reports whether text is confidently detected as Latin-script. Short
// strings (titles) are the common case this is applied to; whatlanggo's confidence on
// very short input is low, so a very short title is treated as Latin by default rather
// than spuriously rejected.
func isLatinScript(text string) bool {
	if len(text) < 8 {
		return true
	}
	info := whatlanggo.Detect(text)
	return info.Script == whatlanggo.Latin
}

// filterNonLatin drops hits whose title fails the Latin-script check, unless lang is
// non-empty — a caller-supplied language hint disables the filter entirely (spec §4.3:
// "Non-Latin title filter applies unless the caller passes a language hint").
func filterNonLatin(hits []*entity.Hit, lang string) []*entity.Hit {
	if lang != "" {
		return hits
	}
	out := make([]*entity.Hit, 0, len(hits))
	for _, h := range hits {
		if isLatinScript(h.Title) {
			out = append(out, h)
		}
	}
	return out
}

// DetectLanguage returns whatlanggo's best-guess ISO 639-1 code for text, or "" when
// the text is too short to classify confidently. Used by the feed workers' by-language
// reads (spec §6 getNewsByLanguage/getVideosByLanguage).
func DetectLanguage(text string) string {
	if len(text) < 8 {
		return ""
	}
	return whatlanggo.Detect(text).Lang.Iso6391()
}

// FilterByLanguage keeps only the hits whose title DetectLanguage matches lang
// (case-insensitive). An empty lang is a no-op — callers that want "any language"
// should not call this at all.
func FilterByLanguage(hits []*entity.Hit, lang string) []*entity.Hit {
	if lang == "" {
		return hits
	}
	out := make([]*entity.Hit, 0, len(hits))
	for _, h := range hits {
		if strings.EqualFold(DetectLanguage(h.Title), lang) {
			out = append(out, h)
		}
	}
	return out
}
