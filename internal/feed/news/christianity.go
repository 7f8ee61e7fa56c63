package news

import "strings"

// christianityVocabulary is the fixed ~20-token keyword vocabulary the worker enforces
// against title+summary for entries ingested under the Christianity topic category
// (spec §4.9). It includes the pinned entity names so pinned content is never rejected
// by its own category filter.
var christianityVocabulary = []string{
	"christian", "christianity", "church", "gospel", "jesus", "christ",
	"bible", "faith", "pope", "vatican", "catholic", "protestant",
	"evangelical", "missionary", "pastor", "ministry", "worship", "scripture",
	"vatican", "pope francis", "billy graham", "world vision", "bible society",
}

// matchesChristianity reports whether combined title+summary text contains any token
// of the fixed Christianity vocabulary (case-insensitive substring match).
func matchesChristianity(titleAndSummary string) bool {
	lower := strings.ToLower(titleAndSummary)
	for _, tok := range christianityVocabulary {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}
