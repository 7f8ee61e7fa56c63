package legal

import "strings"

// actsTemplates are the three query variants targeting statute registries via site
// operators (spec §4.12: "3 query templates targeting statute registries").
var actsTemplates = []string{
	"{{query}} site:indiacode.nic.in OR site:legislative.gov.in",
	"{{query}} bare act text site:indiankanoon.org",
	"{{query}} statute full text filetype:pdf",
}

// proceduresTemplates are the two step-by-step-guide query variants (spec §4.12).
var proceduresTemplates = []string{
	"{{query}} how to file procedure step by step",
	"{{query}} legal procedure guide site:.gov.in OR site:nalsa.gov.in",
}

// legalVocabulary is the fixed ~15-token keyword filter applied to the news arm (spec
// §4.12: "must contain one of a fixed ~15-token legal vocabulary").
var legalVocabulary = []string{
	"court", "judge", "verdict", "ruling", "petition", "tribunal",
	"constitution", "statute", "act", "amendment", "bill", "law",
	"supreme court", "high court", "legislation",
}

// voiceMap is the static {en,hi,ta} -> voice selection spec §4.12 describes for the
// optional speech-synthesis step.
var voiceMap = map[string]string{
	"en": "en-IN-Standard-A",
	"hi": "hi-IN-Standard-A",
	"ta": "ta-IN-Standard-A",
}

func expand(templates []string, query string) []string {
	out := make([]string, len(templates))
	for i, t := range templates {
		out[i] = strings.ReplaceAll(t, "{{query}}", query)
	}
	return out
}

// matchesLegalVocabulary reports whether text contains any legalVocabulary token,
// case-insensitively.
func matchesLegalVocabulary(text string) bool {
	lower := strings.ToLower(text)
	for _, tok := range legalVocabulary {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}
