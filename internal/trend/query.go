package trend

import (
	"strconv"
	"strings"
	"time"
)

// statisticalIntentTemplates are the four statistical-intent query variants spec
// §4.13 expands a topic into ("Expand the topic into four statistical-intent
// queries").
var statisticalIntentTemplates = []string{
	"{{topic}} statistics {{year}}",
	"{{topic}} trend data {{year}}",
	"{{topic}} year over year growth {{year}}",
	"{{topic}} numbers by year {{year}}",
}

// registryTemplates are the three targeted registry queries added when the topic is
// India- or Christianity-related (spec §4.13: "optionally augmented with three
// targeted registry queries if the topic is India/Christian-related").
var registryTemplates = []string{
	"{{topic}} site:prsindia.org OR site:mospi.gov.in",
	"{{topic}} site:vaticannews.va OR site:christianitytoday.com",
	"{{topic}} census data site:indiacode.nic.in OR site:data.gov.in",
}

var indiaChristianTokens = []string{"india", "indian", "christ", "christian", "christianity", "vatican", "church"}

// isIndiaOrChristianTopic reports whether topic looks India- or Christianity-related,
// the condition spec §4.13 gates the three extra registry queries on.
func isIndiaOrChristianTopic(topic string) bool {
	lower := strings.ToLower(topic)
	for _, tok := range indiaChristianTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

// expandQueries builds the full query-expansion set for a topic (spec §4.13): the four
// statistical-intent templates times three years (current, -1, -2), plus the three
// registry queries when the topic qualifies.
func expandQueries(topic string, now time.Time) []string {
	year := now.Year()
	years := []int{year, year - 1, year - 2}

	var out []string
	for _, y := range years {
		for _, tmpl := range statisticalIntentTemplates {
			q := strings.ReplaceAll(tmpl, "{{topic}}", topic)
			q = strings.ReplaceAll(q, "{{year}}", strconv.Itoa(y))
			out = append(out, q)
		}
	}
	if isIndiaOrChristianTopic(topic) {
		for _, tmpl := range registryTemplates {
			out = append(out, strings.ReplaceAll(tmpl, "{{topic}}", topic))
		}
	}
	return out
}
