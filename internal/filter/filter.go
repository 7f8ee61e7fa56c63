// Package filter implements the Content Filter (spec §4.4, C4): it scores lexical
// relevance of a hit to a query and drops hits below a caller-specified threshold. The
// filter never invents content; every decision reads from title+snippet+url only.
package filter

import (
	"regexp"
	"strings"

	"topicscope/internal/domain/entity"
)

// DefaultThreshold is the default minimum _relevance score a hit must clear (spec §4.4).
const DefaultThreshold = 5

// genericKeywords is the fixed vocabulary of weak context words (spec §4.4).
var genericKeywords = map[string]bool{
	"news": true, "report": true, "updates": true, "conference": true,
	"update": true, "latest": true, "today": true, "breaking": true,
}

// stopWords are dropped during query tokenization.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "of": true, "in": true, "on": true,
	"and": true, "or": true, "to": true, "for": true, "is": true, "are": true,
	"with": true, "at": true, "by": true, "from": true,
}

// blacklistedDomains is the fixed set of low-quality aggregators and commerce noise
// domains (spec §4.4). Any hit whose host matches is always filtered.
var blacklistedDomains = map[string]bool{
	"pinterest.com":  true,
	"quora.com":      true,
	"ebay.com":       true,
	"aliexpress.com": true,
	"amazon.com":     true,
	"scribd.com":     true,
}

// TechVocabulary and spamTerms ground the "software-update/crack spam" penalty rule.
var techVocabulary = map[string]bool{
	"software": true, "app": true, "code": true, "api": true, "programming": true,
	"release": true, "version": true, "update": true, "patch": true, "tech": true,
}

var spamTerms = []string{"crack", "keygen", "serial key", "torrent download", "nulled"}

// domainKeywordBonus is a configurable vocabulary of domain-specific terms worth an
// extra bonus when matched in the combined title+snippet+url text (spec §4.4).
var domainKeywordBonus = map[string]bool{}

// SetDomainVocabulary overrides the configurable domain-specific keyword bonus
// vocabulary (spec §4.4 "configurable vocabulary"). Call once at startup.
func SetDomainVocabulary(words []string) {
	domainKeywordBonus = make(map[string]bool, len(words))
	for _, w := range words {
		domainKeywordBonus[strings.ToLower(w)] = true
	}
}

var tokenRe = regexp.MustCompile(`[a-zA-Z0-9]+`)

func tokenize(s string) []string {
	raw := tokenRe.FindAllString(strings.ToLower(s), -1)
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		if !stopWords[t] {
			out = append(out, t)
		}
	}
	return out
}

// domainHost extracts the registrable-ish host from a URL string for blacklist/quality
// checks, tolerating malformed input by returning the empty string.
func domainHost(rawURL string) string {
	rawURL = strings.ToLower(rawURL)
	rawURL = strings.TrimPrefix(rawURL, "https://")
	rawURL = strings.TrimPrefix(rawURL, "http://")
	if idx := strings.IndexAny(rawURL, "/?#"); idx >= 0 {
		rawURL = rawURL[:idx]
	}
	return rawURL
}

func isBlacklisted(host string) bool {
	for domain := range blacklistedDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// Score computes a hit's _relevance score against a query per spec §4.4. It does not
// mutate the hit; call Apply (or set h.Relevance yourself) to record the result.
func Score(query string, h *entity.Hit) int {
	host := domainHost(h.URL)
	if isBlacklisted(host) {
		return -1
	}

	title := strings.ToLower(h.Title)
	snippet := strings.ToLower(h.Snippet)
	combined := title + " " + snippet + " " + strings.ToLower(h.URL)

	tokens := tokenize(query)
	var core, generic []string
	for _, t := range tokens {
		if genericKeywords[t] {
			generic = append(generic, t)
		} else {
			core = append(core, t)
		}
	}

	score := 0
	for _, kw := range core {
		switch {
		case strings.Contains(title, kw):
			score += 40
		case strings.Contains(snippet, kw):
			score += 15
		default:
			score -= 5
		}
	}
	for _, kw := range generic {
		if strings.Contains(combined, kw) {
			score += 10
		}
	}
	for kw := range domainKeywordBonus {
		if strings.Contains(combined, kw) {
			score += 25
		}
	}

	hasTechTerm := false
	for kw := range techVocabulary {
		if strings.Contains(combined, kw) {
			hasTechTerm = true
			break
		}
	}
	if !hasTechTerm {
		for _, spam := range spamTerms {
			if strings.Contains(combined, spam) {
				score -= 100
				break
			}
		}
	}

	return score
}

// Apply scores every hit against query, sets its Relevance field, and returns only
// those at or above threshold. Order is preserved (stable) for later ranking passes.
func Apply(query string, hits []*entity.Hit, threshold int) []*entity.Hit {
	out := make([]*entity.Hit, 0, len(hits))
	for _, h := range hits {
		h.Relevance = Score(query, h)
		if h.Relevance >= threshold {
			out = append(out, h)
		}
	}
	return out
}
