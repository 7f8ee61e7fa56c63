// Package pinned implements the pinned-priority policy (spec §4.11): a fixed short
// list of entity tokens whose presence in a row's title/source/snippet/channel boosts
// it to the top of every read path and exempts it from short-horizon retention. This
// is an explicit product policy, not a relevance signal — its weight dominates all
// other scores in read ordering.
package pinned

import "strings"

// DefaultTokens is the default pinned-entity vocabulary. It is small and
// admin-configured in spirit; callers needing a different list should build a List
// with their own tokens instead of mutating this slice.
var DefaultTokens = []string{
	"Vatican",
	"Pope Francis",
	"Billy Graham",
	"World Vision",
	"Bible Society",
}

// List is a case-insensitive matcher over a configured set of pinned-entity tokens.
type List struct {
	tokens []string
}

// New builds a List from the given tokens, lower-casing them once up front so Match
// calls do no further allocation-heavy normalization beyond the haystack itself.
func New(tokens []string) *List {
	lowered := make([]string, len(tokens))
	for i, t := range tokens {
		lowered[i] = strings.ToLower(t)
	}
	return &List{tokens: lowered}
}

// Default returns a List built from DefaultTokens.
func Default() *List {
	return New(DefaultTokens)
}

// Match reports whether any configured token appears in any of the given text fields
// (case-insensitive substring match), e.g. title, source, snippet, channel.
func (l *List) Match(fields ...string) bool {
	for _, f := range fields {
		lower := strings.ToLower(f)
		for _, tok := range l.tokens {
			if strings.Contains(lower, tok) {
				return true
			}
		}
	}
	return false
}

// Tokens returns the configured token list (original case, not lowered) for display
// or regex-building purposes.
func (l *List) Tokens() []string {
	out := make([]string, len(l.tokens))
	copy(out, l.tokens)
	return out
}
