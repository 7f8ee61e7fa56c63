package orchestrate

import (
	"strings"

	"topicscope/internal/domain/entity"
)

// Dedupe runs the two-pass normalize-and-dedupe of spec §4.8 step 6: first a
// URL-normalized dedupe (the §3 invariant: two hits are the same entity iff their
// normalized URLs match), keeping the first-seen occurrence; then a title-normalized
// dedupe that drops exact lowercase title duplicates and short stale-archive titles
// ("shorter than 20 chars and contains 'archives'"). It is idempotent: running it twice
// yields the same result as running it once (spec §8).
func Dedupe(hits []*entity.Hit) []*entity.Hit {
	byURL := dedupeByURL(hits)
	return dedupeByTitle(byURL)
}

func dedupeByURL(hits []*entity.Hit) []*entity.Hit {
	seen := make(map[string]bool, len(hits))
	out := make([]*entity.Hit, 0, len(hits))
	for _, h := range hits {
		norm := NormalizeURL(h.URL)
		if seen[norm] {
			continue
		}
		seen[norm] = true
		h.ID = HashID(norm)
		out = append(out, h)
	}
	return out
}

func dedupeByTitle(hits []*entity.Hit) []*entity.Hit {
	seenTitles := make(map[string]bool, len(hits))
	out := make([]*entity.Hit, 0, len(hits))
	for _, h := range hits {
		lowerTitle := strings.ToLower(strings.TrimSpace(h.Title))
		if seenTitles[lowerTitle] {
			continue
		}
		if len(h.Title) < 20 && strings.Contains(lowerTitle, "archives") {
			continue
		}
		seenTitles[lowerTitle] = true
		out = append(out, h)
	}
	return out
}
