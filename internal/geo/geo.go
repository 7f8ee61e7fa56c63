// Package geo implements the Geo Sorter: it re-groups an already-ranked hit
// list into three contiguous tiers — Local, National, Global — without
// disturbing each tier's internal order.
package geo

import (
	"strings"

	"topicscope/internal/domain/entity"
)

// localTokens are city/district/state-level tokens. Kept small and closed by
// design: the tier assignment is a cheap keyword gate, not a geocoder.
var localTokens = []string{
	"mumbai", "delhi", "bengaluru", "bangalore", "chennai", "kolkata", "hyderabad",
	"pune", "ahmedabad", "jaipur", "lucknow", "kerala", "tamil nadu", "karnataka",
	"maharashtra", "gujarat", "punjab", "rajasthan", "uttar pradesh", "west bengal",
	"telangana", "goa", "kochi", "chandigarh", "nagpur", "surat", "vadodara",
}

// nationalTokens are country-level tokens, checked alongside a country TLD
// check on the URL's path/host.
var nationalTokens = []string{
	"india", "indian", "bharat", "new delhi",
}

var nationalTLDSuffixes = []string{".in/", ".in"}

// Assign classifies a single hit by title+snippet+url against the two closed
// vocabularies. Unmatched falls through to Global.
func Assign(h *entity.Hit) entity.GeoTier {
	haystack := strings.ToLower(h.Title + " " + h.Snippet + " " + h.URL)
	for _, tok := range localTokens {
		if strings.Contains(haystack, tok) {
			return entity.GeoLocal
		}
	}
	for _, tok := range nationalTokens {
		if strings.Contains(haystack, tok) {
			return entity.GeoNational
		}
	}
	lowerURL := strings.ToLower(h.URL)
	for _, suffix := range nationalTLDSuffixes {
		if strings.HasSuffix(lowerURL, suffix) {
			return entity.GeoNational
		}
	}
	return entity.GeoGlobal
}

// Sort re-groups hits into three contiguous tiers (Local, National, Global),
// preserving each hit's relative order within its tier. The input is assumed
// already ranked; this only regroups, it never re-scores.
func Sort(hits []*entity.Hit) []*entity.Hit {
	var local, national, global []*entity.Hit
	for _, h := range hits {
		tier := Assign(h)
		h.GeoTier = tier
		switch tier {
		case entity.GeoLocal:
			local = append(local, h)
		case entity.GeoNational:
			national = append(national, h)
		default:
			global = append(global, h)
		}
	}
	out := make([]*entity.Hit, 0, len(hits))
	out = append(out, local...)
	out = append(out, national...)
	out = append(out, global...)
	return out
}
