// Package orchestrate implements the Orchestrator (spec §4.8, C8): the single public
// `Run` operation that validates a query, applies the topic constraint, expands it into
// per-intent variants, fans out to the Source Adapters, then normalizes, dedupes,
// filters, ranks, and geo-tiers the result.
package orchestrate

import (
	// #nosec G501 -- identity hash for content-addressing, not a security boundary.
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"
)

// trackingQueryParams are stripped during URL normalization — the common ad/analytics
// parameters that would otherwise make two links to the same article compare unequal
// (spec §3 Invariant: "tracking query stripped").
var trackingQueryParams = map[string]bool{
	"utm_source": true, "utm_medium": true, "utm_campaign": true, "utm_term": true,
	"utm_content": true, "fbclid": true, "gclid": true, "ref": true, "ref_src": true,
	"igshid": true, "mc_cid": true, "mc_eid": true,
}

// NormalizeURL canonicalizes a URL for the dedupe invariant of spec §3: scheme and
// host lowered, fragment and tracking query params stripped, trailing slash removed.
// A URL that fails to parse is returned trimmed and lowered as a best-effort fallback
// so it still participates in dedupe rather than panicking.
func NormalizeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	if u.RawQuery != "" {
		q := u.Query()
		for param := range trackingQueryParams {
			q.Del(param)
		}
		u.RawQuery = q.Encode()
	}

	u.Path = strings.TrimSuffix(u.Path, "/")
	return u.String()
}

// HashID content-addresses a normalized URL into a stable Hit.ID (spec §3: "hash of the
// normalized URL").
func HashID(normalizedURL string) string {
	sum := md5.Sum([]byte(normalizedURL))
	return hex.EncodeToString(sum[:])
}
