package entity

import "time"

// CachedArticle is a row in the news store (§3, §4.9). Unlike a Hit, it survives
// across requests and is owned exclusively by the News Feed Worker.
type CachedArticle struct {
	ID          string  // md5 of the resolved (non-aggregator) URL
	Title       string
	URL         string  // resolved URL, never the aggregator
	Published   string  // original published string, preserved as-is
	Source      string  // feed title
	Image       *string // nullable; must not be on the enrichment block list
	GUID        string
	Timestamp   float64 // ingest time, unix seconds
	Snippet     string  // plain text, <=200 chars
	IsApproved  bool    // default true
}

// IngestedAt returns the ingest timestamp as a time.Time for retention math.
func (a *CachedArticle) IngestedAt() time.Time {
	return time.Unix(int64(a.Timestamp), 0).UTC()
}

// CachedVideo is a row in the video store (§3, §4.10), owned exclusively by the Video
// Feed Worker.
type CachedVideo struct {
	ID         string // provider video id
	Title      string
	URL        string
	Thumbnail  string
	Channel    string
	Views      string
	Published  string // relative string ("3 days ago"), not a timestamp
	Timestamp  float64
	IsApproved bool
}

// IngestedAt returns the ingest timestamp as a time.Time.
func (v *CachedVideo) IngestedAt() time.Time {
	return time.Unix(int64(v.Timestamp), 0).UTC()
}
