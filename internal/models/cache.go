package models

import "time"

// CacheEntry is one row of the external-data cache: an opaque key (typically
// a request URL) mapped to a previously fetched payload. The cache itself is
// TTL-agnostic; FetchedAt lets each caller apply its own staleness rule.
type CacheEntry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Age returns how long ago the entry was fetched.
func (e *CacheEntry) Age(now time.Time) time.Duration {
	return now.Sub(e.FetchedAt)
}
