package services

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	portsrepo "github.com/Yoast/visitor_currency_app/internal/core/ports/repositories"
)

// ipMemoSize bounds the in-process memoization of IP lookups. Repeat requests
// from the same visitor within one process skip the durable cache entirely.
const ipMemoSize = 4096

// IPToCountryLookup maps a visitor IP address to an ISO country code via the
// geolocation provider, memoized through an in-process LRU and the durable
// external-data cache ("ip2country" namespace).
type IPToCountryLookup struct {
	cacheRepo portsrepo.CacheRepository
	geoQuery  portsrepo.GeolocationClient
	memo      *lru.Cache[string, string]
	ttl       time.Duration
	now       func() time.Time
}

// NewIPToCountryLookup creates the IP→country strategy. Durable cache entries
// older than ttl are refetched rather than trusted.
func NewIPToCountryLookup(cacheRepo portsrepo.CacheRepository, geoQuery portsrepo.GeolocationClient, ttl time.Duration) (*IPToCountryLookup, error) {
	memo, err := lru.New[string, string](ipMemoSize)
	if err != nil {
		return nil, err
	}
	return &IPToCountryLookup{
		cacheRepo: cacheRepo,
		geoQuery:  geoQuery,
		memo:      memo,
		ttl:       ttl,
		now:       time.Now,
	}, nil
}

// Lookup resolves ip to a country code. Provider failures and malformed
// responses yield a miss and are never cached, so the next request retries.
func (l *IPToCountryLookup) Lookup(ctx context.Context, ip string) (string, bool) {
	if ip == "" {
		return "", false
	}

	if country, ok := l.memo.Get(ip); ok {
		return country, true
	}

	if entry, err := l.cacheRepo.Get(ctx, ip); err == nil {
		if entry.Value != "" && entry.Age(l.now()) < l.ttl {
			l.memo.Add(ip, entry.Value)
			return entry.Value, true
		}
	}

	country, err := l.geoQuery.CountryByIP(ctx, ip)
	if err != nil || country == "" {
		return "", false
	}

	// Best effort; a failed cache write just means a refetch next time.
	_ = l.cacheRepo.Set(ctx, ip, country)
	l.memo.Add(ip, country)

	return country, true
}
