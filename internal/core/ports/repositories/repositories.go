package repositories

import (
	"context"

	"github.com/Yoast/visitor_currency_app/internal/models"
)

// CacheRepository is the durable key/value store backing one named cache
// namespace (e.g. "ip2country"). It is a dumb memoization layer: no TTL, no
// eviction policy of its own. Freshness decisions belong to the caller, which
// reads the entry's FetchedAt.
type CacheRepository interface {
	// Get returns the stored entry for key, or apperrors.ErrNotFound.
	Get(ctx context.Context, key string) (*models.CacheEntry, error)
	// Set stores value under key, overwriting any previous entry and
	// stamping it with the current time.
	Set(ctx context.Context, key string, value string) error
}

// VATRuleRepository persists the `yst_vat_euro` option: the last successfully
// fetched EU VAT rule set together with its refresh timestamp.
type VATRuleRepository interface {
	// GetVATRules returns the stored rule set, or apperrors.ErrNotFound if
	// no rule set has ever been fetched.
	GetVATRules(ctx context.Context) (*models.VATRuleSet, error)
	// SaveVATRules replaces the stored rule set.
	SaveVATRules(ctx context.Context, rules models.VATRuleSet) error
}
