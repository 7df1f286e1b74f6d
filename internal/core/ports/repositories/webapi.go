package repositories

import (
	"context"

	"github.com/Yoast/visitor_currency_app/internal/models"
)

// GeolocationClient resolves an IP address to an ISO country code via the
// external geolocation provider.
type GeolocationClient interface {
	// CountryByIP returns the ISO country code for ip. Any provider failure
	// or malformed response yields apperrors.ErrUpstreamUnavailable.
	CountryByIP(ctx context.Context, ip string) (string, error)
}

// VATRateClient fetches the current EU VAT rule list from the rate provider.
type VATRateClient interface {
	// FetchEuroVATRules returns the provider's rule list. A non-200 status
	// or malformed body yields apperrors.ErrUpstreamUnavailable.
	FetchEuroVATRules(ctx context.Context) ([]models.VATRule, error)
}
