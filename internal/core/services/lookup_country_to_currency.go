package services

import (
	"context"
	"slices"
	"strings"

	portssvc "github.com/Yoast/visitor_currency_app/internal/core/ports/services"
)

// CountryToCurrencyLookup maps an ISO country code to a currency code: "EUR"
// for countries in the current Eurozone set (sourced from the VAT rule set),
// "USD" for the US. Any other country is a miss so the resolution chain can
// fall through to the next strategy; there is no fixed fallback currency.
type CountryToCurrencyLookup struct {
	vatService portssvc.VATSvcFacade
}

// NewCountryToCurrencyLookup creates the country→currency strategy.
func NewCountryToCurrencyLookup(vatService portssvc.VATSvcFacade) *CountryToCurrencyLookup {
	return &CountryToCurrencyLookup{vatService: vatService}
}

// Lookup resolves country to a currency code. A VAT source failure simply
// shrinks the Eurozone set to nothing for this request; it never errors.
func (l *CountryToCurrencyLookup) Lookup(ctx context.Context, country string) (string, bool) {
	if country == "" {
		return "", false
	}
	country = strings.ToUpper(country)

	if countries, err := l.vatService.GetApplicableCountriesInEU(ctx); err == nil {
		if slices.Contains(countries, country) {
			return "EUR", true
		}
	}

	if country == "US" {
		return "USD", true
	}

	return "", false
}
