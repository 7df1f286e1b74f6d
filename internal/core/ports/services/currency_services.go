package services

import (
	"context"

	"github.com/Yoast/visitor_currency_app/internal/models"
)

// Lookup is the shared capability of the detection strategies: map one input
// to at most one output. Implementations never fail; a false second return
// means "cannot determine" and lets the resolution chain fall through.
type Lookup interface {
	Lookup(ctx context.Context, input string) (string, bool)
}

// OverrideFunc is the forced-currency extension point. It is evaluated fresh
// at every decision point (never cached) so admin or test configuration can
// change between checks. A false second return means no override is active.
type OverrideFunc func() (string, bool)

// VATReaderSvc defines read operations on the EU VAT rule set.
type VATReaderSvc interface {
	// GetEuroVATRules returns the current rule set, refreshing it from the
	// provider when stale (or when forceRefresh is set). Provider failure
	// falls open to the last stored value.
	GetEuroVATRules(ctx context.Context, forceRefresh bool) (*models.VATRuleSet, error)

	// GetApplicableCountriesInEU returns the flat Eurozone country-code set.
	GetApplicableCountriesInEU(ctx context.Context) ([]string, error)
}

// VATSvcFacade combines all VAT-related service interfaces.
type VATSvcFacade interface {
	VATReaderSvc
}

// ResolverSvcFacade is the currency resolution engine: the priority chain
// over override, billing country, stored preference, geolocation, language
// headers and the registry default.
type ResolverSvcFacade interface {
	// Detect runs the full priority chain for the visitor and returns the
	// winning resolution. It never fails; total detection failure resolves
	// to the registry default.
	Detect(ctx context.Context, reg *models.CurrencyRegistry, visitor models.Visitor) models.Resolution

	// GetCurrency returns the forced override if one is valid, else the
	// already-resolved current selection, else runs Detect, marks the
	// result current in the registry and returns it.
	GetCurrency(ctx context.Context, reg *models.CurrencyRegistry, visitor models.Visitor, force ...string) models.Resolution

	// SetCurrency explicitly selects a currency. Codes rejected by
	// IsValidCurrency fail with apperrors.ErrValidation and leave the
	// registry untouched.
	SetCurrency(ctx context.Context, reg *models.CurrencyRegistry, code string) (models.Resolution, error)

	// IsValidCurrency reports whether code may be selected: when an
	// override is active only the forced code is accepted, otherwise any
	// registered code is.
	IsValidCurrency(reg *models.CurrencyRegistry, code string) bool

	// FormatPrice renders amount with the display glyph of the current (or
	// explicitly given) currency. Purely presentational.
	FormatPrice(reg *models.CurrencyRegistry, amount string, currencyCode ...string) string
}
