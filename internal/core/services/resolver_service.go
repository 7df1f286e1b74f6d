package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Yoast/visitor_currency_app/internal/apperrors"
	portssvc "github.com/Yoast/visitor_currency_app/internal/core/ports/services"
	"github.com/Yoast/visitor_currency_app/internal/models"
)

// ResolverService orchestrates the lookup strategies and the registry into
// the detection priority chain:
//
//  1. forced override (extension point, re-evaluated at every check)
//  2. cart/billing country, which pins the registry to one currency
//  3. stored preference (cookie), validated against the registry
//  4. IP geolocation
//  5. Accept-Language headers
//  6. registry default
//
// The first successful step wins and lower-priority sources are not
// re-checked within the same request. Geolocation and language hits ask the
// caller to persist the result as the visitor's stored preference.
type ResolverService struct {
	ipToCountry       portssvc.Lookup
	countryToCurrency portssvc.Lookup
	languageToCountry portssvc.Lookup
	override          portssvc.OverrideFunc
	// batchMode disables detection and mutation entirely: resolution
	// short-circuits to the registry default with no cookie writes and no
	// network calls. Used in non-interactive management contexts.
	batchMode bool
}

// NewResolverService creates the resolution engine. A nil override means no
// forced currency is ever active.
func NewResolverService(
	ipToCountry portssvc.Lookup,
	countryToCurrency portssvc.Lookup,
	languageToCountry portssvc.Lookup,
	override portssvc.OverrideFunc,
	batchMode bool,
) *ResolverService {
	if override == nil {
		override = func() (string, bool) { return "", false }
	}
	return &ResolverService{
		ipToCountry:       ipToCountry,
		countryToCurrency: countryToCurrency,
		languageToCountry: languageToCountry,
		override:          override,
		batchMode:         batchMode,
	}
}

var _ portssvc.ResolverSvcFacade = (*ResolverService)(nil)

// Detect runs the full priority chain for the visitor. It never fails: when
// every detection path comes up empty the registry default wins silently.
func (s *ResolverService) Detect(ctx context.Context, reg *models.CurrencyRegistry, visitor models.Visitor) models.Resolution {
	if s.batchMode {
		return s.defaultResolution(reg)
	}

	if code, ok := s.override(); ok {
		if currency, err := reg.GetByCode(code); err == nil {
			return models.Resolution{
				Currency: currency,
				Source:   models.SourceOverride,
			}
		}
		// A misconfigured override resolves like any other total miss.
		return s.defaultResolution(reg)
	}

	if visitor.BillingCountry != "" {
		if code, ok := s.countryToCurrency.Lookup(ctx, visitor.BillingCountry); ok {
			// A known billing country deterministically pins the
			// visitor to one currency.
			reg.DisableExcept(code)
			return models.Resolution{
				Currency: s.byCodeOrDefault(reg, code),
				Source:   models.SourceBilling,
			}
		}
	}

	// Stored intent outranks automatic detection once the cart check is
	// done. A cookie carrying an unmanaged code is ignored, not trusted.
	if visitor.StoredCurrency != "" && reg.HasCode(visitor.StoredCurrency) {
		return models.Resolution{
			Currency: s.byCodeOrDefault(reg, visitor.StoredCurrency),
			Source:   models.SourceCookie,
		}
	}

	if visitor.IP != "" {
		if country, ok := s.ipToCountry.Lookup(ctx, visitor.IP); ok {
			if code, ok := s.countryToCurrency.Lookup(ctx, country); ok {
				return models.Resolution{
					Currency: s.byCodeOrDefault(reg, code),
					Source:   models.SourceGeolocation,
					Persist:  true,
				}
			}
		}
	}

	if visitor.AcceptLanguage != "" {
		if country, ok := s.languageToCountry.Lookup(ctx, visitor.AcceptLanguage); ok {
			if code, ok := s.countryToCurrency.Lookup(ctx, country); ok {
				return models.Resolution{
					Currency: s.byCodeOrDefault(reg, code),
					Source:   models.SourceLanguage,
					Persist:  true,
				}
			}
		}
	}

	return s.defaultResolution(reg)
}

// GetCurrency returns the currency in effect for this visitor: a valid forced
// code wins, then an already-resolved current selection, then a full Detect
// whose result is marked current in the registry.
func (s *ResolverService) GetCurrency(ctx context.Context, reg *models.CurrencyRegistry, visitor models.Visitor, force ...string) models.Resolution {
	if len(force) > 0 && force[0] != "" && s.IsValidCurrency(reg, force[0]) {
		return models.Resolution{
			Currency: s.byCodeOrDefault(reg, force[0]),
			Source:   models.SourceOverride,
		}
	}

	if reg.HasCurrentCurrency() {
		return models.Resolution{
			Currency: reg.GetCurrentCurrency(),
			Source:   models.SourceSession,
		}
	}

	resolution := s.Detect(ctx, reg, visitor)
	reg.SetCurrentCurrency(resolution.Currency)
	return resolution
}

// SetCurrency explicitly selects a currency for the visitor. Invalid codes
// are rejected with apperrors.ErrValidation and leave the registry untouched.
func (s *ResolverService) SetCurrency(ctx context.Context, reg *models.CurrencyRegistry, code string) (models.Resolution, error) {
	if s.batchMode {
		return models.Resolution{}, fmt.Errorf("currency selection is disabled in batch mode: %w", apperrors.ErrValidation)
	}

	if !s.IsValidCurrency(reg, code) {
		return models.Resolution{}, fmt.Errorf("unsupported currency code %q: %w", code, apperrors.ErrValidation)
	}

	currency := s.byCodeOrDefault(reg, code)
	reg.SetCurrentCurrency(currency)

	return models.Resolution{
		Currency: currency,
		Source:   models.SourceSelection,
		Persist:  true,
	}, nil
}

// IsValidCurrency reports whether code may be selected. When a force is
// active only the forced code passes; otherwise any registered code does.
// The override hook is evaluated fresh on every call.
func (s *ResolverService) IsValidCurrency(reg *models.CurrencyRegistry, code string) bool {
	if code == "" {
		return false
	}
	if forced, ok := s.override(); ok {
		return code == forced
	}
	return reg.HasCode(code)
}

// FormatPrice prefixes amount with the display glyph of the current (or
// explicitly given) currency and strips an exact trailing ".00". It performs
// no rounding or conversion.
func (s *ResolverService) FormatPrice(reg *models.CurrencyRegistry, amount string, currencyCode ...string) string {
	symbol := models.SymbolForCode("")
	switch {
	case len(currencyCode) > 0 && currencyCode[0] != "":
		symbol = models.SymbolForCode(currencyCode[0])
	case reg.HasCurrentCurrency():
		symbol = reg.GetCurrentCurrency().Symbol()
	case reg.GetDefaultCurrency() != nil:
		symbol = reg.GetDefaultCurrency().Symbol()
	}

	return fmt.Sprintf("%s %s", symbol, strings.TrimSuffix(amount, ".00"))
}

// byCodeOrDefault resolves a detected code to a registry entry, falling back
// to the registry default when the code is unmanaged.
func (s *ResolverService) byCodeOrDefault(reg *models.CurrencyRegistry, code string) *models.Currency {
	if currency, err := reg.GetByCode(code); err == nil {
		return currency
	}
	return reg.GetDefaultCurrency()
}

func (s *ResolverService) defaultResolution(reg *models.CurrencyRegistry) models.Resolution {
	return models.Resolution{
		Currency: reg.GetDefaultCurrency(),
		Source:   models.SourceDefault,
	}
}
