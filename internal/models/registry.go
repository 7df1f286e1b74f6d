package models

import (
	"fmt"

	"github.com/Yoast/visitor_currency_app/internal/apperrors"
)

// CurrencyRegistry owns the set of supported currencies, keyed by code.
// It enforces code uniqueness, keeps at most one default, and guards the
// current selection against unmanaged currencies.
//
// A registry is request-scoped state: construct one per request (or pass a
// fresh one into the resolver) instead of sharing a mutable instance across
// concurrent requests.
type CurrencyRegistry struct {
	currencies map[string]*Currency
	order      []string // insertion order, for stable listings
	defaultCur *Currency
	currentCur *Currency
}

// NewCurrencyRegistry creates an empty registry.
func NewCurrencyRegistry() *CurrencyRegistry {
	return &CurrencyRegistry{
		currencies: make(map[string]*Currency),
	}
}

// AddCurrency adds a currency to the registry. Adding a code that already
// exists is a no-op and leaves the original entry unchanged. If the added
// currency is flagged default it becomes the sole default.
func (r *CurrencyRegistry) AddCurrency(currency *Currency) {
	if currency == nil || !r.IsUnique(currency) {
		return
	}

	r.currencies[currency.Code] = currency
	r.order = append(r.order, currency.Code)

	if currency.IsDefault() {
		if r.defaultCur != nil && r.defaultCur != currency {
			r.defaultCur.SetDefault(false)
		}
		r.defaultCur = currency
	}
}

// RemoveCurrency removes a currency from the registry. Unknown currencies are
// a no-op.
func (r *CurrencyRegistry) RemoveCurrency(currency *Currency) {
	if currency == nil || !r.IsSupported(currency) {
		return
	}

	delete(r.currencies, currency.Code)
	for i, code := range r.order {
		if code == currency.Code {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	if r.defaultCur != nil && r.defaultCur.Code == currency.Code {
		r.defaultCur = nil
	}
	if r.currentCur != nil && r.currentCur.Code == currency.Code {
		r.currentCur = nil
	}
}

// IsUnique reports whether the currency's code is not yet registered.
func (r *CurrencyRegistry) IsUnique(currency *Currency) bool {
	return !r.IsSupported(currency)
}

// IsSupported reports whether a currency with the same code is registered.
func (r *CurrencyRegistry) IsSupported(currency *Currency) bool {
	if currency == nil {
		return false
	}
	_, ok := r.currencies[currency.Code]
	return ok
}

// HasCode reports whether a currency with the given code is registered.
func (r *CurrencyRegistry) HasCode(code string) bool {
	_, ok := r.currencies[code]
	return ok
}

// GetCurrencies returns all managed currencies in insertion order.
func (r *CurrencyRegistry) GetCurrencies() []*Currency {
	result := make([]*Currency, 0, len(r.order))
	for _, code := range r.order {
		result = append(result, r.currencies[code])
	}
	return result
}

// GetEnabledCurrencies returns the enabled currencies in insertion order.
func (r *CurrencyRegistry) GetEnabledCurrencies() []*Currency {
	result := make([]*Currency, 0, len(r.order))
	for _, code := range r.order {
		if currency := r.currencies[code]; currency.IsEnabled() {
			result = append(result, currency)
		}
	}
	return result
}

// GetCodes returns the codes of all managed currencies in insertion order.
func (r *CurrencyRegistry) GetCodes() []string {
	codes := make([]string, len(r.order))
	copy(codes, r.order)
	return codes
}

// ToArray projects the registry to a code → label map for display purposes,
// optionally excluding disabled currencies.
func (r *CurrencyRegistry) ToArray(onlyEnabled bool) map[string]string {
	result := make(map[string]string, len(r.order))
	for _, code := range r.order {
		currency := r.currencies[code]
		if onlyEnabled && !currency.IsEnabled() {
			continue
		}
		result[code] = currency.Label
	}
	return result
}

// GetDefaultCurrency returns the currency flagged default, or nil.
func (r *CurrencyRegistry) GetDefaultCurrency() *Currency {
	return r.defaultCur
}

// HasCurrentCurrency reports whether a current selection has been made.
func (r *CurrencyRegistry) HasCurrentCurrency() bool {
	return r.currentCur != nil
}

// SetCurrentCurrency records the current selection. Setting a currency that
// is not managed by the registry is silently ignored.
func (r *CurrencyRegistry) SetCurrentCurrency(currency *Currency) {
	if !r.IsSupported(currency) {
		return
	}
	r.currentCur = currency
}

// GetCurrentCurrency returns the current selection, or nil.
func (r *CurrencyRegistry) GetCurrentCurrency() *Currency {
	return r.currentCur
}

// GetByCode returns the managed currency with the given code. Unlike the
// lookup misses elsewhere, an unmanaged code here is a programmer or
// configuration error and fails with apperrors.ErrNotFound.
func (r *CurrencyRegistry) GetByCode(code string) (*Currency, error) {
	currency, ok := r.currencies[code]
	if !ok {
		return nil, fmt.Errorf("no currency with code %q: %w", code, apperrors.ErrNotFound)
	}
	return currency, nil
}

// DisableExcept switches the registry to single-currency mode: every currency
// except the one matching code is disabled and un-defaulted, and the matching
// one is enabled and promoted to default. The effect is total; all entries'
// flags are overwritten. An unmanaged code is a no-op, so the registry never
// ends up with every currency disabled.
func (r *CurrencyRegistry) DisableExcept(code string) {
	if !r.HasCode(code) {
		return
	}
	for _, currency := range r.currencies {
		if currency.Code != code {
			currency.Disable()
			currency.SetDefault(false)
			continue
		}

		currency.Enable()
		currency.SetDefault(true)
		r.defaultCur = currency
	}
}
