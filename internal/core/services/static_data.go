package services

import "github.com/Yoast/visitor_currency_app/internal/models"

// NewDefaultRegistry seeds the fixed currency set the application supports:
// EUR (enabled) and USD (enabled, default). Called once per request so the
// current-selection state stays request-scoped.
func NewDefaultRegistry() *models.CurrencyRegistry {
	reg := models.NewCurrencyRegistry()
	reg.AddCurrency(models.NewCurrency("EUR", "Euro", true, false))
	reg.AddCurrency(models.NewCurrency("USD", "US Dollar", true, true))
	return reg
}
