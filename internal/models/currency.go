package models

// Currency represents a supported display currency.
type Currency struct {
	Code    string `json:"code"`  // Identity key (e.g., "USD")
	Label   string `json:"label"` // e.g., "US Dollar"
	Enabled bool   `json:"enabled"`
	Default bool   `json:"default"`
}

// NewCurrency creates a currency with the given code and label.
// Currencies start enabled and non-default unless flagged otherwise.
func NewCurrency(code, label string, enabled, isDefault bool) *Currency {
	return &Currency{
		Code:    code,
		Label:   label,
		Enabled: enabled,
		Default: isDefault,
	}
}

// IsEnabled reports whether the currency is shown in listings.
func (c *Currency) IsEnabled() bool {
	return c.Enabled
}

// IsDefault reports whether the currency is the registry default.
func (c *Currency) IsDefault() bool {
	return c.Default
}

// Enable marks the currency as enabled.
func (c *Currency) Enable() {
	c.Enabled = true
}

// Disable hides the currency from listings. Disabled currencies remain
// resolvable by code when explicitly forced.
func (c *Currency) Disable() {
	c.Enabled = false
}

// SetDefault sets the default flag. The registry, not the entity, is
// responsible for keeping the default unique.
func (c *Currency) SetDefault(state bool) {
	c.Default = state
}

// Symbol returns the display glyph used when formatting prices.
func (c *Currency) Symbol() string {
	return SymbolForCode(c.Code)
}

// SymbolForCode returns the display glyph for a currency code: "€" for EUR,
// "$" for everything else.
func SymbolForCode(code string) string {
	if code == "EUR" {
		return "€"
	}
	return "$"
}
