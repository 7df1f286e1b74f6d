package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VATRule is a single EU member VAT entry as served by the rate provider.
type VATRule struct {
	CountryCode  string              `json:"code"`
	Country      string              `json:"country,omitempty"`
	StandardRate decimal.Decimal     `json:"standard_rate"`
	ReducedRate  decimal.NullDecimal `json:"reduced_rate,omitempty"`
}

// VATRuleSet is the stored `yst_vat_euro` payload: the current EU rule set
// plus the moment it was last fetched from the provider.
type VATRuleSet struct {
	Rules     []VATRule `json:"rules"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Age returns how long ago the rule set was refreshed.
func (s *VATRuleSet) Age(now time.Time) time.Duration {
	return now.Sub(s.UpdatedAt)
}

// CountryCodes flattens the rule set into the Eurozone country-code list.
func (s *VATRuleSet) CountryCodes() []string {
	codes := make([]string, 0, len(s.Rules))
	for _, rule := range s.Rules {
		codes = append(codes, rule.CountryCode)
	}
	return codes
}
