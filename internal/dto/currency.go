package dto

import (
	"github.com/Yoast/visitor_currency_app/internal/models"
)

// SetCurrencyRequest defines the payload for an explicit currency selection.
type SetCurrencyRequest struct {
	Code string `json:"code" binding:"required,uppercase,len=3"`
}

// CurrencyResponse defines the data returned for a single currency.
type CurrencyResponse struct {
	Code    string `json:"code"`
	Label   string `json:"label"`
	Symbol  string `json:"symbol"`
	Enabled bool   `json:"enabled"`
	Default bool   `json:"default"`
}

// ToCurrencyResponse converts a models.Currency to a CurrencyResponse DTO.
func ToCurrencyResponse(curr *models.Currency) CurrencyResponse {
	return CurrencyResponse{
		Code:    curr.Code,
		Label:   curr.Label,
		Symbol:  curr.Symbol(),
		Enabled: curr.IsEnabled(),
		Default: curr.IsDefault(),
	}
}

// ResolutionResponse defines the data returned for a resolved visitor currency.
type ResolutionResponse struct {
	CurrencyResponse
	Source string `json:"source"`
}

// ToResolutionResponse converts a models.Resolution to a ResolutionResponse DTO.
func ToResolutionResponse(res models.Resolution) ResolutionResponse {
	return ResolutionResponse{
		CurrencyResponse: ToCurrencyResponse(res.Currency),
		Source:           string(res.Source),
	}
}

// ListCurrenciesResponse maps currency codes to display labels.
type ListCurrenciesResponse map[string]string

// FormatPriceResponse defines the data returned for a formatted price.
type FormatPriceResponse struct {
	Formatted string `json:"formatted"`
}
