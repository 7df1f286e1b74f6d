package dto

import (
	"time"

	"github.com/Yoast/visitor_currency_app/internal/models"
)

// VATRefreshResponse defines the data returned after a forced VAT refresh.
type VATRefreshResponse struct {
	RuleCount int       `json:"ruleCount"`
	Countries []string  `json:"countries"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToVATRefreshResponse converts a models.VATRuleSet to a VATRefreshResponse DTO.
func ToVATRefreshResponse(ruleSet *models.VATRuleSet) VATRefreshResponse {
	return VATRefreshResponse{
		RuleCount: len(ruleSet.Rules),
		Countries: ruleSet.CountryCodes(),
		UpdatedAt: ruleSet.UpdatedAt,
	}
}
