package webapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Yoast/visitor_currency_app/internal/apperrors"
	portsrepo "github.com/Yoast/visitor_currency_app/internal/core/ports/repositories"
	"github.com/Yoast/visitor_currency_app/internal/models"
)

// VATRateClient fetches the EU VAT rate list from the rate provider
// (GET <url>, e.g. http://jsonvat.com/). A 200 status is required; anything
// else counts as unavailable.
type VATRateClient struct {
	url        string
	httpClient *http.Client
}

// NewVATRateClient creates a VAT rate client with a bounded timeout.
func NewVATRateClient(url string, timeout time.Duration) *VATRateClient {
	return &VATRateClient{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ portsrepo.VATRateClient = (*VATRateClient)(nil)

type vatRatesResponse struct {
	Rates []models.VATRule `json:"rates"`
}

// FetchEuroVATRules returns the provider's current rule list.
func (c *VATRateClient) FetchEuroVATRules(ctx context.Context) ([]models.VATRule, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build VAT rates request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("VAT rates request failed: %w", apperrors.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("VAT rate provider returned status %d: %w", resp.StatusCode, apperrors.ErrUpstreamUnavailable)
	}

	var body vatRatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("malformed VAT rates response: %w", apperrors.ErrUpstreamUnavailable)
	}

	return body.Rates, nil
}
