package webapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Yoast/visitor_currency_app/internal/apperrors"
	portsrepo "github.com/Yoast/visitor_currency_app/internal/core/ports/repositories"
)

// GeolocationClient queries the geolocation provider's JSON endpoint
// (GET <base>/json/<ip>) for the visitor's country code.
type GeolocationClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGeolocationClient creates a geolocation client with a bounded timeout.
// A slow provider must never block a visitor request.
func NewGeolocationClient(baseURL string, timeout time.Duration) *GeolocationClient {
	return &GeolocationClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ portsrepo.GeolocationClient = (*GeolocationClient)(nil)

type geolocationResponse struct {
	CountryCode string `json:"country_code"`
}

// CountryByIP returns the ISO country code for ip. Any non-2xx status or
// malformed body is treated as "unknown" via apperrors.ErrUpstreamUnavailable.
func (c *GeolocationClient) CountryByIP(ctx context.Context, ip string) (string, error) {
	url := fmt.Sprintf("%s/json/%s", c.baseURL, ip)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build geolocation request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("geolocation request for %s failed: %w", ip, apperrors.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("geolocation provider returned status %d: %w", resp.StatusCode, apperrors.ErrUpstreamUnavailable)
	}

	var body geolocationResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("malformed geolocation response: %w", apperrors.ErrUpstreamUnavailable)
	}
	if body.CountryCode == "" {
		return "", fmt.Errorf("geolocation response missing country_code: %w", apperrors.ErrUpstreamUnavailable)
	}

	return body.CountryCode, nil
}
