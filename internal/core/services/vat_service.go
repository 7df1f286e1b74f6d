package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Yoast/visitor_currency_app/internal/apperrors"
	portsrepo "github.com/Yoast/visitor_currency_app/internal/core/ports/repositories"
	"github.com/Yoast/visitor_currency_app/internal/models"
)

// vatStaleness is the hard business rule for the EU VAT rule set: age of 24
// hours or more means stale and a refresh is attempted. This is a 24-hour
// boundary, not a calendar-day one, and is deliberately not configurable.
const vatStaleness = 24 * time.Hour

// VATService maintains the set of EU member country codes used to classify
// EUR-paying visitors. It refreshes from the external rate provider at most
// once per staleness window and fails open to the last stored rule set when
// the provider is unreachable or returns garbage.
type VATService struct {
	vatRepo   portsrepo.VATRuleRepository
	rateQuery portsrepo.VATRateClient
	now       func() time.Time
}

// NewVATService creates a new VATService.
func NewVATService(vatRepo portsrepo.VATRuleRepository, rateQuery portsrepo.VATRateClient) *VATService {
	return &VATService{
		vatRepo:   vatRepo,
		rateQuery: rateQuery,
		now:       time.Now,
	}
}

// GetEuroVATRules returns the current EU VAT rule set. A stored set younger
// than 24 hours is returned as-is unless forceRefresh is set. Otherwise the
// provider is queried: success replaces the stored set, failure returns the
// previous stored value unchanged. Only when there is no stored value at all
// does a provider failure surface as an error.
func (s *VATService) GetEuroVATRules(ctx context.Context, forceRefresh bool) (*models.VATRuleSet, error) {
	stored, err := s.vatRepo.GetVATRules(ctx)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load stored VAT rules: %w", err)
	}

	if stored != nil && !forceRefresh && stored.Age(s.now()) < vatStaleness {
		return stored, nil
	}

	rules, fetchErr := s.rateQuery.FetchEuroVATRules(ctx)
	if fetchErr != nil || len(rules) == 0 {
		// Fail open to last-known-good; the data is advisory and
		// self-heals on the next successful refresh.
		if stored != nil {
			return stored, nil
		}
		if fetchErr == nil {
			fetchErr = apperrors.ErrUpstreamUnavailable
		}
		return nil, fmt.Errorf("no stored VAT rules to fall back on: %w", fetchErr)
	}

	fresh := models.VATRuleSet{
		Rules:     rules,
		UpdatedAt: s.now(),
	}
	if err := s.vatRepo.SaveVATRules(ctx, fresh); err != nil {
		// The write is best effort: the fetched rules still serve this
		// request, and the next stale read simply refreshes again.
		slog.WarnContext(ctx, "Failed to persist refreshed VAT rules", slog.String("error", err.Error()))
	}

	return &fresh, nil
}

// GetApplicableCountriesInEU derives the flat Eurozone country-code set from
// the current VAT rule set.
func (s *VATService) GetApplicableCountriesInEU(ctx context.Context) ([]string, error) {
	ruleSet, err := s.GetEuroVATRules(ctx, false)
	if err != nil {
		return nil, err
	}
	return ruleSet.CountryCodes(), nil
}
