package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Yoast/visitor_currency_app/internal/apperrors"
	portssvc "github.com/Yoast/visitor_currency_app/internal/core/ports/services"
	"github.com/Yoast/visitor_currency_app/internal/core/services"
	"github.com/Yoast/visitor_currency_app/internal/models"
)

// --- Mock Lookup ---
type MockLookup struct {
	mock.Mock
}

func (m *MockLookup) Lookup(ctx context.Context, input string) (string, bool) {
	args := m.Called(ctx, input)
	return args.String(0), args.Bool(1)
}

var _ portssvc.Lookup = (*MockLookup)(nil)

// missLookup always fails to determine a value.
func missLookup() *MockLookup {
	l := new(MockLookup)
	l.On("Lookup", mock.Anything, mock.Anything).Return("", false).Maybe()
	return l
}

// --- Test Suite ---
type ResolverServiceTestSuite struct {
	suite.Suite
	ipToCountry       *MockLookup
	countryToCurrency *MockLookup
	languageToCountry *MockLookup
	overrideCode      string
	reg               *models.CurrencyRegistry
}

func (suite *ResolverServiceTestSuite) SetupTest() {
	suite.ipToCountry = missLookup()
	suite.countryToCurrency = missLookup()
	suite.languageToCountry = missLookup()
	suite.overrideCode = ""
	suite.reg = services.NewDefaultRegistry()
}

func (suite *ResolverServiceTestSuite) newResolver() *services.ResolverService {
	return services.NewResolverService(
		suite.ipToCountry,
		suite.countryToCurrency,
		suite.languageToCountry,
		func() (string, bool) { return suite.overrideCode, suite.overrideCode != "" },
		false,
	)
}

func (suite *ResolverServiceTestSuite) TestOverrideBeatsEverything() {
	suite.overrideCode = "EUR"
	resolver := suite.newResolver()

	// Cookie, billing country and IP are all present, and all lose.
	visitor := models.Visitor{
		IP:             "1.2.3.4",
		BillingCountry: "US",
		StoredCurrency: "USD",
	}

	resolution := resolver.Detect(context.Background(), suite.reg, visitor)

	suite.Equal("EUR", resolution.Currency.Code)
	suite.Equal(models.SourceOverride, resolution.Source)
	suite.False(resolution.Persist)
	suite.countryToCurrency.AssertNotCalled(suite.T(), "Lookup", mock.Anything, mock.Anything)
}

func (suite *ResolverServiceTestSuite) TestUnmanagedOverrideReportsDefaultSource() {
	suite.overrideCode = "XYZ"
	resolver := suite.newResolver()

	resolution := resolver.Detect(context.Background(), suite.reg, models.Visitor{})

	suite.Equal("USD", resolution.Currency.Code)
	suite.Equal(models.SourceDefault, resolution.Source)
	suite.False(resolution.Persist)
}

func (suite *ResolverServiceTestSuite) TestBillingCountryPinsRegistry() {
	suite.countryToCurrency = new(MockLookup)
	suite.countryToCurrency.On("Lookup", mock.Anything, "NL").Return("EUR", true).Once()
	resolver := suite.newResolver()

	visitor := models.Visitor{BillingCountry: "NL", StoredCurrency: "USD"}
	resolution := resolver.Detect(context.Background(), suite.reg, visitor)

	suite.Equal("EUR", resolution.Currency.Code)
	suite.Equal(models.SourceBilling, resolution.Source)

	// disableExcept: USD is disabled and un-defaulted, EUR promoted.
	usd, err := suite.reg.GetByCode("USD")
	suite.NoError(err)
	suite.False(usd.IsEnabled())
	suite.False(usd.IsDefault())
	suite.True(resolution.Currency.IsDefault())
}

func (suite *ResolverServiceTestSuite) TestStoredPreferenceOutranksDetection() {
	resolver := suite.newResolver()

	visitor := models.Visitor{IP: "1.2.3.4", StoredCurrency: "EUR"}
	resolution := resolver.Detect(context.Background(), suite.reg, visitor)

	suite.Equal("EUR", resolution.Currency.Code)
	suite.Equal(models.SourceCookie, resolution.Source)
	suite.False(resolution.Persist)
	suite.ipToCountry.AssertNotCalled(suite.T(), "Lookup", mock.Anything, mock.Anything)
}

func (suite *ResolverServiceTestSuite) TestPoisonedCookieFallsThrough() {
	resolver := suite.newResolver()

	visitor := models.Visitor{StoredCurrency: "XYZ"}
	resolution := resolver.Detect(context.Background(), suite.reg, visitor)

	suite.Equal("USD", resolution.Currency.Code)
	suite.Equal(models.SourceDefault, resolution.Source)
}

func (suite *ResolverServiceTestSuite) TestGeolocationResolvesAndPersists() {
	suite.ipToCountry = new(MockLookup)
	suite.ipToCountry.On("Lookup", mock.Anything, "82.94.1.1").Return("FR", true).Once()
	suite.countryToCurrency = new(MockLookup)
	suite.countryToCurrency.On("Lookup", mock.Anything, "FR").Return("EUR", true).Once()
	resolver := suite.newResolver()

	resolution := resolver.Detect(context.Background(), suite.reg, models.Visitor{IP: "82.94.1.1"})

	suite.Equal("EUR", resolution.Currency.Code)
	suite.Equal(models.SourceGeolocation, resolution.Source)
	suite.True(resolution.Persist)
}

func (suite *ResolverServiceTestSuite) TestGeolocationMissFallsThroughToLanguage() {
	suite.languageToCountry = new(MockLookup)
	suite.languageToCountry.On("Lookup", mock.Anything, "nl-NL,nl;q=0.9").Return("NL", true).Once()
	suite.countryToCurrency = new(MockLookup)
	suite.countryToCurrency.On("Lookup", mock.Anything, "NL").Return("EUR", true).Once()
	resolver := suite.newResolver()

	visitor := models.Visitor{IP: "1.2.3.4", AcceptLanguage: "nl-NL,nl;q=0.9"}
	resolution := resolver.Detect(context.Background(), suite.reg, visitor)

	suite.Equal("EUR", resolution.Currency.Code)
	suite.Equal(models.SourceLanguage, resolution.Source)
	suite.True(resolution.Persist)
}

func (suite *ResolverServiceTestSuite) TestAllPathsFailingResolvesDefault() {
	resolver := suite.newResolver()

	visitor := models.Visitor{IP: "1.2.3.4", AcceptLanguage: "ja-JP"}
	resolution := resolver.Detect(context.Background(), suite.reg, visitor)

	suite.Equal("USD", resolution.Currency.Code)
	suite.Equal(models.SourceDefault, resolution.Source)
	suite.False(resolution.Persist)
}

func (suite *ResolverServiceTestSuite) TestDetectedUnmanagedCodeFallsBackToDefault() {
	suite.ipToCountry = new(MockLookup)
	suite.ipToCountry.On("Lookup", mock.Anything, "1.2.3.4").Return("GB", true).Once()
	suite.countryToCurrency = new(MockLookup)
	suite.countryToCurrency.On("Lookup", mock.Anything, "GB").Return("GBP", true).Once()
	resolver := suite.newResolver()

	resolution := resolver.Detect(context.Background(), suite.reg, models.Visitor{IP: "1.2.3.4"})

	suite.Equal("USD", resolution.Currency.Code, "unmanaged detected code resolves to registry default")
}

func (suite *ResolverServiceTestSuite) TestGetCurrencyReusesCurrentSelection() {
	resolver := suite.newResolver()
	eur, err := suite.reg.GetByCode("EUR")
	suite.NoError(err)
	suite.reg.SetCurrentCurrency(eur)

	resolution := resolver.GetCurrency(context.Background(), suite.reg, models.Visitor{})

	suite.Equal("EUR", resolution.Currency.Code)
	suite.Equal(models.SourceSession, resolution.Source)
}

func (suite *ResolverServiceTestSuite) TestGetCurrencyMarksResultCurrent() {
	resolver := suite.newResolver()

	resolution := resolver.GetCurrency(context.Background(), suite.reg, models.Visitor{})

	suite.Equal("USD", resolution.Currency.Code)
	suite.True(suite.reg.HasCurrentCurrency())
	suite.Same(resolution.Currency, suite.reg.GetCurrentCurrency())
}

func (suite *ResolverServiceTestSuite) TestGetCurrencyHonorsValidForce() {
	resolver := suite.newResolver()

	resolution := resolver.GetCurrency(context.Background(), suite.reg, models.Visitor{StoredCurrency: "USD"}, "EUR")

	suite.Equal("EUR", resolution.Currency.Code)
	suite.Equal(models.SourceOverride, resolution.Source)
}

func (suite *ResolverServiceTestSuite) TestSetCurrencyRejectsUnsupportedCode() {
	resolver := suite.newResolver()

	_, err := resolver.SetCurrency(context.Background(), suite.reg, "XYZ")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.False(suite.reg.HasCurrentCurrency(), "rejected selection must not mutate state")
}

func (suite *ResolverServiceTestSuite) TestSetCurrencySucceedsAndPersists() {
	resolver := suite.newResolver()

	resolution, err := resolver.SetCurrency(context.Background(), suite.reg, "EUR")

	suite.NoError(err)
	suite.Equal("EUR", resolution.Currency.Code)
	suite.True(resolution.Persist)
	suite.Equal("EUR", suite.reg.GetCurrentCurrency().Code)
}

func (suite *ResolverServiceTestSuite) TestIsValidCurrencyWithActiveOverride() {
	suite.overrideCode = "EUR"
	resolver := suite.newResolver()

	suite.True(resolver.IsValidCurrency(suite.reg, "EUR"))
	suite.False(resolver.IsValidCurrency(suite.reg, "USD"), "only the forced code passes while a force is active")
}

func (suite *ResolverServiceTestSuite) TestBatchModeShortCircuitsToDefault() {
	resolver := services.NewResolverService(
		suite.ipToCountry,
		suite.countryToCurrency,
		suite.languageToCountry,
		func() (string, bool) { return "EUR", true },
		true,
	)

	resolution := resolver.Detect(context.Background(), suite.reg, models.Visitor{IP: "1.2.3.4", StoredCurrency: "EUR"})
	suite.Equal("USD", resolution.Currency.Code)
	suite.Equal(models.SourceDefault, resolution.Source)
	suite.False(resolution.Persist)
	suite.ipToCountry.AssertNotCalled(suite.T(), "Lookup", mock.Anything, mock.Anything)

	_, err := resolver.SetCurrency(context.Background(), suite.reg, "EUR")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ResolverServiceTestSuite) TestFormatPrice() {
	resolver := suite.newResolver()

	tests := []struct {
		name   string
		amount string
		code   []string
		want   string
	}{
		{name: "whole amount strips cents", amount: "10.00", want: "$ 10"},
		{name: "explicit euro", amount: "10.00", code: []string{"EUR"}, want: "€ 10"},
		{name: "fractional amount untouched", amount: "10.50", want: "$ 10.50"},
		{name: "only exact .00 suffix is stripped", amount: "10.001", want: "$ 10.001"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.Equal(tt.want, resolver.FormatPrice(suite.reg, tt.amount, tt.code...))
		})
	}
}

func (suite *ResolverServiceTestSuite) TestFormatPriceUsesCurrentCurrency() {
	resolver := suite.newResolver()
	eur, err := suite.reg.GetByCode("EUR")
	suite.NoError(err)
	suite.reg.SetCurrentCurrency(eur)

	suite.Equal("€ 25", resolver.FormatPrice(suite.reg, "25.00"))
}

func TestResolverServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ResolverServiceTestSuite))
}
