package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Yoast/visitor_currency_app/internal/apperrors"
	"github.com/Yoast/visitor_currency_app/internal/core/services"
	"github.com/Yoast/visitor_currency_app/internal/models"
)

// --- Mock VATRuleRepository ---
type MockVATRuleRepository struct {
	mock.Mock
}

func (m *MockVATRuleRepository) GetVATRules(ctx context.Context) (*models.VATRuleSet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VATRuleSet), args.Error(1)
}

func (m *MockVATRuleRepository) SaveVATRules(ctx context.Context, rules models.VATRuleSet) error {
	args := m.Called(ctx, rules)
	return args.Error(0)
}

// --- Mock VATRateClient ---
type MockVATRateClient struct {
	mock.Mock
}

func (m *MockVATRateClient) FetchEuroVATRules(ctx context.Context) ([]models.VATRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VATRule), args.Error(1)
}

// --- Test Suite ---
type VATServiceTestSuite struct {
	suite.Suite
	mockRepo   *MockVATRuleRepository
	mockClient *MockVATRateClient
	service    *services.VATService
}

func (suite *VATServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockVATRuleRepository)
	suite.mockClient = new(MockVATRateClient)
	suite.service = services.NewVATService(suite.mockRepo, suite.mockClient)
}

func storedRuleSet(age time.Duration) *models.VATRuleSet {
	return &models.VATRuleSet{
		Rules: []models.VATRule{
			{CountryCode: "NL", StandardRate: decimal.NewFromInt(21)},
			{CountryCode: "FR", StandardRate: decimal.NewFromInt(20)},
		},
		UpdatedAt: time.Now().Add(-age),
	}
}

func (suite *VATServiceTestSuite) TestFreshRulesSkipProvider() {
	ctx := context.Background()
	stored := storedRuleSet(23 * time.Hour)

	suite.mockRepo.On("GetVATRules", ctx).Return(stored, nil).Once()

	ruleSet, err := suite.service.GetEuroVATRules(ctx, false)

	suite.NoError(err)
	suite.Equal(stored, ruleSet)
	suite.mockClient.AssertNotCalled(suite.T(), "FetchEuroVATRules", mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *VATServiceTestSuite) TestStaleRulesTriggerRefresh() {
	ctx := context.Background()
	stored := storedRuleSet(25 * time.Hour)
	freshRules := []models.VATRule{
		{CountryCode: "NL", StandardRate: decimal.NewFromInt(21)},
		{CountryCode: "DE", StandardRate: decimal.NewFromInt(19)},
	}

	suite.mockRepo.On("GetVATRules", ctx).Return(stored, nil).Once()
	suite.mockClient.On("FetchEuroVATRules", ctx).Return(freshRules, nil).Once()
	suite.mockRepo.On("SaveVATRules", ctx, mock.MatchedBy(func(set models.VATRuleSet) bool {
		return len(set.Rules) == 2 && time.Since(set.UpdatedAt) < time.Minute
	})).Return(nil).Once()

	ruleSet, err := suite.service.GetEuroVATRules(ctx, false)

	suite.NoError(err)
	suite.Equal(freshRules, ruleSet.Rules)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockClient.AssertExpectations(suite.T())
}

func (suite *VATServiceTestSuite) TestFailedSaveStillReturnsFreshRules() {
	ctx := context.Background()
	stored := storedRuleSet(25 * time.Hour)
	freshRules := []models.VATRule{
		{CountryCode: "NL", StandardRate: decimal.NewFromInt(21)},
		{CountryCode: "DE", StandardRate: decimal.NewFromInt(19)},
	}

	suite.mockRepo.On("GetVATRules", ctx).Return(stored, nil).Once()
	suite.mockClient.On("FetchEuroVATRules", ctx).Return(freshRules, nil).Once()
	suite.mockRepo.On("SaveVATRules", ctx, mock.Anything).Return(errors.New("db write failed")).Once()

	ruleSet, err := suite.service.GetEuroVATRules(ctx, false)

	suite.NoError(err)
	suite.Require().NotNil(ruleSet)
	suite.Equal(freshRules, ruleSet.Rules)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *VATServiceTestSuite) TestRefreshFailureReturnsStoredUnchanged() {
	ctx := context.Background()
	stored := storedRuleSet(25 * time.Hour)

	suite.mockRepo.On("GetVATRules", ctx).Return(stored, nil).Once()
	suite.mockClient.On("FetchEuroVATRules", ctx).Return(nil, apperrors.ErrUpstreamUnavailable).Once()

	ruleSet, err := suite.service.GetEuroVATRules(ctx, false)

	suite.NoError(err)
	suite.Equal(stored, ruleSet)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveVATRules", mock.Anything, mock.Anything)
}

func (suite *VATServiceTestSuite) TestEmptyProviderResponseFailsOpen() {
	ctx := context.Background()
	stored := storedRuleSet(25 * time.Hour)

	suite.mockRepo.On("GetVATRules", ctx).Return(stored, nil).Once()
	suite.mockClient.On("FetchEuroVATRules", ctx).Return([]models.VATRule{}, nil).Once()

	ruleSet, err := suite.service.GetEuroVATRules(ctx, false)

	suite.NoError(err)
	suite.Equal(stored, ruleSet)
}

func (suite *VATServiceTestSuite) TestForceRefreshBypassesStalenessWindow() {
	ctx := context.Background()
	stored := storedRuleSet(time.Hour)
	freshRules := []models.VATRule{{CountryCode: "NL", StandardRate: decimal.NewFromInt(21)}}

	suite.mockRepo.On("GetVATRules", ctx).Return(stored, nil).Once()
	suite.mockClient.On("FetchEuroVATRules", ctx).Return(freshRules, nil).Once()
	suite.mockRepo.On("SaveVATRules", ctx, mock.Anything).Return(nil).Once()

	ruleSet, err := suite.service.GetEuroVATRules(ctx, true)

	suite.NoError(err)
	suite.Equal(freshRules, ruleSet.Rules)
	suite.mockClient.AssertExpectations(suite.T())
}

func (suite *VATServiceTestSuite) TestProviderFailureWithNothingStoredErrors() {
	ctx := context.Background()

	suite.mockRepo.On("GetVATRules", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockClient.On("FetchEuroVATRules", ctx).Return(nil, apperrors.ErrUpstreamUnavailable).Once()

	_, err := suite.service.GetEuroVATRules(ctx, false)

	suite.Error(err)
	suite.True(errors.Is(err, apperrors.ErrUpstreamUnavailable))
}

func (suite *VATServiceTestSuite) TestGetApplicableCountriesInEU() {
	ctx := context.Background()
	stored := storedRuleSet(time.Hour)

	suite.mockRepo.On("GetVATRules", ctx).Return(stored, nil).Once()

	countries, err := suite.service.GetApplicableCountriesInEU(ctx)

	suite.NoError(err)
	suite.Equal([]string{"NL", "FR"}, countries)
}

func TestVATServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VATServiceTestSuite))
}

func TestVATRuleSet_Age(t *testing.T) {
	set := models.VATRuleSet{UpdatedAt: time.Now().Add(-2 * time.Hour)}
	assert.InDelta(t, (2 * time.Hour).Seconds(), set.Age(time.Now()).Seconds(), 1)
}
