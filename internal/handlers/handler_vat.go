package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/Yoast/visitor_currency_app/internal/core/ports/services"
	"github.com/Yoast/visitor_currency_app/internal/dto"
	"github.com/Yoast/visitor_currency_app/internal/middleware"
)

// vatHandler handles HTTP requests related to the EU VAT rule set.
type vatHandler struct {
	vatService portssvc.VATSvcFacade
}

// newVATHandler creates a new vatHandler.
func newVATHandler(vatService portssvc.VATSvcFacade) *vatHandler {
	return &vatHandler{vatService: vatService}
}

// registerVATRoutes registers routes related to VAT data.
func registerVATRoutes(rg *gin.RouterGroup, vatService portssvc.VATSvcFacade) {
	h := newVATHandler(vatService)

	vat := rg.Group("/vat")
	{
		vat.POST("/refresh", h.refreshRules)
		vat.GET("/countries", h.listCountries)
	}
}

// refreshRules godoc
// @Summary Force a refresh of the EU VAT rule set
// @Description Bypasses the staleness window and refetches the rule set from the rate provider. Falls back to the stored rule set when the provider is unavailable.
// @Tags vat
// @Produce json
// @Success 200 {object} dto.VATRefreshResponse
// @Failure 502 {object} map[string]string "Provider unavailable and nothing stored"
// @Router /vat/refresh [post]
func (h *vatHandler) refreshRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ruleSet, err := h.vatService.GetEuroVATRules(c.Request.Context(), true)
	if err != nil {
		logger.Error("VAT refresh failed with no stored fallback", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "VAT rate provider unavailable"})
		return
	}

	logger.Info("VAT rule set refreshed", slog.Int("rule_count", len(ruleSet.Rules)))
	c.JSON(http.StatusOK, dto.ToVATRefreshResponse(ruleSet))
}

// listCountries godoc
// @Summary List the current Eurozone country codes
// @Description Returns the flat country-code set derived from the stored VAT rule set.
// @Tags vat
// @Produce json
// @Success 200 {object} []string
// @Failure 502 {object} map[string]string "Provider unavailable and nothing stored"
// @Router /vat/countries [get]
func (h *vatHandler) listCountries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	countries, err := h.vatService.GetApplicableCountriesInEU(c.Request.Context())
	if err != nil {
		logger.Error("Failed to derive Eurozone set", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "VAT rate provider unavailable"})
		return
	}

	c.JSON(http.StatusOK, countries)
}
