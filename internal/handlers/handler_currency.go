package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Yoast/visitor_currency_app/internal/apperrors"
	portssvc "github.com/Yoast/visitor_currency_app/internal/core/ports/services"
	"github.com/Yoast/visitor_currency_app/internal/dto"
	"github.com/Yoast/visitor_currency_app/internal/middleware"
	"github.com/Yoast/visitor_currency_app/internal/models"
	"github.com/Yoast/visitor_currency_app/pkg/config"
)

// sucuriClientIPHeader overrides the raw connection address when the site
// runs behind the Sucuri reverse proxy.
const sucuriClientIPHeader = "X-Sucuri-ClientIP"

// currencyHandler handles HTTP requests related to visitor currency resolution.
type currencyHandler struct {
	services *portssvc.ServiceContainer
	cfg      *config.Config
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(services *portssvc.ServiceContainer, cfg *config.Config) *currencyHandler {
	return &currencyHandler{
		services: services,
		cfg:      cfg,
	}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newCurrencyHandler(services, cfg)

	rg.GET("/currency", h.getCurrency)
	rg.PUT("/currency", h.setCurrency)
	rg.GET("/currency/format", h.formatPrice)
	rg.GET("/currencies", h.listCurrencies)
}

// getCurrency godoc
// @Summary Resolve the visitor's display currency
// @Description Runs the detection chain (override, billing country, stored preference, geolocation, language headers, default) and returns the currency in effect for this visitor.
// @Tags currency
// @Produce json
// @Param force query string false "Forced currency code, honored only when valid"
// @Param billing_country formData string false "Checkout billing country, when a cart is in progress"
// @Success 200 {object} dto.ResolutionResponse
// @Failure 500 {object} map[string]string "Resolution failed"
// @Router /currency [get]
func (h *currencyHandler) getCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	reg := h.services.NewRegistry()
	visitor := h.visitorFromRequest(c)

	resolution := h.services.Resolver.GetCurrency(c.Request.Context(), reg, visitor, c.Query("force"))
	if resolution.Currency == nil {
		logger.Error("Resolution produced no currency; registry has no default")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve currency"})
		return
	}

	h.persistPreference(c, resolution)

	logger.Info("Resolved visitor currency",
		slog.String("currency_code", resolution.Currency.Code),
		slog.String("source", string(resolution.Source)),
	)
	c.JSON(http.StatusOK, dto.ToResolutionResponse(resolution))
}

// setCurrency godoc
// @Summary Explicitly select the visitor's currency
// @Description Stores the given currency as the visitor's preference. Rejected when the code is not supported (or does not match an active forced currency).
// @Tags currency
// @Accept json
// @Produce json
// @Param currency body dto.SetCurrencyRequest true "Currency selection"
// @Success 200 {object} dto.ResolutionResponse
// @Failure 400 {object} map[string]string "Invalid or unsupported currency code"
// @Router /currency [put]
func (h *currencyHandler) setCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SetCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			logger.Warn("Validation failed for SetCurrency", slog.String("error", validationErrs.Error()))
		} else {
			logger.Warn("Failed to bind JSON for SetCurrency", slog.String("error", err.Error()))
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	reg := h.services.NewRegistry()
	resolution, err := h.services.Resolver.SetCurrency(c.Request.Context(), reg, req.Code)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Rejected currency selection", slog.String("currency_code", req.Code))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to set currency", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set currency"})
		return
	}

	h.persistPreference(c, resolution)

	logger.Info("Visitor selected currency", slog.String("currency_code", resolution.Currency.Code))
	c.JSON(http.StatusOK, dto.ToResolutionResponse(resolution))
}

// formatPrice godoc
// @Summary Format a price for the visitor's currency
// @Description Prefixes the amount with the display glyph of the visitor's (or explicitly given) currency. No rounding or conversion is performed.
// @Tags currency
// @Produce json
// @Param amount query string true "Decimal amount string, e.g. 10.00"
// @Param code query string false "Currency code overriding the resolved one"
// @Success 200 {object} dto.FormatPriceResponse
// @Failure 400 {object} map[string]string "Missing amount"
// @Router /currency/format [get]
func (h *currencyHandler) formatPrice(c *gin.Context) {
	amount := c.Query("amount")
	if amount == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'amount' is required"})
		return
	}

	reg := h.services.NewRegistry()
	code := c.Query("code")
	if code == "" {
		// Resolve the visitor so the glyph matches what they see elsewhere.
		resolution := h.services.Resolver.GetCurrency(c.Request.Context(), reg, h.visitorFromRequest(c))
		h.persistPreference(c, resolution)
	}

	formatted := h.services.Resolver.FormatPrice(reg, amount, code)
	c.JSON(http.StatusOK, dto.FormatPriceResponse{Formatted: formatted})
}

// listCurrencies godoc
// @Summary List the enabled currencies
// @Description Returns the code → label map of currencies currently enabled for display.
// @Tags currency
// @Produce json
// @Success 200 {object} dto.ListCurrenciesResponse
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	reg := h.services.NewRegistry()
	c.JSON(http.StatusOK, dto.ListCurrenciesResponse(reg.ToArray(true)))
}

// visitorFromRequest collects the request-scoped detection inputs.
func (h *currencyHandler) visitorFromRequest(c *gin.Context) models.Visitor {
	stored, err := c.Cookie(h.cfg.CurrencyCookieName)
	if err != nil {
		stored = ""
	}

	return models.Visitor{
		IP:             h.clientIP(c),
		AcceptLanguage: c.GetHeader("Accept-Language"),
		BillingCountry: c.PostForm("billing_country"),
		StoredCurrency: stored,
	}
}

// clientIP returns the visitor address, preferring the Sucuri proxy header
// over the raw connection address when present.
func (h *currencyHandler) clientIP(c *gin.Context) string {
	if ip := c.GetHeader(sucuriClientIPHeader); ip != "" {
		return ip
	}
	return c.ClientIP()
}

// persistPreference writes the 1-year preference cookie when the resolution
// asks for it, so future requests short-circuit without network lookups.
func (h *currencyHandler) persistPreference(c *gin.Context, resolution models.Resolution) {
	if !resolution.Persist || resolution.Currency == nil {
		return
	}
	c.SetCookie(
		h.cfg.CurrencyCookieName,
		resolution.Currency.Code,
		int(h.cfg.CurrencyCookieMaxAge.Seconds()),
		"/",
		h.cfg.CurrencyCookieDomain,
		h.cfg.IsProduction,
		false,
	)
}
