package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/ODInternational04/aboi-backend/internal/apperrors"
	portssvc "github.com/ODInternational04/aboi-backend/internal/core/ports/services"
	"github.com/ODInternational04/aboi-backend/internal/dto"
	"github.com/ODInternational04/aboi-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// rateHandler handles HTTP requests related to exchange rates.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

// newRateHandler creates a new rateHandler.
func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{
		rateService: rs,
	}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.GET("/current/:from/:to", h.getCurrentRate)
		rates.GET("/latest/:from/:to", h.getLatestPersistedRate)
		rates.GET("/history/:from/:to", h.getRateHistory)
		rates.GET("/table/:base", h.getRateTable)
		rates.POST("/convert", h.convertCurrency)
	}
}

// getCurrentRate resolves the current rate for a pair through the fallback
// chain. Resolution cannot fail, so this always returns 200 for valid codes.
func (h *rateHandler) getCurrentRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fromCode := c.Param("from")
	toCode := c.Param("to")

	if len(fromCode) != 3 || len(toCode) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency codes must be 3 letters"})
		return
	}

	rate := h.rateService.GetRate(c.Request.Context(), fromCode, toCode)

	logger.Info("Current rate resolved",
		slog.String("from", fromCode),
		slog.String("to", toCode),
		slog.String("rate", rate.String()),
	)
	c.JSON(http.StatusOK, gin.H{
		"fromCurrency": strings.ToUpper(fromCode),
		"toCurrency":   strings.ToUpper(toCode),
		"rate":         rate,
	})
}

// getLatestPersistedRate retrieves the most recent persisted rate row for a
// pair, regardless of age.
func (h *rateHandler) getLatestPersistedRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fromCode := c.Param("from")
	toCode := c.Param("to")

	if len(fromCode) != 3 || len(toCode) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency codes must be 3 letters"})
		return
	}

	rate, err := h.rateService.GetLatestExchangeRate(c.Request.Context(), fromCode, toCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Exchange rate not found", slog.String("from", fromCode), slog.String("to", toCode))
			c.JSON(http.StatusNotFound, gin.H{"error": "Exchange rate not found"})
		} else {
			logger.Error("Failed to get exchange rate from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exchange rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// getRateHistory retrieves persisted rates for a pair, newest first.
func (h *rateHandler) getRateHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fromCode := c.Param("from")
	toCode := c.Param("to")

	if len(fromCode) != 3 || len(toCode) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency codes must be 3 letters"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	history, err := h.rateService.GetExchangeRateHistory(c.Request.Context(), fromCode, toCode, limit)
	if err != nil {
		logger.Error("Failed to get exchange rate history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exchange rate history"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(history))
}

// getRateTable resolves many targets against one base currency. Targets come
// from the comma-separated "targets" query parameter.
func (h *rateHandler) getRateTable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	base := c.Param("base")

	if len(base) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency codes must be 3 letters"})
		return
	}

	var targets []string
	for _, t := range strings.Split(c.Query("targets"), ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if len(t) != 3 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Currency codes must be 3 letters"})
			return
		}
		targets = append(targets, t)
	}
	if len(targets) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one target currency is required"})
		return
	}

	rates := h.rateService.GetRates(c.Request.Context(), base, targets)

	logger.Info("Rate table resolved",
		slog.String("base", base),
		slog.Int("targets", len(targets)),
	)
	c.JSON(http.StatusOK, dto.RateTableResponse{
		BaseCurrency: strings.ToUpper(base),
		Rates:        rates,
	})
}

// convertCurrency converts an amount between two currencies at the current
// resolved rate.
func (h *rateHandler) convertCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConvertCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	converted, rate, err := h.rateService.ConvertCurrency(c.Request.Context(), req.Amount, req.FromCurrency, req.ToCurrency)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error converting currency", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to convert currency", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert currency"})
		}
		return
	}

	logger.Info("Currency converted",
		slog.String("from", req.FromCurrency),
		slog.String("to", req.ToCurrency),
		slog.String("rate", rate.String()),
	)
	c.JSON(http.StatusOK, dto.ConvertCurrencyResponse{
		Amount:          req.Amount,
		FromCurrency:    strings.ToUpper(req.FromCurrency),
		ToCurrency:      strings.ToUpper(req.ToCurrency),
		Rate:            rate,
		ConvertedAmount: converted,
	})
}
