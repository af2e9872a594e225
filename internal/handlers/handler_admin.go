package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ODInternational04/aboi-backend/internal/apperrors"
	"github.com/ODInternational04/aboi-backend/internal/core/domain"
	portssvc "github.com/ODInternational04/aboi-backend/internal/core/ports/services"
	"github.com/ODInternational04/aboi-backend/internal/dto"
	"github.com/ODInternational04/aboi-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adminHandler handles the operator write paths.
type adminHandler struct {
	priceUpdateService portssvc.PriceUpdateSvcFacade
}

// newAdminHandler creates a new adminHandler.
func newAdminHandler(ps portssvc.PriceUpdateSvcFacade) *adminHandler {
	return &adminHandler{
		priceUpdateService: ps,
	}
}

// registerAdminRoutes registers the operator mutation routes. The caller is
// expected to guard the group with operator identity middleware.
func registerAdminRoutes(rg *gin.RouterGroup, priceUpdateService portssvc.PriceUpdateSvcFacade) {
	h := newAdminHandler(priceUpdateService)

	rg.POST("/prices/update", h.triggerPriceUpdate)
	rg.PUT("/commodities/:commodityID/price", h.updateCommodityPrice)
	rg.PUT("/commodities/:commodityID/range", h.updatePriceRange)
}

// triggerPriceUpdate runs one full update cycle on demand.
func (h *adminHandler) triggerPriceUpdate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	operator, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		logger.Error("Operator ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("operator", operator))
	logger.Info("Received request to run price update cycle")

	result, err := h.priceUpdateService.UpdateDailyPrices(c.Request.Context(), &operator, domain.TriggerSourceManual)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Update cycle already running")
			c.JSON(http.StatusConflict, gin.H{"error": "An update cycle is already running"})
		case errors.Is(err, apperrors.ErrRateUnavailable):
			logger.Error("No usable exchange rate for update cycle", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No usable exchange rate available"})
		default:
			logger.Error("Failed to run price update cycle", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run price update cycle"})
		}
		return
	}

	logger.Info("Price update cycle completed",
		slog.Int("updated", result.Updated),
		slog.Int("total", result.Total),
		slog.Int("skipped", len(result.Skipped)),
		slog.Int("failures", len(result.Failures)),
	)
	c.JSON(http.StatusOK, dto.ToPriceUpdateResponse(result))
}

// updateCommodityPrice writes one commodity's price by hand.
func (h *adminHandler) updateCommodityPrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	commodityID := c.Param("commodityID")

	operator, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		logger.Error("Operator ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateCommodityPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCommodityPrice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("operator", operator), slog.String("commodity_id", commodityID))
	logger.Info("Received request to update commodity price")

	price, err := h.priceUpdateService.UpdateCommodityPrice(c.Request.Context(), commodityID, req, operator)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating commodity price", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Commodity not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Commodity not found"})
		default:
			logger.Error("Failed to update commodity price", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update commodity price"})
		}
		return
	}

	logger.Info("Commodity price updated", slog.String("price_zar", price.PriceZAR.String()))
	c.JSON(http.StatusOK, dto.ToCurrentPriceResponse(price))
}

// updatePriceRange replaces the synthesis band for a commodity.
func (h *adminHandler) updatePriceRange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	commodityID := c.Param("commodityID")

	operator, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		logger.Error("Operator ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdatePriceRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePriceRange", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("operator", operator), slog.String("commodity_id", commodityID))
	logger.Info("Received request to update price range")

	priceRange, err := h.priceUpdateService.UpdatePriceRange(c.Request.Context(), commodityID, req, operator)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating price range", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Commodity not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Commodity not found"})
		default:
			logger.Error("Failed to update price range", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update price range"})
		}
		return
	}

	logger.Info("Price range updated")
	c.JSON(http.StatusOK, dto.ToPriceRangeResponse(priceRange))
}
