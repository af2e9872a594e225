package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ODInternational04/aboi-backend/internal/apperrors"
	portssvc "github.com/ODInternational04/aboi-backend/internal/core/ports/services"
	"github.com/ODInternational04/aboi-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statsHandler handles HTTP requests for aggregated read models.
type statsHandler struct {
	statsService portssvc.StatsSvcFacade
}

// newStatsHandler creates a new statsHandler.
func newStatsHandler(ss portssvc.StatsSvcFacade) *statsHandler {
	return &statsHandler{
		statsService: ss,
	}
}

// registerStatsRoutes registers routes related to stats and reporting.
func registerStatsRoutes(rg *gin.RouterGroup, statsService portssvc.StatsSvcFacade) {
	h := newStatsHandler(statsService)

	stats := rg.Group("/stats")
	{
		stats.GET("/dashboard", h.getDashboardSummary)
		stats.GET("/commodities/:commodityID", h.getCommodityStats)
		stats.GET("/commodities/:commodityID/history", h.getPriceHistory)
		stats.GET("/runs", h.listUpdateRuns)
	}
}

func (h *statsHandler) getDashboardSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.statsService.GetDashboardSummary(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build dashboard summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *statsHandler) getCommodityStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	commodityID := c.Param("commodityID")

	stats, err := h.statsService.GetCommodityStats(c.Request.Context(), commodityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Commodity not found", slog.String("commodity_id", commodityID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Commodity not found"})
		} else {
			logger.Error("Failed to get commodity stats", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve commodity stats"})
		}
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *statsHandler) getPriceHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	commodityID := c.Param("commodityID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	history, err := h.statsService.GetPriceHistory(c.Request.Context(), commodityID, limit)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Commodity not found", slog.String("commodity_id", commodityID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Commodity not found"})
		} else {
			logger.Error("Failed to get price history", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve price history"})
		}
		return
	}

	c.JSON(http.StatusOK, history)
}

func (h *statsHandler) listUpdateRuns(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	runs, err := h.statsService.ListUpdateRuns(c.Request.Context(), limit)
	if err != nil {
		logger.Error("Failed to list update runs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve update runs"})
		return
	}

	c.JSON(http.StatusOK, runs)
}
