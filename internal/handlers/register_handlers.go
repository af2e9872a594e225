package handlers

import (
	"log"
	"time"

	portssvc "github.com/ODInternational04/aboi-backend/internal/core/ports/services"
	"github.com/ODInternational04/aboi-backend/internal/middleware"
	"github.com/ODInternational04/aboi-backend/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	registerRateRoutes(v1, services.Rate)
	registerStatsRoutes(v1, services.Stats)

	// Admin mutations require an operator identity and are rate limited.
	admin := v1.Group("/admin", middleware.RateLimit(newAdminLimiter(cfg)), middleware.RequireOperatorID())
	registerAdminRoutes(admin, services.PriceUpdate)
}

func newAdminLimiter(cfg *config.Config) *limiter.Limiter {
	rate, err := limiter.NewRateFromFormatted(cfg.AdminRateLimit)
	if err != nil {
		log.Printf("Warning: Invalid value for ADMIN_RATE_LIMIT ('%s'). Defaulting to 30-M.\n", cfg.AdminRateLimit)
		rate = limiter.Rate{Period: time.Minute, Limit: 30}
	}
	return limiter.New(memorystore.NewStore(), rate)
}
