package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ODInternational04/aboi-backend/internal/apperrors"
	"github.com/ODInternational04/aboi-backend/internal/core/domain"
	portssvc "github.com/ODInternational04/aboi-backend/internal/core/ports/services"
	"github.com/ODInternational04/aboi-backend/pkg/config"
	"github.com/robfig/cron/v3"
)

// cycleTimeout bounds one scheduled update cycle.
const cycleTimeout = 10 * time.Minute

// Scheduler runs the daily price update cycle on a cron spec.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a Scheduler wired to the price update service. An unknown
// timezone falls back to UTC rather than failing startup.
func New(cfg *config.Config, priceUpdateService portssvc.PriceUpdateSvcFacade, logger *slog.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.DailyUpdateTimezone)
	if err != nil {
		logger.Warn("Unknown timezone for daily update, using UTC",
			slog.String("timezone", cfg.DailyUpdateTimezone),
			slog.String("error", err.Error()),
		)
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))
	s := &Scheduler{cron: c, logger: logger}

	if _, err := c.AddFunc(cfg.DailyUpdateCronSpec, func() {
		s.runCycle(priceUpdateService)
	}); err != nil {
		return nil, fmt.Errorf("invalid daily update cron spec %q: %w", cfg.DailyUpdateCronSpec, err)
	}

	logger.Info("Daily update scheduled",
		slog.String("cron", cfg.DailyUpdateCronSpec),
		slog.String("timezone", loc.String()),
	)
	return s, nil
}

func (s *Scheduler) runCycle(priceUpdateService portssvc.PriceUpdateSvcFacade) {
	ctx, cancel := context.WithTimeout(context.Background(), cycleTimeout)
	defer cancel()

	s.logger.Info("Scheduled price update cycle starting")

	result, err := priceUpdateService.UpdateDailyPrices(ctx, nil, domain.TriggerSourceCron)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.logger.Warn("Scheduled cycle skipped, another cycle is running")
			return
		}
		s.logger.Error("Scheduled price update cycle failed", slog.String("error", err.Error()))
		return
	}

	s.logger.Info("Scheduled price update cycle completed",
		slog.Int("updated", result.Updated),
		slog.Int("total", result.Total),
		slog.Int("skipped", len(result.Skipped)),
		slog.Int("failures", len(result.Failures)),
	)
}

// Start begins cron scheduling in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
