package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ODInternational04/aboi-backend/internal/apperrors"
	"github.com/ODInternational04/aboi-backend/internal/core/domain"
	"github.com/ODInternational04/aboi-backend/internal/models"
	"github.com/ODInternational04/aboi-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPriceRepository implements the current price and price history
// repository ports using pgxpool.
type PgxPriceRepository struct {
	BaseRepository
}

// NewPgxPriceRepository creates a new PgxPriceRepository.
func NewPgxPriceRepository(db *pgxpool.Pool) *PgxPriceRepository {
	return &PgxPriceRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

const currentPriceColumns = `commodity_id, price_zar, price_usd, exchange_rate, change_24h_percent, last_updated`

// FindCurrentPrice retrieves the latest snapshot for a commodity.
func (r *PgxPriceRepository) FindCurrentPrice(ctx context.Context, commodityID string) (*domain.CurrentPrice, error) {
	var m models.CurrentPrice
	err := r.Pool.QueryRow(ctx, `
		SELECT `+currentPriceColumns+`
		FROM current_prices
		WHERE commodity_id = $1`,
		commodityID,
	).Scan(
		&m.CommodityID, &m.PriceZAR, &m.PriceUSD,
		&m.ExchangeRate, &m.Change24hPercent, &m.LastUpdated,
	)
	if err != nil {
		return nil, notFoundOr(err, "current price for commodity "+commodityID+" not found")
	}

	price := mapping.ToDomainCurrentPrice(m)
	return &price, nil
}

// CountCurrentPrices returns the number of commodities with a snapshot.
func (r *PgxPriceRepository) CountCurrentPrices(ctx context.Context) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM current_prices`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count current prices: %w", err)
	}
	return count, nil
}

// FindTopMovers returns the snapshots with the highest and lowest 24h change.
func (r *PgxPriceRepository) FindTopMovers(ctx context.Context) (*domain.CurrentPrice, *domain.CurrentPrice, error) {
	gainer, err := r.findMover(ctx, "DESC")
	if err != nil {
		return nil, nil, err
	}
	loser, err := r.findMover(ctx, "ASC")
	if err != nil {
		return nil, nil, err
	}
	return gainer, loser, nil
}

func (r *PgxPriceRepository) findMover(ctx context.Context, direction string) (*domain.CurrentPrice, error) {
	var m models.CurrentPrice
	err := r.Pool.QueryRow(ctx, `
		SELECT `+currentPriceColumns+`
		FROM current_prices
		ORDER BY change_24h_percent `+direction+`
		LIMIT 1`,
	).Scan(
		&m.CommodityID, &m.PriceZAR, &m.PriceUSD,
		&m.ExchangeRate, &m.Change24hPercent, &m.LastUpdated,
	)
	if err != nil {
		err = notFoundOr(err, "no current prices recorded")
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find top mover: %w", err)
	}

	price := mapping.ToDomainCurrentPrice(m)
	return &price, nil
}

// UpsertCurrentPrice inserts or replaces the snapshot for a commodity. The
// store enforces uniqueness on commodity_id; the upsert is atomic per row.
func (r *PgxPriceRepository) UpsertCurrentPrice(ctx context.Context, price domain.CurrentPrice) error {
	m := mapping.ToModelCurrentPrice(price)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO current_prices (`+currentPriceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (commodity_id) DO UPDATE SET
			price_zar = EXCLUDED.price_zar,
			price_usd = EXCLUDED.price_usd,
			exchange_rate = EXCLUDED.exchange_rate,
			change_24h_percent = EXCLUDED.change_24h_percent,
			last_updated = EXCLUDED.last_updated`,
		m.CommodityID, m.PriceZAR, m.PriceUSD,
		m.ExchangeRate, m.Change24hPercent, m.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert current price: %w", err)
	}
	return nil
}

// InsertPriceHistory appends one history row. History is never mutated or
// deleted.
func (r *PgxPriceRepository) InsertPriceHistory(ctx context.Context, history domain.PriceHistory) error {
	m := mapping.ToModelPriceHistory(history)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO price_history (
			price_history_id, commodity_id, price_zar, price_usd, exchange_rate, recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6)`,
		m.PriceHistoryID, m.CommodityID, m.PriceZAR, m.PriceUSD, m.ExchangeRate, m.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert price history: %w", err)
	}
	return nil
}

// ListPriceHistory retrieves history rows for a commodity, newest first.
func (r *PgxPriceRepository) ListPriceHistory(ctx context.Context, commodityID string, limit int) ([]domain.PriceHistory, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT price_history_id, commodity_id, price_zar, price_usd, exchange_rate, recorded_at
		FROM price_history
		WHERE commodity_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2`,
		commodityID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list price history: %w", err)
	}
	defer rows.Close()

	var history []domain.PriceHistory
	for rows.Next() {
		var m models.PriceHistory
		if err := rows.Scan(
			&m.PriceHistoryID, &m.CommodityID, &m.PriceZAR, &m.PriceUSD, &m.ExchangeRate, &m.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan price history: %w", err)
		}
		history = append(history, mapping.ToDomainPriceHistory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price history: %w", err)
	}
	return history, nil
}

// AggregateHistory summarizes history rows recorded since the given time.
func (r *PgxPriceRepository) AggregateHistory(ctx context.Context, commodityID string, since time.Time) (*domain.HistoryAggregate, error) {
	var agg domain.HistoryAggregate
	err := r.Pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COALESCE(MIN(price_zar), 0),
			COALESCE(MAX(price_zar), 0),
			COALESCE(AVG(price_zar), 0)
		FROM price_history
		WHERE commodity_id = $1 AND recorded_at >= $2`,
		commodityID, since,
	).Scan(&agg.SampleCount, &agg.MinPriceZAR, &agg.MaxPriceZAR, &agg.AvgPriceZAR)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate price history: %w", err)
	}
	return &agg, nil
}
