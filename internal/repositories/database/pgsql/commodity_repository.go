package pgsql

import (
	"context"
	"fmt"

	"github.com/ODInternational04/aboi-backend/internal/core/domain"
	"github.com/ODInternational04/aboi-backend/internal/models"
	"github.com/ODInternational04/aboi-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCommodityRepository implements the commodity and price range repository
// ports using pgxpool.
type PgxCommodityRepository struct {
	BaseRepository
}

// NewPgxCommodityRepository creates a new PgxCommodityRepository.
func NewPgxCommodityRepository(db *pgxpool.Pool) *PgxCommodityRepository {
	return &PgxCommodityRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// FindCommodityByID retrieves a commodity by its ID.
func (r *PgxCommodityRepository) FindCommodityByID(ctx context.Context, commodityID string) (*domain.Commodity, error) {
	var m models.Commodity
	err := r.Pool.QueryRow(ctx, `
		SELECT commodity_id, symbol, name, unit, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		FROM commodities
		WHERE commodity_id = $1`,
		commodityID,
	).Scan(
		&m.CommodityID, &m.Symbol, &m.Name, &m.Unit, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, notFoundOr(err, "commodity "+commodityID+" not found")
	}

	commodity := mapping.ToDomainCommodity(m)
	return &commodity, nil
}

// CountActiveCommodities returns the number of active commodities.
func (r *PgxCommodityRepository) CountActiveCommodities(ctx context.Context) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM commodities WHERE is_active`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active commodities: %w", err)
	}
	return count, nil
}

// ListActivePriceRanges retrieves active ranges joined to their active owning
// commodities. Ranges whose commodity is inactive are silently excluded.
func (r *PgxCommodityRepository) ListActivePriceRanges(ctx context.Context) ([]domain.CommodityRange, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT c.commodity_id, c.symbol, c.name, c.unit, c.is_active,
			c.created_at, c.created_by, c.last_updated_at, c.last_updated_by,
			pr.min_price_zar, pr.max_price_zar, pr.min_price_usd, pr.max_price_usd,
			pr.is_active, pr.updated_by, pr.updated_at
		FROM price_ranges pr
		JOIN commodities c ON c.commodity_id = pr.commodity_id
		WHERE pr.is_active AND c.is_active
		ORDER BY c.symbol`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list active price ranges: %w", err)
	}
	defer rows.Close()

	var ranges []domain.CommodityRange
	for rows.Next() {
		var mc models.Commodity
		var mr models.PriceRange
		if err := rows.Scan(
			&mc.CommodityID, &mc.Symbol, &mc.Name, &mc.Unit, &mc.IsActive,
			&mc.CreatedAt, &mc.CreatedBy, &mc.LastUpdatedAt, &mc.LastUpdatedBy,
			&mr.MinPriceZAR, &mr.MaxPriceZAR, &mr.MinPriceUSD, &mr.MaxPriceUSD,
			&mr.IsActive, &mr.UpdatedBy, &mr.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan price range: %w", err)
		}
		mr.CommodityID = mc.CommodityID
		ranges = append(ranges, domain.CommodityRange{
			Commodity: mapping.ToDomainCommodity(mc),
			Range:     mapping.ToDomainPriceRange(mr),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price ranges: %w", err)
	}
	return ranges, nil
}

// FindPriceRange retrieves the range configured for one commodity.
func (r *PgxCommodityRepository) FindPriceRange(ctx context.Context, commodityID string) (*domain.PriceRange, error) {
	var m models.PriceRange
	err := r.Pool.QueryRow(ctx, `
		SELECT commodity_id, min_price_zar, max_price_zar, min_price_usd, max_price_usd,
			is_active, updated_by, updated_at
		FROM price_ranges
		WHERE commodity_id = $1`,
		commodityID,
	).Scan(
		&m.CommodityID, &m.MinPriceZAR, &m.MaxPriceZAR, &m.MinPriceUSD, &m.MaxPriceUSD,
		&m.IsActive, &m.UpdatedBy, &m.UpdatedAt,
	)
	if err != nil {
		return nil, notFoundOr(err, "price range for commodity "+commodityID+" not found")
	}

	priceRange := mapping.ToDomainPriceRange(m)
	return &priceRange, nil
}

// UpsertPriceRange inserts or replaces the range for a commodity. The store
// enforces uniqueness on commodity_id.
func (r *PgxCommodityRepository) UpsertPriceRange(ctx context.Context, priceRange domain.PriceRange) error {
	m := mapping.ToModelPriceRange(priceRange)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO price_ranges (
			commodity_id, min_price_zar, max_price_zar, min_price_usd, max_price_usd,
			is_active, updated_by, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (commodity_id) DO UPDATE SET
			min_price_zar = EXCLUDED.min_price_zar,
			max_price_zar = EXCLUDED.max_price_zar,
			min_price_usd = EXCLUDED.min_price_usd,
			max_price_usd = EXCLUDED.max_price_usd,
			is_active = EXCLUDED.is_active,
			updated_by = EXCLUDED.updated_by,
			updated_at = EXCLUDED.updated_at`,
		m.CommodityID, m.MinPriceZAR, m.MaxPriceZAR, m.MinPriceUSD, m.MaxPriceUSD,
		m.IsActive, m.UpdatedBy, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert price range: %w", err)
	}
	return nil
}
