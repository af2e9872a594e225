package pgsql

import (
	"context"
	"fmt"

	"github.com/ODInternational04/aboi-backend/internal/core/domain"
	"github.com/ODInternational04/aboi-backend/internal/models"
	"github.com/ODInternational04/aboi-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPriceUpdateRunRepository implements the update run repository ports
// using pgxpool.
type PgxPriceUpdateRunRepository struct {
	BaseRepository
}

// NewPgxPriceUpdateRunRepository creates a new PgxPriceUpdateRunRepository.
func NewPgxPriceUpdateRunRepository(db *pgxpool.Pool) *PgxPriceUpdateRunRepository {
	return &PgxPriceUpdateRunRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

const priceUpdateRunColumns = `run_id, executed_at, triggered_by, trigger_source, total_commodities, updated_commodities, status, notes`

// SavePriceUpdateRun appends one run record.
func (r *PgxPriceUpdateRunRepository) SavePriceUpdateRun(ctx context.Context, run domain.PriceUpdateRun) error {
	m := mapping.ToModelPriceUpdateRun(run)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO price_update_runs (`+priceUpdateRunColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.RunID, m.ExecutedAt, m.TriggeredBy, m.TriggerSource,
		m.TotalCommodities, m.UpdatedCommodities, m.Status, m.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to save price update run: %w", err)
	}
	return nil
}

// FindLatestRun retrieves the most recent run record.
func (r *PgxPriceUpdateRunRepository) FindLatestRun(ctx context.Context) (*domain.PriceUpdateRun, error) {
	var m models.PriceUpdateRun
	err := r.Pool.QueryRow(ctx, `
		SELECT `+priceUpdateRunColumns+`
		FROM price_update_runs
		ORDER BY executed_at DESC
		LIMIT 1`,
	).Scan(
		&m.RunID, &m.ExecutedAt, &m.TriggeredBy, &m.TriggerSource,
		&m.TotalCommodities, &m.UpdatedCommodities, &m.Status, &m.Notes,
	)
	if err != nil {
		return nil, notFoundOr(err, "no price update runs recorded")
	}

	run := mapping.ToDomainPriceUpdateRun(m)
	return &run, nil
}

// ListRuns retrieves run records, newest first.
func (r *PgxPriceUpdateRunRepository) ListRuns(ctx context.Context, limit int) ([]domain.PriceUpdateRun, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+priceUpdateRunColumns+`
		FROM price_update_runs
		ORDER BY executed_at DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list price update runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.PriceUpdateRun
	for rows.Next() {
		var m models.PriceUpdateRun
		if err := rows.Scan(
			&m.RunID, &m.ExecutedAt, &m.TriggeredBy, &m.TriggerSource,
			&m.TotalCommodities, &m.UpdatedCommodities, &m.Status, &m.Notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan price update run: %w", err)
		}
		runs = append(runs, mapping.ToDomainPriceUpdateRun(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price update runs: %w", err)
	}
	return runs, nil
}
