package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ODInternational04/aboi-backend/internal/apperrors"
	"github.com/ODInternational04/aboi-backend/internal/core/domain"
	"github.com/ODInternational04/aboi-backend/internal/models"
	"github.com/ODInternational04/aboi-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExchangeRateRepository implements the exchange rate repository ports
// using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// NewPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewPgxExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

const exchangeRateColumns = `exchange_rate_id, from_currency, to_currency, rate, source, recorded_at`

// SaveExchangeRate appends a new exchange rate observation. The table is
// append-only; the current rate for a pair is its most recent row.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	fromCurrency := strings.ToUpper(rate.FromCurrency)
	toCurrency := strings.ToUpper(rate.ToCurrency)

	if fromCurrency == toCurrency {
		return fmt.Errorf("%w: from and to currencies cannot be the same", apperrors.ErrValidation)
	}
	if !rate.Rate.IsPositive() {
		return fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}

	modelRate := mapping.ToModelExchangeRate(rate)
	modelRate.FromCurrency = fromCurrency
	modelRate.ToCurrency = toCurrency

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO exchange_rates (`+exchangeRateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		modelRate.ExchangeRateID, modelRate.FromCurrency, modelRate.ToCurrency,
		modelRate.Rate, modelRate.Source, modelRate.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save exchange rate: %w", err)
	}
	return nil
}

// FindLatestRate retrieves the most recent rate for a currency pair. A
// positive maxAge restricts the lookup to rows younger than that bound.
func (r *PgxExchangeRateRepository) FindLatestRate(ctx context.Context, fromCurrency, toCurrency string, maxAge time.Duration) (*domain.ExchangeRate, error) {
	from := strings.ToUpper(fromCurrency)
	to := strings.ToUpper(toCurrency)

	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2`
	args := []interface{}{from, to}

	if maxAge > 0 {
		query += ` AND recorded_at > $3`
		args = append(args, time.Now().UTC().Add(-maxAge))
	}
	query += `
		ORDER BY recorded_at DESC
		LIMIT 1`

	var modelRate models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&modelRate.ExchangeRateID, &modelRate.FromCurrency, &modelRate.ToCurrency,
		&modelRate.Rate, &modelRate.Source, &modelRate.RecordedAt,
	)
	if err != nil {
		return nil, notFoundOr(err, "no exchange rate found for "+from+" to "+to)
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}

// ListRateHistory retrieves persisted rates for a pair, newest first.
func (r *PgxExchangeRateRepository) ListRateHistory(ctx context.Context, fromCurrency, toCurrency string, limit int) ([]domain.ExchangeRate, error) {
	from := strings.ToUpper(fromCurrency)
	to := strings.ToUpper(toCurrency)

	rows, err := r.Pool.Query(ctx, `
		SELECT `+exchangeRateColumns+`
		FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2
		ORDER BY recorded_at DESC
		LIMIT $3`,
		from, to, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rate history: %w", err)
	}
	defer rows.Close()

	var history []domain.ExchangeRate
	for rows.Next() {
		var modelRate models.ExchangeRate
		if err := rows.Scan(
			&modelRate.ExchangeRateID, &modelRate.FromCurrency, &modelRate.ToCurrency,
			&modelRate.Rate, &modelRate.Source, &modelRate.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan exchange rate: %w", err)
		}
		history = append(history, mapping.ToDomainExchangeRate(modelRate))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange rates: %w", err)
	}
	return history, nil
}
