package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"currencymonitor/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ExchangeRateRepository struct {
	pool *pgxpool.Pool
}

type rateRow struct {
	PrimaryCode   string    `json:"primary_code"`
	ID            string    `json:"id"`
	SecondaryCode string    `json:"secondary_code"`
	Rate          float64   `json:"rate"`
	ObservedAt    time.Time `json:"observed_at"`
}

// UpsertBatch stores the rates in a single transaction, replacing the
// previous record of each pair.
func (r *ExchangeRateRepository) UpsertBatch(ctx context.Context, rates []domain.ExchangeRate) error {
	if len(rates) == 0 {
		return nil
	}

	payload := make([]rateRow, 0, len(rates))
	for _, rate := range rates {
		payload = append(payload, rateRow{
			PrimaryCode:   rate.PartitionKey(),
			ID:            rate.RecordID(),
			SecondaryCode: rate.SecondaryCurrencyCode,
			Rate:          rate.PriceOfPrimaryCurrency,
			ObservedAt:    rate.Timestamp,
		})
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal exchange rates: %w", err)
	}

	const q = `
		with
		
		-- step 1: parsing input
		input_rows as (
		  select * from json_to_recordset($1::json)
		    as r(primary_code text, id text, secondary_code text, rate double precision, observed_at timestamptz)
		)
		
		-- step 2: one record per pair, the newest quote wins
		insert into exchange_rates (primary_code, id, secondary_code, rate, observed_at)
		select primary_code, id, secondary_code, rate, observed_at from input_rows
		on conflict (primary_code, id) do update
		  set secondary_code = excluded.secondary_code,
		      rate = excluded.rate,
		      observed_at = excluded.observed_at
		  where exchange_rates.observed_at <= excluded.observed_at;
	`

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, q, json.RawMessage(payloadJSON)); err != nil {
		return fmt.Errorf("failed to upsert %d exchange rates: %w", len(rates), err)
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *ExchangeRateRepository) GetByPair(ctx context.Context, pair domain.ExchangePair) (domain.ExchangeRate, error) {
	const q = `
		select id, primary_code, secondary_code, rate, observed_at
		from exchange_rates
		where primary_code = $1 and id = $2;
	`

	rate, err := scanRate(r.pool.QueryRow(ctx, q, pair.Primary(), pair.Secondary()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ExchangeRate{}, domain.ErrRateNotFound
		}
		return domain.ExchangeRate{}, fmt.Errorf("failed to select rate of %s: %w", pair, err)
	}
	return rate, nil
}

func (r *ExchangeRateRepository) List(ctx context.Context, code string) ([]domain.ExchangeRate, error) {
	const q = `
		select id, primary_code, secondary_code, rate, observed_at
		from exchange_rates
		where $1::text = '' or primary_code = $1::text or secondary_code = $1::text
		order by primary_code, secondary_code;
	`

	rows, err := r.pool.Query(ctx, q, code)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	rates := make([]domain.ExchangeRate, 0, 32)
	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exchange rate: %w", err)
		}
		rates = append(rates, rate)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange rates: %w", err)
	}
	return rates, nil
}

func scanRate(row pgx.Row) (domain.ExchangeRate, error) {
	var rate domain.ExchangeRate
	if err := row.Scan(
		&rate.ID,
		&rate.PrimaryCurrencyCode,
		&rate.SecondaryCurrencyCode,
		&rate.PriceOfPrimaryCurrency,
		&rate.Timestamp,
	); err != nil {
		return domain.ExchangeRate{}, err
	}
	rate.Timestamp = rate.Timestamp.UTC()
	return rate, nil
}

func NewExchangeRateRepository(pool *pgxpool.Pool) *ExchangeRateRepository {
	return &ExchangeRateRepository{pool: pool}
}
