package postgres

import (
	"context"
	"fmt"

	"currencymonitor/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CurrencyRepository struct {
	pool *pgxpool.Pool
}

// List loads the recognized currencies, ordered by code.
func (r *CurrencyRepository) List(ctx context.Context) ([]domain.RecognizedCurrency, error) {
	rows, err := r.pool.Query(ctx, `select code, name, symbol, country from currencies order by code;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	currencies := make([]domain.RecognizedCurrency, 0, 32)
	for rows.Next() {
		var c domain.RecognizedCurrency
		if err = rows.Scan(&c.Code, &c.Name, &c.Symbol, &c.Country); err != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", err)
		}
		currencies = append(currencies, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currencies: %w", err)
	}
	return currencies, nil
}

func NewCurrencyRepository(pool *pgxpool.Pool) *CurrencyRepository {
	return &CurrencyRepository{pool: pool}
}
