package postgres

import (
	"context"
	"errors"
	"fmt"

	"currencymonitor/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

const subscriptionColumns = `id, label, email, code_to_sell, code_to_buy, target_price, last_notification`

func (r *SubscriptionRepository) ListAll(ctx context.Context) ([]domain.Subscription, error) {
	q := `select ` + subscriptionColumns + ` from subscriptions order by email, id;`
	return r.query(ctx, q)
}

// ListForPair returns only subscriptions whose both codes belong to pair, so
// a USD->BRL subscription is never handed over with the BRL/EUR rate.
func (r *SubscriptionRepository) ListForPair(ctx context.Context, pair domain.ExchangePair) ([]domain.Subscription, error) {
	q := `
		select ` + subscriptionColumns + `
		from subscriptions
		where code_to_buy in ($1, $2) and code_to_sell in ($1, $2)
		order by id;
	`
	return r.query(ctx, q, pair.Primary(), pair.Secondary())
}

func (r *SubscriptionRepository) ListByEmail(ctx context.Context, email string) ([]domain.Subscription, error) {
	q := `select ` + subscriptionColumns + ` from subscriptions where email = $1 order by id;`
	return r.query(ctx, q, email)
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, id string) (domain.Subscription, error) {
	q := `select ` + subscriptionColumns + ` from subscriptions where id = $1;`

	sub, err := scanSubscription(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Subscription{}, domain.ErrSubscriptionNotFound
		}
		return domain.Subscription{}, fmt.Errorf("failed to select subscription %q: %w", id, err)
	}
	return sub, nil
}

// Upsert inserts sub or replaces the user editable fields of the stored one.
// The last notification time is only written by UpdateLastNotification.
func (r *SubscriptionRepository) Upsert(ctx context.Context, sub domain.Subscription) error {
	const q = `
		insert into subscriptions (id, label, email, code_to_sell, code_to_buy, target_price, last_notification)
		values ($1, $2, $3, $4, $5, $6, $7)
		on conflict (id) do update
		  set label = excluded.label,
		      email = excluded.email,
		      code_to_sell = excluded.code_to_sell,
		      code_to_buy = excluded.code_to_buy,
		      target_price = excluded.target_price;
	`

	if _, err := r.pool.Exec(ctx, q,
		sub.RecordID(),
		sub.Label,
		sub.EmailAddress,
		sub.CodeCurrencyToSell,
		sub.PartitionKey(),
		sub.TargetPriceOfSellingCurrency,
		sub.LastNotification,
	); err != nil {
		return fmt.Errorf("failed to upsert subscription %q: %w", sub.ID, err)
	}
	return nil
}

func (r *SubscriptionRepository) UpdateLastNotification(ctx context.Context, sub domain.Subscription) error {
	const q = `update subscriptions set last_notification = $3 where code_to_buy = $1 and id = $2;`

	tag, err := r.pool.Exec(ctx, q, sub.PartitionKey(), sub.RecordID(), sub.LastNotification)
	if err != nil {
		return fmt.Errorf("failed to update last notification of subscription %q: %w", sub.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `delete from subscriptions where id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete subscription %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubscriptionRepository) query(ctx context.Context, q string, args ...any) ([]domain.Subscription, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	subs := make([]domain.Subscription, 0, 64)
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriptions: %w", err)
	}
	return subs, nil
}

func scanSubscription(row pgx.Row) (domain.Subscription, error) {
	var sub domain.Subscription
	if err := row.Scan(
		&sub.ID,
		&sub.Label,
		&sub.EmailAddress,
		&sub.CodeCurrencyToSell,
		&sub.CodeCurrencyToBuy,
		&sub.TargetPriceOfSellingCurrency,
		&sub.LastNotification,
	); err != nil {
		return domain.Subscription{}, err
	}
	sub.LastNotification = sub.LastNotification.UTC()
	return sub, nil
}

func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}
