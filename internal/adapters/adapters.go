package adapters

import (
	"context"

	"currencymonitor/internal/domain"
)

// PageFetcher downloads the text content of a web page.
type PageFetcher interface {
	DownloadFrom(ctx context.Context, url string) (string, error)
}

type ExchangeRateRepository interface {
	UpsertBatch(ctx context.Context, rates []domain.ExchangeRate) error
	GetByPair(ctx context.Context, pair domain.ExchangePair) (domain.ExchangeRate, error)
	// List returns every stored rate; a non-empty code restricts it to rates involving that currency.
	List(ctx context.Context, code string) ([]domain.ExchangeRate, error)
}

type SubscriptionRepository interface {
	ListAll(ctx context.Context) ([]domain.Subscription, error)
	// ListForPair returns the subscriptions buying one currency of pair and
	// selling the other.
	ListForPair(ctx context.Context, pair domain.ExchangePair) ([]domain.Subscription, error)
	UpdateLastNotification(ctx context.Context, sub domain.Subscription) error
}

type SubscriptionStore interface {
	SubscriptionRepository
	ListByEmail(ctx context.Context, email string) ([]domain.Subscription, error)
	GetByID(ctx context.Context, id string) (domain.Subscription, error)
	Upsert(ctx context.Context, sub domain.Subscription) error
	Delete(ctx context.Context, id string) error
}

type CurrencyRepository interface {
	List(ctx context.Context) ([]domain.RecognizedCurrency, error)
}

type RateCache interface {
	Get(pair domain.ExchangePair) (domain.ExchangeRate, bool)
	Set(rate domain.ExchangeRate)
	CleanBatch(pairs []domain.ExchangePair)
}

// Notifier tells a subscriber that their target price was reached.
type Notifier interface {
	Notify(ctx context.Context, sub domain.Subscription, rate domain.ExchangeRate) error
}

// RateChangePublisher receives every batch of rates persisted in one upsert.
type RateChangePublisher interface {
	PublishChanged(ctx context.Context, rates []domain.ExchangeRate) error
}

type RateFetcher interface {
	FetchLatest(ctx context.Context, pair domain.ExchangePair) (domain.ExchangeRate, error)
}
