package rate

import (
	"context"

	"currencymonitor/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockPageFetcher struct{ mock.Mock }

func (m *MockPageFetcher) DownloadFrom(ctx context.Context, url string) (string, error) {
	args := m.Called(ctx, url)
	return args.String(0), args.Error(1)
}

type MockRateFetcher struct{ mock.Mock }

func (m *MockRateFetcher) FetchLatest(ctx context.Context, pair domain.ExchangePair) (domain.ExchangeRate, error) {
	args := m.Called(ctx, pair)
	r, _ := args.Get(0).(domain.ExchangeRate)
	return r, args.Error(1)
}

type MockSubscriptionRepository struct{ mock.Mock }

func (m *MockSubscriptionRepository) ListAll(ctx context.Context) ([]domain.Subscription, error) {
	args := m.Called(ctx)
	subs, _ := args.Get(0).([]domain.Subscription)
	return subs, args.Error(1)
}

func (m *MockSubscriptionRepository) ListForPair(ctx context.Context, pair domain.ExchangePair) ([]domain.Subscription, error) {
	args := m.Called(ctx, pair)
	subs, _ := args.Get(0).([]domain.Subscription)
	return subs, args.Error(1)
}

func (m *MockSubscriptionRepository) UpdateLastNotification(ctx context.Context, sub domain.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

type MockRateRepository struct{ mock.Mock }

func (m *MockRateRepository) UpsertBatch(ctx context.Context, rates []domain.ExchangeRate) error {
	return m.Called(ctx, rates).Error(0)
}

func (m *MockRateRepository) GetByPair(ctx context.Context, pair domain.ExchangePair) (domain.ExchangeRate, error) {
	args := m.Called(ctx, pair)
	r, _ := args.Get(0).(domain.ExchangeRate)
	return r, args.Error(1)
}

func (m *MockRateRepository) List(ctx context.Context, code string) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, code)
	rates, _ := args.Get(0).([]domain.ExchangeRate)
	return rates, args.Error(1)
}

type MockRateCache struct{ mock.Mock }

func (m *MockRateCache) Get(pair domain.ExchangePair) (domain.ExchangeRate, bool) {
	args := m.Called(pair)
	r, _ := args.Get(0).(domain.ExchangeRate)
	return r, args.Bool(1)
}

func (m *MockRateCache) Set(rate domain.ExchangeRate) { m.Called(rate) }

func (m *MockRateCache) CleanBatch(pairs []domain.ExchangePair) { m.Called(pairs) }

type MockChangePublisher struct{ mock.Mock }

func (m *MockChangePublisher) PublishChanged(ctx context.Context, rates []domain.ExchangeRate) error {
	return m.Called(ctx, rates).Error(0)
}
