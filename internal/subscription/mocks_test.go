package subscription

import (
	"context"

	"currencymonitor/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockSubscriptionStore struct{ mock.Mock }

func (m *MockSubscriptionStore) ListAll(ctx context.Context) ([]domain.Subscription, error) {
	args := m.Called(ctx)
	subs, _ := args.Get(0).([]domain.Subscription)
	return subs, args.Error(1)
}

func (m *MockSubscriptionStore) ListForPair(ctx context.Context, pair domain.ExchangePair) ([]domain.Subscription, error) {
	args := m.Called(ctx, pair)
	subs, _ := args.Get(0).([]domain.Subscription)
	return subs, args.Error(1)
}

func (m *MockSubscriptionStore) UpdateLastNotification(ctx context.Context, sub domain.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *MockSubscriptionStore) ListByEmail(ctx context.Context, email string) ([]domain.Subscription, error) {
	args := m.Called(ctx, email)
	subs, _ := args.Get(0).([]domain.Subscription)
	return subs, args.Error(1)
}

func (m *MockSubscriptionStore) GetByID(ctx context.Context, id string) (domain.Subscription, error) {
	args := m.Called(ctx, id)
	sub, _ := args.Get(0).(domain.Subscription)
	return sub, args.Error(1)
}

func (m *MockSubscriptionStore) Upsert(ctx context.Context, sub domain.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *MockSubscriptionStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, sub domain.Subscription, rate domain.ExchangeRate) error {
	return m.Called(ctx, sub, rate).Error(0)
}

type MockEvaluator struct{ mock.Mock }

func (m *MockEvaluator) Evaluate(ctx context.Context, rate domain.ExchangeRate) error {
	return m.Called(ctx, rate).Error(0)
}

type staticCodes map[string]bool

func (c staticCodes) IsSupported(code string) bool { return c[code] }
