package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"currencymonitor/internal/adapters"
	"currencymonitor/internal/domain"
	"currencymonitor/internal/platform/metrics"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Matcher notifies the subscribers whose target was reached by a changed rate.
type Matcher struct {
	subscriptions adapters.SubscriptionRepository
	notifier      adapters.Notifier
	metrics       *metrics.Metrics
}

// Evaluate decides every candidate subscription of the rate's pair first and
// notifies afterwards. A failed notification doesn't stop the others, all of
// them are returned joined.
func (m *Matcher) Evaluate(ctx context.Context, rate domain.ExchangeRate) (err error) {
	defer func() { m.metrics.RecordEvaluation(err == nil) }()

	pair := rate.Pair()
	candidates, err := m.subscriptions.ListForPair(ctx, pair)
	if err != nil {
		return fmt.Errorf("failed to list subscriptions of %s: %w", pair, err)
	}

	toNotify := make([]domain.Subscription, 0, len(candidates))
	for _, sub := range candidates {
		needed, err := NeedsNotification(sub, rate)
		if err != nil {
			return err
		}
		if needed {
			toNotify = append(toNotify, sub)
		}
	}
	if len(toNotify) == 0 {
		return nil
	}

	var errs []error
	for _, sub := range toNotify {
		logger := logrus.WithFields(logrus.Fields{"subscription_id": sub.ID, "pair": pair.String()})

		if err := m.notifier.Notify(ctx, sub, rate); err != nil {
			m.metrics.RecordNotification(false)
			logger.WithError(err).Error("Failed to notify subscriber")
			errs = append(errs, fmt.Errorf("failed to notify subscription %s: %w", sub.ID, err))
			continue
		}
		m.metrics.RecordNotification(true)

		sub.LastNotification = rate.Timestamp
		if err := m.subscriptions.UpdateLastNotification(ctx, sub); err != nil {
			// the mail is already out, the worst case is a second one today
			logger.WithError(err).Error("Subscriber was notified but the notification time wasn't stored")
			continue
		}
		logger.Infof("Subscriber %s notified", sub.EmailAddress)
	}
	return errors.Join(errs...)
}

// NeedsNotification reports whether rate reaches the target of sub and sub
// wasn't notified on the rate's UTC day yet. The rate's codes may come in
// either order; a subscription on another pair is an error.
func NeedsNotification(sub domain.Subscription, rate domain.ExchangeRate) (bool, error) {
	price := decimal.NewFromFloat(rate.PriceOfPrimaryCurrency)
	target := sub.TargetPriceOfSellingCurrency

	var reached bool
	switch {
	case sub.CodeCurrencyToBuy == rate.PrimaryCurrencyCode && sub.CodeCurrencyToSell == rate.SecondaryCurrencyCode:
		// the rate prices the bought currency, compare against the inverted target
		if !target.IsPositive() {
			return false, nil
		}
		reached = price.LessThanOrEqual(decimal.NewFromInt(1).Div(target))
	case sub.CodeCurrencyToSell == rate.PrimaryCurrencyCode && sub.CodeCurrencyToBuy == rate.SecondaryCurrencyCode:
		reached = price.GreaterThanOrEqual(target)
	default:
		return false, &domain.MismatchError{SubscriptionID: sub.ID, Pair: rate.Pair()}
	}

	return reached && !sameUTCDay(rate.Timestamp, sub.LastNotification), nil
}

func sameUTCDay(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// NewMatcher builds a matcher; m may be nil.
func NewMatcher(subscriptions adapters.SubscriptionRepository, notifier adapters.Notifier, m *metrics.Metrics) *Matcher {
	return &Matcher{subscriptions: subscriptions, notifier: notifier, metrics: m}
}
