package rate

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"currencymonitor/internal/adapters"
	"currencymonitor/internal/domain"
	"currencymonitor/internal/platform/metrics"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

const (
	defaultFetchConcurrency = 5
	defaultPerPairTimeout   = 30 * time.Second
)

type UpdaterSettings struct {
	// FetchConcurrency bounds the number of rate pages downloaded at once.
	FetchConcurrency int64
	PerPairTimeout   time.Duration
}

// RateUpdater refreshes the stored rate of every pair watched by at least one
// subscription.
type RateUpdater struct {
	subscriptions adapters.SubscriptionRepository
	fetcher       adapters.RateFetcher
	rates         adapters.ExchangeRateRepository
	cache         adapters.RateCache
	changes       adapters.RateChangePublisher
	metrics       *metrics.Metrics

	fetchConcurrency int64
	perPairTimeout   time.Duration
}

// Run executes one update cycle. Only a failure to read the subscriptions is
// returned, failures of single pairs or groups are logged and skipped.
func (u *RateUpdater) Run(ctx context.Context, execID string) error {
	started := time.Now()
	defer func() { u.metrics.ObserveRateUpdate(time.Since(started).Seconds()) }()

	// STEP 1: every subscription, regardless of its target
	subs, err := u.subscriptions.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list subscriptions: %w", err)
	}
	if len(subs) == 0 {
		logrus.Infof("Nothing to update this time; execID: %s", execID)
		return nil
	}

	// STEP 2: distinct canonical pairs, grouped by primary currency.
	// EUR->BRL and BRL->EUR subscriptions share the single pair BRL/EUR.
	groups := groupByPrimary(getUniquePairs(subs))
	logrus.WithFields(logrus.Fields{"exec_id": execID, "groups": len(groups)}).
		Infof("%d subscriptions found, start updating rates", len(subs))

	// STEP 3: groups run concurrently, each one upserts only after all of its fetches are done
	sem := semaphore.NewWeighted(u.fetchConcurrency)
	var updated atomic.Int64
	var wg sync.WaitGroup
	for primary, pairs := range groups {
		wg.Add(1)
		go func() {
			defer wg.Done()
			updated.Add(int64(u.updateGroup(ctx, execID, primary, pairs, sem)))
		}()
	}
	wg.Wait()

	logrus.Infof("%d exchange rates were successfully updated; execID %s", updated.Load(), execID)
	return nil
}

func getUniquePairs(subs []domain.Subscription) map[domain.ExchangePair]struct{} {
	pairSet := make(map[domain.ExchangePair]struct{}, len(subs))
	for _, sub := range subs {
		pairSet[sub.Pair()] = struct{}{}
	}
	return pairSet
}

func groupByPrimary(pairs map[domain.ExchangePair]struct{}) map[string][]domain.ExchangePair {
	groups := make(map[string][]domain.ExchangePair)
	for _, pair := range slices.SortedFunc(maps.Keys(pairs), domain.ExchangePair.Compare) {
		groups[pair.Primary()] = append(groups[pair.Primary()], pair)
	}
	return groups
}

// updateGroup fetches all pairs of one primary currency, then upserts whatever
// was fetched as a single batch. It returns the number of persisted rates.
func (u *RateUpdater) updateGroup(ctx context.Context, execID, primary string, pairs []domain.ExchangePair, sem *semaphore.Weighted) int {
	rates := u.fetchGroup(ctx, execID, pairs, sem)
	if len(rates) == 0 {
		return 0
	}

	for i := range rates {
		rates[i].ID = domain.ExchangeRateID(rates[i])
	}

	logger := logrus.WithFields(logrus.Fields{"exec_id": execID, "group": primary})
	if err := u.rates.UpsertBatch(ctx, rates); err != nil {
		u.metrics.RecordUpsertBatch(false)
		logger.WithError(err).Errorf("Failed to upsert %d exchange rates, they'll be processed next time", len(rates))
		return 0
	}
	u.metrics.RecordUpsertBatch(true)

	if u.cache != nil {
		updatedPairs := make([]domain.ExchangePair, 0, len(rates))
		for _, r := range rates {
			updatedPairs = append(updatedPairs, r.Pair())
		}
		u.cache.CleanBatch(updatedPairs)
	}

	if u.changes != nil {
		if err := u.changes.PublishChanged(ctx, rates); err != nil {
			logger.WithError(err).Error("Failed to publish changed exchange rates")
		}
	}
	return len(rates)
}

// fetchGroup returns the rates of the pairs that could be fetched, in the
// order of pairs.
func (u *RateUpdater) fetchGroup(ctx context.Context, execID string, pairs []domain.ExchangePair, sem *semaphore.Weighted) []domain.ExchangeRate {
	results := make([]domain.ExchangeRate, len(pairs))
	fetched := make([]bool, len(pairs))

	var wg sync.WaitGroup
	for i, pair := range pairs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger := logrus.WithFields(logrus.Fields{"exec_id": execID, "pair": pair.String()})
			if err := sem.Acquire(ctx, 1); err != nil {
				u.metrics.RecordFetch(false)
				logger.WithError(err).Warn("Exchange rate wasn't fetched, the update was canceled")
				return
			}
			defer sem.Release(1)

			rate, err := u.fetchOne(ctx, pair)
			u.metrics.RecordFetch(err == nil)
			if err != nil {
				logger.WithError(err).Warn("Skipping exchange rate, it'll be processed next time")
				return
			}
			results[i] = rate
			fetched[i] = true
		}()
	}
	wg.Wait()

	rates := make([]domain.ExchangeRate, 0, len(pairs))
	for i, ok := range fetched {
		if ok {
			rates = append(rates, results[i])
		}
	}
	return rates
}

func (u *RateUpdater) fetchOne(ctx context.Context, pair domain.ExchangePair) (domain.ExchangeRate, error) {
	reqCtx, cancel := context.WithTimeout(ctx, u.perPairTimeout)
	defer cancel()
	return u.fetcher.FetchLatest(reqCtx, pair)
}

// NewRateUpdater builds the update pipeline. cache, changes and m may be nil.
func NewRateUpdater(
	subscriptions adapters.SubscriptionRepository,
	fetcher adapters.RateFetcher,
	rates adapters.ExchangeRateRepository,
	cache adapters.RateCache,
	changes adapters.RateChangePublisher,
	m *metrics.Metrics,
	settings UpdaterSettings,
) *RateUpdater {
	u := &RateUpdater{
		subscriptions:    subscriptions,
		fetcher:          fetcher,
		rates:            rates,
		cache:            cache,
		changes:          changes,
		metrics:          m,
		fetchConcurrency: settings.FetchConcurrency,
		perPairTimeout:   settings.PerPairTimeout,
	}
	if u.fetchConcurrency <= 0 {
		u.fetchConcurrency = defaultFetchConcurrency
	}
	if u.perPairTimeout <= 0 {
		u.perPairTimeout = defaultPerPairTimeout
	}
	return u
}
