package subscription

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"currencymonitor/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ratesOf(codes ...string) []domain.ExchangeRate {
	rates := make([]domain.ExchangeRate, 0, len(codes))
	for _, code := range codes {
		rates = append(rates, domain.NewExchangeRate(domain.NewExchangePair("EUR", code), 1.5, observedAt))
	}
	return rates
}

type countingEvaluator struct {
	calls   atomic.Int64
	running atomic.Int64
	peak    atomic.Int64
	delay   time.Duration
	failOn  string
}

func (e *countingEvaluator) Evaluate(_ context.Context, rate domain.ExchangeRate) error {
	now := e.running.Add(1)
	defer e.running.Add(-1)
	for {
		peak := e.peak.Load()
		if now <= peak || e.peak.CompareAndSwap(peak, now) {
			break
		}
	}
	time.Sleep(e.delay)
	e.calls.Add(1)
	if rate.Pair().Primary() == e.failOn || rate.Pair().Secondary() == e.failOn {
		return errors.New("evaluation of " + e.failOn + " failed")
	}
	return nil
}

func TestDispatcher_WaitsForWholeBatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eval := &countingEvaluator{delay: 10 * time.Millisecond}
	d := NewDispatcher(eval, 4, 2)
	d.Start(ctx)
	defer d.Stop()

	rates := ratesOf("USD", "BRL", "JPY", "GBP", "CHF", "SEK", "NOK", "DKK")
	require.NoError(t, d.Dispatch(ctx, rates).Wait())

	require.EqualValues(t, len(rates), eval.calls.Load())
	require.LessOrEqual(t, eval.peak.Load(), int64(4))
}

func TestDispatcher_JoinsFailures(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eval := &countingEvaluator{failOn: "BRL"}
	d := NewDispatcher(eval, 2, 0)
	d.Start(ctx)
	defer d.Stop()

	err := d.Dispatch(ctx, ratesOf("USD", "BRL", "JPY")).Wait()

	require.ErrorContains(t, err, "evaluation of BRL failed")
	require.EqualValues(t, 3, eval.calls.Load())
}

func TestDispatcher_EmptyBatch(t *testing.T) {
	d := NewDispatcher(new(MockEvaluator), 1, 1)
	require.NoError(t, d.Dispatch(context.Background(), nil).Wait())
}

func TestDispatcher_StoppedRejectsRates(t *testing.T) {
	ctx := context.Background()
	d := NewDispatcher(new(MockEvaluator), 1, 1)
	d.Start(ctx)
	d.Stop()
	d.Stop()

	err := d.Dispatch(ctx, ratesOf("USD", "BRL")).Wait()
	require.ErrorIs(t, err, ErrDispatcherStopped)
}

func TestDispatcher_NotStartedRejectsRates(t *testing.T) {
	eval := new(MockEvaluator)
	d := NewDispatcher(eval, 1, 1)

	done := make(chan error, 1)
	go func() { done <- d.Dispatch(context.Background(), ratesOf("USD", "BRL", "JPY")).Wait() }()

	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrDispatcherNotStarted)
	case <-time.After(time.Second):
		t.Fatal("dispatch before start blocked")
	}
	eval.AssertNotCalled(t, "Evaluate", mock.Anything, mock.Anything)
}

func TestDispatcher_StoppedBeforeStartRejectsRates(t *testing.T) {
	d := NewDispatcher(new(MockEvaluator), 1, 1)
	d.Stop()
	d.Start(context.Background())

	err := d.Dispatch(context.Background(), ratesOf("USD")).Wait()
	require.ErrorIs(t, err, ErrDispatcherStopped)
}

func TestDispatcher_StopDrainsQueue(t *testing.T) {
	ctx := context.Background()
	eval := &countingEvaluator{delay: 5 * time.Millisecond}
	d := NewDispatcher(eval, 1, 16)
	d.Start(ctx)

	batch := d.Dispatch(ctx, ratesOf("USD", "BRL", "JPY", "GBP"))
	d.Stop()

	require.NoError(t, batch.Wait())
	require.EqualValues(t, 4, eval.calls.Load())
}

func TestDispatcher_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := NewDispatcher(&countingEvaluator{}, 2, 1)
	d.Start(ctx)
	cancel()

	require.Eventually(t, func() bool {
		return errors.Is(d.Dispatch(context.Background(), ratesOf("USD")).Wait(), ErrDispatcherStopped)
	}, time.Second, 10*time.Millisecond)
}

func TestDispatcher_CanceledBatchContext(t *testing.T) {
	eval := new(MockEvaluator)
	d := NewDispatcher(eval, 1, 4)
	d.Start(context.Background())
	defer d.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Dispatch(ctx, ratesOf("USD", "BRL")).Wait()
	require.ErrorIs(t, err, context.Canceled)
	eval.AssertNotCalled(t, "Evaluate", mock.Anything, mock.Anything)
}

func TestDispatcher_PublishChangedDoesNotWait(t *testing.T) {
	ctx := context.Background()
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	eval := new(MockEvaluator)
	eval.On("Evaluate", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			<-release
			wg.Done()
		}).
		Return(nil).Once()

	d := NewDispatcher(eval, 1, 1)
	d.Start(ctx)
	defer d.Stop()

	require.NoError(t, d.PublishChanged(ctx, ratesOf("USD")))
	close(release)
	wg.Wait()
	eval.AssertExpectations(t)
}
