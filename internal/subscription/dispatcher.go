package subscription

import (
	"context"
	"errors"
	"sync"

	"currencymonitor/internal/domain"

	"github.com/sirupsen/logrus"
)

const (
	DefaultWorkers   = 40
	defaultQueueSize = 256
)

var (
	ErrDispatcherNotStarted = errors.New("notification dispatcher is not started")
	ErrDispatcherStopped    = errors.New("notification dispatcher is stopped")
)

// Evaluator checks the subscriptions of a single changed rate.
type Evaluator interface {
	Evaluate(ctx context.Context, rate domain.ExchangeRate) error
}

// Batch tracks the evaluations of the rates handed to one Dispatch call.
type Batch struct {
	wg   sync.WaitGroup
	mu   sync.Mutex
	errs []error
}

// Wait blocks until every rate of the batch was evaluated and returns the
// joined failures.
func (b *Batch) Wait() error {
	b.wg.Wait()
	b.mu.Lock()
	defer b.mu.Unlock()
	return errors.Join(b.errs...)
}

func (b *Batch) done(err error) {
	if err != nil {
		b.mu.Lock()
		b.errs = append(b.errs, err)
		b.mu.Unlock()
	}
	b.wg.Done()
}

type job struct {
	ctx   context.Context
	rate  domain.ExchangeRate
	batch *Batch
}

// Dispatcher evaluates changed rates on a fixed pool of workers fed by a
// bounded queue. Rates are accepted only between Start and Stop; Dispatch
// blocks while the queue is full.
type Dispatcher struct {
	evaluator Evaluator
	workers   int
	jobs      chan job

	mu      sync.RWMutex
	started bool
	stopped bool

	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// Start spawns the workers. They are stopped by Stop or once ctx is done.
func (d *Dispatcher) Start(ctx context.Context) {
	d.startOnce.Do(func() {
		d.mu.Lock()
		stopped := d.stopped
		d.started = true
		d.mu.Unlock()
		if stopped {
			return
		}

		for i := 0; i < d.workers; i++ {
			d.wg.Add(1)
			go d.runWorker()
		}
		logrus.Infof("Notification dispatcher started with %d workers", d.workers)

		go func() {
			<-ctx.Done()
			d.Stop()
		}()
	})
}

// Stop rejects new rates, lets the workers drain the queue and waits for them.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		d.mu.Lock()
		d.stopped = true
		close(d.jobs)
		d.mu.Unlock()

		d.wg.Wait()
		logrus.Info("Notification dispatcher stopped")
	})
}

// Dispatch queues one evaluation per rate. The returned batch completes once
// all of them ran.
func (d *Dispatcher) Dispatch(ctx context.Context, rates []domain.ExchangeRate) *Batch {
	batch := &Batch{}
	if len(rates) == 0 {
		logrus.Warn("Nothing to dispatch, no exchange rates given")
		return batch
	}
	batch.wg.Add(len(rates))

	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, rate := range rates {
		switch {
		case d.stopped:
			batch.done(ErrDispatcherStopped)
			continue
		case !d.started:
			batch.done(ErrDispatcherNotStarted)
			continue
		}
		select {
		case d.jobs <- job{ctx: ctx, rate: rate, batch: batch}:
		case <-ctx.Done():
			batch.done(ctx.Err())
		}
	}
	return batch
}

// PublishChanged hands the rates to the workers without waiting for them.
func (d *Dispatcher) PublishChanged(ctx context.Context, rates []domain.ExchangeRate) error {
	d.Dispatch(ctx, rates)
	return nil
}

// HandleChanged evaluates the rates and waits for all of them.
func (d *Dispatcher) HandleChanged(ctx context.Context, rates []domain.ExchangeRate) error {
	return d.Dispatch(ctx, rates).Wait()
}

func (d *Dispatcher) runWorker() {
	defer d.wg.Done()
	for j := range d.jobs {
		j.batch.done(d.process(j))
	}
}

func (d *Dispatcher) process(j job) error {
	if err := j.ctx.Err(); err != nil {
		return err
	}
	if err := d.evaluator.Evaluate(j.ctx, j.rate); err != nil {
		logrus.WithError(err).WithField("pair", j.rate.Pair().String()).
			Error("Failed to evaluate subscriptions of exchange rate")
		return err
	}
	return nil
}

func NewDispatcher(evaluator Evaluator, workers, queueSize int) *Dispatcher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Dispatcher{
		evaluator: evaluator,
		workers:   workers,
		jobs:      make(chan job, queueSize),
	}
}
