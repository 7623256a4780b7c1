package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics holds the counters exported by the monitor. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	RateFetchesTotal       *prometheus.CounterVec
	RateUpsertBatchesTotal *prometheus.CounterVec
	RateUpdateDuration     prometheus.Histogram
	MatcherEvaluations     *prometheus.CounterVec
	NotificationsTotal     *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RateFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "currencymonitor_rate_fetches_total",
				Help: "Rate page fetches by result",
			},
			[]string{"result"},
		),
		RateUpsertBatchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "currencymonitor_rate_upsert_batches_total",
				Help: "Per primary currency upsert batches by result",
			},
			[]string{"result"},
		),
		RateUpdateDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "currencymonitor_rate_update_duration_seconds",
				Help:    "Duration of a full rate update run",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			},
		),
		MatcherEvaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "currencymonitor_matcher_evaluations_total",
				Help: "Subscription matcher evaluations of a changed rate by result",
			},
			[]string{"result"},
		),
		NotificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "currencymonitor_notifications_total",
				Help: "Subscriber notifications by result",
			},
			[]string{"result"},
		),
	}
}

func (m *Metrics) RecordFetch(ok bool) {
	if m == nil {
		return
	}
	m.RateFetchesTotal.WithLabelValues(result(ok)).Inc()
}

func (m *Metrics) RecordUpsertBatch(ok bool) {
	if m == nil {
		return
	}
	m.RateUpsertBatchesTotal.WithLabelValues(result(ok)).Inc()
}

func (m *Metrics) ObserveRateUpdate(seconds float64) {
	if m == nil {
		return
	}
	m.RateUpdateDuration.Observe(seconds)
}

func (m *Metrics) RecordEvaluation(ok bool) {
	if m == nil {
		return
	}
	m.MatcherEvaluations.WithLabelValues(result(ok)).Inc()
}

func (m *Metrics) RecordNotification(ok bool) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(result(ok)).Inc()
}

func result(ok bool) string {
	if ok {
		return ResultSuccess
	}
	return ResultFailure
}
