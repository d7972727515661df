// Package metrics — prometheus-коллекторы board-service.
package metrics

import (
	"time"

	"github.com/pribylovaa/go-board/internal/counter"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "board"

type Metrics struct {
	AuthEvents    *prometheus.CounterVec
	AuthFailures  *prometheus.CounterVec
	Folds         *prometheus.CounterVec
	FoldEntities  *prometheus.CounterVec
	FoldDuration  prometheus.Histogram
	SessionsSwept prometheus.Counter
	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
}

// New создаёт коллекторы и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AuthEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_events_total",
			Help:      "Successful auth operations by event.",
		}, []string{"event"}),
		AuthFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_failures_total",
			Help:      "Rejected auth attempts by internal reason.",
		}, []string{"reason"}),
		Folds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "counter_folds_total",
			Help:      "Counter fold passes by result.",
		}, []string{"result"}),
		FoldEntities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "counter_fold_entities_total",
			Help:      "Entities processed by counter folds.",
		}, []string{"state"}),
		FoldDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "counter_fold_duration_seconds",
			Help:      "Duration of counter fold passes.",
			Buckets:   prometheus.DefBuckets,
		}),
		SessionsSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_swept_total",
			Help:      "Expired sessions physically deleted by the janitor.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		m.AuthEvents,
		m.AuthFailures,
		m.Folds,
		m.FoldEntities,
		m.FoldDuration,
		m.SessionsSwept,
		m.HTTPRequests,
		m.HTTPDuration,
	)

	return m
}

// AuthSucceeded учитывает успешную операцию (login, refresh, logout, ...).
func (m *Metrics) AuthSucceeded(event string) {
	m.AuthEvents.WithLabelValues(event).Inc()
}

// AuthFailed учитывает отказ с внутренней причиной. Клиенту причина не сообщается.
func (m *Metrics) AuthFailed(reason string) {
	m.AuthFailures.WithLabelValues(reason).Inc()
}

// ObserveFold реализует counter.Observer.
func (m *Metrics) ObserveFold(res counter.FoldResult, took time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}

	m.Folds.WithLabelValues(result).Inc()
	m.FoldEntities.WithLabelValues("folded").Add(float64(res.Folded))
	m.FoldEntities.WithLabelValues("discarded").Add(float64(res.Discarded))
	m.FoldEntities.WithLabelValues("failed").Add(float64(res.Failed))
	m.FoldDuration.Observe(took.Seconds())
}

// ObserveSweep учитывает удалённые janitor'ом сессии.
func (m *Metrics) ObserveSweep(n int64) {
	m.SessionsSwept.Add(float64(n))
}

// ObserveHTTP учитывает завершённый HTTP-запрос.
func (m *Metrics) ObserveHTTP(method, route, code string, took time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, code).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(took.Seconds())
}

var _ counter.Observer = (*Metrics)(nil)
