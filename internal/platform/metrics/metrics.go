// Package metrics exposes the service's Prometheus instruments.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "folio"

// Outcome labels for assistant actions.
const (
	OutcomeSuccess             = "success"
	OutcomeInvalidRequest      = "invalid_request"
	OutcomeProviderUnavailable = "provider_unavailable"
	OutcomeTimeout             = "timeout"
	OutcomeMalformedResponse   = "malformed_response"
	OutcomeError               = "error"
)

// Recorder owns the service's instruments. A nil *Recorder records nothing.
type Recorder struct {
	actions        *prometheus.CounterVec
	actionDuration *prometheus.HistogramVec
	leads          prometheus.Counter
	rateLimited    *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New registers the instruments with reg. Pass prometheus.DefaultRegisterer in
// production and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		actions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "assistant_actions_total",
				Help:      "Total number of assistant actions by feature and outcome",
			},
			[]string{"feature", "outcome"},
		),
		actionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "assistant_action_duration_seconds",
				Help:      "Duration of assistant actions in seconds, provider call included",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
			},
			[]string{"feature"},
		),
		leads: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chat_leads_captured_total",
				Help:      "Total number of chat replies that carried a lead email",
			},
		),
		rateLimited: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limited_requests_total",
				Help:      "Total number of requests rejected by the rate limiter",
			},
			[]string{"route"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by method, route pattern and status",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// ObserveAction records one assistant action.
func (r *Recorder) ObserveAction(feature, outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.actions.WithLabelValues(feature, outcome).Inc()
	r.actionDuration.WithLabelValues(feature).Observe(d.Seconds())
}

// LeadCaptured counts a chat reply carrying a lead email.
func (r *Recorder) LeadCaptured() {
	if r == nil {
		return
	}
	r.leads.Inc()
}

// RateLimited counts a rejected request.
func (r *Recorder) RateLimited(route string) {
	if r == nil {
		return
	}
	r.rateLimited.WithLabelValues(route).Inc()
}

// ObserveHTTP records one served HTTP request. route is the matched route
// pattern, not the raw path, to keep label cardinality bounded.
func (r *Recorder) ObserveHTTP(method, route string, status int, d time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
