// Package metrics provides the centralized Prometheus metrics registry for
// the pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	ValueBetsFoundTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "court_edge",
		Name:      "value_bets_found_total",
		Help:      "Total number of value bets flagged",
	})
	FixturesUnmatchedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "court_edge",
		Name:      "fixtures_unmatched_total",
		Help:      "Total number of fixtures dropped for lack of an odds quote",
	})
	QuotesRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "court_edge",
		Name:      "quotes_rejected_total",
		Help:      "Total number of odds quotes rejected as invalid",
	})
	ResultsSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "court_edge",
		Name:      "results_skipped_total",
		Help:      "Total number of match results skipped during rating updates",
	}, []string{"reason"})
	RatingUpdatesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "court_edge",
		Name:      "rating_updates_total",
		Help:      "Total number of match results applied to the rating table",
	})
	NotificationsSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "court_edge",
		Name:      "notifications_sent_total",
		Help:      "Total number of Telegram digests sent",
	})
)

// Gauge metrics
var (
	RatingsTracked = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "court_edge",
		Name:      "ratings_tracked",
		Help:      "Number of (player, surface) rating entries currently tracked",
	})
	LastRunMatched = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "court_edge",
		Name:      "last_run_matched_markets",
		Help:      "Markets successfully linked in the most recent detection run",
	})
)

// Histogram metrics
var (
	RunDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "court_edge",
		Name:      "run_duration_seconds",
		Help:      "Duration of pipeline runs in seconds",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
	}, []string{"run"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(ValueBetsFoundTotal)
		registry.MustRegister(FixturesUnmatchedTotal)
		registry.MustRegister(QuotesRejectedTotal)
		registry.MustRegister(ResultsSkippedTotal)
		registry.MustRegister(RatingUpdatesTotal)
		registry.MustRegister(NotificationsSentTotal)

		registry.MustRegister(RatingsTracked)
		registry.MustRegister(LastRunMatched)

		registry.MustRegister(RunDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordValueBets records flagged bets from a detection run.
func RecordValueBets(count int) {
	ValueBetsFoundTotal.Add(float64(count))
}

// RecordUnmatchedFixtures records fixtures that found no odds quote.
func RecordUnmatchedFixtures(count int) {
	FixturesUnmatchedTotal.Add(float64(count))
}

// RecordRejectedQuote records an odds quote rejected as invalid.
func RecordRejectedQuote() {
	QuotesRejectedTotal.Inc()
}

// RecordSkippedResult records a match result skipped during settlement.
func RecordSkippedResult(reason string) {
	ResultsSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordRatingUpdate records a match result applied to the rating table.
func RecordRatingUpdate() {
	RatingUpdatesTotal.Inc()
}

// RecordNotificationSent records a delivered Telegram digest.
func RecordNotificationSent() {
	NotificationsSentTotal.Inc()
}

// UpdateRatingsTracked updates the tracked rating entries gauge.
func UpdateRatingsTracked(count int) {
	RatingsTracked.Set(float64(count))
}

// UpdateLastRunMatched updates the matched markets gauge.
func UpdateLastRunMatched(count int) {
	LastRunMatched.Set(float64(count))
}

// ObserveRunDuration records the duration of a pipeline run.
func ObserveRunDuration(run string, seconds float64) {
	RunDuration.WithLabelValues(run).Observe(seconds)
}
