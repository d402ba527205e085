// Package metrics provides the centralized Prometheus metrics registry for
// the NRFI predictor.
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
	APIRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nrfi",
		Name:      "api_requests_total",
		Help:      "Total number of stats API requests by endpoint and outcome",
	}, []string{"endpoint", "outcome"})
	GamesProcessedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "nrfi",
		Name:      "games_processed_total",
		Help:      "Total number of games scored into a prediction record",
	})
	GamesSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "nrfi",
		Name:      "games_skipped_total",
		Help:      "Total number of games skipped for missing probable pitchers",
	})
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nrfi",
		Name:      "predictions_total",
		Help:      "Total number of predictions emitted by label",
	}, []string{"label"})
)

// Gauge metrics
var (
	ResponseCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "nrfi",
		Name:      "response_cache_hit_ratio",
		Help:      "Hit ratio of the stats API response cache",
	})
	ScheduledGames = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "nrfi",
		Name:      "scheduled_games",
		Help:      "Number of games on the schedule for the last processed date",
	})
)

// Histogram metrics
var (
	RunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "nrfi",
		Name:      "run_duration_seconds",
		Help:      "Duration of full prediction runs in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(APIRequestsTotal)
		registry.MustRegister(GamesProcessedTotal)
		registry.MustRegister(GamesSkippedTotal)
		registry.MustRegister(PredictionsTotal)

		registry.MustRegister(ResponseCacheHitRatio)
		registry.MustRegister(ScheduledGames)

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

// RecordAPIRequest records a stats API request outcome.
func RecordAPIRequest(endpoint, outcome string) {
	APIRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
}

// RecordGameProcessed records a game scored into a prediction record.
func RecordGameProcessed() {
	GamesProcessedTotal.Inc()
}

// RecordGameSkipped records a game skipped for missing probable pitchers.
func RecordGameSkipped() {
	GamesSkippedTotal.Inc()
}

// RecordPrediction records an emitted prediction by label.
func RecordPrediction(label string) {
	PredictionsTotal.WithLabelValues(label).Inc()
}

// RecordRunDuration records the duration of a full prediction run.
func RecordRunDuration(durationSeconds float64) {
	RunDuration.Observe(durationSeconds)
}

// UpdateScheduledGames updates the scheduled games gauge.
func UpdateScheduledGames(count float64) {
	ScheduledGames.Set(count)
}
