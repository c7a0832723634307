package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder publishes service metrics through Prometheus.
type Recorder struct {
	readings   *prometheus.CounterVec
	cache      *prometheus.CounterVec
	errorsSeen *prometheus.CounterVec
	numbers    *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	refreshes  prometheus.Counter
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer to
// expose them on the default /metrics handler.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		readings: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "saju_readings_total",
				Help: "Readings computed, by kind",
			},
			[]string{"kind"},
		),
		cache: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "saju_snapshot_cache_total",
				Help: "Dashboard snapshot lookups, by result",
			},
			[]string{"result"},
		),
		errorsSeen: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "saju_errors_total",
				Help: "Errors returned to callers, by code",
			},
			[]string{"code"},
		),
		numbers: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "saju_numbers_recommended_total",
				Help: "Recommended numbers, by element",
			},
			[]string{"element"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "saju_operation_duration_seconds",
				Help:    "Duration of service operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		refreshes: f.NewCounter(prometheus.CounterOpts{
			Name: "saju_scheduled_invalidations_total",
			Help: "Scheduled snapshot cache invalidations",
		}),
	}
}

// RecordReading counts one computed reading of the given kind.
func (r *Recorder) RecordReading(kind string) {
	r.readings.WithLabelValues(kind).Inc()
}

// RecordCache counts a snapshot cache hit or miss.
func (r *Recorder) RecordCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cache.WithLabelValues(result).Inc()
}

// RecordError counts an error by its code.
func (r *Recorder) RecordError(code string) {
	if code == "" {
		code = "unknown"
	}
	r.errorsSeen.WithLabelValues(code).Inc()
}

// RecordNumber counts a recommended number under its element.
func (r *Recorder) RecordNumber(element string) {
	r.numbers.WithLabelValues(element).Inc()
}

// RecordLatency observes the duration of op since start.
func (r *Recorder) RecordLatency(op string, start time.Time) {
	r.latency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// RecordInvalidation counts a scheduled cache invalidation.
func (r *Recorder) RecordInvalidation() {
	r.refreshes.Inc()
}
