package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "captions_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "captions_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Caption request metrics
	CaptionRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "captions_requests_total",
			Help: "Total caption conversion requests by outcome",
		},
		[]string{"outcome"},
	)

	ConversionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "captions_conversions_total",
			Help: "Total serialized outputs by format",
		},
		[]string{"format"},
	)

	TrackSelectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "captions_track_selections_total",
			Help: "Resolved track selections by origin",
		},
		[]string{"origin"},
	)

	CuesPerTrack = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "captions_cues_per_track",
			Help:    "Number of cues in parsed caption tracks",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1 to ~2048 cues
		},
	)

	// Upstream fetch metrics
	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "captions_fetch_duration_seconds",
			Help:    "Upstream platform call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	FetchErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "captions_fetch_errors_total",
			Help: "Upstream platform call failures by operation",
		},
		[]string{"operation"},
	)
)

// RecordHTTPRequest records an HTTP request
func RecordHTTPRequest(method, endpoint, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordCaptionRequest records the outcome of one conversion request.
// The outcome is "ok" or the error kind.
func RecordCaptionRequest(outcome string) {
	CaptionRequestsTotal.WithLabelValues(outcome).Inc()
}

// RecordConversion records one serialized output
func RecordConversion(format string) {
	ConversionsTotal.WithLabelValues(format).Inc()
}

// RecordTrackSelection records a resolver decision
func RecordTrackSelection(origin string) {
	TrackSelectionsTotal.WithLabelValues(origin).Inc()
}

// RecordParsedTrack records the size of a parsed track
func RecordParsedTrack(cueCount int) {
	CuesPerTrack.Observe(float64(cueCount))
}

// RecordFetch records an upstream platform call
func RecordFetch(operation string, duration float64, err error) {
	FetchDuration.WithLabelValues(operation).Observe(duration)
	if err != nil {
		FetchErrorsTotal.WithLabelValues(operation).Inc()
	}
}
