package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boarding_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "boarding_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Sequencing metrics
	SequencesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boarding_sequences_total",
			Help: "Total number of boarding sequence computations",
		},
		[]string{"status"}, // ok, error
	)

	SequenceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "boarding_sequence_duration_seconds",
			Help:    "Time to sequence one booking batch",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	BatchBookings = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "boarding_batch_bookings",
			Help:    "Bookings per sequenced batch",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	BatchPassengers = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "boarding_batch_passengers",
			Help:    "Passengers per sequenced batch",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	// Seat distance cache metrics
	SeatCacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "boarding_seat_cache_hits_total",
			Help: "Total seat distance cache hits",
		},
	)

	SeatCacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "boarding_seat_cache_misses_total",
			Help: "Total seat distance cache misses",
		},
	)

	SeatCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "boarding_seat_cache_entries",
			Help: "Seat labels currently memoized",
		},
	)

	// Benchmark metrics
	BenchmarkRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boarding_benchmark_runs_total",
			Help: "Total number of benchmark and test-optimization runs",
		},
		[]string{"endpoint"},
	)

	// Event fan-out metrics
	SequenceEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boarding_sequence_events_published_total",
			Help: "Total sequence-computed events published",
		},
		[]string{"subject"},
	)
)
