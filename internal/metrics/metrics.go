package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "macrotrack"

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by route and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests by route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	foodLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "food_lookup_total",
			Help:      "Count of food lookups by outcome (hit, miss, error).",
		},
		[]string{"outcome"},
	)

	foodLookupDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "food_lookup_duration_seconds",
			Help:      "Duration of upstream food lookups.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	logMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "food_log_mutations_total",
			Help:      "Count of food log mutations by kind.",
		},
		[]string{"kind"},
	)

	ratioRejections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "macro_ratio_rejections_total",
			Help:      "Count of ratio edits rejected because the split did not sum to 1.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			httpDuration,
			foodLookups,
			foodLookupDuration,
			logMutations,
			ratioRejections,
		)
	})
}

func ObserveHTTPRequest(method, route, status string, seconds float64) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}

func IncFoodLookup(outcome string) {
	foodLookups.WithLabelValues(outcome).Inc()
}

func ObserveFoodLookup(seconds float64) {
	foodLookupDuration.Observe(seconds)
}

func IncLogMutation(kind string) {
	logMutations.WithLabelValues(kind).Inc()
}

func IncRatioRejection() {
	ratioRejections.Inc()
}
