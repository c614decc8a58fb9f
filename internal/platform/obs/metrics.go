package obs

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route, method and status code.",
		},
		[]string{"route", "method", "code"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	RoutePlans = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "route_plans_total",
			Help: "Route plans by outcome.",
		},
		[]string{"outcome"},
	)
	RoutePlanDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "route_plan_duration_seconds",
		Help:    "Time spent planning a single route.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
	})
	RoutePlanStops = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "route_plan_stops",
		Help:    "Distinct stops per planned route.",
		Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
	})
)

var regOnce sync.Once

// Register adds the service collectors to Registry. Safe to call more than once.
func Register() {
	regOnce.Do(func() {
		Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			HTTPRequests,
			HTTPDuration,
			RoutePlans,
			RoutePlanDuration,
			RoutePlanStops,
		)
	})
}

// Handler serves Registry in the prometheus text format.
func Handler() http.Handler {
	Register()
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// Plan outcomes recorded in RoutePlans.
const (
	OutcomeOK              = "ok"
	OutcomeInvalidPosition = "invalid_position"
	OutcomeNoPath          = "no_path"
	OutcomeError           = "error"
)

// ObservePlan records the outcome of one plan and, when it succeeded, its
// stop count. Durations are observed separately via RoutePlanDuration.
func ObservePlan(outcome string, stops int) {
	RoutePlans.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		RoutePlanStops.Observe(float64(stops))
	}
}
