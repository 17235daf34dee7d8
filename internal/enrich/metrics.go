package enrich

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	legsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "itinerary",
			Subsystem: "enrich",
			Name:      "legs_total",
			Help:      "Travel legs by outcome: ok, failed (router error), stale (dropped at merge).",
		},
		[]string{"result"},
	)

	jobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "itinerary",
			Subsystem: "enrich",
			Name:      "jobs_total",
			Help:      "Day enrichment jobs by outcome: merged, empty, merge_failed, dropped.",
		},
		[]string{"result"},
	)

	routeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "itinerary",
			Subsystem: "enrich",
			Name:      "route_duration_seconds",
			Help:      "Latency of individual router calls.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// RecordStale counts merge results that were dropped as stale.
func RecordStale(n int) {
	if n > 0 {
		legsTotal.WithLabelValues("stale").Add(float64(n))
	}
}
