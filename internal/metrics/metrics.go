package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	playersLoaded = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scout_players_loaded",
			Help: "Players loaded from the dataset, per league",
		},
		[]string{"league"},
	)

	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scout_requests_total",
			Help: "Analysis requests served, per operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scout_request_duration_seconds",
			Help:    "Analysis request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scout_cache_hits_total",
			Help: "Result cache hits and misses",
		},
		[]string{"op", "result"},
	)
)

func init() {
	prometheus.MustRegister(playersLoaded, requestsTotal, requestDuration, cacheHits)
}

// SetPlayersLoaded records dataset sizes after startup load.
func SetPlayersLoaded(byLeague map[string]int) {
	for league, n := range byLeague {
		playersLoaded.WithLabelValues(league).Set(float64(n))
	}
}

// ObserveRequest records one served analysis request.
func ObserveRequest(op, outcome string, seconds float64) {
	requestsTotal.WithLabelValues(op, outcome).Inc()
	requestDuration.WithLabelValues(op).Observe(seconds)
}

// ObserveCache records a cache hit or miss for an operation.
func ObserveCache(op string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheHits.WithLabelValues(op, result).Inc()
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
