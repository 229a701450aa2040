package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ledger"

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Served HTTP requests by route and status",
	}, []string{"method", "route", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	Operations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Financial operations by kind and outcome",
	}, []string{"kind", "outcome"})

	ChainBlocks = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "chain",
		Name:      "blocks",
		Help:      "Blocks seen by the last integrity check",
	})

	ChainValid = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "chain",
		Name:      "valid",
		Help:      "1 when the last integrity check passed",
	})

	SigningFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "chain",
		Name:      "signing_failures_total",
		Help:      "Blocks stored unsigned because signing failed",
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, Operations, ChainBlocks, ChainValid, SigningFailures)
}

// ObserveRequest records one served request
func ObserveRequest(method, route string, status int, latency time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(latency.Seconds())
}

// ObserveOperation counts a transfer, hold, deposit or withdrawal outcome
func ObserveOperation(kind string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	Operations.WithLabelValues(kind, outcome).Inc()
}

// ObserveIntegrity publishes the result of a chain walk
func ObserveIntegrity(valid bool, blocks int64) {
	ChainBlocks.Set(float64(blocks))
	if valid {
		ChainValid.Set(1)
		return
	}
	ChainValid.Set(0)
}
