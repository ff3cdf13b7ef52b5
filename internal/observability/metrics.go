package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	// tuid-api HTTP metrics
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tuid_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"route", "method", "code"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tuid_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	ActiveRequests = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tuid_active_requests",
		Help: "Current in-flight requests",
	})

	// minting metrics
	IDsMintedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tuid_ids_minted_total",
		Help: "IDs minted, by generator mode",
	}, []string{"mode"})

	MintFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tuid_mint_failures_total",
		Help: "Mint failures, by reason",
	}, []string{"reason"})

	MintDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tuid_mint_duration_seconds",
		Help:    "Time to mint one batch of IDs",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
	})

	MintBatchSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tuid_mint_batch_size",
		Help:    "Requested batch sizes",
		Buckets: []float64{1, 2, 5, 10, 50, 100, 500, 1000},
	})

	DedupRetriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tuid_dedup_retries_total",
		Help: "Random-mode collision retries within a time bucket",
	})

	// machine lease metrics
	LeaseAcquireDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tuid_lease_acquire_seconds",
		Help:    "Time to acquire a machine-ID lease",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})

	LeaseHeartbeatFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tuid_lease_heartbeat_failures_total",
		Help: "Failed machine-ID lease heartbeats",
	})
)

func RegisterAll(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration, ActiveRequests,
		IDsMintedTotal, MintFailuresTotal, MintDuration, MintBatchSize, DedupRetriesTotal,
		LeaseAcquireDuration, LeaseHeartbeatFailures,
	)
}
