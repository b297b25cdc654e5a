package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MutationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devtracker_mutations_total",
			Help: "Committed store mutations",
		},
		[]string{"collection", "op"},
	)

	PersistDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "devtracker_persist_seconds",
			Help:    "Time spent writing the tracker aggregate to its slot",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		},
	)

	PersistFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "devtracker_persist_failures_total",
			Help: "Slot writes that failed and left the store unchanged",
		},
	)

	DigestsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devtracker_digests_total",
			Help: "Digests delivered by the scheduler",
		},
		[]string{"status"}, // ok, failed
	)
)

func IncrementMutation(collection, op string) {
	MutationCount.WithLabelValues(collection, op).Inc()
}

func RecordPersist(duration time.Duration, err error) {
	PersistDuration.Observe(duration.Seconds())
	if err != nil {
		PersistFailures.Inc()
	}
}

func IncrementDigest(status string) {
	DigestsSent.WithLabelValues(status).Inc()
}
