package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mutationOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_mutations_total",
			Help: "Total workflow mutations by operation and outcome",
		},
		[]string{"operation", "status"},
	)

	mutationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketplace_mutation_duration_seconds",
			Help:    "Duration of workflow mutations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	snapshotReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_snapshot_reloads_total",
			Help: "Snapshot reloads triggered by invalidation or cold reads",
		},
		[]string{"collection"},
	)

	snapshotSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marketplace_snapshot_records",
			Help: "Records held in the most recent snapshot",
		},
		[]string{"collection"},
	)
)

// TrackMutation counts one workflow mutation outcome.
func TrackMutation(operation, status string) {
	mutationOps.WithLabelValues(operation, status).Inc()
}

// ObserveMutation records the elapsed time of a mutation started at start.
func ObserveMutation(operation string, start time.Time) {
	mutationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// TrackSnapshotReload counts one snapshot reload for a collection.
func TrackSnapshotReload(collection string) {
	snapshotReloads.WithLabelValues(collection).Inc()
}

// SetSnapshotSize records the size of the freshly loaded snapshot.
func SetSnapshotSize(collection string, n int) {
	snapshotSize.WithLabelValues(collection).Set(float64(n))
}
