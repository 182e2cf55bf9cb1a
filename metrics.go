package rsync

import "github.com/prometheus/client_golang/prometheus"

// Metrics instrumenting the codec and syncer, exercising
// github.com/prometheus/client_golang the way go.dedis.ch/dela
// instruments its own serialization/networking layers. Registered with
// prometheus.DefaultRegisterer at package initialization via
// prometheus.MustRegister in init, matching the common pattern of
// package-level collectors in that ecosystem.
var (
	metricsObjectsSynced = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "rsync",
		Name:      "objects_synced_total",
		Help:      "Number of Objects successfully visited by a Syncer run.",
	})

	metricsDecodeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "rsync",
		Name:      "decode_duration_seconds",
		Help:      "Time spent decoding an archive from its wire representation.",
	})

	metricsEncodeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "rsync",
		Name:      "encode_duration_seconds",
		Help:      "Time spent encoding an archive to its wire representation.",
	})

	metricsDecodeErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rsync",
		Name:      "decode_errors_total",
		Help:      "Number of archive decode failures, labeled by ArchiveErrorKind.",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(metricsObjectsSynced, metricsDecodeDuration, metricsEncodeDuration, metricsDecodeErrors)
}

func observeDecodeError(err error) {
	if err == nil {
		return
	}
	if ae, ok := err.(*ArchiveError); ok {
		metricsDecodeErrors.WithLabelValues(ae.Kind.String()).Inc()
	}
}
