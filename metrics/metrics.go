// metrics/metrics.go
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Computation origins.
const (
	OriginStored = "stored"
	OriginUpload = "upload"
)

// Register labels.
const (
	RegisterLTP = "ltp"
	RegisterAFE = "afe"
)

var (
	Registry = prometheus.NewRegistry()

	Computations = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "ltpdash",
		Name:      "dashboard_computations_total",
		Help:      "Dashboard computations by data origin.",
	}, []string{"origin"})

	ComputeDuration = promauto.With(Registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ltpdash",
		Name:      "dashboard_compute_seconds",
		Help:      "Time spent loading registers and computing the dashboard.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"origin"})

	RegisterRecords = promauto.With(Registry).NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "ltpdash",
		Name:      "register_records",
		Help:      "Records in the most recently loaded register.",
	}, []string{"register"})

	IngestionFailures = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "ltpdash",
		Name:      "ingestion_failures_total",
		Help:      "Register loads that failed.",
	}, []string{"register"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// ObserveCompute records one computation of the given origin started at start.
func ObserveCompute(origin string, start time.Time) {
	Computations.WithLabelValues(origin).Inc()
	ComputeDuration.WithLabelValues(origin).Observe(time.Since(start).Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
