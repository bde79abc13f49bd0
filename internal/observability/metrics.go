package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	reportCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "annual_report",
		Subsystem: "api",
		Name:      "reports_generated_total",
		Help:      "Number of report builds grouped by outcome.",
	}, []string{"outcome"})

	reportDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "annual_report",
		Subsystem: "api",
		Name:      "report_build_seconds",
		Help:      "Wall time spent assembling one report.",
		Buckets:   prometheus.DefBuckets,
	})

	recordsLoadedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "annual_report",
		Subsystem: "store",
		Name:      "records_loaded",
		Help:      "Number of activity records in the current snapshot.",
	})

	lastReloadGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "annual_report",
		Subsystem: "store",
		Name:      "last_reload_timestamp_seconds",
		Help:      "Unix timestamp of the most recent snapshot swap.",
	})
)

func init() {
	prometheus.MustRegister(reportCounter, reportDuration, recordsLoadedGauge, lastReloadGauge)
}

// Report outcomes.
const (
	OutcomeVolunteer = "volunteer"
	OutcomeGuest     = "guest"
	OutcomeError     = "error"
)

// RecordReport counts one report build and its duration.
func RecordReport(outcome string, elapsed time.Duration) {
	reportCounter.WithLabelValues(outcome).Inc()
	reportDuration.Observe(elapsed.Seconds())
}

// RecordStoreReload updates the snapshot watermark gauges.
func RecordStoreReload(records int, ts time.Time) {
	recordsLoadedGauge.Set(float64(records))
	if !ts.IsZero() {
		lastReloadGauge.Set(float64(ts.Unix()))
	}
}
