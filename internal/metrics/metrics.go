// Package metrics exposes prometheus collectors for sheet loads and queries.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "clientview"

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	sheetLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sheet_loads_total",
		Help:      "Sheet fetches by sheet and outcome.",
	}, []string{"sheet", "outcome"})

	sheetDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sheet_fetch_duration_seconds",
		Help:      "Time to fetch and decode one sheet.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"sheet"})

	sheetRows = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sheet_rows",
		Help:      "Rows decoded from the last successful fetch of each sheet.",
	}, []string{"sheet"})

	sheetBytes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sheet_bytes",
		Help:      "Bytes read in the last successful fetch of each sheet.",
	}, []string{"sheet"})

	snapshotLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "snapshot_loaded_timestamp_seconds",
		Help:      "Unix time of the current snapshot.",
	})

	snapshotFailedSheets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "snapshot_failed_sheets",
		Help:      "Sheets that failed to load in the current snapshot.",
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	queries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "queries_total",
		Help:      "Queries served by kind.",
	}, []string{"kind"})
)

// ObserveSheet records one sheet fetch. rows and bytes are only recorded on success.
func ObserveSheet(sheet string, rows int, bytes int64, d time.Duration, err error) {
	sheetDuration.WithLabelValues(sheet).Observe(d.Seconds())
	if err != nil {
		sheetLoads.WithLabelValues(sheet, OutcomeError).Inc()
		return
	}
	sheetLoads.WithLabelValues(sheet, OutcomeOK).Inc()
	sheetRows.WithLabelValues(sheet).Set(float64(rows))
	sheetBytes.WithLabelValues(sheet).Set(float64(bytes))
}

// ObserveSnapshot records a snapshot swap.
func ObserveSnapshot(loadedAt time.Time, failedSheets int) {
	snapshotLoaded.Set(float64(loadedAt.Unix()))
	snapshotFailedSheets.Set(float64(failedSheets))
}

// ObserveQuery counts one query of the given kind ("clients", "detail", "report", ...).
func ObserveQuery(kind string) {
	queries.WithLabelValues(kind).Inc()
}

// ObserveRequest records one HTTP request. route is the matched route
// pattern, never the raw path, to keep label cardinality bounded.
func ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
