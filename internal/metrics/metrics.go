// Package metrics registers and records the process-wide Prometheus metrics.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "loanledger_"

// Result label values shared by the observe helpers.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	generateTotal   *prometheus.CounterVec
	generateLatency *prometheus.HistogramVec
	ledgerRows      *prometheus.HistogramVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec

	requestTotal   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
)

// Init registers the ledger metrics with the default registry. Safe to call
// more than once; only the first call registers.
func Init() {
	registerOnce.Do(func() {
		generateTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "schedule_generate_total",
				Help: "Total schedule generations by method and result",
			},
			[]string{"method", "result"},
		)
		generateLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "schedule_generate_latency_seconds",
				Help:    "Schedule generation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "result"},
		)
		ledgerRows = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "ledger_rows",
				Help:    "Rows per generated ledger",
				Buckets: []float64{12, 60, 120, 240, 360, 480},
			},
			[]string{"method"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total ledger exports by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Ledger export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		requestTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by endpoint and result",
			},
			[]string{"endpoint", "result"},
		)
		requestLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_latency_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint", "result"},
		)

		prometheus.MustRegister(
			generateTotal,
			generateLatency,
			ledgerRows,
			exportTotal,
			exportLatency,
			requestTotal,
			requestLatency,
		)
	})
}

// ObserveGenerate records one schedule generation with its latency.
func ObserveGenerate(method, result string, duration time.Duration) {
	if method == "" {
		method = "unknown"
	}
	if result == "" {
		result = ResultSuccess
	}
	if generateTotal != nil {
		generateTotal.WithLabelValues(method, result).Inc()
	}
	if generateLatency != nil {
		generateLatency.WithLabelValues(method, result).Observe(duration.Seconds())
	}
}

// ObserveLedgerRows records the size of a generated ledger.
func ObserveLedgerRows(method string, rows int) {
	if method == "" {
		method = "unknown"
	}
	if rows < 0 {
		return
	}
	if ledgerRows != nil {
		ledgerRows.WithLabelValues(method).Observe(float64(rows))
	}
}

// ObserveExport records one ledger export with its latency.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = ResultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// ObserveRequest records one HTTP request with its latency.
func ObserveRequest(endpoint, result string, duration time.Duration) {
	if endpoint == "" {
		endpoint = "unknown"
	}
	if result == "" {
		result = ResultSuccess
	}
	if requestTotal != nil {
		requestTotal.WithLabelValues(endpoint, result).Inc()
	}
	if requestLatency != nil {
		requestLatency.WithLabelValues(endpoint, result).Observe(duration.Seconds())
	}
}
