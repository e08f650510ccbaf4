package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FilesScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "perlxref_files_scanned_total",
		Help: "Total number of files read by the scanner.",
	})

	DirectivesParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "perlxref_directives_total",
		Help: "Total number of directives recognized, by keyword.",
	}, []string{"keyword"})

	Warnings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "perlxref_warnings_total",
		Help: "Total number of non-fatal scan warnings, by kind.",
	}, []string{"kind"})

	TableSymbols = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "perlxref_table_symbols_total",
		Help: "Declared symbols in the table after the latest scan.",
	})

	TableEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "perlxref_table_edges_total",
		Help: "Uses edges recorded during the latest scan.",
	})

	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "perlxref_scan_seconds",
		Help:    "Wall time of a full scan run.",
		Buckets: prometheus.DefBuckets,
	})

	WatcherEvents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "perlxref_watcher_events_total",
		Help: "File system events received in watch mode.",
	})
)

// Serve exposes /metrics on addr. Only used in watch mode; one-shot runs
// exit before a scrape could happen.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
