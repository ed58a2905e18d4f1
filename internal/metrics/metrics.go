// Package metrics provides Prometheus metrics for the Deck Meta backend.
// Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deckmeta_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "deckmeta_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Deck Pool Metrics
	DecksIndexed = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "deckmeta_decks_indexed",
			Help: "Number of decks indexed per archetype pool",
		},
		[]string{"archetype"},
	)

	DeckEntriesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deckmeta_deck_entries_skipped_total",
			Help: "Malformed decklist entries skipped during import",
		},
	)

	// Report Metrics
	ReportsComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deckmeta_reports_computed_total",
			Help: "Usage reports computed, by kind (baseline or filtered)",
		},
		[]string{"kind"},
	)

	ReportCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deckmeta_report_cache_hits_total",
			Help: "Filtered-report cache hit count",
		},
	)

	ReportCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deckmeta_report_cache_misses_total",
			Help: "Filtered-report cache miss count",
		},
	)

	StaleResultsDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deckmeta_stale_results_discarded_total",
			Help: "Filter results discarded because a newer request superseded them",
		},
	)

	ReportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "deckmeta_report_duration_seconds",
			Help:    "Time taken to compute one usage report",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	// Index Build Metrics
	CombinationsEvaluated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deckmeta_combinations_evaluated_total",
			Help: "Filter combinations evaluated during index builds",
		},
	)

	SubsetsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deckmeta_subsets_published_total",
			Help: "Unique subsets written to index output",
		},
	)

	SubsetsMerged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deckmeta_subsets_merged_total",
			Help: "Combinations collapsed into an existing subset by content hash",
		},
	)

	SubsetsSkippedSmall = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deckmeta_subsets_skipped_small_total",
			Help: "Subsets excluded from output for falling below the minimum deck count",
		},
	)

	IndexBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "deckmeta_index_build_duration_seconds",
			Help:    "Time taken to build one archetype index",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)
)
